package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dgallion1/slidegest/internal/deckmodel"
	"github.com/dgallion1/slidegest/internal/docmodel"
	"github.com/dgallion1/slidegest/internal/engine"
	"github.com/dgallion1/slidegest/internal/loader"
	"github.com/dgallion1/slidegest/internal/manifest"
)

var reverseCmd = &cobra.Command{
	Use:   "reverse <deck.json>",
	Short: "Reconstruct a document from a slide deck",
	Long: `Reverse reads a deck JSON file and rebuilds the source document:
slide body text becomes paragraphs, speaker notes become comments, and
when the deck carries conversion metadata, headings, highlights, and
annotations are restored in place.

The output format follows the --output extension: .docx for a rendered
package, anything else for the JSON document form.`,
	Args: cobra.ExactArgs(1),
	RunE: runReverse,
}

func runReverse(cmd *cobra.Command, args []string) error {
	input := args[0]
	log := newLogger(cmd)

	cfg, err := engineConfigFromFlags(cmd)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("reading %s: %w", input, err)
	}
	var deck deckmodel.Deck
	if err := json.Unmarshal(data, &deck); err != nil {
		return fmt.Errorf("decoding %s: %w", input, err)
	}

	runs, err := manifest.Open(manifestPath(cmd))
	if err != nil {
		return err
	}
	defer runs.Close()

	sessionID, _ := cmd.Flags().GetString("session")
	rc := engine.NewRunContext(sessionID, cfg, log)
	if err := runs.Begin(manifest.Run{
		RunID:     rc.RunID,
		SessionID: rc.SessionID,
		Direction: manifest.DirectionReverse,
		Input:     filepath.Base(input),
		Config:    cfg,
	}); err != nil {
		log.Warn("recording run", "error", err)
	}

	doc, warnings, err := engine.Reverse(context.Background(), rc, &deck, cfg)
	if err != nil {
		if ferr := runs.Fail(rc.RunID, err); ferr != nil {
			log.Warn("recording run failure", "error", ferr)
		}
		return err
	}
	if cerr := runs.Complete(rc.RunID, len(deck.Slides), len(warnings)); cerr != nil {
		log.Warn("recording run completion", "error", cerr)
	}

	for _, warn := range warnings {
		fmt.Fprintln(os.Stderr, "warning:", warn)
	}

	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		output = strings.TrimSuffix(input, ".deck.json")
		output = strings.TrimSuffix(output, filepath.Ext(output)) + ".restored.json"
	}

	if err := writeDocument(doc, output); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "%d paragraphs written to %s (run %s)\n", len(doc.Paragraphs), output, rc.RunID)
	return nil
}

func writeDocument(doc *docmodel.Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".docx") {
		if err := loader.WriteDocx(doc, f); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		return nil
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func init() {
	reverseCmd.Flags().StringP("output", "o", "", "output path; .docx renders a package, otherwise JSON (default: <input>.restored.json)")
	reverseCmd.Flags().Bool("experimental-formatting", true, "restore highlight spans from metadata")

	rootCmd.AddCommand(reverseCmd)
}
