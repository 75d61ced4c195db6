package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dgallion1/slidegest/internal/config"
	"github.com/dgallion1/slidegest/internal/deckmodel"
	"github.com/dgallion1/slidegest/internal/engine"
	"github.com/dgallion1/slidegest/internal/loader"
	"github.com/dgallion1/slidegest/internal/manifest"
)

var convertCmd = &cobra.Command{
	Use:   "convert <input>",
	Short: "Convert a document into a slide deck",
	Long: `Convert reads a document (.docx, .md, .html, .pdf, .txt, or the JSON
document form), splits it into chunks per the chosen strategy, and
writes the resulting deck as JSON. Annotations travel into speaker
notes; with --preserve-metadata the notes also carry the machine
metadata that reverse needs for full restoration.`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	input := args[0]
	log := newLogger(cmd)

	cfg, err := engineConfigFromFlags(cmd)
	if err != nil {
		return err
	}

	ld, err := loader.ForFile(input)
	if err != nil {
		return err
	}
	f, err := os.Open(input)
	if err != nil {
		return fmt.Errorf("opening %s: %w", input, err)
	}
	doc, err := ld.Load(f, filepath.Base(input))
	f.Close()
	if err != nil {
		return fmt.Errorf("parsing %s: %w", input, err)
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
		Direction: manifest.DirectionConvert,
		Input:     filepath.Base(input),
		Config:    cfg,
	}); err != nil {
		log.Warn("recording run", "error", err)
	}

	deck, warnings, err := engine.Convert(context.Background(), rc, doc, deckmodel.DefaultTemplate(), cfg)
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
		output = strings.TrimSuffix(input, filepath.Ext(input)) + ".deck.json"
	}
	if err := writeDeckJSON(deck, output); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "%d slides written to %s (run %s)\n", len(deck.Slides), output, rc.RunID)
	return nil
}

func writeDeckJSON(deck *deckmodel.Deck, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(deck); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// engineConfigFromFlags builds the conversion config: library defaults,
// then config-file/env values, then explicit flags.
func engineConfigFromFlags(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()

	if v := viper.GetString("chunk_type"); v != "" {
		cfg.ChunkType = config.ChunkType(v)
	}
	if viper.IsSet("experimental_formatting") {
		cfg.ExperimentalFormattingOn = viper.GetBool("experimental_formatting")
	}

	if v, _ := cmd.Flags().GetString("chunk"); cmd.Flags().Changed("chunk") {
		cfg.ChunkType = config.ChunkType(v)
	}
	if n, _ := cmd.Flags().GetInt("nest-level"); cmd.Flags().Changed("nest-level") {
		cfg.HeadingNestLevel = n
	}
	if n, _ := cmd.Flags().GetInt("range-start"); cmd.Flags().Changed("range-start") {
		cfg.RangeStart = n
	}
	if n, _ := cmd.Flags().GetInt("range-end"); cmd.Flags().Changed("range-end") {
		cfg.RangeEnd = n
	}
	flagBool(cmd, "experimental-formatting", &cfg.ExperimentalFormattingOn)
	flagBool(cmd, "comments", &cfg.DisplayComments)
	flagBool(cmd, "footnotes", &cfg.DisplayFootnotes)
	flagBool(cmd, "endnotes", &cfg.DisplayEndnotes)
	flagBool(cmd, "annotation-metadata", &cfg.DisplayAnnotationMetadata)
	flagBool(cmd, "sort-comments-by-date", &cfg.CommentsSortByDate)
	flagBool(cmd, "preserve-metadata", &cfg.PreserveMetadataInSpeakerNotes)

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func flagBool(cmd *cobra.Command, name string, dst *bool) {
	if cmd.Flags().Changed(name) {
		*dst, _ = cmd.Flags().GetBool(name)
	}
}

func init() {
	convertCmd.Flags().StringP("output", "o", "", "output deck path (default: <input>.deck.json)")
	convertCmd.Flags().String("chunk", string(config.ChunkParagraph), "chunking strategy: paragraph, page, heading_flat, or heading_nested")
	convertCmd.Flags().Int("nest-level", 0, "heading level that starts a new chunk (heading_nested only, 1-6)")
	convertCmd.Flags().Int("range-start", 0, "first page to include (0 = from the start)")
	convertCmd.Flags().Int("range-end", 0, "last page to include (0 = to the end)")
	convertCmd.Flags().Bool("experimental-formatting", true, "carry color, highlight, font, and caps styling")
	convertCmd.Flags().Bool("comments", false, "copy comments into speaker notes")
	convertCmd.Flags().Bool("footnotes", false, "copy footnotes into speaker notes")
	convertCmd.Flags().Bool("endnotes", false, "copy endnotes into speaker notes")
	convertCmd.Flags().Bool("annotation-metadata", false, "include author and date on copied comments")
	convertCmd.Flags().Bool("sort-comments-by-date", true, "order copied comments oldest first")
	convertCmd.Flags().Bool("preserve-metadata", false, "append machine-readable metadata to speaker notes for reverse conversion")

	rootCmd.AddCommand(convertCmd)
}
