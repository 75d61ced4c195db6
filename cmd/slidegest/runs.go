package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dgallion1/slidegest/internal/manifest"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect recorded conversion runs",
	Long: `Runs reads the local manifest database. Use list for recent runs and
show for the full record of one run, including its config snapshot.`,
}

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent runs, newest first",
	RunE:  runRunsList,
}

func runRunsList(cmd *cobra.Command, args []string) error {
	store, err := manifest.Open(manifestPath(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := store.List(limit)
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-10s  %-10s  %-8s  %-8s  %-25s  %-7s  %s\n",
		"Run", "Session", "Dir", "Status", "Input", "Slides", "Started")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 90))
	for _, r := range runs {
		input := r.Input
		if len(input) > 25 {
			input = input[:22] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-10s  %-10s  %-8s  %-8s  %-25s  %-7d  %s\n",
			r.RunID, r.SessionID, r.Direction, r.Status, input, r.Slides,
			r.StartedAt.Local().Format("2006-01-02 15:04:05"))
	}
	fmt.Fprintf(os.Stdout, "\n%d runs\n", len(runs))
	return nil
}

var runsShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show the full record of one run",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsShow,
}

func runRunsShow(cmd *cobra.Command, args []string) error {
	store, err := manifest.Open(manifestPath(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	run, err := store.Get(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(run)
}

func init() {
	runsListCmd.Flags().Int("limit", 0, "maximum runs to list (0 = default)")
	runsListCmd.Flags().Bool("json", false, "output runs as JSON")

	runsCmd.AddCommand(runsListCmd)
	runsCmd.AddCommand(runsShowCmd)

	rootCmd.AddCommand(runsCmd)
}
