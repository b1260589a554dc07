// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/researchlens/internal/view"
	"github.com/pdiddy/researchlens/pkg/types"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <topic...>",
	Short: "Analyze a research topic",
	Long: `Analyze submits a topic to the backend and reports paper-trend statistics,
research gaps, candidate research questions, methodology suggestions, and
references. Results are stored in the local history; a live history entry
is served instead of a backend call unless --refresh is given.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}
		topic := strings.Join(args, " ")
		refresh, _ := cmd.Flags().GetBool("refresh")
		asJSON, _ := cmd.Flags().GetBool("json")

		store, err := openHistory()
		if err != nil {
			return err
		}
		defer store.Close()

		ctx := cmd.Context()

		var result *types.AnalysisResult
		if !refresh {
			if entry, err := store.Get(ctx, topic); err == nil {
				result = entry.Analysis
				fmt.Fprintln(os.Stderr, "Using stored analysis (pass --refresh to re-analyze).")
			}
		}

		if result == nil {
			fmt.Fprintf(os.Stderr, "Analyzing %q...\n", topic)
			result, err = newAPIClient().Analyze(ctx, topic)
			if err != nil {
				return err
			}
			if err := store.SaveAnalysis(ctx, topic, result); err != nil {
				return err
			}
		}

		if asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		}

		view.NewRenderer(cmd.OutOrStdout()).Analysis(result)
		return nil
	},
}

func init() {
	analyzeCmd.Flags().Bool("refresh", false, "ignore the stored analysis and call the backend")
	analyzeCmd.Flags().Bool("json", false, "output the raw analysis as JSON")

	rootCmd.AddCommand(analyzeCmd)
}
