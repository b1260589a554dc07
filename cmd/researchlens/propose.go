// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/researchlens/internal/api"
	"github.com/pdiddy/researchlens/internal/history"
	"github.com/pdiddy/researchlens/internal/synthesis"
	"github.com/pdiddy/researchlens/internal/view"
	"github.com/pdiddy/researchlens/pkg/types"
)

var proposeCmd = &cobra.Command{
	Use:   "propose <topic...>",
	Short: "Generate a research proposal from a prior analysis",
	Long: `Propose asks the backend to draft a proposal from the insights of a prior
analysis of the topic, synthesizes the proposal document, and previews it in
the terminal. The proposal is attached to the topic's history entry so
export can rebuild the document without another backend call.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}
		topic := strings.Join(args, " ")
		detailFlag, _ := cmd.Flags().GetString("detail")
		savePath, _ := cmd.Flags().GetString("save")
		asJSON, _ := cmd.Flags().GetBool("json")
		refresh, _ := cmd.Flags().GetBool("refresh")

		detail, err := detailLevel(detailFlag)
		if err != nil {
			return err
		}

		store, err := openHistory()
		if err != nil {
			return err
		}
		defer store.Close()

		ctx := cmd.Context()
		client := newAPIClient()

		entry, err := store.Get(ctx, topic)
		if errors.Is(err, history.ErrNotFound) && refresh {
			fmt.Fprintf(os.Stderr, "Analyzing %q...\n", topic)
			analysis, analyzeErr := client.Analyze(ctx, topic)
			if analyzeErr != nil {
				return analyzeErr
			}
			if saveErr := store.SaveAnalysis(ctx, topic, analysis); saveErr != nil {
				return saveErr
			}
			entry, err = store.Get(ctx, topic)
		}
		if errors.Is(err, history.ErrNotFound) {
			return fmt.Errorf("no analysis for %q: run `researchlens analyze` first, or pass --refresh", topic)
		}
		if err != nil {
			return err
		}

		proposal := entry.Proposal
		if proposal == nil || refresh {
			fmt.Fprintf(os.Stderr, "Generating proposal for %q...\n", topic)
			analysis := entry.Analysis
			proposal, err = client.GenerateProposal(ctx, api.ProposalRequest{
				Topic:                  topic,
				ResearchGaps:           analysis.ResearchGaps,
				ResearchQuestions:      analysis.ResearchQuestions,
				MethodologySuggestions: analysis.MethodologySuggestions,
			})
			if err != nil {
				return err
			}
			if err := store.AttachProposal(ctx, topic, proposal); err != nil {
				return err
			}
		}

		if savePath != "" {
			if err := saveProposal(savePath, topic, proposal); err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "Saved proposal to %s\n", savePath)
		}

		doc := synthesis.Build(*proposal, entry.Analysis.References, topic, detail)

		if asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(doc)
		}

		out := synthesis.Render(doc, cfg.Export.PrintDelay)
		view.NewRenderer(cmd.OutOrStdout()).Preview(out.Preview)
		return nil
	},
}

// saveProposal writes the proposal as a YAML project file.
func saveProposal(path, topic string, proposal *types.ProposalData) error {
	project := struct {
		Topic    string              `yaml:"topic"`
		Proposal *types.ProposalData `yaml:"proposal"`
	}{Topic: topic, Proposal: proposal}

	data, err := yaml.Marshal(project)
	if err != nil {
		return fmt.Errorf("encoding proposal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing proposal file: %w", err)
	}
	return nil
}

func init() {
	proposeCmd.Flags().String("detail", "", "document granularity: standard or expanded")
	proposeCmd.Flags().String("save", "", "also save the raw proposal to a YAML file")
	proposeCmd.Flags().Bool("json", false, "output the section tree as JSON")
	proposeCmd.Flags().Bool("refresh", false, "re-analyze and regenerate even when stored")

	rootCmd.AddCommand(proposeCmd)
}
