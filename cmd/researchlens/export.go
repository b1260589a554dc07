// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/researchlens/internal/export"
	"github.com/pdiddy/researchlens/internal/history"
	"github.com/pdiddy/researchlens/internal/synthesis"
)

var exportCmd = &cobra.Command{
	Use:   "export <topic...>",
	Short: "Export a proposal as a printable document",
	Long: `Export rebuilds the proposal document from the topic's history entry,
writes it as a self-contained HTML file, and opens it on the host so the
embedded print trigger can hand it to the print pipeline. A host that
refuses to open the document makes the export a no-op.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}
		topic := strings.Join(args, " ")
		detailFlag, _ := cmd.Flags().GetString("detail")
		outDir, _ := cmd.Flags().GetString("out")
		noOpen, _ := cmd.Flags().GetBool("no-open")

		detail, err := detailLevel(detailFlag)
		if err != nil {
			return err
		}

		store, err := openHistory()
		if err != nil {
			return err
		}
		defer store.Close()

		entry, err := store.Get(cmd.Context(), topic)
		if errors.Is(err, history.ErrNotFound) {
			return fmt.Errorf("no analysis for %q: run `researchlens analyze` first", topic)
		}
		if err != nil {
			return err
		}
		if entry.Proposal == nil {
			return fmt.Errorf("no proposal for %q: run `researchlens propose` first", topic)
		}

		doc := synthesis.Build(*entry.Proposal, entry.Analysis.References, topic, detail)
		out := synthesis.Render(doc, cfg.Export.PrintDelay)

		exportCfg := cfg.Export
		if outDir != "" {
			exportCfg.OutputDir = outDir
		}
		if noOpen {
			exportCfg.Open = false
		}

		path, err := export.New(exportCfg).Export(topic, out.ExportHTML)
		if err != nil {
			return err
		}
		if path != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %s\n", path)
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().String("detail", "", "document granularity: standard or expanded")
	exportCmd.Flags().String("out", "", "export directory (default from configuration)")
	exportCmd.Flags().Bool("no-open", false, "write the document without opening it")

	rootCmd.AddCommand(exportCmd)
}
