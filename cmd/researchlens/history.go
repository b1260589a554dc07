// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/researchlens/internal/history"
	"github.com/pdiddy/researchlens/internal/view"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect past analysis runs",
	Long: `History manages the local store of past analysis runs and their proposals.
Entries expire after the configured TTL; expired entries never appear.`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored runs, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}
		store, err := openHistory()
		if err != nil {
			return err
		}
		defer store.Close()

		entries, err := store.List(cmd.Context())
		if err != nil {
			return err
		}
		view.NewRenderer(cmd.OutOrStdout()).History(entries)
		return nil
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <topic...>",
	Short: "Show a stored run as JSON",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}
		topic := strings.Join(args, " ")

		store, err := openHistory()
		if err != nil {
			return err
		}
		defer store.Close()

		entry, err := store.Get(cmd.Context(), topic)
		if errors.Is(err, history.ErrNotFound) {
			return fmt.Errorf("no history for %q", topic)
		}
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(entry)
	},
}

var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the history as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}
		store, err := openHistory()
		if err != nil {
			return err
		}
		defer store.Close()

		return store.ExportYAML(cmd.Context(), cmd.OutOrStdout())
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear [topic...]",
	Short: "Remove one topic, or every entry",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}
		store, err := openHistory()
		if err != nil {
			return err
		}
		defer store.Close()

		if len(args) > 0 {
			topic := strings.Join(args, " ")
			if err := store.Delete(cmd.Context(), topic); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %q.\n", topic)
			return nil
		}

		if err := store.Clear(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "History cleared.")
		return nil
	},
}

func init() {
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyClearCmd)

	rootCmd.AddCommand(historyCmd)
}
