// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check backend connectivity",
	RunE: func(cmd *cobra.Command, args []string) error {
		health, err := newAPIClient().CheckHealth(cmd.Context())
		if err != nil {
			return fmt.Errorf("backend unreachable at %s: %w", cfg.API.BaseURL, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Backend %s (%d cached topics)\n", health.Status, health.CacheSize)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
