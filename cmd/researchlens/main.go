// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the researchlens CLI, the terminal
// client for the ResearchLens analysis backend: analyze a research topic,
// generate a proposal from the analysis, preview it, and export a
// printable document.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/researchlens/internal/api"
	"github.com/pdiddy/researchlens/internal/auth"
	"github.com/pdiddy/researchlens/internal/history"
	"github.com/pdiddy/researchlens/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// cfg holds the resolved client configuration for the running command.
var cfg types.ClientConfig

// gate is the credential gate built from cfg.Auth.
var gate *auth.Gate

// rootCmd is the base command for the researchlens CLI.
var rootCmd = &cobra.Command{
	Use:   "researchlens",
	Short: "Client for the ResearchLens research-analysis service",
	Long: `researchlens analyzes research topics through the ResearchLens backend and
turns the results into academic proposal documents.

The workflow is: login, analyze a topic (trend statistics, research gaps,
questions, methodology suggestions, references), generate a proposal from
the analysis, preview it in the terminal, and export a printable document.
Past runs are kept in a local history store.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = loadConfig()

		g, err := auth.NewGate(cfg.Auth)
		if err != nil {
			return err
		}
		gate = g
		return nil
	},
}

// loadConfig resolves the client configuration from viper (config file,
// environment, built-in defaults).
func loadConfig() types.ClientConfig {
	return types.ClientConfig{
		API: types.APIConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("api.timeout"),
				UserAgent: "researchlens/" + version,
			},
			BaseURL:    viper.GetString("api.base_url"),
			MaxRetries: viper.GetInt("api.max_retries"),
		},
		Synthesis: types.SynthesisConfig{
			Detail: types.DetailLevel(viper.GetString("synthesis.detail")),
		},
		Export: types.ExportConfig{
			OutputDir:  viper.GetString("export.output_dir"),
			PrintDelay: viper.GetDuration("export.print_delay"),
			Open:       viper.GetBool("export.open"),
		},
		History: types.HistoryConfig{
			Path:       viper.GetString("history.path"),
			TTL:        viper.GetDuration("history.ttl"),
			MaxEntries: viper.GetInt("history.max_entries"),
		},
		Auth: types.AuthConfig{
			CredentialsDir: viper.GetString("auth.credentials_dir"),
			SessionPath:    viper.GetString("auth.session_path"),
		},
	}
}

// requireSession fails commands that need a logged-in user.
func requireSession() error {
	if _, err := gate.Current(); err != nil {
		return fmt.Errorf("not logged in: run `researchlens login` first")
	}
	return nil
}

// newAPIClient builds the backend client from the resolved configuration.
func newAPIClient() *api.Client {
	return api.NewClient(cfg.API)
}

// openHistory opens the local history store.
func openHistory() (*history.Store, error) {
	return history.Open(cfg.History)
}

// detailLevel resolves the --detail flag against configuration.
func detailLevel(flag string) (types.DetailLevel, error) {
	switch types.DetailLevel(flag) {
	case "":
		return cfg.Synthesis.Detail, nil
	case types.DetailStandard:
		return types.DetailStandard, nil
	case types.DetailExpanded:
		return types.DetailExpanded, nil
	}
	return "", fmt.Errorf("invalid detail level %q: use standard or expanded", flag)
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./researchlens.yaml or ~/.config/researchlens/config.yaml)")

	viper.SetDefault("api.base_url", api.DefaultBaseURL)
	viper.SetDefault("api.timeout", "30s")
	viper.SetDefault("api.max_retries", 3)
	viper.SetDefault("synthesis.detail", string(types.DetailExpanded))
	viper.SetDefault("export.output_dir", filepath.Join("output", "exports"))
	viper.SetDefault("export.print_delay", "500ms")
	viper.SetDefault("export.open", true)
	viper.SetDefault("history.path", filepath.Join("history", "researchlens.db"))
	viper.SetDefault("history.ttl", "24h")
	viper.SetDefault("history.max_entries", 20)
	viper.SetDefault("auth.credentials_dir", ".credentials")
	viper.SetDefault("auth.session_path", ".researchlens-session")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("researchlens")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "researchlens"))
		}
	}

	viper.SetEnvPrefix("RESEARCHLENS")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
