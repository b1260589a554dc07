// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in with the configured static credentials",
	Long: `Login verifies a username and password against the configured credential
files and stores a local session. Omitted flags are prompted for on stdin.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		user, _ := cmd.Flags().GetString("user")
		password, _ := cmd.Flags().GetString("password")

		reader := bufio.NewReader(cmd.InOrStdin())
		var err error
		if user == "" {
			fmt.Fprint(cmd.OutOrStdout(), "Username: ")
			if user, err = readLine(reader); err != nil {
				return err
			}
		}
		if password == "" {
			fmt.Fprint(cmd.OutOrStdout(), "Password: ")
			if password, err = readLine(reader); err != nil {
				return err
			}
		}

		session, err := gate.Login(user, password)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s.\n", session.User)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the local session",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := gate.Logout(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
		return nil
	},
}

func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func init() {
	loginCmd.Flags().String("user", "", "username")
	loginCmd.Flags().String("password", "", "password")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
}
