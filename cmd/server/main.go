// Package main provides the smartlearn binary: the HTTP API plus an offline
// prompt renderer for working on templates.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Version is overridden at build time with -ldflags "-X main.Version=..."
var Version = "dev"

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "smartlearn",
		Short: "Smart learning API",
		Long: `smartlearn turns a learner's request (subject, topic, grade, learner type
and activity) into a lesson generated by a managed text model, optionally
read aloud, and translates generated lessons on request.

Running without a subcommand starts the HTTP server.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context())
		},
	}

	cmd.AddCommand(serveCmd())
	cmd.AddCommand(promptCmd())
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "smartlearn %s\n", Version)
		},
	})

	return cmd
}
