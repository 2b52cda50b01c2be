package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for phishscan.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "phishscan",
		Short: "Phishing URL detection tool",
		Long: `phishscan analyzes URLs for phishing indicators and classifies each
into LOW, MEDIUM, or HIGH risk.

Signals are collected from four sources: URL structure (IP hosts,
suspicious patterns, deep subdomains), TLS certificates, page content
(urgent language, password forms, external links), and domain
registration age. Scoring uses a weighted rule set, or a remote model
endpoint when one is configured.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewScanCmd())
	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
