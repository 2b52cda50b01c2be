package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/phishscan/phishscan/internal/config"
)

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a detection rules file",
		Long: `Init creates a detection rules file with the default suspicious
patterns, whitelist domains, and model endpoint.

Examples:
  # Create detector_config.json in the current directory
  phishscan init

  # Create the rules file at a specific path
  phishscan init -o myrules.json

  # Force overwrite an existing file
  phishscan init -f`,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", config.DefaultRulesFile,
		"Output file path for the rules")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing rules file")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("rules file already exists: %s (use -f to overwrite)", outputPath)
		}
	}

	dir := filepath.Dir(outputPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := config.WriteRules(outputPath, config.DefaultRules()); err != nil {
		return fmt.Errorf("failed to write rules file: %w", err)
	}

	fmt.Printf("Created rules file: %s\n", outputPath)
	fmt.Println("\nEdit this file to configure:")
	fmt.Println("  - suspicious_patterns: regular expressions flagged in URLs")
	fmt.Println("  - whitelist_domains: trusted hosts that are always LOW risk")
	fmt.Println("  - ai_model_endpoint: optional remote classifier URL")

	return nil
}
