// Package cmd provides the CLI commands for Ask Buddy.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/askbuddy/askbuddy/internal/api"
	"github.com/askbuddy/askbuddy/internal/config"
	"github.com/askbuddy/askbuddy/internal/debug"
	"github.com/askbuddy/askbuddy/internal/identity"
	"github.com/askbuddy/askbuddy/internal/pubsub"
	"github.com/askbuddy/askbuddy/internal/transfer"
	"github.com/askbuddy/askbuddy/internal/tui"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "askbuddy",
		Short: "Chat with your documents from the terminal",
		Long: `Ask Buddy is a terminal client for a document question-answering
assistant. Upload PDF, Word, or PowerPoint files and ask questions
about their contents; answers come back rendered as markdown.

Questions can be scoped to a single uploaded file or run across
everything you have uploaded. Past conversations stay available in
the session history.`,
		RunE: runTUI,
	}

	cmd.Flags().String("server", "", "Assistant server URL (overrides the configured one)")
	cmd.Flags().Bool("debug", false, "Enable debug logging")
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		cfg = config.NewConfig()
	}

	serverURL, err := cmd.Flags().GetString("server")
	if err != nil {
		return fmt.Errorf("getting server flag: %w", err)
	}
	if serverURL != "" {
		cfg.ServerURL = serverURL
	}

	// Enable debug logging if requested by flag or config.
	debugMode, err := cmd.Flags().GetBool("debug")
	if err != nil {
		return fmt.Errorf("getting debug flag: %w", err)
	}
	if debugMode || cfg.Debug() {
		logPath := filepath.Join(cfg.DataDir(), "debug.log")
		if debugErr := debug.Enable(logPath); debugErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: Failed to enable debug logging: %v\n", debugErr)
		} else {
			defer debug.Disable()
			fmt.Fprintf(os.Stderr, "Debug: %s\n", logPath)
		}
	}

	client := api.NewClient(cfg.ServerURL)

	hub := pubsub.NewHub()
	defer hub.Shutdown()

	// Restore any stored identity so a previous login survives restarts.
	mgr := identity.NewManager(identity.NewFileStore(identity.StorePath(cfg.DataDir())), hub.Auth)
	mgr.Restore()

	uploader := transfer.NewUploader(client, hub.Upload)

	return tui.Run(client, mgr, uploader, hub)
}

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}
