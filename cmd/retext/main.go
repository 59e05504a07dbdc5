package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func main() {
	// Setup logging
	setupLogging()
	ctx := log.Logger.WithContext(context.Background())

	// Cancel cooperatively on interrupt
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Create root command
	rootCmd := &cobra.Command{
		Use:   "retext",
		Short: "Find and replace text across a directory tree",
		Long: `retext searches a directory tree for pattern matches and performs
validated, transactional replacements across many files concurrently.
Rewrites are atomic per file: a crash never leaves a partial file behind.`,
		SilenceUsage: true,
	}

	// Add shared flags
	addRootFlags(rootCmd)

	// Add commands
	rootCmd.AddCommand(newSearchCmd())
	rootCmd.AddCommand(newRunCmd())

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
