package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/retext/pkg/config"
	"gitlab.com/tozd/go/errors"
)

var (
	// Flags
	configFile    string
	rootDir       string
	fixedStrings  bool
	wholeWord     bool
	ignoreCase    bool
	includeHidden bool
	includeGlobs  string
	excludeGlobs  string
	concurrency   int
	debug         bool
)

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file path (.yaml or .hcl)")
	cmd.PersistentFlags().StringVarP(&rootDir, "root", "r", ".", "directory to search")
	cmd.PersistentFlags().BoolVarP(&fixedStrings, "fixed-strings", "F", false, "treat the pattern as a literal string")
	cmd.PersistentFlags().BoolVarP(&wholeWord, "word", "w", false, "match whole words only")
	cmd.PersistentFlags().BoolVarP(&ignoreCase, "ignore-case", "i", false, "case-insensitive matching")
	cmd.PersistentFlags().BoolVar(&includeHidden, "hidden", false, "search hidden files and directories")
	cmd.PersistentFlags().StringVar(&includeGlobs, "include", "", "comma-separated globs of files to include")
	cmd.PersistentFlags().StringVar(&excludeGlobs, "exclude", "", "comma-separated globs of files to exclude")
	cmd.PersistentFlags().IntVar(&concurrency, "concurrency", 0, "max concurrent file rewrites")
	cmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
}

// setupLogging configures zerolog based on flags
func setupLogging() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	for _, arg := range os.Args[1:] {
		if arg == "-d" || arg == "--debug" {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		}
	}
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &log
}

// buildConfig assembles the job config from the config file (when given)
// with flags and positional arguments layered on top. The comma-separated
// glob lists are split and trimmed here, before they reach the walker.
func buildConfig(ctx context.Context, args []string) (*config.Config, error) {
	var cfg *config.Config
	if configFile != "" {
		loaded, err := config.Load(ctx, configFile)
		if err != nil {
			return nil, errors.Errorf("loading config: %w", err)
		}
		cfg = loaded
	} else {
		cfg = &config.Config{}
	}

	if len(args) > 0 {
		cfg.Search.Pattern = args[0]
	}
	if len(args) > 1 {
		cfg.Search.Replacement = args[1]
	}
	if rootDir != "." || cfg.Root == "" {
		cfg.Root = rootDir
	}
	if fixedStrings {
		cfg.Search.FixedStrings = true
	}
	if wholeWord {
		cfg.Search.WholeWord = true
	}
	if configFile == "" {
		cfg.Search.MatchCase = !ignoreCase
	} else if ignoreCase {
		cfg.Search.MatchCase = false
	}
	if includeHidden || includeGlobs != "" || excludeGlobs != "" {
		if cfg.Files == nil {
			cfg.Files = &config.FileArgs{}
		}
		if includeHidden {
			cfg.Files.IncludeHidden = true
		}
		if globs := config.SplitGlobList(includeGlobs); globs != nil {
			cfg.Files.Include = globs
		}
		if globs := config.SplitGlobList(excludeGlobs); globs != nil {
			cfg.Files.Exclude = globs
		}
	}
	if concurrency > 0 {
		cfg.Concurrency = concurrency
	}

	if err := cfg.Validate(ctx); err != nil {
		return nil, err
	}
	return cfg, nil
}
