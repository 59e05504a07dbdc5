package main

import (
	"os"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/retext/pkg/engine"
	"github.com/walteh/retext/pkg/log"
	"github.com/walteh/retext/pkg/matcher"
	"github.com/walteh/retext/pkg/replace"
	"github.com/walteh/retext/pkg/search"
	"gitlab.com/tozd/go/errors"
)

// newRunCmd creates the run command
func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <pattern> <replacement>",
		Short: "Search and replace across the tree in one pass",
		Long: `Run searches the tree, rewrites every matched line, and prints a
summary. Each file is rewritten atomically; a file whose content changed
between search and rewrite is reported as an error without being touched.`,
		Args: cobra.RangeArgs(0, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := buildConfig(ctx, args)
			if err != nil {
				pterm.Error.WithPrefix(pterm.Prefix{Text: "❌"}).Println(err)
				return err
			}

			pattern, err := matcher.Compile(cfg.Search.Pattern, cfg.MatcherOptions())
			if err != nil {
				pterm.Error.WithPrefix(pterm.Prefix{Text: "❌"}).Println(err)
				return err
			}

			level := zerolog.InfoLevel
			if debug {
				level = zerolog.DebugLevel
			}
			console := log.New(os.Stdout, level)
			console.StartRun(ctx, cfg.Search.Pattern, cfg.Search.Replacement, cfg.Root)

			session := engine.NewSession(pattern, search.Config{
				Walk:        cfg.WalkConfig(),
				Replacement: cfg.Search.Replacement,
			})

			matches, completion, err := session.Search(ctx)
			if err != nil {
				return errors.Errorf("searching: %w", err)
			}
			if completion == search.CompletionCancelled {
				pterm.Warning.WithPrefix(pterm.Prefix{Text: "⚠️"}).Println("search cancelled, nothing replaced")
				return nil
			}
			if len(matches) == 0 {
				pterm.Info.WithPrefix(pterm.Prefix{Text: "🔍"}).Println("no matches found")
				return nil
			}

			summary, err := session.Replace(ctx, replace.Options{
				Concurrency: int64(cfg.Concurrency),
			})
			if err != nil {
				return errors.Errorf("replacing: %w", err)
			}

			for _, rec := range summary.Errors {
				console.LogRecord(ctx, rec)
			}
			console.LogNewline()
			console.LogSummary(ctx, summary)

			if summary.ErrorCount() > 0 {
				return errors.Errorf("%d replacements failed", summary.ErrorCount())
			}
			return nil
		},
	}
}
