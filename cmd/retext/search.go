package main

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/walteh/retext/pkg/engine"
	"github.com/walteh/retext/pkg/matcher"
	"github.com/walteh/retext/pkg/search"
	"gitlab.com/tozd/go/errors"
)

// newSearchCmd creates the search command
func newSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <pattern>",
		Short: "List every line the pattern matches",
		Long: `Search walks the tree and prints each match as path:line:content,
streaming results as they are found. Nothing is modified.`,
		Args: cobra.RangeArgs(0, 1),
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

			session := engine.NewSession(pattern, search.Config{
				Walk:        cfg.WalkConfig(),
				Replacement: cfg.Search.Replacement,
			})

			coord, err := session.StartSearch(ctx)
			if err != nil {
				return errors.Errorf("starting search: %w", err)
			}

			total := 0
			var matches []*search.Match
			for batch := range coord.Batches() {
				for _, rec := range batch {
					fmt.Printf("%s:%d:%s\n", rec.Path, rec.LineNumber, rec.OriginalLine)
					total++
				}
				matches = append(matches, batch...)
			}
			completion := <-coord.Done()
			session.FinishSearch(matches, completion)

			if completion == search.CompletionCancelled {
				pterm.Warning.WithPrefix(pterm.Prefix{Text: "⚠️"}).Println("search cancelled")
				return nil
			}
			if total == 0 {
				pterm.Info.WithPrefix(pterm.Prefix{Text: "🔍"}).Println("no matches found")
			}
			return nil
		},
	}
}
