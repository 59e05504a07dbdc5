// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/retext/pkg/matcher"
	"github.com/walteh/retext/pkg/walker"
	"gitlab.com/tozd/go/errors"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 🔍 SearchArgs describe what to look for and what to write back
type SearchArgs struct {
	Pattern      string `json:"pattern" yaml:"pattern"`
	Replacement  string `json:"replacement" yaml:"replacement"`
	FixedStrings bool   `json:"fixed_strings,omitempty" yaml:"fixed_strings,omitempty"`
	WholeWord    bool   `json:"whole_word,omitempty" yaml:"whole_word,omitempty"`
	MatchCase    bool   `json:"match_case,omitempty" yaml:"match_case,omitempty"`
}

// 📂 FileArgs scope which files a run touches
type FileArgs struct {
	IncludeHidden bool     `json:"include_hidden,omitempty" yaml:"include_hidden,omitempty"`
	Include       []string `json:"include,omitempty" yaml:"include,omitempty"`
	Exclude       []string `json:"exclude,omitempty" yaml:"exclude,omitempty"`
}

// 📚 Config represents a complete batch job
type Config struct {
	Root        string     `json:"root,omitempty" yaml:"root,omitempty"`
	Search      SearchArgs `json:"search" yaml:"search"`
	Files       *FileArgs  `json:"files,omitempty" yaml:"files,omitempty"`
	Concurrency int        `json:"concurrency,omitempty" yaml:"concurrency,omitempty"`
}

// 📂 Load loads and validates a config file
func Load(ctx context.Context, path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	parser := GetParser(path)
	if parser == nil {
		return nil, errors.Errorf("no parser for config file %q", filepath.Base(path))
	}

	cfg, err := parser.Parse(ctx, data)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(ctx); err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Debug().Str("path", path).Msg("loaded config")
	return cfg, nil
}

// ✅ Validate applies defaults and checks the pattern and glob syntax so the
// caller can surface validation errors before a search starts.
func (c *Config) Validate(ctx context.Context) error {
	if c.Root == "" {
		c.Root = "."
	}
	if c.Search.Pattern == "" {
		return errors.New("search.pattern is required")
	}
	if _, err := matcher.Compile(c.Search.Pattern, c.MatcherOptions()); err != nil {
		return errors.Errorf("validating pattern: %w", err)
	}
	if c.Files != nil {
		if err := walker.ValidateGlobs(c.Files.Include); err != nil {
			return errors.Errorf("validating include globs: %w", err)
		}
		if err := walker.ValidateGlobs(c.Files.Exclude); err != nil {
			return errors.Errorf("validating exclude globs: %w", err)
		}
	}
	return nil
}

// 🔧 MatcherOptions maps the search flags onto the matcher
func (c *Config) MatcherOptions() matcher.Options {
	return matcher.Options{
		FixedStrings: c.Search.FixedStrings,
		WholeWord:    c.Search.WholeWord,
		MatchCase:    c.Search.MatchCase,
	}
}

// 🚶 WalkConfig maps the file scoping onto the walker
func (c *Config) WalkConfig() walker.Config {
	cfg := walker.Config{Root: c.Root}
	if c.Files != nil {
		cfg.IncludeHidden = c.Files.IncludeHidden
		cfg.IncludeGlobs = c.Files.Include
		cfg.ExcludeGlobs = c.Files.Exclude
	}
	return cfg
}

// ✂️ SplitGlobList splits a comma-separated glob list the way the CLI hands
// it in, trimming whitespace and dropping empty items.
func SplitGlobList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var globs []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			globs = append(globs, part)
		}
	}
	return globs
}
