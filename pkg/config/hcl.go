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
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".hcl")
}

// 📝 Parse parses the config from HCL
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "config.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	// Create evaluation context
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	// Define HCL schema
	type hclConfig struct {
		Root   string `hcl:"root,optional"`
		Search struct {
			Pattern      string `hcl:"pattern"`
			Replacement  string `hcl:"replacement,optional"`
			FixedStrings bool   `hcl:"fixed_strings,optional"`
			WholeWord    bool   `hcl:"whole_word,optional"`
			MatchCase    bool   `hcl:"match_case,optional"`
		} `hcl:"search,block"`
		Files *struct {
			IncludeHidden bool     `hcl:"include_hidden,optional"`
			Include       []string `hcl:"include,optional"`
			Exclude       []string `hcl:"exclude,optional"`
		} `hcl:"files,block"`
		Concurrency int `hcl:"concurrency,optional"`
	}

	// Decode HCL
	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	// Convert to model
	cfg := &Config{
		Root: hclCfg.Root,
		Search: SearchArgs{
			Pattern:      hclCfg.Search.Pattern,
			Replacement:  hclCfg.Search.Replacement,
			FixedStrings: hclCfg.Search.FixedStrings,
			WholeWord:    hclCfg.Search.WholeWord,
			MatchCase:    hclCfg.Search.MatchCase,
		},
		Concurrency: hclCfg.Concurrency,
	}

	if hclCfg.Files != nil {
		cfg.Files = &FileArgs{
			IncludeHidden: hclCfg.Files.IncludeHidden,
			Include:       hclCfg.Files.Include,
			Exclude:       hclCfg.Files.Exclude,
		}
	}

	return cfg, nil
}
