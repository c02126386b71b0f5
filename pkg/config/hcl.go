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

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

// HCL schema. Rules are labelled blocks:
//
//	rule "Data-Processing" {
//	  keywords = ["jsonc"]
//	}
type hclRule struct {
	Category   string   `hcl:"category,label"`
	Keywords   []string `hcl:"keywords,optional"`
	Extensions []string `hcl:"extensions,optional"`
	Globs      []string `hcl:"globs,optional"`
}

type hclConfig struct {
	SourcePath      string    `hcl:"source_path,optional"`
	ArchivePath     string    `hcl:"archive_path,optional"`
	VaultPath       string    `hcl:"vault_path,optional"`
	ResourcesDir    string    `hcl:"resources_dir,optional"`
	Extensions      []string  `hcl:"extensions,optional"`
	IgnorePatterns  []string  `hcl:"ignore_patterns,optional"`
	DefaultCategory string    `hcl:"default_category,optional"`
	DuplicatePolicy string    `hcl:"duplicate_policy,optional"`
	RemoveSource    bool      `hcl:"remove_source,optional"`
	Rules           []hclRule `hcl:"rule,block"`
}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return hasExt(filename, ".hcl")
}

// 📝 Parse parses the config from HCL
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "config.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	cfg := &Config{
		SourcePath:      hclCfg.SourcePath,
		ArchivePath:     hclCfg.ArchivePath,
		VaultPath:       hclCfg.VaultPath,
		ResourcesDir:    hclCfg.ResourcesDir,
		Extensions:      hclCfg.Extensions,
		IgnorePatterns:  hclCfg.IgnorePatterns,
		DefaultCategory: hclCfg.DefaultCategory,
		DuplicatePolicy: hclCfg.DuplicatePolicy,
		RemoveSource:    hclCfg.RemoveSource,
	}

	// no rule blocks means the built-in table
	if len(hclCfg.Rules) > 0 {
		for _, r := range hclCfg.Rules {
			cfg.Rules = append(cfg.Rules, RuleArgs{
				Category:   r.Category,
				Keywords:   r.Keywords,
				Extensions: r.Extensions,
				Globs:      r.Globs,
			})
		}
	}

	return cfg, nil
}

// 💾 Encode writes the config as HCL
func (p *HCLParser) Encode(ctx context.Context, cfg *Config) ([]byte, error) {
	hclCfg := hclConfig{
		SourcePath:      cfg.SourcePath,
		ArchivePath:     cfg.ArchivePath,
		VaultPath:       cfg.VaultPath,
		ResourcesDir:    cfg.ResourcesDir,
		Extensions:      orEmpty(cfg.Extensions),
		IgnorePatterns:  orEmpty(cfg.IgnorePatterns),
		DefaultCategory: cfg.DefaultCategory,
		DuplicatePolicy: cfg.DuplicatePolicy,
		RemoveSource:    cfg.RemoveSource,
	}
	for _, r := range cfg.Rules {
		hclCfg.Rules = append(hclCfg.Rules, hclRule{
			Category:   r.Category,
			Keywords:   orEmpty(r.Keywords),
			Extensions: orEmpty(r.Extensions),
			Globs:      orEmpty(r.Globs),
		})
	}

	f := hclwrite.NewEmptyFile()
	gohcl.EncodeIntoBody(&hclCfg, f.Body())
	return f.Bytes(), nil
}

// nil slices encode as null, which does not decode back into []string
func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
