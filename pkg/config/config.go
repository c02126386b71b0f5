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
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gitlab.com/tozd/go/errors"
)

const (
	DefaultCategory     = "Utility"
	DefaultResourcesDir = "300-Resources/Python-Tools"

	PolicySkip   = "skip"
	PolicySuffix = "suffix"
)

// ❌ ErrConfiguration is the base of every validation failure
var ErrConfiguration = errors.Base("configuration error")

// 🚫 ValidationError names the offending field
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrConfiguration.Error(), e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrConfiguration
}

func invalid(field, reason string) error {
	return errors.WithStack(&ValidationError{Field: field, Reason: reason})
}

// 🏷️ RuleArgs maps file name matchers to a category
type RuleArgs struct {
	Category   string   `json:"category" yaml:"category" toml:"category"`
	Keywords   []string `json:"keywords,omitempty" yaml:"keywords,omitempty" toml:"keywords,omitempty"`       // case-insensitive substrings of the stem
	Extensions []string `json:"extensions,omitempty" yaml:"extensions,omitempty" toml:"extensions,omitempty"` // e.g. ".py"
	Globs      []string `json:"globs,omitempty" yaml:"globs,omitempty" toml:"globs,omitempty"`                // doublestar patterns on the base name
}

// 📚 Config represents the complete configuration
type Config struct {
	SourcePath      string     `json:"source_path" yaml:"source_path" toml:"source_path"`
	ArchivePath     string     `json:"archive_path" yaml:"archive_path" toml:"archive_path"`
	VaultPath       string     `json:"vault_path" yaml:"vault_path" toml:"vault_path"`
	ResourcesDir    string     `json:"resources_dir,omitempty" yaml:"resources_dir,omitempty" toml:"resources_dir,omitempty"`
	Extensions      []string   `json:"extensions,omitempty" yaml:"extensions,omitempty" toml:"extensions,omitempty"`
	IgnorePatterns  []string   `json:"ignore_patterns,omitempty" yaml:"ignore_patterns,omitempty" toml:"ignore_patterns,omitempty"`
	DefaultCategory string     `json:"default_category,omitempty" yaml:"default_category,omitempty" toml:"default_category,omitempty"`
	DuplicatePolicy string     `json:"duplicate_policy,omitempty" yaml:"duplicate_policy,omitempty" toml:"duplicate_policy,omitempty"`
	RemoveSource    bool       `json:"remove_source,omitempty" yaml:"remove_source,omitempty" toml:"remove_source,omitempty"`
	Rules           []RuleArgs `json:"rules,omitempty" yaml:"rules,omitempty" toml:"rules,omitempty"`
}

// DefaultRules returns the built-in keyword table
func DefaultRules() []RuleArgs {
	kw := func(category, keyword string) RuleArgs {
		return RuleArgs{Category: category, Keywords: []string{keyword}}
	}
	return []RuleArgs{
		kw("Data-Processing", "jsonc"),
		kw("Data-Processing", "packagelock"),
		kw("Text-Processing", "checkword"),
		kw("Text-Processing", "edjc"),
		kw("Data-Processing", "850dic"),
		kw("Utility", "merge"),
		kw("Utility", "digit"),
		kw("Text-Processing", "rpatxt"),
		kw("Utility", "import"),
		kw("Utility", "claude"),
	}
}

// 🏭 Default returns a config with every optional field populated; paths stay empty
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills unset optional fields. A user supplied rule table must
// name its own default category, so the fallback is only applied alongside
// the built-in rules.
func (cfg *Config) ApplyDefaults() {
	if cfg.ResourcesDir == "" {
		cfg.ResourcesDir = DefaultResourcesDir
	}
	if len(cfg.Extensions) == 0 {
		cfg.Extensions = []string{".py"}
	}
	if cfg.DuplicatePolicy == "" {
		cfg.DuplicatePolicy = PolicySkip
	}
	if cfg.Rules == nil {
		cfg.Rules = DefaultRules()
		if cfg.DefaultCategory == "" {
			cfg.DefaultCategory = DefaultCategory
		}
	}
}

// 🔍 Validate checks if the configuration is valid and normalizes paths
func (cfg *Config) Validate() error {
	if cfg.SourcePath == "" {
		return invalid("source_path", "is required")
	}
	if cfg.ArchivePath == "" {
		return invalid("archive_path", "is required")
	}
	if cfg.VaultPath == "" {
		return invalid("vault_path", "is required")
	}
	if strings.TrimSpace(cfg.DefaultCategory) == "" {
		return invalid("default_category", "is required")
	}
	if err := checkCategoryName(cfg.DefaultCategory); err != nil {
		return invalid("default_category", err.Error())
	}

	switch cfg.DuplicatePolicy {
	case PolicySkip, PolicySuffix:
	default:
		return invalid("duplicate_policy", fmt.Sprintf("must be %q or %q, got %q", PolicySkip, PolicySuffix, cfg.DuplicatePolicy))
	}

	for i, r := range cfg.Rules {
		field := fmt.Sprintf("rules[%d]", i)
		if strings.TrimSpace(r.Category) == "" {
			return invalid(field+".category", "is required")
		}
		if err := checkCategoryName(r.Category); err != nil {
			return invalid(field+".category", err.Error())
		}
		if len(r.Keywords)+len(r.Extensions)+len(r.Globs) == 0 {
			return invalid(field, "needs at least one of keywords, extensions or globs")
		}
		for _, g := range r.Globs {
			if !doublestar.ValidatePattern(g) {
				return invalid(field+".globs", fmt.Sprintf("bad pattern %q", g))
			}
		}
	}

	for _, p := range cfg.IgnorePatterns {
		if !doublestar.ValidatePattern(p) {
			return invalid("ignore_patterns", fmt.Sprintf("bad pattern %q", p))
		}
	}

	// Clean up paths
	cfg.SourcePath = filepath.Clean(cfg.SourcePath)
	cfg.ArchivePath = filepath.Clean(cfg.ArchivePath)
	cfg.VaultPath = filepath.Clean(cfg.VaultPath)
	for i, ext := range cfg.Extensions {
		cfg.Extensions[i] = normalizeExtension(ext)
	}

	return nil
}

// categories become directory names
func checkCategoryName(name string) error {
	if name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return errors.Errorf("%q is not a valid folder name", name)
	}
	return nil
}

func normalizeExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// 📂 Categories returns every category the rules can produce, default first
func (cfg *Config) Categories() []string {
	seen := map[string]bool{}
	out := []string{}
	add := func(c string) {
		if c == "" || seen[c] {
			return
		}
		seen[c] = true
		out = append(out, c)
	}
	add(cfg.DefaultCategory)
	for _, r := range cfg.Rules {
		add(r.Category)
	}
	return out
}

// NoteRoot is the vault folder holding one note folder per category
func (cfg *Config) NoteRoot() string {
	return filepath.Join(cfg.VaultPath, filepath.FromSlash(cfg.ResourcesDir))
}

// NoteDir is the vault folder that holds notes for a category
func (cfg *Config) NoteDir(category string) string {
	return filepath.Join(cfg.NoteRoot(), category)
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	return fmt.Sprintf("%s -> %s (notes: %s)", cfg.SourcePath, cfg.ArchivePath, cfg.NoteRoot())
}
