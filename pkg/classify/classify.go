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

// Package classify assigns each scanned file to exactly one category.
//
// Rules are tried in the order given and the first one that matches wins.
// A file no rule matches lands in the default category, so classification
// never fails.
package classify

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/walteh/pyarchive/pkg/config"
	"github.com/walteh/pyarchive/pkg/scan"
)

// 🎯 Matcher reports whether a file belongs to a rule
type Matcher func(d scan.FileDescriptor) bool

// 🏷️ Rule pairs a category with a matcher
type Rule struct {
	Category string
	Match    Matcher
	Desc     string // shown in debug logs
}

// 📦 Result is the outcome of classifying one file
type Result struct {
	Descriptor *scan.FileDescriptor
	Category   string
	RuleIndex  int    // -1 when the default category was used
	MatchedBy  string // Desc of the winning rule, empty for the default
}

// IsDefault reports whether no rule matched
func (r Result) IsDefault() bool {
	return r.RuleIndex < 0
}

// 🔍 Classify returns the category of the first matching rule, or
// defaultCategory when none match.
func Classify(d *scan.FileDescriptor, rules []Rule, defaultCategory string) Result {
	if defaultCategory == "" {
		defaultCategory = config.DefaultCategory
	}

	for i, rule := range rules {
		if rule.Match == nil || rule.Category == "" {
			continue
		}
		if rule.Match(*d) {
			return Result{
				Descriptor: d,
				Category:   rule.Category,
				RuleIndex:  i,
				MatchedBy:  rule.Desc,
			}
		}
	}

	return Result{
		Descriptor: d,
		Category:   defaultCategory,
		RuleIndex:  -1,
	}
}

// Keyword matches when kw appears in the file stem, ignoring case
func Keyword(kw string) Matcher {
	kw = strings.ToLower(kw)
	return func(d scan.FileDescriptor) bool {
		return kw != "" && strings.Contains(strings.ToLower(d.Stem()), kw)
	}
}

// Extension matches the file extension, ignoring case
func Extension(ext string) Matcher {
	ext = strings.ToLower(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return func(d scan.FileDescriptor) bool {
		return d.Ext() == ext
	}
}

// Glob matches a doublestar pattern against the base name
func Glob(pattern string) Matcher {
	return func(d scan.FileDescriptor) bool {
		ok, err := doublestar.Match(pattern, d.Name)
		return err == nil && ok
	}
}

// Any matches when at least one of ms does
func Any(ms ...Matcher) Matcher {
	return func(d scan.FileDescriptor) bool {
		for _, m := range ms {
			if m(d) {
				return true
			}
		}
		return false
	}
}

// 🏭 FromConfig compiles configured rules, keeping their order
func FromConfig(args []config.RuleArgs) []Rule {
	rules := make([]Rule, 0, len(args))
	for _, a := range args {
		var ms []Matcher
		var desc []string
		for _, kw := range a.Keywords {
			ms = append(ms, Keyword(kw))
			desc = append(desc, fmt.Sprintf("keyword %q", kw))
		}
		for _, ext := range a.Extensions {
			ms = append(ms, Extension(ext))
			desc = append(desc, fmt.Sprintf("extension %q", ext))
		}
		for _, g := range a.Globs {
			ms = append(ms, Glob(g))
			desc = append(desc, fmt.Sprintf("glob %q", g))
		}
		rules = append(rules, Rule{
			Category: a.Category,
			Match:    Any(ms...),
			Desc:     strings.Join(desc, " or "),
		})
	}
	return rules
}
