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

package classify

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/walteh/pyarchive/pkg/config"
	"github.com/walteh/pyarchive/pkg/scan"
)

func file(name string) *scan.FileDescriptor {
	return &scan.FileDescriptor{Name: name, Path: "/desktop/" + name}
}

func TestClassify(t *testing.T) {
	dataRule := []Rule{{Category: "Data-Processing", Match: Keyword("data"), Desc: "keyword data"}}

	tests := []struct {
		name         string
		file         string
		rules        []Rule
		defaultCat   string
		wantCategory string
		wantDefault  bool
	}{
		{
			name:         "keyword_match",
			file:         "data_cleaner.py",
			rules:        dataRule,
			defaultCat:   "Utility",
			wantCategory: "Data-Processing",
		},
		{
			name:         "falls_back_to_default",
			file:         "helper.py",
			rules:        dataRule,
			defaultCat:   "Utility",
			wantCategory: "Utility",
			wantDefault:  true,
		},
		{
			name:         "keyword_ignores_case",
			file:         "BigDATAjob.py",
			rules:        dataRule,
			defaultCat:   "Utility",
			wantCategory: "Data-Processing",
		},
		{
			name:         "keyword_does_not_match_extension",
			file:         "helper.data",
			rules:        dataRule,
			defaultCat:   "Utility",
			wantCategory: "Utility",
			wantDefault:  true,
		},
		{
			name:         "empty_rules",
			file:         "anything.py",
			defaultCat:   "Misc",
			wantCategory: "Misc",
			wantDefault:  true,
		},
		{
			name:         "empty_default_still_total",
			file:         "anything.py",
			wantCategory: config.DefaultCategory,
			wantDefault:  true,
		},
		{
			name: "nil_matcher_skipped",
			file: "data.py",
			rules: []Rule{
				{Category: "Broken"},
				{Category: "Data-Processing", Match: Keyword("data")},
			},
			defaultCat:   "Utility",
			wantCategory: "Data-Processing",
		},
		{
			name:         "extension_rule",
			file:         "deploy.SH",
			rules:        []Rule{{Category: "Shell", Match: Extension("sh")}},
			defaultCat:   "Utility",
			wantCategory: "Shell",
		},
		{
			name:         "glob_rule",
			file:         "test_parser.py",
			rules:        []Rule{{Category: "Tests", Match: Glob("test_*.py")}},
			defaultCat:   "Utility",
			wantCategory: "Tests",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := file(tt.file)
			got := Classify(d, tt.rules, tt.defaultCat)

			assert.Equal(t, tt.wantCategory, got.Category, "category should match")
			assert.Equal(t, tt.wantDefault, got.IsDefault(), "default flag should match")
			assert.Same(t, d, got.Descriptor, "descriptor should be passed through by reference")
		})
	}
}

func TestClassifyFirstMatchWins(t *testing.T) {
	for _, size := range []int{2, 5, 50} {
		t.Run(fmt.Sprintf("rules_%d", size), func(t *testing.T) {
			rules := make([]Rule, 0, size)
			for i := 0; i < size; i++ {
				rules = append(rules, Rule{Category: fmt.Sprintf("Cat-%d", i), Match: Keyword("merge")})
			}

			got := Classify(file("merge_json.py"), rules, "Utility")
			assert.Equal(t, "Cat-0", got.Category, "first rule should win")
			assert.Equal(t, 0, got.RuleIndex, "rule index should point at the first rule")
		})
	}

	// a narrow rule placed before a broad one overrides it
	rules := []Rule{
		{Category: "Text-Processing", Match: Keyword("json_text")},
		{Category: "Data-Processing", Match: Keyword("json")},
	}
	assert.Equal(t, "Text-Processing", Classify(file("json_text_fix.py"), rules, "Utility").Category, "narrow rule should win")
	assert.Equal(t, "Data-Processing", Classify(file("json_fix.py"), rules, "Utility").Category, "broad rule should catch the rest")
}

func TestClassifyDeterministic(t *testing.T) {
	rules := FromConfig(config.DefaultRules())
	names := []string{"jsonc_fix.py", "packagelock.py", "checkword.py", "x.py", "850dic_tool.py", "claude_import.py"}

	for _, name := range names {
		first := Classify(file(name), rules, "Utility")
		second := Classify(file(name), rules, "Utility")
		assert.Equal(t, first.Category, second.Category, "%s should classify the same way twice", name)
		assert.Equal(t, first.RuleIndex, second.RuleIndex, "%s should hit the same rule twice", name)
		assert.NotEmpty(t, first.Category, "%s should always get a category", name)
	}
}

func TestDefaultRuleTable(t *testing.T) {
	rules := FromConfig(config.DefaultRules())

	tests := []struct {
		file string
		want string
	}{
		{"jsonc_strip.py", "Data-Processing"},
		{"PackageLock_diff.py", "Data-Processing"},
		{"checkword.py", "Text-Processing"},
		{"edjc.py", "Text-Processing"},
		{"850dic_build.py", "Data-Processing"},
		{"merge_pdf.py", "Utility"},
		{"digit_sum.py", "Utility"},
		{"rpatxt.py", "Text-Processing"},
		{"import_all.py", "Utility"},
		{"claude_chat.py", "Utility"},
		{"random_helper.py", "Utility"},
		// jsonc comes before import in the table
		{"import_jsonc.py", "Data-Processing"},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(file(tt.file), rules, "Utility").Category, "category should match")
		})
	}
}

func TestFromConfig(t *testing.T) {
	rules := FromConfig([]config.RuleArgs{
		{Category: "Mixed", Keywords: []string{"etl"}, Extensions: []string{".ipynb"}, Globs: []string{"load_*"}},
	})

	assert.Len(t, rules, 1, "should compile one rule")
	assert.Equal(t, `keyword "etl" or extension ".ipynb" or glob "load_*"`, rules[0].Desc, "description should list matchers")

	for _, name := range []string{"my_etl.py", "scratch.ipynb", "load_users.py"} {
		assert.True(t, rules[0].Match(*file(name)), "%s should match", name)
	}
	assert.False(t, rules[0].Match(*file("other.py")), "other.py should not match")
}
