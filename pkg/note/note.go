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

// Package note renders the vault note written next to each archived file.
package note

import (
	"bytes"
	"path/filepath"
	"strings"
	"text/template"
	"time"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/text/encoding/simplifiedchinese"
)

// Unreadable is embedded when the source is neither UTF-8 nor GBK
const Unreadable = "Unable to read file content, encoding issue detected."

// 📝 Note holds everything the template needs
type Note struct {
	Name        string // tool name, the file stem
	FileName    string // source base name
	Category    string
	ArchivePath string
	Size        int64
	Source      string
	Created     time.Time
}

var noteTemplate = template.Must(template.New("note").Funcs(template.FuncMap{
	"date":     func(t time.Time) string { return t.Format("2006-01-02") },
	"datetime": func(t time.Time) string { return t.Format("2006-01-02 15:04:05") },
	"bytes":    func(n int64) string { return humanize.Bytes(uint64(n)) },
}).Parse(`---
type: python-tool
name: {{.Name}}
created: {{date .Created}}
last_used: {{date .Created}}
archive_path: {{.ArchivePath}}
tags: #python #tool
---

# {{.Name}}

## File Information
- Archive Location: {{.ArchivePath}}
- Category: {{.Category}}
- Size: {{bytes .Size}}
- Creation Time: {{datetime .Created}}

## Usage
Run in terminal: ` + "`python {{.FileName}}`" + `

## Source Code
` + "```python" + `
{{.Source}}
` + "```" + `

## Description
[Add main functionality description here]

## Dependencies
- Python 3.x
- [Other dependencies]

## Update History
- {{date .Created}}: Initial import
`))

// 🎨 Render produces the Markdown document
func Render(n Note) ([]byte, error) {
	var buf bytes.Buffer
	if err := noteTemplate.Execute(&buf, n); err != nil {
		return nil, errors.Errorf("rendering note for %s: %w", n.Name, err)
	}
	return buf.Bytes(), nil
}

// FileName is the note name for a source file: its stem plus ".md"
func FileName(sourceName string) string {
	return strings.TrimSuffix(sourceName, filepath.Ext(sourceName)) + ".md"
}

// 🔤 DecodeSource returns data as text, trying UTF-8 first and GBK second.
// Anything else yields the Unreadable placeholder.
func DecodeSource(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}

	decoded, err := simplifiedchinese.GBK.NewDecoder().Bytes(data)
	if err != nil || bytes.ContainsRune(decoded, utf8.RuneError) {
		return Unreadable
	}
	return string(decoded)
}
