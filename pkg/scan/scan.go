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

// Package scan enumerates candidate files in a source directory.
package scan

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 📄 FileDescriptor describes one candidate source file
type FileDescriptor struct {
	Name       string    // Base name including extension
	Path       string    // Source location
	SizeBytes  int64     // Informational only
	ModifiedAt time.Time // Informational only
}

// Stem is the name without its extension
func (d FileDescriptor) Stem() string {
	return strings.TrimSuffix(d.Name, filepath.Ext(d.Name))
}

// Ext is the lowercased extension with its leading dot
func (d FileDescriptor) Ext() string {
	return strings.ToLower(filepath.Ext(d.Name))
}

// 🔧 Options narrows what Scan returns
type Options struct {
	Extensions     []string // Lowercase with leading dot; empty accepts every file
	IgnorePatterns []string // doublestar patterns matched against the base name
}

// 🔍 Scan lists regular files directly inside root, sorted by name.
// Symlinks to regular files are included. Subdirectories are not descended into.
func Scan(ctx context.Context, root string, opts Options) ([]FileDescriptor, error) {
	logger := zerolog.Ctx(ctx)

	fsys := os.DirFS(root)
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, errors.Errorf("reading source directory %s: %w", root, err)
	}

	var out []FileDescriptor
	for _, entry := range entries {
		name := entry.Name()
		if !entry.Type().IsRegular() && entry.Type()&fs.ModeSymlink == 0 {
			continue
		}
		if !hasExtension(name, opts.Extensions) {
			continue
		}
		if pattern, ok := ignored(name, opts.IgnorePatterns); ok {
			logger.Debug().Str("file", name).Str("pattern", pattern).Msg("file ignored by pattern")
			continue
		}

		// fs.Stat follows symlinks, so a linked script is described by its target
		info, err := fs.Stat(fsys, name)
		if err != nil {
			logger.Debug().Err(err).Str("file", name).Msg("skipping unreadable entry")
			continue
		}
		if !info.Mode().IsRegular() {
			continue
		}

		out = append(out, FileDescriptor{
			Name:       name,
			Path:       filepath.Join(root, name),
			SizeBytes:  info.Size(),
			ModifiedAt: info.ModTime(),
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	logger.Debug().Str("root", root).Int("files", len(out)).Msg("scanned source directory")
	return out, nil
}

func hasExtension(name string, exts []string) bool {
	if len(exts) == 0 {
		return true
	}
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}

func ignored(name string, patterns []string) (string, bool) {
	for _, pattern := range patterns {
		matched, err := doublestar.Match(pattern, name)
		if err != nil {
			continue
		}
		if matched {
			return pattern, true
		}
	}
	return "", false
}
