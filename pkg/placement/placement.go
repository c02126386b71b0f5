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

// Package placement decides where a classified file goes in the archive and
// whether it goes there at all.
package placement

import (
	"fmt"
	"path/filepath"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 🎬 Action is what the caller should do with a file
type Action int

const (
	ActionPlace         Action = iota // write the file to FinalPath
	ActionSkipDuplicate               // FinalPath already exists, write nothing
)

// String returns a string representation of Action
func (a Action) String() string {
	switch a {
	case ActionPlace:
		return "place"
	case ActionSkipDuplicate:
		return "skip-duplicate"
	default:
		return "unknown"
	}
}

// 📍 Decision is the resolved destination for one file
type Decision struct {
	FinalPath string
	Action    Action
}

// ❌ ErrPathUnavailable marks paths that could not be read or written
var ErrPathUnavailable = errors.Base("path unavailable")

// 🚫 UnavailableError wraps the underlying I/O failure for a path
type UnavailableError struct {
	Path string
	Err  error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrPathUnavailable.Error(), e.Path, e.Err)
}

// Unwrap exposes both the sentinel and the cause to errors.Is
func (e *UnavailableError) Unwrap() []error {
	return []error{ErrPathUnavailable, e.Err}
}

// Unavailable wraps err for path
func Unavailable(path string, err error) error {
	return errors.WithStack(&UnavailableError{Path: path, Err: err})
}

// 🔍 ExistsFunc answers whether a path is already taken
type ExistsFunc func(path string) (bool, error)

// Policy decides what happens when the candidate path is taken
type Policy int

const (
	PolicySkip   Policy = iota // report SkipDuplicate
	PolicySuffix               // place under "<stem> - dupN<ext>"
)

// ParsePolicy maps a config value onto a Policy
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "", "skip":
		return PolicySkip, nil
	case "suffix":
		return PolicySuffix, nil
	default:
		return PolicySkip, errors.Errorf("unknown duplicate policy %q", s)
	}
}

// CandidatePath is root/category/name
func CandidatePath(root, category, name string) string {
	return filepath.Join(root, category, name)
}

// 🎯 Resolve decides placement with the skip policy: a free candidate is
// placed, a taken one is reported as a duplicate under the same path.
func Resolve(root, category, name string, exists ExistsFunc) (Decision, error) {
	return ResolveWithPolicy(root, category, name, exists, PolicySkip)
}

// ResolveWithPolicy is Resolve with a configurable duplicate policy. Under
// PolicySuffix the first free "<stem> - dupN<ext>" sibling is placed instead.
func ResolveWithPolicy(root, category, name string, exists ExistsFunc, policy Policy) (Decision, error) {
	candidate := CandidatePath(root, category, name)

	taken, err := exists(candidate)
	if err != nil {
		return Decision{}, Unavailable(candidate, err)
	}
	if !taken {
		return Decision{FinalPath: candidate, Action: ActionPlace}, nil
	}

	if policy != PolicySuffix {
		return Decision{FinalPath: candidate, Action: ActionSkipDuplicate}, nil
	}

	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for counter := 1; ; counter++ {
		alt := CandidatePath(root, category, fmt.Sprintf("%s - dup%d%s", stem, counter, ext))
		taken, err := exists(alt)
		if err != nil {
			return Decision{}, Unavailable(alt, err)
		}
		if !taken {
			return Decision{FinalPath: alt, Action: ActionPlace}, nil
		}
	}
}
