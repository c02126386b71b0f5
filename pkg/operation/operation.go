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

package operation

import (
	"context"
	"time"

	"github.com/walteh/pyarchive/pkg/classify"
	"github.com/walteh/pyarchive/pkg/config"
	"github.com/walteh/pyarchive/pkg/log"
	"github.com/walteh/pyarchive/pkg/placement"
	"github.com/walteh/pyarchive/pkg/scan"
	"github.com/walteh/pyarchive/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 🎯 Operation is a unit of work the Runner executes. Console output goes
// to the log.Logger carried in ctx.
type Operation interface {
	Execute(ctx context.Context) error
}

// 🔧 Options contains everything an operation needs
type Options struct {
	// Config is the validated pyarchive configuration
	Config *config.Config
	// Files performs all disk access
	Files status.FileManager
	// Status records per-file outcomes
	Status status.StatusReporter
	// Now stamps notes; defaults to time.Now
	Now func() time.Time
	// DryRun classifies and resolves without writing anything
	DryRun bool
}

// 🧱 BaseOperation holds the shared dependencies of every operation
type BaseOperation struct {
	Options

	rules  []classify.Rule
	policy placement.Policy
}

// 🏭 NewBaseOperation checks opts and prepares the rule table
func NewBaseOperation(opts Options) (BaseOperation, error) {
	if opts.Config == nil {
		return BaseOperation{}, errors.Errorf("config is required")
	}
	if opts.Files == nil {
		return BaseOperation{}, errors.Errorf("file manager is required")
	}
	if opts.Status == nil {
		return BaseOperation{}, errors.Errorf("status reporter is required")
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	policy, err := placement.ParsePolicy(opts.Config.DuplicatePolicy)
	if err != nil {
		return BaseOperation{}, errors.Errorf("parsing duplicate policy: %w", err)
	}

	return BaseOperation{
		Options: opts,
		rules:   classify.FromConfig(opts.Config.Rules),
		policy:  policy,
	}, nil
}

// 🔍 scan lists the candidate files in the source folder
func (op *BaseOperation) scan(ctx context.Context) ([]scan.FileDescriptor, error) {
	files, err := scan.Scan(ctx, op.Config.SourcePath, scan.Options{
		Extensions:     op.Config.Extensions,
		IgnorePatterns: op.Config.IgnorePatterns,
	})
	if err != nil {
		return nil, placement.Unavailable(op.Config.SourcePath, err)
	}
	return files, nil
}

// 🎯 resolve classifies d and decides where it goes
func (op *BaseOperation) resolve(ctx context.Context, d *scan.FileDescriptor) (classify.Result, placement.Decision, error) {
	result := classify.Classify(d, op.rules, op.Config.DefaultCategory)

	exists := func(path string) (bool, error) {
		return op.Files.FileExists(ctx, path)
	}

	decision, err := placement.ResolveWithPolicy(op.Config.ArchivePath, result.Category, d.Name, exists, op.policy)
	if err != nil {
		return result, placement.Decision{}, err
	}
	return result, decision, nil
}

// 📝 report tracks info and prints its console line
func (op *BaseOperation) report(ctx context.Context, info status.FileInfo) {
	console := log.FromContext(ctx)
	op.Status.TrackFile(ctx, info)

	line := log.FileOperation{
		Name:        info.Name,
		Category:    info.Category,
		Destination: info.Destination,
	}
	switch info.Status {
	case status.StatusPlaced:
		line.Status = "ARCHIVED"
		line.IsPlaced = true
	case status.StatusSkipped:
		line.Status = "DUPLICATE"
		line.IsSkipped = true
	case status.StatusPlanned:
		line.Status = "PLANNED"
		line.IsPlanned = true
	case status.StatusFailed:
		line.Status = "FAILED"
		line.IsFailed = true
	default:
		line.Status = "UNKNOWN"
	}
	console.LogFileOperation(ctx, line)

	if info.Error != nil {
		console.Errorf("%s: %v", info.Name, info.Error)
	}
}
