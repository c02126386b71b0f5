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

	"github.com/dustin/go-humanize"
	"github.com/walteh/pyarchive/pkg/log"
	"github.com/walteh/pyarchive/pkg/placement"
	"github.com/walteh/pyarchive/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// planHeaders are the columns of the plan table
var planHeaders = []string{"File", "Size", "Modified", "Category", "Action", "Destination"}

// 📋 NewPlanOperation creates an operation that prints where each file would go
func NewPlanOperation(opts Options) (Operation, error) {
	opts.DryRun = true
	base, err := NewBaseOperation(opts)
	if err != nil {
		return nil, err
	}
	return &planOperation{BaseOperation: base}, nil
}

// 📋 planOperation classifies and resolves without touching the archive
type planOperation struct {
	BaseOperation
}

// 🏃 Execute prints the plan table
func (op *planOperation) Execute(ctx context.Context) error {
	console := log.FromContext(ctx)
	console.Header("plan for " + op.Config.SourcePath)

	files, err := op.scan(ctx)
	if err != nil {
		return errors.Errorf("scanning source: %w", err)
	}
	if len(files) == 0 {
		console.Warning("No Python files found!")
		return nil
	}

	rows := make([][]string, 0, len(files))
	for i := range files {
		d := &files[i]
		info := status.FileInfo{Name: d.Name, Size: d.SizeBytes}

		result, decision, err := op.resolve(ctx, d)
		info.Category = result.Category

		action, dest := decision.Action.String(), decision.FinalPath
		switch {
		case err != nil:
			info.Status = status.StatusFailed
			info.Error = err
			action, dest = "unavailable", err.Error()
		case decision.Action == placement.ActionSkipDuplicate:
			info.Status = status.StatusSkipped
			info.Destination = dest
		default:
			info.Status = status.StatusPlanned
			info.Destination = dest
		}
		op.Status.TrackFile(ctx, info)

		rows = append(rows, []string{
			d.Name,
			humanize.Bytes(uint64(d.SizeBytes)),
			humanize.RelTime(d.ModifiedAt, op.Now(), "ago", "from now"),
			result.Category,
			action,
			dest,
		})
	}

	if err := console.Table(planHeaders, rows); err != nil {
		return errors.Errorf("printing plan: %w", err)
	}

	summary := op.Status.Summary(ctx)
	console.Infof("%d to archive, %d already archived, %d unavailable", summary.Planned, summary.Skipped, summary.Failed)
	return nil
}
