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

package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/pyarchive/cmd/pyarchive/opts"
	"github.com/walteh/pyarchive/pkg/operation"
	"github.com/walteh/pyarchive/pkg/placement"
	"gitlab.com/tozd/go/errors"
)

// NewRunCmd creates the run command
func NewRunCmd(opts *opts.RootOpts) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Archive Python files from the source folder",
		Long: `Run archives every Python file in the source folder.
It will:
1. Create the archive root and one note folder per category
2. Classify each file (first matching rule wins, default category otherwise)
3. Copy it to ARCHIVE/<category>/<file>, skipping names already archived
4. Write a Markdown note with the embedded source into the vault

A file that cannot be read or written is reported and the run moves on.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := zerolog.Ctx(cmd.Context()).With().Str("command", "run").Logger().WithContext(cmd.Context())

			ctx, err := opts.Load(ctx)
			if err != nil {
				return err
			}

			op, err := operation.NewArchiveOperation(opts.OperationOptions(dryRun))
			if err != nil {
				return errors.Errorf("creating archive operation: %w", err)
			}

			if err := operation.NewRunner(zerolog.Ctx(ctx)).Run(ctx, op); err != nil {
				return errors.Errorf("archiving files: %w", err)
			}

			summary := opts.Status.Summary(ctx)
			if summary.Failed > 0 {
				return errors.Errorf("%d of %d files could not be archived: %w", summary.Failed, summary.Total(), placement.ErrPathUnavailable)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "classify and resolve without writing anything")

	return cmd
}
