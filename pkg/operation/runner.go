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

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🏃 OperationRunner executes operations one at a time
type OperationRunner struct {
	logger *zerolog.Logger
	newID  func() string
}

// 🏗️ NewRunner creates a new runner
func NewRunner(logger *zerolog.Logger) *OperationRunner {
	return &OperationRunner{
		logger: logger,
		newID:  uuid.NewString,
	}
}

// 🏃 Run executes op with a run id attached to the context logger
func (r *OperationRunner) Run(ctx context.Context, op Operation) error {
	runID := r.newID()
	logger := r.logger.With().Str("run_id", runID).Logger()
	ctx = logger.WithContext(ctx)

	start := time.Now()
	logger.Debug().Msg("starting operation")

	if err := op.Execute(ctx); err != nil {
		logger.Debug().Err(err).Dur("elapsed", time.Since(start)).Msg("operation failed")
		return errors.Errorf("executing operation %s: %w", runID, err)
	}

	logger.Debug().Dur("elapsed", time.Since(start)).Msg("operation complete")
	return nil
}
