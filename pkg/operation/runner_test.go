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
	"bytes"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// operationFunc adapts a function to Operation
type operationFunc func(ctx context.Context) error

func (f operationFunc) Execute(ctx context.Context) error { return f(ctx) }

func TestRunner(t *testing.T) {
	tests := []struct {
		name    string
		op      operationFunc
		wantErr error
	}{
		{
			name: "logs_with_run_id",
			op: func(ctx context.Context) error {
				zerolog.Ctx(ctx).Info().Msg("inside operation")
				return nil
			},
		},
		{
			name: "wraps_errors",
			op: func(ctx context.Context) error {
				zerolog.Ctx(ctx).Info().Msg("inside operation")
				return assert.AnError
			},
			wantErr: assert.AnError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := zerolog.New(buf)
			runner := NewRunner(&logger)
			runner.newID = func() string { return "run-1234" }

			err := runner.Run(context.Background(), tt.op)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Contains(t, err.Error(), "run-1234", "error should name the run")
			} else {
				require.NoError(t, err)
			}

			assert.Contains(t, buf.String(), `"run_id":"run-1234"`, "operation logs should carry the run id")
			assert.Contains(t, buf.String(), "inside operation")
		})
	}
}

func TestRunnerDefaultIDs(t *testing.T) {
	logger := zerolog.Nop()
	runner := NewRunner(&logger)

	id := runner.newID()
	_, err := uuid.Parse(id)
	require.NoError(t, err, "default run ids should be uuids")
	assert.NotEqual(t, id, runner.newID(), "run ids should be unique")
}
