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

package log

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	// Disable color for testing
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name     string
		op       func(t *testing.T, logger *Logger)
		wantLogs []string
	}{
		{
			name: "log_file_operation",
			op: func(t *testing.T, logger *Logger) {
				logger.LogFileOperation(context.Background(), FileOperation{
					Name:     "data_cleaner.py",
					Category: "Data-Processing",
					Status:   "ARCHIVED",
					IsPlaced: true,
				})
			},
			wantLogs: []string{
				"✓ data_cleaner.py                     Data-Processing    ARCHIVED",
			},
		},
		{
			name: "log_run",
			op: func(t *testing.T, logger *Logger) {
				logger.StartRun(context.Background(), RunOperation{
					Source:  "/desktop",
					Archive: "/archive",
					Vault:   "/vault",
				})
				logger.EndRun(context.Background())
			},
			wantLogs: []string{
				"[archiving /desktop]",
				"◆ /archive • /vault",
			},
		},
		{
			name: "log_dry_run",
			op: func(t *testing.T, logger *Logger) {
				logger.StartRun(context.Background(), RunOperation{
					Source:  "/desktop",
					Archive: "/archive",
					Vault:   "/vault",
					DryRun:  true,
				})
			},
			wantLogs: []string{
				"[planning /desktop]",
				"◆ /archive • /vault",
			},
		},
		{
			name: "log_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Info("info message")
				logger.Warning("warning message")
				logger.Error("error message")
				logger.Success("success message")
			},
			wantLogs: []string{
				"ℹ️  info message",
				"⚠️  warning message",
				"❌ error message",
				"✅ success message",
			},
		},
		{
			name: "log_formatted_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Infof("info %s", "test")
				logger.Warningf("warning %s", "test")
				logger.Errorf("error %s", "test")
				logger.Successf("success %s", "test")
			},
			wantLogs: []string{
				"ℹ️  info test",
				"⚠️  warning test",
				"❌ error test",
				"✅ success test",
			},
		},
		{
			name: "log_header",
			op: func(t *testing.T, logger *Logger) {
				logger.Header("archiving python tools")
			},
			wantLogs: []string{
				"pyarchive • archiving python tools",
			},
		},
		{
			name: "log_newline",
			op: func(t *testing.T, logger *Logger) {
				logger.Info("first")
				logger.LogNewline()
				logger.Info("second")
			},
			wantLogs: []string{
				"ℹ️  first",
				"",
				"ℹ️  second",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := New(buf, zerolog.New(zerolog.NewTestWriter(t)))

			tt.op(t, logger)

			output := strings.TrimSpace(buf.String())
			lines := strings.Split(output, "\n")

			require.Equal(t, len(tt.wantLogs), len(lines), "number of log lines should match")
			for i, want := range tt.wantLogs {
				assert.Equal(t, want, strings.TrimSpace(lines[i]), "log line %d should match", i)
			}
		})
	}
}

func TestLoggerContext(t *testing.T) {
	logger := New(io.Discard, zerolog.Nop())

	ctx := NewContext(context.Background(), logger)

	got := FromContext(ctx)
	assert.Same(t, logger, got, "logger from context should be the same instance")

	assert.Panics(t, func() {
		FromContext(context.Background())
	}, "FromContext should panic when logger is missing")
}

func TestFileOperationFormatting(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name string
		op   FileOperation
		want string
	}{
		{
			name: "placed_file",
			op:   FileOperation{Name: "helper.py", Category: "Utility", Status: "ARCHIVED", IsPlaced: true},
			want: "    ✓ helper.py                           Utility            ARCHIVED       ",
		},
		{
			name: "skipped_file",
			op:   FileOperation{Name: "helper.py", Category: "Utility", Status: "DUPLICATE", IsSkipped: true},
			want: "    • helper.py                           Utility            DUPLICATE      ",
		},
		{
			name: "failed_file",
			op:   FileOperation{Name: "helper.py", Category: "Utility", Status: "FAILED", IsFailed: true},
			want: "    ✗ helper.py                           Utility            FAILED         ",
		},
		{
			name: "planned_file",
			op:   FileOperation{Name: "helper.py", Category: "Utility", Status: "PLANNED", IsPlanned: true},
			want: "    → helper.py                           Utility            PLANNED        ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := New(buf, zerolog.Nop())

			logger.LogFileOperation(context.Background(), tt.op)

			assert.Equal(t, tt.want, strings.TrimSuffix(buf.String(), "\n"), "formatted output should match")
		})
	}
}

func TestTable(t *testing.T) {
	pterm.DisableStyling()
	defer pterm.EnableStyling()

	buf := &bytes.Buffer{}
	logger := New(buf, zerolog.Nop())

	err := logger.Table(
		[]string{"File", "Category"},
		[][]string{{"data_cleaner.py", "Data-Processing"}, {"helper.py", "Utility"}},
	)
	require.NoError(t, err, "Table should render")

	out := buf.String()
	for _, want := range []string{"File", "Category", "data_cleaner.py", "Data-Processing", "helper.py", "Utility"} {
		assert.Contains(t, out, want, "table should contain %q", want)
	}
}
