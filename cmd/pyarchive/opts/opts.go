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

package opts

import (
	"context"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/walteh/pyarchive/pkg/config"
	"github.com/walteh/pyarchive/pkg/log"
	"github.com/walteh/pyarchive/pkg/operation"
	"github.com/walteh/pyarchive/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	// Flags
	ConfigFile string
	Debug      bool
	Source     string
	Archive    string
	Vault      string

	// Set before a command runs
	Stdout io.Writer
	Logger *zerolog.Logger

	// Set by Load
	Config  *config.Config
	Status  *status.Manager
	Console *log.Logger
}

// Apply copies the path flags over cfg
func (o *RootOpts) Apply(cfg *config.Config) {
	if o.Source != "" {
		cfg.SourcePath = o.Source
	}
	if o.Archive != "" {
		cfg.ArchivePath = o.Archive
	}
	if o.Vault != "" {
		cfg.VaultPath = o.Vault
	}
}

// 🎯 Load reads the config file, applies flag overrides and validates the result.
// Configuration problems are reported here, before any file is touched. The
// returned context carries the console logger.
func (o *RootOpts) Load(ctx context.Context) (context.Context, error) {
	cfg, err := config.Read(ctx, o.ConfigFile)
	if err != nil {
		return ctx, errors.Errorf("loading config: %w", err)
	}

	o.Apply(cfg)

	if err := cfg.Validate(); err != nil {
		return ctx, errors.Errorf("validating config: %w", err)
	}

	logger := o.logger()
	o.Config = cfg
	o.Status = status.New(logger)
	o.Console = log.New(o.stdout(), o.mirror())

	logger.Debug().Str("config", cfg.String()).Msg("configuration loaded")
	return log.NewContext(ctx, o.Console), nil
}

// OperationOptions wires the loaded state into operation.Options
func (o *RootOpts) OperationOptions(dryRun bool) operation.Options {
	return operation.Options{
		Config: o.Config,
		Files:  o.Status,
		Status: o.Status,
		DryRun: dryRun,
	}
}

func (o *RootOpts) logger() *zerolog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	nop := zerolog.Nop()
	return &nop
}

func (o *RootOpts) stdout() io.Writer {
	if o.Stdout != nil {
		return o.Stdout
	}
	return os.Stdout
}

// mirror is the zerolog sink for console lines; only debug runs get both
func (o *RootOpts) mirror() zerolog.Logger {
	if o.Debug {
		return *o.logger()
	}
	return zerolog.Nop()
}
