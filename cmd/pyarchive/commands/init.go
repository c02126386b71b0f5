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
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/pyarchive/cmd/pyarchive/opts"
	"github.com/walteh/pyarchive/pkg/config"
	"gitlab.com/tozd/go/errors"
)

// NewInitCmd creates the init command
func NewInitCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter configuration file",
		Long: `Init writes the built-in defaults (keyword rules, Utility default category,
skip duplicate policy) to the --config path. The format follows the file
extension: .yaml, .yml, .hcl, .json or .toml. Path flags are written too.
An existing file is never overwritten.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := zerolog.Ctx(cmd.Context()).With().Str("command", "init").Logger().WithContext(cmd.Context())

			cfg := config.Default()
			opts.Apply(cfg)

			if err := config.Write(ctx, opts.ConfigFile, cfg); err != nil {
				if errors.Is(err, os.ErrExist) {
					return errors.Errorf("refusing to overwrite %s: %w", opts.ConfigFile, err)
				}
				return errors.Errorf("writing config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✅ %s\n", color.New(color.FgGreen).Sprintf("wrote %s", opts.ConfigFile))
			return nil
		},
	}

	return cmd
}
