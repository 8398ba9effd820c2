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

package main

import (
	"context"
	"os"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/filepane/cmd/filepane/commands"
	"github.com/walteh/filepane/cmd/filepane/opts"
	"github.com/walteh/filepane/pkg/log"
)

func main() {
	o := &opts.RootOpts{}

	rootCmd := &cobra.Command{
		Use:   "filepane",
		Short: "A dual panel file manager engine",
		Long: `filepane runs file operations the way a dual panel file manager does:
destructive commands need a two step confirmation, deletes go to the trash,
and every applied command can be undone from the interactive shell.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogging()
			ctx := zerolog.DefaultContextLogger.WithContext(cmd.Context())
			cmd.SetContext(ctx)
			if err := loadRootOpts(ctx, cmd.OutOrStdout(), o); err != nil {
				return err
			}
			cmd.SetContext(log.NewContext(ctx, o.Logger))
			return nil
		},
	}

	addRootFlags(rootCmd)

	rootCmd.AddCommand(
		commands.NewCopyCmd(o),
		commands.NewMoveCmd(o),
		commands.NewDeleteCmd(o),
		commands.NewMkdirCmd(o),
		commands.NewRenameCmd(o),
		commands.NewChecksumCmd(o),
		commands.NewBatchCmd(o),
		commands.NewShellCmd(o),
		newVersionCmd(),
	)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		pterm.Error.WithPrefix(pterm.Prefix{Text: "❌"}).Println(err)
		os.Exit(1)
	}
}
