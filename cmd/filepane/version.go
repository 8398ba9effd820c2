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
	"fmt"
	"runtime"
	rdebug "runtime/debug"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
)

// 🏷️ build describes the running binary as recorded by the go toolchain
type build struct {
	Version  string
	Revision string
	Time     string
	Dirty    bool
	Go       string
	Platform string
}

func currentBuild() build {
	b := build{
		Version:  "dev",
		Go:       runtime.Version(),
		Platform: runtime.GOOS + "/" + runtime.GOARCH,
	}

	bi, ok := rdebug.ReadBuildInfo()
	if !ok {
		return b
	}
	if v := bi.Main.Version; v != "" && v != "(devel)" {
		b.Version = v
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			b.Revision = s.Value
			if len(b.Revision) > 12 {
				b.Revision = b.Revision[:12]
			}
		case "vcs.time":
			b.Time = s.Value
		case "vcs.modified":
			b.Dirty = s.Value == "true"
		}
	}
	return b
}

func (b build) table() pterm.TableData {
	rev := b.Revision
	if rev == "" {
		rev = "unknown"
	}
	if b.Dirty {
		rev += " (dirty)"
	}
	data := pterm.TableData{
		{"version", b.Version},
		{"revision", rev},
		{"go", b.Go},
		{"platform", b.Platform},
	}
	if b.Time != "" {
		data = append(data, []string{"built", b.Time})
	}
	return data
}

func newVersionCmd() *cobra.Command {
	var short bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		// version needs no config or engine
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			b := currentBuild()
			if short {
				fmt.Fprintln(cmd.OutOrStdout(), b.Version)
				return nil
			}
			rendered, err := pterm.DefaultTable.WithData(b.table()).Srender()
			if err != nil {
				return errors.Errorf("rendering version table: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "🚀 filepane")
			fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return nil
		},
	}
	cmd.Flags().BoolVar(&short, "short", false, "print only the version")
	return cmd
}
