package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/walteh/filepane/cmd/filepane/opts"
	"github.com/walteh/filepane/pkg/command"
	"github.com/walteh/filepane/pkg/copier"
	"github.com/walteh/filepane/pkg/status"
	"github.com/walteh/filepane/pkg/tab"
	"gitlab.com/tozd/go/errors"
)

// runOne pushes a single command through the gate on the configured runner
func runOne(cmd *cobra.Command, o *opts.RootOpts, c command.Command, yes bool) error {
	p := NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
	return o.Runner.Run(cmd.Context(), func(ctx context.Context) error {
		return Gated(ctx, o.Engine, p, c, "", yes)
	})
}

// NewCopyCmd creates a new copy command
func NewCopyCmd(o *opts.RootOpts) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "copy SOURCE DEST_DIR",
		Short: "Copy a file or directory into a directory",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOne(cmd, o, command.CopyFile{Source: args[0], Destination: args[1]}, yes)
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompts")
	return cmd
}

// NewMoveCmd creates a new move command
func NewMoveCmd(o *opts.RootOpts) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "move SOURCE DEST_DIR",
		Short: "Move a file or directory into a directory",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOne(cmd, o, command.MoveFile{Source: args[0], Destination: args[1]}, yes)
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompts")
	return cmd
}

// NewDeleteCmd creates a new delete command
func NewDeleteCmd(o *opts.RootOpts) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete PATH",
		Short: "Move a file or directory to the trash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOne(cmd, o, command.DeleteFile{Path: args[0]}, yes)
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompts")
	return cmd
}

// NewMkdirCmd creates a new mkdir command
func NewMkdirCmd(o *opts.RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "mkdir PATH",
		Short: "Create a directory and any missing parents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOne(cmd, o, command.CreateDirectory{Path: args[0]}, false)
		},
	}
}

// NewRenameCmd creates a new rename command
func NewRenameCmd(o *opts.RootOpts) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "rename OLD NEW",
		Short: "Rename a file or directory",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOne(cmd, o, command.RenameFile{OldPath: args[0], NewPath: args[1]}, yes)
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompts")
	return cmd
}

// NewChecksumCmd creates a new checksum command
func NewChecksumCmd(o *opts.RootOpts) *cobra.Command {
	var algorithm string
	cmd := &cobra.Command{
		Use:   "checksum PATH",
		Short: "Print the digest of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if algorithm == "" {
				return o.Engine.Checksum(cmd.Context(), args[0])
			}
			alg, err := command.ParseChecksumAlgorithm(algorithm)
			if err != nil {
				return err
			}
			return runOne(cmd, o, command.CalculateChecksum{Path: args[0], Algorithm: alg}, false)
		},
	}
	cmd.Flags().StringVarP(&algorithm, "algorithm", "a", "", "md5, sha1, sha256 or crc32 (default from config)")
	return cmd
}

// NewBatchCmd creates a new batch command
func NewBatchCmd(o *opts.RootOpts) *cobra.Command {
	var (
		to   string
		move bool
	)
	cmd := &cobra.Command{
		Use:   "batch --to DIR PATH...",
		Short: "Copy or move several paths into one directory",
		Long: `Batch selects every PATH in the left panel and copies (or, with --move,
moves) the selection into the directory given by --to. One failing item does
not stop the rest; a summary is printed at the end.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if to == "" {
				return errors.New("--to is required")
			}
			dest, err := filepath.Abs(to)
			if err != nil {
				return errors.Errorf("resolving destination: %w", err)
			}
			base := tab.DefaultPath()

			err = o.Engine.Update(func(s *tab.Set) error {
				t := s.Active()
				t.SetPath(command.PanelLeft, base)
				t.SetPath(command.PanelRight, dest)
				for _, arg := range args {
					abs, err := filepath.Abs(arg)
					if err != nil {
						return errors.Errorf("resolving %s: %w", arg, err)
					}
					rel, err := filepath.Rel(base, abs)
					if err != nil {
						return errors.Errorf("resolving %s: %w", arg, err)
					}
					t.Select(command.PanelLeft, rel)
				}
				return nil
			})
			if err != nil {
				return err
			}

			var sum copier.Summary
			err = o.Runner.Run(cmd.Context(), func(ctx context.Context) error {
				if move {
					sum = o.Engine.BatchMove(ctx, command.PanelLeft)
				} else {
					sum = o.Engine.BatchCopy(ctx, command.PanelLeft)
				}
				return nil
			})
			if err != nil {
				return err
			}

			printSummary(cmd.OutOrStdout(), sum)
			if sum.Failed > 0 {
				return errors.Errorf("%d of %d items failed", sum.Failed, len(sum.Items))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&to, "to", "t", "", "destination directory")
	cmd.Flags().BoolVarP(&move, "move", "m", false, "move instead of copy")
	return cmd
}

func printSummary(w io.Writer, sum copier.Summary) {
	for _, item := range sum.Items {
		kind, result := "file", status.FormatBytes(item.Bytes)
		if info, err := os.Lstat(item.Destination); err == nil && info.IsDir() {
			kind = "directory"
		}
		if item.Err != nil {
			kind, result = "error", item.Err.Error()
		}
		fmt.Fprintln(w, status.FormatFileOperation(filepath.Base(item.Source), kind, result, item.Err != nil, false))
	}
	fmt.Fprintln(w, pterm.Info.WithPrefix(pterm.Prefix{Text: "📊"}).Sprintf("%d ok, %d failed, %s", sum.Successful, sum.Failed, status.FormatBytes(sum.Bytes)))
}
