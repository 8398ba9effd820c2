package commands

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/filepane/cmd/filepane/opts"
	"github.com/walteh/filepane/pkg/command"
	"github.com/walteh/filepane/pkg/engine"
	"github.com/walteh/filepane/pkg/log"
	"github.com/walteh/filepane/pkg/metrics"
	"github.com/walteh/filepane/pkg/status"
	"github.com/walteh/filepane/pkg/tab"
	"gitlab.com/tozd/go/errors"
)

const shellHelp = `commands:
  ls [left|right]              list a panel
  cd left|right PATH           change a panel directory
  select left|right NAME...    toggle selection
  check left|right NAME...     tick checkboxes
  clear left|right             drop selection and checkboxes
  filter [GLOB]                set or clear the name filter
  cp SRC DIR | mv SRC DIR      copy or move one path
  rm PATH | rename OLD NEW     delete to trash or rename
  mkdir PATH | sum PATH        create a directory or print a checksum
  batch copy|move left|right   copy or move the selection to the other panel
  undo | redo | restore        history and trash
  trash | history | log        show trash items, confirmed operations, log lines
  alg NAME | speed MBPS        tab checksum algorithm and copy speed
  tabs | tab new [NAME] | tab dup | tab close N | tab N
  save [FILE] | load [FILE]    tab session
  quit`

// NewShellCmd creates a new interactive shell command
func NewShellCmd(o *opts.RootOpts) *cobra.Command {
	var metricsAddr string
	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Run an interactive dual panel session",
		Long: `Shell reads one command per line and keeps tabs, selections, the trash
and undo history alive for the whole session. Destructive commands ask for a
yes and then for the confirmation token.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if metricsAddr != "" {
				stop, err := serveMetrics(ctx, metricsAddr, o)
				if err != nil {
					return err
				}
				defer stop()
			}

			sh := NewShell(o.Engine, cmd.InOrStdin(), cmd.OutOrStdout())
			sh.SessionFile = o.Config.SessionFile
			return sh.Run(ctx)
		},
	}
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve prometheus metrics on this address")
	return cmd
}

func serveMetrics(ctx context.Context, addr string, o *opts.RootOpts) (func(), error) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler(o.Registry))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zerolog.Ctx(ctx).Error().Err(err).Str("addr", addr).Msg("metrics server stopped")
		}
	}()
	log.FromContext(ctx).Infof("Serving metrics on %s/metrics", addr)

	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			zerolog.Ctx(ctx).Debug().Err(err).Msg("shutting down metrics server")
		}
	}, nil
}

// 🐚 Shell is a line driven front end over one engine
type Shell struct {
	SessionFile string

	eng    *engine.Engine
	prompt *Prompter
	out    io.Writer
}

func NewShell(eng *engine.Engine, in io.Reader, out io.Writer) *Shell {
	return &Shell{
		eng:    eng,
		prompt: NewPrompter(in, out),
		out:    out,
	}
}

// Run reads commands until quit or end of input. Command errors are printed
// and the loop continues.
func (s *Shell) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		line, ok := s.prompt.Ask(s.promptText())
		if !ok {
			return nil
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "quit" || fields[0] == "exit" {
			return nil
		}
		if err := s.Exec(ctx, fields); err != nil {
			fmt.Fprintln(s.out, pterm.Error.WithPrefix(pterm.Prefix{Text: "❌"}).Sprint(err))
		}
	}
}

func (s *Shell) promptText() string {
	t := s.eng.Tabs().Active()
	return fmt.Sprintf("[%s] %s | %s > ", t.Name, t.LeftPath, t.RightPath)
}

// Exec runs one parsed shell line
func (s *Shell) Exec(ctx context.Context, fields []string) error {
	name, args := fields[0], fields[1:]

	switch name {
	case "help", "?":
		fmt.Fprintln(s.out, shellHelp)
		return nil

	case "ls":
		panel := command.PanelLeft
		if len(args) > 0 {
			p, err := parsePanel(args[0])
			if err != nil {
				return err
			}
			panel = p
		}
		return s.list(panel)

	case "cd":
		if len(args) != 2 {
			return errors.New("usage: cd left|right PATH")
		}
		panel, err := parsePanel(args[0])
		if err != nil {
			return err
		}
		return s.eng.Execute(ctx, command.ChangeDirectory{Panel: panel, NewPath: args[1]})

	case "select", "check":
		if len(args) < 2 {
			return errors.Errorf("usage: %s left|right NAME...", name)
		}
		panel, err := parsePanel(args[0])
		if err != nil {
			return err
		}
		return s.eng.Update(func(set *tab.Set) error {
			t := set.Active()
			for _, n := range args[1:] {
				if name == "check" {
					t.Check(panel, n)
				} else {
					t.ToggleSelect(panel, n)
				}
			}
			return nil
		})

	case "clear":
		if len(args) != 1 {
			return errors.New("usage: clear left|right")
		}
		panel, err := parsePanel(args[0])
		if err != nil {
			return err
		}
		return s.eng.Update(func(set *tab.Set) error {
			set.Active().ClearSelection(panel)
			return nil
		})

	case "filter":
		return s.eng.Update(func(set *tab.Set) error {
			set.Active().Filter = strings.Join(args, " ")
			return nil
		})

	case "cp", "mv":
		if len(args) != 2 {
			return errors.Errorf("usage: %s SRC DIR", name)
		}
		var c command.Command = command.CopyFile{Source: s.abs(args[0]), Destination: s.abs(args[1])}
		if name == "mv" {
			c = command.MoveFile{Source: s.abs(args[0]), Destination: s.abs(args[1])}
		}
		return Gated(ctx, s.eng, s.prompt, c, "", false)

	case "rm":
		if len(args) != 1 {
			return errors.New("usage: rm PATH")
		}
		p := s.abs(args[0])
		return Gated(ctx, s.eng, s.prompt, command.DeleteFile{Path: p}, fmt.Sprintf("Move %s to trash?", p), false)

	case "rename":
		if len(args) != 2 {
			return errors.New("usage: rename OLD NEW")
		}
		return Gated(ctx, s.eng, s.prompt, command.RenameFile{OldPath: s.abs(args[0]), NewPath: s.abs(args[1])}, "", false)

	case "mkdir":
		if len(args) != 1 {
			return errors.New("usage: mkdir PATH")
		}
		return s.eng.Execute(ctx, command.CreateDirectory{Path: s.abs(args[0])})

	case "sum":
		if len(args) != 1 {
			return errors.New("usage: sum PATH")
		}
		return s.eng.Checksum(ctx, s.abs(args[0]))

	case "batch":
		return s.batch(ctx, args)

	case "undo":
		return ignoreEmpty(s.eng.Undo(ctx), engine.ErrNothingToUndo)

	case "redo":
		return ignoreEmpty(s.eng.Redo(ctx), engine.ErrNothingToRedo)

	case "restore":
		s.eng.Restore(ctx)
		return nil

	case "trash":
		return s.trash()

	case "history":
		return s.history()

	case "log":
		for _, line := range s.eng.Logs() {
			fmt.Fprintln(s.out, line)
		}
		return nil

	case "alg":
		if len(args) != 1 {
			return errors.New("usage: alg md5|sha1|sha256|crc32")
		}
		alg, err := command.ParseChecksumAlgorithm(args[0])
		if err != nil {
			return err
		}
		return s.eng.Update(func(set *tab.Set) error {
			set.Active().ChecksumAlgorithm = alg
			return nil
		})

	case "speed":
		if len(args) != 1 {
			return errors.New("usage: speed MBPS")
		}
		v, err := strconv.ParseFloat(args[0], 64)
		if err != nil || v <= 0 {
			return errors.Errorf("invalid speed %q", args[0])
		}
		return s.eng.Update(func(set *tab.Set) error {
			set.Active().CopySpeedLimit = v
			return nil
		})

	case "tabs":
		return s.tabs()

	case "tab":
		return s.tab(ctx, args)

	case "save", "load":
		path := s.SessionFile
		if len(args) == 1 {
			path = args[0]
		}
		if path == "" {
			return errors.Errorf("usage: %s FILE", name)
		}
		if name == "save" {
			return s.eng.SaveSession(ctx, path)
		}
		return s.eng.LoadSession(ctx, path)
	}

	return errors.Errorf("unknown command %q, try help", name)
}

// abs resolves p against the left panel of the active tab
func (s *Shell) abs(p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(s.eng.Tabs().Active().LeftPath, p)
}

func ignoreEmpty(err, empty error) error {
	if errors.Is(err, empty) {
		return nil
	}
	return err
}

func (s *Shell) batch(ctx context.Context, args []string) error {
	if len(args) != 2 || (args[0] != "copy" && args[0] != "move") {
		return errors.New("usage: batch copy|move left|right")
	}
	panel, err := parsePanel(args[1])
	if err != nil {
		return err
	}

	run := s.eng.BatchCopy
	if args[0] == "move" {
		run = s.eng.BatchMove
	}
	printSummary(s.out, run(ctx, panel))
	return nil
}

func (s *Shell) list(panel command.Panel) error {
	var (
		dir      string
		filter   string
		selected = map[string]string{}
	)
	_ = s.eng.Update(func(set *tab.Set) error {
		t := set.Active()
		dir = t.Path(panel)
		for _, n := range t.Selection(panel) {
			selected[n] = "*"
		}
		for _, n := range t.Checked(panel) {
			selected[n] = "[x]"
		}
		filter = t.Filter
		return nil
	})

	entries, err := os.ReadDir(dir)
	if err != nil {
		return errors.Errorf("reading %s: %w", dir, err)
	}

	data := pterm.TableData{{"", "Name", "Type", "Size"}}
	for _, e := range entries {
		if !tab.MatchFilter(filter, e.Name()) {
			continue
		}
		kind, size := "file", ""
		if e.IsDir() {
			kind = "directory"
		} else if info, err := e.Info(); err == nil {
			size = status.FormatBytes(uint64(info.Size()))
		}
		data = append(data, []string{selected[e.Name()], e.Name(), kind, size})
	}
	return s.table(fmt.Sprintf("%s: %s", panel, dir), data)
}

func (s *Shell) trash() error {
	items := s.eng.TrashItems()
	if len(items) == 0 {
		fmt.Fprintln(s.out, "Trash is empty")
		return nil
	}
	data := pterm.TableData{{"Original", "Trashed as", "Type", "Deleted"}}
	for i := len(items) - 1; i >= 0; i-- {
		it := items[i]
		data = append(data, []string{it.OriginalPath, it.TrashPath, string(it.FileType), it.DeletedAt.Format(time.DateTime)})
	}
	return s.table("trash (newest first)", data)
}

func (s *Shell) history() error {
	ops := s.eng.OperationHistory()
	if len(ops) == 0 {
		fmt.Fprintln(s.out, "No confirmed operations")
		return nil
	}
	data := pterm.TableData{{"When", "Operation", "Source", "Destination"}}
	for _, op := range ops {
		dst := ""
		if op.DestinationPath != nil {
			dst = *op.DestinationPath
		}
		data = append(data, []string{op.Timestamp.Format(time.DateTime), string(op.Type), op.SourcePath, dst})
	}
	return s.table("confirmed operations", data)
}

func (s *Shell) tabs() error {
	set := s.eng.Tabs()
	data := pterm.TableData{{"#", "Name", "Left", "Right"}}
	for i, t := range set.All() {
		marker := strconv.Itoa(i)
		if i == set.ActiveIndex() {
			marker += " *"
		}
		data = append(data, []string{marker, t.Name, t.LeftPath, t.RightPath})
	}
	return s.table("tabs", data)
}

func (s *Shell) tab(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return s.tabs()
	}
	switch args[0] {
	case "new":
		s.eng.OpenTab(ctx, strings.Join(args[1:], " "))
		return nil
	case "dup":
		s.eng.DuplicateTab(ctx)
		return nil
	case "close":
		if len(args) != 2 {
			return errors.New("usage: tab close N")
		}
		i, err := strconv.Atoi(args[1])
		if err != nil {
			return errors.Errorf("invalid tab index %q", args[1])
		}
		return s.eng.CloseTab(ctx, i)
	}

	i, err := strconv.Atoi(args[0])
	if err != nil {
		return errors.Errorf("unknown tab command %q", args[0])
	}
	return s.eng.SelectTab(ctx, i)
}

func (s *Shell) table(title string, data pterm.TableData) error {
	rendered, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return errors.Errorf("rendering %s: %w", title, err)
	}
	fmt.Fprintln(s.out, pterm.DefaultSection.Sprint(title))
	fmt.Fprintln(s.out, rendered)
	return nil
}
