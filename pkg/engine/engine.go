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

package engine

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/walteh/filepane/pkg/command"
	"github.com/walteh/filepane/pkg/config"
	"github.com/walteh/filepane/pkg/confirm"
	"github.com/walteh/filepane/pkg/copier"
	"github.com/walteh/filepane/pkg/log"
	"github.com/walteh/filepane/pkg/metrics"
	"github.com/walteh/filepane/pkg/tab"
	"github.com/walteh/filepane/pkg/trash"
	"gitlab.com/tozd/go/errors"
)

var (
	// ErrOperationFailed marks a command that could not be applied
	ErrOperationFailed = errors.Base("operation failed")
	ErrNothingToUndo   = errors.Base("nothing to undo")
	ErrNothingToRedo   = errors.Base("nothing to redo")
)

// 🧨 OperationError reports a command that failed while being applied. It
// matches both ErrOperationFailed and the underlying cause.
type OperationError struct {
	Command command.Command
	Err     error
}

func (e *OperationError) Error() string {
	return command.Describe(e.Command) + ": " + e.Err.Error()
}

func (e *OperationError) Unwrap() []error {
	return []error{ErrOperationFailed, e.Err}
}

// 🔧 Options contains the collaborators of an engine. Nil fields get
// working defaults.
type Options struct {
	Logger  *log.Logger
	Tabs    *tab.Set
	Gate    *confirm.Gate
	Trash   *trash.Store
	Copier  *copier.Copier
	Metrics *metrics.Metrics
}

// ⚙️ Engine owns the tabs, the confirmation gate and the trash store of one
// session
type Engine struct {
	mu      sync.Mutex
	logger  *log.Logger
	tabs    *tab.Set
	gate    *confirm.Gate
	trash   *trash.Store
	copier  *copier.Copier
	metrics *metrics.Metrics
}

// 🏭 New creates an engine from its collaborators
func New(opts Options) (*Engine, error) {
	if opts.Logger == nil {
		opts.Logger = log.New(nil, zerolog.Nop())
	}
	if opts.Copier == nil {
		opts.Copier = copier.New(opts.Logger, copier.Options{})
	}
	if opts.Tabs == nil {
		opts.Tabs = tab.NewSet("")
	}
	if opts.Gate == nil {
		opts.Gate = confirm.New()
	}
	if opts.Trash == nil {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, errors.Errorf("resolving home for trash: %w", err)
		}
		opts.Trash = trash.NewStore(trash.NewDirBin(filepath.Join(home, trash.DefaultDirName), opts.Copier.Move))
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.New(prometheus.NewRegistry())
	}

	return &Engine{
		logger:  opts.Logger,
		tabs:    opts.Tabs,
		gate:    opts.Gate,
		trash:   opts.Trash,
		copier:  opts.Copier,
		metrics: opts.Metrics,
	}, nil
}

// NewFromConfig wires an engine from a validated config. The trash bin is
// detected for the running platform and a saved session is restored when
// the config names one that exists.
func NewFromConfig(ctx context.Context, cfg *config.Config, logger *log.Logger, reg prometheus.Registerer) (*Engine, error) {
	c := copier.New(logger, cfg.CopierOptions())

	trashOpts := cfg.TrashOptions()
	trashOpts.Move = c.Move
	bin, err := trash.Detect(ctx, trashOpts)
	if err != nil {
		return nil, errors.Errorf("detecting trash: %w", err)
	}

	tabs := tab.NewSet("")
	tabs.Active().ChecksumAlgorithm = cfg.Algorithm()
	tabs.Active().CopySpeedLimit = cfg.SpeedLimit
	if cfg.SessionFile != "" {
		if _, err := os.Stat(cfg.SessionFile); err == nil {
			loaded, err := tab.LoadSession(ctx, cfg.SessionFile)
			if err != nil {
				return nil, errors.Errorf("loading session: %w", err)
			}
			tabs = loaded
			logger.Infof("Loaded paths from %s", cfg.SessionFile)
		}
	}

	return New(Options{
		Logger:  logger,
		Tabs:    tabs,
		Gate:    confirm.New(confirm.WithToken(cfg.ConfirmToken)),
		Trash:   trash.NewStore(bin),
		Copier:  c,
		Metrics: metrics.New(reg),
	})
}

// Tabs returns the tab set. Mutate it only through Update while other
// goroutines may call the engine.
func (e *Engine) Tabs() *tab.Set {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tabs
}

// Update runs fn with the tab set under the engine lock
func (e *Engine) Update(fn func(*tab.Set) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.tabs)
}

// Confirmation returns a snapshot of the confirmation gate
func (e *Engine) Confirmation() confirm.State {
	return e.gate.State()
}

// ConfirmToken returns the literal the final confirmation expects
func (e *Engine) ConfirmToken() string {
	return e.gate.Token()
}

// OperationHistory returns every operation that passed the gate
func (e *Engine) OperationHistory() []command.PendingOperation {
	return e.gate.History()
}

// Logs returns the user-visible log lines, oldest first
func (e *Engine) Logs() []string {
	return e.logger.Lines()
}

// Logger returns the log stream the engine writes to
func (e *Engine) Logger() *log.Logger {
	return e.logger
}

// TrashItems returns the restorable entries, oldest first
func (e *Engine) TrashItems() []trash.Item {
	return e.trash.Items()
}

// 📨 Submit runs a safe command immediately and stages a destructive one
// for confirmation. An empty message is replaced by the command description.
func (e *Engine) Submit(ctx context.Context, cmd command.Command, message string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !cmd.Destructive() {
		return e.execute(ctx, e.tabs.Active(), cmd)
	}

	if err := e.gate.Request(cmd, message); err != nil {
		e.logger.Warningf("⚠️ %v", err)
		return errors.Errorf("requesting confirmation: %w", err)
	}
	e.metrics.RecordConfirmation("requested")
	e.logger.Infof("Confirmation required: %s", e.gate.State().ConfirmMessage)
	return nil
}

// Approve grants the first approval of the staged command
func (e *Engine) Approve(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.gate.Approve(); err != nil {
		return errors.Errorf("approving: %w", err)
	}
	e.logger.Infof("Type %s to proceed", e.gate.Token())
	return nil
}

// ✅ Confirm checks token and, when it matches, applies the staged command
// to the active tab
func (e *Engine) Confirm(ctx context.Context, token string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	cmd, _, err := e.gate.Confirm(token)
	if err != nil {
		if errors.Is(err, confirm.ErrTokenMismatch) {
			e.metrics.RecordConfirmation("rejected")
			e.logger.Warning("Confirmation text does not match")
		}
		return errors.Errorf("confirming: %w", err)
	}

	e.metrics.RecordConfirmation("confirmed")
	e.logger.Info("Action confirmed")
	return e.execute(ctx, e.tabs.Active(), cmd)
}

// Cancel drops the staged command without touching the filesystem
func (e *Engine) Cancel(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.gate.Cancel(); err != nil {
		return errors.Errorf("cancelling: %w", err)
	}
	e.metrics.RecordConfirmation("cancelled")
	e.logger.Info("Action cancelled")
	return nil
}

// Execute applies cmd to the active tab without asking for confirmation
func (e *Engine) Execute(ctx context.Context, cmd command.Command) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.execute(ctx, e.tabs.Active(), cmd)
}

// ExecuteIn makes tab index active and applies cmd to it
func (e *Engine) ExecuteIn(ctx context.Context, index int, cmd command.Command) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.tabs.Select(index); err != nil {
		e.logger.Errorf("❌ %v", err)
		return errors.Errorf("selecting tab: %w", err)
	}
	return e.execute(ctx, e.tabs.Active(), cmd)
}

// Checksum digests path with the active tab's algorithm
func (e *Engine) Checksum(ctx context.Context, path string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	t := e.tabs.Active()
	return e.execute(ctx, t, command.CalculateChecksum{Path: path, Algorithm: t.ChecksumAlgorithm})
}

func (e *Engine) observe(kind command.Kind, start time.Time, err error) {
	e.metrics.RecordOperation(string(kind), time.Since(start), err == nil)
	e.metrics.SetTrashItems(e.trash.Len())
}
