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

// Package confirm implements the two-stage approval gate that stands between
// a destructive command and the filesystem.
package confirm

import (
	"sync"
	"time"

	"github.com/walteh/filepane/pkg/command"
	"gitlab.com/tozd/go/errors"
)

// DefaultToken is the literal the user types to pass the final stage
const DefaultToken = "CONFIRM"

var (
	ErrPending        = errors.Base("a confirmation is already pending")
	ErrIdle           = errors.Base("no confirmation is pending")
	ErrTokenMismatch  = errors.Base("confirmation token does not match")
	ErrWrongStage     = errors.Base("confirmation is not at this stage")
	ErrNotDestructive = errors.Base("command does not need confirmation")
)

// 🚦 Stage is the position of the gate in its state machine
type Stage int

const (
	Idle Stage = iota
	AwaitingFirst
	AwaitingFinal
)

func (s Stage) String() string {
	switch s {
	case Idle:
		return "idle"
	case AwaitingFirst:
		return "awaiting-first-confirm"
	case AwaitingFinal:
		return "awaiting-final-confirm"
	default:
		return "unknown"
	}
}

// State is a snapshot of the gate for rendering a dialog
type State struct {
	ShowConfirm      bool
	SecondConfirm    bool
	ConfirmAction    command.Command
	ConfirmMessage   string
	PendingOperation *command.PendingOperation
	Stage            Stage
}

// Option configures a Gate
type Option func(*Gate)

// WithToken overrides the final-stage token
func WithToken(token string) Option {
	return func(g *Gate) {
		if token != "" {
			g.token = token
		}
	}
}

// WithClock overrides the clock used to stamp pending operations
func WithClock(now func() time.Time) Option {
	return func(g *Gate) {
		g.now = now
	}
}

// 🔒 Gate holds at most one destructive command awaiting approval and the
// log of every operation that made it through.
type Gate struct {
	mu      sync.Mutex
	token   string
	now     func() time.Time
	stage   Stage
	action  command.Command
	message string
	pending command.PendingOperation
	history []command.PendingOperation
}

// New creates an idle gate
func New(opts ...Option) *Gate {
	g := &Gate{token: DefaultToken, now: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Token returns the literal expected by Confirm
func (g *Gate) Token() string {
	return g.token
}

// Request stages a destructive command. Only one command can be staged.
func (g *Gate) Request(cmd command.Command, message string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.stage != Idle {
		return errors.Errorf("%w: %s", ErrPending, g.message)
	}
	pending, ok := command.NewPendingOperation(cmd, g.now())
	if !ok {
		return errors.Errorf("%w: %s", ErrNotDestructive, cmd.Kind())
	}
	if message == "" {
		message = command.Describe(cmd)
	}

	g.stage = AwaitingFirst
	g.action = cmd
	g.message = message
	g.pending = pending
	return nil
}

// Approve grants the first approval
func (g *Gate) Approve() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	switch g.stage {
	case AwaitingFirst:
		g.stage = AwaitingFinal
		return nil
	case Idle:
		return ErrIdle
	default:
		return errors.Errorf("%w: approve at %s", ErrWrongStage, g.stage)
	}
}

// Confirm grants final approval when token matches exactly. The staged
// command is released to the caller and its pending operation committed to
// the history. A wrong token leaves the gate waiting at the final stage.
func (g *Gate) Confirm(token string) (command.Command, command.PendingOperation, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	switch g.stage {
	case Idle:
		return nil, command.PendingOperation{}, ErrIdle
	case AwaitingFirst:
		return nil, command.PendingOperation{}, errors.Errorf("%w: confirm at %s", ErrWrongStage, g.stage)
	}
	if token != g.token {
		return nil, command.PendingOperation{}, ErrTokenMismatch
	}

	cmd, pending := g.action, g.pending
	g.history = append(g.history, pending)
	g.reset()
	return cmd, pending, nil
}

// Cancel drops the staged command from either awaiting stage
func (g *Gate) Cancel() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.stage == Idle {
		return ErrIdle
	}
	g.reset()
	return nil
}

func (g *Gate) reset() {
	g.stage = Idle
	g.action = nil
	g.message = ""
	g.pending = command.PendingOperation{}
}

// State returns a snapshot of the gate
func (g *Gate) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()

	st := State{
		ShowConfirm:    g.stage != Idle,
		SecondConfirm:  g.stage == AwaitingFinal,
		ConfirmAction:  g.action,
		ConfirmMessage: g.message,
		Stage:          g.stage,
	}
	if g.stage != Idle {
		pending := g.pending
		st.PendingOperation = &pending
	}
	return st
}

// History returns the committed operations, oldest first
func (g *Gate) History() []command.PendingOperation {
	g.mu.Lock()
	defer g.mu.Unlock()

	return append([]command.PendingOperation(nil), g.history...)
}
