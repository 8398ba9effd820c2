package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/walteh/filepane/pkg/command"
	"github.com/walteh/filepane/pkg/confirm"
	"github.com/walteh/filepane/pkg/engine"
	"gitlab.com/tozd/go/errors"
)

// 💬 Prompter reads answers one line at a time
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewScanner(in), out: out}
}

// Ask prints prompt and returns the next line. ok is false once input is exhausted.
func (p *Prompter) Ask(prompt string) (string, bool) {
	if prompt != "" {
		fmt.Fprint(p.out, prompt)
	}
	if !p.in.Scan() {
		return "", false
	}
	return strings.TrimRight(p.in.Text(), "\r"), true
}

func isYes(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}

// 🔐 Gated submits cmd and walks it through both confirmation stages.
// With yes set the prompts are skipped and the configured token is used.
func Gated(ctx context.Context, eng *engine.Engine, p *Prompter, cmd command.Command, message string, yes bool) error {
	if err := eng.Submit(ctx, cmd, message); err != nil {
		return err
	}
	if !cmd.Destructive() {
		return nil
	}

	if !yes {
		answer, ok := p.Ask("Proceed? [y/N] ")
		if !ok || !isYes(answer) {
			return eng.Cancel(ctx)
		}
	}

	if err := eng.Approve(ctx); err != nil {
		return err
	}

	token := eng.ConfirmToken()
	if !yes {
		var ok bool
		token, ok = p.Ask(fmt.Sprintf("Type %s: ", eng.ConfirmToken()))
		if !ok {
			return eng.Cancel(ctx)
		}
	}

	if err := eng.Confirm(ctx, token); err != nil {
		if errors.Is(err, confirm.ErrTokenMismatch) {
			if cerr := eng.Cancel(ctx); cerr != nil {
				return errors.Errorf("%w (cancel: %v)", err, cerr)
			}
		}
		return err
	}
	return nil
}

func parsePanel(s string) (command.Panel, error) {
	switch strings.ToLower(s) {
	case "left", "l":
		return command.PanelLeft, nil
	case "right", "r":
		return command.PanelRight, nil
	}
	return 0, errors.Errorf("unknown panel %q (want left or right)", s)
}
