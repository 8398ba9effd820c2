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

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// 🏃 Runner executes engine calls either inline or on a worker goroutine
type Runner struct {
	logger *zerolog.Logger
	async  bool
}

// 🏗️ NewRunner creates a new runner
func NewRunner(logger *zerolog.Logger, async bool) *Runner {
	return &Runner{
		logger: logger,
		async:  async,
	}
}

// 🏃 Run executes fn
func (r *Runner) Run(ctx context.Context, fn func(ctx context.Context) error) error {
	if r.async {
		return r.runAsync(ctx, fn)
	}
	return r.runSync(ctx, fn)
}

// 🔄 runSync runs fn on the caller goroutine
func (r *Runner) runSync(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// ⚡ runAsync runs fn on a worker goroutine. The caller stops waiting when
// ctx is done; fn itself always runs to completion.
func (r *Runner) runAsync(ctx context.Context, fn func(ctx context.Context) error) error {
	var g errgroup.Group
	g.Go(func() error {
		if err := fn(context.WithoutCancel(ctx)); err != nil {
			return errors.Errorf("executing operation: %w", err)
		}
		return nil
	})

	done := make(chan error, 1)
	go func() {
		done <- g.Wait()
	}()

	select {
	case <-ctx.Done():
		r.logger.Debug().Msg("stopped waiting for operation")
		return errors.Errorf("operation cancelled: %w", ctx.Err())
	case err := <-done:
		return err
	}
}
