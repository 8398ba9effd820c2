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

package copier

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/walteh/filepane/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// ItemResult is the outcome of one batch source
type ItemResult struct {
	Source      string
	Destination string
	Bytes       uint64
	Err         error
}

// 📊 Summary tallies a batch
type Summary struct {
	Successful int
	Failed     int
	Bytes      uint64
	Items      []ItemResult
}

func (s *Summary) record(r ItemResult) {
	s.Items = append(s.Items, r)
	if r.Err != nil {
		s.Failed++
		return
	}
	s.Successful++
	s.Bytes += r.Bytes
}

// Target returns where a batch item lands: destination joined with the
// source's base name
func Target(source, destination string) string {
	return filepath.Join(destination, filepath.Base(source))
}

type batchKind struct {
	noun    string // "copy" or "move"
	done    string // "Copied" or "Moved"
	perform func(ctx context.Context, src, dst string) (uint64, error)
}

// CopyWithLimit copies every source into destination. Each source succeeds
// or fails on its own. speedLimit is reported, not enforced.
func (c *Copier) CopyWithLimit(ctx context.Context, sources []string, destination string, speedLimit float64) Summary {
	return c.batch(ctx, batchKind{noun: "copy", done: "Copied", perform: c.CopyPath}, sources, destination, speedLimit)
}

// MoveWithLimit moves every source into destination with the same
// accounting as CopyWithLimit
func (c *Copier) MoveWithLimit(ctx context.Context, sources []string, destination string, speedLimit float64) Summary {
	perform := func(ctx context.Context, src, dst string) (uint64, error) {
		size := sizeOf(src)
		if err := c.Move(ctx, src, dst); err != nil {
			return 0, err
		}
		return size, nil
	}
	return c.batch(ctx, batchKind{noun: "move", done: "Moved", perform: perform}, sources, destination, speedLimit)
}

func (c *Copier) batch(ctx context.Context, kind batchKind, sources []string, destination string, speedLimit float64) Summary {
	total := len(sources)
	c.logger.Infof("📋 Starting batch %s operation for %d files", kind.noun, total)
	c.logger.Infof("📍 Destination: %s", destination)
	c.logger.Infof("⚡ Speed limit: %g MB/s", speedLimit)

	var sum Summary
	for index, src := range sources {
		dst := Target(src, destination)
		res := ItemResult{Source: src, Destination: dst}

		if _, err := os.Lstat(src); err != nil {
			if os.IsNotExist(err) {
				res.Err = errors.Errorf("%w: %s", ErrNotFound, src)
				c.logger.Errorf("❌ Source does not exist: %s", src)
			} else {
				res.Err = errors.Errorf("stat %s: %w", src, err)
				c.logger.Errorf("❌ Failed to get metadata for %s: %v", src, err)
			}
		} else if err := os.MkdirAll(destination, 0755); err != nil {
			res.Err = errors.Errorf("creating destination directory: %w", err)
			c.logger.Errorf("❌ Failed to create destination directory %s: %v", destination, err)
		} else {
			res.Bytes, res.Err = kind.perform(ctx, src, dst)
			if res.Err != nil {
				c.logger.Error(c.failed(kind, src, res.Err))
			} else {
				c.logger.Success(c.succeeded(kind, index+1, total, src, dst, res.Bytes))
			}
		}
		sum.record(res)

		if index > 0 && index%c.opts.ProgressEvery == 0 {
			c.logger.Info(c.formatter.FormatSpeedLimit(speedLimit, sum.Successful, total))
			c.logger.Info(c.formatter.FormatProgress(index+1, total))
		}
	}

	title := "Copy"
	if kind.noun == "move" {
		title = "Move"
	}
	c.logger.Infof("📊 %s operation completed:", title)
	c.logger.Infof("   ✅ Successful: %d files", sum.Successful)
	c.logger.Infof("   ❌ Failed: %d files", sum.Failed)
	c.logger.Infof("   📦 Total bytes: %s", status.FormatBytes(sum.Bytes))
	if sum.Failed > 0 {
		c.logger.Warningf("⚠️ Some files failed to %s. Check the logs above for details.", kind.noun)
	}
	return sum
}

func (c *Copier) failed(kind batchKind, src string, err error) string {
	if kind.noun == "copy" {
		return c.formatter.FormatFailed(src, err)
	}
	return fmt.Sprintf("❌ Failed to %s %s: %v", kind.noun, src, err)
}

func (c *Copier) succeeded(kind batchKind, index, total int, src, dst string, n uint64) string {
	if kind.noun == "copy" {
		return c.formatter.FormatCopied(index, total, src, dst, n)
	}
	return fmt.Sprintf("✅ %s %d/%d: %s -> %s (%d bytes)", kind.done, index, total, filepath.Base(src), filepath.Base(dst), n)
}

// sizeOf sums regular file sizes under path
func sizeOf(path string) uint64 {
	var total uint64
	_ = filepath.WalkDir(path, func(_ string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.Type().IsRegular() {
			if info, err := d.Info(); err == nil {
				total += uint64(info.Size())
			}
		}
		return nil
	})
	return total
}
