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

package status

import (
	"fmt"
	"path/filepath"
)

// 📏 byteUnits are the display units used by FormatBytes
var byteUnits = []string{"B", "KB", "MB", "GB", "TB"}

// FormatBytes renders a byte count in binary units: whole bytes below 1 KB,
// one decimal place above
func FormatBytes(n uint64) string {
	size := float64(n)
	unit := 0
	for size >= 1024 && unit < len(byteUnits)-1 {
		size /= 1024
		unit++
	}
	if unit == 0 {
		return fmt.Sprintf("%d %s", n, byteUnits[0])
	}
	return fmt.Sprintf("%.1f %s", size, byteUnits[unit])
}

// FileFormatter defines how file operations and progress are worded in the log
type FileFormatter interface {
	// FormatCopied formats a successfully copied batch item
	FormatCopied(index, total int, src, dst string, bytes uint64) string

	// FormatFailed formats a failed batch item
	FormatFailed(path string, err error) string

	// FormatProgress formats a progress message
	FormatProgress(current, total int) string

	// FormatSpeedLimit formats the periodic speed limit notice
	FormatSpeedLimit(limit float64, processed, total int) string
}

// DefaultFileFormatter provides a default implementation of FileFormatter
type DefaultFileFormatter struct{}

// NewDefaultFileFormatter creates a new DefaultFileFormatter
func NewDefaultFileFormatter() *DefaultFileFormatter {
	return &DefaultFileFormatter{}
}

// FormatCopied formats a copied item with its position in the batch
func (f *DefaultFileFormatter) FormatCopied(index, total int, src, dst string, bytes uint64) string {
	return fmt.Sprintf("✅ Copied %d/%d: %s -> %s (%d bytes)", index, total, filepath.Base(src), filepath.Base(dst), bytes)
}

// FormatFailed formats a failed item
func (f *DefaultFileFormatter) FormatFailed(path string, err error) string {
	return fmt.Sprintf("❌ Failed to copy %s: %v", path, err)
}

// FormatProgress formats a progress message with percentage
func (f *DefaultFileFormatter) FormatProgress(current, total int) string {
	var percentage float64
	if total == 0 {
		percentage = 0
		if current > 0 {
			percentage = 100
		}
	} else {
		percentage = float64(current) / float64(total) * 100
	}

	if current >= total {
		return fmt.Sprintf("✅ Progress: %d/%d (%.0f%%)", current, total, percentage)
	}
	return fmt.Sprintf("⏳ Progress: %d/%d (%.0f%%)", current, total, percentage)
}

// FormatSpeedLimit formats the speed limit notice
func (f *DefaultFileFormatter) FormatSpeedLimit(limit float64, processed, total int) string {
	return fmt.Sprintf("⏸️ Speed limiting at %g MB/s (processed: %d/%d)", limit, processed, total)
}
