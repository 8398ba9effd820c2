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
	"strings"

	"github.com/fatih/color"
)

// 🎨 Display configuration
const (
	fileIndent  = 4  // spaces to indent file entries
	nameWidth   = 35 // Base width for filename
	typeWidth   = 10 // Width for file type
	resultWidth = 15 // Width for result text
)

// 🎯 FormatFileOperation formats one batch item for console display
func FormatFileOperation(path, fileType, result string, failed, skipped bool) string {
	var prefix string
	switch {
	case failed:
		prefix = color.RedString("✗")
	case skipped:
		prefix = color.HiBlackString("-")
	default:
		prefix = color.GreenString("✓")
	}

	namePart := fmt.Sprintf("%-*s", nameWidth, path)
	typePart := fmt.Sprintf("%-*s", typeWidth, fileType)
	resultPart := fmt.Sprintf("%-*s", resultWidth, result)

	return fmt.Sprintf("%s%s %s %s %s",
		strings.Repeat(" ", fileIndent),
		prefix,
		namePart,
		typePart,
		resultPart,
	)
}
