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

package command

import (
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 🔐 ChecksumAlgorithm is one of the supported digest algorithms
type ChecksumAlgorithm int

const (
	MD5 ChecksumAlgorithm = iota
	SHA1
	SHA256
	CRC32
)

// Algorithms lists every supported algorithm in display order
var Algorithms = []ChecksumAlgorithm{MD5, SHA1, SHA256, CRC32}

// String returns the display name of the algorithm
func (a ChecksumAlgorithm) String() string {
	switch a {
	case MD5:
		return "MD5"
	case SHA1:
		return "SHA1"
	case SHA256:
		return "SHA256"
	case CRC32:
		return "CRC32"
	default:
		return "unknown"
	}
}

// ParseChecksumAlgorithm parses an algorithm name, ignoring case and dashes
func ParseChecksumAlgorithm(name string) (ChecksumAlgorithm, error) {
	normalized := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(name), "-", ""))
	for _, a := range Algorithms {
		if a.String() == normalized {
			return a, nil
		}
	}
	return 0, errors.Errorf("unknown checksum algorithm %q", name)
}

// MarshalText implements encoding.TextMarshaler
func (a ChecksumAlgorithm) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (a *ChecksumAlgorithm) UnmarshalText(text []byte) error {
	parsed, err := ParseChecksumAlgorithm(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
