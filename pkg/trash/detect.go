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

package trash

import (
	"context"
	"os"
	"path/filepath"
	"runtime"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// Mode selects how Detect picks a bin
type Mode string

const (
	// ModeAuto uses the platform trash when there is one, else the directory bin
	ModeAuto Mode = "auto"
	// ModeNative requires the platform trash
	ModeNative Mode = "native"
	// ModeDir always uses the directory bin
	ModeDir Mode = "dir"
)

// Options controls bin detection. Empty fields are filled from the
// running process.
type Options struct {
	Mode     Mode
	Dir      string // directory bin location, defaults to ~/.filepane_trash
	Home     string
	DataHome string // defaults to $XDG_DATA_HOME or ~/.local/share
	GOOS     string
	Move     MoveFunc
}

// 🔍 Detect inspects the platform and returns the bin to use
func Detect(ctx context.Context, opts Options) (Bin, error) {
	logger := zerolog.Ctx(ctx)

	if opts.Mode == "" {
		opts.Mode = ModeAuto
	}
	if opts.GOOS == "" {
		opts.GOOS = runtime.GOOS
	}
	if opts.Home == "" {
		home, err := os.UserHomeDir()
		if err != nil && (opts.Mode != ModeDir || opts.Dir == "") {
			return nil, errors.Errorf("resolving home directory: %w", err)
		}
		opts.Home = home
	}
	if opts.Dir == "" {
		opts.Dir = filepath.Join(opts.Home, DefaultDirName)
	}

	var bin Bin
	switch opts.Mode {
	case ModeDir:
		bin = NewDirBin(opts.Dir, opts.Move)
	case ModeAuto, ModeNative:
		bin = native(opts)
		if bin == nil {
			if opts.Mode == ModeNative {
				return nil, errors.Errorf("no native trash on %s", opts.GOOS)
			}
			bin = NewDirBin(opts.Dir, opts.Move)
		}
	default:
		return nil, errors.Errorf("unknown trash mode %q", opts.Mode)
	}

	logger.Debug().Str("bin", bin.Name()).Str("goos", opts.GOOS).Str("mode", string(opts.Mode)).Msg("selected trash bin")
	return bin, nil
}

func native(opts Options) Bin {
	switch opts.GOOS {
	case "darwin":
		return NewMacBin(opts.Home, opts.Move)
	case "linux", "freebsd", "openbsd", "netbsd", "dragonfly":
		dataHome := opts.DataHome
		if dataHome == "" {
			dataHome = os.Getenv("XDG_DATA_HOME")
		}
		if dataHome == "" {
			dataHome = filepath.Join(opts.Home, ".local", "share")
		}
		return NewXDGBin(dataHome, opts.Move)
	default:
		return nil
	}
}
