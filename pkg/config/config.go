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

package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/filepane/pkg/command"
	"github.com/walteh/filepane/pkg/confirm"
	"github.com/walteh/filepane/pkg/copier"
	"github.com/walteh/filepane/pkg/log"
	"github.com/walteh/filepane/pkg/trash"
	"gitlab.com/tozd/go/errors"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var parsers []Parser

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(strings.ToLower(filename)) {
			return p
		}
	}
	return nil
}

// 📚 Config holds the engine settings. Every field is optional.
type Config struct {
	ConfirmToken  string   `json:"confirm_token,omitempty" yaml:"confirm_token,omitempty" hcl:"confirm_token,optional"`
	TrashDir      string   `json:"trash_dir,omitempty" yaml:"trash_dir,omitempty" hcl:"trash_dir,optional"`
	TrashMode     string   `json:"trash_mode,omitempty" yaml:"trash_mode,omitempty" hcl:"trash_mode,optional"`
	ProgressEvery int      `json:"progress_every,omitempty" yaml:"progress_every,omitempty" hcl:"progress_every,optional"`
	ChunkSize     int      `json:"chunk_size,omitempty" yaml:"chunk_size,omitempty" hcl:"chunk_size,optional"`
	SpeedLimit    float64  `json:"speed_limit,omitempty" yaml:"speed_limit,omitempty" hcl:"speed_limit,optional"`
	Checksum      string   `json:"checksum,omitempty" yaml:"checksum,omitempty" hcl:"checksum,optional"`
	SessionFile   string   `json:"session_file,omitempty" yaml:"session_file,omitempty" hcl:"session_file,optional"`
	Ignore        []string `json:"ignore,omitempty" yaml:"ignore,omitempty" hcl:"ignore,optional"`
	LogLimit      int      `json:"log_limit,omitempty" yaml:"log_limit,omitempty" hcl:"log_limit,optional"`
}

// Default returns a validated config with every default applied
func Default() *Config {
	cfg := &Config{}
	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("default config is invalid: %v", err))
	}
	return cfg
}

// 🎯 Load loads the configuration from a file. The format follows the
// extension: .yaml/.yml, .json or .hcl.
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// LoadOrDefault loads path, or returns the defaults when path is empty
func LoadOrDefault(ctx context.Context, path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(ctx, path)
}

// 🔍 Validate checks values and fills in defaults
func (cfg *Config) Validate() error {
	if cfg.ConfirmToken == "" {
		cfg.ConfirmToken = confirm.DefaultToken
	}
	if strings.TrimSpace(cfg.ConfirmToken) != cfg.ConfirmToken {
		return errors.Errorf("confirm_token must not start or end with whitespace")
	}

	switch trash.Mode(cfg.TrashMode) {
	case "":
		cfg.TrashMode = string(trash.ModeAuto)
	case trash.ModeAuto, trash.ModeNative, trash.ModeDir:
	default:
		return errors.Errorf("trash_mode must be one of auto, native, dir; got %q", cfg.TrashMode)
	}
	if cfg.TrashDir != "" {
		cfg.TrashDir = filepath.Clean(cfg.TrashDir)
	}

	if cfg.ProgressEvery < 0 {
		return errors.Errorf("progress_every must not be negative")
	}
	if cfg.ProgressEvery == 0 {
		cfg.ProgressEvery = copier.DefaultProgressEvery
	}

	if cfg.ChunkSize < 0 {
		return errors.Errorf("chunk_size must not be negative")
	}
	if cfg.ChunkSize == 0 {
		cfg.ChunkSize = copier.DefaultChunkSize
	}

	if cfg.SpeedLimit < 0 {
		return errors.Errorf("speed_limit must not be negative")
	}
	if cfg.SpeedLimit == 0 {
		cfg.SpeedLimit = 10
	}

	if cfg.Checksum == "" {
		cfg.Checksum = command.SHA256.String()
	}
	alg, err := command.ParseChecksumAlgorithm(cfg.Checksum)
	if err != nil {
		return errors.Errorf("checksum: %w", err)
	}
	cfg.Checksum = alg.String()

	if cfg.SessionFile != "" {
		cfg.SessionFile = filepath.Clean(cfg.SessionFile)
	}

	for _, pattern := range cfg.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Errorf("invalid ignore pattern %q", pattern)
		}
	}

	if cfg.LogLimit < 0 {
		return errors.Errorf("log_limit must not be negative")
	}
	if cfg.LogLimit == 0 {
		cfg.LogLimit = log.DefaultLimit
	}

	return nil
}

// Algorithm returns the default checksum algorithm. Call after Validate.
func (cfg *Config) Algorithm() command.ChecksumAlgorithm {
	alg, err := command.ParseChecksumAlgorithm(cfg.Checksum)
	if err != nil {
		return command.SHA256
	}
	return alg
}

// CopierOptions returns the batch copy settings
func (cfg *Config) CopierOptions() copier.Options {
	return copier.Options{
		ChunkSize:     cfg.ChunkSize,
		ProgressEvery: cfg.ProgressEvery,
		Ignore:        append([]string(nil), cfg.Ignore...),
	}
}

// TrashOptions returns the trash detection settings
func (cfg *Config) TrashOptions() trash.Options {
	return trash.Options{
		Mode: trash.Mode(cfg.TrashMode),
		Dir:  cfg.TrashDir,
	}
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	return fmt.Sprintf("trash=%s chunk=%d every=%d speed=%gMB/s checksum=%s", cfg.TrashMode, cfg.ChunkSize, cfg.ProgressEvery, cfg.SpeedLimit, cfg.Checksum)
}
