package opts

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/walteh/filepane/pkg/config"
	"github.com/walteh/filepane/pkg/engine"
	"github.com/walteh/filepane/pkg/log"
)

// RootOpts contains shared options used by all commands. It is filled in
// once flags are parsed, right before a command runs.
type RootOpts struct {
	Config   *config.Config
	Engine   *engine.Engine
	Logger   *log.Logger
	Registry *prometheus.Registry
	Runner   *engine.Runner
}
