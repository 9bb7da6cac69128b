package std

import (
	"log/slog"

	"github.com/zephyrtronium/abacus"
)

// Name is the name of the standard plugin.
const Name = "std"

// Plugin returns the standard plugin. Each call returns a new plugin.
func Plugin() *abacus.Plugin {
	return &abacus.Plugin{
		Name:          Name,
		Types:         []*abacus.NumberType{NaiveType, BinaryType, PreciseType},
		Operators:     Operators(),
		TreeOperators: TreeOperators(),
		Functions:     Functions(),
		TreeFunctions: TreeFunctions(),
		Docs:          Docs(),
	}
}

// NewEngine creates an engine over a registry holding the standard plugin
// followed by any others.
func NewEngine(cfg abacus.Config, log *slog.Logger, plugins ...*abacus.Plugin) (*abacus.Engine, error) {
	reg := abacus.NewRegistry(log, append([]*abacus.Plugin{Plugin()}, plugins...)...)
	var opts []abacus.Option
	if log != nil {
		opts = append(opts, abacus.WithLogger(log))
	}
	return abacus.New(cfg, reg, opts...)
}
