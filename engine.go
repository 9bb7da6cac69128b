package abacus

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Config selects the number type and the plugins an engine uses.
type Config struct {
	// NumberType is the name of the number type of the root scope. If it is
	// empty or not registered, the registry's default type is used.
	NumberType string `yaml:"numberType"`
	// DisabledPlugins names plugins that are not loaded.
	DisabledPlugins []string `yaml:"disabledPlugins"`
}

// Result is the outcome of an evaluation.
type Result struct {
	// Value is the result of the expression. It is nil if evaluation failed.
	Value Number
	// Scope holds the bindings the evaluation made. Use MergeContext to keep
	// them.
	Scope *Scope
}

// Engine parses and evaluates expressions using a registry.
//
// Evaluations in separate scopes may run concurrently. Reload must not run
// concurrently with anything else.
type Engine struct {
	cfg  Config
	reg  *Registry
	prom *Promoter
	root *Scope
	log  *slog.Logger
}

// Option configures an engine.
type Option func(*Engine)

// WithLogger sets the logger an engine uses. The default is slog.Default().
func WithLogger(log *slog.Logger) Option {
	return func(e *Engine) {
		e.log = log
	}
}

// New creates an engine and loads its registry according to cfg.
func New(cfg Config, reg *Registry, opts ...Option) (*Engine, error) {
	e := &Engine{cfg: cfg, reg: reg, log: slog.Default()}
	for _, opt := range opts {
		opt(e)
	}
	e.prom = NewPromoter(reg)
	if err := e.Reload(); err != nil {
		return nil, err
	}
	return e, nil
}

// Reload reloads the registry, discards the root scope, and creates a new
// root scope using the configured number type.
func (e *Engine) Reload() error {
	e.reg.Reload(e.cfg.DisabledPlugins)
	t, err := e.reg.NumberType(e.cfg.NumberType)
	if err != nil {
		t = e.reg.DefaultType()
		if t == nil {
			return err
		}
		if e.cfg.NumberType != "" {
			e.log.Warn("number type unavailable; using default",
				slog.String("want", e.cfg.NumberType), slog.String("type", t.Name))
		}
	}
	e.root = NewScope(t)
	e.log.Debug("engine loaded", slog.String("type", t.Name), slog.Any("plugins", e.reg.Plugins()), slog.Any("disabled", e.cfg.DisabledPlugins))
	return nil
}

// Config returns the engine's configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// SetConfig changes the engine's configuration and reloads.
func (e *Engine) SetConfig(cfg Config) error {
	e.cfg = cfg
	return e.Reload()
}

// Registry returns the engine's registry.
func (e *Engine) Registry() *Registry {
	return e.reg
}

// Promoter returns the engine's promoter.
func (e *Engine) Promoter() *Promoter {
	return e.prom
}

// Root returns the root scope.
func (e *Engine) Root() *Scope {
	return e.root
}

// Parse parses an expression using the currently registered operators.
func (e *Engine) Parse(text string) (Node, error) {
	return Parse(text, e.reg)
}

// NewChildContext creates a scope whose parent is parent.
func (e *Engine) NewChildContext(parent *Scope) *Scope {
	return parent.Child()
}

// MergeContext copies the number type and bindings of from into into.
func (e *Engine) MergeContext(into, from *Scope) {
	into.Apply(from)
}

// Evaluate reduces n in a new child of s. The result holds the value and the
// child scope with any bindings the evaluation made, even if it failed. If
// ctx is done before evaluation finishes, the error is a *CancellationError.
func (e *Engine) Evaluate(ctx context.Context, n Node, s *Scope) (res Result, err error) {
	id := uuid.New()
	start := time.Now()
	res.Scope = s.Child()
	ev := &Eval{Arith: NewArith(ctx), engine: e, scope: res.Scope}
	e.log.DebugContext(ctx, "evaluate", slog.String("id", id.String()), slog.String("expr", n.String()))
	defer func() {
		if err != nil {
			e.log.DebugContext(ctx, "evaluation failed", slog.String("id", id.String()), slog.Duration("elapsed", time.Since(start)), slog.Any("err", err))
			return
		}
		e.log.DebugContext(ctx, "evaluated", slog.String("id", id.String()), slog.Duration("elapsed", time.Since(start)), slog.Any("value", res.Value))
	}()
	defer Recover(&err)
	res.Value, err = ev.Reduce(n)
	return res, err
}

// Run parses text, evaluates it in a child of the root scope, and merges the
// bindings it made into the root, even if evaluation failed.
func (e *Engine) Run(ctx context.Context, text string) (Result, error) {
	n, err := e.Parse(text)
	if err != nil {
		return Result{}, err
	}
	res, err := e.Evaluate(ctx, n, e.root)
	e.MergeContext(e.root, res.Scope)
	return res, err
}
