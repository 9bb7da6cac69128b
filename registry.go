package abacus

import (
	"cmp"
	"log/slog"
	"reflect"
	"slices"
	"strings"
	"unicode/utf8"
)

// Plugin is a named group of number types, operators, and functions which can
// be enabled or disabled together.
type Plugin struct {
	Name          string
	Types         []*NumberType
	Operators     []*NumberOperator
	TreeOperators []*TreeOperator
	Functions     map[string]NumberFunction
	TreeFunctions map[string]TreeFunction
	Docs          []Documentation
}

// Documentation describes an operator, function, or number type for users.
type Documentation struct {
	// Name is the function name, operator symbol, or type name.
	Name string `yaml:"name"`
	// Kind is "function", "operator", or "number type".
	Kind string `yaml:"kind"`
	// Syntax shows how to use it, e.g. "sqrt(x)".
	Syntax string `yaml:"syntax"`
	// Description explains what it does.
	Description string `yaml:"description"`
	// Plugin is the name of the plugin that provides it. The registry fills
	// it in.
	Plugin string `yaml:"plugin"`
}

// Listener is notified when a registry loads or unloads its tables.
// Listeners are called synchronously, in the order they were added.
type Listener interface {
	// OnLoad is called after the registry has loaded.
	OnLoad(r *Registry)
	// OnUnload is called before the registry unloads.
	OnUnload(r *Registry)
}

type opKey struct {
	sym string
	fix Fixity
}

// Registry maps names and symbols to the operators, functions, and number
// types of its enabled plugins.
//
// Lookups are safe for concurrent use, but Load, Unload, and Reload are not
// safe to call concurrently with anything else, including evaluations that
// use the registry.
type Registry struct {
	log       *slog.Logger
	plugins   []*Plugin
	listeners []Listener

	loaded    bool
	disabled  map[string]bool
	ops       map[opKey]*NumberOperator
	treeOps   map[opKey]*TreeOperator
	info      map[opKey]OpInfo
	funcs     map[string]NumberFunction
	treeFuncs map[string]TreeFunction
	types     map[string]*NumberType
	typeList  []*NumberType
	byGo      map[reflect.Type]*NumberType
	docs      []Documentation
	syms      []string
}

// NewRegistry creates an unloaded registry over a static list of plugins. If
// log is nil, the registry logs to slog.Default().
func NewRegistry(log *slog.Logger, plugins ...*Plugin) *Registry {
	if log == nil {
		log = slog.Default()
	}
	return &Registry{log: log, plugins: plugins}
}

// AddListener adds a listener. If the registry is already loaded, the
// listener's OnLoad is called immediately.
func (r *Registry) AddListener(l Listener) {
	r.listeners = append(r.listeners, l)
	if r.loaded {
		l.OnLoad(r)
	}
}

// RemoveListener removes a listener without notifying it.
func (r *Registry) RemoveListener(l Listener) {
	for i, x := range r.listeners {
		if x == l {
			r.listeners = append(r.listeners[:i:i], r.listeners[i+1:]...)
			return
		}
	}
}

// Loaded reports whether the registry is loaded.
func (r *Registry) Loaded() bool {
	return r.loaded
}

// Load builds the registry tables from every plugin not named in disabled,
// then notifies listeners. Loading an already loaded registry unloads it
// first.
func (r *Registry) Load(disabled []string) {
	if r.loaded {
		r.Unload()
	}
	r.disabled = make(map[string]bool, len(disabled))
	for _, name := range disabled {
		r.disabled[name] = true
	}
	r.ops = make(map[opKey]*NumberOperator)
	r.treeOps = make(map[opKey]*TreeOperator)
	r.info = make(map[opKey]OpInfo)
	r.funcs = make(map[string]NumberFunction)
	r.treeFuncs = make(map[string]TreeFunction)
	r.types = make(map[string]*NumberType)
	r.typeList = nil
	r.byGo = make(map[reflect.Type]*NumberType)
	r.docs = nil
	syms := make(map[string]bool)
	for _, p := range r.plugins {
		if r.disabled[p.Name] {
			r.log.Info("plugin disabled", slog.String("plugin", p.Name))
			continue
		}
		for _, t := range p.Types {
			if old := r.types[t.Name]; old != nil {
				r.log.Warn("number type redefined", slog.String("type", t.Name), slog.String("plugin", p.Name))
				r.removeType(old)
			}
			r.types[t.Name] = t
			r.typeList = append(r.typeList, t)
			r.byGo[t.goType()] = t
		}
		for _, op := range p.Operators {
			k := opKey{op.Symbol, op.Fixity}
			if r.ops[k] != nil || r.treeOps[k] != nil {
				r.log.Warn("operator redefined", slog.String("op", op.Symbol), slog.String("fixity", op.Fixity.String()), slog.String("plugin", p.Name))
				delete(r.treeOps, k)
			}
			r.ops[k] = op
			r.info[k] = op.info(false)
			syms[op.Symbol] = true
		}
		for _, op := range p.TreeOperators {
			k := opKey{op.Symbol, op.Fixity}
			if r.ops[k] != nil || r.treeOps[k] != nil {
				r.log.Warn("operator redefined", slog.String("op", op.Symbol), slog.String("fixity", op.Fixity.String()), slog.String("plugin", p.Name))
				delete(r.ops, k)
			}
			r.treeOps[k] = op
			r.info[k] = op.info(true)
			syms[op.Symbol] = true
		}
		for name, fn := range p.Functions {
			if r.funcs[name] != nil || r.treeFuncs[name] != nil {
				r.log.Warn("function redefined", slog.String("func", name), slog.String("plugin", p.Name))
				delete(r.treeFuncs, name)
			}
			r.funcs[name] = fn
		}
		for name, fn := range p.TreeFunctions {
			if r.funcs[name] != nil || r.treeFuncs[name] != nil {
				r.log.Warn("function redefined", slog.String("func", name), slog.String("plugin", p.Name))
				delete(r.funcs, name)
			}
			r.treeFuncs[name] = fn
		}
		for _, d := range p.Docs {
			d.Plugin = p.Name
			r.docs = append(r.docs, d)
		}
		r.log.Debug("plugin loaded", slog.String("plugin", p.Name),
			slog.Int("types", len(p.Types)),
			slog.Int("operators", len(p.Operators)+len(p.TreeOperators)),
			slog.Int("functions", len(p.Functions)+len(p.TreeFunctions)),
		)
	}
	r.syms = r.syms[:0]
	for s := range syms {
		r.syms = append(r.syms, s)
	}
	sortsyms(r.syms)
	r.loaded = true
	for _, l := range r.listeners {
		l.OnLoad(r)
	}
}

func (r *Registry) removeType(t *NumberType) {
	for i, x := range r.typeList {
		if x == t {
			r.typeList = append(r.typeList[:i:i], r.typeList[i+1:]...)
			break
		}
	}
	delete(r.byGo, t.goType())
}

// Unload notifies listeners, then clears the registry tables. After Unload,
// every lookup fails until the next Load.
func (r *Registry) Unload() {
	if !r.loaded {
		return
	}
	for _, l := range r.listeners {
		l.OnUnload(r)
	}
	r.loaded = false
	r.ops, r.treeOps, r.info = nil, nil, nil
	r.funcs, r.treeFuncs = nil, nil
	r.types, r.typeList, r.byGo = nil, nil, nil
	r.docs, r.syms = nil, nil
}

// Reload unloads and loads the registry with a new set of disabled plugins.
func (r *Registry) Reload(disabled []string) {
	r.Unload()
	r.Load(disabled)
}

// Plugins returns the names of all plugins known to the registry, enabled or
// not, in registration order.
func (r *Registry) Plugins() []string {
	names := make([]string, len(r.plugins))
	for i, p := range r.plugins {
		names[i] = p.Name
	}
	return names
}

// Enabled reports whether the named plugin is loaded.
func (r *Registry) Enabled(plugin string) bool {
	if !r.loaded {
		return false
	}
	for _, p := range r.plugins {
		if p.Name == plugin {
			return !r.disabled[plugin]
		}
	}
	return false
}

// Operator returns the number operator with the given symbol and fixity.
func (r *Registry) Operator(sym string, fix Fixity) (*NumberOperator, error) {
	if op := r.ops[opKey{sym, fix}]; op != nil {
		return op, nil
	}
	return nil, &LookupError{Kind: fix.String() + " operator", Name: sym}
}

// TreeOperator returns the tree operator with the given symbol and fixity.
func (r *Registry) TreeOperator(sym string, fix Fixity) (*TreeOperator, error) {
	if op := r.treeOps[opKey{sym, fix}]; op != nil {
		return op, nil
	}
	return nil, &LookupError{Kind: fix.String() + " tree operator", Name: sym}
}

// Function returns the named number function.
func (r *Registry) Function(name string) (NumberFunction, error) {
	if fn := r.funcs[name]; fn != nil {
		return fn, nil
	}
	return nil, &LookupError{Kind: "function", Name: name}
}

// TreeFunction returns the named tree function.
func (r *Registry) TreeFunction(name string) (TreeFunction, error) {
	if fn := r.treeFuncs[name]; fn != nil {
		return fn, nil
	}
	return nil, &LookupError{Kind: "tree function", Name: name}
}

// NumberType returns the named number type.
func (r *Registry) NumberType(name string) (*NumberType, error) {
	if t := r.types[name]; t != nil {
		return t, nil
	}
	return nil, &LookupError{Kind: "number type", Name: name}
}

// TypeOf returns the descriptor of the number type to which x belongs.
func (r *Registry) TypeOf(x Number) (*NumberType, error) {
	rt := reflect.TypeOf(x)
	if t := r.byGo[rt]; t != nil {
		return t, nil
	}
	name := "<nil>"
	if rt != nil {
		name = rt.String()
	}
	return nil, &LookupError{Kind: "number type", Name: name}
}

// Types returns the enabled number types in registration order.
func (r *Registry) Types() []*NumberType {
	return append([]*NumberType(nil), r.typeList...)
}

// DefaultType returns the first enabled number type, or nil if there are
// none.
func (r *Registry) DefaultType() *NumberType {
	if len(r.typeList) == 0 {
		return nil
	}
	return r.typeList[0]
}

// TypeNames returns the names of the enabled number types in registration
// order.
func (r *Registry) TypeNames() []string {
	names := make([]string, len(r.typeList))
	for i, t := range r.typeList {
		names[i] = t.Name
	}
	return names
}

// FunctionNames returns the sorted names of all enabled functions, including
// tree functions.
func (r *Registry) FunctionNames() []string {
	names := make([]string, 0, len(r.funcs)+len(r.treeFuncs))
	for k := range r.funcs {
		names = append(names, k)
	}
	for k := range r.treeFuncs {
		names = append(names, k)
	}
	slices.Sort(names)
	return names
}

// Symbols returns the symbols of all enabled operators, longest first.
func (r *Registry) Symbols() []string {
	return r.syms
}

// OperatorInfo returns the parsing information for an operator.
func (r *Registry) OperatorInfo(sym string, fix Fixity) (OpInfo, bool) {
	info, ok := r.info[opKey{sym, fix}]
	return info, ok
}

// IsTreeFunction reports whether name is an enabled tree function.
func (r *Registry) IsTreeFunction(name string) bool {
	return r.treeFuncs[name] != nil
}

// Doc returns the documentation for every enabled function, operator, or
// number type named name.
func (r *Registry) Doc(name string) []Documentation {
	var docs []Documentation
	for _, d := range r.docs {
		if d.Name == name {
			docs = append(docs, d)
		}
	}
	return docs
}

// Docs returns the documentation of everything enabled.
func (r *Registry) Docs() []Documentation {
	return append([]Documentation(nil), r.docs...)
}

var _ OperatorTable = (*Registry)(nil)

// sortsyms sorts operator symbols longest first, then lexically, so that the
// lexer can take the first match as the longest.
func sortsyms(syms []string) {
	slices.SortFunc(syms, func(a, b string) int {
		if c := cmp.Compare(utf8.RuneCountInString(b), utf8.RuneCountInString(a)); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})
}
