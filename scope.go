package abacus

import (
	"slices"

	"github.com/mpvl/unique"
)

// Scope is a node in a tree of evaluation environments. Each scope holds its
// own variables, definitions, and optionally a number type, and falls back to
// its parent for anything it does not hold.
//
// Variables and definitions are resolved shadow-aware: the nearest scope that
// binds a name wins. The same goes for the number type. The name listings
// VarNames and DefNames, in contrast, are the union over the whole chain, so a
// name shadowed in a child is still listed once.
//
// A Scope is not safe for concurrent mutation. Scopes that share an ancestor
// may be used concurrently as long as no goroutine mutates a shared ancestor.
type Scope struct {
	parent *Scope
	vars   map[string]Number
	defs   map[string]Node
	typ    *NumberType
}

// NewScope creates a root scope with the given number type, which may be nil.
func NewScope(typ *NumberType) *Scope {
	return &Scope{typ: typ}
}

// Child creates a new scope whose parent is s.
func (s *Scope) Child() *Scope {
	return &Scope{parent: s}
}

// Parent returns the scope's parent, or nil for a root scope.
func (s *Scope) Parent() *Scope {
	return s.parent
}

// chainSearch walks from s toward the root and returns the first value that
// get reports as present.
func chainSearch[V any](s *Scope, get func(*Scope) (V, bool)) (V, bool) {
	for c := s; c != nil; c = c.parent {
		if v, ok := get(c); ok {
			return v, true
		}
	}
	var zero V
	return zero, false
}

// chainAccumulate collects the names get returns for s and every ancestor,
// sorted and without duplicates.
func chainAccumulate(s *Scope, get func(*Scope) []string) []string {
	var names []string
	for c := s; c != nil; c = c.parent {
		names = append(names, get(c)...)
	}
	unique.Strings(&names)
	return names
}

// Var looks up a variable.
func (s *Scope) Var(name string) (Number, bool) {
	return chainSearch(s, func(c *Scope) (Number, bool) {
		v, ok := c.vars[name]
		return v, ok
	})
}

// Def looks up a definition.
func (s *Scope) Def(name string) (Node, bool) {
	return chainSearch(s, func(c *Scope) (Node, bool) {
		n, ok := c.defs[name]
		return n, ok
	})
}

// NumberType returns the number type of the nearest scope that has one, or
// nil if none does.
func (s *Scope) NumberType() *NumberType {
	t, _ := chainSearch(s, func(c *Scope) (*NumberType, bool) {
		return c.typ, c.typ != nil
	})
	return t
}

// VarNames returns the names of variables visible from s.
func (s *Scope) VarNames() []string {
	return chainAccumulate(s, (*Scope).LocalVarNames)
}

// DefNames returns the names of definitions visible from s.
func (s *Scope) DefNames() []string {
	return chainAccumulate(s, (*Scope).LocalDefNames)
}

// LocalVarNames returns the names of variables bound in s itself.
func (s *Scope) LocalVarNames() []string {
	names := make([]string, 0, len(s.vars))
	for k := range s.vars {
		names = append(names, k)
	}
	slices.Sort(names)
	return names
}

// LocalDefNames returns the names of definitions bound in s itself.
func (s *Scope) LocalDefNames() []string {
	names := make([]string, 0, len(s.defs))
	for k := range s.defs {
		names = append(names, k)
	}
	slices.Sort(names)
	return names
}

// LocalNumberType returns the number type set on s itself, ignoring parents.
func (s *Scope) LocalNumberType() *NumberType {
	return s.typ
}

// SetVar binds a variable in s. A definition of the same name in s is
// removed so that the variable is what the name refers to.
func (s *Scope) SetVar(name string, v Number) {
	if s.vars == nil {
		s.vars = make(map[string]Number)
	}
	s.vars[name] = v
	delete(s.defs, name)
}

// SetDef binds a definition in s. A variable of the same name in s is
// removed so that the definition is what the name refers to.
func (s *Scope) SetDef(name string, n Node) {
	if s.defs == nil {
		s.defs = make(map[string]Node)
	}
	s.defs[name] = n
	delete(s.vars, name)
}

// SetNumberType sets the number type of s. A nil type makes s inherit its
// parent's.
func (s *Scope) SetNumberType(t *NumberType) {
	s.typ = t
}

// ClearVars removes the variables bound in s.
func (s *Scope) ClearVars() {
	s.vars = nil
}

// ClearDefs removes the definitions bound in s.
func (s *Scope) ClearDefs() {
	s.defs = nil
}

// Apply copies other's number type, if it has one, and all variables and
// definitions bound directly in other into s. Bindings from other replace
// those in s with the same name.
func (s *Scope) Apply(other *Scope) {
	if other.typ != nil {
		s.typ = other.typ
	}
	for _, name := range other.LocalVarNames() {
		s.SetVar(name, other.vars[name])
	}
	for _, name := range other.LocalDefNames() {
		s.SetDef(name, other.defs[name])
	}
}
