package abacus

// MaxDepth is the maximum number of definitions that may be expanded inside
// one another while reducing an expression.
const MaxDepth = 256

// Eval is the state of a single reduction. Operators and functions receive it
// to reduce subtrees, inspect and bind names, and perform checked arithmetic.
//
// An Eval belongs to one goroutine.
type Eval struct {
	Arith
	engine *Engine
	scope  *Scope
	depth  int
}

// Engine returns the engine running the evaluation.
func (e *Eval) Engine() *Engine {
	return e.engine
}

// Registry returns the registry of the engine running the evaluation.
func (e *Eval) Registry() *Registry {
	return e.engine.reg
}

// Scope returns the scope in which names are resolved and bound.
func (e *Eval) Scope() *Scope {
	return e.scope
}

// Type returns the active number type, or nil if there is none.
func (e *Eval) Type() *NumberType {
	return e.scope.NumberType()
}

// With returns an Eval which reduces in s instead of the current scope.
func (e *Eval) With(s *Scope) *Eval {
	r := *e
	r.scope = s
	return &r
}

// Num creates a number of the active type from literal text.
func (e *Eval) Num(text string) (Number, error) {
	t := e.Type()
	if t == nil {
		return nil, &NumberTypeError{Text: text}
	}
	return t.Parse(text)
}

// Reduce evaluates a node to a number.
func (e *Eval) Reduce(n Node) (Number, error) {
	e.Check()
	switch n := n.(type) {
	case *NumberLit:
		return e.Num(n.Text)
	case *Var:
		return e.lookup(n.Name)
	case *UnaryOp:
		op, err := e.engine.reg.Operator(n.Op, n.Fixity)
		if err != nil {
			return nil, err
		}
		return e.eager(n.Op, op.Fn, n.X)
	case *BinaryOp:
		op, err := e.engine.reg.Operator(n.Op, Infix)
		if err != nil {
			return nil, err
		}
		return e.eager(n.Op, op.Fn, n.L, n.R)
	case *FuncCall:
		fn, err := e.engine.reg.Function(n.Name)
		if err != nil {
			return nil, err
		}
		return e.eager(n.Name, fn, n.Args...)
	case *TreeUnaryOp:
		op, err := e.engine.reg.TreeOperator(n.Op, n.Fixity)
		if err != nil {
			return nil, err
		}
		return Apply(e, n.Op, op.Fn, []Node{n.X})
	case *TreeBinaryOp:
		op, err := e.engine.reg.TreeOperator(n.Op, Infix)
		if err != nil {
			return nil, err
		}
		return Apply(e, n.Op, op.Fn, []Node{n.L, n.R})
	case *TreeFuncCall:
		fn, err := e.engine.reg.TreeFunction(n.Name)
		if err != nil {
			return nil, err
		}
		return Apply(e, n.Name, fn, n.Args)
	default:
		panic("abacus: invalid AST node " + n.String())
	}
}

// lookup resolves a name to a variable, or else to a definition reduced in
// the current scope.
func (e *Eval) lookup(name string) (Number, error) {
	if e.Type() == nil {
		return nil, &NumberTypeError{Text: name}
	}
	if v, ok := e.scope.Var(name); ok {
		return v, nil
	}
	d, ok := e.scope.Def(name)
	if !ok {
		return nil, &NameError{Name: name}
	}
	if e.depth >= MaxDepth {
		return nil, &RecursionError{Name: name}
	}
	e.depth++
	defer func() { e.depth-- }()
	return e.Reduce(d)
}

// eager reduces args, promotes them to a common type, and applies fn.
func (e *Eval) eager(name string, fn NumberFunction, args ...Node) (Number, error) {
	vals := make([]Number, len(args))
	for i, a := range args {
		v, err := e.Reduce(a)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	p, err := e.engine.prom.Promote(vals...)
	if err != nil {
		return nil, err
	}
	return Apply(e, name, fn, p.Values)
}
