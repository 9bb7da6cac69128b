package abacus

// Applicable is something that can be applied to a list of arguments. Number
// operators and functions take arguments of type Number, which the reducer
// evaluates before the call. Tree operators and functions take arguments of
// type Node and decide themselves whether and when to reduce them.
type Applicable[T any] interface {
	// Matches reports whether the arguments are in the domain of the
	// applicable, including whether there is the right number of them.
	Matches(e *Eval, args []T) bool
	// Apply computes the result. It is only called with arguments for which
	// Matches returned true.
	Apply(e *Eval, args []T) (Number, error)
}

type (
	// NumberFunction is an eager function over numbers.
	NumberFunction = Applicable[Number]
	// TreeFunction is a lazy function over unevaluated subtrees.
	TreeFunction = Applicable[Node]
)

// Fixity is the position of an operator relative to its operands.
type Fixity int8

const (
	// Infix operators are binary and appear between their operands.
	Infix Fixity = iota
	// Prefix operators are unary and appear before their operand.
	Prefix
	// Postfix operators are unary and appear after their operand.
	Postfix
)

func (f Fixity) String() string {
	switch f {
	case Infix:
		return "infix"
	case Prefix:
		return "prefix"
	case Postfix:
		return "postfix"
	default:
		return "Fixity(?)"
	}
}

// Assoc is the associativity of an infix operator.
type Assoc int8

const (
	Left Assoc = iota
	Right
)

// OpInfo is the parsing information for an operator.
type OpInfo struct {
	// Symbol is the text of the operator.
	Symbol string
	Fixity Fixity
	Assoc  Assoc
	// Prec is the precedence. Higher is more binding.
	Prec int
	// Tree indicates that the operator receives unevaluated subtrees.
	Tree bool
}

// moreBinding reports whether an operator on the stack must be applied before
// pushing cur.
func (p OpInfo) moreBinding(cur OpInfo) bool {
	if p.Prec != cur.Prec {
		return p.Prec > cur.Prec
	}
	return cur.Assoc == Left
}

// Operator is an Applicable with the information needed to parse it.
type Operator[T any] struct {
	Symbol string
	Fixity Fixity
	Assoc  Assoc
	Prec   int
	Fn     Applicable[T]
}

type (
	// NumberOperator is an eager operator over numbers.
	NumberOperator = Operator[Number]
	// TreeOperator is a lazy operator over unevaluated subtrees.
	TreeOperator = Operator[Node]
)

func (op *Operator[T]) info(tree bool) OpInfo {
	return OpInfo{Symbol: op.Symbol, Fixity: op.Fixity, Assoc: op.Assoc, Prec: op.Prec, Tree: tree}
}

// Apply applies a to args if they match, and otherwise returns a
// *DomainError naming the applicable.
func Apply[T any](e *Eval, name string, a Applicable[T], args []T) (Number, error) {
	if !a.Matches(e, args) {
		return nil, domainError(name, args)
	}
	return a.Apply(e, args)
}

func domainError[T any](name string, args []T) *DomainError {
	s := make([]string, len(args))
	for i, a := range args {
		if st, ok := any(a).(interface{ String() string }); ok {
			s[i] = st.String()
		}
	}
	return &DomainError{Name: name, Args: s, Arity: len(args)}
}

// Func adapts a plain Go function into a NumberFunction.
type Func struct {
	// Arity is the number of arguments required, or -1 for any number.
	Arity int
	// Domain, if not nil, further restricts the arguments. It is only called
	// with the right number of arguments.
	Domain func(e *Eval, args []Number) bool
	// Fn computes the result.
	Fn func(e *Eval, args []Number) Number
}

func (f Func) Matches(e *Eval, args []Number) bool {
	if f.Arity >= 0 && len(args) != f.Arity {
		return false
	}
	return f.Domain == nil || f.Domain(e, args)
}

func (f Func) Apply(e *Eval, args []Number) (Number, error) {
	return f.Fn(e, args), nil
}

// Monadic wraps a function of one argument into a NumberFunction. If domain is
// not nil, arguments for which it returns false are rejected.
func Monadic(f func(e *Eval, x Number) Number, domain func(e *Eval, x Number) bool) NumberFunction {
	fn := Func{
		Arity: 1,
		Fn:    func(e *Eval, args []Number) Number { return f(e, args[0]) },
	}
	if domain != nil {
		fn.Domain = func(e *Eval, args []Number) bool { return domain(e, args[0]) }
	}
	return fn
}

// Dyadic wraps a function of two arguments into a NumberFunction. If domain is
// not nil, arguments for which it returns false are rejected.
func Dyadic(f func(e *Eval, x, y Number) Number, domain func(e *Eval, x, y Number) bool) NumberFunction {
	fn := Func{
		Arity: 2,
		Fn:    func(e *Eval, args []Number) Number { return f(e, args[0], args[1]) },
	}
	if domain != nil {
		fn.Domain = func(e *Eval, args []Number) bool { return domain(e, args[0], args[1]) }
	}
	return fn
}

// Niladic wraps a function of zero arguments, generally a constant, into a
// NumberFunction.
func Niladic(f func(e *Eval) Number) NumberFunction {
	return Func{
		Arity: 0,
		Fn:    func(e *Eval, args []Number) Number { return f(e) },
	}
}
