package std

import (
	"github.com/zephyrtronium/abacus"
)

// Operator precedences.
const (
	PrecAssign    = 0
	PrecSum       = 10
	PrecProduct   = 20
	PrecNegate    = 30
	PrecPower     = 40
	PrecFactorial = 50
)

// Operators returns the standard number operators.
func Operators() []*abacus.NumberOperator {
	return []*abacus.NumberOperator{
		{Symbol: "+", Fixity: abacus.Infix, Assoc: abacus.Left, Prec: PrecSum, Fn: abacus.Dyadic(add, nil)},
		{Symbol: "-", Fixity: abacus.Infix, Assoc: abacus.Left, Prec: PrecSum, Fn: abacus.Dyadic(sub, nil)},
		{Symbol: "*", Fixity: abacus.Infix, Assoc: abacus.Left, Prec: PrecProduct, Fn: abacus.Dyadic(mul, nil)},
		{Symbol: "/", Fixity: abacus.Infix, Assoc: abacus.Left, Prec: PrecProduct, Fn: abacus.Dyadic(quo, nonzeroDivisor)},
		{Symbol: "nPr", Fixity: abacus.Infix, Assoc: abacus.Left, Prec: PrecProduct, Fn: abacus.Dyadic(npr, combinatoric)},
		{Symbol: "nCr", Fixity: abacus.Infix, Assoc: abacus.Left, Prec: PrecProduct, Fn: abacus.Dyadic(ncr, combinatoric)},
		{Symbol: "-", Fixity: abacus.Prefix, Assoc: abacus.Right, Prec: PrecNegate, Fn: abacus.Monadic(neg, nil)},
		{Symbol: "^", Fixity: abacus.Infix, Assoc: abacus.Right, Prec: PrecPower, Fn: abacus.Dyadic(Pow, powDomain)},
		{Symbol: "!", Fixity: abacus.Postfix, Assoc: abacus.Left, Prec: PrecFactorial, Fn: abacus.Monadic(Factorial, natural)},
	}
}

// TreeOperators returns the standard tree operators, assignment and
// definition.
func TreeOperators() []*abacus.TreeOperator {
	return []*abacus.TreeOperator{
		{Symbol: ":=", Fixity: abacus.Infix, Assoc: abacus.Right, Prec: PrecAssign, Fn: assign{}},
		{Symbol: ":-", Fixity: abacus.Infix, Assoc: abacus.Right, Prec: PrecAssign, Fn: define{}},
	}
}

func add(e *abacus.Eval, x, y abacus.Number) abacus.Number { return e.Add(x, y) }
func sub(e *abacus.Eval, x, y abacus.Number) abacus.Number { return e.Sub(x, y) }
func mul(e *abacus.Eval, x, y abacus.Number) abacus.Number { return e.Mul(x, y) }
func quo(e *abacus.Eval, x, y abacus.Number) abacus.Number { return e.Quo(x, y) }
func neg(e *abacus.Eval, x abacus.Number) abacus.Number    { return e.Neg(x) }

func nonzeroDivisor(e *abacus.Eval, x, y abacus.Number) bool {
	return y.Sign() != 0
}

func powDomain(e *abacus.Eval, x, y abacus.Number) bool {
	switch {
	case x.Sign() == 0:
		// 0^0 and 0^-n are undefined.
		return y.Sign() > 0
	case x.Sign() < 0:
		return y.IsInt()
	default:
		return true
	}
}

func natural(e *abacus.Eval, x abacus.Number) bool {
	_, ok := x.Int()
	return ok && x.IsInt() && x.Sign() >= 0
}

func combinatoric(e *abacus.Eval, n, k abacus.Number) bool {
	_, nok := n.Int()
	return nok && n.IsInt() && natural(e, k)
}

// Factorial computes x! by repeated multiplication. x must be a non-negative
// integer.
func Factorial(e *abacus.Eval, x abacus.Number) abacus.Number {
	n, _ := x.Int()
	r := x.FromInt(1)
	for i := int64(2); i <= n; i++ {
		r = e.Mul(r, x.FromInt(i))
	}
	return r
}

// npr computes the number of k-permutations of n, which is zero when there
// are fewer than k items.
func npr(e *abacus.Eval, n, k abacus.Number) abacus.Number {
	nn, _ := n.Int()
	kk, _ := k.Int()
	if nn < kk || nn < 0 {
		return n.FromInt(0)
	}
	r := n.FromInt(1)
	for i := nn; i > nn-kk; i-- {
		r = e.Mul(r, n.FromInt(i))
	}
	return r
}

func ncr(e *abacus.Eval, n, k abacus.Number) abacus.Number {
	return e.Quo(npr(e, n, k), Factorial(e, k))
}

// assign implements name := expr. The expression is reduced once and the
// result is bound as a variable.
type assign struct{}

func (assign) Matches(e *abacus.Eval, args []abacus.Node) bool {
	return len(args) == 2 && isVar(args[0])
}

func (assign) Apply(e *abacus.Eval, args []abacus.Node) (abacus.Number, error) {
	v, err := e.Reduce(args[1])
	if err != nil {
		return nil, err
	}
	e.Scope().SetVar(args[0].(*abacus.Var).Name, v)
	return v, nil
}

// define implements name :- expr. The expression is bound unevaluated as a
// definition and reduced once for display. The definition remains even if
// that reduction fails.
type define struct{}

func (define) Matches(e *abacus.Eval, args []abacus.Node) bool {
	return len(args) == 2 && isVar(args[0])
}

func (define) Apply(e *abacus.Eval, args []abacus.Node) (abacus.Number, error) {
	e.Scope().SetDef(args[0].(*abacus.Var).Name, args[1])
	return e.Reduce(args[1])
}

func isVar(n abacus.Node) bool {
	_, ok := n.(*abacus.Var)
	return ok
}
