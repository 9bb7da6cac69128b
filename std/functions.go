package std

import (
	"math/rand/v2"

	"github.com/zephyrtronium/abacus"
)

// Functions returns the standard number functions.
func Functions() map[string]abacus.NumberFunction {
	return map[string]abacus.NumberFunction{
		"abs":        abacus.Monadic(abs, nil),
		"exp":        abacus.Monadic(Exp, nil),
		"ln":         abacus.Monadic(Ln, positive),
		"sqrt":       abacus.Monadic(Sqrt, nonnegative),
		"sin":        partial{"sin", Sin, nil},
		"cos":        partial{"cos", Cos, nil},
		"tan":        partial{"tan", tan, nil},
		"sec":        partial{"sec", sec, nil},
		"csc":        partial{"csc", csc, nil},
		"cot":        partial{"cot", cot, nil},
		"arcsin":     partial{"arcsin", arcsin, unit},
		"arccos":     partial{"arccos", arccos, unit},
		"arctan":     partial{"arctan", Atan, nil},
		"arcsec":     partial{"arcsec", arcsec, beyondUnit},
		"arccsc":     partial{"arccsc", arccsc, beyondUnit},
		"arccot":     partial{"arccot", arccot, nil},
		"random_int": abacus.Monadic(randomInt, natural),
		"pi":         abacus.Func{Arity: 0, Domain: typed, Fn: pi},
	}
}

// TreeFunctions returns the standard tree functions, the series sum and
// product.
func TreeFunctions() map[string]abacus.TreeFunction {
	return map[string]abacus.TreeFunction{
		"sum":  series{name: "sum", zero: 0, step: add},
		"prod": series{name: "prod", zero: 1, step: mul},
	}
}

// partial is a function of one number which may turn out to be undefined at
// its argument only while computing it, e.g. tan at π/2.
type partial struct {
	name   string
	f      func(e *abacus.Eval, x abacus.Number) (abacus.Number, error)
	domain func(e *abacus.Eval, x abacus.Number) bool
}

func (p partial) Matches(e *abacus.Eval, args []abacus.Number) bool {
	return len(args) == 1 && (p.domain == nil || p.domain(e, args[0]))
}

func (p partial) Apply(e *abacus.Eval, args []abacus.Number) (abacus.Number, error) {
	r, err := p.f(e, args[0])
	if err == errUndefined {
		return nil, &abacus.DomainError{Name: p.name, Args: []string{args[0].String()}, Arity: 1}
	}
	return r, err
}

// errUndefined is returned by partial functions at a pole.
var errUndefined = &abacus.DomainError{}

func abs(e *abacus.Eval, x abacus.Number) abacus.Number { return e.Abs(x) }

func positive(e *abacus.Eval, x abacus.Number) bool    { return x.Sign() > 0 }
func nonnegative(e *abacus.Eval, x abacus.Number) bool { return x.Sign() >= 0 }

func unit(e *abacus.Eval, x abacus.Number) bool {
	return e.Abs(x).Cmp(x.FromInt(1)) <= 0
}

func beyondUnit(e *abacus.Eval, x abacus.Number) bool {
	return e.Abs(x).Cmp(x.FromInt(1)) >= 0
}

func tan(e *abacus.Eval, x abacus.Number) (abacus.Number, error) {
	s, c, err := sincos(e, x)
	if err != nil {
		return nil, err
	}
	if c.Sign() == 0 {
		return nil, errUndefined
	}
	return e.Quo(s, c), nil
}

func sec(e *abacus.Eval, x abacus.Number) (abacus.Number, error) {
	c, err := Cos(e, x)
	if err != nil {
		return nil, err
	}
	if c.Sign() == 0 {
		return nil, errUndefined
	}
	return e.Quo(x.FromInt(1), c), nil
}

func csc(e *abacus.Eval, x abacus.Number) (abacus.Number, error) {
	s, err := Sin(e, x)
	if err != nil {
		return nil, err
	}
	if s.Sign() == 0 {
		return nil, errUndefined
	}
	return e.Quo(x.FromInt(1), s), nil
}

func cot(e *abacus.Eval, x abacus.Number) (abacus.Number, error) {
	s, c, err := sincos(e, x)
	if err != nil {
		return nil, err
	}
	if s.Sign() == 0 {
		return nil, errUndefined
	}
	return e.Quo(c, s), nil
}

func sincos(e *abacus.Eval, x abacus.Number) (s, c abacus.Number, err error) {
	s, err = Sin(e, x)
	if err != nil {
		return nil, nil, err
	}
	c, err = Cos(e, x)
	return s, c, err
}

// arcsin uses arcsin(x) = arctan(x / sqrt(1 - x²)), with ±π/2 at ±1.
func arcsin(e *abacus.Eval, x abacus.Number) (abacus.Number, error) {
	one := x.FromInt(1)
	if e.Abs(x).Cmp(one) == 0 {
		pi, err := piOf(e, x)
		if err != nil {
			return nil, err
		}
		r := e.Quo(pi, x.FromInt(2))
		if x.Sign() < 0 {
			r = e.Neg(r)
		}
		return r, nil
	}
	return Atan(e, e.Quo(x, Sqrt(e, e.Sub(one, e.Mul(x, x)))))
}

func arccos(e *abacus.Eval, x abacus.Number) (abacus.Number, error) {
	s, err := arcsin(e, x)
	if err != nil {
		return nil, err
	}
	pi, err := piOf(e, x)
	if err != nil {
		return nil, err
	}
	return e.Sub(e.Quo(pi, x.FromInt(2)), s), nil
}

func arcsec(e *abacus.Eval, x abacus.Number) (abacus.Number, error) {
	return arccos(e, e.Quo(x.FromInt(1), x))
}

func arccsc(e *abacus.Eval, x abacus.Number) (abacus.Number, error) {
	return arcsin(e, e.Quo(x.FromInt(1), x))
}

// arccot takes values in (0, π), continuous at 0.
func arccot(e *abacus.Eval, x abacus.Number) (abacus.Number, error) {
	t, err := Atan(e, x)
	if err != nil {
		return nil, err
	}
	pi, err := piOf(e, x)
	if err != nil {
		return nil, err
	}
	return e.Sub(e.Quo(pi, x.FromInt(2)), t), nil
}

// randomInt returns a uniformly random integer between 0 and x inclusive.
func randomInt(e *abacus.Eval, x abacus.Number) abacus.Number {
	n, _ := x.Int()
	if n == 1<<63-1 {
		return x.FromInt(rand.Int64())
	}
	return x.FromInt(rand.Int64N(n + 1))
}

func typed(e *abacus.Eval, args []abacus.Number) bool {
	return e.Type() != nil
}

func pi(e *abacus.Eval, args []abacus.Number) abacus.Number {
	return e.Type().Pi()
}

// series implements sum(i, lo, hi, expr) and prod(i, lo, hi, expr). The
// expression is reduced once for each integer i from lo to hi inclusive in a
// child scope where i is bound, and the results are combined with step.
type series struct {
	name string
	zero int64
	step func(e *abacus.Eval, x, y abacus.Number) abacus.Number
}

func (s series) Matches(e *abacus.Eval, args []abacus.Node) bool {
	return len(args) == 4 && isVar(args[0])
}

func (s series) Apply(e *abacus.Eval, args []abacus.Node) (abacus.Number, error) {
	name := args[0].(*abacus.Var).Name
	lo, err := e.Reduce(args[1])
	if err != nil {
		return nil, err
	}
	hi, err := e.Reduce(args[2])
	if err != nil {
		return nil, err
	}
	p, err := e.Engine().Promoter().Promote(lo, hi)
	if err != nil {
		return nil, err
	}
	lo, hi = p.Values[0], p.Values[1]
	a, aok := lo.Int()
	b, bok := hi.Int()
	if !aok || !bok || !lo.IsInt() || !hi.IsInt() {
		return nil, &abacus.DomainError{Name: s.name, Args: []string{name, lo.String(), hi.String(), args[3].String()}, Arity: 4}
	}
	child := e.Scope().Child()
	ce := e.With(child)
	acc := lo.FromInt(s.zero)
	for i := a; i <= b; i++ {
		child.SetVar(name, lo.FromInt(i))
		v, err := ce.Reduce(args[3])
		if err != nil {
			return nil, err
		}
		q, err := e.Engine().Promoter().Promote(acc, v)
		if err != nil {
			return nil, err
		}
		acc = s.step(e, q.Values[0], q.Values[1])
		if i == 1<<63-1 {
			break
		}
	}
	return acc, nil
}
