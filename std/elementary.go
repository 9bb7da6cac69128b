package std

import (
	"github.com/zephyrtronium/abacus"
)

// Number types may implement any of these to provide elementary functions
// more quickly or precisely than the series used otherwise.
type (
	exper   interface{ Exp() abacus.Number }
	lner    interface{ Ln() abacus.Number }
	sqrter  interface{ Sqrt() abacus.Number }
	siner   interface{ Sin() abacus.Number }
	coser   interface{ Cos() abacus.Number }
	atanner interface{ Atan() abacus.Number }
)

// maxIntPow is the largest exponent Pow computes by repeated multiplication.
const maxIntPow = 1 << 20

// tolerance is the absolute error at which series for x stop.
func tolerance(x abacus.Number) abacus.Number {
	return x.FromInt(1).MaxError()
}

// piOf returns π in the type of x.
func piOf(e *abacus.Eval, x abacus.Number) (abacus.Number, error) {
	t, err := e.Registry().TypeOf(x)
	if err != nil {
		return nil, err
	}
	return t.Pi(), nil
}

// Exp computes e^x.
func Exp(e *abacus.Eval, x abacus.Number) abacus.Number {
	if f, ok := x.(exper); ok {
		e.Check()
		return f.Exp()
	}
	neg := x.Sign() < 0
	if neg {
		x = e.Neg(x)
	}
	one, two := x.FromInt(1), x.FromInt(2)
	half := e.Quo(one, two)
	k := 0
	for x.Cmp(half) > 0 {
		x = e.Quo(x, two)
		k++
	}
	tol := tolerance(x)
	sum, term := one, one
	for n := int64(1); ; n++ {
		term = e.Quo(e.Mul(term, x), x.FromInt(n))
		if term.Cmp(tol) <= 0 {
			break
		}
		sum = e.Add(sum, term)
	}
	for ; k > 0; k-- {
		sum = e.Mul(sum, sum)
	}
	if neg {
		sum = e.Quo(one, sum)
	}
	return sum
}

// Ln computes the natural logarithm of x, which must be positive.
func Ln(e *abacus.Eval, x abacus.Number) abacus.Number {
	if f, ok := x.(lner); ok {
		e.Check()
		return f.Ln()
	}
	one, two := x.FromInt(1), x.FromInt(2)
	half := e.Quo(one, two)
	// x = m * 2^k with 1/2 <= m <= 2
	k := int64(0)
	for x.Cmp(two) > 0 {
		x = e.Quo(x, two)
		k++
	}
	for x.Cmp(half) < 0 {
		x = e.Mul(x, two)
		k--
	}
	r := atanh2(e, e.Quo(e.Sub(x, one), e.Add(x, one)))
	if k != 0 {
		ln2 := atanh2(e, e.Quo(one, x.FromInt(3)))
		r = e.Add(r, e.Mul(ln2, x.FromInt(k)))
	}
	return r
}

// atanh2 computes 2 atanh(y) = ln((1+y)/(1-y)) for small |y|.
func atanh2(e *abacus.Eval, y abacus.Number) abacus.Number {
	y2 := e.Mul(y, y)
	pow, sum := y, y
	tol := tolerance(y)
	for n := int64(3); ; n += 2 {
		pow = e.Mul(pow, y2)
		term := e.Quo(pow, y.FromInt(n))
		if e.Abs(term).Cmp(tol) <= 0 {
			break
		}
		sum = e.Add(sum, term)
	}
	return e.Add(sum, sum)
}

// Sqrt computes the square root of x, which must not be negative.
func Sqrt(e *abacus.Eval, x abacus.Number) abacus.Number {
	if f, ok := x.(sqrter); ok {
		e.Check()
		return f.Sqrt()
	}
	if x.Sign() == 0 {
		return x
	}
	one, two := x.FromInt(1), x.FromInt(2)
	g := x
	if x.Cmp(one) < 0 {
		g = one
	}
	// Newton's method from above decreases until it reaches the root.
	for i := 0; i < 10000; i++ {
		next := e.Quo(e.Add(g, e.Quo(x, g)), two)
		if next.Cmp(g) >= 0 {
			break
		}
		g = next
	}
	return g
}

// Sin computes the sine of x in radians.
func Sin(e *abacus.Eval, x abacus.Number) (abacus.Number, error) {
	if f, ok := x.(siner); ok {
		e.Check()
		return f.Sin(), nil
	}
	pi, err := piOf(e, x)
	if err != nil {
		return nil, err
	}
	return sinSeries(e, reduceAngle(e, x, pi)), nil
}

// Cos computes the cosine of x in radians.
func Cos(e *abacus.Eval, x abacus.Number) (abacus.Number, error) {
	if f, ok := x.(coser); ok {
		e.Check()
		return f.Cos(), nil
	}
	pi, err := piOf(e, x)
	if err != nil {
		return nil, err
	}
	x = e.Add(x, e.Quo(pi, x.FromInt(2)))
	return sinSeries(e, reduceAngle(e, x, pi)), nil
}

// reduceAngle maps x to an angle in [-π/2, π/2] with the same sine.
func reduceAngle(e *abacus.Eval, x, pi abacus.Number) abacus.Number {
	two := x.FromInt(2)
	tau := e.Mul(pi, two)
	x = e.Sub(x, e.Mul(e.Floor(e.Quo(x, tau)), tau))
	if x.Cmp(pi) > 0 {
		x = e.Sub(x, tau)
	}
	halfPi := e.Quo(pi, two)
	switch {
	case x.Cmp(halfPi) > 0:
		x = e.Sub(pi, x)
	case x.Cmp(e.Neg(halfPi)) < 0:
		x = e.Sub(e.Neg(pi), x)
	}
	return x
}

func sinSeries(e *abacus.Eval, x abacus.Number) abacus.Number {
	x2 := e.Mul(x, x)
	term, sum := x, x
	tol := tolerance(x)
	for n := int64(1); ; n++ {
		term = e.Quo(e.Neg(e.Mul(term, x2)), x.FromInt(2*n*(2*n+1)))
		if e.Abs(term).Cmp(tol) <= 0 {
			break
		}
		sum = e.Add(sum, term)
	}
	return sum
}

// Atan computes the arctangent of x in radians.
func Atan(e *abacus.Eval, x abacus.Number) (abacus.Number, error) {
	if f, ok := x.(atanner); ok {
		e.Check()
		return f.Atan(), nil
	}
	pi, err := piOf(e, x)
	if err != nil {
		return nil, err
	}
	one := x.FromInt(1)
	neg := x.Sign() < 0
	if neg {
		x = e.Neg(x)
	}
	inv := x.Cmp(one) > 0
	if inv {
		x = e.Quo(one, x)
	}
	// atan(x) = 2 atan(x / (1 + sqrt(1 + x²))), twice, for |x| <= tan(π/16).
	for i := 0; i < 2; i++ {
		x = e.Quo(x, e.Add(one, Sqrt(e, e.Add(one, e.Mul(x, x)))))
	}
	x2 := e.Mul(x, x)
	pow, sum := x, x
	tol := tolerance(x)
	for n := int64(3); ; n += 2 {
		pow = e.Neg(e.Mul(pow, x2))
		term := e.Quo(pow, x.FromInt(n))
		if e.Abs(term).Cmp(tol) <= 0 {
			break
		}
		sum = e.Add(sum, term)
	}
	r := e.Mul(sum, x.FromInt(4))
	if inv {
		r = e.Sub(e.Quo(pi, x.FromInt(2)), r)
	}
	if neg {
		r = e.Neg(r)
	}
	return r, nil
}

// Pow computes x^y. The caller must ensure that x is nonzero or y is
// positive, and that x is non-negative or y is an integer.
func Pow(e *abacus.Eval, x, y abacus.Number) abacus.Number {
	if x.Sign() == 0 {
		return x.FromInt(0)
	}
	if y.IsInt() {
		if n, ok := y.Int(); ok && -maxIntPow <= n && n <= maxIntPow {
			return e.IntPow(x, n)
		}
		// Huge integer exponents go through exp and ln, with the sign from
		// the parity of y.
		r := Exp(e, e.Mul(y, Ln(e, e.Abs(x))))
		if x.Sign() < 0 && !e.Quo(y, y.FromInt(2)).IsInt() {
			r = e.Neg(r)
		}
		return r
	}
	ip := e.Floor(y)
	frac := e.Sub(y, ip)
	n, ok := ip.Int()
	if !ok || n < -maxIntPow || n > maxIntPow {
		return Exp(e, e.Mul(y, Ln(e, x)))
	}
	return e.Mul(e.IntPow(x, n), Exp(e, e.Mul(frac, Ln(e, x))))
}
