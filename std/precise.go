package std

import (
	"github.com/cockroachdb/apd/v3"
	"github.com/zephyrtronium/bigfloat"

	"github.com/zephyrtronium/abacus"
)

// PrecisePrec is the number of decimal digits to which Precise numbers are
// computed. They are displayed with PreciseDigits digits.
const (
	PrecisePrec   = 65
	PreciseDigits = 50
)

var (
	preciseContext = quietContext(PrecisePrec)
	displayContext = quietContext(PreciseDigits)
)

// quietContext creates a context which reports exceptional results as
// infinities and NaNs instead of errors.
func quietContext(prec uint32) *apd.Context {
	c := apd.BaseContext.WithPrecision(prec)
	c.Traps = 0
	return c
}

// Precise is a number type backed by a decimal apd.Decimal.
type Precise struct {
	d *apd.Decimal
}

// NewPrecise creates a Precise with the value of d, rounded to PrecisePrec
// digits.
func NewPrecise(d *apd.Decimal) Precise {
	r := new(apd.Decimal)
	preciseContext.Round(r, d)
	return Precise{r}
}

// PreciseType describes Precise.
var PreciseType = &abacus.NumberType{
	Name:     "precise",
	Priority: 20,
	Parse: func(text string) (abacus.Number, error) {
		d, _, err := preciseContext.NewFromString(text)
		if err != nil {
			return nil, err
		}
		return Precise{d}, nil
	},
	Pi: func() abacus.Number {
		d, _, _ := preciseContext.NewFromString(bigfloat.Pi(newBinary()).Text('g', PrecisePrec+2))
		return Precise{d}
	},
	Sample: Precise{},
}

// Decimal returns a copy of the number as an apd.Decimal.
func (x Precise) Decimal() *apd.Decimal {
	return new(apd.Decimal).Set(x.d)
}

// op creates a new Precise from the result of f, which computes the
// operation name on args. An invalid operation, e.g. subtracting equal
// infinities, panics with a DomainError, and an error from apd panics with an
// ArithmeticError.
func op(name string, f func(d *apd.Decimal) (apd.Condition, error), args ...abacus.Number) Precise {
	d := new(apd.Decimal)
	c, err := f(d)
	if err != nil {
		panic(&abacus.ArithmeticError{Op: name, Err: err})
	}
	if c.InvalidOperation() || d.Form == apd.NaN || d.Form == apd.NaNSignaling {
		panic(undefinedAt(name, args...))
	}
	return Precise{d}
}

func (x Precise) Add(y abacus.Number) abacus.Number {
	return op("+", func(d *apd.Decimal) (apd.Condition, error) { return preciseContext.Add(d, x.d, y.(Precise).d) }, x, y)
}

func (x Precise) Sub(y abacus.Number) abacus.Number {
	return op("-", func(d *apd.Decimal) (apd.Condition, error) { return preciseContext.Sub(d, x.d, y.(Precise).d) }, x, y)
}

func (x Precise) Mul(y abacus.Number) abacus.Number {
	return op("*", func(d *apd.Decimal) (apd.Condition, error) { return preciseContext.Mul(d, x.d, y.(Precise).d) }, x, y)
}

func (x Precise) Quo(y abacus.Number) abacus.Number {
	return op("/", func(d *apd.Decimal) (apd.Condition, error) { return preciseContext.Quo(d, x.d, y.(Precise).d) }, x, y)
}

func (x Precise) Neg() abacus.Number {
	return op("-", func(d *apd.Decimal) (apd.Condition, error) { return preciseContext.Neg(d, x.d) }, x)
}

func (x Precise) Floor() abacus.Number {
	if x.d.Form != apd.Finite {
		return x
	}
	return op("floor", func(d *apd.Decimal) (apd.Condition, error) { return preciseContext.Floor(d, x.d) }, x)
}

func (x Precise) Ceil() abacus.Number {
	if x.d.Form != apd.Finite {
		return x
	}
	return op("ceil", func(d *apd.Decimal) (apd.Condition, error) { return preciseContext.Ceil(d, x.d) }, x)
}

func (x Precise) Frac() abacus.Number {
	return x.Sub(x.Floor())
}

func (x Precise) Int() (int64, bool) {
	if x.d.Form != apd.Finite {
		return 0, false
	}
	c := *preciseContext
	c.Rounding = apd.RoundDown
	var i apd.Decimal
	c.RoundToIntegralValue(&i, x.d)
	n, err := i.Int64()
	return n, err == nil
}

func (x Precise) IsInt() bool {
	if x.d.Form != apd.Finite {
		return false
	}
	var f apd.Decimal
	preciseContext.Floor(&f, x.d)
	return f.Cmp(x.d) == 0
}

func (x Precise) Sign() int {
	return x.d.Sign()
}

func (x Precise) Cmp(y abacus.Number) int {
	return x.d.Cmp(y.(Precise).d)
}

func (x Precise) MaxPrecision() int { return PrecisePrec }

func (x Precise) MaxError() abacus.Number {
	adj := int64(0)
	if x.d.Form == apd.Finite && !x.d.IsZero() {
		adj = int64(x.d.Exponent) + x.d.NumDigits() - 1
	}
	if adj < 0 {
		adj = 0
	}
	return Precise{apd.New(1, int32(adj-PrecisePrec+5))}
}

func (x Precise) FromInt(n int64) abacus.Number {
	return Precise{apd.New(n, 0)}
}

// String formats the number rounded to PreciseDigits digits, in plain
// notation unless the exponent is very large or small.
func (x Precise) String() string {
	if x.d.Form != apd.Finite {
		return x.d.String()
	}
	var d apd.Decimal
	displayContext.Round(&d, x.d)
	d.Reduce(&d)
	if d.IsZero() {
		return "0"
	}
	adj := int64(d.Exponent) + d.NumDigits() - 1
	if adj < -10 || adj >= PreciseDigits {
		return d.Text('G')
	}
	return d.Text('f')
}

// The apd package gives exp, ln, and square roots directly.

func (x Precise) Exp() abacus.Number {
	return op("exp", func(d *apd.Decimal) (apd.Condition, error) { return preciseContext.Exp(d, x.d) }, x)
}

func (x Precise) Ln() abacus.Number {
	return op("ln", func(d *apd.Decimal) (apd.Condition, error) { return preciseContext.Ln(d, x.d) }, x)
}

func (x Precise) Sqrt() abacus.Number {
	return op("sqrt", func(d *apd.Decimal) (apd.Condition, error) { return preciseContext.Sqrt(d, x.d) }, x)
}
