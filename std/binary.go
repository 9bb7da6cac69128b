package std

import (
	"math/big"

	"github.com/cockroachdb/apd/v3"
	"github.com/zephyrtronium/bigfloat"

	"github.com/zephyrtronium/abacus"
)

// BinaryPrec is the precision in bits of Binary numbers.
const BinaryPrec = 256

// Binary is a number type backed by a binary floating-point big.Float with
// BinaryPrec bits of mantissa.
type Binary struct {
	f *big.Float
}

// NewBinary creates a Binary with the value of f, rounded to BinaryPrec.
func NewBinary(f *big.Float) Binary {
	return Binary{newBinary().Set(f)}
}

func newBinary() *big.Float {
	return new(big.Float).SetPrec(BinaryPrec)
}

// BinaryType describes Binary.
var BinaryType = &abacus.NumberType{
	Name:     "binary",
	Priority: 10,
	Parse: func(text string) (abacus.Number, error) {
		f, _, err := newBinary().Parse(text, 10)
		if err != nil {
			return nil, err
		}
		return Binary{f}, nil
	},
	Pi: func() abacus.Number { return Binary{bigfloat.Pi(newBinary())} },
	Promotions: map[string]abacus.PromoteFunc{
		"precise": func(x abacus.Number) (abacus.Number, error) {
			f := x.(Binary).f
			if f.IsInf() {
				d := &apd.Decimal{Form: apd.Infinite, Negative: f.Signbit()}
				return Precise{d}, nil
			}
			d, _, err := preciseContext.NewFromString(f.Text('g', int(preciseContext.Precision)))
			if err != nil {
				return nil, &abacus.PromotionError{From: "binary", To: "precise"}
			}
			return Precise{d}, nil
		},
	},
	Sample: Binary{},
}

// undefined turns a NaN panic from math/big or bigfloat into a DomainError
// for the operation. It must be deferred directly.
func undefined(name string, args ...abacus.Number) {
	r := recover()
	switch r.(type) {
	case nil:
		return
	case big.ErrNaN, bigfloat.ErrNaN:
		panic(undefinedAt(name, args...))
	}
	panic(r)
}

// undefinedAt creates the DomainError for an operation with an undefined
// result.
func undefinedAt(name string, args ...abacus.Number) *abacus.DomainError {
	s := make([]string, len(args))
	for i, a := range args {
		s[i] = a.String()
	}
	return &abacus.DomainError{Name: name, Args: s, Arity: len(args)}
}

// Float returns a copy of the number as a big.Float.
func (x Binary) Float() *big.Float {
	return newBinary().Set(x.f)
}

func (x Binary) Add(y abacus.Number) abacus.Number {
	defer undefined("+", x, y)
	return Binary{newBinary().Add(x.f, y.(Binary).f)}
}

func (x Binary) Sub(y abacus.Number) abacus.Number {
	defer undefined("-", x, y)
	return Binary{newBinary().Sub(x.f, y.(Binary).f)}
}

func (x Binary) Mul(y abacus.Number) abacus.Number {
	defer undefined("*", x, y)
	return Binary{newBinary().Mul(x.f, y.(Binary).f)}
}

func (x Binary) Quo(y abacus.Number) abacus.Number {
	defer undefined("/", x, y)
	return Binary{newBinary().Quo(x.f, y.(Binary).f)}
}

func (x Binary) Neg() abacus.Number {
	return Binary{newBinary().Neg(x.f)}
}

// trunc rounds toward zero.
func (x Binary) trunc() *big.Float {
	if x.f.IsInt() || x.f.IsInf() {
		return newBinary().Set(x.f)
	}
	i, _ := x.f.Int(nil)
	return newBinary().SetInt(i)
}

func (x Binary) Floor() abacus.Number {
	t := x.trunc()
	if x.f.Cmp(t) < 0 {
		t.Sub(t, big.NewFloat(1))
	}
	return Binary{t}
}

func (x Binary) Ceil() abacus.Number {
	t := x.trunc()
	if x.f.Cmp(t) > 0 {
		t.Add(t, big.NewFloat(1))
	}
	return Binary{t}
}

func (x Binary) Frac() abacus.Number {
	return x.Sub(x.Floor())
}

func (x Binary) Int() (int64, bool) {
	if x.f.IsInf() {
		return 0, false
	}
	i, _ := x.f.Int(nil)
	if !i.IsInt64() {
		return 0, false
	}
	return i.Int64(), true
}

func (x Binary) IsInt() bool {
	return x.f.IsInt()
}

func (x Binary) Sign() int {
	return x.f.Sign()
}

func (x Binary) Cmp(y abacus.Number) int {
	return x.f.Cmp(y.(Binary).f)
}

// MaxPrecision is the number of decimal digits BinaryPrec bits can hold.
func (x Binary) MaxPrecision() int { return 77 }

func (x Binary) MaxError() abacus.Number {
	exp := x.f.MantExp(nil)
	if exp < 1 {
		exp = 1
	}
	return Binary{newBinary().SetMantExp(big.NewFloat(1), exp-BinaryPrec+8)}
}

func (x Binary) FromInt(n int64) abacus.Number {
	return Binary{newBinary().SetInt64(n)}
}

func (x Binary) String() string {
	return x.f.Text('g', 60)
}

// The bigfloat package gives exp and ln directly.

func (x Binary) Exp() abacus.Number {
	defer undefined("exp", x)
	return Binary{bigfloat.Exp(newBinary(), x.f)}
}

func (x Binary) Ln() abacus.Number {
	defer undefined("ln", x)
	return Binary{bigfloat.Log(newBinary(), x.f)}
}

func (x Binary) Sqrt() abacus.Number {
	defer undefined("sqrt", x)
	return Binary{newBinary().Sqrt(x.f)}
}
