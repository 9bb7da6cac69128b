package std

import (
	"errors"
	"math"
	"strconv"

	"github.com/zephyrtronium/abacus"
)

// Naive is a number type backed by float64. It is fast and imprecise.
type Naive float64

// NaiveType describes Naive.
var NaiveType = &abacus.NumberType{
	Name:     "naive",
	Priority: 0,
	Parse: func(text string) (abacus.Number, error) {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return nil, err
		}
		return Naive(f), nil
	},
	Pi: func() abacus.Number { return Naive(math.Pi) },
	Promotions: map[string]abacus.PromoteFunc{
		"binary": func(x abacus.Number) (abacus.Number, error) {
			f := float64(x.(Naive))
			if math.IsNaN(f) {
				return nil, &abacus.PromotionError{From: "naive", To: "binary"}
			}
			return Binary{newBinary().SetFloat64(f)}, nil
		},
		"precise": func(x abacus.Number) (abacus.Number, error) {
			if math.IsNaN(float64(x.(Naive))) {
				return nil, &abacus.PromotionError{From: "naive", To: "precise"}
			}
			// Use the shortest decimal that rounds to x so that e.g. 0.1 stays
			// 0.1 rather than becoming its exact binary expansion.
			d, _, err := preciseContext.NewFromString(x.String())
			if err != nil {
				return nil, &abacus.PromotionError{From: "naive", To: "precise"}
			}
			return Precise{d}, nil
		},
	},
	Sample: Naive(0),
}

func (x Naive) Add(y abacus.Number) abacus.Number { return x + y.(Naive) }
func (x Naive) Sub(y abacus.Number) abacus.Number { return x - y.(Naive) }
func (x Naive) Mul(y abacus.Number) abacus.Number { return x * y.(Naive) }
func (x Naive) Quo(y abacus.Number) abacus.Number { return x / y.(Naive) }
func (x Naive) Neg() abacus.Number                { return -x }
func (x Naive) Floor() abacus.Number              { return Naive(math.Floor(float64(x))) }
func (x Naive) Ceil() abacus.Number               { return Naive(math.Ceil(float64(x))) }
func (x Naive) Frac() abacus.Number               { return x - Naive(math.Floor(float64(x))) }

func (x Naive) Int() (int64, bool) {
	t := math.Trunc(float64(x))
	if t < -(1<<63) || t >= 1<<63 || math.IsNaN(t) {
		return 0, false
	}
	return int64(t), true
}

func (x Naive) IsInt() bool {
	f := float64(x)
	return !math.IsInf(f, 0) && f == math.Trunc(f)
}

func (x Naive) Sign() int {
	switch {
	case x < 0:
		return -1
	case x > 0:
		return 1
	default:
		return 0
	}
}

func (x Naive) Cmp(y abacus.Number) int {
	switch z := y.(Naive); {
	case x < z:
		return -1
	case x > z:
		return 1
	default:
		return 0
	}
}

func (x Naive) MaxPrecision() int { return 15 }

func (x Naive) MaxError() abacus.Number {
	return Naive(math.Max(math.Abs(float64(x)), 1) * 1e-15)
}

func (x Naive) FromInt(n int64) abacus.Number { return Naive(n) }

func (x Naive) String() string {
	if x == 0 {
		// Includes negative zero.
		return "0"
	}
	return strconv.FormatFloat(float64(x), 'g', -1, 64)
}

// The math package gives native elementary functions.

func (x Naive) Exp() abacus.Number  { return Naive(math.Exp(float64(x))) }
func (x Naive) Ln() abacus.Number   { return Naive(math.Log(float64(x))) }
func (x Naive) Sqrt() abacus.Number { return Naive(math.Sqrt(float64(x))) }
func (x Naive) Sin() abacus.Number  { return Naive(math.Sin(float64(x))) }
func (x Naive) Cos() abacus.Number  { return Naive(math.Cos(float64(x))) }
func (x Naive) Atan() abacus.Number { return Naive(math.Atan(float64(x))) }
