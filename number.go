package abacus

import (
	"context"
	"reflect"
)

// Number is an immutable numeric value. Every arithmetic method returns a new
// Number and leaves its receiver unchanged.
//
// Methods taking another Number are only ever called with an argument of the
// same concrete type as the receiver; the promotion system converts mixed
// operands before any operator or function sees them. Implementations may
// panic when that contract is broken.
//
// Operations whose result is undefined, such as subtracting equal infinities,
// panic with a *DomainError naming the operation. Types whose underlying
// arithmetic fails for other reasons panic with an *ArithmeticError. Recover
// turns both into errors.
//
// The methods of Number are not cancellation checkpoints. Code that performs
// long computations should go through Arith, which checks for cancellation
// before every primitive.
type Number interface {
	Add(y Number) Number
	Sub(y Number) Number
	Mul(y Number) Number
	// Quo returns the quotient. Callers must ensure y is nonzero.
	Quo(y Number) Number
	Neg() Number
	// Floor returns the greatest integer less than or equal to the number.
	Floor() Number
	// Ceil returns the least integer greater than or equal to the number.
	Ceil() Number
	// Frac returns the fractional part, x - Floor(x).
	Frac() Number
	// Int returns the integer part of the number, truncating toward zero.
	// ok is false if the result does not fit in an int64.
	Int() (n int64, ok bool)
	// IsInt reports whether the number has no fractional part.
	IsInt() bool
	// Sign returns -1, 0, or 1 according to the sign of the number.
	Sign() int
	// Cmp compares the number to y and returns -1, 0, or 1.
	Cmp(y Number) int
	// MaxPrecision is the number of significant decimal digits to which the
	// type computes.
	MaxPrecision() int
	// MaxError is the smallest error this value can tolerate given its
	// precision and magnitude. Series approximations stop once their terms
	// fall below it.
	MaxError() Number
	// FromInt creates a number of the same type with the value n.
	FromInt(n int64) Number
	String() string
}

// PromoteFunc converts a number into a different type with the same value.
type PromoteFunc func(x Number) (Number, error)

// NumberType describes a concrete implementation of Number.
type NumberType struct {
	// Name identifies the type in configuration and in the registry.
	Name string
	// Priority orders types for promotion. Mixed operands are converted to
	// the type with the highest priority among them.
	Priority int
	// Parse creates a number from literal text, e.g. "12", "1.5", "3e-4".
	Parse func(text string) (Number, error)
	// Pi returns π to the precision of the type.
	Pi func() Number
	// Promotions lists the types, by name, into which values of this type
	// can be converted directly.
	Promotions map[string]PromoteFunc
	// Sample is any value of the type. The registry uses its dynamic type
	// to map runtime values back to this descriptor.
	Sample Number
}

func (t *NumberType) String() string {
	if t == nil {
		return "<none>"
	}
	return t.Name
}

// goType is the dynamic Go type of the values this type describes.
func (t *NumberType) goType() reflect.Type {
	return reflect.TypeOf(t.Sample)
}

// Arith performs arithmetic on numbers, checking for cancellation before each
// operation. When its context is done, any method panics with a
// *CancellationError. Engine.Evaluate recovers that panic and returns the
// error; code running outside an evaluation can use Recover to do the same.
type Arith struct {
	ctx context.Context
}

// NewArith creates an Arith that is cancelled along with ctx.
func NewArith(ctx context.Context) Arith {
	if ctx == nil {
		ctx = context.Background()
	}
	return Arith{ctx: ctx}
}

// Context returns the context that governs cancellation.
func (a Arith) Context() context.Context {
	if a.ctx == nil {
		return context.Background()
	}
	return a.ctx
}

// Check is the cancellation checkpoint. It panics with a *CancellationError
// if the context is done.
func (a Arith) Check() {
	if a.ctx == nil {
		return
	}
	if err := a.ctx.Err(); err != nil {
		panic(&CancellationError{Err: err})
	}
}

func (a Arith) Add(x, y Number) Number {
	a.Check()
	return x.Add(y)
}

func (a Arith) Sub(x, y Number) Number {
	a.Check()
	return x.Sub(y)
}

func (a Arith) Mul(x, y Number) Number {
	a.Check()
	return x.Mul(y)
}

func (a Arith) Quo(x, y Number) Number {
	a.Check()
	return x.Quo(y)
}

func (a Arith) Neg(x Number) Number {
	a.Check()
	return x.Neg()
}

func (a Arith) Floor(x Number) Number {
	a.Check()
	return x.Floor()
}

func (a Arith) Ceil(x Number) Number {
	a.Check()
	return x.Ceil()
}

func (a Arith) Frac(x Number) Number {
	a.Check()
	return x.Frac()
}

// Abs returns |x|.
func (a Arith) Abs(x Number) Number {
	if x.Sign() < 0 {
		return a.Neg(x)
	}
	return x
}

// IntPow raises x to an integer power by repeated multiplication, then takes
// the reciprocal for negative exponents. The caller must ensure x is nonzero
// when n is negative.
func (a Arith) IntPow(x Number, n int64) Number {
	a.Check()
	one := x.FromInt(1)
	if n == 0 {
		return one
	}
	recip := n < 0
	if recip {
		n = -n
	}
	r := x
	for i := int64(1); i < n; i++ {
		r = a.Mul(r, x)
	}
	if recip {
		r = a.Quo(one, r)
	}
	return r
}

// Recover converts a panic from Arith or from a Number method into an error.
// Use it as
//
//	defer abacus.Recover(&err)
//
// Cancellation, domain, and arithmetic errors are recovered. Other panics are
// propagated.
func Recover(err *error) {
	r := recover()
	switch e := r.(type) {
	case nil:
		return
	case *CancellationError:
		*err = e
	case *DomainError:
		*err = e
	case *ArithmeticError:
		*err = e
	default:
		panic(r)
	}
}
