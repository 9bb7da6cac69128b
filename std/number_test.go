package std_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-quicktest/qt"

	"github.com/zephyrtronium/abacus"
	"github.com/zephyrtronium/abacus/std"
)

var types = []*abacus.NumberType{std.NaiveType, std.BinaryType, std.PreciseType}

func parse(t *testing.T, typ *abacus.NumberType, s string) abacus.Number {
	t.Helper()
	x, err := typ.Parse(s)
	qt.Assert(t, qt.IsNil(err), qt.Commentf("parsing %q as %s", s, typ))
	return x
}

func TestFloorFrac(t *testing.T) {
	cases := []struct {
		src   string
		floor string
		ceil  string
	}{
		{"2.5", "2", "3"},
		{"-2.5", "-3", "-2"},
		{"7", "7", "7"},
		{"-7", "-7", "-7"},
		{"0.25", "0", "1"},
		{"-0.25", "-1", "0"},
	}
	for _, typ := range types {
		for _, c := range cases {
			t.Run(typ.Name+"/"+c.src, func(t *testing.T) {
				x := parse(t, typ, c.src)
				qt.Check(t, qt.Equals(x.Floor().String(), c.floor))
				qt.Check(t, qt.Equals(x.Ceil().String(), c.ceil))
				qt.Check(t, qt.Equals(x.Floor().Add(x.Frac()).Cmp(x), 0))
				qt.Check(t, qt.IsTrue(x.Frac().Sign() >= 0))
			})
		}
	}
}

func TestInt(t *testing.T) {
	cases := []struct {
		src   string
		n     int64
		ok    bool
		isInt bool
	}{
		{"12", 12, true, true},
		{"-12", -12, true, true},
		{"12.75", 12, true, false},
		{"-12.75", -12, true, false},
		{"0", 0, true, true},
		{"1e30", 0, false, true},
	}
	for _, typ := range types {
		for _, c := range cases {
			t.Run(typ.Name+"/"+c.src, func(t *testing.T) {
				x := parse(t, typ, c.src)
				n, ok := x.Int()
				qt.Check(t, qt.Equals(ok, c.ok))
				if c.ok {
					qt.Check(t, qt.Equals(n, c.n))
				}
				qt.Check(t, qt.Equals(x.IsInt(), c.isInt))
			})
		}
	}
}

func TestCmpSign(t *testing.T) {
	for _, typ := range types {
		t.Run(typ.Name, func(t *testing.T) {
			a, b := parse(t, typ, "-1.5"), parse(t, typ, "2")
			qt.Check(t, qt.Equals(a.Cmp(b), -1))
			qt.Check(t, qt.Equals(b.Cmp(a), 1))
			qt.Check(t, qt.Equals(a.Cmp(a), 0))
			qt.Check(t, qt.Equals(a.Sign(), -1))
			qt.Check(t, qt.Equals(b.Sign(), 1))
			qt.Check(t, qt.Equals(a.FromInt(0).Sign(), 0))
			qt.Check(t, qt.Equals(a.Neg().String(), "1.5"))
			qt.Check(t, qt.IsTrue(a.MaxError().Sign() > 0))
			qt.Check(t, qt.IsTrue(a.MaxPrecision() >= 15))
		})
	}
}

func TestParseErrors(t *testing.T) {
	for _, typ := range types {
		t.Run(typ.Name, func(t *testing.T) {
			_, err := typ.Parse("1..2")
			qt.Check(t, qt.IsNotNil(err))
		})
	}
}

func TestPi(t *testing.T) {
	const digits = "3.14159265358979"
	for _, typ := range types {
		t.Run(typ.Name, func(t *testing.T) {
			s := typ.Pi().String()
			qt.Check(t, qt.StringContains(s, digits))
		})
	}
	qt.Check(t, qt.Equals(std.PreciseType.Pi().String(), "3.1415926535897932384626433832795028841971693993751"))
}

func TestPreciseString(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"1.50", "1.5"},
		{"100", "100"},
		{"1e3", "1000"},
		{"0.001", "0.001"},
		{"1e-20", "1E-20"},
		{"1e60", "1E+60"},
		{"-0", "0"},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			qt.Check(t, qt.Equals(parse(t, std.PreciseType, c.src).String(), c.want))
		})
	}
}

func TestPromotions(t *testing.T) {
	cases := []struct {
		from, to *abacus.NumberType
		src      string
		want     string
	}{
		{std.NaiveType, std.BinaryType, "0.5", "0.5"},
		{std.NaiveType, std.PreciseType, "0.1", "0.1"},
		{std.NaiveType, std.PreciseType, "-3", "-3"},
		{std.BinaryType, std.PreciseType, "0.5", "0.5"},
		{std.BinaryType, std.PreciseType, "1e100", "1E+100"},
	}
	for _, c := range cases {
		t.Run(c.from.Name+"-"+c.to.Name+"/"+c.src, func(t *testing.T) {
			f := c.from.Promotions[c.to.Name]
			qt.Assert(t, qt.IsNotNil(f))
			got, err := f(parse(t, c.from, c.src))
			qt.Assert(t, qt.IsNil(err))
			qt.Check(t, qt.Equals(got.String(), c.want))
		})
	}
	_, err := std.NaiveType.Promotions["binary"](std.Naive(0).Quo(std.Naive(0)))
	var perr *abacus.PromotionError
	qt.Check(t, qt.ErrorAs(err, &perr))
}

func TestOverflow(t *testing.T) {
	srcs := []string{
		"exp(10^20)",
		"-exp(10^20)",
		"exp(-exp(10^20))",
		"1 / exp(10^20)",
		"exp(10^20) - exp(10^20)",
		"exp(10^20) + -exp(10^20)",
		"exp(10^20) * 0",
		"exp(10^20) / exp(10^20)",
		"exp(10^20)^0.5",
		"exp(10^20)^2",
		"exp(10^20)!",
		"10^400 * 10^400",
		"2^(10^20)",
		"sqrt(exp(10^20))",
		"ln(exp(10^20))",
		"sin(exp(10^20))",
		"cos(exp(10^20))",
		"tan(exp(10^20))",
		"arctan(exp(10^20))",
		"arcsin(exp(10^20))",
		"sum(i, 1, exp(10^20), i)",
		// Infinities promoted from naive.
		"exp(1000) * b",
		"exp(1000) * p",
		"exp(1000) * b - exp(1000) * b",
		"exp(1000) * p - exp(1000) * p",
		"(exp(1000) - exp(1000)) * b",
		"(exp(1000) - exp(1000)) * p",
	}
	for _, typ := range []string{"naive", "binary", "precise"} {
		eng := engine(t, typ)
		eng.Root().SetVar("b", std.BinaryType.Sample.FromInt(1))
		eng.Root().SetVar("p", std.PreciseType.Sample.FromInt(1))
		for _, src := range srcs {
			t.Run(typ+"/"+src, func(t *testing.T) {
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				r, err := eng.Run(ctx, src)
				var cerr *abacus.CancellationError
				qt.Assert(t, qt.IsFalse(errors.As(err, &cerr)), qt.Commentf("%v", err))
				if err == nil {
					qt.Check(t, qt.IsNotNil(r.Value))
				}
			})
		}
	}
}
