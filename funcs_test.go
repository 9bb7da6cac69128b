package abacus_test

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/zephyrtronium/abacus"
	"github.com/zephyrtronium/abacus/std"
)

func TestFuncMatches(t *testing.T) {
	positive := func(e *abacus.Eval, x abacus.Number) bool { return x.Sign() > 0 }
	id := func(e *abacus.Eval, x abacus.Number) abacus.Number { return x }
	first := func(e *abacus.Eval, x, y abacus.Number) abacus.Number { return x }
	ordered := func(e *abacus.Eval, x, y abacus.Number) bool { return x.Cmp(y) < 0 }
	one, two := std.Naive(1), std.Naive(2)
	cases := []struct {
		name string
		fn   abacus.NumberFunction
		args []abacus.Number
		want bool
	}{
		{"monadic", abacus.Monadic(id, nil), []abacus.Number{one}, true},
		{"monadic-arity", abacus.Monadic(id, nil), []abacus.Number{one, two}, false},
		{"monadic-none", abacus.Monadic(id, nil), nil, false},
		{"monadic-domain", abacus.Monadic(id, positive), []abacus.Number{one}, true},
		{"monadic-outside", abacus.Monadic(id, positive), []abacus.Number{-one}, false},
		{"dyadic", abacus.Dyadic(first, nil), []abacus.Number{one, two}, true},
		{"dyadic-arity", abacus.Dyadic(first, nil), []abacus.Number{one}, false},
		{"dyadic-domain", abacus.Dyadic(first, ordered), []abacus.Number{one, two}, true},
		{"dyadic-outside", abacus.Dyadic(first, ordered), []abacus.Number{two, one}, false},
		{"niladic", abacus.Niladic(func(e *abacus.Eval) abacus.Number { return one }), nil, true},
		{"niladic-arity", abacus.Niladic(func(e *abacus.Eval) abacus.Number { return one }), []abacus.Number{one}, false},
		{"variadic", abacus.Func{Arity: -1, Fn: func(e *abacus.Eval, args []abacus.Number) abacus.Number { return one }}, []abacus.Number{one, two, one}, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			qt.Check(t, qt.Equals(c.fn.Matches(nil, c.args), c.want))
		})
	}
}

func TestFixityString(t *testing.T) {
	qt.Check(t, qt.Equals(abacus.Infix.String(), "infix"))
	qt.Check(t, qt.Equals(abacus.Prefix.String(), "prefix"))
	qt.Check(t, qt.Equals(abacus.Postfix.String(), "postfix"))
}
