package abacus

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func FuzzParse(f *testing.F) {
	f.Add("x")
	f.Add("-2^3!")
	f.Add("f(a, b) nPr 2")
	f.Add("x := y := 1")
	f.Add("１×２")
	f.Fuzz(func(t *testing.T, s string) {
		n, err := Parse(s, arith)
		if err != nil {
			return
		}
		m, err := Parse(n.String(), arith)
		if err != nil {
			t.Fatalf("%q formatted as %q fails to parse: %v", s, n, err)
		}
		if diff := cmp.Diff(n, m); diff != "" {
			t.Errorf("%q formatted as %q parses differently (-first +second):\n%s", s, n, diff)
		}
	})
}
