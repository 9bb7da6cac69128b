package abacus_test

import (
	"context"
	"testing"
	"time"

	"github.com/zephyrtronium/abacus"
	"github.com/zephyrtronium/abacus/std"
)

func FuzzEval(f *testing.F) {
	f.Add("x")
	f.Add("1+2*3")
	f.Add("f :- x + 1")
	f.Add("sum(i, 1, 3, i!)")
	f.Add("１×２")
	eng, err := std.NewEngine(abacus.Config{NumberType: "binary"}, quiet())
	if err != nil {
		f.Fatal(err)
	}
	f.Fuzz(func(t *testing.T, s string) {
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()
		n, err := eng.Parse(s)
		if err != nil {
			return
		}
		eng.Evaluate(ctx, n, eng.Root())
	})
}
