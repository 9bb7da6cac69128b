package abacus_test

import (
	"context"
	"fmt"

	"github.com/zephyrtronium/abacus"
	"github.com/zephyrtronium/abacus/std"
)

// hypot is a function of any number of arguments.
var hypot = abacus.Func{
	Arity: -1,
	Domain: func(e *abacus.Eval, args []abacus.Number) bool {
		return len(args) > 0
	},
	Fn: func(e *abacus.Eval, args []abacus.Number) abacus.Number {
		s := args[0].FromInt(0)
		for _, x := range args {
			s = e.Add(s, e.Mul(x, x))
		}
		return std.Sqrt(e, s)
	},
}

func ExampleFunc() {
	plugin := &abacus.Plugin{
		Name:      "hypot",
		Functions: map[string]abacus.NumberFunction{"hypot": hypot},
	}
	reg := abacus.NewRegistry(quiet(), std.Plugin(), plugin)
	eng, err := abacus.New(abacus.Config{NumberType: "naive"}, reg, abacus.WithLogger(quiet()))
	if err != nil {
		panic(err)
	}
	for _, src := range []string{"hypot(3, 4)", "hypot(2, 3, 6)", "hypot()"} {
		r, err := eng.Run(context.Background(), src)
		if err != nil {
			fmt.Println(err)
			continue
		}
		fmt.Println(r.Value)
	}

	// Output:
	// 5
	// 7
	// () outside domain of hypot (0 arguments)
}

func ExampleEngine_Run() {
	eng, err := std.NewEngine(abacus.Config{NumberType: "precise"}, quiet())
	if err != nil {
		panic(err)
	}
	for _, src := range []string{"r :- sqrt(x^2 + y^2)", "x := 3", "y := 4", "r", "2 ^ 3 ^ 2", "1/7"} {
		r, err := eng.Run(context.Background(), src)
		if err != nil {
			fmt.Println("error:", err)
			continue
		}
		fmt.Println(r.Value)
	}

	// Output:
	// error: undefined variable: "x"
	// 3
	// 4
	// 5
	// 512
	// 0.14285714285714285714285714285714285714285714285714
}
