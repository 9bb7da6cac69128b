package abacus_test

import (
	"log/slog"
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/zephyrtronium/abacus"
	"github.com/zephyrtronium/abacus/std"
)

// events records listener calls.
type events struct {
	log []string
}

func (e *events) OnLoad(r *abacus.Registry)   { e.log = append(e.log, "load") }
func (e *events) OnUnload(r *abacus.Registry) { e.log = append(e.log, "unload") }

// extra is a plugin that overrides "+" and adds a function.
func extra() *abacus.Plugin {
	return &abacus.Plugin{
		Name: "extra",
		Operators: []*abacus.NumberOperator{
			{Symbol: "+", Fixity: abacus.Infix, Assoc: abacus.Left, Prec: std.PrecSum, Fn: abacus.Dyadic(func(e *abacus.Eval, x, y abacus.Number) abacus.Number {
				return e.Sub(x, y)
			}, nil)},
		},
		Functions: map[string]abacus.NumberFunction{
			"two": abacus.Niladic(func(e *abacus.Eval) abacus.Number { return e.Type().Sample.FromInt(2) }),
		},
		Docs: []abacus.Documentation{
			{Name: "two", Kind: "function", Syntax: "two()", Description: "Two."},
		},
	}
}

func quiet() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestRegistryListeners(t *testing.T) {
	reg := abacus.NewRegistry(quiet(), std.Plugin())
	var ev events
	reg.AddListener(&ev)
	qt.Check(t, qt.IsFalse(reg.Loaded()))
	reg.Load(nil)
	qt.Check(t, qt.IsTrue(reg.Loaded()))
	reg.Reload([]string{"std"})
	reg.Unload()
	qt.Check(t, qt.DeepEquals(ev.log, []string{"load", "unload", "load", "unload"}))

	// A listener added to a loaded registry hears about it right away.
	reg.Load(nil)
	var late events
	reg.AddListener(&late)
	qt.Check(t, qt.DeepEquals(late.log, []string{"load"}))
	reg.RemoveListener(&late)
	reg.Unload()
	qt.Check(t, qt.DeepEquals(late.log, []string{"load"}))
}

func TestRegistryLookups(t *testing.T) {
	reg := abacus.NewRegistry(quiet(), std.Plugin())
	reg.Load(nil)
	cases := []struct {
		name string
		err  error
		want abacus.LookupError
	}{
		{"operator", second(reg.Operator("%", abacus.Infix)), abacus.LookupError{Kind: "infix operator", Name: "%"}},
		{"postfix", second(reg.Operator("+", abacus.Postfix)), abacus.LookupError{Kind: "postfix operator", Name: "+"}},
		{"tree-operator", second(reg.TreeOperator("+", abacus.Infix)), abacus.LookupError{Kind: "infix tree operator", Name: "+"}},
		{"function", second(reg.Function("sum")), abacus.LookupError{Kind: "function", Name: "sum"}},
		{"tree-function", second(reg.TreeFunction("abs")), abacus.LookupError{Kind: "tree function", Name: "abs"}},
		{"type", second(reg.NumberType("complex")), abacus.LookupError{Kind: "number type", Name: "complex"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var lerr *abacus.LookupError
			qt.Assert(t, qt.ErrorAs(c.err, &lerr))
			qt.Check(t, qt.Equals(*lerr, c.want))
		})
	}

	op, err := reg.Operator("-", abacus.Prefix)
	qt.Assert(t, qt.IsNil(err))
	qt.Check(t, qt.Equals(op.Prec, std.PrecNegate))
	_, err = reg.TreeFunction("sum")
	qt.Check(t, qt.IsNil(err))
	qt.Check(t, qt.IsTrue(reg.IsTreeFunction("prod")))
	qt.Check(t, qt.IsFalse(reg.IsTreeFunction("abs")))
	qt.Check(t, qt.DeepEquals(reg.TypeNames(), []string{"naive", "binary", "precise"}))
	qt.Check(t, qt.Equals(reg.DefaultType(), std.NaiveType))
	typ, err := reg.TypeOf(std.Naive(1))
	qt.Assert(t, qt.IsNil(err))
	qt.Check(t, qt.Equals(typ, std.NaiveType))
	info, ok := reg.OperatorInfo(":=", abacus.Infix)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Check(t, qt.IsTrue(info.Tree))
	qt.Check(t, qt.Equals(info.Assoc, abacus.Right))
	qt.Check(t, qt.Equals(reg.Symbols()[0], "nCr"))
}

func second[T any](_ T, err error) error { return err }

func TestRegistryDisable(t *testing.T) {
	reg := abacus.NewRegistry(quiet(), std.Plugin(), extra())
	reg.Load([]string{"std"})
	qt.Check(t, qt.IsFalse(reg.Enabled("std")))
	qt.Check(t, qt.IsTrue(reg.Enabled("extra")))
	qt.Check(t, qt.IsFalse(reg.Enabled("nonexistent")))
	qt.Check(t, qt.DeepEquals(reg.Plugins(), []string{"std", "extra"}))
	qt.Check(t, qt.DeepEquals(reg.FunctionNames(), []string{"two"}))
	qt.Check(t, qt.IsNil(reg.DefaultType()))
	_, err := reg.Function("abs")
	qt.Check(t, qt.IsNotNil(err))

	reg.Reload(nil)
	qt.Check(t, qt.IsTrue(reg.Enabled("std")))
	_, err = reg.Function("abs")
	qt.Check(t, qt.IsNil(err))

	reg.Unload()
	qt.Check(t, qt.IsFalse(reg.Enabled("std")))
	_, err = reg.Function("two")
	qt.Check(t, qt.IsNotNil(err))
}

func TestRegistryOverride(t *testing.T) {
	reg := abacus.NewRegistry(quiet(), std.Plugin(), extra())
	eng, err := abacus.New(abacus.Config{NumberType: "naive"}, reg, abacus.WithLogger(quiet()))
	qt.Assert(t, qt.IsNil(err))
	got, err := run(t, eng, "5 + two()")
	qt.Assert(t, qt.IsNil(err))
	// The later plugin's "+" wins.
	qt.Check(t, qt.Equals(got, "3"))

	err = eng.SetConfig(abacus.Config{NumberType: "naive", DisabledPlugins: []string{"extra"}})
	qt.Assert(t, qt.IsNil(err))
	got, err = run(t, eng, "5 + 2")
	qt.Assert(t, qt.IsNil(err))
	qt.Check(t, qt.Equals(got, "7"))
	_, err = run(t, eng, "two()")
	var lerr *abacus.LookupError
	qt.Check(t, qt.ErrorAs(err, &lerr))
}

func TestRegistryDocs(t *testing.T) {
	reg := abacus.NewRegistry(quiet(), std.Plugin(), extra())
	reg.Load(nil)
	docs := reg.Doc("two")
	qt.Assert(t, qt.HasLen(docs, 1))
	qt.Check(t, qt.Equals(docs[0].Plugin, "extra"))
	docs = reg.Doc("-")
	qt.Check(t, qt.HasLen(docs, 2))
	for _, d := range reg.Docs() {
		if d.Name == "sqrt" {
			qt.Check(t, qt.Equals(d.Plugin, "std"))
			qt.Check(t, qt.Equals(d.Syntax, "sqrt(x)"))
		}
	}
	qt.Check(t, qt.HasLen(reg.Doc("nonexistent"), 0))
}

func TestNewEngineNoTypes(t *testing.T) {
	reg := abacus.NewRegistry(quiet(), extra())
	_, err := abacus.New(abacus.Config{}, reg, abacus.WithLogger(quiet()))
	var lerr *abacus.LookupError
	qt.Assert(t, qt.ErrorAs(err, &lerr))
	qt.Check(t, qt.Equals(lerr.Kind, "number type"))
}
