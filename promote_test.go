package abacus_test

import (
	"context"
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/zephyrtronium/abacus"
	"github.com/zephyrtronium/abacus/std"
)

// tally is a naive number under another name, with no declared promotions.
type tally struct{ std.Naive }

func tallies() *abacus.Plugin {
	return &abacus.Plugin{
		Name: "tally",
		Types: []*abacus.NumberType{{
			Name:     "tally",
			Priority: 5,
			Parse:    std.NaiveType.Parse,
			Pi:       std.NaiveType.Pi,
			Sample:   tally{},
		}},
	}
}

func newPromoter(t *testing.T) (*abacus.Registry, *abacus.Promoter) {
	reg := abacus.NewRegistry(quiet(), std.Plugin(), tallies())
	p := abacus.NewPromoter(reg)
	reg.Load(nil)
	return reg, p
}

func TestPromotePaths(t *testing.T) {
	_, p := newPromoter(t)
	cases := []struct {
		from, to *abacus.NumberType
		len      int
		ok       bool
	}{
		{std.NaiveType, std.NaiveType, 0, true},
		{std.NaiveType, std.BinaryType, 1, true},
		{std.NaiveType, std.PreciseType, 1, true},
		{std.BinaryType, std.PreciseType, 1, true},
		{std.BinaryType, std.NaiveType, 0, false},
		{std.PreciseType, std.BinaryType, 0, false},
	}
	for _, c := range cases {
		t.Run(c.from.Name+"-"+c.to.Name, func(t *testing.T) {
			path, ok := p.Path(c.from, c.to)
			qt.Assert(t, qt.Equals(ok, c.ok))
			qt.Check(t, qt.HasLen(path, c.len))
		})
	}
}

func TestPromote(t *testing.T) {
	reg, p := newPromoter(t)
	r, err := p.Promote(std.Naive(1.5), std.BinaryType.Sample.FromInt(2), std.Naive(3))
	qt.Assert(t, qt.IsNil(err))
	qt.Check(t, qt.Equals(r.Type, std.BinaryType))
	qt.Assert(t, qt.HasLen(r.Values, 3))
	for _, v := range r.Values {
		typ, err := reg.TypeOf(v)
		qt.Assert(t, qt.IsNil(err))
		qt.Check(t, qt.Equals(typ, std.BinaryType))
	}
	qt.Check(t, qt.Equals(r.Values[0].String(), "1.5"))
	qt.Check(t, qt.Equals(r.Values[1].String(), "2"))

	r, err = p.Promote()
	qt.Assert(t, qt.IsNil(err))
	qt.Check(t, qt.IsNil(r.Type))

	r, err = p.Promote(std.Naive(0.1))
	qt.Assert(t, qt.IsNil(err))
	qt.Check(t, qt.Equals(r.Type, std.NaiveType))
}

func TestPromoteMissingPath(t *testing.T) {
	_, p := newPromoter(t)
	_, err := p.Promote(tally{2}, std.BinaryType.Sample.FromInt(2))
	var perr *abacus.PromotionError
	qt.Assert(t, qt.ErrorAs(err, &perr))
	qt.Check(t, qt.Equals(*perr, abacus.PromotionError{From: "tally", To: "binary"}))

	// Naive declares no promotion to tally.
	_, err = p.Promote(std.Naive(1), tally{2})
	qt.Assert(t, qt.ErrorAs(err, &perr))
	qt.Check(t, qt.Equals(*perr, abacus.PromotionError{From: "naive", To: "tally"}))
}

func TestPromoterUnload(t *testing.T) {
	reg, p := newPromoter(t)
	reg.Unload()
	_, ok := p.Path(std.NaiveType, std.NaiveType)
	qt.Check(t, qt.IsFalse(ok))
	reg.Load([]string{"tally"})
	_, ok = p.Path(std.NaiveType, std.PreciseType)
	qt.Check(t, qt.IsTrue(ok))
}

func TestPromotionErrorDuringEvaluation(t *testing.T) {
	reg := abacus.NewRegistry(quiet(), std.Plugin(), tallies())
	eng, err := abacus.New(abacus.Config{NumberType: "binary"}, reg, abacus.WithLogger(quiet()))
	qt.Assert(t, qt.IsNil(err))
	eng.Root().SetVar("t", tally{4})
	_, err = eng.Run(context.Background(), "t + 1")
	var perr *abacus.PromotionError
	qt.Assert(t, qt.ErrorAs(err, &perr))
	qt.Check(t, qt.Equals(perr.From, "tally"))
}
