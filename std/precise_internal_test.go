package std

import (
	"errors"
	"testing"

	"github.com/cockroachdb/apd/v3"
	"github.com/go-quicktest/qt"

	"github.com/zephyrtronium/abacus"
)

func TestPreciseOpFailures(t *testing.T) {
	one := Precise{apd.New(1, 0)}
	run := func(f func(d *apd.Decimal) (apd.Condition, error)) (err error) {
		defer abacus.Recover(&err)
		op("exp", f, one)
		return nil
	}

	failed := errors.New("too many iterations")
	err := run(func(d *apd.Decimal) (apd.Condition, error) { return 0, failed })
	var aerr *abacus.ArithmeticError
	qt.Assert(t, qt.ErrorAs(err, &aerr))
	qt.Check(t, qt.Equals(aerr.Op, "exp"))
	qt.Check(t, qt.ErrorIs(err, failed))

	invalid := []func(d *apd.Decimal) (apd.Condition, error){
		func(d *apd.Decimal) (apd.Condition, error) { return apd.InvalidOperation, nil },
		func(d *apd.Decimal) (apd.Condition, error) {
			d.Form = apd.NaN
			return 0, nil
		},
	}
	for _, f := range invalid {
		var derr *abacus.DomainError
		qt.Assert(t, qt.ErrorAs(run(f), &derr))
		qt.Check(t, qt.DeepEquals(derr, &abacus.DomainError{Name: "exp", Args: []string{"1"}, Arity: 1}))
	}

	r := op("exp", func(d *apd.Decimal) (apd.Condition, error) {
		d.Set(apd.New(2, 0))
		return apd.Inexact | apd.Rounded, nil
	}, one)
	qt.Check(t, qt.Equals(r.String(), "2"))
}
