// Package std is the standard plugin for abacus. It provides three number
// types: naive (float64), binary (256-bit big.Float), and precise (65-digit
// apd.Decimal). It also provides the arithmetic, power, factorial, and
// combinatoric operators, assignment and definition, elementary functions,
// and the series functions sum and prod.
//
// Elementary functions use a type's own implementation when it has one and
// fall back to series built from checked arithmetic otherwise, so they work
// with any number type and can be cancelled.
package std
