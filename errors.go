package abacus

import (
	"strconv"
	"strings"
)

// NameError is an error from a lookup for a name that is neither a variable
// nor a definition anywhere in the scope chain.
type NameError struct {
	// Name is the name that was missing.
	Name string
}

func (err *NameError) Error() string {
	return "undefined variable: " + strconv.Quote(err.Name)
}

// DomainError is an error returned when an operator or function is applied to
// arguments it does not accept, including the wrong number of them.
type DomainError struct {
	// Name is the symbol of the operator or the name of the function.
	Name string
	// Args is the list of arguments, rendered as text.
	Args []string
	// Arity is the number of arguments given.
	Arity int
}

func (err *DomainError) Error() string {
	return "(" + strings.Join(err.Args, ", ") + ") outside domain of " + err.Name +
		" (" + strconv.Itoa(err.Arity) + " arguments)"
}

// PromotionError is an error indicating that no conversion is registered
// between two number types.
type PromotionError struct {
	From string
	To   string
}

func (err *PromotionError) Error() string {
	return "no promotion from " + err.From + " to " + err.To
}

// LookupError is an error indicating that a name is not registered with the
// registry or belongs to a disabled plugin.
type LookupError struct {
	// Kind is what was being looked up, e.g. "operator", "function",
	// "tree operator", "tree function", or "number type".
	Kind string
	// Name is the name or symbol that was missing.
	Name string
}

func (err *LookupError) Error() string {
	return "unknown " + err.Kind + " " + strconv.Quote(err.Name)
}

// CancellationError is the error produced when a computation observes that its
// context is done. It unwraps to the context's error.
type CancellationError struct {
	Err error
}

func (err *CancellationError) Error() string {
	return "computation cancelled: " + err.Err.Error()
}

func (err *CancellationError) Unwrap() error {
	return err.Err
}

// NumberTypeError is returned when a number literal must be materialized in
// a scope chain that has no active number type.
type NumberTypeError struct {
	// Text is the literal that could not be materialized.
	Text string
}

func (err *NumberTypeError) Error() string {
	return "no number type set to evaluate " + strconv.Quote(err.Text)
}

// RecursionError is returned when definitions expand into each other more
// deeply than MaxDepth.
type RecursionError struct {
	// Name is the definition being expanded when the limit was reached.
	Name string
}

func (err *RecursionError) Error() string {
	return "definition " + strconv.Quote(err.Name) + " expands too deeply"
}

// ArithmeticError is an error from the underlying arithmetic of a number
// type, e.g. a precision limit of a decimal library.
type ArithmeticError struct {
	// Op is the operation that failed.
	Op string
	// Err is the error the arithmetic reported.
	Err error
}

func (err *ArithmeticError) Error() string {
	return err.Op + ": " + err.Err.Error()
}

func (err *ArithmeticError) Unwrap() error {
	return err.Err
}
