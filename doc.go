// Package abacus implements an extensible arbitrary-precision calculator.
//
// Text is lexed and parsed with the operators currently registered in a
// Registry, so plugins can add operators, functions, and number types without
// touching the parser. "2 + 3 * 4" is 14, and "2 ^ 3 ^ 2" is 512 given the
// usual precedences and a right-associative "^".
//
// Expressions are evaluated in a Scope. Scopes form a tree: names resolve to
// the nearest binding up the chain. A name can be bound as a variable, which
// holds a value computed once, or as a definition, which holds an expression
// that is evaluated again each time the name is used. With the standard
// plugin, "x := 5" assigns and "f :- x + 1" defines.
//
// Each scope chain has an active number type. When an operator or function
// receives numbers of different types, they are first promoted to the type
// with the highest priority among them.
//
// Long computations can be cancelled through the context passed to
// Engine.Evaluate.
package abacus
