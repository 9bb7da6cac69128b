package abacus

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Node is a node in the abstract syntax tree of an expression. The set of node
// types is closed: NumberLit, Var, UnaryOp, BinaryOp, FuncCall, TreeUnaryOp,
// TreeBinaryOp, and TreeFuncCall. Nodes are immutable once built.
//
// The String method of every node produces fully parenthesized source text
// which parses back into an identical tree.
type Node interface {
	String() string
	fmt(b *strings.Builder)
}

// NumberLit is a number literal. Its text is converted to a value of the
// active number type each time it is reduced.
type NumberLit struct {
	Text string
}

// Var is a reference to a variable or definition.
type Var struct {
	Name string
}

// UnaryOp applies a prefix or postfix operator to its reduced operand.
type UnaryOp struct {
	Op     string
	Fixity Fixity
	X      Node
}

// BinaryOp applies an infix operator to its reduced operands.
type BinaryOp struct {
	Op   string
	L, R Node
}

// FuncCall applies a function to its reduced arguments.
type FuncCall struct {
	Name string
	Args []Node
}

// TreeUnaryOp applies a tree-valued prefix or postfix operator to its
// unreduced operand.
type TreeUnaryOp struct {
	Op     string
	Fixity Fixity
	X      Node
}

// TreeBinaryOp applies a tree-valued infix operator to its unreduced
// operands, e.g. assignment.
type TreeBinaryOp struct {
	Op   string
	L, R Node
}

// TreeFuncCall applies a tree-valued function to its unreduced arguments.
type TreeFuncCall struct {
	Name string
	Args []Node
}

func (n *NumberLit) String() string    { return str(n) }
func (n *Var) String() string          { return str(n) }
func (n *UnaryOp) String() string      { return str(n) }
func (n *BinaryOp) String() string     { return str(n) }
func (n *FuncCall) String() string     { return str(n) }
func (n *TreeUnaryOp) String() string  { return str(n) }
func (n *TreeBinaryOp) String() string { return str(n) }
func (n *TreeFuncCall) String() string { return str(n) }

func str(n Node) string {
	var b strings.Builder
	n.fmt(&b)
	return b.String()
}

func (n *NumberLit) fmt(b *strings.Builder) {
	b.WriteString(n.Text)
}

func (n *Var) fmt(b *strings.Builder) {
	b.WriteString(n.Name)
}

func (n *UnaryOp) fmt(b *strings.Builder) {
	fmtunary(b, n.Op, n.Fixity, n.X)
}

func (n *TreeUnaryOp) fmt(b *strings.Builder) {
	fmtunary(b, n.Op, n.Fixity, n.X)
}

func (n *BinaryOp) fmt(b *strings.Builder) {
	fmtbinary(b, n.Op, n.L, n.R)
}

func (n *TreeBinaryOp) fmt(b *strings.Builder) {
	fmtbinary(b, n.Op, n.L, n.R)
}

func (n *FuncCall) fmt(b *strings.Builder) {
	fmtcall(b, n.Name, n.Args)
}

func (n *TreeFuncCall) fmt(b *strings.Builder) {
	fmtcall(b, n.Name, n.Args)
}

func fmtunary(b *strings.Builder, op string, fix Fixity, x Node) {
	b.WriteByte('(')
	if fix == Postfix {
		x.fmt(b)
		if wordy(op) {
			b.WriteByte(' ')
		}
		b.WriteString(op)
	} else {
		b.WriteString(op)
		if wordy(op) {
			b.WriteByte(' ')
		}
		x.fmt(b)
	}
	b.WriteByte(')')
}

func fmtbinary(b *strings.Builder, op string, l, r Node) {
	b.WriteByte('(')
	l.fmt(b)
	b.WriteByte(' ')
	b.WriteString(op)
	b.WriteByte(' ')
	r.fmt(b)
	b.WriteByte(')')
}

func fmtcall(b *strings.Builder, name string, args []Node) {
	b.WriteString(name)
	b.WriteByte('(')
	for i, a := range args {
		if i > 0 {
			b.WriteString(", ")
		}
		a.fmt(b)
	}
	b.WriteByte(')')
}

// wordy reports whether an operator symbol starts or ends with an identifier
// rune, so that it needs spaces to be lexed apart from its operands.
func wordy(op string) bool {
	r, _ := utf8.DecodeRuneInString(op)
	l, _ := utf8.DecodeLastRuneInString(op)
	return identRune(r) || identRune(l)
}

func identRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// Walk calls f for n and each of its descendants in depth-first order,
// stopping early if f returns false.
func Walk(n Node, f func(Node) bool) {
	if n == nil || !f(n) {
		return
	}
	switch n := n.(type) {
	case *NumberLit, *Var:
	case *UnaryOp:
		Walk(n.X, f)
	case *TreeUnaryOp:
		Walk(n.X, f)
	case *BinaryOp:
		Walk(n.L, f)
		Walk(n.R, f)
	case *TreeBinaryOp:
		Walk(n.L, f)
		Walk(n.R, f)
	case *FuncCall:
		for _, a := range n.Args {
			Walk(a, f)
		}
	case *TreeFuncCall:
		for _, a := range n.Args {
			Walk(a, f)
		}
	default:
		panic("abacus: invalid AST node " + n.String())
	}
}

// Vars returns the sorted names of all variables referenced by n.
func Vars(n Node) []string {
	seen := make(map[string]bool)
	var names []string
	Walk(n, func(n Node) bool {
		if v, ok := n.(*Var); ok && !seen[v.Name] {
			seen[v.Name] = true
			names = append(names, v.Name)
		}
		return true
	})
	slices.Sort(names)
	return names
}

