package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"strings"

	"github.com/kr/pretty"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/unicode/norm"

	"github.com/zephyrtronium/abacus"
)

// session holds an engine and the state of one run of abacus.
type session struct {
	eng  *abacus.Engine
	opts *options
	cfg  fileConfig
	out  io.Writer
	errw io.Writer
	// failed is whether any expression or command has failed.
	failed bool
}

// outcome is a parsed and possibly evaluated expression.
type outcome struct {
	src   string
	node  abacus.Node
	value abacus.Number
	err   error
}

// compute parses and evaluates src in a child of s. It returns the child
// scope with the bindings the evaluation made, which is nil if src did not
// parse.
func (ss *session) compute(ctx context.Context, src string, s *abacus.Scope) (outcome, *abacus.Scope) {
	r := outcome{src: src}
	r.node, r.err = ss.eng.Parse(src)
	if r.err != nil {
		return r, nil
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()
	if ss.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, ss.cfg.Timeout)
		defer cancel()
	}
	res, err := ss.eng.Evaluate(ctx, r.node, s)
	r.value, r.err = res.Value, err
	return r, res.Scope
}

// eval evaluates src in the root scope, keeps its bindings, and prints the
// result.
func (ss *session) eval(ctx context.Context, src string) {
	root := ss.eng.Root()
	r, child := ss.compute(ctx, src, root)
	if child != nil {
		ss.eng.MergeContext(root, child)
	}
	ss.print(r)
}

// independent evaluates each expression concurrently in its own child of the
// root scope and prints the results in order. Bindings are discarded.
func (ss *session) independent(ctx context.Context, srcs []string) {
	results := make([]outcome, len(srcs))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	root := ss.eng.Root()
	for i, src := range srcs {
		g.Go(func() error {
			results[i], _ = ss.compute(ctx, src, root)
			return nil
		})
	}
	g.Wait()
	for _, r := range results {
		ss.print(r)
	}
}

func (ss *session) print(r outcome) {
	if r.node != nil && ss.opts.ast {
		fmt.Fprintf(ss.out, "%# v\n", pretty.Formatter(r.node))
	}
	if r.err != nil {
		ss.report(r.src, r.err)
		return
	}
	if ss.opts.echo {
		fmt.Fprintf(ss.out, "%v : ", r.node)
	}
	fmt.Fprintln(ss.out, r.value)
}

// report prints an error. Errors in the input are marked under the source.
func (ss *session) report(src string, err error) {
	ss.failed = true
	fmt.Fprintf(ss.errw, "error: %v\n", err)
	var ierr abacus.InputError
	if errors.As(err, &ierr) && ierr.Pos() > 0 {
		fmt.Fprint(ss.errw, marked(src, ierr.Pos()))
	}
}

// marked shows src with a caret under the rune at pos. Positions count runes
// of the NFKC form of the input, so that is the form shown.
func marked(src string, pos int) string {
	return fmt.Sprintf("\t%s\n\t%s^\n", norm.NFKC.String(src), strings.Repeat(" ", pos-1))
}

// line handles one line of input, which is either an expression or a
// command. It returns true if the session should end.
func (ss *session) line(ctx context.Context, text string) bool {
	text = strings.TrimSpace(text)
	switch {
	case text == "":
		return false
	case strings.HasPrefix(text, ":"):
		return ss.command(text[1:])
	default:
		ss.eval(ctx, text)
		return false
	}
}

// batch handles lines from r until it is exhausted or a command ends the
// session.
func (ss *session) batch(ctx context.Context, r io.Reader) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if ss.line(ctx, sc.Text()) {
			break
		}
	}
	return sc.Err()
}
