package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"slices"
	"strings"
	"unicode"

	"github.com/peterh/liner"
)

// repl runs an interactive session.
func (ss *session) repl(ctx context.Context) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	ln.SetCompleter(ss.complete)
	if ss.cfg.History != "" {
		if f, err := os.Open(ss.cfg.History); err == nil {
			ln.ReadHistory(f)
			f.Close()
		}
		defer func() {
			f, err := os.Create(ss.cfg.History)
			if err != nil {
				log.Printf("couldn't save history: %v", err)
				return
			}
			defer f.Close()
			ln.WriteHistory(f)
		}()
	}
	fmt.Fprintln(ss.out, "abacus: enter expressions, or :help for commands")
	for {
		text, err := ln.Prompt("> ")
		switch {
		case errors.Is(err, liner.ErrPromptAborted):
			continue
		case errors.Is(err, io.EOF):
			fmt.Fprintln(ss.out)
			return nil
		case err != nil:
			return err
		}
		if strings.TrimSpace(text) != "" {
			ln.AppendHistory(text)
		}
		if ss.line(ctx, text) {
			return nil
		}
	}
}

// complete completes the name at the end of line.
func (ss *session) complete(line string) []string {
	start := strings.LastIndexFunc(line, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	}) + 1
	prefix := line[start:]
	var names []string
	if start == 1 && line[0] == ':' {
		for name := range commands {
			names = append(names, name)
		}
	} else {
		root := ss.eng.Root()
		names = append(names, ss.eng.Registry().FunctionNames()...)
		names = append(names, root.VarNames()...)
		names = append(names, root.DefNames()...)
	}
	slices.Sort(names)
	names = slices.Compact(names)
	var r []string
	for _, name := range names {
		if prefix != "" && strings.HasPrefix(name, prefix) {
			r = append(r, line[:start]+name)
		}
	}
	return r
}
