package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/google/shlex"

	"github.com/zephyrtronium/abacus"
)

type command struct {
	usage string
	help  string
	run   func(ss *session, args []string) (quit bool, err error)
}

var commands map[string]*command

func init() {
	// :help refers to the table, so it is built in init.
	commands = map[string]*command{
		"help":    {"", "list commands", (*session).help},
		"quit":    {"", "end the session", func(*session, []string) (bool, error) { return true, nil }},
		"type":    {"[name]", "show or change the number type of the root scope", (*session).setType},
		"vars":    {"", "list variables", (*session).vars},
		"defs":    {"", "list definitions", (*session).defs},
		"clear":   {"", "remove all variables and definitions", (*session).clear},
		"doc":     {"[name ...]", "show documentation", (*session).doc},
		"enable":  {"plugin ...", "load plugins and reset", (*session).enable},
		"disable": {"plugin ...", "unload plugins and reset", (*session).disable},
		"reload":  {"", "reload plugins and reset", (*session).reload},
	}
	commands["q"] = commands["quit"]
}

// command runs a command line without its leading colon.
func (ss *session) command(text string) bool {
	args, err := shlex.Split(text)
	if err != nil {
		ss.report(":"+text, err)
		return false
	}
	if len(args) == 0 {
		ss.report(":", fmt.Errorf("missing command"))
		return false
	}
	c := commands[args[0]]
	if c == nil {
		ss.report(":"+text, fmt.Errorf("unknown command :%s", args[0]))
		return false
	}
	quit, err := c.run(ss, args[1:])
	if err != nil {
		ss.report(":"+text, err)
	}
	return quit
}

func (ss *session) help(args []string) (bool, error) {
	names := make([]string, 0, len(commands))
	for name := range commands {
		if name != "q" {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	for _, name := range names {
		c := commands[name]
		fmt.Fprintf(ss.out, "  :%-20s %s\n", strings.TrimSpace(name+" "+c.usage), c.help)
	}
	return false, nil
}

func (ss *session) setType(args []string) (bool, error) {
	reg := ss.eng.Registry()
	switch len(args) {
	case 0:
		name := "(none)"
		if t := ss.eng.Root().NumberType(); t != nil {
			name = t.Name
		}
		fmt.Fprintf(ss.out, "%s (available: %s)\n", name, strings.Join(reg.TypeNames(), " "))
		return false, nil
	case 1:
		t, err := reg.NumberType(args[0])
		if err != nil {
			return false, err
		}
		ss.eng.Root().SetNumberType(t)
		return false, nil
	default:
		return false, fmt.Errorf("usage: :type [name]")
	}
}

func (ss *session) vars(args []string) (bool, error) {
	root := ss.eng.Root()
	for _, name := range root.VarNames() {
		v, _ := root.Var(name)
		fmt.Fprintf(ss.out, "%s = %v\n", name, v)
	}
	return false, nil
}

func (ss *session) defs(args []string) (bool, error) {
	root := ss.eng.Root()
	for _, name := range root.DefNames() {
		n, _ := root.Def(name)
		fmt.Fprintf(ss.out, "%s :- %v\n", name, n)
	}
	return false, nil
}

func (ss *session) clear(args []string) (bool, error) {
	root := ss.eng.Root()
	root.ClearVars()
	root.ClearDefs()
	return false, nil
}

func (ss *session) doc(args []string) (bool, error) {
	return false, writeDocs(ss.out, ss.eng.Registry(), args, false)
}

func (ss *session) enable(args []string) (bool, error) {
	if len(args) == 0 {
		return false, fmt.Errorf("usage: :enable plugin ...")
	}
	cfg := ss.eng.Config()
	cfg.DisabledPlugins = slices.DeleteFunc(slices.Clone(cfg.DisabledPlugins), func(p string) bool {
		return slices.Contains(args, p)
	})
	return false, ss.eng.SetConfig(cfg)
}

func (ss *session) disable(args []string) (bool, error) {
	if len(args) == 0 {
		return false, fmt.Errorf("usage: :disable plugin ...")
	}
	cfg := ss.eng.Config()
	loaded := ss.eng.Registry().Plugins()
	for _, p := range args {
		if !slices.Contains(loaded, p) {
			return false, &abacus.LookupError{Kind: "plugin", Name: p}
		}
	}
	cfg.DisabledPlugins = append(slices.Clone(cfg.DisabledPlugins), args...)
	return false, ss.eng.SetConfig(cfg)
}

func (ss *session) reload(args []string) (bool, error) {
	return false, ss.eng.Reload()
}
