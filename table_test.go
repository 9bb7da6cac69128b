package abacus

// testTable is an OperatorTable with a fixed set of operators.
type testTable struct {
	syms  []string
	info  map[opKey]OpInfo
	trees map[string]bool
}

func newTestTable(ops []OpInfo, trees ...string) *testTable {
	t := &testTable{info: make(map[opKey]OpInfo), trees: make(map[string]bool)}
	seen := make(map[string]bool)
	for _, op := range ops {
		t.info[opKey{op.Symbol, op.Fixity}] = op
		if !seen[op.Symbol] {
			seen[op.Symbol] = true
			t.syms = append(t.syms, op.Symbol)
		}
	}
	sortsyms(t.syms)
	for _, name := range trees {
		t.trees[name] = true
	}
	return t
}

func (t *testTable) Symbols() []string { return t.syms }

func (t *testTable) OperatorInfo(sym string, fix Fixity) (OpInfo, bool) {
	info, ok := t.info[opKey{sym, fix}]
	return info, ok
}

func (t *testTable) IsTreeFunction(name string) bool { return t.trees[name] }

// arith is a table resembling the usual arithmetic operators.
var arith = newTestTable([]OpInfo{
	{Symbol: ":=", Fixity: Infix, Assoc: Right, Prec: 0, Tree: true},
	{Symbol: "+", Fixity: Infix, Assoc: Left, Prec: 10},
	{Symbol: "-", Fixity: Infix, Assoc: Left, Prec: 10},
	{Symbol: "*", Fixity: Infix, Assoc: Left, Prec: 20},
	{Symbol: "/", Fixity: Infix, Assoc: Left, Prec: 20},
	{Symbol: "nPr", Fixity: Infix, Assoc: Left, Prec: 20},
	{Symbol: "-", Fixity: Prefix, Assoc: Right, Prec: 30},
	{Symbol: "^", Fixity: Infix, Assoc: Right, Prec: 40},
	{Symbol: "!", Fixity: Postfix, Assoc: Left, Prec: 50},
	{Symbol: "'", Fixity: Postfix, Assoc: Left, Prec: 50},
	{Symbol: "'", Fixity: Infix, Assoc: Left, Prec: 20},
	{Symbol: "&", Fixity: Prefix, Assoc: Right, Prec: 30, Tree: true},
}, "sum")
