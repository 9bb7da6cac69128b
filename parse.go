package abacus

// Expr = Operand { infix Operand }
// Operand = { prefix } Term { postfix }
// Term = num | name | name '(' [ Expr { ',' Expr } ] ')' | '(' Expr ')'
//
// Operators, their fixity, precedence, and associativity all come from an
// OperatorTable, normally the Registry, at parse time.

// OperatorTable is the information the parser needs about the operators and
// functions currently registered.
type OperatorTable interface {
	// Symbols returns all operator symbols, longest first.
	Symbols() []string
	// OperatorInfo returns the parsing information for the operator with the
	// given symbol and fixity.
	OperatorInfo(sym string, fix Fixity) (OpInfo, bool)
	// IsTreeFunction reports whether calls to the named function receive
	// unevaluated arguments.
	IsTreeFunction(name string) bool
}

// Parse parses an expression using the operators of tab.
func Parse(src string, tab OperatorTable) (Node, error) {
	p := parser{scan: lex(src, tab.Symbols()), tab: tab}
	n, err := p.parseexpr()
	if err != nil {
		return nil, err
	}
	end, err := p.scan.next()
	if err != nil {
		return nil, err
	}
	switch end.kind {
	case tokenEOF:
		if n == nil {
			return nil, &EmptyExpressionError{Col: end.pos}
		}
		return n, nil
	case tokenClose:
		return nil, &BracketError{Col: end.pos, Right: end.text}
	case tokenSep:
		return nil, &SeparatorError{Col: end.pos, Sep: end.text}
	default:
		panic("abacus: expression ended on non-end token " + end.String())
	}
}

type parser struct {
	scan *lexer
	tab  OperatorTable
}

// stacked is an operator waiting on the operator stack.
type stacked struct {
	info OpInfo
	pos  int
}

// parseexpr parses one expression with the shunting-yard algorithm. It stops
// at a close bracket, separator, or EOF at the same bracket level and pushes
// that token back. If the expression is empty, the result is nil with no
// error; callers must create an error where empty expressions are illegal.
func (p *parser) parseexpr() (Node, error) {
	var (
		operands []Node
		ops      []stacked
		// want is whether an operand is expected next.
		want = true
	)
	apply := func(op stacked) {
		switch op.info.Fixity {
		case Infix:
			l, r := operands[len(operands)-2], operands[len(operands)-1]
			operands = operands[:len(operands)-2]
			operands = append(operands, binary(op.info, l, r))
		default:
			x := operands[len(operands)-1]
			operands[len(operands)-1] = unary(op.info, x)
		}
	}
	// reduce applies stacked operators that bind more tightly than cur.
	reduce := func(cur OpInfo) {
		for len(ops) > 0 && ops[len(ops)-1].info.moreBinding(cur) {
			apply(ops[len(ops)-1])
			ops = ops[:len(ops)-1]
		}
	}
	for {
		tok, err := p.scan.next()
		if err != nil {
			return nil, err
		}
		switch tok.kind {
		case tokenNum:
			if !want {
				return nil, &OperandError{Col: tok.pos, Text: tok.text}
			}
			operands = append(operands, &NumberLit{Text: tok.text})
			want = false
		case tokenIdent:
			if !want {
				return nil, &OperandError{Col: tok.pos, Text: tok.text}
			}
			n, err := p.parsename(tok)
			if err != nil {
				return nil, err
			}
			operands = append(operands, n)
			want = false
		case tokenOpen:
			if !want {
				return nil, &OperandError{Col: tok.pos, Text: tok.text}
			}
			n, err := p.parseexpr()
			if err != nil {
				return nil, err
			}
			end, err := p.scan.next()
			if err != nil {
				return nil, err
			}
			if err := closing(tok, end); err != nil {
				return nil, err
			}
			if n == nil {
				return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
			}
			operands = append(operands, n)
			want = false
		case tokenOp:
			if want {
				info, ok := p.tab.OperatorInfo(tok.text, Prefix)
				if !ok {
					return nil, &OperatorError{Col: tok.pos, Operator: tok.text, Unary: true}
				}
				// Prefix operators apply to the operand that follows, so
				// nothing on the stack can be reduced yet.
				ops = append(ops, stacked{info: info, pos: tok.pos})
				continue
			}
			post, err := p.postfix(tok)
			if err != nil {
				return nil, err
			}
			if post.Symbol != "" {
				reduce(post)
				apply(stacked{info: post, pos: tok.pos})
				continue
			}
			info, ok := p.tab.OperatorInfo(tok.text, Infix)
			if !ok {
				return nil, &OperatorError{Col: tok.pos, Operator: tok.text, Unary: false}
			}
			reduce(info)
			ops = append(ops, stacked{info: info, pos: tok.pos})
			want = true
		case tokenClose, tokenSep, tokenEOF:
			if want {
				if len(ops) == 0 && len(operands) == 0 {
					p.scan.push(tok)
					return nil, nil
				}
				return nil, &OperandError{Col: tok.pos}
			}
			for len(ops) > 0 {
				apply(ops[len(ops)-1])
				ops = ops[:len(ops)-1]
			}
			if len(operands) != 1 {
				panic("abacus: parser finished with " + str(operands[0]) + " and others")
			}
			p.scan.push(tok)
			return operands[0], nil
		default:
			panic("abacus: unknown token: " + tok.String())
		}
	}
}

// postfix decides whether an operator following a complete operand is a
// postfix operator. It is when the symbol has a postfix form and either no
// infix form or nothing that could start an operand after it. If it is not,
// the result has an empty symbol.
func (p *parser) postfix(tok lexToken) (OpInfo, error) {
	post, ok := p.tab.OperatorInfo(tok.text, Postfix)
	if !ok {
		return OpInfo{}, nil
	}
	if _, ok := p.tab.OperatorInfo(tok.text, Infix); !ok {
		return post, nil
	}
	nx, err := p.scan.peek()
	if err != nil {
		return OpInfo{}, err
	}
	switch nx.kind {
	case tokenNum, tokenIdent, tokenOpen:
		return OpInfo{}, nil
	case tokenOp:
		if _, ok := p.tab.OperatorInfo(nx.text, Prefix); ok {
			return OpInfo{}, nil
		}
	}
	return post, nil
}

// parsename parses a variable or a function call beginning with name.
func (p *parser) parsename(name lexToken) (Node, error) {
	open, err := p.scan.peek()
	if err != nil {
		return nil, err
	}
	if open.kind != tokenOpen {
		return &Var{Name: name.text}, nil
	}
	p.scan.next()
	args, err := p.parseargs(open)
	if err != nil {
		return nil, err
	}
	if p.tab.IsTreeFunction(name.text) {
		return &TreeFuncCall{Name: name.text, Args: args}, nil
	}
	return &FuncCall{Name: name.text, Args: args}, nil
}

// parseargs parses a function argument list following its open bracket,
// through the close bracket.
func (p *parser) parseargs(open lexToken) ([]Node, error) {
	var args []Node
	for {
		n, err := p.parseexpr()
		if err != nil {
			return nil, err
		}
		end, err := p.scan.next()
		if err != nil {
			return nil, err
		}
		switch end.kind {
		case tokenClose:
			if n == nil {
				// f() is allowed, but f(a,) isn't.
				if len(args) != 0 {
					return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
				}
				return nil, nil
			}
			return append(args, n), nil
		case tokenSep:
			if n == nil {
				return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
			}
			args = append(args, n)
		case tokenEOF:
			return nil, &BracketError{Col: open.pos, Left: open.text}
		default:
			panic("abacus: argument ended on non-end token " + end.String())
		}
	}
}

// closing checks that end closes the group opened by open.
func closing(open, end lexToken) error {
	switch end.kind {
	case tokenClose:
		return nil
	case tokenEOF:
		return &BracketError{Col: open.pos, Left: open.text}
	case tokenSep:
		// Separator outside a function call.
		return &SeparatorError{Col: end.pos, Sep: end.text}
	default:
		panic("abacus: group ended on non-end token " + end.String())
	}
}

func unary(info OpInfo, x Node) Node {
	if info.Tree {
		return &TreeUnaryOp{Op: info.Symbol, Fixity: info.Fixity, X: x}
	}
	return &UnaryOp{Op: info.Symbol, Fixity: info.Fixity, X: x}
}

func binary(info OpInfo, l, r Node) Node {
	if info.Tree {
		return &TreeBinaryOp{Op: info.Symbol, L: l, R: r}
	}
	return &BinaryOp{Op: info.Symbol, L: l, R: r}
}
