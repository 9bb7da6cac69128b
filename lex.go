package abacus

import (
	"strconv"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

type lexToken struct {
	text string
	kind tokenKind
	pos  int
}

func (t lexToken) String() string {
	return t.kind.String() + ":" + t.text + "@" + strconv.Itoa(t.pos)
}

type tokenKind int

const (
	tokenNone tokenKind = iota
	// tokenEOF indicates the end of the input.
	tokenEOF
	// tokenNum is a number literal.
	tokenNum
	// tokenIdent is a variable or function name.
	tokenIdent
	// tokenOp is a registered operator symbol.
	tokenOp
	// tokenOpen is an open bracket.
	tokenOpen
	// tokenClose is a close bracket.
	tokenClose
	// tokenSep is the function arguments separator.
	tokenSep
)

func (k tokenKind) String() string {
	switch k {
	case tokenNone:
		return "None"
	case tokenEOF:
		return "EOF"
	case tokenNum:
		return "Num"
	case tokenIdent:
		return "Ident"
	case tokenOp:
		return "Op"
	case tokenOpen:
		return "Open"
	case tokenClose:
		return "Close"
	case tokenSep:
		return "Sep"
	default:
		return "tokenKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Brackets and separator. Operator symbols may not contain these.
const (
	OpenBracket  = '('
	CloseBracket = ')'
	Separator    = ','
)

type lexer struct {
	src []rune
	// at is the index of the next rune in src.
	at int
	// syms is the operator symbol table, longest first.
	syms [][]rune
	p    lexToken
}

// lex creates a lexer over src, normalized to NFKC. syms is the operator
// symbol table sorted by decreasing length in runes, as returned by
// Registry.Symbols.
func lex(src string, syms []string) *lexer {
	src = norm.NFKC.String(src)
	l := &lexer{src: []rune(src), syms: make([][]rune, len(syms))}
	for i, s := range syms {
		l.syms[i] = []rune(s)
	}
	return l
}

// push unreads a token so that it is the next token returned from next. Panics
// if there is already a pushed token.
func (l *lexer) push(tok lexToken) {
	if l.p.kind != tokenNone {
		panic("abacus: double push")
	}
	l.p = tok
}

// peek returns the next token without consuming it.
func (l *lexer) peek() (lexToken, error) {
	tok, err := l.next()
	if err != nil {
		return tok, err
	}
	l.push(tok)
	return tok, nil
}

// next scans the next token from the input. At the end of the input, the
// result is an EOF token, every time.
func (l *lexer) next() (lexToken, error) {
	if l.p.kind != tokenNone {
		tok := l.p
		l.p = lexToken{}
		return tok, nil
	}
	for l.at < len(l.src) && unicode.IsSpace(l.src[l.at]) {
		l.at++
	}
	tok := lexToken{pos: l.at + 1}
	if l.at >= len(l.src) {
		tok.kind = tokenEOF
		return tok, nil
	}
	r := l.src[l.at]
	switch {
	case r == OpenBracket:
		l.at++
		tok.text, tok.kind = "(", tokenOpen
		return tok, nil
	case r == CloseBracket:
		l.at++
		tok.text, tok.kind = ")", tokenClose
		return tok, nil
	case r == Separator:
		l.at++
		tok.text, tok.kind = ",", tokenSep
		return tok, nil
	case '0' <= r && r <= '9', r == '.' && l.digitAt(l.at+1):
		n, err := l.scanNum()
		if err != nil {
			return tok, err
		}
		tok.text, tok.kind = string(l.src[l.at:l.at+n]), tokenNum
		l.at += n
		return tok, nil
	case r == '_', unicode.IsLetter(r):
		w := l.scanIdent()
		// A word that is exactly a symbol is the operator.
		if m := l.symbol(); m >= w {
			tok.text, tok.kind = string(l.src[l.at:l.at+m]), tokenOp
			l.at += m
			return tok, nil
		}
		tok.text, tok.kind = string(l.src[l.at:l.at+w]), tokenIdent
		l.at += w
		return tok, nil
	default:
		if m := l.symbol(); m > 0 {
			tok.text, tok.kind = string(l.src[l.at:l.at+m]), tokenOp
			l.at += m
			return tok, nil
		}
		return tok, &LexError{Text: string(r), Col: l.at + 1}
	}
}

// symbol returns the length of the longest operator symbol at the current
// position, or 0 if there is none. When the match ends with an identifier
// rune, it must not be followed by another.
func (l *lexer) symbol() int {
	rest := l.src[l.at:]
	for _, s := range l.syms {
		if len(s) > len(rest) || !runesPrefix(rest, s) {
			continue
		}
		if identRune(s[len(s)-1]) && len(rest) > len(s) && identRune(rest[len(s)]) {
			continue
		}
		return len(s)
	}
	return 0
}

func runesPrefix(s, prefix []rune) bool {
	for i, r := range prefix {
		if s[i] != r {
			return false
		}
	}
	return true
}

func (l *lexer) digitAt(i int) bool {
	return i < len(l.src) && '0' <= l.src[i] && l.src[i] <= '9'
}

// scanNum returns the length of the number literal at the current position.
// A literal is digits with at most one decimal point, optionally followed by
// an exponent marker, an optional sign, and digits. An e not followed by an
// exponent ends the literal so that it can begin an identifier instead.
func (l *lexer) scanNum() (int, error) {
	i := l.at
	dot := false
	for i < len(l.src) {
		r := l.src[i]
		switch {
		case '0' <= r && r <= '9':
			i++
		case r == '.':
			if dot {
				return 0, &LexError{Text: string(l.src[l.at : i+1]), Kind: "number", Col: i + 1}
			}
			dot = true
			i++
		case r == 'e' || r == 'E':
			j := i + 1
			if j < len(l.src) && (l.src[j] == '+' || l.src[j] == '-') {
				j++
			}
			if !l.digitAt(j) {
				return i - l.at, nil
			}
			for l.digitAt(j) {
				j++
			}
			return j - l.at, nil
		default:
			return i - l.at, nil
		}
	}
	return i - l.at, nil
}

// scanIdent returns the length of the identifier at the current position.
func (l *lexer) scanIdent() int {
	i := l.at
	for i < len(l.src) && identRune(l.src[i]) {
		i++
	}
	return i - l.at
}

// tokens lexes all of src, for tests and diagnostics.
func tokens(src string, syms []string) ([]lexToken, error) {
	l := lex(src, syms)
	var toks []lexToken
	for {
		tok, err := l.next()
		if err != nil {
			return toks, err
		}
		toks = append(toks, tok)
		if tok.kind == tokenEOF {
			return toks, nil
		}
	}
}

// LexError indicates an invalid token. It implements InputError.
type LexError struct {
	// Text is the token the lexer was scanning when the invalid rune was
	// encountered, plus the invalid rune.
	Text string
	// Kind is the type of token the lexer was scanning. This may be "number"
	// or the empty string if a token kind hadn't been decided.
	Kind string
	// Col is the position of the invalid rune, counted in runes of the
	// normalized input starting from 1.
	Col int
}

func (err *LexError) Error() string {
	pos := "column " + strconv.Itoa(err.Col)
	if err.Kind == "" {
		return "invalid token at " + pos + ": " + err.Text
	}
	return "invalid " + err.Kind + " token at " + pos + ": " + err.Text
}

func (err *LexError) Pos() int {
	return err.Col
}
