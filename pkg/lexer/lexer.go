// Package lexer implements the off-side-rule scanner for Arbor source text.
//
// It turns a source string into a flat token stream, synthesizing
// INDENT/DEDENT/NEWLINE markers from leading whitespace the way Python's
// tokenizer does. The indentation stack itself is a small, well-understood
// data structure, so the lexer borrows gods' arraystack rather than hand-
// rolling a slice-as-stack.
package lexer

import (
	"bytes"
	"strings"

	"github.com/emirpasic/gods/stacks/arraystack"

	"github.com/arbor-lang/arbor/pkg/diag"
	"github.com/arbor-lang/arbor/pkg/token"
)

const tabWidth = 8

// Lexer scans a single source string into tokens.
type Lexer struct {
	src    []byte
	pos    int // byte offset of the next unread character
	line   int
	column int

	atLineStart bool
	indents     *arraystack.Stack // of int, bottom is always 0

	pending []token.Token // buffered INDENT/DEDENT tokens awaiting return
	done    bool          // true once EOF has been emitted
}

// New creates a Lexer over src.
func New(src string) *Lexer {
	indents := arraystack.New()
	indents.Push(0)
	return &Lexer{
		src:         []byte(src),
		pos:         0,
		line:        1,
		column:      1,
		atLineStart: true,
		indents:     indents,
	}
}

// Tokenize scans the entire source and returns the full token stream,
// terminated by exactly one Eof token.
func Tokenize(src string) ([]token.Token, error) {
	lx := New(src)
	var out []token.Token
	for {
		tok, err := lx.Next()
		if err != nil {
			return nil, err
		}
		out = append(out, tok)
		if tok.Kind == token.Eof {
			return out, nil
		}
	}
}

// Next returns the next token, or a *diag.Diagnostic on malformed input.
func (l *Lexer) Next() (token.Token, error) {
	if len(l.pending) > 0 {
		tok := l.pending[0]
		l.pending = l.pending[1:]
		return tok, nil
	}

	if l.atLineStart && !l.done {
		l.atLineStart = false
		toks, err := l.scanIndentation()
		if err != nil {
			return token.Token{}, err
		}
		if len(toks) > 0 {
			l.pending = toks[1:]
			return toks[0], nil
		}
	}

	return l.scanToken()
}

func (l *Lexer) atEnd() bool {
	return l.pos >= len(l.src)
}

func (l *Lexer) peekByte() byte {
	if l.atEnd() {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) peekByteAt(offset int) byte {
	if l.pos+offset >= len(l.src) {
		return 0
	}
	return l.src[l.pos+offset]
}

func (l *Lexer) advanceByte() byte {
	c := l.src[l.pos]
	l.pos++
	if c == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return c
}

func (l *Lexer) here() token.Position {
	return token.Position{Line: l.line, Column: l.column}
}

// scanIndentation measures the leading whitespace of the current line and
// emits zero or more INDENT/DEDENT tokens. Blank lines and comment-only
// lines never change the indent stack.
func (l *Lexer) scanIndentation() ([]token.Token, error) {
	width := 0
	for !l.atEnd() {
		switch l.peekByte() {
		case ' ':
			width++
			l.advanceByte()
			continue
		case '\t':
			width += tabWidth
			l.advanceByte()
			continue
		}
		break
	}

	if l.atEnd() {
		return l.unwindIndents(), nil
	}
	switch l.peekByte() {
	case '\n', '#':
		return nil, nil
	}

	topVal, _ := l.indents.Peek()
	current := topVal.(int)

	switch {
	case width > current:
		l.indents.Push(width)
		return []token.Token{{Kind: token.Indent, Lexeme: "", Pos: l.here()}}, nil
	case width == current:
		return nil, nil
	default:
		var toks []token.Token
		for {
			v, ok := l.indents.Peek()
			if !ok {
				return nil, diag.Lex(l.here(), "indentation does not match any outer level")
			}
			level := v.(int)
			if level == width {
				break
			}
			if level < width {
				return nil, diag.Lex(l.here(), "indentation does not match any outer level")
			}
			l.indents.Pop()
			toks = append(toks, token.Token{Kind: token.Dedent, Lexeme: "", Pos: l.here()})
		}
		return toks, nil
	}
}

// unwindIndents pops the remaining indent levels at end-of-input.
func (l *Lexer) unwindIndents() []token.Token {
	var toks []token.Token
	for {
		v, ok := l.indents.Peek()
		if !ok || v.(int) == 0 {
			break
		}
		l.indents.Pop()
		toks = append(toks, token.Token{Kind: token.Dedent, Lexeme: "", Pos: l.here()})
	}
	return toks
}

func (l *Lexer) scanToken() (token.Token, error) {
	for {
		if l.atEnd() {
			if !l.done {
				l.done = true
				toks := l.unwindIndents()
				if len(toks) > 0 {
					l.pending = toks[1:]
					l.pending = append(l.pending, token.Token{Kind: token.Eof, Lexeme: "", Pos: l.here()})
					return toks[0], nil
				}
			}
			return token.Token{Kind: token.Eof, Lexeme: "", Pos: l.here()}, nil
		}

		switch c := l.peekByte(); {
		case c == ' ' || c == '\t':
			l.advanceByte()
			continue
		case c == '\r':
			l.advanceByte()
			continue
		case c == '#':
			for !l.atEnd() && l.peekByte() != '\n' {
				l.advanceByte()
			}
			continue
		case c == '\n':
			pos := l.here()
			l.advanceByte()
			l.atLineStart = true
			return token.Token{Kind: token.Newline, Lexeme: "\n", Pos: pos}, nil
		case c == '"' || c == '\'':
			return l.scanString(c)
		case isDigit(c):
			return l.scanNumber()
		case isIdentStart(c):
			return l.scanIdentifier()
		default:
			return l.scanOperator()
		}
	}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

func (l *Lexer) scanString(quote byte) (token.Token, error) {
	start := l.here()
	l.advanceByte() // opening quote
	var sb strings.Builder
	for {
		if l.atEnd() {
			return token.Token{}, diag.Lex(start, "unterminated string literal")
		}
		c := l.peekByte()
		if c == quote {
			l.advanceByte()
			return token.Token{Kind: token.String, Lexeme: sb.String(), Pos: start}, nil
		}
		if c == '\n' {
			return token.Token{}, diag.Lex(start, "unterminated string literal")
		}
		if c == '\\' {
			l.advanceByte()
			if l.atEnd() {
				return token.Token{}, diag.Lex(start, "unterminated string literal")
			}
			esc := l.advanceByte()
			switch esc {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 'r':
				sb.WriteByte('\r')
			case '\\':
				sb.WriteByte('\\')
			case '\'':
				sb.WriteByte('\'')
			case '"':
				sb.WriteByte('"')
			case '0':
				sb.WriteByte(0)
			default:
				sb.WriteByte(esc)
			}
			continue
		}
		sb.WriteByte(l.advanceByte())
	}
}

func (l *Lexer) scanNumber() (token.Token, error) {
	start := l.here()
	startPos := l.pos
	for !l.atEnd() && isDigit(l.peekByte()) {
		l.advanceByte()
	}
	kind := token.Integer
	if !l.atEnd() && l.peekByte() == '.' && isDigit(l.peekByteAt(1)) {
		kind = token.Float
		l.advanceByte() // '.'
		for !l.atEnd() && isDigit(l.peekByte()) {
			l.advanceByte()
		}
	}
	return token.Token{Kind: kind, Lexeme: string(l.src[startPos:l.pos]), Pos: start}, nil
}

func (l *Lexer) scanIdentifier() (token.Token, error) {
	start := l.here()
	startPos := l.pos
	for !l.atEnd() && isIdentPart(l.peekByte()) {
		l.advanceByte()
	}
	lexeme := string(l.src[startPos:l.pos])
	if kind, ok := token.Keywords[lexeme]; ok {
		return token.Token{Kind: kind, Lexeme: lexeme, Pos: start}, nil
	}
	return token.Token{Kind: token.Identifier, Lexeme: lexeme, Pos: start}, nil
}

type opRule struct {
	lexeme string
	kind   token.Kind
}

// Longest match first within each starting byte.
var opRules = []opRule{
	{"**", token.Power},
	{"//", token.FloorDivide},
	{"==", token.Equal},
	{"!=", token.NotEqual},
	{"<=", token.LessEqual},
	{">=", token.GreaterEqual},
	{"+=", token.PlusAssign},
	{"-=", token.MinusAssign},
	{"*=", token.MultAssign},
	{"/=", token.DivAssign},
	{"+", token.Plus},
	{"-", token.Minus},
	{"*", token.Multiply},
	{"/", token.Divide},
	{"%", token.Modulo},
	{"=", token.Assign},
	{"<", token.Less},
	{">", token.Greater},
	{"(", token.LParen},
	{")", token.RParen},
	{"[", token.LBracket},
	{"]", token.RBracket},
	{"{", token.LBrace},
	{"}", token.RBrace},
	{",", token.Comma},
	{":", token.Colon},
	{";", token.Semicolon},
	{".", token.Dot},
}

func (l *Lexer) scanOperator() (token.Token, error) {
	start := l.here()
	remaining := l.src[l.pos:]
	for _, rule := range opRules {
		if bytes.HasPrefix(remaining, []byte(rule.lexeme)) {
			for range rule.lexeme {
				l.advanceByte()
			}
			return token.Token{Kind: rule.kind, Lexeme: rule.lexeme, Pos: start}, nil
		}
	}
	bad := l.advanceByte()
	return token.Token{}, diag.Lex(start, "unexpected character %q", bad)
}
