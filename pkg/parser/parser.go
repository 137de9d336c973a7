// Package parser implements Arbor's recursive-descent, operator-precedence
// parser. It consumes the flat token slice produced by pkg/lexer and builds
// a *ast.Program. The parser is a pure function of its input: it holds no
// state beyond a cursor into the token slice, with one parseX method per
// grammar construct.
package parser

import (
	"github.com/arbor-lang/arbor/pkg/ast"
	"github.com/arbor-lang/arbor/pkg/diag"
	"github.com/arbor-lang/arbor/pkg/lexer"
	"github.com/arbor-lang/arbor/pkg/token"
)

// Parser consumes a token slice and produces an AST.
type Parser struct {
	tokens []token.Token
	pos    int
}

// New creates a Parser over an already-scanned token slice.
func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse scans src and parses it into a *ast.Program in one call.
func Parse(src string) (*ast.Program, error) {
	tokens, err := lexer.Tokenize(src)
	if err != nil {
		return nil, err
	}
	return New(tokens).ParseProgram()
}

//-----------------------------------------------------------------------------
// Cursor helpers
//-----------------------------------------------------------------------------

func (p *Parser) current() token.Token {
	if p.pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // Eof
	}
	return p.tokens[p.pos]
}

func (p *Parser) peekKind() token.Kind { return p.current().Kind }

func (p *Parser) at(kind token.Kind) bool { return p.peekKind() == kind }

func (p *Parser) advance() token.Token {
	tok := p.current()
	if tok.Kind != token.Eof {
		p.pos++
	}
	return tok
}

func (p *Parser) check(kind token.Kind) bool { return p.peekKind() == kind }

func (p *Parser) match(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if p.check(k) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) expect(kind token.Kind) (token.Token, error) {
	if p.check(kind) {
		return p.advance(), nil
	}
	tok := p.current()
	return token.Token{}, diag.ParseErr(tok.Pos, "expected %s but found %s %q", kind, tok.Kind, tok.Lexeme)
}

func (p *Parser) skipNewlines() {
	for p.at(token.Newline) {
		p.advance()
	}
}

//-----------------------------------------------------------------------------
// Top level
//-----------------------------------------------------------------------------

// ParseProgram parses the whole token stream into a Program.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	p.skipNewlines()
	var statements []ast.Statement
	for !p.at(token.Eof) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)
		p.skipNewlines()
	}
	return ast.NewProgram(statements), nil
}

//-----------------------------------------------------------------------------
// Statements
//-----------------------------------------------------------------------------

func (p *Parser) parseStatement() (ast.Statement, error) {
	switch p.peekKind() {
	case token.Def:
		return p.parseFunctionDef()
	case token.Class:
		return p.parseClassDef()
	case token.If:
		return p.parseIf()
	case token.While:
		return p.parseWhile()
	case token.For:
		return p.parseFor()
	case token.Return:
		return p.parseReturn()
	case token.Break:
		pos := p.advance().Pos
		return ast.NewBreak(pos), p.endSimpleStatement()
	case token.Continue:
		pos := p.advance().Pos
		return ast.NewContinue(pos), p.endSimpleStatement()
	case token.Pass:
		pos := p.advance().Pos
		return ast.NewPass(pos), p.endSimpleStatement()
	default:
		return p.parseExpressionStatement()
	}
}

// endSimpleStatement consumes the newline that terminates a simple
// (single-line) statement, if present; it is optional just before Eof/Dedent
// so the last line of a block need not carry a trailing newline.
func (p *Parser) endSimpleStatement() error {
	if p.at(token.Newline) {
		p.advance()
		return nil
	}
	if p.at(token.Eof) || p.at(token.Dedent) {
		return nil
	}
	tok := p.current()
	return diag.ParseErr(tok.Pos, "expected end of statement but found %s %q", tok.Kind, tok.Lexeme)
}

func (p *Parser) parseExpressionStatement() (ast.Statement, error) {
	pos := p.current().Pos
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.endSimpleStatement(); err != nil {
		return nil, err
	}
	return ast.NewExpressionStatement(pos, expr), nil
}

// parseBlock implements the block rule shared by every compound statement:
// after the caller has consumed the trailing ':' and NEWLINE, it expects an
// INDENT, a sequence of statements, and a DEDENT.
func (p *Parser) parseBlock() (*ast.Block, error) {
	pos := p.current().Pos
	if _, err := p.expect(token.Indent); err != nil {
		return nil, err
	}
	var statements []ast.Statement
	p.skipNewlines()
	for !p.at(token.Dedent) && !p.at(token.Eof) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)
		p.skipNewlines()
	}
	if _, err := p.expect(token.Dedent); err != nil {
		return nil, err
	}
	return ast.NewBlock(pos, statements), nil
}

func (p *Parser) parseColonNewlineBlock() (*ast.Block, error) {
	if _, err := p.expect(token.Colon); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Newline); err != nil {
		return nil, err
	}
	return p.parseBlock()
}

func (p *Parser) parseIf() (ast.Statement, error) {
	pos := p.advance().Pos // 'if'
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	then, err := p.parseColonNewlineBlock()
	if err != nil {
		return nil, err
	}
	var elseStmt ast.Statement
	switch {
	case p.at(token.Elif):
		elseStmt, err = p.parseElif()
		if err != nil {
			return nil, err
		}
	case p.at(token.Else):
		p.advance()
		elseBlock, err := p.parseColonNewlineBlock()
		if err != nil {
			return nil, err
		}
		elseStmt = elseBlock
	}
	return ast.NewIf(pos, cond, then, elseStmt), nil
}

// parseElif desugars `elif C: BLOCK` into an `If` nested in the enclosing
// If's Else slot.
func (p *Parser) parseElif() (ast.Statement, error) {
	pos := p.advance().Pos // 'elif'
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	then, err := p.parseColonNewlineBlock()
	if err != nil {
		return nil, err
	}
	var elseStmt ast.Statement
	switch {
	case p.at(token.Elif):
		elseStmt, err = p.parseElif()
		if err != nil {
			return nil, err
		}
	case p.at(token.Else):
		p.advance()
		elseBlock, err := p.parseColonNewlineBlock()
		if err != nil {
			return nil, err
		}
		elseStmt = elseBlock
	}
	return ast.NewIf(pos, cond, then, elseStmt), nil
}

func (p *Parser) parseWhile() (ast.Statement, error) {
	pos := p.advance().Pos // 'while'
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	body, err := p.parseColonNewlineBlock()
	if err != nil {
		return nil, err
	}
	return ast.NewWhile(pos, cond, body), nil
}

func (p *Parser) parseFor() (ast.Statement, error) {
	pos := p.advance().Pos // 'for'
	nameTok, err := p.expect(token.Identifier)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.In); err != nil {
		return nil, err
	}
	iterable, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	body, err := p.parseColonNewlineBlock()
	if err != nil {
		return nil, err
	}
	return ast.NewFor(pos, nameTok.Lexeme, iterable, body), nil
}

func (p *Parser) parseReturn() (ast.Statement, error) {
	pos := p.advance().Pos // 'return'
	var value ast.Expression
	if !p.at(token.Newline) && !p.at(token.Eof) && !p.at(token.Dedent) {
		var err error
		value, err = p.parseExpression()
		if err != nil {
			return nil, err
		}
	}
	if err := p.endSimpleStatement(); err != nil {
		return nil, err
	}
	return ast.NewReturn(pos, value), nil
}

func (p *Parser) parseFunctionDef() (ast.Statement, error) {
	pos := p.advance().Pos // 'def'
	nameTok, err := p.expect(token.Identifier)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LParen); err != nil {
		return nil, err
	}
	var params []ast.Parameter
	for !p.at(token.RParen) {
		paramTok, err := p.expect(token.Identifier)
		if err != nil {
			return nil, err
		}
		param := ast.Parameter{Name: paramTok.Lexeme}
		if p.match(token.Assign) {
			def, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			param.Default = def
		}
		params = append(params, param)
		if !p.match(token.Comma) {
			break
		}
	}
	if _, err := p.expect(token.RParen); err != nil {
		return nil, err
	}
	body, err := p.parseColonNewlineBlock()
	if err != nil {
		return nil, err
	}
	return ast.NewFunctionDef(pos, nameTok.Lexeme, params, body), nil
}

func (p *Parser) parseClassDef() (ast.Statement, error) {
	pos := p.advance().Pos // 'class'
	nameTok, err := p.expect(token.Identifier)
	if err != nil {
		return nil, err
	}
	var bases []string
	if p.match(token.LParen) {
		for !p.at(token.RParen) {
			baseTok, err := p.expect(token.Identifier)
			if err != nil {
				return nil, err
			}
			bases = append(bases, baseTok.Lexeme)
			if !p.match(token.Comma) {
				break
			}
		}
		if _, err := p.expect(token.RParen); err != nil {
			return nil, err
		}
	}
	body, err := p.parseColonNewlineBlock()
	if err != nil {
		return nil, err
	}
	return ast.NewClassDef(pos, nameTok.Lexeme, bases, body), nil
}

//-----------------------------------------------------------------------------
// Expressions — precedence climbing
//-----------------------------------------------------------------------------

func (p *Parser) parseExpression() (ast.Expression, error) {
	return p.parseAssignment()
}

// Level 0: assignment, right-associative. The left-hand side must already
// be syntactically an Identifier; anything else is a parse-time error.
func (p *Parser) parseAssignment() (ast.Expression, error) {
	left, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if op, ok := p.peekAssignOp(); ok {
		opTok := p.advance()
		if _, isIdent := left.(*ast.Identifier); !isIdent {
			return nil, diag.ParseErr(opTok.Pos, "invalid assignment target")
		}
		value, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}
		return ast.NewAssignment(left.Position(), left, op, value), nil
	}
	return left, nil
}

func (p *Parser) peekAssignOp() (token.Kind, bool) {
	switch p.peekKind() {
	case token.Assign, token.PlusAssign, token.MinusAssign, token.MultAssign, token.DivAssign:
		return p.peekKind(), true
	}
	return token.Illegal, false
}

// Level 1: or, left-associative.
func (p *Parser) parseOr() (ast.Expression, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.at(token.Or) {
		opTok := p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinary(left.Position(), left, opTok.Kind, right)
	}
	return left, nil
}

// Level 2: and, left-associative.
func (p *Parser) parseAnd() (ast.Expression, error) {
	left, err := p.parseEquality()
	if err != nil {
		return nil, err
	}
	for p.at(token.And) {
		opTok := p.advance()
		right, err := p.parseEquality()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinary(left.Position(), left, opTok.Kind, right)
	}
	return left, nil
}

// Level 3: == !=, left-associative.
func (p *Parser) parseEquality() (ast.Expression, error) {
	left, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	for p.at(token.Equal) || p.at(token.NotEqual) {
		opTok := p.advance()
		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinary(left.Position(), left, opTok.Kind, right)
	}
	return left, nil
}

// Level 4: < <= > >=, left-associative.
func (p *Parser) parseComparison() (ast.Expression, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for p.at(token.Less) || p.at(token.LessEqual) || p.at(token.Greater) || p.at(token.GreaterEqual) {
		opTok := p.advance()
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinary(left.Position(), left, opTok.Kind, right)
	}
	return left, nil
}

// Level 5: + -, left-associative.
func (p *Parser) parseAdditive() (ast.Expression, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.at(token.Plus) || p.at(token.Minus) {
		opTok := p.advance()
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinary(left.Position(), left, opTok.Kind, right)
	}
	return left, nil
}

// Level 6: * / % //, left-associative.
func (p *Parser) parseMultiplicative() (ast.Expression, error) {
	left, err := p.parsePower()
	if err != nil {
		return nil, err
	}
	for p.at(token.Multiply) || p.at(token.Divide) || p.at(token.Modulo) || p.at(token.FloorDivide) {
		opTok := p.advance()
		right, err := p.parsePower()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinary(left.Position(), left, opTok.Kind, right)
	}
	return left, nil
}

// Level 7: **, right-associative.
func (p *Parser) parsePower() (ast.Expression, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	if p.at(token.Power) {
		opTok := p.advance()
		right, err := p.parsePower() // right-assoc: recurse at same level
		if err != nil {
			return nil, err
		}
		return ast.NewBinary(left.Position(), left, opTok.Kind, right), nil
	}
	return left, nil
}

// Level 8: unary - and unary not, prefix.
func (p *Parser) parseUnary() (ast.Expression, error) {
	if p.at(token.Minus) || p.at(token.Not) {
		opTok := p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return ast.NewUnary(opTok.Pos, opTok.Kind, operand), nil
	}
	return p.parseCall()
}

// Level 9: call postfix f(...).
func (p *Parser) parseCall() (ast.Expression, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for p.at(token.LParen) {
		pos := p.advance().Pos // '('
		var args []ast.Expression
		for !p.at(token.RParen) {
			arg, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !p.match(token.Comma) {
				break
			}
		}
		if _, err := p.expect(token.RParen); err != nil {
			return nil, err
		}
		expr = ast.NewCall(pos, expr, args)
	}
	return expr, nil
}

// Level 10: primary — literal, identifier, parenthesized expression, or the
// reserved (stub) list/dict literal shapes.
func (p *Parser) parsePrimary() (ast.Expression, error) {
	tok := p.current()
	switch tok.Kind {
	case token.Integer, token.Float, token.String, token.Boolean, token.None:
		p.advance()
		return ast.NewLiteral(tok), nil
	case token.Identifier:
		p.advance()
		return ast.NewIdentifier(tok.Pos, tok.Lexeme), nil
	case token.LParen:
		p.advance()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RParen); err != nil {
			return nil, err
		}
		return expr, nil
	case token.LBracket:
		return p.parseListLiteral()
	case token.LBrace:
		return p.parseDictLiteral()
	default:
		return nil, diag.ParseErr(tok.Pos, "expected expression but found %s %q", tok.Kind, tok.Lexeme)
	}
}

func (p *Parser) parseListLiteral() (ast.Expression, error) {
	pos := p.advance().Pos // '['
	var elements []ast.Expression
	for !p.at(token.RBracket) {
		el, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		elements = append(elements, el)
		if !p.match(token.Comma) {
			break
		}
	}
	if _, err := p.expect(token.RBracket); err != nil {
		return nil, err
	}
	return ast.NewList(pos, elements), nil
}

func (p *Parser) parseDictLiteral() (ast.Expression, error) {
	pos := p.advance().Pos // '{'
	var pairs []ast.DictPair
	for !p.at(token.RBrace) {
		key, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.Colon); err != nil {
			return nil, err
		}
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, ast.DictPair{Key: key, Value: value})
		if !p.match(token.Comma) {
			break
		}
	}
	if _, err := p.expect(token.RBrace); err != nil {
		return nil, err
	}
	return ast.NewDict(pos, pairs), nil
}
