// Package ast defines the Arbor abstract syntax tree: a discriminated union
// of statement and expression node types, each carrying the source Position
// it was parsed from, using an embedded nodeImpl plus marker interfaces to
// distinguish statements from expressions.
package ast

import "github.com/arbor-lang/arbor/pkg/token"

// Node is implemented by every AST node.
type Node interface {
	Position() token.Position
	isNode()
}

type nodeImpl struct {
	Pos token.Position
}

func (n nodeImpl) Position() token.Position { return n.Pos }
func (nodeImpl) isNode()                    {}

// Expression is implemented by every expression node.
type Expression interface {
	Node
	expressionNode()
}

type exprImpl struct{ nodeImpl }

func (exprImpl) expressionNode() {}

// Statement is implemented by every statement node.
type Statement interface {
	Node
	statementNode()
}

type stmtImpl struct{ nodeImpl }

func (stmtImpl) statementNode() {}

//-----------------------------------------------------------------------------
// Expressions
//-----------------------------------------------------------------------------

// Literal holds the token it was derived from; its runtime value is decoded
// from the token's kind and lexeme at evaluation time.
type Literal struct {
	exprImpl
	Token token.Token
}

func NewLiteral(tok token.Token) *Literal {
	return &Literal{exprImpl: exprImpl{nodeImpl{Pos: tok.Pos}}, Token: tok}
}

// Identifier references a bound name.
type Identifier struct {
	exprImpl
	Name string
}

func NewIdentifier(pos token.Position, name string) *Identifier {
	return &Identifier{exprImpl: exprImpl{nodeImpl{Pos: pos}}, Name: name}
}

// Binary applies a binary operator to two operands. Op is restricted to the
// arithmetic/comparison/logical operator token kinds.
type Binary struct {
	exprImpl
	Left  Expression
	Op    token.Kind
	Right Expression
}

func NewBinary(pos token.Position, left Expression, op token.Kind, right Expression) *Binary {
	return &Binary{exprImpl: exprImpl{nodeImpl{Pos: pos}}, Left: left, Op: op, Right: right}
}

// Unary applies a prefix operator (Minus or Not) to one operand.
type Unary struct {
	exprImpl
	Op      token.Kind
	Operand Expression
}

func NewUnary(pos token.Position, op token.Kind, operand Expression) *Unary {
	return &Unary{exprImpl: exprImpl{nodeImpl{Pos: pos}}, Op: op, Operand: operand}
}

// Call invokes a callee with an ordered argument list.
type Call struct {
	exprImpl
	Callee Expression
	Args   []Expression
}

func NewCall(pos token.Position, callee Expression, args []Expression) *Call {
	return &Call{exprImpl: exprImpl{nodeImpl{Pos: pos}}, Callee: callee, Args: args}
}

// Member is reserved for `object.name` access. The grammar in this core
// never produces one (no `.` in primary expressions); it exists so a future
// extension has a home.
type Member struct {
	exprImpl
	Object Expression
	Name   string
}

func NewMember(pos token.Position, object Expression, name string) *Member {
	return &Member{exprImpl: exprImpl{nodeImpl{Pos: pos}}, Object: object, Name: name}
}

// Assignment assigns Value to Target, which must be an Identifier. The
// expression's own value is the assigned value.
type Assignment struct {
	exprImpl
	Target Expression
	Op     token.Kind
	Value  Expression
}

func NewAssignment(pos token.Position, target Expression, op token.Kind, value Expression) *Assignment {
	return &Assignment{exprImpl: exprImpl{nodeImpl{Pos: pos}}, Target: target, Op: op, Value: value}
}

// List is a parsed-but-stubbed list literal; it evaluates to an opaque
// placeholder value.
type List struct {
	exprImpl
	Elements []Expression
}

func NewList(pos token.Position, elements []Expression) *List {
	return &List{exprImpl: exprImpl{nodeImpl{Pos: pos}}, Elements: elements}
}

// DictPair is one key/value pair of a Dict literal.
type DictPair struct {
	Key   Expression
	Value Expression
}

// Dict is a parsed-but-stubbed dict literal (see List).
type Dict struct {
	exprImpl
	Pairs []DictPair
}

func NewDict(pos token.Position, pairs []DictPair) *Dict {
	return &Dict{exprImpl: exprImpl{nodeImpl{Pos: pos}}, Pairs: pairs}
}

//-----------------------------------------------------------------------------
// Statements
//-----------------------------------------------------------------------------

// ExpressionStatement evaluates Expr and discards its value.
type ExpressionStatement struct {
	stmtImpl
	Expr Expression
}

func NewExpressionStatement(pos token.Position, expr Expression) *ExpressionStatement {
	return &ExpressionStatement{stmtImpl: stmtImpl{nodeImpl{Pos: pos}}, Expr: expr}
}

// Block is an ordered sequence of statements sharing one indentation level.
type Block struct {
	stmtImpl
	Statements []Statement
}

func NewBlock(pos token.Position, statements []Statement) *Block {
	return &Block{stmtImpl: stmtImpl{nodeImpl{Pos: pos}}, Statements: statements}
}

// If represents an if/elif/else chain. Else, when present, holds either a
// Block (the trailing `else:`) or a nested *If (from desugaring `elif`).
type If struct {
	stmtImpl
	Condition Expression
	Then      *Block
	Else      Statement // *Block, *If, or nil
}

func NewIf(pos token.Position, cond Expression, then *Block, els Statement) *If {
	return &If{stmtImpl: stmtImpl{nodeImpl{Pos: pos}}, Condition: cond, Then: then, Else: els}
}

// While is a pre-tested loop.
type While struct {
	stmtImpl
	Condition Expression
	Body      *Block
}

func NewWhile(pos token.Position, cond Expression, body *Block) *While {
	return &While{stmtImpl: stmtImpl{nodeImpl{Pos: pos}}, Condition: cond, Body: body}
}

// For iterates Iterable, binding each element to Variable in turn. There is
// no tuple unpacking: Variable is always a single name.
type For struct {
	stmtImpl
	Variable string
	Iterable Expression
	Body     *Block
}

func NewFor(pos token.Position, variable string, iterable Expression, body *Block) *For {
	return &For{stmtImpl: stmtImpl{nodeImpl{Pos: pos}}, Variable: variable, Iterable: iterable, Body: body}
}

// Parameter is one formal parameter of a function definition. Default, when
// non-nil, is evaluated lazily in the function's captured environment at
// call time, never at definition time.
type Parameter struct {
	Name    string
	Default Expression
}

// FunctionDef declares a named function value.
type FunctionDef struct {
	stmtImpl
	Name       string
	Parameters []Parameter
	Body       *Block
}

func NewFunctionDef(pos token.Position, name string, params []Parameter, body *Block) *FunctionDef {
	return &FunctionDef{stmtImpl: stmtImpl{nodeImpl{Pos: pos}}, Name: name, Parameters: params, Body: body}
}

// ClassDef is syntactic only in this core: its body is parsed but never
// executed for effect.
type ClassDef struct {
	stmtImpl
	Name    string
	Bases   []string
	Body    *Block
}

func NewClassDef(pos token.Position, name string, bases []string, body *Block) *ClassDef {
	return &ClassDef{stmtImpl: stmtImpl{nodeImpl{Pos: pos}}, Name: name, Bases: bases, Body: body}
}

// Return raises the returnSignal control transfer, optionally carrying Value.
type Return struct {
	stmtImpl
	Value Expression // nil when bare `return`
}

func NewReturn(pos token.Position, value Expression) *Return {
	return &Return{stmtImpl: stmtImpl{nodeImpl{Pos: pos}}, Value: value}
}

// Break raises the breakSignal control transfer.
type Break struct{ stmtImpl }

func NewBreak(pos token.Position) *Break { return &Break{stmtImpl{nodeImpl{Pos: pos}}} }

// Continue raises the continueSignal control transfer.
type Continue struct{ stmtImpl }

func NewContinue(pos token.Position) *Continue { return &Continue{stmtImpl{nodeImpl{Pos: pos}}} }

// Pass has no effect.
type Pass struct{ stmtImpl }

func NewPass(pos token.Position) *Pass { return &Pass{stmtImpl{nodeImpl{Pos: pos}}} }

// Program is the AST root: an ordered sequence of top-level statements.
type Program struct {
	stmtImpl
	Statements []Statement
}

func NewProgram(statements []Statement) *Program {
	pos := token.Position{Line: 1, Column: 1}
	if len(statements) > 0 {
		pos = statements[0].Position()
	}
	return &Program{stmtImpl: stmtImpl{nodeImpl{Pos: pos}}, Statements: statements}
}
