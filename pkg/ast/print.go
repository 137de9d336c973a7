package ast

import (
	"fmt"
	"strings"

	"github.com/arbor-lang/arbor/pkg/token"
)

// Print renders a Program back into valid Arbor source text. Unlike a
// debug dump, the output is designed to reparse into a structurally
// identical AST: every Binary and Unary operand is parenthesized so
// operator precedence survives the round trip regardless of how the
// printer nests them.
func Print(program *Program) string {
	var sb strings.Builder
	for _, stmt := range program.Statements {
		printStatement(&sb, stmt, 0)
	}
	return sb.String()
}

func writeIndent(sb *strings.Builder, depth int) {
	sb.WriteString(strings.Repeat("    ", depth))
}

func printStatement(sb *strings.Builder, stmt Statement, depth int) {
	switch s := stmt.(type) {
	case *ExpressionStatement:
		writeIndent(sb, depth)
		sb.WriteString(printExpression(s.Expr))
		sb.WriteString("\n")
	case *Block:
		for _, inner := range s.Statements {
			printStatement(sb, inner, depth)
		}
	case *If:
		writeIndent(sb, depth)
		sb.WriteString("if ")
		sb.WriteString(printExpression(s.Condition))
		sb.WriteString(":\n")
		printStatement(sb, s.Then, depth+1)
		printElse(sb, s.Else, depth)
	case *While:
		writeIndent(sb, depth)
		sb.WriteString("while ")
		sb.WriteString(printExpression(s.Condition))
		sb.WriteString(":\n")
		printStatement(sb, s.Body, depth+1)
	case *For:
		writeIndent(sb, depth)
		sb.WriteString("for ")
		sb.WriteString(s.Variable)
		sb.WriteString(" in ")
		sb.WriteString(printExpression(s.Iterable))
		sb.WriteString(":\n")
		printStatement(sb, s.Body, depth+1)
	case *FunctionDef:
		writeIndent(sb, depth)
		sb.WriteString("def ")
		sb.WriteString(s.Name)
		sb.WriteString("(")
		sb.WriteString(printParams(s.Parameters))
		sb.WriteString("):\n")
		printStatement(sb, s.Body, depth+1)
	case *ClassDef:
		writeIndent(sb, depth)
		sb.WriteString("class ")
		sb.WriteString(s.Name)
		if len(s.Bases) > 0 {
			sb.WriteString("(")
			sb.WriteString(strings.Join(s.Bases, ", "))
			sb.WriteString(")")
		}
		sb.WriteString(":\n")
		printStatement(sb, s.Body, depth+1)
	case *Return:
		writeIndent(sb, depth)
		sb.WriteString("return")
		if s.Value != nil {
			sb.WriteString(" ")
			sb.WriteString(printExpression(s.Value))
		}
		sb.WriteString("\n")
	case *Break:
		writeIndent(sb, depth)
		sb.WriteString("break\n")
	case *Continue:
		writeIndent(sb, depth)
		sb.WriteString("continue\n")
	case *Pass:
		writeIndent(sb, depth)
		sb.WriteString("pass\n")
	}
}

// printElse prints an If.Else slot, using `elif` when it holds a nested
// *If so the printed source desugars back into the same nested-If shape
// instead of wrapping it in an extra *Block.
func printElse(sb *strings.Builder, els Statement, depth int) {
	switch e := els.(type) {
	case nil:
		return
	case *If:
		writeIndent(sb, depth)
		sb.WriteString("elif ")
		sb.WriteString(printExpression(e.Condition))
		sb.WriteString(":\n")
		printStatement(sb, e.Then, depth+1)
		printElse(sb, e.Else, depth)
	case *Block:
		writeIndent(sb, depth)
		sb.WriteString("else:\n")
		printStatement(sb, e, depth+1)
	}
}

func printParams(params []Parameter) string {
	parts := make([]string, len(params))
	for i, p := range params {
		if p.Default == nil {
			parts[i] = p.Name
			continue
		}
		parts[i] = p.Name + "=" + printExpression(p.Default)
	}
	return strings.Join(parts, ", ")
}

func printExpression(expr Expression) string {
	switch e := expr.(type) {
	case *Literal:
		return printLiteral(e.Token)
	case *Identifier:
		return e.Name
	case *Binary:
		return fmt.Sprintf("(%s %s %s)", printExpression(e.Left), e.Op, printExpression(e.Right))
	case *Unary:
		if e.Op == token.Not {
			return fmt.Sprintf("(not %s)", printExpression(e.Operand))
		}
		return fmt.Sprintf("(%s%s)", e.Op, printExpression(e.Operand))
	case *Call:
		args := make([]string, len(e.Args))
		for i, a := range e.Args {
			args[i] = printExpression(a)
		}
		return fmt.Sprintf("%s(%s)", printExpression(e.Callee), strings.Join(args, ", "))
	case *Assignment:
		return fmt.Sprintf("%s %s %s", printExpression(e.Target), e.Op, printExpression(e.Value))
	case *Member:
		return fmt.Sprintf("%s.%s", printExpression(e.Object), e.Name)
	case *List:
		elems := make([]string, len(e.Elements))
		for i, el := range e.Elements {
			elems[i] = printExpression(el)
		}
		return "[" + strings.Join(elems, ", ") + "]"
	case *Dict:
		pairs := make([]string, len(e.Pairs))
		for i, p := range e.Pairs {
			pairs[i] = printExpression(p.Key) + ": " + printExpression(p.Value)
		}
		return "{" + strings.Join(pairs, ", ") + "}"
	default:
		return ""
	}
}

func printLiteral(tok token.Token) string {
	if tok.Kind == token.String {
		return quoteString(tok.Lexeme)
	}
	return tok.Lexeme
}

// quoteString re-escapes a decoded string value back into a double-quoted
// Arbor string literal, inverting the lexer's scanString escape table.
func quoteString(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		case '\r':
			sb.WriteString(`\r`)
		default:
			sb.WriteByte(c)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
