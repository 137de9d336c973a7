package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/arbor-lang/arbor/pkg/ast"
)

// dumpProgram writes an indented tree view of the AST, one node per line,
// for debugging.
func dumpProgram(w io.Writer, program *ast.Program) {
	for _, stmt := range program.Statements {
		dumpStatement(w, stmt, 0)
	}
}

func dumpStatement(w io.Writer, stmt ast.Statement, depth int) {
	indent := strings.Repeat("  ", depth)
	switch s := stmt.(type) {
	case *ast.ExpressionStatement:
		fmt.Fprintf(w, "%sExpressionStatement\n", indent)
		dumpExpression(w, s.Expr, depth+1)
	case *ast.Block:
		for _, inner := range s.Statements {
			dumpStatement(w, inner, depth)
		}
	case *ast.If:
		fmt.Fprintf(w, "%sIf\n", indent)
		dumpExpression(w, s.Condition, depth+1)
		fmt.Fprintf(w, "%sthen:\n", indent)
		dumpStatement(w, s.Then, depth+1)
		if s.Else != nil {
			fmt.Fprintf(w, "%selse:\n", indent)
			dumpStatement(w, s.Else, depth+1)
		}
	case *ast.While:
		fmt.Fprintf(w, "%sWhile\n", indent)
		dumpExpression(w, s.Condition, depth+1)
		dumpStatement(w, s.Body, depth+1)
	case *ast.For:
		fmt.Fprintf(w, "%sFor %s in\n", indent, s.Variable)
		dumpExpression(w, s.Iterable, depth+1)
		dumpStatement(w, s.Body, depth+1)
	case *ast.FunctionDef:
		fmt.Fprintf(w, "%sFunctionDef %s(%s)\n", indent, s.Name, formatParams(s.Parameters))
		dumpStatement(w, s.Body, depth+1)
	case *ast.ClassDef:
		fmt.Fprintf(w, "%sClassDef %s(%s)\n", indent, s.Name, strings.Join(s.Bases, ", "))
		dumpStatement(w, s.Body, depth+1)
	case *ast.Return:
		fmt.Fprintf(w, "%sReturn\n", indent)
		if s.Value != nil {
			dumpExpression(w, s.Value, depth+1)
		}
	case *ast.Break:
		fmt.Fprintf(w, "%sBreak\n", indent)
	case *ast.Continue:
		fmt.Fprintf(w, "%sContinue\n", indent)
	case *ast.Pass:
		fmt.Fprintf(w, "%sPass\n", indent)
	default:
		fmt.Fprintf(w, "%s%T\n", indent, stmt)
	}
}

func dumpExpression(w io.Writer, expr ast.Expression, depth int) {
	indent := strings.Repeat("  ", depth)
	switch e := expr.(type) {
	case *ast.Literal:
		fmt.Fprintf(w, "%sLiteral %s\n", indent, e.Token.Lexeme)
	case *ast.Identifier:
		fmt.Fprintf(w, "%sIdentifier %s\n", indent, e.Name)
	case *ast.Binary:
		fmt.Fprintf(w, "%sBinary %s\n", indent, e.Op)
		dumpExpression(w, e.Left, depth+1)
		dumpExpression(w, e.Right, depth+1)
	case *ast.Unary:
		fmt.Fprintf(w, "%sUnary %s\n", indent, e.Op)
		dumpExpression(w, e.Operand, depth+1)
	case *ast.Call:
		fmt.Fprintf(w, "%sCall\n", indent)
		dumpExpression(w, e.Callee, depth+1)
		for _, arg := range e.Args {
			dumpExpression(w, arg, depth+1)
		}
	case *ast.Assignment:
		fmt.Fprintf(w, "%sAssignment %s\n", indent, e.Op)
		dumpExpression(w, e.Target, depth+1)
		dumpExpression(w, e.Value, depth+1)
	case *ast.Member:
		fmt.Fprintf(w, "%sMember .%s\n", indent, e.Name)
		dumpExpression(w, e.Object, depth+1)
	case *ast.List:
		fmt.Fprintf(w, "%sList\n", indent)
		for _, el := range e.Elements {
			dumpExpression(w, el, depth+1)
		}
	case *ast.Dict:
		fmt.Fprintf(w, "%sDict\n", indent)
		for _, pair := range e.Pairs {
			dumpExpression(w, pair.Key, depth+1)
			dumpExpression(w, pair.Value, depth+1)
		}
	default:
		fmt.Fprintf(w, "%s%T\n", indent, expr)
	}
}

func formatParams(params []ast.Parameter) string {
	parts := make([]string, len(params))
	for i, p := range params {
		if p.Default == nil {
			parts[i] = p.Name
			continue
		}
		parts[i] = p.Name + "=..."
	}
	return strings.Join(parts, ", ")
}
