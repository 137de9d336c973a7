package lexer

import (
	"testing"

	"github.com/arbor-lang/arbor/pkg/token"
)

func kinds(tokens []token.Token) []token.Kind {
	out := make([]token.Kind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}
	return out
}

func assertKinds(t *testing.T, src string, want []token.Kind) {
	t.Helper()
	tokens, err := Tokenize(src)
	if err != nil {
		t.Fatalf("Tokenize(%q) error: %v", src, err)
	}
	got := kinds(tokens)
	if len(got) != len(want) {
		t.Fatalf("Tokenize(%q) = %v, want %v", src, got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("Tokenize(%q)[%d] = %s, want %s", src, i, got[i], want[i])
		}
	}
}

func TestTokenizeSimpleStatement(t *testing.T) {
	assertKinds(t, "x = 1\n", []token.Kind{
		token.Identifier, token.Assign, token.Integer, token.Newline, token.Eof,
	})
}

func TestTokenizeIndentDedent(t *testing.T) {
	src := "if x:\n    y = 1\nz = 2\n"
	assertKinds(t, src, []token.Kind{
		token.If, token.Identifier, token.Colon, token.Newline,
		token.Indent,
		token.Identifier, token.Assign, token.Integer, token.Newline,
		token.Dedent,
		token.Identifier, token.Assign, token.Integer, token.Newline,
		token.Eof,
	})
}

// A tab counts as 8 columns, additive with any preceding spaces. A body
// indented one tab should be recognized as deeper than the zero column the
// if-header sits at, and a following line indented with eight spaces should
// sit at the same level as the tab-indented one.
func TestTabWidthIsEightColumns(t *testing.T) {
	src := "if x:\n\ty = 1\n"
	assertKinds(t, src, []token.Kind{
		token.If, token.Identifier, token.Colon, token.Newline,
		token.Indent,
		token.Identifier, token.Assign, token.Integer, token.Newline,
		token.Dedent,
		token.Eof,
	})

	assertKinds(t, "if x:\n\ty = 1\n        z = 2\n", []token.Kind{
		token.If, token.Identifier, token.Colon, token.Newline,
		token.Indent,
		token.Identifier, token.Assign, token.Integer, token.Newline,
		token.Identifier, token.Assign, token.Integer, token.Newline,
		token.Dedent,
		token.Eof,
	})
}

// Blank lines and comment-only lines never change the indent stack: neither
// should synthesize an Indent/Dedent, and both still emit a Newline for the
// line they occupy.
func TestBlankAndCommentLinesDoNotAffectIndentation(t *testing.T) {
	src := "if x:\n    y = 1\n\n    # a comment\n    z = 2\n"
	tokens, err := Tokenize(src)
	if err != nil {
		t.Fatalf("Tokenize error: %v", err)
	}
	var indents, dedents int
	for _, tok := range tokens {
		switch tok.Kind {
		case token.Indent:
			indents++
		case token.Dedent:
			dedents++
		}
	}
	if indents != 1 || dedents != 1 {
		t.Errorf("got %d Indent and %d Dedent tokens, want exactly 1 of each", indents, dedents)
	}
}

func TestMismatchedDedentIsLexicalDiagnostic(t *testing.T) {
	src := "if x:\n    y = 1\n  z = 2\n"
	_, err := Tokenize(src)
	if err == nil {
		t.Fatal("expected an error for a dedent with no matching indent level")
	}
}

func TestOperatorLongestMatch(t *testing.T) {
	assertKinds(t, "a ** b // c == d != e", []token.Kind{
		token.Identifier, token.Power, token.Identifier, token.FloorDivide,
		token.Identifier, token.Equal, token.Identifier, token.NotEqual,
		token.Identifier, token.Eof,
	})
}

func TestStringEscapes(t *testing.T) {
	tokens, err := Tokenize(`"a\nb\tc\\d"` + "\n")
	if err != nil {
		t.Fatalf("Tokenize error: %v", err)
	}
	if tokens[0].Kind != token.String {
		t.Fatalf("want String token, got %s", tokens[0].Kind)
	}
	if want := "a\nb\tc\\d"; tokens[0].Lexeme != want {
		t.Errorf("string lexeme = %q, want %q", tokens[0].Lexeme, want)
	}
}

func TestUnterminatedStringIsLexicalDiagnostic(t *testing.T) {
	_, err := Tokenize(`"unterminated` + "\n")
	if err == nil {
		t.Fatal("expected an error for an unterminated string literal")
	}
}

func TestKeywordsAndIdentifiers(t *testing.T) {
	assertKinds(t, "def class return True False None and or not is counter _x1", []token.Kind{
		token.Def, token.Class, token.Return, token.Boolean, token.Boolean,
		token.None, token.And, token.Or, token.Not, token.Is,
		token.Identifier, token.Identifier, token.Eof,
	})
}

func TestFloatVsIntegerLiteral(t *testing.T) {
	assertKinds(t, "10 3.14 5.", []token.Kind{
		token.Integer, token.Float, token.Integer, token.Dot, token.Eof,
	})
}

func TestEmptySourceProducesOnlyEof(t *testing.T) {
	tokens, err := Tokenize("")
	if err != nil {
		t.Fatalf("Tokenize(\"\") error: %v", err)
	}
	if len(tokens) != 1 || tokens[0].Kind != token.Eof {
		t.Fatalf("Tokenize(\"\") = %v, want a single Eof token", tokens)
	}
}
