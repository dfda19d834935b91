package parser

import (
	"errors"
	"fmt"
	"testing"

	"luamend/internal/cst"
	"luamend/internal/token"
)

func parseChunk(t *testing.T, src string) *cst.Block {
	t.Helper()
	block, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}
	return block
}

func TestParseStatementShapes(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{name: "local", src: "local a = 1", want: "*cst.LocalAssignStmt"},
		{name: "local without values", src: "local a, b", want: "*cst.LocalAssignStmt"},
		{name: "assign", src: "a.b, c[1] = x, y", want: "*cst.AssignStmt"},
		{name: "compound assign", src: "a += 1", want: "*cst.CompoundAssignStmt"},
		{name: "call", src: "print('hi')", want: "*cst.CallStmt"},
		{name: "string call", src: "require 'mod'", want: "*cst.CallStmt"},
		{name: "table call", src: "setup { debug = true }", want: "*cst.CallStmt"},
		{name: "method call", src: "obj:run(1)", want: "*cst.CallStmt"},
		{name: "do", src: "do end", want: "*cst.DoStmt"},
		{name: "while", src: "while true do end", want: "*cst.WhileStmt"},
		{name: "repeat", src: "repeat until done", want: "*cst.RepeatStmt"},
		{name: "if", src: "if a then elseif b then else end", want: "*cst.IfStmt"},
		{name: "numeric for", src: "for i = 1, 10, 2 do end", want: "*cst.NumericForStmt"},
		{name: "generic for", src: "for k, v in pairs(t) do end", want: "*cst.GenericForStmt"},
		{name: "function decl", src: "function a.b:m() end", want: "*cst.FunctionDeclStmt"},
		{name: "local function", src: "local function f() end", want: "*cst.LocalFunctionStmt"},
		{name: "type decl", src: "type Pair = { first: number }", want: "*cst.TypeDeclStmt"},
		{name: "exported type decl", src: "export type Id = string", want: "*cst.TypeDeclStmt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			block := parseChunk(t, tt.src)
			if len(block.Stmts) != 1 {
				t.Fatalf("got %d statements", len(block.Stmts))
			}
			if got := fmt.Sprintf("%T", block.Stmts[0]); got != tt.want {
				t.Fatalf("statement type %s, want %s", got, tt.want)
			}
		})
	}
}

func TestParseLastStatement(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{name: "break", src: "while true do break end", want: "*cst.BreakStmt"},
		{name: "continue", src: "while true do continue end", want: "*cst.ContinueStmt"},
		{name: "bare return", src: "return", want: "*cst.ReturnStmt"},
		{name: "return values", src: "return 1, 2", want: "*cst.ReturnStmt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			block := parseChunk(t, tt.src)
			for len(block.Stmts) > 0 {
				switch s := block.Stmts[0].(type) {
				case *cst.WhileStmt:
					block = s.Body
				default:
					t.Fatalf("unexpected statement %T", s)
				}
			}
			if block.Last == nil {
				t.Fatal("no last statement")
			}
			if got := fmt.Sprintf("%T", block.Last); got != tt.want {
				t.Fatalf("last statement type %s, want %s", got, tt.want)
			}
		})
	}
}

// continue is only a keyword when nothing turns it into a call or an
// assignment target.
func TestContinueIsContextual(t *testing.T) {
	block := parseChunk(t, "continue = 1")
	if _, ok := block.Stmts[0].(*cst.AssignStmt); !ok {
		t.Fatalf("statement type %T, want assignment", block.Stmts[0])
	}
	block = parseChunk(t, "continue()")
	if _, ok := block.Stmts[0].(*cst.CallStmt); !ok {
		t.Fatalf("statement type %T, want call", block.Stmts[0])
	}
}

func TestParseSemicolons(t *testing.T) {
	block := parseChunk(t, "local a = 1; local b = 2\nreturn a;")
	if len(block.Semicolons) != 2 {
		t.Fatalf("semicolons len = %d", len(block.Semicolons))
	}
	if block.Semicolons[0] == nil {
		t.Fatal("first statement lost its semicolon")
	}
	if block.Semicolons[1] != nil {
		t.Fatal("second statement grew a semicolon")
	}
	if block.LastSemicolon == nil {
		t.Fatal("return lost its semicolon")
	}
}

func returnValue(t *testing.T, src string) cst.Expr {
	t.Helper()
	block := parseChunk(t, src)
	ret, ok := block.Last.(*cst.ReturnStmt)
	if !ok || ret.Values.Len() == 0 {
		t.Fatalf("no return value in %q", src)
	}
	return ret.Values.Items[0]
}

func TestBinaryPrecedence(t *testing.T) {
	expr := returnValue(t, "return 1 + 2 * 3")
	add, ok := expr.(*cst.BinaryExpr)
	if !ok || add.Op.Kind != token.Plus {
		t.Fatalf("root = %T", expr)
	}
	if _, ok := add.Left.(*cst.NumberExpr); !ok {
		t.Fatalf("left = %T, want number", add.Left)
	}
	mul, ok := add.Right.(*cst.BinaryExpr)
	if !ok || mul.Op.Kind != token.Star {
		t.Fatalf("right = %T, want multiplication", add.Right)
	}
}

func TestConcatIsRightAssociative(t *testing.T) {
	expr := returnValue(t, "return a .. b .. c")
	outer, ok := expr.(*cst.BinaryExpr)
	if !ok || outer.Op.Kind != token.DotDot {
		t.Fatalf("root = %T", expr)
	}
	if _, ok := outer.Right.(*cst.BinaryExpr); !ok {
		t.Fatalf("right = %T, want nested concat", outer.Right)
	}
	if _, ok := outer.Left.(*cst.BinaryExpr); ok {
		t.Fatal("left nested, concat grouped leftward")
	}
}

func TestCaretBindsThroughUnary(t *testing.T) {
	expr := returnValue(t, "return -x ^ 2")
	neg, ok := expr.(*cst.UnaryExpr)
	if !ok || neg.Op.Kind != token.Minus {
		t.Fatalf("root = %T, want unary minus", expr)
	}
	pow, ok := neg.Operand.(*cst.BinaryExpr)
	if !ok || pow.Op.Kind != token.Caret {
		t.Fatalf("operand = %T, want power", neg.Operand)
	}
}

func TestParsePrefixSuffixes(t *testing.T) {
	block := parseChunk(t, "a.b[1]:m(x).c = 1")
	assign := block.Stmts[0].(*cst.AssignStmt)
	prefix := assign.Vars.Items[0]
	want := []string{"*cst.SuffixField", "*cst.SuffixIndex", "*cst.SuffixMethodCall", "*cst.SuffixField"}
	if len(prefix.Suffixes) != len(want) {
		t.Fatalf("got %d suffixes", len(prefix.Suffixes))
	}
	for i, suffix := range prefix.Suffixes {
		if got := fmt.Sprintf("%T", suffix); got != want[i] {
			t.Fatalf("suffix %d type %s, want %s", i, got, want[i])
		}
	}
}

func TestParseExpressionShapes(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{name: "nil", src: "return nil", want: "*cst.NilExpr"},
		{name: "vararg", src: "return ...", want: "*cst.VarargExpr"},
		{name: "function", src: "return function(a, ...) end", want: "*cst.FunctionExpr"},
		{name: "table", src: "return { 1, a = 2, [k] = 3 }", want: "*cst.TableExpr"},
		{name: "parenthese", src: "return (f())", want: "*cst.PrefixExpr"},
		{name: "if expression", src: "return if a then 1 elseif b then 2 else 3", want: "*cst.IfExpr"},
		{name: "type cast", src: "return x :: number", want: "*cst.TypeCastExpr"},
		{name: "interpolated", src: "return `n = {n}`", want: "*cst.InterpStringExpr"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr := returnValue(t, tt.src)
			if got := fmt.Sprintf("%T", expr); got != tt.want {
				t.Fatalf("expression type %s, want %s", got, tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		msg  string
		line int
	}{
		{name: "missing end", src: "do\nlocal a = 1\n", msg: "expected `end`, found <eof>", line: 3},
		{name: "missing expression", src: "local a =", msg: "expected expression, found <eof>", line: 1},
		{name: "missing then", src: "if a do end", msg: "expected `then`, found `do`", line: 1},
		{name: "statement after return", src: "return 1\nlocal a = 2", msg: "unexpected local", line: 2},
		{name: "bare expression statement", src: "a.b", msg: "expected statement, found expression", line: 1},
		{name: "bad table separator", src: "return {1 2}", msg: "expected `,`, `;` or `}` in table, found `2`", line: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.src)
			if err == nil {
				t.Fatalf("Parse(%q) succeeded", tt.src)
			}
			var parseErr *Error
			if !errors.As(err, &parseErr) {
				t.Fatalf("error type %T: %v", err, err)
			}
			if parseErr.Msg != tt.msg {
				t.Fatalf("msg = %q, want %q", parseErr.Msg, tt.msg)
			}
			if parseErr.Line != tt.line {
				t.Fatalf("line = %d, want %d", parseErr.Line, tt.line)
			}
		})
	}
}

func TestDeepNestingFails(t *testing.T) {
	src := "return "
	for i := 0; i < 1200; i++ {
		src += "("
	}
	_, err := Parse(src)
	var parseErr *Error
	if !errors.As(err, &parseErr) {
		t.Fatalf("error = %v", err)
	}
	if parseErr.Msg != "maximum nesting depth exceeded" {
		t.Fatalf("msg = %q", parseErr.Msg)
	}
}

func TestEofCarriesTail(t *testing.T) {
	block := parseChunk(t, "return 1\n-- trailing\n")
	if block.Eof == nil {
		t.Fatal("missing eof token")
	}
	if block.Eof.Kind != token.EOF {
		t.Fatalf("eof kind = %v", block.Eof.Kind)
	}
	if len(block.Eof.Leading) == 0 {
		t.Fatal("eof lost the file tail")
	}
}
