package convert

import (
	"errors"
	"fmt"
	"testing"

	"luamend/internal/nodes"
	"luamend/internal/parser"
)

func convertChunk(t *testing.T, src string, opts Options) *nodes.Block {
	t.Helper()
	parsed, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}
	block, err := Convert(src, parsed, opts)
	if err != nil {
		t.Fatalf("Convert(%q): %v", src, err)
	}
	return block
}

func convertErr(t *testing.T, src string, opts Options) *Error {
	t.Helper()
	parsed, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}
	_, err = Convert(src, parsed, opts)
	if err == nil {
		t.Fatalf("Convert(%q) succeeded", src)
	}
	var cerr *Error
	if !errors.As(err, &cerr) {
		t.Fatalf("error type %T: %v", err, err)
	}
	return cerr
}

func TestConvertBlockShape(t *testing.T) {
	block := convertChunk(t, "do end return", Options{})
	if block.StatementCount() != 1 {
		t.Fatalf("count = %d", block.StatementCount())
	}
	if _, ok := block.Statement(0).(*nodes.DoStatement); !ok {
		t.Fatalf("statement = %T", block.Statement(0))
	}
	ret, ok := block.LastStatement().(*nodes.ReturnStatement)
	if !ok {
		t.Fatalf("last = %T", block.LastStatement())
	}
	if len(ret.Expressions) != 0 {
		t.Fatalf("return values = %d", len(ret.Expressions))
	}
}

func TestConvertStatementShapes(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{name: "assign", src: "a.b = 1", want: "*nodes.AssignStatement"},
		{name: "compound assign", src: "a //= 2", want: "*nodes.CompoundAssignStatement"},
		{name: "call", src: "print(1)", want: "*nodes.FunctionCall"},
		{name: "do", src: "do end", want: "*nodes.DoStatement"},
		{name: "while", src: "while true do end", want: "*nodes.WhileStatement"},
		{name: "repeat", src: "repeat until a", want: "*nodes.RepeatStatement"},
		{name: "if", src: "if a then end", want: "*nodes.IfStatement"},
		{name: "numeric for", src: "for i = 1, 2 do end", want: "*nodes.NumericForStatement"},
		{name: "generic for", src: "for k in t do end", want: "*nodes.GenericForStatement"},
		{name: "function", src: "function a.b() end", want: "*nodes.FunctionStatement"},
		{name: "local function", src: "local function f() end", want: "*nodes.LocalFunctionStatement"},
		{name: "local", src: "local a", want: "*nodes.LocalAssignStatement"},
		{name: "type declaration", src: "type T = string", want: "*nodes.TypeDeclarationStatement"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			block := convertChunk(t, tt.src, Options{})
			if got := fmt.Sprintf("%T", block.Statement(0)); got != tt.want {
				t.Fatalf("statement type %s, want %s", got, tt.want)
			}
		})
	}
}

func TestConvertBinaryPrecedence(t *testing.T) {
	block := convertChunk(t, "return 1 + 2 * 3", Options{})
	ret := block.LastStatement().(*nodes.ReturnStatement)
	add, ok := ret.Expressions[0].(*nodes.BinaryExpression)
	if !ok || add.Operator != nodes.BinaryPlus {
		t.Fatalf("root = %T", ret.Expressions[0])
	}
	left, ok := add.Left.(*nodes.NumberExpression)
	if !ok || left.Value != 1 {
		t.Fatalf("left = %#v", add.Left)
	}
	mul, ok := add.Right.(*nodes.BinaryExpression)
	if !ok || mul.Operator != nodes.BinaryAsterisk {
		t.Fatalf("right = %T", add.Right)
	}
}

func TestConvertIfExpression(t *testing.T) {
	block := convertChunk(t, "return if a then 1 elseif b then 2 else 3", Options{})
	ret := block.LastStatement().(*nodes.ReturnStatement)
	ifExpr, ok := ret.Expressions[0].(*nodes.IfExpression)
	if !ok {
		t.Fatalf("expression = %T", ret.Expressions[0])
	}
	if len(ifExpr.Branches) != 1 {
		t.Fatalf("branches = %d", len(ifExpr.Branches))
	}
	if _, ok := ifExpr.ElseResult.(*nodes.NumberExpression); !ok {
		t.Fatalf("else result = %T", ifExpr.ElseResult)
	}
}

func TestConvertLocalAssign(t *testing.T) {
	block := convertChunk(t, "local a, b = 1, 2", Options{HoldTokenData: true})
	local, ok := block.Statement(0).(*nodes.LocalAssignStatement)
	if !ok {
		t.Fatalf("statement = %T", block.Statement(0))
	}
	if len(local.Variables) != 2 || len(local.Values) != 2 {
		t.Fatalf("vars = %d, values = %d", len(local.Variables), len(local.Values))
	}
	if local.Variables[0].Name != "a" || local.Variables[1].Name != "b" {
		t.Fatalf("names = %q, %q", local.Variables[0].Name, local.Variables[1].Name)
	}
	if local.Tokens == nil || local.Tokens.Local == nil || local.Tokens.Equal == nil {
		t.Fatal("missing token data")
	}
	if len(local.Tokens.VariableCommas) != 1 || len(local.Tokens.ValueCommas) != 1 {
		t.Fatalf("commas = %d, %d", len(local.Tokens.VariableCommas), len(local.Tokens.ValueCommas))
	}
	if got := local.Tokens.Local.Content("local a, b = 1, 2"); got != "local" {
		t.Fatalf("local token = %q", got)
	}
}

func TestConvertWithoutTokenData(t *testing.T) {
	block := convertChunk(t, "local a = 1;", Options{})
	local := block.Statement(0).(*nodes.LocalAssignStatement)
	if local.Tokens != nil {
		t.Fatal("token data held without the option")
	}
	if block.Tokens() != nil {
		t.Fatal("block token data held without the option")
	}
}

func TestConvertNumbers(t *testing.T) {
	tests := []struct {
		name string
		src  string
		kind nodes.NumberKind
		want float64
	}{
		{name: "decimal", src: "return 42", kind: nodes.DecimalNumber, want: 42},
		{name: "float", src: "return 1.5e2", kind: nodes.DecimalNumber, want: 150},
		{name: "separators", src: "return 1_000", kind: nodes.DecimalNumber, want: 1000},
		{name: "hex", src: "return 0xFF", kind: nodes.HexNumber, want: 255},
		{name: "binary", src: "return 0b101", kind: nodes.BinaryNumber, want: 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			block := convertChunk(t, tt.src, Options{})
			ret := block.LastStatement().(*nodes.ReturnStatement)
			num, ok := ret.Expressions[0].(*nodes.NumberExpression)
			if !ok {
				t.Fatalf("expression = %T", ret.Expressions[0])
			}
			if num.Kind != tt.kind || num.Value != tt.want {
				t.Fatalf("kind = %d value = %g, want %d %g", num.Kind, num.Value, tt.kind, tt.want)
			}
		})
	}
}

func TestConvertStrings(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{name: "plain", src: `return "abc"`, want: "abc"},
		{name: "escapes", src: `return "a\nb\tc"`, want: "a\nb\tc"},
		{name: "quote escape", src: `return "a\"b"`, want: `a"b`},
		{name: "decimal escape", src: `return "\65\66"`, want: "AB"},
		{name: "hex escape", src: `return "\x41"`, want: "A"},
		{name: "unicode escape", src: `return "\u{48}"`, want: "H"},
		{name: "long string", src: "return [[line]]", want: "line"},
		{name: "long string leading newline", src: "return [[\nline]]", want: "line"},
		{name: "leveled long string", src: "return [==[a]]b]==]", want: "a]]b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			block := convertChunk(t, tt.src, Options{})
			ret := block.LastStatement().(*nodes.ReturnStatement)
			str, ok := ret.Expressions[0].(*nodes.StringExpression)
			if !ok {
				t.Fatalf("expression = %T", ret.Expressions[0])
			}
			if str.Value != tt.want {
				t.Fatalf("value = %q, want %q", str.Value, tt.want)
			}
		})
	}
}

func TestConvertErrors(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		kind   ErrorKind
		detail string
	}{
		{name: "call assignment target", src: "f() = 1", kind: ErrVariable},
		{name: "number overflow", src: "return 1e999", kind: ErrNumber, detail: "decimal literal: strconv.ParseFloat: parsing \"1e999\": value out of range"},
		{name: "binary overflow", src: "return 0b" + manyOnes(70), kind: ErrNumber, detail: "binary literal: strconv.ParseUint: parsing \"" + manyOnes(70) + "\": value out of range"},
		{name: "variadic not last", src: "function f(..., a) end", kind: ErrStatement, detail: "variadic parameter must be last"},
		{name: "variadic in expression", src: "local f = function(..., a) end", kind: ErrExpression, detail: "variadic parameter must be last"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cerr := convertErr(t, tt.src, Options{})
			if cerr.Kind != tt.kind {
				t.Fatalf("kind = %v, want %v", cerr.Kind, tt.kind)
			}
			if tt.detail != "" && cerr.Detail != tt.detail {
				t.Fatalf("detail = %q, want %q", cerr.Detail, tt.detail)
			}
		})
	}
}

func manyOnes(n int) string {
	ones := make([]byte, n)
	for i := range ones {
		ones[i] = '1'
	}
	return string(ones)
}

func TestLenientDropsFailingStatements(t *testing.T) {
	src := "f() = 1\nlocal a = 2\nreturn a"
	block := convertChunk(t, src, Options{LenientStatements: true})
	if block.StatementCount() != 1 {
		t.Fatalf("count = %d", block.StatementCount())
	}
	if _, ok := block.Statement(0).(*nodes.LocalAssignStatement); !ok {
		t.Fatalf("survivor = %T", block.Statement(0))
	}
	if block.LastStatement() == nil {
		t.Fatal("return dropped")
	}
}

func TestLenientKeepsSemicolonsAligned(t *testing.T) {
	src := "local a = 1;\nf() = 2;\nlocal b = 3"
	block := convertChunk(t, src, Options{HoldTokenData: true, LenientStatements: true})
	if block.StatementCount() != 2 {
		t.Fatalf("count = %d", block.StatementCount())
	}
	semis := block.Tokens().Semicolons
	if len(semis) != 2 {
		t.Fatalf("semicolons = %d", len(semis))
	}
	if semis[0] == nil {
		t.Fatal("first statement lost its semicolon")
	}
	if semis[1] != nil {
		t.Fatal("second survivor grew a semicolon")
	}
}

func TestStrictFailsWhereLenientRecovers(t *testing.T) {
	src := "f() = 1\nreturn"
	parsed, err := parser.Parse(src)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Convert(src, parsed, Options{}); err == nil {
		t.Fatal("strict conversion succeeded")
	}
	if _, err := Convert(src, parsed, Options{LenientStatements: true}); err != nil {
		t.Fatalf("lenient conversion failed: %v", err)
	}
}

func TestLenientDeeplyNestedFailure(t *testing.T) {
	// the failing statement sits inside a healthy one; only the inner
	// block drops it
	src := "do\nf() = 1\nlocal a = 2\nend"
	block := convertChunk(t, src, Options{LenientStatements: true})
	do, ok := block.Statement(0).(*nodes.DoStatement)
	if !ok {
		t.Fatalf("statement = %T", block.Statement(0))
	}
	if do.Block.StatementCount() != 1 {
		t.Fatalf("inner count = %d", do.Block.StatementCount())
	}
}

func TestFinalTokenHoldsTail(t *testing.T) {
	src := "return 1\n-- tail\n"
	block := convertChunk(t, src, Options{HoldTokenData: true})
	if block.Tokens() == nil || block.Tokens().Final == nil {
		t.Fatal("missing final token")
	}
	trivia := block.Tokens().Final.LeadingTrivia()
	if len(trivia) == 0 {
		t.Fatal("final token lost the tail")
	}
	var tail string
	for _, tv := range trivia {
		tail += tv.Content(src)
	}
	if tail != "-- tail\n" {
		t.Fatalf("tail = %q", tail)
	}
}

func TestConvertErrorMessage(t *testing.T) {
	cerr := convertErr(t, "f() = 1", Options{})
	msg := cerr.Error()
	if msg != "unsupported assignment target in `f()`" {
		t.Fatalf("message = %q", msg)
	}
}
