package generator

import (
	"testing"

	"luamend/internal/convert"
	"luamend/internal/nodes"
	"luamend/internal/parser"
)

func convertWithTokens(t *testing.T, src string) *nodes.Block {
	t.Helper()
	parsed, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}
	block, err := convert.Convert(src, parsed, convert.Options{HoldTokenData: true})
	if err != nil {
		t.Fatalf("Convert(%q): %v", src, err)
	}
	return block
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{name: "empty chunk", src: ""},
		{name: "whitespace only", src: "  \n\t\n"},
		{name: "shebang", src: "#!/usr/bin/env lua\nreturn 0\n"},
		{name: "local", src: "local a = 1"},
		{name: "local list", src: "local a , b=1 ,2"},
		{name: "comments", src: "-- header\nlocal a = 1 -- trailing\n--[[ block ]]\nreturn a\n"},
		{name: "file tail", src: "return 1\n\n-- the end\n"},
		{name: "semicolons", src: "local a = 1; local b = 2;;\nreturn a;"},
		{name: "assignment", src: "a.b, c[1] = x, y\nq += 1\nr ..= 's'"},
		{name: "calls", src: "print(1, 2)\nrequire 'mod'\nsetup { a = 1 }\nobj:go()\nobj:go 'x'"},
		{name: "control flow", src: "if a then\nelseif b then\nelse\nend\nwhile x do break end\nrepeat until y"},
		{name: "loops", src: "for i = 1, 10 do end\nfor i = 1, 10, 2 do end\nfor k, v in pairs(t) do end"},
		{name: "functions", src: "function a.b:m(x, y) return x end\nlocal function f(...) return ... end"},
		{name: "function types", src: "local function f(a: number, ...: string): (number) -> boolean\nreturn g\nend"},
		{name: "expressions", src: "return 1 + 2 * -3 ^ 4, not a and #b or c .. d"},
		{name: "parentheses", src: "return (1 + 2) * 3, (f())"},
		{name: "numbers", src: "return 0xFF, 0b1_01, 1_000.5, 1e-3, .5, 2."},
		{name: "strings", src: "return \"a\\n\", 'b', [[long]], [==[a]]b]==]"},
		{name: "tables", src: "return { 1, a = 2, [k] = 3, }, {;}, { x }"},
		{name: "if expression", src: "return if a then 1 elseif b then 2 else 3"},
		{name: "type cast", src: "return x :: number :: any"},
		{name: "interpolation", src: "return `plain`, `a{b}c`, `x = { x }`"},
		{name: "interpolation spacing", src: "local s =\t`a{ b }c` -- done"},
		{name: "type declarations", src: "type A = { x: number, [string]: boolean }\nexport type F<T, U... = ...string> = (T, ...number) -> U..."},
		{name: "type operators", src: "type T = (A | B) & C?\ntype Fn = (a: number) -> (string, ...any)"},
		{name: "continue", src: "while a do\ncontinue\nend"},
		{name: "windows line endings", src: "local a = 1\r\nreturn a\r\n"},
		{name: "tab indentation", src: "do\n\tlocal a = 1\n\treturn a\nend"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			block := convertWithTokens(t, tt.src)
			got := New(tt.src).Generate(block)
			if got != tt.src {
				t.Fatalf("round trip changed the source\n got: %q\nwant: %q", got, tt.src)
			}
		})
	}
}

func TestRoundTripAfterCommentRemoval(t *testing.T) {
	src := "-- header\nlocal a = 1 -- trailing\nreturn a\n"
	block := convertWithTokens(t, src)
	nodes.ClearComments(block)
	got := New(src).Generate(block)
	want := "\nlocal a = 1 \nreturn a\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestGenerateSynthesizedCode(t *testing.T) {
	tests := []struct {
		name  string
		build func() *nodes.Block
		want  string
	}{
		{
			name: "local assignment",
			build: func() *nodes.Block {
				local := &nodes.LocalAssignStatement{
					Variables: []*nodes.TypedIdentifier{nodes.NewTypedIdentifier("a")},
					Values:    []nodes.Expression{nodes.NewDecimalNumber(1)},
				}
				return nodes.NewBlock().WithStatement(local)
			},
			want: "local a=1",
		},
		{
			name: "return string",
			build: func() *nodes.Block {
				ret := nodes.NewReturnStatement(nodes.NewStringExpression("hi\n"))
				return nodes.NewBlock().WithLastStatement(ret)
			},
			want: `return"hi\n"`,
		},
		{
			name: "keyword spacing",
			build: func() *nodes.Block {
				ret := nodes.NewReturnStatement(
					nodes.NewBinaryExpression(nodes.BinaryAnd,
						nodes.NewIdentifier("a"), nodes.NewIdentifier("b")))
				return nodes.NewBlock().WithLastStatement(ret)
			},
			want: "return a and b",
		},
		{
			name: "do block",
			build: func() *nodes.Block {
				inner := nodes.NewBlock().WithLastStatement(&nodes.BreakStatement{})
				return nodes.NewBlock().WithStatement(nodes.NewDoStatement(inner))
			},
			want: "do break end",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := New("").Generate(tt.build())
			if got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

// Rendering without tokens must re-create the grouping the tree encodes.
func TestGenerateParenthesesFromStructure(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{name: "precedence preserved", src: "return (1 + 2) * 3", want: "return(1+2)*3"},
		{name: "no parens needed", src: "return 1 + 2 * 3", want: "return 1+2*3"},
		{name: "right side same precedence", src: "return 1 - (2 - 3)", want: "return 1-(2-3)"},
		{name: "left side lower", src: "return (a or b) and c", want: "return(a or b)and c"},
		{name: "concat right assoc", src: "return (a .. b) .. c", want: "return(a..b)..c"},
		{name: "unary over binary", src: "return -(a + b)", want: "return-(a+b)"},
		{name: "caret under unary", src: "return -a ^ b", want: "return-a^b"},
		{name: "if expression operand", src: "return (if a then 1 else 2) + 3", want: "return(if a then 1 else 2)+3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := tt.src
			parsed, err := parser.Parse(src)
			if err != nil {
				t.Fatal(err)
			}
			block, err := convert.Convert(src, parsed, convert.Options{})
			if err != nil {
				t.Fatal(err)
			}
			got := New("").Generate(block)
			if got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGenerateNestedBinaryParens(t *testing.T) {
	// a binary tree built by a pass, with no parenthese nodes, must
	// print parens wherever precedence requires them
	sum := nodes.NewBinaryExpression(nodes.BinaryPlus,
		nodes.NewDecimalNumber(1), nodes.NewDecimalNumber(2))
	product := nodes.NewBinaryExpression(nodes.BinaryAsterisk,
		sum, nodes.NewDecimalNumber(3))
	block := nodes.NewBlock().WithLastStatement(nodes.NewReturnStatement(product))
	if got := New("").Generate(block); got != "return(1+2)*3" {
		t.Fatalf("got %q", got)
	}

	diff := nodes.NewBinaryExpression(nodes.BinaryMinus,
		nodes.NewDecimalNumber(2), nodes.NewDecimalNumber(3))
	outer := nodes.NewBinaryExpression(nodes.BinaryMinus,
		nodes.NewDecimalNumber(1), diff)
	block = nodes.NewBlock().WithLastStatement(nodes.NewReturnStatement(outer))
	if got := New("").Generate(block); got != "return 1-(2-3)" {
		t.Fatalf("got %q", got)
	}
}

// Without token data, a statement starting with `(` needs the previous
// statement closed so the output does not re-parse as one call chain.
func TestGenerateSemicolonGuard(t *testing.T) {
	local := &nodes.LocalAssignStatement{
		Variables: []*nodes.TypedIdentifier{nodes.NewTypedIdentifier("a")},
		Values:    []nodes.Expression{nodes.NewIdentifier("f")},
	}
	call := &nodes.FunctionCall{
		Prefix: &nodes.ParentheseExpression{Expression: nodes.NewIdentifier("g")},
		Arguments: &nodes.TupleArguments{
			Values: []nodes.Expression{nodes.NewIdentifier("a")},
		},
	}
	block := nodes.NewBlock().WithStatement(local).WithStatement(call)
	got := New("").Generate(block)
	want := "local a=f;(g)(a)"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestReplacedTokensRenderWithoutSource(t *testing.T) {
	src := "local a = 1 -- keep\nreturn a\n"
	block := convertWithTokens(t, src)
	nodes.ReplaceReferencedTokens(block, src)
	got := New("").Generate(block)
	if got != src {
		t.Fatalf("got %q, want %q", got, src)
	}
}
