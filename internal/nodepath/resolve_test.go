package nodepath

import (
	"testing"

	"luamend/internal/convert"
	"luamend/internal/nodes"
	"luamend/internal/parser"
)

func buildTree(t *testing.T, src string) *nodes.Block {
	t.Helper()
	parsed, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}
	block, err := convert.Convert(src, parsed, convert.Options{})
	if err != nil {
		t.Fatalf("Convert(%q): %v", src, err)
	}
	return block
}

func TestResolveRoot(t *testing.T) {
	root := buildTree(t, "local a = 1")
	node, ok := New().Resolve(root)
	if !ok {
		t.Fatal("root did not resolve")
	}
	if node != nodes.Node(root) {
		t.Fatal("root resolved to a different node")
	}
}

func TestResolveExpression(t *testing.T) {
	root := buildTree(t, "local a, b = 1, 2")
	expression, ok := New().Statement(0).Expression(1).ResolveExpression(root)
	if !ok {
		t.Fatal("path did not resolve")
	}
	number, ok := expression.(*nodes.NumberExpression)
	if !ok {
		t.Fatalf("target = %T", expression)
	}
	if number.Value != 2 {
		t.Fatalf("value = %g", number.Value)
	}
}

func TestStatementIndexCountAddressesLast(t *testing.T) {
	root := buildTree(t, "local a = 1\nlocal b = 2\nreturn a")
	node, ok := New().Statement(2).ResolveStatement(root)
	if !ok {
		t.Fatal("path did not resolve")
	}
	if _, isReturn := node.(*nodes.ReturnStatement); !isReturn {
		t.Fatalf("target = %T", node)
	}
	// one past the last statement without a last-statement slot fails
	if _, ok := New().Statement(3).Resolve(root); ok {
		t.Fatal("out-of-range index resolved")
	}
}

func TestResolveNestedBlocks(t *testing.T) {
	src := "if a then\nlocal x = 1\nelseif b then\nlocal y = 2\nelse\nlocal z = 3\nend"
	root := buildTree(t, src)

	tests := []struct {
		name  string
		path  Path
		field string
	}{
		{name: "then block", path: New().Statement(0).Block(0).Statement(0), field: "x"},
		{name: "elseif block", path: New().Statement(0).Block(1).Statement(0), field: "y"},
		{name: "else block", path: New().Statement(0).Block(2).Statement(0), field: "z"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, ok := tt.path.Resolve(root)
			if !ok {
				t.Fatalf("path %s did not resolve", tt.path)
			}
			local, isLocal := node.(*nodes.LocalAssignStatement)
			if !isLocal {
				t.Fatalf("target = %T", node)
			}
			if got := local.Variables[0].Name; got != tt.field {
				t.Fatalf("variable = %q, want %q", got, tt.field)
			}
		})
	}

	if _, ok := New().Statement(0).Block(3).Resolve(root); ok {
		t.Fatal("block index past the else resolved")
	}
}

func TestStatementComponentEntersSingleBlock(t *testing.T) {
	root := buildTree(t, "while running do\nwork()\nend")
	node, ok := New().Statement(0).Statement(0).Resolve(root)
	if !ok {
		t.Fatal("path did not resolve")
	}
	if _, isCall := node.(*nodes.FunctionCall); !isCall {
		t.Fatalf("target = %T", node)
	}
}

func TestResolveIntoFunctionExpression(t *testing.T) {
	root := buildTree(t, "local f = function() return 7 end")
	node, ok := New().Statement(0).Expression(0).Block(0).Statement(0).Resolve(root)
	if !ok {
		t.Fatal("path did not resolve")
	}
	ret, isReturn := node.(*nodes.ReturnStatement)
	if !isReturn {
		t.Fatalf("target = %T", node)
	}
	if len(ret.Expressions) != 1 {
		t.Fatalf("return values = %d", len(ret.Expressions))
	}
}

func TestResolveKindMismatch(t *testing.T) {
	root := buildTree(t, "local a = 1")
	if _, ok := New().Statement(0).ResolveExpression(root); ok {
		t.Fatal("statement resolved as expression")
	}
	if _, ok := New().Statement(0).Expression(0).ResolveBlock(root); ok {
		t.Fatal("expression resolved as block")
	}
}

func TestResolveStaleAfterMutation(t *testing.T) {
	root := buildTree(t, "local a = 1\nlocal b = 2")
	path := New().Statement(1)
	if _, ok := path.Resolve(root); !ok {
		t.Fatal("fresh path did not resolve")
	}
	root.RemoveStatement(1)
	if _, ok := path.Resolve(root); ok {
		t.Fatal("stale path resolved")
	}
}
