package report

import (
	"bytes"
	"errors"
	"testing"

	"luamend/internal/convert"
	"luamend/internal/parser"
)

func render(t *testing.T, path, src string) string {
	t.Helper()
	parsed, err := parser.Parse(src)
	if err == nil {
		_, err = convert.Convert(src, parsed, convert.Options{})
	}
	if err == nil {
		t.Fatalf("source %q produced no error", src)
	}
	var buf bytes.Buffer
	New(&buf, false).Error(path, src, err)
	return buf.String()
}

func TestSyntaxErrorSnippet(t *testing.T) {
	got := render(t, "main.lua", "if x do end\n")
	want := "error: main.lua:1: syntax error: expected `then`, found `do`\n" +
		"  if x do end\n" +
		"       ^^\n"
	if got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestSyntaxErrorOnLaterLine(t *testing.T) {
	got := render(t, "main.lua", "local a = 1\nif x do end\n")
	want := "error: main.lua:2: syntax error: expected `then`, found `do`\n" +
		"  if x do end\n" +
		"       ^^\n"
	if got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestLexicalErrorSnippet(t *testing.T) {
	got := render(t, "main.lua", `return "abc`)
	want := "error: main.lua:1: lexical error: unfinished string\n" +
		"  return \"abc\n" +
		"         ^^^^\n"
	if got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestCaretAlignsUnderTabs(t *testing.T) {
	got := render(t, "main.lua", "\tif x do end\n")
	want := "error: main.lua:1: syntax error: expected `then`, found `do`\n" +
		"          if x do end\n" +
		"               ^^\n"
	if got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestConversionErrorIsPlain(t *testing.T) {
	got := render(t, "main.lua", "f() = 1\n")
	want := "error: main.lua: unsupported assignment target in `f()`\n"
	if got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestOtherErrorsArePlain(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, false).Error("main.lua", "", errors.New("read failed"))
	if got := buf.String(); got != "error: main.lua: read failed\n" {
		t.Fatalf("got %q", got)
	}
}

func TestExpandTabs(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "no tabs", in: "abc", want: "abc"},
		{name: "leading tab", in: "\tx", want: "        x"},
		{name: "tab after text", in: "ab\tx", want: "ab      x"},
		{name: "tab at stop", in: "12345678\tx", want: "12345678        x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := expandTabs(tt.in); got != tt.want {
				t.Fatalf("expandTabs(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
