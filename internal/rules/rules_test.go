package rules

import (
	"strings"
	"testing"

	"luamend/internal/convert"
	"luamend/internal/generator"
	"luamend/internal/nodes"
	"luamend/internal/parser"
)

func applyRules(t *testing.T, src string, configured ...Rule) string {
	t.Helper()
	parsed, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}
	block, err := convert.Convert(src, parsed, convert.Options{HoldTokenData: true})
	if err != nil {
		t.Fatalf("Convert(%q): %v", src, err)
	}
	context := &Context{Source: src, Path: "test.lua"}
	for _, rule := range configured {
		if err := rule.Apply(block, context); err != nil {
			t.Fatalf("%s: %v", rule.Name(), err)
		}
	}
	return generator.New(src).Generate(block)
}

func configure(t *testing.T, name string, properties map[string]any) Rule {
	t.Helper()
	rule, err := New(name)
	if err != nil {
		t.Fatal(err)
	}
	if err := rule.Configure(properties); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	return rule
}

func TestRegistry(t *testing.T) {
	want := []string{"remove_comments", "remove_empty_do", "remove_whitespaces", "shift_lines"}
	got := Names()
	if len(got) != len(want) {
		t.Fatalf("Names() = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Names() = %v, want %v", got, want)
		}
	}
	for _, name := range want {
		rule, err := New(name)
		if err != nil {
			t.Fatalf("New(%q): %v", name, err)
		}
		if rule.Name() != name {
			t.Fatalf("Name() = %q, want %q", rule.Name(), name)
		}
	}
}

func TestUnknownRule(t *testing.T) {
	_, err := New("inline_everything")
	if err == nil {
		t.Fatal("unknown rule accepted")
	}
	if !strings.Contains(err.Error(), `unknown rule "inline_everything"`) {
		t.Fatalf("error = %v", err)
	}
	if !strings.Contains(err.Error(), "remove_comments") {
		t.Fatalf("error does not list known rules: %v", err)
	}
}

func TestUnknownProperty(t *testing.T) {
	tests := []struct {
		rule       string
		properties map[string]any
	}{
		{rule: "remove_comments", properties: map[string]any{"except": "x"}},
		{rule: "remove_whitespaces", properties: map[string]any{"keep": "x"}},
		{rule: "remove_empty_do", properties: map[string]any{"recursive": true}},
		{rule: "shift_lines", properties: map[string]any{"shift": 1, "wrap": true}},
	}
	for _, tt := range tests {
		t.Run(tt.rule, func(t *testing.T) {
			rule, err := New(tt.rule)
			if err != nil {
				t.Fatal(err)
			}
			err = rule.Configure(tt.properties)
			if err == nil {
				t.Fatal("unknown property accepted")
			}
			if !strings.Contains(err.Error(), "unknown property") {
				t.Fatalf("error = %v", err)
			}
		})
	}
}

func TestRemoveComments(t *testing.T) {
	src := "-- header\nlocal a = 1 -- trailing\nreturn a\n"
	rule := configure(t, "remove_comments", nil)
	got := applyRules(t, src, rule)
	if strings.Contains(got, "--") {
		t.Fatalf("comments survived: %q", got)
	}
	if !strings.Contains(got, "local a = 1") {
		t.Fatalf("code damaged: %q", got)
	}
}

func TestRemoveCommentsKeepPatterns(t *testing.T) {
	src := "--!strict\n-- scratch note\nlocal a = 1 --!native\nreturn a\n"
	rule := configure(t, "remove_comments", map[string]any{"keep": "^--!"})
	got := applyRules(t, src, rule)
	if !strings.Contains(got, "--!strict") || !strings.Contains(got, "--!native") {
		t.Fatalf("kept comments missing: %q", got)
	}
	if strings.Contains(got, "scratch") {
		t.Fatalf("plain comment survived: %q", got)
	}
}

func TestRemoveCommentsKeepList(t *testing.T) {
	rule := configure(t, "remove_comments", map[string]any{
		"keep": []any{"^--!", "license"},
	})
	src := "-- license: MIT\n-- other\nreturn 1\n"
	got := applyRules(t, src, rule)
	if !strings.Contains(got, "license: MIT") {
		t.Fatalf("license comment dropped: %q", got)
	}
	if strings.Contains(got, "other") {
		t.Fatalf("plain comment survived: %q", got)
	}
}

func TestRemoveCommentsBadPattern(t *testing.T) {
	rule, err := New("remove_comments")
	if err != nil {
		t.Fatal(err)
	}
	if err := rule.Configure(map[string]any{"keep": "["}); err == nil {
		t.Fatal("invalid pattern accepted")
	}
}

func TestRemoveWhitespaces(t *testing.T) {
	src := "local a = 1\n\nreturn   a\n"
	rule := configure(t, "remove_whitespaces", nil)
	got := applyRules(t, src, rule)
	want := "local a=1 return a"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRemoveEmptyDo(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{name: "top level", src: "do end\nlocal a = 1", want: "local a = 1"},
		{name: "nested empty", src: "do do end end", want: ""},
		{name: "inside function", src: "local function f()\ndo end\nreturn 1\nend", want: "local function f()\nreturn 1\nend"},
		{name: "keeps content", src: "do return end", want: "do return end"},
		{name: "keeps semicolon alignment", src: "do end; local a = 1;", want: "local a = 1;"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := configure(t, "remove_empty_do", nil)
			got := applyRules(t, tt.src, rule)
			if got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestShiftLines(t *testing.T) {
	src := "local a = 1\nreturn a"
	parsed, err := parser.Parse(src)
	if err != nil {
		t.Fatal(err)
	}
	block, err := convert.Convert(src, parsed, convert.Options{HoldTokenData: true})
	if err != nil {
		t.Fatal(err)
	}
	rule := configure(t, "shift_lines", map[string]any{"shift": int64(10)})
	if err := rule.Apply(block, &Context{Source: src}); err != nil {
		t.Fatal(err)
	}
	local := block.Statement(0).(*nodes.LocalAssignStatement)
	if got := local.Tokens.Local.Line(); got != 11 {
		t.Fatalf("local line = %d", got)
	}
	ret := block.LastStatement().(*nodes.ReturnStatement)
	if got := ret.Tokens.Return.Line(); got != 12 {
		t.Fatalf("return line = %d", got)
	}
}

func TestShiftLinesConfiguration(t *testing.T) {
	tests := []struct {
		name       string
		properties map[string]any
		wantErr    bool
	}{
		{name: "int64", properties: map[string]any{"shift": int64(2)}},
		{name: "whole float", properties: map[string]any{"shift": 2.0}},
		{name: "missing", properties: nil, wantErr: true},
		{name: "fraction", properties: map[string]any{"shift": 1.5}, wantErr: true},
		{name: "string", properties: map[string]any{"shift": "2"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule, err := New("shift_lines")
			if err != nil {
				t.Fatal(err)
			}
			err = rule.Configure(tt.properties)
			if tt.wantErr && err == nil {
				t.Fatal("configuration accepted")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("Configure: %v", err)
			}
		})
	}
}

func TestRulesCompose(t *testing.T) {
	src := "-- note\ndo end\nlocal a = 1 -- keep me not\nreturn a\n"
	got := applyRules(t, src,
		configure(t, "remove_empty_do", nil),
		configure(t, "remove_comments", nil),
		configure(t, "remove_whitespaces", nil),
	)
	want := "local a=1 return a"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
