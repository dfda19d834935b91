package source

import (
	"testing"
)

func TestLineAt(t *testing.T) {
	content := "local a\nlocal b\n\nreturn a\n"
	ix := NewLineIndex(content)

	tests := []struct {
		name   string
		offset uint32
		want   int
	}{
		{name: "first byte", offset: 0, want: 1},
		{name: "end of first line", offset: 7, want: 1},
		{name: "start of second line", offset: 8, want: 2},
		{name: "empty line", offset: 16, want: 3},
		{name: "last line", offset: 17, want: 4},
		{name: "trailing newline", offset: 25, want: 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ix.LineAt(tt.offset); got != tt.want {
				t.Fatalf("LineAt(%d) = %d, want %d", tt.offset, got, tt.want)
			}
		})
	}
}

func TestLineSpan(t *testing.T) {
	content := "local a\nlocal b\n\nreturn a"
	ix := NewLineIndex(content)
	contentLen := uint32(len(content))

	tests := []struct {
		name string
		line int
		want string
		ok   bool
	}{
		{name: "first", line: 1, want: "local a", ok: true},
		{name: "second", line: 2, want: "local b", ok: true},
		{name: "empty", line: 3, want: "", ok: true},
		{name: "last without newline", line: 4, want: "return a", ok: true},
		{name: "zero", line: 0, ok: false},
		{name: "past end", line: 5, ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			span, ok := ix.LineSpan(tt.line, contentLen)
			if ok != tt.ok {
				t.Fatalf("LineSpan(%d) ok = %t, want %t", tt.line, ok, tt.ok)
			}
			if !ok {
				return
			}
			if got := span.Read(content); got != tt.want {
				t.Fatalf("LineSpan(%d) = %q, want %q", tt.line, got, tt.want)
			}
		})
	}
}

func TestLineCount(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
	}{
		{name: "empty", content: "", want: 1},
		{name: "single line", content: "return", want: 1},
		{name: "two lines", content: "local a\nreturn a", want: 2},
		{name: "trailing newline", content: "return\n", want: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewLineIndex(tt.content).LineCount(); got != tt.want {
				t.Fatalf("LineCount() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSpanCover(t *testing.T) {
	a := Span{Start: 4, End: 10}
	got := a.Cover(Span{Start: 2, End: 6})
	if got.Start != 2 || got.End != 10 {
		t.Fatalf("Cover = %v, want 2-10", got)
	}
	got = a.Cover(Span{Start: 8, End: 14})
	if got.Start != 4 || got.End != 14 {
		t.Fatalf("Cover = %v, want 4-14", got)
	}
}
