package lexer

import (
	"errors"
	"strings"
	"testing"

	"luamend/internal/token"
)

// kinds strips trivia and returns the kind sequence, excluding the EOF token.
func kinds(t *testing.T, src string) []token.Kind {
	t.Helper()
	tokens, err := Tokenize(src)
	if err != nil {
		t.Fatalf("Tokenize(%q): %v", src, err)
	}
	out := make([]token.Kind, 0, len(tokens)-1)
	for _, tok := range tokens[:len(tokens)-1] {
		out = append(out, tok.Kind)
	}
	return out
}

func TestTokenizeKinds(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []token.Kind
	}{
		{
			name: "local assignment",
			src:  "local a = 1",
			want: []token.Kind{token.KwLocal, token.Ident, token.Assign, token.Number},
		},
		{
			name: "keywords and operators",
			src:  "if a ~= nil then return end",
			want: []token.Kind{token.KwIf, token.Ident, token.NotEq, token.KwNil, token.KwThen, token.KwReturn, token.KwEnd},
		},
		{
			name: "compound assignment",
			src:  "a += 1 b ..= c",
			want: []token.Kind{token.Ident, token.PlusAssign, token.Number, token.Ident, token.ConcatAssign, token.Ident},
		},
		{
			name: "dots",
			src:  "a.b .. c ...",
			want: []token.Kind{token.Ident, token.Dot, token.Ident, token.DotDot, token.Ident, token.Ellipsis},
		},
		{
			name: "type syntax",
			src:  "x :: (A) -> B?",
			want: []token.Kind{token.Ident, token.ColonColon, token.LParen, token.Ident, token.RParen, token.Arrow, token.Ident, token.Question},
		},
		{
			name: "strings",
			src:  `"a" 'b' [[c]] [==[d]==]`,
			want: []token.Kind{token.String, token.String, token.String, token.String},
		},
		{
			name: "numbers",
			src:  "1 0x1F 0b101 1.5e2 .5",
			want: []token.Kind{token.Number, token.Number, token.Number, token.Number, token.Number},
		},
		{
			name: "plain backtick string",
			src:  "`hello`",
			want: []token.Kind{token.InterpFull},
		},
		{
			name: "interpolated string",
			src:  "`a{b}c{d}e`",
			want: []token.Kind{token.InterpBegin, token.Ident, token.InterpMiddle, token.Ident, token.InterpEnd},
		},
		{
			name: "braces inside interpolation",
			src:  "`n = {#{1}}`",
			want: []token.Kind{token.InterpBegin, token.Hash, token.LBrace, token.Number, token.RBrace, token.InterpEnd},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := kinds(t, tt.src)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d tokens %v, want %d", len(got), got, len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("token %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestTokenizeText(t *testing.T) {
	tokens, err := Tokenize(`local s = "a\"b"`)
	if err != nil {
		t.Fatal(err)
	}
	str := tokens[3]
	if str.Kind != token.String {
		t.Fatalf("kind = %v, want string", str.Kind)
	}
	if str.Text != `"a\"b"` {
		t.Fatalf("Text = %q", str.Text)
	}
}

func TestTriviaCoversEveryByte(t *testing.T) {
	srcs := []string{
		"",
		"local a = 1 -- one\nlocal b = 2\n",
		"#!/usr/bin/env lua\nreturn 0\n",
		"--[[ block\ncomment ]] return\n\n-- tail\n",
		"local t = { a = 1, [2] = 'x' }  \t\n",
	}
	for _, src := range srcs {
		tokens, err := Tokenize(src)
		if err != nil {
			t.Fatalf("Tokenize(%q): %v", src, err)
		}
		var out strings.Builder
		for _, tok := range tokens {
			for _, tr := range tok.Leading {
				out.WriteString(tr.Text)
			}
			out.WriteString(tok.Text)
			for _, tr := range tok.Trailing {
				out.WriteString(tr.Text)
			}
		}
		if out.String() != src {
			t.Fatalf("reassembled %q, want %q", out.String(), src)
		}
	}
}

func TestTrailingTriviaStopsAtNewline(t *testing.T) {
	tokens, err := Tokenize("local a -- note\nreturn a")
	if err != nil {
		t.Fatal(err)
	}
	a := tokens[1]
	if a.Text != "a" {
		t.Fatalf("token = %q", a.Text)
	}
	if len(a.Trailing) != 3 {
		t.Fatalf("trailing = %v", a.Trailing)
	}
	if a.Trailing[1].Kind != token.TriviaLineComment || a.Trailing[1].Text != "-- note" {
		t.Fatalf("comment = %+v", a.Trailing[1])
	}
	if a.Trailing[2].Text != "\n" {
		t.Fatalf("newline piece = %q", a.Trailing[2].Text)
	}
	ret := tokens[2]
	if len(ret.Leading) != 0 {
		t.Fatalf("return leading = %v", ret.Leading)
	}
}

func TestMultilineBlockCommentLeadsNextToken(t *testing.T) {
	tokens, err := Tokenize("local a --[[ two\nlines ]] return a")
	if err != nil {
		t.Fatal(err)
	}
	a := tokens[1]
	if len(a.Trailing) != 1 || a.Trailing[0].Kind != token.TriviaWhitespace {
		t.Fatalf("trailing = %v", a.Trailing)
	}
	ret := tokens[2]
	if ret.Kind != token.KwReturn {
		t.Fatalf("kind = %v", ret.Kind)
	}
	if len(ret.Leading) != 2 || ret.Leading[0].Kind != token.TriviaBlockComment {
		t.Fatalf("leading = %v", ret.Leading)
	}
}

func TestShebangLeadsFirstToken(t *testing.T) {
	tokens, err := Tokenize("#!/usr/bin/env lua\nreturn 0\n")
	if err != nil {
		t.Fatal(err)
	}
	first := tokens[0]
	if first.Kind != token.KwReturn {
		t.Fatalf("kind = %v", first.Kind)
	}
	if len(first.Leading) == 0 || first.Leading[0].Kind != token.TriviaShebang {
		t.Fatalf("leading = %v", first.Leading)
	}
	if first.Leading[0].Text != "#!/usr/bin/env lua" {
		t.Fatalf("shebang text = %q", first.Leading[0].Text)
	}
}

func TestEOFCarriesFileTail(t *testing.T) {
	tokens, err := Tokenize("return\n\n-- trailing note\n")
	if err != nil {
		t.Fatal(err)
	}
	eof := tokens[len(tokens)-1]
	if eof.Kind != token.EOF {
		t.Fatalf("kind = %v", eof.Kind)
	}
	var tail strings.Builder
	for _, tr := range eof.Leading {
		tail.WriteString(tr.Text)
	}
	if tail.String() != "\n-- trailing note\n" {
		t.Fatalf("tail = %q", tail.String())
	}
}

func TestTokenLines(t *testing.T) {
	tokens, err := Tokenize("local a\n\nreturn a\n")
	if err != nil {
		t.Fatal(err)
	}
	wantLines := []int{1, 1, 3, 3}
	for i, want := range wantLines {
		if tokens[i].Line != want {
			t.Fatalf("token %d (%q) line = %d, want %d", i, tokens[i].Text, tokens[i].Line, want)
		}
	}
}

func TestTokenizeErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		msg  string
		line int
	}{
		{name: "unfinished string", src: `local s = "abc`, msg: "unfinished string", line: 1},
		{name: "string hits newline", src: "local s = \"abc\nreturn", msg: "unfinished string", line: 1},
		{name: "unterminated long bracket", src: "local s = [[abc", msg: "unterminated long bracket", line: 1},
		{name: "malformed hex", src: "local n = 0x", msg: "malformed hexadecimal number", line: 1},
		{name: "malformed binary", src: "local n = 0b2", msg: "malformed binary number", line: 1},
		{name: "lone tilde", src: "local a = 1\nlocal b = ~a", msg: "unexpected character `~`", line: 2},
		{name: "unfinished interpolation", src: "local s = `abc", msg: "unfinished interpolated string", line: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Tokenize(tt.src)
			if err == nil {
				t.Fatalf("Tokenize(%q) succeeded", tt.src)
			}
			var lexErr *Error
			if !errors.As(err, &lexErr) {
				t.Fatalf("error type %T", err)
			}
			if lexErr.Msg != tt.msg {
				t.Fatalf("msg = %q, want %q", lexErr.Msg, tt.msg)
			}
			if lexErr.Line != tt.line {
				t.Fatalf("line = %d, want %d", lexErr.Line, tt.line)
			}
		})
	}
}
