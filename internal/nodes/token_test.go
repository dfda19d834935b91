package nodes

import (
	"strings"
	"testing"
)

func TestTokenContent(t *testing.T) {
	src := "local a = 1"
	tests := []struct {
		name string
		tok  *Token
		want string
	}{
		{name: "referenced", tok: TokenAt(6, 7, 1), want: "a"},
		{name: "owned", tok: TokenFromContent("while"), want: "while"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tok.Content(src); got != tt.want {
				t.Fatalf("Content = %q, want %q", got, tt.want)
			}
		})
	}
}

func commentedToken() *Token {
	tok := TokenFromContent("end")
	tok.PushLeadingTrivia(TriviaFromContent(TriviaWhitespace, "  "))
	tok.PushLeadingTrivia(TriviaFromContent(TriviaComment, "-- lead"))
	tok.PushTrailingTrivia(TriviaFromContent(TriviaComment, "-- trail"))
	tok.PushTrailingTrivia(TriviaFromContent(TriviaWhitespace, "\n"))
	return tok
}

func TestClearComments(t *testing.T) {
	tok := commentedToken()
	tok.ClearComments()
	if len(tok.LeadingTrivia()) != 1 || tok.LeadingTrivia()[0].Kind() != TriviaWhitespace {
		t.Fatalf("leading = %v", tok.LeadingTrivia())
	}
	if len(tok.TrailingTrivia()) != 1 || tok.TrailingTrivia()[0].Kind() != TriviaWhitespace {
		t.Fatalf("trailing = %v", tok.TrailingTrivia())
	}
	// a second pass has nothing left to remove
	tok.ClearComments()
	if len(tok.LeadingTrivia()) != 1 || len(tok.TrailingTrivia()) != 1 {
		t.Fatal("second pass removed whitespace")
	}
}

func TestClearWhitespaces(t *testing.T) {
	tok := commentedToken()
	tok.ClearWhitespaces()
	if len(tok.LeadingTrivia()) != 1 || tok.LeadingTrivia()[0].Content("") != "-- lead" {
		t.Fatalf("leading = %v", tok.LeadingTrivia())
	}
	if len(tok.TrailingTrivia()) != 1 || tok.TrailingTrivia()[0].Content("") != "-- trail" {
		t.Fatalf("trailing = %v", tok.TrailingTrivia())
	}
}

func TestFilterComments(t *testing.T) {
	tok := TokenFromContent("end")
	tok.PushLeadingTrivia(TriviaFromContent(TriviaComment, "--!keep this"))
	tok.PushLeadingTrivia(TriviaFromContent(TriviaComment, "-- drop this"))
	tok.FilterComments(func(content string) bool {
		return strings.HasPrefix(content, "--!")
	})
	if len(tok.LeadingTrivia()) != 1 {
		t.Fatalf("leading = %v", tok.LeadingTrivia())
	}
	if got := tok.LeadingTrivia()[0].Content(""); got != "--!keep this" {
		t.Fatalf("kept = %q", got)
	}
}

func TestShiftLine(t *testing.T) {
	tok := TokenAt(0, 5, 3)
	tok.PushLeadingTrivia(TriviaAt(TriviaComment, 0, 0, 2))
	tok.ShiftLine(4)
	if tok.Line() != 7 {
		t.Fatalf("line = %d", tok.Line())
	}
	if got := tok.LeadingTrivia()[0].Line(); got != 6 {
		t.Fatalf("trivia line = %d", got)
	}
	tok.ShiftLine(-7)
	if tok.Line() != 0 {
		t.Fatalf("line after negative shift = %d", tok.Line())
	}
}

func TestReplaceReferenced(t *testing.T) {
	src := "-- note\nreturn x"
	tok := TokenAt(8, 14, 2)
	tok.PushLeadingTrivia(TriviaAt(TriviaComment, 0, 7, 1))
	tok.ReplaceReferenced(src)
	if tok.IsReferenced() {
		t.Fatal("token still referenced")
	}
	if got := tok.Content(""); got != "return" {
		t.Fatalf("content = %q", got)
	}
	if got := tok.LeadingTrivia()[0].Content(""); got != "-- note" {
		t.Fatalf("trivia content = %q", got)
	}
}
