package token

import "luamend/internal/source"

type TriviaKind uint8

const (
	TriviaWhitespace TriviaKind = iota
	TriviaLineComment
	TriviaBlockComment
	TriviaShebang
)

// Trivia is a run of non-significant source text attached to a token.
type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Line int
	Text string
}

// IsComment reports whether the trivia is a line or block comment.
func (t Trivia) IsComment() bool {
	return t.Kind == TriviaLineComment || t.Kind == TriviaBlockComment
}

func (k TriviaKind) String() string {
	switch k {
	case TriviaWhitespace:
		return "whitespace"
	case TriviaLineComment:
		return "line comment"
	case TriviaBlockComment:
		return "block comment"
	case TriviaShebang:
		return "shebang"
	default:
		return "<unknown>"
	}
}
