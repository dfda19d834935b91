// Package token defines the lexical tokens produced by the front-end and
// the trivia (whitespace, comments) attached to them. Every byte of the
// input belongs to exactly one token span or one trivia span, which is
// what makes byte-identical reconstruction possible downstream.
package token

import (
	"luamend/internal/source"
)

// Token is a single significant lexical unit with its surrounding trivia.
type Token struct {
	Kind     Kind
	Span     source.Span
	Line     int
	Text     string
	Leading  []Trivia
	Trailing []Trivia
}

// IsLiteral reports whether the token is a literal value.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case Number, String, InterpFull, KwNil, KwTrue, KwFalse:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a reserved word.
func (t Token) IsKeyword() bool {
	return t.Kind >= KwAnd && t.Kind <= KwWhile
}

// IsIdentNamed reports whether the token is an identifier with the given
// spelling, used for contextual keywords.
func (t Token) IsIdentNamed(name string) bool {
	return t.Kind == Ident && t.Text == name
}
