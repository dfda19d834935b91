// Package nodes defines the mutable program representation produced by
// the AST converter and consumed by rewrite passes and the generator.
//
// Composite nodes optionally carry a parallel *Tokens struct holding the
// keyword and punctuation tokens the grammar requires for the construct;
// the struct is nil for synthesized nodes or when conversion ran without
// token fidelity. Tokens come in two states: referenced (a byte span plus
// line into the original source) and owned (self-contained literal text).
package nodes

import (
	"luamend/internal/source"
)

type TriviaKind uint8

const (
	TriviaComment TriviaKind = iota
	TriviaWhitespace
)

// Trivia is one run of whitespace or one comment attached to a token.
type Trivia struct {
	kind       TriviaKind
	span       source.Span
	line       int
	content    string
	referenced bool
}

// TriviaAt creates a referenced trivia reading its text from the source
// later.
func TriviaAt(kind TriviaKind, start, end uint32, line int) Trivia {
	return Trivia{
		kind:       kind,
		span:       source.Span{Start: start, End: end},
		line:       line,
		referenced: true,
	}
}

// TriviaFromContent creates an owned trivia with no source provenance.
func TriviaFromContent(kind TriviaKind, content string) Trivia {
	return Trivia{kind: kind, content: content}
}

func (t Trivia) Kind() TriviaKind {
	return t.kind
}

func (t Trivia) Line() int {
	return t.line
}

// Content returns the trivia text, reading from src when referenced.
func (t Trivia) Content(src string) string {
	if t.referenced {
		return t.span.Read(src)
	}
	return t.content
}

// Token is the source-fidelity record of one lexical unit.
type Token struct {
	span           source.Span
	line           int
	content        string
	referenced     bool
	leadingTrivia  []Trivia
	trailingTrivia []Trivia
}

// TokenAt creates a referenced token. Reading its text requires the
// original source to be supplied again.
func TokenAt(start, end uint32, line int) *Token {
	return &Token{
		span:       source.Span{Start: start, End: end},
		line:       line,
		referenced: true,
	}
}

// TokenFromContent creates an owned token, used when passes synthesize
// new code.
func TokenFromContent(content string) *Token {
	return &Token{content: content}
}

func (t *Token) IsReferenced() bool {
	return t.referenced
}

func (t *Token) Span() source.Span {
	return t.span
}

func (t *Token) Line() int {
	return t.line
}

// Content returns the token text, reading from src when referenced.
func (t *Token) Content(src string) string {
	if t.referenced {
		return t.span.Read(src)
	}
	return t.content
}

func (t *Token) LeadingTrivia() []Trivia {
	return t.leadingTrivia
}

func (t *Token) TrailingTrivia() []Trivia {
	return t.trailingTrivia
}

func (t *Token) PushLeadingTrivia(trivia Trivia) {
	t.leadingTrivia = append(t.leadingTrivia, trivia)
}

func (t *Token) PushTrailingTrivia(trivia Trivia) {
	t.trailingTrivia = append(t.trailingTrivia, trivia)
}

// WithLeadingTrivia returns the token with the trivia appended, for
// fluent construction of synthesized tokens.
func (t *Token) WithLeadingTrivia(trivia Trivia) *Token {
	t.leadingTrivia = append(t.leadingTrivia, trivia)
	return t
}

func (t *Token) WithTrailingTrivia(trivia Trivia) *Token {
	t.trailingTrivia = append(t.trailingTrivia, trivia)
	return t
}

// clearTrivia drops all trivia of the given kind, preserving the order
// of the remaining trivia.
func (t *Token) clearTrivia(kind TriviaKind) {
	t.leadingTrivia = dropTrivia(t.leadingTrivia, kind)
	t.trailingTrivia = dropTrivia(t.trailingTrivia, kind)
}

func dropTrivia(trivia []Trivia, kind TriviaKind) []Trivia {
	kept := trivia[:0]
	for _, tv := range trivia {
		if tv.kind != kind {
			kept = append(kept, tv)
		}
	}
	return kept
}

// ClearComments removes all comment trivia from the token.
func (t *Token) ClearComments() {
	t.clearTrivia(TriviaComment)
}

// ClearWhitespaces removes all whitespace trivia from the token.
func (t *Token) ClearWhitespaces() {
	t.clearTrivia(TriviaWhitespace)
}

// FilterComments keeps only comment trivia for which keep returns true.
// The predicate receives the comment text, so referenced trivia must
// have been converted to owned form first (see ReplaceReferenced).
func (t *Token) FilterComments(keep func(content string) bool) {
	t.leadingTrivia = filterComments(t.leadingTrivia, keep)
	t.trailingTrivia = filterComments(t.trailingTrivia, keep)
}

func filterComments(trivia []Trivia, keep func(string) bool) []Trivia {
	kept := trivia[:0]
	for _, tv := range trivia {
		if tv.kind == TriviaComment && !keep(tv.content) {
			continue
		}
		kept = append(kept, tv)
	}
	return kept
}

// ShiftLine adds amount to the recorded line number of the token and
// all its trivia. Byte offsets are untouched.
func (t *Token) ShiftLine(amount int) {
	t.line += amount
	for i := range t.leadingTrivia {
		t.leadingTrivia[i].line += amount
	}
	for i := range t.trailingTrivia {
		t.trailingTrivia[i].line += amount
	}
}

// ReplaceReferenced converts a referenced token (and all its trivia)
// into owned form by reading src once.
func (t *Token) ReplaceReferenced(src string) {
	if t.referenced {
		t.content = t.span.Read(src)
		t.referenced = false
		t.span = source.Span{}
	}
	for i := range t.leadingTrivia {
		replaceTriviaReferenced(&t.leadingTrivia[i], src)
	}
	for i := range t.trailingTrivia {
		replaceTriviaReferenced(&t.trailingTrivia[i], src)
	}
}

func replaceTriviaReferenced(tv *Trivia, src string) {
	if tv.referenced {
		tv.content = tv.span.Read(src)
		tv.referenced = false
		tv.span = source.Span{}
	}
}
