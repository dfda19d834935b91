// Package lexer tokenizes Lua/Luau source text, preserving every byte of
// the input as either a token span or a trivia span.
package lexer

import (
	"strings"

	"luamend/internal/source"
	"luamend/internal/token"
)

type braceKind uint8

const (
	bracePlain braceKind = iota
	braceInterp
)

// Lexer scans one source buffer into a token stream.
type Lexer struct {
	cursor Cursor
	lines  *source.LineIndex
	src    string

	// braces tracks open '{' nesting so a '}' can be told apart from the
	// resumption of an interpolated string.
	braces []braceKind
}

func New(src string) *Lexer {
	return &Lexer{
		cursor: NewCursor(src),
		lines:  source.NewLineIndex(src),
		src:    src,
	}
}

// Tokenize scans the whole buffer. The returned stream always ends with an
// EOF token; any trivia after the last significant token leads the EOF.
func Tokenize(src string) ([]token.Token, error) {
	return New(src).Tokenize()
}

func (lx *Lexer) Tokenize() ([]token.Token, error) {
	var tokens []token.Token
	var leading []token.Trivia

	if strings.HasPrefix(lx.src, "#!") {
		leading = append(leading, lx.scanShebang())
	}

	for {
		piece, ok, err := lx.scanTriviaPiece()
		if err != nil {
			return nil, err
		}
		if ok {
			leading = append(leading, piece)
			continue
		}

		if lx.cursor.EOF() {
			tokens = append(tokens, token.Token{
				Kind:    token.EOF,
				Span:    source.Span{Start: lx.cursor.Offset(), End: lx.cursor.Offset()},
				Line:    lx.lines.LineAt(lx.cursor.Offset()),
				Leading: leading,
			})
			return tokens, nil
		}

		tok, err := lx.scanToken()
		if err != nil {
			return nil, err
		}
		tok.Leading = leading
		leading = nil

		trailing, err := lx.collectTrailing()
		if err != nil {
			return nil, err
		}
		tok.Trailing = trailing
		tokens = append(tokens, tok)
	}
}

// collectTrailing gathers same-line trivia after a token. Collection stops
// once a newline has been consumed; a block comment spanning lines belongs
// to the next token instead.
func (lx *Lexer) collectTrailing() ([]token.Trivia, error) {
	var trailing []token.Trivia
	for {
		mark := lx.cursor.Mark()
		piece, ok, err := lx.scanTriviaPiece()
		if err != nil {
			return nil, err
		}
		if !ok {
			return trailing, nil
		}
		if piece.Kind == token.TriviaBlockComment && strings.Contains(piece.Text, "\n") {
			lx.cursor.Reset(mark)
			return trailing, nil
		}
		trailing = append(trailing, piece)
		if strings.Contains(piece.Text, "\n") {
			return trailing, nil
		}
	}
}

func (lx *Lexer) scanToken() (token.Token, error) {
	ch := lx.cursor.Peek()

	switch {
	case isIdentStart(ch):
		return lx.scanIdentOrKeyword(), nil
	case isDigit(ch), ch == '.' && isDigit(lx.cursor.PeekAt(1)):
		return lx.scanNumber()
	case ch == '"' || ch == '\'':
		return lx.scanShortString()
	case ch == '[' && (lx.cursor.PeekAt(1) == '[' || lx.isLongBracketAhead()):
		return lx.scanLongString()
	case ch == '`':
		return lx.scanInterpSegment(true)
	case ch == '}' && lx.topBrace() == braceInterp:
		return lx.scanInterpSegment(false)
	default:
		return lx.scanOperator()
	}
}

func (lx *Lexer) scanIdentOrKeyword() token.Token {
	mark := lx.cursor.Mark()
	for isIdentContinue(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	text := lx.cursor.Slice(mark)
	kind := token.Ident
	if kw, ok := token.LookupKeyword(text); ok {
		kind = kw
	}
	return lx.tokenFrom(mark, kind)
}

func (lx *Lexer) tokenFrom(mark Mark, kind token.Kind) token.Token {
	span := lx.cursor.SpanFrom(mark)
	return token.Token{
		Kind: kind,
		Span: span,
		Line: lx.lines.LineAt(span.Start),
		Text: lx.cursor.Slice(mark),
	}
}

func (lx *Lexer) topBrace() braceKind {
	if len(lx.braces) == 0 {
		return bracePlain
	}
	return lx.braces[len(lx.braces)-1]
}

// isLongBracketAhead reports whether the cursor sits on `[=*[`.
func (lx *Lexer) isLongBracketAhead() bool {
	if lx.cursor.Peek() != '[' {
		return false
	}
	n := uint32(1)
	for lx.cursor.PeekAt(n) == '=' {
		n++
	}
	return lx.cursor.PeekAt(n) == '['
}

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentContinue(b byte) bool {
	return isIdentStart(b) || isDigit(b)
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isHexDigit(b byte) bool {
	return isDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}
