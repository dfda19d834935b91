package lexer

import (
	"luamend/internal/token"
)

// skipLongBracket consumes a `[=*[ ... ]=*]` bracket pair, cursor on the
// opening '['.
func (lx *Lexer) skipLongBracket() error {
	mark := lx.cursor.Mark()
	lx.cursor.Bump()
	level := 0
	for lx.cursor.Eat('=') {
		level++
	}
	lx.cursor.Bump() // second '['

	for {
		if lx.cursor.EOF() {
			return lx.errorAt(lx.cursor.SpanFrom(mark), "unterminated long bracket")
		}
		if lx.cursor.Bump() != ']' {
			continue
		}
		closing := 0
		for lx.cursor.Eat('=') {
			closing++
		}
		if closing == level && lx.cursor.Eat(']') {
			return nil
		}
		// not the matching closer, keep scanning from where we are
	}
}

func (lx *Lexer) scanShortString() (token.Token, error) {
	mark := lx.cursor.Mark()
	quote := lx.cursor.Bump()

	for {
		if lx.cursor.EOF() {
			return token.Token{}, lx.errorAt(lx.cursor.SpanFrom(mark), "unfinished string")
		}
		ch := lx.cursor.Bump()
		switch ch {
		case quote:
			return lx.tokenFrom(mark, token.String), nil
		case '\n':
			return token.Token{}, lx.errorAt(lx.cursor.SpanFrom(mark), "unfinished string")
		case '\\':
			if lx.cursor.EOF() {
				return token.Token{}, lx.errorAt(lx.cursor.SpanFrom(mark), "unfinished string")
			}
			if lx.cursor.Peek() == 'z' {
				lx.cursor.Bump()
				for isSpace(lx.cursor.Peek()) && !lx.cursor.EOF() {
					lx.cursor.Bump()
				}
			} else {
				// escaped character, including an escaped newline
				lx.cursor.Bump()
			}
		}
	}
}

func (lx *Lexer) scanLongString() (token.Token, error) {
	mark := lx.cursor.Mark()
	if err := lx.skipLongBracket(); err != nil {
		return token.Token{}, err
	}
	return lx.tokenFrom(mark, token.String), nil
}

// scanInterpSegment scans one segment of a backtick interpolated string.
// With open set, the cursor sits on the opening '`'; otherwise it sits on
// the '}' that resumes the literal after an embedded expression.
func (lx *Lexer) scanInterpSegment(open bool) (token.Token, error) {
	mark := lx.cursor.Mark()
	lx.cursor.Bump() // '`' or '}'

	for {
		if lx.cursor.EOF() {
			return token.Token{}, lx.errorAt(lx.cursor.SpanFrom(mark), "unfinished interpolated string")
		}
		switch lx.cursor.Bump() {
		case '\\':
			if !lx.cursor.EOF() {
				lx.cursor.Bump()
			}
		case '\n':
			return token.Token{}, lx.errorAt(lx.cursor.SpanFrom(mark), "unfinished interpolated string")
		case '{':
			if open {
				lx.braces = append(lx.braces, braceInterp)
				return lx.tokenFrom(mark, token.InterpBegin), nil
			}
			return lx.tokenFrom(mark, token.InterpMiddle), nil
		case '`':
			if open {
				return lx.tokenFrom(mark, token.InterpFull), nil
			}
			lx.braces = lx.braces[:len(lx.braces)-1]
			return lx.tokenFrom(mark, token.InterpEnd), nil
		}
	}
}
