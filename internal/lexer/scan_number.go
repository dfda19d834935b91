package lexer

import (
	"luamend/internal/token"
)

// scanNumber scans decimal, hexadecimal (0x) and binary (0b) literals.
// Digit separators (`_`) are accepted anywhere after the first digit;
// validation of the literal value happens later, in the AST converter.
func (lx *Lexer) scanNumber() (token.Token, error) {
	mark := lx.cursor.Mark()

	if lx.cursor.Peek() == '0' {
		next := lx.cursor.PeekAt(1)
		if next == 'x' || next == 'X' {
			lx.cursor.Bump()
			lx.cursor.Bump()
			if !isHexDigit(lx.cursor.Peek()) {
				return token.Token{}, lx.errorAt(lx.cursor.SpanFrom(mark), "malformed hexadecimal number")
			}
			for isHexDigit(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
				lx.cursor.Bump()
			}
			return lx.tokenFrom(mark, token.Number), nil
		}
		if next == 'b' || next == 'B' {
			lx.cursor.Bump()
			lx.cursor.Bump()
			if b := lx.cursor.Peek(); b != '0' && b != '1' {
				return token.Token{}, lx.errorAt(lx.cursor.SpanFrom(mark), "malformed binary number")
			}
			for b := lx.cursor.Peek(); b == '0' || b == '1' || b == '_'; b = lx.cursor.Peek() {
				lx.cursor.Bump()
			}
			return lx.tokenFrom(mark, token.Number), nil
		}
	}

	lx.scanDigits()
	if lx.cursor.Peek() == '.' && isDigit(lx.cursor.PeekAt(1)) {
		lx.cursor.Bump()
		lx.scanDigits()
	} else if lx.cursor.Peek() == '.' && !isDigit(lx.cursor.PeekAt(1)) {
		// a trailing dot as in `1.` is still part of the number, unless it
		// begins a concat operator
		if lx.cursor.PeekAt(1) != '.' {
			lx.cursor.Bump()
		}
	}

	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		after := lx.cursor.PeekAt(1)
		if isDigit(after) || ((after == '+' || after == '-') && isDigit(lx.cursor.PeekAt(2))) {
			lx.cursor.Bump()
			if b := lx.cursor.Peek(); b == '+' || b == '-' {
				lx.cursor.Bump()
			}
			lx.scanDigits()
		}
	}

	return lx.tokenFrom(mark, token.Number), nil
}

func (lx *Lexer) scanDigits() {
	for isDigit(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
		lx.cursor.Bump()
	}
}
