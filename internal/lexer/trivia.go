package lexer

import (
	"luamend/internal/token"
)

// scanShebang consumes a leading `#!` line, excluding the newline.
func (lx *Lexer) scanShebang() token.Trivia {
	mark := lx.cursor.Mark()
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}
	return lx.triviaFrom(mark, token.TriviaShebang)
}

// scanTriviaPiece scans one run of whitespace or one comment. Whitespace
// runs never extend past a newline, so a piece contains at most one '\n'
// and trailing-trivia attachment can stop on a line boundary.
func (lx *Lexer) scanTriviaPiece() (token.Trivia, bool, error) {
	ch := lx.cursor.Peek()

	if isSpace(ch) {
		mark := lx.cursor.Mark()
		for isSpace(lx.cursor.Peek()) {
			b := lx.cursor.Bump()
			if b == '\n' {
				break
			}
		}
		return lx.triviaFrom(mark, token.TriviaWhitespace), true, nil
	}

	if ch == '-' && lx.cursor.PeekAt(1) == '-' {
		mark := lx.cursor.Mark()
		lx.cursor.Bump()
		lx.cursor.Bump()
		if lx.isLongBracketAhead() {
			if err := lx.skipLongBracket(); err != nil {
				return token.Trivia{}, false, err
			}
			return lx.triviaFrom(mark, token.TriviaBlockComment), true, nil
		}
		for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
			lx.cursor.Bump()
		}
		return lx.triviaFrom(mark, token.TriviaLineComment), true, nil
	}

	return token.Trivia{}, false, nil
}

func (lx *Lexer) triviaFrom(mark Mark, kind token.TriviaKind) token.Trivia {
	span := lx.cursor.SpanFrom(mark)
	return token.Trivia{
		Kind: kind,
		Span: span,
		Line: lx.lines.LineAt(span.Start),
		Text: lx.cursor.Slice(mark),
	}
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n' || b == '\v' || b == '\f'
}
