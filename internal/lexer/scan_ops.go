package lexer

import (
	"luamend/internal/token"
)

func (lx *Lexer) scanOperator() (token.Token, error) {
	mark := lx.cursor.Mark()
	ch := lx.cursor.Bump()

	var kind token.Kind
	switch ch {
	case '+':
		kind = pick(lx.cursor.Eat('='), token.PlusAssign, token.Plus)
	case '-':
		kind = pick(lx.cursor.Eat('='), token.MinusAssign, token.Minus)
		if kind == token.Minus && lx.cursor.Eat('>') {
			kind = token.Arrow
		}
	case '*':
		kind = pick(lx.cursor.Eat('='), token.StarAssign, token.Star)
	case '/':
		if lx.cursor.Eat('/') {
			kind = pick(lx.cursor.Eat('='), token.DoubleSlashAssign, token.DoubleSlash)
		} else {
			kind = pick(lx.cursor.Eat('='), token.SlashAssign, token.Slash)
		}
	case '%':
		kind = pick(lx.cursor.Eat('='), token.PercentAssign, token.Percent)
	case '^':
		kind = pick(lx.cursor.Eat('='), token.CaretAssign, token.Caret)
	case '#':
		kind = token.Hash
	case '=':
		kind = pick(lx.cursor.Eat('='), token.EqEq, token.Assign)
	case '~':
		if !lx.cursor.Eat('=') {
			return token.Token{}, lx.errorAt(lx.cursor.SpanFrom(mark), "unexpected character `~`")
		}
		kind = token.NotEq
	case '<':
		kind = pick(lx.cursor.Eat('='), token.LtEq, token.Lt)
	case '>':
		kind = pick(lx.cursor.Eat('='), token.GtEq, token.Gt)
	case '(':
		kind = token.LParen
	case ')':
		kind = token.RParen
	case '{':
		lx.braces = append(lx.braces, bracePlain)
		kind = token.LBrace
	case '}':
		if n := len(lx.braces); n > 0 {
			lx.braces = lx.braces[:n-1]
		}
		kind = token.RBrace
	case '[':
		kind = token.LBracket
	case ']':
		kind = token.RBracket
	case ';':
		kind = token.Semicolon
	case ':':
		kind = pick(lx.cursor.Eat(':'), token.ColonColon, token.Colon)
	case ',':
		kind = token.Comma
	case '.':
		if lx.cursor.Eat('.') {
			if lx.cursor.Eat('.') {
				kind = token.Ellipsis
			} else if lx.cursor.Eat('=') {
				kind = token.ConcatAssign
			} else {
				kind = token.DotDot
			}
		} else {
			kind = token.Dot
		}
	case '?':
		kind = token.Question
	case '|':
		kind = token.Pipe
	case '&':
		kind = token.Amp
	default:
		return token.Token{}, lx.errorAt(lx.cursor.SpanFrom(mark), "unexpected character %q", string(ch))
	}

	return lx.tokenFrom(mark, kind), nil
}

func pick(cond bool, yes, no token.Kind) token.Kind {
	if cond {
		return yes
	}
	return no
}
