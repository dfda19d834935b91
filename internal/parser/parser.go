// Package parser builds a cst.Block from a token stream. It is a
// hand-written recursive-descent parser with a Pratt loop for binary
// operators; nesting depth is limited so pathological inputs fail with
// an error instead of exhausting the native stack.
package parser

import (
	"fmt"

	"luamend/internal/cst"
	"luamend/internal/lexer"
	"luamend/internal/source"
	"luamend/internal/token"
)

const maxNestingDepth = 1000

// Error is a syntax error with its location.
type Error struct {
	Span source.Span
	Line int
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("syntax error at line %d: %s", e.Line, e.Msg)
}

type Parser struct {
	toks  []token.Token
	pos   int
	depth int
}

// Parse tokenizes and parses a whole chunk.
func Parse(src string) (*cst.Block, error) {
	toks, err := lexer.Tokenize(src)
	if err != nil {
		return nil, err
	}
	p := &Parser{toks: toks}
	block, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	if p.peek().Kind != token.EOF {
		return nil, p.errHere("unexpected %s", p.peek().Kind)
	}
	eof := p.peek()
	block.Eof = &eof
	return block, nil
}

func (p *Parser) peek() token.Token {
	return p.toks[p.pos]
}

func (p *Parser) peekAt(n int) token.Token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+n]
}

func (p *Parser) advance() token.Token {
	tok := p.toks[p.pos]
	if tok.Kind != token.EOF {
		p.pos++
	}
	return tok
}

// expect consumes the next token when it has the wanted kind, and fails
// with a descriptive error otherwise.
func (p *Parser) expect(kind token.Kind) (token.Token, error) {
	tok := p.peek()
	if tok.Kind != kind {
		return token.Token{}, p.errHere("expected `%s`, found %s", kind, describe(tok))
	}
	return p.advance(), nil
}

func (p *Parser) eat(kind token.Kind) (token.Token, bool) {
	if p.peek().Kind == kind {
		return p.advance(), true
	}
	return token.Token{}, false
}

func (p *Parser) errHere(format string, args ...any) *Error {
	tok := p.peek()
	return &Error{
		Span: tok.Span,
		Line: tok.Line,
		Msg:  fmt.Sprintf(format, args...),
	}
}

func (p *Parser) enter() error {
	p.depth++
	if p.depth > maxNestingDepth {
		return p.errHere("maximum nesting depth exceeded")
	}
	return nil
}

func (p *Parser) leave() {
	p.depth--
}

func describe(tok token.Token) string {
	switch tok.Kind {
	case token.EOF:
		return "<eof>"
	case token.Ident, token.Number, token.String:
		return fmt.Sprintf("`%s`", tok.Text)
	default:
		return fmt.Sprintf("`%s`", tok.Kind)
	}
}

// blockEnds reports whether the token terminates a block.
func blockEnds(kind token.Kind) bool {
	switch kind {
	case token.EOF, token.KwEnd, token.KwElse, token.KwElseif, token.KwUntil:
		return true
	default:
		return false
	}
}

func (p *Parser) parseBlock() (*cst.Block, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	block := &cst.Block{}
	for !blockEnds(p.peek().Kind) {
		if last, ok, err := p.parseLastStmt(); err != nil {
			return nil, err
		} else if ok {
			block.Last = last
			if semi, found := p.eat(token.Semicolon); found {
				block.LastSemicolon = &semi
			}
			break
		}

		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		block.Stmts = append(block.Stmts, stmt)
		if semi, found := p.eat(token.Semicolon); found {
			block.Semicolons = append(block.Semicolons, &semi)
		} else {
			block.Semicolons = append(block.Semicolons, nil)
		}
	}
	return block, nil
}

func (p *Parser) parseLastStmt() (cst.LastStmt, bool, error) {
	switch tok := p.peek(); {
	case tok.Kind == token.KwBreak:
		return &cst.BreakStmt{Tok: p.advance()}, true, nil
	case tok.Kind == token.KwReturn:
		ret := p.advance()
		values, err := p.parseExprListUntil(blockEndsOrSemicolon)
		if err != nil {
			return nil, false, err
		}
		return &cst.ReturnStmt{Return: ret, Values: values}, true, nil
	case tok.IsIdentNamed("continue") && !p.startsExprContinuation(1):
		return &cst.ContinueStmt{Tok: p.advance()}, true, nil
	default:
		return nil, false, nil
	}
}

// startsExprContinuation reports whether the token after offset n makes
// the identifier at the cursor part of a larger statement (a call or an
// assignment) rather than a contextual keyword.
func (p *Parser) startsExprContinuation(n int) bool {
	switch p.peekAt(n).Kind {
	case token.Assign, token.Comma, token.Dot, token.LBracket, token.Colon,
		token.LParen, token.LBrace, token.String, token.InterpFull, token.InterpBegin,
		token.PlusAssign, token.MinusAssign, token.StarAssign, token.SlashAssign,
		token.DoubleSlashAssign, token.PercentAssign, token.CaretAssign, token.ConcatAssign:
		return true
	default:
		return false
	}
}

func blockEndsOrSemicolon(kind token.Kind) bool {
	return blockEnds(kind) || kind == token.Semicolon
}

// parseExprListUntil parses a comma-separated expression list that may
// be empty when stop matches the next token.
func (p *Parser) parseExprListUntil(stop func(token.Kind) bool) (cst.Punctuated[cst.Expr], error) {
	var list cst.Punctuated[cst.Expr]
	if stop(p.peek().Kind) {
		return list, nil
	}
	for {
		expr, err := p.parseExpr()
		if err != nil {
			return list, err
		}
		list.Items = append(list.Items, expr)
		comma, found := p.eat(token.Comma)
		if !found {
			return list, nil
		}
		list.Seps = append(list.Seps, comma)
	}
}

// parseExprList parses a non-empty comma-separated expression list.
func (p *Parser) parseExprList() (cst.Punctuated[cst.Expr], error) {
	var list cst.Punctuated[cst.Expr]
	for {
		expr, err := p.parseExpr()
		if err != nil {
			return list, err
		}
		list.Items = append(list.Items, expr)
		comma, found := p.eat(token.Comma)
		if !found {
			return list, nil
		}
		list.Seps = append(list.Seps, comma)
	}
}
