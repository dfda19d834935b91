package parser

import (
	"luamend/internal/cst"
	"luamend/internal/token"
)

// binaryPrec returns the binding power of a binary operator token, or 0
// when the token is not a binary operator. Lua precedence, lowest to
// highest: or, and, comparisons, `..`, additive, multiplicative, `^`.
func binaryPrec(kind token.Kind) (prec int, rightAssoc bool) {
	switch kind {
	case token.KwOr:
		return 1, false
	case token.KwAnd:
		return 2, false
	case token.Lt, token.Gt, token.LtEq, token.GtEq, token.NotEq, token.EqEq:
		return 3, false
	case token.DotDot:
		return 4, true
	case token.Plus, token.Minus:
		return 5, false
	case token.Star, token.Slash, token.DoubleSlash, token.Percent:
		return 6, false
	case token.Caret:
		return 8, true
	default:
		return 0, false
	}
}

const unaryPrec = 7

func (p *Parser) parseExpr() (cst.Expr, error) {
	return p.parseBinaryExpr(1)
}

func (p *Parser) parseBinaryExpr(minPrec int) (cst.Expr, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	left, err := p.parseUnaryExpr()
	if err != nil {
		return nil, err
	}

	for {
		prec, rightAssoc := binaryPrec(p.peek().Kind)
		if prec == 0 || prec < minPrec {
			return left, nil
		}
		op := p.advance()
		nextMin := prec + 1
		if rightAssoc {
			nextMin = prec
		}
		right, err := p.parseBinaryExpr(nextMin)
		if err != nil {
			return nil, err
		}
		left = &cst.BinaryExpr{Left: left, Op: op, Right: right}
	}
}

func (p *Parser) parseUnaryExpr() (cst.Expr, error) {
	switch p.peek().Kind {
	case token.KwNot, token.Minus, token.Hash:
		op := p.advance()
		// unary binds tighter than every binary operator except `^`
		operand, err := p.parseBinaryExpr(unaryPrec + 1)
		if err != nil {
			return nil, err
		}
		return &cst.UnaryExpr{Op: op, Operand: operand}, nil
	default:
		return p.parseCastExpr()
	}
}

// parseCastExpr parses a simple expression followed by any number of
// `:: Type` assertions.
func (p *Parser) parseCastExpr() (cst.Expr, error) {
	expr, err := p.parseSimpleExpr()
	if err != nil {
		return nil, err
	}
	for {
		cc, found := p.eat(token.ColonColon)
		if !found {
			return expr, nil
		}
		ty, err := p.parseType()
		if err != nil {
			return nil, err
		}
		expr = &cst.TypeCastExpr{Value: expr, ColonColon: cc, Type: ty}
	}
}

func (p *Parser) parseSimpleExpr() (cst.Expr, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	switch tok := p.peek(); tok.Kind {
	case token.KwNil:
		return &cst.NilExpr{Tok: p.advance()}, nil
	case token.KwTrue:
		return &cst.TrueExpr{Tok: p.advance()}, nil
	case token.KwFalse:
		return &cst.FalseExpr{Tok: p.advance()}, nil
	case token.Ellipsis:
		return &cst.VarargExpr{Tok: p.advance()}, nil
	case token.Number:
		return &cst.NumberExpr{Tok: p.advance()}, nil
	case token.String:
		return &cst.StringExpr{Tok: p.advance()}, nil
	case token.InterpFull, token.InterpBegin:
		return p.parseInterpString()
	case token.KwFunction:
		fn := p.advance()
		body, err := p.parseFuncBody()
		if err != nil {
			return nil, err
		}
		return &cst.FunctionExpr{Function: fn, Body: body}, nil
	case token.LBrace:
		return p.parseTableExpr()
	case token.KwIf:
		return p.parseIfExpr()
	case token.Ident, token.LParen:
		return p.parsePrefixExpr()
	default:
		return nil, p.errHere("expected expression, found %s", describe(tok))
	}
}

func (p *Parser) parseInterpString() (cst.Expr, error) {
	expr := &cst.InterpStringExpr{}
	first := p.advance()
	lit := first
	expr.Segments = append(expr.Segments, cst.InterpSegment{Literal: &lit})
	if first.Kind == token.InterpFull {
		return expr, nil
	}

	for {
		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		expr.Segments = append(expr.Segments, cst.InterpSegment{Value: value})

		next := p.peek()
		switch next.Kind {
		case token.InterpMiddle:
			mid := p.advance()
			expr.Segments = append(expr.Segments, cst.InterpSegment{Literal: &mid})
		case token.InterpEnd:
			end := p.advance()
			expr.Segments = append(expr.Segments, cst.InterpSegment{Literal: &end})
			return expr, nil
		default:
			return nil, p.errHere("expected `}` in interpolated string, found %s", describe(next))
		}
	}
}

func (p *Parser) parseIfExpr() (cst.Expr, error) {
	ifTok := p.advance()
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	then, err := p.expect(token.KwThen)
	if err != nil {
		return nil, err
	}
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	expr := &cst.IfExpr{If: ifTok, Cond: cond, Then: then, Value: value}

	for {
		elseif, found := p.eat(token.KwElseif)
		if !found {
			break
		}
		branchCond, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		branchThen, err := p.expect(token.KwThen)
		if err != nil {
			return nil, err
		}
		branchValue, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		expr.ElseIfs = append(expr.ElseIfs, cst.ElseIfExprBranch{
			ElseIf: elseif, Cond: branchCond, Then: branchThen, Value: branchValue,
		})
	}

	elseTok, err := p.expect(token.KwElse)
	if err != nil {
		return nil, err
	}
	elseValue, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	expr.Else = elseTok
	expr.ElseValue = elseValue
	return expr, nil
}

func (p *Parser) parsePrefixExpr() (*cst.PrefixExpr, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	var head cst.Prefix
	switch tok := p.peek(); tok.Kind {
	case token.Ident:
		head = &cst.PrefixName{Name: p.advance()}
	case token.LParen:
		lparen := p.advance()
		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		rparen, err := p.expect(token.RParen)
		if err != nil {
			return nil, err
		}
		head = &cst.PrefixParen{Paren: &cst.ParenExpr{LParen: lparen, Value: value, RParen: rparen}}
	default:
		return nil, p.errHere("expected expression, found %s", describe(tok))
	}

	expr := &cst.PrefixExpr{Prefix: head}
	for {
		suffix, ok, err := p.parseSuffix()
		if err != nil {
			return nil, err
		}
		if !ok {
			return expr, nil
		}
		expr.Suffixes = append(expr.Suffixes, suffix)
	}
}

func (p *Parser) parseSuffix() (cst.Suffix, bool, error) {
	switch tok := p.peek(); tok.Kind {
	case token.Dot:
		dot := p.advance()
		name, err := p.expect(token.Ident)
		if err != nil {
			return nil, false, err
		}
		return &cst.SuffixField{Dot: dot, Name: name}, true, nil

	case token.LBracket:
		lbracket := p.advance()
		index, err := p.parseExpr()
		if err != nil {
			return nil, false, err
		}
		rbracket, err := p.expect(token.RBracket)
		if err != nil {
			return nil, false, err
		}
		return &cst.SuffixIndex{LBracket: lbracket, Index: index, RBracket: rbracket}, true, nil

	case token.Colon:
		colon := p.advance()
		name, err := p.expect(token.Ident)
		if err != nil {
			return nil, false, err
		}
		args, ok, err := p.parseArgs()
		if err != nil {
			return nil, false, err
		}
		if !ok {
			return nil, false, p.errHere("expected call arguments after method name")
		}
		return &cst.SuffixMethodCall{Colon: colon, Name: name, Args: args}, true, nil

	default:
		args, ok, err := p.parseArgs()
		if err != nil || !ok {
			return nil, false, err
		}
		return &cst.SuffixCall{Args: args}, true, nil
	}
}

func (p *Parser) parseArgs() (cst.Args, bool, error) {
	switch tok := p.peek(); tok.Kind {
	case token.LParen:
		lparen := p.advance()
		values, err := p.parseExprListUntil(func(kind token.Kind) bool {
			return kind == token.RParen
		})
		if err != nil {
			return nil, false, err
		}
		rparen, err := p.expect(token.RParen)
		if err != nil {
			return nil, false, err
		}
		return &cst.ParenArgs{LParen: lparen, Values: values, RParen: rparen}, true, nil

	case token.String:
		return &cst.StringArgs{Value: p.advance()}, true, nil

	case token.LBrace:
		table, err := p.parseTableExpr()
		if err != nil {
			return nil, false, err
		}
		return &cst.TableArgs{Table: table.(*cst.TableExpr)}, true, nil

	default:
		return nil, false, nil
	}
}

func (p *Parser) parseTableExpr() (cst.Expr, error) {
	lbrace, err := p.expect(token.LBrace)
	if err != nil {
		return nil, err
	}
	table := &cst.TableExpr{LBrace: lbrace}

	for p.peek().Kind != token.RBrace {
		field, err := p.parseTableField()
		if err != nil {
			return nil, err
		}
		table.Fields = append(table.Fields, field)

		switch next := p.peek(); next.Kind {
		case token.Comma, token.Semicolon:
			table.Seps = append(table.Seps, p.advance())
		case token.RBrace:
			// no trailing separator
		default:
			return nil, p.errHere("expected `,`, `;` or `}` in table, found %s", describe(next))
		}
	}

	rbrace, err := p.expect(token.RBrace)
	if err != nil {
		return nil, err
	}
	table.RBrace = rbrace
	return table, nil
}

func (p *Parser) parseTableField() (cst.TableField, error) {
	switch tok := p.peek(); {
	case tok.Kind == token.LBracket:
		lbracket := p.advance()
		key, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		rbracket, err := p.expect(token.RBracket)
		if err != nil {
			return nil, err
		}
		assign, err := p.expect(token.Assign)
		if err != nil {
			return nil, err
		}
		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &cst.FieldIndex{
			LBracket: lbracket, Key: key, RBracket: rbracket,
			Assign: assign, Value: value,
		}, nil

	case tok.Kind == token.Ident && p.peekAt(1).Kind == token.Assign:
		name := p.advance()
		assign := p.advance()
		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &cst.FieldName{Name: name, Assign: assign, Value: value}, nil

	default:
		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &cst.FieldNoKey{Value: value}, nil
	}
}
