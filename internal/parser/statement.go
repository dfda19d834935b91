package parser

import (
	"luamend/internal/cst"
	"luamend/internal/token"
)

func (p *Parser) parseStatement() (cst.Stmt, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	switch tok := p.peek(); {
	case tok.Kind == token.KwLocal:
		return p.parseLocal()
	case tok.Kind == token.KwDo:
		return p.parseDo()
	case tok.Kind == token.KwWhile:
		return p.parseWhile()
	case tok.Kind == token.KwRepeat:
		return p.parseRepeat()
	case tok.Kind == token.KwIf:
		return p.parseIf()
	case tok.Kind == token.KwFor:
		return p.parseFor()
	case tok.Kind == token.KwFunction:
		return p.parseFunctionDecl()
	case tok.IsIdentNamed("type") && p.peekAt(1).Kind == token.Ident &&
		(p.peekAt(2).Kind == token.Assign || p.peekAt(2).Kind == token.Lt):
		return p.parseTypeDecl(nil)
	case tok.IsIdentNamed("export") && p.peekAt(1).IsIdentNamed("type"):
		export := p.advance()
		return p.parseTypeDecl(&export)
	default:
		return p.parsePrefixStatement()
	}
}

func (p *Parser) parseLocal() (cst.Stmt, error) {
	local := p.advance()

	if fn, found := p.eat(token.KwFunction); found {
		name, err := p.expect(token.Ident)
		if err != nil {
			return nil, err
		}
		body, err := p.parseFuncBody()
		if err != nil {
			return nil, err
		}
		return &cst.LocalFunctionStmt{Local: local, Function: fn, Name: name, Body: body}, nil
	}

	names, err := p.parseTypedNameList()
	if err != nil {
		return nil, err
	}
	stmt := &cst.LocalAssignStmt{Local: local, Names: names}
	if assign, found := p.eat(token.Assign); found {
		stmt.Assign = &assign
		values, err := p.parseExprList()
		if err != nil {
			return nil, err
		}
		stmt.Values = values
	}
	return stmt, nil
}

func (p *Parser) parseDo() (cst.Stmt, error) {
	do := p.advance()
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	end, err := p.expect(token.KwEnd)
	if err != nil {
		return nil, err
	}
	return &cst.DoStmt{Do: do, Body: body, End: end}, nil
}

func (p *Parser) parseWhile() (cst.Stmt, error) {
	while := p.advance()
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	do, err := p.expect(token.KwDo)
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	end, err := p.expect(token.KwEnd)
	if err != nil {
		return nil, err
	}
	return &cst.WhileStmt{While: while, Cond: cond, Do: do, Body: body, End: end}, nil
}

func (p *Parser) parseRepeat() (cst.Stmt, error) {
	repeat := p.advance()
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	until, err := p.expect(token.KwUntil)
	if err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &cst.RepeatStmt{Repeat: repeat, Body: body, Until: until, Cond: cond}, nil
}

func (p *Parser) parseIf() (cst.Stmt, error) {
	ifTok := p.advance()
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	then, err := p.expect(token.KwThen)
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	stmt := &cst.IfStmt{If: ifTok, Cond: cond, Then: then, Body: body}

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
		branchBody, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		stmt.ElseIfs = append(stmt.ElseIfs, cst.ElseIfClause{
			ElseIf: elseif, Cond: branchCond, Then: branchThen, Body: branchBody,
		})
	}

	if elseTok, found := p.eat(token.KwElse); found {
		elseBody, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		stmt.Else = &cst.ElseClause{Else: elseTok, Body: elseBody}
	}

	end, err := p.expect(token.KwEnd)
	if err != nil {
		return nil, err
	}
	stmt.End = end
	return stmt, nil
}

func (p *Parser) parseFor() (cst.Stmt, error) {
	forTok := p.advance()
	first, err := p.parseTypedName()
	if err != nil {
		return nil, err
	}

	if p.peek().Kind == token.Assign && first.Type == nil {
		return p.parseNumericFor(forTok, first)
	}
	return p.parseGenericFor(forTok, first)
}

func (p *Parser) parseNumericFor(forTok token.Token, name cst.TypedName) (cst.Stmt, error) {
	assign := p.advance()
	start, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	commaOne, err := p.expect(token.Comma)
	if err != nil {
		return nil, err
	}
	limit, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	stmt := &cst.NumericForStmt{
		For: forTok, Name: name, Assign: assign,
		Start: start, CommaOne: commaOne, Limit: limit,
	}
	if commaTwo, found := p.eat(token.Comma); found {
		stmt.CommaTwo = &commaTwo
		step, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		stmt.Step = step
	}
	do, err := p.expect(token.KwDo)
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	end, err := p.expect(token.KwEnd)
	if err != nil {
		return nil, err
	}
	stmt.Do, stmt.Body, stmt.End = do, body, end
	return stmt, nil
}

func (p *Parser) parseGenericFor(forTok token.Token, first cst.TypedName) (cst.Stmt, error) {
	names := cst.Punctuated[cst.TypedName]{Items: []cst.TypedName{first}}
	for {
		comma, found := p.eat(token.Comma)
		if !found {
			break
		}
		names.Seps = append(names.Seps, comma)
		name, err := p.parseTypedName()
		if err != nil {
			return nil, err
		}
		names.Items = append(names.Items, name)
	}
	in, err := p.expect(token.KwIn)
	if err != nil {
		return nil, err
	}
	values, err := p.parseExprList()
	if err != nil {
		return nil, err
	}
	do, err := p.expect(token.KwDo)
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	end, err := p.expect(token.KwEnd)
	if err != nil {
		return nil, err
	}
	return &cst.GenericForStmt{
		For: forTok, Names: names, In: in, Values: values,
		Do: do, Body: body, End: end,
	}, nil
}

func (p *Parser) parseFunctionDecl() (cst.Stmt, error) {
	fn := p.advance()
	name, err := p.parseFunctionName()
	if err != nil {
		return nil, err
	}
	body, err := p.parseFuncBody()
	if err != nil {
		return nil, err
	}
	return &cst.FunctionDeclStmt{Function: fn, Name: name, Body: body}, nil
}

func (p *Parser) parseFunctionName() (cst.FunctionName, error) {
	var name cst.FunctionName
	first, err := p.expect(token.Ident)
	if err != nil {
		return name, err
	}
	name.Names = append(name.Names, first)
	for {
		dot, found := p.eat(token.Dot)
		if !found {
			break
		}
		part, err := p.expect(token.Ident)
		if err != nil {
			return name, err
		}
		name.Dots = append(name.Dots, dot)
		name.Names = append(name.Names, part)
	}
	if colon, found := p.eat(token.Colon); found {
		method, err := p.expect(token.Ident)
		if err != nil {
			return name, err
		}
		name.Colon = &colon
		name.Method = &method
	}
	return name, nil
}

func (p *Parser) parseTypeDecl(export *token.Token) (cst.Stmt, error) {
	typeTok := p.advance()
	name, err := p.expect(token.Ident)
	if err != nil {
		return nil, err
	}
	stmt := &cst.TypeDeclStmt{Export: export, TypeTok: typeTok, Name: name}
	if p.peek().Kind == token.Lt {
		generics, err := p.parseGenericParams()
		if err != nil {
			return nil, err
		}
		stmt.Generics = generics
	}
	assign, err := p.expect(token.Assign)
	if err != nil {
		return nil, err
	}
	stmt.Assign = assign
	ty, err := p.parseType()
	if err != nil {
		return nil, err
	}
	stmt.Type = ty
	return stmt, nil
}

// parsePrefixStatement handles statements that begin with a prefix
// expression: assignments, compound assignments and bare calls.
func (p *Parser) parsePrefixStatement() (cst.Stmt, error) {
	prefix, err := p.parsePrefixExpr()
	if err != nil {
		return nil, err
	}

	switch next := p.peek(); next.Kind {
	case token.Assign, token.Comma:
		vars := cst.Punctuated[*cst.PrefixExpr]{Items: []*cst.PrefixExpr{prefix}}
		for {
			comma, found := p.eat(token.Comma)
			if !found {
				break
			}
			vars.Seps = append(vars.Seps, comma)
			v, err := p.parsePrefixExpr()
			if err != nil {
				return nil, err
			}
			vars.Items = append(vars.Items, v)
		}
		assign, err := p.expect(token.Assign)
		if err != nil {
			return nil, err
		}
		values, err := p.parseExprList()
		if err != nil {
			return nil, err
		}
		return &cst.AssignStmt{Vars: vars, Assign: assign, Values: values}, nil

	case token.PlusAssign, token.MinusAssign, token.StarAssign, token.SlashAssign,
		token.DoubleSlashAssign, token.PercentAssign, token.CaretAssign, token.ConcatAssign:
		op := p.advance()
		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &cst.CompoundAssignStmt{Var: prefix, Op: op, Value: value}, nil

	default:
		if !endsInCall(prefix) {
			return nil, p.errHere("expected statement, found expression")
		}
		return &cst.CallStmt{Call: prefix}, nil
	}
}

func endsInCall(prefix *cst.PrefixExpr) bool {
	if len(prefix.Suffixes) == 0 {
		return false
	}
	switch prefix.Suffixes[len(prefix.Suffixes)-1].(type) {
	case *cst.SuffixCall, *cst.SuffixMethodCall:
		return true
	default:
		return false
	}
}

func (p *Parser) parseTypedName() (cst.TypedName, error) {
	name, err := p.expect(token.Ident)
	if err != nil {
		return cst.TypedName{}, err
	}
	typed := cst.TypedName{Name: name}
	if colon, found := p.eat(token.Colon); found {
		ty, err := p.parseType()
		if err != nil {
			return typed, err
		}
		typed.Colon = &colon
		typed.Type = ty
	}
	return typed, nil
}

func (p *Parser) parseTypedNameList() (cst.Punctuated[cst.TypedName], error) {
	var list cst.Punctuated[cst.TypedName]
	for {
		name, err := p.parseTypedName()
		if err != nil {
			return list, err
		}
		list.Items = append(list.Items, name)
		comma, found := p.eat(token.Comma)
		if !found {
			return list, nil
		}
		list.Seps = append(list.Seps, comma)
	}
}

func (p *Parser) parseFuncBody() (*cst.FuncBody, error) {
	lparen, err := p.expect(token.LParen)
	if err != nil {
		return nil, err
	}
	body := &cst.FuncBody{LParen: lparen}

	for p.peek().Kind != token.RParen {
		var param cst.Param
		if ellipsis, found := p.eat(token.Ellipsis); found {
			param.Ellipsis = &ellipsis
		} else {
			name, err := p.expect(token.Ident)
			if err != nil {
				return nil, err
			}
			param.Name = &name
		}
		if colon, found := p.eat(token.Colon); found {
			ty, err := p.parseType()
			if err != nil {
				return nil, err
			}
			param.Colon = &colon
			param.Type = ty
		}
		body.Params.Items = append(body.Params.Items, param)
		comma, found := p.eat(token.Comma)
		if !found {
			break
		}
		body.Params.Seps = append(body.Params.Seps, comma)
	}

	rparen, err := p.expect(token.RParen)
	if err != nil {
		return nil, err
	}
	body.RParen = rparen

	if colon, found := p.eat(token.Colon); found {
		body.ReturnColon = &colon
		ret, err := p.parseTypeOrPack()
		if err != nil {
			return nil, err
		}
		body.Return = ret
	}

	block, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	end, err := p.expect(token.KwEnd)
	if err != nil {
		return nil, err
	}
	body.Body = block
	body.End = end
	return body, nil
}
