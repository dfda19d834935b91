package parser

import (
	"luamend/internal/cst"
	"luamend/internal/token"
)

func (p *Parser) parseType() (cst.Type, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	first, err := p.parseTypeAtom()
	if err != nil {
		return nil, err
	}
	return p.parseTypeOps(first)
}

// parseTypeOps applies postfix `?` and the `|`/`&` combinators to an
// already-parsed left operand.
func (p *Parser) parseTypeOps(left cst.Type) (cst.Type, error) {
	left = p.parseOptionalSuffix(left)
	for {
		switch p.peek().Kind {
		case token.Pipe:
			pipe := p.advance()
			right, err := p.parseTypeAtom()
			if err != nil {
				return nil, err
			}
			left = &cst.UnionType{Left: left, Pipe: pipe, Right: right}
		case token.Amp:
			amp := p.advance()
			right, err := p.parseTypeAtom()
			if err != nil {
				return nil, err
			}
			left = &cst.IntersectionType{Left: left, Amp: amp, Right: right}
		default:
			return left, nil
		}
	}
}

func (p *Parser) parseOptionalSuffix(ty cst.Type) cst.Type {
	for {
		question, found := p.eat(token.Question)
		if !found {
			return ty
		}
		ty = &cst.OptionalType{Type: ty, Question: question}
	}
}

func (p *Parser) parseTypeAtom() (cst.Type, error) {
	primary, err := p.parseTypePrimary()
	if err != nil {
		return nil, err
	}
	return p.parseOptionalSuffix(primary), nil
}

func (p *Parser) parseTypePrimary() (cst.Type, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	switch tok := p.peek(); tok.Kind {
	case token.Ident, token.KwNil:
		return p.parseNamedType()
	case token.String:
		return &cst.StringLiteralType{Tok: p.advance()}, nil
	case token.LBrace:
		return p.parseTableOrArrayType()
	case token.LParen:
		lparen, args, variadic, rparen, err := p.parseParenTypeList()
		if err != nil {
			return nil, err
		}
		if arrow, found := p.eat(token.Arrow); found {
			ret, err := p.parseTypeOrPack()
			if err != nil {
				return nil, err
			}
			return &cst.FunctionType{
				LParen: lparen, Args: args, Variadic: variadic,
				RParen: rparen, Arrow: arrow, Return: ret,
			}, nil
		}
		if variadic == nil && args.Len() == 1 && args.Items[0].Name == nil {
			return &cst.ParenType{LParen: lparen, Type: args.Items[0].Type, RParen: rparen}, nil
		}
		return nil, p.errHere("type pack is only valid before `->`")
	default:
		return nil, p.errHere("expected type, found %s", describe(tok))
	}
}

func (p *Parser) parseNamedType() (cst.Type, error) {
	name := p.advance()

	if dot, found := p.eat(token.Dot); found {
		field, err := p.expect(token.Ident)
		if err != nil {
			return nil, err
		}
		ty := &cst.FieldType{Module: name, Dot: dot, Name: field}
		if p.peek().Kind == token.Lt {
			args, err := p.parseTypeArgs()
			if err != nil {
				return nil, err
			}
			ty.Args = args
		}
		return ty, nil
	}

	ty := &cst.NamedType{Name: name}
	if p.peek().Kind == token.Lt {
		args, err := p.parseTypeArgs()
		if err != nil {
			return nil, err
		}
		ty.Args = args
	}
	return ty, nil
}

func (p *Parser) parseTypeArgs() (*cst.TypeArgs, error) {
	lt := p.advance()
	args := &cst.TypeArgs{Lt: lt}
	for {
		ty, err := p.parseTypeOrPack()
		if err != nil {
			return nil, err
		}
		args.Types.Items = append(args.Types.Items, ty)
		comma, found := p.eat(token.Comma)
		if !found {
			break
		}
		args.Types.Seps = append(args.Types.Seps, comma)
	}
	gt, err := p.expect(token.Gt)
	if err != nil {
		return nil, err
	}
	args.Gt = gt
	return args, nil
}

// parseTableOrArrayType distinguishes `{T}` from `{name: T, [K]: V}`.
func (p *Parser) parseTableOrArrayType() (cst.Type, error) {
	lbrace := p.advance()

	isTable := p.peek().Kind == token.LBracket ||
		(p.peek().Kind == token.Ident && p.peekAt(1).Kind == token.Colon)

	if !isTable {
		element, err := p.parseType()
		if err != nil {
			return nil, err
		}
		rbrace, err := p.expect(token.RBrace)
		if err != nil {
			return nil, err
		}
		return &cst.ArrayType{LBrace: lbrace, Element: element, RBrace: rbrace}, nil
	}

	table := &cst.TableType{LBrace: lbrace}
	for p.peek().Kind != token.RBrace {
		prop, err := p.parseTablePropType()
		if err != nil {
			return nil, err
		}
		table.Props = append(table.Props, prop)

		switch next := p.peek(); next.Kind {
		case token.Comma, token.Semicolon:
			table.Seps = append(table.Seps, p.advance())
		case token.RBrace:
		default:
			return nil, p.errHere("expected `,`, `;` or `}` in table type, found %s", describe(next))
		}
	}
	rbrace, err := p.expect(token.RBrace)
	if err != nil {
		return nil, err
	}
	table.RBrace = rbrace
	return table, nil
}

func (p *Parser) parseTablePropType() (cst.TablePropType, error) {
	var prop cst.TablePropType

	if lbracket, found := p.eat(token.LBracket); found {
		key, err := p.parseType()
		if err != nil {
			return prop, err
		}
		rbracket, err := p.expect(token.RBracket)
		if err != nil {
			return prop, err
		}
		prop.LBracket = &lbracket
		prop.Key = key
		prop.RBracket = &rbracket
	} else {
		name, err := p.expect(token.Ident)
		if err != nil {
			return prop, err
		}
		prop.Name = &name
	}

	colon, err := p.expect(token.Colon)
	if err != nil {
		return prop, err
	}
	value, err := p.parseType()
	if err != nil {
		return prop, err
	}
	prop.Colon = colon
	prop.Value = value
	return prop, nil
}

// parseParenTypeList parses `( [name:] T, ..., [...V] )`, shared by
// function types, parenthesized types and type packs.
func (p *Parser) parseParenTypeList() (lparen token.Token, args cst.Punctuated[cst.FunctionTypeArg], variadic *cst.VariadicPack, rparen token.Token, err error) {
	lparen = p.advance()

	for p.peek().Kind != token.RParen {
		if ellipsis, found := p.eat(token.Ellipsis); found {
			ty, tyErr := p.parseType()
			if tyErr != nil {
				err = tyErr
				return
			}
			variadic = &cst.VariadicPack{Ellipsis: ellipsis, Type: ty}
			break
		}

		var arg cst.FunctionTypeArg
		if p.peek().Kind == token.Ident && p.peekAt(1).Kind == token.Colon {
			name := p.advance()
			colon := p.advance()
			arg.Name = &name
			arg.Colon = &colon
		}
		arg.Type, err = p.parseType()
		if err != nil {
			return
		}
		args.Items = append(args.Items, arg)

		comma, found := p.eat(token.Comma)
		if !found {
			break
		}
		args.Seps = append(args.Seps, comma)
	}

	rparen, err = p.expect(token.RParen)
	return
}

// parseTypeOrPack parses a type, a variadic pack (`...T`) or a type
// pack (`(T, U)`), as allowed in return positions and generic defaults.
func (p *Parser) parseTypeOrPack() (cst.TypeOrPack, error) {
	switch p.peek().Kind {
	case token.Ellipsis:
		ellipsis := p.advance()
		ty, err := p.parseType()
		if err != nil {
			return nil, err
		}
		return &cst.VariadicPack{Ellipsis: ellipsis, Type: ty}, nil

	case token.LParen:
		lparen, args, variadic, rparen, err := p.parseParenTypeList()
		if err != nil {
			return nil, err
		}
		if arrow, found := p.eat(token.Arrow); found {
			ret, err := p.parseTypeOrPack()
			if err != nil {
				return nil, err
			}
			fn := &cst.FunctionType{
				LParen: lparen, Args: args, Variadic: variadic,
				RParen: rparen, Arrow: arrow, Return: ret,
			}
			ty, err := p.parseTypeOps(fn)
			if err != nil {
				return nil, err
			}
			return ty.(cst.TypeOrPack), nil
		}
		if variadic == nil && args.Len() == 1 && args.Items[0].Name == nil {
			paren := &cst.ParenType{LParen: lparen, Type: args.Items[0].Type, RParen: rparen}
			ty, err := p.parseTypeOps(paren)
			if err != nil {
				return nil, err
			}
			return ty.(cst.TypeOrPack), nil
		}
		for _, arg := range args.Items {
			if arg.Name != nil {
				return nil, p.errHere("named types are only valid in function type parameters")
			}
		}
		pack := &cst.TypePack{LParen: lparen, Variadic: variadic, RParen: rparen}
		for i, arg := range args.Items {
			pack.Types.Items = append(pack.Types.Items, arg.Type)
			if i < len(args.Seps) {
				pack.Types.Seps = append(pack.Types.Seps, args.Seps[i])
			}
		}
		return pack, nil

	default:
		if p.peek().Kind == token.Ident && p.peekAt(1).Kind == token.Ellipsis {
			name := p.advance()
			ellipsis := p.advance()
			return &cst.GenericPack{Name: name, Ellipsis: ellipsis}, nil
		}
		ty, err := p.parseType()
		if err != nil {
			return nil, err
		}
		return ty.(cst.TypeOrPack), nil
	}
}

func (p *Parser) parseGenericParams() (*cst.GenericParams, error) {
	lt := p.advance()
	params := &cst.GenericParams{Lt: lt}

	for {
		name, err := p.expect(token.Ident)
		if err != nil {
			return nil, err
		}
		param := cst.GenericParam{Name: name}
		if ellipsis, found := p.eat(token.Ellipsis); found {
			param.Ellipsis = &ellipsis
		}
		if assign, found := p.eat(token.Assign); found {
			param.Assign = &assign
			def, err := p.parseTypeOrPack()
			if err != nil {
				return nil, err
			}
			param.Default = def
		}
		params.Params = append(params.Params, param)

		comma, found := p.eat(token.Comma)
		if !found {
			break
		}
		params.Seps = append(params.Seps, comma)
	}

	gt, err := p.expect(token.Gt)
	if err != nil {
		return nil, err
	}
	params.Gt = gt
	return params, nil
}
