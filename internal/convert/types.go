package convert

import (
	"luamend/internal/cst"
	"luamend/internal/nodes"
)

func (c *converter) convertType(typ cst.Type) error {
	switch t := typ.(type) {
	case *cst.NamedType:
		c.pushWork(makeNamedTypeJob{typ: t})
		c.scheduleTypeArgs(t.Args)

	case *cst.FieldType:
		c.pushWork(makeFieldTypeJob{typ: t})
		c.scheduleTypeArgs(t.Args)

	case *cst.StringLiteralType:
		value, err := decodeStringToken(t.Tok.Text)
		if err != nil {
			return c.errAt(ErrType, t.Tok.Span, err.Error())
		}
		tok, err := c.token(t.Tok)
		if err != nil {
			return err
		}
		push(&c.types, nodes.Type(&nodes.StringType{Value: value, Token: tok}))

	case *cst.ArrayType:
		c.pushWork(makeArrayTypeJob{typ: t})
		c.pushWork(convertTypeJob{typ: t.Element})

	case *cst.TableType:
		c.pushWork(makeTableTypeJob{typ: t})
		for i := len(t.Props) - 1; i >= 0; i-- {
			prop := t.Props[i]
			c.pushWork(convertTypeJob{typ: prop.Value})
			if prop.LBracket != nil {
				c.pushWork(convertTypeJob{typ: prop.Key})
			}
		}

	case *cst.FunctionType:
		c.pushWork(makeFunctionTypeJob{typ: t})
		c.pushWork(convertTypeOrPackJob{typ: t.Return})
		if t.Variadic != nil {
			c.pushWork(convertTypeJob{typ: t.Variadic.Type})
		}
		for i := t.Args.Len() - 1; i >= 0; i-- {
			c.pushWork(convertTypeJob{typ: t.Args.Items[i].Type})
		}

	case *cst.OptionalType:
		c.pushWork(makeOptionalTypeJob{typ: t})
		c.pushWork(convertTypeJob{typ: t.Type})

	case *cst.UnionType:
		c.pushWork(makeUnionTypeJob{typ: t})
		c.pushWork(convertTypeJob{typ: t.Right})
		c.pushWork(convertTypeJob{typ: t.Left})

	case *cst.IntersectionType:
		c.pushWork(makeIntersectionTypeJob{typ: t})
		c.pushWork(convertTypeJob{typ: t.Right})
		c.pushWork(convertTypeJob{typ: t.Left})

	case *cst.ParenType:
		c.pushWork(makeParenTypeJob{typ: t})
		c.pushWork(convertTypeJob{typ: t.Type})

	default:
		return c.errAt(ErrType, typ.Span(), "")
	}
	return nil
}

func (c *converter) convertTypeOrPack(typ cst.TypeOrPack) error {
	switch t := typ.(type) {
	case *cst.TypePack:
		c.pushWork(makeTypePackJob{typ: t})
		if t.Variadic != nil {
			c.pushWork(convertTypeJob{typ: t.Variadic.Type})
		}
		for i := t.Types.Len() - 1; i >= 0; i-- {
			c.pushWork(convertTypeJob{typ: t.Types.Items[i]})
		}
	case *cst.VariadicPack:
		c.pushWork(makeVariadicPackJob{typ: t})
		c.pushWork(convertTypeJob{typ: t.Type})
	case *cst.GenericPack:
		name, err := c.identifier(t.Name)
		if err != nil {
			return err
		}
		ellipse, err := c.token(t.Ellipsis)
		if err != nil {
			return err
		}
		push(&c.typeOrPacks, nodes.TypeOrPack(&nodes.GenericTypePack{Name: name, Token: ellipse}))
	case cst.Type:
		c.pushWork(moveTypeToPackJob{})
		c.pushWork(convertTypeJob{typ: t})
	default:
		return c.errAt(ErrType, typ.Span(), "")
	}
	return nil
}

func (c *converter) scheduleTypeArgs(args *cst.TypeArgs) {
	if args == nil {
		return
	}
	for i := args.Types.Len() - 1; i >= 0; i-- {
		c.pushWork(convertTypeOrPackJob{typ: args.Types.Items[i]})
	}
}

// buildTypeArgs pops the converted arguments of a `<...>` list.
func (c *converter) buildTypeArgs(args *cst.TypeArgs) (*nodes.TypeArguments, error) {
	if args == nil {
		return nil, nil
	}
	converted, err := c.popTypeOrPacks(args.Types.Len())
	if err != nil {
		return nil, err
	}
	arguments := &nodes.TypeArguments{Arguments: converted}
	if c.opts.HoldTokenData {
		opening, err := c.token(args.Lt)
		if err != nil {
			return nil, err
		}
		closing, err := c.token(args.Gt)
		if err != nil {
			return nil, err
		}
		commas, err := c.seps(args.Types.Seps)
		if err != nil {
			return nil, err
		}
		arguments.Tokens = &nodes.TypeArgumentsTokens{
			OpeningChevron: opening,
			ClosingChevron: closing,
			Commas:         commas,
		}
	}
	return arguments, nil
}

type makeNamedTypeJob struct{ typ *cst.NamedType }
type makeFieldTypeJob struct{ typ *cst.FieldType }
type makeArrayTypeJob struct{ typ *cst.ArrayType }
type makeTableTypeJob struct{ typ *cst.TableType }
type makeFunctionTypeJob struct{ typ *cst.FunctionType }
type makeOptionalTypeJob struct{ typ *cst.OptionalType }
type makeUnionTypeJob struct{ typ *cst.UnionType }
type makeIntersectionTypeJob struct{ typ *cst.IntersectionType }
type makeParenTypeJob struct{ typ *cst.ParenType }
type makeTypePackJob struct{ typ *cst.TypePack }
type makeVariadicPackJob struct{ typ *cst.VariadicPack }
type moveTypeToPackJob struct{}

func (makeNamedTypeJob) isJob()        {}
func (makeFieldTypeJob) isJob()        {}
func (makeArrayTypeJob) isJob()        {}
func (makeTableTypeJob) isJob()        {}
func (makeFunctionTypeJob) isJob()     {}
func (makeOptionalTypeJob) isJob()     {}
func (makeUnionTypeJob) isJob()        {}
func (makeIntersectionTypeJob) isJob() {}
func (makeParenTypeJob) isJob()        {}
func (makeTypePackJob) isJob()         {}
func (makeVariadicPackJob) isJob()     {}
func (moveTypeToPackJob) isJob()       {}

func (j makeNamedTypeJob) make(c *converter) error {
	arguments, err := c.buildTypeArgs(j.typ.Args)
	if err != nil {
		return err
	}
	name, err := c.identifier(j.typ.Name)
	if err != nil {
		return err
	}
	push(&c.types, nodes.Type(&nodes.TypeName{Name: name, Arguments: arguments}))
	return nil
}

func (j makeFieldTypeJob) make(c *converter) error {
	arguments, err := c.buildTypeArgs(j.typ.Args)
	if err != nil {
		return err
	}
	module, err := c.identifier(j.typ.Module)
	if err != nil {
		return err
	}
	name, err := c.identifier(j.typ.Name)
	if err != nil {
		return err
	}
	dot, err := c.token(j.typ.Dot)
	if err != nil {
		return err
	}
	push(&c.types, nodes.Type(&nodes.TypeField{
		Module: module,
		Type:   &nodes.TypeName{Name: name, Arguments: arguments},
		Token:  dot,
	}))
	return nil
}

func (j makeArrayTypeJob) make(c *converter) error {
	element, err := c.popType()
	if err != nil {
		return err
	}
	array := &nodes.ArrayType{ElementType: element}
	if c.opts.HoldTokenData {
		opening, err := c.token(j.typ.LBrace)
		if err != nil {
			return err
		}
		closing, err := c.token(j.typ.RBrace)
		if err != nil {
			return err
		}
		array.Tokens = &nodes.ArrayTypeTokens{OpeningBrace: opening, ClosingBrace: closing}
	}
	push(&c.types, nodes.Type(array))
	return nil
}

func (j makeTableTypeJob) make(c *converter) error {
	t := j.typ
	total := 0
	for _, prop := range t.Props {
		if prop.LBracket != nil {
			total += 2
		} else {
			total++
		}
	}
	converted, err := c.popTypes(total)
	if err != nil {
		return err
	}

	table := &nodes.TableType{}
	next := 0
	for _, prop := range t.Props {
		if prop.LBracket != nil {
			entry := &nodes.TableIndexerType{
				KeyType:   converted[next],
				ValueType: converted[next+1],
			}
			next += 2
			if c.opts.HoldTokenData {
				opening, err := c.tokenPtr(prop.LBracket)
				if err != nil {
					return err
				}
				closing, err := c.tokenPtr(prop.RBracket)
				if err != nil {
					return err
				}
				colon, err := c.token(prop.Colon)
				if err != nil {
					return err
				}
				entry.Tokens = &nodes.TableIndexerTypeTokens{
					OpeningBracket: opening,
					ClosingBracket: closing,
					Colon:          colon,
				}
			}
			table.Entries = append(table.Entries, entry)
			continue
		}

		property, err := c.identifier(*prop.Name)
		if err != nil {
			return err
		}
		colon, err := c.token(prop.Colon)
		if err != nil {
			return err
		}
		table.Entries = append(table.Entries, &nodes.TablePropertyType{
			Property: property,
			Type:     converted[next],
			Token:    colon,
		})
		next++
	}

	if c.opts.HoldTokenData {
		opening, err := c.token(t.LBrace)
		if err != nil {
			return err
		}
		closing, err := c.token(t.RBrace)
		if err != nil {
			return err
		}
		separators, err := c.seps(t.Seps)
		if err != nil {
			return err
		}
		table.Tokens = &nodes.TableTypeTokens{
			OpeningBrace: opening,
			ClosingBrace: closing,
			Separators:   separators,
		}
	}
	push(&c.types, nodes.Type(table))
	return nil
}

func (j makeFunctionTypeJob) make(c *converter) error {
	t := j.typ
	returnType, err := c.popTypeOrPack()
	if err != nil {
		return err
	}
	var variadic nodes.TypeOrPack
	if t.Variadic != nil {
		inner, err := c.popType()
		if err != nil {
			return err
		}
		pack := &nodes.VariadicTypePack{Type: inner}
		if c.opts.HoldTokenData {
			pack.Token, err = c.token(t.Variadic.Ellipsis)
			if err != nil {
				return err
			}
		}
		variadic = pack
	}
	argumentTypes, err := c.popTypes(t.Args.Len())
	if err != nil {
		return err
	}

	function := &nodes.FunctionType{ReturnType: returnType, VariadicType: variadic}
	for i, arg := range t.Args.Items {
		converted := &nodes.FunctionTypeArgument{Type: argumentTypes[i]}
		if arg.Name != nil {
			converted.Name, err = c.identifier(*arg.Name)
			if err != nil {
				return err
			}
			converted.Token, err = c.tokenPtr(arg.Colon)
			if err != nil {
				return err
			}
		}
		function.Arguments = append(function.Arguments, converted)
	}

	if c.opts.HoldTokenData {
		opening, err := c.token(t.LParen)
		if err != nil {
			return err
		}
		closing, err := c.token(t.RParen)
		if err != nil {
			return err
		}
		arrow, err := c.token(t.Arrow)
		if err != nil {
			return err
		}
		commas, err := c.seps(t.Args.Seps)
		if err != nil {
			return err
		}
		function.Tokens = &nodes.FunctionTypeTokens{
			OpeningParenthese: opening,
			ClosingParenthese: closing,
			Arrow:             arrow,
			Commas:            commas,
		}
	}
	push(&c.types, nodes.Type(function))
	return nil
}

func (j makeOptionalTypeJob) make(c *converter) error {
	inner, err := c.popType()
	if err != nil {
		return err
	}
	question, err := c.token(j.typ.Question)
	if err != nil {
		return err
	}
	push(&c.types, nodes.Type(&nodes.OptionalType{InnerType: inner, Token: question}))
	return nil
}

func (j makeUnionTypeJob) make(c *converter) error {
	sides, err := c.popTypes(2)
	if err != nil {
		return err
	}
	pipe, err := c.token(j.typ.Pipe)
	if err != nil {
		return err
	}
	push(&c.types, nodes.Type(&nodes.UnionType{Left: sides[0], Right: sides[1], Token: pipe}))
	return nil
}

func (j makeIntersectionTypeJob) make(c *converter) error {
	sides, err := c.popTypes(2)
	if err != nil {
		return err
	}
	amp, err := c.token(j.typ.Amp)
	if err != nil {
		return err
	}
	push(&c.types, nodes.Type(&nodes.IntersectionType{Left: sides[0], Right: sides[1], Token: amp}))
	return nil
}

func (j makeParenTypeJob) make(c *converter) error {
	inner, err := c.popType()
	if err != nil {
		return err
	}
	paren := &nodes.ParentheseType{InnerType: inner}
	if c.opts.HoldTokenData {
		left, err := c.token(j.typ.LParen)
		if err != nil {
			return err
		}
		right, err := c.token(j.typ.RParen)
		if err != nil {
			return err
		}
		paren.Tokens = &nodes.ParentheseTokens{LeftParenthese: left, RightParenthese: right}
	}
	push(&c.types, nodes.Type(paren))
	return nil
}

func (j makeTypePackJob) make(c *converter) error {
	t := j.typ
	var variadic nodes.TypeOrPack
	if t.Variadic != nil {
		inner, err := c.popType()
		if err != nil {
			return err
		}
		pack := &nodes.VariadicTypePack{Type: inner}
		if c.opts.HoldTokenData {
			var err error
			pack.Token, err = c.token(t.Variadic.Ellipsis)
			if err != nil {
				return err
			}
		}
		variadic = pack
	}
	types, err := c.popTypes(t.Types.Len())
	if err != nil {
		return err
	}

	pack := &nodes.TypePack{Types: types, VariadicType: variadic}
	if c.opts.HoldTokenData {
		left, err := c.token(t.LParen)
		if err != nil {
			return err
		}
		right, err := c.token(t.RParen)
		if err != nil {
			return err
		}
		commas, err := c.seps(t.Types.Seps)
		if err != nil {
			return err
		}
		pack.Tokens = &nodes.TypePackTokens{
			LeftParenthese:  left,
			RightParenthese: right,
			Commas:          commas,
		}
	}
	push(&c.typeOrPacks, nodes.TypeOrPack(pack))
	return nil
}

func (j makeVariadicPackJob) make(c *converter) error {
	inner, err := c.popType()
	if err != nil {
		return err
	}
	ellipse, err := c.token(j.typ.Ellipsis)
	if err != nil {
		return err
	}
	push(&c.typeOrPacks, nodes.TypeOrPack(&nodes.VariadicTypePack{Type: inner, Token: ellipse}))
	return nil
}

func (moveTypeToPackJob) make(c *converter) error {
	typ, err := c.popType()
	if err != nil {
		return err
	}
	pack, ok := typ.(nodes.TypeOrPack)
	if !ok {
		return c.internalError("type does not fit in pack position")
	}
	push(&c.typeOrPacks, pack)
	return nil
}
