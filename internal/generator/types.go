package generator

import (
	"luamend/internal/nodes"
)

func (g *Generator) writeType(t nodes.Type) {
	switch ty := t.(type) {
	case *nodes.TypeName:
		g.writeIdentifier(ty.Name)
		if ty.Arguments != nil {
			g.writeTypeArguments(ty.Arguments)
		}
	case *nodes.TypeField:
		g.writeIdentifier(ty.Module)
		g.token(ty.Token, ".")
		g.writeIdentifier(ty.Type.Name)
		if ty.Type.Arguments != nil {
			g.writeTypeArguments(ty.Type.Arguments)
		}
	case *nodes.StringType:
		g.token(ty.Token, quoteString(ty.Value))
	case *nodes.ArrayType:
		var opening, closing *nodes.Token
		if ty.Tokens != nil {
			opening = ty.Tokens.OpeningBrace
			closing = ty.Tokens.ClosingBrace
		}
		g.token(opening, "{")
		g.writeType(ty.ElementType)
		g.token(closing, "}")
	case *nodes.TableType:
		g.writeTableType(ty)
	case *nodes.FunctionType:
		g.writeFunctionType(ty)
	case *nodes.OptionalType:
		g.writeInnerType(ty.InnerType)
		g.token(ty.Token, "?")
	case *nodes.UnionType:
		g.writeInnerType(ty.Left)
		g.token(ty.Token, "|")
		g.writeInnerType(ty.Right)
	case *nodes.IntersectionType:
		g.writeInnerType(ty.Left)
		g.token(ty.Token, "&")
		g.writeInnerType(ty.Right)
	case *nodes.ParentheseType:
		var left, right *nodes.Token
		if ty.Tokens != nil {
			left = ty.Tokens.LeftParenthese
			right = ty.Tokens.RightParenthese
		}
		g.token(left, "(")
		g.writeType(ty.InnerType)
		g.token(right, ")")
	}
}

// writeInnerType renders an operand of `?`, `|` or `&`, wrapping a
// token-less function type so the arrow is not absorbed by the
// surrounding operator.
func (g *Generator) writeInnerType(t nodes.Type) {
	if fn, ok := t.(*nodes.FunctionType); ok && fn.Tokens == nil {
		g.symbol("(")
		g.writeType(t)
		g.symbol(")")
		return
	}
	g.writeType(t)
}

func (g *Generator) writeTypeOrPack(t nodes.TypeOrPack) {
	switch p := t.(type) {
	case *nodes.TypePack:
		g.writeTypePack(p)
	case *nodes.VariadicTypePack:
		g.token(p.Token, "...")
		g.writeType(p.Type)
	case *nodes.GenericTypePack:
		g.writeIdentifier(p.Name)
		g.token(p.Token, "...")
	case nodes.Type:
		g.writeType(p)
	}
}

func (g *Generator) writeTypePack(p *nodes.TypePack) {
	var left, right *nodes.Token
	var commas []*nodes.Token
	if p.Tokens != nil {
		left = p.Tokens.LeftParenthese
		right = p.Tokens.RightParenthese
		commas = p.Tokens.Commas
	}
	g.token(left, "(")
	for i, ty := range p.Types {
		g.writeType(ty)
		if i < len(p.Types)-1 || p.VariadicType != nil {
			g.separator(commas, i)
		}
	}
	if p.VariadicType != nil {
		g.writeTypeOrPack(p.VariadicType)
	}
	g.token(right, ")")
}

func (g *Generator) writeTypeArguments(arguments *nodes.TypeArguments) {
	var opening, closing *nodes.Token
	var commas []*nodes.Token
	if arguments.Tokens != nil {
		opening = arguments.Tokens.OpeningChevron
		closing = arguments.Tokens.ClosingChevron
		commas = arguments.Tokens.Commas
	}
	g.token(opening, "<")
	for i, argument := range arguments.Arguments {
		g.writeTypeOrPack(argument)
		if i < len(arguments.Arguments)-1 {
			g.separator(commas, i)
		}
	}
	g.token(closing, ">")
}

func (g *Generator) writeTableType(t *nodes.TableType) {
	var opening, closing *nodes.Token
	var separators []*nodes.Token
	if t.Tokens != nil {
		opening = t.Tokens.OpeningBrace
		closing = t.Tokens.ClosingBrace
		separators = t.Tokens.Separators
	}
	g.token(opening, "{")
	for i, entry := range t.Entries {
		switch e := entry.(type) {
		case *nodes.TablePropertyType:
			g.writeIdentifier(e.Property)
			g.token(e.Token, ":")
			g.writeType(e.Type)
		case *nodes.TableIndexerType:
			var bracketOpen, bracketClose, colon *nodes.Token
			if e.Tokens != nil {
				bracketOpen = e.Tokens.OpeningBracket
				bracketClose = e.Tokens.ClosingBracket
				colon = e.Tokens.Colon
			}
			g.token(bracketOpen, "[")
			g.writeType(e.KeyType)
			g.token(bracketClose, "]")
			g.token(colon, ":")
			g.writeType(e.ValueType)
		}
		if i < len(separators) && separators[i] != nil {
			g.token(separators[i], ",")
		} else if i < len(t.Entries)-1 {
			g.symbol(",")
		}
	}
	g.token(closing, "}")
}

func (g *Generator) writeFunctionType(t *nodes.FunctionType) {
	var opening, closing, arrow, variadicComma *nodes.Token
	var commas []*nodes.Token
	if t.Tokens != nil {
		opening = t.Tokens.OpeningParenthese
		closing = t.Tokens.ClosingParenthese
		arrow = t.Tokens.Arrow
		variadicComma = t.Tokens.VariadicComma
		commas = t.Tokens.Commas
	}
	g.token(opening, "(")
	for i, argument := range t.Arguments {
		if argument.Name != nil {
			g.writeIdentifier(argument.Name)
			g.token(argument.Token, ":")
		}
		g.writeType(argument.Type)
		if i < len(t.Arguments)-1 {
			g.separator(commas, i)
		}
	}
	if t.VariadicType != nil {
		if len(t.Arguments) > 0 {
			g.token(variadicComma, ",")
		}
		g.writeTypeOrPack(t.VariadicType)
	}
	g.token(closing, ")")
	g.token(arrow, "->")
	g.writeTypeOrPack(t.ReturnType)
}
