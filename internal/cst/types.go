package cst

import (
	"luamend/internal/source"
	"luamend/internal/token"
)

// TypeArgs is the `<T, U>` argument list of a named type.
type TypeArgs struct {
	Lt    token.Token
	Types Punctuated[TypeOrPack]
	Gt    token.Token
}

// NamedType is a plain type name with optional generic arguments.
type NamedType struct {
	Name token.Token
	Args *TypeArgs
}

// FieldType is a module-qualified type: `module.Name<...>`.
type FieldType struct {
	Module token.Token
	Dot    token.Token
	Name   token.Token
	Args   *TypeArgs
}

// StringLiteralType is a literal string used as a type.
type StringLiteralType struct {
	Tok token.Token
}

// ArrayType is `{T}`.
type ArrayType struct {
	LBrace  token.Token
	Element Type
	RBrace  token.Token
}

// TablePropType is one property of a table type: `name: T` or
// `[K]: V`.
type TablePropType struct {
	Name     *token.Token
	LBracket *token.Token
	Key      Type
	RBracket *token.Token
	Colon    token.Token
	Value    Type
}

// TableType is `{name: T, [K]: V}`.
type TableType struct {
	LBrace token.Token
	Props  []TablePropType
	Seps   []token.Token // len(Seps) <= len(Props)
	RBrace token.Token
}

// FunctionTypeArg is one parameter of a function type, optionally named.
type FunctionTypeArg struct {
	Name  *token.Token
	Colon *token.Token
	Type  Type
}

// VariadicPack is `...T`.
type VariadicPack struct {
	Ellipsis token.Token
	Type     Type
}

// FunctionType is `(args) -> ret`.
type FunctionType struct {
	LParen   token.Token
	Args     Punctuated[FunctionTypeArg]
	Variadic *VariadicPack
	RParen   token.Token
	Arrow    token.Token
	Return   TypeOrPack
}

// OptionalType is `T?`.
type OptionalType struct {
	Type     Type
	Question token.Token
}

// UnionType is `A | B`.
type UnionType struct {
	Left  Type
	Pipe  token.Token
	Right Type
}

// IntersectionType is `A & B`.
type IntersectionType struct {
	Left  Type
	Amp   token.Token
	Right Type
}

// ParenType is `(T)`.
type ParenType struct {
	LParen token.Token
	Type   Type
	RParen token.Token
}

// TypePack is a parenthesized list of types with an optional variadic
// tail, used in return position and generic defaults.
type TypePack struct {
	LParen   token.Token
	Types    Punctuated[Type]
	Variadic *VariadicPack
	RParen   token.Token
}

// GenericPack is `T...`, a reference to a declared generic type pack.
type GenericPack struct {
	Name     token.Token
	Ellipsis token.Token
}

// GenericParam is one parameter of a type declaration's generic list:
// `T`, `T = D`, `T...` or `T... = P`.
type GenericParam struct {
	Name     token.Token
	Ellipsis *token.Token
	Assign   *token.Token
	Default  TypeOrPack
}

// GenericParams is `<T, U = V, W...>`.
type GenericParams struct {
	Lt     token.Token
	Params []GenericParam
	Seps   []token.Token // len(Seps) == len(Params)-1
	Gt     token.Token
}

func (t *NamedType) Span() source.Span {
	span := t.Name.Span
	if t.Args != nil {
		span = span.Cover(t.Args.Gt.Span)
	}
	return span
}

func (t *FieldType) Span() source.Span {
	span := t.Module.Span.Cover(t.Name.Span)
	if t.Args != nil {
		span = span.Cover(t.Args.Gt.Span)
	}
	return span
}

func (t *StringLiteralType) Span() source.Span { return t.Tok.Span }
func (t *ArrayType) Span() source.Span         { return t.LBrace.Span.Cover(t.RBrace.Span) }
func (t *TableType) Span() source.Span         { return t.LBrace.Span.Cover(t.RBrace.Span) }

func (t *FunctionType) Span() source.Span {
	return t.LParen.Span.Cover(t.Return.Span())
}

func (t *OptionalType) Span() source.Span { return t.Type.Span().Cover(t.Question.Span) }
func (t *UnionType) Span() source.Span    { return t.Left.Span().Cover(t.Right.Span()) }
func (t *IntersectionType) Span() source.Span {
	return t.Left.Span().Cover(t.Right.Span())
}
func (t *ParenType) Span() source.Span { return t.LParen.Span.Cover(t.RParen.Span) }

func (t *TypePack) Span() source.Span { return t.LParen.Span.Cover(t.RParen.Span) }
func (t *VariadicPack) Span() source.Span {
	return t.Ellipsis.Span.Cover(t.Type.Span())
}
func (t *GenericPack) Span() source.Span { return t.Name.Span.Cover(t.Ellipsis.Span) }

func (*NamedType) typeNode()         {}
func (*FieldType) typeNode()         {}
func (*StringLiteralType) typeNode() {}
func (*ArrayType) typeNode()         {}
func (*TableType) typeNode()         {}
func (*FunctionType) typeNode()      {}
func (*OptionalType) typeNode()      {}
func (*UnionType) typeNode()         {}
func (*IntersectionType) typeNode()  {}
func (*ParenType) typeNode()         {}

func (*NamedType) typeOrPackNode()         {}
func (*FieldType) typeOrPackNode()         {}
func (*StringLiteralType) typeOrPackNode() {}
func (*ArrayType) typeOrPackNode()         {}
func (*TableType) typeOrPackNode()         {}
func (*FunctionType) typeOrPackNode()      {}
func (*OptionalType) typeOrPackNode()      {}
func (*UnionType) typeOrPackNode()         {}
func (*IntersectionType) typeOrPackNode()  {}
func (*ParenType) typeOrPackNode()         {}
func (*TypePack) typeOrPackNode()          {}
func (*GenericPack) typeOrPackNode()       {}
func (*VariadicPack) typeOrPackNode()      {}
