package nodes

type TypeArgumentsTokens struct {
	OpeningChevron *Token
	ClosingChevron *Token
	Commas         []*Token
}

// TypeArguments is an explicit `<T, U>` argument list on a named type.
type TypeArguments struct {
	Arguments []TypeOrPack
	Tokens    *TypeArgumentsTokens
}

func (t *TypeArguments) eachToken(visit func(*Token)) {
	if t.Tokens == nil {
		for _, arg := range t.Arguments {
			arg.eachToken(visit)
		}
		return
	}
	visitOptional(visit, t.Tokens.OpeningChevron)
	for i, arg := range t.Arguments {
		arg.eachToken(visit)
		if i < len(t.Tokens.Commas) {
			visitOptional(visit, t.Tokens.Commas[i])
		}
	}
	visitOptional(visit, t.Tokens.ClosingChevron)
}

// TypeName is a plain named type with optional arguments, `Name<...>`.
type TypeName struct {
	Name      *Identifier
	Arguments *TypeArguments // nil when absent
}

func (t *TypeName) eachToken(visit func(*Token)) {
	t.Name.eachToken(visit)
	if t.Arguments != nil {
		t.Arguments.eachToken(visit)
	}
}

// TypeField is a qualified `module.Name<...>` type.
type TypeField struct {
	Module *Identifier
	Type   *TypeName
	Token  *Token // the dot
}

func (t *TypeField) eachToken(visit func(*Token)) {
	t.Module.eachToken(visit)
	if t.Token != nil {
		visit(t.Token)
	}
	t.Type.eachToken(visit)
}

// StringType is a string literal used as a type.
type StringType struct {
	Value string
	Token *Token
}

func (t *StringType) eachToken(visit func(*Token)) {
	if t.Token != nil {
		visit(t.Token)
	}
}

type ArrayTypeTokens struct {
	OpeningBrace *Token
	ClosingBrace *Token
}

// ArrayType is `{ T }`.
type ArrayType struct {
	ElementType Type
	Tokens      *ArrayTypeTokens
}

func (t *ArrayType) eachToken(visit func(*Token)) {
	if t.Tokens != nil {
		visitOptional(visit, t.Tokens.OpeningBrace)
	}
	t.ElementType.eachToken(visit)
	if t.Tokens != nil {
		visitOptional(visit, t.Tokens.ClosingBrace)
	}
}

// TablePropertyType is a `name: T` entry of a table type.
type TablePropertyType struct {
	Property *Identifier
	Type     Type
	Token    *Token // the colon
}

func (e *TablePropertyType) eachToken(visit func(*Token)) {
	e.Property.eachToken(visit)
	if e.Token != nil {
		visit(e.Token)
	}
	e.Type.eachToken(visit)
}

type TableIndexerTypeTokens struct {
	OpeningBracket *Token
	ClosingBracket *Token
	Colon          *Token
}

// TableIndexerType is a `[K]: V` entry of a table type.
type TableIndexerType struct {
	KeyType   Type
	ValueType Type
	Tokens    *TableIndexerTypeTokens
}

func (e *TableIndexerType) eachToken(visit func(*Token)) {
	if e.Tokens != nil {
		visitOptional(visit, e.Tokens.OpeningBracket)
	}
	e.KeyType.eachToken(visit)
	if e.Tokens != nil {
		visitOptional(visit, e.Tokens.ClosingBracket, e.Tokens.Colon)
	}
	e.ValueType.eachToken(visit)
}

// TableTypeEntry is one entry of a table type.
type TableTypeEntry interface {
	Node
	tableTypeEntryNode()
}

func (*TablePropertyType) tableTypeEntryNode() {}
func (*TableIndexerType) tableTypeEntryNode()  {}

type TableTypeTokens struct {
	OpeningBrace *Token
	ClosingBrace *Token
	Separators   []*Token
}

// TableType is `{ name: T, [K]: V, ... }`.
type TableType struct {
	Entries []TableTypeEntry
	Tokens  *TableTypeTokens
}

func (t *TableType) eachToken(visit func(*Token)) {
	if t.Tokens == nil {
		for _, entry := range t.Entries {
			entry.eachToken(visit)
		}
		return
	}
	visitOptional(visit, t.Tokens.OpeningBrace)
	for i, entry := range t.Entries {
		entry.eachToken(visit)
		if i < len(t.Tokens.Separators) {
			visitOptional(visit, t.Tokens.Separators[i])
		}
	}
	visitOptional(visit, t.Tokens.ClosingBrace)
}

// FunctionTypeArgument is one argument of a function type, with an
// optional name label.
type FunctionTypeArgument struct {
	Name  *Identifier // nil when unnamed
	Type  Type
	Token *Token // the colon after the name
}

func (a *FunctionTypeArgument) eachToken(visit func(*Token)) {
	if a.Name != nil {
		a.Name.eachToken(visit)
	}
	if a.Token != nil {
		visit(a.Token)
	}
	a.Type.eachToken(visit)
}

type FunctionTypeTokens struct {
	OpeningParenthese *Token
	ClosingParenthese *Token
	Arrow             *Token
	Commas            []*Token
	VariadicComma     *Token
}

// FunctionType is `(args...) -> R`.
type FunctionType struct {
	Arguments    []*FunctionTypeArgument
	VariadicType TypeOrPack // nil when not variadic
	ReturnType   TypeOrPack
	Tokens       *FunctionTypeTokens
}

func (t *FunctionType) eachToken(visit func(*Token)) {
	if t.Tokens != nil {
		visitOptional(visit, t.Tokens.OpeningParenthese)
	}
	for i, arg := range t.Arguments {
		arg.eachToken(visit)
		if t.Tokens != nil && i < len(t.Tokens.Commas) {
			visitOptional(visit, t.Tokens.Commas[i])
		}
	}
	if t.VariadicType != nil {
		if t.Tokens != nil {
			visitOptional(visit, t.Tokens.VariadicComma)
		}
		t.VariadicType.eachToken(visit)
	}
	if t.Tokens != nil {
		visitOptional(visit, t.Tokens.ClosingParenthese, t.Tokens.Arrow)
	}
	t.ReturnType.eachToken(visit)
}

// OptionalType is `T?`.
type OptionalType struct {
	InnerType Type
	Token     *Token // the question mark
}

func (t *OptionalType) eachToken(visit func(*Token)) {
	t.InnerType.eachToken(visit)
	if t.Token != nil {
		visit(t.Token)
	}
}

// UnionType is `A | B`, left-nested for longer chains.
type UnionType struct {
	Left  Type
	Right Type
	Token *Token // the pipe
}

func (t *UnionType) eachToken(visit func(*Token)) {
	t.Left.eachToken(visit)
	if t.Token != nil {
		visit(t.Token)
	}
	t.Right.eachToken(visit)
}

// IntersectionType is `A & B`, left-nested for longer chains.
type IntersectionType struct {
	Left  Type
	Right Type
	Token *Token // the ampersand
}

func (t *IntersectionType) eachToken(visit func(*Token)) {
	t.Left.eachToken(visit)
	if t.Token != nil {
		visit(t.Token)
	}
	t.Right.eachToken(visit)
}

// ParentheseType is `( T )`.
type ParentheseType struct {
	InnerType Type
	Tokens    *ParentheseTokens
}

func (t *ParentheseType) eachToken(visit func(*Token)) {
	if t.Tokens != nil {
		visitOptional(visit, t.Tokens.LeftParenthese)
	}
	t.InnerType.eachToken(visit)
	if t.Tokens != nil {
		visitOptional(visit, t.Tokens.RightParenthese)
	}
}

type TypePackTokens struct {
	LeftParenthese  *Token
	RightParenthese *Token
	Commas          []*Token
}

// TypePack is a parenthesized list of types used in pack position,
// `(A, B, ...C)`.
type TypePack struct {
	Types        []Type
	VariadicType TypeOrPack // nil when absent
	Tokens       *TypePackTokens
}

func (t *TypePack) eachToken(visit func(*Token)) {
	if t.Tokens != nil {
		visitOptional(visit, t.Tokens.LeftParenthese)
	}
	for i, ty := range t.Types {
		ty.eachToken(visit)
		if t.Tokens != nil && i < len(t.Tokens.Commas) {
			visitOptional(visit, t.Tokens.Commas[i])
		}
	}
	if t.VariadicType != nil {
		t.VariadicType.eachToken(visit)
	}
	if t.Tokens != nil {
		visitOptional(visit, t.Tokens.RightParenthese)
	}
}

// VariadicTypePack is `...T`.
type VariadicTypePack struct {
	Type  Type
	Token *Token // the ellipse
}

func (t *VariadicTypePack) eachToken(visit func(*Token)) {
	if t.Token != nil {
		visit(t.Token)
	}
	t.Type.eachToken(visit)
}

// GenericTypePack is `T...`.
type GenericTypePack struct {
	Name  *Identifier
	Token *Token // the ellipse
}

func (t *GenericTypePack) eachToken(visit func(*Token)) {
	t.Name.eachToken(visit)
	if t.Token != nil {
		visit(t.Token)
	}
}

// GenericParameter is one declared generic parameter, either a plain
// name or a generic type pack, optionally with a default.
type GenericParameter struct {
	Name    *Identifier
	IsPack  bool
	Default TypeOrPack // nil when absent
	// EllipseToken is the `...` when IsPack; EqualToken the default `=`.
	EllipseToken *Token
	EqualToken   *Token
}

func (p *GenericParameter) eachToken(visit func(*Token)) {
	p.Name.eachToken(visit)
	if p.EllipseToken != nil {
		visit(p.EllipseToken)
	}
	if p.Default != nil {
		if p.EqualToken != nil {
			visit(p.EqualToken)
		}
		p.Default.eachToken(visit)
	}
}

type GenericParametersTokens struct {
	OpeningChevron *Token
	ClosingChevron *Token
	Commas         []*Token
}

// GenericParameters is the `<T, U...>` list on a type declaration.
type GenericParameters struct {
	Parameters []*GenericParameter
	Tokens     *GenericParametersTokens
}

func (g *GenericParameters) eachToken(visit func(*Token)) {
	if g.Tokens != nil {
		visitOptional(visit, g.Tokens.OpeningChevron)
	}
	for i, param := range g.Parameters {
		param.eachToken(visit)
		if g.Tokens != nil && i < len(g.Tokens.Commas) {
			visitOptional(visit, g.Tokens.Commas[i])
		}
	}
	if g.Tokens != nil {
		visitOptional(visit, g.Tokens.ClosingChevron)
	}
}

func (*TypeName) typeNode()         {}
func (*TypeField) typeNode()        {}
func (*StringType) typeNode()       {}
func (*ArrayType) typeNode()        {}
func (*TableType) typeNode()        {}
func (*FunctionType) typeNode()     {}
func (*OptionalType) typeNode()     {}
func (*UnionType) typeNode()        {}
func (*IntersectionType) typeNode() {}
func (*ParentheseType) typeNode()   {}

func (*TypeName) typeOrPackNode()         {}
func (*TypeField) typeOrPackNode()        {}
func (*StringType) typeOrPackNode()       {}
func (*ArrayType) typeOrPackNode()        {}
func (*TableType) typeOrPackNode()        {}
func (*FunctionType) typeOrPackNode()     {}
func (*OptionalType) typeOrPackNode()     {}
func (*UnionType) typeOrPackNode()        {}
func (*IntersectionType) typeOrPackNode() {}
func (*ParentheseType) typeOrPackNode()   {}
func (*TypePack) typeOrPackNode()         {}
func (*VariadicTypePack) typeOrPackNode() {}
func (*GenericTypePack) typeOrPackNode()  {}
