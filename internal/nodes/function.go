package nodes

// FunctionBodyTokens carries the punctuation shared by every function
// form. ParameterCommas is index-synchronized with the parameter list
// (one comma per parameter except the last).
type FunctionBodyTokens struct {
	Function       *Token
	OpeningParen   *Token
	ClosingParen   *Token
	End            *Token
	ParameterCommas []*Token
	VariadicToken  *Token // `...`
	VariadicColon  *Token // `:` before the variadic type
	ReturnColon    *Token // `:` before the return type
}

// FunctionBody is the parameter list, optional variadic marker, optional
// return type and block shared by function statements, local functions
// and function expressions.
type FunctionBody struct {
	Parameters   []*TypedIdentifier
	IsVariadic   bool
	VariadicType Type       // nil unless the variadic marker is typed
	ReturnType   TypeOrPack // nil when unannotated
	Block        *Block
	Tokens       *FunctionBodyTokens
}

func NewFunctionBody(block *Block) *FunctionBody {
	return &FunctionBody{Block: block}
}

func (f *FunctionBody) PushParameter(parameter *TypedIdentifier) {
	f.Parameters = append(f.Parameters, parameter)
}

// eachToken walks every token of the body except the `function` keyword,
// which the owning node visits in its own position (it precedes the name
// in statements but nothing in expressions).
func (f *FunctionBody) eachToken(visit func(*Token)) {
	if f.Tokens != nil {
		visitOptional(visit, f.Tokens.OpeningParen)
	}
	for _, parameter := range f.Parameters {
		parameter.eachToken(visit)
	}
	if f.Tokens != nil {
		for _, comma := range f.Tokens.ParameterCommas {
			if comma != nil {
				visit(comma)
			}
		}
		visitOptional(visit, f.Tokens.VariadicToken, f.Tokens.VariadicColon)
	}
	if f.VariadicType != nil {
		f.VariadicType.eachToken(visit)
	}
	if f.Tokens != nil {
		visitOptional(visit, f.Tokens.ClosingParen, f.Tokens.ReturnColon)
	}
	if f.ReturnType != nil {
		f.ReturnType.eachToken(visit)
	}
	f.Block.eachToken(visit)
	if f.Tokens != nil {
		visitOptional(visit, f.Tokens.End)
	}
}

func visitOptional(visit func(*Token), tokens ...*Token) {
	for _, t := range tokens {
		if t != nil {
			visit(t)
		}
	}
}

// FunctionNameTokens carries the dots between name parts (index
// synchronized with FieldNames) and the method colon.
type FunctionNameTokens struct {
	Periods []*Token
	Colon   *Token
}

// FunctionName is the dotted, optionally method-terminated name of a
// function declaration: `a.b.c:m`.
type FunctionName struct {
	Name       *Identifier
	FieldNames []*Identifier
	Method     *Identifier // nil when not a method definition
	Tokens     *FunctionNameTokens
}

func (n *FunctionName) eachToken(visit func(*Token)) {
	n.Name.eachToken(visit)
	for i, field := range n.FieldNames {
		if n.Tokens != nil && i < len(n.Tokens.Periods) && n.Tokens.Periods[i] != nil {
			visit(n.Tokens.Periods[i])
		}
		field.eachToken(visit)
	}
	if n.Tokens != nil && n.Tokens.Colon != nil {
		visit(n.Tokens.Colon)
	}
	if n.Method != nil {
		n.Method.eachToken(visit)
	}
}
