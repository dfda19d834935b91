package nodes

// Identifier is a name, with an optional token when converted from
// source.
type Identifier struct {
	Name  string
	Token *Token
}

func NewIdentifier(name string) *Identifier {
	return &Identifier{Name: name}
}

func (i *Identifier) eachToken(visit func(*Token)) {
	if i.Token != nil {
		visit(i.Token)
	}
}

func (*Identifier) expressionNode() {}
func (*Identifier) prefixNode()     {}
func (*Identifier) variableNode()   {}

// TypedIdentifier is an identifier with an optional type annotation,
// used for local variables, loop variables and function parameters.
type TypedIdentifier struct {
	Identifier
	Type       Type   // nil when unannotated
	ColonToken *Token // `:` before the type
}

func NewTypedIdentifier(name string) *TypedIdentifier {
	return &TypedIdentifier{Identifier: Identifier{Name: name}}
}

func (t *TypedIdentifier) WithType(ty Type) *TypedIdentifier {
	t.Type = ty
	return t
}

func (t *TypedIdentifier) eachToken(visit func(*Token)) {
	t.Identifier.eachToken(visit)
	if t.ColonToken != nil {
		visit(t.ColonToken)
	}
	if t.Type != nil {
		t.Type.eachToken(visit)
	}
}
