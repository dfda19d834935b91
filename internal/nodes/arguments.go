package nodes

type TupleArgumentsTokens struct {
	OpeningParenthese *Token
	ClosingParenthese *Token
	// Commas between values, in sync with the value list.
	Commas []*Token
}

// TupleArguments is a parenthesized call argument list.
type TupleArguments struct {
	Values []Expression
	Tokens *TupleArgumentsTokens
}

func NewTupleArguments(values ...Expression) *TupleArguments {
	return &TupleArguments{Values: values}
}

// PushValue appends an argument, keeping the comma list in sync when
// token data is held.
func (a *TupleArguments) PushValue(value Expression) {
	if a.Tokens != nil && len(a.Values) > 0 && len(a.Tokens.Commas) < len(a.Values) {
		a.Tokens.Commas = append(a.Tokens.Commas, TokenFromContent(","))
	}
	a.Values = append(a.Values, value)
}

// RemoveValue deletes the argument at index and its associated comma.
func (a *TupleArguments) RemoveValue(index int) {
	if index < 0 || index >= len(a.Values) {
		return
	}
	a.Values = append(a.Values[:index], a.Values[index+1:]...)
	if a.Tokens == nil {
		return
	}
	if index < len(a.Tokens.Commas) {
		a.Tokens.Commas = append(a.Tokens.Commas[:index], a.Tokens.Commas[index+1:]...)
	} else if len(a.Tokens.Commas) > 0 && len(a.Tokens.Commas) >= len(a.Values) {
		a.Tokens.Commas = a.Tokens.Commas[:len(a.Tokens.Commas)-1]
	}
}

func (a *TupleArguments) eachToken(visit func(*Token)) {
	if a.Tokens == nil {
		for _, value := range a.Values {
			value.eachToken(visit)
		}
		return
	}
	visitOptional(visit, a.Tokens.OpeningParenthese)
	for i, value := range a.Values {
		value.eachToken(visit)
		if i < len(a.Tokens.Commas) {
			visitOptional(visit, a.Tokens.Commas[i])
		}
	}
	visitOptional(visit, a.Tokens.ClosingParenthese)
}

func (*TupleArguments) argumentsNode()   {}
func (*StringExpression) argumentsNode() {}
func (*TableExpression) argumentsNode()  {}
