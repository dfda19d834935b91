package nodes

// BreakStatement is `break`.
type BreakStatement struct {
	Token *Token
}

func (s *BreakStatement) eachToken(visit func(*Token)) {
	if s.Token != nil {
		visit(s.Token)
	}
}

// ContinueStatement is `continue`.
type ContinueStatement struct {
	Token *Token
}

func (s *ContinueStatement) eachToken(visit func(*Token)) {
	if s.Token != nil {
		visit(s.Token)
	}
}

// ReturnTokens carries the `return` keyword and the commas between the
// returned expressions, index synchronized with Expressions.
type ReturnTokens struct {
	Return *Token
	Commas []*Token
}

// ReturnStatement is `return exprs`.
type ReturnStatement struct {
	Expressions []Expression
	Tokens      *ReturnTokens
}

func NewReturnStatement(expressions ...Expression) *ReturnStatement {
	return &ReturnStatement{Expressions: expressions}
}

// RemoveExpression removes the expression at index along with its comma
// token, if one was recorded.
func (s *ReturnStatement) RemoveExpression(index int) {
	if index < 0 || index >= len(s.Expressions) {
		return
	}
	s.Expressions = append(s.Expressions[:index], s.Expressions[index+1:]...)
	if s.Tokens != nil && index < len(s.Tokens.Commas) {
		s.Tokens.Commas = append(s.Tokens.Commas[:index], s.Tokens.Commas[index+1:]...)
	}
}

func (s *ReturnStatement) eachToken(visit func(*Token)) {
	if s.Tokens != nil {
		visitOptional(visit, s.Tokens.Return)
	}
	for i, expression := range s.Expressions {
		expression.eachToken(visit)
		if s.Tokens != nil && i < len(s.Tokens.Commas) && s.Tokens.Commas[i] != nil {
			visit(s.Tokens.Commas[i])
		}
	}
}

func (*BreakStatement) lastStatementNode()    {}
func (*ContinueStatement) lastStatementNode() {}
func (*ReturnStatement) lastStatementNode()   {}
