package nodes

// NilExpression is the `nil` literal.
type NilExpression struct {
	Token *Token
}

// TrueExpression is the `true` literal.
type TrueExpression struct {
	Token *Token
}

// FalseExpression is the `false` literal.
type FalseExpression struct {
	Token *Token
}

// VariadicExpression is the `...` marker used in expression position.
type VariadicExpression struct {
	Token *Token
}

func (e *NilExpression) eachToken(visit func(*Token)) {
	if e.Token != nil {
		visit(e.Token)
	}
}

func (e *TrueExpression) eachToken(visit func(*Token)) {
	if e.Token != nil {
		visit(e.Token)
	}
}

func (e *FalseExpression) eachToken(visit func(*Token)) {
	if e.Token != nil {
		visit(e.Token)
	}
}

func (e *VariadicExpression) eachToken(visit func(*Token)) {
	if e.Token != nil {
		visit(e.Token)
	}
}

// StringExpression is a string literal; Value holds the decoded string
// content, not the quoted surface form.
type StringExpression struct {
	Value string
	Token *Token
}

func NewStringExpression(value string) *StringExpression {
	return &StringExpression{Value: value}
}

func (e *StringExpression) eachToken(visit func(*Token)) {
	if e.Token != nil {
		visit(e.Token)
	}
}

type BinaryOperator uint8

const (
	BinaryAnd BinaryOperator = iota
	BinaryOr
	BinaryEqual
	BinaryNotEqual
	BinaryLowerThan
	BinaryLowerOrEqualThan
	BinaryGreaterThan
	BinaryGreaterOrEqualThan
	BinaryPlus
	BinaryMinus
	BinaryAsterisk
	BinarySlash
	BinaryDoubleSlash
	BinaryPercent
	BinaryCaret
	BinaryConcat
)

func (op BinaryOperator) Text() string {
	switch op {
	case BinaryAnd:
		return "and"
	case BinaryOr:
		return "or"
	case BinaryEqual:
		return "=="
	case BinaryNotEqual:
		return "~="
	case BinaryLowerThan:
		return "<"
	case BinaryLowerOrEqualThan:
		return "<="
	case BinaryGreaterThan:
		return ">"
	case BinaryGreaterOrEqualThan:
		return ">="
	case BinaryPlus:
		return "+"
	case BinaryMinus:
		return "-"
	case BinaryAsterisk:
		return "*"
	case BinarySlash:
		return "/"
	case BinaryDoubleSlash:
		return "//"
	case BinaryPercent:
		return "%"
	case BinaryCaret:
		return "^"
	case BinaryConcat:
		return ".."
	default:
		return "?"
	}
}

// BinaryExpression is `left op right`. The operator is a single token,
// so no Tokens struct is needed.
type BinaryExpression struct {
	Operator BinaryOperator
	Left     Expression
	Right    Expression
	Token    *Token
}

func NewBinaryExpression(operator BinaryOperator, left, right Expression) *BinaryExpression {
	return &BinaryExpression{Operator: operator, Left: left, Right: right}
}

func (e *BinaryExpression) eachToken(visit func(*Token)) {
	e.Left.eachToken(visit)
	if e.Token != nil {
		visit(e.Token)
	}
	e.Right.eachToken(visit)
}

type UnaryOperator uint8

const (
	UnaryMinus UnaryOperator = iota
	UnaryNot
	UnaryLength
)

func (op UnaryOperator) Text() string {
	switch op {
	case UnaryMinus:
		return "-"
	case UnaryNot:
		return "not"
	case UnaryLength:
		return "#"
	default:
		return "?"
	}
}

// UnaryExpression is `op operand`.
type UnaryExpression struct {
	Operator   UnaryOperator
	Expression Expression
	Token      *Token
}

func (e *UnaryExpression) eachToken(visit func(*Token)) {
	if e.Token != nil {
		visit(e.Token)
	}
	e.Expression.eachToken(visit)
}

// FunctionExpression is a function literal.
type FunctionExpression struct {
	Body *FunctionBody
}

func (e *FunctionExpression) eachToken(visit func(*Token)) {
	if e.Body.Tokens != nil {
		visitOptional(visit, e.Body.Tokens.Function)
	}
	e.Body.eachToken(visit)
}

type ParentheseTokens struct {
	LeftParenthese  *Token
	RightParenthese *Token
}

// ParentheseExpression is `( expr )`.
type ParentheseExpression struct {
	Expression Expression
	Tokens     *ParentheseTokens
}

func (e *ParentheseExpression) eachToken(visit func(*Token)) {
	if e.Tokens != nil {
		visitOptional(visit, e.Tokens.LeftParenthese)
	}
	e.Expression.eachToken(visit)
	if e.Tokens != nil {
		visitOptional(visit, e.Tokens.RightParenthese)
	}
}

// FieldExpression is `prefix.field`.
type FieldExpression struct {
	Prefix Prefix
	Field  *Identifier
	Token  *Token // the dot
}

func (e *FieldExpression) eachToken(visit func(*Token)) {
	e.Prefix.eachToken(visit)
	if e.Token != nil {
		visit(e.Token)
	}
	e.Field.eachToken(visit)
}

type IndexExpressionTokens struct {
	OpeningBracket *Token
	ClosingBracket *Token
}

// IndexExpression is `prefix[index]`.
type IndexExpression struct {
	Prefix Prefix
	Index  Expression
	Tokens *IndexExpressionTokens
}

func (e *IndexExpression) eachToken(visit func(*Token)) {
	e.Prefix.eachToken(visit)
	if e.Tokens != nil {
		visitOptional(visit, e.Tokens.OpeningBracket)
	}
	e.Index.eachToken(visit)
	if e.Tokens != nil {
		visitOptional(visit, e.Tokens.ClosingBracket)
	}
}

// FunctionCall is `prefix(args)`, `prefix:method(args)`, `prefix "s"` or
// `prefix {t}`. It serves as expression, prefix and statement.
type FunctionCall struct {
	Prefix    Prefix
	Method    *Identifier // nil for plain calls
	Arguments Arguments
	Token     *Token // the method colon
}

func (e *FunctionCall) eachToken(visit func(*Token)) {
	e.Prefix.eachToken(visit)
	if e.Token != nil {
		visit(e.Token)
	}
	if e.Method != nil {
		e.Method.eachToken(visit)
	}
	e.Arguments.eachToken(visit)
}

type ElseIfExpressionBranchTokens struct {
	Elseif *Token
	Then   *Token
}

// ElseIfExpressionBranch is one `elseif cond then value` branch of an
// if-expression.
type ElseIfExpressionBranch struct {
	Condition Expression
	Result    Expression
	Tokens    *ElseIfExpressionBranchTokens
}

func (b *ElseIfExpressionBranch) eachToken(visit func(*Token)) {
	if b.Tokens != nil {
		visitOptional(visit, b.Tokens.Elseif)
	}
	b.Condition.eachToken(visit)
	if b.Tokens != nil {
		visitOptional(visit, b.Tokens.Then)
	}
	b.Result.eachToken(visit)
}

type IfExpressionTokens struct {
	If   *Token
	Then *Token
	Else *Token
}

// IfExpression is `if cond then result (elseif ...)* else other`.
type IfExpression struct {
	Condition  Expression
	Result     Expression
	Branches   []*ElseIfExpressionBranch
	ElseResult Expression
	Tokens     *IfExpressionTokens
}

func (e *IfExpression) eachToken(visit func(*Token)) {
	if e.Tokens != nil {
		visitOptional(visit, e.Tokens.If)
	}
	e.Condition.eachToken(visit)
	if e.Tokens != nil {
		visitOptional(visit, e.Tokens.Then)
	}
	e.Result.eachToken(visit)
	for _, branch := range e.Branches {
		branch.eachToken(visit)
	}
	if e.Tokens != nil {
		visitOptional(visit, e.Tokens.Else)
	}
	e.ElseResult.eachToken(visit)
}

// TypeCastExpression is `expr :: Type`.
type TypeCastExpression struct {
	Expression Expression
	Type       Type
	Token      *Token // the `::`
}

func (e *TypeCastExpression) eachToken(visit func(*Token)) {
	e.Expression.eachToken(visit)
	if e.Token != nil {
		visit(e.Token)
	}
	e.Type.eachToken(visit)
}

func (*NilExpression) expressionNode()            {}
func (*TrueExpression) expressionNode()           {}
func (*FalseExpression) expressionNode()          {}
func (*VariadicExpression) expressionNode()       {}
func (*NumberExpression) expressionNode()         {}
func (*StringExpression) expressionNode()         {}
func (*InterpolatedStringExpression) expressionNode() {}
func (*BinaryExpression) expressionNode()         {}
func (*UnaryExpression) expressionNode()          {}
func (*FunctionExpression) expressionNode()       {}
func (*ParentheseExpression) expressionNode()     {}
func (*FieldExpression) expressionNode()          {}
func (*IndexExpression) expressionNode()          {}
func (*FunctionCall) expressionNode()             {}
func (*TableExpression) expressionNode()          {}
func (*IfExpression) expressionNode()             {}
func (*TypeCastExpression) expressionNode()       {}

func (*ParentheseExpression) prefixNode() {}
func (*FieldExpression) prefixNode()      {}
func (*IndexExpression) prefixNode()      {}
func (*FunctionCall) prefixNode()         {}

func (*FieldExpression) variableNode() {}
func (*IndexExpression) variableNode() {}
