package nodes

// InterpSegment is one piece of an interpolated string: either a literal
// string run or an embedded expression.
type InterpSegment interface {
	Node
	interpSegmentNode()
}

// StringSegment is a literal run inside an interpolated string. Value
// holds the decoded content.
type StringSegment struct {
	Value string
	Token *Token
}

func (s *StringSegment) eachToken(visit func(*Token)) {
	if s.Token != nil {
		visit(s.Token)
	}
}

type ValueSegmentTokens struct {
	OpeningBrace *Token
	ClosingBrace *Token
}

// ValueSegment is an embedded `{ expr }` inside an interpolated string.
type ValueSegment struct {
	Expression Expression
	Tokens     *ValueSegmentTokens
}

func (s *ValueSegment) eachToken(visit func(*Token)) {
	if s.Tokens != nil {
		visitOptional(visit, s.Tokens.OpeningBrace)
	}
	s.Expression.eachToken(visit)
	if s.Tokens != nil {
		visitOptional(visit, s.Tokens.ClosingBrace)
	}
}

func (*StringSegment) interpSegmentNode() {}
func (*ValueSegment) interpSegmentNode()  {}

type InterpolatedStringTokens struct {
	OpeningTick *Token
	ClosingTick *Token
}

// InterpolatedStringExpression is a backtick string with embedded
// expressions.
type InterpolatedStringExpression struct {
	Segments []InterpSegment
	Tokens   *InterpolatedStringTokens
}

func (e *InterpolatedStringExpression) eachToken(visit func(*Token)) {
	if e.Tokens != nil {
		visitOptional(visit, e.Tokens.OpeningTick)
	}
	for _, segment := range e.Segments {
		segment.eachToken(visit)
	}
	if e.Tokens != nil {
		visitOptional(visit, e.Tokens.ClosingTick)
	}
}
