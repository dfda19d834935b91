package cst

import (
	"luamend/internal/source"
	"luamend/internal/token"
)

type NilExpr struct{ Tok token.Token }
type TrueExpr struct{ Tok token.Token }
type FalseExpr struct{ Tok token.Token }
type VarargExpr struct{ Tok token.Token }
type NumberExpr struct{ Tok token.Token }
type StringExpr struct{ Tok token.Token }

// InterpSegment is one piece of an interpolated string: either a literal
// segment token (InterpFull/Begin/Middle/End, delimiters included in the
// span) or an embedded expression.
type InterpSegment struct {
	Literal *token.Token
	Value   Expr
}

type InterpStringExpr struct {
	Segments []InterpSegment
}

type FunctionExpr struct {
	Function token.Token
	Body     *FuncBody
}

// Prefix is the head of a prefix-expression chain: a bare name or a
// parenthesized expression. Literals can never head a chain.
type Prefix interface {
	Span() source.Span
	prefixNode()
}

type PrefixName struct{ Name token.Token }

type PrefixParen struct{ Paren *ParenExpr }

// Suffix is one link of a prefix-expression chain.
type Suffix interface {
	Span() source.Span
	suffixNode()
}

type SuffixField struct {
	Dot  token.Token
	Name token.Token
}

type SuffixIndex struct {
	LBracket token.Token
	Index    Expr
	RBracket token.Token
}

type SuffixCall struct {
	Args Args
}

type SuffixMethodCall struct {
	Colon token.Token
	Name  token.Token
	Args  Args
}

// Args is a call's argument form: parenthesized list, single string, or
// single table constructor.
type Args interface {
	Span() source.Span
	argsNode()
}

type ParenArgs struct {
	LParen token.Token
	Values Punctuated[Expr]
	RParen token.Token
}

type StringArgs struct{ Value token.Token }

type TableArgs struct{ Table *TableExpr }

// PrefixExpr is a prefix head followed by field/index/call suffixes.
type PrefixExpr struct {
	Prefix   Prefix
	Suffixes []Suffix
}

type ParenExpr struct {
	LParen token.Token
	Value  Expr
	RParen token.Token
}

// TableField is one entry of a table constructor.
type TableField interface {
	Span() source.Span
	tableFieldNode()
}

type FieldNoKey struct{ Value Expr }

type FieldName struct {
	Name   token.Token
	Assign token.Token
	Value  Expr
}

type FieldIndex struct {
	LBracket token.Token
	Key      Expr
	RBracket token.Token
	Assign   token.Token
	Value    Expr
}

type TableExpr struct {
	LBrace token.Token
	Fields []TableField
	Seps   []token.Token // len(Seps) <= len(Fields)
	RBrace token.Token
}

type BinaryExpr struct {
	Left  Expr
	Op    token.Token
	Right Expr
}

type UnaryExpr struct {
	Op      token.Token
	Operand Expr
}

type ElseIfExprBranch struct {
	ElseIf token.Token
	Cond   Expr
	Then   token.Token
	Value  Expr
}

type IfExpr struct {
	If        token.Token
	Cond      Expr
	Then      token.Token
	Value     Expr
	ElseIfs   []ElseIfExprBranch
	Else      token.Token
	ElseValue Expr
}

type TypeCastExpr struct {
	Value      Expr
	ColonColon token.Token
	Type       Type
}

func (e *NilExpr) Span() source.Span    { return e.Tok.Span }
func (e *TrueExpr) Span() source.Span   { return e.Tok.Span }
func (e *FalseExpr) Span() source.Span  { return e.Tok.Span }
func (e *VarargExpr) Span() source.Span { return e.Tok.Span }
func (e *NumberExpr) Span() source.Span { return e.Tok.Span }
func (e *StringExpr) Span() source.Span { return e.Tok.Span }

func (e *InterpStringExpr) Span() source.Span {
	if len(e.Segments) == 0 {
		return source.Span{}
	}
	first := e.Segments[0]
	last := e.Segments[len(e.Segments)-1]
	span := segmentSpan(first)
	return span.Cover(segmentSpan(last))
}

func segmentSpan(seg InterpSegment) source.Span {
	if seg.Literal != nil {
		return seg.Literal.Span
	}
	return seg.Value.Span()
}

func (e *FunctionExpr) Span() source.Span {
	return e.Function.Span.Cover(e.Body.End.Span)
}

func (p *PrefixName) Span() source.Span  { return p.Name.Span }
func (p *PrefixParen) Span() source.Span { return p.Paren.Span() }

func (s *SuffixField) Span() source.Span { return s.Dot.Span.Cover(s.Name.Span) }
func (s *SuffixIndex) Span() source.Span { return s.LBracket.Span.Cover(s.RBracket.Span) }
func (s *SuffixCall) Span() source.Span  { return s.Args.Span() }
func (s *SuffixMethodCall) Span() source.Span {
	return s.Colon.Span.Cover(s.Args.Span())
}

func (a *ParenArgs) Span() source.Span  { return a.LParen.Span.Cover(a.RParen.Span) }
func (a *StringArgs) Span() source.Span { return a.Value.Span }
func (a *TableArgs) Span() source.Span  { return a.Table.Span() }

func (e *PrefixExpr) Span() source.Span {
	span := e.Prefix.Span()
	if n := len(e.Suffixes); n > 0 {
		span = span.Cover(e.Suffixes[n-1].Span())
	}
	return span
}

func (e *ParenExpr) Span() source.Span { return e.LParen.Span.Cover(e.RParen.Span) }

func (f *FieldNoKey) Span() source.Span { return f.Value.Span() }
func (f *FieldName) Span() source.Span  { return f.Name.Span.Cover(f.Value.Span()) }
func (f *FieldIndex) Span() source.Span {
	return f.LBracket.Span.Cover(f.Value.Span())
}

func (e *TableExpr) Span() source.Span  { return e.LBrace.Span.Cover(e.RBrace.Span) }
func (e *BinaryExpr) Span() source.Span { return e.Left.Span().Cover(e.Right.Span()) }
func (e *UnaryExpr) Span() source.Span  { return e.Op.Span.Cover(e.Operand.Span()) }
func (e *IfExpr) Span() source.Span     { return e.If.Span.Cover(e.ElseValue.Span()) }
func (e *TypeCastExpr) Span() source.Span {
	return e.Value.Span().Cover(e.Type.Span())
}

func (*NilExpr) exprNode()          {}
func (*TrueExpr) exprNode()         {}
func (*FalseExpr) exprNode()        {}
func (*VarargExpr) exprNode()       {}
func (*NumberExpr) exprNode()       {}
func (*StringExpr) exprNode()       {}
func (*InterpStringExpr) exprNode() {}
func (*FunctionExpr) exprNode()     {}
func (*PrefixExpr) exprNode()       {}
func (*ParenExpr) exprNode()        {}
func (*TableExpr) exprNode()        {}
func (*BinaryExpr) exprNode()       {}
func (*UnaryExpr) exprNode()        {}
func (*IfExpr) exprNode()           {}
func (*TypeCastExpr) exprNode()     {}

func (*PrefixName) prefixNode()  {}
func (*PrefixParen) prefixNode() {}

func (*SuffixField) suffixNode()      {}
func (*SuffixIndex) suffixNode()      {}
func (*SuffixCall) suffixNode()       {}
func (*SuffixMethodCall) suffixNode() {}

func (*ParenArgs) argsNode()  {}
func (*StringArgs) argsNode() {}
func (*TableArgs) argsNode()  {}

func (*FieldNoKey) tableFieldNode() {}
func (*FieldName) tableFieldNode()  {}
func (*FieldIndex) tableFieldNode() {}
