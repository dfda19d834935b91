package cst

import (
	"luamend/internal/source"
	"luamend/internal/token"
)

// TypedName is an identifier with an optional `: Type` annotation.
type TypedName struct {
	Name  token.Token
	Colon *token.Token
	Type  Type
}

// LocalAssignStmt is `local a, b = 1, 2`.
type LocalAssignStmt struct {
	Local  token.Token
	Names  Punctuated[TypedName]
	Assign *token.Token
	Values Punctuated[Expr]
}

// AssignStmt is `a.b, c[1] = x, y`. Vars must resolve to variables; the
// converter rejects targets ending in a call suffix.
type AssignStmt struct {
	Vars   Punctuated[*PrefixExpr]
	Assign token.Token
	Values Punctuated[Expr]
}

// CompoundAssignStmt is `a += 1` and friends.
type CompoundAssignStmt struct {
	Var   *PrefixExpr
	Op    token.Token
	Value Expr
}

// CallStmt is a bare call used as a statement.
type CallStmt struct {
	Call *PrefixExpr
}

type DoStmt struct {
	Do   token.Token
	Body *Block
	End  token.Token
}

type WhileStmt struct {
	While token.Token
	Cond  Expr
	Do    token.Token
	Body  *Block
	End   token.Token
}

type RepeatStmt struct {
	Repeat token.Token
	Body   *Block
	Until  token.Token
	Cond   Expr
}

type ElseIfClause struct {
	ElseIf token.Token
	Cond   Expr
	Then   token.Token
	Body   *Block
}

type ElseClause struct {
	Else token.Token
	Body *Block
}

type IfStmt struct {
	If      token.Token
	Cond    Expr
	Then    token.Token
	Body    *Block
	ElseIfs []ElseIfClause
	Else    *ElseClause
	End     token.Token
}

type NumericForStmt struct {
	For       token.Token
	Name      TypedName
	Assign    token.Token
	Start     Expr
	CommaOne  token.Token
	Limit     Expr
	CommaTwo  *token.Token
	Step      Expr
	Do        token.Token
	Body      *Block
	End       token.Token
}

type GenericForStmt struct {
	For    token.Token
	Names  Punctuated[TypedName]
	In     token.Token
	Values Punctuated[Expr]
	Do     token.Token
	Body   *Block
	End    token.Token
}

// FunctionName is the dotted (and optionally method) name in a function
// declaration: `a.b.c:m`. Dots is parallel to Names[1:].
type FunctionName struct {
	Names  []token.Token
	Dots   []token.Token
	Colon  *token.Token
	Method *token.Token
}

type FunctionDeclStmt struct {
	Function token.Token
	Name     FunctionName
	Body     *FuncBody
}

type LocalFunctionStmt struct {
	Local    token.Token
	Function token.Token
	Name     token.Token
	Body     *FuncBody
}

// TypeDeclStmt is `type Name<params> = Type` with an optional `export`.
// Both `export` and `type` lex as identifiers; the parser recognizes
// them contextually.
type TypeDeclStmt struct {
	Export   *token.Token
	TypeTok  token.Token
	Name     token.Token
	Generics *GenericParams
	Assign   token.Token
	Type     Type
}

// Param is one function parameter: a (possibly typed) name, or the
// variadic marker with an optional type.
type Param struct {
	Name     *token.Token
	Ellipsis *token.Token
	Colon    *token.Token
	Type     Type
}

// FuncBody is the shared parameter list + block of every function form.
type FuncBody struct {
	LParen      token.Token
	Params      Punctuated[Param]
	RParen      token.Token
	ReturnColon *token.Token
	Return      TypeOrPack
	Body        *Block
	End         token.Token
}

type BreakStmt struct {
	Tok token.Token
}

type ContinueStmt struct {
	Tok token.Token
}

type ReturnStmt struct {
	Return token.Token
	Values Punctuated[Expr]
}

func (s *LocalAssignStmt) Span() source.Span {
	end := s.Local.Span
	if s.Values.Len() > 0 {
		end = end.Cover(s.Values.Items[s.Values.Len()-1].Span())
	} else if s.Names.Len() > 0 {
		last := s.Names.Items[s.Names.Len()-1]
		end = end.Cover(last.Name.Span)
		if last.Type != nil {
			end = end.Cover(last.Type.Span())
		}
	}
	return end
}

func (s *AssignStmt) Span() source.Span {
	span := s.Assign.Span
	if s.Vars.Len() > 0 {
		span = span.Cover(s.Vars.Items[0].Span())
	}
	if s.Values.Len() > 0 {
		span = span.Cover(s.Values.Items[s.Values.Len()-1].Span())
	}
	return span
}

func (s *CompoundAssignStmt) Span() source.Span {
	return s.Var.Span().Cover(s.Value.Span())
}

func (s *CallStmt) Span() source.Span      { return s.Call.Span() }
func (s *DoStmt) Span() source.Span        { return s.Do.Span.Cover(s.End.Span) }
func (s *WhileStmt) Span() source.Span     { return s.While.Span.Cover(s.End.Span) }
func (s *RepeatStmt) Span() source.Span    { return s.Repeat.Span.Cover(s.Cond.Span()) }
func (s *IfStmt) Span() source.Span        { return s.If.Span.Cover(s.End.Span) }
func (s *NumericForStmt) Span() source.Span { return s.For.Span.Cover(s.End.Span) }
func (s *GenericForStmt) Span() source.Span { return s.For.Span.Cover(s.End.Span) }
func (s *FunctionDeclStmt) Span() source.Span {
	return s.Function.Span.Cover(s.Body.End.Span)
}
func (s *LocalFunctionStmt) Span() source.Span {
	return s.Local.Span.Cover(s.Body.End.Span)
}
func (s *TypeDeclStmt) Span() source.Span {
	start := s.TypeTok.Span
	if s.Export != nil {
		start = s.Export.Span
	}
	return start.Cover(s.Type.Span())
}

func (s *BreakStmt) Span() source.Span    { return s.Tok.Span }
func (s *ContinueStmt) Span() source.Span { return s.Tok.Span }
func (s *ReturnStmt) Span() source.Span {
	span := s.Return.Span
	if s.Values.Len() > 0 {
		span = span.Cover(s.Values.Items[s.Values.Len()-1].Span())
	}
	return span
}

func (*LocalAssignStmt) stmtNode()   {}
func (*AssignStmt) stmtNode()        {}
func (*CompoundAssignStmt) stmtNode() {}
func (*CallStmt) stmtNode()          {}
func (*DoStmt) stmtNode()            {}
func (*WhileStmt) stmtNode()         {}
func (*RepeatStmt) stmtNode()        {}
func (*IfStmt) stmtNode()            {}
func (*NumericForStmt) stmtNode()    {}
func (*GenericForStmt) stmtNode()    {}
func (*FunctionDeclStmt) stmtNode()  {}
func (*LocalFunctionStmt) stmtNode() {}
func (*TypeDeclStmt) stmtNode()      {}

func (*BreakStmt) lastStmtNode()    {}
func (*ContinueStmt) lastStmtNode() {}
func (*ReturnStmt) lastStmtNode()   {}
