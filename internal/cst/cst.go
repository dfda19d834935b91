// Package cst defines the concrete syntax tree produced by the parser.
// Every keyword and punctuation mark is present as a token, so the tree
// carries enough information to reproduce the source byte-for-byte. The
// AST converter consumes this tree; nothing else mutates it.
package cst

import (
	"luamend/internal/source"
	"luamend/internal/token"
)

// Punctuated is a separator-delimited list. Seps holds the separator
// tokens between items; a trailing separator (allowed in table
// constructors) makes len(Seps) == len(Items).
type Punctuated[T any] struct {
	Items []T
	Seps  []token.Token
}

func (p Punctuated[T]) Len() int {
	return len(p.Items)
}

// Block is a sequence of statements, each with an optional semicolon,
// plus an optional trailing last-statement.
type Block struct {
	Stmts         []Stmt
	Semicolons    []*token.Token // parallel to Stmts
	Last          LastStmt
	LastSemicolon *token.Token
	// Eof is the end-of-input token, set on a chunk's top block only.
	// Its leading trivia holds the file tail.
	Eof *token.Token
}

// Stmt is implemented by every statement production.
type Stmt interface {
	Span() source.Span
	stmtNode()
}

// LastStmt is implemented by break, continue and return.
type LastStmt interface {
	Span() source.Span
	lastStmtNode()
}

// Expr is implemented by every expression production.
type Expr interface {
	Span() source.Span
	exprNode()
}

// Type is implemented by every type-annotation production.
type Type interface {
	Span() source.Span
	typeNode()
}

// TypeOrPack appears where either a single type, a parenthesized type
// pack or a variadic pack is allowed (return types, generic defaults).
type TypeOrPack interface {
	Span() source.Span
	typeOrPackNode()
}
