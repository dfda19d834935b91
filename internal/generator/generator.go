// Package generator renders a node tree back to source text. Nodes
// converted with token fidelity replay their recorded tokens (reading
// referenced tokens from the original source), which reproduces the
// input byte for byte. Nodes without tokens fall back to canonical text
// with minimal spacing, so freshly synthesized code prints correctly
// next to replayed code.
package generator

import (
	"strings"

	"luamend/internal/nodes"
)

// Generator accumulates output for one render. src is the text the
// tree's referenced tokens point into; it may be empty for trees that
// only carry owned tokens.
type Generator struct {
	src  string
	out  strings.Builder
	last byte
}

func New(src string) *Generator {
	return &Generator{src: src}
}

// Generate renders a whole block and returns the text.
func (g *Generator) Generate(block *nodes.Block) string {
	g.writeBlock(block)
	return g.out.String()
}

// raw appends text verbatim.
func (g *Generator) raw(text string) {
	if text == "" {
		return
	}
	g.out.WriteString(text)
	g.last = text[len(text)-1]
}

// symbol appends synthesized text, inserting a space when gluing it to
// the previous output would change how it lexes.
func (g *Generator) symbol(text string) {
	if text == "" {
		return
	}
	if needsSpaceBetween(g.last, text[0]) {
		g.out.WriteByte(' ')
	}
	g.raw(text)
}

func needsSpaceBetween(last, next byte) bool {
	if last == 0 {
		return false
	}
	switch {
	case isNameByte(last) && isNameByte(next):
		return true
	case last == '-' && next == '-':
		return true
	case last == '.' && (next == '.' || isDigitByte(next)):
		return true
	case isDigitByte(last) && next == '.':
		return true
	case last == '[' && (next == '[' || next == '='):
		return true
	default:
		return false
	}
}

func isNameByte(b byte) bool {
	return b == '_' || (b >= '0' && b <= '9') || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isDigitByte(b byte) bool {
	return b >= '0' && b <= '9'
}

// token replays a recorded token, or falls back to synthesized text
// when the node carries none.
func (g *Generator) token(t *nodes.Token, fallback string) {
	if t == nil {
		g.symbol(fallback)
		return
	}
	for _, trivia := range t.LeadingTrivia() {
		g.raw(trivia.Content(g.src))
	}
	content := t.Content(g.src)
	if content == "" {
		g.symbol(fallback)
	} else {
		g.symbol(content)
	}
	for _, trivia := range t.TrailingTrivia() {
		g.raw(trivia.Content(g.src))
	}
}

// tokenOnly replays a token that has no meaningful fallback, such as an
// optional semicolon.
func (g *Generator) tokenOnly(t *nodes.Token) {
	if t != nil {
		g.token(t, "")
	}
}

func (g *Generator) writeBlock(block *nodes.Block) {
	tokens := block.Tokens()
	for i, statement := range block.Statements() {
		if tokens == nil && i > 0 && startsWithParenthese(statement) {
			g.symbol(";")
		}
		g.writeStatement(statement)
		if tokens != nil && i < len(tokens.Semicolons) {
			g.tokenOnly(tokens.Semicolons[i])
		}
	}
	if last := block.LastStatement(); last != nil {
		g.writeLastStatement(last)
		if tokens != nil {
			g.tokenOnly(tokens.LastSemicolon)
		}
	}
	if tokens != nil {
		g.tokenOnly(tokens.Final)
	}
}

// startsWithParenthese reports whether a statement's first token is an
// opening parenthese, which would otherwise glue onto the previous
// statement as a call.
func startsWithParenthese(statement nodes.Statement) bool {
	var node nodes.Node
	switch s := statement.(type) {
	case *nodes.AssignStatement:
		if len(s.Variables) == 0 {
			return false
		}
		node = s.Variables[0]
	case *nodes.CompoundAssignStatement:
		node = s.Variable
	case *nodes.FunctionCall:
		node = s.Prefix
	default:
		return false
	}
	for {
		switch p := node.(type) {
		case *nodes.ParentheseExpression:
			return true
		case *nodes.FieldExpression:
			node = p.Prefix
		case *nodes.IndexExpression:
			node = p.Prefix
		case *nodes.FunctionCall:
			node = p.Prefix
		default:
			return false
		}
	}
}
