package nodes

// Node is implemented by every element of the program representation.
// The eachToken method is the single traversal primitive behind the
// token operations: every token reachable under a node is visited
// exactly once, and every variant must implement it. A skipped token
// silently drops source fidelity.
type Node interface {
	eachToken(visit func(*Token))
}

// Statement is a single statement inside a block.
type Statement interface {
	Node
	statementNode()
}

// LastStatement is the optional terminating statement of a block.
type LastStatement interface {
	Node
	lastStatementNode()
}

// Expression is any expression.
type Expression interface {
	Node
	expressionNode()
}

// Prefix is the restricted expression sub-union allowed in call and
// index position: identifier, parenthesized expression, field, index or
// call. A bare literal is never a prefix.
type Prefix interface {
	Expression
	prefixNode()
}

// Variable is the restricted sub-union allowed as an assignment target.
type Variable interface {
	Prefix
	variableNode()
}

// Arguments is a call's argument list form.
type Arguments interface {
	Node
	argumentsNode()
}

// TableEntry is one entry of a table constructor.
type TableEntry interface {
	Node
	tableEntryNode()
}

// Type is a type annotation.
type Type interface {
	Node
	typeNode()
}

// TypeOrPack is a type, a type pack, or a variadic type pack: the union
// allowed in return positions and generic defaults.
type TypeOrPack interface {
	Node
	typeOrPackNode()
}

// ClearComments removes all comment trivia from every token under node.
func ClearComments(node Node) {
	node.eachToken(func(t *Token) { t.ClearComments() })
}

// ClearWhitespaces removes all whitespace trivia from every token under
// node.
func ClearWhitespaces(node Node) {
	node.eachToken(func(t *Token) { t.ClearWhitespaces() })
}

// FilterComments keeps only the comments for which keep returns true,
// on every token under node.
func FilterComments(node Node, keep func(content string) bool) {
	node.eachToken(func(t *Token) { t.FilterComments(keep) })
}

// ShiftTokenLine adds amount to the recorded line number of every token
// (and trivia) under node.
func ShiftTokenLine(node Node, amount int) {
	node.eachToken(func(t *Token) { t.ShiftLine(amount) })
}

// ReplaceReferencedTokens converts every referenced token under node
// into owned form by reading src.
func ReplaceReferencedTokens(node Node, src string) {
	node.eachToken(func(t *Token) { t.ReplaceReferenced(src) })
}
