package generator

import (
	"strings"

	"luamend/internal/nodes"
)

// Binding strengths for token-less rendering. Concat and caret are
// right associative; everything else binds left.
const (
	precedenceOr = 1 + iota
	precedenceAnd
	precedenceComparison
	precedenceConcat
	precedenceAdditive
	precedenceMultiplicative
	precedenceUnary
	precedenceCaret
)

func binaryPrecedence(op nodes.BinaryOperator) int {
	switch op {
	case nodes.BinaryOr:
		return precedenceOr
	case nodes.BinaryAnd:
		return precedenceAnd
	case nodes.BinaryEqual, nodes.BinaryNotEqual,
		nodes.BinaryLowerThan, nodes.BinaryLowerOrEqualThan,
		nodes.BinaryGreaterThan, nodes.BinaryGreaterOrEqualThan:
		return precedenceComparison
	case nodes.BinaryConcat:
		return precedenceConcat
	case nodes.BinaryPlus, nodes.BinaryMinus:
		return precedenceAdditive
	case nodes.BinaryAsterisk, nodes.BinarySlash,
		nodes.BinaryDoubleSlash, nodes.BinaryPercent:
		return precedenceMultiplicative
	case nodes.BinaryCaret:
		return precedenceCaret
	}
	return 0
}

func rightAssociative(op nodes.BinaryOperator) bool {
	return op == nodes.BinaryConcat || op == nodes.BinaryCaret
}

func (g *Generator) writeExpression(expression nodes.Expression) {
	switch e := expression.(type) {
	case *nodes.NilExpression:
		g.token(e.Token, "nil")
	case *nodes.TrueExpression:
		g.token(e.Token, "true")
	case *nodes.FalseExpression:
		g.token(e.Token, "false")
	case *nodes.VariadicExpression:
		g.token(e.Token, "...")
	case *nodes.NumberExpression:
		g.token(e.Token, e.Render())
	case *nodes.StringExpression:
		g.token(e.Token, quoteString(e.Value))
	case *nodes.InterpolatedStringExpression:
		g.writeInterpolatedString(e)
	case *nodes.BinaryExpression:
		g.writeBinary(e)
	case *nodes.UnaryExpression:
		g.writeUnary(e)
	case *nodes.FunctionExpression:
		var function *nodes.Token
		if e.Body.Tokens != nil {
			function = e.Body.Tokens.Function
		}
		g.token(function, "function")
		g.writeFunctionBody(e.Body)
	case *nodes.ParentheseExpression:
		g.writeParenthese(e)
	case *nodes.FieldExpression:
		g.writeFieldExpression(e)
	case *nodes.IndexExpression:
		g.writeIndexExpression(e)
	case *nodes.FunctionCall:
		g.writeFunctionCall(e)
	case *nodes.TableExpression:
		g.writeTable(e)
	case *nodes.IfExpression:
		g.writeIfExpression(e)
	case *nodes.TypeCastExpression:
		g.writeExpression(e.Expression)
		g.token(e.Token, "::")
		g.writeType(e.Type)
	}
}

// writeWrapped renders the expression inside synthetic parentheses when
// wrap is true. Tokens held by the expression still replay inside.
func (g *Generator) writeWrapped(expression nodes.Expression, wrap bool) {
	if wrap {
		g.symbol("(")
		g.writeExpression(expression)
		g.symbol(")")
		return
	}
	g.writeExpression(expression)
}

// needsParens reports whether expression must be wrapped when used as an
// operand with the given minimum binding strength. sameSide is true when
// the operand sits on the operator's associative side.
func needsParens(expression nodes.Expression, minimum int, sameSide bool) bool {
	switch e := expression.(type) {
	case *nodes.BinaryExpression:
		p := binaryPrecedence(e.Operator)
		if p != minimum {
			return p < minimum
		}
		return !sameSide
	case *nodes.UnaryExpression:
		return precedenceUnary < minimum
	case *nodes.IfExpression, *nodes.TypeCastExpression:
		// Spans until the end of the expression; wrapping keeps the
		// surrounding operator from being swallowed.
		return true
	}
	return false
}

func (g *Generator) writeBinary(e *nodes.BinaryExpression) {
	p := binaryPrecedence(e.Operator)
	right := rightAssociative(e.Operator)
	g.writeWrapped(e.Left, needsParens(e.Left, p, !right))
	g.token(e.Token, e.Operator.Text())
	g.writeWrapped(e.Right, needsParens(e.Right, p, right))
}

func (g *Generator) writeUnary(e *nodes.UnaryExpression) {
	g.token(e.Token, e.Operator.Text())
	// `^` binds tighter than unary operators, so -x^2 is -(x^2); any
	// weaker operand needs wrapping.
	wrap := false
	if inner, ok := e.Expression.(*nodes.BinaryExpression); ok {
		wrap = binaryPrecedence(inner.Operator) < precedenceUnary &&
			inner.Operator != nodes.BinaryCaret
	} else {
		wrap = needsParens(e.Expression, precedenceUnary, false)
	}
	g.writeWrapped(e.Expression, wrap)
}

func (g *Generator) writeParenthese(e *nodes.ParentheseExpression) {
	var left, right *nodes.Token
	if e.Tokens != nil {
		left = e.Tokens.LeftParenthese
		right = e.Tokens.RightParenthese
	}
	g.token(left, "(")
	g.writeExpression(e.Expression)
	g.token(right, ")")
}

func (g *Generator) writePrefix(prefix nodes.Prefix) {
	switch p := prefix.(type) {
	case *nodes.Identifier:
		g.writeIdentifier(p)
	case *nodes.ParentheseExpression:
		g.writeParenthese(p)
	case *nodes.FieldExpression:
		g.writeFieldExpression(p)
	case *nodes.IndexExpression:
		g.writeIndexExpression(p)
	case *nodes.FunctionCall:
		g.writeFunctionCall(p)
	}
}

func (g *Generator) writeFieldExpression(e *nodes.FieldExpression) {
	g.writePrefix(e.Prefix)
	g.token(e.Token, ".")
	g.writeIdentifier(e.Field)
}

func (g *Generator) writeIndexExpression(e *nodes.IndexExpression) {
	var opening, closing *nodes.Token
	if e.Tokens != nil {
		opening = e.Tokens.OpeningBracket
		closing = e.Tokens.ClosingBracket
	}
	g.writePrefix(e.Prefix)
	g.token(opening, "[")
	g.writeExpression(e.Index)
	g.token(closing, "]")
}

func (g *Generator) writeFunctionCall(e *nodes.FunctionCall) {
	g.writePrefix(e.Prefix)
	if e.Method != nil {
		g.token(e.Token, ":")
		g.writeIdentifier(e.Method)
	}
	g.writeArguments(e.Arguments)
}

func (g *Generator) writeArguments(arguments nodes.Arguments) {
	switch a := arguments.(type) {
	case *nodes.TupleArguments:
		var opening, closing *nodes.Token
		var commas []*nodes.Token
		if a.Tokens != nil {
			opening = a.Tokens.OpeningParenthese
			closing = a.Tokens.ClosingParenthese
			commas = a.Tokens.Commas
		}
		g.token(opening, "(")
		for i, value := range a.Values {
			g.writeExpression(value)
			if i < len(a.Values)-1 {
				g.separator(commas, i)
			}
		}
		g.token(closing, ")")
	case *nodes.StringExpression:
		g.token(a.Token, quoteString(a.Value))
	case *nodes.TableExpression:
		g.writeTable(a)
	}
}

func (g *Generator) writeTable(e *nodes.TableExpression) {
	var opening, closing *nodes.Token
	var separators []*nodes.Token
	if e.Tokens != nil {
		opening = e.Tokens.OpeningBrace
		closing = e.Tokens.ClosingBrace
		separators = e.Tokens.Separators
	}
	g.token(opening, "{")
	for i, entry := range e.Entries {
		g.writeTableEntry(entry)
		if i < len(separators) && separators[i] != nil {
			g.token(separators[i], ",")
		} else if i < len(e.Entries)-1 {
			g.symbol(",")
		}
	}
	g.token(closing, "}")
}

func (g *Generator) writeTableEntry(entry nodes.TableEntry) {
	switch t := entry.(type) {
	case *nodes.TableFieldEntry:
		g.writeIdentifier(t.Field)
		g.token(t.Token, "=")
		g.writeExpression(t.Value)
	case *nodes.TableIndexEntry:
		var opening, closing, equal *nodes.Token
		if t.Tokens != nil {
			opening = t.Tokens.OpeningBracket
			closing = t.Tokens.ClosingBracket
			equal = t.Tokens.Equal
		}
		g.token(opening, "[")
		g.writeExpression(t.Key)
		g.token(closing, "]")
		g.token(equal, "=")
		g.writeExpression(t.Value)
	case *nodes.TableValueEntry:
		g.writeExpression(t.Value)
	}
}

func (g *Generator) writeIfExpression(e *nodes.IfExpression) {
	var ifToken, then, elseToken *nodes.Token
	if e.Tokens != nil {
		ifToken = e.Tokens.If
		then = e.Tokens.Then
		elseToken = e.Tokens.Else
	}
	g.token(ifToken, "if")
	g.writeExpression(e.Condition)
	g.token(then, "then")
	g.writeExpression(e.Result)
	for _, branch := range e.Branches {
		var elseif, branchThen *nodes.Token
		if branch.Tokens != nil {
			elseif = branch.Tokens.Elseif
			branchThen = branch.Tokens.Then
		}
		g.token(elseif, "elseif")
		g.writeExpression(branch.Condition)
		g.token(branchThen, "then")
		g.writeExpression(branch.Result)
	}
	g.token(elseToken, "else")
	g.writeExpression(e.ElseResult)
}

func (g *Generator) writeInterpolatedString(e *nodes.InterpolatedStringExpression) {
	var opening, closing *nodes.Token
	if e.Tokens != nil {
		opening = e.Tokens.OpeningTick
		closing = e.Tokens.ClosingTick
	}
	g.token(opening, "`")
	for _, segment := range e.Segments {
		switch s := segment.(type) {
		case *nodes.StringSegment:
			g.token(s.Token, escapeInterpSegment(s.Value))
		case *nodes.ValueSegment:
			var openBrace, closeBrace *nodes.Token
			if s.Tokens != nil {
				openBrace = s.Tokens.OpeningBrace
				closeBrace = s.Tokens.ClosingBrace
			}
			g.token(openBrace, "{")
			g.writeExpression(s.Expression)
			g.token(closeBrace, "}")
		}
	}
	g.token(closing, "`")
}

// quoteString renders a decoded string value back as a double-quoted
// literal, escaping what the quoting requires.
func quoteString(value string) string {
	var out strings.Builder
	out.Grow(len(value) + 2)
	out.WriteByte('"')
	for i := 0; i < len(value); i++ {
		writeEscapedByte(&out, value[i], '"')
	}
	out.WriteByte('"')
	return out.String()
}

// escapeInterpSegment escapes a literal run for use between backticks.
func escapeInterpSegment(value string) string {
	var out strings.Builder
	out.Grow(len(value))
	for i := 0; i < len(value); i++ {
		b := value[i]
		if b == '{' || b == '}' {
			out.WriteByte('\\')
			out.WriteByte(b)
			continue
		}
		writeEscapedByte(&out, b, '`')
	}
	return out.String()
}

func writeEscapedByte(out *strings.Builder, b byte, quote byte) {
	switch b {
	case quote, '\\':
		out.WriteByte('\\')
		out.WriteByte(b)
	case '\n':
		out.WriteString(`\n`)
	case '\r':
		out.WriteString(`\r`)
	case '\t':
		out.WriteString(`\t`)
	case 7:
		out.WriteString(`\a`)
	case 8:
		out.WriteString(`\b`)
	case 11:
		out.WriteString(`\v`)
	case 12:
		out.WriteString(`\f`)
	case 0:
		out.WriteString(`\0`)
	default:
		out.WriteByte(b)
	}
}
