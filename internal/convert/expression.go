package convert

import (
	"luamend/internal/cst"
	"luamend/internal/nodes"
	"luamend/internal/source"
	"luamend/internal/token"
)

func (c *converter) convertExpression(expr cst.Expr) error {
	switch e := expr.(type) {
	case *cst.NilExpr:
		return c.pushLiteral(e.Tok, func(tok *nodes.Token) nodes.Expression {
			return &nodes.NilExpression{Token: tok}
		})
	case *cst.TrueExpr:
		return c.pushLiteral(e.Tok, func(tok *nodes.Token) nodes.Expression {
			return &nodes.TrueExpression{Token: tok}
		})
	case *cst.FalseExpr:
		return c.pushLiteral(e.Tok, func(tok *nodes.Token) nodes.Expression {
			return &nodes.FalseExpression{Token: tok}
		})
	case *cst.VarargExpr:
		return c.pushLiteral(e.Tok, func(tok *nodes.Token) nodes.Expression {
			return &nodes.VariadicExpression{Token: tok}
		})

	case *cst.NumberExpr:
		kind, value, err := parseNumber(e.Tok.Text)
		if err != nil {
			return c.errAt(ErrNumber, e.Tok.Span, err.Error())
		}
		tok, err := c.token(e.Tok)
		if err != nil {
			return err
		}
		push(&c.expressions, nodes.Expression(&nodes.NumberExpression{
			Kind:  kind,
			Value: value,
			Token: tok,
		}))

	case *cst.StringExpr:
		value, err := decodeStringToken(e.Tok.Text)
		if err != nil {
			return c.errAt(ErrExpression, e.Tok.Span, err.Error())
		}
		tok, err := c.token(e.Tok)
		if err != nil {
			return err
		}
		push(&c.expressions, nodes.Expression(&nodes.StringExpression{Value: value, Token: tok}))

	case *cst.InterpStringExpr:
		c.pushWork(makeInterpStringJob{expr: e})
		for i := len(e.Segments) - 1; i >= 0; i-- {
			if e.Segments[i].Value != nil {
				c.pushWork(convertExpressionJob{expr: e.Segments[i].Value})
			}
		}

	case *cst.FunctionExpr:
		c.pushWork(makeFunctionExprJob{expr: e})
		c.scheduleFunctionBody(e.Body)

	case *cst.PrefixExpr:
		c.pushWork(movePrefixToExpressionJob{})
		c.pushWork(convertPrefixJob{expr: e})

	case *cst.ParenExpr:
		c.pushWork(makeParenExprJob{expr: e})
		c.pushWork(convertExpressionJob{expr: e.Value})

	case *cst.TableExpr:
		c.scheduleTable(e)

	case *cst.BinaryExpr:
		c.pushWork(makeBinaryJob{expr: e})
		c.pushWork(convertExpressionJob{expr: e.Right})
		c.pushWork(convertExpressionJob{expr: e.Left})

	case *cst.UnaryExpr:
		c.pushWork(makeUnaryJob{expr: e})
		c.pushWork(convertExpressionJob{expr: e.Operand})

	case *cst.IfExpr:
		c.pushWork(makeIfExprJob{expr: e})
		c.pushWork(convertExpressionJob{expr: e.ElseValue})
		for i := len(e.ElseIfs) - 1; i >= 0; i-- {
			c.pushWork(convertExpressionJob{expr: e.ElseIfs[i].Value})
			c.pushWork(convertExpressionJob{expr: e.ElseIfs[i].Cond})
		}
		c.pushWork(convertExpressionJob{expr: e.Value})
		c.pushWork(convertExpressionJob{expr: e.Cond})

	case *cst.TypeCastExpr:
		c.pushWork(makeTypeCastJob{expr: e})
		c.pushWork(convertTypeJob{typ: e.Type})
		c.pushWork(convertExpressionJob{expr: e.Value})

	default:
		return c.errAt(ErrExpression, expr.Span(), "")
	}
	return nil
}

func (c *converter) pushLiteral(t token.Token, build func(*nodes.Token) nodes.Expression) error {
	tok, err := c.token(t)
	if err != nil {
		return err
	}
	push(&c.expressions, build(tok))
	return nil
}

// convertPrefix expands a prefix chain: the head lands on the prefix
// stack, then each suffix folds the current prefix into a field, index
// or call node.
func (c *converter) convertPrefix(e *cst.PrefixExpr) error {
	for i := len(e.Suffixes) - 1; i >= 0; i-- {
		switch s := e.Suffixes[i].(type) {
		case *cst.SuffixField:
			c.pushWork(makeFieldSuffixJob{suffix: s})
		case *cst.SuffixIndex:
			c.pushWork(makeIndexSuffixJob{suffix: s})
			c.pushWork(convertExpressionJob{expr: s.Index})
		case *cst.SuffixCall:
			c.pushWork(makeCallSuffixJob{})
			c.pushWork(convertArgumentsJob{args: s.Args})
		case *cst.SuffixMethodCall:
			c.pushWork(makeMethodCallSuffixJob{suffix: s})
			c.pushWork(convertArgumentsJob{args: s.Args})
		default:
			return c.errAt(ErrPrefix, e.Span(), "")
		}
	}

	switch head := e.Prefix.(type) {
	case *cst.PrefixName:
		identifier, err := c.identifier(head.Name)
		if err != nil {
			return err
		}
		push(&c.prefixes, nodes.Prefix(identifier))
	case *cst.PrefixParen:
		c.pushWork(makeParenPrefixJob{expr: head.Paren})
		c.pushWork(convertExpressionJob{expr: head.Paren.Value})
	default:
		return c.errAt(ErrPrefix, e.Span(), "")
	}
	return nil
}

func (c *converter) convertArguments(args cst.Args) error {
	switch a := args.(type) {
	case *cst.ParenArgs:
		c.pushWork(makeTupleArgumentsJob{args: a})
		for i := a.Values.Len() - 1; i >= 0; i-- {
			c.pushWork(convertExpressionJob{expr: a.Values.Items[i]})
		}
	case *cst.StringArgs:
		value, err := decodeStringToken(a.Value.Text)
		if err != nil {
			return c.errAt(ErrArguments, a.Value.Span, err.Error())
		}
		tok, err := c.token(a.Value)
		if err != nil {
			return err
		}
		push(&c.arguments, nodes.Arguments(&nodes.StringExpression{Value: value, Token: tok}))
	case *cst.TableArgs:
		c.pushWork(makeTableArgumentsJob{})
		c.scheduleTable(a.Table)
	default:
		return c.errAt(ErrArguments, args.Span(), "")
	}
	return nil
}

func (c *converter) scheduleTable(e *cst.TableExpr) {
	c.pushWork(makeTableJob{expr: e})
	for i := len(e.Fields) - 1; i >= 0; i-- {
		switch f := e.Fields[i].(type) {
		case *cst.FieldNoKey:
			c.pushWork(makeValueEntryJob{})
			c.pushWork(convertExpressionJob{expr: f.Value})
		case *cst.FieldName:
			c.pushWork(makeFieldEntryJob{field: f})
			c.pushWork(convertExpressionJob{expr: f.Value})
		case *cst.FieldIndex:
			c.pushWork(makeIndexEntryJob{field: f})
			c.pushWork(convertExpressionJob{expr: f.Value})
			c.pushWork(convertExpressionJob{expr: f.Key})
		}
	}
}

type makeInterpStringJob struct{ expr *cst.InterpStringExpr }
type makeFunctionExprJob struct{ expr *cst.FunctionExpr }
type movePrefixToExpressionJob struct{}
type makeParenExprJob struct{ expr *cst.ParenExpr }
type makeParenPrefixJob struct{ expr *cst.ParenExpr }
type makeBinaryJob struct{ expr *cst.BinaryExpr }
type makeUnaryJob struct{ expr *cst.UnaryExpr }
type makeIfExprJob struct{ expr *cst.IfExpr }
type makeTypeCastJob struct{ expr *cst.TypeCastExpr }
type makeFieldSuffixJob struct{ suffix *cst.SuffixField }
type makeIndexSuffixJob struct{ suffix *cst.SuffixIndex }
type makeCallSuffixJob struct{}
type makeMethodCallSuffixJob struct{ suffix *cst.SuffixMethodCall }
type makeTupleArgumentsJob struct{ args *cst.ParenArgs }
type makeTableArgumentsJob struct{}
type makeTableJob struct{ expr *cst.TableExpr }
type makeValueEntryJob struct{}
type makeFieldEntryJob struct{ field *cst.FieldName }
type makeIndexEntryJob struct{ field *cst.FieldIndex }

func (makeInterpStringJob) isJob()       {}
func (makeFunctionExprJob) isJob()       {}
func (movePrefixToExpressionJob) isJob() {}
func (makeParenExprJob) isJob()          {}
func (makeParenPrefixJob) isJob()        {}
func (makeBinaryJob) isJob()             {}
func (makeUnaryJob) isJob()              {}
func (makeIfExprJob) isJob()             {}
func (makeTypeCastJob) isJob()           {}
func (makeFieldSuffixJob) isJob()        {}
func (makeIndexSuffixJob) isJob()        {}
func (makeCallSuffixJob) isJob()         {}
func (makeMethodCallSuffixJob) isJob()   {}
func (makeTupleArgumentsJob) isJob()     {}
func (makeTableArgumentsJob) isJob()     {}
func (makeTableJob) isJob()              {}
func (makeValueEntryJob) isJob()         {}
func (makeFieldEntryJob) isJob()         {}
func (makeIndexEntryJob) isJob()         {}

func (j makeInterpStringJob) make(c *converter) error {
	e := j.expr
	valueCount := 0
	for _, segment := range e.Segments {
		if segment.Value != nil {
			valueCount++
		}
	}
	values, err := c.popExpressions(valueCount)
	if err != nil {
		return err
	}
	if len(e.Segments) == 0 {
		return c.internalError("interpolated string without segments")
	}

	expression := &nodes.InterpolatedStringExpression{}
	next := 0
	for i, segment := range e.Segments {
		if segment.Literal != nil {
			value, err := decodeInterpSegment(segment.Literal.Text)
			if err != nil {
				return c.errAt(ErrExpression, segment.Literal.Span, err.Error())
			}
			if value == "" {
				continue
			}
			converted := &nodes.StringSegment{Value: value}
			if c.opts.HoldTokenData {
				span := segment.Literal.Span
				converted.Token = nodes.TokenAt(span.Start+1, span.End-1, segment.Literal.Line)
			}
			expression.Segments = append(expression.Segments, converted)
			continue
		}

		converted := &nodes.ValueSegment{Expression: values[next]}
		next++
		if c.opts.HoldTokenData {
			// The braces are the last byte of the preceding literal
			// segment and the first byte of the following one.
			before := e.Segments[i-1].Literal
			after := e.Segments[i+1].Literal
			converted.Tokens = &nodes.ValueSegmentTokens{
				OpeningBrace: nodes.TokenAt(before.Span.End-1, before.Span.End, before.Line),
				ClosingBrace: nodes.TokenAt(after.Span.Start, after.Span.Start+1, after.Line),
			}
		}
		expression.Segments = append(expression.Segments, converted)
	}

	if c.opts.HoldTokenData {
		// The ticks inherit the string's surrounding trivia so nothing
		// around the literal is lost when tokens replay.
		first := e.Segments[0].Literal
		last := e.Segments[len(e.Segments)-1].Literal
		opening, err := c.token(token.Token{
			Span:    source.Span{Start: first.Span.Start, End: first.Span.Start + 1},
			Line:    first.Line,
			Leading: first.Leading,
		})
		if err != nil {
			return err
		}
		closing, err := c.token(token.Token{
			Span:     source.Span{Start: last.Span.End - 1, End: last.Span.End},
			Line:     last.Line,
			Trailing: last.Trailing,
		})
		if err != nil {
			return err
		}
		expression.Tokens = &nodes.InterpolatedStringTokens{
			OpeningTick: opening,
			ClosingTick: closing,
		}
	}
	push(&c.expressions, nodes.Expression(expression))
	return nil
}

func (j makeFunctionExprJob) make(c *converter) error {
	body, err := c.buildFunctionBody(j.expr.Body, j.expr.Function, ErrExpression)
	if err != nil {
		return err
	}
	push(&c.expressions, nodes.Expression(&nodes.FunctionExpression{Body: body}))
	return nil
}

func (movePrefixToExpressionJob) make(c *converter) error {
	prefix, err := c.popPrefix()
	if err != nil {
		return err
	}
	push(&c.expressions, nodes.Expression(prefix))
	return nil
}

func (c *converter) parentheseTokens(e *cst.ParenExpr) (*nodes.ParentheseTokens, error) {
	if !c.opts.HoldTokenData {
		return nil, nil
	}
	left, err := c.token(e.LParen)
	if err != nil {
		return nil, err
	}
	right, err := c.token(e.RParen)
	if err != nil {
		return nil, err
	}
	return &nodes.ParentheseTokens{LeftParenthese: left, RightParenthese: right}, nil
}

func (j makeParenExprJob) make(c *converter) error {
	value, err := c.popExpression()
	if err != nil {
		return err
	}
	tokens, err := c.parentheseTokens(j.expr)
	if err != nil {
		return err
	}
	push(&c.expressions, nodes.Expression(&nodes.ParentheseExpression{
		Expression: value,
		Tokens:     tokens,
	}))
	return nil
}

func (j makeParenPrefixJob) make(c *converter) error {
	value, err := c.popExpression()
	if err != nil {
		return err
	}
	tokens, err := c.parentheseTokens(j.expr)
	if err != nil {
		return err
	}
	push(&c.prefixes, nodes.Prefix(&nodes.ParentheseExpression{
		Expression: value,
		Tokens:     tokens,
	}))
	return nil
}

func (j makeBinaryJob) make(c *converter) error {
	operands, err := c.popExpressions(2)
	if err != nil {
		return err
	}
	operator, ok := binaryOperator(j.expr.Op.Kind)
	if !ok {
		return c.errAt(ErrExpression, j.expr.Op.Span, "unknown binary operator")
	}
	opToken, err := c.token(j.expr.Op)
	if err != nil {
		return err
	}
	push(&c.expressions, nodes.Expression(&nodes.BinaryExpression{
		Operator: operator,
		Left:     operands[0],
		Right:    operands[1],
		Token:    opToken,
	}))
	return nil
}

func binaryOperator(kind token.Kind) (nodes.BinaryOperator, bool) {
	switch kind {
	case token.KwAnd:
		return nodes.BinaryAnd, true
	case token.KwOr:
		return nodes.BinaryOr, true
	case token.EqEq:
		return nodes.BinaryEqual, true
	case token.NotEq:
		return nodes.BinaryNotEqual, true
	case token.Lt:
		return nodes.BinaryLowerThan, true
	case token.LtEq:
		return nodes.BinaryLowerOrEqualThan, true
	case token.Gt:
		return nodes.BinaryGreaterThan, true
	case token.GtEq:
		return nodes.BinaryGreaterOrEqualThan, true
	case token.Plus:
		return nodes.BinaryPlus, true
	case token.Minus:
		return nodes.BinaryMinus, true
	case token.Star:
		return nodes.BinaryAsterisk, true
	case token.Slash:
		return nodes.BinarySlash, true
	case token.DoubleSlash:
		return nodes.BinaryDoubleSlash, true
	case token.Percent:
		return nodes.BinaryPercent, true
	case token.Caret:
		return nodes.BinaryCaret, true
	case token.DotDot:
		return nodes.BinaryConcat, true
	default:
		return 0, false
	}
}

func (j makeUnaryJob) make(c *converter) error {
	operand, err := c.popExpression()
	if err != nil {
		return err
	}
	var operator nodes.UnaryOperator
	switch j.expr.Op.Kind {
	case token.Minus:
		operator = nodes.UnaryMinus
	case token.KwNot:
		operator = nodes.UnaryNot
	case token.Hash:
		operator = nodes.UnaryLength
	default:
		return c.errAt(ErrExpression, j.expr.Op.Span, "unknown unary operator")
	}
	opToken, err := c.token(j.expr.Op)
	if err != nil {
		return err
	}
	push(&c.expressions, nodes.Expression(&nodes.UnaryExpression{
		Operator:   operator,
		Expression: operand,
		Token:      opToken,
	}))
	return nil
}

func (j makeIfExprJob) make(c *converter) error {
	e := j.expr
	count := 3 + 2*len(e.ElseIfs)
	parts, err := c.popExpressions(count)
	if err != nil {
		return err
	}

	expression := &nodes.IfExpression{
		Condition:  parts[0],
		Result:     parts[1],
		ElseResult: parts[count-1],
	}
	for i, clause := range e.ElseIfs {
		branch := &nodes.ElseIfExpressionBranch{
			Condition: parts[2+2*i],
			Result:    parts[3+2*i],
		}
		if c.opts.HoldTokenData {
			elseif, err := c.token(clause.ElseIf)
			if err != nil {
				return err
			}
			then, err := c.token(clause.Then)
			if err != nil {
				return err
			}
			branch.Tokens = &nodes.ElseIfExpressionBranchTokens{Elseif: elseif, Then: then}
		}
		expression.Branches = append(expression.Branches, branch)
	}

	if c.opts.HoldTokenData {
		ifToken, err := c.token(e.If)
		if err != nil {
			return err
		}
		then, err := c.token(e.Then)
		if err != nil {
			return err
		}
		elseToken, err := c.token(e.Else)
		if err != nil {
			return err
		}
		expression.Tokens = &nodes.IfExpressionTokens{If: ifToken, Then: then, Else: elseToken}
	}
	push(&c.expressions, nodes.Expression(expression))
	return nil
}

func (j makeTypeCastJob) make(c *converter) error {
	cast, err := c.popType()
	if err != nil {
		return err
	}
	value, err := c.popExpression()
	if err != nil {
		return err
	}
	opToken, err := c.token(j.expr.ColonColon)
	if err != nil {
		return err
	}
	push(&c.expressions, nodes.Expression(&nodes.TypeCastExpression{
		Expression: value,
		Type:       cast,
		Token:      opToken,
	}))
	return nil
}

func (j makeFieldSuffixJob) make(c *converter) error {
	prefix, err := c.popPrefix()
	if err != nil {
		return err
	}
	field, err := c.identifier(j.suffix.Name)
	if err != nil {
		return err
	}
	dot, err := c.token(j.suffix.Dot)
	if err != nil {
		return err
	}
	push(&c.prefixes, nodes.Prefix(&nodes.FieldExpression{
		Prefix: prefix,
		Field:  field,
		Token:  dot,
	}))
	return nil
}

func (j makeIndexSuffixJob) make(c *converter) error {
	index, err := c.popExpression()
	if err != nil {
		return err
	}
	prefix, err := c.popPrefix()
	if err != nil {
		return err
	}
	expression := &nodes.IndexExpression{Prefix: prefix, Index: index}
	if c.opts.HoldTokenData {
		opening, err := c.token(j.suffix.LBracket)
		if err != nil {
			return err
		}
		closing, err := c.token(j.suffix.RBracket)
		if err != nil {
			return err
		}
		expression.Tokens = &nodes.IndexExpressionTokens{
			OpeningBracket: opening,
			ClosingBracket: closing,
		}
	}
	push(&c.prefixes, nodes.Prefix(expression))
	return nil
}

func (makeCallSuffixJob) make(c *converter) error {
	arguments, err := c.popArguments()
	if err != nil {
		return err
	}
	prefix, err := c.popPrefix()
	if err != nil {
		return err
	}
	push(&c.prefixes, nodes.Prefix(&nodes.FunctionCall{
		Prefix:    prefix,
		Arguments: arguments,
	}))
	return nil
}

func (j makeMethodCallSuffixJob) make(c *converter) error {
	arguments, err := c.popArguments()
	if err != nil {
		return err
	}
	prefix, err := c.popPrefix()
	if err != nil {
		return err
	}
	method, err := c.identifier(j.suffix.Name)
	if err != nil {
		return err
	}
	colon, err := c.token(j.suffix.Colon)
	if err != nil {
		return err
	}
	push(&c.prefixes, nodes.Prefix(&nodes.FunctionCall{
		Prefix:    prefix,
		Method:    method,
		Arguments: arguments,
		Token:     colon,
	}))
	return nil
}

func (j makeTupleArgumentsJob) make(c *converter) error {
	a := j.args
	values, err := c.popExpressions(a.Values.Len())
	if err != nil {
		return err
	}
	arguments := &nodes.TupleArguments{Values: values}
	if c.opts.HoldTokenData {
		opening, err := c.token(a.LParen)
		if err != nil {
			return err
		}
		closing, err := c.token(a.RParen)
		if err != nil {
			return err
		}
		commas, err := c.seps(a.Values.Seps)
		if err != nil {
			return err
		}
		arguments.Tokens = &nodes.TupleArgumentsTokens{
			OpeningParenthese: opening,
			ClosingParenthese: closing,
			Commas:            commas,
		}
	}
	push(&c.arguments, nodes.Arguments(arguments))
	return nil
}

func (makeTableArgumentsJob) make(c *converter) error {
	value, err := c.popExpression()
	if err != nil {
		return err
	}
	table, ok := value.(*nodes.TableExpression)
	if !ok {
		return c.internalError("table arguments did not produce a table")
	}
	push(&c.arguments, nodes.Arguments(table))
	return nil
}

func (j makeTableJob) make(c *converter) error {
	e := j.expr
	entries, err := c.popTableEntries(len(e.Fields))
	if err != nil {
		return err
	}
	table := &nodes.TableExpression{Entries: entries}
	if c.opts.HoldTokenData {
		opening, err := c.token(e.LBrace)
		if err != nil {
			return err
		}
		closing, err := c.token(e.RBrace)
		if err != nil {
			return err
		}
		separators, err := c.seps(e.Seps)
		if err != nil {
			return err
		}
		table.Tokens = &nodes.TableTokens{
			OpeningBrace: opening,
			ClosingBrace: closing,
			Separators:   separators,
		}
	}
	push(&c.expressions, nodes.Expression(table))
	return nil
}

func (makeValueEntryJob) make(c *converter) error {
	value, err := c.popExpression()
	if err != nil {
		return err
	}
	push(&c.tableEntries, nodes.TableEntry(&nodes.TableValueEntry{Value: value}))
	return nil
}

func (j makeFieldEntryJob) make(c *converter) error {
	value, err := c.popExpression()
	if err != nil {
		return err
	}
	field, err := c.identifier(j.field.Name)
	if err != nil {
		return err
	}
	equal, err := c.token(j.field.Assign)
	if err != nil {
		return err
	}
	push(&c.tableEntries, nodes.TableEntry(&nodes.TableFieldEntry{
		Field: field,
		Value: value,
		Token: equal,
	}))
	return nil
}

func (j makeIndexEntryJob) make(c *converter) error {
	parts, err := c.popExpressions(2)
	if err != nil {
		return err
	}
	entry := &nodes.TableIndexEntry{Key: parts[0], Value: parts[1]}
	if c.opts.HoldTokenData {
		opening, err := c.token(j.field.LBracket)
		if err != nil {
			return err
		}
		closing, err := c.token(j.field.RBracket)
		if err != nil {
			return err
		}
		equal, err := c.token(j.field.Assign)
		if err != nil {
			return err
		}
		entry.Tokens = &nodes.TableIndexEntryTokens{
			OpeningBracket: opening,
			ClosingBracket: closing,
			Equal:          equal,
		}
	}
	push(&c.tableEntries, nodes.TableEntry(entry))
	return nil
}
