package rules

import (
	"luamend/internal/nodes"
)

// eachBlock calls visit on block and every block nested under it,
// innermost first so structural rules can judge emptiness after their
// children were rewritten.
func eachBlock(block *nodes.Block, visit func(*nodes.Block)) {
	for _, statement := range block.Statements() {
		for _, nested := range nestedBlocks(statement) {
			eachBlock(nested, visit)
		}
	}
	if last := block.LastStatement(); last != nil {
		for _, nested := range lastStatementBlocks(last) {
			eachBlock(nested, visit)
		}
	}
	visit(block)
}

func nestedBlocks(statement nodes.Statement) []*nodes.Block {
	var blocks []*nodes.Block
	switch s := statement.(type) {
	case *nodes.AssignStatement:
		for _, value := range s.Values {
			blocks = expressionBlocks(blocks, value)
		}
	case *nodes.LocalAssignStatement:
		for _, value := range s.Values {
			blocks = expressionBlocks(blocks, value)
		}
	case *nodes.CompoundAssignStatement:
		blocks = expressionBlocks(blocks, s.Value)
	case *nodes.FunctionCall:
		blocks = callBlocks(blocks, s)
	case *nodes.DoStatement:
		blocks = append(blocks, s.Block)
	case *nodes.WhileStatement:
		blocks = expressionBlocks(blocks, s.Condition)
		blocks = append(blocks, s.Block)
	case *nodes.RepeatStatement:
		blocks = append(blocks, s.Block)
		blocks = expressionBlocks(blocks, s.Condition)
	case *nodes.NumericForStatement:
		blocks = expressionBlocks(blocks, s.Start)
		blocks = expressionBlocks(blocks, s.Limit)
		if s.Step != nil {
			blocks = expressionBlocks(blocks, s.Step)
		}
		blocks = append(blocks, s.Block)
	case *nodes.GenericForStatement:
		for _, expression := range s.Expressions {
			blocks = expressionBlocks(blocks, expression)
		}
		blocks = append(blocks, s.Block)
	case *nodes.FunctionStatement:
		blocks = append(blocks, s.Body.Block)
	case *nodes.LocalFunctionStatement:
		blocks = append(blocks, s.Body.Block)
	case *nodes.IfStatement:
		blocks = expressionBlocks(blocks, s.Condition)
		blocks = append(blocks, s.Block)
		for _, branch := range s.Branches {
			blocks = expressionBlocks(blocks, branch.Condition)
			blocks = append(blocks, branch.Block)
		}
		if s.ElseBlock != nil {
			blocks = append(blocks, s.ElseBlock)
		}
	}
	return blocks
}

func lastStatementBlocks(last nodes.LastStatement) []*nodes.Block {
	ret, ok := last.(*nodes.ReturnStatement)
	if !ok {
		return nil
	}
	var blocks []*nodes.Block
	for _, expression := range ret.Expressions {
		blocks = expressionBlocks(blocks, expression)
	}
	return blocks
}

// expressionBlocks collects blocks held by function expressions and
// if-expressions nested anywhere under expression.
func expressionBlocks(blocks []*nodes.Block, expression nodes.Expression) []*nodes.Block {
	switch e := expression.(type) {
	case *nodes.FunctionExpression:
		blocks = append(blocks, e.Body.Block)
	case *nodes.BinaryExpression:
		blocks = expressionBlocks(blocks, e.Left)
		blocks = expressionBlocks(blocks, e.Right)
	case *nodes.UnaryExpression:
		blocks = expressionBlocks(blocks, e.Expression)
	case *nodes.ParentheseExpression:
		blocks = expressionBlocks(blocks, e.Expression)
	case *nodes.FieldExpression:
		blocks = prefixBlocks(blocks, e.Prefix)
	case *nodes.IndexExpression:
		blocks = prefixBlocks(blocks, e.Prefix)
		blocks = expressionBlocks(blocks, e.Index)
	case *nodes.FunctionCall:
		blocks = callBlocks(blocks, e)
	case *nodes.TableExpression:
		for _, entry := range e.Entries {
			switch t := entry.(type) {
			case *nodes.TableFieldEntry:
				blocks = expressionBlocks(blocks, t.Value)
			case *nodes.TableIndexEntry:
				blocks = expressionBlocks(blocks, t.Key)
				blocks = expressionBlocks(blocks, t.Value)
			case *nodes.TableValueEntry:
				blocks = expressionBlocks(blocks, t.Value)
			}
		}
	case *nodes.IfExpression:
		blocks = expressionBlocks(blocks, e.Condition)
		blocks = expressionBlocks(blocks, e.Result)
		for _, branch := range e.Branches {
			blocks = expressionBlocks(blocks, branch.Condition)
			blocks = expressionBlocks(blocks, branch.Result)
		}
		blocks = expressionBlocks(blocks, e.ElseResult)
	case *nodes.TypeCastExpression:
		blocks = expressionBlocks(blocks, e.Expression)
	case *nodes.InterpolatedStringExpression:
		for _, segment := range e.Segments {
			if value, ok := segment.(*nodes.ValueSegment); ok {
				blocks = expressionBlocks(blocks, value.Expression)
			}
		}
	}
	return blocks
}

func prefixBlocks(blocks []*nodes.Block, prefix nodes.Prefix) []*nodes.Block {
	switch p := prefix.(type) {
	case *nodes.ParentheseExpression:
		return expressionBlocks(blocks, p.Expression)
	case *nodes.FieldExpression:
		return prefixBlocks(blocks, p.Prefix)
	case *nodes.IndexExpression:
		blocks = prefixBlocks(blocks, p.Prefix)
		return expressionBlocks(blocks, p.Index)
	case *nodes.FunctionCall:
		return callBlocks(blocks, p)
	}
	return blocks
}

func callBlocks(blocks []*nodes.Block, call *nodes.FunctionCall) []*nodes.Block {
	blocks = prefixBlocks(blocks, call.Prefix)
	switch a := call.Arguments.(type) {
	case *nodes.TupleArguments:
		for _, value := range a.Values {
			blocks = expressionBlocks(blocks, value)
		}
	case *nodes.TableExpression:
		blocks = expressionBlocks(blocks, a)
	}
	return blocks
}
