package nodepath

import (
	"luamend/internal/nodes"
)

// Resolve walks the path against root. The meaning of each component is
// defined by the node it lands on: a statement component selects from a
// block's statements (index == count addresses the last statement), an
// expression component selects among a node's expressions in source
// order, and a block component selects among a node's nested blocks.
// The second result is false when the path does not fit the tree.
func (p Path) Resolve(root *nodes.Block) (nodes.Node, bool) {
	var current nodes.Node = root
	for _, component := range p.components {
		next, ok := step(current, component)
		if !ok {
			return nil, false
		}
		current = next
	}
	return current, true
}

// ResolveBlock resolves the path and requires the target to be a block.
func (p Path) ResolveBlock(root *nodes.Block) (*nodes.Block, bool) {
	node, ok := p.Resolve(root)
	if !ok {
		return nil, false
	}
	block, ok := node.(*nodes.Block)
	return block, ok
}

// ResolveStatement resolves the path and requires the target to be a
// statement or last statement.
func (p Path) ResolveStatement(root *nodes.Block) (nodes.Node, bool) {
	node, ok := p.Resolve(root)
	if !ok {
		return nil, false
	}
	switch node.(type) {
	case nodes.Statement, nodes.LastStatement:
		return node, true
	default:
		return nil, false
	}
}

// ResolveExpression resolves the path and requires the target to be an
// expression.
func (p Path) ResolveExpression(root *nodes.Block) (nodes.Expression, bool) {
	node, ok := p.Resolve(root)
	if !ok {
		return nil, false
	}
	expression, ok := node.(nodes.Expression)
	return expression, ok
}

func step(node nodes.Node, component Component) (nodes.Node, bool) {
	switch component.Kind {
	case StatementComponent:
		return stepStatement(node, component.Index)
	case ExpressionComponent:
		return stepExpression(node, component.Index)
	case BlockComponent:
		return stepBlock(node, component.Index)
	default:
		return nil, false
	}
}

func stepStatement(node nodes.Node, index int) (nodes.Node, bool) {
	block, ok := nestedBlock(node, 0)
	if !ok {
		return nil, false
	}
	if index < block.StatementCount() {
		return block.Statement(index), true
	}
	if index == block.StatementCount() && block.LastStatement() != nil {
		return block.LastStatement(), true
	}
	return nil, false
}

func stepBlock(node nodes.Node, index int) (nodes.Node, bool) {
	block, ok := nestedBlock(node, index)
	if !ok {
		return nil, false
	}
	return block, true
}

// nestedBlock returns the index-th block nested directly under node.
// Most statements carry a single block; if statements expose the then
// block, each elseif block in order, then the else block.
func nestedBlock(node nodes.Node, index int) (*nodes.Block, bool) {
	switch n := node.(type) {
	case *nodes.Block:
		if index == 0 {
			return n, true
		}
	case *nodes.DoStatement:
		if index == 0 {
			return n.Block, true
		}
	case *nodes.WhileStatement:
		if index == 0 {
			return n.Block, true
		}
	case *nodes.RepeatStatement:
		if index == 0 {
			return n.Block, true
		}
	case *nodes.NumericForStatement:
		if index == 0 {
			return n.Block, true
		}
	case *nodes.GenericForStatement:
		if index == 0 {
			return n.Block, true
		}
	case *nodes.FunctionStatement:
		if index == 0 {
			return n.Body.Block, true
		}
	case *nodes.LocalFunctionStatement:
		if index == 0 {
			return n.Body.Block, true
		}
	case *nodes.FunctionExpression:
		if index == 0 {
			return n.Body.Block, true
		}
	case *nodes.IfStatement:
		if index == 0 {
			return n.Block, true
		}
		if index >= 1 && index <= len(n.Branches) {
			return n.Branches[index-1].Block, true
		}
		if index == len(n.Branches)+1 && n.ElseBlock != nil {
			return n.ElseBlock, true
		}
	}
	return nil, false
}

// stepExpression selects among the expressions a node exposes, in the
// order they appear in source.
func stepExpression(node nodes.Node, index int) (nodes.Node, bool) {
	expressions := expressionsOf(node)
	if index < 0 || index >= len(expressions) {
		return nil, false
	}
	return expressions[index], true
}

func expressionsOf(node nodes.Node) []nodes.Expression {
	switch n := node.(type) {
	case *nodes.AssignStatement:
		return n.Values
	case *nodes.LocalAssignStatement:
		return n.Values
	case *nodes.CompoundAssignStatement:
		return []nodes.Expression{n.Value}
	case *nodes.ReturnStatement:
		return n.Expressions
	case *nodes.WhileStatement:
		return []nodes.Expression{n.Condition}
	case *nodes.RepeatStatement:
		return []nodes.Expression{n.Condition}
	case *nodes.NumericForStatement:
		expressions := []nodes.Expression{n.Start, n.Limit}
		if n.Step != nil {
			expressions = append(expressions, n.Step)
		}
		return expressions
	case *nodes.GenericForStatement:
		return n.Expressions
	case *nodes.IfStatement:
		expressions := []nodes.Expression{n.Condition}
		for _, branch := range n.Branches {
			expressions = append(expressions, branch.Condition)
		}
		return expressions
	case *nodes.FunctionCall:
		return argumentExpressions(n.Arguments)
	case *nodes.BinaryExpression:
		return []nodes.Expression{n.Left, n.Right}
	case *nodes.UnaryExpression:
		return []nodes.Expression{n.Expression}
	case *nodes.ParentheseExpression:
		return []nodes.Expression{n.Expression}
	case *nodes.TypeCastExpression:
		return []nodes.Expression{n.Expression}
	case *nodes.IndexExpression:
		return []nodes.Expression{n.Index}
	case *nodes.IfExpression:
		expressions := []nodes.Expression{n.Condition, n.Result}
		for _, branch := range n.Branches {
			expressions = append(expressions, branch.Condition, branch.Result)
		}
		return append(expressions, n.ElseResult)
	case *nodes.TableExpression:
		expressions := make([]nodes.Expression, 0, len(n.Entries))
		for _, entry := range n.Entries {
			switch e := entry.(type) {
			case *nodes.TableValueEntry:
				expressions = append(expressions, e.Value)
			case *nodes.TableFieldEntry:
				expressions = append(expressions, e.Value)
			case *nodes.TableIndexEntry:
				expressions = append(expressions, e.Key, e.Value)
			}
		}
		return expressions
	default:
		return nil
	}
}

func argumentExpressions(arguments nodes.Arguments) []nodes.Expression {
	switch a := arguments.(type) {
	case *nodes.TupleArguments:
		return a.Values
	case *nodes.StringExpression:
		return []nodes.Expression{a}
	case *nodes.TableExpression:
		return []nodes.Expression{a}
	default:
		return nil
	}
}
