package convert

import "luamend/internal/nodes"

// Typed wrappers around the value stacks. An underflow is always a
// converter bug, reported as ErrInternal.

func (c *converter) popBlock() (*nodes.Block, error) {
	block, ok := pop(&c.blocks)
	if !ok {
		return nil, c.internalError("block stack underflow")
	}
	return block, nil
}

func (c *converter) popExpression() (nodes.Expression, error) {
	expression, ok := pop(&c.expressions)
	if !ok {
		return nil, c.internalError("expression stack underflow")
	}
	return expression, nil
}

func (c *converter) popExpressions(n int) ([]nodes.Expression, error) {
	expressions, ok := popN(&c.expressions, n)
	if !ok {
		return nil, c.internalError("expression stack underflow")
	}
	return expressions, nil
}

func (c *converter) popPrefix() (nodes.Prefix, error) {
	prefix, ok := pop(&c.prefixes)
	if !ok {
		return nil, c.internalError("prefix stack underflow")
	}
	return prefix, nil
}

func (c *converter) popVariables(n int) ([]nodes.Variable, error) {
	variables, ok := popN(&c.variables, n)
	if !ok {
		return nil, c.internalError("variable stack underflow")
	}
	return variables, nil
}

func (c *converter) popArguments() (nodes.Arguments, error) {
	arguments, ok := pop(&c.arguments)
	if !ok {
		return nil, c.internalError("arguments stack underflow")
	}
	return arguments, nil
}

func (c *converter) popTableEntries(n int) ([]nodes.TableEntry, error) {
	entries, ok := popN(&c.tableEntries, n)
	if !ok {
		return nil, c.internalError("table entry stack underflow")
	}
	return entries, nil
}

func (c *converter) popType() (nodes.Type, error) {
	typ, ok := pop(&c.types)
	if !ok {
		return nil, c.internalError("type stack underflow")
	}
	return typ, nil
}

func (c *converter) popTypes(n int) ([]nodes.Type, error) {
	types, ok := popN(&c.types, n)
	if !ok {
		return nil, c.internalError("type stack underflow")
	}
	return types, nil
}

func (c *converter) popTypeOrPack() (nodes.TypeOrPack, error) {
	typ, ok := pop(&c.typeOrPacks)
	if !ok {
		return nil, c.internalError("type pack stack underflow")
	}
	return typ, nil
}

func (c *converter) popTypeOrPacks(n int) ([]nodes.TypeOrPack, error) {
	types, ok := popN(&c.typeOrPacks, n)
	if !ok {
		return nil, c.internalError("type pack stack underflow")
	}
	return types, nil
}
