// Package convert builds the mutable node tree from the parse tree.
//
// The converter is a work-stack machine rather than a recursive walk,
// so arbitrarily deep input cannot overflow the goroutine stack. A
// single LIFO stack holds pending jobs; convert jobs expand a parse
// node into child jobs, and make jobs pop the finished children off
// per-category value stacks and push the assembled node. When the work
// stack drains, exactly one block remains and every other stack is
// empty; anything else is a converter bug surfaced as ErrInternal.
package convert

import (
	"errors"

	"luamend/internal/cst"
	"luamend/internal/nodes"
)

// Options controls a conversion.
type Options struct {
	// HoldTokenData records a token (with trivia) for every lexical
	// unit of each converted node, enabling byte-identical regeneration.
	HoldTokenData bool
	// LenientStatements drops statements that fail to convert instead
	// of failing the whole conversion. Internal errors still fail.
	LenientStatements bool
}

// Convert builds a node tree from a parsed block. src must be the text
// the block was parsed from.
func Convert(src string, block *cst.Block, opts Options) (*nodes.Block, error) {
	c := &converter{src: src, opts: opts}
	c.pushWork(convertBlockJob{block: block})
	if err := c.run(0); err != nil {
		return nil, err
	}
	result, ok := pop(&c.blocks)
	if !ok {
		return nil, c.internalError("no block after conversion")
	}
	if !c.balanced() {
		return nil, c.internalError("leftover values after conversion")
	}
	return result, nil
}

type job interface {
	isJob()
}

type converter struct {
	src  string
	opts Options

	work []job

	blocks         []*nodes.Block
	statements     []nodes.Statement
	lastStatements []nodes.LastStatement
	expressions    []nodes.Expression
	prefixes       []nodes.Prefix
	variables      []nodes.Variable
	arguments      []nodes.Arguments
	tableEntries   []nodes.TableEntry
	types          []nodes.Type
	typeOrPacks    []nodes.TypeOrPack
}

func (c *converter) pushWork(j job) {
	c.work = append(c.work, j)
}

// run processes jobs until the work stack shrinks back to baseDepth.
func (c *converter) run(baseDepth int) error {
	for len(c.work) > baseDepth {
		j := c.work[len(c.work)-1]
		c.work = c.work[:len(c.work)-1]
		if err := c.step(j); err != nil {
			return err
		}
	}
	return nil
}

func (c *converter) step(j job) error {
	switch j := j.(type) {
	case convertBlockJob:
		return c.convertBlock(j.block)
	case makeBlockJob:
		return c.makeBlock(j)
	case convertStatementJob:
		return c.convertStatement(j.stmt)
	case convertLastStatementJob:
		return c.convertLastStatement(j.stmt)
	case convertExpressionJob:
		return c.convertExpression(j.expr)
	case convertPrefixJob:
		return c.convertPrefix(j.expr)
	case convertArgumentsJob:
		return c.convertArguments(j.args)
	case convertTypeJob:
		return c.convertType(j.typ)
	case convertTypeOrPackJob:
		return c.convertTypeOrPack(j.typ)
	case makeJob:
		return j.make(c)
	default:
		return c.internalError("unknown job")
	}
}

// makeJob is implemented by every job that assembles a node from
// already-converted children.
type makeJob interface {
	job
	make(c *converter) error
}

type convertBlockJob struct{ block *cst.Block }
type convertStatementJob struct{ stmt cst.Stmt }
type convertLastStatementJob struct{ stmt cst.LastStmt }
type convertExpressionJob struct{ expr cst.Expr }
type convertPrefixJob struct{ expr *cst.PrefixExpr }
type convertArgumentsJob struct{ args cst.Args }
type convertTypeJob struct{ typ cst.Type }
type convertTypeOrPackJob struct{ typ cst.TypeOrPack }

func (convertBlockJob) isJob()         {}
func (convertStatementJob) isJob()     {}
func (convertLastStatementJob) isJob() {}
func (convertExpressionJob) isJob()    {}
func (convertPrefixJob) isJob()        {}
func (convertArgumentsJob) isJob()     {}
func (convertTypeJob) isJob()          {}
func (convertTypeOrPackJob) isJob()    {}

type makeBlockJob struct {
	block *cst.Block
}

func (makeBlockJob) isJob() {}

func (c *converter) convertBlock(b *cst.Block) error {
	if c.opts.LenientStatements {
		return c.convertBlockLenient(b)
	}
	c.pushWork(makeBlockJob{block: b})
	if b.Last != nil {
		c.pushWork(convertLastStatementJob{stmt: b.Last})
	}
	for i := len(b.Stmts) - 1; i >= 0; i-- {
		c.pushWork(convertStatementJob{stmt: b.Stmts[i]})
	}
	return nil
}

func (c *converter) makeBlock(j makeBlockJob) error {
	b := j.block
	statements, ok := popN(&c.statements, len(b.Stmts))
	if !ok {
		return c.internalError("statement stack underflow")
	}
	var last nodes.LastStatement
	if b.Last != nil {
		last, ok = pop(&c.lastStatements)
		if !ok {
			return c.internalError("last statement stack underflow")
		}
	}

	block := nodes.NewBlock()
	for _, statement := range statements {
		block.PushStatement(statement)
	}
	block.SetLastStatement(last)

	if c.opts.HoldTokenData {
		tokens := &nodes.BlockTokens{}
		for _, semicolon := range b.Semicolons {
			converted, err := c.tokenPtr(semicolon)
			if err != nil {
				return err
			}
			tokens.Semicolons = append(tokens.Semicolons, converted)
		}
		lastSemicolon, err := c.tokenPtr(b.LastSemicolon)
		if err != nil {
			return err
		}
		tokens.LastSemicolon = lastSemicolon
		tokens.Final, err = c.tokenPtr(b.Eof)
		if err != nil {
			return err
		}
		block.SetTokens(tokens)
	}

	push(&c.blocks, block)
	return nil
}

// convertBlockLenient converts each statement in isolation so a failing
// statement is dropped, along with its semicolon, without poisoning the
// rest of the block.
func (c *converter) convertBlockLenient(b *cst.Block) error {
	block := nodes.NewBlock()
	var semicolons []*nodes.Token

	for i, stmt := range b.Stmts {
		statement, err := convertIsolated(c, convertStatementJob{stmt: stmt}, &c.statements)
		if err != nil {
			if recoverable(err) {
				continue
			}
			return err
		}
		block.PushStatement(statement)
		if c.opts.HoldTokenData {
			semicolon, err := c.tokenPtr(b.Semicolons[i])
			if err != nil {
				return err
			}
			semicolons = append(semicolons, semicolon)
		}
	}

	var lastSemicolon *nodes.Token
	if b.Last != nil {
		last, err := convertIsolated(c, convertLastStatementJob{stmt: b.Last}, &c.lastStatements)
		if err != nil {
			if !recoverable(err) {
				return err
			}
		} else {
			block.SetLastStatement(last)
			if c.opts.HoldTokenData {
				lastSemicolon, err = c.tokenPtr(b.LastSemicolon)
				if err != nil {
					return err
				}
			}
		}
	}

	if c.opts.HoldTokenData {
		final, err := c.tokenPtr(b.Eof)
		if err != nil {
			return err
		}
		block.SetTokens(&nodes.BlockTokens{
			Semicolons:    semicolons,
			LastSemicolon: lastSemicolon,
			Final:         final,
		})
	}

	push(&c.blocks, block)
	return nil
}

func stackDepths(c *converter) [10]int {
	return [10]int{
		len(c.blocks), len(c.statements), len(c.lastStatements),
		len(c.expressions), len(c.prefixes), len(c.variables),
		len(c.arguments), len(c.tableEntries), len(c.types),
		len(c.typeOrPacks),
	}
}

func (c *converter) restore(depths [10]int) {
	c.blocks = c.blocks[:depths[0]]
	c.statements = c.statements[:depths[1]]
	c.lastStatements = c.lastStatements[:depths[2]]
	c.expressions = c.expressions[:depths[3]]
	c.prefixes = c.prefixes[:depths[4]]
	c.variables = c.variables[:depths[5]]
	c.arguments = c.arguments[:depths[6]]
	c.tableEntries = c.tableEntries[:depths[7]]
	c.types = c.types[:depths[8]]
	c.typeOrPacks = c.typeOrPacks[:depths[9]]
}

// convertIsolated runs a single job to completion on the shared stacks,
// rolling every stack back to its pre-job depth on failure.
func convertIsolated[T any](c *converter, j job, stack *[]T) (T, error) {
	var zero T
	depth := len(c.work)
	marks := stackDepths(c)
	c.pushWork(j)
	if err := c.run(depth); err != nil {
		c.work = c.work[:depth]
		c.restore(marks)
		return zero, err
	}
	result, ok := pop(stack)
	if !ok {
		return zero, c.internalError("missing result after isolated conversion")
	}
	return result, nil
}

// recoverable reports whether an error may be skipped under
// LenientStatements.
func recoverable(err error) bool {
	var cerr *Error
	if errors.As(err, &cerr) {
		return cerr.Kind != ErrInternal
	}
	return false
}

func (c *converter) balanced() bool {
	return len(c.blocks) == 0 &&
		len(c.statements) == 0 &&
		len(c.lastStatements) == 0 &&
		len(c.expressions) == 0 &&
		len(c.prefixes) == 0 &&
		len(c.variables) == 0 &&
		len(c.arguments) == 0 &&
		len(c.tableEntries) == 0 &&
		len(c.types) == 0 &&
		len(c.typeOrPacks) == 0
}

func push[T any](stack *[]T, value T) {
	*stack = append(*stack, value)
}

func pop[T any](stack *[]T) (T, bool) {
	var zero T
	n := len(*stack)
	if n == 0 {
		return zero, false
	}
	value := (*stack)[n-1]
	*stack = (*stack)[:n-1]
	return value, true
}

// popN pops n values and returns them in the order they were pushed.
func popN[T any](stack *[]T, n int) ([]T, bool) {
	if n == 0 {
		return nil, true
	}
	if len(*stack) < n {
		return nil, false
	}
	start := len(*stack) - n
	values := make([]T, n)
	copy(values, (*stack)[start:])
	*stack = (*stack)[:start]
	return values, true
}
