package main

import (
	"fmt"
	"io"
	"strings"

	"luamend/internal/nodes"
)

// treePrinter renders a node tree as an indented outline, one node per
// line with its salient payload.
type treePrinter struct {
	out   io.Writer
	depth int
}

func (p *treePrinter) line(format string, args ...any) {
	fmt.Fprintf(p.out, "%s%s\n", strings.Repeat("  ", p.depth), fmt.Sprintf(format, args...))
}

func (p *treePrinter) nested(print func()) {
	p.depth++
	print()
	p.depth--
}

// node dispatches an arbitrary resolved node to its family printer.
func (p *treePrinter) node(node nodes.Node) {
	switch n := node.(type) {
	case *nodes.Block:
		p.block(n)
	case nodes.Statement:
		p.statement(n)
	case nodes.LastStatement:
		p.lastStatement(n)
	case nodes.Expression:
		p.expression(n)
	default:
		p.line("%T", node)
	}
}

func (p *treePrinter) block(block *nodes.Block) {
	p.line("Block (%d statements)", block.StatementCount())
	p.nested(func() {
		for _, statement := range block.Statements() {
			p.statement(statement)
		}
		if last := block.LastStatement(); last != nil {
			p.lastStatement(last)
		}
	})
}

func (p *treePrinter) statement(statement nodes.Statement) {
	switch s := statement.(type) {
	case *nodes.AssignStatement:
		p.line("Assign (%d = %d)", len(s.Variables), len(s.Values))
		p.nested(func() {
			for _, variable := range s.Variables {
				p.variable(variable)
			}
			for _, value := range s.Values {
				p.expression(value)
			}
		})
	case *nodes.CompoundAssignStatement:
		p.line("CompoundAssign %s", s.Operator.Text())
		p.nested(func() {
			p.variable(s.Variable)
			p.expression(s.Value)
		})
	case *nodes.DoStatement:
		p.line("Do")
		p.nested(func() { p.block(s.Block) })
	case *nodes.FunctionCall:
		p.call(s)
	case *nodes.FunctionStatement:
		p.line("Function %s", functionNameText(s.Name))
		p.nested(func() { p.functionBody(s.Body) })
	case *nodes.GenericForStatement:
		p.line("GenericFor (%d identifiers)", len(s.Identifiers))
		p.nested(func() {
			for _, identifier := range s.Identifiers {
				p.line("Identifier %s", identifier.Name)
			}
			for _, expression := range s.Expressions {
				p.expression(expression)
			}
			p.block(s.Block)
		})
	case *nodes.IfStatement:
		p.line("If (%d branches, else=%t)", len(s.Branches), s.ElseBlock != nil)
		p.nested(func() {
			p.expression(s.Condition)
			p.block(s.Block)
			for _, branch := range s.Branches {
				p.expression(branch.Condition)
				p.block(branch.Block)
			}
			if s.ElseBlock != nil {
				p.block(s.ElseBlock)
			}
		})
	case *nodes.LocalAssignStatement:
		names := make([]string, len(s.Variables))
		for i, variable := range s.Variables {
			names[i] = variable.Name
		}
		p.line("LocalAssign %s (%d values)", strings.Join(names, ", "), len(s.Values))
		p.nested(func() {
			for _, value := range s.Values {
				p.expression(value)
			}
		})
	case *nodes.LocalFunctionStatement:
		p.line("LocalFunction %s", s.Name.Name)
		p.nested(func() { p.functionBody(s.Body) })
	case *nodes.NumericForStatement:
		p.line("NumericFor %s (step=%t)", s.Identifier.Name, s.Step != nil)
		p.nested(func() {
			p.expression(s.Start)
			p.expression(s.Limit)
			if s.Step != nil {
				p.expression(s.Step)
			}
			p.block(s.Block)
		})
	case *nodes.RepeatStatement:
		p.line("Repeat")
		p.nested(func() {
			p.block(s.Block)
			p.expression(s.Condition)
		})
	case *nodes.WhileStatement:
		p.line("While")
		p.nested(func() {
			p.expression(s.Condition)
			p.block(s.Block)
		})
	case *nodes.TypeDeclarationStatement:
		p.line("TypeDeclaration %s (exported=%t)", s.Name.Name, s.Exported)
	default:
		p.line("%T", statement)
	}
}

func (p *treePrinter) lastStatement(last nodes.LastStatement) {
	switch s := last.(type) {
	case *nodes.BreakStatement:
		p.line("Break")
	case *nodes.ContinueStatement:
		p.line("Continue")
	case *nodes.ReturnStatement:
		p.line("Return (%d expressions)", len(s.Expressions))
		p.nested(func() {
			for _, expression := range s.Expressions {
				p.expression(expression)
			}
		})
	}
}

func (p *treePrinter) expression(expression nodes.Expression) {
	switch e := expression.(type) {
	case *nodes.NilExpression:
		p.line("Nil")
	case *nodes.TrueExpression:
		p.line("True")
	case *nodes.FalseExpression:
		p.line("False")
	case *nodes.VariadicExpression:
		p.line("Variadic")
	case *nodes.NumberExpression:
		p.line("Number %s", e.Render())
	case *nodes.StringExpression:
		p.line("String %q", e.Value)
	case *nodes.InterpolatedStringExpression:
		p.line("InterpolatedString (%d segments)", len(e.Segments))
		p.nested(func() {
			for _, segment := range e.Segments {
				switch s := segment.(type) {
				case *nodes.StringSegment:
					p.line("Segment %q", s.Value)
				case *nodes.ValueSegment:
					p.expression(s.Expression)
				}
			}
		})
	case *nodes.BinaryExpression:
		p.line("Binary %s", e.Operator.Text())
		p.nested(func() {
			p.expression(e.Left)
			p.expression(e.Right)
		})
	case *nodes.UnaryExpression:
		p.line("Unary %s", e.Operator.Text())
		p.nested(func() { p.expression(e.Expression) })
	case *nodes.FunctionExpression:
		p.line("FunctionExpression")
		p.nested(func() { p.functionBody(e.Body) })
	case *nodes.ParentheseExpression:
		p.line("Parenthese")
		p.nested(func() { p.expression(e.Expression) })
	case *nodes.FieldExpression:
		p.line("Field .%s", e.Field.Name)
		p.nested(func() { p.prefix(e.Prefix) })
	case *nodes.IndexExpression:
		p.line("Index")
		p.nested(func() {
			p.prefix(e.Prefix)
			p.expression(e.Index)
		})
	case *nodes.FunctionCall:
		p.call(e)
	case *nodes.TableExpression:
		p.line("Table (%d entries)", len(e.Entries))
		p.nested(func() {
			for _, entry := range e.Entries {
				p.tableEntry(entry)
			}
		})
	case *nodes.IfExpression:
		p.line("IfExpression (%d branches)", len(e.Branches))
		p.nested(func() {
			p.expression(e.Condition)
			p.expression(e.Result)
			for _, branch := range e.Branches {
				p.expression(branch.Condition)
				p.expression(branch.Result)
			}
			p.expression(e.ElseResult)
		})
	case *nodes.TypeCastExpression:
		p.line("TypeCast")
		p.nested(func() { p.expression(e.Expression) })
	default:
		p.line("%T", expression)
	}
}

func (p *treePrinter) prefix(prefix nodes.Prefix) {
	switch pre := prefix.(type) {
	case *nodes.Identifier:
		p.line("Identifier %s", pre.Name)
	case nodes.Expression:
		p.expression(pre)
	}
}

func (p *treePrinter) variable(variable nodes.Variable) {
	switch v := variable.(type) {
	case *nodes.Identifier:
		p.line("Identifier %s", v.Name)
	case nodes.Expression:
		p.expression(v)
	}
}

func (p *treePrinter) call(call *nodes.FunctionCall) {
	if call.Method != nil {
		p.line("Call :%s", call.Method.Name)
	} else {
		p.line("Call")
	}
	p.nested(func() {
		p.prefix(call.Prefix)
		switch a := call.Arguments.(type) {
		case *nodes.TupleArguments:
			for _, value := range a.Values {
				p.expression(value)
			}
		case *nodes.StringExpression:
			p.expression(a)
		case *nodes.TableExpression:
			p.expression(a)
		}
	})
}

func (p *treePrinter) tableEntry(entry nodes.TableEntry) {
	switch t := entry.(type) {
	case *nodes.TableFieldEntry:
		p.line("FieldEntry %s", t.Field.Name)
		p.nested(func() { p.expression(t.Value) })
	case *nodes.TableIndexEntry:
		p.line("IndexEntry")
		p.nested(func() {
			p.expression(t.Key)
			p.expression(t.Value)
		})
	case *nodes.TableValueEntry:
		p.expression(t.Value)
	}
}

func (p *treePrinter) functionBody(body *nodes.FunctionBody) {
	names := make([]string, len(body.Parameters))
	for i, parameter := range body.Parameters {
		names[i] = parameter.Name
	}
	p.line("Parameters (%s) variadic=%t", strings.Join(names, ", "), body.IsVariadic)
	p.block(body.Block)
}

func functionNameText(name *nodes.FunctionName) string {
	parts := []string{name.Name.Name}
	for _, field := range name.FieldNames {
		parts = append(parts, field.Name)
	}
	text := strings.Join(parts, ".")
	if name.Method != nil {
		text += ":" + name.Method.Name
	}
	return text
}
