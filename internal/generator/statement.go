package generator

import (
	"luamend/internal/nodes"
)

func (g *Generator) writeStatement(statement nodes.Statement) {
	switch s := statement.(type) {
	case *nodes.AssignStatement:
		g.writeAssign(s)
	case *nodes.CompoundAssignStatement:
		g.writeVariable(s.Variable)
		g.token(s.Token, s.Operator.Text())
		g.writeExpression(s.Value)
	case *nodes.DoStatement:
		g.writeDo(s)
	case *nodes.FunctionCall:
		g.writeFunctionCall(s)
	case *nodes.FunctionStatement:
		g.writeFunctionStatement(s)
	case *nodes.GenericForStatement:
		g.writeGenericFor(s)
	case *nodes.IfStatement:
		g.writeIf(s)
	case *nodes.LocalAssignStatement:
		g.writeLocalAssign(s)
	case *nodes.LocalFunctionStatement:
		g.writeLocalFunction(s)
	case *nodes.NumericForStatement:
		g.writeNumericFor(s)
	case *nodes.RepeatStatement:
		g.writeRepeat(s)
	case *nodes.WhileStatement:
		g.writeWhile(s)
	case *nodes.TypeDeclarationStatement:
		g.writeTypeDeclaration(s)
	}
}

func (g *Generator) writeLastStatement(last nodes.LastStatement) {
	switch s := last.(type) {
	case *nodes.BreakStatement:
		g.token(s.Token, "break")
	case *nodes.ContinueStatement:
		g.token(s.Token, "continue")
	case *nodes.ReturnStatement:
		var returnToken, commas = (*nodes.Token)(nil), []*nodes.Token(nil)
		if s.Tokens != nil {
			returnToken = s.Tokens.Return
			commas = s.Tokens.Commas
		}
		g.token(returnToken, "return")
		for i, expression := range s.Expressions {
			g.writeExpression(expression)
			if i < len(s.Expressions)-1 {
				g.separator(commas, i)
			}
		}
	}
}

// separator writes the recorded separator token at index, or a plain
// comma when none was recorded.
func (g *Generator) separator(tokens []*nodes.Token, index int) {
	if index < len(tokens) && tokens[index] != nil {
		g.token(tokens[index], ",")
		return
	}
	g.symbol(",")
}

func (g *Generator) writeAssign(s *nodes.AssignStatement) {
	var equal *nodes.Token
	var variableCommas, valueCommas []*nodes.Token
	if s.Tokens != nil {
		equal = s.Tokens.Equal
		variableCommas = s.Tokens.VariableCommas
		valueCommas = s.Tokens.ValueCommas
	}
	for i, variable := range s.Variables {
		g.writeVariable(variable)
		if i < len(s.Variables)-1 {
			g.separator(variableCommas, i)
		}
	}
	g.token(equal, "=")
	for i, value := range s.Values {
		g.writeExpression(value)
		if i < len(s.Values)-1 {
			g.separator(valueCommas, i)
		}
	}
}

func (g *Generator) writeLocalAssign(s *nodes.LocalAssignStatement) {
	var local, equal *nodes.Token
	var variableCommas, valueCommas []*nodes.Token
	if s.Tokens != nil {
		local = s.Tokens.Local
		equal = s.Tokens.Equal
		variableCommas = s.Tokens.VariableCommas
		valueCommas = s.Tokens.ValueCommas
	}
	g.token(local, "local")
	for i, variable := range s.Variables {
		g.writeTypedIdentifier(variable)
		if i < len(s.Variables)-1 {
			g.separator(variableCommas, i)
		}
	}
	if len(s.Values) > 0 {
		g.token(equal, "=")
		for i, value := range s.Values {
			g.writeExpression(value)
			if i < len(s.Values)-1 {
				g.separator(valueCommas, i)
			}
		}
	}
}

func (g *Generator) writeDo(s *nodes.DoStatement) {
	var doToken, end *nodes.Token
	if s.Tokens != nil {
		doToken = s.Tokens.Do
		end = s.Tokens.End
	}
	g.token(doToken, "do")
	g.writeBlock(s.Block)
	g.token(end, "end")
}

func (g *Generator) writeWhile(s *nodes.WhileStatement) {
	var while, doToken, end *nodes.Token
	if s.Tokens != nil {
		while = s.Tokens.While
		doToken = s.Tokens.Do
		end = s.Tokens.End
	}
	g.token(while, "while")
	g.writeExpression(s.Condition)
	g.token(doToken, "do")
	g.writeBlock(s.Block)
	g.token(end, "end")
}

func (g *Generator) writeRepeat(s *nodes.RepeatStatement) {
	var repeat, until *nodes.Token
	if s.Tokens != nil {
		repeat = s.Tokens.Repeat
		until = s.Tokens.Until
	}
	g.token(repeat, "repeat")
	g.writeBlock(s.Block)
	g.token(until, "until")
	g.writeExpression(s.Condition)
}

func (g *Generator) writeIf(s *nodes.IfStatement) {
	var ifToken, then, end, elseToken *nodes.Token
	if s.Tokens != nil {
		ifToken = s.Tokens.If
		then = s.Tokens.Then
		end = s.Tokens.End
		elseToken = s.Tokens.Else
	}
	g.token(ifToken, "if")
	g.writeExpression(s.Condition)
	g.token(then, "then")
	g.writeBlock(s.Block)
	for _, branch := range s.Branches {
		var elseif, branchThen *nodes.Token
		if branch.Tokens != nil {
			elseif = branch.Tokens.Elseif
			branchThen = branch.Tokens.Then
		}
		g.token(elseif, "elseif")
		g.writeExpression(branch.Condition)
		g.token(branchThen, "then")
		g.writeBlock(branch.Block)
	}
	if s.ElseBlock != nil {
		g.token(elseToken, "else")
		g.writeBlock(s.ElseBlock)
	}
	g.token(end, "end")
}

func (g *Generator) writeNumericFor(s *nodes.NumericForStatement) {
	var forToken, equal, doToken, end, endComma, stepComma *nodes.Token
	if s.Tokens != nil {
		forToken = s.Tokens.For
		equal = s.Tokens.Equal
		doToken = s.Tokens.Do
		end = s.Tokens.End
		endComma = s.Tokens.EndComma
		stepComma = s.Tokens.StepComma
	}
	g.token(forToken, "for")
	g.writeTypedIdentifier(s.Identifier)
	g.token(equal, "=")
	g.writeExpression(s.Start)
	g.token(endComma, ",")
	g.writeExpression(s.Limit)
	if s.Step != nil {
		g.token(stepComma, ",")
		g.writeExpression(s.Step)
	}
	g.token(doToken, "do")
	g.writeBlock(s.Block)
	g.token(end, "end")
}

func (g *Generator) writeGenericFor(s *nodes.GenericForStatement) {
	var forToken, in, doToken, end *nodes.Token
	var identifierCommas, valueCommas []*nodes.Token
	if s.Tokens != nil {
		forToken = s.Tokens.For
		in = s.Tokens.In
		doToken = s.Tokens.Do
		end = s.Tokens.End
		identifierCommas = s.Tokens.IdentifierCommas
		valueCommas = s.Tokens.ValueCommas
	}
	g.token(forToken, "for")
	for i, identifier := range s.Identifiers {
		g.writeTypedIdentifier(identifier)
		if i < len(s.Identifiers)-1 {
			g.separator(identifierCommas, i)
		}
	}
	g.token(in, "in")
	for i, expression := range s.Expressions {
		g.writeExpression(expression)
		if i < len(s.Expressions)-1 {
			g.separator(valueCommas, i)
		}
	}
	g.token(doToken, "do")
	g.writeBlock(s.Block)
	g.token(end, "end")
}

func (g *Generator) writeFunctionStatement(s *nodes.FunctionStatement) {
	var function *nodes.Token
	if s.Body.Tokens != nil {
		function = s.Body.Tokens.Function
	}
	g.token(function, "function")
	g.writeFunctionName(s.Name)
	g.writeFunctionBody(s.Body)
}

func (g *Generator) writeFunctionName(name *nodes.FunctionName) {
	var periods []*nodes.Token
	var colon *nodes.Token
	if name.Tokens != nil {
		periods = name.Tokens.Periods
		colon = name.Tokens.Colon
	}
	g.writeIdentifier(name.Name)
	for i, field := range name.FieldNames {
		if i < len(periods) && periods[i] != nil {
			g.token(periods[i], ".")
		} else {
			g.symbol(".")
		}
		g.writeIdentifier(field)
	}
	if name.Method != nil {
		g.token(colon, ":")
		g.writeIdentifier(name.Method)
	}
}

func (g *Generator) writeLocalFunction(s *nodes.LocalFunctionStatement) {
	var local, function *nodes.Token
	if s.Tokens != nil {
		local = s.Tokens.Local
	}
	if s.Body.Tokens != nil {
		function = s.Body.Tokens.Function
	}
	g.token(local, "local")
	g.token(function, "function")
	g.writeIdentifier(s.Name)
	g.writeFunctionBody(s.Body)
}

// writeFunctionBody renders the parameter list, annotations and block.
// The `function` keyword is written by the caller, which knows what
// sits between it and the parameters.
func (g *Generator) writeFunctionBody(body *nodes.FunctionBody) {
	t := body.Tokens
	var opening, closing, end, variadic, variadicColon, returnColon *nodes.Token
	var commas []*nodes.Token
	if t != nil {
		opening = t.OpeningParen
		closing = t.ClosingParen
		end = t.End
		variadic = t.VariadicToken
		variadicColon = t.VariadicColon
		returnColon = t.ReturnColon
		commas = t.ParameterCommas
	}
	g.token(opening, "(")
	for i, parameter := range body.Parameters {
		g.writeTypedIdentifier(parameter)
		if i < len(body.Parameters)-1 {
			g.separator(commas, i)
		}
	}
	if body.IsVariadic {
		if len(body.Parameters) > 0 {
			g.separator(commas, len(body.Parameters)-1)
		}
		g.token(variadic, "...")
		if body.VariadicType != nil {
			g.token(variadicColon, ":")
			g.writeType(body.VariadicType)
		}
	}
	g.token(closing, ")")
	if body.ReturnType != nil {
		g.token(returnColon, ":")
		g.writeTypeOrPack(body.ReturnType)
	}
	g.writeBlock(body.Block)
	g.token(end, "end")
}

func (g *Generator) writeTypeDeclaration(s *nodes.TypeDeclarationStatement) {
	var typeToken, equal, export *nodes.Token
	if s.Tokens != nil {
		typeToken = s.Tokens.Type
		equal = s.Tokens.Equal
		export = s.Tokens.Export
	}
	if s.Exported {
		g.token(export, "export")
	}
	g.token(typeToken, "type")
	g.writeIdentifier(s.Name)
	if s.GenericParameters != nil {
		g.writeGenericParameters(s.GenericParameters)
	}
	g.token(equal, "=")
	g.writeType(s.Type)
}

func (g *Generator) writeGenericParameters(generics *nodes.GenericParameters) {
	var opening, closing *nodes.Token
	var commas []*nodes.Token
	if generics.Tokens != nil {
		opening = generics.Tokens.OpeningChevron
		closing = generics.Tokens.ClosingChevron
		commas = generics.Tokens.Commas
	}
	g.token(opening, "<")
	for i, parameter := range generics.Parameters {
		g.writeIdentifier(parameter.Name)
		if parameter.IsPack {
			g.token(parameter.EllipseToken, "...")
		}
		if parameter.Default != nil {
			g.token(parameter.EqualToken, "=")
			g.writeTypeOrPack(parameter.Default)
		}
		if i < len(generics.Parameters)-1 {
			g.separator(commas, i)
		}
	}
	g.token(closing, ">")
}

func (g *Generator) writeIdentifier(identifier *nodes.Identifier) {
	g.token(identifier.Token, identifier.Name)
}

func (g *Generator) writeTypedIdentifier(identifier *nodes.TypedIdentifier) {
	g.token(identifier.Token, identifier.Name)
	if identifier.Type != nil {
		g.token(identifier.ColonToken, ":")
		g.writeType(identifier.Type)
	}
}

func (g *Generator) writeVariable(variable nodes.Variable) {
	switch v := variable.(type) {
	case *nodes.Identifier:
		g.writeIdentifier(v)
	case *nodes.FieldExpression:
		g.writeFieldExpression(v)
	case *nodes.IndexExpression:
		g.writeIndexExpression(v)
	}
}
