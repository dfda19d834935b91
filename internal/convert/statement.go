package convert

import (
	"luamend/internal/cst"
	"luamend/internal/nodes"
	"luamend/internal/token"
)

func (c *converter) convertStatement(stmt cst.Stmt) error {
	switch s := stmt.(type) {
	case *cst.LocalAssignStmt:
		c.pushWork(makeLocalAssignJob{stmt: s})
		for i := s.Values.Len() - 1; i >= 0; i-- {
			c.pushWork(convertExpressionJob{expr: s.Values.Items[i]})
		}
		c.scheduleTypedNames(s.Names.Items)

	case *cst.AssignStmt:
		c.pushWork(makeAssignJob{stmt: s})
		for i := s.Values.Len() - 1; i >= 0; i-- {
			c.pushWork(convertExpressionJob{expr: s.Values.Items[i]})
		}
		for i := s.Vars.Len() - 1; i >= 0; i-- {
			c.pushWork(makeVariableJob{expr: s.Vars.Items[i]})
			c.pushWork(convertPrefixJob{expr: s.Vars.Items[i]})
		}

	case *cst.CompoundAssignStmt:
		c.pushWork(makeCompoundAssignJob{stmt: s})
		c.pushWork(convertExpressionJob{expr: s.Value})
		c.pushWork(makeVariableJob{expr: s.Var})
		c.pushWork(convertPrefixJob{expr: s.Var})

	case *cst.CallStmt:
		c.pushWork(makeCallStatementJob{stmt: s})
		c.pushWork(convertPrefixJob{expr: s.Call})

	case *cst.DoStmt:
		c.pushWork(makeDoJob{stmt: s})
		c.pushWork(convertBlockJob{block: s.Body})

	case *cst.WhileStmt:
		c.pushWork(makeWhileJob{stmt: s})
		c.pushWork(convertBlockJob{block: s.Body})
		c.pushWork(convertExpressionJob{expr: s.Cond})

	case *cst.RepeatStmt:
		c.pushWork(makeRepeatJob{stmt: s})
		c.pushWork(convertExpressionJob{expr: s.Cond})
		c.pushWork(convertBlockJob{block: s.Body})

	case *cst.IfStmt:
		c.pushWork(makeIfJob{stmt: s})
		if s.Else != nil {
			c.pushWork(convertBlockJob{block: s.Else.Body})
		}
		for i := len(s.ElseIfs) - 1; i >= 0; i-- {
			c.pushWork(convertBlockJob{block: s.ElseIfs[i].Body})
			c.pushWork(convertExpressionJob{expr: s.ElseIfs[i].Cond})
		}
		c.pushWork(convertBlockJob{block: s.Body})
		c.pushWork(convertExpressionJob{expr: s.Cond})

	case *cst.NumericForStmt:
		c.pushWork(makeNumericForJob{stmt: s})
		c.pushWork(convertBlockJob{block: s.Body})
		if s.Step != nil {
			c.pushWork(convertExpressionJob{expr: s.Step})
		}
		c.pushWork(convertExpressionJob{expr: s.Limit})
		c.pushWork(convertExpressionJob{expr: s.Start})
		if s.Name.Type != nil {
			c.pushWork(convertTypeJob{typ: s.Name.Type})
		}

	case *cst.GenericForStmt:
		c.pushWork(makeGenericForJob{stmt: s})
		c.pushWork(convertBlockJob{block: s.Body})
		for i := s.Values.Len() - 1; i >= 0; i-- {
			c.pushWork(convertExpressionJob{expr: s.Values.Items[i]})
		}
		c.scheduleTypedNames(s.Names.Items)

	case *cst.FunctionDeclStmt:
		c.pushWork(makeFunctionDeclJob{stmt: s})
		c.scheduleFunctionBody(s.Body)

	case *cst.LocalFunctionStmt:
		c.pushWork(makeLocalFunctionJob{stmt: s})
		c.scheduleFunctionBody(s.Body)

	case *cst.TypeDeclStmt:
		c.pushWork(makeTypeDeclJob{stmt: s})
		c.pushWork(convertTypeJob{typ: s.Type})
		if s.Generics != nil {
			for i := len(s.Generics.Params) - 1; i >= 0; i-- {
				if s.Generics.Params[i].Default != nil {
					c.pushWork(convertTypeOrPackJob{typ: s.Generics.Params[i].Default})
				}
			}
		}

	default:
		return c.errAt(ErrStatement, stmt.Span(), "")
	}
	return nil
}

func (c *converter) convertLastStatement(stmt cst.LastStmt) error {
	switch s := stmt.(type) {
	case *cst.BreakStmt:
		tok, err := c.token(s.Tok)
		if err != nil {
			return err
		}
		push(&c.lastStatements, nodes.LastStatement(&nodes.BreakStatement{Token: tok}))
	case *cst.ContinueStmt:
		tok, err := c.token(s.Tok)
		if err != nil {
			return err
		}
		push(&c.lastStatements, nodes.LastStatement(&nodes.ContinueStatement{Token: tok}))
	case *cst.ReturnStmt:
		c.pushWork(makeReturnJob{stmt: s})
		for i := s.Values.Len() - 1; i >= 0; i-- {
			c.pushWork(convertExpressionJob{expr: s.Values.Items[i]})
		}
	default:
		return c.errAt(ErrLastStatement, stmt.Span(), "")
	}
	return nil
}

// scheduleTypedNames pushes conversion jobs for the type annotations of
// a name list, in source order once the work stack unwinds.
func (c *converter) scheduleTypedNames(names []cst.TypedName) {
	for i := len(names) - 1; i >= 0; i-- {
		if names[i].Type != nil {
			c.pushWork(convertTypeJob{typ: names[i].Type})
		}
	}
}

func typedNameCount(names []cst.TypedName) int {
	count := 0
	for _, name := range names {
		if name.Type != nil {
			count++
		}
	}
	return count
}

// buildTypedNames assembles typed identifiers from a parsed name list
// and the annotation types previously pushed for it.
func (c *converter) buildTypedNames(names []cst.TypedName) ([]*nodes.TypedIdentifier, error) {
	annotations, err := c.popTypes(typedNameCount(names))
	if err != nil {
		return nil, err
	}
	identifiers := make([]*nodes.TypedIdentifier, 0, len(names))
	next := 0
	for _, name := range names {
		var annotation nodes.Type
		if name.Type != nil {
			annotation = annotations[next]
			next++
		}
		identifier, err := c.typedIdentifier(name, annotation)
		if err != nil {
			return nil, err
		}
		identifiers = append(identifiers, identifier)
	}
	return identifiers, nil
}

type makeLocalAssignJob struct{ stmt *cst.LocalAssignStmt }
type makeAssignJob struct{ stmt *cst.AssignStmt }
type makeVariableJob struct{ expr *cst.PrefixExpr }
type makeCompoundAssignJob struct{ stmt *cst.CompoundAssignStmt }
type makeCallStatementJob struct{ stmt *cst.CallStmt }
type makeDoJob struct{ stmt *cst.DoStmt }
type makeWhileJob struct{ stmt *cst.WhileStmt }
type makeRepeatJob struct{ stmt *cst.RepeatStmt }
type makeIfJob struct{ stmt *cst.IfStmt }
type makeNumericForJob struct{ stmt *cst.NumericForStmt }
type makeGenericForJob struct{ stmt *cst.GenericForStmt }
type makeFunctionDeclJob struct{ stmt *cst.FunctionDeclStmt }
type makeLocalFunctionJob struct{ stmt *cst.LocalFunctionStmt }
type makeTypeDeclJob struct{ stmt *cst.TypeDeclStmt }
type makeReturnJob struct{ stmt *cst.ReturnStmt }

func (makeLocalAssignJob) isJob()     {}
func (makeAssignJob) isJob()          {}
func (makeVariableJob) isJob()        {}
func (makeCompoundAssignJob) isJob()  {}
func (makeCallStatementJob) isJob()   {}
func (makeDoJob) isJob()              {}
func (makeWhileJob) isJob()           {}
func (makeRepeatJob) isJob()          {}
func (makeIfJob) isJob()              {}
func (makeNumericForJob) isJob()      {}
func (makeGenericForJob) isJob()      {}
func (makeFunctionDeclJob) isJob()    {}
func (makeLocalFunctionJob) isJob()   {}
func (makeTypeDeclJob) isJob()        {}
func (makeReturnJob) isJob()          {}

func (j makeLocalAssignJob) make(c *converter) error {
	s := j.stmt
	values, err := c.popExpressions(s.Values.Len())
	if err != nil {
		return err
	}
	variables, err := c.buildTypedNames(s.Names.Items)
	if err != nil {
		return err
	}
	statement := &nodes.LocalAssignStatement{Variables: variables, Values: values}
	if c.opts.HoldTokenData {
		local, err := c.token(s.Local)
		if err != nil {
			return err
		}
		equal, err := c.tokenPtr(s.Assign)
		if err != nil {
			return err
		}
		variableCommas, err := c.seps(s.Names.Seps)
		if err != nil {
			return err
		}
		valueCommas, err := c.seps(s.Values.Seps)
		if err != nil {
			return err
		}
		statement.Tokens = &nodes.LocalAssignTokens{
			Local:          local,
			Equal:          equal,
			VariableCommas: variableCommas,
			ValueCommas:    valueCommas,
		}
	}
	push(&c.statements, nodes.Statement(statement))
	return nil
}

func (j makeAssignJob) make(c *converter) error {
	s := j.stmt
	values, err := c.popExpressions(s.Values.Len())
	if err != nil {
		return err
	}
	variables, err := c.popVariables(s.Vars.Len())
	if err != nil {
		return err
	}
	statement := &nodes.AssignStatement{Variables: variables, Values: values}
	if c.opts.HoldTokenData {
		equal, err := c.token(s.Assign)
		if err != nil {
			return err
		}
		variableCommas, err := c.seps(s.Vars.Seps)
		if err != nil {
			return err
		}
		valueCommas, err := c.seps(s.Values.Seps)
		if err != nil {
			return err
		}
		statement.Tokens = &nodes.AssignTokens{
			Equal:          equal,
			VariableCommas: variableCommas,
			ValueCommas:    valueCommas,
		}
	}
	push(&c.statements, nodes.Statement(statement))
	return nil
}

// make validates that a converted prefix chain is a legal assignment
// target and moves it to the variable stack.
func (j makeVariableJob) make(c *converter) error {
	prefix, err := c.popPrefix()
	if err != nil {
		return err
	}
	variable, ok := prefix.(nodes.Variable)
	if !ok {
		return c.errAt(ErrVariable, j.expr.Span(), "")
	}
	push(&c.variables, variable)
	return nil
}

func (j makeCompoundAssignJob) make(c *converter) error {
	s := j.stmt
	value, err := c.popExpression()
	if err != nil {
		return err
	}
	variable, ok := pop(&c.variables)
	if !ok {
		return c.internalError("variable stack underflow")
	}
	operator, ok := compoundOperator(s.Op.Kind)
	if !ok {
		return c.errAt(ErrStatement, s.Op.Span, "unknown compound operator")
	}
	opToken, err := c.token(s.Op)
	if err != nil {
		return err
	}
	push(&c.statements, nodes.Statement(&nodes.CompoundAssignStatement{
		Operator: operator,
		Variable: variable,
		Value:    value,
		Token:    opToken,
	}))
	return nil
}

func compoundOperator(kind token.Kind) (nodes.CompoundOperator, bool) {
	switch kind {
	case token.PlusAssign:
		return nodes.CompoundPlus, true
	case token.MinusAssign:
		return nodes.CompoundMinus, true
	case token.StarAssign:
		return nodes.CompoundAsterisk, true
	case token.SlashAssign:
		return nodes.CompoundSlash, true
	case token.DoubleSlashAssign:
		return nodes.CompoundDoubleSlash, true
	case token.PercentAssign:
		return nodes.CompoundPercent, true
	case token.CaretAssign:
		return nodes.CompoundCaret, true
	case token.ConcatAssign:
		return nodes.CompoundConcat, true
	default:
		return 0, false
	}
}

func (j makeCallStatementJob) make(c *converter) error {
	prefix, err := c.popPrefix()
	if err != nil {
		return err
	}
	call, ok := prefix.(*nodes.FunctionCall)
	if !ok {
		return c.errAt(ErrStatement, j.stmt.Span(), "expression is not a call")
	}
	push(&c.statements, nodes.Statement(call))
	return nil
}

func (j makeDoJob) make(c *converter) error {
	block, err := c.popBlock()
	if err != nil {
		return err
	}
	statement := &nodes.DoStatement{Block: block}
	if c.opts.HoldTokenData {
		doToken, err := c.token(j.stmt.Do)
		if err != nil {
			return err
		}
		end, err := c.token(j.stmt.End)
		if err != nil {
			return err
		}
		statement.Tokens = &nodes.DoTokens{Do: doToken, End: end}
	}
	push(&c.statements, nodes.Statement(statement))
	return nil
}

func (j makeWhileJob) make(c *converter) error {
	block, err := c.popBlock()
	if err != nil {
		return err
	}
	condition, err := c.popExpression()
	if err != nil {
		return err
	}
	statement := &nodes.WhileStatement{Condition: condition, Block: block}
	if c.opts.HoldTokenData {
		while, err := c.token(j.stmt.While)
		if err != nil {
			return err
		}
		doToken, err := c.token(j.stmt.Do)
		if err != nil {
			return err
		}
		end, err := c.token(j.stmt.End)
		if err != nil {
			return err
		}
		statement.Tokens = &nodes.WhileTokens{While: while, Do: doToken, End: end}
	}
	push(&c.statements, nodes.Statement(statement))
	return nil
}

func (j makeRepeatJob) make(c *converter) error {
	condition, err := c.popExpression()
	if err != nil {
		return err
	}
	block, err := c.popBlock()
	if err != nil {
		return err
	}
	statement := &nodes.RepeatStatement{Block: block, Condition: condition}
	if c.opts.HoldTokenData {
		repeat, err := c.token(j.stmt.Repeat)
		if err != nil {
			return err
		}
		until, err := c.token(j.stmt.Until)
		if err != nil {
			return err
		}
		statement.Tokens = &nodes.RepeatTokens{Repeat: repeat, Until: until}
	}
	push(&c.statements, nodes.Statement(statement))
	return nil
}

func (j makeIfJob) make(c *converter) error {
	s := j.stmt
	blockCount := 1 + len(s.ElseIfs)
	if s.Else != nil {
		blockCount++
	}
	allBlocks, ok := popN(&c.blocks, blockCount)
	if !ok {
		return c.internalError("block stack underflow")
	}
	conditions, err := c.popExpressions(1 + len(s.ElseIfs))
	if err != nil {
		return err
	}

	statement := &nodes.IfStatement{
		Condition: conditions[0],
		Block:     allBlocks[0],
	}
	for i, clause := range s.ElseIfs {
		branch := &nodes.IfBranch{
			Condition: conditions[1+i],
			Block:     allBlocks[1+i],
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
			branch.Tokens = &nodes.IfBranchTokens{Elseif: elseif, Then: then}
		}
		statement.Branches = append(statement.Branches, branch)
	}
	if s.Else != nil {
		statement.ElseBlock = allBlocks[len(allBlocks)-1]
	}

	if c.opts.HoldTokenData {
		ifToken, err := c.token(s.If)
		if err != nil {
			return err
		}
		then, err := c.token(s.Then)
		if err != nil {
			return err
		}
		end, err := c.token(s.End)
		if err != nil {
			return err
		}
		tokens := &nodes.IfStatementTokens{If: ifToken, Then: then, End: end}
		if s.Else != nil {
			tokens.Else, err = c.token(s.Else.Else)
			if err != nil {
				return err
			}
		}
		statement.Tokens = tokens
	}
	push(&c.statements, nodes.Statement(statement))
	return nil
}

func (j makeNumericForJob) make(c *converter) error {
	s := j.stmt
	block, err := c.popBlock()
	if err != nil {
		return err
	}
	exprCount := 2
	if s.Step != nil {
		exprCount = 3
	}
	exprs, err := c.popExpressions(exprCount)
	if err != nil {
		return err
	}
	var annotation nodes.Type
	if s.Name.Type != nil {
		annotation, err = c.popType()
		if err != nil {
			return err
		}
	}
	identifier, err := c.typedIdentifier(s.Name, annotation)
	if err != nil {
		return err
	}

	statement := &nodes.NumericForStatement{
		Identifier: identifier,
		Start:      exprs[0],
		Limit:      exprs[1],
		Block:      block,
	}
	if s.Step != nil {
		statement.Step = exprs[2]
	}
	if c.opts.HoldTokenData {
		forToken, err := c.token(s.For)
		if err != nil {
			return err
		}
		equal, err := c.token(s.Assign)
		if err != nil {
			return err
		}
		endComma, err := c.token(s.CommaOne)
		if err != nil {
			return err
		}
		stepComma, err := c.tokenPtr(s.CommaTwo)
		if err != nil {
			return err
		}
		doToken, err := c.token(s.Do)
		if err != nil {
			return err
		}
		end, err := c.token(s.End)
		if err != nil {
			return err
		}
		statement.Tokens = &nodes.NumericForTokens{
			For:       forToken,
			Equal:     equal,
			Do:        doToken,
			End:       end,
			EndComma:  endComma,
			StepComma: stepComma,
		}
	}
	push(&c.statements, nodes.Statement(statement))
	return nil
}

func (j makeGenericForJob) make(c *converter) error {
	s := j.stmt
	block, err := c.popBlock()
	if err != nil {
		return err
	}
	values, err := c.popExpressions(s.Values.Len())
	if err != nil {
		return err
	}
	identifiers, err := c.buildTypedNames(s.Names.Items)
	if err != nil {
		return err
	}

	statement := &nodes.GenericForStatement{
		Identifiers: identifiers,
		Expressions: values,
		Block:       block,
	}
	if c.opts.HoldTokenData {
		forToken, err := c.token(s.For)
		if err != nil {
			return err
		}
		in, err := c.token(s.In)
		if err != nil {
			return err
		}
		doToken, err := c.token(s.Do)
		if err != nil {
			return err
		}
		end, err := c.token(s.End)
		if err != nil {
			return err
		}
		identifierCommas, err := c.seps(s.Names.Seps)
		if err != nil {
			return err
		}
		valueCommas, err := c.seps(s.Values.Seps)
		if err != nil {
			return err
		}
		statement.Tokens = &nodes.GenericForTokens{
			For:              forToken,
			In:               in,
			Do:               doToken,
			End:              end,
			IdentifierCommas: identifierCommas,
			ValueCommas:      valueCommas,
		}
	}
	push(&c.statements, nodes.Statement(statement))
	return nil
}

func (j makeFunctionDeclJob) make(c *converter) error {
	s := j.stmt
	body, err := c.buildFunctionBody(s.Body, s.Function, ErrStatement)
	if err != nil {
		return err
	}
	name, err := c.buildFunctionName(s)
	if err != nil {
		return err
	}
	push(&c.statements, nodes.Statement(&nodes.FunctionStatement{Name: name, Body: body}))
	return nil
}

func (c *converter) buildFunctionName(s *cst.FunctionDeclStmt) (*nodes.FunctionName, error) {
	if len(s.Name.Names) == 0 {
		return nil, c.errAt(ErrFunctionName, s.Function.Span, "")
	}
	base, err := c.identifier(s.Name.Names[0])
	if err != nil {
		return nil, err
	}
	name := &nodes.FunctionName{Name: base}
	for _, field := range s.Name.Names[1:] {
		identifier, err := c.identifier(field)
		if err != nil {
			return nil, err
		}
		name.FieldNames = append(name.FieldNames, identifier)
	}
	if s.Name.Method != nil {
		name.Method, err = c.identifier(*s.Name.Method)
		if err != nil {
			return nil, err
		}
	}
	if c.opts.HoldTokenData {
		periods, err := c.seps(s.Name.Dots)
		if err != nil {
			return nil, err
		}
		colon, err := c.tokenPtr(s.Name.Colon)
		if err != nil {
			return nil, err
		}
		name.Tokens = &nodes.FunctionNameTokens{Periods: periods, Colon: colon}
	}
	return name, nil
}

func (j makeLocalFunctionJob) make(c *converter) error {
	s := j.stmt
	body, err := c.buildFunctionBody(s.Body, s.Function, ErrStatement)
	if err != nil {
		return err
	}
	name, err := c.identifier(s.Name)
	if err != nil {
		return err
	}
	statement := &nodes.LocalFunctionStatement{Name: name, Body: body}
	if c.opts.HoldTokenData {
		local, err := c.token(s.Local)
		if err != nil {
			return err
		}
		statement.Tokens = &nodes.LocalFunctionTokens{Local: local}
	}
	push(&c.statements, nodes.Statement(statement))
	return nil
}

func (j makeTypeDeclJob) make(c *converter) error {
	s := j.stmt
	declared, err := c.popType()
	if err != nil {
		return err
	}
	generics, err := c.buildGenericParameters(s.Generics)
	if err != nil {
		return err
	}
	name, err := c.identifier(s.Name)
	if err != nil {
		return err
	}
	statement := &nodes.TypeDeclarationStatement{
		Name:              name,
		Type:              declared,
		Exported:          s.Export != nil,
		GenericParameters: generics,
	}
	if c.opts.HoldTokenData {
		typeToken, err := c.token(s.TypeTok)
		if err != nil {
			return err
		}
		equal, err := c.token(s.Assign)
		if err != nil {
			return err
		}
		export, err := c.tokenPtr(s.Export)
		if err != nil {
			return err
		}
		statement.Tokens = &nodes.TypeDeclarationTokens{
			Type:   typeToken,
			Equal:  equal,
			Export: export,
		}
	}
	push(&c.statements, nodes.Statement(statement))
	return nil
}

func (c *converter) buildGenericParameters(g *cst.GenericParams) (*nodes.GenericParameters, error) {
	if g == nil {
		return nil, nil
	}
	defaultCount := 0
	for _, param := range g.Params {
		if param.Default != nil {
			defaultCount++
		}
	}
	defaults, err := c.popTypeOrPacks(defaultCount)
	if err != nil {
		return nil, err
	}

	generics := &nodes.GenericParameters{}
	next := 0
	for _, param := range g.Params {
		name, err := c.identifier(param.Name)
		if err != nil {
			return nil, err
		}
		converted := &nodes.GenericParameter{
			Name:   name,
			IsPack: param.Ellipsis != nil,
		}
		if param.Default != nil {
			converted.Default = defaults[next]
			next++
		}
		if c.opts.HoldTokenData {
			converted.EllipseToken, err = c.tokenPtr(param.Ellipsis)
			if err != nil {
				return nil, err
			}
			converted.EqualToken, err = c.tokenPtr(param.Assign)
			if err != nil {
				return nil, err
			}
		}
		generics.Parameters = append(generics.Parameters, converted)
	}
	if c.opts.HoldTokenData {
		opening, err := c.token(g.Lt)
		if err != nil {
			return nil, err
		}
		closing, err := c.token(g.Gt)
		if err != nil {
			return nil, err
		}
		commas, err := c.seps(g.Seps)
		if err != nil {
			return nil, err
		}
		generics.Tokens = &nodes.GenericParametersTokens{
			OpeningChevron: opening,
			ClosingChevron: closing,
			Commas:         commas,
		}
	}
	return generics, nil
}

func (j makeReturnJob) make(c *converter) error {
	s := j.stmt
	values, err := c.popExpressions(s.Values.Len())
	if err != nil {
		return err
	}
	statement := &nodes.ReturnStatement{Expressions: values}
	if c.opts.HoldTokenData {
		ret, err := c.token(s.Return)
		if err != nil {
			return err
		}
		commas, err := c.seps(s.Values.Seps)
		if err != nil {
			return err
		}
		statement.Tokens = &nodes.ReturnTokens{Return: ret, Commas: commas}
	}
	push(&c.lastStatements, nodes.LastStatement(statement))
	return nil
}

// scheduleFunctionBody pushes conversion jobs for every annotated piece
// of a function body: parameter types in order, the variadic type, the
// return type, then the block.
func (c *converter) scheduleFunctionBody(b *cst.FuncBody) {
	c.pushWork(convertBlockJob{block: b.Body})
	if b.Return != nil {
		c.pushWork(convertTypeOrPackJob{typ: b.Return})
	}
	var variadicType cst.Type
	for _, param := range b.Params.Items {
		if param.Ellipsis != nil && param.Type != nil {
			variadicType = param.Type
		}
	}
	if variadicType != nil {
		c.pushWork(convertTypeJob{typ: variadicType})
	}
	for i := len(b.Params.Items) - 1; i >= 0; i-- {
		param := b.Params.Items[i]
		if param.Ellipsis == nil && param.Type != nil {
			c.pushWork(convertTypeJob{typ: param.Type})
		}
	}
}

// buildFunctionBody pops the converted pieces of a function body and
// validates the parameter list: at most one variadic marker, in last
// position only.
func (c *converter) buildFunctionBody(b *cst.FuncBody, functionTok token.Token, kind ErrorKind) (*nodes.FunctionBody, error) {
	variadicSeen := false
	for i, param := range b.Params.Items {
		if param.Ellipsis == nil {
			continue
		}
		if variadicSeen {
			return nil, c.errAt(kind, param.Ellipsis.Span, "duplicate variadic parameter")
		}
		if i != len(b.Params.Items)-1 {
			return nil, c.errAt(kind, param.Ellipsis.Span, "variadic parameter must be last")
		}
		variadicSeen = true
	}

	block, err := c.popBlock()
	if err != nil {
		return nil, err
	}
	var returnType nodes.TypeOrPack
	if b.Return != nil {
		returnType, err = c.popTypeOrPack()
		if err != nil {
			return nil, err
		}
	}

	var variadicParam *cst.Param
	typedCount := 0
	for i := range b.Params.Items {
		param := &b.Params.Items[i]
		if param.Ellipsis != nil {
			variadicParam = param
		} else if param.Type != nil {
			typedCount++
		}
	}
	var variadicType nodes.Type
	if variadicParam != nil && variadicParam.Type != nil {
		variadicType, err = c.popType()
		if err != nil {
			return nil, err
		}
	}
	annotations, err := c.popTypes(typedCount)
	if err != nil {
		return nil, err
	}

	body := &nodes.FunctionBody{
		Block:        block,
		ReturnType:   returnType,
		IsVariadic:   variadicParam != nil,
		VariadicType: variadicType,
	}
	next := 0
	for _, param := range b.Params.Items {
		if param.Ellipsis != nil {
			continue
		}
		var annotation nodes.Type
		if param.Type != nil {
			annotation = annotations[next]
			next++
		}
		name := cst.TypedName{Name: *param.Name, Colon: param.Colon}
		identifier, err := c.typedIdentifier(name, annotation)
		if err != nil {
			return nil, err
		}
		body.Parameters = append(body.Parameters, identifier)
	}

	if c.opts.HoldTokenData {
		function, err := c.token(functionTok)
		if err != nil {
			return nil, err
		}
		opening, err := c.token(b.LParen)
		if err != nil {
			return nil, err
		}
		closing, err := c.token(b.RParen)
		if err != nil {
			return nil, err
		}
		end, err := c.token(b.End)
		if err != nil {
			return nil, err
		}
		commas, err := c.seps(b.Params.Seps)
		if err != nil {
			return nil, err
		}
		returnColon, err := c.tokenPtr(b.ReturnColon)
		if err != nil {
			return nil, err
		}
		tokens := &nodes.FunctionBodyTokens{
			Function:        function,
			OpeningParen:    opening,
			ClosingParen:    closing,
			End:             end,
			ParameterCommas: commas,
			ReturnColon:     returnColon,
		}
		if variadicParam != nil {
			tokens.VariadicToken, err = c.tokenPtr(variadicParam.Ellipsis)
			if err != nil {
				return nil, err
			}
			tokens.VariadicColon, err = c.tokenPtr(variadicParam.Colon)
			if err != nil {
				return nil, err
			}
		}
		body.Tokens = tokens
	}
	return body, nil
}
