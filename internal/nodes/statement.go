package nodes

// AssignTokens carries the `=` and the commas of both sides, index
// synchronized with Variables and Values.
type AssignTokens struct {
	Equal          *Token
	VariableCommas []*Token
	ValueCommas    []*Token
}

// AssignStatement is `a, b.c = x, y`.
type AssignStatement struct {
	Variables []Variable
	Values    []Expression
	Tokens    *AssignTokens
}

func (s *AssignStatement) eachToken(visit func(*Token)) {
	for i, variable := range s.Variables {
		variable.eachToken(visit)
		if s.Tokens != nil && i < len(s.Tokens.VariableCommas) && s.Tokens.VariableCommas[i] != nil {
			visit(s.Tokens.VariableCommas[i])
		}
	}
	if s.Tokens != nil {
		visitOptional(visit, s.Tokens.Equal)
	}
	for i, value := range s.Values {
		value.eachToken(visit)
		if s.Tokens != nil && i < len(s.Tokens.ValueCommas) && s.Tokens.ValueCommas[i] != nil {
			visit(s.Tokens.ValueCommas[i])
		}
	}
}

type CompoundOperator uint8

const (
	CompoundPlus CompoundOperator = iota
	CompoundMinus
	CompoundAsterisk
	CompoundSlash
	CompoundDoubleSlash
	CompoundPercent
	CompoundCaret
	CompoundConcat
)

// Text returns the operator's surface form, `+=` and friends.
func (op CompoundOperator) Text() string {
	switch op {
	case CompoundPlus:
		return "+="
	case CompoundMinus:
		return "-="
	case CompoundAsterisk:
		return "*="
	case CompoundSlash:
		return "/="
	case CompoundDoubleSlash:
		return "//="
	case CompoundPercent:
		return "%="
	case CompoundCaret:
		return "^="
	case CompoundConcat:
		return "..="
	default:
		return "?="
	}
}

// CompoundAssignStatement is `a += 1`.
type CompoundAssignStatement struct {
	Operator CompoundOperator
	Variable Variable
	Value    Expression
	Token    *Token // the operator token
}

func (s *CompoundAssignStatement) eachToken(visit func(*Token)) {
	s.Variable.eachToken(visit)
	if s.Token != nil {
		visit(s.Token)
	}
	s.Value.eachToken(visit)
}

type DoTokens struct {
	Do  *Token
	End *Token
}

// DoStatement is `do ... end`.
type DoStatement struct {
	Block  *Block
	Tokens *DoTokens
}

func NewDoStatement(block *Block) *DoStatement {
	return &DoStatement{Block: block}
}

func (s *DoStatement) eachToken(visit func(*Token)) {
	if s.Tokens != nil {
		visitOptional(visit, s.Tokens.Do)
	}
	s.Block.eachToken(visit)
	if s.Tokens != nil {
		visitOptional(visit, s.Tokens.End)
	}
}

// FunctionStatement is `function a.b:c(...) ... end`.
type FunctionStatement struct {
	Name *FunctionName
	Body *FunctionBody
}

func (s *FunctionStatement) eachToken(visit func(*Token)) {
	if s.Body.Tokens != nil {
		visitOptional(visit, s.Body.Tokens.Function)
	}
	s.Name.eachToken(visit)
	s.Body.eachToken(visit)
}

type LocalFunctionTokens struct {
	Local *Token
}

// LocalFunctionStatement is `local function name(...) ... end`.
type LocalFunctionStatement struct {
	Name   *Identifier
	Body   *FunctionBody
	Tokens *LocalFunctionTokens
}

func (s *LocalFunctionStatement) eachToken(visit func(*Token)) {
	if s.Tokens != nil {
		visitOptional(visit, s.Tokens.Local)
	}
	if s.Body.Tokens != nil {
		visitOptional(visit, s.Body.Tokens.Function)
	}
	s.Name.eachToken(visit)
	s.Body.eachToken(visit)
}

type GenericForTokens struct {
	For             *Token
	In              *Token
	Do              *Token
	End             *Token
	IdentifierCommas []*Token
	ValueCommas      []*Token
}

// GenericForStatement is `for a, b in exprs do ... end`.
type GenericForStatement struct {
	Identifiers []*TypedIdentifier
	Expressions []Expression
	Block       *Block
	Tokens      *GenericForTokens
}

func (s *GenericForStatement) eachToken(visit func(*Token)) {
	if s.Tokens != nil {
		visitOptional(visit, s.Tokens.For)
	}
	for i, identifier := range s.Identifiers {
		identifier.eachToken(visit)
		if s.Tokens != nil && i < len(s.Tokens.IdentifierCommas) && s.Tokens.IdentifierCommas[i] != nil {
			visit(s.Tokens.IdentifierCommas[i])
		}
	}
	if s.Tokens != nil {
		visitOptional(visit, s.Tokens.In)
	}
	for i, expression := range s.Expressions {
		expression.eachToken(visit)
		if s.Tokens != nil && i < len(s.Tokens.ValueCommas) && s.Tokens.ValueCommas[i] != nil {
			visit(s.Tokens.ValueCommas[i])
		}
	}
	if s.Tokens != nil {
		visitOptional(visit, s.Tokens.Do)
	}
	s.Block.eachToken(visit)
	if s.Tokens != nil {
		visitOptional(visit, s.Tokens.End)
	}
}

type NumericForTokens struct {
	For       *Token
	Equal     *Token
	Do        *Token
	End       *Token
	EndComma  *Token // between start and limit
	StepComma *Token // between limit and step, nil without a step
}

// NumericForStatement is `for i = start, limit, step do ... end`.
type NumericForStatement struct {
	Identifier *TypedIdentifier
	Start      Expression
	Limit      Expression
	Step       Expression // nil when absent
	Block      *Block
	Tokens     *NumericForTokens
}

func (s *NumericForStatement) eachToken(visit func(*Token)) {
	if s.Tokens != nil {
		visitOptional(visit, s.Tokens.For)
	}
	s.Identifier.eachToken(visit)
	if s.Tokens != nil {
		visitOptional(visit, s.Tokens.Equal)
	}
	s.Start.eachToken(visit)
	if s.Tokens != nil {
		visitOptional(visit, s.Tokens.EndComma)
	}
	s.Limit.eachToken(visit)
	if s.Tokens != nil {
		visitOptional(visit, s.Tokens.StepComma)
	}
	if s.Step != nil {
		s.Step.eachToken(visit)
	}
	if s.Tokens != nil {
		visitOptional(visit, s.Tokens.Do)
	}
	s.Block.eachToken(visit)
	if s.Tokens != nil {
		visitOptional(visit, s.Tokens.End)
	}
}

type IfBranchTokens struct {
	Elseif *Token
	Then   *Token
}

// IfBranch is one `elseif cond then block` branch.
type IfBranch struct {
	Condition Expression
	Block     *Block
	Tokens    *IfBranchTokens
}

func (b *IfBranch) eachToken(visit func(*Token)) {
	if b.Tokens != nil {
		visitOptional(visit, b.Tokens.Elseif)
	}
	b.Condition.eachToken(visit)
	if b.Tokens != nil {
		visitOptional(visit, b.Tokens.Then)
	}
	b.Block.eachToken(visit)
}

type IfStatementTokens struct {
	If   *Token
	Then *Token
	End  *Token
	Else *Token // nil without an else block
}

// IfStatement is `if cond then ... elseif ... else ... end`.
type IfStatement struct {
	Condition Expression
	Block     *Block
	Branches  []*IfBranch
	ElseBlock *Block // nil without an else
	Tokens    *IfStatementTokens
}

func (s *IfStatement) eachToken(visit func(*Token)) {
	if s.Tokens != nil {
		visitOptional(visit, s.Tokens.If)
	}
	s.Condition.eachToken(visit)
	if s.Tokens != nil {
		visitOptional(visit, s.Tokens.Then)
	}
	s.Block.eachToken(visit)
	for _, branch := range s.Branches {
		branch.eachToken(visit)
	}
	if s.Tokens != nil {
		visitOptional(visit, s.Tokens.Else)
	}
	if s.ElseBlock != nil {
		s.ElseBlock.eachToken(visit)
	}
	if s.Tokens != nil {
		visitOptional(visit, s.Tokens.End)
	}
}

type LocalAssignTokens struct {
	Local          *Token
	Equal          *Token // nil without values
	VariableCommas []*Token
	ValueCommas    []*Token
}

// LocalAssignStatement is `local a, b = x, y` (values optional).
type LocalAssignStatement struct {
	Variables []*TypedIdentifier
	Values    []Expression
	Tokens    *LocalAssignTokens
}

func (s *LocalAssignStatement) eachToken(visit func(*Token)) {
	if s.Tokens != nil {
		visitOptional(visit, s.Tokens.Local)
	}
	for i, variable := range s.Variables {
		variable.eachToken(visit)
		if s.Tokens != nil && i < len(s.Tokens.VariableCommas) && s.Tokens.VariableCommas[i] != nil {
			visit(s.Tokens.VariableCommas[i])
		}
	}
	if s.Tokens != nil {
		visitOptional(visit, s.Tokens.Equal)
	}
	for i, value := range s.Values {
		value.eachToken(visit)
		if s.Tokens != nil && i < len(s.Tokens.ValueCommas) && s.Tokens.ValueCommas[i] != nil {
			visit(s.Tokens.ValueCommas[i])
		}
	}
}

type RepeatTokens struct {
	Repeat *Token
	Until  *Token
}

// RepeatStatement is `repeat ... until cond`.
type RepeatStatement struct {
	Block     *Block
	Condition Expression
	Tokens    *RepeatTokens
}

func (s *RepeatStatement) eachToken(visit func(*Token)) {
	if s.Tokens != nil {
		visitOptional(visit, s.Tokens.Repeat)
	}
	s.Block.eachToken(visit)
	if s.Tokens != nil {
		visitOptional(visit, s.Tokens.Until)
	}
	s.Condition.eachToken(visit)
}

type WhileTokens struct {
	While *Token
	Do    *Token
	End   *Token
}

// WhileStatement is `while cond do ... end`.
type WhileStatement struct {
	Condition Expression
	Block     *Block
	Tokens    *WhileTokens
}

func (s *WhileStatement) eachToken(visit func(*Token)) {
	if s.Tokens != nil {
		visitOptional(visit, s.Tokens.While)
	}
	s.Condition.eachToken(visit)
	if s.Tokens != nil {
		visitOptional(visit, s.Tokens.Do)
	}
	s.Block.eachToken(visit)
	if s.Tokens != nil {
		visitOptional(visit, s.Tokens.End)
	}
}

type TypeDeclarationTokens struct {
	Type   *Token
	Equal  *Token
	Export *Token // nil when not exported
}

// TypeDeclarationStatement is `[export] type Name<...> = Type`.
type TypeDeclarationStatement struct {
	Name              *Identifier
	Type              Type
	Exported          bool
	GenericParameters *GenericParameters
	Tokens            *TypeDeclarationTokens
}

func (s *TypeDeclarationStatement) eachToken(visit func(*Token)) {
	if s.Tokens != nil {
		visitOptional(visit, s.Tokens.Export, s.Tokens.Type)
	}
	s.Name.eachToken(visit)
	if s.GenericParameters != nil {
		s.GenericParameters.eachToken(visit)
	}
	if s.Tokens != nil {
		visitOptional(visit, s.Tokens.Equal)
	}
	s.Type.eachToken(visit)
}

func (*AssignStatement) statementNode()          {}
func (*CompoundAssignStatement) statementNode()  {}
func (*DoStatement) statementNode()              {}
func (*FunctionCall) statementNode()             {}
func (*FunctionStatement) statementNode()        {}
func (*GenericForStatement) statementNode()      {}
func (*IfStatement) statementNode()              {}
func (*LocalAssignStatement) statementNode()     {}
func (*LocalFunctionStatement) statementNode()   {}
func (*NumericForStatement) statementNode()      {}
func (*RepeatStatement) statementNode()          {}
func (*WhileStatement) statementNode()           {}
func (*TypeDeclarationStatement) statementNode() {}
