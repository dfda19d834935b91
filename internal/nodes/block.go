package nodes

// BlockTokens carries the optional semicolon after each statement (index
// synchronized with the statements) and the optional semicolon after the
// last statement. Final holds the end-of-input token of a chunk's top
// block, whose leading trivia is the file tail.
type BlockTokens struct {
	Semicolons    []*Token // one entry per statement, nil when absent
	LastSemicolon *Token
	Final         *Token
}

// Block is an ordered sequence of statements with an optional
// terminating last-statement. Mutations go through methods so the
// semicolon side array in Tokens stays synchronized with the statement
// list.
type Block struct {
	statements    []Statement
	lastStatement LastStatement
	tokens        *BlockTokens
}

func NewBlock() *Block {
	return &Block{}
}

// WithStatement appends a statement, for fluent construction.
func (b *Block) WithStatement(statement Statement) *Block {
	b.PushStatement(statement)
	return b
}

// WithLastStatement sets the last statement, for fluent construction.
func (b *Block) WithLastStatement(last LastStatement) *Block {
	b.lastStatement = last
	return b
}

func (b *Block) IsEmpty() bool {
	return len(b.statements) == 0 && b.lastStatement == nil
}

func (b *Block) StatementCount() int {
	return len(b.statements)
}

// Statement returns the statement at index, or nil when out of range.
func (b *Block) Statement(index int) Statement {
	if index < 0 || index >= len(b.statements) {
		return nil
	}
	return b.statements[index]
}

// Statements returns the underlying statement list. Callers must not
// add or remove elements through it; use the mutation methods instead.
func (b *Block) Statements() []Statement {
	return b.statements
}

func (b *Block) LastStatement() LastStatement {
	return b.lastStatement
}

func (b *Block) SetLastStatement(last LastStatement) {
	b.lastStatement = last
	if last == nil && b.tokens != nil {
		b.tokens.LastSemicolon = nil
	}
}

func (b *Block) Tokens() *BlockTokens {
	return b.tokens
}

func (b *Block) SetTokens(tokens *BlockTokens) {
	b.tokens = tokens
}

// PushStatement appends a statement, extending the semicolon side array
// when token data is held.
func (b *Block) PushStatement(statement Statement) {
	b.statements = append(b.statements, statement)
	if b.tokens != nil {
		b.tokens.Semicolons = append(b.tokens.Semicolons, nil)
	}
}

// InsertStatement inserts a statement at index, keeping the semicolon
// side array aligned. An index past the end appends.
func (b *Block) InsertStatement(index int, statement Statement) {
	if index >= len(b.statements) {
		b.PushStatement(statement)
		return
	}
	if index < 0 {
		index = 0
	}
	b.statements = append(b.statements, nil)
	copy(b.statements[index+1:], b.statements[index:])
	b.statements[index] = statement

	if b.tokens != nil && index <= len(b.tokens.Semicolons) {
		b.tokens.Semicolons = append(b.tokens.Semicolons, nil)
		copy(b.tokens.Semicolons[index+1:], b.tokens.Semicolons[index:])
		b.tokens.Semicolons[index] = nil
	}
}

// RemoveStatement removes the statement at index along with its
// semicolon token, if one was recorded.
func (b *Block) RemoveStatement(index int) {
	if index < 0 || index >= len(b.statements) {
		return
	}
	b.statements = append(b.statements[:index], b.statements[index+1:]...)
	if b.tokens != nil && index < len(b.tokens.Semicolons) {
		b.tokens.Semicolons = append(b.tokens.Semicolons[:index], b.tokens.Semicolons[index+1:]...)
	}
}

// FilterStatements removes every statement for which keep returns
// false, keeping the semicolon side array synchronized.
func (b *Block) FilterStatements(keep func(Statement) bool) {
	for i := len(b.statements) - 1; i >= 0; i-- {
		if !keep(b.statements[i]) {
			b.RemoveStatement(i)
		}
	}
}

// Clear removes all statements and the last statement.
func (b *Block) Clear() {
	b.statements = nil
	b.lastStatement = nil
	if b.tokens != nil {
		b.tokens.Semicolons = nil
		b.tokens.LastSemicolon = nil
	}
}

func (b *Block) eachToken(visit func(*Token)) {
	for _, statement := range b.statements {
		statement.eachToken(visit)
	}
	if b.lastStatement != nil {
		b.lastStatement.eachToken(visit)
	}
	if b.tokens != nil {
		for _, semicolon := range b.tokens.Semicolons {
			if semicolon != nil {
				visit(semicolon)
			}
		}
		if b.tokens.LastSemicolon != nil {
			visit(b.tokens.LastSemicolon)
		}
		if b.tokens.Final != nil {
			visit(b.tokens.Final)
		}
	}
}
