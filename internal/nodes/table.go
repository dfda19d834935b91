package nodes

// TableFieldEntry is `name = value`.
type TableFieldEntry struct {
	Field *Identifier
	Value Expression
	Token *Token // the equal sign
}

func (e *TableFieldEntry) eachToken(visit func(*Token)) {
	e.Field.eachToken(visit)
	if e.Token != nil {
		visit(e.Token)
	}
	e.Value.eachToken(visit)
}

type TableIndexEntryTokens struct {
	OpeningBracket *Token
	ClosingBracket *Token
	Equal          *Token
}

// TableIndexEntry is `[key] = value`.
type TableIndexEntry struct {
	Key    Expression
	Value  Expression
	Tokens *TableIndexEntryTokens
}

func (e *TableIndexEntry) eachToken(visit func(*Token)) {
	if e.Tokens != nil {
		visitOptional(visit, e.Tokens.OpeningBracket)
	}
	e.Key.eachToken(visit)
	if e.Tokens != nil {
		visitOptional(visit, e.Tokens.ClosingBracket)
		visitOptional(visit, e.Tokens.Equal)
	}
	e.Value.eachToken(visit)
}

// TableValueEntry is a positional `value` entry.
type TableValueEntry struct {
	Value Expression
}

func (e *TableValueEntry) eachToken(visit func(*Token)) {
	e.Value.eachToken(visit)
}

func (*TableFieldEntry) tableEntryNode() {}
func (*TableIndexEntry) tableEntryNode() {}
func (*TableValueEntry) tableEntryNode() {}

type TableTokens struct {
	OpeningBrace *Token
	ClosingBrace *Token
	// Separators holds the `,` or `;` tokens between entries, kept in
	// sync with the entry list: len(Separators) is len(Entries) or
	// len(Entries)-1 depending on a trailing separator.
	Separators []*Token
}

// TableExpression is a table constructor.
type TableExpression struct {
	Entries []TableEntry
	Tokens  *TableTokens
}

func NewTableExpression(entries []TableEntry) *TableExpression {
	return &TableExpression{Entries: entries}
}

// PushEntry appends an entry, keeping the separator list in sync when
// token data is held.
func (e *TableExpression) PushEntry(entry TableEntry) {
	if e.Tokens != nil && len(e.Entries) > 0 && len(e.Tokens.Separators) < len(e.Entries) {
		e.Tokens.Separators = append(e.Tokens.Separators, TokenFromContent(","))
	}
	e.Entries = append(e.Entries, entry)
}

// RemoveEntry deletes the entry at index and its associated separator.
func (e *TableExpression) RemoveEntry(index int) {
	if index < 0 || index >= len(e.Entries) {
		return
	}
	e.Entries = append(e.Entries[:index], e.Entries[index+1:]...)
	if e.Tokens == nil {
		return
	}
	if index < len(e.Tokens.Separators) {
		e.Tokens.Separators = append(e.Tokens.Separators[:index], e.Tokens.Separators[index+1:]...)
	} else if len(e.Tokens.Separators) > 0 && len(e.Tokens.Separators) > len(e.Entries) {
		e.Tokens.Separators = e.Tokens.Separators[:len(e.Tokens.Separators)-1]
	}
}

func (e *TableExpression) eachToken(visit func(*Token)) {
	if e.Tokens == nil {
		for _, entry := range e.Entries {
			entry.eachToken(visit)
		}
		return
	}
	visitOptional(visit, e.Tokens.OpeningBrace)
	for i, entry := range e.Entries {
		entry.eachToken(visit)
		if i < len(e.Tokens.Separators) {
			visitOptional(visit, e.Tokens.Separators[i])
		}
	}
	visitOptional(visit, e.Tokens.ClosingBrace)
}
