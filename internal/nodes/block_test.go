package nodes

import (
	"testing"
)

// blockWithSemicolons builds a three-statement block where every
// statement carries a semicolon token, as a parse with token fidelity
// would produce.
func blockWithSemicolons() *Block {
	block := NewBlock().
		WithStatement(NewDoStatement(NewBlock())).
		WithStatement(NewDoStatement(NewBlock())).
		WithStatement(NewDoStatement(NewBlock()))
	block.SetTokens(&BlockTokens{
		Semicolons: []*Token{
			TokenFromContent(";"),
			TokenFromContent(";"),
			TokenFromContent(";"),
		},
	})
	return block
}

func TestRemoveStatementKeepsSemicolonsAligned(t *testing.T) {
	block := blockWithSemicolons()
	block.RemoveStatement(1)
	if block.StatementCount() != 2 {
		t.Fatalf("count = %d", block.StatementCount())
	}
	if got := len(block.Tokens().Semicolons); got != 2 {
		t.Fatalf("semicolons len = %d", got)
	}
	// out-of-range indices are ignored
	block.RemoveStatement(-1)
	block.RemoveStatement(5)
	if block.StatementCount() != 2 {
		t.Fatalf("count after no-ops = %d", block.StatementCount())
	}
}

func TestPushStatementExtendsSemicolons(t *testing.T) {
	block := blockWithSemicolons()
	block.PushStatement(NewDoStatement(NewBlock()))
	if got := len(block.Tokens().Semicolons); got != 4 {
		t.Fatalf("semicolons len = %d", got)
	}
	if block.Tokens().Semicolons[3] != nil {
		t.Fatal("appended statement grew a semicolon")
	}
}

func TestInsertStatementKeepsSemicolonsAligned(t *testing.T) {
	block := blockWithSemicolons()
	block.InsertStatement(1, NewDoStatement(NewBlock()))
	semis := block.Tokens().Semicolons
	if len(semis) != 4 {
		t.Fatalf("semicolons len = %d", len(semis))
	}
	if semis[1] != nil {
		t.Fatal("inserted statement grew a semicolon")
	}
	if semis[0] == nil || semis[2] == nil || semis[3] == nil {
		t.Fatal("existing semicolons moved incorrectly")
	}
}

func TestFilterStatements(t *testing.T) {
	block := blockWithSemicolons()
	kept := NewDoStatement(NewBlock().WithLastStatement(&BreakStatement{}))
	block.InsertStatement(1, kept)
	block.FilterStatements(func(s Statement) bool {
		do, ok := s.(*DoStatement)
		return !ok || !do.Block.IsEmpty()
	})
	if block.StatementCount() != 1 {
		t.Fatalf("count = %d", block.StatementCount())
	}
	if block.Statement(0) != Statement(kept) {
		t.Fatal("wrong statement survived")
	}
	if got := len(block.Tokens().Semicolons); got != 1 {
		t.Fatalf("semicolons len = %d", got)
	}
}

func TestSetLastStatementClearsSemicolon(t *testing.T) {
	block := NewBlock().WithLastStatement(&BreakStatement{})
	block.SetTokens(&BlockTokens{LastSemicolon: TokenFromContent(";")})
	block.SetLastStatement(nil)
	if block.LastStatement() != nil {
		t.Fatal("last statement kept")
	}
	if block.Tokens().LastSemicolon != nil {
		t.Fatal("last semicolon kept")
	}
}

func TestClearCommentsTraversesBlockTokens(t *testing.T) {
	inner := NewBlock()
	do := NewDoStatement(inner)
	do.Tokens = &DoTokens{
		Do:  TokenFromContent("do").WithTrailingTrivia(TriviaFromContent(TriviaComment, "-- open")),
		End: TokenFromContent("end").WithLeadingTrivia(TriviaFromContent(TriviaComment, "-- close")),
	}
	block := NewBlock().WithStatement(do)
	semi := TokenFromContent(";").WithTrailingTrivia(TriviaFromContent(TriviaComment, "-- after"))
	final := TokenFromContent("").WithLeadingTrivia(TriviaFromContent(TriviaComment, "-- tail"))
	block.SetTokens(&BlockTokens{Semicolons: []*Token{semi}, Final: final})

	ClearComments(block)

	for name, tok := range map[string]*Token{
		"do": do.Tokens.Do, "end": do.Tokens.End, "semicolon": semi, "final": final,
	} {
		if len(tok.LeadingTrivia()) != 0 || len(tok.TrailingTrivia()) != 0 {
			t.Fatalf("%s token kept comments", name)
		}
	}
}

func TestShiftTokenLineIsLinear(t *testing.T) {
	do := NewDoStatement(NewBlock())
	do.Tokens = &DoTokens{Do: TokenAt(0, 2, 1), End: TokenAt(3, 6, 2)}
	block := NewBlock().WithStatement(do)

	ShiftTokenLine(block, 3)
	ShiftTokenLine(block, 2)
	if got := do.Tokens.Do.Line(); got != 6 {
		t.Fatalf("do line = %d", got)
	}
	if got := do.Tokens.End.Line(); got != 7 {
		t.Fatalf("end line = %d", got)
	}

	// shifting by the negated sum restores the original lines
	ShiftTokenLine(block, -5)
	if do.Tokens.Do.Line() != 1 || do.Tokens.End.Line() != 2 {
		t.Fatal("negated shift did not restore lines")
	}
}
