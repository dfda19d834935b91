package token

type Kind uint8

const (
	EOF Kind = iota
	Ident
	Number
	String

	// Interpolated string segments. A backtick string without embedded
	// expressions lexes as a single InterpFull token; otherwise the lexer
	// emits InterpBegin { expr } (InterpMiddle { expr })* InterpEnd.
	InterpFull
	InterpBegin
	InterpMiddle
	InterpEnd

	// Keywords.
	KwAnd
	KwBreak
	KwDo
	KwElse
	KwElseif
	KwEnd
	KwFalse
	KwFor
	KwFunction
	KwIf
	KwIn
	KwLocal
	KwNil
	KwNot
	KwOr
	KwRepeat
	KwReturn
	KwThen
	KwTrue
	KwUntil
	KwWhile

	// Punctuation and operators.
	Plus
	Minus
	Star
	Slash
	DoubleSlash
	Percent
	Caret
	Hash
	Assign
	EqEq
	NotEq
	LtEq
	GtEq
	Lt
	Gt
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Semicolon
	Colon
	ColonColon
	Comma
	Dot
	DotDot
	Ellipsis

	// Compound assignment.
	PlusAssign
	MinusAssign
	StarAssign
	SlashAssign
	DoubleSlashAssign
	PercentAssign
	CaretAssign
	ConcatAssign

	// Type syntax.
	Arrow
	Question
	Pipe
	Amp
)

var kindNames = map[Kind]string{
	EOF:               "<eof>",
	Ident:             "identifier",
	Number:            "number",
	String:            "string",
	InterpFull:        "interpolated string",
	InterpBegin:       "interpolated string",
	InterpMiddle:      "interpolated string",
	InterpEnd:         "interpolated string",
	KwAnd:             "and",
	KwBreak:           "break",
	KwDo:              "do",
	KwElse:            "else",
	KwElseif:          "elseif",
	KwEnd:             "end",
	KwFalse:           "false",
	KwFor:             "for",
	KwFunction:        "function",
	KwIf:              "if",
	KwIn:              "in",
	KwLocal:           "local",
	KwNil:             "nil",
	KwNot:             "not",
	KwOr:              "or",
	KwRepeat:          "repeat",
	KwReturn:          "return",
	KwThen:            "then",
	KwTrue:            "true",
	KwUntil:           "until",
	KwWhile:           "while",
	Plus:              "+",
	Minus:             "-",
	Star:              "*",
	Slash:             "/",
	DoubleSlash:       "//",
	Percent:           "%",
	Caret:             "^",
	Hash:              "#",
	Assign:            "=",
	EqEq:              "==",
	NotEq:             "~=",
	LtEq:              "<=",
	GtEq:              ">=",
	Lt:                "<",
	Gt:                ">",
	LParen:            "(",
	RParen:            ")",
	LBrace:            "{",
	RBrace:            "}",
	LBracket:          "[",
	RBracket:          "]",
	Semicolon:         ";",
	Colon:             ":",
	ColonColon:        "::",
	Comma:             ",",
	Dot:               ".",
	DotDot:            "..",
	Ellipsis:          "...",
	PlusAssign:        "+=",
	MinusAssign:       "-=",
	StarAssign:        "*=",
	SlashAssign:       "/=",
	DoubleSlashAssign: "//=",
	PercentAssign:     "%=",
	CaretAssign:       "^=",
	ConcatAssign:      "..=",
	Arrow:             "->",
	Question:          "?",
	Pipe:              "|",
	Amp:               "&",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "<unknown>"
}

var keywords = map[string]Kind{
	"and":      KwAnd,
	"break":    KwBreak,
	"do":       KwDo,
	"else":     KwElse,
	"elseif":   KwElseif,
	"end":      KwEnd,
	"false":    KwFalse,
	"for":      KwFor,
	"function": KwFunction,
	"if":       KwIf,
	"in":       KwIn,
	"local":    KwLocal,
	"nil":      KwNil,
	"not":      KwNot,
	"or":       KwOr,
	"repeat":   KwRepeat,
	"return":   KwReturn,
	"then":     KwThen,
	"true":     KwTrue,
	"until":    KwUntil,
	"while":    KwWhile,
}

// LookupKeyword maps an identifier spelling to its keyword kind.
// Contextual keywords (continue, type, export) stay identifiers; the
// parser recognizes them by spelling where the grammar allows them.
func LookupKeyword(text string) (Kind, bool) {
	kind, ok := keywords[text]
	return kind, ok
}
