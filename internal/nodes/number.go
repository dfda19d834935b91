package nodes

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// NumberKind records which literal syntax produced a number so a value
// without a token can be rendered back in the same base.
type NumberKind uint8

const (
	DecimalNumber NumberKind = iota
	HexNumber
	BinaryNumber
)

// NumberExpression is a numeric literal. Value is the parsed numeric
// value; Kind keeps the literal base for regeneration.
type NumberExpression struct {
	Kind  NumberKind
	Value float64
	Token *Token
}

func NewDecimalNumber(value float64) *NumberExpression {
	return &NumberExpression{Kind: DecimalNumber, Value: value}
}

func NewHexNumber(value float64) *NumberExpression {
	return &NumberExpression{Kind: HexNumber, Value: value}
}

func NewBinaryNumber(value float64) *NumberExpression {
	return &NumberExpression{Kind: BinaryNumber, Value: value}
}

// Render formats the value as a literal in the expression's base. Used
// when the expression carries no token to replay.
func (e *NumberExpression) Render() string {
	switch e.Kind {
	case HexNumber:
		if isWholeNumber(e.Value) {
			return fmt.Sprintf("0x%X", uint64(e.Value))
		}
	case BinaryNumber:
		if isWholeNumber(e.Value) {
			return "0b" + strconv.FormatUint(uint64(e.Value), 2)
		}
	}
	s := strconv.FormatFloat(e.Value, 'g', -1, 64)
	// strconv renders exponents as 1e+20; Lua reads 1e20.
	return strings.Replace(s, "e+", "e", 1)
}

func isWholeNumber(v float64) bool {
	return v == math.Trunc(v) && !math.IsInf(v, 0) && v >= 0 && v <= math.MaxUint64
}

func (e *NumberExpression) eachToken(visit func(*Token)) {
	if e.Token != nil {
		visit(e.Token)
	}
}
