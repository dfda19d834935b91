package convert

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"luamend/internal/nodes"
)

// parseNumber reads a numeric literal's text into its value and base.
// Underscore separators are accepted anywhere between digits.
func parseNumber(text string) (nodes.NumberKind, float64, error) {
	clean := strings.ReplaceAll(text, "_", "")
	if clean == "" {
		return 0, 0, errors.New("empty number literal")
	}

	if len(clean) > 2 && clean[0] == '0' {
		switch clean[1] {
		case 'x', 'X':
			value, err := parseHexNumber(clean[2:])
			return nodes.HexNumber, value, err
		case 'b', 'B':
			digits, err := strconv.ParseUint(clean[2:], 2, 64)
			if err != nil {
				return 0, 0, fmt.Errorf("binary literal: %w", err)
			}
			return nodes.BinaryNumber, float64(digits), nil
		}
	}

	value, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("decimal literal: %w", err)
	}
	return nodes.DecimalNumber, value, nil
}

// parseHexNumber parses the part after `0x`: hex digits, an optional
// fraction and an optional binary exponent (`p`).
func parseHexNumber(text string) (float64, error) {
	mantissa := text
	exponent := 0
	if i := strings.IndexAny(text, "pP"); i >= 0 {
		mantissa = text[:i]
		parsed, err := strconv.Atoi(text[i+1:])
		if err != nil {
			return 0, fmt.Errorf("hex exponent: %w", err)
		}
		exponent = parsed
	}

	integer := mantissa
	fraction := ""
	if i := strings.IndexByte(mantissa, '.'); i >= 0 {
		integer = mantissa[:i]
		fraction = mantissa[i+1:]
	}
	if integer == "" && fraction == "" {
		return 0, errors.New("hex literal without digits")
	}

	value := 0.0
	for i := 0; i < len(integer); i++ {
		digit, ok := hexDigitValue(integer[i])
		if !ok {
			return 0, fmt.Errorf("invalid hex digit %q", integer[i])
		}
		value = value*16 + float64(digit)
	}
	scale := 1.0 / 16
	for i := 0; i < len(fraction); i++ {
		digit, ok := hexDigitValue(fraction[i])
		if !ok {
			return 0, fmt.Errorf("invalid hex digit %q", fraction[i])
		}
		value += float64(digit) * scale
		scale /= 16
	}
	if exponent != 0 {
		value *= math.Pow(2, float64(exponent))
	}
	return value, nil
}

func hexDigitValue(b byte) (int, bool) {
	switch {
	case b >= '0' && b <= '9':
		return int(b - '0'), true
	case b >= 'a' && b <= 'f':
		return int(b-'a') + 10, true
	case b >= 'A' && b <= 'F':
		return int(b-'A') + 10, true
	default:
		return 0, false
	}
}

// decodeStringToken turns a string literal's surface text (quotes or
// long brackets included) into its value.
func decodeStringToken(text string) (string, error) {
	if text == "" {
		return "", errors.New("empty string literal")
	}
	switch text[0] {
	case '\'', '"':
		if len(text) < 2 {
			return "", errors.New("unterminated string literal")
		}
		return decodeEscapes(text[1 : len(text)-1])
	case '[':
		return decodeLongString(text)
	default:
		return "", fmt.Errorf("unrecognized string delimiter %q", text[0])
	}
}

// decodeLongString strips the `[=*[` and `]=*]` brackets. A newline
// immediately after the opening bracket is not part of the value.
func decodeLongString(text string) (string, error) {
	level := 0
	for 1+level < len(text) && text[1+level] == '=' {
		level++
	}
	open := 2 + level
	end := len(text) - open
	if end < open {
		return "", errors.New("malformed long string")
	}
	body := text[open:end]
	if strings.HasPrefix(body, "\r\n") {
		body = body[2:]
	} else if strings.HasPrefix(body, "\n") {
		body = body[1:]
	}
	return body, nil
}

// decodeInterpSegment decodes one literal segment of an interpolated
// string. The text includes its one-byte delimiters (backtick or brace)
// on both sides.
func decodeInterpSegment(text string) (string, error) {
	if len(text) < 2 {
		return "", errors.New("malformed interpolated string segment")
	}
	return decodeEscapes(text[1 : len(text)-1])
}

func decodeEscapes(body string) (string, error) {
	if !strings.ContainsRune(body, '\\') {
		return body, nil
	}
	var out strings.Builder
	out.Grow(len(body))
	for i := 0; i < len(body); {
		b := body[i]
		if b != '\\' {
			out.WriteByte(b)
			i++
			continue
		}
		if i+1 >= len(body) {
			return "", errors.New("dangling escape")
		}
		i++
		switch e := body[i]; e {
		case 'a':
			out.WriteByte(7)
			i++
		case 'b':
			out.WriteByte(8)
			i++
		case 'f':
			out.WriteByte(12)
			i++
		case 'n':
			out.WriteByte('\n')
			i++
		case 'r':
			out.WriteByte('\r')
			i++
		case 't':
			out.WriteByte('\t')
			i++
		case 'v':
			out.WriteByte(11)
			i++
		case '\\', '"', '\'', '`', '{':
			out.WriteByte(e)
			i++
		case '\n':
			out.WriteByte('\n')
			i++
		case '\r':
			out.WriteByte('\n')
			i++
			if i < len(body) && body[i] == '\n' {
				i++
			}
		case 'z':
			i++
			for i < len(body) && isSpaceByte(body[i]) {
				i++
			}
		case 'x':
			if i+2 >= len(body) {
				return "", errors.New("truncated \\x escape")
			}
			value, err := strconv.ParseUint(body[i+1:i+3], 16, 8)
			if err != nil {
				return "", fmt.Errorf("\\x escape: %w", err)
			}
			out.WriteByte(byte(value))
			i += 3
		case 'u':
			if i+1 >= len(body) || body[i+1] != '{' {
				return "", errors.New("\\u escape without braces")
			}
			end := strings.IndexByte(body[i+2:], '}')
			if end < 0 {
				return "", errors.New("unterminated \\u escape")
			}
			value, err := strconv.ParseUint(body[i+2:i+2+end], 16, 32)
			if err != nil || value > utf8.MaxRune {
				return "", errors.New("invalid \\u escape")
			}
			out.WriteRune(rune(value))
			i += 2 + end + 1
		default:
			if e >= '0' && e <= '9' {
				digits := 0
				value := 0
				for digits < 3 && i < len(body) && body[i] >= '0' && body[i] <= '9' {
					value = value*10 + int(body[i]-'0')
					digits++
					i++
				}
				if value > 255 {
					return "", fmt.Errorf("decimal escape %d out of range", value)
				}
				out.WriteByte(byte(value))
			} else {
				return "", fmt.Errorf("unknown escape \\%c", e)
			}
		}
	}
	return out.String(), nil
}

func isSpaceByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\v' || b == '\f'
}
