package convert

import (
	"testing"

	"luamend/internal/nodes"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		kind    nodes.NumberKind
		want    float64
		wantErr bool
	}{
		{name: "integer", text: "42", kind: nodes.DecimalNumber, want: 42},
		{name: "fraction", text: "0.25", kind: nodes.DecimalNumber, want: 0.25},
		{name: "exponent", text: "1e3", kind: nodes.DecimalNumber, want: 1000},
		{name: "negative exponent", text: "25e-2", kind: nodes.DecimalNumber, want: 0.25},
		{name: "separators", text: "1_000_000", kind: nodes.DecimalNumber, want: 1e6},
		{name: "hex", text: "0x10", kind: nodes.HexNumber, want: 16},
		{name: "hex fraction", text: "0x1.8", kind: nodes.HexNumber, want: 1.5},
		{name: "hex exponent", text: "0x1p4", kind: nodes.HexNumber, want: 16},
		{name: "hex fraction with exponent", text: "0x1.8p1", kind: nodes.HexNumber, want: 3},
		{name: "binary", text: "0b1010", kind: nodes.BinaryNumber, want: 10},
		{name: "binary separators", text: "0b10_10", kind: nodes.BinaryNumber, want: 10},
		{name: "empty", text: "", wantErr: true},
		{name: "bad hex digit", text: "0xg", wantErr: true},
		{name: "hex without digits", text: "0x.", wantErr: true},
		{name: "decimal overflow", text: "1e999", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, value, err := parseNumber(tt.text)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseNumber(%q) = %g, want error", tt.text, value)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseNumber(%q): %v", tt.text, err)
			}
			if kind != tt.kind || value != tt.want {
				t.Fatalf("parseNumber(%q) = %d, %g, want %d, %g", tt.text, kind, value, tt.kind, tt.want)
			}
		})
	}
}

func TestDecodeStringToken(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    string
		wantErr bool
	}{
		{name: "double quoted", text: `"abc"`, want: "abc"},
		{name: "single quoted", text: `'abc'`, want: "abc"},
		{name: "named escapes", text: `"\a\b\f\n\r\t\v"`, want: "\a\b\f\n\r\t\v"},
		{name: "quote escapes", text: `"\"\'\\"`, want: `"'\`},
		{name: "decimal escape", text: `"\65"`, want: "A"},
		{name: "short decimal escape", text: `"\0x"`, want: "\x00x"},
		{name: "hex escape", text: `"\x41\x42"`, want: "AB"},
		{name: "unicode escape", text: `"\u{1F600}"`, want: "\U0001F600"},
		{name: "skip whitespace escape", text: "\"a\\z  \n  b\"", want: "ab"},
		{name: "long string", text: "[[abc]]", want: "abc"},
		{name: "long string skips first newline", text: "[[\nabc]]", want: "abc"},
		{name: "long string keeps inner escapes", text: `[[a\nb]]`, want: `a\nb`},
		{name: "leveled", text: "[=[a]]b]=]", want: "a]]b"},
		{name: "decimal escape out of range", text: `"\256"`, wantErr: true},
		{name: "unknown escape", text: `"\q"`, wantErr: true},
		{name: "truncated hex escape", text: `"\x4"`, wantErr: true},
		{name: "unterminated unicode escape", text: `"\u{41"`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeStringToken(tt.text)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("decodeStringToken(%q) = %q, want error", tt.text, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("decodeStringToken(%q): %v", tt.text, err)
			}
			if got != tt.want {
				t.Fatalf("decodeStringToken(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}
