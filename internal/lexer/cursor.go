package lexer

import (
	"fmt"

	"fortio.org/safecast"

	"luamend/internal/source"
)

// Cursor is a byte position inside the source buffer.
type Cursor struct {
	src   string
	off   uint32
	limit uint32
}

func NewCursor(src string) Cursor {
	limit, err := safecast.Conv[uint32](len(src))
	if err != nil {
		panic(fmt.Errorf("source length overflow: %w", err))
	}
	return Cursor{src: src, off: 0, limit: limit}
}

func (c *Cursor) EOF() bool {
	return c.off >= c.limit
}

// Peek reads the current byte without consuming it, 0 at EOF.
func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.src[c.off]
}

// PeekAt reads the byte n positions ahead, 0 past EOF.
func (c *Cursor) PeekAt(n uint32) byte {
	if c.off+n >= c.limit {
		return 0
	}
	return c.src[c.off+n]
}

// Bump consumes and returns the current byte, 0 at EOF.
func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.src[c.off]
	c.off++
	return b
}

// Eat consumes the next byte when it matches b.
func (c *Cursor) Eat(b byte) bool {
	if !c.EOF() && c.src[c.off] == b {
		c.off++
		return true
	}
	return false
}

// Mark remembers a position so a span can be produced later.
type Mark uint32

func (c *Cursor) Mark() Mark {
	return Mark(c.off)
}

func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{Start: uint32(m), End: c.off}
}

func (c *Cursor) Reset(m Mark) {
	c.off = uint32(m)
}

func (c *Cursor) Offset() uint32 {
	return c.off
}

// Slice returns the text between the mark and the current position.
func (c *Cursor) Slice(m Mark) string {
	return c.src[uint32(m):c.off]
}
