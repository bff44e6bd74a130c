package lexer

import (
	"fmt"

	"fortio.org/safecast"

	"hatc/internal/source"
)

// Cursor is a byte-oriented position inside one source file.
type Cursor struct {
	file *source.File
	Off  uint32
}

func NewCursor(file *source.File) Cursor {
	return Cursor{file: file}
}

func (c *Cursor) EOF() bool {
	return int(c.Off) >= len(c.file.Content)
}

// Peek returns the current byte without consuming it. 0 at EOF.
func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.file.Content[c.Off]
}

// PeekAt returns the byte n positions ahead. 0 past EOF.
func (c *Cursor) PeekAt(n uint32) byte {
	idx := c.Off + n
	if int(idx) >= len(c.file.Content) {
		return 0
	}
	return c.file.Content[idx]
}

func (c *Cursor) Bump() {
	if !c.EOF() {
		c.Off++
	}
}

// Slice returns the source text between two offsets.
func (c *Cursor) Slice(start, end uint32) string {
	return string(c.file.Content[start:end])
}

// Len returns the file length as uint32.
func (c *Cursor) Len() uint32 {
	n, err := safecast.Conv[uint32](len(c.file.Content))
	if err != nil {
		panic(fmt.Errorf("file length overflow: %w", err))
	}
	return n
}
