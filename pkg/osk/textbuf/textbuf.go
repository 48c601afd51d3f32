// Package textbuf is the bounded, caret-addressed text the keyboard edits.
package textbuf

import (
	"strings"

	"github.com/BrandonKowalski/osk/pkg/osk/grid"
)

// DefaultMaxLength applies when a buffer is created with a non-positive bound.
const DefaultMaxLength = 512

// PasswordMask is substituted for every rune when a password buffer is displayed.
const PasswordMask = "*"

type Buffer struct {
	runes    []rune
	caret    int
	max      int
	password bool
}

func New(maxLength int, password bool) *Buffer {
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}
	return &Buffer{max: maxLength, password: password}
}

// Insert adds s at the caret. It returns false and leaves the buffer untouched
// when the result would exceed the bound.
func (b *Buffer) Insert(s string) bool {
	if s == "" {
		return true
	}
	add := []rune(s)
	if len(b.runes)+len(add) > b.max {
		return false
	}

	out := make([]rune, 0, len(b.runes)+len(add))
	out = append(out, b.runes[:b.caret]...)
	out = append(out, add...)
	out = append(out, b.runes[b.caret:]...)
	b.runes = out
	b.caret += len(add)
	return true
}

// Erase removes the rune before the caret.
func (b *Buffer) Erase() bool {
	if b.caret == 0 {
		return false
	}
	b.runes = append(b.runes[:b.caret-1], b.runes[b.caret:]...)
	b.caret--
	return true
}

// Delete removes the rune after the caret.
func (b *Buffer) Delete() bool {
	if b.caret >= len(b.runes) {
		return false
	}
	b.runes = append(b.runes[:b.caret], b.runes[b.caret+1:]...)
	return true
}

// MoveCaret steps the caret one rune. The buffer is single line, so up and
// down do nothing.
func (b *Buffer) MoveCaret(d grid.Direction) bool {
	switch d {
	case grid.Left:
		if b.caret > 0 {
			b.caret--
			return true
		}
	case grid.Right:
		if b.caret < len(b.runes) {
			b.caret++
			return true
		}
	}
	return false
}

// Replace swaps the whole content, truncating to the bound, and puts the caret at the end.
func (b *Buffer) Replace(s string) {
	r := []rune(s)
	if len(r) > b.max {
		r = r[:b.max]
	}
	b.runes = append([]rune(nil), r...)
	b.caret = len(b.runes)
}

func (b *Buffer) Text() string {
	return string(b.runes)
}

// Display is the text as it should be drawn: masked in password mode.
func (b *Buffer) Display() string {
	if b.password {
		return strings.Repeat(PasswordMask, len(b.runes))
	}
	return string(b.runes)
}

func (b *Buffer) Len() int {
	return len(b.runes)
}

func (b *Buffer) Caret() int {
	return b.caret
}

func (b *Buffer) MaxLength() int {
	return b.max
}

func (b *Buffer) Password() bool {
	return b.password
}

func (b *Buffer) IsEmpty() bool {
	return len(b.runes) == 0
}

func (b *Buffer) IsFull() bool {
	return len(b.runes) >= b.max
}
