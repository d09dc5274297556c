// Package buffer implements a text buffer, which grows in both directions.
//
// Every codepoint of a TextBuffer is tagged with a Field,
// so that the parts of a formatted number can be located later.
package buffer

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Field tells which part of a formatted number a codepoint belongs to.
type Field uint8

const (
	// None is used for literal text.
	None Field = iota
	Integer
	Fraction
	DecimalSeparator
	GroupingSeparator
	Sign
	Prefix
	Suffix
	Percent
	Currency
	Exponent
)

var fieldNames = [...]string{
	None:              "none",
	Integer:           "integer",
	Fraction:          "fraction",
	DecimalSeparator:  "decimal-separator",
	GroupingSeparator: "grouping-separator",
	Sign:              "sign",
	Prefix:            "prefix",
	Suffix:            "suffix",
	Percent:           "percent",
	Currency:          "currency",
	Exponent:          "exponent",
}

func (f Field) String() string {
	if int(f) < len(fieldNames) {
		return fieldNames[f]
	}
	return fmt.Sprintf("Field(%d)", f)
}

const defaultCapacity = 40

// TextBuffer is a sequence of codepoints with their fields.
// The content occupies chars[zero:zero+length], and free space is kept at both ends,
// so that prepending and appending are amortized O(1).
// The zero value is an empty buffer ready to use.
type TextBuffer struct {
	chars  []rune
	fields []Field
	zero   int
	length int
}

// New returns an empty buffer.
func New() *TextBuffer {
	return NewWithCapacity(defaultCapacity)
}

// NewWithCapacity returns an empty buffer with the space for n codepoints.
func NewWithCapacity(n int) *TextBuffer {
	b := &TextBuffer{}
	b.grow(n)
	return b
}

// Len returns the number of codepoints.
func (b *TextBuffer) Len() int {
	return b.length
}

// RuneAt returns the codepoint at index.
func (b *TextBuffer) RuneAt(index int) rune {
	b.checkIndex(index, b.length-1)
	return b.chars[b.zero+index]
}

// FieldAt returns the field of the codepoint at index.
func (b *TextBuffer) FieldAt(index int) Field {
	b.checkIndex(index, b.length-1)
	return b.fields[b.zero+index]
}

// Fields returns the fields of all codepoints.
func (b *TextBuffer) Fields() []Field {
	return append([]Field(nil), b.fields[b.zero:b.zero+b.length]...)
}

// FieldSpan returns the range [start, end) of the first run of codepoints with given field.
// ok is false, if there is no such codepoint.
func (b *TextBuffer) FieldSpan(field Field) (start, end int, ok bool) {
	fields := b.fields[b.zero : b.zero+b.length]
	for start < len(fields) && fields[start] != field {
		start++
	}
	if start == len(fields) {
		return 0, 0, false
	}
	end = start
	for end < len(fields) && fields[end] == field {
		end++
	}
	return start, end, true
}

// Clear removes all codepoints, keeping the memory.
func (b *TextBuffer) Clear() {
	b.zero = len(b.chars) / 2
	b.length = 0
}

// String returns the content.
func (b *TextBuffer) String() string {
	var sb strings.Builder
	sb.Grow(b.length)
	for _, r := range b.chars[b.zero : b.zero+b.length] {
		sb.WriteRune(r)
	}
	return sb.String()
}

// Insert inserts s at index, which must be in [0, Len()].
// Returns the number of inserted codepoints.
func (b *TextBuffer) Insert(index int, s string, field Field) int {
	count := utf8.RuneCountInString(s)
	if count == 0 {
		b.checkIndex(index, b.length)
		return 0
	}
	pos := b.prepareForInsert(index, count)
	for _, r := range s {
		b.chars[pos] = r
		b.fields[pos] = field
		pos++
	}
	return count
}

// InsertRune inserts r at index, which must be in [0, Len()].
// Returns the number of inserted codepoints, which is always 1.
func (b *TextBuffer) InsertRune(index int, r rune, field Field) int {
	pos := b.prepareForInsert(index, 1)
	b.chars[pos] = r
	b.fields[pos] = field
	return 1
}

// InsertRunes inserts rs at index, which must be in [0, Len()].
// Returns the number of inserted codepoints.
func (b *TextBuffer) InsertRunes(index int, rs []rune, field Field) int {
	if len(rs) == 0 {
		b.checkIndex(index, b.length)
		return 0
	}
	pos := b.prepareForInsert(index, len(rs))
	copy(b.chars[pos:], rs)
	for i := range rs {
		b.fields[pos+i] = field
	}
	return len(rs)
}

// Append adds s to the end of the buffer.
func (b *TextBuffer) Append(s string, field Field) int {
	return b.Insert(b.length, s, field)
}

// Prepend adds s to the beginning of the buffer.
func (b *TextBuffer) Prepend(s string, field Field) int {
	return b.Insert(0, s, field)
}

// prepareForInsert makes room for count codepoints at index,
// and returns the position of the first of them in the underlying slices.
func (b *TextBuffer) prepareForInsert(index, count int) int {
	b.checkIndex(index, b.length)
	switch {
	case index == 0 && b.zero >= count:
		b.zero -= count
	case index == b.length && b.zero+b.length+count <= len(b.chars):
	case b.zero+b.length+count <= len(b.chars):
		at := b.zero + index
		copy(b.chars[at+count:], b.chars[at:b.zero+b.length])
		copy(b.fields[at+count:], b.fields[at:b.zero+b.length])
	default:
		b.reallocate(index, count)
	}
	b.length += count
	return b.zero + index
}

// reallocate moves the content to new slices twice as large as needed,
// leaving a gap of count codepoints at index.
func (b *TextBuffer) reallocate(index, count int) {
	size := (b.length + count) * 2
	zero := size/2 - (b.length+count)/2
	chars, fields := make([]rune, size), make([]Field, size)
	copy(chars[zero:], b.chars[b.zero:b.zero+index])
	copy(chars[zero+index+count:], b.chars[b.zero+index:b.zero+b.length])
	copy(fields[zero:], b.fields[b.zero:b.zero+index])
	copy(fields[zero+index+count:], b.fields[b.zero+index:b.zero+b.length])
	b.chars, b.fields, b.zero = chars, fields, zero
}

func (b *TextBuffer) grow(n int) {
	b.chars, b.fields = make([]rune, n), make([]Field, n)
	b.zero = n / 2
}

func (b *TextBuffer) checkIndex(index, limit int) {
	if index < 0 || index > limit {
		panic(fmt.Sprintf("buffer: index %d out of range [0, %d]", index, limit))
	}
}
