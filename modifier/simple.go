package modifier

import (
	"errors"
	"fmt"

	"github.com/avdva/numfmt/buffer"
	"github.com/avdva/numfmt/properties"
)

// ErrExportUnsupported is returned by modifiers, which have no legacy properties equivalent.
var ErrExportUnsupported = fmt.Errorf("export: %w", errors.ErrUnsupported)

// SimpleModifier adds the literal text of a single-placeholder pattern, like "{0} km".
type SimpleModifier struct {
	pattern CompiledPattern
	field   buffer.Field
	// prefix and suffix are pattern[prefixStart:prefixStart+prefixLen] and so on.
	prefixStart, prefixLen int
	suffixStart, suffixLen int
}

// NewSimple returns a modifier for a pattern with exactly one placeholder {0}.
func NewSimple(pattern CompiledPattern, field buffer.Field) (*SimpleModifier, error) {
	m := &SimpleModifier{pattern: pattern, field: field}
	if err := m.decode(); err != nil {
		return nil, err
	}
	return m, nil
}

// NewSimpleFromText compiles text and returns a modifier for it.
func NewSimpleFromText(text string, field buffer.Field) (*SimpleModifier, error) {
	compiled, err := CompilePattern(text, 1, 1)
	if err != nil {
		return nil, err
	}
	return NewSimple(compiled, field)
}

// decode walks the pattern once: [1, (prefix segment), 0, (suffix segment)].
func (m *SimpleModifier) decode() error {
	p := m.pattern
	if p.ArgLimit() != 1 {
		return fmt.Errorf("%w: the pattern %q must have one placeholder", ErrPlaceholderCount, p)
	}
	i := 1
	segment := func() (start, length int, err error) {
		if i >= len(p) || p[i] < ArgNumLimit {
			return 0, 0, nil
		}
		length = int(p[i] - ArgNumLimit)
		start = i + 1
		if start+length > len(p) {
			return 0, 0, fmt.Errorf("%w: segment at %d overflows the pattern", ErrPatternSyntax, i)
		}
		i = start + length
		return start, length, nil
	}
	var err error
	if m.prefixStart, m.prefixLen, err = segment(); err != nil {
		return err
	}
	if i >= len(p) || p[i] != 0 {
		return fmt.Errorf("%w: the pattern %q must have one placeholder", ErrPlaceholderCount, p)
	}
	i++
	if m.suffixStart, m.suffixLen, err = segment(); err != nil {
		return err
	}
	if i != len(p) {
		return fmt.Errorf("%w: the pattern %q must have one placeholder", ErrPlaceholderCount, p)
	}
	return nil
}

// Apply inserts the suffix at right, and then the prefix at left.
func (m *SimpleModifier) Apply(b *buffer.TextBuffer, left, right int) int {
	return m.apply(b, left, right)
}

// Length returns the same value as Apply, without touching any buffer.
func (m *SimpleModifier) Length() int {
	return m.apply(nil, 0, 0)
}

// apply only counts the codepoints if b is nil.
func (m *SimpleModifier) apply(b *buffer.TextBuffer, left, right int) int {
	var n int
	if m.suffixLen > 0 {
		if b != nil {
			b.InsertRunes(right, m.pattern[m.suffixStart:m.suffixStart+m.suffixLen], m.field)
		}
		n += m.suffixLen
	}
	if m.prefixLen > 0 {
		if b != nil {
			b.InsertRunes(left, m.pattern[m.prefixStart:m.prefixStart+m.prefixLen], m.field)
		}
		n += m.prefixLen
	}
	return n
}

// PrefixLength returns the number of codepoints before the placeholder.
func (m *SimpleModifier) PrefixLength() int {
	return m.prefixLen
}

// Export always fails, a compiled pattern cannot be expressed with affix properties.
func (m *SimpleModifier) Export(*properties.Properties) error {
	return ErrExportUnsupported
}

// Pattern returns the pattern text.
func (m *SimpleModifier) Pattern() string {
	return m.pattern.String()
}
