package modifier

import (
	"errors"
	"fmt"
	"strings"
)

// ArgNumLimit is the exclusive upper bound of placeholder numbers.
// In a CompiledPattern, values below it are placeholders, and values
// starting from it are lengths of literal segments.
const ArgNumLimit = 0x100

var (
	// ErrPatternSyntax is returned for malformed placeholders.
	ErrPatternSyntax = errors.New("pattern syntax error")
	// ErrPlaceholderCount is returned if a pattern has a wrong number of placeholders.
	ErrPlaceholderCount = errors.New("wrong number of placeholders")
)

// CompiledPattern is a pattern with {n} placeholders in the form
//
//	[argLimit, segment, segment, ...]
//
// where argLimit is the greatest placeholder number plus one, and each segment
// is either a placeholder number, or ArgNumLimit+n followed by n runes of literal text.
type CompiledPattern []rune

// ArgLimit returns the greatest placeholder number plus one.
func (p CompiledPattern) ArgLimit() int {
	if len(p) == 0 {
		return 0
	}
	return int(p[0])
}

// String returns the pattern text. Braces and apostrophes in literal text are quoted.
func (p CompiledPattern) String() string {
	var sb strings.Builder
	for i := 1; i < len(p); i++ {
		if p[i] < ArgNumLimit {
			fmt.Fprintf(&sb, "{%d}", p[i])
			continue
		}
		n := int(p[i] - ArgNumLimit)
		if i+1+n > len(p) {
			n = len(p) - i - 1
		}
		for _, r := range p[i+1 : i+1+n] {
			switch r {
			case '\'':
				sb.WriteString("''")
			case '{', '}':
				sb.WriteByte('\'')
				sb.WriteRune(r)
				sb.WriteByte('\'')
			default:
				sb.WriteRune(r)
			}
		}
		i += n
	}
	return sb.String()
}

// CompilePattern compiles text like "{0} items" into a CompiledPattern.
// An apostrophe quotes a following brace up to the next apostrophe, and two apostrophes
// stand for one. The placeholder count, that is the greatest placeholder number plus one,
// must be in [minArgs, maxArgs].
func CompilePattern(text string, minArgs, maxArgs int) (CompiledPattern, error) {
	runes := []rune(text)
	compiled := CompiledPattern{0}
	maxArg, segmentStart, inQuote := -1, -1, false
	closeSegment := func() {
		if segmentStart >= 0 {
			compiled[segmentStart] = ArgNumLimit + rune(len(compiled)-segmentStart-1)
			segmentStart = -1
		}
	}
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == '\'':
			switch {
			case i+1 < len(runes) && runes[i+1] == '\'':
				i++
			case inQuote:
				inQuote = false
				continue
			case i+1 < len(runes) && (runes[i+1] == '{' || runes[i+1] == '}'):
				i++
				r = runes[i]
				inQuote = true
			}
		case r == '{' && !inQuote:
			closeSegment()
			end := i + 1
			for end < len(runes) && '0' <= runes[end] && runes[end] <= '9' {
				end++
			}
			if end == i+1 || end == len(runes) || runes[end] != '}' || (end-i > 2 && runes[i+1] == '0') {
				return nil, fmt.Errorf("%w: bad placeholder at pos %d in %q", ErrPatternSyntax, i+1, text)
			}
			arg := 0
			for _, d := range runes[i+1 : end] {
				if arg = arg*10 + int(d-'0'); arg >= ArgNumLimit {
					return nil, fmt.Errorf("%w: placeholder number at pos %d in %q is too large", ErrPatternSyntax, i+1, text)
				}
			}
			if arg > maxArg {
				maxArg = arg
			}
			compiled = append(compiled, rune(arg))
			i = end
			continue
		}
		if segmentStart < 0 {
			segmentStart = len(compiled)
			compiled = append(compiled, ArgNumLimit)
		}
		compiled = append(compiled, r)
	}
	closeSegment()
	argLimit := maxArg + 1
	if argLimit < minArgs || argLimit > maxArgs {
		return nil, fmt.Errorf("%w: %q has %d, want from %d to %d", ErrPlaceholderCount, text, argLimit, minArgs, maxArgs)
	}
	compiled[0] = rune(argLimit)
	return compiled, nil
}
