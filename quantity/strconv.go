// Copyright 2020 Aleksandr Demakin. All rights reserved.

package quantity

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

const (
	delim = '.'

	// maxLiteralExponent bounds the exponent part of a literal, so that
	// a short input like "1e999999999" cannot request gigabytes of zeros.
	maxLiteralExponent = 999999
)

var (
	// ErrSyntax is returned, wrapped in a *ParseError, for malformed decimal literals.
	ErrSyntax = errors.New("invalid decimal literal")

	errEmptyInput = errors.New("empty input")
)

// ParseError describes a malformed decimal literal.
// Pos is the 1-based position of the offending symbol in the input, or 0 if unknown.
type ParseError struct {
	Input string
	Pos   int
	Msg   string
}

func (pe *ParseError) Error() string {
	if pe.Pos > 0 {
		return fmt.Sprintf("parsing %q failed: %s at pos %d", pe.Input, pe.Msg, pe.Pos)
	}
	return fmt.Sprintf("parsing %q failed: %s", pe.Input, pe.Msg)
}

func (pe *ParseError) Unwrap() error {
	return ErrSyntax
}

type posError struct {
	pos int
	err string
}

func newPosError(err string, pos int) *posError {
	return &posError{err: err, pos: pos}
}

func (pe posError) Error() string {
	return pe.err + fmt.Sprintf(" at pos %d", pe.pos)
}

// literal is a parsed decimal number: digits * 10^exp.
// digits has neither leading nor trailing zeros, and is empty for zero.
type literal struct {
	digits string
	exp    int
	neg    bool
}

func parseLiteral(s string) (literal, error) {
	prepared, offset, neg := prepareString(s)
	if len(prepared) == 0 {
		return literal{}, &ParseError{Input: s, Msg: errEmptyInput.Error()}
	}
	digits, e, err := doParse(prepared)
	if err != nil {
		var pe *posError
		if errors.As(err, &pe) {
			// add what we've trimmed before and +1 to start indices from 1.
			return literal{}, &ParseError{Input: s, Pos: pe.pos + offset + 1, Msg: pe.err}
		}
		return literal{}, &ParseError{Input: s, Msg: err.Error()}
	}
	return literal{digits: digits, exp: e, neg: neg}, nil
}

// doParse parses given decimal string.
// returns a string without leading and trailing zeros, and an exponent
func doParse(s string) (result string, e int, err error) {
	result, delimPos, e, err := removeLeadingZeros(s)
	if err != nil {
		return "", 0, err
	}
	result, eFromDelim := removeTrailingZerosString(result, delimPos)
	if len(result) == 0 {
		return "", 0, nil
	}
	return result, e + eFromDelim, nil
}

// prepareString cleans the string from ",-,+ symbols, and spaces.
func prepareString(s string) (prepared string, offset int, neg bool) {
	if len(s) == 0 {
		return "", 0, false
	}
	if s[0] == '"' {
		s = s[1:]
		offset++
	}
	if len(s) == 0 {
		return "", 0, false
	}
	if s[len(s)-1] == '"' {
		s = s[:len(s)-1]
	}
	if trimmed := strings.TrimLeftFunc(s, unicode.IsSpace); len(trimmed) != len(s) {
		offset += len(s) - len(trimmed)
		s = trimmed
	}
	s = strings.TrimRightFunc(s, unicode.IsSpace)
	if len(s) == 0 {
		return "", 0, false
	}
	if s[0] == '-' {
		neg = true
		offset++
		s = s[1:]
	} else if s[0] == '+' {
		offset++
		s = s[1:]
	}
	return s, offset, neg
}

func removeLeadingZeros(s string) (result string, delimPos int, e int, err error) {
	var b strings.Builder
	delimPos, firstNonZeroPos := -1, -1
	sawDigit := false
outer:
	for i, r := range s {
		switch {
		case '0' <= r && r <= '9':
			sawDigit = true
			if b.Len() == 0 {
				if r == '0' { // trim leading zeros
					continue
				}
				firstNonZeroPos = i
			}
			b.WriteRune(r)
		case r == 'e' || r == 'E':
			if !sawDigit {
				return "", 0, 0, newPosError("exponent without mantissa", i)
			}
			parsed, err := strconv.ParseInt(s[i+1:], 10, 32)
			if err != nil {
				return "", 0, 0, newPosError("error parsing exponent", i+1)
			}
			if parsed > maxLiteralExponent || parsed < -maxLiteralExponent {
				return "", 0, 0, newPosError("exponent out of range", i+1)
			}
			e = int(parsed)
			break outer
		case r == delim:
			if delimPos != -1 {
				return "", 0, 0, newPosError("unexpected delimiter", i)
			}
			delimPos = i
		default:
			return "", 0, 0, newPosError(fmt.Sprintf("unexpected symbol %q", r), i)
		}
	}
	if !sawDigit {
		return "", 0, 0, newPosError("no digits", 0)
	}
	if firstNonZeroPos == -1 { // a zero-only string
		return "", 0, 0, nil
	}

	result = b.String()

	// move delimPos to the beginning of the trimmed string
	if delimPos >= 0 {
		if delimPos < firstNonZeroPos {
			firstNonZeroPos--
		}
		delimPos -= firstNonZeroPos
	} else { // if there is no delim, add one at the end of the string 123 --> 123.
		delimPos = len(result)
	}

	return result, delimPos, e, nil
}

func removeTrailingZerosString(s string, delimPos int) (result string, e int) {
	for {
		l := len(s)
		if l == 0 || s[l-1] != '0' {
			break
		}
		s = s[:l-1]
	}
	return s, delimPos - len(s)
}

// formatPlain writes digits * 10^exp in plain notation.
// digits must not have leading zeros.
func formatPlain(b *strings.Builder, neg bool, digits string, exp int) {
	if len(digits) == 0 {
		b.WriteByte('0')
		return
	}
	if neg {
		b.WriteByte('-')
	}
	switch {
	case exp >= 0:
		b.WriteString(digits)
		writeZeros(b, exp)
	default:
		if diff := len(digits) + exp; diff <= 0 { // add leading zeros and a delimiter
			b.WriteByte('0')
			b.WriteByte(delim)
			writeZeros(b, -diff)
			b.WriteString(digits)
		} else { // insert a delimiter
			b.WriteString(digits[:diff])
			b.WriteByte(delim)
			b.WriteString(digits[diff:])
		}
	}
}

func writeZeros(b *strings.Builder, count int) {
	for ; count > 0; count-- {
		b.WriteByte('0')
	}
}
