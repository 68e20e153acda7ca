package scriptor

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// StringReader is a string reader used for input parsing. It is the sole
// mutable view over the input during a parse: every candidate branch in the
// dispatcher clones its own reader so that trying one child can never affect
// a sibling's position.
type StringReader struct {
	Cursor int
	String string
}

// ReaderError indicates a StringReader error.
type ReaderError struct {
	Err    error
	Reader *StringReader
}

// ReaderInvalidValueError indicates an invalid value error.
type ReaderInvalidValueError struct {
	Type  ArgumentType // The expected value type
	Value string

	Err error // Optional underlying error
}

// Unwrap implements errors.Unwrap.
func (e *ReaderInvalidValueError) Unwrap() error { return e.Err }

// Error implements error.
func (e *ReaderInvalidValueError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("read invalid value %q for type %q", e.Value, e.Type)
}

// Unwrap implements errors.Unwrap.
func (e *ReaderError) Unwrap() error { return e.Err }

// Error renders the message followed by up to 10 characters of the input
// before the cursor ("..." in front if cut) and a "<--[HERE]" marker.
func (e *ReaderError) Error() string {
	if e.Reader == nil {
		return e.Err.Error()
	}
	cursor := min(e.Reader.Cursor, len(e.Reader.String))
	start := max(0, cursor-10)
	near := e.Reader.String[start:cursor]
	if start > 0 {
		near = "..." + near
	}
	return fmt.Sprintf("%s at position %d: %s<--[HERE]", e.Err.Error(), cursor, near)
}

// CanRead indicates whether a next rune can be read by a call to Read.
func (r *StringReader) CanRead() bool { return r.CanReadLen(1) }

// CanReadLen indicates whether the next length runes can be read.
func (r *StringReader) CanReadLen(length int) bool { return r.Cursor+length <= len(r.String) }

// Peek returns the next rune without incrementing the Cursor.
func (r *StringReader) Peek() rune { return rune(r.String[r.Cursor]) }

// PeekAt returns the rune offset runes ahead of the Cursor without
// incrementing it.
func (r *StringReader) PeekAt(offset int) rune { return rune(r.String[r.Cursor+offset]) }

// Skip increments the Cursor.
func (r *StringReader) Skip() { r.Cursor++ }

// SkipWhitespace advances the Cursor past a run of ASCII spaces.
func (r *StringReader) SkipWhitespace() {
	for r.CanRead() && r.Peek() == ' ' {
		r.Skip()
	}
}

// Expect requires the next rune to equal c, advancing past it on success.
func (r *StringReader) Expect(c rune) error {
	if !r.CanRead() || r.Peek() != c {
		return &CommandSyntaxError{Err: &ReaderError{
			Err:    fmt.Errorf("%w %q", ErrReaderExpectedSymbol, c),
			Reader: r,
		}}
	}
	r.Skip()
	return nil
}

// ErrReaderExpectedSymbol occurs when Expect does not find the requested rune.
var ErrReaderExpectedSymbol = errors.New("reader expected symbol")

// ReadBool tries to read a bool.
func (r *StringReader) ReadBool() (bool, error) {
	start := r.Cursor
	value, err := r.ReadString()
	if err != nil {
		return false, err
	}
	if len(value) == 0 {
		return false, &CommandSyntaxError{Err: &ReaderError{
			Err:    ErrReaderExpectedBool,
			Reader: r,
		}}
	}
	if strings.EqualFold(value, "true") {
		return true, nil
	} else if strings.EqualFold(value, "false") {
		return false, nil
	}
	r.Cursor = start
	return false, &CommandSyntaxError{Err: &ReaderError{
		Err: &ReaderInvalidValueError{
			Type:  Bool,
			Value: value,
		},
		Reader: r,
	}}
}

// Read returns the next rune.
func (r *StringReader) Read() rune {
	c := r.String[r.Cursor]
	r.Cursor++
	return rune(c)
}

// ReadString returns the next quoted or unquoted string.
func (r *StringReader) ReadString() (string, error) {
	if !r.CanRead() {
		return "", nil
	}
	next := r.Peek()
	if IsQuotedStringStart(next) {
		r.Skip()
		return r.ReadStringUntil(next)
	}
	return r.ReadUnquotedString(), nil
}

var (
	// ErrReaderInvalidEscape indicates an invalid escape error.
	ErrReaderInvalidEscape = errors.New("reader invalid escape character")
	// ErrReaderExpectedStartOfQuote occurs when a start quote is missing.
	ErrReaderExpectedStartOfQuote = errors.New("reader expected start of quote")
	// ErrReaderExpectedEndOfQuote occurs when an end quote is missing.
	ErrReaderExpectedEndOfQuote = errors.New("reader expected end of quote")
)

// ReadStringUntil reads a string until the terminator rune, honoring
// backslash escapes of the terminator and of the backslash itself. Any
// other escaped character fails.
func (r *StringReader) ReadStringUntil(terminator rune) (string, error) {
	var (
		result  strings.Builder
		escaped = false
	)
	for r.CanRead() {
		c := r.Read()
		if escaped {
			if c == terminator || c == SyntaxEscape {
				result.WriteRune(c)
				escaped = false
			} else {
				r.Cursor = r.Cursor - 1
				return "", &CommandSyntaxError{Err: &ReaderError{
					Err: &ReaderInvalidValueError{
						Value: string(c),
						Err:   ErrReaderInvalidEscape,
					},
					Reader: r,
				}}
			}
		} else if c == SyntaxEscape {
			escaped = true
		} else if c == terminator {
			return result.String(), nil
		} else {
			result.WriteRune(c)
		}
	}

	return "", &CommandSyntaxError{Err: &ReaderError{
		Err:    ErrReaderExpectedEndOfQuote,
		Reader: r,
	}}
}

// ReadUnquotedString reads the longest run of runes allowed in an unquoted
// string. It never fails; an empty prefix yields an empty string.
func (r *StringReader) ReadUnquotedString() string {
	start := r.Cursor
	for r.CanRead() && IsAllowedInUnquotedString(r.Peek()) {
		r.Skip()
	}
	return r.String[start:r.Cursor]
}

// ReadQuotedString reads a quoted string.
func (r *StringReader) ReadQuotedString() (string, error) {
	if !r.CanRead() {
		return "", nil
	}
	next := r.Peek()
	if !IsQuotedStringStart(next) {
		return "", &CommandSyntaxError{Err: &ReaderError{
			Err:    ErrReaderExpectedStartOfQuote,
			Reader: r,
		}}
	}
	r.Skip()
	return r.ReadStringUntil(next)
}

var (
	// ErrReaderExpectedBool occurs when the reader expected a bool.
	ErrReaderExpectedBool = errors.New("reader expected bool")
	// ErrReaderExpectedFloat occurs when the reader expected a float.
	ErrReaderExpectedFloat = errors.New("reader expected float")
	// ErrReaderExpectedDouble occurs when the reader expected a double (float64).
	ErrReaderExpectedDouble = errors.New("reader expected double")
	// ErrReaderExpectedInt occurs when the reader expected an int.
	ErrReaderExpectedInt = errors.New("reader expected int")
	// ErrReaderExpectedLong occurs when the reader expected a long (int64).
	ErrReaderExpectedLong = errors.New("reader expected long")

	// ErrReaderInvalidInt occurs when the reader read an invalid int value.
	ErrReaderInvalidInt = errors.New("reader invalid int")
	// ErrReaderInvalidLong occurs when the reader read an invalid long value.
	ErrReaderInvalidLong = errors.New("reader invalid long")
	// ErrReaderInvalidFloat occurs when the reader read an invalid float value.
	ErrReaderInvalidFloat = errors.New("reader invalid float")
	// ErrReaderInvalidDouble occurs when the reader read an invalid double value.
	ErrReaderInvalidDouble = errors.New("reader invalid double")
)

// ReadInt tries to read an int32.
func (r *StringReader) ReadInt() (int, error) {
	i, err := r.ReadInt32()
	return int(i), err
}

// ReadInt32 tries to read an int32.
func (r *StringReader) ReadInt32() (int32, error) {
	i, err := r.readInt(32, ErrReaderExpectedInt, ErrReaderInvalidInt)
	return int32(i), err
}

// ReadInt64 tries to read an int64, using the full number-body tokenizer and
// bit width (unlike a single-character peek, which would silently misparse
// every long value beyond the first digit).
func (r *StringReader) ReadInt64() (int64, error) {
	return r.readInt(64, ErrReaderExpectedLong, ErrReaderInvalidLong)
}

func (r *StringReader) readInt(bitSize int, expected, invalid error) (int64, error) {
	start := r.Cursor
	for r.CanRead() && IsAllowedNumber(r.Peek()) {
		r.Skip()
	}
	number := r.String[start:r.Cursor]
	if number == "" {
		return 0, &CommandSyntaxError{Err: &ReaderError{
			Err:    expected,
			Reader: r,
		}}
	}
	i, err := strconv.ParseInt(number, 10, bitSize)
	if err != nil {
		r.Cursor = start
		return 0, &CommandSyntaxError{Err: &ReaderError{
			Err: &ReaderInvalidValueError{
				Value: number,
				Err:   fmt.Errorf("%w (%q): %v", invalid, number, err),
			},
			Reader: r,
		}}
	}
	return i, nil
}

// ReadFloat32 tries to read a float32.
func (r *StringReader) ReadFloat32() (float32, error) {
	f, err := r.readFloat(32, ErrReaderExpectedFloat, ErrReaderInvalidFloat)
	return float32(f), err
}

// ReadFloat64 tries to read a float64.
func (r *StringReader) ReadFloat64() (float64, error) {
	return r.readFloat(64, ErrReaderExpectedDouble, ErrReaderInvalidDouble)
}

func (r *StringReader) readFloat(bitSize int, expected, invalid error) (float64, error) {
	start := r.Cursor
	for r.CanRead() && IsAllowedNumber(r.Peek()) {
		r.Skip()
	}
	number := r.String[start:r.Cursor]
	if number == "" {
		return 0, &CommandSyntaxError{Err: &ReaderError{
			Err:    expected,
			Reader: r,
		}}
	}
	f, err := strconv.ParseFloat(number, bitSize)
	if err != nil {
		r.Cursor = start
		return 0, &CommandSyntaxError{Err: &ReaderError{
			Err: &ReaderInvalidValueError{
				Value: number,
				Err:   fmt.Errorf("%w (%q): %v", invalid, number, err),
			},
			Reader: r,
		}}
	}
	return f, nil
}

// Remaining returns the remaining string beginning at the current Cursor.
func (r *StringReader) Remaining() string { return r.String[r.Cursor:] }

// RemainingLen returns the remaining string length beginning at the current Cursor.
func (r *StringReader) RemainingLen() int { return len(r.String) - r.Cursor }

// Consumed returns the prefix of String already passed by the Cursor.
func (r *StringReader) Consumed() string { return r.String[:r.Cursor] }

const (
	// SyntaxDoubleQuote is a double quote.
	SyntaxDoubleQuote rune = '"'
	// SyntaxSingleQuote is a single quote.
	SyntaxSingleQuote rune = '\''
	// SyntaxEscape is an escape.
	SyntaxEscape rune = '\\'
)

// IsAllowedNumber indicates whether c is an allowed number rune.
func IsAllowedNumber(c rune) bool { return c >= '0' && c <= '9' || c == '.' || c == '-' }

// IsQuotedStringStart indicates whether c is the start of a quoted string.
func IsQuotedStringStart(c rune) bool {
	return c == SyntaxDoubleQuote || c == SyntaxSingleQuote
}

// IsAllowedInUnquotedString indicates whether c is an allowed rune in an unquoted string.
func IsAllowedInUnquotedString(c rune) bool {
	return c >= '0' && c <= '9' ||
		c >= 'A' && c <= 'Z' ||
		c >= 'a' && c <= 'z' ||
		c == '_' || c == '-' ||
		c == '.' || c == '+'
}

// StringRange stores a half-open [Start, End) range over a string.
type StringRange struct{ Start, End int }

// Len returns End-Start.
func (r StringRange) Len() int { return r.End - r.Start }

// IsEmpty indicates whether Start and End are equal.
func (r *StringRange) IsEmpty() bool {
	return r.Start == r.End
}

// Contains reports whether cursor falls within [Start, End].
func (r StringRange) Contains(cursor int) bool { return cursor >= r.Start && cursor <= r.End }

// Copy copies the StringRange.
func (r StringRange) Copy() StringRange { return r }

// Get returns the substring of s from Start to End.
func (r *StringRange) Get(s string) string { return s[r.Start:r.End] }

// EncompassingRange returns the min and max StringRange of two ranges.
func EncompassingRange(r1, r2 *StringRange) *StringRange {
	return &StringRange{
		Start: min(r1.Start, r2.Start),
		End:   max(r1.End, r2.End),
	}
}

func min(x, y int) int {
	if x < y {
		return x
	}
	return y
}
func max(x, y int) int {
	if x > y {
		return x
	}
	return y
}
