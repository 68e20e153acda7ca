package scriptor

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Builtin argument types.
var (
	// String argument type is quoted or unquoted.
	String ArgumentType = QuotablePhase
	// StringWord argument type is a single word.
	StringWord ArgumentType = SingleWord
	// StringPhrase argument type is the remainder of the input, unquoted.
	StringPhrase ArgumentType = GreedyPhrase
	// Bool argument type.
	Bool ArgumentType = &BoolArgumentType{}

	// Int32 argument type, unbounded.
	Int32 ArgumentType = &Int32ArgumentType{Min: MinInt32, Max: MaxInt32}
	// Int64 argument type, unbounded.
	Int64 ArgumentType = &Int64ArgumentType{Min: MinInt64, Max: MaxInt64}
	// Int is an alias of Int32.
	Int = Int32

	// Float32 argument type, unbounded.
	Float32 ArgumentType = &Float32ArgumentType{Min: MinFloat32, Max: MaxFloat32}
	// Float64 argument type, unbounded.
	Float64 ArgumentType = &Float64ArgumentType{Min: MinFloat64, Max: MaxFloat64}
)

// Default minimums and maximums of builtin numeric ArgumentType values.
const (
	MinInt32   = math.MinInt32
	MaxInt32   = math.MaxInt32
	MinInt64   = math.MinInt64
	MaxInt64   = math.MaxInt64
	MinFloat32 = -math.MaxFloat32
	MaxFloat32 = math.MaxFloat32
	MinFloat64 = -math.MaxFloat64
	MaxFloat64 = math.MaxFloat64
)

// ArgumentType is a parsable argument type.
type ArgumentType interface {
	// Parse parses the argument from the given reader input.
	Parse(rd *StringReader) (interface{}, error)
	// String returns the name of the type.
	String() string
}

// ArgumentTypeFuncs is a convenient struct implementing ArgumentType out of
// plain functions, for one-off argument types that don't warrant a named
// type.
type ArgumentTypeFuncs struct {
	Name    string
	ParseFn func(rd *StringReader) (interface{}, error)
	// SuggestionsFn, if set, is used by ProvideSuggestions.
	SuggestionsFn func(ctx *CommandContext, builder *SuggestionsBuilder) *Suggestions
	// ExamplesFn, if set, is used by node Examples for ambiguity detection.
	ExamplesFn func() []string
}

func (t *ArgumentTypeFuncs) Parse(rd *StringReader) (interface{}, error) { return t.ParseFn(rd) }
func (t *ArgumentTypeFuncs) String() string                              { return t.Name }

// Suggestions implements SuggestionProvider.
func (t *ArgumentTypeFuncs) Suggestions(ctx *CommandContext, builder *SuggestionsBuilder) *Suggestions {
	if t.SuggestionsFn == nil {
		return emptySuggestions
	}
	return t.SuggestionsFn(ctx, builder)
}

// Examples implements ExampleProvider.
func (t *ArgumentTypeFuncs) Examples() []string {
	if t.ExamplesFn == nil {
		return nil
	}
	return t.ExamplesFn()
}

// Int is the same as CommandContext.Int32.
func (c *CommandContext) Int(argumentName string) int { return int(c.Int32(argumentName)) }

// Int32 returns the parsed int32 argument from the command context.
// It returns the zero-value if not found.
func (c *CommandContext) Int32(argumentName string) int32 {
	v, _ := c.argument(argumentName).(int32)
	return v
}

// Int64 returns the parsed int64 argument from the command context.
// It returns the zero-value if not found.
func (c *CommandContext) Int64(argumentName string) int64 {
	v, _ := c.argument(argumentName).(int64)
	return v
}

// Bool returns the parsed bool argument from the command context.
// It returns the zero-value if not found.
func (c *CommandContext) Bool(argumentName string) bool {
	v, _ := c.argument(argumentName).(bool)
	return v
}

// Float32 returns the parsed float32 argument from the command context.
// It returns the zero-value if not found.
func (c *CommandContext) Float32(argumentName string) float32 {
	v, _ := c.argument(argumentName).(float32)
	return v
}

// Float64 returns the parsed float64 argument from the command context.
// It returns the zero-value if not found.
func (c *CommandContext) Float64(argumentName string) float64 {
	v, _ := c.argument(argumentName).(float64)
	return v
}

// String returns the parsed string argument from the command context.
// It returns the zero-value if not found.
func (c *CommandContext) String(argumentName string) string {
	v, _ := c.argument(argumentName).(string)
	return v
}

func (c *CommandContext) argument(name string) interface{} {
	if c.Arguments == nil {
		return nil
	}
	r, ok := c.Arguments[name]
	if !ok {
		return nil
	}
	return r.Result
}

// StringType is a string ArgumentType.
type StringType uint8

// Builtin string argument types.
const (
	SingleWord    StringType = iota // A single unquoted word.
	QuotablePhase                   // A word, or a "quoted phrase".
	GreedyPhrase                    // The remainder of the input, unquoted.
)

func (t StringType) String() string { return "string" }

// Parse implements ArgumentType.
func (t StringType) Parse(rd *StringReader) (interface{}, error) {
	switch t {
	case GreedyPhrase:
		text := rd.Remaining()
		rd.Cursor = len(rd.String)
		return text, nil
	case SingleWord:
		return rd.ReadUnquotedString(), nil
	default:
		return rd.ReadString()
	}
}

// Examples implements ExampleProvider.
func (t StringType) Examples() []string {
	switch t {
	case GreedyPhrase:
		return []string{"word", "words with spaces"}
	case SingleWord:
		return []string{"word", "words_with_underscores"}
	default:
		return []string{"word", `"quoted phrase"`, `"word"`}
	}
}

// BoolArgumentType parses a case-insensitive "true" or "false".
type BoolArgumentType struct{}

func (t *BoolArgumentType) String() string                             { return "bool" }
func (t *BoolArgumentType) Parse(rd *StringReader) (interface{}, error) { return rd.ReadBool() }

// Examples implements ExampleProvider.
func (t *BoolArgumentType) Examples() []string { return []string{"true", "false"} }

// Suggestions implements SuggestionProvider.
func (t *BoolArgumentType) Suggestions(_ *CommandContext, builder *SuggestionsBuilder) *Suggestions {
	if strings.HasPrefix("true", builder.RemainingLowerCase) {
		builder.Suggest("true")
	}
	if strings.HasPrefix("false", builder.RemainingLowerCase) {
		builder.Suggest("false")
	}
	return builder.Build()
}

// Int32ArgumentType parses an int32 within [Min, Max].
type Int32ArgumentType struct{ Min, Max int32 }

// Int64ArgumentType parses an int64 within [Min, Max].
type Int64ArgumentType struct{ Min, Max int64 }

// Float32ArgumentType parses a float32 within [Min, Max].
type Float32ArgumentType struct{ Min, Max float32 }

// Float64ArgumentType parses a float64 within [Min, Max].
type Float64ArgumentType struct{ Min, Max float64 }

var (
	// ErrArgumentIntegerTooHigh occurs when the found integer is higher than
	// the specified maximum.
	ErrArgumentIntegerTooHigh = errors.New("integer too high")
	// ErrArgumentIntegerTooLow occurs when the found integer is lower than
	// the specified minimum.
	ErrArgumentIntegerTooLow = errors.New("integer too low")

	// ErrArgumentFloatTooHigh occurs when the found float is higher than the
	// specified maximum.
	ErrArgumentFloatTooHigh = errors.New("float too high")
	// ErrArgumentFloatTooLow occurs when the found float is lower than the
	// specified minimum.
	ErrArgumentFloatTooLow = errors.New("float too low")
)

func (t *Int32ArgumentType) String() string { return "int32" }

// Parse implements ArgumentType.
func (t *Int32ArgumentType) Parse(rd *StringReader) (interface{}, error) {
	i, err := parseInt(rd, 32, int64(t.Min), int64(t.Max))
	return int32(i), err
}

// Examples implements ExampleProvider.
func (t *Int32ArgumentType) Examples() []string { return []string{"0", "123", "-123"} }

func (t *Int64ArgumentType) String() string { return "int64" }

// Parse implements ArgumentType, reading the full number body: long values
// are no longer truncated to their first digit.
func (t *Int64ArgumentType) Parse(rd *StringReader) (interface{}, error) {
	return parseInt(rd, 64, t.Min, t.Max)
}

// Examples implements ExampleProvider.
func (t *Int64ArgumentType) Examples() []string { return []string{"0", "123", "-123"} }

func parseInt(rd *StringReader, bitSize int, min, max int64) (int64, error) {
	start := rd.Cursor
	result, err := rd.readInt(bitSize, ErrReaderExpectedInt, ErrReaderInvalidInt)
	if err != nil {
		return 0, err
	}
	if result < min {
		rd.Cursor = start
		return 0, &CommandSyntaxError{Err: fmt.Errorf("%w (%d < %d)", ErrArgumentIntegerTooLow, result, min)}
	}
	if result > max {
		rd.Cursor = start
		return 0, &CommandSyntaxError{Err: fmt.Errorf("%w (%d > %d)", ErrArgumentIntegerTooHigh, result, max)}
	}
	return result, nil
}

func (t *Float32ArgumentType) String() string { return "float32" }

// Parse implements ArgumentType.
func (t *Float32ArgumentType) Parse(rd *StringReader) (interface{}, error) {
	f, err := parseFloat(rd, 32, float64(t.Min), float64(t.Max))
	return float32(f), err
}

// Examples implements ExampleProvider.
func (t *Float32ArgumentType) Examples() []string { return []string{"0", "1.2", "-1.2", ".5"} }

func (t *Float64ArgumentType) String() string { return "float64" }

// Parse implements ArgumentType.
func (t *Float64ArgumentType) Parse(rd *StringReader) (interface{}, error) {
	return parseFloat(rd, 64, t.Min, t.Max)
}

// Examples implements ExampleProvider.
func (t *Float64ArgumentType) Examples() []string { return []string{"0", "1.2", "-1.2", ".5"} }

func parseFloat(rd *StringReader, bitSize int, min, max float64) (float64, error) {
	start := rd.Cursor
	result, err := rd.readFloat(bitSize, ErrReaderExpectedFloat, ErrReaderInvalidFloat)
	if err != nil {
		return 0, err
	}
	if result < min {
		rd.Cursor = start
		return 0, &CommandSyntaxError{Err: fmt.Errorf("%w (%f < %f)", ErrArgumentFloatTooLow, result, min)}
	}
	if result > max {
		rd.Cursor = start
		return 0, &CommandSyntaxError{Err: fmt.Errorf("%w (%f > %f)", ErrArgumentFloatTooHigh, result, max)}
	}
	return result, nil
}

