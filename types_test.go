package scriptor

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStringType_Parse(t *testing.T) {
	r := &StringReader{String: `"hello world"`}
	s, err := String.Parse(r)
	require.NoError(t, err)
	require.Equal(t, "hello world", s)
	require.Equal(t, "", r.Remaining())

	r = &StringReader{String: `hello world`}
	s, err = String.Parse(r)
	require.NoError(t, err)
	require.Equal(t, "hello", s)
	require.Equal(t, " world", r.Remaining())
}

func TestStringType_Parse_Word(t *testing.T) {
	r := &StringReader{String: "hello world"}
	s, err := StringWord.Parse(r)
	require.NoError(t, err)
	require.Equal(t, "hello", s)
	require.Equal(t, " world", r.Remaining())
}

func TestStringType_Parse_Phrase(t *testing.T) {
	r := &StringReader{String: "Hello world! This is a test."}
	s, err := StringPhrase.Parse(r)
	require.NoError(t, err)
	require.Equal(t, "Hello world! This is a test.", s)
}

func TestStringType_Examples(t *testing.T) {
	require.NotEmpty(t, SingleWord.Examples())
	require.NotEmpty(t, QuotablePhase.Examples())
	require.NotEmpty(t, GreedyPhrase.Examples())
}

func TestBoolType_Parse(t *testing.T) {
	parse, err := Bool.Parse(&StringReader{String: "true"})
	require.NoError(t, err)
	require.Equal(t, true, parse)

	parse, err = Bool.Parse(&StringReader{String: "false"})
	require.NoError(t, err)
	require.Equal(t, false, parse)
}

func TestBoolType_Examples(t *testing.T) {
	require.Equal(t, []string{"true", "false"}, Bool.(*BoolArgumentType).Examples())
}

func TestInt64ArgumentType_Parse_LongValue(t *testing.T) {
	// Regression: the tokenizer used to stop after the first digit of a
	// long value, silently truncating "1234567890123" to "1".
	rd := &StringReader{String: "1234567890123"}
	result, err := Int64.Parse(rd)
	require.NoError(t, err)
	require.Equal(t, int64(1234567890123), result)
}

func TestInt64ArgumentType_Bounds(t *testing.T) {
	require.Equal(t, int64(math.MinInt64), Int64.(*Int64ArgumentType).Min)
	require.Equal(t, int64(math.MaxInt64), Int64.(*Int64ArgumentType).Max)
}

func TestInt32ArgumentType_Parse_TooLow(t *testing.T) {
	argType := &Int32ArgumentType{Min: 0, Max: 100}
	_, err := argType.Parse(&StringReader{String: "-5"})
	require.ErrorIs(t, err, ErrArgumentIntegerTooLow)
}

func TestInt32ArgumentType_Parse_TooHigh(t *testing.T) {
	argType := &Int32ArgumentType{Min: 0, Max: 100}
	_, err := argType.Parse(&StringReader{String: "200"})
	require.ErrorIs(t, err, ErrArgumentIntegerTooHigh)
}

func TestFloat64ArgumentType_Parse_TooLow(t *testing.T) {
	argType := &Float64ArgumentType{Min: 0, Max: 100}
	_, err := argType.Parse(&StringReader{String: "-5.5"})
	require.ErrorIs(t, err, ErrArgumentFloatTooLow)
}

func TestFloat64ArgumentType_Parse_TooHigh(t *testing.T) {
	argType := &Float64ArgumentType{Min: 0, Max: 100}
	_, err := argType.Parse(&StringReader{String: "200.1"})
	require.ErrorIs(t, err, ErrArgumentFloatTooHigh)
}

func TestArgumentTypeFuncs(t *testing.T) {
	custom := &ArgumentTypeFuncs{
		Name: "custom",
		ParseFn: func(rd *StringReader) (interface{}, error) {
			return rd.ReadUnquotedString(), nil
		},
		ExamplesFn: func() []string { return []string{"example"} },
	}
	require.Equal(t, "custom", custom.String())
	require.Equal(t, []string{"example"}, custom.Examples())

	rd := &StringReader{String: "value"}
	result, err := custom.Parse(rd)
	require.NoError(t, err)
	require.Equal(t, "value", result)
}
