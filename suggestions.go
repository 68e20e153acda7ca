package scriptor

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"
)

// SuggestionProvider provides Suggestions and can optionally be implemented
// by an ArgumentType (or installed on an ArgumentCommandNode as a custom
// override) to add completion support.
type SuggestionProvider interface {
	Suggestions(*CommandContext, *SuggestionsBuilder) *Suggestions
}

// SuggestionProviderFunc adapts a plain function to a SuggestionProvider.
type SuggestionProviderFunc func(*CommandContext, *SuggestionsBuilder) *Suggestions

// Suggestions implements SuggestionProvider.
func (f SuggestionProviderFunc) Suggestions(ctx *CommandContext, b *SuggestionsBuilder) *Suggestions {
	return f(ctx, b)
}

// ProvideSuggestions returns the Suggestions if i implements
// SuggestionProvider, or empty Suggestions if it doesn't.
func ProvideSuggestions(i interface{}, ctx *CommandContext, builder *SuggestionsBuilder) *Suggestions {
	if i == nil {
		return emptySuggestions
	}
	if p, ok := i.(SuggestionProvider); ok {
		return p.Suggestions(ctx, builder)
	}
	return emptySuggestions
}

// CanProvideSuggestions tests whether i implements SuggestionProvider.
func CanProvideSuggestions(i interface{}) bool {
	if i == nil {
		return false
	}
	_, ok := i.(SuggestionProvider)
	return ok
}

type (
	// Suggestions are command suggestions within a string range.
	Suggestions struct {
		Range       StringRange
		Suggestions []*Suggestion
	}
	// Suggestion is a single command suggestion, optionally carrying a sort
	// key distinct from its display Text (see IntSuggestion).
	Suggestion struct {
		Range   StringRange
		Text    string
		Tooltip fmt.Stringer
	}
	// SuggestionContext names the node suggestions should be gathered from,
	// and the input offset suggestions should replace from.
	SuggestionContext struct {
		Parent CommandNode
		Start  int
	}
	// SuggestionsBuilder accumulates Suggestion values for one node.
	SuggestionsBuilder struct {
		Input              string
		InputLowerCase     string
		Start              int
		Remaining          string
		RemainingLowerCase string
		Result             []*Suggestion
	}
)

// Suggest adds a text suggestion to the builder. A suggestion equal to the
// remaining input is dropped, since it wouldn't change anything.
func (b *SuggestionsBuilder) Suggest(text string) *SuggestionsBuilder {
	if text != b.Remaining {
		b.Result = append(b.Result, &Suggestion{
			Range: StringRange{Start: b.Start, End: len(b.Input)},
			Text:  text,
		})
	}
	return b
}

// SuggestInt adds an integer suggestion to the builder, sorted numerically
// against other IntSuggestion entries instead of lexicographically: "5"
// sorts before "12".
func (b *SuggestionsBuilder) SuggestInt(value int) *SuggestionsBuilder {
	text := strconv.Itoa(value)
	if text != b.Remaining {
		b.Result = append(b.Result, &Suggestion{
			Range: StringRange{Start: b.Start, End: len(b.Input)},
			Text:  text,
			Tooltip: &IntSuggestion{Value: value},
		})
	}
	return b
}

// Build returns the Suggestions built from the accumulated suggestions.
func (b *SuggestionsBuilder) Build() *Suggestions { return CreateSuggestion(b.Input, b.Result) }

// IntSuggestion tags a Suggestion as numeric so merges can order it next to
// its peers by value rather than by display string. It is carried in
// Suggestion.Tooltip only as a sort signal; callers that want a tooltip
// string unrelated to sort order should not use SuggestInt.
type IntSuggestion struct{ Value int }

// String implements fmt.Stringer.
func (s *IntSuggestion) String() string { return strconv.Itoa(s.Value) }

// CompletionSuggestions gets suggestions for a parsed input string on what
// comes next, as it is ultimately up to custom argument types to provide
// suggestions.
//
// The suggestions provided will be in the context of the end of the parsed
// input string, but may suggest new or replacement strings for earlier in
// the input string. For example, if the end of the string was foobar but an
// argument preferred it to be scriptor:foobar, it will suggest a
// replacement for that whole segment of the input.
func (d *Dispatcher) CompletionSuggestions(parse *ParseResults) (*Suggestions, error) {
	return d.CompletionSuggestionsCursor(parse, len(parse.Reader.String))
}

// CompletionSuggestionsCursor gets suggestions for a parsed input string on
// what comes next with a cursor to begin suggesting at. See
// CompletionSuggestions for details.
//
// Every eligible child node is asked for suggestions concurrently; the
// first error from any of them cancels the rest and is returned.
func (d *Dispatcher) CompletionSuggestionsCursor(parse *ParseResults, cursor int) (*Suggestions, error) {
	ctx := parse.Context

	nodeBeforeCursor, err := ctx.FindSuggestionContext(cursor)
	if err != nil {
		return nil, err
	}
	parent := nodeBeforeCursor.Parent
	start := min(nodeBeforeCursor.Start, cursor)

	fullInput := parse.Reader.String
	truncatedInput := fullInput[:cursor]
	truncatedInputLowerCase := strings.ToLower(truncatedInput)
	built := ctx.build(truncatedInput)

	children := parent.Children()
	results := make([]*Suggestions, len(children))

	g, gctx := errgroup.WithContext(ctx)
	for i, node := range children {
		i, node := i, node
		if !CanProvideSuggestions(node) {
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = ProvideSuggestions(node, built, &SuggestionsBuilder{
				Input:              truncatedInput,
				InputLowerCase:     truncatedInputLowerCase,
				Start:              start,
				Remaining:          truncatedInput[start:],
				RemainingLowerCase: truncatedInputLowerCase[start:],
			})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	nonNil := results[:0]
	for _, r := range results {
		if r != nil {
			nonNil = append(nonNil, r)
		}
	}
	return MergeSuggestions(fullInput, nonNil), nil
}

// MergeSuggestions merges multiple Suggestions into one, deduplicating by
// range, text and tooltip (see suggestionKey) and re-sorting the union.
func MergeSuggestions(command string, input []*Suggestions) *Suggestions {
	if len(input) == 0 {
		return emptySuggestions
	}
	if len(input) == 1 {
		return input[0]
	}

	seen := make(map[string]struct{}, len(input))
	all := make([]*Suggestion, 0, len(input))
	for _, suggestions := range input {
		for _, suggestion := range suggestions.Suggestions {
			key := suggestionKey(suggestion)
			if _, ok := seen[key]; !ok {
				seen[key] = struct{}{}
				all = append(all, suggestion)
			}
		}
	}
	return CreateSuggestion(command, all)
}

// CreateSuggestion builds a Suggestions from loose Suggestion values,
// expanding each to share one encompassing StringRange and sorting the
// result: numeric (IntSuggestion) entries sort by value, everything else
// sorts case-insensitively by text, with numeric entries first.
func CreateSuggestion(command string, suggestions []*Suggestion) *Suggestions {
	if len(suggestions) == 0 {
		return emptySuggestions
	}
	start := math.MaxInt32
	end := math.MinInt32
	for _, suggestion := range suggestions {
		start = min(suggestion.Range.Start, start)
		end = max(suggestion.Range.End, end)
	}
	strRange := StringRange{Start: start, End: end}

	seen := make(map[string]struct{}, len(suggestions))
	expanded := make([]*Suggestion, 0, len(suggestions))
	for _, suggestion := range suggestions {
		key := suggestionKey(suggestion)
		if _, ok := seen[key]; !ok {
			seen[key] = struct{}{}
			expanded = append(expanded, suggestion.Expand(command, &strRange))
		}
	}
	sort.SliceStable(expanded, func(i, j int) bool { return expanded[i].less(expanded[j]) })
	return &Suggestions{Range: strRange, Suggestions: expanded}
}

// suggestionKey identifies a Suggestion by its range, text, and tooltip, so
// two suggestions covering different spans or carrying different tooltips
// are kept distinct even when their display text matches.
func suggestionKey(s *Suggestion) string {
	tooltip := ""
	if s.Tooltip != nil {
		tooltip = s.Tooltip.String()
	}
	return fmt.Sprintf("%d:%d:%s:%s", s.Range.Start, s.Range.End, s.Text, tooltip)
}

func (s *Suggestion) less(other *Suggestion) bool {
	a, aOK := s.Tooltip.(*IntSuggestion)
	b, bOK := other.Tooltip.(*IntSuggestion)
	if aOK && bOK {
		return a.Value < b.Value
	}
	if aOK != bOK {
		return aOK
	}
	return strings.ToLower(s.Text) < strings.ToLower(other.Text)
}

// Expand rewrites the Suggestion's text to apply against strRange instead
// of its own narrower Range, by splicing in the untouched parts of command
// around it. A Suggestion already covering strRange is returned unchanged.
func (s *Suggestion) Expand(command string, strRange *StringRange) *Suggestion {
	if strRange.Start == s.Range.Start && strRange.End == s.Range.End {
		return s
	}
	var result strings.Builder
	if strRange.Start < s.Range.Start {
		result.WriteString(command[strRange.Start:s.Range.Start])
	}
	result.WriteString(s.Text)
	if strRange.End > s.Range.End {
		result.WriteString(command[s.Range.End:strRange.End])
	}
	return &Suggestion{Range: *strRange, Text: result.String(), Tooltip: s.Tooltip}
}

var emptySuggestions = &Suggestions{}

// ErrNoNodeBeforeCursor indicates that CommandContext.FindSuggestionContext
// could not find a matching node before the specified cursor.
var ErrNoNodeBeforeCursor = errors.New("can't find node before cursor")

// FindSuggestionContext calculates the SuggestionContext for cursor, or
// returns ErrNoNodeBeforeCursor if cursor falls before this context's
// range entirely.
func (c *CommandContext) FindSuggestionContext(cursor int) (*SuggestionContext, error) {
	if c.Range.Start > cursor {
		return nil, ErrNoNodeBeforeCursor
	}
	if c.Range.End < cursor {
		if c.Child != nil {
			return c.Child.FindSuggestionContext(cursor)
		}
		if len(c.Nodes) != 0 {
			last := c.Nodes[len(c.Nodes)-1]
			return &SuggestionContext{Parent: last.Node, Start: last.Range.End + 1}, nil
		}
		return &SuggestionContext{Parent: c.RootNode, Start: c.Range.Start}, nil
	}

	prev := c.RootNode
	for _, node := range c.Nodes {
		if node.Range.Start <= cursor && cursor <= node.Range.End {
			return &SuggestionContext{Parent: prev, Start: node.Range.Start}, nil
		}
		prev = node.Node
	}
	if prev == nil {
		return nil, ErrNoNodeBeforeCursor
	}
	return &SuggestionContext{Parent: prev, Start: c.Range.Start}, nil
}
