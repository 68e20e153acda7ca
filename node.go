package scriptor

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ArgumentSeparator is the only string accepted to separate individual
// arguments in an input string: exactly one ASCII space.
const ArgumentSeparator rune = ' '

// ErrDispatcherParseException wraps an ArgumentType.Parse error that isn't
// already a *CommandSyntaxError or *ReaderError, so callers can tell a raw
// syntax error (errors.As-able to its concrete type) apart from some other
// failure the argument type's Parse chose to return.
var ErrDispatcherParseException = errors.New("dispatcher: could not parse argument")

// Command is run when a parsed context reaches a node that is the terminal
// of a successful parse. The returned int is the handler's own result,
// threaded back out through Dispatcher.Execute.
type Command interface {
	Run(c *CommandContext) (int, error)
}

// CommandFunc adapts a plain function to a Command.
type CommandFunc func(c *CommandContext) (int, error)

// Run implements Command.
func (cf CommandFunc) Run(c *CommandContext) (int, error) { return cf(c) }

// RequireFn is a source → bool gate that makes a node invisible to a
// source during parsing. A nil RequireFn always allows the node.
type RequireFn func(context.Context) bool

// RedirectModifier transforms the source attached to a context into zero or
// more sources to continue execution with, after a redirect or fork edge.
type RedirectModifier interface {
	Apply(ctx *CommandContext) ([]context.Context, error)
}

// RedirectModifierFunc adapts a plain function to a RedirectModifier.
type RedirectModifierFunc func(ctx *CommandContext) ([]context.Context, error)

// Apply implements RedirectModifier.
func (f RedirectModifierFunc) Apply(ctx *CommandContext) ([]context.Context, error) { return f(ctx) }

// identityModifier is used for a redirect that carries no explicit modifier:
// it forwards the single input source unchanged.
var identityModifier = RedirectModifierFunc(func(ctx *CommandContext) ([]context.Context, error) {
	return []context.Context{ctx.Context}, nil
})

// CommandNode is a node in a command tree: the Root, a Literal, or an
// Argument. All three share the capability set below; they differ in how
// Name, Parse, IsValidInput, Examples, UsageText, SortedKey, Suggestions and
// CreateBuilder behave.
type CommandNode interface {
	// Name is the literal text or argument name; "" for Root.
	Name() string
	// UsageText renders this node alone, e.g. "foo" or "<id>".
	UsageText() string
	// SortedKey is the key sortNodes orders siblings by within the literal
	// and argument groups (literals come first); it equals Name.
	SortedKey() string

	// Children returns every child, in insertion order.
	Children() []CommandNode
	// ChildrenOrdered exposes the same children as a name-indexed,
	// insertion-ordered map.
	ChildrenOrdered() StringCommandNodeMap
	// AddChild attaches children, merging into an existing child of the
	// same name rather than replacing it.
	AddChild(children ...CommandNode)
	// RelevantNodes returns the children worth trying against the next
	// token under the cursor, without consuming it.
	RelevantNodes(input *StringReader) []CommandNode

	// CanUse reports whether this node's RequireFn admits ctx.
	CanUse(ctx context.Context) bool
	// Requirement returns the raw RequireFn installed on this node, or nil.
	Requirement() RequireFn
	// Command is the handler to run if this node terminates a parse.
	Command() Command
	setCommand(Command)
	// Redirect is the node this one reroutes parsing to, or nil.
	Redirect() CommandNode
	// RedirectModifier transforms the source across a redirect or fork.
	RedirectModifier() RedirectModifier
	// IsFork reports whether RedirectModifier may return more than one
	// source, each executed independently.
	IsFork() bool

	// Parse attempts to match this node at the front of rd, mutating ctx
	// and rd on success. On failure ctx is untouched; rd may be left where
	// the error was detected (a quoted-string error, say).
	Parse(ctx *CommandContext, rd *StringReader) error
	// IsValidInput reports whether word parses to completion against this
	// node without requiring a trailing separator in the input at large.
	IsValidInput(word string) bool
	// Examples returns representative inputs this node accepts, used for
	// best-effort ambiguity detection.
	Examples() []string

	// Suggestions implements SuggestionProvider.
	Suggestions(ctx *CommandContext, builder *SuggestionsBuilder) *Suggestions
	// CreateBuilder returns a NodeBuilder that would reproduce this node.
	CreateBuilder() NodeBuilder
}

// Node holds the fields shared by every CommandNode variant.
type Node struct {
	children  StringCommandNodeMap
	literals  map[string]*LiteralCommandNode
	arguments map[string]*ArgumentCommandNode

	requirement RequireFn
	redirect    CommandNode
	command     Command
	modifier    RedirectModifier
	forks       bool
}

func (n *Node) childMap() StringCommandNodeMap {
	if n.children == nil {
		n.children = NewStringCommandNodeMap()
	}
	return n.children
}

// Children implements CommandNode.
func (n *Node) Children() []CommandNode { return n.childMap().Values() }

// ChildrenOrdered implements CommandNode.
func (n *Node) ChildrenOrdered() StringCommandNodeMap { return n.childMap() }

// CanUse implements CommandNode.
func (n *Node) CanUse(ctx context.Context) bool {
	if n.requirement == nil {
		return true
	}
	return n.requirement(ctx)
}

// Requirement implements CommandNode.
func (n *Node) Requirement() RequireFn { return n.requirement }

// Command implements CommandNode.
func (n *Node) Command() Command     { return n.command }
func (n *Node) setCommand(c Command) { n.command = c }

// Redirect implements CommandNode.
func (n *Node) Redirect() CommandNode { return n.redirect }

// RedirectModifier implements CommandNode.
func (n *Node) RedirectModifier() RedirectModifier {
	if n.redirect != nil && n.modifier == nil {
		return identityModifier
	}
	return n.modifier
}

// IsFork implements CommandNode.
func (n *Node) IsFork() bool { return n.forks }

// AddChild implements CommandNode: a root target is never re-added as a
// child (it would create a child cycle distinct from the permitted redirect
// cycle); a name collision merges the incoming node's command and
// grandchildren into the existing child rather than replacing it.
func (n *Node) AddChild(children ...CommandNode) {
	for _, child := range children {
		if _, ok := child.(*RootCommandNode); ok {
			continue
		}

		existing, found := n.childMap().Get(child.Name())
		if found {
			if child.Command() != nil {
				existing.setCommand(child.Command())
			}
			existing.AddChild(child.Children()...)
			continue
		}

		n.childMap().Put(child.Name(), child)
		switch t := child.(type) {
		case *LiteralCommandNode:
			if n.literals == nil {
				n.literals = map[string]*LiteralCommandNode{}
			}
			n.literals[child.Name()] = t
		case *ArgumentCommandNode:
			if n.arguments == nil {
				n.arguments = map[string]*ArgumentCommandNode{}
			}
			n.arguments[child.Name()] = t
		}
	}
}

// RelevantNodes implements the relevance filter: prefer an exactly-matching
// literal child, falling back to all argument children.
func (n *Node) RelevantNodes(input *StringReader) []CommandNode {
	if len(n.literals) != 0 {
		cursor := input.Cursor
		for input.CanRead() && input.Peek() != ArgumentSeparator {
			input.Skip()
		}
		word := input.String[cursor:input.Cursor]
		input.Cursor = cursor
		if literal, ok := n.literals[word]; ok {
			return []CommandNode{literal}
		}
	}
	nodes := make([]CommandNode, 0, len(n.arguments))
	n.childMap().Range(func(_ string, child CommandNode) bool {
		if _, ok := child.(*ArgumentCommandNode); ok {
			nodes = append(nodes, child)
		}
		return true
	})
	return nodes
}

// findAmbiguities recurses over siblings: for every pair, for every example
// of one, check whether the other also accepts it.
func (n *Node) findAmbiguities(self CommandNode, consumer AmbiguityConsumer) {
	matched := map[[2]CommandNode]struct{}{}
	siblings := n.Children()
	for _, child := range siblings {
		for _, sibling := range siblings {
			if child == sibling {
				continue
			}
			key := [2]CommandNode{child, sibling}
			if _, seen := matched[key]; seen {
				continue
			}
			matched[key] = struct{}{}
			var inputs []string
			for _, example := range child.Examples() {
				if sibling.IsValidInput(example) {
					inputs = append(inputs, example)
				}
			}
			if len(inputs) != 0 {
				consumer(self, child, sibling, inputs)
			}
		}
		if base, ok := child.(interface{ base() *Node }); ok {
			base.base().findAmbiguities(child, consumer)
		}
	}
}

func (n *Node) base() *Node { return n }

// RootCommandNode is the anonymous, never-matching root of a command tree.
// It is always reachable (CanUse always true). Dispatcher.Register only
// attaches literals to it; AddChild itself accepts a child of any kind.
type RootCommandNode struct{ Node }

func (r *RootCommandNode) Name() string      { return "" }
func (r *RootCommandNode) UsageText() string { return "" }
func (r *RootCommandNode) SortedKey() string { return "" }
func (r *RootCommandNode) String() string    { return "<root>" }

func (r *RootCommandNode) Parse(*CommandContext, *StringReader) error { return nil }
func (r *RootCommandNode) IsValidInput(string) bool                  { return false }
func (r *RootCommandNode) Examples() []string                        { return nil }
func (r *RootCommandNode) Suggestions(_ *CommandContext, b *SuggestionsBuilder) *Suggestions {
	return b.Build()
}

// IncorrectLiteralError indicates a literal node did not match the input.
type IncorrectLiteralError struct {
	Literal string
}

func (e *IncorrectLiteralError) Error() string { return fmt.Sprintf("incorrect literal %q", e.Literal) }

// LiteralCommandNode matches exactly Literal followed by a word boundary.
type LiteralCommandNode struct {
	Node
	Literal string

	cachedLowerCase string
}

func (n *LiteralCommandNode) Name() string      { return n.Literal }
func (n *LiteralCommandNode) UsageText() string { return n.Literal }
func (n *LiteralCommandNode) SortedKey() string { return n.Literal }
func (n *LiteralCommandNode) String() string    { return n.Literal }

// Parse implements CommandNode.
func (n *LiteralCommandNode) Parse(ctx *CommandContext, rd *StringReader) error {
	start := rd.Cursor
	end := n.parse(rd)
	if end < 0 {
		return &CommandSyntaxError{Err: &ReaderError{
			Err:    &IncorrectLiteralError{Literal: n.Literal},
			Reader: rd,
		}}
	}
	ctx.withNode(n, &StringRange{Start: start, End: end})
	return nil
}

func (n *LiteralCommandNode) parse(rd *StringReader) int {
	start := rd.Cursor
	if !rd.CanReadLen(len(n.Literal)) {
		return -1
	}
	end := start + len(n.Literal)
	if rd.String[start:end] != n.Literal {
		return -1
	}
	rd.Cursor = end
	if !rd.CanRead() || rd.Peek() == ArgumentSeparator {
		return end
	}
	rd.Cursor = start
	return -1
}

// IsValidInput implements CommandNode.
func (n *LiteralCommandNode) IsValidInput(word string) bool {
	rd := &StringReader{String: word}
	return n.parse(rd) > -1
}

// Examples implements CommandNode.
func (n *LiteralCommandNode) Examples() []string { return []string{n.Literal} }

// Suggestions implements CommandNode: suggest the literal itself if it
// starts with the remaining input.
func (n *LiteralCommandNode) Suggestions(_ *CommandContext, b *SuggestionsBuilder) *Suggestions {
	if n.cachedLowerCase == "" {
		n.cachedLowerCase = strings.ToLower(n.Literal)
	}
	if strings.HasPrefix(n.cachedLowerCase, b.RemainingLowerCase) {
		return b.Suggest(n.Literal).Build()
	}
	return emptySuggestions
}

// ArgumentCommandNode delegates matching to an ArgumentType.
type ArgumentCommandNode struct {
	Node
	name              string
	argType           ArgumentType
	customSuggestions SuggestionProvider
}

func (a *ArgumentCommandNode) Name() string       { return a.name }
func (a *ArgumentCommandNode) Type() ArgumentType { return a.argType }
func (a *ArgumentCommandNode) SortedKey() string  { return a.name }
func (a *ArgumentCommandNode) String() string     { return a.name }

// CustomSuggestions returns the SuggestionProvider installed via Suggests,
// overriding the argument type's own suggestions, or nil if none was set.
func (a *ArgumentCommandNode) CustomSuggestions() SuggestionProvider { return a.customSuggestions }

const (
	// UsageArgumentOpen opens an argument's usage rendering.
	UsageArgumentOpen rune = '<'
	// UsageArgumentClose closes an argument's usage rendering.
	UsageArgumentClose rune = '>'
)

// UsageText implements CommandNode.
func (a *ArgumentCommandNode) UsageText() string {
	return fmt.Sprintf("%c%s%c", UsageArgumentOpen, a.name, UsageArgumentClose)
}

// Parse implements CommandNode.
func (a *ArgumentCommandNode) Parse(ctx *CommandContext, rd *StringReader) error {
	start := rd.Cursor
	result, err := a.argType.Parse(rd)
	if err != nil {
		var syntaxErr *CommandSyntaxError
		var readerErr *ReaderError
		if errors.As(err, &syntaxErr) || errors.As(err, &readerErr) {
			return err
		}
		return fmt.Errorf("%w: %s: %v", ErrDispatcherParseException, a.name, err)
	}
	parsed := &ParsedArgument{
		Range:  &StringRange{Start: start, End: rd.Cursor},
		Result: result,
	}
	ctx.withArgument(a.name, parsed)
	ctx.withNode(a, parsed.Range)
	return nil
}

// IsValidInput implements CommandNode: the argument type must parse the
// word to completion.
func (a *ArgumentCommandNode) IsValidInput(word string) bool {
	rd := &StringReader{String: word}
	_, err := a.argType.Parse(rd)
	if err != nil {
		return false
	}
	return !rd.CanRead() || rd.Peek() == ArgumentSeparator
}

// Examples implements CommandNode, delegating to the argument type when it
// implements ExampleProvider.
func (a *ArgumentCommandNode) Examples() []string {
	if p, ok := a.argType.(ExampleProvider); ok {
		return p.Examples()
	}
	return nil
}

// Suggestions implements CommandNode: a custom provider takes priority over
// the argument type's own.
func (a *ArgumentCommandNode) Suggestions(ctx *CommandContext, b *SuggestionsBuilder) *Suggestions {
	if a.customSuggestions != nil {
		return a.customSuggestions.Suggestions(ctx, b)
	}
	return ProvideSuggestions(a.argType, ctx, b)
}

// ExampleProvider is implemented by an ArgumentType that can enumerate
// representative accepted inputs, used for best-effort ambiguity detection.
type ExampleProvider interface {
	Examples() []string
}

// sortNodes orders nodes literals before arguments, then lexicographically
// by name. The usage printers do not call it; they render children in
// insertion order.
func sortNodes(nodes []CommandNode) {
	sort.SliceStable(nodes, func(i, j int) bool {
		_, iArg := nodes[i].(*ArgumentCommandNode)
		_, jArg := nodes[j].(*ArgumentCommandNode)
		if iArg != jArg {
			return jArg // literal (iArg==false) sorts first
		}
		return nodes[i].SortedKey() < nodes[j].SortedKey()
	})
}
