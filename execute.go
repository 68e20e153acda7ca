package scriptor

import (
	"context"
	"errors"
)

var (
	// ErrDispatcherUnknownCommand occurs when no node of the tree matched
	// the input at all.
	ErrDispatcherUnknownCommand = errors.New("dispatcher: unknown command")
	// ErrDispatcherUnknownArgument occurs when the input matched a prefix
	// of the tree but could not be parsed all the way to an executable
	// node.
	ErrDispatcherUnknownArgument = errors.New("dispatcher: unknown argument")
)

// ResultConsumer is notified after every Command runs during Execute,
// whether it succeeded or failed. Useful for logging or metrics across a
// forked execution, where a single Execute call may run many commands.
type ResultConsumer interface {
	OnCommandComplete(ctx *CommandContext, success bool, result int)
}

// ResultConsumerFunc adapts a plain function to a ResultConsumer.
type ResultConsumerFunc func(ctx *CommandContext, success bool, result int)

// OnCommandComplete implements ResultConsumer.
func (f ResultConsumerFunc) OnCommandComplete(ctx *CommandContext, success bool, result int) {
	f(ctx, success, result)
}

// SetResultConsumer installs a ResultConsumer notified after each Command
// run during Execute. Pass nil to remove it.
func (d *Dispatcher) SetResultConsumer(consumer ResultConsumer) {
	d.resultConsumer = consumer
}

// ExecuteString parses and executes command in one step, equivalent to
// d.Execute(d.Parse(ctx, command)).
func (d *Dispatcher) ExecuteString(ctx context.Context, command string) (int, error) {
	return d.Execute(d.Parse(ctx, command))
}

// Execute runs a previously parsed command, returning the sum of every
// successfully run Command's own returned int (so a single, non-forked run
// returns exactly that Command's result).
//
// A non-forked command stops and returns the first error hit. A forked
// command (one that passed through a CommandNode.IsFork node) keeps going
// past individual failures, reporting each one to the ResultConsumer, and
// only returns an error if it never found anything runnable at all.
//
// A single parse may expand into many independent executions after a fork:
// a RedirectModifier can return more than one source, and every one of them
// continues down the same child subtree.
func (d *Dispatcher) Execute(parse *ParseResults) (int, error) {
	if parse.Reader.CanRead() {
		switch {
		case len(parse.Errs) == 1:
			return 0, parse.firstErr()
		case parse.Context.Range.IsEmpty():
			return 0, &CommandSyntaxError{Err: &ReaderError{
				Err:    ErrDispatcherUnknownCommand,
				Reader: parse.Reader,
			}}
		default:
			return 0, &CommandSyntaxError{Err: &ReaderError{
				Err:    ErrDispatcherUnknownArgument,
				Reader: parse.Reader,
			}}
		}
	}

	result := 0
	forked := false
	foundCommand := false
	original := parse.Context.build(parse.Reader.String)
	contexts := []*CommandContext{original}
	var next []*CommandContext

	for len(contexts) != 0 {
		for _, current := range contexts {
			child := current.Child
			if child != nil {
				forked = forked || current.Forks
				if !child.HasNodes() {
					continue
				}
				foundCommand = true
				modifier := current.Modifier
				if modifier == nil {
					next = append(next, child.CopyFor(current.Context))
					continue
				}
				sources, err := modifier.Apply(current)
				if err != nil {
					if d.resultConsumer != nil {
						d.resultConsumer.OnCommandComplete(current, false, 0)
					}
					if !forked {
						return result, err
					}
					continue
				}
				for _, src := range sources {
					next = append(next, child.CopyFor(src))
				}
				continue
			}
			if current.Command == nil {
				continue
			}
			foundCommand = true
			n, err := current.Command.Run(current)
			if err != nil {
				if d.resultConsumer != nil {
					d.resultConsumer.OnCommandComplete(current, false, 0)
				}
				if !forked {
					return result, err
				}
				continue
			}
			result += n
			if d.resultConsumer != nil {
				d.resultConsumer.OnCommandComplete(current, true, n)
			}
		}

		contexts = next
		next = nil
	}

	if !foundCommand {
		return 0, &CommandSyntaxError{Err: &ReaderError{
			Err:    ErrDispatcherUnknownCommand,
			Reader: parse.Reader,
		}}
	}
	return result, nil
}
