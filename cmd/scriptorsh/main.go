// Command scriptorsh is a small interactive shell demonstrating the
// scriptor dispatcher end to end. It is not part of the library: scriptor
// itself is not a shell (see the module's non-goals).
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"

	"github.com/Night-Fall-Studio/Scriptor"
)

func main() {
	initDisplay()

	d := buildDispatcher()

	repl, err := readline.New("scriptorsh> ")
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}
	defer repl.Close()

	pterm.Info.Println("Welcome to scriptorsh. Try: say hello, roll 3 20, as alice as bob whoami")
	pterm.Info.Println("Quit with <ctrl>D")

	for {
		line, err := repl.Readline()
		if err != nil { // io.EOF on ctrl-D
			break
		}
		if line == "" {
			continue
		}
		run(d, line)
	}
	pterm.Info.Println("bye")
}

func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{Text: " INFO", Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack)}
	pterm.Error.Prefix = pterm.Prefix{Text: " ERROR", Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack)}
}

func run(d *scriptor.Dispatcher, line string) {
	result, err := d.ExecuteString(context.Background(), line)
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	pterm.Info.Printfln("ok (%d command(s) ran)", result)
}

// buildDispatcher wires up a toy command tree that exercises literals,
// bounded integers, a greedy string, a redirect and a fork, to give the
// shell something to actually run.
func buildDispatcher() *scriptor.Dispatcher {
	var d scriptor.Dispatcher

	d.Register(scriptor.Literal("say").Then(
		scriptor.Argument("message", scriptor.StringPhrase).Executes(scriptor.CommandFunc(func(c *scriptor.CommandContext) (int, error) {
			fmt.Println(c.String("message"))
			return 1, nil
		})),
	))

	sides := &scriptor.Int32ArgumentType{Min: 2, Max: 100}
	times := &scriptor.Int32ArgumentType{Min: 1, Max: 20}
	d.Register(scriptor.Literal("roll").Then(
		scriptor.Argument("times", times).Then(
			scriptor.Argument("sides", sides).Executes(scriptor.CommandFunc(func(c *scriptor.CommandContext) (int, error) {
				fmt.Printf("rolling %dd%d\n", c.Int32("times"), c.Int32("sides"))
				return 1, nil
			})),
		),
	))

	d.Register(scriptor.Literal("whoami").Executes(scriptor.CommandFunc(func(c *scriptor.CommandContext) (int, error) {
		who, _ := c.Value(actorKey{}).(string)
		if who == "" {
			who = "nobody"
		}
		fmt.Println(who)
		return 1, nil
	})))

	d.Register(scriptor.Literal("as").Then(
		scriptor.Argument("actor", scriptor.StringWord).Fork(&d.Root, scriptor.RedirectModifierFunc(
			func(ctx *scriptor.CommandContext) ([]context.Context, error) {
				actor := ctx.String("actor")
				return []context.Context{context.WithValue(ctx.Context, actorKey{}, actor)}, nil
			},
		)),
	))

	return &d
}

type actorKey struct{}
