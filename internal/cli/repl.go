package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// execIface is the command surface the REPL dispatches to. The real App
// satisfies it; tests provide a lightweight stub.
type execIface interface {
	Show(ctx context.Context) error
	Set(ctx context.Context, field, value string, hasValue bool) error
	Flyer(ctx context.Context, path string) error
	NoFlyer(ctx context.Context) error
	Background(ctx context.Context, arg string) error
	Publish(ctx context.Context) error
	Open(ctx context.Context, target string) error
	List(ctx context.Context) error
	Delete(ctx context.Context, id string) error
	Reset(ctx context.Context) error
}

const helpText = `Available commands:
  show                        show the current draft
  set <field> [value]         field: name, phone, date, location, cost, description, capacity
  flyer <path>                attach a flyer image
  noflyer                     remove the flyer image
  background <gradient|path>  pick a gradient or upload a background image
  gradients                   list the preset gradients
  publish                     go live and print the share link
  open <id|/event/id|link>    load a published event for editing
  list                        list published events
  delete <id>                 delete a published event
  reset                       start a new draft
  exit | quit                 leave the program`

// runREPL reads commands from scanner and dispatches them to a until EOF or
// "exit". Handler errors are reported to out and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner, out io.Writer) {
	printLine := func(args ...any) { fmt.Fprintln(out, args...) }
	interactive := isTerminal()
	for {
		if interactive {
			printLine(fmt.Sprintf("letshang %s> ", statusFn()))
		}
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var err error
		switch cmd {
		case "help":
			printLine(helpText)

		case "show":
			err = a.Show(ctx)

		case "set":
			if len(args) == 0 {
				printLine("Usage: set <field> [value]")
				continue
			}
			value := strings.Join(args[1:], " ")
			err = a.Set(ctx, args[0], value, len(args) > 1)

		case "flyer":
			if len(args) == 0 {
				printLine("Usage: flyer <path>")
				continue
			}
			err = a.Flyer(ctx, strings.Join(args, " "))

		case "noflyer":
			err = a.NoFlyer(ctx)

		case "background", "bg":
			if len(args) == 0 {
				printLine("Usage: background <gradient|path>")
				continue
			}
			err = a.Background(ctx, strings.Join(args, " "))

		case "gradients":
			printGradients(out)

		case "publish", "golive":
			err = a.Publish(ctx)

		case "open":
			if len(args) == 0 {
				printLine("Usage: open <id|/event/id|link>")
				continue
			}
			err = a.Open(ctx, args[0])

		case "l", "list":
			err = a.List(ctx)

		case "delete":
			if len(args) == 0 {
				printLine("Usage: delete <id>")
				continue
			}
			err = a.Delete(ctx, args[0])

		case "reset", "new":
			err = a.Reset(ctx)

		case "exit", "quit":
			printLine("Bye!")
			return

		default:
			printLine("Unknown command:", cmd)
		}

		if err != nil {
			printLine("Error:", err)
		}
	}
}
