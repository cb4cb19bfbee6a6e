package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. Tests replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the loop needs to dispatch.
// The real App type satisfies it; tests provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	Onboard(ctx context.Context) error
	Profile(ctx context.Context) error
	MoodAdd(ctx context.Context) error
	MoodList(ctx context.Context) error
	MoodDelete(ctx context.Context, id string) error
	Activities(ctx context.Context) error
	Complete(ctx context.Context, id string) error
	AddActivity(ctx context.Context) error
	Achievements(ctx context.Context) error
	Stats(ctx context.Context) error
	Settings(ctx context.Context) error
	Reset(ctx context.Context) error
}

const (
	helpSignedOut = "Available commands: register, login, exit"
	helpSignedIn  = "Available commands: whoami, onboard, profile, mood [add|list|delete <id>], activities, complete <id>, addactivity, achievements, stats, settings, reset, logout, exit"
)

// runREPL starts the interactive read-eval-print loop.
//
// Each iteration prints a prompt with the current status (from statusFn),
// reads one line, parses the first token as the command, and dispatches to
// methods on 'a'. Unknown commands are reported back to the user. The loop
// exits on EOF or when the user types "exit" or "quit".
//
// Errors returned by command handlers are ignored here; handlers print
// their own messages. This keeps the loop focused on line I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("armonia %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			if err != nil {
				return
			}
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpSignedIn)
			} else {
				printlnFn(helpSignedOut)
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.Whoami(ctx)

		case "onboard":
			_ = a.Onboard(ctx)

		case "profile":
			_ = a.Profile(ctx)

		case "mood":
			sub := "list"
			if len(args) > 0 {
				sub = args[0]
			}
			switch sub {
			case "add":
				_ = a.MoodAdd(ctx)
			case "list":
				_ = a.MoodList(ctx)
			case "delete":
				if len(args) < 2 {
					printlnFn("Usage: mood delete <id>")
					continue
				}
				_ = a.MoodDelete(ctx, args[1])
			default:
				printlnFn("Usage: mood [add|list|delete <id>]")
			}

		case "activities":
			_ = a.Activities(ctx)

		case "complete":
			if len(args) == 0 {
				printlnFn("Usage: complete <activity-id>")
				continue
			}
			_ = a.Complete(ctx, args[0])

		case "addactivity":
			_ = a.AddActivity(ctx)

		case "achievements":
			_ = a.Achievements(ctx)

		case "stats":
			_ = a.Stats(ctx)

		case "settings":
			_ = a.Settings(ctx)

		case "reset":
			_ = a.Reset(ctx)

		case "exit", "quit":
			printlnFn("Hasta pronto!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			return
		}
	}
}
