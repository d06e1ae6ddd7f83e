package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Refresh(ctx context.Context) error
	Perms(ctx context.Context) error
	Users(ctx context.Context, page string) error
	User(ctx context.Context, id string) error
	RemoveUser(ctx context.Context, id string) error
	Get(ctx context.Context, path string) error
	Raw(ctx context.Context, path string) error
	Where(ctx context.Context) error
	Back(ctx context.Context) error
}

const (
	helpLoggedOut = "Available commands: login, get <path>, raw <path>, where, back, exit"
	helpLoggedIn  = "Available commands: whoami, refresh, perms, users [page], user <id>, rmuser <id>, get <path>, raw <path>, where, back, logout, exit"
)

// runREPL starts a simple read–eval–print loop for the admin CLI.
//
// It reads a line from the provided reader, parses the first token as the
// command and the second, if any, as its argument, and dispatches to methods
// on 'a'. Commands that prompt read from the same reader. The loop exits on
// EOF or when the user types "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help              — show available commands
//	  - login             — authenticate
//	  - get <path>        — call an API path, print the unwrapped data
//	  - raw <path>        — call an API path without interceptors
//	  - where             — show the current location and history
//	  - back              — return to the previous location
//	  - exit | quit       — leave the program
//
//	Logged in, additionally:
//	  - whoami            — show the stored profile and token expiry
//	  - refresh           — refresh the access token
//	  - perms             — list permissions
//	  - users [page]      — list users
//	  - user <id>         — show a user
//	  - rmuser <id>       — delete a user
//	  - logout            — log out
//
// Errors returned by command handlers are printed unless the pipeline has
// already shown them (reporter or navigation); the loop keeps going.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("admin%s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		arg := ""
		if len(parts) > 1 {
			arg = parts[1]
		}

		err = nil
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}

		case "login":
			err = a.Login(ctx)

		case "logout":
			err = a.Logout(ctx)

		case "whoami":
			err = a.WhoAmI(ctx)

		case "refresh":
			err = a.Refresh(ctx)

		case "perms":
			err = a.Perms(ctx)

		case "users":
			err = a.Users(ctx, arg)

		case "user":
			err = a.User(ctx, arg)

		case "rmuser":
			err = a.RemoveUser(ctx, arg)

		case "get":
			err = a.Get(ctx, arg)

		case "raw":
			err = a.Raw(ctx, arg)

		case "where":
			err = a.Where(ctx)

		case "back":
			err = a.Back(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil && !shownByPipeline(err) {
			printlnFn("error:", err)
		}
	}
}
