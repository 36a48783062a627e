package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn and printFn are test seams for REPL output.
var (
	printlnFn = fmt.Println
	printFn   = fmt.Print
)

// execIface is the command surface the REPL dispatches to. App satisfies it;
// tests use a stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	Dashboard(ctx context.Context) error
	Donations(ctx context.Context) error
	Donate(ctx context.Context) error
	Requests(ctx context.Context) error
	Request(ctx context.Context) error
	Approve(ctx context.Context, args []string) error
	Complete(ctx context.Context, args []string) error
	Stats(ctx context.Context) error
	Heatmap(ctx context.Context) error
}

const (
	publicHelp = "Available commands: register, login, exit"
	authHelp   = "Available commands: whoami, dashboard, donations, donate, requests, request, approve <id>, complete <id>, stats, heatmap, logout, exit"
)

// runREPL reads commands from in until EOF or exit/quit. Commands other than
// help, register, login and exit are refused while logged out.
//
// Handler errors are not reported here; handlers print their own
// user-facing messages.
func runREPL(ctx context.Context, a execIface, statusFn func() string, in *bufio.Reader) {
	for {
		if s := statusFn(); s != "" {
			printFn(fmt.Sprintf("foodlink %s> ", s))
		} else {
			printFn("foodlink> ")
		}

		line, err := in.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			printlnFn()
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(authHelp)
			} else {
				printlnFn(publicHelp)
			}
			continue
		case "register":
			_ = a.Register(ctx)
			continue
		case "login":
			_ = a.Login(ctx)
			continue
		case "exit", "quit":
			printlnFn("Bye!")
			return
		}

		run, ok := guarded(a, cmd, args)
		if !ok {
			printlnFn("Unknown command:", cmd)
			continue
		}
		if !a.isLoggedIn() {
			printlnFn("login required")
			continue
		}
		_ = run(ctx)
	}
}

// guarded maps an authenticated command to its handler.
func guarded(a execIface, cmd string, args []string) (func(context.Context) error, bool) {
	switch cmd {
	case "whoami":
		return a.Whoami, true
	case "logout":
		return a.Logout, true
	case "dashboard":
		return a.Dashboard, true
	case "donations":
		return a.Donations, true
	case "donate":
		return a.Donate, true
	case "requests":
		return a.Requests, true
	case "request":
		return a.Request, true
	case "approve":
		return func(ctx context.Context) error { return a.Approve(ctx, args) }, true
	case "complete":
		return func(ctx context.Context) error { return a.Complete(ctx, args) }, true
	case "stats":
		return a.Stats, true
	case "heatmap":
		return a.Heatmap, true
	}
	return nil, false
}
