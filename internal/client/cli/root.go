package cli

import (
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

func (a *App) getStatus() string {
	s := ""
	if u := a.session.Current(); u != nil {
		s = fmt.Sprintf("%s, %d credits ", u.Email, a.session.Credits())
	}
	if m := a.Mode(); m != "" {
		s += string(m)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

func (a *App) root(ctx context.Context) {
	printlnFn("Welcome to NewsScope CLI (type 'help' for commands)")

	for {
		fmt.Printf("ns %s> ", a.getStatus())
		line, err := a.reader.ReadString('\n')
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: analyze, sources, dashboard, history [page], select <id>, selectall, clearsel, delete, deleteall, buy, credits, feedback, logout, exit")
			} else {
				printlnFn("Available commands: login, signup, forgot, reset, sources, feedback, exit")
			}

		case "login":
			a.Login(ctx)
		case "signup":
			a.Signup(ctx)
		case "logout":
			a.Logout(ctx)
		case "forgot":
			a.ForgotPassword(ctx)
		case "reset":
			a.ResetPassword(ctx)

		case "analyze":
			a.Analyze(ctx)
		case "sources":
			a.Sources(ctx)

		case "dashboard":
			a.Dashboard(ctx)
		case "history":
			a.History(ctx, args)
		case "select":
			a.Select(args)
		case "selectall":
			a.dashboard.SelectAll()
			printlnFn(fmt.Sprintf("Selected %d records", len(a.dashboard.Selected())))
		case "clearsel":
			a.dashboard.ClearSelection()
		case "delete":
			a.DeleteSelected(ctx)
		case "deleteall":
			a.DeleteAll(ctx)

		case "buy":
			a.BuyCredits(ctx)
		case "credits":
			a.session.RefreshCredits(ctx)
			printlnFn(fmt.Sprintf("Balance: %d credits", a.session.Credits()))

		case "feedback":
			a.Feedback(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
