package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/safespace/internal/models"
)

// execIface is the command surface the REPL dispatches to. App satisfies it;
// tests provide a lightweight stub.
type execIface interface {
	role() models.Role
	status() string
	reportError(ctx context.Context, err error)

	Register(ctx context.Context) error
	Login(ctx context.Context, role string) error
	Logout(ctx context.Context) error

	RecordMood(ctx context.Context) error
	Calendar(ctx context.Context, month string) error
	Wellbeing(ctx context.Context) error
	Companion(ctx context.Context) error
	Suggestions(ctx context.Context) error
	Counselors(ctx context.Context) error
	Profile(ctx context.Context) error

	Users(ctx context.Context) error
	Show(ctx context.Context, id string) error

	AddUser(ctx context.Context) error
	List(ctx context.Context) error
	Update(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

const (
	helpGuest   = "Available commands: register, login [user|staff|admin], help, exit"
	helpUser    = "Available commands: mood, calendar [YYYY-MM], wellbeing, companion, suggestions, counselors, profile, logout, exit"
	helpStaff   = "Available commands: users, show <id>, logout, exit"
	helpAdmin   = "Available commands: add, list, update <id>, delete <id>, logout, exit"
	unknownRole = "Available commands: logout, exit"
)

func helpFor(r models.Role) string {
	switch r {
	case 0:
		return helpGuest
	case models.RoleRegularUser:
		return helpUser
	case models.RoleStaff:
		return helpStaff
	case models.RoleAdministrator:
		return helpAdmin
	}
	return unknownRole
}

// runREPL reads commands line by line from in and dispatches them to a. The
// first token is the command, the second (if any) its argument. Which
// commands exist depends on the role of the logged in account. The loop
// ends on "exit", "quit" or end of input. Handler errors are reported and
// never stop the loop.
func runREPL(ctx context.Context, a execIface, in *bufio.Reader, out io.Writer) {
	for {
		fmt.Fprintf(out, "safespace%s> ", a.status())

		line, readErr := in.ReadString('\n')
		parts := strings.Fields(line)
		if len(parts) == 0 {
			if readErr != nil {
				fmt.Fprintln(out)
				return
			}
			continue
		}

		cmd, arg := parts[0], ""
		if len(parts) > 1 {
			arg = parts[1]
		}

		switch cmd {
		case "exit", "quit":
			fmt.Fprintln(out, "Bye!")
			return
		case "help":
			fmt.Fprintln(out, helpFor(a.role()))
		default:
			handled, err := dispatch(ctx, a, cmd, arg)
			switch {
			case !handled:
				fmt.Fprintln(out, "Unknown command:", cmd)
			case err != nil:
				a.reportError(ctx, err)
			}
		}

		if readErr != nil {
			return
		}
	}
}

func dispatch(ctx context.Context, a execIface, cmd, arg string) (bool, error) {
	r := a.role()
	if r != 0 && cmd == "logout" {
		return true, a.Logout(ctx)
	}

	switch r {
	case 0:
		switch cmd {
		case "register":
			return true, a.Register(ctx)
		case "login":
			return true, a.Login(ctx, arg)
		}

	case models.RoleRegularUser:
		switch cmd {
		case "mood":
			return true, a.RecordMood(ctx)
		case "calendar":
			return true, a.Calendar(ctx, arg)
		case "wellbeing":
			return true, a.Wellbeing(ctx)
		case "companion":
			return true, a.Companion(ctx)
		case "suggestions":
			return true, a.Suggestions(ctx)
		case "counselors":
			return true, a.Counselors(ctx)
		case "profile":
			return true, a.Profile(ctx)
		}

	case models.RoleStaff:
		switch cmd {
		case "users":
			return true, a.Users(ctx)
		case "show":
			return true, a.Show(ctx, arg)
		}

	case models.RoleAdministrator:
		switch cmd {
		case "add":
			return true, a.AddUser(ctx)
		case "list":
			return true, a.List(ctx)
		case "update":
			return true, a.Update(ctx, arg)
		case "delete":
			return true, a.Delete(ctx, arg)
		}
	}

	return false, nil
}
