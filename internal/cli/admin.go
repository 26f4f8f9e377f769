package cli

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/safespace/internal/models"
)

// AddUser creates an account with any role.
func (a *App) AddUser(ctx context.Context) error {
	f, err := a.readProfile()
	if err != nil {
		return err
	}

	roleText, err := a.ask("Role (1-user, 2-staff, 3-administrator)")
	if err != nil {
		return err
	}
	role, err := models.ParseRole(strings.ToLower(roleText))
	if err != nil {
		return fmt.Errorf("%w: %s", errInvalidInput, err)
	}

	id, err := a.svc.Register(ctx, f.Name, f.Email, f.Secret, f.Age, role)
	if err != nil {
		return err
	}

	a.log.Info(ctx, "account added", "target_id", id, "role", role.String())
	a.printf("User #%d created.\n", id)
	return nil
}

func (a *App) List(ctx context.Context) error {
	all, err := a.svc.ListUsers(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tAGE\tROLE")
	for _, u := range all {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", u.ID, u.Name, u.Email, formatAge(u.Age), u.Role)
	}
	return w.Flush()
}

// Update edits an account. Empty answers keep the current values.
func (a *App) Update(ctx context.Context, arg string) error {
	id, err := a.readID(arg, "User id")
	if err != nil {
		return err
	}

	u, err := a.svc.GetUser(ctx, id)
	if err != nil {
		return err
	}

	name, err := a.askDefault("Full name", u.Name)
	if err != nil {
		return err
	}
	email, err := a.askDefault("Email", u.Email)
	if err != nil {
		return err
	}
	secret, err := GetSecret(a.reader, "New secret (empty keeps current)", a.out)
	if err != nil {
		return err
	}
	ageText, err := a.askDefault("Age", formatAge(u.Age))
	if err != nil {
		return err
	}

	age := u.Age
	switch ageText {
	case formatAge(u.Age):
	case "-":
		age = nil
	default:
		if age, err = parseAge(ageText); err != nil {
			return err
		}
	}

	// Stored values predate the form rules, the seeded admin among them.
	var keep []string
	if name == u.Name {
		keep = append(keep, "Name")
	}
	if email == u.Email {
		keep = append(keep, "Email")
	}

	f := updateForm{Name: name, Email: email, Secret: secret, Age: age}
	if err := a.validate(f, keep...); err != nil {
		return err
	}

	if err := a.svc.UpdateProfile(ctx, id, f.Name, f.Email, f.Secret, f.Age); err != nil {
		return err
	}

	a.log.Info(ctx, "account updated", "target_id", id)
	a.println("User updated.")
	return nil
}

// askDefault shows the current value and returns it for an empty answer.
func (a *App) askDefault(prompt, current string) (string, error) {
	s, err := a.ask(fmt.Sprintf("%s [%s]", prompt, current))
	if err != nil {
		return "", err
	}
	if s == "" {
		return current, nil
	}
	return s, nil
}

func (a *App) Delete(ctx context.Context, arg string) error {
	id, err := a.readID(arg, "User id")
	if err != nil {
		return err
	}

	confirm, err := a.ask(fmt.Sprintf("Delete user #%d and all of their moods? (yes/no)", id))
	if err != nil {
		return err
	}
	if !strings.EqualFold(confirm, "yes") {
		a.println("Cancelled.")
		return nil
	}

	if err := a.svc.DeleteUser(ctx, id); err != nil {
		return err
	}

	a.log.Info(ctx, "account deleted", "target_id", id)
	a.println("User deleted.")

	if id == a.user.ID {
		return a.Logout(ctx)
	}
	return nil
}
