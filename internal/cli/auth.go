package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/safespace/internal/common"
	"github.com/dmitrijs2005/safespace/internal/models"
)

// readProfile collects the fields shared by registration and the admin add
// form.
func (a *App) readProfile() (profileForm, error) {
	var f profileForm

	name, err := a.ask("Full name")
	if err != nil {
		return f, err
	}
	email, err := a.ask("Email")
	if err != nil {
		return f, err
	}
	secret, err := GetSecret(a.reader, "Secret", a.out)
	if err != nil {
		return f, err
	}
	ageText, err := a.ask("Age (optional)")
	if err != nil {
		return f, err
	}
	age, err := parseAge(ageText)
	if err != nil {
		return f, err
	}

	f = profileForm{Name: name, Email: email, Secret: secret, Age: age}
	return f, a.validate(f)
}

// Register creates a regular user account. Staff and administrators are
// added by an administrator.
func (a *App) Register(ctx context.Context) error {
	f, err := a.readProfile()
	if err != nil {
		return err
	}

	if _, err := a.svc.Register(ctx, f.Name, f.Email, f.Secret, f.Age, models.RoleRegularUser); err != nil {
		return err
	}

	a.println("Registration complete. You can now log in.")
	return nil
}

// Login authenticates and opens a session. With a role argument the
// account must have that role.
func (a *App) Login(ctx context.Context, role string) error {
	var want models.Role
	if role != "" {
		r, err := models.ParseRole(role)
		if err != nil {
			return err
		}
		want = r
	}

	email, err := a.ask("Email")
	if err != nil {
		return err
	}
	secret, err := GetSecret(a.reader, "Secret", a.out)
	if err != nil {
		return err
	}

	var u *models.User
	if want == 0 {
		u, err = a.svc.Authenticate(ctx, email, secret)
	} else {
		u, err = a.svc.AuthenticateAs(ctx, email, secret, want)
	}
	if err != nil {
		a.log.Debug(ctx, "login failed", "error", err)
		return err
	}

	a.startSession(ctx, u)
	a.printf("Welcome, %s!\n", u.Name)

	if u.Role == models.RoleRegularUser {
		a.promptTodayMood(ctx)
	}
	return nil
}

// promptTodayMood asks for today's mood unless one is already recorded.
func (a *App) promptTodayMood(ctx context.Context) {
	_, err := a.svc.GetTodayMood(ctx, a.user.ID)
	switch {
	case err == nil:
		return
	case !errors.Is(err, common.ErrorNotFound):
		a.reportError(ctx, err)
		return
	}

	if err := a.RecordMood(ctx); err != nil {
		a.reportError(ctx, err)
	}
}

func (a *App) Logout(ctx context.Context) error {
	a.endSession(ctx)
	a.println("Logged out.")
	return nil
}
