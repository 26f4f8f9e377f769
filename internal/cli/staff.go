package cli

import (
	"context"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/dmitrijs2005/safespace/internal/models"
)

func (a *App) readID(arg, prompt string) (int64, error) {
	if arg == "" {
		s, err := a.ask(prompt)
		if err != nil {
			return 0, err
		}
		arg = s
	}
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: id must be a number", errInvalidInput)
	}
	return id, nil
}

// Users lists regular users for counselors.
func (a *App) Users(ctx context.Context) error {
	members, err := a.svc.ListUsersByRole(ctx, models.RoleRegularUser)
	if err != nil {
		return err
	}
	if len(members) == 0 {
		a.println("No users registered.")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tAGE")
	for _, m := range members {
		fmt.Fprintf(w, "%d\t%s\t%s\n", m.ID, m.Name, formatAge(m.Age))
	}
	return w.Flush()
}

// Show prints the full profile of a regular user.
func (a *App) Show(ctx context.Context, arg string) error {
	id, err := a.readID(arg, "User id")
	if err != nil {
		return err
	}

	p, err := a.svc.GetFullProfile(ctx, id)
	if err != nil {
		return err
	}

	a.printf("Name: %s\n", p.Name)

	a.println("Wellbeing questionnaire:")
	printAnswers(a, p.WellbeingAnswers)

	a.printf("Suggested companion: %s\n", formatOptional(p.Companion))
	a.println("Companion questionnaire:")
	printAnswers(a, p.CompanionAnswers)

	a.println("Recent moods:")
	if len(p.RecentMoods) == 0 {
		a.println("  (none)")
	}
	for _, m := range p.RecentMoods {
		a.printf("  %s  %s\n", m.Date, m.Feeling)
	}
	return nil
}

func printAnswers(a *App, answers []models.Answer) {
	if len(answers) == 0 {
		a.println("  (not answered)")
		return
	}
	for _, ans := range answers {
		a.printf("  %s %s\n", ans.Question, ans.Answer)
	}
}
