package cli

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/safespace/internal/common"
	"github.com/dmitrijs2005/safespace/internal/models"
	"github.com/dmitrijs2005/safespace/internal/questionnaire"
)

// RecordMood asks for today's feeling. A number picks from the suggested
// feelings, anything else is stored as typed.
func (a *App) RecordMood(ctx context.Context) error {
	today, err := a.svc.GetTodayMood(ctx, a.user.ID)
	switch {
	case err == nil:
		a.printf("Today you said you feel %q.\n", today.Feeling)
		return common.ErrAlreadyRecordedToday
	case !errors.Is(err, common.ErrorNotFound):
		return err
	}

	var b strings.Builder
	b.WriteString("How are you feeling today?")
	for i, f := range questionnaire.Feelings {
		fmt.Fprintf(&b, "\n  %d. %s", i+1, f)
	}
	raw, err := a.ask(b.String())
	if err != nil {
		return err
	}

	feeling := raw
	if n, err := strconv.Atoi(raw); err == nil && n >= 1 && n <= len(questionnaire.Feelings) {
		feeling = questionnaire.Feelings[n-1]
	}

	if err := a.svc.RecordDailyMood(ctx, a.user.ID, feeling); err != nil {
		return err
	}
	a.println("Mood recorded. Thank you!")
	return nil
}

// Calendar prints the feelings recorded in a month, the current one when
// month is empty.
func (a *App) Calendar(ctx context.Context, month string) error {
	t := a.now()
	if month != "" {
		parsed, err := time.Parse("2006-01", month)
		if err != nil {
			return fmt.Errorf("%w: month must look like 2025-07", errInvalidInput)
		}
		t = parsed
	}

	cal, err := a.svc.GetMonthlyMoodCalendar(ctx, a.user.ID, t.Year(), int(t.Month()))
	if err != nil {
		return err
	}

	title := t.Format("January 2006")
	if len(cal) == 0 {
		a.printf("No moods recorded in %s.\n", title)
		return nil
	}

	days := make([]int, 0, len(cal))
	for d := range cal {
		days = append(days, d)
	}
	sort.Ints(days)

	a.println(title)
	for _, d := range days {
		a.printf("  %2d  %s\n", d, cal[d])
	}
	return nil
}

func (a *App) collect(questions []questionnaire.Question) ([]models.Answer, error) {
	return questionnaire.Collect(questions, func(q questionnaire.Question, retry error) (string, error) {
		if retry != nil {
			a.println(retry.Error())
		}
		return a.ask(q.Key)
	})
}

func (a *App) Wellbeing(ctx context.Context) error {
	answers, err := a.collect(questionnaire.Wellbeing)
	if err != nil {
		return err
	}
	if err := a.svc.SubmitWellbeingQuestionnaire(ctx, a.user.ID, answers); err != nil {
		return err
	}
	a.println("Thank you for your answers. Type 'suggestions' for ideas that may help.")
	return nil
}

func (a *App) Companion(ctx context.Context) error {
	answers, err := a.collect(questionnaire.Companion)
	if err != nil {
		return err
	}
	label, err := a.svc.SubmitCompanionQuestionnaire(ctx, a.user.ID, answers)
	if err != nil {
		return err
	}
	a.printf("Our suggestion for a companion: %s\n", label)
	return nil
}

// Suggestions are shown once the wellbeing questionnaire has been answered.
func (a *App) Suggestions(ctx context.Context) error {
	u, err := a.svc.GetUser(ctx, a.user.ID)
	if err != nil {
		return err
	}
	if u.WellbeingAnswers == nil {
		a.println("Answer the wellbeing questionnaire first (type 'wellbeing').")
		return nil
	}

	a.println("Suggestions for you:")
	for _, s := range questionnaire.Suggestions {
		a.println("  -", s)
	}
	return nil
}

func (a *App) Counselors(ctx context.Context) error {
	contacts, err := a.svc.ListCounselorContacts(ctx, 0)
	if err != nil {
		return err
	}
	if len(contacts) == 0 {
		a.println("No counselors available at the moment.")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tEMAIL")
	for _, c := range contacts {
		fmt.Fprintf(w, "%s\t%s\n", c.Name, c.Email)
	}
	return w.Flush()
}

func (a *App) Profile(ctx context.Context) error {
	u, err := a.svc.GetUser(ctx, a.user.ID)
	if err != nil {
		return err
	}

	a.printf("Name:      %s\n", u.Name)
	a.printf("Email:     %s\n", u.Email)
	a.printf("Age:       %s\n", formatAge(u.Age))
	a.printf("Companion: %s\n", formatOptional(u.Companion))
	return nil
}

func formatAge(age *int) string {
	if age == nil {
		return "-"
	}
	return strconv.Itoa(*age)
}

func formatOptional(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}
