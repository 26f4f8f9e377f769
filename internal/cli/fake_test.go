package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/safespace/internal/common"
	"github.com/dmitrijs2005/safespace/internal/logging"
	"github.com/dmitrijs2005/safespace/internal/models"
)

type registerCall struct {
	name, email, secret string
	age                 *int
	role                models.Role
}

type updateCall struct {
	id                  int64
	name, email, secret string
	age                 *int
}

// fakeService records calls and returns canned results.
type fakeService struct {
	registerCalls []registerCall
	registerErr   error

	authUser *models.User
	authErr  error
	authRole models.Role

	updates   []updateCall
	updateErr error

	deleted   []int64
	deleteErr error

	wellbeing []models.Answer
	companion []models.Answer
	label     string

	moods     []string
	moodErr   error
	today     *models.MoodEntry
	todayErr  error
	calendar  models.MoodCalendar
	calYear   int
	calMonth  int
	profile   *models.ProfileView
	contacts  []models.StaffContact
	user      *models.User
	users     []models.User
	members   []models.RoleMember
	lookupErr error
}

func (f *fakeService) Register(_ context.Context, name, email, secret string, age *int, role models.Role) (int64, error) {
	f.registerCalls = append(f.registerCalls, registerCall{name, email, secret, age, role})
	if f.registerErr != nil {
		return 0, f.registerErr
	}
	return int64(len(f.registerCalls) + 1), nil
}

func (f *fakeService) Authenticate(_ context.Context, _, _ string) (*models.User, error) {
	return f.authUser, f.authErr
}

func (f *fakeService) AuthenticateAs(_ context.Context, _, _ string, role models.Role) (*models.User, error) {
	f.authRole = role
	if f.authErr != nil {
		return nil, f.authErr
	}
	if f.authUser.Role != role {
		return nil, common.ErrorUnauthorized
	}
	return f.authUser, nil
}

func (f *fakeService) UpdateProfile(_ context.Context, id int64, name, email, secret string, age *int) error {
	f.updates = append(f.updates, updateCall{id, name, email, secret, age})
	return f.updateErr
}

func (f *fakeService) DeleteUser(_ context.Context, id int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeService) SubmitWellbeingQuestionnaire(_ context.Context, _ int64, answers []models.Answer) error {
	f.wellbeing = answers
	return nil
}

func (f *fakeService) SubmitCompanionQuestionnaire(_ context.Context, _ int64, answers []models.Answer) (string, error) {
	f.companion = answers
	return f.label, nil
}

func (f *fakeService) RecordDailyMood(_ context.Context, _ int64, feeling string) error {
	if f.moodErr != nil {
		return f.moodErr
	}
	f.moods = append(f.moods, feeling)
	return nil
}

func (f *fakeService) GetTodayMood(context.Context, int64) (*models.MoodEntry, error) {
	if f.todayErr != nil {
		return nil, f.todayErr
	}
	if f.today == nil {
		return nil, common.ErrorNotFound
	}
	return f.today, nil
}

func (f *fakeService) GetMonthlyMoodCalendar(_ context.Context, _ int64, year, month int) (models.MoodCalendar, error) {
	f.calYear, f.calMonth = year, month
	return f.calendar, nil
}

func (f *fakeService) GetFullProfile(context.Context, int64) (*models.ProfileView, error) {
	if f.profile == nil {
		return nil, common.ErrorNotFound
	}
	return f.profile, nil
}

func (f *fakeService) ListCounselorContacts(context.Context, int) ([]models.StaffContact, error) {
	return f.contacts, nil
}

func (f *fakeService) GetUser(context.Context, int64) (*models.User, error) {
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	return f.user, nil
}

func (f *fakeService) ListUsers(context.Context) ([]models.User, error) {
	return f.users, nil
}

func (f *fakeService) ListUsersByRole(context.Context, models.Role) ([]models.RoleMember, error) {
	return f.members, nil
}

func newTestApp(t *testing.T, svc Service, input ...string) (*App, *bytes.Buffer) {
	t.Helper()
	stubTerminal(t, false, nil, nil)

	var out bytes.Buffer
	in := ""
	if len(input) > 0 {
		in = strings.Join(input, "\n") + "\n"
	}
	a := NewApp(svc, logging.Discard(), strings.NewReader(in), &out)
	a.now = func() time.Time { return time.Date(2025, 7, 21, 10, 0, 0, 0, time.UTC) }
	return a, &out
}

func intp(v int) *int { return &v }
