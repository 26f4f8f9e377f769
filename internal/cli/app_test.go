package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/safespace/internal/common"
	"github.com/dmitrijs2005/safespace/internal/config"
	"github.com/dmitrijs2005/safespace/internal/logging"
	"github.com/dmitrijs2005/safespace/internal/models"
	"github.com/dmitrijs2005/safespace/internal/services"
	"github.com/dmitrijs2005/safespace/internal/storage"
)

var (
	regular = &models.User{ID: 5, Name: "Ana Perez", Email: "ana@example.com", Role: models.RoleRegularUser}
	admin   = &models.User{ID: 1, Name: "Admin", Email: "admin", Role: models.RoleAdministrator}
)

func TestRegister_Success(t *testing.T) {
	svc := &fakeService{}
	a, out := newTestApp(t, svc, "Ana Perez", "ana@example.com", "Secret123", "30")

	require.NoError(t, a.Register(context.Background()))

	require.Len(t, svc.registerCalls, 1)
	assert.Equal(t, registerCall{"Ana Perez", "ana@example.com", "Secret123", intp(30), models.RoleRegularUser}, svc.registerCalls[0])
	assert.Contains(t, out.String(), "Registration complete")
}

func TestRegister_InvalidInputNeverReachesService(t *testing.T) {
	tests := []struct {
		name  string
		input []string
	}{
		{"single name", []string{"Ana", "ana@example.com", "Secret123", ""}},
		{"bad email", []string{"Ana Perez", "ana.example.com", "Secret123", ""}},
		{"weak secret", []string{"Ana Perez", "ana@example.com", "secret", ""}},
		{"bad age", []string{"Ana Perez", "ana@example.com", "Secret123", "old"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{}
			a, _ := newTestApp(t, svc, tt.input...)

			err := a.Register(context.Background())
			require.ErrorIs(t, err, errInvalidInput)
			assert.Empty(t, svc.registerCalls)
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc := &fakeService{registerErr: common.ErrDuplicateEmail}
	a, _ := newTestApp(t, svc, "Ana Perez", "ana@example.com", "Secret123", "")

	require.ErrorIs(t, a.Register(context.Background()), common.ErrDuplicateEmail)
}

func TestLogin_RegularUserIsAskedForMood(t *testing.T) {
	svc := &fakeService{authUser: regular}
	a, out := newTestApp(t, svc, "ana@example.com", "Secret123", "1")

	require.NoError(t, a.Login(context.Background(), ""))

	assert.Equal(t, models.RoleRegularUser, a.role())
	assert.Equal(t, []string{"happy"}, svc.moods)
	assert.Contains(t, out.String(), "Welcome, Ana Perez!")
	assert.Contains(t, a.status(), "ana@example.com")
}

func TestLogin_MoodAlreadyRecorded(t *testing.T) {
	svc := &fakeService{authUser: regular, today: &models.MoodEntry{Feeling: "calm"}}
	a, _ := newTestApp(t, svc, "ana@example.com", "Secret123")

	require.NoError(t, a.Login(context.Background(), ""))
	assert.Empty(t, svc.moods)
}

func TestLogin_WithRole(t *testing.T) {
	svc := &fakeService{authUser: admin}
	a, _ := newTestApp(t, svc, "admin", "1234", "admin", "1234")

	err := a.Login(context.Background(), "staff")
	require.ErrorIs(t, err, common.ErrorUnauthorized)
	assert.Equal(t, models.RoleStaff, svc.authRole)
	assert.Nil(t, a.user)

	require.NoError(t, a.Login(context.Background(), "admin"))
	assert.Equal(t, models.RoleAdministrator, a.role())
}

func TestLogin_UnknownRole(t *testing.T) {
	a, _ := newTestApp(t, &fakeService{})
	require.Error(t, a.Login(context.Background(), "wizard"))
}

func TestLogin_Failure(t *testing.T) {
	svc := &fakeService{authErr: common.ErrorUnauthorized}
	a, _ := newTestApp(t, svc, "ana@example.com", "wrong")

	require.ErrorIs(t, a.Login(context.Background(), ""), common.ErrorUnauthorized)
	assert.Nil(t, a.user)
}

func TestLogout(t *testing.T) {
	a, out := newTestApp(t, &fakeService{})
	a.startSession(context.Background(), regular)

	require.NoError(t, a.Logout(context.Background()))
	assert.Nil(t, a.user)
	assert.Equal(t, "", a.status())
	assert.Contains(t, out.String(), "Logged out.")
}

func TestRecordMood(t *testing.T) {
	t.Run("free text", func(t *testing.T) {
		svc := &fakeService{}
		a, _ := newTestApp(t, svc, "hopeful")
		a.user = regular

		require.NoError(t, a.RecordMood(context.Background()))
		assert.Equal(t, []string{"hopeful"}, svc.moods)
	})

	t.Run("already recorded", func(t *testing.T) {
		svc := &fakeService{today: &models.MoodEntry{Feeling: "calm"}}
		a, out := newTestApp(t, svc)
		a.user = regular

		require.ErrorIs(t, a.RecordMood(context.Background()), common.ErrAlreadyRecordedToday)
		assert.Contains(t, out.String(), `"calm"`)
	})

	t.Run("empty feeling", func(t *testing.T) {
		svc := &fakeService{moodErr: common.ErrNoFeelingProvided}
		a, _ := newTestApp(t, svc, "")
		a.user = regular

		require.ErrorIs(t, a.RecordMood(context.Background()), common.ErrNoFeelingProvided)
	})

	t.Run("lookup failure", func(t *testing.T) {
		boom := errors.New("boom")
		svc := &fakeService{todayErr: boom}
		a, _ := newTestApp(t, svc)
		a.user = regular

		require.ErrorIs(t, a.RecordMood(context.Background()), boom)
	})
}

func TestCalendar(t *testing.T) {
	svc := &fakeService{calendar: models.MoodCalendar{21: "Tired", 3: "Calm"}}
	a, out := newTestApp(t, svc)
	a.user = regular

	require.NoError(t, a.Calendar(context.Background(), "2025-07"))
	assert.Equal(t, 2025, svc.calYear)
	assert.Equal(t, 7, svc.calMonth)
	assert.Equal(t, "July 2025\n   3  Calm\n  21  Tired\n", out.String())

	out.Reset()
	svc.calendar = nil
	require.NoError(t, a.Calendar(context.Background(), ""))
	assert.Equal(t, 7, svc.calMonth)
	assert.Contains(t, out.String(), "No moods recorded in July 2025.")

	require.ErrorIs(t, a.Calendar(context.Background(), "July"), errInvalidInput)
}

func TestWellbeing_RepromptsInvalidAnswers(t *testing.T) {
	svc := &fakeService{}
	a, out := newTestApp(t, svc, "maybe", "yes", "n", "no", "Y", "no")
	a.user = regular

	require.NoError(t, a.Wellbeing(context.Background()))

	require.Len(t, svc.wellbeing, 5)
	assert.Equal(t, "yes", svc.wellbeing[0].Answer)
	assert.Equal(t, "no", svc.wellbeing[1].Answer)
	assert.Equal(t, "yes", svc.wellbeing[3].Answer)
	assert.Contains(t, out.String(), "answer yes or no")
}

func TestCompanion(t *testing.T) {
	svc := &fakeService{label: "Fish"}
	a, out := newTestApp(t, svc, "2", "3", "apartment", "independent", "yes", "small")
	a.user = regular

	require.NoError(t, a.Companion(context.Background()))
	require.Len(t, svc.companion, 6)
	assert.Contains(t, out.String(), "Our suggestion for a companion: Fish")
}

func TestSuggestions(t *testing.T) {
	svc := &fakeService{user: &models.User{}}
	a, out := newTestApp(t, svc)
	a.user = regular

	require.NoError(t, a.Suggestions(context.Background()))
	assert.Contains(t, out.String(), "wellbeing questionnaire first")

	out.Reset()
	svc.user.WellbeingAnswers = models.RawAnswers(`[]`)
	require.NoError(t, a.Suggestions(context.Background()))
	assert.Contains(t, out.String(), "Suggestions for you:")
}

func TestCounselors(t *testing.T) {
	svc := &fakeService{}
	a, out := newTestApp(t, svc)
	a.user = regular

	require.NoError(t, a.Counselors(context.Background()))
	assert.Contains(t, out.String(), "No counselors available")

	out.Reset()
	svc.contacts = []models.StaffContact{{Name: "Bruno Dias", Email: "bruno@example.com"}}
	require.NoError(t, a.Counselors(context.Background()))
	assert.Contains(t, out.String(), "bruno@example.com")
}

func TestProfile(t *testing.T) {
	cat := "Cat"
	svc := &fakeService{user: &models.User{Name: "Ana Perez", Email: "ana@example.com", Companion: &cat}}
	a, out := newTestApp(t, svc)
	a.user = regular

	require.NoError(t, a.Profile(context.Background()))
	assert.Contains(t, out.String(), "Age:       -")
	assert.Contains(t, out.String(), "Companion: Cat")
}

func TestStaffUsersAndShow(t *testing.T) {
	svc := &fakeService{
		members: []models.RoleMember{{ID: 5, Name: "Ana Perez", Age: intp(28)}},
		profile: &models.ProfileView{
			Name:             "Ana Perez",
			WellbeingAnswers: []models.Answer{{Question: "1. sad?", Answer: "no"}},
			RecentMoods:      []models.MoodRecord{{Date: "2025-07-21", Feeling: "calm"}},
		},
	}
	a, out := newTestApp(t, svc, "5")
	a.user = &models.User{ID: 2, Role: models.RoleStaff}

	require.NoError(t, a.Users(context.Background()))
	assert.Contains(t, out.String(), "Ana Perez")

	out.Reset()
	require.NoError(t, a.Show(context.Background(), ""))
	s := out.String()
	assert.Contains(t, s, "1. sad? no")
	assert.Contains(t, s, "Suggested companion: -")
	assert.Contains(t, s, "(not answered)")
	assert.Contains(t, s, "2025-07-21  calm")

	require.ErrorIs(t, a.Show(context.Background(), "abc"), errInvalidInput)

	svc.profile = nil
	require.ErrorIs(t, a.Show(context.Background(), "9"), common.ErrorNotFound)
}

func TestAdminAddUser(t *testing.T) {
	svc := &fakeService{}
	a, out := newTestApp(t, svc, "Bruno Dias", "bruno@example.com", "Secret123", "", "staff")
	a.user = admin

	require.NoError(t, a.AddUser(context.Background()))
	require.Len(t, svc.registerCalls, 1)
	assert.Equal(t, models.RoleStaff, svc.registerCalls[0].role)
	assert.Nil(t, svc.registerCalls[0].age)
	assert.Contains(t, out.String(), "created")

	a2, _ := newTestApp(t, svc, "Bruno Dias", "bruno@example.com", "Secret123", "", "7")
	a2.user = admin
	require.ErrorIs(t, a2.AddUser(context.Background()), errInvalidInput)
}

func TestAdminList(t *testing.T) {
	svc := &fakeService{users: []models.User{*admin, *regular}}
	a, out := newTestApp(t, svc)
	a.user = admin

	require.NoError(t, a.List(context.Background()))
	assert.Contains(t, out.String(), "administrator")
	assert.Contains(t, out.String(), "ana@example.com")
}

func TestAdminUpdate(t *testing.T) {
	t.Run("empty answers keep values", func(t *testing.T) {
		svc := &fakeService{user: &models.User{ID: 5, Name: "Ana Perez", Email: "ana@example.com", Age: intp(30)}}
		a, _ := newTestApp(t, svc, "", "", "", "")
		a.user = admin

		require.NoError(t, a.Update(context.Background(), "5"))
		assert.Equal(t, []updateCall{{5, "Ana Perez", "ana@example.com", "", intp(30)}}, svc.updates)
	})

	t.Run("new values and cleared age", func(t *testing.T) {
		svc := &fakeService{user: &models.User{ID: 5, Name: "Ana Perez", Email: "ana@example.com", Age: intp(30)}}
		a, _ := newTestApp(t, svc, "Ana Souza", "ana.souza@example.com", "NewSecret9", "-")
		a.user = admin

		require.NoError(t, a.Update(context.Background(), "5"))
		assert.Equal(t, []updateCall{{5, "Ana Souza", "ana.souza@example.com", "NewSecret9", nil}}, svc.updates)
	})

	t.Run("weak secret rejected", func(t *testing.T) {
		svc := &fakeService{user: &models.User{ID: 5, Name: "Ana Perez", Email: "ana@example.com"}}
		a, _ := newTestApp(t, svc, "", "", "weak", "")
		a.user = admin

		require.ErrorIs(t, a.Update(context.Background(), "5"), errInvalidInput)
		assert.Empty(t, svc.updates)
	})

	t.Run("default admin keeps stored name and email", func(t *testing.T) {
		svc := &fakeService{user: admin}
		a, _ := newTestApp(t, svc, "", "", "", "")
		a.user = admin

		require.NoError(t, a.Update(context.Background(), "1"))
		assert.Equal(t, []updateCall{{1, "Admin", "admin", "", nil}}, svc.updates)
	})

	t.Run("changed email still validated", func(t *testing.T) {
		svc := &fakeService{user: admin}
		a, _ := newTestApp(t, svc, "", "not-an-email", "", "")
		a.user = admin

		require.ErrorIs(t, a.Update(context.Background(), "1"), errInvalidInput)
		assert.Empty(t, svc.updates)
	})

	t.Run("unknown user", func(t *testing.T) {
		svc := &fakeService{lookupErr: common.ErrorNotFound}
		a, _ := newTestApp(t, svc)
		a.user = admin

		require.ErrorIs(t, a.Update(context.Background(), "99"), common.ErrorNotFound)
	})
}

func TestAdminDelete(t *testing.T) {
	t.Run("cancelled", func(t *testing.T) {
		svc := &fakeService{}
		a, _ := newTestApp(t, svc, "no")
		a.user = admin

		require.NoError(t, a.Delete(context.Background(), "5"))
		assert.Empty(t, svc.deleted)
	})

	t.Run("confirmed", func(t *testing.T) {
		svc := &fakeService{}
		a, _ := newTestApp(t, svc, "YES")
		a.user = admin

		require.NoError(t, a.Delete(context.Background(), "5"))
		assert.Equal(t, []int64{5}, svc.deleted)
		assert.NotNil(t, a.user)
	})

	t.Run("default admin", func(t *testing.T) {
		svc := &fakeService{deleteErr: common.ErrForbidden}
		a, _ := newTestApp(t, svc, "yes")
		a.user = admin

		require.ErrorIs(t, a.Delete(context.Background(), "1"), common.ErrForbidden)
	})

	t.Run("own account logs out", func(t *testing.T) {
		svc := &fakeService{}
		a, _ := newTestApp(t, svc, "yes")
		a.user = &models.User{ID: 8, Email: "second@example.com", Role: models.RoleAdministrator}

		require.NoError(t, a.Delete(context.Background(), "8"))
		assert.Nil(t, a.user)
	})
}

func TestReportError(t *testing.T) {
	a, out := newTestApp(t, &fakeService{})

	a.reportError(context.Background(), fmt.Errorf("wrapped: %w", common.ErrAlreadyRecordedToday))
	assert.Equal(t, "Error: You have already recorded your mood today.\n", out.String())

	out.Reset()
	a.reportError(context.Background(), errors.New("disk on fire"))
	assert.Equal(t, "Error: disk on fire\n", out.String())
}

func TestRun_EndToEnd(t *testing.T) {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.DatabaseDSN = filepath.Join(t.TempDir(), "cli.db")

	st, err := storage.InitDatabase(context.Background(), cfg, logging.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	svc := services.NewWellnessService(st.DB, st.Manager, cfg, logging.Discard())
	a, out := newTestApp(t, svc,
		"register", "Ana Perez", "ana@example.com", "Secret123", "29",
		"login", "ana@example.com", "Secret123", "2",
		"mood",
		"calendar",
		"logout",
		"login admin", "admin", "1234",
		"list",
		"exit",
	)
	a.now = time.Now

	a.Run(context.Background())

	s := out.String()
	assert.Contains(t, s, "Registration complete")
	assert.Contains(t, s, "Welcome, Ana Perez!")
	assert.Contains(t, s, "Mood recorded")
	assert.Contains(t, s, "You have already recorded your mood today.")
	assert.Contains(t, s, time.Now().Format("January 2006"))
	assert.Contains(t, s, "sad")
	assert.Contains(t, s, "Welcome, Admin!")
	assert.Contains(t, s, "ana@example.com")
	assert.Contains(t, s, "Bye!")
}
