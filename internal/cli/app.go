package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/safespace/internal/logging"
	"github.com/dmitrijs2005/safespace/internal/models"
)

// Service is the part of services.WellnessService the console uses.
type Service interface {
	Register(ctx context.Context, name, email, secret string, age *int, role models.Role) (int64, error)
	Authenticate(ctx context.Context, email, secret string) (*models.User, error)
	AuthenticateAs(ctx context.Context, email, secret string, role models.Role) (*models.User, error)
	UpdateProfile(ctx context.Context, id int64, name, email, secret string, age *int) error
	DeleteUser(ctx context.Context, id int64) error
	SubmitWellbeingQuestionnaire(ctx context.Context, id int64, answers []models.Answer) error
	SubmitCompanionQuestionnaire(ctx context.Context, id int64, answers []models.Answer) (string, error)
	RecordDailyMood(ctx context.Context, id int64, feeling string) error
	GetTodayMood(ctx context.Context, id int64) (*models.MoodEntry, error)
	GetMonthlyMoodCalendar(ctx context.Context, id int64, year, month int) (models.MoodCalendar, error)
	GetFullProfile(ctx context.Context, id int64) (*models.ProfileView, error)
	ListCounselorContacts(ctx context.Context, limit int) ([]models.StaffContact, error)
	GetUser(ctx context.Context, id int64) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	ListUsersByRole(ctx context.Context, role models.Role) ([]models.RoleMember, error)
}

type App struct {
	svc       Service
	baseLog   logging.Logger
	log       logging.Logger
	reader    *bufio.Reader
	out       io.Writer
	validator *validator.Validate
	now       func() time.Time

	user *models.User
}

func NewApp(svc Service, log logging.Logger, in io.Reader, out io.Writer) *App {
	return &App{
		svc:       svc,
		baseLog:   log,
		log:       log,
		reader:    bufio.NewReader(in),
		out:       out,
		validator: newValidator(),
		now:       time.Now,
	}
}

// Run blocks until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to SafeSpace (type 'help' for commands)")
	runREPL(ctx, a, a.reader, a.out)
}

func (a *App) role() models.Role {
	if a.user == nil {
		return 0
	}
	return a.user.Role
}

func (a *App) status() string {
	if a.user == nil {
		return ""
	}
	return fmt.Sprintf(" (%s %s)", a.user.Email, a.user.Role)
}

func (a *App) startSession(ctx context.Context, u *models.User) {
	a.user = u
	a.log = a.baseLog.With("session", uuid.NewString(), "user_id", u.ID)
	a.log.Info(ctx, "session started", "role", u.Role.String())
}

func (a *App) endSession(ctx context.Context) {
	if a.user != nil {
		a.log.Info(ctx, "session ended")
	}
	a.user = nil
	a.log = a.baseLog
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) ask(prompt string) (string, error) {
	return GetSimpleText(a.reader, prompt, a.out)
}
