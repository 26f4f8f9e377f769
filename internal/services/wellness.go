// Package services contains SafeSpace business logic. WellnessService is the
// single facade presentation layers talk to: it orchestrates the user and
// mood repositories and maps every outcome onto the sentinel errors in
// package common.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/dmitrijs2005/safespace/internal/common"
	"github.com/dmitrijs2005/safespace/internal/config"
	"github.com/dmitrijs2005/safespace/internal/cryptox"
	"github.com/dmitrijs2005/safespace/internal/dbx"
	"github.com/dmitrijs2005/safespace/internal/logging"
	"github.com/dmitrijs2005/safespace/internal/models"
	"github.com/dmitrijs2005/safespace/internal/recommend"
	"github.com/dmitrijs2005/safespace/internal/repositories/repomanager"
)

// WellnessService is the facade over users and mood entries used by the CLI.
type WellnessService struct {
	db              *sql.DB
	repomanager     repomanager.RepositoryManager
	log             logging.Logger
	contactLimit    int
	legacyPlaintext bool

	now     func() time.Time
	shuffle func(n int, swap func(i, j int))
}

// NewWellnessService wires the facade to an initialized database.
func NewWellnessService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, log logging.Logger) *WellnessService {
	return &WellnessService{
		db:              db,
		repomanager:     m,
		log:             log,
		contactLimit:    cfg.CounselorContactLimit,
		legacyPlaintext: cfg.LegacyPlaintextSecrets,
		now:             time.Now,
		shuffle:         rand.Shuffle,
	}
}

func (s *WellnessService) today() string {
	return s.now().Format(common.DateLayout)
}

// Register creates an account and returns its id. The secret is stored as a
// salted hash.
func (s *WellnessService) Register(ctx context.Context, name, email, secret string, age *int, role models.Role) (int64, error) {
	if !role.Valid() {
		return 0, fmt.Errorf("invalid role %d", int(role))
	}

	u := &models.User{
		Name:   name,
		Email:  email,
		Secret: cryptox.HashSecret(secret),
		Age:    age,
		Role:   role,
	}
	id, err := s.repomanager.Users(s.db).Insert(ctx, u)
	if err != nil {
		return 0, err
	}

	s.log.Info(ctx, "user registered", "user_id", id, "role", role.String())
	return id, nil
}

// checkSecret compares a typed secret with the stored credential. legacy is
// true when the stored value was plaintext and should be re-hashed.
func (s *WellnessService) checkSecret(ctx context.Context, stored, secret string) (ok, legacy bool) {
	if cryptox.IsHashed(stored) {
		ok, err := cryptox.VerifySecret(stored, secret)
		if err != nil {
			s.log.Warn(ctx, "stored secret hash unreadable", "error", err)
			return false, false
		}
		return ok, false
	}
	if s.legacyPlaintext {
		return cryptox.EqualPlain(stored, secret), true
	}
	return false, false
}

func (s *WellnessService) upgradeSecret(ctx context.Context, u *models.User, secret string) {
	hashed := cryptox.HashSecret(secret)
	if err := s.repomanager.Users(s.db).UpdateSecret(ctx, u.ID, hashed); err != nil {
		s.log.Warn(ctx, "could not re-hash legacy secret", "user_id", u.ID, "error", err)
		return
	}
	u.Secret = hashed
	s.log.Info(ctx, "legacy secret re-hashed", "user_id", u.ID)
}

// Authenticate finds the account for email and checks the secret. The role
// is not constrained; callers route on the returned user's Role. Any
// mismatch is ErrorUnauthorized.
func (s *WellnessService) Authenticate(ctx context.Context, email, secret string) (*models.User, error) {
	u, err := s.repomanager.Users(s.db).FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, err
	}

	ok, legacy := s.checkSecret(ctx, u.Secret, secret)
	if !ok {
		s.log.Debug(ctx, "authentication failed", "user_id", u.ID)
		return nil, common.ErrorUnauthorized
	}
	if legacy {
		s.upgradeSecret(ctx, u, secret)
	}
	return u, nil
}

// AuthenticateAs is Authenticate restricted to one role.
func (s *WellnessService) AuthenticateAs(ctx context.Context, email, secret string, role models.Role) (*models.User, error) {
	var legacy bool
	check := func(stored string) bool {
		var ok bool
		ok, legacy = s.checkSecret(ctx, stored, secret)
		return ok
	}

	u, err := s.repomanager.Users(s.db).FindByCredentials(ctx, email, role, check)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, err
	}
	if legacy {
		s.upgradeSecret(ctx, u, secret)
	}
	return u, nil
}

// UpdateProfile replaces name, email, secret and age. An empty secret keeps
// the current credential. The default administrator's email is fixed, so an
// attempt to change it fails with ErrForbidden.
func (s *WellnessService) UpdateProfile(ctx context.Context, id int64, name, email, secret string, age *int) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		current, err := repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if current.Email == common.DefaultAdminEmail && email != current.Email {
			return common.ErrForbidden
		}

		stored := current.Secret
		if secret != "" {
			stored = cryptox.HashSecret(secret)
		}
		return repo.Update(ctx, id, name, email, stored, age)
	})
}

// DeleteUser removes a user together with its mood entries. The default
// administrator cannot be deleted.
func (s *WellnessService) DeleteUser(ctx context.Context, id int64) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		u, err := repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if u.Email == common.DefaultAdminEmail {
			return common.ErrForbidden
		}
		return repo.DeleteByID(ctx, id)
	})
	if err != nil {
		return err
	}

	s.log.Info(ctx, "user deleted", "user_id", id)
	return nil
}

// SubmitWellbeingQuestionnaire stores answers as given, replacing earlier ones.
func (s *WellnessService) SubmitWellbeingQuestionnaire(ctx context.Context, id int64, answers []models.Answer) error {
	raw, err := models.EncodeAnswers(answers)
	if err != nil {
		return err
	}
	return s.repomanager.Users(s.db).UpdateWellbeingAnswers(ctx, id, raw)
}

// SubmitCompanionQuestionnaire applies the recommendation rule, stores the
// label with the answers and returns the label.
func (s *WellnessService) SubmitCompanionQuestionnaire(ctx context.Context, id int64, answers []models.Answer) (string, error) {
	label := recommend.Companion(models.AnswerMap(answers))

	raw, err := models.EncodeAnswers(answers)
	if err != nil {
		return "", err
	}
	if err := s.repomanager.Users(s.db).UpdateCompanion(ctx, id, label, raw); err != nil {
		return "", err
	}

	s.log.Debug(ctx, "companion suggested", "user_id", id, "companion", label)
	return label, nil
}

// RecordDailyMood stores today's feeling once per day.
func (s *WellnessService) RecordDailyMood(ctx context.Context, id int64, feeling string) error {
	repo := s.repomanager.Moods(s.db)
	date := s.today()

	_, err := repo.FindByUserAndDate(ctx, id, date)
	switch {
	case err == nil:
		return common.ErrAlreadyRecordedToday
	case !errors.Is(err, common.ErrorNotFound):
		return err
	}

	feeling = strings.TrimSpace(feeling)
	if feeling == "" {
		return common.ErrNoFeelingProvided
	}

	if err := repo.Insert(ctx, id, date, feeling); err != nil {
		if errors.Is(err, common.ErrDuplicateEntry) {
			return common.ErrAlreadyRecordedToday
		}
		return err
	}
	return nil
}

// GetTodayMood returns today's entry or ErrorNotFound.
func (s *WellnessService) GetTodayMood(ctx context.Context, id int64) (*models.MoodEntry, error) {
	return s.repomanager.Moods(s.db).FindByUserAndDate(ctx, id, s.today())
}

// GetMonthlyMoodCalendar maps each day of the month that has an entry to its
// feeling.
func (s *WellnessService) GetMonthlyMoodCalendar(ctx context.Context, id int64, year, month int) (models.MoodCalendar, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("invalid month %d", month)
	}
	return s.repomanager.Moods(s.db).MonthlyAggregate(ctx, id, year, month)
}

// decode turns stored answers into a list. Unreadable data is logged and
// reported as absent.
func (s *WellnessService) decode(ctx context.Context, id int64, field string, raw models.RawAnswers) []models.Answer {
	answers, err := raw.Decode()
	if err != nil {
		s.log.Warn(ctx, common.ErrMalformedStoredAnswers.Error(), "user_id", id, "field", field, "error", err)
		return nil
	}
	return answers
}

// GetFullProfile assembles the counselor view of a regular user.
func (s *WellnessService) GetFullProfile(ctx context.Context, id int64) (*models.ProfileView, error) {
	p, err := s.repomanager.Users(s.db).FindProfileForCounselor(ctx, id)
	if err != nil {
		return nil, err
	}

	history, err := s.repomanager.Moods(s.db).RecentHistory(ctx, id, common.RecentHistoryLimit)
	if err != nil {
		return nil, err
	}

	return &models.ProfileView{
		Name:             p.Name,
		WellbeingAnswers: s.decode(ctx, id, "wellbeing_answers", p.WellbeingAnswers),
		Companion:        p.Companion,
		CompanionAnswers: s.decode(ctx, id, "companion_answers", p.CompanionAnswers),
		RecentMoods:      history,
	}, nil
}

// ListCounselorContacts returns staff contacts. When there are more than
// limit of them a uniform random sample of limit contacts is returned.
// A non-positive limit uses the configured default.
func (s *WellnessService) ListCounselorContacts(ctx context.Context, limit int) ([]models.StaffContact, error) {
	if limit <= 0 {
		limit = s.contactLimit
	}

	all, err := s.repomanager.Users(s.db).ListStaffContacts(ctx)
	if err != nil {
		return nil, err
	}
	if limit <= 0 || len(all) <= limit {
		return all, nil
	}

	s.shuffle(len(all), func(i, j int) { all[i], all[j] = all[j], all[i] })
	return all[:limit:limit], nil
}

// GetUser returns a user by id or ErrorNotFound.
func (s *WellnessService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	return s.repomanager.Users(s.db).FindByID(ctx, id)
}

// ListUsers returns every user ordered by id.
func (s *WellnessService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.repomanager.Users(s.db).ListAll(ctx)
}

// ListUsersByRole returns id, name and age of the users holding role.
func (s *WellnessService) ListUsersByRole(ctx context.Context, role models.Role) ([]models.RoleMember, error) {
	return s.repomanager.Users(s.db).ListByRole(ctx, role)
}
