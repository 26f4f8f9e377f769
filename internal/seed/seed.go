// Package seed fills a database with demo accounts, questionnaire answers
// and mood history.
package seed

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/dmitrijs2005/safespace/internal/common"
	"github.com/dmitrijs2005/safespace/internal/cryptox"
	"github.com/dmitrijs2005/safespace/internal/dbx"
	"github.com/dmitrijs2005/safespace/internal/logging"
	"github.com/dmitrijs2005/safespace/internal/models"
	"github.com/dmitrijs2005/safespace/internal/questionnaire"
	"github.com/dmitrijs2005/safespace/internal/recommend"
	"github.com/dmitrijs2005/safespace/internal/repositories/repomanager"
	"github.com/dmitrijs2005/safespace/internal/repositories/users"
)

var (
	firstNames = []string{
		"Alice", "Bruno", "Clara", "David", "Elisa", "Felipe", "Gabriela", "Hector", "Isabela", "John",
		"Laura", "Miguel", "Natalia", "Otavio", "Patricia", "Rodrigo", "Sofia", "Thiago", "Valentina", "William",
	}
	lastNames = []string{
		"Alves", "Barros", "Cardoso", "Dias", "Esteves", "Freitas", "Gomes", "Henriques", "Iglesias", "Jesus",
		"Klein", "Lopes", "Martins", "Nogueira", "Oliveira",
	}
	domains = []string{"example.com", "test.org", "sample.net", "demo.co"}
)

const (
	wellbeingChance = 0.7
	companionChance = 0.6
	historyChance   = 0.8
)

type Options struct {
	Staff  int
	Users  int
	Secret string
	// Days is how far back generated mood entries may go.
	Days int
	// MinMoods and MaxMoods bound the attempts per user; days already used
	// are skipped.
	MinMoods int
	MaxMoods int

	Rand *rand.Rand
	Now  time.Time
}

// DefaultOptions matches the classic demo data set: 10 counselors, 20 users
// and up to 20 moods each over the past 60 days.
func DefaultOptions() Options {
	return Options{
		Staff:    10,
		Users:    20,
		Secret:   "Password@123",
		Days:     60,
		MinMoods: 5,
		MaxMoods: 20,
	}
}

type Report struct {
	Staff int
	Users int
	Moods int
}

type generator struct {
	r      *rand.Rand
	emails map[string]bool
}

func (g *generator) name() string {
	return firstNames[g.r.IntN(len(firstNames))] + " " + lastNames[g.r.IntN(len(lastNames))]
}

func (g *generator) email(name string) string {
	parts := strings.Fields(strings.ToLower(name))
	base := parts[0] + "." + parts[len(parts)-1]

	email := fmt.Sprintf("%s@%s", base, domains[g.r.IntN(len(domains))])
	for n := 1; g.emails[email]; n++ {
		email = fmt.Sprintf("%s%d@%s", base, n, domains[g.r.IntN(len(domains))])
	}
	g.emails[email] = true
	return email
}

func (g *generator) age(lo, hi int) *int {
	v := lo + g.r.IntN(hi-lo+1)
	return &v
}

func (g *generator) answer(q questionnaire.Question) string {
	switch q.Kind {
	case questionnaire.KindScale:
		return fmt.Sprint(q.Min + g.r.IntN(q.Max-q.Min+1))
	case questionnaire.KindChoice:
		return q.Options[g.r.IntN(len(q.Options))]
	default:
		if g.r.IntN(2) == 0 {
			return "yes"
		}
		return "no"
	}
}

func (g *generator) answers(questions []questionnaire.Question) []models.Answer {
	out := make([]models.Answer, 0, len(questions))
	for _, q := range questions {
		out = append(out, models.Answer{Question: q.Key, Answer: g.answer(q)})
	}
	return out
}

// Populate adds demo data in a single transaction. The database must have
// been initialized.
func Populate(ctx context.Context, db *sql.DB, m repomanager.RepositoryManager, opts Options, log logging.Logger) (Report, error) {
	var rep Report

	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	if opts.Days <= 0 {
		opts.Days = DefaultOptions().Days
	}
	if opts.MaxMoods < opts.MinMoods {
		opts.MaxMoods = opts.MinMoods
	}

	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		userRepo := m.Users(tx)
		moodRepo := m.Moods(tx)

		existing, err := userRepo.ListAll(ctx)
		if err != nil {
			return err
		}
		g := &generator{r: opts.Rand, emails: make(map[string]bool, len(existing))}
		for _, u := range existing {
			g.emails[u.Email] = true
		}

		for i := 0; i < opts.Staff; i++ {
			u := g.user(models.RoleStaff, opts.Secret, 25, 55)
			if _, err := insertUser(ctx, userRepo, u); err != nil {
				return err
			}
			rep.Staff++
			log.Debug(ctx, "staff added", "email", u.Email)
		}

		for i := 0; i < opts.Users; i++ {
			u := g.user(models.RoleRegularUser, opts.Secret, 18, 60)
			if err := g.questionnaires(u); err != nil {
				return err
			}

			id, err := insertUser(ctx, userRepo, u)
			if err != nil {
				return err
			}
			rep.Users++

			if g.r.Float64() >= historyChance {
				continue
			}
			n, err := g.history(ctx, moodRepo, id, opts)
			if err != nil {
				return err
			}
			rep.Moods += n
		}
		return nil
	})
	if err != nil {
		return Report{}, err
	}

	log.Info(ctx, "demo data added", "staff", rep.Staff, "users", rep.Users, "moods", rep.Moods)
	return rep, nil
}

func insertUser(ctx context.Context, repo users.Repository, u *models.User) (int64, error) {
	id, err := repo.Insert(ctx, u)
	if err != nil {
		return 0, fmt.Errorf("insert %s: %w", u.Email, err)
	}
	return id, nil
}

func (g *generator) user(role models.Role, secret string, minAge, maxAge int) *models.User {
	name := g.name()
	return &models.User{
		Name:   name,
		Email:  g.email(name),
		Secret: cryptox.HashSecret(secret),
		Age:    g.age(minAge, maxAge),
		Role:   role,
	}
}

// questionnaires answers the wellbeing set for some users and, of those,
// the companion set for some.
func (g *generator) questionnaires(u *models.User) error {
	if g.r.Float64() >= wellbeingChance {
		return nil
	}

	raw, err := models.EncodeAnswers(g.answers(questionnaire.Wellbeing))
	if err != nil {
		return err
	}
	u.WellbeingAnswers = raw

	if g.r.Float64() >= companionChance {
		return nil
	}

	answers := g.answers(questionnaire.Companion)
	raw, err = models.EncodeAnswers(answers)
	if err != nil {
		return err
	}
	label := recommend.Companion(models.AnswerMap(answers))
	u.Companion = &label
	u.CompanionAnswers = raw
	return nil
}

type moodInserter interface {
	Insert(ctx context.Context, userID int64, date, feeling string) error
}

// history records moods on random past days, at most one per day.
func (g *generator) history(ctx context.Context, repo moodInserter, userID int64, opts Options) (int, error) {
	attempts := opts.MinMoods + g.r.IntN(opts.MaxMoods-opts.MinMoods+1)
	used := make(map[string]bool, attempts)

	for i := 0; i < attempts; i++ {
		daysAgo := 1 + g.r.IntN(opts.Days)
		date := opts.Now.AddDate(0, 0, -daysAgo).Format(common.DateLayout)
		if used[date] {
			continue
		}
		used[date] = true

		feeling := questionnaire.Feelings[g.r.IntN(len(questionnaire.Feelings))]
		if err := repo.Insert(ctx, userID, date, feeling); err != nil {
			return 0, err
		}
	}
	return len(used), nil
}
