// Package questionnaire holds the fixed question sets shown to regular users
// and normalizes typed answers before they are stored.
package questionnaire

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/safespace/internal/models"
	"github.com/dmitrijs2005/safespace/internal/recommend"
)

type Kind int

const (
	KindYesNo Kind = iota
	KindScale
	KindChoice
)

// Question is one prompt. Key is what gets stored; Min/Max apply to
// KindScale, Options to KindChoice.
type Question struct {
	Key     string
	Kind    Kind
	Min     int
	Max     int
	Options []string
}

var ErrInvalidAnswer = errors.New("invalid answer")

var Wellbeing = []Question{
	{Key: "1. Do you feel sad or depressed most of the time?", Kind: KindYesNo},
	{Key: "2. Have you lost interest or pleasure in things you used to enjoy?", Kind: KindYesNo},
	{Key: "3. Do you have trouble sleeping, or sleep too much?", Kind: KindYesNo},
	{Key: "4. Do you often feel anxious, nervous or overly worried?", Kind: KindYesNo},
	{Key: "5. Do you often feel tired or low on energy?", Kind: KindYesNo},
}

var Companion = []Question{
	{Key: "1. Daily physical activity level? (1-low, 2-moderate, 3-high)", Kind: KindScale, Min: 1, Max: 3},
	{Key: "2. Daily time available for a pet? (1-little, 2-some, 3-a lot)", Kind: KindScale, Min: 1, Max: 3},
	{Key: "3. Do you live in a house with a yard or an apartment? (house/apartment)", Kind: KindChoice, Options: []string{"house", "apartment"}},
	{Key: "4. Do you prefer an independent pet or one that needs a lot of attention? (independent/attention)", Kind: KindChoice, Options: []string{"independent", "attention"}},
	{Key: recommend.AllergyQuestion, Kind: KindYesNo},
	{Key: "6. Preferred pet size? (large/medium/small)", Kind: KindChoice, Options: []string{"large", "medium", "small"}},
}

// Suggestions is the static wellbeing reading list shown once the wellbeing
// questionnaire has been answered.
var Suggestions = []string{
	"'The Gifts of Imperfection' by Brené Brown",
	"'Feeling Good: The New Mood Therapy' by David D. Burns",
	"A 20 minute walk outdoors, three times this week",
	"Five minutes of slow breathing before sleep",
	"Write down one thing that went well today",
}

// Feelings are suggested at the daily mood prompt and drawn from by the demo
// data populator.
var Feelings = []string{
	"happy", "sad", "okay", "anxious", "tired",
	"stressed", "content", "excited", "irritated", "relaxed",
}

// Normalize validates raw input for q and returns the stored form.
func (q Question) Normalize(raw string) (string, error) {
	s := strings.ToLower(strings.TrimSpace(raw))

	switch q.Kind {
	case KindYesNo:
		switch s {
		case "yes", "y":
			return "yes", nil
		case "no", "n":
			return "no", nil
		}
		return "", fmt.Errorf("%w: answer yes or no", ErrInvalidAnswer)

	case KindScale:
		n, err := strconv.Atoi(s)
		if err != nil || n < q.Min || n > q.Max {
			return "", fmt.Errorf("%w: enter a number between %d and %d", ErrInvalidAnswer, q.Min, q.Max)
		}
		return strconv.Itoa(n), nil

	case KindChoice:
		for _, o := range q.Options {
			if s == o {
				return o, nil
			}
		}
		return "", fmt.Errorf("%w: options are %s", ErrInvalidAnswer, strings.Join(q.Options, ", "))
	}

	return "", ErrInvalidAnswer
}

// Collect asks every question through ask until it gets a valid answer.
// ask returns the raw text typed for a prompt; its error aborts collection.
func Collect(questions []Question, ask func(q Question, retry error) (string, error)) ([]models.Answer, error) {
	answers := make([]models.Answer, 0, len(questions))
	for _, q := range questions {
		var lastErr error
		for {
			raw, err := ask(q, lastErr)
			if err != nil {
				return nil, err
			}
			v, err := q.Normalize(raw)
			if err != nil {
				lastErr = err
				continue
			}
			answers = append(answers, models.Answer{Question: q.Key, Answer: v})
			break
		}
	}
	return answers, nil
}
