package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Answer is one questionnaire response.
type Answer struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// RawAnswers is the serialized form of an answer list as kept in the
// database. Nil means absent and maps to SQL NULL.
type RawAnswers []byte

// EncodeAnswers serializes answers. An empty list encodes to nil so that an
// empty structure is never stored.
func EncodeAnswers(answers []Answer) (RawAnswers, error) {
	if len(answers) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(answers)
	if err != nil {
		return nil, fmt.Errorf("failed to encode answers: %w", err)
	}
	return RawAnswers(b), nil
}

// Decode parses the stored list. Absent answers decode to nil.
func (r RawAnswers) Decode() ([]Answer, error) {
	if r == nil {
		return nil, nil
	}
	var out []Answer
	if err := json.Unmarshal(r, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AnswerMap turns a list into question -> answer.
func AnswerMap(answers []Answer) map[string]string {
	m := make(map[string]string, len(answers))
	for _, a := range answers {
		m[a.Question] = a.Answer
	}
	return m
}

func (r RawAnswers) Value() (driver.Value, error) {
	if r == nil {
		return nil, nil
	}
	return string(r), nil
}

func (r *RawAnswers) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*r = nil
	case string:
		*r = RawAnswers(v)
	case []byte:
		*r = append(RawAnswers(nil), v...)
	default:
		return fmt.Errorf("cannot scan %T into RawAnswers", src)
	}
	return nil
}
