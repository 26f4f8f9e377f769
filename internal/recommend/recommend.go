// Package recommend maps companion-questionnaire answers to a suggested
// support animal.
package recommend

import "strings"

// AllergyQuestion is the companion-questionnaire key the rule reads.
const AllergyQuestion = "5. Are you allergic to animal fur? (yes/no)"

const (
	Fish = "Fish"
	Cat  = "Cat"
)

// Companion returns Fish when the allergy answer is "yes" (case and
// surrounding space ignored) and Cat otherwise, including when the answer is
// missing. It has no side effects.
func Companion(answers map[string]string) string {
	if strings.EqualFold(strings.TrimSpace(answers[AllergyQuestion]), "yes") {
		return Fish
	}
	return Cat
}
