package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/safespace/internal/common"
	"github.com/dmitrijs2005/safespace/internal/questionnaire"
)

var errorMessages = []struct {
	err error
	msg string
}{
	{common.ErrorUnauthorized, "Invalid email or secret."},
	{common.ErrDuplicateEmail, "This email is already registered."},
	{common.ErrForbidden, "The default administrator cannot be deleted or change its email."},
	{common.ErrAlreadyRecordedToday, "You have already recorded your mood today."},
	{common.ErrNoFeelingProvided, "No feeling entered, nothing was recorded."},
	{common.ErrorNotFound, "Not found."},
	{common.ErrStorageUnavailable, "Storage is unavailable, try again later."},
	{questionnaire.ErrInvalidAnswer, "Invalid answer."},
}

// describe turns an error into the message shown to the user. ok is false
// for errors the console has no wording for.
func describe(err error) (msg string, ok bool) {
	if errors.Is(err, errInvalidInput) {
		return err.Error(), true
	}
	for _, m := range errorMessages {
		if errors.Is(err, m.err) {
			return m.msg, true
		}
	}
	return err.Error(), false
}

func (a *App) reportError(ctx context.Context, err error) {
	msg, known := describe(err)
	if !known {
		a.log.Error(ctx, "command failed", "error", err)
	}
	a.println("Error:", msg)
}
