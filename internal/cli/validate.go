package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

const minSecretLen = 8

// errInvalidInput marks form input rejected before reaching the service.
var errInvalidInput = errors.New("invalid input")

// profileForm is what the register, add and update forms collect.
type profileForm struct {
	Name   string `validate:"required,fullname"`
	Email  string `validate:"required,email"`
	Secret string `validate:"required,secret"`
	Age    *int   `validate:"omitempty,min=0,max=150"`
}

// updateForm allows an empty secret, which keeps the current one.
type updateForm struct {
	Name   string `validate:"required,fullname"`
	Email  string `validate:"required,email"`
	Secret string `validate:"omitempty,secret"`
	Age    *int   `validate:"omitempty,min=0,max=150"`
}

var fieldMessages = map[string]string{
	"Name":   "name must contain at least a first and a last name",
	"Email":  "email must be a valid address",
	"Secret": fmt.Sprintf("secret must be at least %d characters and contain a letter and a digit", minSecretLen),
	"Age":    "age must be between 0 and 150",
}

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("fullname", func(fl validator.FieldLevel) bool {
		return validFullName(fl.Field().String())
	})
	_ = v.RegisterValidation("secret", func(fl validator.FieldLevel) bool {
		return validSecret(fl.Field().String())
	})
	return v
}

func validFullName(s string) bool {
	return len(strings.Fields(s)) >= 2
}

func validSecret(s string) bool {
	if len(s) < minSecretLen {
		return false
	}
	var letter, digit bool
	for _, r := range s {
		switch {
		case unicode.IsLetter(r):
			letter = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return letter && digit
}

// validate checks form and turns the first failure into a readable error.
// Fields named in except are not checked.
func (a *App) validate(form any, except ...string) error {
	var err error
	if len(except) > 0 {
		err = a.validator.StructExcept(form, except...)
	} else {
		err = a.validator.Struct(form)
	}
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		if msg, ok := fieldMessages[verrs[0].Field()]; ok {
			return fmt.Errorf("%w: %s", errInvalidInput, msg)
		}
		return fmt.Errorf("%w: %s", errInvalidInput, strings.ToLower(verrs[0].Field()))
	}
	return err
}

// parseAge reads an optional age. Empty input means absent.
func parseAge(s string) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("%w: age must be a whole number", errInvalidInput)
	}
	return &n, nil
}
