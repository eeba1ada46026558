// Package validate checks user input before it is sent to the review backend.
// The backend validates again; these checks only spare a round trip.
package validate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/animecritique/critique/model"
	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

const (
	MinRating         = 1
	MaxRating         = 5
	MinReviewLength   = 10
	MinPasswordLength = 6
)

// Errors lists every problem found in a form, in field order.
type Errors []string

// Error joins the field messages.
func (e Errors) Error() string {
	return strings.Join(e, "; ")
}

var v = validator.New()

// ReviewForm is a review as typed by the user.
type ReviewForm struct {
	Rating int    `validate:"min=1,max=5"`
	Text   string `validate:"min=10"`
}

// LoginForm is a login as typed by the user.
type LoginForm struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

// RegistrationForm is a sign-up as typed by the user.
type RegistrationForm struct {
	Username     string `validate:"required"`
	Email        string `validate:"required"`
	Password     string `validate:"required,min=6"`
	Confirmation string `validate:"eqfield=Password"`
}

// Review trims the text and checks rating and length.
func Review(rating int, text string) (ReviewForm, error) {
	form := ReviewForm{Rating: rating, Text: strings.TrimSpace(text)}
	return form, check(form)
}

// Login trims the username. The password is kept as typed.
func Login(username, password string) (LoginForm, error) {
	form := LoginForm{Username: strings.TrimSpace(username), Password: password}
	if strings.TrimSpace(password) == "" {
		form.Password = ""
	}
	return form, check(form)
}

// Registration trims username and email and returns the request to send.
func Registration(form RegistrationForm) (model.RegisterRequest, error) {
	form.Username = strings.TrimSpace(form.Username)
	form.Email = strings.TrimSpace(form.Email)

	if err := check(form); err != nil {
		return model.RegisterRequest{}, err
	}

	return model.RegisterRequest{
		Username:     form.Username,
		Email:        form.Email,
		Password:     form.Password,
		Confirmation: form.Confirmation,
	}, nil
}

// Rating checks a rating on its own, for partial updates.
func Rating(rating int) error {
	return check(struct {
		Rating int `validate:"min=1,max=5"`
	}{rating})
}

// ReviewText checks review text on its own, for partial updates.
func ReviewText(text string) (string, error) {
	text = strings.TrimSpace(text)
	return text, check(struct {
		Text string `validate:"min=10"`
	}{text})
}

func check(form any) error {
	err := v.Struct(form)
	if err == nil {
		return nil
	}

	var fields validator.ValidationErrors
	if !errors.As(err, &fields) {
		return err
	}

	return Errors(lo.Map(fields, func(fe validator.FieldError, _ int) string {
		return message(fe)
	}))
}

func message(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())

	switch {
	case fe.Field() == "Rating":
		return fmt.Sprintf("rating must be between %d and %d", MinRating, MaxRating)
	case fe.Field() == "Text":
		return fmt.Sprintf("review must have at least %d characters", MinReviewLength)
	case fe.Tag() == "required":
		return field + " is required"
	case fe.Tag() == "eqfield":
		return "passwords do not match"
	case fe.Tag() == "min":
		return fmt.Sprintf("%s must have at least %s characters", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
