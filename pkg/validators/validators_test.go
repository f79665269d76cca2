package validators

import (
	"comply/media-api/internal/errs"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestEmailValidator(t *testing.T) {
	require.NoError(t, EmailValidator("john@example.com"))
	require.ErrorIs(t, EmailValidator(""), ErrEmailEmpty)
	require.ErrorIs(t, EmailValidator("john"), ErrEmailInvalid)
	require.ErrorIs(t, EmailValidator("John <john@example.com>"), ErrEmailInvalid)
}

func TestPasswordValidator(t *testing.T) {
	require.NoError(t, PasswordValidator("password123"))
	require.ErrorIs(t, PasswordValidator(""), ErrPasswordEmpty)
	require.ErrorIs(t, PasswordValidator("short"), ErrPasswordTooShort)
	require.NoError(t, PasswordValidator(strings.Repeat("a", 72)))
	require.ErrorIs(t, PasswordValidator(strings.Repeat("a", 73)), ErrPasswordTooLong)
}

func TestRegisterValidator(t *testing.T) {
	ok := RegisterInput{Email: "jane@example.com", Password: "password123", FirstName: "Jane", LastName: "Doe"}
	require.NoError(t, RegisterValidator(&ok))

	bad := ok
	bad.Email = "nope"
	require.ErrorIs(t, RegisterValidator(&bad), errs.ErrValidationRejected)

	bad = ok
	bad.Password = "short"
	require.ErrorIs(t, RegisterValidator(&bad), errs.ErrValidationRejected)

	bad = ok
	bad.FirstName = ""
	err := RegisterValidator(&bad)
	require.ErrorIs(t, err, errs.ErrValidationRejected)
	require.ErrorContains(t, err, "firstName is required")
}

func TestLoginValidator(t *testing.T) {
	require.NoError(t, LoginValidator(&LoginInput{Email: "a@example.com", Password: "x"}))

	err := LoginValidator(&LoginInput{Email: "a@example.com"})
	require.ErrorIs(t, err, errs.ErrValidationRejected)
	require.ErrorContains(t, err, "password is required")
}

func TestVideoValidator(t *testing.T) {
	in := VideoInput{Title: "Intro", Duration: "10:00", Type: "module", ModuleID: strPtr("m1")}
	require.NoError(t, VideoValidator(&in))

	in.Type = "bonus"
	err := VideoValidator(&in)
	require.ErrorIs(t, err, errs.ErrValidationRejected)
	require.ErrorContains(t, err, "type must be one of")

	require.ErrorIs(t, VideoValidator(&VideoInput{Type: "basic", Duration: "1:00"}), errs.ErrValidationRejected)
}

func TestVideoUpdateValidator(t *testing.T) {
	require.NoError(t, VideoUpdateValidator(&VideoUpdateInput{}))
	require.NoError(t, VideoUpdateValidator(&VideoUpdateInput{Type: strPtr("basic")}))
	require.ErrorIs(t, VideoUpdateValidator(&VideoUpdateInput{Type: strPtr("other")}), errs.ErrValidationRejected)
}

func TestPresentationValidator(t *testing.T) {
	n, err := PresentationValidator(&PresentationInput{Title: "Deck", Slides: "12", ModuleID: "m1"})
	require.NoError(t, err)
	require.Equal(t, 12, n)

	_, err = PresentationValidator(&PresentationInput{Title: "Deck", Slides: "twelve", ModuleID: "m1"})
	require.ErrorIs(t, err, errs.ErrValidationRejected)

	_, err = PresentationValidator(&PresentationInput{Title: "Deck", Slides: "12"})
	require.ErrorIs(t, err, errs.ErrValidationRejected)
	require.ErrorContains(t, err, "moduleId is required")
}

func TestPresentationUpdateValidator(t *testing.T) {
	n, err := PresentationUpdateValidator(&PresentationUpdateInput{})
	require.NoError(t, err)
	require.Nil(t, n)

	n, err = PresentationUpdateValidator(&PresentationUpdateInput{Slides: strPtr("7")})
	require.NoError(t, err)
	require.Equal(t, 7, *n)

	_, err = PresentationUpdateValidator(&PresentationUpdateInput{Slides: strPtr("-1")})
	require.ErrorIs(t, err, errs.ErrValidationRejected)
}
