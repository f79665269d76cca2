package validators

import (
	"comply/media-api/internal/errs"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report the names clients actually send
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
			if name != "" && name != "-" {
				return name
			}
		}

		return f.Name
	})

	return v
}

type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RegisterInput struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName" validate:"required,max=100"`
	LastName  string `json:"lastName" validate:"required,max=100"`
}

type VideoInput struct {
	Title      string  `form:"title" validate:"required,max=255"`
	Duration   string  `form:"duration" validate:"required,max=32"`
	Type       string  `form:"type" validate:"required,oneof=module basic"`
	ModuleID   *string `form:"moduleId" validate:"omitnil,min=1,max=64"`
	ModuleName *string `form:"moduleName" validate:"omitnil,max=255"`
}

type VideoUpdateInput struct {
	Title      *string `form:"title" validate:"omitnil,min=1,max=255"`
	Duration   *string `form:"duration" validate:"omitnil,min=1,max=32"`
	Type       *string `form:"type" validate:"omitnil,oneof=module basic"`
	ModuleID   *string `form:"moduleId" validate:"omitnil,max=64"`
	ModuleName *string `form:"moduleName" validate:"omitnil,max=255"`
}

// PresentationInput.Slides arrives as form text and is parsed by
// PresentationValidator
type PresentationInput struct {
	Title      string  `form:"title" validate:"required,max=255"`
	Slides     string  `form:"slides" validate:"required"`
	ModuleID   string  `form:"moduleId" validate:"required,max=64"`
	ModuleName *string `form:"moduleName" validate:"omitnil,max=255"`
}

type PresentationUpdateInput struct {
	Title      *string `form:"title" validate:"omitnil,min=1,max=255"`
	Slides     *string `form:"slides"`
	ModuleID   *string `form:"moduleId" validate:"omitnil,min=1,max=64"`
	ModuleName *string `form:"moduleName" validate:"omitnil,max=255"`
}

func LoginValidator(in *LoginInput) error {
	return check(in)
}

func RegisterValidator(in *RegisterInput) error {
	if err := EmailValidator(in.Email); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrValidationRejected, err)
	}

	if err := PasswordValidator(in.Password); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrValidationRejected, err)
	}

	return check(in)
}

func VideoValidator(in *VideoInput) error {
	return check(in)
}

func VideoUpdateValidator(in *VideoUpdateInput) error {
	return check(in)
}

// PresentationValidator returns the parsed slide count
func PresentationValidator(in *PresentationInput) (int, error) {
	if err := check(in); err != nil {
		return 0, err
	}

	return parseSlides(in.Slides)
}

// PresentationUpdateValidator returns the parsed slide count, nil when it
// wasn't sent
func PresentationUpdateValidator(in *PresentationUpdateInput) (*int, error) {
	if err := check(in); err != nil {
		return nil, err
	}

	if in.Slides == nil {
		return nil, nil
	}

	n, err := parseSlides(*in.Slides)
	if err != nil {
		return nil, err
	}

	return &n, nil
}

func parseSlides(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: slides must be a non-negative number", errs.ErrValidationRejected)
	}

	return n, nil
}

func check(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		return fmt.Errorf("%w: %s", errs.ErrValidationRejected, describe(ve[0]))
	}

	return fmt.Errorf("%w: %v", errs.ErrValidationRejected, err)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s is too short", fe.Field())
	case "max":
		return fmt.Sprintf("%s is too long", fe.Field())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
