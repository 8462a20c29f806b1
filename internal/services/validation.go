package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"crudexample/internal/domain"
	"crudexample/internal/domain/models"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("gender", func(fl validator.FieldLevel) bool {
		_, ok := models.ParseGender(fl.Field().String())
		return ok
	})
	return v
}

// ValidateModel runs the struct's validate tags and reports the first
// failing field as a ValidationError.
func ValidateModel(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return domain.ValidationError{Msg: "invalid payload", Err: err}
	}
	fe := verrs[0]
	return domain.ValidationError{Field: fe.Field(), Msg: ruleMessage(fe), Err: err}
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "can't be blank"
	case "email":
		return "should be a proper email address"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "oneof":
		return "must be one of " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "gender":
		return "must be one of Male, Female, Other"
	case "eqfield":
		return fmt.Sprintf("must match %s", fe.Param())
	case "datetime":
		return "must be a date in " + fe.Param() + " format"
	default:
		return "is invalid"
	}
}
