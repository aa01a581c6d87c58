package inventory

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/rogerio-castellano/stockroom/internal/apperr"
)

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their JSON names so views and API clients can match them.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		f := fl.Field()
		if f.Kind() != reflect.Float32 && f.Kind() != reflect.Float64 {
			return true
		}
		return !math.IsInf(f.Float(), 0) && !math.IsNaN(f.Float())
	})
	return v
}

// validateStruct runs the struct tags of s and converts failures into a
// validation error listing every offending field.
func (s *Service) validateStruct(in any) error {
	err := s.validate.Struct(in)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return fmt.Errorf("validate input: %w", err)
	}

	fields := make([]apperr.FieldError, len(validationErrs))
	for i, fe := range validationErrs {
		fields[i] = apperr.FieldError{
			Field:       fe.Field(),
			Description: validationErrorMessage(fe),
		}
	}
	return apperr.Validation(fields...)
}

func validationErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field is required"
	case "max":
		return fmt.Sprintf("must be at most %s characters long", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "finite":
		return "must be a finite number"
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	default:
		return "is invalid"
	}
}
