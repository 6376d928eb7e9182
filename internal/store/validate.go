package store

import (
	"errors"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/AndrivA89/brain-dump/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	})
	return v
}

func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return domain.NewInvalidInput("%v", err)
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fe.Namespace()+" failed "+fe.Tag())
	}
	return domain.NewInvalidInput("%s", strings.Join(msgs, "; "))
}

func validatePosition(p domain.Position) error {
	return validateStruct(p)
}

func validateSize(sz domain.Size) error {
	return validateStruct(sz)
}
