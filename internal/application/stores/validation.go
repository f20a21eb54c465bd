package stores

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/taskflow/core/internal/domain/entities"
)

// translateValidation runs struct validation and maps the first failure onto
// the domain error type so it surfaces as a user-visible message.
func translateValidation(v *validator.Validate, in interface{}) error {
	err := v.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		field := strings.ToLower(verrs[0].Field())
		if verrs[0].Tag() == "required" {
			return entities.NewValidationError(field, "cannot be empty")
		}
		return entities.NewValidationError(field, "is invalid")
	}
	return err
}
