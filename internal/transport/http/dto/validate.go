package dto

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/taskhive/task-service/internal/domain"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// checkStruct runs struct-tag validation and converts the first failure into
// a domain validation error keyed by the offending field.
func checkStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		switch fe.Tag() {
		case "required":
			return domain.ErrMissingField(jsonField(fe))
		case "email":
			return domain.ErrInvalidEmail()
		case "min":
			if jsonField(fe) == "password" {
				return domain.ErrWeakPassword()
			}
			return domain.ErrInvalidField(jsonField(fe), "too short")
		default:
			return domain.ErrInvalidField(jsonField(fe), fe.Tag())
		}
	}
	return domain.ErrInternal(err)
}

// jsonField lowercases the struct field name to match the wire name. All DTO
// fields here are single words, so this is enough without a tag-name func.
func jsonField(fe validator.FieldError) string {
	name := fe.Field()
	out := make([]byte, len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		out[i] = c
	}
	return string(out)
}
