package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateStruct valida los tags `validate` de un DTO y devuelve un mensaje
// legible por campo, o nil si todo es válido.
func ValidateStruct(data interface{}) []string {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return msgs
}

func describe(fe validator.FieldError) string {
	campo := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("el campo '%s' es obligatorio", campo)
	case "gt":
		return fmt.Sprintf("el campo '%s' debe ser mayor a %s", campo, fe.Param())
	case "min":
		return fmt.Sprintf("el campo '%s' debe ser al menos %s", campo, fe.Param())
	case "max":
		return fmt.Sprintf("el campo '%s' no puede exceder %s", campo, fe.Param())
	default:
		return fmt.Sprintf("el campo '%s' es inválido (%s)", campo, fe.Tag())
	}
}
