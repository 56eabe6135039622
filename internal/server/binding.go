package server

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"

	"github.com/at-ishikawa/revisit/internal/learning"
)

// bindingTranslator names query parameters by their form tag and registers English
// messages on gin's validator. It runs once per process since the validator is shared.
var bindingTranslator = sync.OnceValues(func() (ut.Translator, error) {
	validate, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil, fmt.Errorf("unexpected binding validator %T", binding.Validator.Engine())
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, fmt.Errorf("failed to register default translations: %w", err)
	}
	return trans, nil
})

// bindingViolations turns a query binding error into field violations.
func bindingViolations(err error) []learning.FieldViolation {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []learning.FieldViolation{{Message: err.Error()}}
	}

	trans, transErr := bindingTranslator()
	violations := make([]learning.FieldViolation, 0, len(validationErrors))
	for _, e := range validationErrors {
		message := e.Error()
		if transErr == nil {
			message = e.Translate(trans)
		}
		violations = append(violations, learning.FieldViolation{Field: e.Field(), Message: message})
	}
	return violations
}
