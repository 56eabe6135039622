package learning

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

type inputValidator struct {
	validate   *validator.Validate
	translator ut.Translator
}

var getInputValidator = sync.OnceValues(newInputValidator)

func newInputValidator() (*inputValidator, error) {
	validate := validator.New()

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, fmt.Errorf("failed to register default translations: %w", err)
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &inputValidator{validate: validate, translator: trans}, nil
}

func validateInput(input any) error {
	iv, err := getInputValidator()
	if err != nil {
		return err
	}

	if err := iv.validate.Struct(input); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return fmt.Errorf("validate input: %w", err)
		}
		violations := make([]FieldViolation, 0, len(validationErrors))
		for _, e := range validationErrors {
			violations = append(violations, FieldViolation{
				Field:   e.Field(),
				Message: e.Translate(iv.translator),
			})
		}
		return &ValidationError{Violations: violations}
	}
	return nil
}
