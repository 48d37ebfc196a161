package service

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// fieldNames maps json tags to the labels shown to the user
var fieldNames = map[string]string{
	"topic":       "Topic",
	"webhook_url": "Webhook URL",
	"secret_key":  "Secret key",
}

// ValidationError is returned when a submission is rejected before dispatch
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages, "; ")
}

// submissionValidator validates structs and renders readable messages
type submissionValidator struct {
	validate *validator.Validate
	trans    ut.Translator
}

func newSubmissionValidator() (*submissionValidator, error) {
	validate := validator.New()

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if label, ok := fieldNames[name]; ok {
			return label
		}
		return name
	})

	english := en.New()
	uni := ut.New(english, english)
	trans, found := uni.GetTranslator("en")
	if !found {
		return nil, fmt.Errorf("translator not found")
	}

	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, fmt.Errorf("failed to register translations: %w", err)
	}

	overrides := map[string]string{
		"required":   "{0} is required",
		"url":        "{0} must be a full URL, e.g. https://example.com/hook",
		"startswith": "{0} must start with http:// or https://",
	}
	for tag, msg := range overrides {
		tag, msg := tag, msg
		err := validate.RegisterTranslation(tag, trans, func(ut ut.Translator) error {
			return ut.Add(tag, msg, true)
		}, func(ut ut.Translator, fe validator.FieldError) string {
			t, _ := ut.T(tag, fe.Field())
			return t
		})
		if err != nil {
			return nil, fmt.Errorf("failed to register %s translation: %w", tag, err)
		}
	}

	return &submissionValidator{validate: validate, trans: trans}, nil
}

// Struct validates s and converts field errors into a ValidationError
func (v *submissionValidator) Struct(s any) error {
	return v.translate(v.validate.Struct(s))
}

// Partial validates only the named fields of s
func (v *submissionValidator) Partial(s any, fields ...string) error {
	return v.translate(v.validate.StructPartial(s, fields...))
}

func (v *submissionValidator) translate(err error) error {
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		messages = append(messages, fe.Translate(v.trans))
	}
	return &ValidationError{Messages: messages}
}
