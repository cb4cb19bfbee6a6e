package cli

import (
	"reflect"
	"strings"

	pkgerrors "github.com/armonia-app/armonia-core/pkg/errors"
	"github.com/go-playground/validator/v10"
)

// The prompt flow is the form layer here, so payload validation lives at
// this boundary rather than inside the state container.

type moodEntryForm struct {
	Mood    string `json:"mood" validate:"required,max=50"`
	Journal string `json:"journal" validate:"max=1000"`
	Date    string `json:"date" validate:"required,datetime=2006-01-02"`
}

type activityForm struct {
	Title       string `json:"title" validate:"required,min=2,max=100"`
	Description string `json:"description" validate:"max=500"`
	Category    string `json:"category" validate:"required,oneof=breathing meditation exercise journaling"`
	Duration    int    `json:"duration" validate:"required,min=1,max=480"`
	Difficulty  string `json:"difficulty" validate:"required,oneof=easy medium hard"`
}

var formValidate = newFormValidator()

func newFormValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	return v
}

// validateForm flattens validator errors into one user-facing message,
// naming the first offending field.
func validateForm(form any) error {
	err := formValidate.Struct(form)
	if err == nil {
		return nil
	}
	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, errs[0].Field()+" "+formFieldMessage(errs[0]))
	}
	return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid input")
}

func formFieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	case "datetime":
		return "must use the YYYY-MM-DD format"
	}
	return "is invalid"
}
