package handler

import (
	"errors"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/KasumiMercury/primind-appointment-booking/internal/domain"
)

var validationMessages = map[string]string{
	"required": "is required",
	"iso_date": "must be a date in YYYY-MM-DD format",
	"clock24":  "must be a time in HH:MM format",
}

var registerOnce sync.Once

// registerValidations adds the custom tags to gin's validator engine.
func registerValidations() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("iso_date", validateISODate)
		_ = v.RegisterValidation("clock24", validateClock24)
		v.RegisterTagNameFunc(fieldName)
	})
}

// fieldName reports fields by their wire name so messages match the request.
func fieldName(field reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name, _, _ := strings.Cut(field.Tag.Get(tag), ",")
		if name != "" && name != "-" {
			return name
		}
	}
	return field.Name
}

func validateISODate(fl validator.FieldLevel) bool {
	_, err := time.Parse(domain.DateLayout, fl.Field().String())
	return err == nil
}

func validateClock24(fl validator.FieldLevel) bool {
	_, err := time.Parse("15:04", fl.Field().String())
	return err == nil
}

// validationMessage renders the first field error as "field message".
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}

	first := verrs[0]
	message, ok := validationMessages[first.Tag()]
	if !ok {
		message = "is invalid"
	}
	return first.Field() + " " + message
}
