package model

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

// MaxPrice is the largest amount a NUMERIC(12, 2) price column holds.
const MaxPrice = 9999999999.99

// pricePattern accepts a non-negative amount of at most ten integer digits
// and two decimal places, matching the NUMERIC(12, 2) price columns.
var pricePattern = regexp.MustCompile(`^[0-9]{1,10}(\.[0-9]{1,2})?$`)

// ValidPrice reports whether raw is a price the database can store exactly.
func ValidPrice(raw string) bool {
	return pricePattern.MatchString(raw)
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report field names the way they appear in the submitted form.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})

	v.RegisterValidation("price", func(fl validator.FieldLevel) bool {
		return ValidPrice(fl.Field().String())
	})

	return v
}

// validateStruct runs the struct tags of v and converts the failures into a
// ValidationError keyed by the form name of each field.
func validateStruct(v interface{}) *ValidationError {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &ValidationError{Fields: map[string]string{"_": err.Error()}}
	}

	verr := &ValidationError{}
	for _, fe := range fieldErrs {
		verr.Add(fe.Field(), messageFor(fe))
	}
	return verr
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("Kolom %s wajib diisi.", fe.Field())
	case "numeric":
		return fmt.Sprintf("Kolom %s harus berupa angka.", fe.Field())
	case "price":
		return priceMessage(fe.Field())
	case "gte":
		return fmt.Sprintf("Kolom %s minimal %s.", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("Kolom %s tidak valid.", fe.Field())
	}
}

func priceMessage(field string) string {
	return fmt.Sprintf("Kolom %s harus antara 0 dan %.2f dengan paling banyak dua angka desimal.", field, MaxPrice)
}
