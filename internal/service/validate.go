package service

import (
	"errors"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("positive_amount", func(fl validator.FieldLevel) bool {
		_, err := ParseAmount(fl.Field().String())
		return err == nil
	})
	return v
}

// ParseAmount parses a campaign target. It must be a finite number greater
// than zero.
func ParseAmount(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, errors.New("target amount must be a number")
	}
	if math.IsInf(v, 0) || math.IsNaN(v) || v <= 0 {
		return 0, errors.New("target amount must be a positive number")
	}
	return v, nil
}

// messages overrides the generic text for specific fields.
var messages = map[string]string{
	"title.min":                "Title must be at least 5 characters",
	"cause.min":                "Cause must be at least 5 characters",
	"description.min":          "Description must be at least %s characters",
	"target_amount":            "Please enter a valid amount",
	"image_url.url":            "Please enter a valid URL",
	"logo_url.url":             "Please enter a valid URL",
	"type":                     "Please select a donation type",
	"location.min":             "Please provide a location",
	"name.required":            "NGO name is required",
	"registration_id.required": "NGO ID is required",
	"password.min":             "Password must be at least 8 characters",
	"email.email":              "Please enter a valid email",
	"coordinates":              "Location coordinates need both latitude and longitude",
}

func validateInput(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return err
	}
	fields := make(map[string]string, len(ves))
	for _, fe := range ves {
		name := topField(fe)
		if _, seen := fields[name]; seen {
			continue
		}
		fields[name] = fieldMessage(name, fe)
	}
	return &ValidationError{Fields: fields}
}

// topField reports errors on nested structs under their top-level form field.
func topField(fe validator.FieldError) string {
	parts := strings.Split(fe.Namespace(), ".")
	if len(parts) > 2 {
		return parts[1]
	}
	return fe.Field()
}

func fieldMessage(name string, fe validator.FieldError) string {
	if msg, ok := messages[name+"."+fe.Tag()]; ok {
		return withParam(msg, fe.Param())
	}
	if msg, ok := messages[name]; ok {
		return msg
	}
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "email":
		return "must be a valid email"
	case "url":
		return "must be a valid URL"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	default:
		return "is invalid"
	}
}

func withParam(msg, param string) string {
	if strings.Contains(msg, "%s") {
		return strings.Replace(msg, "%s", param, 1)
	}
	return msg
}
