package utils

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/nyaruka/phonenumbers"
)

var (
	alphaSpaceRegex = regexp.MustCompile(`^[A-Za-z\s]+$`)

	registerOnce sync.Once
)

// RegisterValidators teaches gin's validator the custom rules used by the
// request structs and makes errors report json field names.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}

		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})

		_ = v.RegisterValidation("alphaspace", func(fl validator.FieldLevel) bool {
			return alphaSpaceRegex.MatchString(fl.Field().String())
		})
		_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
			return IsPhone(fl.Field().String())
		})
	})
}

// NormalizePhone parses an international number ("+" and country code
// required) and returns it in E.164 form. Only numbers that can be mobile
// are accepted.
func NormalizePhone(raw string) (string, bool) {
	num, err := phonenumbers.Parse(raw, "ZZ")
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return "", false
	}
	switch phonenumbers.GetNumberType(num) {
	case phonenumbers.MOBILE, phonenumbers.FIXED_LINE_OR_MOBILE:
		return phonenumbers.Format(num, phonenumbers.E164), true
	}
	return "", false
}

func IsPhone(s string) bool {
	_, ok := NormalizePhone(s)
	return ok
}

// FieldErrors converts a binding error into field -> messages. ok is false
// when err is not a validation failure (for example malformed JSON).
func FieldErrors(err error) (map[string][]string, bool) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, false
	}

	fields := make(map[string][]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = append(fields[fe.Field()], fieldMessage(fe))
	}
	return fields, true
}

func fieldMessage(fe validator.FieldError) string {
	attr := strings.ReplaceAll(fe.Field(), "_", " ")
	isText := fe.Kind() == reflect.String

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", attr)
	case "email":
		return fmt.Sprintf("The %s must be a valid email address.", attr)
	case "min":
		if isText {
			return fmt.Sprintf("The %s must be at least %s characters.", attr, fe.Param())
		}
		return fmt.Sprintf("The %s must be at least %s.", attr, fe.Param())
	case "max":
		if isText {
			return fmt.Sprintf("The %s may not be greater than %s characters.", attr, fe.Param())
		}
		return fmt.Sprintf("The %s may not be greater than %s.", attr, fe.Param())
	case "len":
		return fmt.Sprintf("The %s must be %s characters.", attr, fe.Param())
	case "numeric":
		return fmt.Sprintf("The %s must be a number.", attr)
	case "oneof":
		return fmt.Sprintf("The selected %s is invalid. Allowed: %s.", attr, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "eqfield":
		return "The password confirmation does not match."
	case "alphaspace":
		return fmt.Sprintf("The %s may only contain letters and spaces.", attr)
	case "phone":
		return fmt.Sprintf("The %s must be a valid phone number.", attr)
	default:
		return fmt.Sprintf("The %s is invalid.", attr)
	}
}
