package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// validate is a singleton validator instance
	validate *validator.Validate

	isoCodePattern  = regexp.MustCompile(`^[0-9]+$`)
	identPattern    = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_.-]*$`)
	s3OrPathPattern = regexp.MustCompile(`^s3://[^/]+/.+[^/]$`)
)

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// report yaml names rather than Go field names
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})

	mustRegister("isocode", func(fl validator.FieldLevel) bool {
		return isoCodePattern.MatchString(fl.Field().String())
	})
	mustRegister("dbident", func(fl validator.FieldLevel) bool {
		return identPattern.MatchString(fl.Field().String())
	})
	mustRegister("artifact", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if strings.HasPrefix(s, "s3://") {
			return s3OrPathPattern.MatchString(s)
		}
		return s != "" && !strings.HasSuffix(s, "/")
	})
}

func mustRegister(tag string, fn validator.Func) {
	if err := validate.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s validation: %v", tag, err))
	}
}

// ValidateStruct checks a struct against its validate tags and returns every
// violation joined into one error.
func ValidateStruct(v any) error {
	if v == nil {
		return errors.New("value cannot be nil")
	}
	if err := validate.Struct(v); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// formatValidationError converts validator errors to a more user-friendly format
func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	errs := make([]error, 0, len(validationErrs))
	for _, e := range validationErrs {
		field := strings.TrimPrefix(e.Namespace(), rootName(e))
		param := e.Param()

		switch e.Tag() {
		case "required":
			errs = append(errs, fmt.Errorf("%s: field is required", field))
		case "min":
			errs = append(errs, fmt.Errorf("%s: must be at least %s", field, param))
		case "max":
			errs = append(errs, fmt.Errorf("%s: must not exceed %s", field, param))
		case "gt":
			errs = append(errs, fmt.Errorf("%s: must be greater than %s", field, param))
		case "oneof":
			errs = append(errs, fmt.Errorf("%s: must be one of [%s]", field, param))
		case "isocode":
			errs = append(errs, fmt.Errorf("%s: %q is not a numeric iso code", field, e.Value()))
		case "dbident":
			errs = append(errs, fmt.Errorf("%s: %q is not a valid identifier", field, e.Value()))
		case "artifact":
			errs = append(errs, fmt.Errorf("%s: %q is not a file path or s3://bucket/key", field, e.Value()))
		case "startsnotwith":
			errs = append(errs, fmt.Errorf("%s: must not start with %s", field, param))
		case "url":
			errs = append(errs, fmt.Errorf("%s: %q is not a valid url", field, e.Value()))
		default:
			errs = append(errs, fmt.Errorf("%s: validation failed (%s)", field, e.Tag()))
		}
	}
	return errors.Join(errs...)
}

// rootName is the struct name prefix of a namespace, "Config." for
// "Config.output.graphml".
func rootName(e validator.FieldError) string {
	ns := e.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[:i+1]
	}
	return ""
}
