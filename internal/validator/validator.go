package validator

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError maps json field paths to messages.
type ValidationError struct {
	Errors map[string]string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Summary()
}

// Summary lists every field message in field order.
func (e *ValidationError) Summary() string {
	fields := make([]string, 0, len(e.Errors))
	for field := range e.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	msgs := make([]string, 0, len(fields))
	for _, field := range fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, e.Errors[field]))
	}
	return strings.Join(msgs, "; ")
}

// Validator wraps go-playground/validator with json field names and the
// preference rules registered.
type Validator struct {
	validate *validator.Validate
}

func New() (*Validator, error) {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := registerRules(v); err != nil {
		return nil, err
	}

	return &Validator{validate: v}, nil
}

func (v *Validator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	out := make(map[string]string, len(validationErrors))
	for _, fe := range validationErrors {
		out[fieldPath(fe)] = message(fe)
	}

	return &ValidationError{Errors: out}
}

// fieldPath drops the root struct name: "ProfilePayload.skills[0].skill_name" -> "skills[0].skill_name".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		ns = ns[i+1:]
	}
	// embedded structs show up under their type name
	for _, embedded := range []string{"FormState.", "ProfileFields."} {
		ns = strings.ReplaceAll(ns, embedded, "")
	}
	return ns
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if fe.Kind() == reflect.String || fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must have at least %s items/characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String || fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must have at most %s items/characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "tags":
		return fmt.Sprintf("must be a list of at most %s unique, non-empty tags", fe.Param())
	case "unique_skills":
		return "contains the same skill twice"
	case "salary_range":
		return "minimum salary is above the maximum"
	default:
		return fmt.Sprintf("is invalid (%s)", fe.Tag())
	}
}
