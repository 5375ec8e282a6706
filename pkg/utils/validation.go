package utils

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// FieldErrors es campo json -> mensaje; se responde tal cual como "message".
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + e[k]
	}
	return strings.Join(parts, "; ")
}

// Validator devuelve la instancia compartida; los errores usan el nombre json del campo.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			return jsonName(fld)
		})
	})
	return validate
}

// Validate valida el struct completo y devuelve FieldErrors si algo falla.
func Validate(v interface{}) error {
	return toFieldErrors(v, Validator().Struct(v))
}

// ValidatePresent valida sólo los campos puntero que llegaron (no nil),
// para actualizaciones parciales.
func ValidatePresent(v interface{}) error {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	t := rv.Type()

	var names []string
	for i := 0; i < t.NumField(); i++ {
		if f := rv.Field(i); f.Kind() == reflect.Pointer && !f.IsNil() {
			names = append(names, t.Field(i).Name)
		}
	}
	if len(names) == 0 {
		return nil
	}
	return toFieldErrors(v, Validator().StructPartial(v, names...))
}

func toFieldErrors(v interface{}, err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	t := structType(v)
	out := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		if _, seen := out[fe.Field()]; seen {
			continue
		}
		label := humanize(fe.Field())
		if f, ok := t.FieldByName(fe.StructField()); ok && f.Tag.Get("label") != "" {
			label = f.Tag.Get("label")
		}
		out[fe.Field()] = message(label, fe)
	}
	return out
}

func message(label string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "email":
		return label + " format is not valid"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", label, fe.Param())
	case "min":
		// min=1 sobre texto equivale a "obligatorio y no vacío"
		if fe.Param() == "1" && fe.Kind() == reflect.String {
			return label + " is required"
		}
		return fmt.Sprintf("%s must be at least %s characters", label, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", label, fe.Param())
	default:
		return label + " is not valid"
	}
}

func structType(v interface{}) reflect.Type {
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

func jsonName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return fld.Name
	}
	return name
}

func humanize(field string) string {
	s := strings.ReplaceAll(field, "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
