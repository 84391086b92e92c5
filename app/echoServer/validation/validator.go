package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// NewValidate returns a validator with the delivery-form aliases registered
// and field names reported by their json tag.
func NewValidate() *validator.Validate {
	v := validator.New()
	v.RegisterAlias("mobile", "len=10,number")
	v.RegisterAlias("pincode", "len=6,number")
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	return &Validator{v: NewValidate()}
}

// Wrap shares an existing validate instance with echo.
func Wrap(v *validator.Validate) *Validator {
	return &Validator{v: v}
}

func (v *Validator) Validate(i interface{}) error {
	return v.v.Struct(i)
}

type FieldError struct {
	Field string `json:"field"`
	Tag   string `json:"tag"`
}

// Fields lists the failing fields of a validation error, in struct order.
func Fields(err error) []FieldError {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return nil
	}
	out := make([]FieldError, 0, len(ve))
	for _, fe := range ve {
		out = append(out, FieldError{Field: fe.Field(), Tag: fe.Tag()})
	}
	return out
}
