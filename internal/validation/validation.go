// Package validation holds the client-side form rules. A form that fails
// validation must never reach the network.
package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	emailRegex      = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	personNameRegex = regexp.MustCompile(`^[A-Za-z\s-]+$`)
	phoneRegex      = regexp.MustCompile(`^\d{10}$`)
	otpRegex        = regexp.MustCompile(`^\d{6}$`)
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	registerValidators(v)
	return v
}

func registerValidators(v *validator.Validate) {
	_ = v.RegisterValidation("emailaddr", matches(emailRegex))
	_ = v.RegisterValidation("personname", matches(personNameRegex))
	_ = v.RegisterValidation("phone10", matches(phoneRegex))
	_ = v.RegisterValidation("otp6", matches(otpRegex))
}

func matches(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}

type FieldError struct {
	Field   string
	Message string
}

// Errors lists failing fields in declaration order.
type Errors []FieldError

func (e Errors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, fe := range e {
		msgs = append(msgs, fe.Message)
	}
	return strings.Join(msgs, "; ")
}

// For returns the message for field, or "".
func (e Errors) For(field string) string {
	for _, fe := range e {
		if fe.Field == field {
			return fe.Message
		}
	}
	return ""
}

func (e Errors) First() string {
	if len(e) == 0 {
		return ""
	}
	return e[0].Message
}

// Form is implemented by every validated form; Messages maps "Field.tag" to the
// text shown inline next to the field.
type Form interface {
	Messages() map[string]string
}

// Validate returns nil or an Errors value.
func Validate(form Form) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	messages := form.Messages()
	out := make(Errors, 0, len(verrs))
	for _, fe := range verrs {
		msg, ok := messages[fe.StructField()+"."+fe.Tag()]
		if !ok {
			msg = fe.Error()
		}
		out = append(out, FieldError{Field: fe.Field(), Message: msg})
	}
	return out
}

// AsErrors unwraps err into Errors when it is one.
func AsErrors(err error) (Errors, bool) {
	var errs Errors
	if errors.As(err, &errs) {
		return errs, true
	}
	return nil, false
}
