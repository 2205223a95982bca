package generators

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrConfiguration marks invalid or contradictory options. It is always
	// raised before the tree is touched.
	ErrConfiguration = errors.New("configuration error")

	// ErrExternalTool marks a missing or failing external program.
	ErrExternalTool = errors.New("external tool error")
)

// Error carries a human readable message and the kind it belongs to.
type Error struct {
	Kind error
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

// Configuration returns an ErrConfiguration with a formatted message.
func Configuration(format string, args ...any) error {
	return &Error{Kind: ErrConfiguration, Msg: fmt.Sprintf(format, args...)}
}

// ExternalTool returns an ErrExternalTool with a formatted message wrapping
// the underlying failure, if any.
func ExternalTool(err error, format string, args ...any) error {
	return &Error{Kind: ErrExternalTool, Msg: fmt.Sprintf(format, args...), Err: err}
}

// FromValidation converts validator errors on raw options into a
// configuration error naming every offending option.
func FromValidation(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &Error{Kind: ErrConfiguration, Msg: "invalid options", Err: err}
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return Configuration("invalid options: %s", strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", fe.Field(), fe.Param(), fe.Value())
	default:
		return fmt.Sprintf("%s failed %s validation (got %q)", fe.Field(), fe.Tag(), fe.Value())
	}
}
