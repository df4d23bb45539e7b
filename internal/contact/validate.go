// internal/contact/validate.go
//
// Linkpage – Contact subsystem: request model and validator.
//
// Context
//   A contact attempt carries three text fields.  Validate checks each one
//   against a fixed rule set and reports every failing field at once, so the
//   form can highlight all problems in a single round trip.  Rules live in
//   struct tags and are enforced by go-playground/validator; the user-facing
//   message is chosen per field, not per tag.
//
// Notes
//   •  Values are validated exactly as submitted.  An accepted Request is the
//      caller's Request, byte for byte.
//   •  Lengths are counted in Unicode code points (validator's min on strings).
//   •  Two spaces after periods, Oxford commas.
//
//------------------------------------------------------------------------------

package contact

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// -----------------------------------------------------------------------------
// Data structures
// -----------------------------------------------------------------------------

// Request is the three-field contact payload.
type Request struct {
	Name    string `json:"name"    validate:"min=2"`
	Email   string `json:"email"   validate:"email,dotted_domain"`
	Message string `json:"message" validate:"min=10"`
}

// FieldErrors maps a field name (“name”, “email”, “message”) to its message.
type FieldErrors map[string]string

// Result is the outcome of Validate.  It is Accepted when Errors is empty;
// otherwise Errors holds exactly the fields that failed.
type Result struct {
	Request Request
	Errors  FieldErrors
}

// Accepted reports whether every field passed.
func (r Result) Accepted() bool { return len(r.Errors) == 0 }

// Err returns a *ValidationError for a rejected result and nil otherwise.
func (r Result) Err() error {
	if r.Accepted() {
		return nil
	}
	return &ValidationError{Fields: r.Errors}
}

// Field error messages.
const (
	MsgName    = "Name must be at least 2 characters"
	MsgEmail   = "Invalid email address"
	MsgMessage = "Message must be at least 10 characters"
)

var fieldMessages = map[string]string{
	"name":    MsgName,
	"email":   MsgEmail,
	"message": MsgMessage,
}

// -----------------------------------------------------------------------------
// Validator instance (package-level singleton)
// -----------------------------------------------------------------------------

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names so error maps match form input names.
	val.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	if err := val.RegisterValidation("dotted_domain", dottedDomain); err != nil {
		panic("contact: register dotted_domain: " + err.Error())
	}
	return val
}

// dottedDomain requires a non-empty local part, an “@”, and a domain that
// contains at least one interior dot.
func dottedDomain(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	at := strings.LastIndexByte(s, '@')
	if at < 1 {
		return false
	}
	domain := s[at+1:]
	if strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return false
	}
	return strings.Contains(domain, ".")
}

// -----------------------------------------------------------------------------
// Public API
// -----------------------------------------------------------------------------

// Validate checks req against the fixed rule set.  It has no side effects and
// returns identical results for identical input.
func Validate(req Request) Result {
	err := v.Struct(req)
	if err == nil {
		return Result{Request: req}
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// InvalidValidationError only happens on programmer error (non-struct).
		panic("contact: validate: " + err.Error())
	}

	fe := make(FieldErrors, len(verrs))
	for _, e := range verrs {
		field := e.Field()
		if msg, ok := fieldMessages[field]; ok {
			fe[field] = msg
		}
	}
	return Result{Request: req, Errors: fe}
}
