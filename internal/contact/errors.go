package contact

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrInFlight is returned by Submit while a previous attempt is still being
// delivered.  The call has no effect.
var ErrInFlight = errors.New("contact: submission already in flight")

// ValidationError carries the per-field messages of a rejected request.
type ValidationError struct{ Fields FieldErrors }

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		names = append(names, k)
	}
	sort.Strings(names)
	return "contact: invalid fields: " + strings.Join(names, ", ")
}

// DeliveryError reports that the sink did not acknowledge the message.
type DeliveryError struct{ Err error }

func (e *DeliveryError) Error() string { return fmt.Sprintf("contact: delivery failed: %v", e.Err) }
func (e *DeliveryError) Unwrap() error { return e.Err }

// IsValidationError reports whether err came from a rejected request.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
