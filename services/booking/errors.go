package booking

import "fmt"

// Error codes carried by FlowError.
const (
	CodeValidation = "validation"
	CodeUpstream   = "upstream"
)

// FlowError is a typed failure from the booking flow. Validation failures are
// the caller's fault (400); upstream failures mean the CRM or the payment
// processor misbehaved (5xx, message passed through, never invented).
type FlowError struct {
	Code    string
	Message string
}

func (e *FlowError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewValidationError reports malformed or missing input.
func NewValidationError(msg string) error {
	return &FlowError{Code: CodeValidation, Message: msg}
}

// NewUpstreamError reports a failed dependency, preserving its message.
func NewUpstreamError(msg string) error {
	return &FlowError{Code: CodeUpstream, Message: msg}
}

// IsValidation reports whether err is a validation FlowError.
func IsValidation(err error) bool {
	fe, ok := err.(*FlowError)
	return ok && fe.Code == CodeValidation
}
