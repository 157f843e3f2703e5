package errors

import "fmt"

var (
	ErrNotFound   = fmt.Errorf("record not found")
	ErrConflict   = fmt.Errorf("record already exists")
	ErrBadRequest = fmt.Errorf("bad request")

	ErrApplicationNotFound = fmt.Errorf("application not found")
	ErrIncidentNotFound    = fmt.Errorf("incident not found")
	ErrClosureCodeNotFound = fmt.Errorf("closure code not found")
	ErrClosureCodeInUse    = fmt.Errorf("closure code is referenced by incidents")
	ErrApplicationInUse    = fmt.Errorf("application is referenced by incidents or closure codes")
	ErrNoClosureCodes      = fmt.Errorf("no closure codes registered for the application")
)

// HttpError carries the HTTP status and a user-facing message alongside the
// wrapped internal error and optional logging context.
type HttpError struct {
	Code    int
	Message string
	Err     error
	Context map[string]interface{}
	Details interface{}
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, message string, err error, context map[string]interface{}) *HttpError {
	return &HttpError{Code: code, Message: message, Err: err, Context: context}
}
