// internal/apperr/apperr.go
package apperr

// Every operation boundary maps its failures onto one of these kinds;
// handlers translate them to 403/400/404/500. Nothing else reaches the
// transport layer.

type Kind int

const (
	KindUnexpected Kind = iota
	KindAuthorization
	KindValidation
	KindNotFound
)

type Error struct {
	Kind    Kind
	Message string // user-visible; generic for KindUnexpected
	Err     error  // server-side detail, logged only
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Authorization(message string) *Error {
	return &Error{Kind: KindAuthorization, Message: message}
}

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Unexpected wraps a collaborator failure. The message is what the caller
// sees; err carries the detail and never leaves the server logs.
func Unexpected(message string, err error) *Error {
	return &Error{Kind: KindUnexpected, Message: message, Err: err}
}
