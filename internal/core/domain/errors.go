package domain

import "errors"

var (
	// ErrNotAuthenticated is returned when an operation needs a live session.
	ErrNotAuthenticated = errors.New("not authenticated")

	ErrCredentialUnreadable = errors.New("credential payload cannot be decoded")
	ErrCredentialExpired    = errors.New("credential expired")

	// ErrWaitlistNotOffered is returned by a waitlist join outside the
	// conflicted state of a booking attempt.
	ErrWaitlistNotOffered = errors.New("waitlist is only offered after a booking conflict")
	ErrBookingInFlight    = errors.New("booking request already in flight")
	ErrBookingSettled     = errors.New("booking attempt already settled")
)

// StatusError is implemented by backend errors that carry an HTTP status and
// the server's message.
type StatusError interface {
	error
	HTTPStatus() int
	ServerMessage() string
}

// StatusOf unwraps err to a StatusError. ok is false for transport and
// validation failures.
func StatusOf(err error) (status int, message string, ok bool) {
	var se StatusError
	if !errors.As(err, &se) {
		return 0, "", false
	}
	return se.HTTPStatus(), se.ServerMessage(), true
}
