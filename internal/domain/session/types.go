// Package session owns the authentication session lifecycle: restore on
// startup, login, logout, and the cancellable expiry timer. The Manager is
// the sole writer of session state; everything else reads through it.
package session

import (
	"errors"
	"time"
)

// DefaultTimeout is the default session duration.
const DefaultTimeout = 30 * time.Minute

// State is the session lifecycle state.
type State int

const (
	// StateLoading holds only until the initial Restore completes.
	StateLoading State = iota
	// StateUnauthenticated means no current identity.
	StateUnauthenticated
	// StateAuthenticated means a current identity with an unexpired deadline.
	StateAuthenticated
)

// String returns the state name for logging.
func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// ErrInvalidCredentials is returned for every failed login. It deliberately
// does not distinguish an unknown email from a wrong password.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrTooManyAttempts is returned when an email exceeds the failed-login
// budget within the throttle window.
var ErrTooManyAttempts = errors.New("too many login attempts, try again later")

// ExpiryNotice is the user-visible message emitted when the expiry timer
// ends a session.
const ExpiryNotice = "Your session has expired. Please login again."
