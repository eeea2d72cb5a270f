package session

import (
	"sync"
	"time"
)

// Login throttling parameters: failed attempts per email in a fixed window.
const (
	maxLoginAttempts = 5
	loginWindow      = time.Minute
)

// loginThrottle counts failed login attempts per email over a fixed window.
// A successful login resets the counter. In-memory only: the throttle
// protects against scripted guessing within one process, not across
// restarts.
type loginThrottle struct {
	mu       sync.Mutex
	attempts map[string]*attemptWindow
	// now is stubbed in tests.
	now func() time.Time
}

type attemptWindow struct {
	count   int
	started time.Time
}

func newLoginThrottle() *loginThrottle {
	return &loginThrottle{
		attempts: make(map[string]*attemptWindow),
		now:      time.Now,
	}
}

// allow reports whether another attempt for the email is permitted. When
// blocked, retryAfter is the time until the window expires.
func (t *loginThrottle) allow(email string) (retryAfter time.Duration, ok bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	w, found := t.attempts[email]
	if !found {
		return 0, true
	}
	if t.now().Sub(w.started) >= loginWindow {
		delete(t.attempts, email)
		return 0, true
	}
	if w.count < maxLoginAttempts {
		return 0, true
	}
	return loginWindow - t.now().Sub(w.started), false
}

// record counts one failed attempt for the email.
func (t *loginThrottle) record(email string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	w, found := t.attempts[email]
	if !found || t.now().Sub(w.started) >= loginWindow {
		t.attempts[email] = &attemptWindow{count: 1, started: t.now()}
		return
	}
	w.count++
}

// reset clears the counter for the email, called on successful login.
func (t *loginThrottle) reset(email string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.attempts, email)
}
