package session

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/peopledesk/peopledesk/internal/adapter/outbound/store"
	"github.com/peopledesk/peopledesk/internal/domain/auth"
	"github.com/peopledesk/peopledesk/internal/metrics"
)

// Config holds Manager configuration.
type Config struct {
	// Timeout is the session duration. Default: 30 minutes.
	Timeout time.Duration

	// Notify receives the one-time expiry notice when the timer ends a
	// session. Optional; when nil the notice is only logged.
	Notify func(message string)

	// Metrics records login and expiry counters. Optional.
	Metrics *metrics.Metrics
}

// Manager owns the session lifecycle. It is the sole writer of the
// "currentUser" and "sessionExpiry" store keys.
//
// Restore, Login, Logout, and the expiry timer callback all serialize on
// one mutex, so a timer firing concurrently with an explicit logout cannot
// both run the clearing logic.
type Manager struct {
	store    store.Store
	timeout  time.Duration
	notify   func(string)
	metrics  *metrics.Metrics
	logger   *slog.Logger
	throttle *loginThrottle

	mu        sync.Mutex
	state     State
	user      *auth.Identity
	expiresAt time.Time
	timer     *time.Timer
	// timerGen invalidates pending timer callbacks: every transition out of
	// Authenticated bumps it, and a callback whose generation no longer
	// matches returns without side effects. Covers the window where the
	// callback has already fired but not yet taken the mutex, which
	// Timer.Stop alone cannot close.
	timerGen uint64
}

// NewManager creates a Manager in the Loading state. Call Restore once
// before any other operation.
func NewManager(st store.Store, cfg Config, logger *slog.Logger) *Manager {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	return &Manager{
		store:    st,
		timeout:  timeout,
		notify:   cfg.Notify,
		metrics:  cfg.Metrics,
		logger:   logger,
		throttle: newLoginThrottle(),
		state:    StateLoading,
	}
}

// Restore loads any persisted session, invoked once at process start.
//
// A stored identity with an unexpired deadline restores the session and
// re-arms the expiry timer for the remaining duration. An expired deadline
// clears the persisted identity without error. No stored session leaves the
// manager Unauthenticated. Every branch leaves the Loading state.
func (m *Manager) Restore() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var stored auth.Identity
	foundUser, err := m.store.Get(store.KeyCurrentUser, &stored)
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}
	var expiresAt time.Time
	foundExpiry, err := m.store.Get(store.KeySessionExpiry, &expiresAt)
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}

	switch {
	case foundUser && foundExpiry && time.Now().Before(expiresAt):
		m.user = &stored
		m.expiresAt = expiresAt
		m.state = StateAuthenticated
		m.armTimerLocked(time.Until(expiresAt))
		m.logger.Info("session restored", "email", stored.Email, "expires_at", expiresAt)
	case foundUser || foundExpiry:
		// Stored session has expired (or is half-present): clear it.
		if err := m.clearLocked(); err != nil {
			return fmt.Errorf("restore session: %w", err)
		}
		m.logger.Info("stored session expired, cleared")
	default:
		m.state = StateUnauthenticated
	}
	return nil
}

// Login authenticates the email/password pair against the persisted user
// records. The comparison is case-sensitive.
//
// On success the sanitized identity (password hash stripped) is persisted
// along with a fresh expiry deadline, the expiry timer is armed, and the
// identity is returned. On failure ErrInvalidCredentials is returned and
// the session state is unchanged; the error never reveals whether the email
// exists. Login while already authenticated re-authenticates: the new
// identity overwrites the old and the timer is re-armed.
func (m *Manager) Login(email, password string) (*auth.Identity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if retryAfter, ok := m.throttle.allow(email); !ok {
		m.logger.Warn("login throttled", "email", email, "retry_after", retryAfter)
		return nil, fmt.Errorf("%w (retry in %s)", ErrTooManyAttempts, retryAfter.Round(time.Second))
	}

	var users []auth.User
	if _, err := m.store.Get(store.KeyUsers, &users); err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}

	idx := -1
	for i := range users {
		if users[i].Email == email {
			idx = i
			break
		}
	}
	if idx < 0 {
		m.throttle.record(email)
		m.recordLogin(false)
		return nil, ErrInvalidCredentials
	}

	match, err := auth.VerifyPassword(password, users[idx].PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verify credentials: %w", err)
	}
	if !match {
		m.throttle.record(email)
		m.recordLogin(false)
		return nil, ErrInvalidCredentials
	}

	// Upgrade legacy plaintext records to Argon2id on first successful login.
	if !auth.IsHashed(users[idx].PasswordHash) {
		if hash, hashErr := auth.HashPassword(password); hashErr == nil {
			users[idx].PasswordHash = hash
			if setErr := m.store.Set(store.KeyUsers, users); setErr != nil {
				m.logger.Warn("failed to persist upgraded password hash", "error", setErr)
			} else {
				m.logger.Info("upgraded legacy password hash", "email", email)
			}
		} else {
			m.logger.Warn("failed to upgrade legacy password hash", "error", hashErr)
		}
	}

	identity := users[idx].Identity()
	expiresAt := time.Now().Add(m.timeout)

	if err := m.store.Set(store.KeyCurrentUser, identity); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}
	if err := m.store.Set(store.KeySessionExpiry, expiresAt); err != nil {
		return nil, fmt.Errorf("persist session expiry: %w", err)
	}

	m.user = identity
	m.expiresAt = expiresAt
	m.state = StateAuthenticated
	m.armTimerLocked(m.timeout)
	m.throttle.reset(email)
	m.recordLogin(true)
	m.logger.Info("login", "email", identity.Email, "role", identity.Role)

	snapshot := *identity
	return &snapshot, nil
}

// Logout clears the persisted identity and expiry, cancels any armed timer,
// and transitions to Unauthenticated. Idempotent: safe to call when already
// logged out, and safe to call concurrently with the timer firing.
func (m *Manager) Logout() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.clearLocked()
}

// CurrentUser returns the sanitized identity of the authenticated user, or
// nil. A session whose deadline has passed is invalidated lazily here, even
// before the timer callback runs.
func (m *Manager) CurrentUser() *auth.Identity {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.validLocked() {
		return nil
	}
	snapshot := *m.user
	return &snapshot
}

// IsAuthenticated reports whether a valid, unexpired session exists.
func (m *Manager) IsAuthenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.validLocked()
}

// IsLoading reports whether the initial Restore has not completed yet.
func (m *Manager) IsLoading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state == StateLoading
}

// State returns the current lifecycle state, applying lazy invalidation.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.validLocked()
	return m.state
}

// HasRole reports whether the current session holds exactly the role.
func (m *Manager) HasRole(role auth.Role) bool {
	return auth.HasRole(m.CurrentUser(), role)
}

// HasAnyRole reports whether the current session holds any of the roles.
func (m *Manager) HasAnyRole(roles ...auth.Role) bool {
	return auth.HasAnyRole(m.CurrentUser(), roles...)
}

// HasPermission reports whether the current session may exercise the
// capability. Admin bypasses all permission checks.
func (m *Manager) HasPermission(permission string) bool {
	return auth.HasPermission(m.CurrentUser(), permission)
}

// validLocked applies lazy expiry invalidation and reports whether an
// authenticated session remains. Caller must hold m.mu.
func (m *Manager) validLocked() bool {
	if m.state != StateAuthenticated {
		return false
	}
	if time.Now().Before(m.expiresAt) {
		return true
	}
	if err := m.clearLocked(); err != nil {
		m.logger.Warn("failed to clear expired session", "error", err)
	}
	return false
}

// clearLocked performs the logout side effects. Caller must hold m.mu.
func (m *Manager) clearLocked() error {
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	m.timerGen++

	if err := m.store.Remove(store.KeyCurrentUser); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	if err := m.store.Remove(store.KeySessionExpiry); err != nil {
		return fmt.Errorf("clear session expiry: %w", err)
	}

	if m.state == StateAuthenticated {
		m.logger.Info("logout", "email", m.user.Email)
	}
	m.user = nil
	m.expiresAt = time.Time{}
	m.state = StateUnauthenticated
	return nil
}

// armTimerLocked replaces any pending timer with a fresh single-shot timer.
// Caller must hold m.mu.
func (m *Manager) armTimerLocked(d time.Duration) {
	if m.timer != nil {
		m.timer.Stop()
	}
	m.timerGen++
	gen := m.timerGen
	m.timer = time.AfterFunc(d, func() { m.expire(gen) })
}

// expire is the timer callback. It runs the logout side effects and emits
// the one-time expiry notice, unless the session already transitioned
// (explicit logout or re-login) since the timer was armed.
func (m *Manager) expire(gen uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if gen != m.timerGen || m.state != StateAuthenticated {
		return
	}
	email := m.user.Email
	if err := m.clearLocked(); err != nil {
		m.logger.Warn("failed to clear session on expiry", "error", err)
	}
	if m.metrics != nil {
		m.metrics.SessionExpiriesTotal.Inc()
	}
	m.logger.Info("session expired", "email", email)
	if m.notify != nil {
		m.notify(ExpiryNotice)
	}
}

// recordLogin increments the login counter. Caller must hold m.mu.
func (m *Manager) recordLogin(success bool) {
	if m.metrics == nil {
		return
	}
	result := "failure"
	if success {
		result = "success"
	}
	m.metrics.LoginsTotal.WithLabelValues(result).Inc()
}
