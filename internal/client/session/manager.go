// Package session owns the authenticated identity and the credit balance.
// It is the only writer of that state; other components read it through the
// accessors and ask for a refresh instead of mutating it themselves.
package session

import (
	"context"
	"sync"

	"github.com/newsscope/newsscope/internal/client/api"
	"github.com/newsscope/newsscope/internal/client/models"
	"github.com/newsscope/newsscope/internal/logging"
)

// signupBonusCredits is granted on a fresh account when the backend response
// omits an explicit balance.
const signupBonusCredits = 5

// AuthError is a login/signup failure with the backend-supplied message.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

func authError(msg, fallback string) *AuthError {
	if msg == "" {
		msg = fallback
	}
	return &AuthError{Message: msg}
}

// Manager holds the current session behind a mutex. All methods are safe for
// concurrent use.
type Manager struct {
	client api.Client
	log    logging.Logger

	mu      sync.Mutex
	user    *models.User
	credits int
}

func NewManager(client api.Client, log logging.Logger) *Manager {
	return &Manager{client: client, log: log}
}

// Current returns the authenticated user, or nil when logged out.
func (m *Manager) Current() *models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user
}

func (m *Manager) IsAuthenticated() bool {
	return m.Current() != nil
}

// Credits is the last known good balance. It is refreshed after any operation
// that consumes or adds credits.
func (m *Manager) Credits() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.credits
}

// Login authenticates and replaces the stored identity wholesale.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	resp, err := m.client.Login(ctx, email, password)
	if err != nil {
		return err
	}
	if !resp.Success || resp.User == nil {
		return authError(resp.Message, "login failed")
	}
	m.replace(resp.User, resp.User.Credits)
	return nil
}

// Signup creates an account and logs the new identity in. A fresh account
// gets the signup bonus when the backend omits the balance.
func (m *Manager) Signup(ctx context.Context, name, email, password string) error {
	resp, err := m.client.Signup(ctx, name, email, password)
	if err != nil {
		return err
	}
	if !resp.Success || resp.User == nil {
		return authError(resp.Message, "signup failed")
	}
	credits := resp.User.Credits
	if credits == 0 {
		credits = signupBonusCredits
	}
	m.replace(resp.User, credits)
	return nil
}

// Logout tells the backend to invalidate the session and then clears local
// state unconditionally. The network outcome never blocks the local clear.
func (m *Manager) Logout(ctx context.Context) {
	if err := m.client.Logout(ctx); err != nil {
		m.log.Warn(ctx, "logout request failed", "error", err)
	}
	m.replace(nil, 0)
}

// RefreshCredits re-fetches the identity. Best effort: on any failure the
// previous state is left untouched and no error reaches the caller.
func (m *Manager) RefreshCredits(ctx context.Context) {
	resp, err := m.client.CurrentUser(ctx)
	if err != nil {
		m.log.Warn(ctx, "credit refresh failed, keeping last known balance", "error", err)
		return
	}
	if !resp.Success || resp.User == nil {
		return
	}
	m.replace(resp.User, resp.User.Credits)
}

// Bootstrap performs the initial session probe. An absent session is not an
// error; it just resolves to "no identity".
func (m *Manager) Bootstrap(ctx context.Context) {
	resp, err := m.client.CurrentUser(ctx)
	if err != nil || !resp.Success || resp.User == nil {
		return
	}
	m.replace(resp.User, resp.User.Credits)
}

func (m *Manager) replace(u *models.User, credits int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.user = u
	m.credits = credits
}
