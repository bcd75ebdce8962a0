package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/newsscope/newsscope/internal/client/api"
	"github.com/newsscope/newsscope/internal/client/models"
	"github.com/newsscope/newsscope/internal/logging"
)

// fakeClient implements the slice of api.Client the manager touches;
// anything else panics via the embedded nil interface.
type fakeClient struct {
	api.Client

	loginResp  *api.AuthResponse
	loginErr   error
	signupResp *api.AuthResponse
	signupErr  error
	logoutErr  error
	meResp     *api.AuthResponse
	meErr      error

	logoutCalls int
}

func (f *fakeClient) Login(ctx context.Context, email, password string) (*api.AuthResponse, error) {
	return f.loginResp, f.loginErr
}

func (f *fakeClient) Signup(ctx context.Context, name, email, password string) (*api.AuthResponse, error) {
	return f.signupResp, f.signupErr
}

func (f *fakeClient) Logout(ctx context.Context) error {
	f.logoutCalls++
	return f.logoutErr
}

func (f *fakeClient) CurrentUser(ctx context.Context) (*api.AuthResponse, error) {
	return f.meResp, f.meErr
}

func newManager(f *fakeClient) *Manager {
	return NewManager(f, logging.NewNopLogger())
}

func TestLogin_Success(t *testing.T) {
	f := &fakeClient{loginResp: &api.AuthResponse{
		Success: true,
		User:    &models.User{ID: 1, Email: "a@b.c", Credits: 12},
	}}
	m := newManager(f)

	require.NoError(t, m.Login(context.Background(), "a@b.c", "pw"))
	require.True(t, m.IsAuthenticated())
	require.Equal(t, 12, m.Credits())
	require.Equal(t, "a@b.c", m.Current().Email)
}

func TestLogin_BackendRejects_AuthErrorWithMessage(t *testing.T) {
	f := &fakeClient{loginResp: &api.AuthResponse{Success: false, Message: "wrong password"}}
	m := newManager(f)

	err := m.Login(context.Background(), "a@b.c", "pw")
	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	require.Equal(t, "wrong password", authErr.Message)
	require.False(t, m.IsAuthenticated())
}

func TestLogin_NoMessage_DefaultText(t *testing.T) {
	f := &fakeClient{loginResp: &api.AuthResponse{Success: false}}
	m := newManager(f)

	err := m.Login(context.Background(), "a@b.c", "pw")
	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	require.Equal(t, "login failed", authErr.Message)
}

func TestSignup_BonusWhenBackendOmitsCredits(t *testing.T) {
	f := &fakeClient{signupResp: &api.AuthResponse{
		Success: true,
		User:    &models.User{ID: 2, Email: "new@b.c"},
	}}
	m := newManager(f)

	require.NoError(t, m.Signup(context.Background(), "New", "new@b.c", "pw"))
	require.Equal(t, signupBonusCredits, m.Credits())
}

func TestSignup_BackendCreditsWin(t *testing.T) {
	f := &fakeClient{signupResp: &api.AuthResponse{
		Success: true,
		User:    &models.User{ID: 2, Email: "new@b.c", Credits: 20},
	}}
	m := newManager(f)

	require.NoError(t, m.Signup(context.Background(), "New", "new@b.c", "pw"))
	require.Equal(t, 20, m.Credits())
}

func TestLogout_ClearsStateEvenWhenRequestFails(t *testing.T) {
	f := &fakeClient{
		loginResp: &api.AuthResponse{Success: true, User: &models.User{ID: 1, Credits: 9}},
		logoutErr: errors.New("network down"),
	}
	m := newManager(f)
	require.NoError(t, m.Login(context.Background(), "a@b.c", "pw"))

	m.Logout(context.Background())

	require.Equal(t, 1, f.logoutCalls)
	require.Nil(t, m.Current())
	require.Equal(t, 0, m.Credits())
	require.False(t, m.IsAuthenticated())
}

func TestRefreshCredits_KeepsLastKnownGoodOnFailure(t *testing.T) {
	f := &fakeClient{
		loginResp: &api.AuthResponse{Success: true, User: &models.User{ID: 1, Credits: 7}},
		meErr:     errors.New("boom"),
	}
	m := newManager(f)
	require.NoError(t, m.Login(context.Background(), "a@b.c", "pw"))

	// Must not panic, must not error, must not reset the balance.
	m.RefreshCredits(context.Background())
	require.Equal(t, 7, m.Credits())
}

func TestRefreshCredits_UpdatesBalance(t *testing.T) {
	f := &fakeClient{
		loginResp: &api.AuthResponse{Success: true, User: &models.User{ID: 1, Credits: 7}},
		meResp:    &api.AuthResponse{Success: true, User: &models.User{ID: 1, Credits: 17}},
	}
	m := newManager(f)
	require.NoError(t, m.Login(context.Background(), "a@b.c", "pw"))

	m.RefreshCredits(context.Background())
	require.Equal(t, 17, m.Credits())
}

func TestBootstrap_NoSessionIsNotAnError(t *testing.T) {
	f := &fakeClient{meErr: errors.New("401")}
	m := newManager(f)

	m.Bootstrap(context.Background())
	require.False(t, m.IsAuthenticated())
	require.Equal(t, 0, m.Credits())
}

func TestBootstrap_RestoresSession(t *testing.T) {
	f := &fakeClient{meResp: &api.AuthResponse{Success: true, User: &models.User{ID: 3, Credits: 4}}}
	m := newManager(f)

	m.Bootstrap(context.Background())
	require.True(t, m.IsAuthenticated())
	require.Equal(t, 4, m.Credits())
}
