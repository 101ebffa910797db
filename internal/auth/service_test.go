package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/nobih83-prog/Inventory-menegement/internal/store"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	st, err := store.Open(store.InMemoryOptions())
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return NewService(st, NewTokenIssuer("test-secret"), zaptest.NewLogger(t))
}

func TestSignupAndLogin(t *testing.T) {
	svc := newTestService(t)

	user, err := svc.Signup("adil@nashwa.com", "hunter22", "Nashwa Cafe & Bistro", "")
	require.NoError(t, err)
	assert.Equal(t, RoleOwner, user.Role, "signups default to OWNER")
	assert.Equal(t, "adil@nashwa.com", user.Email)

	got, token, err := svc.Login("Adil@Nashwa.com", "hunter22", "192.168.1.45")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.NotEmpty(t, token)

	logs, err := svc.LoginLogs()
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, user.ID, logs[0].UserID)
	assert.Equal(t, "192.168.1.45", logs[0].IPAddress)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Signup("adil@nashwa.com", "hunter22", "Nashwa", RoleOwner)
	require.NoError(t, err)

	_, _, err = svc.Login("adil@nashwa.com", "wrong", "127.0.0.1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login("nobody@nashwa.com", "hunter22", "127.0.0.1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSignupDuplicateEmail(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Signup("adil@nashwa.com", "a", "Nashwa", RoleOwner)
	require.NoError(t, err)

	_, err = svc.Signup("ADIL@nashwa.com", "b", "Other", RoleStaff)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestSignupInvalidRole(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Signup("x@y.com", "pw", "Biz", Role("ADMIN"))
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret")
	user := &User{ID: "u-1", Role: RoleManager}

	token, err := issuer.Issue(user)
	require.NoError(t, err)

	claims, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.Subject)
	assert.Equal(t, RoleManager, claims.Role)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token, err := NewTokenIssuer("secret-a").Issue(&User{ID: "u-1", Role: RoleStaff})
	require.NoError(t, err)

	_, err = NewTokenIssuer("secret-b").Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
