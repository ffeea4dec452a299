package user

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/orris-inc/helpdesk/internal/domain/user/valueobjects"
)

// mockPasswordHasher is a simple password hasher for testing.
type mockPasswordHasher struct {
	hashPrefix string
}

func (h *mockPasswordHasher) Hash(password string) (string, error) {
	return h.hashPrefix + ":" + password, nil
}

func (h *mockPasswordHasher) Verify(password, hash string) error {
	if h.hashPrefix+":"+password != hash {
		return fmt.Errorf("password mismatch")
	}
	return nil
}

type failingPasswordHasher struct{}

func (h *failingPasswordHasher) Hash(_ string) (string, error) {
	return "", fmt.Errorf("hash failure")
}

func (h *failingPasswordHasher) Verify(_, _ string) error {
	return fmt.Errorf("verify failure")
}

func TestNewUser(t *testing.T) {
	u, err := NewUser(" Ana Torres ", "ANA@helpdesk.test")
	require.NoError(t, err)

	assert.Equal(t, "Ana Torres", u.Name())
	assert.Equal(t, "ana@helpdesk.test", u.Email().String())
	assert.False(t, u.HasPassword())

	_, err = NewUser("", "ana@helpdesk.test")
	assert.Error(t, err)
	_, err = NewUser("Ana", "not-an-email")
	assert.Error(t, err)
}

func TestUser_PasswordRoundTrip(t *testing.T) {
	u, err := NewUser("Ana", "ana@helpdesk.test")
	require.NoError(t, err)
	hasher := &mockPasswordHasher{hashPrefix: "h"}

	pw, err := vo.NewPassword("secret123", nil)
	require.NoError(t, err)
	require.NoError(t, u.SetPassword(pw, hasher))

	assert.Equal(t, "h:secret123", u.PasswordHash())
	assert.NoError(t, u.VerifyPassword("secret123", hasher))
	assert.EqualError(t, u.VerifyPassword("wrong", hasher), "invalid password")
}

func TestUser_SetPassword_HasherFailure(t *testing.T) {
	u, err := NewUser("Ana", "ana@helpdesk.test")
	require.NoError(t, err)
	pw, err := vo.NewPassword("secret123", nil)
	require.NoError(t, err)

	assert.Error(t, u.SetPassword(pw, &failingPasswordHasher{}))
	assert.Error(t, u.SetPassword(nil, &mockPasswordHasher{}))
	assert.Error(t, u.VerifyPassword("secret123", &mockPasswordHasher{}))
}

func TestUser_UpdateProfile(t *testing.T) {
	u, err := ReconstructUser(1, "Ana", "ana@helpdesk.test", "hash", time.Now(), time.Now())
	require.NoError(t, err)

	require.NoError(t, u.UpdateProfile("Ana T.", "ana.t@helpdesk.test"))
	assert.Equal(t, "ana.t@helpdesk.test", u.Email().String())

	assert.Error(t, u.UpdateProfile("Ana", "bad"))
	assert.Equal(t, "ana.t@helpdesk.test", u.Email().String())
}
