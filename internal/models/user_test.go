package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_SetPassword(t *testing.T) {
	user := &User{Username: "alice"}

	require.NoError(t, user.SetPassword("pw1"))

	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "pw1", user.PasswordHash)
	assert.True(t, user.CheckPassword("pw1"))
	assert.False(t, user.CheckPassword("pw2"))
}

func TestUser_CheckPassword_NoHash(t *testing.T) {
	user := &User{Username: "alice"}
	assert.False(t, user.CheckPassword(""))
	assert.False(t, user.CheckPassword("pw1"))
}

func TestUser_HasToken(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		expiration time.Time
		name       string
		token      string
		want       bool
	}{
		{name: "no token", token: "", expiration: now.Add(time.Hour), want: false},
		{name: "valid token", token: "abc", expiration: now.Add(time.Hour), want: true},
		{name: "expired token", token: "abc", expiration: now.Add(-time.Second), want: false},
		{name: "expires exactly now", token: "abc", expiration: now, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := &User{Token: tt.token, TokenExpiration: tt.expiration}
			assert.Equal(t, tt.want, user.HasToken(now))
		})
	}
}

func TestUser_JSONHidesSecrets(t *testing.T) {
	user := &User{ID: 1, Username: "alice", Token: "secret-token"}
	require.NoError(t, user.SetPassword("pw1"))

	data, err := json.Marshal(user)
	require.NoError(t, err)

	assert.NotContains(t, string(data), user.PasswordHash)
	assert.NotContains(t, string(data), "secret-token")
	assert.NotContains(t, string(data), "pw1")
	assert.NotContains(t, string(data), `"PasswordHash"`)
	assert.NotContains(t, string(data), `"Token"`)
}
