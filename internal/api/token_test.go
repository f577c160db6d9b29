// ABOUTME: Tests for the pre-flight token shape checks
// ABOUTME: Covers the expiry peek used by session housekeeping

package api

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenWellFormed(t *testing.T) {
	tests := []struct {
		token string
		want  bool
	}{
		{"", false},
		{"abc", false},
		{"abc.def", true},
		{"head.claims.sig", true},
		{".", true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, TokenWellFormed(tt.token), "token %q", tt.token)
	}
}

func TestTokenExpiry(t *testing.T) {
	exp := time.Now().Add(30 * time.Minute).Truncate(time.Second)
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "bob",
		"exp": exp.Unix(),
	})
	signed, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	got, ok := TokenExpiry(signed)
	require.True(t, ok)
	assert.True(t, got.Equal(exp), "got %v, want %v", got, exp)
}

func TestTokenExpiry_NoClaim(t *testing.T) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "bob"})
	signed, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, ok := TokenExpiry(signed)
	assert.False(t, ok)
}

func TestTokenExpiry_NotAJWT(t *testing.T) {
	_, ok := TokenExpiry("abc.def")
	assert.False(t, ok)
}
