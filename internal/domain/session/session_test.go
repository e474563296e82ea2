package session

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSession(t *testing.T) {
	s, err := NewSession(1, 2, "MacBook Pro", "macOS")
	require.NoError(t, err)

	assert.Equal(t, uint(1), s.UserID)
	assert.Equal(t, uint(2), s.AppID)
	assert.Len(t, s.Token, 24)
	assert.Empty(t, s.OldToken)
	assert.Equal(t, "MacBook Pro", s.DeviceName)
	assert.Equal(t, "macOS", s.DeviceOS)
}

func TestNewSession_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		userID uint
		appID  uint
	}{
		{"missing user id", 0, 2},
		{"missing app id", 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewSession(tt.userID, tt.appID, "", "")
			assert.Error(t, err)
			assert.Nil(t, s)
		})
	}
}

func TestNewSession_TruncatesDeviceFields(t *testing.T) {
	longName := strings.Repeat("x", 50)
	s, err := NewSession(1, 2, longName, longName)
	require.NoError(t, err)

	assert.Len(t, s.DeviceName, 30)
	assert.Len(t, s.DeviceOS, 30)
}

func TestRenew_RotatesToken(t *testing.T) {
	s, err := NewSession(1, 2, "", "")
	require.NoError(t, err)

	first := s.Token
	require.NoError(t, s.Renew())

	assert.Equal(t, first, s.OldToken)
	assert.NotEqual(t, first, s.Token)
	assert.Len(t, s.Token, 24)

	// A second rotation discards the first token entirely.
	second := s.Token
	require.NoError(t, s.Renew())
	assert.Equal(t, second, s.OldToken)
	assert.NotEqual(t, first, s.OldToken)
}

func TestNeedsRenewal(t *testing.T) {
	s, err := NewSession(1, 2, "", "")
	require.NoError(t, err)

	assert.False(t, s.NeedsRenewal(DefaultRenewalWindow))

	s.UpdatedAt = time.Now().UTC().Add(-25 * time.Hour)
	assert.True(t, s.NeedsRenewal(DefaultRenewalWindow))

	s.UpdatedAt = time.Now().UTC().Add(-23 * time.Hour)
	assert.False(t, s.NeedsRenewal(DefaultRenewalWindow))
}
