// Package session contains the session aggregate and its token lifecycle.
// A session is an authenticated (user, app, device) triple identified by a
// rotating bearer token.
package session

import (
	"context"
	"fmt"
	"time"

	"dav/internal/shared/biztime"
	"dav/internal/shared/constants"
	"dav/internal/shared/id"
)

type Session struct {
	ID         uint
	UserID     uint
	AppID      uint
	Token      string
	OldToken   string
	DeviceName string
	DeviceOS   string
	UpdatedAt  time.Time
	CreatedAt  time.Time
}

// DefaultRenewalWindow is how long a session stays usable without renewal in
// production mode.
const DefaultRenewalWindow = 24 * time.Hour

// StaleAge is the age after which a session that was never renewed is swept
// by the periodic cleanup job.
const StaleAge = 4 * 30 * 24 * time.Hour

// NewSession creates a session with a fresh token. Device fields are
// truncated, not rejected, when too long.
func NewSession(userID, appID uint, deviceName, deviceOS string) (*Session, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if appID == 0 {
		return nil, fmt.Errorf("app ID is required")
	}

	token, err := id.NewSessionToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session token: %w", err)
	}

	now := biztime.NowUTC()
	return &Session{
		UserID:     userID,
		AppID:      appID,
		Token:      token,
		DeviceName: truncate(deviceName, constants.MaxDeviceFieldLength),
		DeviceOS:   truncate(deviceOS, constants.MaxDeviceFieldLength),
		UpdatedAt:  now,
		CreatedAt:  now,
	}, nil
}

// Renew rotates the token: the current token moves into the old-token slot
// and a fresh token takes its place. This is the only sanctioned way tokens
// change.
func (s *Session) Renew() error {
	token, err := id.NewSessionToken()
	if err != nil {
		return fmt.Errorf("failed to generate session token: %w", err)
	}
	s.OldToken = s.Token
	s.Token = token
	s.UpdatedAt = biztime.NowUTC()
	return nil
}

// NeedsRenewal reports whether the session passed its renewal window. The
// caller decides whether the deployment mode enforces this at all.
func (s *Session) NeedsRenewal(window time.Duration) bool {
	return biztime.NowUTC().Sub(s.UpdatedAt) > window
}

func truncate(s string, max int) string {
	if len(s) > max {
		return s[:max]
	}
	return s
}

type Repository interface {
	Create(ctx context.Context, session *Session) error
	GetByID(ctx context.Context, id uint) (*Session, error)
	// GetByToken looks a session up by its current token.
	GetByToken(ctx context.Context, token string) (*Session, error)
	// GetByOldToken looks a session up by its rotated-out token. A hit means
	// a replay; the caller destroys the session.
	GetByOldToken(ctx context.Context, token string) (*Session, error)
	Update(ctx context.Context, session *Session) error
	Delete(ctx context.Context, id uint) error
	// DeleteStale removes sessions not updated since the given time.
	DeleteStale(ctx context.Context, notUpdatedSince time.Time) (int64, error)
}
