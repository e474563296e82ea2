package usecases

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"dav/internal/domain/dev"
	"dav/internal/domain/session"
	"dav/internal/domain/user"
	"dav/internal/shared/logger"
)

// nopLogger satisfies logger.Interface without recording anything. Use case
// tests assert on behavior, not on log lines.
type nopLogger struct{}

func (nopLogger) Debug(string, ...any)                 {}
func (nopLogger) Info(string, ...any)                  {}
func (nopLogger) Warn(string, ...any)                  {}
func (nopLogger) Error(string, ...any)                 {}
func (nopLogger) Fatal(string, ...any)                 {}
func (l nopLogger) With(...any) logger.Interface       { return l }
func (l nopLogger) Named(string) logger.Interface      { return l }
func (nopLogger) Debugw(string, ...interface{})        {}
func (nopLogger) Infow(string, ...interface{})         {}
func (nopLogger) Warnw(string, ...interface{})         {}
func (nopLogger) Errorw(string, ...interface{})        {}
func (nopLogger) Fatalw(string, ...interface{})        {}

type mockSessionRepository struct {
	mock.Mock
}

func (m *mockSessionRepository) Create(ctx context.Context, s *session.Session) error {
	args := m.Called(ctx, s)
	if args.Error(0) == nil && s.ID == 0 {
		s.ID = 1
	}
	return args.Error(0)
}

func (m *mockSessionRepository) GetByID(ctx context.Context, id uint) (*session.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*session.Session), args.Error(1)
}

func (m *mockSessionRepository) GetByToken(ctx context.Context, token string) (*session.Session, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*session.Session), args.Error(1)
}

func (m *mockSessionRepository) GetByOldToken(ctx context.Context, token string) (*session.Session, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*session.Session), args.Error(1)
}

func (m *mockSessionRepository) Update(ctx context.Context, s *session.Session) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *mockSessionRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockSessionRepository) DeleteStale(ctx context.Context, notUpdatedSince time.Time) (int64, error) {
	args := m.Called(ctx, notUpdatedSince)
	return args.Get(0).(int64), args.Error(1)
}

type mockDevRepository struct {
	mock.Mock
}

func (m *mockDevRepository) GetByID(ctx context.Context, id uint) (*dev.Dev, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dev.Dev), args.Error(1)
}

func (m *mockDevRepository) GetByAPIKey(ctx context.Context, apiKey string) (*dev.Dev, error) {
	args := m.Called(ctx, apiKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dev.Dev), args.Error(1)
}

type mockAppRepository struct {
	mock.Mock
}

func (m *mockAppRepository) GetByID(ctx context.Context, id uint) (*dev.App, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dev.App), args.Error(1)
}

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) GetByID(ctx context.Context, id uint) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *mockUserRepository) UpdateLastActive(ctx context.Context, id uint, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}
