package usecases

import (
	"context"
	"fmt"

	"dav/internal/domain/dev"
	"dav/internal/domain/session"
	"dav/internal/domain/user"
	"dav/internal/shared/errors"
	"dav/internal/shared/logger"
)

// CreateSessionCommand carries an app-specific login request. Caller is the
// already-authenticated developer issuing the call; session creation is
// reserved for the platform's first registered developer.
type CreateSessionCommand struct {
	Caller     *dev.Dev
	Email      string
	Password   string
	AppID      uint
	APIKey     string
	DeviceName string
	DeviceOS   string
}

// CreateSessionResult returns the minted token, plus a companion website
// token when the login targeted a third-party app.
type CreateSessionResult struct {
	AccessToken        string
	WebsiteAccessToken string
}

// CreateSessionUseCase logs a user into an app. Logins for any app other
// than the first-party website app also silently mint a companion session
// scoped to the website app, so later website-only calls authenticate
// without a second login. Both sessions have independent tokens and rotation
// lifecycles.
type CreateSessionUseCase struct {
	devRepo      dev.Repository
	appRepo      dev.AppRepository
	userRepo     user.Repository
	sessionRepo  session.Repository
	websiteAppID uint
	logger       logger.Interface
}

func NewCreateSessionUseCase(
	devRepo dev.Repository,
	appRepo dev.AppRepository,
	userRepo user.Repository,
	sessionRepo session.Repository,
	websiteAppID uint,
	logger logger.Interface,
) *CreateSessionUseCase {
	return &CreateSessionUseCase{
		devRepo:      devRepo,
		appRepo:      appRepo,
		userRepo:     userRepo,
		sessionRepo:  sessionRepo,
		websiteAppID: websiteAppID,
		logger:       logger,
	}
}

func (uc *CreateSessionUseCase) Execute(ctx context.Context, cmd CreateSessionCommand) (*CreateSessionResult, error) {
	if cmd.Caller == nil {
		return nil, errors.NewNotAuthenticatedError()
	}
	if !cmd.Caller.IsFirstDev() {
		return nil, errors.NewActionNotAllowedError()
	}

	app, err := uc.appRepo.GetByID(ctx, cmd.AppID)
	if err != nil {
		uc.logger.Errorw("failed to get app", "app_id", cmd.AppID, "error", err)
		return nil, fmt.Errorf("failed to get app: %w", err)
	}
	if app == nil {
		return nil, errors.NewEntityNotFoundError(errors.CodeAppDoesNotExist, "App does not exist")
	}

	// The api key in the command names the dev the target app must belong to.
	appDev, err := uc.devRepo.GetByAPIKey(ctx, cmd.APIKey)
	if err != nil {
		uc.logger.Errorw("failed to get dev by api key", "error", err)
		return nil, fmt.Errorf("failed to get dev: %w", err)
	}
	if appDev == nil {
		return nil, errors.NewEntityNotFoundError(errors.CodeDevDoesNotExist, "Dev does not exist")
	}
	if app.DevID != appDev.ID {
		return nil, errors.NewActionNotAllowedError()
	}

	usr, err := uc.userRepo.GetByEmail(ctx, cmd.Email)
	if err != nil {
		uc.logger.Errorw("failed to get user by email", "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if usr == nil {
		return nil, errors.NewEntityNotFoundError(errors.CodeUserDoesNotExist, "User does not exist")
	}

	if !usr.CheckPassword(cmd.Password) {
		return nil, &errors.AppError{
			Type:    errors.ErrorTypeUnauthorized,
			APICode: errors.CodePasswordIncorrect,
			Message: "Password is incorrect",
			Code:    401,
		}
	}

	sess, err := session.NewSession(usr.ID, app.ID, cmd.DeviceName, cmd.DeviceOS)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	if err := uc.sessionRepo.Create(ctx, sess); err != nil {
		uc.logger.Errorw("failed to persist session", "user_id", usr.ID, "error", err)
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	result := &CreateSessionResult{AccessToken: sess.Token}

	if app.ID != uc.websiteAppID {
		websiteSess, err := session.NewSession(usr.ID, uc.websiteAppID, cmd.DeviceName, cmd.DeviceOS)
		if err != nil {
			return nil, fmt.Errorf("failed to create website session: %w", err)
		}
		if err := uc.sessionRepo.Create(ctx, websiteSess); err != nil {
			uc.logger.Errorw("failed to persist website session", "user_id", usr.ID, "error", err)
			return nil, fmt.Errorf("failed to create website session: %w", err)
		}
		result.WebsiteAccessToken = websiteSess.Token
	}

	uc.logger.Infow("session created", "user_id", usr.ID, "app_id", app.ID)
	return result, nil
}
