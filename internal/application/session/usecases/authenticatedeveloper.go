package usecases

import (
	"context"
	"fmt"

	"dav/internal/domain/dev"
	"dav/internal/shared/logger"
)

// AuthenticateDeveloperUseCase verifies an "apiKey,signature" developer
// credential. It authenticates a capability (which developer is calling),
// not a human user.
type AuthenticateDeveloperUseCase struct {
	devRepo dev.Repository
	logger  logger.Interface
}

func NewAuthenticateDeveloperUseCase(devRepo dev.Repository, logger logger.Interface) *AuthenticateDeveloperUseCase {
	return &AuthenticateDeveloperUseCase{
		devRepo: devRepo,
		logger:  logger,
	}
}

// Execute returns the matching developer, or (nil, nil) when the credential
// does not verify. Malformed credentials and signature mismatches fail
// closed; only store failures surface as errors.
func (uc *AuthenticateDeveloperUseCase) Execute(ctx context.Context, credential string) (*dev.Dev, error) {
	apiKey, signature, ok := dev.SplitCredential(credential)
	if !ok {
		return nil, nil
	}

	developer, err := uc.devRepo.GetByAPIKey(ctx, apiKey)
	if err != nil {
		uc.logger.Errorw("failed to get dev by api key", "error", err)
		return nil, fmt.Errorf("failed to get dev: %w", err)
	}
	if developer == nil {
		return nil, nil
	}

	if !developer.VerifySignature(signature) {
		uc.logger.Warnw("developer signature mismatch", "dev_id", developer.ID)
		return nil, nil
	}

	return developer, nil
}
