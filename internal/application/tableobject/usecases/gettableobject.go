package usecases

import (
	"context"

	"dav/internal/domain/session"
	"dav/internal/shared/logger"
)

// GetTableObjectUseCase resolves access and returns the object with its raw
// property bag. Reads always come from the primary store; the cache serves
// other consumers.
type GetTableObjectUseCase struct {
	checkAccess *CheckAccessUseCase
	logger      logger.Interface
}

func NewGetTableObjectUseCase(checkAccess *CheckAccessUseCase, logger logger.Interface) *GetTableObjectUseCase {
	return &GetTableObjectUseCase{checkAccess: checkAccess, logger: logger}
}

func (uc *GetTableObjectUseCase) Execute(ctx context.Context, sess *session.Session, uuid string) (*AccessResolution, error) {
	return uc.checkAccess.Execute(ctx, sess, uuid)
}
