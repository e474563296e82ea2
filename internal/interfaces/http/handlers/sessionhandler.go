// Package handlers contains the gin HTTP handlers.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"dav/internal/application/session/usecases"
	"dav/internal/domain/session"
	"dav/internal/interfaces/http/middleware"
	"dav/internal/shared/errors"
	"dav/internal/shared/logger"
	"dav/internal/shared/utils"
)

type createSessionExecutor interface {
	Execute(ctx context.Context, cmd usecases.CreateSessionCommand) (*usecases.CreateSessionResult, error)
}

type rotateSessionExecutor interface {
	Execute(ctx context.Context, sess *session.Session) (*session.Session, error)
}

type deleteSessionExecutor interface {
	Execute(ctx context.Context, sess *session.Session) error
}

type SessionHandler struct {
	createSession createSessionExecutor
	rotateSession rotateSessionExecutor
	deleteSession deleteSessionExecutor
	logger        logger.Interface
}

func NewSessionHandler(
	createSession createSessionExecutor,
	rotateSession rotateSessionExecutor,
	deleteSession deleteSessionExecutor,
	logger logger.Interface,
) *SessionHandler {
	return &SessionHandler{
		createSession: createSession,
		rotateSession: rotateSession,
		deleteSession: deleteSession,
		logger:        logger,
	}
}

type CreateSessionRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required"`
	AppID      uint   `json:"app_id" binding:"required"`
	APIKey     string `json:"api_key" binding:"required"`
	DeviceName string `json:"device_name"`
	DeviceOS   string `json:"device_os"`
}

type SessionResponse struct {
	AccessToken        string `json:"access_token"`
	WebsiteAccessToken string `json:"website_access_token,omitempty"`
}

// Create logs a user into an app on behalf of an authenticated developer.
func (h *SessionHandler) Create(c *gin.Context) {
	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid request body", err.Error()))
		return
	}

	result, err := h.createSession.Execute(c.Request.Context(), usecases.CreateSessionCommand{
		Caller:     middleware.DevFromContext(c),
		Email:      req.Email,
		Password:   req.Password,
		AppID:      req.AppID,
		APIKey:     req.APIKey,
		DeviceName: req.DeviceName,
		DeviceOS:   req.DeviceOS,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, SessionResponse{
		AccessToken:        result.AccessToken,
		WebsiteAccessToken: result.WebsiteAccessToken,
	})
}

// Renew rotates the session token. The endpoint authenticates with the
// current token even when the renewal window has lapsed; renewal is the
// remedy for that state, not a victim of it.
func (h *SessionHandler) Renew(c *gin.Context) {
	sess := middleware.SessionFromContext(c)

	renewed, err := h.rotateSession.Execute(c.Request.Context(), sess)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", SessionResponse{AccessToken: renewed.Token})
}

// Delete is explicit logout.
func (h *SessionHandler) Delete(c *gin.Context) {
	sess := middleware.SessionFromContext(c)

	if err := h.deleteSession.Execute(c.Request.Context(), sess); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}
