// Package middleware contains the gin middleware for request authentication.
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	sessionUsecases "dav/internal/application/session/usecases"
	"dav/internal/domain/dev"
	"dav/internal/domain/session"
	"dav/internal/shared/constants"
	"dav/internal/shared/errors"
	"dav/internal/shared/logger"
	"dav/internal/shared/utils"
)

const contextKeyDev = "dev"

type AuthMiddleware struct {
	authenticateDev *sessionUsecases.AuthenticateDeveloperUseCase
	resolveSession  *sessionUsecases.ResolveSessionUseCase
	logger          logger.Interface
}

func NewAuthMiddleware(
	authenticateDev *sessionUsecases.AuthenticateDeveloperUseCase,
	resolveSession *sessionUsecases.ResolveSessionUseCase,
	logger logger.Interface,
) *AuthMiddleware {
	return &AuthMiddleware{
		authenticateDev: authenticateDev,
		resolveSession:  resolveSession,
		logger:          logger,
	}
}

// RequireDev authenticates the "apiKey,signature" developer credential in the
// Authorization header. Missing and invalid credentials are reported
// distinctly, but both abort.
func (m *AuthMiddleware) RequireDev() gin.HandlerFunc {
	return func(c *gin.Context) {
		credential := c.GetHeader("Authorization")
		if credential == "" {
			utils.ErrorResponseWithError(c, errors.NewNotAuthenticatedError())
			c.Abort()
			return
		}

		developer, err := m.authenticateDev.Execute(c.Request.Context(), credential)
		if err != nil {
			utils.ErrorResponseWithError(c, err)
			c.Abort()
			return
		}
		if developer == nil {
			utils.ErrorResponseWithError(c, errors.NewAuthenticationFailedError())
			c.Abort()
			return
		}

		c.Set(contextKeyDev, developer)
		c.Next()
	}
}

// RequireSession authenticates a bearer session token and enforces the
// renewal window. checkRenewal is false only on the endpoints whose purpose
// is to end or renew the session itself.
func (m *AuthMiddleware) RequireSession(checkRenewal bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			utils.ErrorResponseWithError(c, errors.NewNotAuthenticatedError())
			c.Abort()
			return
		}

		sess, err := m.resolveSession.Execute(c.Request.Context(), token, checkRenewal)
		if err != nil {
			utils.ErrorResponseWithError(c, err)
			c.Abort()
			return
		}

		c.Set(constants.ContextKeySession, sess)
		c.Set(constants.ContextKeyUserID, sess.UserID)
		c.Set(constants.ContextKeyAppID, sess.AppID)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1]
	}
	// Bare tokens are accepted too; older clients never sent the scheme.
	return authHeader
}

// SessionFromContext returns the session stashed by RequireSession.
func SessionFromContext(c *gin.Context) *session.Session {
	if v, ok := c.Get(constants.ContextKeySession); ok {
		if sess, ok := v.(*session.Session); ok {
			return sess
		}
	}
	return nil
}

// DevFromContext returns the developer stashed by RequireDev.
func DevFromContext(c *gin.Context) *dev.Dev {
	if v, ok := c.Get(contextKeyDev); ok {
		if developer, ok := v.(*dev.Dev); ok {
			return developer
		}
	}
	return nil
}
