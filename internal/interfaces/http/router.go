// Package http wires the HTTP surface: repositories, use cases, handlers,
// and routes.
package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	sessionUsecases "dav/internal/application/session/usecases"
	"dav/internal/application/tableobject/services"
	tableObjectUsecases "dav/internal/application/tableobject/usecases"
	"dav/internal/infrastructure/cache"
	"dav/internal/infrastructure/config"
	"dav/internal/infrastructure/repository"
	"dav/internal/interfaces/http/handlers"
	"dav/internal/interfaces/http/middleware"
	"dav/internal/shared/db"
	"dav/internal/shared/logger"
)

// Router holds the gin engine and the wired handlers.
type Router struct {
	engine             *gin.Engine
	sessionHandler     *handlers.SessionHandler
	tableObjectHandler *handlers.TableObjectHandler
	authMiddleware     *middleware.AuthMiddleware
	log                logger.Interface
}

// NewRouter builds the full dependency graph from the database and Redis
// connections.
func NewRouter(gormDB *gorm.DB, redisClient *redis.Client, cfg *config.Config, log logger.Interface) *Router {
	engine := gin.New()

	devRepo := repository.NewDevRepository(gormDB)
	appRepo := repository.NewAppRepository(gormDB)
	userRepo := repository.NewUserRepository(gormDB)
	sessionRepo := repository.NewSessionRepository(gormDB)
	tableRepo := repository.NewTableRepository(gormDB)
	objectRepo := repository.NewTableObjectRepository(gormDB)
	accessRepo := repository.NewTableObjectUserAccessRepository(gormDB)
	propertyTypeRepo := repository.NewTablePropertyTypeRepository(gormDB)
	tableEtagRepo := repository.NewTableEtagRepository(gormDB)
	pendingRepo := repository.NewPendingCacheOperationRepository(gormDB)

	objectCache := cache.NewTableObjectCache(redisClient)
	txManager := db.NewTransactionManager(gormDB)

	propagator := services.NewChangePropagator(objectRepo, propertyTypeRepo, tableEtagRepo, pendingRepo, objectCache, log)

	renewalWindow := time.Duration(cfg.Auth.SessionRenewalHours) * time.Hour

	authenticateDev := sessionUsecases.NewAuthenticateDeveloperUseCase(devRepo, log)
	resolveSession := sessionUsecases.NewResolveSessionUseCase(sessionRepo, renewalWindow, cfg.Server.IsProduction(), log)
	createSession := sessionUsecases.NewCreateSessionUseCase(devRepo, appRepo, userRepo, sessionRepo, cfg.App.WebsiteAppID, log)
	rotateSession := sessionUsecases.NewRotateSessionUseCase(sessionRepo, log)
	deleteSession := sessionUsecases.NewDeleteSessionUseCase(sessionRepo, log)

	checkAccess := tableObjectUsecases.NewCheckAccessUseCase(objectRepo, tableRepo, accessRepo, log)
	createObject := tableObjectUsecases.NewCreateTableObjectUseCase(objectRepo, tableRepo, userRepo, propagator, txManager, log)
	getObject := tableObjectUsecases.NewGetTableObjectUseCase(checkAccess, log)
	updateObject := tableObjectUsecases.NewUpdateTableObjectUseCase(checkAccess, objectRepo, userRepo, propagator, txManager, log)
	deleteObject := tableObjectUsecases.NewDeleteTableObjectUseCase(checkAccess, objectRepo, userRepo, propagator, log)
	grantAccess := tableObjectUsecases.NewGrantAccessUseCase(objectRepo, tableRepo, accessRepo, userRepo, propagator, log)
	revokeAccess := tableObjectUsecases.NewRevokeAccessUseCase(objectRepo, tableRepo, accessRepo, userRepo, propagator, log)
	completeFile := tableObjectUsecases.NewCompleteFileUploadUseCase(objectRepo, tableRepo, userRepo, propagator, txManager, log)

	sessionHandler := handlers.NewSessionHandler(createSession, rotateSession, deleteSession, log)
	tableObjectHandler := handlers.NewTableObjectHandler(createObject, getObject, updateObject, deleteObject, grantAccess, revokeAccess, completeFile, log)

	authMiddleware := middleware.NewAuthMiddleware(authenticateDev, resolveSession, log)

	return &Router{
		engine:             engine,
		sessionHandler:     sessionHandler,
		tableObjectHandler: tableObjectHandler,
		authMiddleware:     authMiddleware,
		log:                log,
	}
}

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.Logger(r.log))
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.CORS())

	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := r.engine.Group("/v1")
	{
		// Session creation carries a developer credential, not a session
		// token. Renew and delete skip the renewal check: both are the only
		// sensible calls left once the window has lapsed.
		v1.POST("/session", r.authMiddleware.RequireDev(), r.sessionHandler.Create)
		v1.POST("/session/renew", r.authMiddleware.RequireSession(false), r.sessionHandler.Renew)
		v1.DELETE("/session", r.authMiddleware.RequireSession(false), r.sessionHandler.Delete)

		objects := v1.Group("/table_object")
		objects.Use(r.authMiddleware.RequireSession(true))
		{
			objects.POST("", r.tableObjectHandler.Create)
			objects.GET("/:uuid", r.tableObjectHandler.Get)
			objects.PUT("/:uuid", r.tableObjectHandler.Update)
			objects.DELETE("/:uuid", r.tableObjectHandler.Delete)
			objects.POST("/:uuid/access", r.tableObjectHandler.GrantAccess)
			objects.DELETE("/:uuid/access", r.tableObjectHandler.RevokeAccess)
			objects.PUT("/:uuid/file", r.tableObjectHandler.CompleteFileUpload)
		}
	}
}

// GetEngine returns the Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
