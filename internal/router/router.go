package router

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/LackyKannauje/college-updates/internal/auth"
	"github.com/LackyKannauje/college-updates/internal/handlers"
	"github.com/LackyKannauje/college-updates/internal/middleware"
	"github.com/LackyKannauje/college-updates/internal/repositories"
	"github.com/LackyKannauje/college-updates/internal/services"
	"github.com/LackyKannauje/college-updates/pkg/config"
	"github.com/LackyKannauje/college-updates/pkg/storage"
	"github.com/LackyKannauje/college-updates/validators"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo, cfg *config.Config, log *slog.Logger) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.RequestID())
	e.Use(middleware.RequestLogger(log))
	e.Use(eMiddleware.CORSWithConfig(eMiddleware.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: []string{
			echo.HeaderOrigin,
			echo.HeaderContentType,
			echo.HeaderAccept,
			echo.HeaderAuthorization,
			"x-auth-token",
		},
	}))
	e.Use(middleware.Timeout(cfg.RequestTimeout))
	e.HTTPErrorHandler = errorHandler(e)
	log.Debug("global middleware configured")
}

// errorHandler reports server-side failures before handing off to Echo's default rendering.
func errorHandler(e *echo.Echo) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		var he *echo.HTTPError
		if errors.As(err, &he) && he.Code < http.StatusInternalServerError {
			e.DefaultHTTPErrorHandler(err, c)
			return
		}
		slog.ErrorContext(c.Request().Context(), "request failed",
			"method", c.Request().Method,
			"path", c.Path(),
			"error", err,
		)
		e.DefaultHTTPErrorHandler(err, c)
	}
}

// Dependencies are the external handles the routes are built on
type Dependencies struct {
	DB     *config.DB
	Assets storage.AssetStore
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, cfg *config.Config, deps Dependencies, v *validators.CustomValidator) {
	// Health check - always accessible
	e.GET("/health", handlers.NewHealthHandler(deps.DB.Mongo).HealthCheck)

	// --- Initialize Repositories ---
	db := deps.DB.Database
	userRepo := repositories.NewMongoUserRepository(db)
	postRepo := repositories.NewMongoPostRepository(db)
	likeRepo := repositories.NewMongoLikeRepository(db)
	commentRepo := repositories.NewMongoCommentRepository(db)
	followRepo := repositories.NewMongoFollowRepository(deps.DB.Mongo, db, cfg.MongoTransactions)

	// --- Initialize Services ---
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	mediaResolver := services.NewMediaResolver(deps.Assets)
	authService := services.NewAuthService(userRepo, jwtService, v)
	userService := services.NewUserService(userRepo, postRepo, followRepo, mediaResolver)
	followService := services.NewFollowService(userRepo, followRepo)
	postService := services.NewPostService(postRepo, likeRepo, commentRepo, userRepo, mediaResolver, v)

	Mount(e, Handlers{
		Auth:    handlers.NewAuthHandler(authService),
		User:    handlers.NewUserHandler(userService),
		Follow:  handlers.NewFollowHandler(followService),
		Post:    handlers.NewPostHandler(postService),
		Feed:    handlers.NewFeedHandler(postService),
		Like:    handlers.NewLikeHandler(postService),
		Comment: handlers.NewCommentHandler(postService),
	}, authService)
}

// Handlers groups the HTTP handlers mounted under /api
type Handlers struct {
	Auth    *handlers.AuthHandler
	User    *handlers.UserHandler
	Follow  *handlers.FollowHandler
	Post    *handlers.PostHandler
	Feed    *handlers.FeedHandler
	Like    *handlers.LikeHandler
	Comment *handlers.CommentHandler
}

// Mount registers the /api routes. Everything except register and login sits behind the JWT gate.
func Mount(e *echo.Echo, h Handlers, authenticator middleware.Authenticator) {
	api := e.Group("/api")
	requireAuth := middleware.JWTAuthMiddleware(authenticator)

	// --- /api/user ---
	userPublic := api.Group("/user")
	userPrivate := api.Group("/user", requireAuth)
	h.Auth.RegisterAuthRoutes(userPublic, userPrivate)
	h.Follow.RegisterFollowRoutes(userPrivate)
	h.User.RegisterProfileRoutes(userPrivate)

	// --- /api/post ---
	post := api.Group("/post", requireAuth)
	h.Feed.RegisterFeedRoutes(post)
	h.Like.RegisterLikeRoutes(post)
	h.Comment.RegisterCommentRoutes(post)
	h.Post.RegisterPostRoutes(post)

	slog.Debug("routes configured")
}
