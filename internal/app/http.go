package app

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Richard-avalos/legendme-login-svc/internal/auth/account"
	"github.com/Richard-avalos/legendme-login-svc/internal/auth/credentials"
	"github.com/Richard-avalos/legendme-login-svc/internal/auth/google"
	"github.com/Richard-avalos/legendme-login-svc/internal/auth/handler"
	"github.com/Richard-avalos/legendme-login-svc/internal/auth/token"
	"github.com/Richard-avalos/legendme-login-svc/internal/config"
	"github.com/Richard-avalos/legendme-login-svc/internal/directory"
	"github.com/Richard-avalos/legendme-login-svc/internal/middleware"
)

func setupHTTP(ctx context.Context, cfg config.Config) (*gin.Engine, func() error, error) {

	infra, err := setupInfra(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	// ----------------------------
	// Dependencies
	// ----------------------------

	credentialStore := credentials.NewPostgresStore(infra.DB)

	tokenIssuer, err := token.New(
		cfg.JWTIssuer,
		cfg.JWTSecret,
		cfg.AccessExpMinutes,
		cfg.RefreshExpDays,
	)
	if err != nil {
		return nil, nil, err
	}

	googleVerifier, err := google.NewVerifier(
		ctx,
		cfg.GoogleJWKSURI,
		cfg.GoogleClientID,
	)
	if err != nil {
		return nil, nil, err
	}

	directoryClient := directory.NewCachedClient(
		directory.NewClient(cfg.UsersServiceURL, cfg.UsersServiceToken, cfg.UsersServiceTimeout),
		infra.Redis.Client,
		cfg.ProfileCacheTTL,
	)

	accountService := account.NewService(
		credentialStore,
		directoryClient,
		googleVerifier,
		tokenIssuer,
	)

	authHandler := handler.NewHandler(accountService)
	authMiddleware := middleware.NewAuthMiddleware(tokenIssuer)

	// ----------------------------
	// Router
	// ----------------------------

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.GinAuthenticate(authMiddleware))

	// ----------------------------
	// Public Routes
	// ----------------------------

	authHandler.RegisterRoutes(router)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ----------------------------
	// Protected API Routes
	// ----------------------------

	api := router.Group("/api")
	api.Use(middleware.GinRequireUser())

	api.GET("/me", func(c *gin.Context) {
		principal, _ := middleware.PrincipalFromContext(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{
			"userId": principal.UserID,
			"email":  principal.Email,
			"name":   principal.Name,
		})
	})

	// ----------------------------
	// Cleanup
	// ----------------------------

	return router, func() error {
		if err := infra.Redis.Close(); err != nil {
			return err
		}
		return infra.DB.Close()
	}, nil
}
