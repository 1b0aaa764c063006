package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/saikiran-1508/chronicle/internal/config"
	v1 "github.com/saikiran-1508/chronicle/internal/delivery/http/v1"
	"github.com/saikiran-1508/chronicle/internal/services"
)

func MustListenAndServeHTTP() {
	cfg := config.Global()
	if cfg.Env != config.EnvLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	httpCfg := cfg.HTTP

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	registerRoutes(router)

	server := &http.Server{
		Addr:    net.JoinHostPort(httpCfg.Host, httpCfg.Port),
		Handler: router,
	}

	go func() {
		globalLogger.Info().
			Str("host", httpCfg.Host).
			Str("port", httpCfg.Port).
			Msg("setting up http server")
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			globalLogger.Error().
				Err(err).
				Msg("failed to listen and serve http")
			panic(err)
		}
	}()

	// Wait for the interrupt signal to gracefully
	// shut down the server with a timeout.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	globalLogger.Info().
		Msg("shutting down http server")

	ctx, cancel := context.WithTimeout(context.Background(), httpCfg.ShutdownTimeout)
	defer cancel()

	err := server.Shutdown(ctx)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to shutdown http server")
		panic(err)
	}
	globalLogger.Info().Msg("shut down http server")
}

func registerRoutes(router gin.IRouter) {
	cfg := config.Global()

	authService := services.NewAuthService(
		globalLogger,
		globalPostgresPool,
		cfg.JWT.Issuer,
		[]byte(cfg.JWT.SigningKey),
		cfg.JWT.AccessTokenTTL,
		cfg.JWT.RefreshTokenTTL,
	)
	sessionService := services.NewSessionService(globalLogger, globalPostgresPool)
	taskService := services.NewTaskService(globalLogger, globalPostgresPool)
	noteService := services.NewNoteService(globalLogger, globalPostgresPool)
	profileService := services.NewProfileService(globalLogger, globalPostgresPool)
	aiService := services.NewAIService(
		globalLogger,
		globalGeminiClient,
		cfg.Gemini.Model,
		cfg.Gemini.Timeout,
		taskService,
		noteService,
		globalRedisClient,
	)
	submissionService := services.NewSubmissionService(
		globalLogger,
		taskService,
		globalReminderEngine,
	)

	v1Handler := v1.New(
		globalLogger,
		authService,
		sessionService,
		taskService,
		noteService,
		profileService,
		aiService,
		submissionService,
		globalReminderEngine,
		globalSoundStore,
	)

	router = router.Group("/api/v1")

	authRouter := router.Group("/auth")
	authRouter.POST("/login", v1Handler.HandleLogin)
	authRouter.POST("/refresh", v1Handler.HandleRefresh)
	authRouter.POST("/register", v1Handler.HandleRegister)
	authRouter.POST("/logout", v1Handler.HandleAuthMiddleware, v1Handler.HandleLogout)

	tasksRouter := router.Group("/tasks", v1Handler.HandleAuthMiddleware)
	tasksRouter.GET("", v1Handler.HandleGetTasks)
	tasksRouter.POST("", v1Handler.HandleCreateTask)
	tasksRouter.GET("/:id", v1Handler.HandleGetTask)
	tasksRouter.PATCH("/:id", v1Handler.HandleUpdateTask)
	tasksRouter.DELETE("/:id", v1Handler.HandleDeleteTask)
	tasksRouter.GET("/:id/notes", v1Handler.HandleGetNotes)
	tasksRouter.POST("/:id/notes", v1Handler.HandleAddNote)
	tasksRouter.POST("/:id/ai-recommend", v1Handler.HandleAIRecommend)

	router.POST("/chat", v1Handler.HandleAuthMiddleware, v1Handler.HandleChat)

	profileRouter := router.Group("/profile", v1Handler.HandleAuthMiddleware)
	profileRouter.GET("", v1Handler.HandleGetProfile)
	profileRouter.POST("", v1Handler.HandleUpdateProfile)
}
