package main

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	chatrepo "github.com/festy23/ideawaves/internal/chat/repository"
	chatrouter "github.com/festy23/ideawaves/internal/chat/router"
	chatservice "github.com/festy23/ideawaves/internal/chat/service"
	"github.com/festy23/ideawaves/internal/config"
	"github.com/festy23/ideawaves/internal/health"
	idearepo "github.com/festy23/ideawaves/internal/idea/repository"
	idearouter "github.com/festy23/ideawaves/internal/idea/router"
	ideaservice "github.com/festy23/ideawaves/internal/idea/service"
	"github.com/festy23/ideawaves/internal/middleware"
	notificationrepo "github.com/festy23/ideawaves/internal/notification/repository"
	notificationrouter "github.com/festy23/ideawaves/internal/notification/router"
	notificationservice "github.com/festy23/ideawaves/internal/notification/service"
	"github.com/festy23/ideawaves/internal/realtime"
	requestrepo "github.com/festy23/ideawaves/internal/request/repository"
	requestrouter "github.com/festy23/ideawaves/internal/request/router"
	requestservice "github.com/festy23/ideawaves/internal/request/service"
	"github.com/festy23/ideawaves/internal/response"
	statisticsrouter "github.com/festy23/ideawaves/internal/statistics/router"
	userrepo "github.com/festy23/ideawaves/internal/user/repository"
	userrouter "github.com/festy23/ideawaves/internal/user/router"
	userservice "github.com/festy23/ideawaves/internal/user/service"
	"github.com/festy23/ideawaves/pkg/storage"
	"github.com/festy23/ideawaves/pkg/token"
)

// app holds the assembled HTTP stack.
type app struct {
	engine *gin.Engine
	hub    *realtime.Hub
}

type dependencies struct {
	cfg       config.Config
	db        *gorm.DB
	images    storage.Storage
	backplane realtime.Backplane
	logger    *zap.SugaredLogger
}

func newApp(deps dependencies) *app {
	cfg, db, logger := deps.cfg, deps.db, deps.logger
	response.RegisterValidators()

	tokens := token.NewManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, cfg.Auth.Issuer)

	users := userrepo.New(db, logger)
	ideas := idearepo.New(db, logger)
	requests := requestrepo.New(db, logger)
	chats := chatrepo.New(db, logger)

	notificationSvc := notificationservice.New(notificationrepo.New(db, logger), logger)
	userSvc := userservice.New(users, tokens, logger)
	requestSvc := requestservice.New(db, requests, ideas, users, chats, notificationSvc, logger)
	ideaSvc := ideaservice.New(db, ideas, users, deps.images, requestSvc, notificationSvc, logger,
		ideaservice.WithMaxUploadBytes(cfg.Storage.MaxUploadBytes))
	chatSvc := chatservice.New(db, chats, ideas, users, logger)

	hubOpts := []realtime.Option{realtime.WithMaxMessageSize(cfg.Realtime.MaxMessageSize)}
	if deps.backplane != nil {
		hubOpts = append(hubOpts, realtime.WithBackplane(deps.backplane))
	}
	hub := realtime.New(chatSvc, logger, hubOpts...)

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	healthHandler := health.New(logger,
		health.Database(db),
		health.Check{Name: "realtime", Probe: hub.Check},
	)
	r.GET("/health", healthHandler.Check)

	if local, ok := deps.images.(*storage.Local); ok {
		r.Static("/uploads", local.Dir())
	}

	api := r.Group("/api")
	protected := api.Group("", middleware.Auth(tokens))

	userrouter.RegisterRoutes(api, protected, userSvc, logger)
	notificationrouter.RegisterRoutes(protected, notificationSvc, logger)
	idearouter.RegisterRoutes(protected, ideaSvc, logger)
	requestrouter.RegisterRoutes(protected, requestSvc, logger)
	chatrouter.RegisterRoutes(protected, chatSvc, logger)
	statisticsrouter.RegisterRoutes(protected, db, logger)
	protected.GET("/ws", hub.Handle)

	return &app{engine: r, hub: hub}
}
