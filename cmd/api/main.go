package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/Tharun-codes/wheelswebb/internal/auth"
	"github.com/Tharun-codes/wheelswebb/internal/cache"
	"github.com/Tharun-codes/wheelswebb/internal/config"
	"github.com/Tharun-codes/wheelswebb/internal/db"
	"github.com/Tharun-codes/wheelswebb/internal/handlers"
	"github.com/Tharun-codes/wheelswebb/internal/leads"
	"github.com/Tharun-codes/wheelswebb/internal/leadview"
	"github.com/Tharun-codes/wheelswebb/internal/middleware"
	"github.com/Tharun-codes/wheelswebb/internal/models"
	"github.com/Tharun-codes/wheelswebb/internal/validation"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, cols, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		logger.Error("mongo connection failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("mongo connected")
	defer client.Disconnect(context.Background())

	if err := db.EnsureIndexes(ctx, cols); err != nil {
		logger.Error("index creation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var cacheStore cache.Cache = cache.NewNoop()
	if cfg.RedisURL != "" || cfg.RedisAddr != "" {
		var redisCache *cache.RedisCache
		var err error
		if cfg.RedisURL != "" {
			redisCache, err = cache.NewRedisFromURL(cfg.RedisURL)
		} else {
			redisCache = cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		}
		if err != nil {
			logger.Error("redis connection failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		if err := redisCache.Ping(ctx); err != nil {
			logger.Error("redis connection failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("redis connected")
		cacheStore = redisCache
	}

	var jwtManager *auth.Manager
	if cfg.JWTSecret != "" {
		jwtManager = &auth.Manager{
			Secret:     []byte(cfg.JWTSecret),
			AccessTTL:  time.Duration(cfg.AccessTTLMinutes) * time.Minute,
			RefreshTTL: time.Duration(cfg.RefreshTTLMinutes) * time.Minute,
			Issuer:     "wheelsweb",
		}
	}

	server := &handlers.Server{
		Cfg:   cfg,
		Cols:  cols,
		Val:   validation.New(),
		Log:   logger,
		Cache: cacheStore,
		JWT:   jwtManager,
	}

	userDirectory := &handlers.UserDirectory{Cols: cols.Users}
	leadsRepo := leads.NewRepository(cols.Leads)
	leadsService := leads.NewService(leadsRepo, userDirectory, cfg.Timezone)
	leadsHandler := leads.NewHandler(leadsService, logger)

	var fetcher leadview.Fetcher
	if cfg.UpstreamURL != "" {
		fetcher = leadview.NewClient(cfg.UpstreamURL, cfg.UpstreamToken, logger)
		logger.Info("cases view using upstream leads API", slog.String("url", cfg.UpstreamURL))
	} else {
		fetcher = leadview.NewLocalFetcher(leadsService, logger)
	}
	casesHandler := leadview.NewHandler(fetcher, logger)

	r := chi.NewRouter()
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.FrontendOrigin))
	r.Use(chiMiddleware.Timeout(30 * time.Second))

	loginLimiter := middleware.NewRateLimiter(cfg.RateLimitLogin, time.Duration(cfg.RateLimitWindowSec)*time.Second)

	r.Route("/api", func(api chi.Router) {
		api.With(loginLimiter.Middleware).Post("/login", server.Login)
		api.Post("/refresh", server.Refresh)
		api.Post("/logout", server.Logout)

		api.Group(func(authed chi.Router) {
			authed.Use(middleware.UserAuth(jwtManager))

			authed.Get("/all-users", server.AllUsers)
			authed.Get("/dashboard", server.Dashboard)
			authed.Get("/dashboard/business-type", server.DashboardBusinessType)

			authed.Get("/leads", leadsHandler.List)
			authed.Post("/leads", leadsHandler.Create)
			authed.Get("/leads/{loanID}", leadsHandler.Get)
			authed.Put("/leads/{loanID}", leadsHandler.Update)
			authed.Delete("/leads/{loanID}", leadsHandler.Delete)

			authed.Get("/cases", casesHandler.View)
			authed.Delete("/cases/{loanID}", casesHandler.Delete)

			authed.Group(func(admin chi.Router) {
				admin.Use(middleware.RequireRole(models.RoleAdmin))
				admin.Post("/admin/users", server.AdminCreateUser)
			})
		})
	})

	srv := &http.Server{
		Addr:    cfg.ServerAddr,
		Handler: r,
	}

	go func() {
		logger.Info("server started", slog.String("addr", cfg.ServerAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.String("error", err.Error()))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.String("error", err.Error()))
	}
}
