// Package app assembles the roster from configuration: storage, services,
// HTTP router and server lifecycle.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/faizan/roster/auth"
	"github.com/faizan/roster/bulk"
	"github.com/faizan/roster/config"
	"github.com/faizan/roster/handlers"
	"github.com/faizan/roster/metrics"
	"github.com/faizan/roster/middleware"
	"github.com/faizan/roster/models"
	"github.com/faizan/roster/repository"
	"github.com/faizan/roster/services"
	"github.com/faizan/roster/validation"
)

// App is a fully wired roster instance.
type App struct {
	Config  *config.Config
	DB      *gorm.DB
	Users   *services.UserService
	Router  *gin.Engine
	userDB  *repository.UserRepository
	limiter *middleware.RateLimiter
	log     *zap.Logger
}

// New wires every component on top of an open database.
func New(cfg *config.Config, db *gorm.DB, log *zap.Logger) (*App, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("database handle: %w", err)
	}

	v := validation.New()
	hasher := auth.NewPasswordHasher(cfg.Auth.BcryptCost)
	tokens := auth.NewTokenIssuer(
		cfg.Auth.JWTSecret,
		cfg.Auth.JWTRefreshSecret,
		cfg.Auth.AccessTTL.Duration,
		cfg.Auth.RefreshTTL.Duration,
	)
	m := metrics.New()

	userRepo := repository.NewUserRepository(db)
	artistRepo := repository.NewArtistRepository(db)
	songRepo := repository.NewSongRepository(db)

	users := services.NewUserService(userRepo, v, hasher, tokens, log)
	artists := services.NewArtistService(artistRepo, v, log)
	songs := services.NewSongService(songRepo, artistRepo, v, log)
	limiter := middleware.NewRateLimiter(cfg.Auth.LoginRatePerSecond, cfg.Auth.LoginBurst, log.Named("ratelimit"))

	router, err := handlers.NewRouter(handlers.Deps{
		Users:   handlers.NewUserHandler(users, m),
		Artists: handlers.NewArtistHandler(artists),
		Songs:   handlers.NewSongHandler(songs),
		Bulk: handlers.NewBulkHandler(
			bulk.NewExporter(artistRepo),
			bulk.NewImporter(artists, cfg.Bulk.MaxImportRows, m, log),
			cfg.Bulk.MaxUploadBytes,
			log,
		),
		Tokens:         tokens,
		LoginLimiter:   limiter,
		Metrics:        m,
		DB:             sqlDB,
		Log:            log.Named("http"),
		TrustedProxies: cfg.Server.TrustedProxies,
	})
	if err != nil {
		return nil, fmt.Errorf("build router: %w", err)
	}

	return &App{
		Config:  cfg,
		DB:      db,
		Users:   users,
		Router:  router,
		userDB:  userRepo,
		limiter: limiter,
		log:     log,
	}, nil
}

// Serve runs the HTTP server until ctx is cancelled, then drains in-flight
// requests within the configured shutdown timeout.
func (a *App) Serve(ctx context.Context) error {
	s := a.Config.Server
	srv := &http.Server{
		Addr:              s.Addr,
		Handler:           a.Router,
		ReadHeaderTimeout: s.ReadTimeout.Duration,
		ReadTimeout:       s.ReadTimeout.Duration,
		WriteTimeout:      s.WriteTimeout.Duration,
		IdleTimeout:       s.IdleTimeout.Duration,
	}

	a.checkAdmin(ctx)

	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go a.limiter.Run(sweepCtx, time.Minute)

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("http server listening", zap.String("addr", s.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	a.log.Info("shutting down", zap.Duration("timeout", s.ShutdownTimeout.Duration))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.ShutdownTimeout.Duration)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// checkAdmin warns when no super admin exists, since every user route
// requires one.
func (a *App) checkAdmin(ctx context.Context) {
	n, err := a.userDB.CountByRole(ctx, models.RoleSuperAdmin)
	if err != nil {
		a.log.Warn("count super admins", zap.Error(err))
		return
	}
	if n == 0 {
		a.log.Warn("no super_admin account exists; create one with `roster create-admin`")
	}
}
