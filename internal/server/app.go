// Package server wires and runs the development admin API server: the user
// store (in memory or PostgreSQL) and avatar storage (in memory or S3) behind
// the HTTP API the admin client talks to.
package server

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/dmitrijs2005/adminapi/internal/common"
	"github.com/dmitrijs2005/adminapi/internal/logging"
	"github.com/dmitrijs2005/adminapi/internal/server/avatars"
	"github.com/dmitrijs2005/adminapi/internal/server/config"
	"github.com/dmitrijs2005/adminapi/internal/server/httpapi"
	"github.com/dmitrijs2005/adminapi/internal/server/repomanager"
	"github.com/dmitrijs2005/adminapi/internal/server/users"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	repos       repomanager.RepositoryManager
	avatars     avatars.Store
	userService *users.Service
}

func newAvatarStore(ctx context.Context, c *config.Config) (avatars.Store, error) {
	if c.S3Bucket == "" {
		return avatars.NewMemoryStore(), nil
	}
	return avatars.NewS3Store(ctx, avatars.S3Options{
		Bucket:       c.S3Bucket,
		Region:       c.S3Region,
		BaseEndpoint: c.S3BaseEndpoint,
		AccessKey:    c.S3AccessKey,
		SecretKey:    c.S3SecretKey,
	})
}

func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {

	repos, err := repomanager.New(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	as, err := newAvatarStore(ctx, c)
	if err != nil {
		_ = repos.Close()
		return nil, fmt.Errorf("avatar storage init error: %w", err)
	}

	us := users.NewService(repos.Users(), repos.RefreshTokens(), c)

	// a restarted Postgres-backed server already has its admin
	admin := &users.User{UserName: c.AdminUsername, Roles: []string{users.RoleAdmin}}
	if _, err := us.Create(ctx, admin, c.AdminPassword); err != nil && !errors.Is(err, common.ErrorAlreadyExists) {
		_ = repos.Close()
		return nil, fmt.Errorf("seed admin: %w", err)
	}

	return &App{config: c, logger: logger, repos: repos, avatars: as, userService: us}, nil
}

func splitOrigins(s string) []string {
	var out []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves until ctx is cancelled or a termination signal arrives, then
// releases the storage backend.
func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	defer func() {
		if err := app.repos.Close(); err != nil {
			app.logger.Error(ctx, "error closing storage", "error", err)
		}
	}()

	app.logger.Info(ctx, "Starting app...", "admin", app.config.AdminUsername, "postgres", app.config.DatabaseDSN != "", "s3", app.config.S3Bucket != "")

	app.initSignalHandler(cancelFunc)

	s := httpapi.NewServer(app.config.Addr, app.logger, app.userService, app.avatars,
		httpapi.WithAllowedOrigins(splitOrigins(app.config.AllowedOrigins)...))
	return s.Run(ctx)
}
