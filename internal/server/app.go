// Package server wires the blog server together: it opens the database,
// applies migrations, builds the services and runs the REST API next to
// the gRPC health service until the process is told to stop.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/gopherblog/internal/cryptox"
	"github.com/dmitrijs2005/gopherblog/internal/logging"
	"github.com/dmitrijs2005/gopherblog/internal/server/auth"
	"github.com/dmitrijs2005/gopherblog/internal/server/config"
	"github.com/dmitrijs2005/gopherblog/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gopherblog/internal/server/services"
	"github.com/dmitrijs2005/gopherblog/internal/server/storage"
	_ "github.com/jackc/pgx/v5/stdlib"
	"golang.org/x/sync/errgroup"

	gs "github.com/dmitrijs2005/gopherblog/internal/server/grpc"
	hs "github.com/dmitrijs2005/gopherblog/internal/server/http"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	http    *hs.Server
	health  *gs.GRPCServer
	cleanup []func() error
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger, err := logging.New(c.LogFormat, c.LogLevel, os.Stdout)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	app, err := newApp(ctx, c, logger, db, repomanager.NewPostgresRepositoryManager())
	if err != nil {
		db.Close()
		return nil, err
	}

	return app, nil
}

func newApp(ctx context.Context, c *config.Config, logger logging.Logger, db *sql.DB, rm repomanager.RepositoryManager) (*App, error) {

	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migrations: %w", err)
	}

	hasher, err := cryptox.NewPasswordHasher(c.PasswordHash, c.BcryptCost)
	if err != nil {
		return nil, err
	}

	images, err := newImageStore(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("image store: %w", err)
	}

	issuer := auth.NewIssuer([]byte(c.SecretKey), c.AccessTokenValidityDuration)

	us := services.NewUserService(db, rm, hasher, issuer, images)
	ps := services.NewPostService(db, rm)

	router := hs.NewRouter(hs.Deps{
		Users:          us,
		Posts:          ps,
		Images:         images,
		Verifier:       issuer,
		Logger:         logger,
		CORSOrigin:     c.CORSOrigin,
		MaxUploadBytes: c.MaxUploadBytes,
	})

	return &App{
		config:  c,
		logger:  logger,
		db:      db,
		http:    hs.NewServer(c.EndpointAddrHTTP, logger, router),
		health:  gs.NewGRPCServer(c.EndpointAddrGRPC, logger, db, c.HealthCheckInterval),
		cleanup: []func() error{db.Close},
	}, nil
}

func newImageStore(ctx context.Context, c *config.Config) (storage.ImageStore, error) {
	switch c.StorageBackend {
	case config.StorageS3:
		return storage.NewS3Store(ctx, storage.S3Config{
			User:         c.S3RootUser,
			Password:     c.S3RootPassword,
			Bucket:       c.S3Bucket,
			Region:       c.S3Region,
			BaseEndpoint: c.S3BaseEndpoint,
		})
	case config.StorageDisk, "":
		return storage.NewDiskStore(c.UploadDir)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", c.StorageBackend)
	}
}

// Run blocks until SIGINT/SIGTERM/SIGQUIT arrives, ctx is cancelled or one
// of the servers fails. Both servers are stopped before it returns.
func (app *App) Run(ctx context.Context) error {

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	app.logger.Info(ctx, "Starting app...")

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return app.http.Run(gctx)
	})

	g.Go(func() error {
		return app.health.Run(gctx)
	})

	err := g.Wait()

	for _, f := range app.cleanup {
		if cerr := f(); cerr != nil {
			app.logger.Error(ctx, "cleanup failed", "error", cerr)
		}
	}

	app.logger.Info(ctx, "App stopped")

	return err
}
