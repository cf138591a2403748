package setup

import (
	"context"
	"fmt"
	"time"

	"github.com/kopdar-dev/kopdar/backend/internal/handler"
	"github.com/kopdar-dev/kopdar/backend/internal/service"
	"github.com/kopdar-dev/kopdar/backend/internal/storage/pg"
	"github.com/kopdar-dev/kopdar/backend/internal/storage/sqlite"
	"github.com/kopdar-dev/kopdar/shared/config"
	"github.com/kopdar-dev/kopdar/shared/jwt"
	"github.com/kopdar-dev/kopdar/shared/logger"
	mw "github.com/kopdar-dev/kopdar/shared/middleware"
	"github.com/kopdar-dev/kopdar/shared/validation"
)

// Tokens are minted by the sign-in provider; the TTL only matters for
// tokens this process issues itself (local development).
const devTokenTTL = 24 * time.Hour

// Storage is everything the services need, implemented by both backends.
type Storage interface {
	service.CategoryStorage
	service.ThreadStorage
	service.ReplyStorage
	service.VoteStorage
	service.AggregateStorage
	service.UserStorage
	handler.HealthChecker
	Cleanup() error
}

// Dependencies struct to hold all initialized dependencies.
type Dependencies struct {
	Config         *config.Config
	Storage        Storage
	Handler        *handler.Handler
	Jwt            jwt.JwtService
	AuthMiddleware *mw.Auth

	closers []func()
}

// SetupDependencies initializes all dependencies required for the application.
func SetupDependencies(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	storage, err := openStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return Build(cfg, storage), nil
}

// Build wires services and handlers on top of an opened storage.
func Build(cfg *config.Config, storage Storage) *Dependencies {
	jwtService := jwt.New(cfg.JwtKey(), devTokenTTL)
	text := validation.NewText()
	aggregator := service.NewAggregator(storage)

	category := service.NewCategory(storage)
	thread := service.NewThread(storage, storage, text, aggregator)
	reply := service.NewReply(storage, storage, text, aggregator)
	vote := service.NewVote(storage, cfg.Public.VoteMaxAttempts)
	user := service.NewUser(storage)

	h := handler.New(category, thread, reply, vote, user, storage, cfg)

	return &Dependencies{
		Config:         cfg,
		Storage:        storage,
		Handler:        h,
		Jwt:            jwtService,
		AuthMiddleware: mw.NewAuth(jwtService),
	}
}

func openStorage(ctx context.Context, cfg *config.Config) (Storage, error) {
	switch cfg.Public.Storage.Driver {
	case config.DriverPostgres:
		logger.Log.Info("using postgres storage", "host", cfg.Private.Pg.Host, "dbname", cfg.Private.Pg.Dbname)
		storage, err := pg.New(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return storage, nil
	case config.DriverSqlite:
		logger.Log.Info("using sqlite storage", "path", cfg.Public.Storage.SqlitePath)
		storage, err := sqlite.Open(ctx, cfg.Public.Storage.SqlitePath)
		if err != nil {
			return nil, err
		}
		return storage, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Public.Storage.Driver)
	}
}

// OnClose registers cleanup to run before the storage is closed.
func (d *Dependencies) OnClose(fn func()) {
	d.closers = append(d.closers, fn)
}

// Close runs registered cleanups in reverse order, then closes the storage.
func (d *Dependencies) Close() error {
	for i := len(d.closers) - 1; i >= 0; i-- {
		d.closers[i]()
	}
	d.closers = nil
	return d.Storage.Cleanup()
}
