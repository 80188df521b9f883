package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	appsvc "petspotter/internal/app"
	"petspotter/internal/cache"
	"petspotter/internal/config"
	"petspotter/internal/logging"
	mysqlClient "petspotter/internal/platform/mysql"
	"petspotter/internal/platform/objectstore"
	rabbitmqClient "petspotter/internal/platform/rabbitmq"
	redisClient "petspotter/internal/platform/redis"
	"petspotter/internal/readiness"
	"petspotter/internal/repository"
	"petspotter/internal/repository/memory"
	"petspotter/internal/seed"
	"petspotter/internal/worker"
)

// App carries every long-lived handle the HTTP layer needs. Optional
// collaborators (Cache, Publisher) stay nil when disabled.
type App struct {
	Config    *config.Config
	MySQL     *gorm.DB
	Redis     *redis.Client
	MQConn    *amqp.Connection
	Readiness *readiness.Gate

	Users         appsvc.CredentialStore
	Listings      appsvc.ListingStore
	Images        appsvc.PetImageStore
	Objects       appsvc.ObjectStore
	ListingFilter appsvc.ListingFilter
	Cache         appsvc.ListingCache
	Publisher     appsvc.ListingEventPublisher

	EventWorker *worker.ListingEventWorker
	Prober      *readiness.Prober

	StartedAt time.Time
}

type listingSeedStore interface {
	appsvc.ListingStore
	seed.Store
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	filter, err := appsvc.NewListingFilter(cfg.Listing.FilterDialect)
	if err != nil {
		return nil, err
	}

	a := &App{
		Config:        cfg,
		ListingFilter: filter,
		StartedAt:     time.Now(),
	}

	var (
		listings listingSeedStore
		events   worker.ListingEventStore
	)
	switch cfg.Storage.Driver {
	case config.StorageMySQL:
		db, err := mysqlClient.New(cfg.MySQLDSN())
		if err != nil {
			return nil, err
		}
		a.MySQL = db
		listings = repository.NewListingRepository(db)
		events = repository.NewListingEventRepository(db)
		a.Users = repository.NewUserRepository(db)
		a.Images = repository.NewPetImageRepository(db)
		a.Readiness = readiness.NewGate(false)
		a.Prober = readiness.NewProber(
			a.Readiness,
			storeCheck(db, listings, cfg.Seed.ResetDB),
			time.Duration(cfg.Readiness.ProbeIntervalSeconds)*time.Second,
		)
	case config.StorageMemory:
		store := memory.NewStore()
		listings = store.Listings()
		events = store.Events()
		a.Users = store.Users()
		a.Images = store.Images()
		a.Readiness = readiness.NewGate(true)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
	a.Listings = listings

	if a.Prober == nil && cfg.Seed.ResetDB {
		if _, err := seed.Reset(ctx, listings); err != nil {
			_ = a.Close()
			return nil, err
		}
	}

	if err := a.initMedia(ctx); err != nil {
		_ = a.Close()
		return nil, err
	}

	if cfg.Redis.Enabled {
		client, err := redisClient.New(ctx, redisClient.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			_ = a.Close()
			return nil, err
		}
		a.Redis = client
		a.Cache = cache.NewListingCache(
			client,
			time.Duration(cfg.Redis.ListTTLSeconds)*time.Second,
			time.Duration(cfg.Redis.DirtyTTLSeconds)*time.Second,
		)
	}

	if cfg.RabbitMQ.Enabled {
		conn, err := rabbitmqClient.New(ctx, cfg.RabbitMQ.URL)
		if err != nil {
			_ = a.Close()
			return nil, err
		}
		a.MQConn = conn
		a.Publisher = rabbitmqClient.NewListingEventPublisher(conn, cfg.RabbitMQ.ListingEventQueue)
		a.EventWorker = worker.NewListingEventWorker(conn, events, cfg.RabbitMQ.ListingEventQueue)
		if err := a.EventWorker.Start(ctx); err != nil {
			_ = a.Close()
			return nil, fmt.Errorf("start listing event worker failed: %w", err)
		}
	}

	if a.Prober != nil {
		a.Prober.Probe(ctx)
		if !a.Readiness.Ready() {
			logging.With("bootstrap").Warn().Msg("store not reachable, serving 503 until it is")
		}
		a.Prober.Start(ctx)
	}

	logging.With("bootstrap").Info().
		Str("storage", cfg.Storage.Driver).
		Str("filter_dialect", filter.Dialect()).
		Str("media", cfg.Media.Driver).
		Bool("cache", a.Cache != nil).
		Bool("events", a.Publisher != nil).
		Msg("application initialized")
	return a, nil
}

// storeCheck pings MySQL and, after the first successful ping, migrates the
// schema and applies the seed. The gate opens only once both succeeded.
func storeCheck(db *gorm.DB, listings seed.Store, resetDB bool) readiness.PingFunc {
	ping := mysqlClient.Ping(db)
	var prepared atomic.Bool
	return func(ctx context.Context) error {
		if err := ping(ctx); err != nil {
			return err
		}
		if prepared.Load() {
			return nil
		}
		if err := mysqlClient.Migrate(db); err != nil {
			logging.With("bootstrap").Error().Err(err).Msg("prepare store failed")
			return err
		}
		if resetDB {
			if _, err := seed.Reset(context.WithoutCancel(ctx), listings); err != nil {
				logging.With("bootstrap").Error().Err(err).Msg("seed store failed")
				return err
			}
		}
		prepared.Store(true)
		return nil
	}
}

func (a *App) initMedia(ctx context.Context) error {
	switch a.Config.Media.Driver {
	case config.MediaS3:
		store, err := objectstore.NewS3(ctx, objectstore.S3Options{
			Endpoint:      a.Config.Media.Endpoint,
			Region:        a.Config.Media.Region,
			Bucket:        a.Config.Media.Bucket,
			AccessKey:     a.Config.Media.AccessKey,
			SecretKey:     a.Config.Media.SecretKey,
			PublicBaseURL: a.Config.Media.PublicBaseURL,
		})
		if err != nil {
			return err
		}
		a.Objects = store
	case config.MediaMemory:
		a.Objects = objectstore.NewMemory(a.Config.Media.PublicBaseURL)
	default:
		return fmt.Errorf("unknown media driver %q", a.Config.Media.Driver)
	}
	return nil
}

func (a *App) Close() error {
	var errs []error
	if a.Prober != nil {
		a.Prober.Close()
	}
	if a.EventWorker != nil {
		a.EventWorker.Close()
	}
	if a.MQConn != nil {
		if err := a.MQConn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close rabbitmq: %w", err))
		}
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close redis: %w", err))
		}
	}
	if a.MySQL != nil {
		sqlDB, err := a.MySQL.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				errs = append(errs, fmt.Errorf("close mysql: %w", err))
			}
		}
	}
	return errors.Join(errs...)
}
