package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"fleetdelivery/internal/adapters/out/events"
	"fleetdelivery/internal/adapters/out/lock"
	"fleetdelivery/internal/adapters/out/postgres"
	"fleetdelivery/internal/adapters/out/references"
	"fleetdelivery/internal/pkg/clock"

	"github.com/hibiken/asynq"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const pingTimeout = 5 * time.Second

// OpenDatabase opens a lib/pq pool, hands it to GORM and, when configured,
// migrates the schema.
func OpenDatabase(cfg DBConfig) (*gorm.DB, error) {
	sqlDB, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err = sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	db, err := gorm.Open(gorm_postgres.New(gorm_postgres.Config{Conn: sqlDB}), &gorm.Config{TranslateError: true})
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("error initializing gorm: %w", err)
	}

	if cfg.AutoMigrate {
		if err = postgres.Migrate(db); err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("error migrating schema: %w", err)
		}
	}
	return db, nil
}

// BuildDependencies connects the optional Redis and queue backends and
// returns the collaborators plus a func that releases them.
func BuildDependencies(cfg Config, db *gorm.DB, logger *zap.Logger) (Dependencies, func(), error) {
	deps := Dependencies{
		DB:         db,
		Locker:     lock.NewLocalLocker(cfg.Lock.WaitTimeout),
		References: references.AcceptAll{},
		Publisher:  events.NewLogPublisher(logger),
		Clock:      clock.System{},
		Logger:     logger,
	}
	var closers []func() error

	if cfg.Redis.Enabled {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
		err := client.Ping(ctx).Err()
		cancel()
		if err != nil {
			_ = client.Close()
			return Dependencies{}, nil, fmt.Errorf("error connecting to redis: %w", err)
		}
		closers = append(closers, client.Close)

		deps.Locker = lock.NewRedisLocker(client, lock.RedisOptions{
			Prefix:      cfg.Redis.Prefix,
			Lease:       cfg.Lock.Lease,
			WaitTimeout: cfg.Lock.WaitTimeout,
		}, logger)
		deps.References = references.NewRedisReferenceChecker(client, cfg.Redis.Prefix)
		logger.Info("redis lock and reference checker enabled", zap.String("addr", cfg.Redis.Addr))
	} else {
		logger.Warn("redis disabled: using in-process locks and accepting every reference")
	}

	if cfg.Queue.Enabled {
		client := asynq.NewClient(asynq.RedisClientOpt{
			Addr:     cfg.Queue.Addr,
			Password: cfg.Queue.Password,
			DB:       cfg.Queue.DB,
		})
		closers = append(closers, client.Close)
		deps.Publisher = events.NewAsynqEventPublisher(client, cfg.Queue.Name, logger)
		logger.Info("status events enqueued to asynq", zap.String("queue", cfg.Queue.Name))
	}

	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				logger.Warn("error closing backend", zap.Error(err))
			}
		}
	}
	return deps, cleanup, nil
}
