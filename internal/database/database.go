package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"katalog/internal/config"
	"katalog/internal/repositories"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const connectTimeout = 10 * time.Second

// Store is an open product store.
type Store struct {
	Driver   string
	Products repositories.ProductRepository
	closeFn  func(context.Context) error
}

// Close releases the underlying connection.
func (s *Store) Close(ctx context.Context) error {
	if s.closeFn == nil {
		return nil
	}
	return s.closeFn(ctx)
}

// Open connects to the store selected by cfg.Driver and prepares its schema.
func Open(ctx context.Context, cfg config.Database) (*Store, error) {
	switch cfg.Driver {
	case config.DriverMongo:
		return openMongo(ctx, cfg)
	case config.DriverPostgres:
		return openGORM(ctx, cfg.Driver, postgres.Open(cfg.URL))
	case config.DriverSQLite:
		return openGORM(ctx, cfg.Driver, sqlite.Open(cfg.URL))
	case config.DriverMemory:
		return &Store{Driver: cfg.Driver, Products: repositories.NewMemoryProductRepository()}, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func openMongo(ctx context.Context, cfg config.Database) (*Store, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URL))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	repo := repositories.NewMongoProductRepository(client.Database(cfg.Name))
	if err := repo.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	slog.Info("MongoDB connected", "database", cfg.Name)
	return &Store{
		Driver:   cfg.Driver,
		Products: repo,
		closeFn:  client.Disconnect,
	}, nil
}

func openGORM(ctx context.Context, driver string, dialector gorm.Dialector) (*Store, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get %s connection pool: %w", driver, err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to ping %s: %w", driver, err)
	}

	repo := repositories.NewGORMProductRepository(db)
	if err := repo.Migrate(ctx); err != nil {
		sqlDB.Close()
		return nil, err
	}

	slog.Info("database connected", "driver", driver)
	return &Store{
		Driver:   driver,
		Products: repo,
		closeFn: func(context.Context) error {
			return sqlDB.Close()
		},
	}, nil
}
