package cmd

import (
	"context"
	"fmt"

	"store/config"
	"store/domain/catalog"
	"store/infrastructure/persistence/mysql"
	"store/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func NewDatabaseConfig(cfg *config.Config) *mysql.Config {
	return &mysql.Config{
		Driver:          cfg.Database.Type,
		Path:            cfg.Database.Path,
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		Username:        cfg.Database.Username,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.Database,
		LogLevel:        cfg.Database.LogLevel,
		SlowQuery:       cfg.Database.SlowQuery,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}
}

// OpenDatabase connects, pings and, when configured, migrates the schema.
func OpenDatabase(ctx context.Context, cfg *config.Config) (*gorm.DB, error) {
	db, err := NewDatabaseConfig(cfg).Connect()
	if err != nil {
		return nil, err
	}
	if err := mysql.Ping(ctx, db); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if cfg.Database.AutoMigrate {
		if err := mysql.AutoMigrate(db); err != nil {
			return nil, fmt.Errorf("failed to auto migrate: %w", err)
		}
	}
	return db, nil
}

// seedCatalog fills an empty catalog so orders can be placed on a fresh database.
func seedCatalog(ctx context.Context, products catalog.Repository, seed []*catalog.Product) error {
	existing, err := products.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	for _, p := range seed {
		if err := products.Save(ctx, p); err != nil {
			return fmt.Errorf("seed product %s: %w", p.Title(), err)
		}
	}
	logger.Info("Catalog seeded", zap.Int("products", len(seed)))
	return nil
}
