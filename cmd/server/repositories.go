package main

import (
	"connectfitness/coach-api/internal/config"
	"connectfitness/coach-api/internal/repository"
	"connectfitness/coach-api/internal/repository/mongo"
	"connectfitness/coach-api/internal/repository/relational"
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	gormLogger "gorm.io/gorm/logger"
)

type repositories struct {
	users   repository.UserRepository
	clients repository.ClientRepository
	plans   repository.WorkoutPlanRepository
	close   func() error
}

// openRepositories connects the configured backend and prepares its schema or indexes.
func openRepositories(cfg config.DatabaseConfig, logger *zap.Logger) (*repositories, error) {
	switch cfg.Driver {
	case config.DriverMongo:
		client, err := mongo.ConnectDB(cfg.URI)
		if err != nil {
			return nil, fmt.Errorf("could not connect to MongoDB: %w", err)
		}
		db := client.Database(cfg.Name)

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			mongo.EnsureIndexes(ctx, db, logger)
		}()

		return &repositories{
			users:   mongo.NewMongoUserRepository(db),
			clients: mongo.NewMongoClientRepository(db),
			plans:   mongo.NewMongoWorkoutPlanRepository(db),
			close:   func() error { return mongo.DisconnectDB(client) },
		}, nil

	case config.DriverPostgres, config.DriverSQLite:
		db, err := relational.Open(cfg.Driver, cfg.URI, gormLogger.Warn)
		if err != nil {
			return nil, err
		}
		return &repositories{
			users:   relational.NewUserRepository(db),
			clients: relational.NewClientRepository(db),
			plans:   relational.NewWorkoutPlanRepository(db),
			close:   func() error { return relational.Close(db) },
		}, nil
	}
	return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
}
