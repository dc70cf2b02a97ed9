package config

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Connect opens a client against uri and verifies it with a ping.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping MongoDB: %w", err)
	}
	return client, nil
}

// NewMongoDatabase connects on construction and disconnects when the app stops.
func NewMongoDatabase(lc fx.Lifecycle, cfg *Config, logger *zap.Logger) (*mongo.Database, error) {
	client, err := Connect(context.Background(), cfg.MongoURI)
	if err != nil {
		return nil, err
	}
	logger.Info("connected to MongoDB", zap.String("database", cfg.MongoDB))

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			logger.Info("closing MongoDB connection")
			return client.Disconnect(ctx)
		},
	})
	return client.Database(cfg.MongoDB), nil
}

// EnsureIndexes creates the given indexes on collection. Existing indexes
// with identical definitions are left untouched by the server.
func EnsureIndexes(ctx context.Context, collection *mongo.Collection, models ...mongo.IndexModel) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := collection.Indexes().CreateMany(ctx, models); err != nil {
		return fmt.Errorf("create indexes on %s: %w", collection.Name(), err)
	}
	return nil
}
