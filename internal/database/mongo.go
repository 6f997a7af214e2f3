package database

import (
	"context"
	"fmt"
	"time"

	"github.com/deppfellow/contacts-api/internal/config"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/event"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoDatabase wraps the MongoDB client and the configured database.
type MongoDatabase struct {
	Client *mongo.Client
	db     *mongo.Database
	log    *zerolog.Logger
}

// NewMongo connects to MongoDB and pings the primary.
//
// Commands slower than the observability slow query threshold are logged at
// warn level.
func NewMongo(cfg *config.Config, logger *zerolog.Logger) (*MongoDatabase, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Mongo.ConnectTimeout)
	defer cancel()

	clientOptions := options.Client().
		ApplyURI(cfg.Mongo.URI).
		SetConnectTimeout(cfg.Mongo.ConnectTimeout).
		SetAppName(config.ServiceName)

	if cfg.Observability != nil && cfg.Observability.Logging.SlowQueryThreshold > 0 {
		clientOptions.SetMonitor(slowCommandMonitor(logger, cfg.Observability.Logging.SlowQueryThreshold))
	}

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	logger.Info().Str("database", cfg.Mongo.Name).Msg("connected to mongo")

	return &MongoDatabase{
		Client: client,
		db:     client.Database(cfg.Mongo.Name),
		log:    logger,
	}, nil
}

// Collection returns a handle to the named collection.
func (m *MongoDatabase) Collection(name string) *mongo.Collection {
	return m.db.Collection(name)
}

// Close disconnects the client.
func (m *MongoDatabase) Close(ctx context.Context) error {
	m.log.Info().Msg("closing mongo connection")
	return m.Client.Disconnect(ctx)
}

func slowCommandMonitor(logger *zerolog.Logger, threshold time.Duration) *event.CommandMonitor {
	return &event.CommandMonitor{
		Succeeded: func(_ context.Context, evt *event.CommandSucceededEvent) {
			if evt.Duration >= threshold {
				logger.Warn().
					Str("command", evt.CommandName).
					Str("database", evt.DatabaseName).
					Dur("duration", evt.Duration).
					Msg("slow mongo command")
			}
		},
		Failed: func(_ context.Context, evt *event.CommandFailedEvent) {
			logger.Error().
				Str("command", evt.CommandName).
				Str("database", evt.DatabaseName).
				Dur("duration", evt.Duration).
				Str("failure", evt.Failure).
				Msg("mongo command failed")
		},
	}
}
