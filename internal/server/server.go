// Package server defines the Server container that owns the service's
// long-lived dependencies and the HTTP server lifecycle:
//
//   - configuration
//   - logger and the optional New Relic service
//   - the storage connection selected by storage.driver (MongoDB or PostgreSQL)
//   - the Redis client and the background job service built on it
//   - the http.Server
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/deppfellow/contacts-api/internal/config"
	"github.com/deppfellow/contacts-api/internal/database"
	"github.com/deppfellow/contacts-api/internal/lib/job"
	"github.com/newrelic/go-agent/v3/integrations/nrredis-v9"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	loggerPkg "github.com/deppfellow/contacts-api/internal/logger"
)

// Server is the application container. It is not the HTTP server itself.
type Server struct {
	Config        *config.Config
	Logger        *zerolog.Logger
	LoggerService *loggerPkg.LoggerService

	// DB is set when storage.driver is postgres.
	DB *database.Database

	// Mongo is set when storage.driver is mongo.
	Mongo *database.MongoDatabase

	// Redis and Job are nil when no Redis address is configured.
	Redis *redis.Client
	Job   *job.JobService

	httpServer *http.Server
}

// New opens the storage connection for the configured driver, connects Redis
// and starts the background job workers.
//
// A storage failure aborts startup. Redis is optional: when it is not
// configured the service runs without background jobs, and when it is
// configured but unreachable the failure is logged and startup continues.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) (*Server, error) {
	server := &Server{
		Config:        cfg,
		Logger:        logger,
		LoggerService: loggerService,
	}

	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		db, err := database.New(cfg, logger, loggerService)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		server.DB = db
	case config.DriverMongo:
		mongoDB, err := database.NewMongo(cfg, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize mongo: %w", err)
		}
		server.Mongo = mongoDB
	case config.DriverMemory:
		logger.Warn().Msg("using in-memory contact storage, data is lost on restart")
	}

	if cfg.Redis.Address == "" {
		logger.Info().Msg("redis address not configured, background jobs disabled")
		return server, nil
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.Redis.Address,
	})
	if loggerService.GetApplication() != nil {
		redisClient.AddHook(nrredis.NewHook(redisClient.Options()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Error().Err(err).Msg("failed to connect to Redis, continuing without Redis")
	}
	server.Redis = redisClient

	jobService := job.NewJobService(logger, cfg)
	jobService.InitHandlers(cfg, logger)
	if err := jobService.Start(); err != nil {
		return nil, fmt.Errorf("failed to start job service: %w", err)
	}
	server.Job = jobService

	return server, nil
}

// SetupHTTPServer configures the http.Server around handler. Config timeouts
// are seconds.
func (s *Server) SetupHTTPServer(handler http.Handler) {
	s.httpServer = &http.Server{
		Addr:         ":" + s.Config.Server.Port,
		Handler:      handler,
		ReadTimeout:  time.Duration(s.Config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.Config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.Config.Server.IdleTimeout) * time.Second,
	}
}

// Start runs the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	if s.httpServer == nil {
		return errors.New("HTTP server not initialized")
	}

	s.Logger.Info().
		Str("port", s.Config.Server.Port).
		Str("env", s.Config.Primary.Env).
		Str("storage", s.Config.Storage.Driver).
		Msg("starting server")

	return s.httpServer.ListenAndServe()
}

// Shutdown stops the HTTP server, then the job workers, then closes the
// storage and Redis connections.
func (s *Server) Shutdown(ctx context.Context) error {
	var errs []error

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to shutdown HTTP server: %w", err))
		}
	}

	if s.Job != nil {
		s.Job.Stop()
	}

	if s.DB != nil {
		if err := s.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database connection: %w", err))
		}
	}

	if s.Mongo != nil {
		if err := s.Mongo.Close(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to close mongo connection: %w", err))
		}
	}

	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close redis client: %w", err))
		}
	}

	s.LoggerService.Shutdown()

	return errors.Join(errs...)
}
