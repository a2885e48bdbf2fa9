package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/exaring/otelpgx"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/popcorn-palace/internal/booking"
	"github.com/metinatakli/popcorn-palace/internal/domain"
	"github.com/metinatakli/popcorn-palace/internal/events"
	"github.com/metinatakli/popcorn-palace/internal/ledger"
	"github.com/metinatakli/popcorn-palace/internal/repository"
	appvalidator "github.com/metinatakli/popcorn-palace/internal/validator"
	"github.com/metinatakli/popcorn-palace/internal/vcs"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/bridges/otelslog"
)

const serviceName = "popcorn-palace-api"

var (
	version = vcs.Version()
)

const (
	SeatLockMemory = "memory"
	SeatLockRedis  = "redis"
)

type Config struct {
	Port int
	Env  string
	DB   struct {
		DSN          string
		MaxOpenConns int
		MaxIdleTime  time.Duration
	}
	Redis struct {
		URL          string
		MaxOpenConns int
		MaxIdleConns int
		MaxIdleTime  time.Duration
	}
	SeatLock struct {
		Backend string
		TTL     time.Duration
	}
	Events struct {
		Enabled     bool
		TopicPrefix string
	}
	OtelCollectorUrl string
}

func (c Config) needsRedis() bool {
	return c.SeatLock.Backend == SeatLockRedis || c.Events.Enabled
}

type Application struct {
	config    Config
	logger    *slog.Logger
	validator *validator.Validate
	service   *booking.Service
}

func NewApp(cfg Config, logger *slog.Logger, validator *validator.Validate, service *booking.Service) *Application {
	return &Application{
		config:    cfg,
		logger:    logger,
		validator: validator,
		service:   service,
	}
}

// Run wires the stores, the seat locker and the event publisher selected by
// cfg and serves the API until the process is signalled.
func Run(cfg Config) error {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	app := NewApp(cfg, logger, appvalidator.NewValidator(), nil)

	shutdownTelemetry, err := app.InitTelemetry()
	if err != nil {
		return err
	}
	defer shutdownTelemetry(context.Background())

	if cfg.OtelCollectorUrl != "" {
		app.logger = slog.New(NewMultiHandler(logger.Handler(), otelslog.NewHandler(serviceName)))
	}

	db, err := NewDatabasePool(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to postgres: %w", err)
	}
	defer db.Close()

	var (
		redisClient redis.UniversalClient
		locker      ledger.Locker         = ledger.NewKeyedMutex()
		publisher   domain.EventPublisher = events.NopPublisher{}
	)

	if cfg.needsRedis() {
		rdb, err := NewRedisClient(cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		defer rdb.Close()

		redisClient = rdb
	}

	if cfg.SeatLock.Backend == SeatLockRedis {
		locker = ledger.NewRedisLocker(redisClient, cfg.SeatLock.TTL, app.logger)
	}

	if cfg.Events.Enabled {
		pub, err := events.NewRedisPublisher(redisClient, cfg.Events.TopicPrefix, app.logger)
		if err != nil {
			return err
		}
		defer pub.Close()

		publisher = pub
	}

	app.service = booking.NewService(
		app.logger,
		app.validator,
		booking.Repositories{
			Movies:    repository.NewPostgresMovieRepository(db),
			Showtimes: repository.NewPostgresShowtimeRepository(db),
			Tickets:   repository.NewPostgresTicketRepository(db),
		},
		locker,
		publisher,
	)

	return app.run()
}

func NewRedisClient(cfg Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:            cfg.Redis.URL,
		MaxIdleConns:    cfg.Redis.MaxIdleConns,
		MaxActiveConns:  cfg.Redis.MaxOpenConns,
		ConnMaxIdleTime: cfg.Redis.MaxIdleTime,
	})

	err := errors.Join(redisotel.InstrumentTracing(rdb), redisotel.InstrumentMetrics(rdb))
	if err != nil {
		rdb.Close()
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = rdb.Ping(ctx).Err()
	if err != nil {
		rdb.Close()
		return nil, err
	}

	return rdb, nil
}

func NewDatabasePool(cfg Config) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(cfg.DB.DSN)
	if err != nil {
		return nil, err
	}

	config.MaxConnIdleTime = cfg.DB.MaxIdleTime
	config.MaxConns = int32(cfg.DB.MaxOpenConns)
	config.ConnConfig.Tracer = otelpgx.NewTracer()

	db, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = db.Ping(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func (app *Application) run() error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%d", app.config.Port),
		Handler:      app.Routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelDebug),
	}

	shutdownError := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		app.logger.Info("shutting down server", "signal", s.String())

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		shutdownError <- srv.Shutdown(ctx)
	}()

	app.logger.Info("starting server", "addr", srv.Addr, "env", app.config.Env, "seat_lock", app.config.SeatLock.Backend)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdownError
	if err != nil {
		return err
	}

	app.logger.Info("stopped server", "addr", srv.Addr)

	return nil
}
