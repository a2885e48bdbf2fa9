package integration_test

import (
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/popcorn-palace/internal/app"
	"github.com/metinatakli/popcorn-palace/internal/booking"
	"github.com/metinatakli/popcorn-palace/internal/events"
	"github.com/metinatakli/popcorn-palace/internal/ledger"
	"github.com/metinatakli/popcorn-palace/internal/repository"
	appvalidator "github.com/metinatakli/popcorn-palace/internal/validator"
	"github.com/redis/go-redis/v9"
)

type TestApp struct {
	App       *app.Application
	DB        *pgxpool.Pool
	Redis     *redis.Client
	publisher *events.Publisher
}

// newTestApp wires the real stores, the redis seat locker and the redis
// stream publisher, the same way a production instance with every backend
// enabled is wired.
func newTestApp(cfg app.Config) (*TestApp, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	validator := appvalidator.NewValidator()

	db, err := app.NewDatabasePool(cfg)
	if err != nil {
		return nil, err
	}

	redisClient, err := app.NewRedisClient(cfg)
	if err != nil {
		db.Close()
		return nil, err
	}

	publisher, err := events.NewRedisPublisher(redisClient, cfg.Events.TopicPrefix, logger)
	if err != nil {
		db.Close()
		redisClient.Close()
		return nil, err
	}

	service := booking.NewService(
		logger,
		validator,
		booking.Repositories{
			Movies:    repository.NewPostgresMovieRepository(db),
			Showtimes: repository.NewPostgresShowtimeRepository(db),
			Tickets:   repository.NewPostgresTicketRepository(db),
		},
		ledger.NewRedisLocker(redisClient, cfg.SeatLock.TTL, logger),
		publisher,
	)

	return &TestApp{
		App:       app.NewApp(cfg, logger, validator, service),
		DB:        db,
		Redis:     redisClient,
		publisher: publisher,
	}, nil
}

func (a *TestApp) Close() {
	a.publisher.Close()
	a.Redis.Close()
	a.DB.Close()
}
