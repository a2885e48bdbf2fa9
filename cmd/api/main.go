package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/metinatakli/popcorn-palace/internal/app"
	"github.com/metinatakli/popcorn-palace/internal/repository"
	"github.com/metinatakli/popcorn-palace/internal/vcs"
)

var (
	version = vcs.Version()
)

func main() {
	_ = godotenv.Load()

	var cfg app.Config

	flag.IntVar(&cfg.Port, "port", envInt("PORT", 8080), "API server port")
	flag.StringVar(&cfg.Env, "env", env("ENV", "dev"), "Environment (dev|staging|prod)")

	flag.StringVar(&cfg.DB.DSN, "db-dsn", os.Getenv("DB_DSN"), "PostgreSQL DSN")
	flag.IntVar(&cfg.DB.MaxOpenConns, "db-max-open-conns", 25, "PostgreSQL max open connections")
	flag.DurationVar(&cfg.DB.MaxIdleTime, "db-max-idle-time", 15*time.Minute, "PostgreSQL max connection idle time")

	flag.StringVar(&cfg.Redis.URL, "redis-url", env("REDIS_URL", "localhost:6379"), "Redis address")
	flag.IntVar(&cfg.Redis.MaxOpenConns, "redis-max-open-conns", 25, "Redis max open connections")
	flag.IntVar(&cfg.Redis.MaxIdleConns, "redis-max-idle-conns", 25, "Redis max idle connections")
	flag.DurationVar(&cfg.Redis.MaxIdleTime, "redis-max-idle-time", 15*time.Minute, "Redis max connection idle time")

	flag.StringVar(&cfg.SeatLock.Backend, "seat-lock", env("SEAT_LOCK", app.SeatLockMemory), "Seat lock backend (memory|redis)")
	flag.DurationVar(&cfg.SeatLock.TTL, "seat-lock-ttl", 5*time.Second, "Lifetime of a redis seat lock")

	flag.BoolVar(&cfg.Events.Enabled, "events", os.Getenv("EVENTS_ENABLED") == "true", "Publish booking events to redis streams")
	flag.StringVar(&cfg.Events.TopicPrefix, "events-topic-prefix", "popcorn", "Prefix of event stream names")

	flag.StringVar(&cfg.OtelCollectorUrl, "otel-collector-url", os.Getenv("OTEL_COLLECTOR_URL"), "OpenTelemetry collector endpoint")

	migrate := flag.Bool("migrate", false, "Apply database migrations before starting")
	displayVersion := flag.Bool("version", false, "Display version and exit")

	flag.Parse()

	if *displayVersion {
		fmt.Printf("Version:\t%s\n", version)
		os.Exit(0)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	if cfg.SeatLock.Backend != app.SeatLockMemory && cfg.SeatLock.Backend != app.SeatLockRedis {
		logger.Error("unknown seat lock backend", "backend", cfg.SeatLock.Backend)
		os.Exit(1)
	}

	if *migrate {
		err := repository.RunMigrations(cfg.DB.DSN, "file://migrations")
		if err != nil {
			logger.Error(err.Error())
			os.Exit(1)
		}
	}

	err := app.Run(cfg)
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}

func env(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}

	return fallback
}

func envInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}

	return v
}
