package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PoolConfig struct {
	MaxConns          int
	MinConns          int
	HealthCheckPeriod time.Duration
	PoolTimeout       time.Duration
	RetryAttempts     int
	RetryDelay        time.Duration
	ApplicationName   string
}

func (c PoolConfig) apply(conf *pgxpool.Config) {
	conf.MaxConns = int32(c.MaxConns)
	conf.MinConns = int32(c.MinConns)
	conf.HealthCheckPeriod = c.HealthCheckPeriod
	conf.MaxConnLifetime = 30 * time.Minute
	conf.MaxConnIdleTime = 5 * time.Minute
	if c.ApplicationName != "" {
		conf.ConnConfig.RuntimeParams["application_name"] = c.ApplicationName
	}
	conf.ConnConfig.ConnectTimeout = c.PoolTimeout
}

// NewPool подключается к postgres с экспоненциальной задержкой между попытками.
func NewPool(ctx context.Context, dsn string, cfg PoolConfig, log *slog.Logger) (*pgxpool.Pool, error) {
	conf, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("не удалось распарсить DSN: %w", err)
	}
	cfg.apply(conf)

	attempts := max(cfg.RetryAttempts, 1)
	for i := 0; i < attempts; i++ {
		if i > 0 {
			select {
			case <-time.After(cfg.RetryDelay * time.Duration(1<<(i-1))):
			case <-ctx.Done():
				return nil, fmt.Errorf("подключение к базе данных прервано: %w", ctx.Err())
			}
		}

		var pool *pgxpool.Pool
		pool, err = pgxpool.NewWithConfig(ctx, conf)
		if err != nil {
			log.Warn("не удалось создать пул соединений",
				slog.Int("attempt", i+1),
				slog.Int("max_attempts", attempts),
				slog.String("error", err.Error()))
			continue
		}

		if err = pool.Ping(ctx); err != nil {
			log.Warn("ping БД не удался",
				slog.Int("attempt", i+1),
				slog.String("error", err.Error()))
			pool.Close()
			continue
		}

		log.Info("подключение к базе данных успешно")
		return pool, nil
	}

	return nil, fmt.Errorf("не удалось создать пул соединений после %d попыток: %w", attempts, err)
}
