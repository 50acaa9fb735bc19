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

	"currency-converter/internal/api/handlers"
	"currency-converter/internal/api/middlew"
	"currency-converter/internal/config"
	"currency-converter/internal/db"
	"currency-converter/internal/kafka"
	"currency-converter/internal/metrics"
	"currency-converter/internal/rates"
	"currency-converter/internal/server"
	"currency-converter/internal/service"
	"currency-converter/internal/storage/memory"
	"currency-converter/internal/storage/postgres"
	"currency-converter/migrations"
	"currency-converter/pkg/logger"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
)

type App struct {
	log               *slog.Logger
	server            *server.Server
	pool              *pgxpool.Pool
	logFile           *os.File
	cfg               *config.Config
	metrics           *metrics.Metrics
	repo              postgres.ConversionRepository
	kafkaProducer     kafka.Producer
	rateTable         *rates.Table
	refresher         *rates.Refresher
	stopRefresher     context.CancelFunc
	refresherDone     chan struct{}
	ratesService      service.Rates
	conversionService *service.ConversionService
}

func NewApp() (*App, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, fmt.Errorf("ошибка инициализации конфига: %w", err)
	}

	loggerWithFile := logger.NewLoggerWithFile(cfg.Log.File, logger.ParseLevel(cfg.Log.Level))
	log := loggerWithFile.Logger
	log.Info("инициализация приложения")
	log.Info("конфигурация загружена",
		slog.String("port", cfg.HTTPPort),
		slog.String("storage", cfg.Storage.Driver),
		slog.String("base_currency", cfg.Conversion.BaseCurrency),
		slog.String("fee", cfg.Conversion.Fee.String()))

	a := &App{
		log:     log,
		logFile: loggerWithFile.LogFile,
		cfg:     cfg,
		metrics: metrics.New(),
	}

	if err := a.initStorage(); err != nil {
		return nil, err
	}

	if cfg.Kafka.Enabled {
		log.Info("инициализация kafka producer", slog.Any("brokers", cfg.Kafka.Brokers))
		a.kafkaProducer, err = kafka.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, log)
		if err != nil {
			return nil, fmt.Errorf("ошибка инициализации kafka: %w", err)
		}
	} else {
		log.Info("kafka отключен в конфигурации")
		a.kafkaProducer = kafka.NewNoOpProducer(log)
	}

	srv := server.NewServer(cfg.HTTPPort)
	log.Info("сервер инициализирован", slog.String("port", cfg.HTTPPort))
	srv.Router.Use(middleware.RequestID)
	srv.Router.Use(middlew.WithLogger(log))
	srv.Router.Use(middleware.RealIP)
	srv.Router.Use(middleware.Recoverer)
	srv.RegisterSwagger()
	srv.RegisterHealth()
	srv.RegisterMetrics(a.metrics.Handler())
	a.server = srv

	return a, nil
}

func (a *App) initStorage() error {
	if a.cfg.Storage.Driver == config.StorageDriverMemory {
		a.log.Warn("используется хранилище в памяти, данные не переживут перезапуск")
		a.repo = memory.NewConversionStore()
		return nil
	}

	a.log.Info("выполнение миграций базы данных")
	if err := db.RunMigrations(a.cfg.DB.MigrationURL(), migrations.FS, a.log); err != nil {
		return fmt.Errorf("ошибка выполнения миграций: %w", err)
	}
	a.log.Info("миграции успешно применены")

	poolCfg := db.PoolConfig{
		MaxConns:          20,
		MinConns:          2,
		HealthCheckPeriod: 30 * time.Second,
		PoolTimeout:       5 * time.Second,
		RetryAttempts:     5,
		RetryDelay:        1 * time.Second,
		ApplicationName:   "currency-converter",
	}

	pool, err := db.NewPool(context.Background(), a.cfg.DB.DSN(), poolCfg, a.log)
	if err != nil {
		return fmt.Errorf("не удалось подключиться к базе данных: %w", err)
	}
	a.log.Info("подключение к базе данных установлено")

	a.pool = pool
	a.repo = postgres.NewConversionRepository(pool)
	return nil
}

// BuildRatesLayer создает таблицу курсов, синхронно загружает первое поколение
// и запускает периодическое обновление.
func (a *App) BuildRatesLayer() {
	a.rateTable = rates.NewTable(a.cfg.Conversion.BaseCurrency, a.log)

	fetcher := rates.NewECBClient(a.cfg.Rates.ECBURL, a.cfg.Rates.FetchTimeout, a.cfg.Rates.InsecureTLS, a.log)
	if a.cfg.Rates.InsecureTLS {
		a.log.Warn("проверка TLS сертификата источника курсов отключена")
	}
	a.refresher = rates.NewRefresher(a.rateTable, fetcher, a.cfg.Rates.RefreshInterval, a.cfg.Rates.FetchTimeout, a.metrics, a.log)

	a.log.Info("первичная загрузка курсов")
	if snap, err := a.refresher.Refresh(context.Background()); err != nil {
		a.log.Error("первичная загрузка курсов не удалась, конвертации будут FAILED до следующего обновления",
			slog.String("error", err.Error()))
	} else {
		a.log.Info("курсы загружены",
			slog.Uint64("generation", snap.Generation()),
			slog.Int("currencies", snap.Len()))
	}

	ctx, cancel := context.WithCancel(context.Background())
	a.stopRefresher = cancel
	a.refresherDone = make(chan struct{})
	go func() {
		defer close(a.refresherDone)
		a.refresher.Loop(ctx)
	}()

	a.ratesService = service.NewRatesService(a.rateTable, a.refresher)
	ratesHandler := handlers.NewRatesHandler(a.ratesService)

	a.server.Router.Get("/api/rates", ratesHandler.GetRates)

	a.log.Info("слой 'rates' собран и маршруты зарегистрированы",
		slog.String("source", a.cfg.Rates.ECBURL),
		slog.Duration("interval", a.cfg.Rates.RefreshInterval))
}

func (a *App) BuildConversionLayer() error {
	if a.rateTable == nil {
		err := errors.New("rate table not initialized, call BuildRatesLayer first")
		a.log.Error(err.Error())
		return err
	}

	a.conversionService = service.NewConversionService(
		a.repo,
		rates.NewResolver(a.rateTable),
		a.kafkaProducer,
		a.metrics,
		service.ConversionServiceConfig{
			Fee:               a.cfg.Conversion.Fee,
			Workers:           a.cfg.Conversion.Workers,
			QueueSize:         a.cfg.Conversion.QueueSize,
			CompletionTimeout: a.cfg.Conversion.CompletionTimeout,
			EventWorkers:      2,
			EventQueueSize:    a.cfg.Conversion.QueueSize,
		},
		a.log,
	)

	conversionHandler := handlers.NewConversionHandler(a.conversionService)

	a.server.Router.Route("/api/conversion", func(r chi.Router) {
		r.Post("/", conversionHandler.Submit)
		r.Get("/page", conversionHandler.Page)
		r.Get("/{id}", conversionHandler.GetByID)
	})

	a.log.Info("слой 'conversion' собран и маршруты зарегистрированы",
		slog.Int("workers", a.cfg.Conversion.Workers),
		slog.Int("queue_size", a.cfg.Conversion.QueueSize))
	return nil
}

func (a *App) BuildAdminLayer() error {
	if !a.cfg.Admin.AdminEnabled() {
		a.log.Info("ADMIN_PASSWORD_HASH или JWT_SECRET не заданы, админские маршруты отключены")
		return nil
	}
	if a.ratesService == nil {
		err := errors.New("ratesService not initialized, call BuildRatesLayer first")
		a.log.Error(err.Error())
		return err
	}

	authService := service.NewAuthService(
		a.cfg.Admin.PasswordHash,
		a.cfg.Admin.JWTSecret,
		a.cfg.Admin.JWTExpiration,
		a.log,
	)
	adminHandler := handlers.NewAdminHandler(authService)
	ratesHandler := handlers.NewRatesHandler(a.ratesService)

	a.server.Router.Post("/api/admin/login", adminHandler.Login)
	a.server.Router.Group(func(r chi.Router) {
		r.Use(middlew.RequireAdmin(authService))
		r.Post("/api/admin/rates/refresh", ratesHandler.Refresh)
	})

	a.log.Info("слой 'admin' собран и маршруты зарегистрированы")
	return nil
}

func (a *App) Run() error {
	a.log.Info("сервер запускается")

	serverErr := make(chan error, 1)
	go func() {
		if err := a.server.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- fmt.Errorf("ошибка запуска сервера: %w", err)
		}
	}()

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	var runErr error
	select {
	case runErr = <-serverErr:
		a.log.Error("сервер завершился с ошибкой", slog.String("error", runErr.Error()))
	case sig := <-shutdownChan:
		a.log.Info("получен сигнал завершения", slog.String("signal", sig.String()))
	}

	a.shutdown()
	return runErr
}

func (a *App) shutdown() {
	a.log.Info("приложение останавливается")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		a.log.Error("ошибка при остановке http сервера", slog.String("error", err.Error()))
	}

	if a.stopRefresher != nil {
		a.log.Info("остановка обновления курсов")
		a.stopRefresher()
		select {
		case <-a.refresherDone:
		case <-ctx.Done():
			a.log.Warn("обновление курсов не остановилось вовремя")
		}
	}

	if a.conversionService != nil {
		a.log.Info("остановка conversion service")
		if err := a.conversionService.Shutdown(ctx); err != nil {
			a.log.Error("ошибка при остановке conversion service", slog.String("error", err.Error()))
		}
	}

	if a.kafkaProducer != nil {
		a.log.Info("закрытие kafka producer")
		if err := a.kafkaProducer.Close(); err != nil {
			a.log.Error("ошибка при закрытии kafka producer", slog.String("error", err.Error()))
		}
	}

	if a.pool != nil {
		a.log.Info("закрытие соединения с базой данных")
		a.pool.Close()
	}

	a.log.Info("приложение остановлено")
	if a.logFile != nil {
		if err := a.logFile.Close(); err != nil {
			a.log.Error("ошибка при закрытии файла логов", slog.String("error", err.Error()))
		}
	}
}
