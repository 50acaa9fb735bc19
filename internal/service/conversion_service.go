package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"currency-converter/internal/custom_err"
	"currency-converter/internal/kafka"
	"currency-converter/internal/metrics"
	"currency-converter/internal/models"
	"currency-converter/internal/storage/postgres"

	"github.com/shopspring/decimal"
)

type RateResolver interface {
	Rate(from, to string) (decimal.Decimal, error)
	Convert(amount, fee, rate decimal.Decimal) decimal.Decimal
}

type Conversion interface {
	Submit(ctx context.Context, req models.ConversionRequest) (int64, error)
	Result(ctx context.Context, id int64) (*models.ConversionResult, error)
	Page(ctx context.Context, page, size int, start, end *time.Time) (*models.ConversionPage, error)
}

type ConversionServiceConfig struct {
	Fee               decimal.Decimal
	Workers           int
	QueueSize         int
	CompletionTimeout time.Duration
	EventWorkers      int
	EventQueueSize    int
}

type completionJob struct {
	id     int64
	amount decimal.Decimal
	from   string
	to     string
}

// resolution carries the outcome of one completion step.
type resolution[T any] struct {
	value T
	err   error
}

func resolved[T any](v T) resolution[T]        { return resolution[T]{value: v} }
func unresolved[T any](err error) resolution[T] { return resolution[T]{err: err} }

type ConversionService struct {
	repo     postgres.ConversionRepository
	resolver RateResolver
	producer kafka.Producer
	metrics  *metrics.Metrics
	cfg      ConversionServiceConfig
	now      func() time.Time
	log      *slog.Logger

	// mu guards closed and the closing of both queues.
	mu         sync.RWMutex
	closed     bool
	jobs       chan completionJob
	events     chan models.ConversionCompletedEvent
	workersWg  sync.WaitGroup
	detachedWg sync.WaitGroup
	eventsWg   sync.WaitGroup
}

func NewConversionService(
	repo postgres.ConversionRepository,
	resolver RateResolver,
	producer kafka.Producer,
	m *metrics.Metrics,
	cfg ConversionServiceConfig,
	log *slog.Logger,
) *ConversionService {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.EventWorkers <= 0 {
		cfg.EventWorkers = 1
	}
	if cfg.CompletionTimeout <= 0 {
		cfg.CompletionTimeout = 30 * time.Second
	}

	svc := &ConversionService{
		repo:     repo,
		resolver: resolver,
		producer: producer,
		metrics:  m,
		cfg:      cfg,
		now:      time.Now,
		log:      log.With(slog.String("component", "conversion_service")),
		jobs:     make(chan completionJob, cfg.QueueSize),
		events:   make(chan models.ConversionCompletedEvent, cfg.EventQueueSize),
	}

	for i := 0; i < cfg.Workers; i++ {
		svc.workersWg.Add(1)
		go svc.completionWorker(i)
	}
	for i := 0; i < cfg.EventWorkers; i++ {
		svc.eventsWg.Add(1)
		go svc.kafkaWorker(i, svc.events)
	}

	return svc
}

func (s *ConversionService) completionWorker(id int) {
	defer s.workersWg.Done()
	s.log.Debug("completion worker started", slog.Int("worker_id", id))

	for job := range s.jobs {
		s.metrics.QueueDepth.Dec()
		s.runJob(job)
	}

	s.log.Debug("completion worker stopping", slog.Int("worker_id", id))
}

func (s *ConversionService) kafkaWorker(id int, events <-chan models.ConversionCompletedEvent) {
	defer s.eventsWg.Done()

	for event := range events {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := s.producer.SendConversionCompleted(ctx, event); err != nil {
			s.log.Error("kafka send failed",
				slog.Int("worker_id", id),
				slog.Int64("conversion_id", event.ConversionID),
				slog.String("error", err.Error()))
		}
		cancel()
	}
}

func (s *ConversionService) runJob(job completionJob) {
	defer func() {
		if p := recover(); p != nil {
			s.log.Error("panic during conversion completion",
				slog.Int64("conversion_id", job.id),
				slog.Any("panic", p))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.CompletionTimeout)
	defer cancel()

	s.Complete(ctx, job.id, job.amount, job.from, job.to)
}

// Submit stores a PENDING conversion and schedules its completion.
// The caller never waits for the rate to be resolved.
func (s *ConversionService) Submit(ctx context.Context, req models.ConversionRequest) (int64, error) {
	const op = "service.Submit"

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return 0, fmt.Errorf("%s: %w", op, custom_err.ErrShuttingDown)
	}

	c := models.NewPendingConversion(req.Amount, req.FromCurrency, req.ToCurrency, s.cfg.Fee, s.now())
	id, err := s.repo.Insert(ctx, c)
	if err != nil {
		return 0, fmt.Errorf("%s: %w: %w", op, custom_err.ErrInsertionFailed, err)
	}
	if id <= 0 {
		return 0, fmt.Errorf("%s: %w", op, custom_err.ErrInsertionFailed)
	}

	s.metrics.ConversionsSubmitted.Inc()
	s.log.Info("conversion submitted",
		slog.Int64("conversion_id", id),
		slog.String("from", req.FromCurrency),
		slog.String("to", req.ToCurrency),
		slog.String("amount", req.Amount.String()))

	s.schedule(completionJob{id: id, amount: req.Amount, from: req.FromCurrency, to: req.ToCurrency})
	return id, nil
}

// schedule must be called with mu read-locked.
func (s *ConversionService) schedule(job completionJob) {
	select {
	case s.jobs <- job:
		s.metrics.QueueDepth.Inc()
	default:
		s.log.Warn("очередь завершения переполнена, конвертация обрабатывается отдельной горутиной",
			slog.Int64("conversion_id", job.id))
		s.detachedWg.Add(1)
		go func() {
			defer s.detachedWg.Done()
			s.runJob(job)
		}()
	}
}

// Complete resolves the rate and result for a PENDING conversion and stores
// the outcome. It never returns an error: failures end in a FAILED write or a log line.
func (s *ConversionService) Complete(ctx context.Context, id int64, amount decimal.Decimal, from, to string) {
	start := time.Now()
	log := s.log.With(slog.Int64("conversion_id", id))

	rate := s.resolveRate(from, to)
	if rate.err != nil {
		s.fail(ctx, log, id, rate.err, start)
		return
	}

	result := s.resolveResult(amount, rate.value)

	record := s.fetch(ctx, id)
	if record.err != nil {
		if errors.Is(record.err, custom_err.ErrNotFound) {
			log.Error("conversion disappeared before completion", slog.String("error", record.err.Error()))
			return
		}
		s.fail(ctx, log, id, record.err, start)
		return
	}
	c := record.value

	if !c.Fee.Equal(s.cfg.Fee) {
		log.Warn("stored fee differs from configured fee",
			slog.String("stored", c.Fee.String()),
			slog.String("configured", s.cfg.Fee.String()))
	}

	if err := c.MarkDone(rate.value, result.value); err != nil {
		log.Warn("conversion already completed", slog.String("error", err.Error()))
		return
	}
	if err := s.repo.Update(ctx, c); err != nil {
		s.fail(ctx, log, id, err, start)
		return
	}

	log.Info("conversion done",
		slog.String("rate", rate.value.String()),
		slog.String("result", result.value.String()))
	s.finish(c, start)
}

func (s *ConversionService) resolveRate(from, to string) resolution[decimal.Decimal] {
	rate, err := s.resolver.Rate(from, to)
	if err != nil {
		return unresolved[decimal.Decimal](err)
	}
	return resolved(rate)
}

func (s *ConversionService) resolveResult(amount, rate decimal.Decimal) resolution[decimal.Decimal] {
	return resolved(s.resolver.Convert(amount, s.cfg.Fee, rate))
}

func (s *ConversionService) fetch(ctx context.Context, id int64) resolution[*models.Conversion] {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, custom_err.ErrNotFound) {
			return unresolved[*models.Conversion](&custom_err.RecordNotFoundError{ID: id})
		}
		return unresolved[*models.Conversion](err)
	}
	return resolved(c)
}

// fail is best effort: every error on this path is logged and dropped,
// leaving the record PENDING.
func (s *ConversionService) fail(ctx context.Context, log *slog.Logger, id int64, cause error, start time.Time) {
	log.Warn("conversion failed", slog.String("error", cause.Error()))

	record := s.fetch(ctx, id)
	if record.err != nil {
		log.Error("could not reload conversion to mark it FAILED", slog.String("error", record.err.Error()))
		return
	}
	c := record.value

	if err := c.MarkFailed(); err != nil {
		log.Error("could not mark conversion FAILED", slog.String("error", err.Error()))
		return
	}
	if err := s.repo.Update(ctx, c); err != nil {
		log.Error("could not persist FAILED status", slog.String("error", err.Error()))
		return
	}

	s.finish(c, start)
}

func (s *ConversionService) finish(c *models.Conversion, start time.Time) {
	s.metrics.ConversionsCompleted.WithLabelValues(string(c.Status)).Inc()
	s.metrics.CompletionDuration.Observe(time.Since(start).Seconds())
	s.publish(models.NewConversionCompletedEvent(c, s.now()))
}

func (s *ConversionService) publish(event models.ConversionCompletedEvent) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.events == nil {
		return
	}

	select {
	case s.events <- event:
	default:
		s.log.Error("очередь событий переполнена, событие отброшено",
			slog.Int64("conversion_id", event.ConversionID))
	}
}

func (s *ConversionService) Result(ctx context.Context, id int64) (*models.ConversionResult, error) {
	const op = "service.Result"

	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, custom_err.ErrNotFound) {
			return nil, &custom_err.RecordNotFoundError{ID: id}
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	res := c.ToResult()
	return &res, nil
}

func (s *ConversionService) Page(ctx context.Context, page, size int, start, end *time.Time) (*models.ConversionPage, error) {
	const op = "service.Page"

	if page < 0 || size < 0 {
		return nil, fmt.Errorf("%s: %w: page=%d size=%d", op, custom_err.ErrInvalidInput, page, size)
	}
	if size > 0 && page > math.MaxInt/size {
		return nil, fmt.Errorf("%s: %w: offset overflows for page=%d size=%d", op, custom_err.ErrInvalidInput, page, size)
	}

	tr := models.TimeRange{Start: start, End: end}
	list, err := s.repo.List(ctx, page*size, size, tr)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	total, err := s.repo.Count(ctx, tr)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	totalPages := 0
	if size > 0 {
		totalPages = int((total + int64(size) - 1) / int64(size))
	}

	conversions := make([]models.ConversionResult, 0, len(list))
	for _, c := range list {
		conversions = append(conversions, c.ToResult())
	}

	return &models.ConversionPage{
		Conversions:   conversions,
		Page:          page,
		Size:          size,
		TotalElements: total,
		TotalPages:    totalPages,
	}, nil
}

// Shutdown stops accepting submissions, lets the workers drain the queue and
// then flushes pending events. It returns ctx.Err() if the deadline passes first.
func (s *ConversionService) Shutdown(ctx context.Context) error {
	s.log.Info("shutting down conversion service")

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	close(s.jobs)
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.workersWg.Wait()
		s.detachedWg.Wait()

		s.mu.Lock()
		close(s.events)
		s.events = nil
		s.mu.Unlock()

		s.eventsWg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.log.Info("all conversion workers stopped")
		return nil
	case <-ctx.Done():
		s.log.Warn("shutdown timeout exceeded")
		return ctx.Err()
	}
}
