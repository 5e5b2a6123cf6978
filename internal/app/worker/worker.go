package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	bookv1 "github.com/agrihedge/hedging-worker/internal/domain/book/v1"
	forecastv1 "github.com/agrihedge/hedging-worker/internal/domain/forecast/v1"
	jobreaderv1 "github.com/agrihedge/hedging-worker/internal/domain/job-reader/v1"
	lockv1 "github.com/agrihedge/hedging-worker/internal/domain/lock/v1"
	matchingv1 "github.com/agrihedge/hedging-worker/internal/domain/matching/v1"
	tradepublisherv1 "github.com/agrihedge/hedging-worker/internal/domain/trade-publisher/v1"
	"github.com/agrihedge/hedging-worker/internal/infrastructure/postgresql/trade"
	"github.com/agrihedge/hedging-worker/pkg/config"
	"github.com/agrihedge/hedging-worker/pkg/errors"
	"github.com/agrihedge/hedging-worker/pkg/logger"
	"github.com/agrihedge/hedging-worker/pkg/util"
)

// ErrLaneBusy is returned when another worker holds the commodity lane.
// The job is not committed so it can be retried.
var ErrLaneBusy = fmt.Errorf("commodity lane is busy")

// Worker consumes jobs from the queue and dispatches them by kind.
// matchOrders jobs run the matcher and persist the outcome; forecast
// jobs project a price band and cache it.
type Worker struct {
	jobReader      jobreaderv1.JobReader
	matcher        matchingv1.Matcher
	forecaster     forecastv1.Projector
	forecastStore  forecastv1.Store
	bookStore      bookv1.Store
	tradeRepo      trade.TradeRepository
	tradePublisher tradepublisherv1.TradePublisher
	lock           lockv1.CommodityLock
	logger         logger.Interface
	config         *config.Config

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	readBackoff time.Duration

	totalTrades int64
	tradesMutex sync.RWMutex
}

// NewWorker creates a new worker with the provided dependencies.
func NewWorker(
	jobReader jobreaderv1.JobReader,
	matcher matchingv1.Matcher,
	forecaster forecastv1.Projector,
	forecastStore forecastv1.Store,
	bookStore bookv1.Store,
	tradeRepo trade.TradeRepository,
	tradePublisher tradepublisherv1.TradePublisher,
	lock lockv1.CommodityLock,
	logger logger.Interface,
	config *config.Config,
) *Worker {
	return NewWorkerWithOptions(jobReader, matcher, forecaster, forecastStore, bookStore, tradeRepo, tradePublisher, lock, logger, config, DefaultOptions())
}

// NewWorkerWithOptions creates a new worker with custom options.
func NewWorkerWithOptions(
	jobReader jobreaderv1.JobReader,
	matcher matchingv1.Matcher,
	forecaster forecastv1.Projector,
	forecastStore forecastv1.Store,
	bookStore bookv1.Store,
	tradeRepo trade.TradeRepository,
	tradePublisher tradepublisherv1.TradePublisher,
	lock lockv1.CommodityLock,
	logger logger.Interface,
	config *config.Config,
	options *Options,
) *Worker {
	return &Worker{
		jobReader:      jobReader,
		matcher:        matcher,
		forecaster:     forecaster,
		forecastStore:  forecastStore,
		bookStore:      bookStore,
		tradeRepo:      tradeRepo,
		tradePublisher: tradePublisher,
		lock:           lock,
		logger:         logger,
		config:         config,

		readBackoff: options.ReadBackoff,
	}
}

// Start launches the job processing loop.
func (w *Worker) Start(ctx context.Context) error {
	w.ctx, w.cancel = context.WithCancel(ctx)

	w.wg.Add(1)
	go w.runJobProcessor()

	w.logger.Info("Worker started", logger.Field{
		Key:   "commodity",
		Value: w.config.Commodity,
	})

	return nil
}

// Stop gracefully shuts down the worker.
func (w *Worker) Stop(ctx context.Context) error {
	if w.cancel != nil {
		w.cancel()
	}

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		w.logger.Info("Worker stopped gracefully")
		return nil
	case <-ctx.Done():
		w.logger.Warn("Worker stop timeout exceeded")
		return ctx.Err()
	}
}

// runJobProcessor reads, processes, and commits jobs one at a time.
// A job is committed only after it fully succeeds, so a failed batch
// leaves the queue position untouched.
func (w *Worker) runJobProcessor() {
	defer w.wg.Done()

	w.logger.Info("Starting job processor", logger.Field{
		Key:   "commodity",
		Value: w.config.Commodity,
	})

	for {
		select {
		case <-w.ctx.Done():
			w.logger.Info("Job processor shutting down")
			w.jobReader.Close()
			return
		default:
			msg, envelope, err := w.jobReader.ReadMessage(w.ctx)
			if err != nil {
				w.logger.ErrorContext(w.ctx, err, logger.Field{
					Key:   "action",
					Value: "read_job_message",
				})
				time.Sleep(w.readBackoff)
				continue
			}

			jobCtx := util.WithJobID(w.ctx, "")

			if err := w.processJob(jobCtx, envelope); err != nil {
				w.logger.ErrorContext(jobCtx, err, logger.Field{
					Key:   "action",
					Value: "process_job",
				}, logger.Field{
					Key:   "kind",
					Value: envelope.Kind,
				})
				continue
			}

			if err := w.jobReader.CommitMessages(jobCtx, msg); err != nil {
				w.logger.ErrorContext(jobCtx, err, logger.Field{
					Key:   "action",
					Value: "commit_job_message",
				})
			}
		}
	}
}

// processJob dispatches a job by its kind.
func (w *Worker) processJob(ctx context.Context, envelope *jobreaderv1.Envelope) error {
	switch envelope.Kind {
	case jobreaderv1.KindMatchOrders:
		return w.processMatchBatch(ctx, envelope)
	case jobreaderv1.KindForecast:
		return w.processForecast(ctx, envelope)
	default:
		return errors.NewErrorDetails(
			fmt.Sprintf("unknown job kind %q", envelope.Kind),
			string(errors.UnknownJobKindError),
			"kind",
		)
	}
}

// processMatchBatch crosses one batch of orders under the lane lease,
// persists the trades and the residual book, then publishes the trade
// events. Any failure before the commit leaves nothing published.
func (w *Worker) processMatchBatch(ctx context.Context, envelope *jobreaderv1.Envelope) error {
	commodity := w.commodityFor(envelope)

	acquired, err := w.lock.Acquire(ctx, commodity)
	if err != nil {
		return err
	}
	if !acquired {
		w.logger.WarnContext(ctx, "Commodity lane is busy, skipping batch", logger.Field{
			Key:   "commodity",
			Value: commodity,
		})
		return ErrLaneBusy
	}
	defer func() {
		if err := w.lock.Release(ctx, commodity); err != nil {
			w.logger.ErrorContext(ctx, err, logger.Field{
				Key:   "action",
				Value: "release_lane",
			})
		}
	}()

	batchID := ulid.Make().String()

	result, err := w.matcher.Match(envelope.Orders)
	if err != nil {
		w.logger.ErrorContext(ctx, err,
			logger.Field{Key: "commodity", Value: commodity},
			logger.Field{Key: "batchId", Value: batchID},
		)
		return err
	}

	records := make([]*trade.Trade, 0, len(result.Trades))
	events := make([]*tradepublisherv1.TradeEventPayload, 0, len(result.Trades))
	for _, match := range result.Trades {
		tradeID := ulid.Make().String()
		records = append(records, trade.FromMatch(tradeID, batchID, commodity, match))
		events = append(events, tradepublisherv1.CreateFromTrade(tradeID, batchID, commodity, match))
	}

	if len(records) > 0 {
		if err := w.tradeRepo.StoreBatch(ctx, records); err != nil {
			return err
		}
	}

	book := &bookv1.ResidualBook{
		Commodity: commodity,
		Orders:    result.ResidualOrders,
		BatchID:   batchID,
		UpdatedAt: time.Now().UTC(),
	}
	if err := w.bookStore.Store(ctx, book); err != nil {
		return err
	}

	for _, event := range events {
		if err := w.tradePublisher.PublishTradeEvent(ctx, event); err != nil {
			return err
		}
	}

	w.logTrades(ctx, commodity, batchID, result)

	return nil
}

// processForecast projects a price band and caches it per commodity.
func (w *Worker) processForecast(ctx context.Context, envelope *jobreaderv1.Envelope) error {
	commodity := w.commodityFor(envelope)

	points := w.forecaster.Project(envelope.History, envelope.HorizonDays)

	result := &forecastv1.Result{
		Commodity:   commodity,
		Forecast:    points,
		GeneratedAt: time.Now().UTC(),
	}

	if err := w.forecastStore.Store(ctx, result); err != nil {
		return err
	}

	w.logger.InfoContext(ctx, "Forecast generated",
		logger.Field{Key: "commodity", Value: commodity},
		logger.Field{Key: "points", Value: len(points)},
	)

	return nil
}

// commodityFor prefers the job's commodity and falls back to the lane
// this worker is configured for.
func (w *Worker) commodityFor(envelope *jobreaderv1.Envelope) string {
	if envelope.Commodity != "" {
		return envelope.Commodity
	}
	return w.config.Commodity
}

// logTrades logs the batch outcome and updates statistics.
func (w *Worker) logTrades(ctx context.Context, commodity, batchID string, result *matchingv1.Result) {
	w.tradesMutex.Lock()
	w.totalTrades += int64(len(result.Trades))
	currentTotal := w.totalTrades
	w.tradesMutex.Unlock()

	w.logger.InfoContext(ctx, "Batch matched",
		logger.Field{Key: "commodity", Value: commodity},
		logger.Field{Key: "batchId", Value: batchID},
		logger.Field{Key: "tradeCount", Value: len(result.Trades)},
		logger.Field{Key: "residualCount", Value: len(result.ResidualOrders)},
		logger.Field{Key: "totalTrades", Value: currentTotal},
	)
}

// GetTotalTrades returns the total number of trades processed.
func (w *Worker) GetTotalTrades() int64 {
	w.tradesMutex.RLock()
	defer w.tradesMutex.RUnlock()
	return w.totalTrades
}
