// Package collarstats считает пересчёты map collar по событиям из Redis Stream.
package collarstats

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/geogrid-service/internal/domain"
	"github.com/geogrid-service/internal/domain/repository"
	"github.com/geogrid-service/internal/worker"
)

const workerName = "collar-stats"

var _ worker.Worker = (*Worker)(nil)

// Recorder учитывает событие пересчёта collar
type Recorder interface {
	RecordCollarUpdate(ctx context.Context, event *domain.CollarUpdatedEvent) error
}

// Worker читает stream:geogrid:collar и обновляет счётчики
type Worker struct {
	*worker.BaseWorker
	streamRepo   repository.StreamRepository
	recorder     Recorder
	consumerName string
}

// NewWorker создает новый Worker
func NewWorker(
	streamRepo repository.StreamRepository,
	recorder Recorder,
	consumerGroup string,
	logger *zap.Logger,
) *Worker {
	hostname, _ := os.Hostname()

	return &Worker{
		BaseWorker:   worker.NewBaseWorker(workerName, consumerGroup, logger),
		streamRepo:   streamRepo,
		recorder:     recorder,
		consumerName: fmt.Sprintf("%s-%d", hostname, os.Getpid()),
	}
}

// Start запускает воркер и блокируется до Stop или отмены ctx
func (w *Worker) Start(ctx context.Context) error {
	logger := w.Logger().With(
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName),
	)
	logger.Info("Starting collar stats worker")

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamCollarUpdated, w.ConsumerGroup()); err != nil {
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	ctx, cancel := w.WithStop(ctx)
	defer cancel()

	messages, err := w.streamRepo.ConsumeStream(ctx, domain.StreamCollarUpdated, w.ConsumerGroup(), w.consumerName)
	if err != nil {
		return fmt.Errorf("failed to consume stream: %w", err)
	}

	for msg := range messages {
		w.handle(ctx, msg)
	}

	logger.Info("Collar stats worker stopped")
	return nil
}

// handle обрабатывает одно сообщение. Битые сообщения подтверждаются,
// чтобы не застревать в pending; при ошибке учёта сообщение остаётся pending.
func (w *Worker) handle(ctx context.Context, msg domain.StreamMessage) {
	logger := w.Logger()

	var event domain.CollarUpdatedEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		logger.Warn("Failed to parse collar event, skipping",
			zap.String("message_id", msg.ID),
			zap.Error(err))
		w.ack(ctx, msg.ID)
		return
	}

	if err := w.recorder.RecordCollarUpdate(ctx, &event); err != nil {
		logger.Error("Failed to record collar event",
			zap.String("message_id", msg.ID),
			zap.String("session_id", event.SessionID.String()),
			zap.Error(err))
		return
	}

	w.ack(ctx, msg.ID)
	logger.Debug("Collar event recorded",
		zap.String("message_id", msg.ID),
		zap.String("stats_key", event.StatsKey()),
		zap.String("reason", event.Reason))
}

func (w *Worker) ack(ctx context.Context, id string) {
	if err := w.streamRepo.AckMessage(ctx, domain.StreamCollarUpdated, w.ConsumerGroup(), id); err != nil {
		w.Logger().Warn("Failed to ack collar event", zap.String("message_id", id), zap.Error(err))
	}
}
