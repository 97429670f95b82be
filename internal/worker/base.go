package worker

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// BaseWorker - общая часть воркеров: имя, consumer group и остановка
type BaseWorker struct {
	name          string
	consumerGroup string
	logger        *zap.Logger

	stopOnce sync.Once
	stop     chan struct{}
}

// NewBaseWorker создает новый BaseWorker
func NewBaseWorker(name, consumerGroup string, logger *zap.Logger) *BaseWorker {
	return &BaseWorker{
		name:          name,
		consumerGroup: consumerGroup,
		logger:        logger.With(zap.String("worker", name)),
		stop:          make(chan struct{}),
	}
}

func (w *BaseWorker) Name() string {
	return w.name
}

func (w *BaseWorker) ConsumerGroup() string {
	return w.consumerGroup
}

func (w *BaseWorker) Logger() *zap.Logger {
	return w.logger
}

// Stop идемпотентен
func (w *BaseWorker) Stop() error {
	w.stopOnce.Do(func() {
		w.logger.Info("Stopping worker")
		close(w.stop)
	})
	return nil
}

// IsStopped сообщает, вызывался ли Stop
func (w *BaseWorker) IsStopped() bool {
	select {
	case <-w.stop:
		return true
	default:
		return false
	}
}

// WithStop возвращает контекст, который отменяется и при отмене ctx, и при Stop
func (w *BaseWorker) WithStop(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(ctx)
	go func() {
		select {
		case <-w.stop:
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx, cancel
}
