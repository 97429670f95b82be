// Package worker запускает фоновые обработчики Redis Streams
// и останавливает их по сигналу.
package worker

import "context"

// Worker - фоновый обработчик. Start блокируется до Stop или отмены ctx.
type Worker interface {
	Start(ctx context.Context) error
	Stop() error
	Name() string
}
