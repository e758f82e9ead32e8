package notification

import (
	"context"
	"sync"
	"time"

	"bakehub/internal/metrics"

	"go.uber.org/zap"
)

// 1通あたりの送信タイムアウト
const sendTimeout = 30 * time.Second

// 固定数のworkerでメールを非同期に送る。
// キューが一杯なら捨ててログに残す。リクエストは待たせない。
type Dispatcher struct {
	mailer Mailer
	log    *zap.Logger
	queue  chan Message
	wg     sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

func NewDispatcher(mailer Mailer, log *zap.Logger, workers, queueSize int) *Dispatcher {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = 1
	}
	d := &Dispatcher{
		mailer: mailer,
		log:    log,
		queue:  make(chan Message, queueSize),
	}
	for i := 0; i < workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}
	return d
}

// Notifyはキューに積めたらtrue
func (d *Dispatcher) Notify(msg Message) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		metrics.NotificationsDropped.Inc()
		d.log.Warn("notification dropped: dispatcher closed", zap.String("to", msg.To), zap.String("subject", msg.Subject))
		return false
	}

	select {
	case d.queue <- msg:
		return true
	default:
		metrics.NotificationsDropped.Inc()
		d.log.Warn("notification dropped: queue full", zap.String("to", msg.To), zap.String("subject", msg.Subject))
		return false
	}
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for msg := range d.queue {
		d.deliver(msg)
	}
}

func (d *Dispatcher) deliver(msg Message) {
	defer func() {
		if r := recover(); r != nil {
			metrics.NotificationsFailed.Inc()
			d.log.Error("notification panic", zap.Any("panic", r), zap.String("to", msg.To))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	if err := d.mailer.Send(ctx, msg); err != nil {
		metrics.NotificationsFailed.Inc()
		d.log.Error("notification failed", zap.Error(err), zap.String("to", msg.To), zap.String("subject", msg.Subject))
	}
}

// Shutdownは受付を止め、残りを送り切るかctxが切れるまで待つ
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
