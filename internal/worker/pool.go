package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/team-tracker/internal/model"
	"github.com/BuzzLyutic/team-tracker/internal/repo"
)

// Sender delivers one assignment email.
type Sender interface {
	SendAssignment(d model.Delivery) error
}

// Pool mails "assigned" notifications to their recipients in the background.
type Pool struct {
	deliveries repo.DeliveryRepository
	sender     Sender
	logger     *zap.Logger
	count      int
	interval   time.Duration
	wg         sync.WaitGroup
	stop       chan struct{}
	stopOnce   sync.Once
}

func NewPool(deliveries repo.DeliveryRepository, sender Sender, logger *zap.Logger, count int, interval time.Duration) *Pool {
	if interval <= 0 {
		interval = time.Second
	}
	return &Pool{
		deliveries: deliveries,
		sender:     sender,
		logger:     logger,
		count:      count,
		interval:   interval,
		stop:       make(chan struct{}),
	}
}

func (p *Pool) Start(ctx context.Context) {
	p.logger.Info("Starting delivery workers", zap.Int("workers", p.count))

	for i := 0; i < p.count; i++ {
		p.wg.Add(1)
		go p.worker(ctx, i)
	}
}

func (p *Pool) Stop() {
	p.stopOnce.Do(func() {
		p.logger.Info("Stopping delivery workers...")
		close(p.stop)
		p.wg.Wait()
		p.logger.Info("Delivery workers stopped")
	})
}

func (p *Pool) worker(ctx context.Context, id int) {
	defer p.wg.Done()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-p.stop:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := p.processNext(ctx, id); err != nil && !errors.Is(err, repo.ErrorNotFound) {
				p.logger.Error("delivery error", zap.Int("worker", id), zap.Error(err))
			}
		}
	}
}

// processNext claims one pending delivery and sends it. A failed send is
// recorded and not retried.
func (p *Pool) processNext(ctx context.Context, workerID int) error {
	d, err := p.deliveries.ClaimNext(ctx)
	if err != nil {
		return err
	}

	p.logger.Debug("Delivering notification",
		zap.Int("worker", workerID),
		zap.String("notification_id", d.Notification.ID),
	)

	if sendErr := p.sender.SendAssignment(d); sendErr != nil {
		if err := p.deliveries.MarkFailed(ctx, d.Notification.ID, sendErr.Error()); err != nil {
			return errors.Join(sendErr, err)
		}
		return sendErr
	}
	return p.deliveries.MarkSent(ctx, d.Notification.ID)
}
