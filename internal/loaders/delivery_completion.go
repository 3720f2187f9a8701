package loaders

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/STaninnat/orders/internal/config"
	"github.com/STaninnat/orders/internal/saga"
	"github.com/STaninnat/orders/models"
)

// delivery_completion.go: the Delivered -> Complete handoff loader. The
// saga is authoritative for completion: this loader only notifies it that
// payment to the seller is due, and the saga calls back into this service
// to perform the actual Complete transition.

// DeliveredOrdersAPI is the slice of the order service the
// delivery-completion loader consumes.
type DeliveredOrdersAPI interface {
	TrackDeliveredOrders(ctx context.Context, maxUpdatedAt time.Time) ([]models.Order, error)
}

// DeliveryCompletion hands aged Delivered orders off to the saga.
type DeliveryCompletion struct {
	flight      singleFlight
	orders      DeliveredOrdersAPI
	saga        saga.Client
	logger      *logrus.Logger
	interval    time.Duration
	deliveryAge time.Duration
	now         func() time.Time
}

// NewDeliveryCompletion builds a loader notifying sagaClient every
// interval about Delivered orders whose last update is at least
// deliveryAge old.
func NewDeliveryCompletion(orders DeliveredOrdersAPI, sagaClient saga.Client, logger *logrus.Logger, interval, deliveryAge time.Duration) *DeliveryCompletion {
	return &DeliveryCompletion{
		orders:      orders,
		saga:        sagaClient,
		logger:      logger,
		interval:    interval,
		deliveryAge: deliveryAge,
		now:         time.Now,
	}
}

// Run ticks until ctx is cancelled.
func (d *DeliveryCompletion) Run(ctx context.Context) {
	d.logger.Info("delivery completion started")
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			d.logger.Info("delivery completion stopped")
			return
		case <-ticker.C:
			d.Tick(ctx)
		}
	}
}

// Tick performs one pass. Per-order notification failures are logged and
// skipped; the order stays Delivered and is retried on the next tick.
func (d *DeliveryCompletion) Tick(ctx context.Context) {
	if !d.flight.TryAcquire() {
		d.logger.Warn("delivery completion: previous tick still running, skipping")
		return
	}
	defer d.flight.Release()

	cutoff := d.now().Add(-d.deliveryAge)
	orders, err := d.orders.TrackDeliveredOrders(ctx, cutoff)
	if err != nil {
		d.logger.WithError(err).Error("delivery completion: failed to list delivered orders")
		return
	}

	for _, o := range orders {
		if err := d.saga.NotifyPaymentToSeller(ctx, o.ID); err != nil {
			d.logger.WithError(errors.Wrap(err, "saga notification failed")).WithField("order_id", o.ID).Error("delivery completion: skipping order")
			continue
		}
		d.logger.WithField("order_id", o.ID).Info("delivery completion: saga notified")
	}
}

// RunDeliveryCompletion wires a DeliveryCompletion from configuration and
// runs it until ctx is cancelled.
func RunDeliveryCompletion(ctx context.Context, logger *logrus.Logger, orders DeliveredOrdersAPI, cfg config.DeliveredOrdersConfig) {
	if cfg.SagaURL == "" {
		logger.Error("delivery completion disabled: delivered_orders.saga_url not set")
		return
	}

	completion := NewDeliveryCompletion(
		orders,
		saga.NewClient(cfg.SagaURL),
		logger,
		time.Duration(cfg.IntervalS)*time.Second,
		time.Duration(cfg.DeliveryStateDurationDays)*24*time.Hour,
	)
	completion.Run(ctx)
}
