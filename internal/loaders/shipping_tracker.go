package loaders

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/STaninnat/orders/internal/carrier"
	"github.com/STaninnat/orders/internal/config"
	"github.com/STaninnat/orders/models"
)

// shipping_tracker.go: the Sent -> Delivered loader. Each tick polls the
// carrier for every Sent order old enough to plausibly have arrived and
// transitions the confirmed ones.

// SentOrdersAPI is the slice of the order service the shipping tracker
// consumes. The loaders call the service, never the repository, so the
// diff log and state machine stay enforced on their writes too.
type SentOrdersAPI interface {
	GetOrdersWithState(ctx context.Context, state models.OrderState, maxUpdatedAt time.Time) ([]models.Order, error)
	SetOrderState(ctx context.Context, orderID string, to models.OrderState, trackID, committer, comment string) error
}

// systemCommitter is recorded on diff entries the loaders write, since no
// user caused those transitions.
const systemCommitter = "system"

// ShippingTracker advances Sent orders to Delivered once the carrier
// confirms delivery.
type ShippingTracker struct {
	flight   singleFlight
	orders   SentOrdersAPI
	carrier  carrier.Client
	logger   *logrus.Logger
	interval time.Duration
	sentAge  time.Duration
	now      func() time.Time
}

// NewShippingTracker builds a tracker polling carrierClient every
// interval for Sent orders whose last update is at least sentAge old.
func NewShippingTracker(orders SentOrdersAPI, carrierClient carrier.Client, logger *logrus.Logger, interval, sentAge time.Duration) *ShippingTracker {
	return &ShippingTracker{
		orders:   orders,
		carrier:  carrierClient,
		logger:   logger,
		interval: interval,
		sentAge:  sentAge,
		now:      time.Now,
	}
}

// Run ticks until ctx is cancelled.
func (t *ShippingTracker) Run(ctx context.Context) {
	t.logger.Info("shipping tracker started")
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			t.logger.Info("shipping tracker stopped")
			return
		case <-ticker.C:
			t.Tick(ctx)
		}
	}
}

// Tick performs one pass. Per-order failures are logged and skipped so
// one misbehaving track id cannot abort the rest of the batch.
func (t *ShippingTracker) Tick(ctx context.Context) {
	if !t.flight.TryAcquire() {
		t.logger.Warn("shipping tracker: previous tick still running, skipping")
		return
	}
	defer t.flight.Release()

	cutoff := t.now().Add(-t.sentAge)
	orders, err := t.orders.GetOrdersWithState(ctx, models.OrderStateSent, cutoff)
	if err != nil {
		t.logger.WithError(err).Error("shipping tracker: failed to list sent orders")
		return
	}

	for _, o := range orders {
		if o.TrackID == "" {
			continue
		}
		t.logger.WithFields(logrus.Fields{"order_id": o.ID, "track_id": o.TrackID}).Info("shipping tracker: checking order")

		delivered, err := t.carrier.DeliveryStatus(ctx, o.TrackID)
		if err != nil {
			t.logger.WithError(errors.Wrap(err, "carrier lookup failed")).WithField("order_id", o.ID).Error("shipping tracker: skipping order")
			continue
		}
		if !delivered {
			continue
		}

		if err := t.orders.SetOrderState(ctx, o.ID, models.OrderStateDelivered, "", systemCommitter, "carrier confirmed delivery"); err != nil {
			t.logger.WithError(errors.Wrap(err, "state transition failed")).WithField("order_id", o.ID).Error("shipping tracker: skipping order")
			continue
		}
		t.logger.WithField("order_id", o.ID).Info("shipping tracker: order delivered")
	}
}

// RunShippingTracker wires a ShippingTracker from configuration and runs
// it until ctx is cancelled. A missing carrier URL disables the loader
// rather than failing startup, matching the other loaders' tolerance for
// partially configured environments.
func RunShippingTracker(ctx context.Context, logger *logrus.Logger, orders SentOrdersAPI, cfg config.SentOrdersConfig) {
	if cfg.UpsAPIURL == "" {
		logger.Error("shipping tracker disabled: sent_orders.ups_api_url not set")
		return
	}

	tracker := NewShippingTracker(
		orders,
		carrier.NewUPSClient(cfg.UpsAPIURL, cfg.UpsAPIAccessLicenseNumber),
		logger,
		time.Duration(cfg.IntervalS)*time.Second,
		time.Duration(cfg.SentStateDurationDays)*24*time.Hour,
	)
	tracker.Run(ctx)
}
