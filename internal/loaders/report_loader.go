package loaders

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/STaninnat/orders/internal/config"
	"github.com/STaninnat/orders/internal/report"
	"github.com/STaninnat/orders/models"
)

// report_loader.go: the Paid/Delivered CSV report loader. Each run covers
// [start of yesterday, now] and uploads one CSV per state that saw any
// transitions in that window. Scheduling is cron-based rather than a bare
// ticker: uploads are meaningful daily, and an operator can think of the
// configured interval as a cron schedule.

// reportStates are the transition states reported on, one CSV each.
var reportStates = []models.OrderState{models.OrderStatePaid, models.OrderStateDelivered}

// DiffSearchAPI is the slice of the order service the report loader
// consumes.
type DiffSearchAPI interface {
	SearchByDiffs(ctx context.Context, state models.OrderState, from, to time.Time) ([]models.Order, error)
}

// ReportLoader uploads daily CSVs of Paid/Delivered order transitions to
// object storage.
type ReportLoader struct {
	flight   singleFlight
	orders   DiffSearchAPI
	uploader report.Uploader
	logger   *logrus.Logger
	bucket   string
	acl      string
	now      func() time.Time
}

// NewReportLoader builds a loader reporting on orders's diff log into
// bucket via uploader.
func NewReportLoader(orders DiffSearchAPI, uploader report.Uploader, logger *logrus.Logger, bucket, acl string) *ReportLoader {
	return &ReportLoader{
		orders:   orders,
		uploader: uploader,
		logger:   logger,
		bucket:   bucket,
		acl:      acl,
		now:      time.Now,
	}
}

// Tick performs one pass: both states are queried in parallel, and each
// non-empty result set becomes one CSV upload. Empty result sets are
// logged and skipped, never uploaded.
func (l *ReportLoader) Tick(ctx context.Context) {
	if !l.flight.TryAcquire() {
		l.logger.Warn("report loader: previous tick still running, skipping")
		return
	}
	defer l.flight.Release()

	now := l.now().UTC()
	from := now.AddDate(0, 0, -1).Truncate(24 * time.Hour)

	var wg sync.WaitGroup
	for _, state := range reportStates {
		wg.Add(1)
		go func(state models.OrderState) {
			defer wg.Done()
			l.reportState(ctx, state, from, now)
		}(state)
	}
	wg.Wait()
}

func (l *ReportLoader) reportState(ctx context.Context, state models.OrderState, from, to time.Time) {
	log := l.logger.WithFields(logrus.Fields{"state": state, "from": from, "to": to})

	orders, err := l.orders.SearchByDiffs(ctx, state, from, to)
	if err != nil {
		log.WithError(errors.Wrap(err, "diff search failed")).Error("report loader: skipping state")
		return
	}
	if len(orders) == 0 {
		log.Info("report loader: no transitions in window, skipping upload")
		return
	}

	body, err := report.BuildCSV(orders)
	if err != nil {
		log.WithError(err).Error("report loader: failed to build csv")
		return
	}

	key := report.Key(state, from, to)
	if err := report.Upload(ctx, l.uploader, l.bucket, l.acl, key, body); err != nil {
		log.WithError(err).Error("report loader: upload failed")
		return
	}
	log.WithFields(logrus.Fields{"key": key, "orders": len(orders)}).Info("report loader: report uploaded")
}

// RunPaidDeliveredReport schedules a ReportLoader on a cron interval and
// blocks until ctx is cancelled.
func RunPaidDeliveredReport(ctx context.Context, logger *logrus.Logger, orders DiffSearchAPI, uploader report.Uploader, s3cfg config.S3Config, cfg config.PaidDeliveredReportConfig) {
	if s3cfg.Bucket == "" {
		logger.Error("report loader disabled: s3.bucket not set")
		return
	}

	loader := NewReportLoader(orders, uploader, logger, s3cfg.Bucket, s3cfg.ACL)

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(fmt.Sprintf("@every %ds", cfg.IntervalS), func() {
		loader.Tick(ctx)
	}); err != nil {
		logger.WithError(err).Error("report loader disabled: failed to schedule")
		return
	}

	logger.Info("report loader started")
	scheduler.Start()
	<-ctx.Done()
	<-scheduler.Stop().Done()
	logger.Info("report loader stopped")
}
