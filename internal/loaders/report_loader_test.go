package loaders

import (
	"context"
	"encoding/csv"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/STaninnat/orders/models"
)

// report_loader_test.go: Tests for the Paid/Delivered CSV report window
// and the skip-empty-upload rule.

type fakeDiffSearch struct {
	mu      sync.Mutex
	byState map[models.OrderState][]models.Order
	windows map[models.OrderState][2]time.Time
}

func (f *fakeDiffSearch) SearchByDiffs(_ context.Context, state models.OrderState, from, to time.Time) ([]models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.windows == nil {
		f.windows = map[models.OrderState][2]time.Time{}
	}
	f.windows[state] = [2]time.Time{from, to}
	return f.byState[state], nil
}

type recordingUploader struct {
	mu     sync.Mutex
	inputs []*s3.PutObjectInput
}

func (r *recordingUploader) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.inputs = append(r.inputs, params)
	return &s3.PutObjectOutput{}, nil
}

func paidOrder(id string) models.Order {
	return models.Order{ID: id, State: models.OrderStatePaid, Customer: models.NewUserCustomer("777")}
}

// TestReportLoader_UploadsNonEmptyStates verifies a window with Paid
// transitions produces one CSV upload with one row per order, while the
// empty Delivered result set is skipped.
func TestReportLoader_UploadsNonEmptyStates(t *testing.T) {
	diffs := &fakeDiffSearch{byState: map[models.OrderState][]models.Order{
		models.OrderStatePaid: {paidOrder("order-1"), paidOrder("order-2")},
	}}
	uploader := &recordingUploader{}
	loader := NewReportLoader(diffs, uploader, quietLogger(), "reports", "private")

	loader.Tick(context.Background())

	require.Len(t, uploader.inputs, 1, "empty Delivered set must not upload")
	input := uploader.inputs[0]
	assert.Equal(t, "reports", *input.Bucket)
	assert.Contains(t, *input.Key, "Paid_orders_")
	assert.Equal(t, "text/csv", *input.ContentType)

	body, err := io.ReadAll(input.Body)
	require.NoError(t, err)
	records, err := csv.NewReader(strings.NewReader(string(body))).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 3, "header plus two rows")
}

// TestReportLoader_WindowStartsYesterday verifies both states are queried
// over [start of yesterday, now].
func TestReportLoader_WindowStartsYesterday(t *testing.T) {
	diffs := &fakeDiffSearch{}
	loader := NewReportLoader(diffs, &recordingUploader{}, quietLogger(), "reports", "")
	now := time.Date(2019, 3, 5, 15, 30, 0, 0, time.UTC)
	loader.now = func() time.Time { return now }

	loader.Tick(context.Background())

	wantFrom := time.Date(2019, 3, 4, 0, 0, 0, 0, time.UTC)
	for _, state := range []models.OrderState{models.OrderStatePaid, models.OrderStateDelivered} {
		window, ok := diffs.windows[state]
		require.True(t, ok, "state %s must be queried", state)
		assert.Equal(t, wantFrom, window[0])
		assert.Equal(t, now, window[1])
	}
}

// TestReportLoader_EmptyWindowUploadsNothing verifies a fully empty
// window produces no storage traffic at all.
func TestReportLoader_EmptyWindowUploadsNothing(t *testing.T) {
	uploader := &recordingUploader{}
	loader := NewReportLoader(&fakeDiffSearch{}, uploader, quietLogger(), "reports", "")

	loader.Tick(context.Background())

	assert.Empty(t, uploader.inputs)
}
