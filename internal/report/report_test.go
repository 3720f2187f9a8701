package report

import (
	"context"
	"encoding/csv"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/STaninnat/orders/models"
)

// report_test.go: Tests for CSV serialization and the upload call.

func sampleOrder(id string) models.Order {
	return models.Order{
		ID: id, CreatedFrom: "cart", ConversionID: "conv-1", Slug: 42,
		StoreID: "store1", Customer: models.NewUserCustomer("777"), ProductID: "p1",
		Price: "100", Currency: "USD", Quantity: 2,
		ReceiverName: "Receiver", State: models.OrderStatePaid, TotalAmount: "200",
		Address: models.Address{Country: "NL", Locality: "Amsterdam"},
	}
}

// TestBuildCSV verifies the column order and one row per order.
func TestBuildCSV(t *testing.T) {
	body, err := BuildCSV([]models.Order{sampleOrder("order-1"), sampleOrder("order-2")})
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(body))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3, "header plus one row per order")

	header := records[0]
	assert.Equal(t, "id", header[0])
	assert.Equal(t, "state", header[13])
	assert.Equal(t, "place_id", header[len(header)-1])
	assert.Len(t, header, 33)

	row := records[1]
	assert.Equal(t, "order-1", row[0])
	assert.Equal(t, "42", row[3])
	assert.Equal(t, "777", row[4])
	assert.Equal(t, "Paid", row[13])
	assert.Equal(t, "NL", row[25])
}

// TestKey verifies the object key format.
func TestKey(t *testing.T) {
	from := time.Date(2019, 3, 4, 0, 0, 0, 0, time.UTC)
	to := time.Date(2019, 3, 5, 12, 30, 0, 0, time.UTC)

	key := Key(models.OrderStatePaid, from, to)
	assert.Equal(t, "Paid_orders_2019-03-04T00:00:00_-_2019-03-05T12:30:00.csv", key)
}

// fakeUploader records the PutObject input.
type fakeUploader struct {
	input *s3.PutObjectInput
}

func (f *fakeUploader) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = params
	return &s3.PutObjectOutput{}, nil
}

// TestUpload verifies bucket, key, ACL, content type, and body all reach
// the storage client.
func TestUpload(t *testing.T) {
	uploader := &fakeUploader{}

	err := Upload(context.Background(), uploader, "reports", "private", "Paid_orders.csv", []byte("id\norder-1\n"))
	require.NoError(t, err)

	require.NotNil(t, uploader.input)
	assert.Equal(t, "reports", *uploader.input.Bucket)
	assert.Equal(t, "Paid_orders.csv", *uploader.input.Key)
	assert.Equal(t, "text/csv", *uploader.input.ContentType)
	assert.EqualValues(t, "private", uploader.input.ACL)

	body, err := io.ReadAll(uploader.input.Body)
	require.NoError(t, err)
	assert.Equal(t, "id\norder-1\n", string(body))
}
