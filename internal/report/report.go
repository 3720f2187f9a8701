// Package report builds and uploads the daily Paid/Delivered CSV reports
// the report loader emits to object storage.
package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/STaninnat/orders/models"
)

// csvHeader is the fixed column order consumers of the report expect.
var csvHeader = []string{
	"id", "created_from", "conversion_id", "slug", "customer", "store", "product",
	"price", "currency", "quantity", "receiver_name", "receiver_phone", "receiver_email",
	"state", "delivery_company", "track_id", "pre_order", "pre_order_days", "coupon_id",
	"coupon_percent", "coupon_discount", "product_discount", "total_amount",
	"administrative_area_level_1", "administrative_area_level_2", "country", "locality",
	"political", "postal_code", "route", "street_number", "address", "place_id",
}

// BuildCSV serializes orders into the report schema. An empty slice still
// produces a header-only CSV; callers skip the upload for empty result
// sets rather than calling BuildCSV at all.
func BuildCSV(orders []models.Order) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("report: writing csv header: %w", err)
	}
	for _, o := range orders {
		if err := w.Write(orderRow(o)); err != nil {
			return nil, fmt.Errorf("report: writing csv row for order %s: %w", o.ID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("report: flushing csv: %w", err)
	}
	return buf.Bytes(), nil
}

func orderRow(o models.Order) []string {
	return []string{
		o.ID,
		o.CreatedFrom,
		o.ConversionID,
		strconv.FormatInt(o.Slug, 10),
		o.Customer.ID(),
		o.StoreID,
		o.ProductID,
		o.Price,
		o.Currency,
		strconv.FormatInt(int64(o.Quantity), 10),
		o.ReceiverName,
		o.ReceiverPhone,
		o.ReceiverEmail,
		string(o.State),
		o.DeliveryCompany,
		o.TrackID,
		strconv.FormatBool(o.PreOrder),
		strconv.FormatInt(int64(o.PreOrderDays), 10),
		o.CouponID,
		o.CouponPercent,
		o.CouponDiscount,
		o.ProductDiscount,
		o.TotalAmount,
		o.Address.AdministrativeAreaLevel1,
		o.Address.AdministrativeAreaLevel2,
		o.Address.Country,
		o.Address.Locality,
		o.Address.Political,
		o.Address.PostalCode,
		o.Address.Route,
		o.Address.StreetNumber,
		o.Address.Address,
		o.Address.PlaceID,
	}
}

// Key returns the object-storage key for a report covering [from, to) in
// state: "{state}_orders_{from}_-_{to}.csv".
func Key(state models.OrderState, from, to time.Time) string {
	const layout = "2006-01-02T15:04:05"
	return fmt.Sprintf("%s_orders_%s_-_%s.csv", state, from.Format(layout), to.Format(layout))
}

// Uploader is the subset of the S3 client the report loader needs,
// narrowed to an interface so tests can record uploads without AWS.
type Uploader interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Upload puts body at key in bucket with content-type text/csv, optionally
// setting acl when non-empty.
func Upload(ctx context.Context, client Uploader, bucket, acl, key string, body []byte) error {
	input := &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		Body:        bytes.NewReader(body),
		ContentType: strPtr("text/csv"),
	}
	if acl != "" {
		input.ACL = types.ObjectCannedACL(acl)
	}
	if _, err := client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("report: uploading %s: %w", key, err)
	}
	return nil
}

func strPtr(s string) *string { return &s }
