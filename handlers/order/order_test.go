package order

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/STaninnat/orders/internal/acl"
	"github.com/STaninnat/orders/internal/database"
	ordersvc "github.com/STaninnat/orders/internal/order"
	"github.com/STaninnat/orders/models"
)

// order_test.go: HTTP-layer tests for the order handlers — request
// decoding, validation, and the ACL narrowing on search — over a mocked
// database.

func newTestConfig(t *testing.T) (*Config, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	queries := database.New(db)
	repo := ordersvc.NewRepository(queries)
	factory := func(_ *database.Queries) ordersvc.CartSourceFactory { return nil }
	return &Config{
		Service: ordersvc.NewService(repo, factory, queries, db),
		Logger:  logrus.New(),
	}, mock
}

func userCaller(id string, roles ...models.Role) acl.Caller {
	return acl.Caller{Customer: models.NewUserCustomer(id), Roles: roles}
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func orderColumnNames() []string {
	return []string{
		"id", "created_from", "conversion_id", "slug", "store_id", "customer_type", "customer_id", "product_id",
		"price", "currency", "quantity", "receiver_name", "receiver_phone", "receiver_email", "state", "payment_status", "delivery_company",
		"track_id", "pre_order", "pre_order_days", "coupon_id", "coupon_percent", "coupon_discount", "product_discount",
		"total_amount", "administrative_area_level_1", "administrative_area_level_2", "country", "locality", "political",
		"postal_code", "route", "street_number", "address", "place_id", "created_at", "updated_at",
	}
}

func orderRowValues(id, customerID, state string) []driver.Value {
	now := time.Now()
	return []driver.Value{
		id, "item-1", "conv-1", int64(1), "store1", "user", customerID, "p1",
		"100", "USD", int32(1), "Receiver", "", "", state, false, nil,
		"track-9", false, nil, nil, nil, nil, nil,
		"100", nil, nil, nil, nil, nil,
		nil, nil, nil, nil, nil, now, now,
	}
}

// TestHandlerSearch_NarrowsToCallerOrders verifies a caller who is
// neither Superadmin nor a manager of the requested store has its own
// identity forced into the search, whatever the payload claimed.
func TestHandlerSearch_NarrowsToCallerOrders(t *testing.T) {
	cfg, mock := newTestConfig(t)

	mock.ExpectQuery("SELECT (.+) FROM orders").
		WithArgs(nil, nil, nil, nil, nil, "user", "777", nil).
		WillReturnRows(sqlmock.NewRows(orderColumnNames()))

	req := httptest.NewRequest("POST", "/orders/search", strings.NewReader(`{"customer_type":"user","customer_id":"999"}`))
	w := httptest.NewRecorder()
	cfg.HandlerSearch(w, req, userCaller("777"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestHandlerSearch_StoreManagerKeepsTerms verifies a manager of the
// requested store searches with the payload's own terms, including the
// expanded slug/date/payment filters.
func TestHandlerSearch_StoreManagerKeepsTerms(t *testing.T) {
	cfg, mock := newTestConfig(t)

	from := time.Date(2019, 3, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT (.+) FROM orders").
		WithArgs(int64(42), from, nil, true, "store1", nil, "999", "Paid").
		WillReturnRows(sqlmock.NewRows(orderColumnNames()).AddRow(orderRowValues("order-1", "999", "Paid")...))

	body := `{"slug":42,"created_from":"2019-03-01T00:00:00Z","payment_status":true,"store_id":"store1","customer_id":"999","state":"Paid"}`
	req := httptest.NewRequest("POST", "/orders/search", strings.NewReader(body))
	w := httptest.NewRecorder()
	caller := userCaller("mgr-1", models.Role{Role: models.RoleStoreManager, StoreID: "store1"})
	cfg.HandlerSearch(w, req, caller)

	require.Equal(t, http.StatusOK, w.Code)
	var orders []models.Order
	require.NoError(t, json.NewDecoder(w.Body).Decode(&orders))
	require.Len(t, orders, 1)
	assert.Equal(t, "order-1", orders[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestHandlerConvertCart_MissingReceiver verifies payload validation.
func TestHandlerConvertCart_MissingReceiver(t *testing.T) {
	cfg, mock := newTestConfig(t)

	req := httptest.NewRequest("POST", "/orders/create_from_cart", strings.NewReader(`{"prices":{"p1":{"price":"100","currency":"USD"}}}`))
	w := httptest.NewRecorder()
	cfg.HandlerConvertCart(w, req, userCaller("777"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestHandlerRevertConversion_MissingConversionID verifies payload validation.
func TestHandlerRevertConversion_MissingConversionID(t *testing.T) {
	cfg, mock := newTestConfig(t)

	req := httptest.NewRequest("POST", "/orders/create_from_cart/revert", strings.NewReader(`{}`))
	w := httptest.NewRecorder()
	cfg.HandlerRevertConversion(w, req, userCaller("777"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestHandlerGetBySlug_RequiresStoreID verifies the slug lookup demands
// its disambiguating store_id query parameter.
func TestHandlerGetBySlug_RequiresStoreID(t *testing.T) {
	cfg, mock := newTestConfig(t)

	req := withURLParam(httptest.NewRequest("GET", "/orders/by-slug/42", nil), "int", "42")
	w := httptest.NewRecorder()
	cfg.HandlerGetBySlug(w, req, userCaller("777"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestHandlerByStore_ForbidsNonManagers verifies the store listing gate.
func TestHandlerByStore_ForbidsNonManagers(t *testing.T) {
	cfg, mock := newTestConfig(t)

	req := withURLParam(httptest.NewRequest("GET", "/orders/by-store/store1", nil), "store_id", "store1")
	w := httptest.NewRecorder()
	cfg.HandlerByStore(w, req, userCaller("777"))

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestHandlerSetStatus_MissingState verifies the status payload validation.
func TestHandlerSetStatus_MissingState(t *testing.T) {
	cfg, mock := newTestConfig(t)

	req := withURLParam(httptest.NewRequest("PUT", "/orders/by-id/order-1/status", strings.NewReader(`{}`)), "uuid", "order-1")
	w := httptest.NewRecorder()
	cfg.HandlerSetStatus(w, req, userCaller("777"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestHandlerSetStatus_RecordsCommitterAndComment verifies the caller id
// and the request comment land on the diff entry written with the
// transition.
func TestHandlerSetStatus_RecordsCommitterAndComment(t *testing.T) {
	cfg, mock := newTestConfig(t)

	mock.ExpectQuery("SELECT (.+) FROM orders WHERE id").
		WithArgs("order-1").
		WillReturnRows(sqlmock.NewRows(orderColumnNames()).AddRow(orderRowValues("order-1", "777", "Sent")...))
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM orders WHERE id").
		WithArgs("order-1").
		WillReturnRows(sqlmock.NewRows(orderColumnNames()).AddRow(orderRowValues("order-1", "777", "Sent")...))
	mock.ExpectExec("UPDATE orders SET state").
		WithArgs("order-1", "Delivered").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO order_diffs").
		WithArgs(sqlmock.AnyArg(), "order-1", "777", "Delivered", "left at the door").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()
	mock.ExpectQuery("SELECT (.+) FROM orders WHERE id").
		WithArgs("order-1").
		WillReturnRows(sqlmock.NewRows(orderColumnNames()).AddRow(orderRowValues("order-1", "777", "Delivered")...))

	body := `{"state":"Delivered","comment":"left at the door"}`
	req := withURLParam(httptest.NewRequest("PUT", "/orders/by-id/order-1/status", strings.NewReader(body)), "uuid", "order-1")
	w := httptest.NewRecorder()
	cfg.HandlerSetStatus(w, req, userCaller("777"))

	require.Equal(t, http.StatusOK, w.Code)
	var updated models.Order
	require.NoError(t, json.NewDecoder(w.Body).Decode(&updated))
	assert.Equal(t, models.OrderStateDelivered, updated.State)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestHandlerDiffs_ForbidsStrangers verifies the diff log is gated by the
// order's own access rule.
func TestHandlerDiffs_ForbidsStrangers(t *testing.T) {
	cfg, mock := newTestConfig(t)

	mock.ExpectQuery("SELECT (.+) FROM orders WHERE id").
		WithArgs("order-1").
		WillReturnRows(sqlmock.NewRows(orderColumnNames()).AddRow(orderRowValues("order-1", "777", "Paid")...))

	req := withURLParam(httptest.NewRequest("GET", "/order_diff/by-id/order-1", nil), "uuid", "order-1")
	w := httptest.NewRecorder()
	cfg.HandlerDiffs(w, req, userCaller("999"))

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
