package carrier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// carrier_test.go: Tests for the UPS wire protocol, the Activity
// object-or-array polymorphism, and the retry behavior.

func trackingServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

// TestDeliveryStatus_RequestShape verifies the POST body carries the
// security token and inquiry number where the carrier expects them.
func TestDeliveryStatus_RequestShape(t *testing.T) {
	var got upsRequest
	server := trackingServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{}`))
	})

	client := NewUPSClient(server.URL, "license-123")
	_, err := client.DeliveryStatus(context.Background(), "track-1")
	require.NoError(t, err)

	assert.Equal(t, "license-123", got.UPSSecurity.ServiceAccessToken.AccessLicenseNumber)
	assert.Equal(t, "track-1", got.TrackRequest.InquiryNumber)
	assert.Equal(t, "1", got.TrackRequest.Request.RequestOption)
	assert.Equal(t, "Storiqa", got.TrackRequest.Request.TransactionReference.CustomerContext)
}

// TestDeliveryStatus_ActivityAsArray verifies an Activity array with a
// delivered entry reports delivered.
func TestDeliveryStatus_ActivityAsArray(t *testing.T) {
	server := trackingServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"TrackResponse":{"Shipment":{"Package":{"Activity":[
			{"Status":{"Type":"I"}},
			{"Status":{"Type":"D"}}
		]}}}}`))
	})

	client := NewUPSClient(server.URL, "license")
	delivered, err := client.DeliveryStatus(context.Background(), "track-1")
	require.NoError(t, err)
	assert.True(t, delivered)
}

// TestDeliveryStatus_ActivityAsObject verifies a bare Activity object is
// accepted too.
func TestDeliveryStatus_ActivityAsObject(t *testing.T) {
	server := trackingServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"TrackResponse":{"Shipment":{"Package":{"Activity":{"Status":{"Type":"D"}}}}}}`))
	})

	client := NewUPSClient(server.URL, "license")
	delivered, err := client.DeliveryStatus(context.Background(), "track-1")
	require.NoError(t, err)
	assert.True(t, delivered)
}

// TestDeliveryStatus_InTransit verifies a non-delivered activity reports
// not delivered without error.
func TestDeliveryStatus_InTransit(t *testing.T) {
	server := trackingServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"TrackResponse":{"Shipment":{"Package":{"Activity":{"Status":{"Type":"I"}}}}}}`))
	})

	client := NewUPSClient(server.URL, "license")
	delivered, err := client.DeliveryStatus(context.Background(), "track-1")
	require.NoError(t, err)
	assert.False(t, delivered)
}

// TestDeliveryStatus_Fault verifies a Fault in the response surfaces as an
// error for that track id.
func TestDeliveryStatus_Fault(t *testing.T) {
	server := trackingServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"Fault":{"faultcode":"Client","faultstring":"Invalid tracking number"}}`))
	})

	client := NewUPSClient(server.URL, "license")
	_, err := client.DeliveryStatus(context.Background(), "track-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid tracking number")
}

// TestDeliveryStatus_RetriesServerErrors verifies a 5xx is retried and a
// later success wins.
func TestDeliveryStatus_RetriesServerErrors(t *testing.T) {
	var calls int32
	server := trackingServer(t, func(w http.ResponseWriter, _ *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"TrackResponse":{"Shipment":{"Package":{"Activity":{"Status":{"Type":"D"}}}}}}`))
	})

	client := NewUPSClient(server.URL, "license")
	delivered, err := client.DeliveryStatus(context.Background(), "track-1")
	require.NoError(t, err)
	assert.True(t, delivered)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

// TestDeliveryStatus_ClientErrorNotRetried verifies a 4xx fails
// immediately without burning retries.
func TestDeliveryStatus_ClientErrorNotRetried(t *testing.T) {
	var calls int32
	server := trackingServer(t, func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusUnauthorized)
	})

	client := NewUPSClient(server.URL, "license")
	_, err := client.DeliveryStatus(context.Background(), "track-1")
	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

// TestActivityList_UnmarshalNull verifies a null Activity decodes to an
// empty list.
func TestActivityList_UnmarshalNull(t *testing.T) {
	var list activityList
	require.NoError(t, list.UnmarshalJSON([]byte("null")))
	assert.Empty(t, list)
}
