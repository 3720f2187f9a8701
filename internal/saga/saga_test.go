package saga

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// saga_test.go: Tests for the payment-state handoff call.

// TestNotifyPaymentToSeller verifies the endpoint path and body shape.
func TestNotifyPaymentToSeller(t *testing.T) {
	var gotPath string
	var gotBody setPaymentStateRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	require.NoError(t, client.NotifyPaymentToSeller(context.Background(), "order-1"))

	assert.Equal(t, "/orders/order-1/set_payment_state", gotPath)
	assert.Equal(t, "PaymentToSellerNeeded", gotBody.State)
}

// TestNotifyPaymentToSeller_NonSuccessStatus verifies a non-2xx response
// is an error the loader can log and skip.
func TestNotifyPaymentToSeller_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	err := client.NotifyPaymentToSeller(context.Background(), "order-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}
