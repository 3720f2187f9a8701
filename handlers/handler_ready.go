// Package handlers implements the cart/order HTTP surface: request
// decoding, the ACL-aware caller adapter, and the error taxonomy the
// cart/order services raise.
package handlers

import (
	"net/http"
	"time"

	"github.com/STaninnat/orders/middlewares"
)

// handler_ready.go: Provides basic HTTP handlers for service readiness, health status, and error responses.

// HandlerReadiness handles health check requests and returns a simple status response.
func HandlerReadiness(w http.ResponseWriter, _ *http.Request) {
	response := map[string]any{
		"status":  "ok",
		"service": "orders",
	}
	middlewares.RespondWithJSON(w, http.StatusOK, response)
}

// HandlerError handles error requests and returns a standard error response with details.
func HandlerError(w http.ResponseWriter, _ *http.Request) {
	response := map[string]any{
		"error":   "Internal server error",
		"code":    "INTERNAL_ERROR",
		"message": "An unexpected error occurred. Please try again later.",
	}
	middlewares.RespondWithJSON(w, http.StatusInternalServerError, response)
}

// HandlerHealth provides a more detailed health check response, including service version and timestamp.
func HandlerHealth(w http.ResponseWriter, _ *http.Request) {
	response := map[string]any{
		"status":    "healthy",
		"service":   "orders",
		"version":   "1.0.0",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
	middlewares.RespondWithJSON(w, http.StatusOK, response)
}
