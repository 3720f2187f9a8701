package router

import (
	"context"
	"net/http"
	"strings"

	"github.com/STaninnat/orders/internal/acl"
	"github.com/STaninnat/orders/models"
)

// Adapter helpers for router handler registration
//
// Use these to convert custom handler signatures to http.HandlerFunc for chi.
// - Adapt: for standard handlers (w, r)
// - WithCaller: for handlers needing the caller extracted by CallerMiddleware (w, r, acl.Caller)
//
// This ensures all routes are registered as http.HandlerFunc and middleware is applied consistently.

// Adapt adapts a standard handler (w, r) to http.HandlerFunc for chi router compatibility.
func Adapt(h func(http.ResponseWriter, *http.Request)) http.HandlerFunc {
	return http.HandlerFunc(h)
}

// WithCaller adapts a handler (w, r, acl.Caller) to http.HandlerFunc, reading
// the caller CallerMiddleware already placed in the request context.
func WithCaller(h func(http.ResponseWriter, *http.Request, acl.Caller)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := r.Context().Value(contextKeyCaller).(acl.Caller)
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		h(w, r, caller)
	}
}

// contextKey namespaces router context values to avoid collisions with
// other packages that also stash values on the request context.
type contextKey string

const contextKeyCaller contextKey = "caller"

// CallerMiddleware extracts an acl.Caller from the caller-identity headers
// and stores it on the request context for WithCaller to read back. It
// never rejects a request itself — a request with no caller headers gets
// an empty Caller, and every per-route ACL check (acl.Caller.CanAccessCart,
// CanWriteOrder, CanReadOrder, IsSuperadmin, IsStoreManagerOf) then denies
// it on its own terms. Authentication of these headers is an upstream
// collaborator's responsibility; this service only consumes the
// outcome.
//
// Headers:
//   - X-Caller-Id: the user id or anonymous session id
//   - X-Caller-Type: "user" or "anonymous" (defaults to anonymous if absent)
//   - X-Caller-Roles: comma-separated Role[:StoreID] pairs, dev-only role
//     injection for store manager / superadmin testing
func CallerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Caller-Id")

		var customer models.Customer
		if strings.EqualFold(r.Header.Get("X-Caller-Type"), "user") {
			customer = models.NewUserCustomer(id)
		} else {
			customer = models.NewAnonymousCustomer(id)
		}

		caller := acl.Caller{Customer: customer, Roles: parseCallerRoles(r.Header.Get("X-Caller-Roles"))}

		ctx := context.WithValue(r.Context(), contextKeyCaller, caller)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func parseCallerRoles(header string) []models.Role {
	if header == "" {
		return nil
	}

	parts := strings.Split(header, ",")
	roles := make([]models.Role, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, storeID, _ := strings.Cut(part, ":")
		roles = append(roles, models.Role{Role: models.RoleName(strings.TrimSpace(name)), StoreID: strings.TrimSpace(storeID)})
	}
	return roles
}
