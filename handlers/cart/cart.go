// Package cart implements the HTTP handlers mounted under /cart.
package cart

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/STaninnat/orders/handlers"
	"github.com/STaninnat/orders/internal/acl"
	cartsvc "github.com/STaninnat/orders/internal/cart"
	"github.com/STaninnat/orders/middlewares"
	"github.com/STaninnat/orders/models"
)

// cart.go: request decoding and response wiring for the cart service —
// every handler trusts the acl.Caller the router's caller-extraction
// middleware already validated, and treats the caller's own customer
// identity as the cart being operated on: a caller may only ever reach
// its own cart through this surface.

// Config bundles what the cart handlers need to serve a request.
type Config struct {
	Service *cartsvc.Service
	Logger  *logrus.Logger
}

var validate = validator.New()

func respondAppError(w http.ResponseWriter, err error) {
	var appErr *handlers.AppError
	if errors.As(err, &appErr) {
		middlewares.RespondWithError(w, handlers.StatusForCode(appErr.Code), appErr.Message, appErr.Code)
		return
	}
	middlewares.RespondWithError(w, http.StatusInternalServerError, "internal error", handlers.CodeInternal)
}

func requireCaller(w http.ResponseWriter, caller acl.Caller) bool {
	if caller.Customer.ID() == "" {
		middlewares.RespondWithError(w, http.StatusForbidden, "missing caller identity", handlers.CodeForbidden)
		return false
	}
	if !caller.CanAccessCart(caller.Customer) {
		middlewares.RespondWithError(w, http.StatusForbidden, "forbidden", handlers.CodeForbidden)
		return false
	}
	return true
}

// HandlerGetCart returns the caller's full cart — backs GET /cart.
func (cfg *Config) HandlerGetCart(w http.ResponseWriter, r *http.Request, caller acl.Caller) {
	if !requireCaller(w, caller) {
		return
	}
	items, err := cfg.Service.GetCart(r.Context(), caller.Customer)
	if err != nil {
		respondAppError(w, err)
		return
	}
	middlewares.RespondWithJSON(w, http.StatusOK, items)
}

// HandlerListProducts handles GET /cart/products: a paged view of the
// caller's cart driven by optional from/count query parameters. Without
// them it behaves exactly like GET /cart.
func (cfg *Config) HandlerListProducts(w http.ResponseWriter, r *http.Request, caller acl.Caller) {
	if !requireCaller(w, caller) {
		return
	}

	from := r.URL.Query().Get("from")
	var count int32
	if raw := r.URL.Query().Get("count"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || parsed < 0 {
			middlewares.RespondWithError(w, http.StatusBadRequest, "invalid count", handlers.CodeValidation)
			return
		}
		count = int32(parsed)
	}

	items, err := cfg.Service.List(r.Context(), caller.Customer, from, count)
	if err != nil {
		respondAppError(w, err)
		return
	}
	middlewares.RespondWithJSON(w, http.StatusOK, items)
}

type incrementPayload struct {
	StoreID string `json:"store_id" validate:"required"`
}

// HandlerIncrement handles POST /cart/products/{product_id}/increment.
func (cfg *Config) HandlerIncrement(w http.ResponseWriter, r *http.Request, caller acl.Caller) {
	if !requireCaller(w, caller) {
		return
	}
	productID := chi.URLParam(r, "product_id")

	var payload incrementPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		middlewares.RespondWithError(w, http.StatusBadRequest, "invalid request body", handlers.CodeValidation)
		return
	}
	if err := validate.Struct(payload); err != nil {
		middlewares.RespondWithError(w, http.StatusBadRequest, "store_id is required", handlers.CodeValidation)
		return
	}

	items, err := cfg.Service.IncrementItem(r.Context(), caller.Customer, productID, payload.StoreID, 1)
	if err != nil {
		respondAppError(w, err)
		return
	}
	middlewares.RespondWithJSON(w, http.StatusOK, items)
}

type quantityPayload struct {
	Value int32 `json:"value" validate:"gte=0"`
}

// HandlerSetQuantity handles PUT /cart/products/{product_id}/quantity.
func (cfg *Config) HandlerSetQuantity(w http.ResponseWriter, r *http.Request, caller acl.Caller) {
	if !requireCaller(w, caller) {
		return
	}
	productID := chi.URLParam(r, "product_id")

	var payload quantityPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		middlewares.RespondWithError(w, http.StatusBadRequest, "invalid request body", handlers.CodeValidation)
		return
	}
	if err := validate.Struct(payload); err != nil {
		middlewares.RespondWithError(w, http.StatusBadRequest, "quantity cannot be negative", handlers.CodeValidation)
		return
	}

	items, err := cfg.Service.SetQuantity(r.Context(), caller.Customer, productID, payload.Value)
	if err != nil {
		respondAppError(w, err)
		return
	}
	middlewares.RespondWithJSON(w, http.StatusOK, items)
}

type selectionPayload struct {
	Value bool `json:"value"`
}

// HandlerSetSelection handles PUT /cart/products/{product_id}/selection.
func (cfg *Config) HandlerSetSelection(w http.ResponseWriter, r *http.Request, caller acl.Caller) {
	if !requireCaller(w, caller) {
		return
	}
	productID := chi.URLParam(r, "product_id")

	var payload selectionPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		middlewares.RespondWithError(w, http.StatusBadRequest, "invalid request body", handlers.CodeValidation)
		return
	}

	items, err := cfg.Service.SetSelection(r.Context(), caller.Customer, productID, payload.Value)
	if err != nil {
		respondAppError(w, err)
		return
	}
	middlewares.RespondWithJSON(w, http.StatusOK, items)
}

type commentPayload struct {
	Value string `json:"value"`
}

// HandlerSetComment handles PUT /cart/products/{product_id}/comment.
func (cfg *Config) HandlerSetComment(w http.ResponseWriter, r *http.Request, caller acl.Caller) {
	if !requireCaller(w, caller) {
		return
	}
	productID := chi.URLParam(r, "product_id")

	var payload commentPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		middlewares.RespondWithError(w, http.StatusBadRequest, "invalid request body", handlers.CodeValidation)
		return
	}

	items, err := cfg.Service.SetComment(r.Context(), caller.Customer, productID, payload.Value)
	if err != nil {
		respondAppError(w, err)
		return
	}
	middlewares.RespondWithJSON(w, http.StatusOK, items)
}

// HandlerDeleteItem handles DELETE /cart/products/{product_id}.
func (cfg *Config) HandlerDeleteItem(w http.ResponseWriter, r *http.Request, caller acl.Caller) {
	if !requireCaller(w, caller) {
		return
	}
	productID := chi.URLParam(r, "product_id")

	items, err := cfg.Service.DeleteItem(r.Context(), caller.Customer, productID)
	if err != nil {
		respondAppError(w, err)
		return
	}
	middlewares.RespondWithJSON(w, http.StatusOK, items)
}

// HandlerClear handles POST /cart/clear.
func (cfg *Config) HandlerClear(w http.ResponseWriter, r *http.Request, caller acl.Caller) {
	if !requireCaller(w, caller) {
		return
	}
	if err := cfg.Service.ClearCart(r.Context(), caller.Customer); err != nil {
		respondAppError(w, err)
		return
	}
	middlewares.RespondWithJSON(w, http.StatusOK, []models.CartItem{})
}

type mergePayload struct {
	UserFrom string `json:"user_from" validate:"required"`
}

// HandlerMerge handles POST /cart/merge: merges the cart identified by
// user_from into the caller's own cart. user_from names whichever
// Customer variant the caller is not — an anonymous session merging into
// a freshly-logged-in user is the common case, but the reverse (a user
// merging back into an anonymous session) is accepted too.
func (cfg *Config) HandlerMerge(w http.ResponseWriter, r *http.Request, caller acl.Caller) {
	if !requireCaller(w, caller) {
		return
	}

	var payload mergePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		middlewares.RespondWithError(w, http.StatusBadRequest, "invalid request body", handlers.CodeValidation)
		return
	}
	if err := validate.Struct(payload); err != nil {
		middlewares.RespondWithError(w, http.StatusBadRequest, "user_from is required", handlers.CodeValidation)
		return
	}

	var from models.Customer
	if caller.Customer.Type == models.CustomerTypeUser {
		from = models.NewAnonymousCustomer(payload.UserFrom)
	} else {
		from = models.NewUserCustomer(payload.UserFrom)
	}

	items, err := cfg.Service.Merge(r.Context(), from, caller.Customer)
	if err != nil {
		respondAppError(w, err)
		return
	}
	middlewares.RespondWithJSON(w, http.StatusOK, items)
}
