// Package order implements the HTTP handlers mounted under /orders and
// /order_diff.
package order

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/STaninnat/orders/handlers"
	"github.com/STaninnat/orders/internal/acl"
	ordersvc "github.com/STaninnat/orders/internal/order"
	"github.com/STaninnat/orders/middlewares"
	"github.com/STaninnat/orders/models"
)

// order.go: request decoding and ACL enforcement for the order service.
// Row-level checks delegate to acl.Caller; cross-customer listing
// (Search, by-store) additionally uses the broader IsSuperadmin/
// IsStoreManagerOf checks the cart surface never needs.

// Config bundles what the order handlers need to serve a request.
type Config struct {
	Service *ordersvc.Service
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

func forbidden(w http.ResponseWriter) {
	middlewares.RespondWithError(w, http.StatusForbidden, "forbidden", handlers.CodeForbidden)
}

type pricePayload struct {
	Price    string `json:"price" validate:"required"`
	Currency string `json:"currency" validate:"required"`
}

type convertCartPayload struct {
	ReceiverName  string                  `json:"receiver_name" validate:"required"`
	ReceiverPhone string                  `json:"receiver_phone"`
	ReceiverEmail string                  `json:"receiver_email"`
	Address       models.Address          `json:"address"`
	Prices        map[string]pricePayload `json:"prices" validate:"required"`
}

// HandlerConvertCart handles POST /orders/create_from_cart. The caller
// converts its own cart, so the only gate is a present identity; store,
// pre-order, and coupon details come from the cart lines themselves.
func (cfg *Config) HandlerConvertCart(w http.ResponseWriter, r *http.Request, caller acl.Caller) {
	var payload convertCartPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		middlewares.RespondWithError(w, http.StatusBadRequest, "invalid request body", handlers.CodeValidation)
		return
	}
	if err := validate.Struct(payload); err != nil {
		middlewares.RespondWithError(w, http.StatusBadRequest, err.Error(), handlers.CodeValidation)
		return
	}
	if caller.Customer.ID() == "" {
		forbidden(w)
		return
	}

	prices := make(map[string]ordersvc.PriceInfo, len(payload.Prices))
	for productID, p := range payload.Prices {
		prices[productID] = ordersvc.PriceInfo{Price: p.Price, Currency: p.Currency}
	}

	orders, err := cfg.Service.ConvertCart(r.Context(), ordersvc.ConvertCartParams{
		Customer: caller.Customer,
		Prices:   prices,
		Receiver: ordersvc.ReceiverInfo{
			Name: payload.ReceiverName, Phone: payload.ReceiverPhone, Email: payload.ReceiverEmail,
		},
		Address: payload.Address,
	})
	if err != nil {
		respondAppError(w, err)
		return
	}
	middlewares.RespondWithJSON(w, http.StatusOK, orders)
}

type revertPayload struct {
	ConversionID string `json:"conversion_id" validate:"required"`
}

// HandlerRevertConversion handles POST /orders/create_from_cart/revert.
func (cfg *Config) HandlerRevertConversion(w http.ResponseWriter, r *http.Request, caller acl.Caller) {
	var payload revertPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		middlewares.RespondWithError(w, http.StatusBadRequest, "invalid request body", handlers.CodeValidation)
		return
	}
	if err := validate.Struct(payload); err != nil {
		middlewares.RespondWithError(w, http.StatusBadRequest, "conversion_id is required", handlers.CodeValidation)
		return
	}

	orders, err := cfg.Service.OrdersByConversionID(r.Context(), payload.ConversionID)
	if err != nil {
		respondAppError(w, err)
		return
	}
	if len(orders) == 0 {
		middlewares.RespondWithError(w, http.StatusNotFound, "no orders for conversion", handlers.CodeNotFound)
		return
	}
	if !caller.CanWriteOrder(orders[0].Customer, orders[0].StoreID) {
		forbidden(w)
		return
	}

	if err := cfg.Service.RevertConversion(r.Context(), payload.ConversionID); err != nil {
		respondAppError(w, err)
		return
	}
	middlewares.RespondWithJSON(w, http.StatusOK, struct{}{})
}

type orderSearchPayload struct {
	Slug          int64      `json:"slug,omitempty"`
	CreatedFrom   *time.Time `json:"created_from,omitempty"`
	CreatedTo     *time.Time `json:"created_to,omitempty"`
	PaymentStatus *bool      `json:"payment_status,omitempty"`
	StoreID       string     `json:"store_id"`
	CustomerType  string     `json:"customer_type"`
	CustomerID    string     `json:"customer_id"`
	State         string     `json:"state"`
}

// HandlerSearch handles POST /orders/search. A caller who is neither
// Superadmin nor a store manager of the requested store is restricted to
// its own orders regardless of what customer fields it supplied.
func (cfg *Config) HandlerSearch(w http.ResponseWriter, r *http.Request, caller acl.Caller) {
	var payload orderSearchPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		middlewares.RespondWithError(w, http.StatusBadRequest, "invalid request body", handlers.CodeValidation)
		return
	}

	params := ordersvc.SearchParams{
		Slug:          payload.Slug,
		PaymentStatus: payload.PaymentStatus,
		StoreID:       payload.StoreID,
		CustomerType:  models.CustomerType(payload.CustomerType),
		CustomerID:    payload.CustomerID,
		State:         models.OrderState(payload.State),
	}
	if payload.CreatedFrom != nil {
		params.CreatedFrom = *payload.CreatedFrom
	}
	if payload.CreatedTo != nil {
		params.CreatedTo = *payload.CreatedTo
	}
	if !caller.IsSuperadmin() && !(payload.StoreID != "" && caller.IsStoreManagerOf(payload.StoreID)) {
		params.CustomerType = caller.Customer.Type
		params.CustomerID = caller.Customer.ID()
	}

	orders, err := cfg.Service.Search(r.Context(), params)
	if err != nil {
		respondAppError(w, err)
		return
	}
	middlewares.RespondWithJSON(w, http.StatusOK, orders)
}

// HandlerListMine handles GET /orders: every order belonging to the caller.
func (cfg *Config) HandlerListMine(w http.ResponseWriter, r *http.Request, caller acl.Caller) {
	orders, err := cfg.Service.OrdersByCustomer(r.Context(), caller.Customer)
	if err != nil {
		respondAppError(w, err)
		return
	}
	middlewares.RespondWithJSON(w, http.StatusOK, orders)
}

// HandlerByStore handles GET /orders/by-store/{store_id} — Superadmin or a
// manager of that store only.
func (cfg *Config) HandlerByStore(w http.ResponseWriter, r *http.Request, caller acl.Caller) {
	storeID := chi.URLParam(r, "store_id")
	if !caller.IsSuperadmin() && !caller.IsStoreManagerOf(storeID) {
		forbidden(w)
		return
	}

	orders, err := cfg.Service.OrdersByStore(r.Context(), storeID)
	if err != nil {
		respondAppError(w, err)
		return
	}
	middlewares.RespondWithJSON(w, http.StatusOK, orders)
}

// HandlerGetByID handles GET /orders/by-id/{uuid}.
func (cfg *Config) HandlerGetByID(w http.ResponseWriter, r *http.Request, caller acl.Caller) {
	orderID := chi.URLParam(r, "uuid")
	o, err := cfg.Service.GetByID(r.Context(), orderID)
	if err != nil {
		respondAppError(w, err)
		return
	}
	if !caller.CanReadOrder(o.Customer, o.StoreID) {
		forbidden(w)
		return
	}
	middlewares.RespondWithJSON(w, http.StatusOK, o)
}

// HandlerGetBySlug handles GET /orders/by-slug/{int}. Since a slug is only
// unique within one store, the owning store
// is disambiguated by a required store_id query parameter.
func (cfg *Config) HandlerGetBySlug(w http.ResponseWriter, r *http.Request, caller acl.Caller) {
	storeID := r.URL.Query().Get("store_id")
	if storeID == "" {
		middlewares.RespondWithError(w, http.StatusBadRequest, "store_id query parameter is required", handlers.CodeValidation)
		return
	}
	slug, err := strconv.ParseInt(chi.URLParam(r, "int"), 10, 64)
	if err != nil {
		middlewares.RespondWithError(w, http.StatusBadRequest, "invalid slug", handlers.CodeValidation)
		return
	}

	o, err := cfg.Service.GetBySlug(r.Context(), storeID, slug)
	if err != nil {
		respondAppError(w, err)
		return
	}
	if !caller.CanReadOrder(o.Customer, o.StoreID) {
		forbidden(w)
		return
	}
	middlewares.RespondWithJSON(w, http.StatusOK, o)
}

type statusPayload struct {
	State   string `json:"state" validate:"required"`
	TrackID string `json:"track_id,omitempty"`
	Comment string `json:"comment,omitempty"`
}

// HandlerSetStatus handles PUT /orders/by-id/{uuid}/status. The caller's
// identity is recorded as the diff entry's committer, and an optional
// comment travels with the same entry.
func (cfg *Config) HandlerSetStatus(w http.ResponseWriter, r *http.Request, caller acl.Caller) {
	orderID := chi.URLParam(r, "uuid")

	var payload statusPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		middlewares.RespondWithError(w, http.StatusBadRequest, "invalid request body", handlers.CodeValidation)
		return
	}
	if err := validate.Struct(payload); err != nil {
		middlewares.RespondWithError(w, http.StatusBadRequest, "state is required", handlers.CodeValidation)
		return
	}

	current, err := cfg.Service.GetByID(r.Context(), orderID)
	if err != nil {
		respondAppError(w, err)
		return
	}
	if !caller.CanWriteOrder(current.Customer, current.StoreID) {
		forbidden(w)
		return
	}

	if err := cfg.Service.SetOrderState(r.Context(), orderID, models.OrderState(payload.State), payload.TrackID, caller.Customer.ID(), payload.Comment); err != nil {
		respondAppError(w, err)
		return
	}

	updated, err := cfg.Service.GetByID(r.Context(), orderID)
	if err != nil {
		respondAppError(w, err)
		return
	}
	middlewares.RespondWithJSON(w, http.StatusOK, updated)
}

// HandlerDiffs handles GET /order_diff/by-id/{uuid}.
func (cfg *Config) HandlerDiffs(w http.ResponseWriter, r *http.Request, caller acl.Caller) {
	orderID := chi.URLParam(r, "uuid")

	o, err := cfg.Service.GetByID(r.Context(), orderID)
	if err != nil {
		respondAppError(w, err)
		return
	}
	if !caller.CanReadOrder(o.Customer, o.StoreID) {
		forbidden(w)
		return
	}

	diffs, err := cfg.Service.DiffsByOrderID(r.Context(), orderID)
	if err != nil {
		respondAppError(w, err)
		return
	}
	middlewares.RespondWithJSON(w, http.StatusOK, diffs)
}
