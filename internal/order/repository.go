// Package order implements the order repository, diff log, and order
// service: atomic cart-to-order conversion, the append-only
// diff log, the state machine, and the thin search wrappers the
// background loaders call into.
package order

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/STaninnat/orders/handlers"
	"github.com/STaninnat/orders/internal/database"
	"github.com/STaninnat/orders/models"
)

// Repository wraps the generated database layer with domain-typed reads
// and writes over orders and their diff log.
type Repository struct {
	db *database.Queries
}

// NewRepository builds a Repository over db.
func NewRepository(db *database.Queries) *Repository {
	return &Repository{db: db}
}

// WithQueries returns a Repository bound to a different Queries handle —
// used to run order writes inside a transaction.
func (r *Repository) WithQueries(db *database.Queries) *Repository {
	return &Repository{db: db}
}

func wrapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return handlers.NewAppError(handlers.CodeNotFound, "order not found", err)
	}
	return handlers.NewAppError(handlers.CodeConnection, "order query failed", err)
}

// ByID looks up one order by its identifier.
func (r *Repository) ByID(ctx context.Context, id string) (models.Order, error) {
	row, err := r.db.GetOrderByID(ctx, id)
	if err != nil {
		return models.Order{}, wrapNotFound(err)
	}
	return rowToOrder(row), nil
}

// BySlug looks up one order by its per-store slug.
func (r *Repository) BySlug(ctx context.Context, storeID string, slug int64) (models.Order, error) {
	row, err := r.db.GetOrderBySlug(ctx, storeID, slug)
	if err != nil {
		return models.Order{}, wrapNotFound(err)
	}
	return rowToOrder(row), nil
}

// ByCustomer lists every order belonging to customer.
func (r *Repository) ByCustomer(ctx context.Context, customer models.Customer) ([]models.Order, error) {
	rows, err := r.db.GetOrdersByCustomer(ctx, string(customer.Type), customer.ID())
	if err != nil {
		return nil, handlers.NewAppError(handlers.CodeConnection, "failed to list orders by customer", err)
	}
	return rowsToOrders(rows), nil
}

// ByStore lists every order for storeID.
func (r *Repository) ByStore(ctx context.Context, storeID string) ([]models.Order, error) {
	rows, err := r.db.GetOrdersByStore(ctx, storeID)
	if err != nil {
		return nil, handlers.NewAppError(handlers.CodeConnection, "failed to list orders by store", err)
	}
	return rowsToOrders(rows), nil
}

// ByConversionID lists every order created by one conversion — the set
// RevertConversion operates on.
func (r *Repository) ByConversionID(ctx context.Context, conversionID string) ([]models.Order, error) {
	rows, err := r.db.GetOrdersByConversionID(ctx, conversionID)
	if err != nil {
		return nil, handlers.NewAppError(handlers.CodeConnection, "failed to list orders by conversion", err)
	}
	return rowsToOrders(rows), nil
}

// SearchParams mirrors database.SearchOrdersParams with typed, optional
// fields: zero values (and a nil PaymentStatus) are wildcards.
type SearchParams struct {
	Slug          int64
	CreatedFrom   time.Time
	CreatedTo     time.Time
	PaymentStatus *bool
	StoreID       string
	CustomerType  models.CustomerType
	CustomerID    string
	State         models.OrderState
}

// Search runs a filtered order search, treating empty fields as wildcards.
func (r *Repository) Search(ctx context.Context, p SearchParams) ([]models.Order, error) {
	arg := database.SearchOrdersParams{
		Slug:         sql.NullInt64{Int64: p.Slug, Valid: p.Slug != 0},
		CreatedFrom:  sql.NullTime{Time: p.CreatedFrom, Valid: !p.CreatedFrom.IsZero()},
		CreatedTo:    sql.NullTime{Time: p.CreatedTo, Valid: !p.CreatedTo.IsZero()},
		StoreID:      nullable(p.StoreID),
		CustomerType: nullable(string(p.CustomerType)),
		CustomerID:   nullable(p.CustomerID),
		State:        nullable(string(p.State)),
	}
	if p.PaymentStatus != nil {
		arg.PaymentStatus = sql.NullBool{Bool: *p.PaymentStatus, Valid: true}
	}

	rows, err := r.db.SearchOrders(ctx, arg)
	if err != nil {
		return nil, handlers.NewAppError(handlers.CodeConnection, "order search failed", err)
	}
	return rowsToOrders(rows), nil
}

// GetOrdersWithState returns every order in state last updated at or
// before maxUpdatedAt — the loaders' polling query.
func (r *Repository) GetOrdersWithState(ctx context.Context, state models.OrderState, maxUpdatedAt time.Time) ([]models.Order, error) {
	rows, err := r.db.GetOrdersByState(ctx, string(state), maxUpdatedAt)
	if err != nil {
		return nil, handlers.NewAppError(handlers.CodeConnection, "failed to list orders by state", err)
	}
	return rowsToOrders(rows), nil
}

// SearchByDiffs finds every order whose diff log recorded a transition
// into state within [from, to) — the report loader's source query.
func (r *Repository) SearchByDiffs(ctx context.Context, state models.OrderState, from, to time.Time) ([]models.Order, error) {
	diffs, err := r.db.SearchOrderDiffsByState(ctx, string(state), from, to)
	if err != nil {
		return nil, handlers.NewAppError(handlers.CodeConnection, "order diff search failed", err)
	}

	orders := make([]models.Order, 0, len(diffs))
	for _, d := range diffs {
		o, err := r.ByID(ctx, d.OrderID)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

// Insert writes a brand-new order row.
func (r *Repository) Insert(ctx context.Context, o models.Order) error {
	err := r.db.InsertOrder(ctx, database.InsertOrderParams{
		ID: o.ID, CreatedFrom: o.CreatedFrom, ConversionID: o.ConversionID, Slug: o.Slug,
		StoreID: o.StoreID, CustomerType: string(o.Customer.Type), CustomerID: o.Customer.ID(),
		ProductID: o.ProductID, Price: o.Price, Currency: o.Currency, Quantity: o.Quantity,
		ReceiverName: o.ReceiverName, ReceiverPhone: o.ReceiverPhone, ReceiverEmail: o.ReceiverEmail,
		State: string(o.State), PaymentStatus: o.PaymentStatus,
		DeliveryCompany: nullable(o.DeliveryCompany), TrackID: nullable(o.TrackID),
		PreOrder: o.PreOrder, PreOrderDays: nullableInt32(o.PreOrderDays),
		CouponID: nullable(o.CouponID), CouponPercent: nullable(o.CouponPercent),
		CouponDiscount: nullable(o.CouponDiscount), ProductDiscount: nullable(o.ProductDiscount),
		TotalAmount:              o.TotalAmount,
		AdministrativeAreaLevel1: nullable(o.Address.AdministrativeAreaLevel1),
		AdministrativeAreaLevel2: nullable(o.Address.AdministrativeAreaLevel2),
		Country:                  nullable(o.Address.Country),
		Locality:                 nullable(o.Address.Locality),
		Political:                nullable(o.Address.Political),
		PostalCode:               nullable(o.Address.PostalCode),
		Route:                    nullable(o.Address.Route),
		StreetNumber:             nullable(o.Address.StreetNumber),
		Address:                  nullable(o.Address.Address),
		PlaceID:                  nullable(o.Address.PlaceID),
	})
	if err != nil {
		return handlers.NewAppError(handlers.CodeConflict, "failed to insert order", err)
	}
	return nil
}

// NextSlug returns storeID's next per-store monotonic slug. Must be
// called inside the same transaction as the subsequent Insert.
func (r *Repository) NextSlug(ctx context.Context, storeID string) (int64, error) {
	slug, err := r.db.NextOrderSlug(ctx, storeID)
	if err != nil {
		return 0, handlers.NewAppError(handlers.CodeConnection, "failed to allocate order slug", err)
	}
	return slug, nil
}

// UpdateState transitions an order to state, recording trackID when non-empty.
func (r *Repository) UpdateState(ctx context.Context, id string, state models.OrderState, trackID string) error {
	var n int64
	var err error
	if trackID != "" {
		n, err = r.db.UpdateOrderStateWithTrackID(ctx, id, string(state), trackID)
	} else {
		n, err = r.db.UpdateOrderState(ctx, id, string(state))
	}
	if err != nil {
		return handlers.NewAppError(handlers.CodeConnection, "failed to update order state", err)
	}
	if n == 0 {
		return handlers.NewAppError(handlers.CodeNotFound, "order not found", nil)
	}
	return nil
}

// DeleteByConversionID removes every order (and, via
// DeleteOrderDiffsByConversionID, every diff) created by one
// conversion — RevertConversion's undo step.
func (r *Repository) DeleteByConversionID(ctx context.Context, conversionID string) error {
	if err := r.db.DeleteOrderDiffsByConversionID(ctx, conversionID); err != nil {
		return handlers.NewAppError(handlers.CodeConnection, "failed to delete order diffs", err)
	}
	if err := r.db.DeleteOrdersByConversionID(ctx, conversionID); err != nil {
		return handlers.NewAppError(handlers.CodeConnection, "failed to delete orders", err)
	}
	return nil
}

// AppendDiff appends one entry to order id's diff log, recording who
// caused the transition — always called in the same transaction as the
// state change it records.
func (r *Repository) AppendDiff(ctx context.Context, diffID, orderID, committer string, state models.OrderState, comment string) error {
	err := r.db.InsertOrderDiff(ctx, database.InsertOrderDiffParams{
		ID: diffID, OrderID: orderID, Committer: committer,
		State: string(state), Comment: nullable(comment),
	})
	if err != nil {
		return handlers.NewAppError(handlers.CodeConnection, "failed to append order diff", err)
	}
	return nil
}

// DiffsByOrderID returns the full diff log for one order, oldest first —
// backs the GET /order_diff/by-id/{uuid} endpoint.
func (r *Repository) DiffsByOrderID(ctx context.Context, orderID string) ([]models.OrderDiff, error) {
	rows, err := r.db.GetOrderDiffsByOrderID(ctx, orderID)
	if err != nil {
		return nil, handlers.NewAppError(handlers.CodeConnection, "failed to load order diffs", err)
	}
	out := make([]models.OrderDiff, 0, len(rows))
	for _, row := range rows {
		out = append(out, models.OrderDiff{
			ID: row.ID, OrderID: row.OrderID, Committer: row.Committer,
			State: models.OrderState(row.State), Comment: row.Comment.String, CreatedAt: row.CreatedAt,
		})
	}
	return out, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullableInt32(v int32) sql.NullInt32 {
	return sql.NullInt32{Int32: v, Valid: v != 0}
}

func rowToOrder(row database.Order) models.Order {
	return models.Order{
		ID: row.ID, CreatedFrom: row.CreatedFrom, ConversionID: row.ConversionID, Slug: row.Slug,
		StoreID: row.StoreID,
		Customer: models.Customer{
			Type:      models.CustomerType(row.CustomerType),
			UserID:    userIDIfUser(row),
			SessionID: sessionIDIfAnonymous(row),
		},
		ProductID: row.ProductID, Price: row.Price, Currency: row.Currency, Quantity: row.Quantity,
		ReceiverName: row.ReceiverName, ReceiverPhone: row.ReceiverPhone, ReceiverEmail: row.ReceiverEmail,
		State: models.OrderState(row.State), PaymentStatus: row.PaymentStatus,
		DeliveryCompany: row.DeliveryCompany.String, TrackID: row.TrackID.String,
		PreOrder: row.PreOrder, PreOrderDays: row.PreOrderDays.Int32,
		CouponID: row.CouponID.String, CouponPercent: row.CouponPercent.String,
		CouponDiscount: row.CouponDiscount.String, ProductDiscount: row.ProductDiscount.String,
		TotalAmount: row.TotalAmount,
		Address: models.Address{
			AdministrativeAreaLevel1: row.AdministrativeAreaLevel1.String,
			AdministrativeAreaLevel2: row.AdministrativeAreaLevel2.String,
			Country:                  row.Country.String,
			Locality:                 row.Locality.String,
			Political:                row.Political.String,
			PostalCode:               row.PostalCode.String,
			Route:                    row.Route.String,
			StreetNumber:             row.StreetNumber.String,
			Address:                  row.Address.String,
			PlaceID:                  row.PlaceID.String,
		},
		CreatedAt: row.CreatedAt, UpdatedAt: row.UpdatedAt,
	}
}

func userIDIfUser(row database.Order) string {
	if row.CustomerType == string(models.CustomerTypeUser) {
		return row.CustomerID
	}
	return ""
}

func sessionIDIfAnonymous(row database.Order) string {
	if row.CustomerType == string(models.CustomerTypeAnonymous) {
		return row.CustomerID
	}
	return ""
}

func rowsToOrders(rows []database.Order) []models.Order {
	out := make([]models.Order, 0, len(rows))
	for _, row := range rows {
		out = append(out, rowToOrder(row))
	}
	return out
}
