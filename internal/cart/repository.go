// Package cart implements the cart repository and service:
// two physical partitions (cart_items_user, cart_items_session) dispatched
// through a single Customer-tagged-union API, four insert strategies, and
// the cart operations the HTTP surface and order conversion call.
package cart

import (
	"context"
	"database/sql"
	"errors"

	"github.com/STaninnat/orders/handlers"
	"github.com/STaninnat/orders/internal/database"
	"github.com/STaninnat/orders/models"
)

// Repository dispatches cart reads/writes to whichever physical partition
// a Customer belongs to.
type Repository struct {
	db *database.Queries
}

// NewRepository builds a Repository over db.
func NewRepository(db *database.Queries) *Repository {
	return &Repository{db: db}
}

// WithQueries returns a Repository bound to a different Queries handle —
// used to run cart operations inside an order-conversion transaction.
func (r *Repository) WithQueries(db *database.Queries) *Repository {
	return &Repository{db: db}
}

func notFound(err error, productID string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return handlers.NewAppError(handlers.CodeNotFound, "cart item not found: "+productID, err)
	}
	return handlers.NewAppError(handlers.CodeConnection, "cart query failed", err)
}

// GetCart returns every item belonging to customer, across whichever
// partition its type maps to.
func (r *Repository) GetCart(ctx context.Context, customer models.Customer) ([]models.CartItem, error) {
	if customer.Type == models.CustomerTypeUser {
		rows, err := r.db.GetCartItemsByUser(ctx, customer.UserID)
		if err != nil {
			return nil, handlers.NewAppError(handlers.CodeConnection, "failed to load cart", err)
		}
		items := make([]models.CartItem, 0, len(rows))
		for _, row := range rows {
			items = append(items, userRowToItem(row))
		}
		return items, nil
	}

	rows, err := r.db.GetCartItemsBySession(ctx, customer.SessionID)
	if err != nil {
		return nil, handlers.NewAppError(handlers.CodeConnection, "failed to load cart", err)
	}
	items := make([]models.CartItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, sessionRowToItem(row))
	}
	return items, nil
}

// GetItem returns one cart row, or a NotFound AppError if it doesn't exist.
func (r *Repository) GetItem(ctx context.Context, customer models.Customer, productID string) (models.CartItem, error) {
	if customer.Type == models.CustomerTypeUser {
		row, err := r.db.GetCartItemByUserAndProduct(ctx, customer.UserID, productID)
		if err != nil {
			return models.CartItem{}, notFound(err, productID)
		}
		return userRowToItem(row), nil
	}

	row, err := r.db.GetCartItemBySessionAndProduct(ctx, customer.SessionID, productID)
	if err != nil {
		return models.CartItem{}, notFound(err, productID)
	}
	return sessionRowToItem(row), nil
}

// List returns up to count items of customer's cart starting at
// fromProductID, ordered by product id so a client can page through a
// large cart with stable cursors.
func (r *Repository) List(ctx context.Context, customer models.Customer, fromProductID string, count int32) ([]models.CartItem, error) {
	if customer.Type == models.CustomerTypeUser {
		rows, err := r.db.GetCartItemsByUserPage(ctx, customer.UserID, fromProductID, count)
		if err != nil {
			return nil, handlers.NewAppError(handlers.CodeConnection, "failed to list cart", err)
		}
		items := make([]models.CartItem, 0, len(rows))
		for _, row := range rows {
			items = append(items, userRowToItem(row))
		}
		return items, nil
	}

	rows, err := r.db.GetCartItemsBySessionPage(ctx, customer.SessionID, fromProductID, count)
	if err != nil {
		return nil, handlers.NewAppError(handlers.CodeConnection, "failed to list cart", err)
	}
	items := make([]models.CartItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, sessionRowToItem(row))
	}
	return items, nil
}

// Insert adds item to customer's cart under the given strategy
// (the strategy is a parameter, not a separate repository method).
func (r *Repository) Insert(ctx context.Context, customer models.Customer, id string, item models.CartItem, strategy models.InsertStrategy) error {
	var err error
	if customer.Type == models.CustomerTypeUser {
		arg := database.InsertCartItemUserParams{
			ID: id, UserID: customer.UserID, ProductID: item.ProductID, StoreID: item.StoreID,
			Quantity: item.Quantity, Selected: item.Selected, Comment: models.NullComment(item.Comment),
			PreOrder: item.PreOrder, PreOrderDays: nullInt32(item.PreOrderDays), CouponID: nullString(item.CouponID),
		}
		switch strategy {
		case models.Replacer:
			err = r.db.InsertCartItemUserReplacer(ctx, arg)
		case models.Incrementer:
			err = r.db.InsertCartItemUserIncrementer(ctx, arg)
		case models.CollisionNoOp:
			err = r.db.InsertCartItemUserCollisionNoOp(ctx, arg)
		default:
			err = r.db.InsertCartItemUserStandard(ctx, arg)
		}
	} else {
		arg := database.InsertCartItemSessionParams{
			ID: id, SessionID: customer.SessionID, ProductID: item.ProductID, StoreID: item.StoreID,
			Quantity: item.Quantity, Selected: item.Selected, Comment: models.NullComment(item.Comment),
			PreOrder: item.PreOrder, PreOrderDays: nullInt32(item.PreOrderDays), CouponID: nullString(item.CouponID),
		}
		switch strategy {
		case models.Replacer:
			err = r.db.InsertCartItemSessionReplacer(ctx, arg)
		case models.Incrementer:
			err = r.db.InsertCartItemSessionIncrementer(ctx, arg)
		case models.CollisionNoOp:
			err = r.db.InsertCartItemSessionCollisionNoOp(ctx, arg)
		default:
			err = r.db.InsertCartItemSessionStandard(ctx, arg)
		}
	}
	if err != nil {
		return handlers.NewAppError(handlers.CodeConflict, "cart item insert failed", err)
	}
	return nil
}

// UpdateQuantity sets productID's quantity, reporting whether a row matched.
func (r *Repository) UpdateQuantity(ctx context.Context, customer models.Customer, productID string, quantity int32) (bool, error) {
	var n int64
	var err error
	if customer.Type == models.CustomerTypeUser {
		n, err = r.db.UpdateCartItemUserQuantity(ctx, customer.UserID, productID, quantity)
	} else {
		n, err = r.db.UpdateCartItemSessionQuantity(ctx, customer.SessionID, productID, quantity)
	}
	if err != nil {
		return false, handlers.NewAppError(handlers.CodeConnection, "failed to update quantity", err)
	}
	return n > 0, nil
}

// UpdateSelection sets productID's selected flag, reporting whether a row matched.
func (r *Repository) UpdateSelection(ctx context.Context, customer models.Customer, productID string, selected bool) (bool, error) {
	var n int64
	var err error
	if customer.Type == models.CustomerTypeUser {
		n, err = r.db.UpdateCartItemUserSelection(ctx, customer.UserID, productID, selected)
	} else {
		n, err = r.db.UpdateCartItemSessionSelection(ctx, customer.SessionID, productID, selected)
	}
	if err != nil {
		return false, handlers.NewAppError(handlers.CodeConnection, "failed to update selection", err)
	}
	return n > 0, nil
}

// UpdateComment sets productID's comment, reporting whether a row matched.
func (r *Repository) UpdateComment(ctx context.Context, customer models.Customer, productID, comment string) (bool, error) {
	var n int64
	var err error
	if customer.Type == models.CustomerTypeUser {
		n, err = r.db.UpdateCartItemUserComment(ctx, customer.UserID, productID, models.NullComment(comment))
	} else {
		n, err = r.db.UpdateCartItemSessionComment(ctx, customer.SessionID, productID, models.NullComment(comment))
	}
	if err != nil {
		return false, handlers.NewAppError(handlers.CodeConnection, "failed to update comment", err)
	}
	return n > 0, nil
}

// DeleteItem removes one product from customer's cart.
func (r *Repository) DeleteItem(ctx context.Context, customer models.Customer, productID string) error {
	var err error
	if customer.Type == models.CustomerTypeUser {
		err = r.db.DeleteCartItemUser(ctx, customer.UserID, productID)
	} else {
		err = r.db.DeleteCartItemSession(ctx, customer.SessionID, productID)
	}
	if err != nil {
		return handlers.NewAppError(handlers.CodeConnection, "failed to delete cart item", err)
	}
	return nil
}

// Clear removes every item from customer's cart.
func (r *Repository) Clear(ctx context.Context, customer models.Customer) error {
	var err error
	if customer.Type == models.CustomerTypeUser {
		err = r.db.ClearCartItemsUser(ctx, customer.UserID)
	} else {
		err = r.db.ClearCartItemsSession(ctx, customer.SessionID)
	}
	if err != nil {
		return handlers.NewAppError(handlers.CodeConnection, "failed to clear cart", err)
	}
	return nil
}

// DeleteSelected removes the given product ids from customer's cart — used
// after a successful cart-to-order conversion removes the converted rows.
func (r *Repository) DeleteSelected(ctx context.Context, customer models.Customer, productIDs []string) error {
	if len(productIDs) == 0 {
		return nil
	}
	var err error
	if customer.Type == models.CustomerTypeUser {
		err = r.db.DeleteCartItemsUserSelected(ctx, customer.UserID, productIDs)
	} else {
		err = r.db.DeleteCartItemsSessionSelected(ctx, customer.SessionID, productIDs)
	}
	if err != nil {
		return handlers.NewAppError(handlers.CodeConnection, "failed to remove converted cart items", err)
	}
	return nil
}

func userRowToItem(row database.CartItemsUser) models.CartItem {
	return models.CartItem{
		ID: row.ID, ProductID: row.ProductID, StoreID: row.StoreID,
		Quantity: row.Quantity, Selected: row.Selected, Comment: row.Comment.String,
		PreOrder: row.PreOrder, PreOrderDays: row.PreOrderDays.Int32, CouponID: row.CouponID.String,
		CreatedAt: row.CreatedAt, UpdatedAt: row.UpdatedAt,
	}
}

func sessionRowToItem(row database.CartItemsSession) models.CartItem {
	return models.CartItem{
		ID: row.ID, ProductID: row.ProductID, StoreID: row.StoreID,
		Quantity: row.Quantity, Selected: row.Selected, Comment: row.Comment.String,
		PreOrder: row.PreOrder, PreOrderDays: row.PreOrderDays.Int32, CouponID: row.CouponID.String,
		CreatedAt: row.CreatedAt, UpdatedAt: row.UpdatedAt,
	}
}

func nullInt32(v int32) sql.NullInt32 {
	return sql.NullInt32{Int32: v, Valid: v != 0}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
