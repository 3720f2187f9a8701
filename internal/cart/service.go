package cart

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/STaninnat/orders/handlers"
	"github.com/STaninnat/orders/internal/database"
	"github.com/STaninnat/orders/models"
)

// DBConnAPI is the subset of *sql.DB the cart service needs, narrowed
// behind an interface for testability.
type DBConnAPI interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

// Service implements the cart business operations.
type Service struct {
	repo   *Repository
	db     *database.Queries
	dbConn DBConnAPI
}

// NewService builds a Service over repo, using dbConn/db to open the
// transaction cart merge needs.
func NewService(repo *Repository, db *database.Queries, dbConn DBConnAPI) *Service {
	return &Service{repo: repo, db: db, dbConn: dbConn}
}

// GetCart returns customer's full cart.
func (s *Service) GetCart(ctx context.Context, customer models.Customer) ([]models.CartItem, error) {
	return s.repo.GetCart(ctx, customer)
}

// List returns a page of customer's cart: up to count items whose
// product id is at or after fromProductID. A non-positive count falls
// back to the full cart.
func (s *Service) List(ctx context.Context, customer models.Customer, fromProductID string, count int32) ([]models.CartItem, error) {
	if count <= 0 {
		return s.repo.GetCart(ctx, customer)
	}
	return s.repo.List(ctx, customer, fromProductID, count)
}

// IncrementItem adds quantity to productID's existing row, or inserts a
// new row at that quantity if none exists. storeID is recorded on a
// fresh row and left untouched on an existing one.
func (s *Service) IncrementItem(ctx context.Context, customer models.Customer, productID, storeID string, quantity int32) ([]models.CartItem, error) {
	if quantity <= 0 {
		return nil, handlers.NewAppError(handlers.CodeValidation, "quantity must be positive", nil)
	}
	item := models.CartItem{ProductID: productID, StoreID: storeID, Quantity: quantity, Selected: true}
	if err := s.repo.Insert(ctx, customer, uuid.New().String(), item, models.Incrementer); err != nil {
		return nil, err
	}
	return s.repo.GetCart(ctx, customer)
}

// SetQuantity sets productID's quantity. If no row matches, the cart is
// returned unchanged rather than an error.
func (s *Service) SetQuantity(ctx context.Context, customer models.Customer, productID string, quantity int32) ([]models.CartItem, error) {
	if quantity < 0 {
		return nil, handlers.NewAppError(handlers.CodeValidation, "quantity cannot be negative", nil)
	}
	if _, err := s.repo.UpdateQuantity(ctx, customer, productID, quantity); err != nil {
		return nil, err
	}
	return s.repo.GetCart(ctx, customer)
}

// SetSelection sets productID's selected flag, unchanged-cart-on-no-match
// semantics per SetQuantity.
func (s *Service) SetSelection(ctx context.Context, customer models.Customer, productID string, selected bool) ([]models.CartItem, error) {
	if _, err := s.repo.UpdateSelection(ctx, customer, productID, selected); err != nil {
		return nil, err
	}
	return s.repo.GetCart(ctx, customer)
}

// SetComment sets productID's comment, unchanged-cart-on-no-match
// semantics per SetQuantity.
func (s *Service) SetComment(ctx context.Context, customer models.Customer, productID, comment string) ([]models.CartItem, error) {
	if _, err := s.repo.UpdateComment(ctx, customer, productID, comment); err != nil {
		return nil, err
	}
	return s.repo.GetCart(ctx, customer)
}

// DeleteItem removes productID from customer's cart.
func (s *Service) DeleteItem(ctx context.Context, customer models.Customer, productID string) ([]models.CartItem, error) {
	if err := s.repo.DeleteItem(ctx, customer, productID); err != nil {
		return nil, err
	}
	return s.repo.GetCart(ctx, customer)
}

// ClearCart empties customer's cart. Clearing an already-empty cart is a
// no-op, not an error.
func (s *Service) ClearCart(ctx context.Context, customer models.Customer) error {
	return s.repo.Clear(ctx, customer)
}

// Merge combines the `from` cart into the `to` cart in one transaction:
// delete every `from` row, insert each into `to` with CollisionNoOp so the
// destination's existing rows win on conflict, then return the resulting
// `to` cart.
func (s *Service) Merge(ctx context.Context, from, to models.Customer) ([]models.CartItem, error) {
	tx, err := s.dbConn.BeginTx(ctx, nil)
	if err != nil {
		return nil, handlers.NewAppError(handlers.CodeConnection, "failed to start merge transaction", err)
	}
	defer func() {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			logrus.WithError(rbErr).Error("cart merge: failed to rollback transaction")
		}
	}()

	txRepo := s.repo.WithQueries(s.db.WithTx(tx))

	items, err := txRepo.GetCart(ctx, from)
	if err != nil {
		return nil, err
	}

	if err := txRepo.Clear(ctx, from); err != nil {
		return nil, err
	}

	for _, item := range items {
		if err := txRepo.Insert(ctx, to, uuid.New().String(), item, models.CollisionNoOp); err != nil {
			return nil, err
		}
	}

	merged, err := txRepo.GetCart(ctx, to)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, handlers.NewAppError(handlers.CodeConnection, "failed to commit merge", err)
	}

	return merged, nil
}
