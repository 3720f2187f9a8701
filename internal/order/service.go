package order

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/STaninnat/orders/handlers"
	"github.com/STaninnat/orders/internal/database"
	"github.com/STaninnat/orders/models"
)

// CartSourceFactory is the subset of cart.Repository the order service
// needs to convert a cart into orders and to undo that conversion.
// Narrowing to an interface here (rather than importing the cart package
// directly) keeps the two domains decoupled and independently testable.
type CartSourceFactory interface {
	GetCart(ctx context.Context, customer models.Customer) ([]models.CartItem, error)
	DeleteSelected(ctx context.Context, customer models.Customer, productIDs []string) error
	Insert(ctx context.Context, customer models.Customer, id string, item models.CartItem, strategy models.InsertStrategy) error
}

// CartFactory binds a CartSourceFactory to a specific Queries handle —
// implemented by passing cart.Repository.WithQueries as a func value,
// since *cart.Repository already matches CartSourceFactory structurally.
type CartFactory func(db *database.Queries) CartSourceFactory

// PriceInfo is looked up per product during cart-to-order conversion; a
// missing entry is a PriceMissing error, not a zero price.
type PriceInfo struct {
	Price    string
	Currency string
}

// ReceiverInfo is the shipping contact captured at conversion time.
type ReceiverInfo struct {
	Name  string
	Phone string
	Email string
}

// ConvertCartParams is everything ConvertCart needs beyond the cart
// contents themselves. Store, pre-order, and coupon details travel on
// the cart lines.
type ConvertCartParams struct {
	Customer models.Customer
	Prices   map[string]PriceInfo
	Receiver ReceiverInfo
	Address  models.Address
}

// DBConnAPI narrows *sql.DB to what the order service needs for
// transactional operations.
type DBConnAPI interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

// Service implements the order business operations.
type Service struct {
	repo        *Repository
	cartFactory CartFactory
	db          *database.Queries
	dbConn      DBConnAPI
}

// NewService builds a Service over repo, using cartFactory to reach the
// cart repository bound to each transaction's Queries handle, and
// dbConn/db to run the multi-statement operations (ConvertCart,
// RevertConversion, SetOrderState) inside one transaction each.
func NewService(repo *Repository, cartFactory CartFactory, db *database.Queries, dbConn DBConnAPI) *Service {
	return &Service{repo: repo, cartFactory: cartFactory, db: db, dbConn: dbConn}
}

func (s *Service) withTx(ctx context.Context, fn func(tx *sql.Tx, repo *Repository, cart CartSourceFactory) error) error {
	tx, err := s.dbConn.BeginTx(ctx, nil)
	if err != nil {
		return handlers.NewAppError(handlers.CodeConnection, "failed to start transaction", err)
	}
	defer func() {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			logrus.WithError(rbErr).Error("order service: failed to rollback transaction")
		}
	}()

	txQueries := s.db.WithTx(tx)
	if err := fn(tx, s.repo.WithQueries(txQueries), s.cartFactory(txQueries)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return handlers.NewAppError(handlers.CodeConnection, "failed to commit transaction", err)
	}
	return nil
}

// ConvertCart converts customer's selected cart items into one order per
// product, all in one transaction: select the cart, filter to selected
// items, look up a fresh conversion id and per-store slug, price each
// item from params.Prices (PriceMissing if absent), persist the orders
// and their initial New diffs, then remove the converted cart items.
// Any failure rolls back everything.
func (s *Service) ConvertCart(ctx context.Context, params ConvertCartParams) ([]models.Order, error) {
	var created []models.Order

	err := s.withTx(ctx, func(tx *sql.Tx, repo *Repository, cartSrc CartSourceFactory) error {
		items, err := cartSrc.GetCart(ctx, params.Customer)
		if err != nil {
			return err
		}

		var selected []models.CartItem
		for _, item := range items {
			if item.Selected {
				selected = append(selected, item)
			}
		}
		if len(selected) == 0 {
			return handlers.NewAppError(handlers.CodeValidation, "no selected items to convert", nil)
		}

		conversionID := uuid.New().String()
		converted := make([]string, 0, len(selected))
		created = make([]models.Order, 0, len(selected))

		for _, item := range selected {
			price, ok := params.Prices[item.ProductID]
			if !ok {
				return handlers.NewAppError(handlers.CodePriceMissing, "no price available for product "+item.ProductID, nil)
			}

			slug, err := repo.NextSlug(ctx, item.StoreID)
			if err != nil {
				return err
			}

			o := models.Order{
				ID: uuid.New().String(), CreatedFrom: item.ID, ConversionID: conversionID, Slug: slug,
				StoreID: item.StoreID, Customer: params.Customer, ProductID: item.ProductID,
				Price: price.Price, Currency: price.Currency, Quantity: item.Quantity,
				ReceiverName: params.Receiver.Name, ReceiverPhone: params.Receiver.Phone, ReceiverEmail: params.Receiver.Email,
				State: models.OrderStateNew, PreOrder: item.PreOrder, PreOrderDays: item.PreOrderDays,
				CouponID: item.CouponID, TotalAmount: price.Price, Address: params.Address,
			}
			if err := repo.Insert(ctx, o); err != nil {
				return err
			}
			if err := repo.AppendDiff(ctx, uuid.New().String(), o.ID, params.Customer.ID(), models.OrderStateNew, ""); err != nil {
				return err
			}

			created = append(created, o)
			converted = append(converted, item.ProductID)
		}

		return cartSrc.DeleteSelected(ctx, params.Customer, converted)
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// RevertConversion undoes one ConvertCart call: delete the orders and
// diffs it created, then re-insert the converted items back into the
// customer's cart with CollisionNoOp so any items added meanwhile are
// preserved.
func (s *Service) RevertConversion(ctx context.Context, conversionID string) error {
	return s.withTx(ctx, func(tx *sql.Tx, repo *Repository, cartSrc CartSourceFactory) error {
		orders, err := repo.ByConversionID(ctx, conversionID)
		if err != nil {
			return err
		}
		if len(orders) == 0 {
			return handlers.NewAppError(handlers.CodeNotFound, "no orders for conversion", nil)
		}

		if err := repo.DeleteByConversionID(ctx, conversionID); err != nil {
			return err
		}

		for _, o := range orders {
			item := models.CartItem{
				ProductID: o.ProductID, StoreID: o.StoreID, Quantity: o.Quantity, Selected: true,
				PreOrder: o.PreOrder, PreOrderDays: o.PreOrderDays, CouponID: o.CouponID,
			}
			// The original cart-item id survived as created_from, so the
			// restored row keeps its identity across a convert/revert pair.
			if err := cartSrc.Insert(ctx, o.Customer, o.CreatedFrom, item, models.CollisionNoOp); err != nil {
				return err
			}
		}
		return nil
	})
}

// SetOrderState validates and applies a state transition, appending one
// diff entry atomically with the state change. committer identifies who
// caused the transition and comment travels with the diff entry. A Sent
// transition without trackID fails with TrackIdRequired.
func (s *Service) SetOrderState(ctx context.Context, orderID string, to models.OrderState, trackID, committer, comment string) error {
	if to == models.OrderStateSent && trackID == "" {
		return handlers.NewAppError(handlers.CodeTrackIDRequired, "track id is required to mark an order Sent", nil)
	}

	return s.withTx(ctx, func(tx *sql.Tx, repo *Repository, cartSrc CartSourceFactory) error {
		current, err := repo.ByID(ctx, orderID)
		if err != nil {
			return err
		}
		if !models.CanTransition(current.State, to) {
			return handlers.NewAppError(handlers.CodeInvalidTransition, "cannot transition from "+string(current.State)+" to "+string(to), nil)
		}
		if err := repo.UpdateState(ctx, orderID, to, trackID); err != nil {
			return err
		}
		return repo.AppendDiff(ctx, uuid.New().String(), orderID, committer, to, comment)
	})
}

// Search runs a filtered order search (thin wrapper over Repository.Search).
func (s *Service) Search(ctx context.Context, p SearchParams) ([]models.Order, error) {
	return s.repo.Search(ctx, p)
}

// GetByID looks up one order by id — backs the HTTP surface's
// /orders/by-id/{uuid} and /orders/by-id/{uuid}/status routes.
func (s *Service) GetByID(ctx context.Context, id string) (models.Order, error) {
	return s.repo.ByID(ctx, id)
}

// GetBySlug looks up one order by its per-store slug — backs
// /orders/by-slug/{int}.
func (s *Service) GetBySlug(ctx context.Context, storeID string, slug int64) (models.Order, error) {
	return s.repo.BySlug(ctx, storeID, slug)
}

// OrdersByCustomer lists every order belonging to customer — backs GET /orders.
func (s *Service) OrdersByCustomer(ctx context.Context, customer models.Customer) ([]models.Order, error) {
	return s.repo.ByCustomer(ctx, customer)
}

// OrdersByStore lists every order for storeID — backs /orders/by-store/{store_id}.
func (s *Service) OrdersByStore(ctx context.Context, storeID string) ([]models.Order, error) {
	return s.repo.ByStore(ctx, storeID)
}

// OrdersByConversionID lists the orders one conversion produced — used by
// the HTTP layer to ACL-check a revert before performing it.
func (s *Service) OrdersByConversionID(ctx context.Context, conversionID string) ([]models.Order, error) {
	return s.repo.ByConversionID(ctx, conversionID)
}

// DiffsByOrderID returns the diff log for one order (thin wrapper over
// Repository.DiffsByOrderID) — backs the GET /order_diff/by-id/{uuid} endpoint.
func (s *Service) DiffsByOrderID(ctx context.Context, orderID string) ([]models.OrderDiff, error) {
	return s.repo.DiffsByOrderID(ctx, orderID)
}

// SearchByDiffs finds every order that transitioned into state within
// [from, to) — used by the report loader.
func (s *Service) SearchByDiffs(ctx context.Context, state models.OrderState, from, to time.Time) ([]models.Order, error) {
	return s.repo.SearchByDiffs(ctx, state, from, to)
}

// GetOrdersWithState returns orders in state last updated at or before
// maxUpdatedAt — used by the shipping-tracker and delivery-completion loaders.
func (s *Service) GetOrdersWithState(ctx context.Context, state models.OrderState, maxUpdatedAt time.Time) ([]models.Order, error) {
	return s.repo.GetOrdersWithState(ctx, state, maxUpdatedAt)
}

// TrackDeliveredOrders returns Delivered orders last updated before
// maxUpdatedAt — the delivery-completion loader's candidate set.
func (s *Service) TrackDeliveredOrders(ctx context.Context, maxUpdatedAt time.Time) ([]models.Order, error) {
	return s.repo.GetOrdersWithState(ctx, models.OrderStateDelivered, maxUpdatedAt)
}
