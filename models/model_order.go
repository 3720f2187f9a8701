package models

import "time"

// model_order.go: Order, OrderDiff, and Role domain models.

// OrderState is the order's position in its state machine.
type OrderState string

const (
	OrderStateNew          OrderState = "New"
	OrderStatePaid         OrderState = "Paid"
	OrderStateInProcessing OrderState = "InProcessing"
	OrderStateSent         OrderState = "Sent"
	OrderStateDelivered    OrderState = "Delivered"
	OrderStateComplete     OrderState = "Complete"
	OrderStateCancelled    OrderState = "Cancelled"
)

// terminal states a transition cannot leave.
var terminalStates = map[OrderState]bool{
	OrderStateComplete:  true,
	OrderStateCancelled: true,
}

// validTransitions enumerates every allowed state -> state edge. Cancelled
// is reachable from any non-terminal state and is added programmatically
// by CanTransition rather than listed here for each source state.
var validTransitions = map[OrderState][]OrderState{
	OrderStateNew:          {OrderStatePaid},
	OrderStatePaid:         {OrderStateInProcessing},
	OrderStateInProcessing: {OrderStateSent},
	OrderStateSent:         {OrderStateDelivered},
	OrderStateDelivered:    {OrderStateComplete},
}

// CanTransition reports whether from -> to is a legal order state
// transition: the explicit forward edge, or Cancelled from any
// non-terminal state.
func CanTransition(from, to OrderState) bool {
	if terminalStates[from] {
		return false
	}
	if to == OrderStateCancelled {
		return true
	}
	for _, allowed := range validTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Address is the shipping destination attached to an order, using the
// same field names a geocoding provider's place result would — fields the
// CSV report schema also carries verbatim.
type Address struct {
	AdministrativeAreaLevel1 string `json:"administrative_area_level_1,omitempty"`
	AdministrativeAreaLevel2 string `json:"administrative_area_level_2,omitempty"`
	Country                  string `json:"country,omitempty"`
	Locality                 string `json:"locality,omitempty"`
	Political                string `json:"political,omitempty"`
	PostalCode               string `json:"postal_code,omitempty"`
	Route                    string `json:"route,omitempty"`
	StreetNumber             string `json:"street_number,omitempty"`
	Address                  string `json:"address,omitempty"`
	PlaceID                  string `json:"place_id,omitempty"`
}

// Order is one purchase converted from a cart, carrying everything the
// CSV report schema and the HTTP API surface need.
type Order struct {
	ID              string     `json:"id"`
	CreatedFrom     string     `json:"created_from"`
	ConversionID    string     `json:"conversion_id"`
	Slug            int64      `json:"slug"`
	StoreID         string     `json:"store"`
	Customer        Customer   `json:"customer"`
	ProductID       string     `json:"product"`
	Price           string     `json:"price"`
	Currency        string     `json:"currency"`
	Quantity        int32      `json:"quantity"`
	ReceiverName    string     `json:"receiver_name"`
	ReceiverPhone   string     `json:"receiver_phone"`
	ReceiverEmail   string     `json:"receiver_email"`
	State           OrderState `json:"state"`
	PaymentStatus   bool       `json:"payment_status"`
	DeliveryCompany string     `json:"delivery_company,omitempty"`
	TrackID         string     `json:"track_id,omitempty"`
	PreOrder        bool       `json:"pre_order"`
	PreOrderDays    int32      `json:"pre_order_days,omitempty"`
	CouponID        string     `json:"coupon_id,omitempty"`
	CouponPercent   string     `json:"coupon_percent,omitempty"`
	CouponDiscount  string     `json:"coupon_discount,omitempty"`
	ProductDiscount string     `json:"product_discount,omitempty"`
	TotalAmount     string     `json:"total_amount"`
	Address         Address    `json:"address"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// OrderDiff is one append-only entry in an order's state-transition log.
// The diff log, not Order.State alone, is the source of truth for
// "how did this order get here".
type OrderDiff struct {
	ID        string     `json:"id"`
	OrderID   string     `json:"order_id"`
	Committer string     `json:"committer"`
	State     OrderState `json:"state"`
	Comment   string     `json:"comment,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// RoleName is one of the three roles a user can hold.
type RoleName string

const (
	RoleSuperadmin   RoleName = "Superadmin"
	RoleStoreManager RoleName = "StoreManager"
	RoleUser         RoleName = "User"
)

// Role grants a user a capability, optionally scoped to one store — a
// StoreManager role always carries a StoreID; Superadmin and User do not.
type Role struct {
	ID      string   `json:"id"`
	UserID  string   `json:"user_id"`
	Role    RoleName `json:"role"`
	StoreID string   `json:"store_id,omitempty"`
}
