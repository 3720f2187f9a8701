// Package acl implements the cart/order access-control gate:
// Superadmin allows everything, a cart row is only visible to its owning
// customer, and an order row is visible to its customer or to a store
// manager for that order's store.
package acl

import (
	"github.com/STaninnat/orders/models"
)

// Caller is the identity extracted from a request's caller-id/caller-roles
// headers — authentication itself is an external collaborator this
// service only consumes the outcome of.
type Caller struct {
	Customer models.Customer
	Roles    []models.Role
}

// Superuser returns a caller holding only the Superadmin role. It passes
// all per-row checks below via isSuperadmin, never via a forged customer
// identity. The background loaders do not use it: they call the order
// service directly, with no Caller.
func Superuser() Caller {
	return Caller{Roles: []models.Role{{Role: models.RoleSuperadmin}}}
}

func (c Caller) isSuperadmin() bool {
	for _, r := range c.Roles {
		if r.Role == models.RoleSuperadmin {
			return true
		}
	}
	return false
}

func (c Caller) isStoreManagerOf(storeID string) bool {
	for _, r := range c.Roles {
		if r.Role == models.RoleStoreManager && r.StoreID == storeID {
			return true
		}
	}
	return false
}

// IsSuperadmin reports whether caller holds the Superadmin role — exported
// for HTTP handlers that need a broader gate than one row's owner/store
// (e.g. scoping a cross-customer order search).
func (c Caller) IsSuperadmin() bool {
	return c.isSuperadmin()
}

// IsStoreManagerOf reports whether caller manages storeID.
func (c Caller) IsStoreManagerOf(storeID string) bool {
	return c.isStoreManagerOf(storeID)
}

// CanAccessCart reports whether caller may read or write the cart owned by
// customer. Superadmin always may; otherwise the caller must be that
// exact customer.
func (c Caller) CanAccessCart(customer models.Customer) bool {
	if c.isSuperadmin() {
		return true
	}
	return c.Customer.Type == customer.Type && c.Customer.ID() == customer.ID()
}

// CanWriteOrder reports whether caller may create/convert/transition an
// order belonging to customer for storeID. Only Superadmin, the order's
// own customer, or a store manager for storeID may write.
func (c Caller) CanWriteOrder(customer models.Customer, storeID string) bool {
	if c.isSuperadmin() {
		return true
	}
	if c.Customer.Type == customer.Type && c.Customer.ID() == customer.ID() {
		return true
	}
	return c.isStoreManagerOf(storeID)
}

// CanReadOrder reports whether caller may view an order belonging to
// customer for storeID. Store managers get read access to every order in
// their store even without being the buyer; buyers get read-only access
// to their own orders via the same rule CanWriteOrder already grants them.
func (c Caller) CanReadOrder(customer models.Customer, storeID string) bool {
	return c.CanWriteOrder(customer, storeID)
}
