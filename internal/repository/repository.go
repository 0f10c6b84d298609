package repository

import (
	"context"
	"time"

	"rentaldesk-backend/internal/domain"
)

type ItemRepository interface {
	Create(ctx context.Context, item *domain.Item) error
	GetByID(ctx context.Context, id int32) (*domain.Item, error)
	// GetByIDForUpdate locks the item row for the duration of the enclosing
	// transaction. Callers outside a transaction must not use it.
	GetByIDForUpdate(ctx context.Context, id int32) (*domain.Item, error)
	Update(ctx context.Context, item *domain.Item) error
	GetVariant(ctx context.Context, id int32) (*domain.ItemVariant, error)
	CreateTier(ctx context.Context, tier *domain.PricingTier) error
	// ListActiveTiers returns active tiers for the item, including
	// variant-specific overrides when variantID is set.
	ListActiveTiers(ctx context.Context, itemID int32, variantID *int32) ([]domain.PricingTier, error)
}

type QuotationRepository interface {
	Create(ctx context.Context, q *domain.Quotation) error
	GetByID(ctx context.Context, id int32) (*domain.Quotation, error)
	Update(ctx context.Context, q *domain.Quotation) error
	ListByCustomer(ctx context.Context, customerID int32, status string, page, pageSize int32) ([]domain.Quotation, int32, error)
	// ExpireStale flips draft/sent quotations past their validity deadline to
	// expired and returns how many were touched.
	ExpireStale(ctx context.Context, now time.Time) (int64, error)
}

type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) error
	GetByID(ctx context.Context, id int32) (*domain.Order, error)
	Update(ctx context.Context, o *domain.Order) error
	UpdateLine(ctx context.Context, line *domain.OrderLine) error
	ListByCustomer(ctx context.Context, customerID int32, status string, page, pageSize int32) ([]domain.Order, int32, error)
	// ListOverdue returns in-progress orders whose scheduled return date has
	// passed and that have not been flagged overdue yet.
	ListOverdue(ctx context.Context, now time.Time) ([]domain.Order, error)
}

type ReservationRepository interface {
	Create(ctx context.Context, r *domain.Reservation) error
	GetByID(ctx context.Context, id int32) (*domain.Reservation, error)
	Update(ctx context.Context, r *domain.Reservation) error
	ListByOrder(ctx context.Context, orderID int32) ([]domain.Reservation, error)
	// SumOverlapping totals the quantities of blocking reservations whose
	// range intersects [start, end) for the item or variant.
	SumOverlapping(ctx context.Context, itemID int32, variantID *int32, start, end time.Time) (int32, error)
}

type HandoverRepository interface {
	CreatePickup(ctx context.Context, p *domain.Pickup) error
	GetPickupByOrder(ctx context.Context, orderID int32) (*domain.Pickup, error)
	UpdatePickup(ctx context.Context, p *domain.Pickup) error
	CreateReturn(ctx context.Context, r *domain.Return) error
	GetReturnByOrder(ctx context.Context, orderID int32) (*domain.Return, error)
	UpdateReturn(ctx context.Context, r *domain.Return) error
}

type LateFeePolicyRepository interface {
	Create(ctx context.Context, p *domain.LateFeePolicy) error
	GetByID(ctx context.Context, id int32) (*domain.LateFeePolicy, error)
	// GetActive returns the active policy in effect at the given instant, or
	// nil when none is configured.
	GetActive(ctx context.Context, at time.Time) (*domain.LateFeePolicy, error)
}

type InvoiceRepository interface {
	Create(ctx context.Context, inv *domain.Invoice) error
	GetByID(ctx context.Context, id int32) (*domain.Invoice, error)
	GetByOrder(ctx context.Context, orderID int32) (*domain.Invoice, error)
	Update(ctx context.Context, inv *domain.Invoice) error
	CreatePayment(ctx context.Context, p *domain.Payment) error
	ListPayments(ctx context.Context, invoiceID int32) ([]domain.Payment, error)
}

// PartyRepository reads the customer and vendor records synced from the
// external account system.
type PartyRepository interface {
	GetCustomer(ctx context.Context, id int32) (*domain.Customer, error)
	GetVendor(ctx context.Context, id int32) (*domain.Vendor, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, userID int32) error
}

// Store bundles the repositories behind one handle. InTx runs fn against a
// store whose repositories share a single database transaction; any error
// returned from fn rolls back every write made inside it.
type Store interface {
	Items() ItemRepository
	Quotations() QuotationRepository
	Orders() OrderRepository
	Reservations() ReservationRepository
	Handovers() HandoverRepository
	LateFeePolicies() LateFeePolicyRepository
	Invoices() InvoiceRepository
	Parties() PartyRepository
	Notifications() NotificationRepository
	InTx(ctx context.Context, fn func(Store) error) error
}
