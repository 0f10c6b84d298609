package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"rentaldesk-backend/internal/domain"
	"rentaldesk-backend/internal/repository"
)

// MockItemRepo
type MockItemRepo struct {
	mock.Mock
}

func (m *MockItemRepo) Create(ctx context.Context, item *domain.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}
func (m *MockItemRepo) GetByID(ctx context.Context, id int32) (*domain.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}
func (m *MockItemRepo) GetByIDForUpdate(ctx context.Context, id int32) (*domain.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}
func (m *MockItemRepo) Update(ctx context.Context, item *domain.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}
func (m *MockItemRepo) GetVariant(ctx context.Context, id int32) (*domain.ItemVariant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ItemVariant), args.Error(1)
}
func (m *MockItemRepo) CreateTier(ctx context.Context, tier *domain.PricingTier) error {
	args := m.Called(ctx, tier)
	return args.Error(0)
}
func (m *MockItemRepo) ListActiveTiers(ctx context.Context, itemID int32, variantID *int32) ([]domain.PricingTier, error) {
	args := m.Called(ctx, itemID, variantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PricingTier), args.Error(1)
}

// MockQuotationRepo
type MockQuotationRepo struct {
	mock.Mock
}

func (m *MockQuotationRepo) Create(ctx context.Context, q *domain.Quotation) error {
	args := m.Called(ctx, q)
	return args.Error(0)
}
func (m *MockQuotationRepo) GetByID(ctx context.Context, id int32) (*domain.Quotation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quotation), args.Error(1)
}
func (m *MockQuotationRepo) Update(ctx context.Context, q *domain.Quotation) error {
	args := m.Called(ctx, q)
	return args.Error(0)
}
func (m *MockQuotationRepo) ListByCustomer(ctx context.Context, customerID int32, status string, page, pageSize int32) ([]domain.Quotation, int32, error) {
	args := m.Called(ctx, customerID, status, page, pageSize)
	return args.Get(0).([]domain.Quotation), args.Get(1).(int32), args.Error(2)
}
func (m *MockQuotationRepo) ExpireStale(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

// MockOrderRepo
type MockOrderRepo struct {
	mock.Mock
}

func (m *MockOrderRepo) Create(ctx context.Context, o *domain.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
func (m *MockOrderRepo) GetByID(ctx context.Context, id int32) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}
func (m *MockOrderRepo) Update(ctx context.Context, o *domain.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
func (m *MockOrderRepo) UpdateLine(ctx context.Context, line *domain.OrderLine) error {
	args := m.Called(ctx, line)
	return args.Error(0)
}
func (m *MockOrderRepo) ListByCustomer(ctx context.Context, customerID int32, status string, page, pageSize int32) ([]domain.Order, int32, error) {
	args := m.Called(ctx, customerID, status, page, pageSize)
	return args.Get(0).([]domain.Order), args.Get(1).(int32), args.Error(2)
}
func (m *MockOrderRepo) ListOverdue(ctx context.Context, now time.Time) ([]domain.Order, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

// MockReservationRepo
type MockReservationRepo struct {
	mock.Mock
}

func (m *MockReservationRepo) Create(ctx context.Context, r *domain.Reservation) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}
func (m *MockReservationRepo) GetByID(ctx context.Context, id int32) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}
func (m *MockReservationRepo) Update(ctx context.Context, r *domain.Reservation) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}
func (m *MockReservationRepo) ListByOrder(ctx context.Context, orderID int32) ([]domain.Reservation, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Reservation), args.Error(1)
}
func (m *MockReservationRepo) SumOverlapping(ctx context.Context, itemID int32, variantID *int32, start, end time.Time) (int32, error) {
	args := m.Called(ctx, itemID, variantID, start, end)
	return args.Get(0).(int32), args.Error(1)
}

// MockHandoverRepo
type MockHandoverRepo struct {
	mock.Mock
}

func (m *MockHandoverRepo) CreatePickup(ctx context.Context, p *domain.Pickup) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockHandoverRepo) GetPickupByOrder(ctx context.Context, orderID int32) (*domain.Pickup, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Pickup), args.Error(1)
}
func (m *MockHandoverRepo) UpdatePickup(ctx context.Context, p *domain.Pickup) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockHandoverRepo) CreateReturn(ctx context.Context, r *domain.Return) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}
func (m *MockHandoverRepo) GetReturnByOrder(ctx context.Context, orderID int32) (*domain.Return, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Return), args.Error(1)
}
func (m *MockHandoverRepo) UpdateReturn(ctx context.Context, r *domain.Return) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

// MockLateFeePolicyRepo
type MockLateFeePolicyRepo struct {
	mock.Mock
}

func (m *MockLateFeePolicyRepo) Create(ctx context.Context, p *domain.LateFeePolicy) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockLateFeePolicyRepo) GetByID(ctx context.Context, id int32) (*domain.LateFeePolicy, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LateFeePolicy), args.Error(1)
}
func (m *MockLateFeePolicyRepo) GetActive(ctx context.Context, at time.Time) (*domain.LateFeePolicy, error) {
	args := m.Called(ctx, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LateFeePolicy), args.Error(1)
}

// MockInvoiceRepo
type MockInvoiceRepo struct {
	mock.Mock
}

func (m *MockInvoiceRepo) Create(ctx context.Context, inv *domain.Invoice) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}
func (m *MockInvoiceRepo) GetByID(ctx context.Context, id int32) (*domain.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}
func (m *MockInvoiceRepo) GetByOrder(ctx context.Context, orderID int32) (*domain.Invoice, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}
func (m *MockInvoiceRepo) Update(ctx context.Context, inv *domain.Invoice) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}
func (m *MockInvoiceRepo) CreatePayment(ctx context.Context, p *domain.Payment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockInvoiceRepo) ListPayments(ctx context.Context, invoiceID int32) ([]domain.Payment, error) {
	args := m.Called(ctx, invoiceID)
	return args.Get(0).([]domain.Payment), args.Error(1)
}

// MockPartyRepo
type MockPartyRepo struct {
	mock.Mock
}

func (m *MockPartyRepo) GetCustomer(ctx context.Context, id int32) (*domain.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}
func (m *MockPartyRepo) GetVendor(ctx context.Context, id int32) (*domain.Vendor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vendor), args.Error(1)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}
func (m *MockNotificationRepo) List(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, page, pageSize)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, userID int32) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

// mockStore bundles the repo mocks behind the Store interface. InTx simply
// runs fn against the same mocks, which matches the production semantics
// closely enough for service-level tests.
type mockStore struct {
	items         *MockItemRepo
	quotations    *MockQuotationRepo
	orders        *MockOrderRepo
	reservations  *MockReservationRepo
	handovers     *MockHandoverRepo
	policies      *MockLateFeePolicyRepo
	invoices      *MockInvoiceRepo
	parties       *MockPartyRepo
	notifications *MockNotificationRepo
}

func newMockStore() *mockStore {
	return &mockStore{
		items:         new(MockItemRepo),
		quotations:    new(MockQuotationRepo),
		orders:        new(MockOrderRepo),
		reservations:  new(MockReservationRepo),
		handovers:     new(MockHandoverRepo),
		policies:      new(MockLateFeePolicyRepo),
		invoices:      new(MockInvoiceRepo),
		parties:       new(MockPartyRepo),
		notifications: new(MockNotificationRepo),
	}
}

func (s *mockStore) Items() repository.ItemRepository               { return s.items }
func (s *mockStore) Quotations() repository.QuotationRepository     { return s.quotations }
func (s *mockStore) Orders() repository.OrderRepository             { return s.orders }
func (s *mockStore) Reservations() repository.ReservationRepository { return s.reservations }
func (s *mockStore) Handovers() repository.HandoverRepository       { return s.handovers }

func (s *mockStore) LateFeePolicies() repository.LateFeePolicyRepository { return s.policies }

func (s *mockStore) Invoices() repository.InvoiceRepository           { return s.invoices }
func (s *mockStore) Parties() repository.PartyRepository              { return s.parties }
func (s *mockStore) Notifications() repository.NotificationRepository { return s.notifications }

func (s *mockStore) InTx(ctx context.Context, fn func(repository.Store) error) error {
	return fn(s)
}
