package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"rentaldesk-backend/internal/repository"

	_ "github.com/lib/pq"
)

// Querier is satisfied by both *sql.DB and *sql.Tx so every repository can
// run either standalone or inside a transaction-scoped Store.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

type Store struct {
	db *sql.DB // nil when the store is bound to a transaction
	q  Querier

	items         repository.ItemRepository
	quotations    repository.QuotationRepository
	orders        repository.OrderRepository
	reservations  repository.ReservationRepository
	handovers     repository.HandoverRepository
	policies      repository.LateFeePolicyRepository
	invoices      repository.InvoiceRepository
	parties       repository.PartyRepository
	notifications repository.NotificationRepository
}

func NewStore(db *sql.DB) *Store {
	return newStore(db, db)
}

func newStore(db *sql.DB, q Querier) *Store {
	return &Store{
		db:            db,
		q:             q,
		items:         NewItemRepository(q),
		quotations:    NewQuotationRepository(q),
		orders:        NewOrderRepository(q),
		reservations:  NewReservationRepository(q),
		handovers:     NewHandoverRepository(q),
		policies:      NewLateFeePolicyRepository(q),
		invoices:      NewInvoiceRepository(q),
		parties:       NewPartyRepository(q),
		notifications: NewNotificationRepository(q),
	}
}

func (s *Store) Items() repository.ItemRepository               { return s.items }
func (s *Store) Quotations() repository.QuotationRepository     { return s.quotations }
func (s *Store) Orders() repository.OrderRepository             { return s.orders }
func (s *Store) Reservations() repository.ReservationRepository { return s.reservations }
func (s *Store) Handovers() repository.HandoverRepository       { return s.handovers }

func (s *Store) LateFeePolicies() repository.LateFeePolicyRepository { return s.policies }

func (s *Store) Invoices() repository.InvoiceRepository           { return s.invoices }
func (s *Store) Parties() repository.PartyRepository              { return s.parties }
func (s *Store) Notifications() repository.NotificationRepository { return s.notifications }

// InTx runs fn against a store bound to one database transaction. A nested
// call joins the transaction already in flight.
func (s *Store) InTx(ctx context.Context, fn func(repository.Store) error) error {
	if s.db == nil {
		return fn(s)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(newStore(nil, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback after %v: %w", err, rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
