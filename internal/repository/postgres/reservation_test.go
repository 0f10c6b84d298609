package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"rentaldesk-backend/internal/domain"
)

func TestReservationRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewReservationRepository(db)
	ctx := context.Background()

	t.Run("Assigns ID", func(t *testing.T) {
		start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 0, 3)
		res := &domain.Reservation{
			OrderLineID: 31,
			ItemID:      7,
			StartDate:   start,
			EndDate:     end,
			Quantity:    2,
			Status:      domain.ReservationStatusConfirmed,
		}

		mock.ExpectQuery("INSERT INTO reservations").
			WithArgs(int32(31), int32(7), nil, start, end, int32(2), domain.ReservationStatusConfirmed, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(200))

		err := repo.Create(ctx, res)
		assert.NoError(t, err)
		assert.Equal(t, int32(200), res.ID)
	})
}

func TestReservationRepository_SumOverlapping(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewReservationRepository(db)
	ctx := context.Background()

	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 3)

	t.Run("Sums Blocking Quantity", func(t *testing.T) {
		mock.ExpectQuery("SELECT COALESCE\\(SUM\\(quantity\\), 0\\) FROM reservations").
			WithArgs(int32(7), nil, end, start).
			WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(2))

		total, err := repo.SumOverlapping(ctx, 7, nil, start, end)
		assert.NoError(t, err)
		assert.Equal(t, int32(2), total)
	})

	t.Run("No Overlaps Is Zero", func(t *testing.T) {
		mock.ExpectQuery("SELECT COALESCE\\(SUM\\(quantity\\), 0\\) FROM reservations").
			WithArgs(int32(7), nil, end, start).
			WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(0))

		total, err := repo.SumOverlapping(ctx, 7, nil, start, end)
		assert.NoError(t, err)
		assert.Equal(t, int32(0), total)
	})
}

func TestReservationRepository_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewReservationRepository(db)
	ctx := context.Background()

	t.Run("Sets Status", func(t *testing.T) {
		mock.ExpectExec("UPDATE reservations SET status=\\$1").
			WithArgs(domain.ReservationStatusCompleted, sqlmock.AnyArg(), int32(200)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Update(ctx, &domain.Reservation{ID: 200, Status: domain.ReservationStatusCompleted})
		assert.NoError(t, err)
	})
}
