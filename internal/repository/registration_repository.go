package repository

import (
	"context"
	"fmt"
	"time"

	"summit-registration/internal/model"
	"summit-registration/pkg/apperrors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RegistrationRepository interface {
	FindByOrderID(ctx context.Context, orderID string) (*model.Registration, error)
	List(ctx context.Context) ([]*model.Registration, error)
	CountByStatus(ctx context.Context) (map[model.RegistrationStatus]int, error)
	SumPaidAmount(ctx context.Context) (int64, error)
	DeleteAll(ctx context.Context) error

	// Transaction methods
	Create(ctx context.Context, tx pgx.Tx, registration *model.Registration) (*model.Registration, error)
	MarkPaid(ctx context.Context, tx pgx.Tx, orderID string) (bool, error)
	UpdateStatusIfPending(ctx context.Context, tx pgx.Tx, orderID string, status model.RegistrationStatus) (bool, error)
}

type RegistrationRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewRegistrationRepository(pool *pgxpool.Pool) RegistrationRepository {
	return &RegistrationRepositoryImpl{
		pool: pool,
	}
}

const registrationColumns = `id, order_id, name, email, phone, ticket_quantity, amount, voucher_code, status, created_at, updated_at`

func scanRegistration(row pgx.Row) (*model.Registration, error) {
	var r model.Registration
	err := row.Scan(
		&r.ID,
		&r.OrderID,
		&r.Name,
		&r.Email,
		&r.Phone,
		&r.TicketQuantity,
		&r.Amount,
		&r.VoucherCode,
		&r.Status,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (r *RegistrationRepositoryImpl) Create(ctx context.Context, tx pgx.Tx, registration *model.Registration) (*model.Registration, error) {
	query := `
		INSERT INTO registrations (
			order_id, name, email, phone, ticket_quantity, amount, voucher_code, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + registrationColumns

	created, err := scanRegistration(tx.QueryRow(ctx, query,
		registration.OrderID,
		registration.Name,
		registration.Email,
		registration.Phone,
		registration.TicketQuantity,
		registration.Amount,
		registration.VoucherCode,
		registration.Status,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create registration: %w", err)
	}

	return created, nil
}

func (r *RegistrationRepositoryImpl) FindByOrderID(ctx context.Context, orderID string) (*model.Registration, error) {
	query := `
		SELECT ` + registrationColumns + `
		FROM registrations
		WHERE order_id = $1
	`

	registration, err := scanRegistration(r.pool.QueryRow(ctx, query, orderID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrOrderNotFound
		}
		return nil, err
	}

	return registration, nil
}

func (r *RegistrationRepositoryImpl) List(ctx context.Context) ([]*model.Registration, error) {
	query := `
		SELECT ` + registrationColumns + `
		FROM registrations
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	registrations := make([]*model.Registration, 0)

	for rows.Next() {
		registration, err := scanRegistration(rows)
		if err != nil {
			return nil, err
		}
		registrations = append(registrations, registration)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return registrations, nil
}

// MarkPaid is conditional so a retried callback is a no-op and a paid
// order can never regress.
func (r *RegistrationRepositoryImpl) MarkPaid(ctx context.Context, tx pgx.Tx, orderID string) (bool, error) {
	query := `
		UPDATE registrations
		SET status = $1, updated_at = $2
		WHERE order_id = $3 AND status != $1
	`

	result, err := tx.Exec(ctx, query, model.RegistrationStatusPaid, time.Now().UTC(), orderID)
	if err != nil {
		return false, fmt.Errorf("failed to mark registration paid: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

// UpdateStatusIfPending moves pending orders to failed/expired. Orders
// that already reached a terminal status are left untouched.
func (r *RegistrationRepositoryImpl) UpdateStatusIfPending(ctx context.Context, tx pgx.Tx, orderID string, status model.RegistrationStatus) (bool, error) {
	if !status.IsValid() {
		return false, apperrors.ErrInvalidStatus
	}

	query := `
		UPDATE registrations
		SET status = $1, updated_at = $2
		WHERE order_id = $3 AND status = $4
	`

	result, err := tx.Exec(ctx, query, status, time.Now().UTC(), orderID, model.RegistrationStatusPending)
	if err != nil {
		return false, err
	}

	return result.RowsAffected() > 0, nil
}

func (r *RegistrationRepositoryImpl) CountByStatus(ctx context.Context) (map[model.RegistrationStatus]int, error) {
	query := `
		SELECT status, COUNT(*)
		FROM registrations
		GROUP BY status
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[model.RegistrationStatus]int)

	for rows.Next() {
		var status model.RegistrationStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return counts, nil
}

func (r *RegistrationRepositoryImpl) SumPaidAmount(ctx context.Context) (int64, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM registrations
		WHERE status = $1
	`

	var total int64
	err := r.pool.QueryRow(ctx, query, model.RegistrationStatusPaid).Scan(&total)
	if err != nil {
		return 0, err
	}

	return total, nil
}

func (r *RegistrationRepositoryImpl) DeleteAll(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM registrations`)
	return err
}
