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

type PaymentRepository interface {
	FindByOrderID(ctx context.Context, orderID string) (*model.Payment, error)
	List(ctx context.Context) ([]*model.Payment, error)
	DeleteAll(ctx context.Context) error

	// Transaction methods
	Create(ctx context.Context, tx pgx.Tx, payment *model.Payment) (*model.Payment, error)
	// MarkResult upserts the authoritative payment row for an order.
	// payments.order_id is unique, so a retried callback updates in
	// place instead of appending a second row.
	MarkResult(ctx context.Context, tx pgx.Tx, payment *model.Payment) (*model.Payment, error)
}

type PaymentRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewPaymentRepository(pool *pgxpool.Pool) PaymentRepository {
	return &PaymentRepositoryImpl{
		pool: pool,
	}
}

const paymentColumns = `id, order_id, transaction_id, amount, payment_method, status, payment_data, paid_at, created_at, updated_at`

func scanPayment(row pgx.Row) (*model.Payment, error) {
	var p model.Payment
	err := row.Scan(
		&p.ID,
		&p.OrderID,
		&p.TransactionID,
		&p.Amount,
		&p.PaymentMethod,
		&p.Status,
		&p.PaymentData,
		&p.PaidAt,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepositoryImpl) Create(ctx context.Context, tx pgx.Tx, payment *model.Payment) (*model.Payment, error) {
	query := `
		INSERT INTO payments (
			order_id, transaction_id, amount, payment_method, status, payment_data, paid_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + paymentColumns

	created, err := scanPayment(tx.QueryRow(ctx, query,
		payment.OrderID,
		payment.TransactionID,
		payment.Amount,
		payment.PaymentMethod,
		payment.Status,
		payment.PaymentData,
		payment.PaidAt,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}

	return created, nil
}

func (r *PaymentRepositoryImpl) MarkResult(ctx context.Context, tx pgx.Tx, payment *model.Payment) (*model.Payment, error) {
	query := `
		INSERT INTO payments (
			order_id, transaction_id, amount, payment_method, status, payment_data, paid_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (order_id) DO UPDATE
		SET transaction_id = EXCLUDED.transaction_id,
		    payment_method = EXCLUDED.payment_method,
		    status = EXCLUDED.status,
		    payment_data = EXCLUDED.payment_data,
		    paid_at = EXCLUDED.paid_at,
		    updated_at = $8
		RETURNING ` + paymentColumns

	updated, err := scanPayment(tx.QueryRow(ctx, query,
		payment.OrderID,
		payment.TransactionID,
		payment.Amount,
		payment.PaymentMethod,
		payment.Status,
		payment.PaymentData,
		payment.PaidAt,
		time.Now().UTC(),
	))
	if err != nil {
		return nil, fmt.Errorf("failed to record payment result: %w", err)
	}

	return updated, nil
}

func (r *PaymentRepositoryImpl) FindByOrderID(ctx context.Context, orderID string) (*model.Payment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payments
		WHERE order_id = $1
	`

	payment, err := scanPayment(r.pool.QueryRow(ctx, query, orderID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrOrderNotFound
		}
		return nil, err
	}

	return payment, nil
}

func (r *PaymentRepositoryImpl) List(ctx context.Context) ([]*model.Payment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payments
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := make([]*model.Payment, 0)

	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, payment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return payments, nil
}

func (r *PaymentRepositoryImpl) DeleteAll(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM payments`)
	return err
}
