package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"summit-registration/internal/model"
	"summit-registration/pkg/apperrors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type VoucherRepository interface {
	Create(ctx context.Context, voucher *model.Voucher) (*model.Voucher, error)
	FindByCode(ctx context.Context, code string) (*model.Voucher, error)
	List(ctx context.Context) ([]*model.Voucher, error)
	Delete(ctx context.Context, code string) error
	ResetUsage(ctx context.Context) error

	// Transaction methods
	// IncrementUsage counts a redemption and enforces the usage limit
	// in the same statement. Returns false when the limit is reached.
	IncrementUsage(ctx context.Context, tx pgx.Tx, code string) (bool, error)
}

type VoucherRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewVoucherRepository(pool *pgxpool.Pool) VoucherRepository {
	return &VoucherRepositoryImpl{
		pool: pool,
	}
}

const voucherColumns = `id, code, type, value, min_purchase, max_discount, expiry_date, usage_limit, used_count, is_active, created_at, updated_at`

func scanVoucher(row pgx.Row) (*model.Voucher, error) {
	var v model.Voucher
	err := row.Scan(
		&v.ID,
		&v.Code,
		&v.Type,
		&v.Value,
		&v.MinPurchase,
		&v.MaxDiscount,
		&v.ExpiryDate,
		&v.UsageLimit,
		&v.UsedCount,
		&v.IsActive,
		&v.CreatedAt,
		&v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *VoucherRepositoryImpl) Create(ctx context.Context, voucher *model.Voucher) (*model.Voucher, error) {
	query := `
		INSERT INTO vouchers (
			code, type, value, min_purchase, max_discount, expiry_date, usage_limit, is_active
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + voucherColumns

	created, err := scanVoucher(r.pool.QueryRow(ctx, query,
		voucher.Code,
		voucher.Type,
		voucher.Value,
		voucher.MinPurchase,
		voucher.MaxDiscount,
		voucher.ExpiryDate,
		voucher.UsageLimit,
		voucher.IsActive,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, apperrors.ErrInvalidInput
		}
		return nil, fmt.Errorf("failed to create voucher: %w", err)
	}

	return created, nil
}

func (r *VoucherRepositoryImpl) FindByCode(ctx context.Context, code string) (*model.Voucher, error) {
	query := `
		SELECT ` + voucherColumns + `
		FROM vouchers
		WHERE LOWER(code) = LOWER($1)
	`

	voucher, err := scanVoucher(r.pool.QueryRow(ctx, query, code))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrVoucherNotFound
		}
		return nil, err
	}

	return voucher, nil
}

func (r *VoucherRepositoryImpl) List(ctx context.Context) ([]*model.Voucher, error) {
	query := `
		SELECT ` + voucherColumns + `
		FROM vouchers
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	vouchers := make([]*model.Voucher, 0)

	for rows.Next() {
		voucher, err := scanVoucher(rows)
		if err != nil {
			return nil, err
		}
		vouchers = append(vouchers, voucher)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return vouchers, nil
}

func (r *VoucherRepositoryImpl) IncrementUsage(ctx context.Context, tx pgx.Tx, code string) (bool, error) {
	query := `
		UPDATE vouchers
		SET used_count = used_count + 1, updated_at = $1
		WHERE LOWER(code) = LOWER($2)
		  AND is_active
		  AND (usage_limit = 0 OR used_count < usage_limit)
	`

	result, err := tx.Exec(ctx, query, time.Now().UTC(), code)
	if err != nil {
		return false, err
	}

	return result.RowsAffected() > 0, nil
}

func (r *VoucherRepositoryImpl) Delete(ctx context.Context, code string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM vouchers WHERE LOWER(code) = LOWER($1)`, code)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrVoucherNotFound
	}

	return nil
}

func (r *VoucherRepositoryImpl) ResetUsage(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `UPDATE vouchers SET used_count = 0, updated_at = $1`, time.Now().UTC())
	return err
}
