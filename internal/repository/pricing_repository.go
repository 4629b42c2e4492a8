package repository

import (
	"context"
	"fmt"

	"summit-registration/internal/model"
	"summit-registration/pkg/apperrors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PricingRepository interface {
	// GetCurrent returns the most recently updated pricing row.
	GetCurrent(ctx context.Context) (*model.Pricing, error)
	Upsert(ctx context.Context, pricing *model.Pricing) (*model.Pricing, error)
}

type PricingRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewPricingRepository(pool *pgxpool.Pool) PricingRepository {
	return &PricingRepositoryImpl{
		pool: pool,
	}
}

const pricingColumns = `id, early_bird_price, normal_price, early_bird_end, created_at, updated_at`

func scanPricing(row pgx.Row) (*model.Pricing, error) {
	var p model.Pricing
	err := row.Scan(
		&p.ID,
		&p.EarlyBirdPrice,
		&p.NormalPrice,
		&p.EarlyBirdEnd,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PricingRepositoryImpl) GetCurrent(ctx context.Context) (*model.Pricing, error) {
	query := `
		SELECT ` + pricingColumns + `
		FROM pricing
		ORDER BY updated_at DESC
		LIMIT 1
	`

	pricing, err := scanPricing(r.pool.QueryRow(ctx, query))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrPricingNotFound
		}
		return nil, err
	}

	return pricing, nil
}

// Upsert keeps a single pricing row keyed by id 1; the event has one
// price schedule.
func (r *PricingRepositoryImpl) Upsert(ctx context.Context, pricing *model.Pricing) (*model.Pricing, error) {
	query := `
		INSERT INTO pricing (id, early_bird_price, normal_price, early_bird_end)
		VALUES (1, $1, $2, $3)
		ON CONFLICT (id) DO UPDATE
		SET early_bird_price = EXCLUDED.early_bird_price,
		    normal_price = EXCLUDED.normal_price,
		    early_bird_end = EXCLUDED.early_bird_end,
		    updated_at = NOW()
		RETURNING ` + pricingColumns

	updated, err := scanPricing(r.pool.QueryRow(ctx, query,
		pricing.EarlyBirdPrice,
		pricing.NormalPrice,
		pricing.EarlyBirdEnd,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert pricing: %w", err)
	}

	return updated, nil
}
