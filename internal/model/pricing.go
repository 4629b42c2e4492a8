package model

import "time"

// Pricing holds the ticket price rules. NormalPrice is optional; when
// unset the normal price falls back to 1.2x the early-bird price.
type Pricing struct {
	ID             int        `json:"id" db:"id"`
	EarlyBirdPrice int64      `json:"early_bird_price" db:"early_bird_price"`
	NormalPrice    *int64     `json:"normal_price,omitempty" db:"normal_price"`
	EarlyBirdEnd   time.Time  `json:"early_bird_end" db:"early_bird_end"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`
}

// EffectivePrice returns the price in force at now: early-bird on or
// before EarlyBirdEnd, normal price after.
func (p *Pricing) EffectivePrice(now time.Time) int64 {
	if !now.After(p.EarlyBirdEnd) {
		return p.EarlyBirdPrice
	}
	if p.NormalPrice != nil {
		return *p.NormalPrice
	}
	return p.EarlyBirdPrice * 12 / 10
}

// UpdatePricingRequest is the admin payload for pricing changes.
type UpdatePricingRequest struct {
	EarlyBirdPrice int64     `json:"early_bird_price" binding:"required,min=1"`
	NormalPrice    *int64    `json:"normal_price"`
	EarlyBirdEnd   time.Time `json:"early_bird_end" binding:"required"`
}
