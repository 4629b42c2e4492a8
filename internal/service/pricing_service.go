package service

import (
	"context"
	"time"

	"summit-registration/internal/cache"
	"summit-registration/internal/model"
	"summit-registration/internal/repository"
	"summit-registration/pkg/logger"

	"go.uber.org/zap"
)

// priceCacheTTL keeps price reads cheap without serving a stale
// early-bird price for long after the boundary.
const priceCacheTTL = 30 * time.Second

type PricingService interface {
	// CurrentPrice returns the effective per-ticket price right now.
	CurrentPrice(ctx context.Context) (int64, error)
	GetPricing(ctx context.Context) (*model.Pricing, error)
	UpdatePricing(ctx context.Context, req model.UpdatePricingRequest) (*model.Pricing, error)
}

type PricingServiceImpl struct {
	repo  repository.PricingRepository
	cache cache.PriceCache
	log   *zap.Logger
}

func NewPricingService(repo repository.PricingRepository, priceCache cache.PriceCache) PricingService {
	return &PricingServiceImpl{
		repo:  repo,
		cache: priceCache,
		log:   logger.WithComponent("pricing"),
	}
}

func (s *PricingServiceImpl) CurrentPrice(ctx context.Context) (int64, error) {
	if price, ok, err := s.cache.Get(ctx); err == nil && ok {
		return price, nil
	} else if err != nil {
		s.log.Warn("price cache read failed", zap.Error(err))
	}

	pricing, err := s.repo.GetCurrent(ctx)
	if err != nil {
		return 0, err
	}

	price := pricing.EffectivePrice(time.Now().UTC())

	if err := s.cache.Set(ctx, price, priceCacheTTL); err != nil {
		s.log.Warn("price cache write failed", zap.Error(err))
	}

	return price, nil
}

func (s *PricingServiceImpl) GetPricing(ctx context.Context) (*model.Pricing, error) {
	return s.repo.GetCurrent(ctx)
}

func (s *PricingServiceImpl) UpdatePricing(ctx context.Context, req model.UpdatePricingRequest) (*model.Pricing, error) {
	pricing, err := s.repo.Upsert(ctx, &model.Pricing{
		EarlyBirdPrice: req.EarlyBirdPrice,
		NormalPrice:    req.NormalPrice,
		EarlyBirdEnd:   req.EarlyBirdEnd,
	})
	if err != nil {
		return nil, err
	}

	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn("price cache invalidation failed", zap.Error(err))
	}

	return pricing, nil
}
