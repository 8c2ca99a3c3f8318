package impl

import (
	"context"
	"log/slog"
	"time"

	"storefront/config"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type heroService struct {
	productRepo repository.ProductRepository
	cfg         *config.Config
	logger      *slog.Logger
	now         func() time.Time
}

// HeroServiceParams holds dependencies for HeroService, injected by Fx.
type HeroServiceParams struct {
	fx.In

	ProductRepo repository.ProductRepository
	Config      *config.Config
	Logger      *slog.Logger
}

// NewHeroService creates a new hero carousel service instance
func NewHeroService(params HeroServiceParams) usecase.HeroUsecase {
	return &heroService{
		productRepo: params.ProductRepo,
		cfg:         params.Config,
		logger:      params.Logger,
		now:         time.Now,
	}
}

// List returns carousel members ordered by slot ascending. When the ordered
// read is rejected upstream it degrades to the featured-products fallback,
// whose ordering is advisory only.
func (s *heroService) List(ctx context.Context) ([]*entity.Product, error) {
	max := s.cfg.Hero.MaxSlots

	members, err := s.productRepo.FindHero(ctx, max)
	if err == nil {
		return members, nil
	}
	if !errors.Is(err, repository.ErrIndexUnavailable) {
		return nil, errors.Wrap(err, "failed to read hero carousel")
	}

	s.logger.Warn("hero carousel query unavailable, serving featured fallback")

	fallback, err := s.productRepo.FindFeaturedActive(ctx, max)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read featured fallback")
	}

	return fallback, nil
}

// Add inserts a product into the carousel. The carousel is a strict FIFO
// ring of MaxSlots members: at capacity the member in slot 0 (the earliest
// insertion) is evicted, the remaining members shift down one slot, and the
// new member takes the last slot. Each mutation is an independent store
// write, so concurrent Adds against a full carousel may both observe the
// same oldest member; at least one eviction lands, but the surviving order
// under concurrent calls is undefined.
func (s *heroService) Add(ctx context.Context, productID string) error {
	max := s.cfg.Hero.MaxSlots

	members, err := s.productRepo.FindHero(ctx, max)
	if err != nil {
		return errors.Wrap(err, "failed to read hero carousel")
	}

	for _, m := range members {
		if m.ID == productID {
			// Already a member.
			return nil
		}
	}

	newOrder := len(members)
	if len(members) >= max {
		oldest := members[0]
		if err := s.productRepo.UpdateFields(ctx, oldest.ID, clearHeroFields()); err != nil {
			return errors.Wrap(err, "failed to evict oldest hero member")
		}

		// Shift the survivors down so slots stay contiguous. A failure here
		// leaves a gap in the numbering; the next Remove repairs it.
		for i, m := range members[1:] {
			if err := s.productRepo.UpdateFields(ctx, m.ID, map[string]any{
				"heroCarouselOrder": i,
			}); err != nil {
				return errors.Wrapf(err, "failed to renumber hero member %s", m.ID)
			}
		}
		newOrder = max - 1
	}

	added := s.now()
	if err := s.productRepo.UpdateFields(ctx, productID, map[string]any{
		"heroCarousel":        true,
		"heroCarouselOrder":   newOrder,
		"heroCarouselAddedAt": added,
	}); err != nil {
		return errors.Wrap(err, "failed to add product to hero carousel")
	}

	return nil
}

// Remove takes a product out of the carousel, then renumbers the remaining
// members to a contiguous 0..k-1 sequence preserving relative order. The
// renumber pass also repairs any gap left by an earlier partial failure.
func (s *heroService) Remove(ctx context.Context, productID string) error {
	if err := s.productRepo.UpdateFields(ctx, productID, clearHeroFields()); err != nil {
		return errors.Wrap(err, "failed to remove product from hero carousel")
	}

	members, err := s.productRepo.FindHero(ctx, s.cfg.Hero.MaxSlots)
	if err != nil {
		return errors.Wrap(err, "failed to read hero carousel for renumbering")
	}

	for i, m := range members {
		if m.HeroOrder != nil && *m.HeroOrder == i {
			continue
		}
		if err := s.productRepo.UpdateFields(ctx, m.ID, map[string]any{
			"heroCarouselOrder": i,
		}); err != nil {
			return errors.Wrapf(err, "failed to renumber hero member %s", m.ID)
		}
	}

	return nil
}

func clearHeroFields() map[string]any {
	return map[string]any{
		"heroCarousel":        false,
		"heroCarouselOrder":   nil,
		"heroCarouselAddedAt": nil,
	}
}
