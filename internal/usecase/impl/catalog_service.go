package impl

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"storefront/config"
	apperrors "storefront/internal/domain/errors"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type catalogService struct {
	productRepo repository.ProductRepository
	cfg         *config.Config
	logger      *slog.Logger
}

// CatalogServiceParams holds dependencies for CatalogService, injected by Fx.
type CatalogServiceParams struct {
	fx.In

	ProductRepo repository.ProductRepository
	Config      *config.Config
	Logger      *slog.Logger
}

// NewCatalogService creates a new catalog service instance
func NewCatalogService(params CatalogServiceParams) usecase.CatalogUsecase {
	return &catalogService{
		productRepo: params.ProductRepo,
		cfg:         params.Config,
		logger:      params.Logger,
	}
}

// ListProducts fetches the product collection and applies filter, sort and
// pagination. The result is always a fresh slice; the fetched snapshot is
// never mutated.
func (s *catalogService) ListProducts(ctx context.Context, filter usecase.CatalogFilter) (*usecase.CatalogPage, error) {
	products, err := s.fetchCatalog(ctx)
	if err != nil {
		return nil, err
	}

	if filter.PriceMax == 0 {
		filter.PriceMax = s.cfg.Catalog.DefaultPriceMax
	}
	if filter.SortBy == "" {
		filter.SortBy = usecase.SortByName
	}

	filtered := FilterProducts(products, filter)
	sorted := SortProducts(filtered, filter.SortBy)

	page := &usecase.CatalogPage{
		Products:   sorted,
		TotalCount: len(sorted),
		Page:       filter.Page,
		PerPage:    s.cfg.Catalog.ProductsPerPage,
	}
	if filter.Page > 0 {
		page.Products = paginate(sorted, filter.Page, page.PerPage)
	}

	return page, nil
}

// GetProduct retrieves a single product by ID.
func (s *catalogService) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, apperrors.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product by id")
	}

	return product, nil
}

// FeaturedProducts returns the featured strip, newest first, capped at the
// configured limit.
func (s *catalogService) FeaturedProducts(ctx context.Context) ([]*entity.Product, error) {
	products, err := s.fetchCatalog(ctx)
	if err != nil {
		return nil, err
	}

	featured := make([]*entity.Product, 0, s.cfg.Catalog.FeaturedLimit)
	for _, p := range products {
		if !p.Featured {
			continue
		}
		featured = append(featured, p)
		if len(featured) == s.cfg.Catalog.FeaturedLimit {
			break
		}
	}

	return featured, nil
}

// Categories returns the static category table for navigation.
func (s *catalogService) Categories(ctx context.Context) ([]entity.Category, error) {
	return entity.Categories, nil
}

// fetchCatalog pulls active products newest-first. It prefers the indexed
// query; when the store rejects it for a missing composite index, it accepts
// a raw unordered fetch and applies the status filter and creation-time
// ordering itself. Both tiers must yield the same final ordering.
func (s *catalogService) fetchCatalog(ctx context.Context) ([]*entity.Product, error) {
	limit := s.cfg.Catalog.FetchLimit

	products, err := s.productRepo.FetchActive(ctx, limit)
	if err == nil {
		return products, nil
	}
	if !errors.Is(err, repository.ErrIndexUnavailable) {
		return nil, errors.Wrap(err, "failed to fetch active products")
	}

	s.logger.Warn("indexed catalog query unavailable, falling back to raw fetch")

	raw, err := s.productRepo.FetchAll(ctx, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch products on fallback tier")
	}

	return NormalizeSnapshot(raw), nil
}

// NormalizeSnapshot applies the fallback-tier rules to a raw fetch: keep only
// products whose status is active (a missing status counts as active) and
// order by creation time descending, treating a missing timestamp as epoch
// zero. The input slice is not modified.
func NormalizeSnapshot(products []*entity.Product) []*entity.Product {
	out := make([]*entity.Product, 0, len(products))
	for _, p := range products {
		if p.IsActive() {
			out = append(out, p)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		// Zero time already sorts last under descending order.
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	return out
}

// FilterProducts returns the subset of products matching every active
// predicate in the filter. The input slice is not modified.
func FilterProducts(products []*entity.Product, filter usecase.CatalogFilter) []*entity.Product {
	term := strings.ToLower(strings.TrimSpace(filter.SearchTerm))
	categoryID := ""
	if filter.Category != "" {
		categoryID = entity.CanonicalCategoryID(filter.Category)
	}

	out := make([]*entity.Product, 0, len(products))
	for _, p := range products {
		if categoryID != "" && entity.CanonicalCategoryID(p.Category) != categoryID {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(p.Name), term) &&
			!strings.Contains(strings.ToLower(p.Description), term) {
			continue
		}
		if p.Price < filter.PriceMin || p.Price > filter.PriceMax {
			continue
		}
		out = append(out, p)
	}

	return out
}

// SortProducts returns a new slice sorted by the given key. Sorting is
// stable: products comparing equal keep their prior relative order. The name
// key uses locale-aware collation to match storefront display ordering.
func SortProducts(products []*entity.Product, sortBy string) []*entity.Product {
	out := make([]*entity.Product, len(products))
	copy(out, products)

	switch sortBy {
	case usecase.SortByPriceLow:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case usecase.SortByPriceHigh:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	case usecase.SortByRating:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
	default:
		coll := collate.New(language.English, collate.IgnoreCase)
		sort.SliceStable(out, func(i, j int) bool {
			return coll.CompareString(out[i].Name, out[j].Name) < 0
		})
	}

	return out
}

// paginate slices one page out of the sorted result. Pages past the end are
// empty, not an error.
func paginate(products []*entity.Product, page, perPage int) []*entity.Product {
	start := (page - 1) * perPage
	if start >= len(products) {
		return []*entity.Product{}
	}
	end := start + perPage
	if end > len(products) {
		end = len(products)
	}

	return products[start:end]
}
