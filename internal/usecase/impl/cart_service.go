package impl

import (
	"context"
	"log/slog"
	"time"

	apperrors "storefront/internal/domain/errors"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	logger      *slog.Logger
	now         func() time.Time
}

// CartServiceParams holds dependencies for CartService, injected by Fx.
type CartServiceParams struct {
	fx.In

	CartRepo    repository.CartRepository
	ProductRepo repository.ProductRepository
	Logger      *slog.Logger
}

// NewCartService creates a new cart service instance
func NewCartService(params CartServiceParams) usecase.CartUsecase {
	return &cartService{
		cartRepo:    params.CartRepo,
		productRepo: params.ProductRepo,
		logger:      params.Logger,
		now:         time.Now,
	}
}

func (s *cartService) Get(ctx context.Context, userID string) (*usecase.CartView, error) {
	cart, err := s.cartRepo.Get(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load cart")
	}

	return viewOf(cart), nil
}

// Add puts quantity units of a product into the cart. Adding a product that
// is already present merges into the existing line instead of creating a
// second one.
func (s *cartService) Add(ctx context.Context, userID, productID string, quantity int) (*usecase.CartView, error) {
	if quantity <= 0 {
		return nil, apperrors.ErrQuantityInvalid
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, apperrors.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product by id")
	}
	if !product.IsActive() {
		return nil, apperrors.ErrProductNotFound
	}

	cart, err := s.cartRepo.Get(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load cart")
	}

	merged := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity += quantity
			merged = true

			break
		}
	}
	if !merged {
		cart.Items = append(cart.Items, entity.CartItem{
			ProductID: productID,
			Name:      product.Name,
			Image:     product.Image,
			UnitPrice: product.Price,
			Quantity:  quantity,
			AddedAt:   s.now(),
		})
	}

	if err := s.cartRepo.Put(ctx, cart); err != nil {
		return nil, errors.Wrap(err, "failed to save cart")
	}

	return viewOf(cart), nil
}

// UpdateQuantity sets the line quantity for a product. A quantity of zero
// removes the line.
func (s *cartService) UpdateQuantity(ctx context.Context, userID, productID string, quantity int) (*usecase.CartView, error) {
	if quantity < 0 {
		return nil, apperrors.ErrQuantityInvalid
	}
	if quantity == 0 {
		return s.Remove(ctx, userID, productID)
	}

	cart, err := s.cartRepo.Get(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load cart")
	}

	found := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity = quantity
			found = true

			break
		}
	}
	if !found {
		return nil, apperrors.ErrProductNotFound
	}

	if err := s.cartRepo.Put(ctx, cart); err != nil {
		return nil, errors.Wrap(err, "failed to save cart")
	}

	return viewOf(cart), nil
}

func (s *cartService) Remove(ctx context.Context, userID, productID string) (*usecase.CartView, error) {
	cart, err := s.cartRepo.Get(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load cart")
	}

	kept := cart.Items[:0]
	for _, item := range cart.Items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	cart.Items = kept

	if err := s.cartRepo.Put(ctx, cart); err != nil {
		return nil, errors.Wrap(err, "failed to save cart")
	}

	return viewOf(cart), nil
}

func (s *cartService) Clear(ctx context.Context, userID string) error {
	if err := s.cartRepo.Clear(ctx, userID); err != nil {
		return errors.Wrap(err, "failed to clear cart")
	}

	return nil
}

func viewOf(cart *entity.Cart) *usecase.CartView {
	return &usecase.CartView{
		Items:      cart.Items,
		TotalItems: cart.TotalItems(),
		Subtotal:   cart.Subtotal(),
	}
}
