package impl

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
)

// fakeProductRepo is a small in-memory product store used in unit tests.
// It keeps documents in a map and reimplements the query semantics of the
// real store just closely enough for the services under test.
type fakeProductRepo struct {
	mu       sync.Mutex
	seq      int
	docs     map[string]*entity.Product
	indexed  bool // when false, FetchActive and FindHero report ErrIndexUnavailable
	failWith error

	fetchActiveCalls  int
	fetchAllCalls     int
	updateFieldCalls  []string // document IDs in call order
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{docs: map[string]*entity.Product{}, indexed: true}
}

func (f *fakeProductRepo) add(p *entity.Product) *entity.Product {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p.ID == "" {
		f.seq++
		p.ID = fmt.Sprintf("prod-%d", f.seq)
	}
	f.docs[p.ID] = p

	return p
}

func (f *fakeProductRepo) FetchActive(ctx context.Context, limit int) ([]*entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetchActiveCalls++
	if f.failWith != nil {
		return nil, f.failWith
	}
	if !f.indexed {
		return nil, repository.ErrIndexUnavailable
	}

	// Indexed tier: strict status equality, createdAt descending. Documents
	// with no status field never match the indexed query.
	out := []*entity.Product{}
	for _, p := range f.docs {
		if p.Status == entity.ProductStatusActive {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}

	return out, nil
}

func (f *fakeProductRepo) FetchAll(ctx context.Context, limit int) ([]*entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetchAllCalls++
	if f.failWith != nil {
		return nil, f.failWith
	}

	// Unindexed tier: no filter, map iteration order (deliberately unordered).
	out := []*entity.Product{}
	for _, p := range f.docs {
		out = append(out, p)
	}
	if len(out) > limit {
		out = out[:limit]
	}

	return out, nil
}

func (f *fakeProductRepo) FindByID(ctx context.Context, id string) (*entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.docs[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}

	return p, nil
}

func (f *fakeProductRepo) Create(ctx context.Context, product *entity.Product) (string, error) {
	f.add(product)

	return product.ID, nil
}

func (f *fakeProductRepo) UpdateFields(ctx context.Context, id string, fields map[string]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.docs[id]
	if !ok {
		return repository.ErrProductNotFound
	}
	f.updateFieldCalls = append(f.updateFieldCalls, id)

	for key, value := range fields {
		switch key {
		case "name":
			p.Name = value.(string)
		case "category":
			p.Category = value.(string)
		case "price":
			p.Price = value.(float64)
		case "originalPrice":
			p.OriginalPrice = value.(float64)
		case "stock":
			p.Stock = value.(int)
		case "description":
			p.Description = value.(string)
		case "image":
			p.Image = value.(string)
		case "status":
			p.Status = value.(string)
		case "featured":
			p.Featured = value.(bool)
		case "tags":
			p.Tags = value.([]string)
		case "searchKeywords":
			p.SearchKeywords = value.([]string)
		case "updatedAt":
			p.UpdatedAt = value.(time.Time)
		case "heroCarousel":
			p.HeroCarousel = value.(bool)
		case "heroCarouselOrder":
			if value == nil {
				p.HeroOrder = nil
			} else {
				order := value.(int)
				p.HeroOrder = &order
			}
		case "heroCarouselAddedAt":
			if value == nil {
				p.HeroAddedAt = nil
			} else {
				added := value.(time.Time)
				p.HeroAddedAt = &added
			}
		default:
			return fmt.Errorf("fakeProductRepo: unknown field %q", key)
		}
	}

	return nil
}

func (f *fakeProductRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.docs[id]; !ok {
		return repository.ErrProductNotFound
	}
	delete(f.docs, id)

	return nil
}

func (f *fakeProductRepo) FindHero(ctx context.Context, max int) ([]*entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.indexed {
		return nil, repository.ErrIndexUnavailable
	}

	out := []*entity.Product{}
	for _, p := range f.docs {
		if p.HeroCarousel {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return heroOrderOf(out[i]) < heroOrderOf(out[j])
	})
	if len(out) > max {
		out = out[:max]
	}

	return out, nil
}

func heroOrderOf(p *entity.Product) int {
	if p.HeroOrder == nil {
		return 1 << 30
	}

	return *p.HeroOrder
}

func (f *fakeProductRepo) FindFeaturedActive(ctx context.Context, max int) ([]*entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*entity.Product{}
	for _, p := range f.docs {
		if p.Featured && p.IsActive() {
			out = append(out, p)
		}
	}
	if len(out) > max {
		out = out[:max]
	}

	return out, nil
}

func (f *fakeProductRepo) Watch(ctx context.Context) (repository.Subscription[[]*entity.Product], error) {
	ch := make(chan []*entity.Product)

	return &fakeSubscription[[]*entity.Product]{ch: ch}, nil
}

// fakeSubscription is a push-driven Subscription for tests.
type fakeSubscription[T any] struct {
	ch      chan T
	mu      sync.Mutex
	stopped bool
}

func (s *fakeSubscription[T]) Updates() <-chan T { return s.ch }

func (s *fakeSubscription[T]) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	s.stopped = true
	close(s.ch)
}

func (s *fakeSubscription[T]) push(v T) { s.ch <- v }

// fakeOrderRepo is an in-memory order store for unit tests.
type fakeOrderRepo struct {
	mu   sync.Mutex
	seq  int
	docs map[string]*entity.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{docs: map[string]*entity.Order{}}
}

func (f *fakeOrderRepo) Create(ctx context.Context, order *entity.Order) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	order.ID = fmt.Sprintf("order-%d", f.seq)
	f.docs[order.ID] = order

	return order.ID, nil
}

func (f *fakeOrderRepo) FindByID(ctx context.Context, id string) (*entity.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.docs[id]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}

	return o, nil
}

func (f *fakeOrderRepo) FindByUser(ctx context.Context, userID string) ([]*entity.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*entity.Order{}
	for _, o := range f.docs {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })

	return out, nil
}

func (f *fakeOrderRepo) FetchAll(ctx context.Context) ([]*entity.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*entity.Order{}
	for _, o := range f.docs {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })

	return out, nil
}

func (f *fakeOrderRepo) UpdateStatus(ctx context.Context, id, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.docs[id]
	if !ok {
		return repository.ErrOrderNotFound
	}
	o.Status = status

	return nil
}

func (f *fakeOrderRepo) UpdatePaymentStatus(ctx context.Context, id, paymentStatus string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.docs[id]
	if !ok {
		return repository.ErrOrderNotFound
	}
	o.PaymentStatus = paymentStatus

	return nil
}

func (f *fakeOrderRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.docs[id]; !ok {
		return repository.ErrOrderNotFound
	}
	delete(f.docs, id)

	return nil
}

func (f *fakeOrderRepo) Watch(ctx context.Context) (repository.Subscription[[]*entity.Order], error) {
	ch := make(chan []*entity.Order)

	return &fakeSubscription[[]*entity.Order]{ch: ch}, nil
}

// fakeCartRepo stores one cart per user.
type fakeCartRepo struct {
	mu    sync.Mutex
	carts map[string]*entity.Cart
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{carts: map[string]*entity.Cart{}}
}

func (f *fakeCartRepo) Get(ctx context.Context, userID string) (*entity.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cart, ok := f.carts[userID]
	if !ok {
		cart = &entity.Cart{UserID: userID, Items: []entity.CartItem{}}
		f.carts[userID] = cart
	}

	return cart, nil
}

func (f *fakeCartRepo) Put(ctx context.Context, cart *entity.Cart) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.carts[cart.UserID] = cart

	return nil
}

func (f *fakeCartRepo) Clear(ctx context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.carts[userID] = &entity.Cart{UserID: userID, Items: []entity.CartItem{}}

	return nil
}

// fakeUserRepo stores users by ID and enforces email uniqueness.
type fakeUserRepo struct {
	mu   sync.Mutex
	seq  int
	docs map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{docs: map[string]*entity.User{}}
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.docs[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	return u, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.docs {
		if u.Email == email {
			return u, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entity.User) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.docs {
		if u.Email == user.Email {
			return "", repository.ErrEmailTaken
		}
	}
	f.seq++
	user.ID = fmt.Sprintf("user-%d", f.seq)
	f.docs[user.ID] = user

	return user.ID, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.docs[user.ID]; !ok {
		return repository.ErrUserNotFound
	}
	f.docs[user.ID] = user

	return nil
}

// fakePublisher records published events.
type fakePublisher struct {
	mu     sync.Mutex
	events []*service.OrderEvent
	err    error
}

func (f *fakePublisher) PublishOrderEvent(ctx context.Context, event *service.OrderEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, event)

	return nil
}

func (f *fakePublisher) Close() error { return nil }

// fakeQRCode returns a fixed payload instead of rendering a PNG.
type fakeQRCode struct{}

func (fakeQRCode) GenerateOrderQR(orderNumber string) ([]byte, error) {
	return []byte("qr:" + orderNumber), nil
}

// fakeTokenService issues deterministic tokens of the form
// "access:<userID>" / "refresh:<userID>".
type fakeTokenService struct{}

func (fakeTokenService) GenerateTokens(userID string, roles []string) (string, string, error) {
	return "access:" + userID, "refresh:" + userID, nil
}

func (fakeTokenService) ValidateAccessToken(token string) (*service.Claims, error) {
	if len(token) <= 7 || token[:7] != "access:" {
		return nil, fmt.Errorf("bad access token %q", token)
	}

	return &service.Claims{UserID: token[7:], Type: "access"}, nil
}

func (fakeTokenService) ValidateRefreshToken(token string) (*service.Claims, error) {
	if len(token) <= 8 || token[:8] != "refresh:" {
		return nil, fmt.Errorf("bad refresh token %q", token)
	}

	return &service.Claims{UserID: token[8:], Type: "refresh"}, nil
}

func (fakeTokenService) GetRefreshTokenDuration() time.Duration { return 24 * time.Hour }

// fakeSnapshots serves fixed slices, standing in for the live cache.
type fakeSnapshots struct {
	products []*entity.Product
	orders   []*entity.Order
}

func (f *fakeSnapshots) Products() []*entity.Product { return f.products }
func (f *fakeSnapshots) Orders() []*entity.Order     { return f.orders }
