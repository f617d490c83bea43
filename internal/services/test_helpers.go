package services

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"shop-api/internal/domain"
	"shop-api/internal/repository"
)

// memStore is an in-memory repository.Store for the service tests.
// Atomically serializes transactions and restores a snapshot when the
// closure fails, which is what lets the tests assert real all-or-nothing
// checkout behavior without a database.
type memStore struct {
	mu   sync.Mutex // guards data
	txMu sync.Mutex // one transaction at a time
	data *memData
}

type memData struct {
	users      map[uint64]*domain.User
	categories map[uint64]*domain.Category
	products   map[uint64]*domain.Product
	carts      map[uint64]*domain.Cart
	cartItems  map[uint64]*domain.CartItem
	orders     map[uint64]*domain.Order
	reviews    map[uint64]*domain.Review
	pickups    map[uint64]*domain.PickupPoint
	nextID     uint64
}

func newMemStore() *memStore {
	return &memStore{data: &memData{
		users:      map[uint64]*domain.User{},
		categories: map[uint64]*domain.Category{},
		products:   map[uint64]*domain.Product{},
		carts:      map[uint64]*domain.Cart{},
		cartItems:  map[uint64]*domain.CartItem{},
		orders:     map[uint64]*domain.Order{},
		reviews:    map[uint64]*domain.Review{},
		pickups:    map[uint64]*domain.PickupPoint{},
	}}
}

func (s *memStore) nextID() uint64 {
	s.data.nextID++
	return s.data.nextID
}

func (d *memData) clone() *memData {
	out := &memData{
		users:      map[uint64]*domain.User{},
		categories: map[uint64]*domain.Category{},
		products:   map[uint64]*domain.Product{},
		carts:      map[uint64]*domain.Cart{},
		cartItems:  map[uint64]*domain.CartItem{},
		orders:     map[uint64]*domain.Order{},
		reviews:    map[uint64]*domain.Review{},
		pickups:    map[uint64]*domain.PickupPoint{},
		nextID:     d.nextID,
	}
	for id, v := range d.users {
		c := *v
		out.users[id] = &c
	}
	for id, v := range d.categories {
		c := *v
		out.categories[id] = &c
	}
	for id, v := range d.products {
		c := *v
		out.products[id] = &c
	}
	for id, v := range d.carts {
		c := *v
		out.carts[id] = &c
	}
	for id, v := range d.cartItems {
		c := *v
		out.cartItems[id] = &c
	}
	for id, v := range d.orders {
		c := *v
		c.Items = append([]domain.OrderItem(nil), v.Items...)
		c.Payments = append([]domain.Payment(nil), v.Payments...)
		out.orders[id] = &c
	}
	for id, v := range d.reviews {
		c := *v
		out.reviews[id] = &c
	}
	for id, v := range d.pickups {
		c := *v
		out.pickups[id] = &c
	}
	return out
}

func (s *memStore) Users() repository.UserRepository               { return &memUserRepo{s} }
func (s *memStore) Products() repository.ProductRepository         { return &memProductRepo{s} }
func (s *memStore) Carts() repository.CartRepository               { return &memCartRepo{s} }
func (s *memStore) Orders() repository.OrderRepository             { return &memOrderRepo{s} }
func (s *memStore) Reviews() repository.ReviewRepository           { return &memReviewRepo{s} }
func (s *memStore) PickupPoints() repository.PickupPointRepository { return &memPickupRepo{s} }

func (s *memStore) Atomically(ctx context.Context, fn func(repository.Store) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	snapshot := s.data.clone()
	s.mu.Unlock()

	if err := fn(s); err != nil {
		s.mu.Lock()
		s.data = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

type memUserRepo struct{ s *memStore }

func (r *memUserRepo) Create(ctx context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	user.ID = r.s.nextID()
	c := *user
	r.s.data.users[user.ID] = &c
	return nil
}

func (r *memUserRepo) FindByID(ctx context.Context, id uint64) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.data.users[id]
	if !ok {
		return nil, nil
	}
	c := *u
	return &c, nil
}

func (r *memUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.data.users {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) Update(ctx context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *user
	r.s.data.users[user.ID] = &c
	return nil
}

func (r *memUserRepo) Delete(ctx context.Context, id uint64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.data.users, id)
	return nil
}

func (r *memUserRepo) List(ctx context.Context) ([]domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]domain.User, 0, len(r.s.data.users))
	for _, u := range r.s.data.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type memProductRepo struct{ s *memStore }

func (r *memProductRepo) Create(ctx context.Context, product *domain.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	product.ID = r.s.nextID()
	for i := range product.Images {
		product.Images[i].ID = r.s.nextID()
		product.Images[i].ProductID = product.ID
	}
	c := *product
	r.s.data.products[product.ID] = &c
	return nil
}

func (r *memProductRepo) FindByID(ctx context.Context, id uint64) (*domain.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.data.products[id]
	if !ok {
		return nil, nil
	}
	c := *p
	return &c, nil
}

func (r *memProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]domain.Product, 0, len(r.s.data.products))
	for _, p := range r.s.data.products {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memProductRepo) Search(ctx context.Context, keyword string) ([]domain.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	lower := strings.ToLower(keyword)
	var out []domain.Product
	for _, p := range r.s.data.products {
		if strings.Contains(strings.ToLower(p.Name), lower) ||
			strings.Contains(strings.ToLower(p.Description), lower) {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memProductRepo) Update(ctx context.Context, product *domain.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *product
	r.s.data.products[product.ID] = &c
	return nil
}

func (r *memProductRepo) Delete(ctx context.Context, id uint64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.data.products, id)
	return nil
}

func (r *memProductRepo) DecrementStock(ctx context.Context, productID uint64, qty int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.data.products[productID]
	if !ok || p.StockQuantity < qty {
		return false, nil
	}
	p.StockQuantity -= qty
	return true, nil
}

func (r *memProductRepo) CreateCategory(ctx context.Context, category *domain.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	category.ID = r.s.nextID()
	c := *category
	r.s.data.categories[category.ID] = &c
	return nil
}

func (r *memProductRepo) FindCategoryByName(ctx context.Context, name string) (*domain.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.data.categories {
		if c.Name == name {
			cc := *c
			return &cc, nil
		}
	}
	return nil, nil
}

type memCartRepo struct{ s *memStore }

func (r *memCartRepo) Create(ctx context.Context, cart *domain.Cart) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cart.ID = r.s.nextID()
	c := *cart
	c.Items = nil
	r.s.data.carts[cart.ID] = &c
	return nil
}

func (r *memCartRepo) FindByUser(ctx context.Context, userID uint64) (*domain.Cart, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, cart := range r.s.data.carts {
		if cart.UserID != userID {
			continue
		}
		c := *cart
		c.Items = nil
		for _, item := range r.s.data.cartItems {
			if item.CartID != cart.ID {
				continue
			}
			line := *item
			if p, ok := r.s.data.products[item.ProductID]; ok {
				pc := *p
				line.Product = &pc
			}
			c.Items = append(c.Items, line)
		}
		sort.Slice(c.Items, func(i, j int) bool { return c.Items[i].ID < c.Items[j].ID })
		return &c, nil
	}
	return nil, nil
}

func (r *memCartRepo) FindItem(ctx context.Context, cartID, productID uint64) (*domain.CartItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, item := range r.s.data.cartItems {
		if item.CartID == cartID && item.ProductID == productID {
			c := *item
			return &c, nil
		}
	}
	return nil, nil
}

func (r *memCartRepo) CreateItem(ctx context.Context, item *domain.CartItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	item.ID = r.s.nextID()
	c := *item
	c.Product = nil
	r.s.data.cartItems[item.ID] = &c
	return nil
}

func (r *memCartRepo) AdjustItemQuantity(ctx context.Context, itemID uint64, delta int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if item, ok := r.s.data.cartItems[itemID]; ok {
		item.Quantity += delta
	}
	return nil
}

func (r *memCartRepo) DeleteItem(ctx context.Context, itemID uint64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.data.cartItems, itemID)
	return nil
}

func (r *memCartRepo) DeleteItems(ctx context.Context, cartID uint64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, item := range r.s.data.cartItems {
		if item.CartID == cartID {
			delete(r.s.data.cartItems, id)
		}
	}
	return nil
}

type memOrderRepo struct{ s *memStore }

func (r *memOrderRepo) Create(ctx context.Context, order *domain.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	order.ID = r.s.nextID()
	for i := range order.Items {
		order.Items[i].ID = r.s.nextID()
		order.Items[i].OrderID = order.ID
	}
	for i := range order.Payments {
		order.Payments[i].ID = r.s.nextID()
		order.Payments[i].OrderID = order.ID
	}
	c := *order
	c.Items = append([]domain.OrderItem(nil), order.Items...)
	c.Payments = append([]domain.Payment(nil), order.Payments...)
	r.s.data.orders[order.ID] = &c
	return nil
}

func (r *memOrderRepo) FindByID(ctx context.Context, id uint64) (*domain.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.data.orders[id]
	if !ok {
		return nil, nil
	}
	c := *o
	c.Items = append([]domain.OrderItem(nil), o.Items...)
	for i := range c.Items {
		if p, ok := r.s.data.products[c.Items[i].ProductID]; ok {
			pc := *p
			c.Items[i].Product = &pc
		}
	}
	c.Payments = append([]domain.Payment(nil), o.Payments...)
	return &c, nil
}

func (r *memOrderRepo) ListByUser(ctx context.Context, userID uint64) ([]domain.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []domain.Order
	for _, o := range r.s.data.orders {
		if o.UserID == userID {
			c := *o
			c.Items = append([]domain.OrderItem(nil), o.Items...)
			c.Payments = append([]domain.Payment(nil), o.Payments...)
			out = append(out, c)
		}
	}
	// Newest first; IDs are monotonic so they break creation-time ties.
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *memOrderRepo) UpdateStatus(ctx context.Context, id uint64, status domain.OrderStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if o, ok := r.s.data.orders[id]; ok {
		o.Status = status
	}
	return nil
}

func (r *memOrderRepo) CountByUser(ctx context.Context, userID uint64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, o := range r.s.data.orders {
		if o.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (r *memOrderRepo) MostPurchasedProducts(ctx context.Context, limit int) ([]domain.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	counts := map[uint64]int64{}
	for _, o := range r.s.data.orders {
		for _, item := range o.Items {
			counts[item.ProductID] += item.Quantity
		}
	}
	type ranked struct {
		id  uint64
		qty int64
	}
	var ranking []ranked
	for id, qty := range counts {
		ranking = append(ranking, ranked{id, qty})
	}
	sort.Slice(ranking, func(i, j int) bool { return ranking[i].qty > ranking[j].qty })

	var out []domain.Product
	for _, r2 := range ranking {
		if len(out) == limit {
			break
		}
		if p, ok := r.s.data.products[r2.id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

type memReviewRepo struct{ s *memStore }

func (r *memReviewRepo) Create(ctx context.Context, review *domain.Review) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	review.ID = r.s.nextID()
	c := *review
	c.User = nil
	c.Product = nil
	r.s.data.reviews[review.ID] = &c
	return nil
}

func (r *memReviewRepo) FindByID(ctx context.Context, id uint64) (*domain.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rv, ok := r.s.data.reviews[id]
	if !ok {
		return nil, nil
	}
	c := *rv
	if u, ok := r.s.data.users[rv.UserID]; ok {
		uc := *u
		c.User = &uc
	}
	if p, ok := r.s.data.products[rv.ProductID]; ok {
		pc := *p
		c.Product = &pc
	}
	return &c, nil
}

func (r *memReviewRepo) FindByUserAndProduct(ctx context.Context, userID, productID uint64) (*domain.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, rv := range r.s.data.reviews {
		if rv.UserID == userID && rv.ProductID == productID {
			c := *rv
			return &c, nil
		}
	}
	return nil, nil
}

func (r *memReviewRepo) ListByProduct(ctx context.Context, productID uint64) ([]domain.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []domain.Review
	for _, rv := range r.s.data.reviews {
		if rv.ProductID == productID {
			out = append(out, *rv)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *memReviewRepo) Delete(ctx context.Context, id uint64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.data.reviews, id)
	return nil
}

type memPickupRepo struct{ s *memStore }

func (r *memPickupRepo) Create(ctx context.Context, point *domain.PickupPoint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	point.ID = r.s.nextID()
	c := *point
	r.s.data.pickups[point.ID] = &c
	return nil
}

func (r *memPickupRepo) List(ctx context.Context) ([]domain.PickupPoint, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]domain.PickupPoint, 0, len(r.s.data.pickups))
	for _, p := range r.s.data.pickups {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Fixtures shared across the service tests.

func seedTestUser(s *memStore, name string, role domain.Role) *domain.User {
	user := &domain.User{
		Name:         name,
		Email:        strings.ToLower(name) + "@test.com",
		PasswordHash: "x",
		Role:         role,
	}
	_ = s.Users().Create(context.Background(), user)
	return user
}

func seedTestProduct(s *memStore, name string, price string, stock int64) *domain.Product {
	product := &domain.Product{
		Name:          name,
		Description:   name + " description",
		Price:         decimal.RequireFromString(price),
		StockQuantity: stock,
	}
	_ = s.Products().Create(context.Background(), product)
	return product
}

func seedTestCart(s *memStore, userID uint64, lines map[uint64]int64) {
	ctx := context.Background()
	cart := &domain.Cart{UserID: userID}
	_ = s.Carts().Create(ctx, cart)
	for productID, qty := range lines {
		_ = s.Carts().CreateItem(ctx, &domain.CartItem{
			CartID:    cart.ID,
			ProductID: productID,
			Quantity:  qty,
		})
	}
}
