package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/shopspring/decimal"

	"shop-api/internal/auth"
	"shop-api/internal/domain"
	"shop-api/internal/repository"
)

const (
	productCacheTTL     = time.Minute
	productListCacheKey = "products:all"
)

type ProductService struct {
	store       repository.Store
	redisClient *redis.Client
}

func NewProductService(store repository.Store) *ProductService {
	return &ProductService{store: store}
}

func (s *ProductService) SetRedisClient(client *redis.Client) {
	s.redisClient = client
}

type ProductInput struct {
	Name          string
	Description   string
	Price         decimal.Decimal
	StockQuantity int64
	CategoryID    *uint64
	Images        []domain.ProductImage
}

type ProductUpdate struct {
	Name          *string
	Description   *string
	Price         *decimal.Decimal
	StockQuantity *int64
	CategoryID    *uint64
}

// List returns the catalog, served from Redis when warm.
func (s *ProductService) List(ctx context.Context) ([]domain.Product, error) {
	if s.redisClient != nil {
		cached, err := s.redisClient.Get(ctx, productListCacheKey).Result()
		if err == nil {
			var products []domain.Product
			if err := json.Unmarshal([]byte(cached), &products); err == nil {
				return products, nil
			}
		}
	}

	products, err := s.store.Products().List(ctx)
	if err != nil {
		return nil, err
	}

	if s.redisClient != nil {
		if data, err := json.Marshal(products); err == nil {
			s.redisClient.Set(ctx, productListCacheKey, data, productCacheTTL)
		}
	}
	return products, nil
}

func (s *ProductService) Get(ctx context.Context, id uint64) (*domain.Product, error) {
	cacheKey := productCacheKey(id)
	if s.redisClient != nil {
		cached, err := s.redisClient.Get(ctx, cacheKey).Result()
		if err == nil {
			var p domain.Product
			if err := json.Unmarshal([]byte(cached), &p); err == nil {
				return &p, nil
			}
		}
	}

	product, err := s.store.Products().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("product %d: %w", id, domain.ErrNotFound)
	}

	if s.redisClient != nil {
		if data, err := json.Marshal(product); err == nil {
			s.redisClient.Set(ctx, cacheKey, data, productCacheTTL)
		}
	}
	return product, nil
}

func (s *ProductService) Search(ctx context.Context, keyword string) ([]domain.Product, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, fmt.Errorf("%w: search keyword must not be empty", domain.ErrValidation)
	}
	return s.store.Products().Search(ctx, keyword)
}

// Recommended ranks products by units sold; an empty order history falls
// back to the plain catalog.
func (s *ProductService) Recommended(ctx context.Context, limit int) ([]domain.Product, error) {
	if limit <= 0 {
		limit = 5
	}

	products, err := s.store.Orders().MostPurchasedProducts(ctx, limit)
	if err != nil {
		return nil, err
	}
	if len(products) > 0 {
		return products, nil
	}

	all, err := s.store.Products().List(ctx)
	if err != nil {
		return nil, err
	}
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (s *ProductService) Create(ctx context.Context, actor *domain.User, input ProductInput) (*domain.Product, error) {
	if err := auth.Authorize(actor, auth.ActionManageProducts, 0); err != nil {
		return nil, err
	}
	if input.Name == "" || input.Description == "" {
		return nil, fmt.Errorf("%w: name and description are required", domain.ErrValidation)
	}
	if input.Price.IsNegative() || input.StockQuantity < 0 {
		return nil, fmt.Errorf("%w: price and stock must not be negative", domain.ErrValidation)
	}

	for i := range input.Images {
		input.Images[i].Position = i
		input.Images[i].IsPrimary = i == 0
		if input.Images[i].AltText == "" {
			input.Images[i].AltText = input.Name
		}
	}

	product := &domain.Product{
		Name:          input.Name,
		Description:   input.Description,
		Price:         input.Price,
		StockQuantity: input.StockQuantity,
		CategoryID:    input.CategoryID,
		Images:        input.Images,
	}
	if err := s.store.Products().Create(ctx, product); err != nil {
		return nil, err
	}

	s.invalidateCache(ctx, product.ID)
	return s.store.Products().FindByID(ctx, product.ID)
}

func (s *ProductService) Update(ctx context.Context, actor *domain.User, id uint64, update ProductUpdate) (*domain.Product, error) {
	if err := auth.Authorize(actor, auth.ActionManageProducts, 0); err != nil {
		return nil, err
	}

	product, err := s.store.Products().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("product %d: %w", id, domain.ErrNotFound)
	}

	if update.Name != nil {
		product.Name = *update.Name
	}
	if update.Description != nil {
		product.Description = *update.Description
	}
	if update.Price != nil {
		if update.Price.IsNegative() {
			return nil, fmt.Errorf("%w: price must not be negative", domain.ErrValidation)
		}
		product.Price = *update.Price
	}
	if update.StockQuantity != nil {
		if *update.StockQuantity < 0 {
			return nil, fmt.Errorf("%w: stock must not be negative", domain.ErrValidation)
		}
		product.StockQuantity = *update.StockQuantity
	}
	if update.CategoryID != nil {
		product.CategoryID = update.CategoryID
	}

	if err := s.store.Products().Update(ctx, product); err != nil {
		return nil, err
	}

	s.invalidateCache(ctx, id)
	return product, nil
}

func (s *ProductService) Delete(ctx context.Context, actor *domain.User, id uint64) error {
	if err := auth.Authorize(actor, auth.ActionManageProducts, 0); err != nil {
		return err
	}

	product, err := s.store.Products().FindByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return fmt.Errorf("product %d: %w", id, domain.ErrNotFound)
	}

	if err := s.store.Products().Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateCache(ctx, id)
	return nil
}

// WarmupCache primes Redis with the catalog after boot.
func (s *ProductService) WarmupCache(ctx context.Context) error {
	if s.redisClient == nil {
		return nil
	}
	_, err := s.List(ctx)
	return err
}

func (s *ProductService) invalidateCache(ctx context.Context, productID uint64) {
	if s.redisClient == nil {
		return
	}
	s.redisClient.Del(ctx, productListCacheKey, productCacheKey(productID))
}

func productCacheKey(id uint64) string {
	return "product:" + strconv.FormatUint(id, 10)
}
