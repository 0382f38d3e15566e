package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	redisclient "github.com/yungbote/sportshop-backend/internal/clients/redis"
	"github.com/yungbote/sportshop-backend/internal/platform/apperr"
	"github.com/yungbote/sportshop-backend/internal/platform/logger"
	"github.com/yungbote/sportshop-backend/internal/repos"
	"github.com/yungbote/sportshop-backend/internal/types"
)

// ProductUpdate is a partial update: only non-nil fields overwrite.
type ProductUpdate struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
	Category    *string `json:"category"`
	PriceCents  *int64  `json:"price_cents"`
	InStock     *bool   `json:"in_stock"`
}

type ProductService interface {
	List(ctx context.Context, category string) ([]*types.Product, error)
	Get(ctx context.Context, productID uuid.UUID) (*types.Product, error)
	Create(ctx context.Context, product *types.Product) (*types.Product, error)
	Update(ctx context.Context, productID uuid.UUID, upd ProductUpdate) (*types.Product, error)
	Delete(ctx context.Context, productID uuid.UUID) error
}

type productService struct {
	db          *gorm.DB
	log         *logger.Logger
	productRepo repos.ProductRepo
	cache       redisclient.ProductCache
}

// NewProductService accepts a nil cache; caching is then disabled.
func NewProductService(db *gorm.DB, log *logger.Logger, productRepo repos.ProductRepo, cache redisclient.ProductCache) ProductService {
	serviceLog := log.With("service", "ProductService")
	return &productService{
		db:          db,
		log:         serviceLog,
		productRepo: productRepo,
		cache:       cache,
	}
}

func (ps *productService) List(ctx context.Context, category string) ([]*types.Product, error) {
	key := "list"
	if category != "" {
		key = "list:" + category
	}
	if ps.cache != nil {
		if raw, ok := ps.cache.Get(ctx, key); ok {
			var cached []*types.Product
			if err := json.Unmarshal(raw, &cached); err == nil {
				return cached, nil
			}
			ps.log.Warn("Dropping undecodable cache entry", "key", key)
		}
	}

	products, err := ps.productRepo.List(ctx, nil, category)
	if err != nil {
		return nil, fmt.Errorf("%w: list products: %v", apperr.ErrStoreUnavailable, err)
	}

	if ps.cache != nil {
		if raw, err := json.Marshal(products); err == nil {
			ps.cache.Set(ctx, key, raw)
		}
	}
	return products, nil
}

func (ps *productService) Get(ctx context.Context, productID uuid.UUID) (*types.Product, error) {
	products, err := ps.productRepo.GetByIDs(ctx, nil, []uuid.UUID{productID})
	if err != nil {
		return nil, fmt.Errorf("%w: get product: %v", apperr.ErrStoreUnavailable, err)
	}
	if len(products) == 0 {
		return nil, fmt.Errorf("%w: product %s", apperr.ErrNotFound, productID)
	}
	return products[0], nil
}

func (ps *productService) Create(ctx context.Context, product *types.Product) (*types.Product, error) {
	if product.Title == "" {
		return nil, fmt.Errorf("%w: title required", apperr.ErrInvalidArgument)
	}
	if product.PriceCents < 0 {
		return nil, fmt.Errorf("%w: price must be non-negative", apperr.ErrInvalidArgument)
	}
	product.ID = uuid.New()
	created, err := ps.productRepo.Create(ctx, nil, []*types.Product{product})
	if err != nil {
		return nil, fmt.Errorf("%w: create product: %v", apperr.ErrStoreUnavailable, err)
	}
	ps.invalidateCache(ctx)
	return created[0], nil
}

func (ps *productService) Update(ctx context.Context, productID uuid.UUID, upd ProductUpdate) (*types.Product, error) {
	fields := map[string]interface{}{}
	if upd.Title != nil {
		fields["title"] = *upd.Title
	}
	if upd.Description != nil {
		fields["description"] = *upd.Description
	}
	if upd.Image != nil {
		fields["image"] = *upd.Image
	}
	if upd.Category != nil {
		fields["category"] = *upd.Category
	}
	if upd.PriceCents != nil {
		if *upd.PriceCents < 0 {
			return nil, fmt.Errorf("%w: price must be non-negative", apperr.ErrInvalidArgument)
		}
		fields["price_cents"] = *upd.PriceCents
	}
	if upd.InStock != nil {
		fields["in_stock"] = *upd.InStock
	}

	existing, err := ps.productRepo.GetByIDs(ctx, nil, []uuid.UUID{productID})
	if err != nil {
		return nil, fmt.Errorf("%w: get product: %v", apperr.ErrStoreUnavailable, err)
	}
	if len(existing) == 0 {
		return nil, fmt.Errorf("%w: product %s", apperr.ErrNotFound, productID)
	}
	if len(fields) > 0 {
		if err := ps.productRepo.UpdateFields(ctx, nil, productID, fields); err != nil {
			return nil, fmt.Errorf("%w: update product: %v", apperr.ErrStoreUnavailable, err)
		}
	}
	after, err := ps.productRepo.GetByIDs(ctx, nil, []uuid.UUID{productID})
	if err != nil {
		return nil, fmt.Errorf("%w: reload product: %v", apperr.ErrStoreUnavailable, err)
	}
	if len(after) == 0 {
		return nil, fmt.Errorf("%w: product %s", apperr.ErrNotFound, productID)
	}
	ps.invalidateCache(ctx)
	return after[0], nil
}

func (ps *productService) Delete(ctx context.Context, productID uuid.UUID) error {
	products, err := ps.productRepo.GetByIDs(ctx, nil, []uuid.UUID{productID})
	if err != nil {
		return fmt.Errorf("%w: get product: %v", apperr.ErrStoreUnavailable, err)
	}
	if len(products) == 0 {
		return fmt.Errorf("%w: product %s", apperr.ErrNotFound, productID)
	}
	if err := ps.productRepo.DeleteByIDs(ctx, nil, []uuid.UUID{productID}); err != nil {
		return fmt.Errorf("%w: delete product: %v", apperr.ErrStoreUnavailable, err)
	}
	ps.invalidateCache(ctx)
	return nil
}

func (ps *productService) invalidateCache(ctx context.Context) {
	if ps.cache != nil {
		ps.cache.Invalidate(ctx)
	}
}
