package testutil

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/sportshop-backend/internal/types"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email string, isAdmin bool) *types.User {
	tb.Helper()
	u := &types.User{
		ID:        uuid.New(),
		Email:     email,
		Password:  "pw",
		FirstName: "A",
		LastName:  "B",
		IsAdmin:   isAdmin,
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedProduct(tb testing.TB, ctx context.Context, tx *gorm.DB, title string, priceCents int64) *types.Product {
	tb.Helper()
	p := &types.Product{
		ID:         uuid.New(),
		Title:      title,
		Category:   "running",
		PriceCents: priceCents,
		InStock:    true,
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed product: %v", err)
	}
	return p
}

func SeedOrder(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID, totalCents int64, createdAt time.Time) *types.Order {
	tb.Helper()
	items, err := json.Marshal([]types.OrderItem{
		{ProductID: uuid.New(), Title: "item", Quantity: 1, PriceCents: totalCents},
	})
	if err != nil {
		tb.Fatalf("marshal order items: %v", err)
	}
	o := &types.Order{
		ID:         uuid.New(),
		UserID:     userID,
		Items:      datatypes.JSON(items),
		TotalCents: totalCents,
		Currency:   "usd",
		Status:     types.OrderStatusPaid,
		CreatedAt:  createdAt,
	}
	if err := tx.WithContext(ctx).Create(o).Error; err != nil {
		tb.Fatalf("seed order: %v", err)
	}
	return o
}
