package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/sportshop-backend/internal/platform/apperr"
	"github.com/yungbote/sportshop-backend/internal/platform/ctxutil"
	"github.com/yungbote/sportshop-backend/internal/platform/logger"
	"github.com/yungbote/sportshop-backend/internal/repos"
	"github.com/yungbote/sportshop-backend/internal/types"
)

// recentOrderLimit caps the listing when the "new" flag is set.
const recentOrderLimit = 4

// trailingStatsMonths is the default monthly stats window.
const trailingStatsMonths = 5

// OrderUpdate is a partial update: only non-nil fields overwrite.
type OrderUpdate struct {
	Status     *string         `json:"status"`
	Items      *datatypes.JSON `json:"items"`
	TotalCents *int64          `json:"total_cents"`
	Currency   *string         `json:"currency"`
}

type OrderService interface {
	ListAll(ctx context.Context, recent bool) ([]*types.Order, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*types.Order, error)
	Get(ctx context.Context, orderID uuid.UUID) (*types.Order, error)
	Update(ctx context.Context, orderID uuid.UUID, upd OrderUpdate) (*types.Order, error)
	CountByMonth(ctx context.Context) ([]types.StatBucket, error)
	RevenueByMonth(ctx context.Context) ([]types.StatBucket, error)
	RevenueByWeekday(ctx context.Context) ([]types.StatBucket, error)
}

type orderService struct {
	db        *gorm.DB
	log       *logger.Logger
	orderRepo repos.OrderRepo
	now       func() time.Time
}

func NewOrderService(db *gorm.DB, log *logger.Logger, orderRepo repos.OrderRepo) OrderService {
	serviceLog := log.With("service", "OrderService")
	return &orderService{
		db:        db,
		log:       serviceLog,
		orderRepo: orderRepo,
		now:       time.Now,
	}
}

func (os *orderService) ListAll(ctx context.Context, recent bool) ([]*types.Order, error) {
	limit := 0
	if recent {
		limit = recentOrderLimit
	}
	orders, err := os.orderRepo.ListAll(ctx, nil, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: list orders: %v", apperr.ErrStoreUnavailable, err)
	}
	return orders, nil
}

func (os *orderService) ListForUser(ctx context.Context, userID uuid.UUID) ([]*types.Order, error) {
	orders, err := os.orderRepo.ListByUserIDs(ctx, nil, []uuid.UUID{userID})
	if err != nil {
		return nil, fmt.Errorf("%w: list user orders: %v", apperr.ErrStoreUnavailable, err)
	}
	return orders, nil
}

// Get checks existence before any field access, then enforces self-or-admin
// ownership using the identity resolved by the auth middleware.
func (os *orderService) Get(ctx context.Context, orderID uuid.UUID) (*types.Order, error) {
	orders, err := os.orderRepo.GetByIDs(ctx, nil, []uuid.UUID{orderID})
	if err != nil {
		return nil, fmt.Errorf("%w: get order: %v", apperr.ErrStoreUnavailable, err)
	}
	if len(orders) == 0 {
		return nil, fmt.Errorf("%w: order %s", apperr.ErrNotFound, orderID)
	}
	order := orders[0]

	rd := ctxutil.GetRequestData(ctx)
	if rd == nil {
		return nil, apperr.ErrUnauthenticated
	}
	if rd.UserID != order.UserID && !rd.IsAdmin {
		return nil, fmt.Errorf("%w: not the order owner", apperr.ErrForbidden)
	}
	return order, nil
}

func (os *orderService) Update(ctx context.Context, orderID uuid.UUID, upd OrderUpdate) (*types.Order, error) {
	fields := map[string]interface{}{}
	if upd.Status != nil {
		fields["status"] = *upd.Status
	}
	if upd.Items != nil {
		fields["items"] = *upd.Items
	}
	if upd.TotalCents != nil {
		if *upd.TotalCents < 0 {
			return nil, fmt.Errorf("%w: total must be non-negative", apperr.ErrInvalidArgument)
		}
		fields["total_cents"] = *upd.TotalCents
	}
	if upd.Currency != nil {
		fields["currency"] = *upd.Currency
	}

	// Single-row write; per-row atomicity at the store is enough. Concurrent
	// updates to the same order resolve last-write-wins.
	existing, err := os.orderRepo.GetByIDs(ctx, nil, []uuid.UUID{orderID})
	if err != nil {
		return nil, fmt.Errorf("%w: get order: %v", apperr.ErrStoreUnavailable, err)
	}
	if len(existing) == 0 {
		return nil, fmt.Errorf("%w: order %s", apperr.ErrNotFound, orderID)
	}
	if len(fields) > 0 {
		if err := os.orderRepo.UpdateFields(ctx, nil, orderID, fields); err != nil {
			return nil, fmt.Errorf("%w: update order: %v", apperr.ErrStoreUnavailable, err)
		}
	}
	after, err := os.orderRepo.GetByIDs(ctx, nil, []uuid.UUID{orderID})
	if err != nil {
		return nil, fmt.Errorf("%w: reload order: %v", apperr.ErrStoreUnavailable, err)
	}
	if len(after) == 0 {
		return nil, fmt.Errorf("%w: order %s", apperr.ErrNotFound, orderID)
	}
	return after[0], nil
}

// CountByMonth buckets order counts per calendar month over the trailing
// five-month window. Computed against "now" at request time, never cached.
func (os *orderService) CountByMonth(ctx context.Context) ([]types.StatBucket, error) {
	since := monthWindowStart(os.now(), trailingStatsMonths)
	rows, err := os.orderRepo.CountByMonth(ctx, nil, since)
	if err != nil {
		return nil, fmt.Errorf("%w: monthly order counts: %v", apperr.ErrStoreUnavailable, err)
	}
	return rows, nil
}

func (os *orderService) RevenueByMonth(ctx context.Context) ([]types.StatBucket, error) {
	since := monthWindowStart(os.now(), trailingStatsMonths)
	rows, err := os.orderRepo.SumTotalByMonth(ctx, nil, since)
	if err != nil {
		return nil, fmt.Errorf("%w: monthly revenue: %v", apperr.ErrStoreUnavailable, err)
	}
	return rows, nil
}

func (os *orderService) RevenueByWeekday(ctx context.Context) ([]types.StatBucket, error) {
	since := weekWindowStart(os.now())
	rows, err := os.orderRepo.SumTotalByWeekday(ctx, nil, since)
	if err != nil {
		return nil, fmt.Errorf("%w: weekday revenue: %v", apperr.ErrStoreUnavailable, err)
	}
	return rows, nil
}
