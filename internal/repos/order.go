package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/sportshop-backend/internal/platform/logger"
	"github.com/yungbote/sportshop-backend/internal/types"
)

type OrderRepo interface {
	Create(ctx context.Context, tx *gorm.DB, orders []*types.Order) ([]*types.Order, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, orderIDs []uuid.UUID) ([]*types.Order, error)
	ListAll(ctx context.Context, tx *gorm.DB, limit int) ([]*types.Order, error)
	ListByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.Order, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, orderID uuid.UUID, fields map[string]interface{}) error
	CountByMonth(ctx context.Context, tx *gorm.DB, since time.Time) ([]types.StatBucket, error)
	SumTotalByMonth(ctx context.Context, tx *gorm.DB, since time.Time) ([]types.StatBucket, error)
	SumTotalByWeekday(ctx context.Context, tx *gorm.DB, since time.Time) ([]types.StatBucket, error)
}

type orderRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewOrderRepo(db *gorm.DB, baseLog *logger.Logger) OrderRepo {
	repoLog := baseLog.With("repo", "OrderRepo")
	return &orderRepo{db: db, log: repoLog}
}

func (or *orderRepo) Create(ctx context.Context, tx *gorm.DB, orders []*types.Order) ([]*types.Order, error) {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}
	if len(orders) == 0 {
		return []*types.Order{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (or *orderRepo) GetByIDs(ctx context.Context, tx *gorm.DB, orderIDs []uuid.UUID) ([]*types.Order, error) {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}
	var results []*types.Order
	if len(orderIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", orderIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// ListAll returns orders in descending creation order. A positive limit
// caps the result; zero or negative returns the full set.
func (or *orderRepo) ListAll(ctx context.Context, tx *gorm.DB, limit int) ([]*types.Order, error) {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}
	var results []*types.Order
	q := transaction.WithContext(ctx).Order("created_at DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (or *orderRepo) ListByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.Order, error) {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}
	var results []*types.Order
	if len(userIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("user_id IN ?", userIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (or *orderRepo) UpdateFields(ctx context.Context, tx *gorm.DB, orderID uuid.UUID, fields map[string]interface{}) error {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}
	if len(fields) == 0 {
		return nil
	}
	// created_at is immutable once written.
	delete(fields, "created_at")
	return transaction.WithContext(ctx).
		Model(&types.Order{}).
		Where("id = ?", orderID).
		Updates(fields).Error
}

// CountByMonth groups orders created at or after since by calendar month
// (1-12) and counts them. The reduction runs in Postgres; order history is
// never loaded into application memory. Months without orders are absent
// from the result.
func (or *orderRepo) CountByMonth(ctx context.Context, tx *gorm.DB, since time.Time) ([]types.StatBucket, error) {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}
	rows := []types.StatBucket{}
	if err := transaction.WithContext(ctx).
		Model(&types.Order{}).
		Select("EXTRACT(MONTH FROM created_at)::int AS bucket, COUNT(*) AS total").
		Where("created_at >= ?", since).
		Group("bucket").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// SumTotalByMonth is CountByMonth with SUM(total_cents) as the reduction.
func (or *orderRepo) SumTotalByMonth(ctx context.Context, tx *gorm.DB, since time.Time) ([]types.StatBucket, error) {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}
	rows := []types.StatBucket{}
	if err := transaction.WithContext(ctx).
		Model(&types.Order{}).
		Select("EXTRACT(MONTH FROM created_at)::int AS bucket, SUM(total_cents) AS total").
		Where("created_at >= ?", since).
		Group("bucket").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// SumTotalByWeekday groups by ISO weekday (1=Monday .. 7=Sunday).
func (or *orderRepo) SumTotalByWeekday(ctx context.Context, tx *gorm.DB, since time.Time) ([]types.StatBucket, error) {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}
	rows := []types.StatBucket{}
	if err := transaction.WithContext(ctx).
		Model(&types.Order{}).
		Select("EXTRACT(ISODOW FROM created_at)::int AS bucket, SUM(total_cents) AS total").
		Where("created_at >= ?", since).
		Group("bucket").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
