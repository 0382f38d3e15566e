package services

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/sportshop-backend/internal/platform/apperr"
	"github.com/yungbote/sportshop-backend/internal/platform/ctxutil"
	"github.com/yungbote/sportshop-backend/internal/platform/logger"
	"github.com/yungbote/sportshop-backend/internal/types"
)

// fakeOrderRepo is an in-memory OrderRepo with the same grouping semantics
// the store-side queries have: calendar month and ISO weekday of created_at.
type fakeOrderRepo struct {
	orders []*types.Order
	err    error
}

func (f *fakeOrderRepo) Create(ctx context.Context, tx *gorm.DB, orders []*types.Order) ([]*types.Order, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.orders = append(f.orders, orders...)
	return orders, nil
}

func (f *fakeOrderRepo) GetByIDs(ctx context.Context, tx *gorm.DB, orderIDs []uuid.UUID) ([]*types.Order, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*types.Order
	for _, o := range f.orders {
		for _, id := range orderIDs {
			if o.ID == id {
				out = append(out, o)
			}
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) ListAll(ctx context.Context, tx *gorm.DB, limit int) ([]*types.Order, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*types.Order, len(f.orders))
	copy(out, f.orders)
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID.String() > out[j].ID.String()
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeOrderRepo) ListByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.Order, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*types.Order
	for _, o := range f.orders {
		for _, id := range userIDs {
			if o.UserID == id {
				out = append(out, o)
			}
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) UpdateFields(ctx context.Context, tx *gorm.DB, orderID uuid.UUID, fields map[string]interface{}) error {
	if f.err != nil {
		return f.err
	}
	for _, o := range f.orders {
		if o.ID != orderID {
			continue
		}
		if v, ok := fields["status"]; ok {
			o.Status = v.(string)
		}
		if v, ok := fields["items"]; ok {
			o.Items = v.(datatypes.JSON)
		}
		if v, ok := fields["total_cents"]; ok {
			o.TotalCents = v.(int64)
		}
		if v, ok := fields["currency"]; ok {
			o.Currency = v.(string)
		}
	}
	return nil
}

func (f *fakeOrderRepo) CountByMonth(ctx context.Context, tx *gorm.DB, since time.Time) ([]types.StatBucket, error) {
	if f.err != nil {
		return nil, f.err
	}
	counts := map[int]int64{}
	for _, o := range f.orders {
		if o.CreatedAt.Before(since) {
			continue
		}
		counts[int(o.CreatedAt.UTC().Month())]++
	}
	return bucketsFromMap(counts), nil
}

func (f *fakeOrderRepo) SumTotalByMonth(ctx context.Context, tx *gorm.DB, since time.Time) ([]types.StatBucket, error) {
	if f.err != nil {
		return nil, f.err
	}
	sums := map[int]int64{}
	for _, o := range f.orders {
		if o.CreatedAt.Before(since) {
			continue
		}
		sums[int(o.CreatedAt.UTC().Month())] += o.TotalCents
	}
	return bucketsFromMap(sums), nil
}

func (f *fakeOrderRepo) SumTotalByWeekday(ctx context.Context, tx *gorm.DB, since time.Time) ([]types.StatBucket, error) {
	if f.err != nil {
		return nil, f.err
	}
	sums := map[int]int64{}
	for _, o := range f.orders {
		if o.CreatedAt.Before(since) {
			continue
		}
		day := int(o.CreatedAt.UTC().Weekday())
		if day == 0 {
			day = 7
		}
		sums[day] += o.TotalCents
	}
	return bucketsFromMap(sums), nil
}

func bucketsFromMap(m map[int]int64) []types.StatBucket {
	out := make([]types.StatBucket, 0, len(m))
	for k, v := range m {
		out = append(out, types.StatBucket{Bucket: k, Total: v})
	}
	return out
}

func newTestOrderService(t *testing.T, repo *fakeOrderRepo, now time.Time) *orderService {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return &orderService{
		log:       log,
		orderRepo: repo,
		now:       func() time.Time { return now },
	}
}

func authedCtx(userID uuid.UUID, isAdmin bool) context.Context {
	return ctxutil.WithRequestData(context.Background(), &ctxutil.RequestData{
		UserID:  userID,
		IsAdmin: isAdmin,
	})
}

func TestListAllRecentLimitsToFourNewest(t *testing.T) {
	t.Parallel()

	repo := &fakeOrderRepo{}
	base := time.Date(2024, time.August, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 6; i++ {
		repo.orders = append(repo.orders, &types.Order{
			ID:        uuid.New(),
			UserID:    uuid.New(),
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
	}
	svc := newTestOrderService(t, repo, base.Add(24*time.Hour))

	recent, err := svc.ListAll(context.Background(), true)
	if err != nil {
		t.Fatalf("ListAll(recent): %v", err)
	}
	if len(recent) != 4 {
		t.Fatalf("ListAll(recent): expected 4 orders, got %d", len(recent))
	}
	for i := 1; i < len(recent); i++ {
		if recent[i].CreatedAt.After(recent[i-1].CreatedAt) {
			t.Fatalf("ListAll(recent): not in descending creation order")
		}
	}

	all, err := svc.ListAll(context.Background(), false)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(all) != 6 {
		t.Fatalf("ListAll: expected 6 orders, got %d", len(all))
	}
	// The recent listing must be the head of the unfiltered listing.
	for i := range recent {
		if recent[i].ID != all[i].ID {
			t.Fatalf("ListAll(recent): element %d differs from unfiltered head", i)
		}
	}
}

func TestGetEnforcesOwnership(t *testing.T) {
	t.Parallel()

	owner := uuid.New()
	other := uuid.New()
	order := &types.Order{ID: uuid.New(), UserID: owner, TotalCents: 100}
	repo := &fakeOrderRepo{orders: []*types.Order{order}}
	svc := newTestOrderService(t, repo, time.Now())

	if _, err := svc.Get(authedCtx(owner, false), order.ID); err != nil {
		t.Fatalf("Get as owner: %v", err)
	}
	if _, err := svc.Get(authedCtx(other, true), order.ID); err != nil {
		t.Fatalf("Get as admin: %v", err)
	}

	_, err := svc.Get(authedCtx(other, false), order.ID)
	if !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("Get as stranger: expected ErrForbidden, got %v", err)
	}

	_, err = svc.Get(authedCtx(owner, false), uuid.New())
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("Get missing: expected ErrNotFound, got %v", err)
	}

	_, err = svc.Get(context.Background(), order.ID)
	if !errors.Is(err, apperr.ErrUnauthenticated) {
		t.Fatalf("Get without identity: expected ErrUnauthenticated, got %v", err)
	}
}

func TestUpdateMergesOnlyProvidedFields(t *testing.T) {
	t.Parallel()

	createdAt := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)
	order := &types.Order{
		ID:         uuid.New(),
		UserID:     uuid.New(),
		TotalCents: 4200,
		Currency:   "usd",
		Status:     types.OrderStatusPaid,
		CreatedAt:  createdAt,
	}
	repo := &fakeOrderRepo{orders: []*types.Order{order}}
	svc := newTestOrderService(t, repo, time.Now())

	status := types.OrderStatusShipped
	updated, err := svc.Update(context.Background(), order.ID, OrderUpdate{Status: &status})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Status != types.OrderStatusShipped {
		t.Fatalf("Update: status not applied: %q", updated.Status)
	}
	if updated.TotalCents != 4200 || updated.Currency != "usd" {
		t.Fatalf("Update: untouched fields changed: %+v", updated)
	}
	if !updated.CreatedAt.Equal(createdAt) {
		t.Fatalf("Update: created_at must be immutable")
	}

	_, err = svc.Update(context.Background(), uuid.New(), OrderUpdate{Status: &status})
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("Update missing: expected ErrNotFound, got %v", err)
	}

	negative := int64(-1)
	_, err = svc.Update(context.Background(), order.ID, OrderUpdate{TotalCents: &negative})
	if !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Fatalf("Update negative total: expected ErrInvalidArgument, got %v", err)
	}
}

func TestRevenueByMonthScenario(t *testing.T) {
	t.Parallel()

	// Orders in current month -2, -2, -1 and 0 with totals 10, 20, 5, 7:
	// expected buckets {June: 30, July: 5, August: 7} keyed by calendar
	// month number.
	now := time.Date(2024, time.August, 20, 12, 0, 0, 0, time.UTC)
	repo := &fakeOrderRepo{}
	seed := []struct {
		monthsAgo int
		total     int64
	}{
		{2, 10}, {2, 20}, {1, 5}, {0, 7},
	}
	for _, s := range seed {
		repo.orders = append(repo.orders, &types.Order{
			ID:         uuid.New(),
			UserID:     uuid.New(),
			TotalCents: s.total,
			CreatedAt:  now.AddDate(0, -s.monthsAgo, 0),
		})
	}
	// Outside the five-month window; must not appear.
	repo.orders = append(repo.orders, &types.Order{
		ID:         uuid.New(),
		UserID:     uuid.New(),
		TotalCents: 999,
		CreatedAt:  now.AddDate(0, -6, 0),
	})

	svc := newTestOrderService(t, repo, now)
	buckets, err := svc.RevenueByMonth(context.Background())
	if err != nil {
		t.Fatalf("RevenueByMonth: %v", err)
	}

	got := map[int]int64{}
	for _, b := range buckets {
		got[b.Bucket] = b.Total
	}
	want := map[int]int64{6: 30, 7: 5, 8: 7}
	if len(got) != len(want) {
		t.Fatalf("RevenueByMonth: got buckets %v want %v", got, want)
	}
	for k, v := range want {
		if got[k] != v {
			t.Fatalf("RevenueByMonth: bucket %d: got=%d want=%d", k, got[k], v)
		}
	}
}

func TestCountByMonthSumsToWindowedOrderCount(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.August, 20, 12, 0, 0, 0, time.UTC)
	repo := &fakeOrderRepo{}
	inWindow := 0
	for monthsAgo := 0; monthsAgo <= 7; monthsAgo++ {
		repo.orders = append(repo.orders, &types.Order{
			ID:        uuid.New(),
			UserID:    uuid.New(),
			CreatedAt: now.AddDate(0, -monthsAgo, 0),
		})
		if monthsAgo <= 5 {
			inWindow++
		}
	}

	svc := newTestOrderService(t, repo, now)
	buckets, err := svc.CountByMonth(context.Background())
	if err != nil {
		t.Fatalf("CountByMonth: %v", err)
	}
	var sum int64
	for _, b := range buckets {
		if b.Bucket < 1 || b.Bucket > 12 {
			t.Fatalf("CountByMonth: bucket %d out of calendar range", b.Bucket)
		}
		sum += b.Total
	}
	if sum != int64(inWindow) {
		t.Fatalf("CountByMonth: bucket sum %d, want %d orders in window", sum, inWindow)
	}
}

func TestRevenueByWeekdayTotalsMatchWindow(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.August, 20, 12, 0, 0, 0, time.UTC)
	repo := &fakeOrderRepo{}
	var wantTotal int64
	for daysAgo := 0; daysAgo < 10; daysAgo++ {
		total := int64(10 * (daysAgo + 1))
		repo.orders = append(repo.orders, &types.Order{
			ID:         uuid.New(),
			UserID:     uuid.New(),
			TotalCents: total,
			CreatedAt:  now.AddDate(0, 0, -daysAgo),
		})
		// The window start is inclusive, so the order exactly 168 hours
		// old still counts.
		if daysAgo <= 7 {
			wantTotal += total
		}
	}

	svc := newTestOrderService(t, repo, now)
	buckets, err := svc.RevenueByWeekday(context.Background())
	if err != nil {
		t.Fatalf("RevenueByWeekday: %v", err)
	}
	var sum int64
	for _, b := range buckets {
		if b.Bucket < 1 || b.Bucket > 7 {
			t.Fatalf("RevenueByWeekday: bucket %d out of weekday range", b.Bucket)
		}
		sum += b.Total
	}
	if sum != wantTotal {
		t.Fatalf("RevenueByWeekday: bucket sum %d, want %d", sum, wantTotal)
	}
}

func TestStatsSurfaceStoreFailure(t *testing.T) {
	t.Parallel()

	repo := &fakeOrderRepo{err: errors.New("connection refused")}
	svc := newTestOrderService(t, repo, time.Now())

	if _, err := svc.CountByMonth(context.Background()); !errors.Is(err, apperr.ErrStoreUnavailable) {
		t.Fatalf("CountByMonth: expected ErrStoreUnavailable, got %v", err)
	}
	if _, err := svc.RevenueByMonth(context.Background()); !errors.Is(err, apperr.ErrStoreUnavailable) {
		t.Fatalf("RevenueByMonth: expected ErrStoreUnavailable, got %v", err)
	}
	if _, err := svc.RevenueByWeekday(context.Background()); !errors.Is(err, apperr.ErrStoreUnavailable) {
		t.Fatalf("RevenueByWeekday: expected ErrStoreUnavailable, got %v", err)
	}
}
