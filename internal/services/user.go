package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yungbote/sportshop-backend/internal/platform/apperr"
	"github.com/yungbote/sportshop-backend/internal/platform/logger"
	"github.com/yungbote/sportshop-backend/internal/repos"
	"github.com/yungbote/sportshop-backend/internal/types"
)

// recentUserLimit caps the listing when the "new" flag is set.
const recentUserLimit = 5

// UserUpdate is a partial update: only non-nil fields overwrite.
type UserUpdate struct {
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Password  *string `json:"password"`
}

type UserService interface {
	Get(ctx context.Context, userID uuid.UUID) (*types.User, error)
	List(ctx context.Context, recent bool) ([]*types.User, error)
	Update(ctx context.Context, userID uuid.UUID, upd UserUpdate) (*types.User, error)
	Delete(ctx context.Context, userID uuid.UUID) error
	RegistrationsByMonth(ctx context.Context) ([]types.StatBucket, error)
}

type userService struct {
	db       *gorm.DB
	log      *logger.Logger
	userRepo repos.UserRepo
	now      func() time.Time
}

func NewUserService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo) UserService {
	serviceLog := log.With("service", "UserService")
	return &userService{
		db:       db,
		log:      serviceLog,
		userRepo: userRepo,
		now:      time.Now,
	}
}

func (us *userService) Get(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	users, err := us.userRepo.GetByIDs(ctx, nil, []uuid.UUID{userID})
	if err != nil {
		return nil, fmt.Errorf("%w: get user: %v", apperr.ErrStoreUnavailable, err)
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("%w: user %s", apperr.ErrNotFound, userID)
	}
	return users[0], nil
}

func (us *userService) List(ctx context.Context, recent bool) ([]*types.User, error) {
	limit := 0
	if recent {
		limit = recentUserLimit
	}
	users, err := us.userRepo.List(ctx, nil, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: list users: %v", apperr.ErrStoreUnavailable, err)
	}
	return users, nil
}

func (us *userService) Update(ctx context.Context, userID uuid.UUID, upd UserUpdate) (*types.User, error) {
	fields := map[string]interface{}{}
	if upd.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*upd.Email))
		if email == "" {
			return nil, fmt.Errorf("%w: email cannot be empty", apperr.ErrInvalidArgument)
		}
		fields["email"] = email
	}
	if upd.FirstName != nil {
		fields["first_name"] = *upd.FirstName
	}
	if upd.LastName != nil {
		fields["last_name"] = *upd.LastName
	}
	if upd.Password != nil {
		if len(*upd.Password) < 6 {
			return nil, fmt.Errorf("%w: password must be at least 6 characters", apperr.ErrInvalidArgument)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*upd.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		fields["password"] = string(hash)
	}

	existing, err := us.userRepo.GetByIDs(ctx, nil, []uuid.UUID{userID})
	if err != nil {
		return nil, fmt.Errorf("%w: get user: %v", apperr.ErrStoreUnavailable, err)
	}
	if len(existing) == 0 {
		return nil, fmt.Errorf("%w: user %s", apperr.ErrNotFound, userID)
	}
	if len(fields) > 0 {
		if err := us.userRepo.UpdateFields(ctx, nil, userID, fields); err != nil {
			return nil, fmt.Errorf("%w: update user: %v", apperr.ErrStoreUnavailable, err)
		}
	}
	after, err := us.userRepo.GetByIDs(ctx, nil, []uuid.UUID{userID})
	if err != nil {
		return nil, fmt.Errorf("%w: reload user: %v", apperr.ErrStoreUnavailable, err)
	}
	if len(after) == 0 {
		return nil, fmt.Errorf("%w: user %s", apperr.ErrNotFound, userID)
	}
	return after[0], nil
}

func (us *userService) Delete(ctx context.Context, userID uuid.UUID) error {
	users, err := us.userRepo.GetByIDs(ctx, nil, []uuid.UUID{userID})
	if err != nil {
		return fmt.Errorf("%w: get user: %v", apperr.ErrStoreUnavailable, err)
	}
	if len(users) == 0 {
		return fmt.Errorf("%w: user %s", apperr.ErrNotFound, userID)
	}
	if err := us.userRepo.DeleteByIDs(ctx, nil, []uuid.UUID{userID}); err != nil {
		return fmt.Errorf("%w: delete user: %v", apperr.ErrStoreUnavailable, err)
	}
	return nil
}

func (us *userService) RegistrationsByMonth(ctx context.Context) ([]types.StatBucket, error) {
	since := monthWindowStart(us.now(), trailingStatsMonths)
	rows, err := us.userRepo.CountByMonth(ctx, nil, since)
	if err != nil {
		return nil, fmt.Errorf("%w: monthly registrations: %v", apperr.ErrStoreUnavailable, err)
	}
	return rows, nil
}
