package repository

import (
	"context"
	"errors"

	"inkwell/internal/cache"
	"inkwell/internal/models"

	"gorm.io/gorm"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	load := func() error {
		if err := reader(ctx, r.db).First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("User not found")
			}
			return models.NewInternalError(err)
		}
		return nil
	}

	var err error
	if inTx(ctx) {
		err = load()
	} else {
		err = cache.Aside(ctx, cache.UserKey(id), &user, cache.UserTTL, load)
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getBy(ctx, "email = ?", email)
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.getBy(ctx, "username = ?", username)
}

func (r *userRepository) getBy(ctx context.Context, query string, arg any) (*models.User, error) {
	var user models.User
	if err := reader(ctx, r.db).Where(query, arg).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := writer(ctx, r.db).Omit("Posts").Create(user).Error; err != nil {
		if err := translateWriteError(err, "username", "email"); errors.Is(err, ErrDuplicate) {
			return err
		}
		return models.NewInternalError(err)
	}
	return nil
}

// Update writes the mutable columns of user. Columns are listed explicitly so
// a nil image_file is stored as NULL.
func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	err := writer(ctx, r.db).Model(user).
		Select("username", "email", "image_file", "password_hash", "updated_at").
		Updates(user).Error
	if err != nil {
		if err := translateWriteError(err, "username", "email"); errors.Is(err, ErrDuplicate) {
			return err
		}
		return models.NewInternalError(err)
	}
	dropAfterCommit(ctx, cache.UserKey(user.ID))
	dropPostsAfterCommit(ctx)
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id uint) error {
	if err := writer(ctx, r.db).Delete(&models.User{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	dropAfterCommit(ctx, cache.UserKey(id))
	dropPostsAfterCommit(ctx)
	return nil
}
