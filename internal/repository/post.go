package repository

import (
	"context"
	"errors"
	"time"

	"inkwell/internal/cache"
	"inkwell/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostRepository defines persistence operations for posts. Every read preloads the author.
type PostRepository interface {
	List(ctx context.Context) ([]models.Post, error)
	ListByUser(ctx context.Context, userID uint) ([]models.Post, error)
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	Create(ctx context.Context, post *models.Post) error
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
	DeleteByUser(ctx context.Context, userID uint) error
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository returns a new PostRepository implementation.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) List(ctx context.Context) ([]models.Post, error) {
	posts := []models.Post{}
	if err := reader(ctx, r.db).Preload("Author").Order("id ASC").Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) ListByUser(ctx context.Context, userID uint) ([]models.Post, error) {
	posts := []models.Post{}
	if err := reader(ctx, r.db).Preload("Author").Where("user_id = ?", userID).Order("id ASC").Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	load := func() error {
		if err := reader(ctx, r.db).Preload("Author").First(&post, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Post not found")
			}
			return models.NewInternalError(err)
		}
		return nil
	}

	var err error
	if inTx(ctx) {
		err = load()
	} else {
		err = cache.Aside(ctx, cache.PostKey(id), &post, cache.PostTTL, load)
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// Create inserts post, stamping date_posted in UTC when unset. The author row is never written.
func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if post.DatePosted.IsZero() {
		post.DatePosted = time.Now().UTC()
	}
	if err := writer(ctx, r.db).Omit(clause.Associations).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	err := writer(ctx, r.db).Model(post).Omit(clause.Associations).
		Select("title", "content", "user_id").
		Updates(post).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	dropAfterCommit(ctx, cache.PostKey(post.ID))
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	if err := writer(ctx, r.db).Delete(&models.Post{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	dropAfterCommit(ctx, cache.PostKey(id))
	return nil
}

func (r *postRepository) DeleteByUser(ctx context.Context, userID uint) error {
	if err := writer(ctx, r.db).Where("user_id = ?", userID).Delete(&models.Post{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	dropPostsAfterCommit(ctx)
	return nil
}
