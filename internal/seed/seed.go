package seed

import (
	"context"
	"fmt"
	"log/slog"

	"inkwell/internal/cache"
	"inkwell/internal/middleware"
	"inkwell/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
	Factory     FactoryOptions
}

// Result lists what a seed run created.
type Result struct {
	Users []*models.User
	Posts []*models.Post
}

// Seeder populates a database with fake users and posts.
type Seeder struct {
	db      *gorm.DB
	opts    Options
	factory *Factory
}

// NewSeeder creates a seeder bound to db.
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	return &Seeder{db: db, opts: opts, factory: NewFactory(db, opts.Factory)}
}

// Factory exposes the underlying entity factory.
func (s *Seeder) Factory() *Factory {
	return s.factory
}

// Seed creates NumUsers users and spreads NumPosts posts across them round-robin.
func (s *Seeder) Seed(ctx context.Context) (*Result, error) {
	middleware.Logger.Info("Starting database seeding",
		slog.Int("users", s.opts.NumUsers), slog.Int("posts", s.opts.NumPosts))

	if s.opts.ShouldClean {
		if err := s.ClearAll(ctx); err != nil {
			return nil, fmt.Errorf("failed to clear data: %w", err)
		}
	}

	if s.opts.NumPosts > 0 && s.opts.NumUsers <= 0 {
		return nil, fmt.Errorf("cannot create %d posts without users", s.opts.NumPosts)
	}

	res := &Result{}
	for i := 0; i < s.opts.NumUsers; i++ {
		user, err := s.factory.CreateUser(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
		res.Users = append(res.Users, user)
	}
	middleware.Logger.Info("Users created", slog.Int("count", len(res.Users)))

	posts := make([]*models.Post, 0, s.opts.NumPosts)
	for i := 0; i < s.opts.NumPosts; i++ {
		posts = append(posts, s.factory.BuildPost(res.Users[i%len(res.Users)]))
	}
	if err := s.factory.CreatePostsBatch(ctx, posts); err != nil {
		return nil, fmt.Errorf("failed to create posts: %w", err)
	}
	res.Posts = posts
	middleware.Logger.Info("Posts created", slog.Int("count", len(res.Posts)))

	return res, nil
}

// ClearAll deletes every post and user and drops their cache entries.
func (s *Seeder) ClearAll(ctx context.Context) error {
	if s.opts.Factory.DryRun {
		return nil
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Post{}).Error; err != nil {
			return err
		}
		return tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.User{}).Error
	})
	if err != nil {
		return err
	}
	cache.InvalidateAll(ctx)
	middleware.Logger.Info("Existing users and posts removed")
	return nil
}
