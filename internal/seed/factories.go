// Package seed provides helpers to create demo data for development databases
// and tests.
package seed

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultPassword is the password every seeded user can log in with.
const DefaultPassword = "password123"

const (
	minContentLen = 50
	maxTitleLen   = 100
	maxUsername   = 50
)

// FactoryOptions tunes how entities are generated.
type FactoryOptions struct {
	// RandSeed makes the generated data reproducible. Zero uses the clock.
	RandSeed int64
	// SkipBcrypt leaves password hashes empty, which is much faster for large seeds.
	SkipBcrypt bool
	// MaxDays spreads post dates over this many days back from now.
	MaxDays int
	// DryRun generates entities with synthetic IDs without touching the database.
	DryRun bool
}

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db     *gorm.DB
	opts   FactoryOptions
	faker  *gofakeit.Faker
	seq    int
	nextID uint
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts FactoryOptions) *Factory {
	seed := opts.RandSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if opts.MaxDays <= 0 {
		opts.MaxDays = 90
	}
	return &Factory{db: db, opts: opts, faker: gofakeit.New(seed), nextID: 1000}
}

// BuildUser returns an unsaved user with a unique username and email.
func (f *Factory) BuildUser(overrides ...func(*models.User)) (*models.User, error) {
	f.seq++
	base := strings.ToLower(f.faker.Username())
	suffix := fmt.Sprintf("_%d", f.seq)
	if len(base)+len(suffix) > maxUsername {
		base = base[:maxUsername-len(suffix)]
	}

	user := &models.User{
		Username: base + suffix,
		Email:    fmt.Sprintf("%s%s@%s", base, suffix, f.faker.DomainName()),
	}

	if !f.opts.SkipBcrypt {
		hash, err := service.HashPassword(DefaultPassword)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = &hash
	}

	for _, override := range overrides {
		override(user)
	}
	return user, nil
}

// CreateUser constructs and persists a sample user.
func (f *Factory) CreateUser(ctx context.Context, overrides ...func(*models.User)) (*models.User, error) {
	user, err := f.BuildUser(overrides...)
	if err != nil {
		return nil, err
	}

	if f.opts.DryRun {
		f.nextID++
		user.ID = f.nextID
		middleware.Logger.Debug("[dry-run] CreateUser", "username", user.Username)
		return user, nil
	}

	if err := f.db.WithContext(ctx).Omit("Posts").Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// BuildPost returns an unsaved post for user whose content satisfies the
// minimum length and whose date falls within the configured spread.
func (f *Factory) BuildPost(user *models.User, overrides ...func(*models.Post)) *models.Post {
	title := strings.TrimSuffix(f.faker.Sentence(f.faker.Number(3, 8)), ".")
	if utf8.RuneCountInString(title) > maxTitleLen {
		title = string([]rune(title)[:maxTitleLen])
	}

	content := f.faker.Paragraph(1, 4, 10, " ")
	for utf8.RuneCountInString(content) < minContentLen {
		content += " " + f.faker.Sentence(8)
	}

	back := time.Duration(f.faker.Number(0, f.opts.MaxDays*24*60)) * time.Minute
	post := &models.Post{
		Title:      title,
		Content:    content,
		UserID:     user.ID,
		DatePosted: time.Now().UTC().Add(-back),
	}

	for _, override := range overrides {
		override(post)
	}
	return post
}

// CreatePost constructs and persists a sample post for the given user.
func (f *Factory) CreatePost(ctx context.Context, user *models.User, overrides ...func(*models.Post)) (*models.Post, error) {
	post := f.BuildPost(user, overrides...)
	if err := f.CreatePostsBatch(ctx, []*models.Post{post}); err != nil {
		return nil, err
	}
	return post, nil
}

// CreatePostsBatch persists multiple posts in batches of 100.
func (f *Factory) CreatePostsBatch(ctx context.Context, posts []*models.Post) error {
	if len(posts) == 0 {
		return nil
	}
	if f.opts.DryRun {
		for _, p := range posts {
			f.nextID++
			p.ID = f.nextID
		}
		middleware.Logger.Debug("[dry-run] CreatePostsBatch", "count", len(posts))
		return nil
	}
	return f.db.WithContext(ctx).Omit(clause.Associations).CreateInBatches(posts, 100).Error
}
