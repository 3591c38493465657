package service

import (
	"context"

	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/repository"
	"inkwell/internal/schema"
	"inkwell/internal/validation"
)

type PostService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
	tx       repository.TxManager
}

func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository, tx repository.TxManager) *PostService {
	return &PostService{postRepo: postRepo, userRepo: userRepo, tx: txOrDirect(tx)}
}

// ListPosts returns every post in id order.
func (s *PostService) ListPosts(ctx context.Context) (posts []models.Post, err error) {
	ctx, span := observability.StartServiceSpan(ctx, "PostService", "ListPosts")
	defer func() { observability.EndSpan(span, err) }()

	return s.postRepo.List(ctx)
}

func (s *PostService) GetPost(ctx context.Context, id uint) (post *models.Post, err error) {
	ctx, span := observability.StartServiceSpan(ctx, "PostService", "GetPost")
	defer func() { observability.EndSpan(span, err) }()

	return s.postRepo.GetByID(ctx, id)
}

// CreatePost stores a post for an existing user and returns it with the author loaded.
func (s *PostService) CreatePost(ctx context.Context, in schema.PostCreate) (post *models.Post, err error) {
	ctx, span := observability.StartServiceSpan(ctx, "PostService", "CreatePost")
	defer func() { observability.EndSpan(span, err) }()

	if err := validationError(validation.Struct(in)); err != nil {
		return nil, err
	}

	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		if _, err := s.userRepo.GetByID(ctx, in.UserID); err != nil {
			return err
		}

		created := &models.Post{Title: in.Title, Content: in.Content, UserID: in.UserID}
		if err := s.postRepo.Create(ctx, created); err != nil {
			return err
		}

		var err error
		post, err = s.postRepo.GetByID(ctx, created.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return post, nil
}

// ReplacePost overwrites title, content and user_id. The submitted user must
// exist and must be the post's current author.
func (s *PostService) ReplacePost(ctx context.Context, id uint, in schema.PostCreate) (post *models.Post, err error) {
	ctx, span := observability.StartServiceSpan(ctx, "PostService", "ReplacePost")
	defer func() { observability.EndSpan(span, err) }()

	if err := validationError(validation.Struct(in)); err != nil {
		return nil, err
	}

	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		existing, err := s.postRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if _, err := s.userRepo.GetByID(ctx, in.UserID); err != nil {
			return err
		}
		if existing.UserID != in.UserID {
			return models.NewAuthorMismatchError()
		}

		existing.Title = in.Title
		existing.Content = in.Content
		existing.UserID = in.UserID
		if err := s.postRepo.Update(ctx, existing); err != nil {
			return err
		}

		post, err = s.postRepo.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return post, nil
}

// PatchPost applies the present title and content.
func (s *PostService) PatchPost(ctx context.Context, id uint, in schema.PostUpdate) (post *models.Post, err error) {
	ctx, span := observability.StartServiceSpan(ctx, "PostService", "PatchPost")
	defer func() { observability.EndSpan(span, err) }()

	var errs []models.FieldError
	for _, fe := range []*models.FieldError{
		checkOptional("title", in.Title, schema.PostTitleRule, false),
		checkOptional("content", in.Content, schema.PostContentRule, false),
	} {
		if fe != nil {
			errs = append(errs, *fe)
		}
	}
	if err := validationError(errs); err != nil {
		return nil, err
	}

	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		existing, err := s.postRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if in.Title.Set {
			existing.Title = in.Title.Value
		}
		if in.Content.Set {
			existing.Content = in.Content.Value
		}
		if err := s.postRepo.Update(ctx, existing); err != nil {
			return err
		}

		post, err = s.postRepo.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) DeletePost(ctx context.Context, id uint) (err error) {
	ctx, span := observability.StartServiceSpan(ctx, "PostService", "DeletePost")
	defer func() { observability.EndSpan(span, err) }()

	return s.tx.InTx(ctx, func(ctx context.Context) error {
		if _, err := s.postRepo.GetByID(ctx, id); err != nil {
			return err
		}
		return s.postRepo.Delete(ctx, id)
	})
}
