package service

import (
	"context"

	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/repository"
	"inkwell/internal/schema"
	"inkwell/internal/validation"
)

type UserService struct {
	userRepo repository.UserRepository
	postRepo repository.PostRepository
	tx       repository.TxManager
}

func NewUserService(userRepo repository.UserRepository, postRepo repository.PostRepository, tx repository.TxManager) *UserService {
	return &UserService{userRepo: userRepo, postRepo: postRepo, tx: txOrDirect(tx)}
}

// CreateUser registers a user. Username is checked before email.
func (s *UserService) CreateUser(ctx context.Context, in schema.UserCreate) (user *models.User, err error) {
	ctx, span := observability.StartServiceSpan(ctx, "UserService", "CreateUser")
	defer func() { observability.EndSpan(span, err) }()

	errs := validation.Struct(in)
	if in.Password != nil {
		if perr := validation.ValidatePassword(*in.Password); perr != nil {
			errs = append(errs, models.FieldError{
				Loc:  []string{"body", "password"},
				Msg:  perr.Error(),
				Type: "value_error.password",
			})
		}
	}
	if err := validationError(errs); err != nil {
		return nil, err
	}

	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		existing, err := s.userRepo.GetByUsername(ctx, in.Username)
		if err != nil {
			return err
		}
		if existing != nil {
			return models.NewConflictError(msgUsernameTaken)
		}

		existing, err = s.userRepo.GetByEmail(ctx, in.Email)
		if err != nil {
			return err
		}
		if existing != nil {
			return models.NewConflictError(msgEmailTaken)
		}

		user = &models.User{Username: in.Username, Email: in.Email}
		if in.Password != nil {
			hash, err := HashPassword(*in.Password)
			if err != nil {
				return err
			}
			user.PasswordHash = &hash
		}

		if err := s.userRepo.Create(ctx, user); err != nil {
			return duplicateUserError(err, true)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, id uint) (user *models.User, err error) {
	ctx, span := observability.StartServiceSpan(ctx, "UserService", "GetUser")
	defer func() { observability.EndSpan(span, err) }()

	return s.userRepo.GetByID(ctx, id)
}

// UpdateUser applies the present fields of in. A clash with another user's
// username or email is a bad request here, not a conflict.
func (s *UserService) UpdateUser(ctx context.Context, id uint, in schema.UserUpdate) (user *models.User, err error) {
	ctx, span := observability.StartServiceSpan(ctx, "UserService", "UpdateUser")
	defer func() { observability.EndSpan(span, err) }()

	var errs []models.FieldError
	for _, fe := range []*models.FieldError{
		checkOptional("username", in.Username, schema.UsernameRule, false),
		checkOptional("email", in.Email, schema.EmailRule, false),
		checkOptional("image_file", in.ImageFile, schema.ImageFileRule, true),
	} {
		if fe != nil {
			errs = append(errs, *fe)
		}
	}
	if err := validationError(errs); err != nil {
		return nil, err
	}

	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		var err error
		user, err = s.userRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if in.Username.Set && in.Username.Value != user.Username {
			existing, err := s.userRepo.GetByUsername(ctx, in.Username.Value)
			if err != nil {
				return err
			}
			if existing != nil && existing.ID != user.ID {
				return models.NewBadRequestError(msgUsernameTaken)
			}
			user.Username = in.Username.Value
		}

		if in.Email.Set && in.Email.Value != user.Email {
			existing, err := s.userRepo.GetByEmail(ctx, in.Email.Value)
			if err != nil {
				return err
			}
			if existing != nil && existing.ID != user.ID {
				return models.NewBadRequestError(msgEmailTaken)
			}
			user.Email = in.Email.Value
		}

		if in.ImageFile.Set {
			user.ImageFile = in.ImageFile.Ptr()
		}

		if err := s.userRepo.Update(ctx, user); err != nil {
			return duplicateUserError(err, false)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes the user and every post they own in one transaction.
func (s *UserService) DeleteUser(ctx context.Context, id uint) (err error) {
	ctx, span := observability.StartServiceSpan(ctx, "UserService", "DeleteUser")
	defer func() { observability.EndSpan(span, err) }()

	return s.tx.InTx(ctx, func(ctx context.Context) error {
		if _, err := s.userRepo.GetByID(ctx, id); err != nil {
			return err
		}
		if err := s.postRepo.DeleteByUser(ctx, id); err != nil {
			return err
		}
		return s.userRepo.Delete(ctx, id)
	})
}

// ListUserPosts returns the user together with their posts in storage order.
func (s *UserService) ListUserPosts(ctx context.Context, id uint) (user *models.User, posts []models.Post, err error) {
	ctx, span := observability.StartServiceSpan(ctx, "UserService", "ListUserPosts")
	defer func() { observability.EndSpan(span, err) }()

	if user, err = s.userRepo.GetByID(ctx, id); err != nil {
		return nil, nil, err
	}
	if posts, err = s.postRepo.ListByUser(ctx, id); err != nil {
		return nil, nil, err
	}
	return user, posts, nil
}
