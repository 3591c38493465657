package schema

import (
	"inkwell/internal/models"
)

// UserCreate is the body of POST /api/users.
type UserCreate struct {
	Username string  `json:"username" validate:"required,max=50"`
	Email    string  `json:"email" validate:"required,email,max=120"`
	Password *string `json:"password,omitempty"`
}

// UserUpdate is the body of PATCH /api/users/:id. Only present fields are applied.
type UserUpdate struct {
	Username  Optional[string] `json:"username" swaggertype:"string"`
	Email     Optional[string] `json:"email" swaggertype:"string"`
	ImageFile Optional[string] `json:"image_file" swaggertype:"string"`
}

// UserResponse is the public representation of a user.
type UserResponse struct {
	ID        uint    `json:"id"`
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	ImageFile *string `json:"image_file"`
	ImagePath string  `json:"image_path"`
}

// NewUserResponse converts a user model, never exposing the password hash.
func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		ImageFile: u.ImageFile,
		ImagePath: u.ImagePath(),
	}
}
