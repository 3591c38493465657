package schema

import (
	"time"

	"inkwell/internal/models"
)

// PostCreate is the body of POST /api/posts and PUT /api/posts/:id.
type PostCreate struct {
	Title   string `json:"title" validate:"required,max=100"`
	Content string `json:"content" validate:"required,min=50"`
	UserID  uint   `json:"user_id" validate:"required,gt=0"`
}

// PostUpdate is the body of PATCH /api/posts/:id.
type PostUpdate struct {
	Title   Optional[string] `json:"title" swaggertype:"string"`
	Content Optional[string] `json:"content" swaggertype:"string"`
}

// PostResponse is the public representation of a post with its author.
type PostResponse struct {
	ID         uint         `json:"id"`
	Title      string       `json:"title"`
	Content    string       `json:"content"`
	UserID     uint         `json:"user_id"`
	DatePosted time.Time    `json:"date_posted"`
	Author     UserResponse `json:"author"`
}

// NewPostResponse converts a post model with its preloaded author.
func NewPostResponse(p *models.Post) PostResponse {
	return PostResponse{
		ID:         p.ID,
		Title:      p.Title,
		Content:    p.Content,
		UserID:     p.UserID,
		DatePosted: p.DatePosted,
		Author:     NewUserResponse(&p.Author),
	}
}

// NewPostResponses converts a list of posts. The result is never nil.
func NewPostResponses(posts []models.Post) []PostResponse {
	out := make([]PostResponse, 0, len(posts))
	for i := range posts {
		out = append(out, NewPostResponse(&posts[i]))
	}
	return out
}

// ErrorResponse is the JSON error body. Detail is a string, or a list of
// field errors for validation failures.
type ErrorResponse struct {
	Detail any `json:"detail"`
}

// HealthResponse is returned by the health endpoints.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}
