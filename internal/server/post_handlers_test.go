package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"inkwell/internal/models"
	"inkwell/internal/schema"
	"inkwell/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockPostRepository is a mock of the PostRepository interface
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) List(ctx context.Context) ([]models.Post, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostRepository) ListByUser(ctx context.Context, userID uint) ([]models.Post, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostRepository) Create(ctx context.Context, post *models.Post) error {
	return m.Called(ctx, post).Error(0)
}

func (m *MockPostRepository) Update(ctx context.Context, post *models.Post) error {
	return m.Called(ctx, post).Error(0)
}

func (m *MockPostRepository) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockPostRepository) DeleteByUser(ctx context.Context, userID uint) error {
	return m.Called(ctx, userID).Error(0)
}

func createPost(t *testing.T, s *Server, title string, userID uint) schema.PostResponse {
	t.Helper()
	resp, raw := doRequest(t, s.app, http.MethodPost, "/api/posts", map[string]any{
		"title": title, "content": longContent, "user_id": userID,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	return decode[schema.PostResponse](t, raw)
}

func TestCreatePost(t *testing.T) {
	s, app := setupTestServer(t, nil)
	alice := createUser(t, s, "alice")

	post := createPost(t, s, "Hello", alice.ID)
	assert.NotZero(t, post.ID)
	assert.Equal(t, alice.ID, post.UserID)
	assert.Equal(t, alice, post.Author)
	assert.False(t, post.DatePosted.IsZero())

	tests := []struct {
		name       string
		body       any
		wantStatus int
		wantLoc    []string
	}{
		{"unknown user", map[string]any{"title": "t", "content": longContent, "user_id": 999}, http.StatusNotFound, nil},
		{"short content", map[string]any{"title": "t", "content": "too short", "user_id": alice.ID}, http.StatusUnprocessableEntity, []string{"body", "content"}},
		{"missing title", map[string]any{"content": longContent, "user_id": alice.ID}, http.StatusUnprocessableEntity, []string{"body", "title"}},
		{"zero user", map[string]any{"title": "t", "content": longContent, "user_id": 0}, http.StatusUnprocessableEntity, []string{"body", "user_id"}},
		{"string user id", `{"title": "t", "content": "` + longContent + `", "user_id": "one"}`, http.StatusUnprocessableEntity, []string{"body", "user_id"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, raw := doRequest(t, app, http.MethodPost, "/api/posts", tt.body)
			require.Equal(t, tt.wantStatus, resp.StatusCode, string(raw))
			if tt.wantLoc == nil {
				assert.Equal(t, "User not found", decode[detailBody](t, raw).Detail)
				return
			}
			assert.Equal(t, tt.wantLoc, decode[fieldDetailBody](t, raw).Detail[0].Loc)
		})
	}
}

func TestGetPosts(t *testing.T) {
	s, app := setupTestServer(t, nil)

	resp, raw := doRequest(t, app, http.MethodGet, "/api/posts", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, "[]", string(raw))

	alice := createUser(t, s, "alice")
	first := createPost(t, s, "first", alice.ID)
	second := createPost(t, s, "second", alice.ID)

	resp, raw = doRequest(t, app, http.MethodGet, "/api/posts", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	posts := decode[[]schema.PostResponse](t, raw)
	require.Len(t, posts, 2)
	assert.Equal(t, []uint{first.ID, second.ID}, []uint{posts[0].ID, posts[1].ID})

	resp, raw = doRequest(t, app, http.MethodGet, fmt.Sprintf("/api/posts/%d", second.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "second", decode[schema.PostResponse](t, raw).Title)

	resp, raw = doRequest(t, app, http.MethodGet, "/api/posts/999", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Post not found", decode[detailBody](t, raw).Detail)
}

func TestReplacePost(t *testing.T) {
	s, app := setupTestServer(t, nil)
	alice := createUser(t, s, "alice")
	bob := createUser(t, s, "bob")
	post := createPost(t, s, "original", alice.ID)
	path := fmt.Sprintf("/api/posts/%d", post.ID)

	resp, raw := doRequest(t, app, http.MethodPut, path, map[string]any{
		"title": "replaced", "content": longContent + "!", "user_id": alice.ID,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	replaced := decode[schema.PostResponse](t, raw)
	assert.Equal(t, "replaced", replaced.Title)
	assert.Equal(t, longContent+"!", replaced.Content)
	assert.True(t, post.DatePosted.Equal(replaced.DatePosted))

	resp, raw = doRequest(t, app, http.MethodPut, path, map[string]any{
		"title": "stolen", "content": longContent, "user_id": bob.ID,
	})
	assert.Equal(t, http.StatusNonAuthoritativeInfo, resp.StatusCode)
	assert.Equal(t, "You are not the author of this post", decode[detailBody](t, raw).Detail)

	resp, raw = doRequest(t, app, http.MethodPut, path, map[string]any{
		"title": "ghost", "content": longContent, "user_id": 999,
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "User not found", decode[detailBody](t, raw).Detail)

	resp, raw = doRequest(t, app, http.MethodPut, "/api/posts/999", map[string]any{
		"title": "missing", "content": longContent, "user_id": alice.ID,
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Post not found", decode[detailBody](t, raw).Detail)

	resp, _ = doRequest(t, app, http.MethodPut, path, map[string]any{"title": "only title"})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestPatchPost(t *testing.T) {
	s, app := setupTestServer(t, nil)
	alice := createUser(t, s, "alice")
	post := createPost(t, s, "original", alice.ID)
	path := fmt.Sprintf("/api/posts/%d", post.ID)

	resp, raw := doRequest(t, app, http.MethodPatch, path, map[string]any{"title": "patched"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	patched := decode[schema.PostResponse](t, raw)
	assert.Equal(t, "patched", patched.Title)
	assert.Equal(t, post.Content, patched.Content)

	resp, raw = doRequest(t, app, http.MethodPatch, path, map[string]any{"content": "short"})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, []string{"body", "content"}, decode[fieldDetailBody](t, raw).Detail[0].Loc)

	resp, _ = doRequest(t, app, http.MethodPatch, path, `{"title": null}`)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	resp, _ = doRequest(t, app, http.MethodPatch, "/api/posts/999", map[string]any{"title": "x"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeletePost(t *testing.T) {
	s, app := setupTestServer(t, nil)
	alice := createUser(t, s, "alice")
	post := createPost(t, s, "doomed", alice.ID)
	path := fmt.Sprintf("/api/posts/%d", post.ID)

	resp, raw := doRequest(t, app, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Empty(t, raw)

	resp, _ = doRequest(t, app, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doRequest(t, app, http.MethodGet, fmt.Sprintf("/api/users/%d", alice.ID), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGetPosts_StorageFailure(t *testing.T) {
	s, _ := setupTestServer(t, nil)
	mockRepo := new(MockPostRepository)
	mockRepo.On("List", mock.Anything).Return(nil, models.NewInternalError(errors.New("connection reset")))
	s.postService = service.NewPostService(mockRepo, s.userRepo, nil)
	app := s.NewApp()

	resp, raw := doRequest(t, app, http.MethodGet, "/api/posts", nil)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Internal server error", decode[detailBody](t, raw).Detail)
	assert.NotContains(t, string(raw), "connection reset")
	mockRepo.AssertExpectations(t)
}

func TestReplacePost_AuthorMismatchLeavesPostUnchanged(t *testing.T) {
	s, app := setupTestServer(t, nil)
	alice := createUser(t, s, "alice")
	mallory := createUser(t, s, "mallory")
	post := createPost(t, s, "original", alice.ID)
	path := fmt.Sprintf("/api/posts/%d", post.ID)

	resp, _ := doRequest(t, app, http.MethodPut, path, map[string]any{
		"title": "hijacked", "content": longContent + "?", "user_id": mallory.ID,
	})
	require.Equal(t, http.StatusNonAuthoritativeInfo, resp.StatusCode)

	resp, raw := doRequest(t, app, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[schema.PostResponse](t, raw)
	assert.Equal(t, "original", got.Title)
	assert.Equal(t, longContent, got.Content)
	assert.Equal(t, alice.ID, got.UserID)

	var stored models.Post
	require.NoError(t, s.db.First(&stored, post.ID).Error)
	assert.Equal(t, "original", stored.Title)
	assert.Equal(t, longContent, stored.Content)
	assert.Equal(t, alice.ID, stored.UserID)
}
