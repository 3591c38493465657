package server

import (
	"fmt"
	"net/http"
	"testing"

	"inkwell/internal/models"
	"inkwell/internal/schema"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createUser(t *testing.T, s *Server, username string) schema.UserResponse {
	t.Helper()
	resp, raw := doRequest(t, s.app, http.MethodPost, "/api/users", map[string]any{
		"username": username,
		"email":    username + "@example.com",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	return decode[schema.UserResponse](t, raw)
}

func TestCreateUser(t *testing.T) {
	_, app := setupTestServer(t, nil)

	resp, raw := doRequest(t, app, http.MethodPost, "/api/users", map[string]any{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "correct horse",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))

	user := decode[schema.UserResponse](t, raw)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Nil(t, user.ImageFile)
	assert.Equal(t, "/static/profile_pics/default.jpg", user.ImagePath)
	assert.NotContains(t, string(raw), "password")

	tests := []struct {
		name       string
		body       any
		wantStatus int
		wantDetail string
	}{
		{"duplicate username", map[string]any{"username": "alice", "email": "new@example.com"}, http.StatusConflict, "Username already exists"},
		{"duplicate email", map[string]any{"username": "alice2", "email": "alice@example.com"}, http.StatusConflict, "Email already registered"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, raw := doRequest(t, app, http.MethodPost, "/api/users", tt.body)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, tt.wantDetail, decode[detailBody](t, raw).Detail)
		})
	}
}

func TestCreateUser_Validation(t *testing.T) {
	_, app := setupTestServer(t, nil)

	tests := []struct {
		name    string
		body    any
		wantLoc []string
	}{
		{"missing username", map[string]any{"email": "a@example.com"}, []string{"body", "username"}},
		{"bad email", map[string]any{"username": "a", "email": "nope"}, []string{"body", "email"}},
		{"short password", map[string]any{"username": "a", "email": "a@example.com", "password": "short"}, []string{"body", "password"}},
		{"empty body", "", []string{"body"}},
		{"malformed json", "{", []string{"body"}},
		{"wrong type", `{"username": 7, "email": "a@example.com"}`, []string{"body", "username"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, raw := doRequest(t, app, http.MethodPost, "/api/users", tt.body)
			require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode, string(raw))
			body := decode[fieldDetailBody](t, raw)
			require.NotEmpty(t, body.Detail)
			assert.Equal(t, tt.wantLoc, body.Detail[0].Loc)
		})
	}
}

func TestGetUser(t *testing.T) {
	s, app := setupTestServer(t, nil)
	alice := createUser(t, s, "alice")

	resp, raw := doRequest(t, app, http.MethodGet, fmt.Sprintf("/api/users/%d", alice.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, alice, decode[schema.UserResponse](t, raw))

	resp, raw = doRequest(t, app, http.MethodGet, "/api/users/999", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "User not found", decode[detailBody](t, raw).Detail)

	for _, id := range []string{"abc", "0", "-3"} {
		resp, raw = doRequest(t, app, http.MethodGet, "/api/users/"+id, nil)
		require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode, id)
		body := decode[fieldDetailBody](t, raw)
		assert.Equal(t, []string{"path", "id"}, body.Detail[0].Loc)
	}
}

func TestUpdateUser(t *testing.T) {
	s, app := setupTestServer(t, nil)
	alice := createUser(t, s, "alice")
	bob := createUser(t, s, "bob")
	path := fmt.Sprintf("/api/users/%d", bob.ID)

	resp, raw := doRequest(t, app, http.MethodPatch, path, map[string]any{"image_file": "bob.png"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	updated := decode[schema.UserResponse](t, raw)
	assert.Equal(t, "/media/profile_pics/bob.png", updated.ImagePath)
	assert.Equal(t, "bob", updated.Username)

	resp, raw = doRequest(t, app, http.MethodPatch, path, `{"image_file": null}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	assert.Nil(t, decode[schema.UserResponse](t, raw).ImageFile)

	resp, raw = doRequest(t, app, http.MethodPatch, path, map[string]any{"username": alice.Username})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Username already exists", decode[detailBody](t, raw).Detail)

	resp, raw = doRequest(t, app, http.MethodPatch, path, map[string]any{"email": alice.Email})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Email already registered", decode[detailBody](t, raw).Detail)

	// Re-sending the current username is not a collision.
	resp, _ = doRequest(t, app, http.MethodPatch, path, map[string]any{"username": "bob"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doRequest(t, app, http.MethodPatch, path, `{"username": null}`)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	resp, _ = doRequest(t, app, http.MethodPatch, "/api/users/999", map[string]any{"username": "ghost"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteUser_RemovesPosts(t *testing.T) {
	s, app := setupTestServer(t, nil)
	alice := createUser(t, s, "alice")

	resp, raw := doRequest(t, app, http.MethodPost, "/api/posts", map[string]any{
		"title": "first", "content": longContent, "user_id": alice.ID,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	post := decode[schema.PostResponse](t, raw)

	resp, raw = doRequest(t, app, http.MethodDelete, fmt.Sprintf("/api/users/%d", alice.ID), nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Empty(t, raw)

	resp, _ = doRequest(t, app, http.MethodGet, fmt.Sprintf("/api/posts/%d", post.ID), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doRequest(t, app, http.MethodDelete, fmt.Sprintf("/api/users/%d", alice.ID), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetUserPosts(t *testing.T) {
	s, app := setupTestServer(t, nil)
	alice := createUser(t, s, "alice")
	bob := createUser(t, s, "bob")

	resp, raw := doRequest(t, app, http.MethodGet, fmt.Sprintf("/api/users/%d/posts", alice.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, "[]", string(raw))

	for _, owner := range []uint{alice.ID, bob.ID, alice.ID} {
		resp, raw = doRequest(t, app, http.MethodPost, "/api/posts", map[string]any{
			"title": "post", "content": longContent, "user_id": owner,
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	}

	resp, raw = doRequest(t, app, http.MethodGet, fmt.Sprintf("/api/users/%d/posts", alice.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	posts := decode[[]schema.PostResponse](t, raw)
	require.Len(t, posts, 2)
	assert.Less(t, posts[0].ID, posts[1].ID)
	for _, p := range posts {
		assert.Equal(t, alice.ID, p.UserID)
		assert.Equal(t, "alice", p.Author.Username)
	}

	resp, _ = doRequest(t, app, http.MethodGet, "/api/users/999/posts", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUpdateUser_PartialKeepsStoredColumns(t *testing.T) {
	s, app := setupTestServer(t, nil)

	resp, raw := doRequest(t, app, http.MethodPost, "/api/users", map[string]any{
		"username": "hazel",
		"email":    "hazel@example.com",
		"password": "correct horse",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	hazel := decode[schema.UserResponse](t, raw)
	path := fmt.Sprintf("/api/users/%d", hazel.ID)

	resp, raw = doRequest(t, app, http.MethodPatch, path, map[string]any{"image_file": "hazel.png"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))

	var before models.User
	require.NoError(t, s.db.First(&before, hazel.ID).Error)
	require.NotNil(t, before.PasswordHash)

	resp, raw = doRequest(t, app, http.MethodPatch, path, map[string]any{"email": "hazel@inkwell.dev"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))

	resp, raw = doRequest(t, app, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[schema.UserResponse](t, raw)
	assert.Equal(t, "hazel", got.Username)
	assert.Equal(t, "hazel@inkwell.dev", got.Email)
	require.NotNil(t, got.ImageFile)
	assert.Equal(t, "hazel.png", *got.ImageFile)

	var after models.User
	require.NoError(t, s.db.First(&after, hazel.ID).Error)
	assert.Equal(t, "hazel", after.Username)
	require.NotNil(t, after.ImageFile)
	assert.Equal(t, "hazel.png", *after.ImageFile)
	require.NotNil(t, after.PasswordHash)
	assert.Equal(t, *before.PasswordHash, *after.PasswordHash)
}
