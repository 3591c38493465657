package server

import (
	"inkwell/internal/schema"

	"github.com/gofiber/fiber/v2"
)

// GetPosts handles GET /api/posts
// @Summary List posts
// @Tags posts
// @Produce json
// @Success 200 {array} schema.PostResponse
// @Router /posts [get]
func (s *Server) GetPosts(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	posts, err := s.postService.ListPosts(ctx)
	if err != nil {
		return err
	}
	return c.JSON(schema.NewPostResponses(posts))
}

// GetPost handles GET /api/posts/:id
// @Summary Get a post
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} schema.PostResponse
// @Failure 404 {object} schema.ErrorResponse
// @Router /posts/{id} [get]
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	post, err := s.postService.GetPost(ctx, id)
	if err != nil {
		return err
	}
	return c.JSON(schema.NewPostResponse(post))
}

// CreatePost handles POST /api/posts
// @Summary Create a post
// @Tags posts
// @Accept json
// @Produce json
// @Param post body schema.PostCreate true "New post"
// @Success 201 {object} schema.PostResponse
// @Failure 404 {object} schema.ErrorResponse
// @Failure 422 {object} schema.ErrorResponse
// @Router /posts [post]
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var in schema.PostCreate
	if err := parseBody(c, &in); err != nil {
		return err
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	post, err := s.postService.CreatePost(ctx, in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(schema.NewPostResponse(post))
}

// ReplacePost handles PUT /api/posts/:id
// @Summary Replace a post
// @Description user_id must match the stored author, otherwise 203 is returned.
// @Tags posts
// @Accept json
// @Produce json
// @Param id path int true "Post ID"
// @Param post body schema.PostCreate true "Replacement post"
// @Success 200 {object} schema.PostResponse
// @Success 203 {object} schema.ErrorResponse
// @Failure 404 {object} schema.ErrorResponse
// @Failure 422 {object} schema.ErrorResponse
// @Router /posts/{id} [put]
func (s *Server) ReplacePost(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var in schema.PostCreate
	if err := parseBody(c, &in); err != nil {
		return err
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	post, err := s.postService.ReplacePost(ctx, id, in)
	if err != nil {
		return err
	}
	return c.JSON(schema.NewPostResponse(post))
}

// PatchPost handles PATCH /api/posts/:id
// @Summary Partially update a post
// @Tags posts
// @Accept json
// @Produce json
// @Param id path int true "Post ID"
// @Param post body schema.PostUpdate true "Fields to change"
// @Success 200 {object} schema.PostResponse
// @Failure 404 {object} schema.ErrorResponse
// @Failure 422 {object} schema.ErrorResponse
// @Router /posts/{id} [patch]
func (s *Server) PatchPost(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var in schema.PostUpdate
	if err := parseBody(c, &in); err != nil {
		return err
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	post, err := s.postService.PatchPost(ctx, id, in)
	if err != nil {
		return err
	}
	return c.JSON(schema.NewPostResponse(post))
}

// DeletePost handles DELETE /api/posts/:id
// @Summary Delete a post
// @Tags posts
// @Param id path int true "Post ID"
// @Success 204
// @Failure 404 {object} schema.ErrorResponse
// @Router /posts/{id} [delete]
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := s.postService.DeletePost(ctx, id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
