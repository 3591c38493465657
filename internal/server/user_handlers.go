package server

import (
	"inkwell/internal/schema"

	"github.com/gofiber/fiber/v2"
)

// CreateUser handles POST /api/users
// @Summary Create a user
// @Tags users
// @Accept json
// @Produce json
// @Param user body schema.UserCreate true "New user"
// @Success 201 {object} schema.UserResponse
// @Failure 409 {object} schema.ErrorResponse
// @Failure 422 {object} schema.ErrorResponse
// @Router /users [post]
func (s *Server) CreateUser(c *fiber.Ctx) error {
	var in schema.UserCreate
	if err := parseBody(c, &in); err != nil {
		return err
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	user, err := s.userService.CreateUser(ctx, in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(schema.NewUserResponse(user))
}

// GetUser handles GET /api/users/:id
// @Summary Get a user
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} schema.UserResponse
// @Failure 404 {object} schema.ErrorResponse
// @Router /users/{id} [get]
func (s *Server) GetUser(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	user, err := s.userService.GetUser(ctx, id)
	if err != nil {
		return err
	}
	return c.JSON(schema.NewUserResponse(user))
}

// UpdateUser handles PATCH /api/users/:id
// @Summary Partially update a user
// @Description Only fields present in the body are applied; image_file may be null to reset the picture.
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param user body schema.UserUpdate true "Fields to change"
// @Success 200 {object} schema.UserResponse
// @Failure 400 {object} schema.ErrorResponse
// @Failure 404 {object} schema.ErrorResponse
// @Failure 422 {object} schema.ErrorResponse
// @Router /users/{id} [patch]
func (s *Server) UpdateUser(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var in schema.UserUpdate
	if err := parseBody(c, &in); err != nil {
		return err
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	user, err := s.userService.UpdateUser(ctx, id, in)
	if err != nil {
		return err
	}
	return c.JSON(schema.NewUserResponse(user))
}

// DeleteUser handles DELETE /api/users/:id
// @Summary Delete a user and their posts
// @Tags users
// @Param id path int true "User ID"
// @Success 204
// @Failure 404 {object} schema.ErrorResponse
// @Router /users/{id} [delete]
func (s *Server) DeleteUser(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := s.userService.DeleteUser(ctx, id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetUserPosts handles GET /api/users/:id/posts
// @Summary List a user's posts
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {array} schema.PostResponse
// @Failure 404 {object} schema.ErrorResponse
// @Router /users/{id}/posts [get]
func (s *Server) GetUserPosts(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	_, posts, err := s.userService.ListUserPosts(ctx, id)
	if err != nil {
		return err
	}
	return c.JSON(schema.NewPostResponses(posts))
}
