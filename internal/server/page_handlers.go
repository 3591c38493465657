package server

import (
	"inkwell/internal/schema"

	"github.com/gofiber/fiber/v2"
)

const postPageTitleLen = 50

// HomePage handles GET / and GET /posts
func (s *Server) HomePage(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	posts, err := s.postService.ListPosts(ctx)
	if err != nil {
		return err
	}

	return c.Render("home", fiber.Map{
		"title": "Home",
		"posts": schema.NewPostResponses(posts),
	})
}

// PostPage handles GET /posts/:id
func (s *Server) PostPage(c *fiber.Ctx) error {
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

	return c.Render("post", fiber.Map{
		"title": truncate(post.Title, postPageTitleLen),
		"post":  schema.NewPostResponse(post),
	})
}

// UserPostsPage handles GET /users/:id/posts
func (s *Server) UserPostsPage(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	user, posts, err := s.userService.ListUserPosts(ctx, id)
	if err != nil {
		return err
	}

	return c.Render("user_posts", fiber.Map{
		"title": user.Username + "'s Posts",
		"user":  schema.NewUserResponse(user),
		"posts": schema.NewPostResponses(posts),
	})
}
