package blog

import (
	"inkreel/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Home handles GET /: all posts, newest first.
func (s *Server) Home(c *fiber.Ctx) error {
	posts, err := s.postService.ListPosts(c.Context())
	if err != nil {
		return s.renderError(c, err)
	}
	return c.Render("views/index", fiber.Map{
		"Posts":    posts,
		"LoggedIn": loggedIn(c),
	})
}

// ShowPost handles GET /post/:id: the post with its comment thread.
func (s *Server) ShowPost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.Context(), postID)
	if err != nil {
		return s.renderError(c, err)
	}

	userID, ok := currentUserID(c)
	isAdmin := false
	if ok {
		isAdmin, _ = s.isAdminByUserID(c.Context(), userID)
	}
	return c.Render("views/post", fiber.Map{
		"Post":     post,
		"LoggedIn": loggedIn(c),
		"UserID":   userID,
		"IsAdmin":  isAdmin,
	})
}

// AddComment handles POST /post/:id. An unauthenticated comment redirects to
// the login page and creates nothing.
func (s *Server) AddComment(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	userID, ok := currentUserID(c)
	if !ok {
		return c.Redirect("/login", fiber.StatusFound)
	}

	_, err = s.commentService.CreateComment(c.Context(), service.CreateCommentInput{
		AuthorID: userID,
		PostID:   postID,
		Text:     c.FormValue("text"),
	})
	if err != nil {
		return s.renderError(c, err)
	}

	return c.Redirect(c.Path(), fiber.StatusSeeOther)
}

// ShowNewPost handles GET /new-post.
func (s *Server) ShowNewPost(c *fiber.Ctx) error {
	return c.Render("views/make-post", fiber.Map{
		"IsEdit":   false,
		"LoggedIn": true,
	})
}

// CreatePost handles POST /new-post.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	userID, _ := currentUserID(c)

	if _, err := s.postService.CreatePost(c.Context(), service.CreatePostInput{
		AuthorID: userID,
		Title:    c.FormValue("title"),
		Subtitle: c.FormValue("subtitle"),
		Body:     c.FormValue("body"),
		ImageURL: c.FormValue("img_url"),
	}); err != nil {
		return s.renderError(c, err)
	}

	return c.Redirect("/", fiber.StatusSeeOther)
}

// ShowEditPost handles GET /edit-post/:id. The guard runs here too so a
// non-author never sees the edit form.
func (s *Server) ShowEditPost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID, _ := currentUserID(c)

	if err := s.postService.AuthorizeMutation(c.Context(), userID, postID); err != nil {
		return s.renderError(c, err)
	}

	post, err := s.postService.GetPost(c.Context(), postID)
	if err != nil {
		return s.renderError(c, err)
	}

	return c.Render("views/make-post", fiber.Map{
		"IsEdit":   true,
		"Post":     post,
		"LoggedIn": true,
	})
}

// EditPost handles POST /edit-post/:id.
func (s *Server) EditPost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID, _ := currentUserID(c)

	if _, err := s.postService.UpdatePost(c.Context(), service.UpdatePostInput{
		CallerID: userID,
		PostID:   postID,
		Title:    c.FormValue("title"),
		Subtitle: c.FormValue("subtitle"),
		Body:     c.FormValue("body"),
		ImageURL: c.FormValue("img_url"),
	}); err != nil {
		return s.renderError(c, err)
	}

	return c.Redirect("/post/"+c.Params("id"), fiber.StatusSeeOther)
}

// DeletePost handles GET /delete/:id.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID, _ := currentUserID(c)

	if err := s.postService.DeletePost(c.Context(), service.DeletePostInput{
		CallerID: userID,
		PostID:   postID,
	}); err != nil {
		return s.renderError(c, err)
	}

	return c.Redirect("/", fiber.StatusSeeOther)
}
