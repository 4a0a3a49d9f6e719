package blog

import (
	"inkreel/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

// ShowRegister handles GET /register.
func (s *Server) ShowRegister(c *fiber.Ctx) error {
	if loggedIn(c) {
		return c.Redirect("/", fiber.StatusFound)
	}
	return c.Render("views/register", fiber.Map{})
}

// Register handles POST /register. A duplicate email re-renders the form with
// a conflict message and creates nothing; success hashes the password, creates
// the user, starts a session, and redirects home.
func (s *Server) Register(c *fiber.Ctx) error {
	name := c.FormValue("name")
	email := c.FormValue("email")
	password := c.FormValue("password")

	if name == "" || email == "" || password == "" {
		return c.Status(fiber.StatusBadRequest).Render("views/register", fiber.Map{
			"Error": "Name, email, and password are required",
			"Name":  name,
			"Email": email,
		})
	}

	existing, err := s.userRepo.GetByEmail(c.Context(), email)
	if err != nil {
		return s.renderError(c, err)
	}
	if existing != nil {
		return c.Status(fiber.StatusConflict).Render("views/register", fiber.Map{
			"Error": "Email is already present. Login instead.",
			"Name":  name,
			"Email": email,
		})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return s.renderError(c, models.NewInternalError(err))
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		Password: string(hashed),
	}
	if err := s.userRepo.Create(c.Context(), user); err != nil {
		if models.ErrorCode(err) == models.CodeConflict {
			return c.Status(fiber.StatusConflict).Render("views/register", fiber.Map{
				"Error": "Email is already present. Login instead.",
				"Name":  name,
				"Email": email,
			})
		}
		return s.renderError(c, err)
	}

	if err := s.issueSession(c, user.ID, user.Name); err != nil {
		return s.renderError(c, models.NewInternalError(err))
	}
	return c.Redirect("/", fiber.StatusSeeOther)
}

// ShowLogin handles GET /login.
func (s *Server) ShowLogin(c *fiber.Ctx) error {
	if loggedIn(c) {
		return c.Redirect("/", fiber.StatusFound)
	}
	return c.Render("views/login", fiber.Map{})
}

// Login handles POST /login. The messages deliberately distinguish an unknown
// email from a wrong password, matching the site's original behavior.
func (s *Server) Login(c *fiber.Ctx) error {
	email := c.FormValue("email")
	password := c.FormValue("password")

	user, err := s.userRepo.GetByEmail(c.Context(), email)
	if err != nil {
		return s.renderError(c, err)
	}
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).Render("views/login", fiber.Map{
			"Error": "Email Address does not exist!",
			"Email": email,
		})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).Render("views/login", fiber.Map{
			"Error": "Password does not match!",
			"Email": email,
		})
	}

	if err := s.issueSession(c, user.ID, user.Name); err != nil {
		return s.renderError(c, models.NewInternalError(err))
	}
	return c.Redirect("/", fiber.StatusSeeOther)
}

// Logout handles GET /logout: revokes the session and redirects home.
func (s *Server) Logout(c *fiber.Ctx) error {
	s.revokeSession(c)
	return c.Redirect("/", fiber.StatusSeeOther)
}

// Profile handles GET /profile: the current user's details and their posts.
func (s *Server) Profile(c *fiber.Ctx) error {
	userID, _ := currentUserID(c)

	user, err := s.userRepo.GetByIDWithPosts(c.Context(), userID)
	if err != nil {
		return s.renderError(c, err)
	}

	return c.Render("views/profile", fiber.Map{
		"User":     user,
		"LoggedIn": true,
	})
}
