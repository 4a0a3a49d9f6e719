package blog

import (
	"errors"

	"inkreel/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) so the
// Fiber ErrorHandler does not overwrite the page.
var errResponseWritten = errors.New("response already written")

// renderError renders the shared error page with the status implied by the
// error's taxonomy code.
func (s *Server) renderError(c *fiber.Ctx, err error) error {
	status := models.HTTPStatus(err)

	message := "Something went wrong"
	var appErr *models.AppError
	if errors.As(err, &appErr) && appErr.Code != models.CodeInternal {
		message = appErr.Message
	}

	return c.Status(status).Render("views/error", fiber.Map{
		"Status":   status,
		"Message":  message,
		"LoggedIn": loggedIn(c),
	})
}

// parseID extracts a route parameter as a positive uint. On failure it writes
// a 400 page and returns errResponseWritten; callers should return nil.
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = s.renderError(c, models.NewValidationError("Invalid post ID"))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// loggedIn reports whether the current request carries a valid session.
func loggedIn(c *fiber.Ctx) bool {
	_, ok := currentUserID(c)
	return ok
}
