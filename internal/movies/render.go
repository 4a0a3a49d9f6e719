package movies

import (
	"errors"
	"strconv"

	"inkreel/internal/models"

	"github.com/gofiber/fiber/v2"
)

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
		"Status":  status,
		"Message": message,
	})
}

// queryID extracts the id query parameter as a positive integer. On failure
// it writes a 400 page and reports !ok; callers should return nil.
func (s *Server) queryID(c *fiber.Ctx) (uint, bool) {
	id, err := strconv.Atoi(c.Query("id"))
	if err != nil || id <= 0 {
		_ = s.renderError(c, models.NewValidationError("A valid id is required"))
		return 0, false
	}
	return uint(id), true
}
