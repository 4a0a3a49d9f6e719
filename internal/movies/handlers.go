package movies

import (
	"strconv"

	"inkreel/internal/models"
	"inkreel/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Home handles GET /: the collection ranked best-first. Every visit recomputes
// and persists the rankings from the current ratings.
func (s *Server) Home(c *fiber.Ctx) error {
	movies, err := s.movieService.ListRanked(c.Context())
	if err != nil {
		return s.renderError(c, err)
	}
	return c.Render("views/index", fiber.Map{
		"Movies": movies,
	})
}

// ShowEdit handles GET /edit?id=: the rating and review form.
func (s *Server) ShowEdit(c *fiber.Ctx) error {
	movieID, ok := s.queryID(c)
	if !ok {
		return nil
	}

	movie, err := s.movieService.GetMovie(c.Context(), movieID)
	if err != nil {
		return s.renderError(c, err)
	}
	return c.Render("views/edit", fiber.Map{
		"Movie": movie,
	})
}

// Edit handles POST /edit?id=: updates rating and review, then returns home.
func (s *Server) Edit(c *fiber.Ctx) error {
	movieID, ok := s.queryID(c)
	if !ok {
		return nil
	}

	rating, err := strconv.ParseFloat(c.FormValue("rating"), 64)
	if err != nil {
		return s.renderError(c, models.NewValidationError("Rating must be a number between 0 and 10"))
	}

	if _, err := s.movieService.UpdateMovie(c.Context(), service.UpdateMovieInput{
		MovieID: movieID,
		Rating:  rating,
		Review:  c.FormValue("review"),
	}); err != nil {
		return s.renderError(c, err)
	}

	return c.Redirect("/", fiber.StatusSeeOther)
}

// Delete handles GET /delete?id=.
func (s *Server) Delete(c *fiber.Ctx) error {
	movieID, ok := s.queryID(c)
	if !ok {
		return nil
	}

	if err := s.movieService.DeleteMovie(c.Context(), movieID); err != nil {
		return s.renderError(c, err)
	}
	return c.Redirect("/", fiber.StatusSeeOther)
}

// ShowAdd handles GET /add: the title search form.
func (s *Server) ShowAdd(c *fiber.Ctx) error {
	return c.Render("views/add", fiber.Map{})
}

// Search handles POST /add: phase one of the lookup flow. The candidates are
// shown for the user to pick from; nothing is persisted.
func (s *Server) Search(c *fiber.Ctx) error {
	title := c.FormValue("title")

	candidates, err := s.movieService.SearchCandidates(c.Context(), title)
	if err != nil {
		if models.ErrorCode(err) == models.CodeValidation {
			return c.Status(fiber.StatusBadRequest).Render("views/add", fiber.Map{
				"Error": "Movie title is required",
			})
		}
		return s.renderError(c, err)
	}

	return c.Render("views/select", fiber.Map{
		"Title":      title,
		"Candidates": candidates,
	})
}

// Find handles GET /find?id=: phase two of the lookup flow. The id is the
// external catalogue id picked on the selection page; the movie is fetched,
// persisted, and the user lands on its rating form.
func (s *Server) Find(c *fiber.Ctx) error {
	externalID, err := strconv.Atoi(c.Query("id"))
	if err != nil || externalID <= 0 {
		return s.renderError(c, models.NewValidationError("A valid id is required"))
	}

	movie, err := s.movieService.AddFromLookup(c.Context(), externalID)
	if err != nil {
		return s.renderError(c, err)
	}

	return c.Redirect("/edit?id="+strconv.FormatUint(uint64(movie.ID), 10), fiber.StatusSeeOther)
}
