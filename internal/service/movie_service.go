package service

import (
	"context"
	"math"
	"strconv"
	"strings"

	"inkreel/internal/models"
	"inkreel/internal/observability"
	"inkreel/internal/repository"
	"inkreel/internal/tmdb"
)

// MetadataClient is the slice of the TMDB client the movie service needs.
type MetadataClient interface {
	Search(ctx context.Context, query string) ([]tmdb.SearchResult, error)
	Details(ctx context.Context, id int) (*tmdb.Details, error)
}

// MovieService implements the ranked listing, rating edits, and the two-phase
// external lookup flow.
type MovieService struct {
	movieRepo    repository.MovieRepository
	metadata     MetadataClient
	imageBaseURL string
}

type UpdateMovieInput struct {
	MovieID uint
	Rating  float64
	Review  string
}

func NewMovieService(
	movieRepo repository.MovieRepository,
	metadata MetadataClient,
	imageBaseURL string,
) *MovieService {
	return &MovieService{
		movieRepo:    movieRepo,
		metadata:     metadata,
		imageBaseURL: imageBaseURL,
	}
}

// ListRanked is the ranking pass run on every listing read. Movies are fetched
// ordered by ascending rating (id tie-break), the lowest-rated gets rank N and
// the highest rank 1, and the recomputed ranks are persisted before the list
// is returned best-first.
func (s *MovieService) ListRanked(ctx context.Context) ([]*models.Movie, error) {
	movies, err := s.movieRepo.ListByRating(ctx)
	if err != nil {
		return nil, err
	}

	for i := range movies {
		movies[i].Ranking = len(movies) - i
	}
	if len(movies) > 0 {
		if err := s.movieRepo.SaveRankings(ctx, movies); err != nil {
			return nil, err
		}
	}
	observability.RankingPasses.Inc()

	// Present rank 1 first.
	ranked := make([]*models.Movie, len(movies))
	for i, m := range movies {
		ranked[len(movies)-1-i] = m
	}
	return ranked, nil
}

func (s *MovieService) GetMovie(ctx context.Context, id uint) (*models.Movie, error) {
	return s.movieRepo.GetByID(ctx, id)
}

func (s *MovieService) UpdateMovie(ctx context.Context, in UpdateMovieInput) (*models.Movie, error) {
	movie, err := s.movieRepo.GetByID(ctx, in.MovieID)
	if err != nil {
		return nil, err
	}

	if math.IsNaN(in.Rating) || in.Rating < 0 || in.Rating > 10 {
		return nil, models.NewValidationError("Rating must be between 0 and 10")
	}
	if in.Review == "" {
		return nil, models.NewValidationError("Review is required")
	}

	movie.Rating = in.Rating
	movie.Review = in.Review
	if err := s.movieRepo.Update(ctx, movie); err != nil {
		return nil, err
	}
	return movie, nil
}

func (s *MovieService) DeleteMovie(ctx context.Context, id uint) error {
	if _, err := s.movieRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.movieRepo.Delete(ctx, id)
}

// SearchCandidates is phase 1 of the lookup flow: a free-text title search
// that persists nothing.
func (s *MovieService) SearchCandidates(ctx context.Context, title string) ([]tmdb.SearchResult, error) {
	if strings.TrimSpace(title) == "" {
		return nil, models.NewValidationError("Movie title is required")
	}
	return s.metadata.Search(ctx, title)
}

// AddFromLookup is phase 2: fetch full details for the chosen external id and
// persist a new movie. The year is the release-date substring before the first
// "-"; the image URL is the fixed host prefix plus the poster path. A missing
// or malformed field fails the whole request and persists nothing.
func (s *MovieService) AddFromLookup(ctx context.Context, externalID int) (*models.Movie, error) {
	details, err := s.metadata.Details(ctx, externalID)
	if err != nil {
		return nil, err
	}

	if details.Title == "" {
		return nil, models.NewUpstreamError("movie metadata response is missing a title", nil)
	}
	year, err := yearFromReleaseDate(details.ReleaseDate)
	if err != nil {
		return nil, err
	}

	movie := &models.Movie{
		Title:       details.Title,
		Year:        year,
		Description: details.Overview,
		Rating:      details.VoteAverage,
		Review:      details.Tagline,
		ImageURL:    s.imageBaseURL + details.PosterPath,
	}
	if err := s.movieRepo.Create(ctx, movie); err != nil {
		return nil, err
	}
	return movie, nil
}

// yearFromReleaseDate extracts the leading year from a "2010-07-15" style date.
func yearFromReleaseDate(releaseDate string) (int, error) {
	head, _, _ := strings.Cut(releaseDate, "-")
	year, err := strconv.Atoi(head)
	if err != nil {
		return 0, models.NewUpstreamError("movie metadata response has an unusable release date", err)
	}
	return year, nil
}
