package repository

import (
	"context"
	"errors"

	"inkreel/internal/models"

	"gorm.io/gorm"
)

// MovieRepository defines persistence operations for tracked movies.
type MovieRepository interface {
	Create(ctx context.Context, movie *models.Movie) error
	GetByID(ctx context.Context, id uint) (*models.Movie, error)
	// ListByRating returns every movie ordered by ascending rating with an
	// id tie-break, the traversal order the ranking pass depends on.
	ListByRating(ctx context.Context) ([]*models.Movie, error)
	Update(ctx context.Context, movie *models.Movie) error
	// SaveRankings persists recomputed Ranking values in one transaction.
	SaveRankings(ctx context.Context, movies []*models.Movie) error
	Delete(ctx context.Context, id uint) error
}

type movieRepository struct {
	db *gorm.DB
}

// NewMovieRepository creates a new movie repository.
func NewMovieRepository(db *gorm.DB) MovieRepository {
	return &movieRepository{db: db}
}

func (r *movieRepository) Create(ctx context.Context, movie *models.Movie) error {
	if err := r.db.WithContext(ctx).Create(movie).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("That movie is already in the collection")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *movieRepository) GetByID(ctx context.Context, id uint) (*models.Movie, error) {
	var movie models.Movie
	if err := r.db.WithContext(ctx).First(&movie, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Movie", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &movie, nil
}

func (r *movieRepository) ListByRating(ctx context.Context) ([]*models.Movie, error) {
	var movies []*models.Movie
	if err := r.db.WithContext(ctx).
		Order("rating ASC, id ASC").
		Find(&movies).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return movies, nil
}

func (r *movieRepository) Update(ctx context.Context, movie *models.Movie) error {
	if err := r.db.WithContext(ctx).Save(movie).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("That movie is already in the collection")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *movieRepository) SaveRankings(ctx context.Context, movies []*models.Movie) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, m := range movies {
			if err := tx.Model(&models.Movie{}).
				Where("id = ?", m.ID).
				Update("ranking", m.Ranking).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *movieRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Movie{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
