package repository

import (
	"context"
	"testing"

	"inkreel/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMovieRepository_ListByRating_Order(t *testing.T) {
	t.Parallel()

	movies := NewMovieRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, movies.Create(ctx, &models.Movie{Title: "High", Year: 2000, Description: "d", Rating: 9.0}))
	require.NoError(t, movies.Create(ctx, &models.Movie{Title: "Low", Year: 2001, Description: "d", Rating: 2.0}))
	require.NoError(t, movies.Create(ctx, &models.Movie{Title: "Mid", Year: 2002, Description: "d", Rating: 5.0}))

	got, err := movies.ListByRating(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "Low", got[0].Title)
	assert.Equal(t, "Mid", got[1].Title)
	assert.Equal(t, "High", got[2].Title)
}

func TestMovieRepository_ListByRating_TiesBreakByID(t *testing.T) {
	t.Parallel()

	movies := NewMovieRepository(newTestDB(t))
	ctx := context.Background()

	first := &models.Movie{Title: "First In", Year: 2000, Description: "d", Rating: 7.0}
	second := &models.Movie{Title: "Second In", Year: 2001, Description: "d", Rating: 7.0}
	require.NoError(t, movies.Create(ctx, first))
	require.NoError(t, movies.Create(ctx, second))

	got, err := movies.ListByRating(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, first.ID, got[0].ID)
	assert.Equal(t, second.ID, got[1].ID)
}

func TestMovieRepository_DuplicateTitleIsConflict(t *testing.T) {
	t.Parallel()

	movies := NewMovieRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, movies.Create(ctx, &models.Movie{Title: "Same", Year: 2000, Description: "d", Rating: 5}))

	err := movies.Create(ctx, &models.Movie{Title: "Same", Year: 2001, Description: "d", Rating: 6})
	require.Error(t, err)
	assert.Equal(t, models.CodeConflict, models.ErrorCode(err))
}

func TestMovieRepository_SaveRankings(t *testing.T) {
	t.Parallel()

	movies := NewMovieRepository(newTestDB(t))
	ctx := context.Background()

	a := &models.Movie{Title: "A", Year: 2000, Description: "d", Rating: 3}
	b := &models.Movie{Title: "B", Year: 2001, Description: "d", Rating: 8}
	require.NoError(t, movies.Create(ctx, a))
	require.NoError(t, movies.Create(ctx, b))

	a.Ranking = 2
	b.Ranking = 1
	require.NoError(t, movies.SaveRankings(ctx, []*models.Movie{a, b}))

	gotA, err := movies.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, gotA.Ranking)

	gotB, err := movies.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, gotB.Ranking)
}

func TestMovieRepository_Delete(t *testing.T) {
	t.Parallel()

	movies := NewMovieRepository(newTestDB(t))
	ctx := context.Background()

	movie := &models.Movie{Title: "Gone", Year: 2000, Description: "d", Rating: 5}
	require.NoError(t, movies.Create(ctx, movie))
	require.NoError(t, movies.Delete(ctx, movie.ID))

	_, err := movies.GetByID(ctx, movie.ID)
	require.Error(t, err)
	assert.Equal(t, models.CodeNotFound, models.ErrorCode(err))
}
