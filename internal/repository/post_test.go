package repository

import (
	"context"
	"testing"

	"inkreel/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedAuthor(t *testing.T, users UserRepository, email string) *models.User {
	t.Helper()
	user := &models.User{Name: "Author", Email: email, Password: "x"}
	require.NoError(t, users.Create(context.Background(), user))
	return user
}

func TestPostRepository_CreateAndGet(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	users := NewUserRepository(db)
	posts := NewPostRepository(db)
	comments := NewCommentRepository(db)
	ctx := context.Background()

	author := seedAuthor(t, users, "author@example.com")
	reader := seedAuthor(t, users, "reader@example.com")

	post := &models.Post{
		Title: "Hello", Subtitle: "World", Date: "January 2, 2006",
		Body: "Body", AuthorID: author.ID,
	}
	require.NoError(t, posts.Create(ctx, post))

	require.NoError(t, comments.Create(ctx, &models.Comment{
		Text: "first", AuthorID: reader.ID, PostID: post.ID,
	}))
	require.NoError(t, comments.Create(ctx, &models.Comment{
		Text: "second", AuthorID: author.ID, PostID: post.ID,
	}))

	got, err := posts.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Author", got.Author.Name)
	require.Len(t, got.Comments, 2)
	assert.Equal(t, "first", got.Comments[0].Text)
	assert.Equal(t, "second", got.Comments[1].Text)
	assert.NotEmpty(t, got.Comments[0].Author.Name)
}

func TestPostRepository_DuplicateTitleIsConflict(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	users := NewUserRepository(db)
	posts := NewPostRepository(db)
	ctx := context.Background()

	author := seedAuthor(t, users, "author@example.com")

	first := &models.Post{Title: "Same", Subtitle: "S", Date: "D", Body: "B", AuthorID: author.ID}
	require.NoError(t, posts.Create(ctx, first))

	err := posts.Create(ctx, &models.Post{Title: "Same", Subtitle: "S2", Date: "D", Body: "B2", AuthorID: author.ID})
	require.Error(t, err)
	assert.Equal(t, models.CodeConflict, models.ErrorCode(err))
}

func TestPostRepository_GetByID_NotFound(t *testing.T) {
	t.Parallel()

	posts := NewPostRepository(newTestDB(t))

	_, err := posts.GetByID(context.Background(), 424242)
	require.Error(t, err)
	assert.Equal(t, models.CodeNotFound, models.ErrorCode(err))
}

func TestPostRepository_Delete(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	users := NewUserRepository(db)
	posts := NewPostRepository(db)
	ctx := context.Background()

	author := seedAuthor(t, users, "author@example.com")
	post := &models.Post{Title: "Gone", Subtitle: "S", Date: "D", Body: "B", AuthorID: author.ID}
	require.NoError(t, posts.Create(ctx, post))

	require.NoError(t, posts.Delete(ctx, post.ID))

	_, err := posts.GetByID(ctx, post.ID)
	require.Error(t, err)
	assert.Equal(t, models.CodeNotFound, models.ErrorCode(err))
}
