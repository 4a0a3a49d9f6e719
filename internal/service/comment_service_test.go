package service

import (
	"context"
	"testing"

	"inkreel/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn     func(context.Context, *models.Comment) error
	getByIDFn    func(context.Context, uint) (*models.Comment, error)
	listByPostFn func(context.Context, uint) ([]*models.Comment, error)
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	return s.listByPostFn(ctx, postID)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:     func(_ context.Context, _ *models.Comment) error { return nil },
		getByIDFn:    func(_ context.Context, _ uint) (*models.Comment, error) { return &models.Comment{}, nil },
		listByPostFn: func(_ context.Context, _ uint) ([]*models.Comment, error) { return nil, nil },
	}
}

func TestCommentService_CreateComment(t *testing.T) {
	t.Parallel()

	t.Run("missing parent post is not found", func(t *testing.T) {
		t.Parallel()
		posts := noopPostRepo()
		posts.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
			return nil, models.NewNotFoundError("post", id)
		}
		comments := noopCommentRepo()
		comments.createFn = func(_ context.Context, _ *models.Comment) error {
			t.Fatal("create must not run when the parent post is missing")
			return nil
		}

		svc := NewCommentService(comments, posts)
		_, err := svc.CreateComment(context.Background(), CreateCommentInput{
			AuthorID: 1, PostID: 999, Text: "hi",
		})
		require.Error(t, err)
		assert.Equal(t, models.CodeNotFound, models.ErrorCode(err))
	})

	t.Run("empty text is rejected", func(t *testing.T) {
		t.Parallel()
		svc := NewCommentService(noopCommentRepo(), noopPostRepo())
		_, err := svc.CreateComment(context.Background(), CreateCommentInput{
			AuthorID: 1, PostID: 1,
		})
		assertValidationError(t, err)
	})

	t.Run("comment is persisted and returned with author", func(t *testing.T) {
		t.Parallel()
		comments := noopCommentRepo()
		comments.createFn = func(_ context.Context, c *models.Comment) error {
			c.ID = 3
			return nil
		}
		comments.getByIDFn = func(_ context.Context, id uint) (*models.Comment, error) {
			require.Equal(t, uint(3), id)
			return &models.Comment{
				ID: 3, Text: "nice one", AuthorID: 1, PostID: 2,
				Author: models.User{ID: 1, Name: "Reader"},
			}, nil
		}

		svc := NewCommentService(comments, noopPostRepo())
		comment, err := svc.CreateComment(context.Background(), CreateCommentInput{
			AuthorID: 1, PostID: 2, Text: "nice one",
		})
		require.NoError(t, err)
		assert.Equal(t, "nice one", comment.Text)
		assert.Equal(t, "Reader", comment.Author.Name)
	})
}

func TestCommentService_ListComments_MissingPost(t *testing.T) {
	t.Parallel()

	posts := noopPostRepo()
	posts.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
		return nil, models.NewNotFoundError("post", id)
	}
	svc := NewCommentService(noopCommentRepo(), posts)

	_, err := svc.ListComments(context.Background(), 123)
	require.Error(t, err)
	assert.Equal(t, models.CodeNotFound, models.ErrorCode(err))
}
