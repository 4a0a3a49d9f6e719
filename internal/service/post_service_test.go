package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"inkreel/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn  func(context.Context, *models.Post) error
	getByIDFn func(context.Context, uint) (*models.Post, error)
	listFn    func(context.Context) ([]*models.Post, error)
	updateFn  func(context.Context, *models.Post) error
	deleteFn  func(context.Context, uint) error
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) List(ctx context.Context) ([]*models.Post, error) {
	return s.listFn(ctx)
}
func (s *postRepoStub) Update(ctx context.Context, post *models.Post) error {
	return s.updateFn(ctx, post)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:  func(_ context.Context, _ *models.Post) error { return nil },
		getByIDFn: func(_ context.Context, _ uint) (*models.Post, error) { return &models.Post{}, nil },
		listFn:    func(_ context.Context) ([]*models.Post, error) { return nil, nil },
		updateFn:  func(_ context.Context, _ *models.Post) error { return nil },
		deleteFn:  func(_ context.Context, _ uint) error { return nil },
	}
}

func adminCheck(admins ...uint) func(context.Context, uint) (bool, error) {
	return func(_ context.Context, userID uint) (bool, error) {
		for _, id := range admins {
			if id == userID {
				return true, nil
			}
		}
		return false, nil
	}
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, models.CodeValidation, models.ErrorCode(err))
}

func TestPostService_CreatePost_Validation(t *testing.T) {
	t.Parallel()

	svc := NewPostService(noopPostRepo(), nil)
	ctx := context.Background()

	tests := []struct {
		name  string
		input CreatePostInput
	}{
		{
			name:  "missing title",
			input: CreatePostInput{AuthorID: 1, Subtitle: "S", Body: "B"},
		},
		{
			name:  "missing subtitle",
			input: CreatePostInput{AuthorID: 1, Title: "T", Body: "B"},
		},
		{
			name:  "missing body",
			input: CreatePostInput{AuthorID: 1, Title: "T", Subtitle: "S"},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := svc.CreatePost(ctx, tc.input)
			assertValidationError(t, err)
		})
	}
}

func TestPostService_CreatePost_StampsPublicationDate(t *testing.T) {
	t.Parallel()

	var created *models.Post
	repo := noopPostRepo()
	repo.createFn = func(_ context.Context, p *models.Post) error {
		p.ID = 7
		created = p
		return nil
	}
	repo.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
		require.Equal(t, uint(7), id)
		return created, nil
	}

	svc := NewPostService(repo, nil)
	svc.now = func() time.Time {
		return time.Date(2024, time.August, 31, 15, 4, 5, 0, time.UTC)
	}

	post, err := svc.CreatePost(context.Background(), CreatePostInput{
		AuthorID: 1,
		Title:    "A Day in August",
		Subtitle: "Notes",
		Body:     "Body text",
	})
	require.NoError(t, err)
	assert.Equal(t, "August 31, 2024", post.Date)
	assert.Equal(t, uint(1), post.AuthorID)
}

func TestPostService_UpdatePost_Guard(t *testing.T) {
	t.Parallel()

	newRepo := func() *postRepoStub {
		repo := noopPostRepo()
		repo.getByIDFn = func(_ context.Context, _ uint) (*models.Post, error) {
			return &models.Post{ID: 1, AuthorID: 10, Title: "T", Subtitle: "S", Body: "B"}, nil
		}
		return repo
	}

	t.Run("author can update", func(t *testing.T) {
		t.Parallel()
		svc := NewPostService(newRepo(), adminCheck())
		post, err := svc.UpdatePost(context.Background(), UpdatePostInput{
			CallerID: 10, PostID: 1, Title: "New", Subtitle: "S", Body: "B",
		})
		require.NoError(t, err)
		assert.Equal(t, "New", post.Title)
	})

	t.Run("admin can update", func(t *testing.T) {
		t.Parallel()
		svc := NewPostService(newRepo(), adminCheck(99))
		_, err := svc.UpdatePost(context.Background(), UpdatePostInput{
			CallerID: 99, PostID: 1, Title: "New", Subtitle: "S", Body: "B",
		})
		assert.NoError(t, err)
	})

	t.Run("stranger is denied without mutation", func(t *testing.T) {
		t.Parallel()
		repo := newRepo()
		repo.updateFn = func(_ context.Context, _ *models.Post) error {
			t.Fatal("update must not run for a denied caller")
			return nil
		}
		svc := NewPostService(repo, adminCheck())
		_, err := svc.UpdatePost(context.Background(), UpdatePostInput{
			CallerID: 42, PostID: 1, Title: "New", Subtitle: "S", Body: "B",
		})
		require.Error(t, err)
		assert.Equal(t, models.CodeForbidden, models.ErrorCode(err))
	})
}

func TestPostService_DeletePost_Guard(t *testing.T) {
	t.Parallel()

	t.Run("author can delete", func(t *testing.T) {
		t.Parallel()
		repo := noopPostRepo()
		repo.getByIDFn = func(_ context.Context, _ uint) (*models.Post, error) {
			return &models.Post{ID: 1, AuthorID: 10}, nil
		}
		svc := NewPostService(repo, adminCheck())
		err := svc.DeletePost(context.Background(), DeletePostInput{CallerID: 10, PostID: 1})
		assert.NoError(t, err)
	})

	t.Run("stranger is denied", func(t *testing.T) {
		t.Parallel()
		repo := noopPostRepo()
		repo.getByIDFn = func(_ context.Context, _ uint) (*models.Post, error) {
			return &models.Post{ID: 1, AuthorID: 10}, nil
		}
		repo.deleteFn = func(_ context.Context, _ uint) error {
			t.Fatal("delete must not run for a denied caller")
			return nil
		}
		svc := NewPostService(repo, adminCheck())
		err := svc.DeletePost(context.Background(), DeletePostInput{CallerID: 42, PostID: 1})
		require.Error(t, err)
		assert.Equal(t, models.CodeForbidden, models.ErrorCode(err))
	})

	t.Run("missing post surfaces not found", func(t *testing.T) {
		t.Parallel()
		repo := noopPostRepo()
		repo.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
			return nil, models.NewNotFoundError("post", id)
		}
		svc := NewPostService(repo, adminCheck())
		err := svc.DeletePost(context.Background(), DeletePostInput{CallerID: 10, PostID: 999})
		require.Error(t, err)
		assert.Equal(t, models.CodeNotFound, models.ErrorCode(err))
	})
}

func TestPostService_AuthorizeMutation(t *testing.T) {
	t.Parallel()

	repo := noopPostRepo()
	repo.getByIDFn = func(_ context.Context, _ uint) (*models.Post, error) {
		return &models.Post{ID: 1, AuthorID: 10}, nil
	}
	svc := NewPostService(repo, adminCheck(99))

	assert.NoError(t, svc.AuthorizeMutation(context.Background(), 10, 1))
	assert.NoError(t, svc.AuthorizeMutation(context.Background(), 99, 1))

	err := svc.AuthorizeMutation(context.Background(), 42, 1)
	require.Error(t, err)
	assert.Equal(t, models.CodeForbidden, models.ErrorCode(err))
}

func TestPostService_AuthorizeMutation_AdminLookupError(t *testing.T) {
	t.Parallel()

	repo := noopPostRepo()
	repo.getByIDFn = func(_ context.Context, _ uint) (*models.Post, error) {
		return &models.Post{ID: 1, AuthorID: 10}, nil
	}
	lookupErr := errors.New("role lookup failed")
	svc := NewPostService(repo, func(_ context.Context, _ uint) (bool, error) {
		return false, lookupErr
	})

	err := svc.AuthorizeMutation(context.Background(), 42, 1)
	assert.ErrorIs(t, err, lookupErr)
}
