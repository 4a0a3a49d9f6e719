// Package service contains the business logic for both applications.
package service

import (
	"context"
	"time"

	"inkreel/internal/models"
	"inkreel/internal/observability"
	"inkreel/internal/repository"
)

// postDateFormat is the human-readable publication date stamped on new posts.
const postDateFormat = "January 2, 2006"

// PostService implements post authoring and the author-or-admin guard.
type PostService struct {
	postRepo repository.PostRepository
	isAdmin  func(ctx context.Context, userID uint) (bool, error)
	now      func() time.Time
}

type CreatePostInput struct {
	AuthorID uint
	Title    string
	Subtitle string
	Body     string
	ImageURL string
}

type UpdatePostInput struct {
	CallerID uint
	PostID   uint
	Title    string
	Subtitle string
	Body     string
	ImageURL string
}

type DeletePostInput struct {
	CallerID uint
	PostID   uint
}

func NewPostService(
	postRepo repository.PostRepository,
	isAdmin func(ctx context.Context, userID uint) (bool, error),
) *PostService {
	return &PostService{
		postRepo: postRepo,
		isAdmin:  isAdmin,
		now:      time.Now,
	}
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if in.Title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if in.Subtitle == "" {
		return nil, models.NewValidationError("Subtitle is required")
	}
	if in.Body == "" {
		return nil, models.NewValidationError("Body is required")
	}

	post := &models.Post{
		Title:    in.Title,
		Subtitle: in.Subtitle,
		Date:     s.now().Format(postDateFormat),
		Body:     in.Body,
		ImageURL: in.ImageURL,
		AuthorID: in.AuthorID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID)
}

func (s *PostService) ListPosts(ctx context.Context) ([]*models.Post, error) {
	return s.postRepo.List(ctx)
}

func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

// authorize is the guard for mutating post operations: the caller must be the
// post's author or an admin. A denial is a forbidden outcome with no mutation.
func (s *PostService) authorize(ctx context.Context, callerID uint, post *models.Post) error {
	if post.AuthorID == callerID {
		return nil
	}
	if s.isAdmin != nil {
		admin, err := s.isAdmin(ctx, callerID)
		if err != nil {
			return err
		}
		if admin {
			return nil
		}
	}
	observability.GuardDenials.Inc()
	return models.NewForbiddenError("Only the author or an admin can modify this post")
}

// AuthorizeMutation reports whether callerID may modify the given post. It is
// the same check UpdatePost and DeletePost run, exposed so callers can guard
// an edit form before showing it.
func (s *PostService) AuthorizeMutation(ctx context.Context, callerID, postID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	return s.authorize(ctx, callerID, post)
}

func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, in.CallerID, post); err != nil {
		return nil, err
	}

	if in.Title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if in.Subtitle == "" {
		return nil, models.NewValidationError("Subtitle is required")
	}
	if in.Body == "" {
		return nil, models.NewValidationError("Body is required")
	}

	post.Title = in.Title
	post.Subtitle = in.Subtitle
	post.Body = in.Body
	post.ImageURL = in.ImageURL

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) DeletePost(ctx context.Context, in DeletePostInput) error {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return err
	}
	if err := s.authorize(ctx, in.CallerID, post); err != nil {
		return err
	}
	return s.postRepo.Delete(ctx, in.PostID)
}
