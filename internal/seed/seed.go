// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"inkreel/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	NumMovies   int
	ShouldClean bool
}

// Seed populates the database with test data
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Starting database seeding with %d users, %d posts, %d movies...",
		opts.NumUsers, opts.NumPosts, opts.NumMovies)

	gofakeit.Seed(time.Now().UnixNano())

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	users, err := createUsers(db, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("%d test users created", len(users))

	posts, err := createPosts(db, users, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("%d posts created", len(posts))

	if err := createComments(db, users, posts); err != nil {
		return fmt.Errorf("failed to create comments: %w", err)
	}

	if err := createMovies(db, opts.NumMovies); err != nil {
		return fmt.Errorf("failed to create movies: %w", err)
	}
	log.Printf("%d movies created", opts.NumMovies)

	return nil
}

func clearData(db *gorm.DB) error {
	tables := []string{"comments", "posts", "users", "movies"}
	for _, table := range tables {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	return nil
}

func createUsers(db *gorm.DB, count int) ([]*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	users := make([]*models.User, 0, count)
	for i := 0; i < count; i++ {
		user := &models.User{
			Name:     gofakeit.Name(),
			Email:    fmt.Sprintf("user%d@%s", i+1, gofakeit.DomainName()),
			Password: string(hashed),
			IsAdmin:  i == 0,
		}
		if err := db.Create(user).Error; err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func createPosts(db *gorm.DB, users []*models.User, count int) ([]*models.Post, error) {
	if len(users) == 0 {
		return nil, nil
	}

	posts := make([]*models.Post, 0, count)
	for i := 0; i < count; i++ {
		author := users[rand.Intn(len(users))]
		createdAt := time.Now().Add(-time.Duration(rand.Intn(90*24)) * time.Hour)

		post := &models.Post{
			Title:     fmt.Sprintf("%s #%d", gofakeit.Sentence(4), i+1),
			Subtitle:  gofakeit.Sentence(6),
			Date:      createdAt.Format("January 2, 2006"),
			Body:      gofakeit.Paragraph(3, 4, 8, "\n\n"),
			ImageURL:  fmt.Sprintf("https://picsum.photos/seed/%s/900/400", gofakeit.UUID()),
			AuthorID:  author.ID,
			CreatedAt: createdAt,
		}
		if err := db.Create(post).Error; err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

func createComments(db *gorm.DB, users []*models.User, posts []*models.Post) error {
	if len(users) == 0 || len(posts) == 0 {
		return nil
	}

	for _, post := range posts {
		for i := 0; i < rand.Intn(5); i++ {
			comment := &models.Comment{
				Text:     gofakeit.Sentence(12),
				AuthorID: users[rand.Intn(len(users))].ID,
				PostID:   post.ID,
			}
			if err := db.Create(comment).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

func createMovies(db *gorm.DB, count int) error {
	for i := 0; i < count; i++ {
		movie := &models.Movie{
			Title:       fmt.Sprintf("%s (%d)", gofakeit.MovieName(), i+1),
			Year:        gofakeit.Number(1960, 2025),
			Description: gofakeit.Paragraph(1, 2, 10, " "),
			Rating:      float64(gofakeit.Number(10, 100)) / 10,
			Review:      gofakeit.Sentence(8),
			ImageURL:    fmt.Sprintf("https://picsum.photos/seed/%s/500/750", gofakeit.UUID()),
		}
		if err := db.Create(movie).Error; err != nil {
			return err
		}
	}
	return nil
}
