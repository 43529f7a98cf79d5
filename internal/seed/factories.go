// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"atelier/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

var postCategories = []string{"general", "project", "writing", "talk"}

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db  *gorm.DB
	rng *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:  db,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreatePost persists a post with plausible content, spread over the last
// few months.
func (f *Factory) CreatePost(overrides ...func(*models.Post)) (*models.Post, error) {
	post := &models.Post{
		Title:       gofakeit.Sentence(5),
		Description: gofakeit.Paragraph(1, 3, 5, "\n"),
		Category:    postCategories[f.rng.Intn(len(postCategories))],
		ImageURL:    fmt.Sprintf("https://picsum.photos/seed/%s/800/600", gofakeit.UUID()),
		LikeCount:   f.rng.Intn(40),
	}
	daysBack := f.rng.Intn(90)
	post.CreatedAt = time.Now().Add(-time.Duration(daysBack) * 24 * time.Hour)

	for _, o := range overrides {
		o(post)
	}
	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// CreateComment persists a comment on the given post.
func (f *Factory) CreateComment(postID uint) (*models.Comment, error) {
	name := gofakeit.FirstName()
	comment := &models.Comment{
		PostID:        postID,
		AuthorName:    name,
		AuthorInitial: name[:1],
		Content:       gofakeit.Sentence(12),
	}
	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateJourneyEntry persists a timeline item for the given year.
func (f *Factory) CreateJourneyEntry(year int) (*models.JourneyEntry, error) {
	entry := &models.JourneyEntry{
		Year:        year,
		Title:       gofakeit.JobTitle() + " at " + gofakeit.Company(),
		Description: gofakeit.Sentence(15),
	}
	if err := f.db.Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

// CreateSubscriber persists a follower with a unique fake email.
func (f *Factory) CreateSubscriber() (*models.Subscriber, error) {
	sub := &models.Subscriber{
		Name:  gofakeit.Name(),
		Email: gofakeit.Email(),
	}
	if err := f.db.Create(sub).Error; err != nil {
		return nil, err
	}
	return sub, nil
}

// DemoData populates an empty database with a spread of demo content. It is
// a no-op when posts already exist.
func DemoData(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Post{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("demo data already present, skipping seed")
		return nil
	}

	f := NewFactory(db)
	for i := 0; i < 6; i++ {
		post, err := f.CreatePost()
		if err != nil {
			return err
		}
		for j := 0; j < f.rng.Intn(4); j++ {
			if _, err := f.CreateComment(post.ID); err != nil {
				return err
			}
		}
	}
	for year := time.Now().Year() - 5; year <= time.Now().Year(); year++ {
		if _, err := f.CreateJourneyEntry(year); err != nil {
			return err
		}
	}
	for i := 0; i < 8; i++ {
		if _, err := f.CreateSubscriber(); err != nil {
			return err
		}
	}

	log.Println("demo data seeded")
	return nil
}
