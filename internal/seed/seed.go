// Package seed provides helpers to create demo data for development and
// testing.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"

	"stuntcare/internal/models"
	"stuntcare/internal/storage"
)

// Options configuration for the seeder.
type Options struct {
	NumDoctors  int
	NumArticles int
}

var specialists = []string{
	"Dokter Anak", "Ahli Gizi", "Dokter Tumbuh Kembang",
	"Dokter Umum", "Bidan",
}

// Factory builds domain entities and persists them to the entity store.
type Factory struct {
	store storage.EntityStore
}

// NewFactory creates a Factory bound to the provided store.
func NewFactory(store storage.EntityStore) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{store: store}
}

// CreateDoctor persists one generated doctor.
func (f *Factory) CreateDoctor(ctx context.Context, overrides ...func(*models.Doctor)) (*models.Doctor, error) {
	doctor := &models.Doctor{
		ID:         uuid.NewString(),
		Name:       fmt.Sprintf("Dr. %s %s", gofakeit.FirstName(), gofakeit.LastName()),
		Specialist: specialists[gofakeit.Number(0, len(specialists)-1)],
		Hospital:   fmt.Sprintf("RS %s", gofakeit.City()),
		ImageURL:   fmt.Sprintf("https://picsum.photos/seed/%s/400/400", gofakeit.UUID()),
	}
	for _, override := range overrides {
		override(doctor)
	}
	if err := f.store.Put(ctx, storage.KindDoctor, doctor.ID, doctor); err != nil {
		return nil, err
	}
	return doctor, nil
}

// CreateArticle persists one generated article.
func (f *Factory) CreateArticle(ctx context.Context, overrides ...func(*models.Article)) (*models.Article, error) {
	created := time.Now().UTC().Add(-time.Duration(gofakeit.Number(0, 90*24)) * time.Hour)
	article := &models.Article{
		ID:          uuid.NewString(),
		Title:       gofakeit.Sentence(6),
		Description: gofakeit.Paragraph(2, 4, 8, "\n"),
		AuthorID:    uuid.NewString(),
		AuthorName:  gofakeit.Name(),
		Likes:       gofakeit.Number(0, 250),
		ImageURL:    fmt.Sprintf("https://picsum.photos/seed/%s/800/600", gofakeit.UUID()),
		CreatedAt:   created,
		UpdatedAt:   created,
	}
	for _, override := range overrides {
		override(article)
	}
	if err := f.store.Put(ctx, storage.KindArticle, article.ID, article); err != nil {
		return nil, err
	}
	return article, nil
}

// Run seeds the doctor directory and a batch of articles.
func Run(ctx context.Context, store storage.EntityStore, opts Options) error {
	if opts.NumDoctors <= 0 {
		opts.NumDoctors = 20
	}
	if opts.NumArticles < 0 {
		opts.NumArticles = 0
	}

	factory := NewFactory(store)
	for i := 0; i < opts.NumDoctors; i++ {
		if _, err := factory.CreateDoctor(ctx); err != nil {
			return fmt.Errorf("seed doctor: %w", err)
		}
	}
	for i := 0; i < opts.NumArticles; i++ {
		if _, err := factory.CreateArticle(ctx); err != nil {
			return fmt.Errorf("seed article: %w", err)
		}
	}
	return nil
}
