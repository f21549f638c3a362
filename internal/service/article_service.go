package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"stuntcare/internal/cache"
	"stuntcare/internal/models"
	"stuntcare/internal/repository"
	"stuntcare/internal/storage"
)

// ArticleService implements editorial content management.
type ArticleService struct {
	articles repository.ArticleRepository
	parents  repository.ParentRepository
	media    *MediaWorkflow
	cache    *cache.Cache
}

// NewArticleService creates an ArticleService.
func NewArticleService(articles repository.ArticleRepository, parents repository.ParentRepository, media *MediaWorkflow, c *cache.Cache) *ArticleService {
	return &ArticleService{articles: articles, parents: parents, media: media, cache: c}
}

// List returns all articles, cache-aside.
func (s *ArticleService) List(ctx context.Context) ([]models.Article, error) {
	var articles []models.Article
	err := s.cache.Aside(ctx, cache.ArticleListKey, &articles, cache.ArticleTTL, func() error {
		var err error
		articles, err = s.articles.List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return articles, nil
}

// Get returns one article, cache-aside.
func (s *ArticleService) Get(ctx context.Context, id string) (*models.Article, error) {
	var article models.Article
	err := s.cache.Aside(ctx, cache.ArticleKey(id), &article, cache.ArticleTTL, func() error {
		found, err := s.articles.GetByID(ctx, id)
		if err != nil {
			return err
		}
		article = *found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &article, nil
}

// CreateArticleInput carries the article form; the author is resolved from
// the authenticated parent.
type CreateArticleInput struct {
	AuthorID    string
	Title       string
	Description string
	Image       *ImageUpload
}

// Create stores an article with the author name snapshotted at write time.
func (s *ArticleService) Create(ctx context.Context, in CreateArticleInput) (*models.Article, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if strings.TrimSpace(in.Description) == "" {
		return nil, models.NewValidationError("Description is required")
	}
	author, err := s.parents.GetByID(ctx, in.AuthorID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	article := &models.Article{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		AuthorID:    author.ID,
		AuthorName:  author.Name,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err = s.media.CreateWithMedia(ctx, string(storage.KindArticle), author.ID, article.ID, in.Image, s.media.DefaultImageURL(),
		func(ctx context.Context, imageURL string) error {
			article.ImageURL = imageURL
			return s.articles.Create(ctx, article)
		})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, cache.ArticleListKey)
	return article, nil
}

// UpdateArticleInput carries the editable article fields; empty strings leave
// the stored value untouched.
type UpdateArticleInput struct {
	ArticleID   string
	AuthorID    string
	Title       string
	Description string
	Image       *ImageUpload
}

// Update applies a partial update; only the author may edit.
func (s *ArticleService) Update(ctx context.Context, in UpdateArticleInput) (*models.Article, error) {
	article, err := s.articles.GetByID(ctx, in.ArticleID)
	if err != nil {
		return nil, err
	}
	if article.AuthorID != in.AuthorID {
		return nil, models.NewUnauthorizedError("Only the author can edit this article")
	}

	fields := map[string]any{"updated_at": time.Now().UTC()}
	setIfPresent(fields, "title", in.Title)
	setIfPresent(fields, "description", in.Description)

	priorURL := article.ImageURL
	if s.media.IsDefaultImage(priorURL) {
		priorURL = ""
	}
	imageURL, err := s.media.UpdateWithMedia(ctx, string(storage.KindArticle), in.AuthorID, in.ArticleID, priorURL, in.Image,
		func(ctx context.Context, newURL string) error {
			if newURL != "" {
				fields["image_url"] = newURL
			}
			return s.articles.Update(ctx, in.ArticleID, fields)
		})
	if err != nil {
		return nil, err
	}

	if in.Title != "" {
		article.Title = in.Title
	}
	if in.Description != "" {
		article.Description = in.Description
	}
	if imageURL != "" {
		article.ImageURL = imageURL
	}
	article.UpdatedAt = time.Now().UTC()

	s.cache.InvalidateArticle(ctx, in.ArticleID)
	return article, nil
}

// Delete removes an article and its owned image blob; only the author may
// delete.
func (s *ArticleService) Delete(ctx context.Context, articleID, authorID string) error {
	article, err := s.articles.GetByID(ctx, articleID)
	if err != nil {
		return err
	}
	if article.AuthorID != authorID {
		return models.NewUnauthorizedError("Only the author can delete this article")
	}
	if err := s.articles.Delete(ctx, articleID); err != nil {
		return err
	}
	s.media.CleanupBlob(ctx, article.ImageURL)
	s.cache.InvalidateArticle(ctx, articleID)
	return nil
}

// Like increments the like counter.
func (s *ArticleService) Like(ctx context.Context, articleID string) (*models.Article, error) {
	article, err := s.articles.GetByID(ctx, articleID)
	if err != nil {
		return nil, err
	}
	article.Likes++
	fields := map[string]any{
		"likes":      article.Likes,
		"updated_at": time.Now().UTC(),
	}
	if err := s.articles.Update(ctx, articleID, fields); err != nil {
		return nil, err
	}
	s.cache.InvalidateArticle(ctx, articleID)
	return article, nil
}
