package repository

import (
	"context"
	"errors"

	"stuntcare/internal/models"
	"stuntcare/internal/observability"
	"stuntcare/internal/storage"
)

// ArticleRepository defines persistence operations for articles.
type ArticleRepository interface {
	List(ctx context.Context) ([]models.Article, error)
	GetByID(ctx context.Context, id string) (*models.Article, error)
	Create(ctx context.Context, article *models.Article) error
	Update(ctx context.Context, id string, fields map[string]any) error
	Delete(ctx context.Context, id string) error
}

type articleRepository struct {
	store storage.EntityStore
	log   *observability.StoreLogger
}

// NewArticleRepository returns a new ArticleRepository implementation.
func NewArticleRepository(store storage.EntityStore) ArticleRepository {
	return &articleRepository{
		store: store,
		log:   observability.NewStoreLogger(string(storage.KindArticle)),
	}
}

func (r *articleRepository) List(ctx context.Context) ([]models.Article, error) {
	var articles []models.Article
	if err := r.store.List(ctx, storage.KindArticle, &articles); err != nil {
		r.log.LogError(ctx, err, "list")
		return nil, models.NewUpstreamError("Failed to list articles", err)
	}
	return articles, nil
}

func (r *articleRepository) GetByID(ctx context.Context, id string) (*models.Article, error) {
	var article models.Article
	if err := r.store.Get(ctx, storage.KindArticle, id, &article); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, models.NewNotFoundError("Article not found")
		}
		r.log.LogError(ctx, err, "get")
		return nil, models.NewUpstreamError("Failed to load article", err)
	}
	return &article, nil
}

func (r *articleRepository) Create(ctx context.Context, article *models.Article) error {
	if err := r.store.Put(ctx, storage.KindArticle, article.ID, article); err != nil {
		r.log.LogError(ctx, err, "create")
		return models.NewUpstreamError("Failed to store article", err)
	}
	r.log.LogWrite(ctx, "create", article.ID)
	return nil
}

func (r *articleRepository) Update(ctx context.Context, id string, fields map[string]any) error {
	if err := r.store.Update(ctx, storage.KindArticle, id, fields); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.NewNotFoundError("Article not found")
		}
		r.log.LogError(ctx, err, "update")
		return models.NewUpstreamError("Failed to update article", err)
	}
	r.log.LogWrite(ctx, "update", id)
	return nil
}

func (r *articleRepository) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, storage.KindArticle, id); err != nil {
		r.log.LogError(ctx, err, "delete")
		return models.NewUpstreamError("Failed to delete article", err)
	}
	r.log.LogDelete(ctx, id)
	return nil
}
