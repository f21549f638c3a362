package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	ArticleKeyPrefix = "article:%s"
	ArticleListKey   = "articles:all"
	DoctorKeyPrefix  = "doctor:%s"
	DoctorListKey    = "doctors:all"
)

const (
	ArticleTTL = 10 * time.Minute
	DoctorTTL  = 30 * time.Minute
)

func ArticleKey(id string) string {
	return fmt.Sprintf(ArticleKeyPrefix, id)
}

func DoctorKey(id string) string {
	return fmt.Sprintf(DoctorKeyPrefix, id)
}

// InvalidateArticle drops both the single-article entry and the listing.
func (c *Cache) InvalidateArticle(ctx context.Context, id string) {
	c.Invalidate(ctx, ArticleKey(id))
	c.Invalidate(ctx, ArticleListKey)
}
