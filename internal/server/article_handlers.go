package server

import (
	"github.com/gofiber/fiber/v2"

	"stuntcare/internal/models"
	"stuntcare/internal/service"
)

// ListArticles handles GET /articles.
func (s *Server) ListArticles(c *fiber.Ctx) error {
	articles, err := s.articleService.List(c.Context())
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "Articles retrieved", articles)
}

// GetArticle handles GET /articles/:id.
func (s *Server) GetArticle(c *fiber.Ctx) error {
	article, err := s.articleService.Get(c.Context(), c.Params("id"))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "Article retrieved", article)
}

// CreateArticle handles POST /articles (multipart, image optional).
func (s *Server) CreateArticle(c *fiber.Ctx) error {
	author, err := s.currentParent(c)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	image, err := formImage(c)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	ctx, cancel := s.requestContext(c)
	defer cancel()
	article, err := s.articleService.Create(ctx, service.CreateArticleInput{
		AuthorID:    author.ID,
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Image:       image,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusCreated, "Article created", article)
}

// UpdateArticle handles PUT /articles/:id.
func (s *Server) UpdateArticle(c *fiber.Ctx) error {
	author, err := s.currentParent(c)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	image, err := formImage(c)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	ctx, cancel := s.requestContext(c)
	defer cancel()
	article, err := s.articleService.Update(ctx, service.UpdateArticleInput{
		ArticleID:   c.Params("id"),
		AuthorID:    author.ID,
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Image:       image,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "Article updated", article)
}

// DeleteArticle handles DELETE /articles/:id.
func (s *Server) DeleteArticle(c *fiber.Ctx) error {
	author, err := s.currentParent(c)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	ctx, cancel := s.requestContext(c)
	defer cancel()
	if err := s.articleService.Delete(ctx, c.Params("id"), author.ID); err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "Article deleted", nil)
}

// LikeArticle handles POST /articles/:id/like.
func (s *Server) LikeArticle(c *fiber.Ctx) error {
	article, err := s.articleService.Like(c.Context(), c.Params("id"))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "Article liked", article)
}
