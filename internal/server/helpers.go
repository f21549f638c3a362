package server

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"time"

	"github.com/gofiber/fiber/v2"

	"stuntcare/internal/models"
	"stuntcare/internal/service"
)

// maxImageBytes caps a single multipart image upload.
const maxImageBytes = 5 * 1024 * 1024

// requestContext bounds the work done for a single request, so a stuck upload
// or batched delete cannot hold the connection open indefinitely.
func (s *Server) requestContext(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	timeout := time.Duration(s.config.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return context.WithTimeout(c.Context(), timeout)
}

// fiberErrorHandler renders unhandled fiber errors in the standard envelope.
func fiberErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(models.Response{
			Error:   true,
			Message: fe.Message,
		})
	}
	return models.RespondWithError(c, models.NewInternalError(err))
}

// formImage extracts the optional multipart "image" field. A missing field
// yields (nil, nil); anything else wrong with the upload is a validation
// error.
func formImage(c *fiber.Ctx) (*service.ImageUpload, error) {
	fh, err := c.FormFile("image")
	if err != nil {
		// fasthttp has no sentinel for a missing field; any FormFile error
		// on an optional field means "no image".
		return nil, nil
	}
	if fh.Size > maxImageBytes {
		return nil, models.NewValidationError("Image exceeds the 5MB limit")
	}
	content, contentType, err := readUpload(fh)
	if err != nil {
		return nil, models.NewValidationError("Could not read uploaded image")
	}
	return &service.ImageUpload{Content: content, ContentType: contentType}, nil
}

func readUpload(fh *multipart.FileHeader) ([]byte, string, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, "", err
	}
	defer f.Close()
	content, err := io.ReadAll(f)
	if err != nil {
		return nil, "", err
	}
	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return content, contentType, nil
}

// currentParent resolves the authenticated subject to its parent account.
func (s *Server) currentParent(c *fiber.Ctx) (*models.Parent, error) {
	uid, _ := c.Locals("uid").(string)
	parent, err := s.parentService.GetByAuthUID(c.Context(), uid)
	if err != nil {
		return nil, models.NewUnauthorizedError("Session does not resolve to an account")
	}
	return parent, nil
}

// requireOwnParent ensures the authenticated subject owns the :userId path
// parameter. Returns the parent id, or writes the error response and returns
// false.
func (s *Server) requireOwnParent(c *fiber.Ctx) (string, bool) {
	parentID := c.Params("userId")
	parent, err := s.currentParent(c)
	if err != nil {
		_ = models.RespondWithError(c, err)
		return "", false
	}
	if parent.ID != parentID {
		_ = models.RespondWithError(c, models.NewUnauthorizedError("Not allowed to access this account"))
		return "", false
	}
	return parentID, true
}
