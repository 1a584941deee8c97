package handler

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"docshare/internal/service"
)

// AddComment attaches a comment to a document and redirects back to the detail
// page. Empty content is a silent no-op redirect with no error message shown,
// unlike the upload form.
func AddComment(commentSvc service.CommentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}
		detailURL := fmt.Sprintf("/documents/%d", id)

		_, err = commentSvc.Add(c.UserContext(), id, c.FormValue("content"))
		if err != nil {
			if errors.Is(err, service.ErrEmptyContent) {
				return c.Redirect(detailURL, fiber.StatusFound)
			}
			if errors.Is(err, service.ErrNotFound) {
				return fiber.ErrNotFound
			}
			return err
		}

		return c.Redirect(detailURL, fiber.StatusFound)
	}
}

// ListCommentsAPI returns a document's comments as a bare JSON array, newest
// first. An unknown document yields an empty array, not a 404.
func ListCommentsAPI(commentSvc service.CommentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}

		comments, err := commentSvc.ListForDocument(c.UserContext(), id)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(comments)
	}
}
