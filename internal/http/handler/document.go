package handler

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"docshare/internal/service"
)

// redirectWithError sends the browser back to the index with a user-facing
// validation message in the error query parameter.
func redirectWithError(c *fiber.Ctx, message string) error {
	return c.Redirect("/?error="+url.QueryEscape(message), fiber.StatusFound)
}

// parseID parses the :id path segment. Non-integer segments behave like an
// unknown document.
func parseID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return 0, fiber.ErrNotFound
	}
	return id, nil
}

// Index renders the document listing, newest first. A validation message set by
// an earlier redirect is displayed inline.
func Index(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		docs, err := docSvc.List(c.UserContext())
		if err != nil {
			return err
		}
		return c.Render("index", fiber.Map{
			"Documents": docs,
			"Error":     c.Query("error"),
		})
	}
}

// UploadDocument handles the multipart upload form. Validation failures
// redirect to the index carrying the message; success redirects to the new
// document's detail page.
func UploadDocument(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		in := service.UploadInput{
			Title:       c.FormValue("title"),
			Description: c.FormValue("description"),
		}

		// A missing file is reported by the service after the title check,
		// preserving the validation order.
		var r io.Reader
		if fh, err := c.FormFile("file"); err == nil && fh != nil {
			f, err := fh.Open()
			if err != nil {
				return redirectWithError(c, service.ErrFileRequired.Message)
			}
			defer f.Close()

			in.OriginalFilename = fh.Filename
			in.Size = fh.Size
			r = f
		}

		doc, err := docSvc.Upload(c.UserContext(), r, in)
		if err != nil {
			var vErr *service.ValidationError
			if errors.As(err, &vErr) {
				return redirectWithError(c, vErr.Message)
			}
			return err
		}

		return c.Redirect(fmt.Sprintf("/documents/%d", doc.ID), fiber.StatusFound)
	}
}

// DocumentDetail renders one document with its comments, newest first.
func DocumentDetail(docSvc service.DocumentService, commentSvc service.CommentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}

		doc, err := docSvc.Get(c.UserContext(), id)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return fiber.ErrNotFound
			}
			return err
		}

		comments, err := commentSvc.ListForDocument(c.UserContext(), id)
		if err != nil {
			return err
		}

		return c.Render("document", fiber.Map{
			"Document": doc,
			"Comments": comments,
		})
	}
}

// DownloadFile streams a stored file back as a forced download. The stored
// filename is the sole addressing mechanism; there is no check that it belongs
// to a known document record.
func DownloadFile(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		name, err := url.PathUnescape(c.Params("stored_filename"))
		if err != nil {
			return fiber.ErrNotFound
		}

		rc, info, err := docSvc.Open(c.UserContext(), name)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return fiber.ErrNotFound
			}
			return err
		}

		c.Set(fiber.HeaderContentType, info.ContentType)
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
		if info.Size > 0 {
			return c.SendStream(rc, int(info.Size))
		}
		return c.SendStream(rc)
	}
}

// ListDocumentsAPI returns the full projection of all documents as a bare JSON
// array, newest first.
func ListDocumentsAPI(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		docs, err := docSvc.ListAll(c.UserContext())
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(docs)
	}
}
