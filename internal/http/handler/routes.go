package handler

import (
	"context"
	"database/sql"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"

	"docshare/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers stay free of business logic; everything flows through the services.
func RegisterRoutes(app *fiber.App, db *sql.DB, docSvc service.DocumentService, commentSvc service.CommentService, staticDir string) {
	// HTML surface
	app.Get("/", Index(docSvc))
	app.Post("/upload", UploadDocument(docSvc))
	app.Get("/documents/:id", DocumentDetail(docSvc, commentSvc))
	app.Post("/documents/:id/comments", AddComment(commentSvc))
	app.Get("/files/:stored_filename", DownloadFile(docSvc))

	// JSON API
	app.Get("/api/documents", ListDocumentsAPI(docSvc))
	app.Get("/api/documents/:id/comments", ListCommentsAPI(commentSvc))

	// Static assets served at fixed paths, as the pages reference them
	app.Get("/styles.css", StaticFile(filepath.Join(staticDir, "styles.css")))
	app.Get("/app.js", StaticFile(filepath.Join(staticDir, "app.js")))

	// Health endpoint: checks DB connectivity only
	app.Get("/health", HealthCheck(db))

	// Simple liveness probe
	app.Get("/healthz", LivenessProbe())
}

// HealthCheck pings the database with a short timeout.
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe always reports OK while the process is up.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// StaticFile serves a single file from disk.
func StaticFile(path string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendFile(path)
	}
}
