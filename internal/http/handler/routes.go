package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"docshelf/internal/http/middleware"
	"docshelf/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers stay thin; the services carry the business rules.
func RegisterRoutes(app *fiber.App, db *sql.DB, jwtSecret string,
	docSvc service.DocumentService, tagSvc service.TagService, userSvc service.UserService) {

	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	app.Post("/auth/register", Register(userSvc))
	app.Post("/auth/login", Login(userSvc))

	authed := app.Group("", middleware.Auth(jwtSecret))

	authed.Get("/user", CurrentUser(userSvc))

	// Literal segments (download/, update/, delete/) are registered before
	// /documents/:id so they are not swallowed by the parameter route.
	authed.Get("/documents", ListDocuments(docSvc))
	authed.Post("/documents", UploadDocument(docSvc))
	authed.Get("/documents/download/:id", DownloadDocument(docSvc))
	authed.Put("/documents/update/:id", UpdateDocument(docSvc))
	authed.Delete("/documents/delete/:id", DeleteDocument(docSvc))
	authed.Get("/documents/:id", GetDocument(docSvc))
	authed.Get("/documents/:id/tags", ListDocumentTags(docSvc))
	authed.Post("/documents/:id/tags", AddDocumentTag(docSvc))
	authed.Delete("/documents/:document_id/tags/:tag_id", RemoveDocumentTag(docSvc))

	authed.Get("/tags", ListTags(tagSvc))
	authed.Post("/tags", CreateTag(tagSvc))
	authed.Delete("/tags/:id", DeleteTag(tagSvc))
}
