package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"docshelf/internal/http/middleware"
	"docshelf/internal/service"
)

type updateDocumentRequest struct {
	DisplayName string   `json:"display_name"`
	Tags        []string `json:"tags"`
}

type addTagRequest struct {
	Name string `json:"name"`
}

// ListDocuments returns the caller's documents with their tag sets.
func ListDocuments(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		docs, err := docSvc.List(c.UserContext(), middleware.UserID(c))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(docs)
	}
}

// UploadDocument creates a document from a multipart form:
// display_name, file, tags[] (repeatable).
func UploadDocument(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeValidationError(c, service.ValidationErrors{"file": "file is required"})
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		doc, err := docSvc.Upload(c.UserContext(), service.UploadInput{
			OwnerID:          middleware.UserID(c),
			DisplayName:      c.FormValue("display_name"),
			Reader:           f,
			OriginalFilename: fh.Filename,
			ContentType:      ct,
			Size:             fh.Size,
			TagNames:         formTags(c),
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(doc)
	}
}

// GetDocument returns a single document by ID.
func GetDocument(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "id")
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		doc, err := docSvc.Get(c.UserContext(), middleware.UserID(c), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(doc)
	}
}

// DownloadDocument streams the blob content back. The suggested filename is
// the display name with the original upload's extension.
func DownloadDocument(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "id")
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		rc, doc, err := docSvc.Download(c.UserContext(), middleware.UserID(c), id)
		if err != nil {
			return writeServiceError(c, err)
		}

		c.Set(fiber.HeaderContentType, doc.ContentType)
		c.Attachment(doc.DownloadName())
		// fasthttp closes the stream when it implements io.Closer.
		return c.SendStream(rc, int(doc.Size))
	}
}

// UpdateDocument renames a document and attaches the submitted tags.
// Tags not listed stay attached; this endpoint never detaches.
func UpdateDocument(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "id")
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		var req updateDocumentRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		doc, err := docSvc.Update(c.UserContext(), middleware.UserID(c), id, req.DisplayName, req.Tags)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{
			"message":  "Document updated successfully.",
			"document": doc,
		})
	}
}

// DeleteDocument removes the blob and the record (joins cascade).
func DeleteDocument(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "id")
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := docSvc.Delete(c.UserContext(), middleware.UserID(c), id); err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"message": "Document deleted successfully."})
	}
}

// ListDocumentTags returns the tag set of one document.
func ListDocumentTags(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "id")
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		tags, err := docSvc.ListTags(c.UserContext(), middleware.UserID(c), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(tags)
	}
}

// AddDocumentTag resolves-or-creates the named tag and attaches it (idempotent).
func AddDocumentTag(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "id")
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		var req addTagRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		if _, err := docSvc.AddTag(c.UserContext(), middleware.UserID(c), id, req.Name); err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"message": "Tag added successfully."})
	}
}

// RemoveDocumentTag detaches a tag from a document (idempotent).
func RemoveDocumentTag(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		docID, ok := paramID(c, "document_id")
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		tagID, ok := paramID(c, "tag_id")
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		if err := docSvc.RemoveTag(c.UserContext(), middleware.UserID(c), docID, tagID); err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"message": "Tag removed successfully."})
	}
}

// paramID reads a UUID path parameter.
func paramID(c *fiber.Ctx, name string) (string, bool) {
	id := c.Params(name)
	if _, err := uuid.Parse(id); err != nil {
		return "", false
	}
	return id, true
}

// formTags collects tag names from the multipart form; both "tags[]" and
// "tags" spellings are accepted.
func formTags(c *fiber.Ctx) []string {
	form, err := c.MultipartForm()
	if err != nil {
		return nil
	}
	if vals, ok := form.Value["tags[]"]; ok {
		return vals
	}
	return form.Value["tags"]
}
