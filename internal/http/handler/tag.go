package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"docshelf/internal/service"
)

type createTagRequest struct {
	Name string `json:"name"`
}

// ListTags returns the global tag vocabulary.
func ListTags(tagSvc service.TagService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tags, err := tagSvc.List(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(tags)
	}
}

// CreateTag creates (or resolves) a tag by name.
func CreateTag(tagSvc service.TagService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req createTagRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		tag, err := tagSvc.Create(c.UserContext(), req.Name)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(tag)
	}
}

// DeleteTag removes a tag from the vocabulary and from every document.
func DeleteTag(tagSvc service.TagService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "id")
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := tagSvc.Delete(c.UserContext(), id); err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "tag not found")
			}
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"message": "Tag deleted successfully."})
	}
}
