package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"docshelf/internal/http/middleware"
	"docshelf/internal/model"
	"docshelf/internal/service"
	serviceMocks "docshelf/internal/service/mocks"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// asUser stands in for the auth middleware in handler tests.
func asUser(id string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(middleware.UserIDLocalKey, id)
		return c.Next()
	}
}

func TestHealthCheck(t *testing.T) {
	db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	app := fiber.New()
	app.Get("/health", HealthCheck(db))

	t.Run("healthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(nil)

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "healthy", body["status"])
	})

	t.Run("unhealthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(errors.New("db error"))

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "SERVICE_UNAVAILABLE", body.Error.Code)
	})
}

func TestLivenessProbe(t *testing.T) {
	app := fiber.New()
	app.Get("/healthz", LivenessProbe())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRegister(t *testing.T) {
	mockSvc := new(serviceMocks.MockUserService)
	app := fiber.New()
	app.Post("/auth/register", Register(mockSvc))

	t.Run("success", func(t *testing.T) {
		user := &model.User{ID: uuid.New().String(), Name: "Alice", Email: "alice@example.com"}
		mockSvc.On("Register", mock.Anything, "Alice", "alice@example.com", "secret-pass").
			Return(user, "signed-token", nil).Once()

		body := `{"name":"Alice","email":"alice@example.com","password":"secret-pass"}`
		req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var result struct {
			User  model.User `json:"user"`
			Token string     `json:"token"`
		}
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, user.ID, result.User.ID)
		assert.Equal(t, "signed-token", result.Token)
		mockSvc.AssertExpectations(t)
	})

	t.Run("email taken", func(t *testing.T) {
		mockSvc.On("Register", mock.Anything, "Bob", "alice@example.com", "secret-pass").
			Return(nil, "", service.ErrEmailTaken).Once()

		body := `{"name":"Bob","email":"alice@example.com","password":"secret-pass"}`
		req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "EMAIL_TAKEN", res.Error.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("validation error", func(t *testing.T) {
		mockSvc.On("Register", mock.Anything, "", "", "").
			Return(nil, "", service.ValidationErrors{"email": "email is required"}).Once()

		req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "VALIDATION_ERROR", res.Error.Code)
		assert.Equal(t, "email is required", res.Error.Fields["email"])
		mockSvc.AssertExpectations(t)
	})
}

func TestLogin(t *testing.T) {
	mockSvc := new(serviceMocks.MockUserService)
	app := fiber.New()
	app.Post("/auth/login", Login(mockSvc))

	t.Run("success", func(t *testing.T) {
		mockSvc.On("Login", mock.Anything, "alice@example.com", "secret-pass").
			Return("signed-token", nil).Once()

		body := `{"email":"alice@example.com","password":"secret-pass"}`
		req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result map[string]string
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, "signed-token", result["token"])
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid credentials", func(t *testing.T) {
		mockSvc.On("Login", mock.Anything, "alice@example.com", "wrong").
			Return("", service.ErrInvalidCredentials).Once()

		body := `{"email":"alice@example.com","password":"wrong"}`
		req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "INVALID_CREDENTIALS", res.Error.Code)
		mockSvc.AssertExpectations(t)
	})
}

func TestCurrentUser(t *testing.T) {
	mockSvc := new(serviceMocks.MockUserService)
	app := fiber.New()
	app.Get("/user", asUser("user-1"), CurrentUser(mockSvc))

	user := &model.User{ID: "user-1", Name: "Alice", Email: "alice@example.com"}
	mockSvc.On("Get", mock.Anything, "user-1").Return(user, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/user", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result model.User
	json.NewDecoder(resp.Body).Decode(&result)
	assert.Equal(t, "alice@example.com", result.Email)
	mockSvc.AssertExpectations(t)
}

func TestListDocuments(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	app.Get("/documents", asUser("owner-1"), ListDocuments(mockSvc))

	t.Run("success", func(t *testing.T) {
		docs := []model.Document{{ID: uuid.New().String(), DisplayName: "Invoice", Tags: []model.Tag{{Name: "finance"}}}}
		mockSvc.On("List", mock.Anything, "owner-1").Return(docs, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/documents", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result []model.Document
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Len(t, result, 1)
		assert.Equal(t, "finance", result[0].Tags[0].Name)
		mockSvc.AssertExpectations(t)
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc.On("List", mock.Anything, "owner-1").Return(nil, errors.New("service error")).Once()

		req := httptest.NewRequest(http.MethodGet, "/documents", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func uploadForm(t *testing.T, displayName string, tags ...string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	writer.WriteField("display_name", displayName)
	for _, tag := range tags {
		writer.WriteField("tags[]", tag)
	}
	part, err := writer.CreateFormFile("file", "scan.pdf")
	require.NoError(t, err)
	part.Write([]byte("%PDF-1.4 hello"))
	writer.Close()
	return body, writer.FormDataContentType()
}

func TestUploadDocument(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	app.Post("/documents", asUser("owner-1"), UploadDocument(mockSvc))

	t.Run("success", func(t *testing.T) {
		expectedDoc := &model.Document{ID: uuid.New().String(), DisplayName: "Invoice"}
		mockSvc.On("Upload", mock.Anything, mock.MatchedBy(func(in service.UploadInput) bool {
			return in.OwnerID == "owner-1" &&
				in.DisplayName == "Invoice" &&
				in.OriginalFilename == "scan.pdf" &&
				len(in.TagNames) == 2
		})).Return(expectedDoc, nil).Once()

		body, contentType := uploadForm(t, "Invoice", "finance", "2024")
		req := httptest.NewRequest(http.MethodPost, "/documents", body)
		req.Header.Set("Content-Type", contentType)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var result model.Document
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, expectedDoc.ID, result.ID)
		mockSvc.AssertExpectations(t)
	})

	t.Run("no file", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/documents", nil)
		// Missing content-type and body
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "VALIDATION_ERROR", res.Error.Code)
		assert.Contains(t, res.Error.Fields, "file")
	})

	t.Run("validation error from service", func(t *testing.T) {
		mockSvc.On("Upload", mock.Anything, mock.Anything).
			Return(nil, service.ValidationErrors{"display_name": "display_name is required"}).Once()

		body, contentType := uploadForm(t, "")
		req := httptest.NewRequest(http.MethodPost, "/documents", body)
		req.Header.Set("Content-Type", contentType)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "VALIDATION_ERROR", res.Error.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc.On("Upload", mock.Anything, mock.Anything).
			Return(nil, errors.New("upload failed")).Once()

		body, contentType := uploadForm(t, "Invoice")
		req := httptest.NewRequest(http.MethodPost, "/documents", body)
		req.Header.Set("Content-Type", contentType)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestGetDocument(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	app.Get("/documents/:id", asUser("owner-1"), GetDocument(mockSvc))

	t.Run("success", func(t *testing.T) {
		id := uuid.New().String()
		expectedDoc := &model.Document{ID: id, DisplayName: "Invoice"}
		mockSvc.On("Get", mock.Anything, "owner-1", id).Return(expectedDoc, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/documents/"+id, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result model.Document
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, id, result.ID)
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Get", mock.Anything, "owner-1", id).Return(nil, service.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodGet, "/documents/"+id, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "NOT_FOUND", res.Error.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/documents/invalid-uuid", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "INVALID_ID", res.Error.Code)
	})
}

func TestDownloadDocument(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	app.Get("/documents/download/:id", asUser("owner-1"), DownloadDocument(mockSvc))

	t.Run("success", func(t *testing.T) {
		id := uuid.New().String()
		content := "%PDF-1.4 hello"
		doc := &model.Document{
			ID:          id,
			DisplayName: "Invoice",
			StoredName:  "scan.pdf",
			Size:        int64(len(content)),
			ContentType: "application/pdf",
		}
		mockSvc.On("Download", mock.Anything, "owner-1", id).
			Return(io.NopCloser(strings.NewReader(content)), doc, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/documents/download/"+id, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
		assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "Invoice.pdf")

		body, _ := io.ReadAll(resp.Body)
		assert.Equal(t, content, string(body))
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Download", mock.Anything, "owner-1", id).
			Return(nil, nil, service.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodGet, "/documents/download/"+id, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestUpdateDocument(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	app.Put("/documents/update/:id", asUser("owner-1"), UpdateDocument(mockSvc))

	t.Run("success", func(t *testing.T) {
		id := uuid.New().String()
		updated := &model.Document{ID: id, DisplayName: "Invoice (final)"}
		mockSvc.On("Update", mock.Anything, "owner-1", id, "Invoice (final)", []string{"archived"}).
			Return(updated, nil).Once()

		body := `{"display_name":"Invoice (final)","tags":["archived"]}`
		req := httptest.NewRequest(http.MethodPut, "/documents/update/"+id, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result struct {
			Message  string         `json:"message"`
			Document model.Document `json:"document"`
		}
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, "Document updated successfully.", result.Message)
		assert.Equal(t, "Invoice (final)", result.Document.DisplayName)
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Update", mock.Anything, "owner-1", id, "New name", mock.Anything).
			Return(nil, service.ErrNotFound).Once()

		body := `{"display_name":"New name"}`
		req := httptest.NewRequest(http.MethodPut, "/documents/update/"+id, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/documents/update/not-a-uuid", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "INVALID_ID", res.Error.Code)
	})
}

func TestDeleteDocument(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	app.Delete("/documents/delete/:id", asUser("owner-1"), DeleteDocument(mockSvc))

	t.Run("success", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Delete", mock.Anything, "owner-1", id).Return(nil).Once()

		req := httptest.NewRequest(http.MethodDelete, "/documents/delete/"+id, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result map[string]string
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, "Document deleted successfully.", result["message"])
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Delete", mock.Anything, "owner-1", id).Return(service.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodDelete, "/documents/delete/"+id, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "NOT_FOUND", res.Error.Code)
		mockSvc.AssertExpectations(t)
	})
}

func TestDocumentTagEndpoints(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	app.Get("/documents/:id/tags", asUser("owner-1"), ListDocumentTags(mockSvc))
	app.Post("/documents/:id/tags", asUser("owner-1"), AddDocumentTag(mockSvc))
	app.Delete("/documents/:document_id/tags/:tag_id", asUser("owner-1"), RemoveDocumentTag(mockSvc))

	t.Run("list tags", func(t *testing.T) {
		id := uuid.New().String()
		tags := []model.Tag{{ID: uuid.New().String(), Name: "finance"}}
		mockSvc.On("ListTags", mock.Anything, "owner-1", id).Return(tags, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/documents/"+id+"/tags", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result []model.Tag
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Len(t, result, 1)
		mockSvc.AssertExpectations(t)
	})

	t.Run("add tag", func(t *testing.T) {
		id := uuid.New().String()
		tag := &model.Tag{ID: uuid.New().String(), Name: "finance"}
		mockSvc.On("AddTag", mock.Anything, "owner-1", id, "finance").Return(tag, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/documents/"+id+"/tags", strings.NewReader(`{"name":"finance"}`))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result map[string]string
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, "Tag added successfully.", result["message"])
		mockSvc.AssertExpectations(t)
	})

	t.Run("add tag to missing document", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("AddTag", mock.Anything, "owner-1", id, "finance").
			Return(nil, service.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodPost, "/documents/"+id+"/tags", strings.NewReader(`{"name":"finance"}`))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("remove tag", func(t *testing.T) {
		docID := uuid.New().String()
		tagID := uuid.New().String()
		mockSvc.On("RemoveTag", mock.Anything, "owner-1", docID, tagID).Return(nil).Once()

		req := httptest.NewRequest(http.MethodDelete, "/documents/"+docID+"/tags/"+tagID, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result map[string]string
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, "Tag removed successfully.", result["message"])
		mockSvc.AssertExpectations(t)
	})
}

func TestTagEndpoints(t *testing.T) {
	mockSvc := new(serviceMocks.MockTagService)
	app := fiber.New()
	app.Get("/tags", asUser("owner-1"), ListTags(mockSvc))
	app.Post("/tags", asUser("owner-1"), CreateTag(mockSvc))
	app.Delete("/tags/:id", asUser("owner-1"), DeleteTag(mockSvc))

	t.Run("list", func(t *testing.T) {
		tags := []model.Tag{{ID: uuid.New().String(), Name: "2024"}, {ID: uuid.New().String(), Name: "finance"}}
		mockSvc.On("List", mock.Anything).Return(tags, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/tags", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result []model.Tag
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Len(t, result, 2)
		mockSvc.AssertExpectations(t)
	})

	t.Run("create", func(t *testing.T) {
		tag := &model.Tag{ID: uuid.New().String(), Name: "finance"}
		mockSvc.On("Create", mock.Anything, "finance").Return(tag, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/tags", strings.NewReader(`{"name":"finance"}`))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var result model.Tag
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, tag.ID, result.ID)
		mockSvc.AssertExpectations(t)
	})

	t.Run("delete", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Delete", mock.Anything, id).Return(nil).Once()

		req := httptest.NewRequest(http.MethodDelete, "/tags/"+id, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result map[string]string
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, "Tag deleted successfully.", result["message"])
		mockSvc.AssertExpectations(t)
	})

	t.Run("delete absent", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Delete", mock.Anything, id).Return(service.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodDelete, "/tags/"+id, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "NOT_FOUND", res.Error.Code)
		mockSvc.AssertExpectations(t)
	})
}

func TestRouting(t *testing.T) {
	app := fiber.New(fiber.Config{
		ErrorHandler: ErrorHandler(),
	})

	docSvc := new(serviceMocks.MockDocumentService)
	tagSvc := new(serviceMocks.MockTagService)
	userSvc := new(serviceMocks.MockUserService)
	RegisterRoutes(app, nil, "test-secret", docSvc, tagSvc, userSvc)

	t.Run("not found route", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/non-existent", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "NOT_FOUND", res.Error.Code)
	})

	t.Run("method not allowed", func(t *testing.T) {
		// Health endpoint only allows GET
		req := httptest.NewRequest(http.MethodPost, "/health", nil)
		resp, _ := app.Test(req)

		// Fiber returns 405 by default if route exists but method doesn't match
		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "METHOD_NOT_ALLOWED", res.Error.Code)
	})

	t.Run("documents require auth", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/documents", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "UNAUTHORIZED", res.Error.Code)
	})
}
