package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "taskboard/internal/errors"
	"taskboard/internal/model"
	"taskboard/internal/service"
)

func newUserServer(svc *MockUserService, id uuid.UUID) *echo.Echo {
	e := newTestEcho()
	h := NewUserHandler(svc, discard)
	g := e.Group("/api/user", asUser(id))
	g.GET("/profile", h.GetProfile)
	g.PUT("/profile", h.UpdateProfile)
	return e
}

func TestUserHandler_GetProfile(t *testing.T) {
	id := uuid.New()

	t.Run("found", func(t *testing.T) {
		svc := new(MockUserService)
		svc.On("GetProfile", mock.Anything, id).Return(&model.User{
			ID: id, Name: "A", Email: "a@x.com", PasswordHash: "secret-hash", Photo: "/uploads/1.png",
		}, nil)

		rec := doJSON(newUserServer(svc, id), http.MethodGet, "/api/user/profile", "")

		require.Equal(t, http.StatusOK, rec.Code)
		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "A", body["name"])
		assert.Equal(t, "a@x.com", body["email"])
		assert.NotContains(t, rec.Body.String(), "secret-hash")
	})

	t.Run("missing user", func(t *testing.T) {
		svc := new(MockUserService)
		svc.On("GetProfile", mock.Anything, id).Return(nil, apperrors.ErrUserNotFound)

		rec := doJSON(newUserServer(svc, id), http.MethodGet, "/api/user/profile", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "User not found")
	})
}

func TestUserHandler_UpdateProfile(t *testing.T) {
	id := uuid.New()

	t.Run("name only", func(t *testing.T) {
		svc := new(MockUserService)
		svc.On("UpdateProfile", mock.Anything, id, service.ProfileUpdate{Name: "New"}).
			Return(&model.User{ID: id, Name: "New", Email: "a@x.com"}, nil)

		rec := doJSON(newUserServer(svc, id), http.MethodPut, "/api/user/profile", `{"name":"New"}`)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp ProfileResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "Profile updated", resp.Message)
		assert.Equal(t, "New", resp.User.Name)
		svc.AssertExpectations(t)
	})

	t.Run("photo upload", func(t *testing.T) {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		part, err := mw.CreateFormFile("photo", "Avatar.JPG")
		require.NoError(t, err)
		_, err = part.Write([]byte("jpeg"))
		require.NoError(t, err)
		require.NoError(t, mw.Close())

		svc := new(MockUserService)
		svc.On("UpdateProfile", mock.Anything, id, mock.MatchedBy(func(in service.ProfileUpdate) bool {
			return in.Name == "" && in.Photo != nil && in.Photo.Filename == "Avatar.JPG" && in.Photo.Size == 4
		})).Return(&model.User{ID: id, Name: "A", Photo: "/uploads/2.jpg"}, nil)

		req := httptest.NewRequest(http.MethodPut, "/api/user/profile", &buf)
		req.Header.Set(echo.HeaderContentType, mw.FormDataContentType())
		rec := httptest.NewRecorder()
		newUserServer(svc, id).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "/uploads/2.jpg")
		svc.AssertExpectations(t)
	})
}
