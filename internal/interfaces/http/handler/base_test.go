package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resto/backend/internal/domain/shared"
	"github.com/resto/backend/internal/interfaces/http/dto"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestContext builds a gin context with an attached GET request
func newTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/", nil)
	return c, w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestGetRequestID(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*gin.Context)
		want  string
	}{
		{
			name:  "from context",
			setup: func(c *gin.Context) { c.Set(RequestIDKey, "ctx-request-id") },
			want:  "ctx-request-id",
		},
		{
			name:  "falls back to header",
			setup: func(c *gin.Context) { c.Request.Header.Set("X-Request-ID", "header-request-id") },
			want:  "header-request-id",
		},
		{
			name: "context wins over header",
			setup: func(c *gin.Context) {
				c.Set(RequestIDKey, "ctx-id")
				c.Request.Header.Set("X-Request-ID", "header-id")
			},
			want: "ctx-id",
		},
		{
			name:  "empty when absent",
			setup: func(c *gin.Context) {},
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestContext()
			tt.setup(c)
			assert.Equal(t, tt.want, getRequestID(c))
		})
	}
}

func TestGetUserID(t *testing.T) {
	t.Run("returns the authenticated user", func(t *testing.T) {
		c, _ := newTestContext()
		userID := uuid.New()
		c.Set("jwt_user_id", userID.String())

		got, err := getUserID(c)
		require.NoError(t, err)
		assert.Equal(t, userID, got)
	})

	t.Run("errors when unauthenticated", func(t *testing.T) {
		c, _ := newTestContext()
		_, err := getUserID(c)
		assert.Error(t, err)
	})

	t.Run("errors on malformed ID", func(t *testing.T) {
		c, _ := newTestContext()
		c.Set("jwt_user_id", "not-a-uuid")
		_, err := getUserID(c)
		assert.Error(t, err)
	})
}

func TestBaseHandler_SuccessResponses(t *testing.T) {
	h := &BaseHandler{}

	t.Run("Success", func(t *testing.T) {
		c, w := newTestContext()
		h.Success(c, map[string]string{"key": "value"})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, decodeResponse(t, w).Success)
	})

	t.Run("SuccessWithMeta", func(t *testing.T) {
		c, w := newTestContext()
		h.SuccessWithMeta(c, []string{"a", "b"}, 100, 1, 10)

		assert.Equal(t, http.StatusOK, w.Code)
		resp := decodeResponse(t, w)
		require.NotNil(t, resp.Meta)
		assert.Equal(t, int64(100), resp.Meta.Total)
		assert.Equal(t, 10, resp.Meta.TotalPages)
	})

	t.Run("Created", func(t *testing.T) {
		c, w := newTestContext()
		h.Created(c, map[string]string{"id": "123"})

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.True(t, decodeResponse(t, w).Success)
	})

	t.Run("NoContent", func(t *testing.T) {
		h := &BaseHandler{}
		router := gin.New()
		router.DELETE("/resource", func(c *gin.Context) { h.NoContent(c) })

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("DELETE", "/resource", nil))

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.Bytes())
	})
}

func TestBaseHandler_ErrorResponses(t *testing.T) {
	h := &BaseHandler{}

	tests := []struct {
		name       string
		respond    func(*gin.Context)
		wantStatus int
		wantCode   string
	}{
		{"BadRequest", func(c *gin.Context) { h.BadRequest(c, "bad") }, http.StatusBadRequest, dto.ErrCodeBadRequest},
		{"NotFound", func(c *gin.Context) { h.NotFound(c, "missing") }, http.StatusNotFound, dto.ErrCodeNotFound},
		{"Unauthorized", func(c *gin.Context) { h.Unauthorized(c, "no token") }, http.StatusUnauthorized, dto.ErrCodeUnauthorized},
		{"Forbidden", func(c *gin.Context) { h.Forbidden(c, "denied") }, http.StatusForbidden, dto.ErrCodeForbidden},
		{"Conflict", func(c *gin.Context) { h.Conflict(c, "conflict") }, http.StatusConflict, dto.ErrCodeConflict},
		{"UnprocessableEntity", func(c *gin.Context) { h.UnprocessableEntity(c, dto.ErrCodeBusinessRule, "rule") }, http.StatusUnprocessableEntity, dto.ErrCodeBusinessRule},
		{"InternalError", func(c *gin.Context) { h.InternalError(c, "boom") }, http.StatusInternalServerError, dto.ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext()
			tt.respond(c)

			assert.Equal(t, tt.wantStatus, w.Code)
			resp := decodeResponse(t, w)
			assert.False(t, resp.Success)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
		})
	}

	t.Run("carries the request ID", func(t *testing.T) {
		c, w := newTestContext()
		c.Set(RequestIDKey, "req-123")

		h.BadRequest(c, "bad")

		assert.Equal(t, "req-123", decodeResponse(t, w).Error.RequestID)
	})
}

func TestBaseHandler_ErrorWithCode(t *testing.T) {
	h := &BaseHandler{}
	c, w := newTestContext()

	h.ErrorWithCode(c, dto.ErrCodeInsufficientStock, "not enough on hand")

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, dto.ErrCodeInsufficientStock, decodeResponse(t, w).Error.Code)
}

func TestBaseHandler_ValidationError(t *testing.T) {
	h := &BaseHandler{}
	c, w := newTestContext()
	c.Set(RequestIDKey, "val-req-456")

	h.ValidationError(c, []dto.ValidationDetail{
		{Field: "name", Message: "Required"},
		{Field: "unit", Message: "Required"},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	assert.False(t, resp.Success)
	assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
	assert.Equal(t, "val-req-456", resp.Error.RequestID)
	assert.Len(t, resp.Error.Details, 2)
}

func TestBaseHandler_HandleError(t *testing.T) {
	h := &BaseHandler{}

	t.Run("nil error writes nothing", func(t *testing.T) {
		c, w := newTestContext()
		h.HandleError(c, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Body.Bytes())
	})

	t.Run("maps sentinel domain errors", func(t *testing.T) {
		tests := []struct {
			err        error
			wantStatus int
			wantCode   string
		}{
			{shared.ErrNotFound, http.StatusNotFound, dto.ErrCodeNotFound},
			{shared.ErrAlreadyExists, http.StatusConflict, dto.ErrCodeAlreadyExists},
			{shared.ErrInvalidInput, http.StatusBadRequest, dto.ErrCodeInvalidInput},
			{shared.ErrUnauthorized, http.StatusUnauthorized, dto.ErrCodeUnauthorized},
			{shared.ErrForbidden, http.StatusForbidden, dto.ErrCodeForbidden},
			{shared.ErrInvalidState, http.StatusUnprocessableEntity, dto.ErrCodeInvalidState},
			{shared.ErrConcurrencyConflict, http.StatusConflict, dto.ErrCodeConcurrencyConflict},
			{shared.ErrInsufficientStock, http.StatusUnprocessableEntity, dto.ErrCodeInsufficientStock},
		}

		for _, tt := range tests {
			t.Run(tt.wantCode, func(t *testing.T) {
				c, w := newTestContext()
				h.HandleError(c, tt.err)

				assert.Equal(t, tt.wantStatus, w.Code)
				resp := decodeResponse(t, w)
				assert.False(t, resp.Success)
				assert.Equal(t, tt.wantCode, resp.Error.Code)
			})
		}
	})

	t.Run("maps context-specific codes", func(t *testing.T) {
		c, w := newTestContext()
		h.HandleError(c, shared.NewDomainError("INVALID_QUANTITY", "Export item quantity must be positive"))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeInvalidInput, decodeResponse(t, w).Error.Code)
	})

	t.Run("unwraps wrapped domain errors", func(t *testing.T) {
		c, w := newTestContext()
		h.HandleError(c, fmt.Errorf("loading ingredient: %w", shared.ErrNotFound))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, dto.ErrCodeNotFound, decodeResponse(t, w).Error.Code)
	})

	t.Run("hides non-domain errors behind a 500", func(t *testing.T) {
		c, w := newTestContext()
		h.HandleError(c, assert.AnError)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		resp := decodeResponse(t, w)
		assert.Equal(t, dto.ErrCodeInternal, resp.Error.Code)
		assert.Equal(t, "An unexpected error occurred", resp.Error.Message)
	})

	t.Run("carries the request ID", func(t *testing.T) {
		c, w := newTestContext()
		c.Set(RequestIDKey, "domain-err-req")

		h.HandleError(c, shared.ErrNotFound)

		assert.Equal(t, "domain-err-req", decodeResponse(t, w).Error.RequestID)
	})
}
