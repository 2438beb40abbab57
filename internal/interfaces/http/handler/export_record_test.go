package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/resto/backend/internal/interfaces/http/middleware"
)

// newExportRouter wires the handler behind a stub auth middleware so the
// request-shape checks can run without a database.
func newExportRouter(userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
	h := NewExportHandler(nil)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if userID != "" {
			c.Set(middleware.JWTUserIDKey, userID)
		}
		c.Next()
	})
	r.POST("/exports", h.Create)
	r.GET("/exports/:id", h.GetByID)
	return r
}

func TestExportHandler_Create_RequestShape(t *testing.T) {
	tests := []struct {
		name     string
		userID   string
		body     string
		wantCode int
	}{
		{
			name:     "unauthenticated",
			userID:   "",
			body:     `{"reason":"usage","items":[{"ingredient_id":"` + uuid.NewString() + `","quantity":"2"}]}`,
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "missing items",
			userID:   uuid.NewString(),
			body:     `{"reason":"usage","items":[]}`,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "unknown reason",
			userID:   uuid.NewString(),
			body:     `{"reason":"shrinkage","items":[{"ingredient_id":"` + uuid.NewString() + `","quantity":"2"}]}`,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "malformed json",
			userID:   uuid.NewString(),
			body:     `{"reason":`,
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newExportRouter(tt.userID)

			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodPost, "/exports", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}

func TestExportHandler_GetByID_InvalidID(t *testing.T) {
	router := newExportRouter(uuid.NewString())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/exports/not-a-uuid", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
