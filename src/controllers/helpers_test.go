package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/museum-catalog/museum-backend/src/i18n"
	"github.com/museum-catalog/museum-backend/src/identity"
	"github.com/museum-catalog/museum-backend/src/services"
	"github.com/museum-catalog/museum-backend/src/storage"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testContext(target string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	return c, w
}

func TestRespondError(t *testing.T) {
	_, malformed := identity.Parse("nope")

	tests := []struct {
		err    error
		status int
		body   string
	}{
		{malformed, http.StatusBadRequest, `{"error":"Invalid identifier"}`},
		{services.ErrArtifactNotFound, http.StatusNotFound, `{"error":"Artifact not found"}`},
		{services.ErrPeriodNotFound, http.StatusNotFound, `{"error":"period not found"}`},
		{gorm.ErrRecordNotFound, http.StatusNotFound, `{"error":"Not found"}`},
		{services.ErrDuplicateInventoryNumber, http.StatusConflict, ""},
		{services.ErrSessionRequired, http.StatusBadRequest, `{"error":"session_id is required"}`},
		{fmt.Errorf("%w: name.fr is required", services.ErrInvalidInput), http.StatusBadRequest, ""},
		{services.ErrInvalidCredentials, http.StatusUnauthorized, ""},
		{storage.ErrDriveNotConfigured, http.StatusServiceUnavailable, ""},
		{errors.New("disk on fire"), http.StatusInternalServerError, `{"error":"Internal server error"}`},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			c, w := testContext("/")
			respondError(c, zap.NewNop(), tt.err)
			assert.Equal(t, tt.status, w.Code)
			if tt.body != "" {
				assert.JSONEq(t, tt.body, w.Body.String())
			}
		})
	}
}

func TestRequestLanguage(t *testing.T) {
	tests := []struct {
		target string
		accept string
		want   i18n.Language
	}{
		{"/", "", i18n.French},
		{"/?lang=en", "", i18n.English},
		{"/?lang=wo", "en", i18n.Wolof},
		{"/?lang=de", "", i18n.French},
		{"/", "en-US,en;q=0.9", i18n.English},
		{"/", "de-DE,de", i18n.French},
		{"/", "en;q=0.8,fr", i18n.English},
		{"/", "wo", i18n.Wolof},
	}
	for _, tt := range tests {
		c, _ := testContext(tt.target)
		if tt.accept != "" {
			c.Request.Header.Set("Accept-Language", tt.accept)
		}
		assert.Equal(t, tt.want, requestLanguage(c), "%s %s", tt.target, tt.accept)
	}
}

func TestPageFromQuery(t *testing.T) {
	c, _ := testContext("/?page=3&page_size=50")
	page, err := pageFromQuery(c)
	assert.NoError(t, err)
	assert.Equal(t, services.Page{Number: 3, Size: 50}, page)

	c, _ = testContext("/?page=0")
	_, err = pageFromQuery(c)
	assert.Error(t, err)

	c, _ = testContext("/?collection=x")
	_, err = filtersFromQuery(c)
	assert.Error(t, err)

	c, _ = testContext("/?collection=4&is_featured=true")
	filters, err := filtersFromQuery(c)
	assert.NoError(t, err)
	if assert.NotNil(t, filters.CollectionID) && assert.NotNil(t, filters.IsFeatured) {
		assert.Equal(t, uint(4), *filters.CollectionID)
		assert.True(t, *filters.IsFeatured)
	}
	assert.Nil(t, filters.PeriodID)
}
