package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// Malformed path IDs must be rejected at the binding layer, before any
// service is consulted. The handlers run with nil services to prove the
// request never gets that far.
func TestHandlersRejectMalformedIDs(t *testing.T) {
	router := gin.New()
	router.DELETE("/categories/:id", NewTaxonomyHandler(nil, nil).DeleteCategory)
	router.DELETE("/media/:id", NewMediaHandler(nil).Delete)
	router.POST("/magazines/:id/approve", NewMagazineHandler(nil).Approve)
	router.POST("/comments/:id/moderate", NewCommentHandler(nil).Moderate)

	cases := []struct {
		name   string
		method string
		path   string
	}{
		{"category delete", http.MethodDelete, "/categories/not-a-uuid"},
		{"media delete", http.MethodDelete, "/media/42"},
		{"magazine approve", http.MethodPost, "/magazines/not-a-uuid/approve"},
		{"comment moderate", http.MethodPost, "/comments/xyz/moderate"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(tc.method, tc.path, nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			resp := decodeResponse(t, w)
			assert.False(t, resp.Success)
		})
	}
}
