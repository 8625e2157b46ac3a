package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func corsRouter(allowed ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORSMiddleware(allowed))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func TestCORSMiddleware(t *testing.T) {
	tests := []struct {
		name    string
		allowed []string
		method  string
		origin  string
		status  int
		echoed  bool
	}{
		{"empty list allows any origin", nil, http.MethodGet, "https://a.example", http.StatusOK, true},
		{"listed origin", []string{"https://shop.example/"}, http.MethodGet, "https://shop.example", http.StatusOK, true},
		{"unlisted origin", []string{"https://shop.example"}, http.MethodGet, "https://evil.example", http.StatusOK, false},
		{"wildcard entry", []string{"*"}, http.MethodGet, "https://b.example", http.StatusOK, true},
		{"preflight", []string{"https://shop.example"}, http.MethodOptions, "https://shop.example", http.StatusNoContent, true},
		{"preflight unlisted", []string{"https://shop.example"}, http.MethodOptions, "https://evil.example", http.StatusNoContent, false},
		{"no origin header", nil, http.MethodGet, "", http.StatusOK, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/x", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			w := httptest.NewRecorder()
			corsRouter(tt.allowed...).ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.echoed {
				assert.Equal(t, tt.origin, w.Header().Get("Access-Control-Allow-Origin"))
				assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Idempotency-Key")
			} else {
				assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
			}
			if tt.method == http.MethodOptions && tt.echoed {
				assert.Equal(t, "600", w.Header().Get("Access-Control-Max-Age"))
			}
		})
	}
}
