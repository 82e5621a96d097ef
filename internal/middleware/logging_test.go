package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func TestRequestLogging(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogging())
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(requestIDKey))
	})

	t.Run("generates_request_id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest("GET", "/ping", nil))

		id := rec.Header().Get("X-Request-ID")
		if _, err := uuid.Parse(id); err != nil {
			t.Fatalf("expected uuid request id, got %q", id)
		}
		if rec.Body.String() != id {
			t.Errorf("context id %q does not match header %q", rec.Body.String(), id)
		}
	})

	t.Run("reuses_inbound_request_id", func(t *testing.T) {
		inbound := uuid.NewString()
		req := httptest.NewRequest("GET", "/ping", nil)
		req.Header.Set("X-Request-ID", inbound)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if rec.Header().Get("X-Request-ID") != inbound {
			t.Errorf("expected %s, got %s", inbound, rec.Header().Get("X-Request-ID"))
		}
	})

	t.Run("replaces_malformed_request_id", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/ping", nil)
		req.Header.Set("X-Request-ID", "<script>")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if rec.Header().Get("X-Request-ID") == "<script>" {
			t.Error("malformed inbound id must not be echoed")
		}
	})
}
