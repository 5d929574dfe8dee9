package httphandler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHTTPServerHandler(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /fast", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("GET /slow", func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	s := NewHTTPServer(":0", mux, 20*time.Millisecond)

	t.Run("PassesThrough", func(t *testing.T) {
		w := serve(s.srv.Handler, httptest.NewRequest(http.MethodGet, "/fast", nil))
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("Timeout", func(t *testing.T) {
		w := serve(s.srv.Handler, httptest.NewRequest(http.MethodGet, "/slow", nil))
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, msgHandlerTimeout, w.Body.String())
	})
}
