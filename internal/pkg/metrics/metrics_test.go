package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func TestMiddleware_LabelsByRoutePattern(t *testing.T) {
	m := New()

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/api/products/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, path := range []string{"/api/products/1", "/api/products/2"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	body := scrape(t, m)
	assert.Contains(t, body, `carrot_http_requests_total{method="GET",path="/api/products/{id}",status="404"} 2`)
	assert.Contains(t, body, `carrot_errors_total{type="client_error"} 2`)
	assert.NotContains(t, body, `/api/products/1"`)
}

func TestDomainCounters(t *testing.T) {
	m := New()

	m.ProductCreated()
	m.FavToggled(true)
	m.FavToggled(false)
	m.FavToggled(true)
	m.MessagePosted("chat")
	m.LoginCodeIssued("email")
	m.ViewerJoined()
	m.ViewerJoined()
	m.ViewerLeft()

	body := scrape(t, m)
	assert.Contains(t, body, "carrot_products_created_total 1")
	assert.Contains(t, body, `carrot_fav_toggles_total{state="added"} 2`)
	assert.Contains(t, body, `carrot_fav_toggles_total{state="removed"} 1`)
	assert.Contains(t, body, `carrot_messages_total{kind="chat"} 1`)
	assert.Contains(t, body, `carrot_login_codes_total{channel="email"} 1`)
	assert.Contains(t, body, "carrot_live_viewers 1")
}
