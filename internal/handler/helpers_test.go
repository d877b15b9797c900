package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"carrot/internal/app/cache"
	"carrot/internal/app/live"
	"carrot/internal/app/revalidate"
	"carrot/internal/configs"
	"carrot/internal/pkg/metrics"
	"carrot/internal/pkg/session"
)

type testEnv struct {
	t       *testing.T
	db      *fakeDB
	storage *mockStorage
	mailer  *mockMailer
	cache   *cache.MemoryCache
	pub     *mockPublisher
	deps    *AppDeps
	handler http.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	hub := live.NewHub(nil)
	t.Cleanup(hub.Shutdown)

	env := &testEnv{
		t:       t,
		db:      newFakeDB(),
		storage: &mockStorage{},
		mailer:  &mockMailer{},
		cache:   cache.NewMemoryCache(),
		pub:     &mockPublisher{},
	}

	env.deps = &AppDeps{
		Config: &configs.AppConfig{
			Environment: "development",
			JWTSecret:   "test-jwt-secret",
		},
		DB:          env.db,
		Storage:     env.storage,
		Mailer:      env.mailer,
		Cache:       env.cache,
		Revalidator: revalidate.New(env.cache, env.pub),
		Hub:         hub,
		Metrics:     metrics.New(),
		Sessions:    session.NewStore(session.NewMemoryBackend(), time.Hour, false, []byte("0123456789abcdef0123456789abcdef")),
	}
	env.handler = Router(ctx, env.deps)

	return env
}

// do sends a request through the full router. body is JSON-encoded unless it is nil or a string.
func (e *testEnv) do(method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	e.t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(e.t, json.NewEncoder(&buf).Encode(b))
	}

	r := httptest.NewRequest(method, path, &buf)
	if body != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		r.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, r)
	return rec
}

// signIn runs the passwordless login flow for email and returns the session cookie.
func (e *testEnv) signIn(email string) *http.Cookie {
	e.t.Helper()

	rec := e.do(http.MethodPost, "/api/users/enter", map[string]string{"email": email}, nil)
	require.Equal(e.t, http.StatusOK, rec.Code, rec.Body.String())
	cookie := sessionCookie(e.t, rec)

	code := e.mailer.code(email)
	require.Len(e.t, code, 6)

	rec = e.do(http.MethodPost, "/api/users/confirm", map[string]string{"token": code}, cookie)
	require.Equal(e.t, http.StatusOK, rec.Code, rec.Body.String())

	return sessionCookie(e.t, rec)
}

// userID returns the id the fake store assigned to email.
func (e *testEnv) userID(email string) int64 {
	e.t.Helper()

	e.db.mu.Lock()
	defer e.db.mu.Unlock()
	for _, u := range e.db.users {
		if u.Email.String == email {
			return u.ID
		}
	}
	e.t.Fatalf("no user with email %s", email)
	return 0
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()

	for _, c := range rec.Result().Cookies() {
		if c.Name == session.CookieName {
			return c
		}
	}
	t.Fatalf("response carries no %s cookie", session.CookieName)
	return nil
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}
