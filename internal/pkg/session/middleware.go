package session

import (
	"bufio"
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/gorilla/sessions"

	"carrot/internal/pkg/logx"
)

type contextKey struct{}

// Session is the request's view of its session record.
type Session struct {
	raw *sessions.Session
}

// UserID returns the authenticated user id, if any.
func (s *Session) UserID() (int64, bool) {
	id, ok := s.raw.Values[userIDKey].(int64)
	return id, ok && id > 0
}

// SetUserID binds the session to a user. It is persisted before the response is written.
func (s *Session) SetUserID(id int64) {
	s.raw.Values[userIDKey] = id
}

// Renew moves the session to a fresh token when it is next saved and drops the
// old record. Call it whenever the session's privilege changes.
func (s *Session) Renew() {
	if s.raw.ID != "" {
		s.raw.Values[previousIDKey] = s.raw.ID
	}
	s.raw.ID = ""
}

// IsNew reports whether the request arrived without a live session.
func (s *Session) IsNew() bool {
	return s.raw.IsNew
}

// FromContext returns the session attached by Middleware. Without one it
// returns a detached empty session, so callers always see an anonymous user.
func FromContext(ctx context.Context) *Session {
	if s, ok := ctx.Value(contextKey{}).(*Session); ok {
		return s
	}
	return &Session{raw: sessions.NewSession(nil, CookieName)}
}

// WithUser returns ctx carrying a detached session bound to userID.
func WithUser(ctx context.Context, userID int64) context.Context {
	s := &Session{raw: sessions.NewSession(nil, CookieName)}
	s.SetUserID(userID)
	return context.WithValue(ctx, contextKey{}, s)
}

// Middleware attaches the request's session and saves it ahead of the response.
func Middleware(store sessions.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, err := store.Get(r, CookieName)
			if err != nil {
				logx.Ctx(r.Context()).Warn().Err(err).Msg("Session store unavailable, continuing without a user")
				raw = sessions.NewSession(store, CookieName)
			}

			sw := &saveWriter{
				ResponseWriter: w,
				r:              r,
				store:          store,
				session:        raw,
				// A record that could not be loaded is never written back over.
				done: err != nil,
			}

			ctx := context.WithValue(r.Context(), contextKey{}, &Session{raw: raw})
			next.ServeHTTP(sw, r.WithContext(ctx))

			sw.commit()
		})
	}
}

type saveWriter struct {
	http.ResponseWriter
	r       *http.Request
	store   sessions.Store
	session *sessions.Session
	done    bool
}

func (w *saveWriter) commit() {
	if w.done {
		return
	}
	w.done = true

	if err := w.store.Save(w.r, w.ResponseWriter, w.session); err != nil {
		logx.Ctx(w.r.Context()).Warn().Err(err).Msg("Failed to save session")
	}
}

func (w *saveWriter) WriteHeader(code int) {
	w.commit()
	w.ResponseWriter.WriteHeader(code)
}

func (w *saveWriter) Write(b []byte) (int, error) {
	w.commit()
	return w.ResponseWriter.Write(b)
}

func (w *saveWriter) Flush() {
	w.commit()
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Hijack hands the connection over without saving; an upgraded socket has no response headers left to set.
func (w *saveWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	w.done = true
	hj, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("session: underlying ResponseWriter does not support hijacking")
	}
	return hj.Hijack()
}

func (w *saveWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
