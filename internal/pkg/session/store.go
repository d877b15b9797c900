/*
Package session implements cookie-token sessions backed by a server-side store.

The browser only ever holds a signed opaque token in the "carrotsession" cookie.
The record behind it ({ userId }) lives in a Backend: Redis in production, process
memory in development and tests. Store satisfies gorilla/sessions' Store interface.
*/
package session

import (
	"encoding/base32"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
)

// CookieName is the name of the session cookie.
const CookieName = "carrotsession"

const (
	userIDKey     = "userId"
	previousIDKey = "previousId"
)

// Store is a gorilla/sessions Store whose values live in a Backend.
type Store struct {
	Codecs  []securecookie.Codec
	Options *sessions.Options

	backend Backend
}

// NewStore returns a Store signing tokens with keyPairs and keeping records for ttl.
func NewStore(backend Backend, ttl time.Duration, secure bool, keyPairs ...[]byte) *Store {
	s := &Store{
		Codecs: securecookie.CodecsFromPairs(keyPairs...),
		Options: &sessions.Options{
			Path:     "/",
			MaxAge:   int(ttl / time.Second),
			HttpOnly: true,
			Secure:   secure,
			SameSite: http.SameSiteLaxMode,
		},
		backend: backend,
	}

	for _, codec := range s.Codecs {
		if sc, ok := codec.(*securecookie.SecureCookie); ok {
			sc.MaxAge(s.Options.MaxAge)
		}
	}

	return s
}

// Get returns the session for name, cached per request by the sessions registry.
func (s *Store) Get(r *http.Request, name string) (*sessions.Session, error) {
	return sessions.GetRegistry(r).Get(s, name)
}

// New loads the session named by the request cookie or returns a fresh one.
// A cookie that fails verification, or whose token has expired from the
// backend, yields a fresh session with no error.
func (s *Store) New(r *http.Request, name string) (*sessions.Session, error) {
	session := sessions.NewSession(s, name)
	opts := *s.Options
	session.Options = &opts
	session.IsNew = true

	c, err := r.Cookie(name)
	if err != nil {
		return session, nil
	}

	if err := securecookie.DecodeMulti(name, c.Value, &session.ID, s.Codecs...); err != nil {
		session.ID = ""
		return session, nil
	}

	rec, err := s.backend.Load(r.Context(), session.ID)
	if errors.Is(err, ErrNotFound) {
		session.ID = ""
		return session, nil
	}
	if err != nil {
		return session, err
	}

	if rec.UserID > 0 {
		session.Values[userIDKey] = rec.UserID
	}
	session.IsNew = false

	return session, nil
}

// Save persists the record and (re)sets the cookie. MaxAge < 0 deletes both.
func (s *Store) Save(r *http.Request, w http.ResponseWriter, session *sessions.Session) error {
	if session.Options.MaxAge < 0 {
		if session.ID != "" {
			if err := s.backend.Delete(r.Context(), session.ID); err != nil {
				return fmt.Errorf("deleting session: %w", err)
			}
		}
		http.SetCookie(w, sessions.NewCookie(session.Name(), "", session.Options))
		return nil
	}

	if session.ID == "" {
		session.ID = newToken()
	}

	rec := Record{}
	if id, ok := session.Values[userIDKey].(int64); ok {
		rec.UserID = id
	}

	ttl := time.Duration(session.Options.MaxAge) * time.Second
	if err := s.backend.Save(r.Context(), session.ID, rec, ttl); err != nil {
		return err
	}

	encoded, err := securecookie.EncodeMulti(session.Name(), session.ID, s.Codecs...)
	if err != nil {
		return fmt.Errorf("encoding session cookie: %w", err)
	}

	http.SetCookie(w, sessions.NewCookie(session.Name(), encoded, session.Options))

	if prev, ok := session.Values[previousIDKey].(string); ok {
		delete(session.Values, previousIDKey)
		if err := s.backend.Delete(r.Context(), prev); err != nil {
			return fmt.Errorf("deleting renewed session: %w", err)
		}
	}
	return nil
}

func newToken() string {
	return strings.TrimRight(base32.StdEncoding.EncodeToString(securecookie.GenerateRandomKey(32)), "=")
}
