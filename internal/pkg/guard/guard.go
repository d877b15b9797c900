/*
Package guard wraps resource handlers in an ordered chain of stages.

Every API route is mounted through Handle. The first stage checks the request
method, later stages check session state, and the innermost HandlerFunc does the
work. Errors returned anywhere in the chain are turned into the JSON envelope in
one place.
*/
package guard

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"slices"

	"carrot/internal/pkg/errs"
	"carrot/internal/pkg/logx"
	"carrot/internal/pkg/resp"
	"carrot/internal/pkg/session"
)

// ErrMethodNotAllowed stops the chain and answers 405 with no body.
var ErrMethodNotAllowed = errors.New("method not allowed")

// HandlerFunc is a resource handler that reports failure by returning an error.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// Stage is one link of the chain. It either calls next or returns an error.
type Stage interface {
	Process(w http.ResponseWriter, r *http.Request, next HandlerFunc) error
}

// StageFunc adapts a function to Stage.
type StageFunc func(w http.ResponseWriter, r *http.Request, next HandlerFunc) error

func (f StageFunc) Process(w http.ResponseWriter, r *http.Request, next HandlerFunc) error {
	return f(w, r, next)
}

// Methods rejects any request whose method is not listed.
func Methods(allowed ...string) Stage {
	return StageFunc(func(w http.ResponseWriter, r *http.Request, next HandlerFunc) error {
		if !slices.Contains(allowed, r.Method) {
			return ErrMethodNotAllowed
		}
		return next(w, r)
	})
}

// RequireUser rejects requests whose session has no authenticated user.
func RequireUser() Stage {
	return StageFunc(func(w http.ResponseWriter, r *http.Request, next HandlerFunc) error {
		if _, ok := session.FromContext(r.Context()).UserID(); !ok {
			return errs.NewError(errs.ErrUnauthorized)
		}
		return next(w, r)
	})
}

// Handle builds an http.Handler running Methods(methods...), then stages in
// order, then h.
func Handle(methods []string, h HandlerFunc, stages ...Stage) http.Handler {
	chain := h
	for i := len(stages) - 1; i >= 0; i-- {
		chain = link(stages[i], chain)
	}
	chain = link(Methods(methods...), chain)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logx.Ctx(r.Context()).Error().
					Str("panic", fmt.Sprint(rec)).
					Bytes("stack", debug.Stack()).
					Msg("Handler panicked")
				resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			}
		}()

		if err := chain(w, r); err != nil {
			writeError(w, r, err)
		}
	})
}

func link(s Stage, next HandlerFunc) HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		return s.Process(w, r, next)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, ErrMethodNotAllowed) {
		resp.RespondMethodNotAllowed(w)
		return
	}

	if customErr, ok := errs.As(err); ok {
		if customErr.Status >= http.StatusInternalServerError {
			logx.Ctx(r.Context()).Error().Err(err).Int("code", customErr.Code).Msg("Request failed")
		}
		resp.RespondError(w, r, customErr)
		return
	}

	logx.Ctx(r.Context()).Error().Err(err).Msg("Unhandled handler error")
	resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
}
