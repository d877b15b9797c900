/*
Package resp provides helper functions for constructing and sending standardized HTTP JSON responses.

Every JSON body is an envelope: {"ok": true, ...payload fields} on success and
{"ok": false, "error": "<message>"} on failure. Method-not-allowed answers carry no body.
*/
package resp

import (
	"encoding/json"
	"net/http"

	"carrot/internal/pkg/errs"
	"carrot/internal/pkg/logx"
)

// Fields holds the payload-specific members merged into a success envelope.
type Fields map[string]any

// ErrorResponse is the failure envelope.
type ErrorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// RespondJSON is a generic response function used to set the Content-Type and send the JSON payload.
func RespondJSON(w http.ResponseWriter, r *http.Request, httpStatus int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")

	response, err := json.Marshal(payload)
	if err != nil {
		logx.Ctx(r.Context()).Error().Err(err).Int("http_status", httpStatus).Msg("Error encoding JSON response")

		http.Error(w, `{"ok":false,"error":"Error encoding JSON response"}`, http.StatusInternalServerError)
		return
	}

	w.WriteHeader(httpStatus)
	w.Write(response)
}

// RespondSuccess sends HTTP 200 with {"ok": true} merged with fields.
func RespondSuccess(w http.ResponseWriter, r *http.Request, fields Fields) {
	body := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		body[k] = v
	}
	body["ok"] = true

	RespondJSON(w, r, http.StatusOK, body)
}

// RespondOK sends the bare success envelope.
func RespondOK(w http.ResponseWriter, r *http.Request) {
	RespondSuccess(w, r, nil)
}

// RespondError sends the failure envelope with the status carried by customErr.
func RespondError(w http.ResponseWriter, r *http.Request, customErr *errs.CustomError) {
	if customErr == nil {
		customErr = errs.NewError(errs.ErrUnknown)
	}

	RespondJSON(w, r, customErr.Status, ErrorResponse{
		OK:    false,
		Error: customErr.Message,
	})
}

// RespondMethodNotAllowed sends 405 with an empty body.
func RespondMethodNotAllowed(w http.ResponseWriter) {
	w.WriteHeader(http.StatusMethodNotAllowed)
}
