package resp

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carrot/internal/pkg/errs"
)

func TestRespondSuccess_MergesOK(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	RespondSuccess(rec, req, Fields{"products": []int{1, 2}, "ok": false})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["ok"])
	assert.Len(t, body["products"], 2)
}

func TestRespondError(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	RespondError(rec, req, errs.NewError(errs.ErrStreamNotFound))

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"ok":false,"error":"해당 제품은 존재하지 않습니다."}`, rec.Body.String())
}

func TestRespondError_NilIsInternal(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	RespondError(rec, req, nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRespondMethodNotAllowed(t *testing.T) {
	rec := httptest.NewRecorder()

	RespondMethodNotAllowed(rec)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Zero(t, rec.Body.Len())
}
