package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnterAndConfirm_BindsSessionToUser(t *testing.T) {
	env := newTestEnv(t)

	cookie := env.signIn("kim@example.com")

	rec := env.do(http.MethodGet, "/api/users/me", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decode(t, rec)
	profile := body["profile"].(map[string]any)
	assert.Equal(t, "kim@example.com", profile["email"])
	assert.Equal(t, "Anonymous", profile["name"])
}

func TestEnter_ReusesExistingUser(t *testing.T) {
	env := newTestEnv(t)
	existing := env.db.seedUser("kim", "kim@example.com")

	env.signIn("kim@example.com")

	assert.Equal(t, existing.ID, env.userID("kim@example.com"))
	assert.Len(t, env.db.users, 1)
}

func TestConfirm_DeletesTokensAndRejectsReuse(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/api/users/enter", map[string]string{"email": "lee@example.com"}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	code := env.mailer.code("lee@example.com")

	rec = env.do(http.MethodPost, "/api/users/confirm", map[string]string{"token": code}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(http.MethodPost, "/api/users/confirm", map[string]string{"token": code}, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, false, decode(t, rec)["ok"])
}

func TestEnter_Validation(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name       string
		body       any
		wantStatus int
	}{
		{"neither email nor phone", map[string]string{}, http.StatusBadRequest},
		{"both email and phone", map[string]string{"email": "a@b.co", "phone": "01012345678"}, http.StatusBadRequest},
		{"malformed email", map[string]string{"email": "not-an-email"}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(http.MethodPost, "/api/users/enter", tt.body, nil)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestEnter_PhoneIsNotMailed(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/api/users/enter", map[string]string{"phone": "01012345678"}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	assert.Empty(t, env.mailer.codes)
	assert.Len(t, env.db.tokens, 1)
}

func TestEnter_MailFailureIsBadGateway(t *testing.T) {
	env := newTestEnv(t)
	env.mailer.SendFunc = func(context.Context, string, string) error {
		return errors.New("provider down")
	}

	rec := env.do(http.MethodPost, "/api/users/enter", map[string]string{"email": "kim@example.com"}, nil)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.NotContains(t, rec.Body.String(), "provider down")
}

func TestEnter_IsRateLimited(t *testing.T) {
	env := newTestEnv(t)

	var last int
	for i := 0; i < EnterBurst+1; i++ {
		last = env.do(http.MethodPost, "/api/users/enter", map[string]string{"email": "kim@example.com"}, nil).Code
	}

	assert.Equal(t, http.StatusTooManyRequests, last)
}

func TestConfirm_RotatesSessionToken(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/api/users/enter", map[string]string{"email": "kim@example.com"}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	before := sessionCookie(t, rec)

	rec = env.do(http.MethodPost, "/api/users/confirm", map[string]string{"token": env.mailer.code("kim@example.com")}, before)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	after := sessionCookie(t, rec)

	assert.NotEqual(t, before.Value, after.Value)
	assert.Equal(t, http.StatusOK, env.do(http.MethodGet, "/api/users/me", nil, after).Code)
	assert.Equal(t, http.StatusUnauthorized, env.do(http.MethodGet, "/api/users/me", nil, before).Code)
}

func TestConfirm_RejectsExpiredCode(t *testing.T) {
	env := newTestEnv(t)

	require.Equal(t, http.StatusOK, env.do(http.MethodPost, "/api/users/enter", map[string]string{"email": "kim@example.com"}, nil).Code)
	code := env.mailer.code("kim@example.com")
	env.db.ageToken(code, LoginCodeTTL+time.Second)

	rec := env.do(http.MethodPost, "/api/users/confirm", map[string]string{"token": code}, nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestConfirm_RejectsMalformedCode(t *testing.T) {
	env := newTestEnv(t)

	for _, code := range []string{"12345", "1234567", "12a456"} {
		rec := env.do(http.MethodPost, "/api/users/confirm", map[string]string{"token": code}, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, code)
	}
	assert.Zero(t, env.db.writeCount())
}

func TestConfirm_IsRateLimited(t *testing.T) {
	env := newTestEnv(t)

	var codes []int
	for i := 0; i < ConfirmBurst+1; i++ {
		rec := env.do(http.MethodPost, "/api/users/confirm", map[string]string{"token": fmt.Sprintf("%06d", i)}, nil)
		codes = append(codes, rec.Code)
	}

	for _, c := range codes[:ConfirmBurst] {
		assert.Equal(t, http.StatusNotFound, c)
	}
	assert.Equal(t, http.StatusTooManyRequests, codes[ConfirmBurst])
}
