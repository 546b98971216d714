package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/depotfolio/backend/src/logger"
)

func TestMain(m *testing.M) {
	logger.InitLogger("error")
	os.Exit(m.Run())
}

func TestGetCSRFTokenSetsCookieAndBody(t *testing.T) {
	rr := httptest.NewRecorder()
	GetCSRFToken(rr, httptest.NewRequest(http.MethodGet, "/api/auth/csrf", nil))

	require.Equal(t, http.StatusOK, rr.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	token := body["csrfToken"]
	require.NotEmpty(t, token)
	assert.Equal(t, token, rr.Header().Get("X-CSRF-Token"))

	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, csrfCookieName, cookies[0].Name)
	assert.Equal(t, token, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
}

func csrfProtectedHandler() http.Handler {
	return CSRFMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
}

func TestCSRFMiddlewareAllowsSafeMethods(t *testing.T) {
	for _, method := range []string{http.MethodGet, http.MethodHead, http.MethodOptions} {
		rr := httptest.NewRecorder()
		csrfProtectedHandler().ServeHTTP(rr, httptest.NewRequest(method, "/api/activities", nil))
		assert.Equal(t, http.StatusNoContent, rr.Code, method)
	}
}

func TestCSRFMiddlewareAcceptsMatchingTokens(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/upload", nil)
	req.Header.Set("X-CSRF-Token", "match-token")
	req.AddCookie(&http.Cookie{Name: csrfCookieName, Value: "match-token"})

	rr := httptest.NewRecorder()
	csrfProtectedHandler().ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNoContent, rr.Code)
}

func TestCSRFMiddlewareRejectsMutatingRequests(t *testing.T) {
	t.Run("no token at all", func(t *testing.T) {
		rr := httptest.NewRecorder()
		csrfProtectedHandler().ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/upload", nil))
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("header without cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/upload", nil)
		req.Header.Set("X-CSRF-Token", "orphan-token")
		rr := httptest.NewRecorder()
		csrfProtectedHandler().ServeHTTP(rr, req)
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("mismatched tokens", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/api/activities/all", nil)
		req.Header.Set("X-CSRF-Token", "token-a")
		req.AddCookie(&http.Cookie{Name: csrfCookieName, Value: "token-b"})
		rr := httptest.NewRecorder()
		csrfProtectedHandler().ServeHTTP(rr, req)
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})
}
