package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"panda-gate/bff/internal/middleware"
	"panda-gate/bff/internal/podclient"
	"panda-gate/session"
)

// fakePod records what the forwarding layer actually sends upstream and
// answers with whatever the test scripted.
type fakePod struct {
	mu       sync.Mutex
	calls    int
	lastPath string
	lastAuth string
	status   int
	body     string
}

func (p *fakePod) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p.mu.Lock()
	p.calls++
	p.lastPath = r.URL.Path
	p.lastAuth = r.Header.Get("Authorization")
	status, body := p.status, p.body
	p.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func (p *fakePod) respond(status int, body string) {
	p.mu.Lock()
	p.status, p.body = status, body
	p.mu.Unlock()
}

func newTestBFF(t *testing.T) (http.Handler, *fakePod) {
	t.Helper()
	pod := &fakePod{status: http.StatusOK, body: "{}"}
	srv := httptest.NewServer(pod)
	t.Cleanup(srv.Close)

	h := New(podclient.New(srv.URL, 5*time.Second), false)
	access := &middleware.Access{Verifier: session.NewVerifier("bff-test-secret", "panda-gate-test")}
	return NewRouter(h, access), pod
}

func doJSON(t *testing.T, h http.Handler, method, path, cookie, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: cookie})
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestForward_ErrorsRelayedVerbatim(t *testing.T) {
	bff, pod := newTestBFF(t)
	pod.respond(http.StatusConflict, `{"error":"email or username already in use"}`)

	rec := doJSON(t, bff, http.MethodPost, "/api/auth/register", "",
		`{"email":"dup@panda.dev","password":"password123"}`)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"error":"email or username already in use"}`, rec.Body.String())
	assert.Equal(t, "/auth/register", pod.lastPath)
	assert.Empty(t, pod.lastAuth, "auth endpoints carry no bearer")
}

func TestLogin_MovesTokenIntoCookie(t *testing.T) {
	bff, pod := newTestBFF(t)
	pod.respond(http.StatusOK, `{"user":{"id":"u1","email":"user@panda.dev"},"access_token":"signed.jwt.here"}`)

	rec := doJSON(t, bff, http.MethodPost, "/api/auth/login", "",
		`{"email":"user@panda.dev","password":"password123"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var sessionCookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == session.CookieName {
			sessionCookie = c
		}
	}
	require.NotNil(t, sessionCookie, "login must set the session cookie")
	assert.Equal(t, "signed.jwt.here", sessionCookie.Value)
	assert.True(t, sessionCookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, sessionCookie.SameSite)

	// the token lives in the cookie only, never the body
	assert.NotContains(t, rec.Body.String(), "signed.jwt.here")
	assert.Contains(t, rec.Body.String(), "user@panda.dev")
}

func TestForward_NoCookieShortCircuits(t *testing.T) {
	bff, pod := newTestBFF(t)

	rec := doJSON(t, bff, http.MethodGet, "/api/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"no session"}`, rec.Body.String())
	assert.Equal(t, 0, pod.calls, "an anonymous API call never reaches the pod")
}

func TestForward_UpstreamAuthErrorClearsCookie(t *testing.T) {
	bff, pod := newTestBFF(t)
	pod.respond(http.StatusUnauthorized, `{"error":"missing or invalid token"}`)

	rec := doJSON(t, bff, http.MethodGet, "/api/me", "dead-token", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"missing or invalid token"}`, rec.Body.String())

	var cleared bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == session.CookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared, "a cookie the pod rejected must not be replayed")
}

func TestForward_CookieBecomesBearer(t *testing.T) {
	bff, pod := newTestBFF(t)
	pod.respond(http.StatusOK, `{"user":{"id":"u1","email":"user@panda.dev","role":"PREMIUM"}}`)

	rec := doJSON(t, bff, http.MethodGet, "/api/me", "cookie-token-value", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Bearer cookie-token-value", pod.lastAuth)
	assert.Equal(t, "/users/me", pod.lastPath)

	// the {user} envelope is unwrapped for the browser
	assert.JSONEq(t, `{"id":"u1","email":"user@panda.dev","role":"PREMIUM"}`, rec.Body.String())
}

func TestForward_UpstreamDown(t *testing.T) {
	pod := &fakePod{}
	srv := httptest.NewServer(pod)
	srv.Close() // nothing listening anymore

	h := New(podclient.New(srv.URL, time.Second), false)
	access := &middleware.Access{Verifier: session.NewVerifier("bff-test-secret", "panda-gate-test")}
	bff := NewRouter(h, access)

	rec := doJSON(t, bff, http.MethodGet, "/api/me", "cookie-token-value", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"backend unavailable"}`, rec.Body.String())
}

func TestRegister_ValidationStopsAtTheEdge(t *testing.T) {
	bff, pod := newTestBFF(t)

	rec := doJSON(t, bff, http.MethodPost, "/api/auth/register", "",
		`{"email":"not-an-email","password":"short"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "details")
	assert.Equal(t, 0, pod.calls, "invalid bodies never reach the pod")
}

func TestLogout_ClearsCookie(t *testing.T) {
	bff, pod := newTestBFF(t)

	rec := doJSON(t, bff, http.MethodPost, "/api/auth/logout", "cookie-token-value", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, pod.calls, "logout is purely client-side")

	var cleared bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == session.CookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared)
}

func TestAdminForward_PathParamPropagates(t *testing.T) {
	bff, pod := newTestBFF(t)
	pod.respond(http.StatusOK, `{"user":{"id":"u9","role":"ADMIN"}}`)

	rec := doJSON(t, bff, http.MethodPut, "/api/admin/users/u9/role", "cookie-token-value",
		`{"role":"ADMIN"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "/admin/users/u9/role", pod.lastPath)
	assert.Equal(t, "Bearer cookie-token-value", pod.lastAuth)
}
