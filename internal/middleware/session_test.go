package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func sessionTestEngine() (*gin.Engine, *string) {
	gin.SetMode(gin.TestMode)

	var seen string
	r := gin.New()
	r.Use(EnsureSession())
	r.GET("/ping", func(c *gin.Context) {
		seen = GetSessionID(c)
		c.Status(http.StatusOK)
	})
	return r, &seen
}

func TestEnsureSession_IssuesCookie(t *testing.T) {
	r, seen := sessionTestEngine()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	cookies := w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != SessionCookieName {
		t.Fatalf("应下发会话 Cookie: %v", cookies)
	}
	if uuid.Validate(cookies[0].Value) != nil {
		t.Errorf("会话 ID 应为 UUID: %s", cookies[0].Value)
	}
	if !cookies[0].HttpOnly {
		t.Error("会话 Cookie 应为 HttpOnly")
	}
	if *seen != cookies[0].Value {
		t.Errorf("Context 里的会话 ID 应与 Cookie 一致: %s vs %s", *seen, cookies[0].Value)
	}
}

func TestEnsureSession_ReusesValidCookie(t *testing.T) {
	r, seen := sessionTestEngine()
	existing := uuid.NewString()

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: existing})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if len(w.Result().Cookies()) != 0 {
		t.Error("已有合法 Cookie 时不应重新下发")
	}
	if *seen != existing {
		t.Errorf("应沿用已有会话 ID: %s", *seen)
	}
}

func TestEnsureSession_ReplacesBogusCookie(t *testing.T) {
	r, seen := sessionTestEngine()

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "not-a-uuid"})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if len(w.Result().Cookies()) != 1 {
		t.Fatal("伪造的会话 ID 应被换掉")
	}
	if *seen == "not-a-uuid" {
		t.Error("不应沿用非 UUID 的会话 ID")
	}
}
