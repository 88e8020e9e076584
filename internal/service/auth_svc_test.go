package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"catalog_admin_v1/pkg/catalog"
	"catalog_admin_v1/pkg/gateway"
)

func newAuthTestEnv(t *testing.T, handler http.HandlerFunc) (*AuthService, *gateway.MemoryTokenStore) {
	t.Helper()
	backend := httptest.NewServer(handler)
	t.Cleanup(backend.Close)

	tokens := gateway.NewMemoryTokenStore()
	gw := gateway.NewClient(gateway.Config{BaseURL: backend.URL}, tokens, nil)
	return NewAuthService(gw, tokens), tokens
}

func TestAuthService_LoginAdoptsToken(t *testing.T) {
	svc, tokens := newAuthTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" {
			t.Errorf("请求路径不对: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"access_token":"tok-new","user":{"id":"u1","email":"a@b.c"}},"success":true}`))
	})

	env := svc.Login(context.Background(), catalog.LoginReq{Email: "a@b.c", Password: "secret"})
	if !env.Success {
		t.Fatalf("登录应成功: %+v", env)
	}

	token, ok := tokens.Token()
	if !ok || token != "tok-new" {
		t.Errorf("登录成功后应持久化令牌: %q, %v", token, ok)
	}
}

func TestAuthService_LoginFailureKeepsTokenStore(t *testing.T) {
	svc, tokens := newAuthTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"data":{},"success":false,"message":"wrong password"}`))
	})

	env := svc.Login(context.Background(), catalog.LoginReq{Email: "a@b.c", Password: "nope"})
	if env.Success {
		t.Fatal("登录失败不应标记成功")
	}
	if env.Error != "wrong password" {
		t.Errorf("应带回后端错误描述: %s", env.Error)
	}
	if _, ok := tokens.Token(); ok {
		t.Error("登录失败不应写入令牌")
	}
}

func TestAuthService_Logout(t *testing.T) {
	svc, tokens := newAuthTestEnv(t, func(w http.ResponseWriter, r *http.Request) {})
	tokens.Save("tok-1")

	if err := svc.Logout(); err != nil {
		t.Fatalf("登出失败: %v", err)
	}
	if _, ok := tokens.Token(); ok {
		t.Error("登出后令牌应被清除")
	}
}
