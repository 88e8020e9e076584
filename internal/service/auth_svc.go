package service

import (
	"context"
	"log"

	"catalog_admin_v1/pkg/catalog"
	"catalog_admin_v1/pkg/gateway"
)

// AuthService 鉴权服务
// 所有操作都是对目录后端的透传；登录/注册成功后把 access_token
// 存进令牌仓库，之后网关的每个请求都会自动带上
type AuthService struct {
	gw     *gateway.Client
	tokens gateway.TokenStore
}

func NewAuthService(gw *gateway.Client, tokens gateway.TokenStore) *AuthService {
	return &AuthService{gw: gw, tokens: tokens}
}

// Login 登录
func (s *AuthService) Login(ctx context.Context, req catalog.LoginReq) *gateway.Envelope {
	env := s.gw.Post(ctx, "/auth/login", req)
	s.adoptToken(env)
	return env
}

// Register 注册新用户
func (s *AuthService) Register(ctx context.Context, req catalog.RegisterReq) *gateway.Envelope {
	env := s.gw.Post(ctx, "/auth/register", req)
	s.adoptToken(env)
	return env
}

// adoptToken 从鉴权响应里取出令牌并持久化
func (s *AuthService) adoptToken(env *gateway.Envelope) {
	if !env.Success {
		return
	}
	var auth catalog.AuthResp
	if err := env.Decode(&auth); err != nil || auth.AccessToken == "" {
		return
	}
	if err := s.tokens.Save(auth.AccessToken); err != nil {
		log.Printf("[Auth] 令牌保存失败: %v", err)
	}
}

// Profile 当前用户信息
func (s *AuthService) Profile(ctx context.Context) *gateway.Envelope {
	return s.gw.Get(ctx, "/auth/profile", true, 0)
}

// Logout 登出：只清本地令牌，后端无会话可销毁
func (s *AuthService) Logout() error {
	return s.tokens.Clear()
}

// RequestPasswordReset 找回密码
func (s *AuthService) RequestPasswordReset(ctx context.Context, req catalog.PasswordResetReq) *gateway.Envelope {
	return s.gw.Post(ctx, "/auth/forgot-password", req)
}

// ConfirmPasswordReset 用邮件里的 token 重置密码
func (s *AuthService) ConfirmPasswordReset(ctx context.Context, req catalog.PasswordResetConfirmReq) *gateway.Envelope {
	return s.gw.Post(ctx, "/auth/reset-password", req)
}

// ChangePassword 修改密码
func (s *AuthService) ChangePassword(ctx context.Context, req catalog.PasswordChangeReq) *gateway.Envelope {
	return s.gw.Post(ctx, "/auth/change-password", req)
}
