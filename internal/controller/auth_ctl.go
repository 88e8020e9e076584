package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"catalog_admin_v1/internal/service"
	"catalog_admin_v1/pkg/catalog"
)

// AuthController 鉴权控制器，登录态相关的所有入口
type AuthController struct {
	authService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// Login 登录
// POST /api/auth/login
func (ctrl *AuthController) Login(c *gin.Context) {
	var req catalog.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	relayAuth(c, ctrl.authService.Login(c.Request.Context(), req))
}

// Register 注册
// POST /api/auth/register
func (ctrl *AuthController) Register(c *gin.Context) {
	var req catalog.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	relayAuth(c, ctrl.authService.Register(c.Request.Context(), req))
}

// Profile 当前用户信息
// GET /api/auth/profile
func (ctrl *AuthController) Profile(c *gin.Context) {
	relayAuth(c, ctrl.authService.Profile(c.Request.Context()))
}

// Logout 登出
// POST /api/auth/logout
func (ctrl *AuthController) Logout(c *gin.Context) {
	if err := ctrl.authService.Logout(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "登出失败: " + err.Error(),
		})
		return
	}
	okData(c, nil)
}

// ForgotPassword 找回密码
// POST /api/auth/forgot-password
func (ctrl *AuthController) ForgotPassword(c *gin.Context) {
	var req catalog.PasswordResetReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	relay(c, ctrl.authService.RequestPasswordReset(c.Request.Context(), req))
}

// ResetPassword 重置密码
// POST /api/auth/reset-password
func (ctrl *AuthController) ResetPassword(c *gin.Context) {
	var req catalog.PasswordResetConfirmReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	relay(c, ctrl.authService.ConfirmPasswordReset(c.Request.Context(), req))
}

// ChangePassword 修改密码
// POST /api/auth/change-password
func (ctrl *AuthController) ChangePassword(c *gin.Context) {
	var req catalog.PasswordChangeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	relay(c, ctrl.authService.ChangePassword(c.Request.Context(), req))
}
