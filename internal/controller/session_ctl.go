package controller

import (
	"github.com/gin-gonic/gin"

	"catalog_admin_v1/internal/middleware"
	"catalog_admin_v1/internal/service"
)

// SessionController 会话状态入口，给界面的倒计时和超时提示用
type SessionController struct {
	sessionService *service.SessionService
}

func NewSessionController(sessionService *service.SessionService) *SessionController {
	return &SessionController{sessionService: sessionService}
}

// GetSession 会话状态
// GET /api/session
func (ctrl *SessionController) GetSession(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)
	okData(c, gin.H{
		"info":     ctrl.sessionService.Info(sessionID),
		"timedOut": ctrl.sessionService.TimedOut(sessionID),
	})
}

// Touch 上报一次用户活动，重置闲置计时
// POST /api/session/activity
func (ctrl *SessionController) Touch(c *gin.Context) {
	ctrl.sessionService.Touch(middleware.GetSessionID(c))
	okData(c, nil)
}
