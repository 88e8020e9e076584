package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ==================== 会话标识 ====================

const (
	// SessionCookieName 浏览器会话 Cookie 名
	SessionCookieName = "sessionId"

	// ContextKeySessionID gin Context 里的会话键
	ContextKeySessionID = "session_id"

	// 会话 Cookie 有效期：浏览器关掉即作废的语义靠 MaxAge=0 做不到，
	// 给一天，闲置登出由 SessionService 负责
	sessionCookieMaxAge = 24 * 60 * 60
)

// EnsureSession 会话中间件
// 没有会话 Cookie 就发一个（UUID），并把会话 ID 注入 Context，
// 草稿注册表和活动跟踪都按这个 ID 分桶
func EnsureSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(SessionCookieName)
		if err != nil || sessionID == "" || uuid.Validate(sessionID) != nil {
			sessionID = uuid.NewString()
			c.SetCookie(SessionCookieName, sessionID, sessionCookieMaxAge, "/", "", false, true)
		}

		c.Set(ContextKeySessionID, sessionID)
		c.Next()
	}
}

// GetSessionID 从 Context 取会话 ID
func GetSessionID(c *gin.Context) string {
	if id, exists := c.Get(ContextKeySessionID); exists {
		return id.(string)
	}
	return ""
}

// ==================== 请求日志 ====================

// RequestLog 请求日志中间件
func RequestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Printf("[API] %s %s -> %d (%s)",
			c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}
