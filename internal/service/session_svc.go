package service

import (
	"log"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"catalog_admin_v1/pkg/gateway"
)

// DefaultSessionTimeout 无操作自动登出的时限 (30 分钟)
const DefaultSessionTimeout = 30 * time.Minute

// SessionInfo 会话状态，给界面的会话倒计时/过期提示用
type SessionInfo struct {
	Authenticated bool       `json:"authenticated"`
	LastActivity  time.Time  `json:"lastActivity"`
	IdleDeadline  time.Time  `json:"idleDeadline"`
	TokenExpiry   *time.Time `json:"tokenExpiry,omitempty"`
}

// SessionService 会话活动跟踪与超时登出
// 也是网关 401 回调的消费方：会话被远端判死后，这里负责把状态
// 标记出来让前端下一次轮询就能感知
type SessionService struct {
	mu           sync.Mutex
	lastActivity map[string]time.Time
	timedOut     map[string]bool

	tokens  gateway.TokenStore
	timeout time.Duration
}

func NewSessionService(tokens gateway.TokenStore, timeout time.Duration) *SessionService {
	if timeout <= 0 {
		timeout = DefaultSessionTimeout
	}
	return &SessionService{
		lastActivity: make(map[string]time.Time),
		timedOut:     make(map[string]bool),
		tokens:       tokens,
		timeout:      timeout,
	}
}

// Touch 记录一次会话活动
func (s *SessionService) Touch(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActivity[sessionID] = time.Now()
}

// Info 会话状态快照
func (s *SessionService) Info(sessionID string) SessionInfo {
	s.mu.Lock()
	last, ok := s.lastActivity[sessionID]
	s.mu.Unlock()

	if !ok {
		last = time.Now()
	}

	info := SessionInfo{
		LastActivity: last,
		IdleDeadline: last.Add(s.timeout),
	}

	if token, has := s.tokens.Token(); has {
		info.Authenticated = true
		info.TokenExpiry = tokenExpiry(token)
	}
	return info
}

// TimedOut 查询并消费"会话已超时"标志
// 一次性标志：登录页读到 true 展示提示后即被清掉
func (s *SessionService) TimedOut(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timedOut[sessionID] {
		delete(s.timedOut, sessionID)
		return true
	}
	return false
}

// HandleUnauthorized 网关 401 回调
// 令牌此刻已被网关清除；这里把所有活动会话标记为超时，
// 效果等同前端的"强制跳转登录页"
func (s *SessionService) HandleUnauthorized() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id := range s.lastActivity {
		s.timedOut[id] = true
		delete(s.lastActivity, id)
	}
	log.Println("[Session] 远端判定会话失效 (401)，已标记全部会话")
}

// SweepIdle 清理闲置超时的会话，返回清理数量（由定时任务周期调用）
// 只要有会话超时就清掉本地令牌，和前端超时登出的行为一致
func (s *SessionService) SweepIdle() int {
	now := time.Now()

	s.mu.Lock()
	expired := make([]string, 0)
	for id, last := range s.lastActivity {
		if now.Sub(last) >= s.timeout {
			expired = append(expired, id)
			delete(s.lastActivity, id)
			s.timedOut[id] = true
		}
	}
	s.mu.Unlock()

	if len(expired) > 0 {
		if err := s.tokens.Clear(); err != nil {
			log.Printf("[Session] 超时清除令牌失败: %v", err)
		}
		log.Printf("[Session] %d 个会话闲置超时，已登出", len(expired))
	}
	return len(expired)
}

// tokenExpiry 从 JWT 里取过期时间
// 只读 exp 声明做展示用，不做签名校验——校验是后端的职责
func tokenExpiry(token string) *time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil
	}
	return &exp.Time
}
