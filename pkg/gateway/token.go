package gateway

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// TokenStore 访问令牌的持久化接口
// 等价于浏览器里的 accessToken Cookie：进程重启后令牌仍然有效，
// 401 时由网关统一清除
type TokenStore interface {
	// Token 读取当前令牌，第二个返回值表示是否存在
	Token() (string, bool)

	// Save 保存令牌
	Save(token string) error

	// Clear 清除令牌（登出 / 401 会话失效时调用）
	Clear() error
}

// ==================== 文件实现 ====================

// FileTokenStore 文件实现，令牌明文落盘
type FileTokenStore struct {
	mu   sync.Mutex
	path string
}

func NewFileTokenStore(path string) *FileTokenStore {
	return &FileTokenStore{path: path}
}

func (s *FileTokenStore) Token() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", false
	}

	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", false
	}
	return token, true
}

func (s *FileTokenStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	// 0600：令牌等同凭证，仅属主可读
	return os.WriteFile(s.path, []byte(token), 0o600)
}

func (s *FileTokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// ==================== 内存实现 ====================

// MemoryTokenStore 内存实现，测试用
type MemoryTokenStore struct {
	mu    sync.Mutex
	token string
	has   bool
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

func (s *MemoryTokenStore) Token() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.has
}

func (s *MemoryTokenStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.has = true
	return nil
}

func (s *MemoryTokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.has = false
	return nil
}
