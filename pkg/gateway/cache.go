package gateway

import (
	"strings"
	"sync"
	"time"
)

// DefaultCacheTTL GET 缓存默认有效期，与前端约定保持一致 (5 分钟)
const DefaultCacheTTL = 5 * time.Minute

// cacheItem 内部结构，包含响应信封和绝对过期时间
type cacheItem struct {
	env    *Envelope
	expiry time.Time
}

// ResponseCache GET 响应的内存缓存
// 只做 TTL 过期：不做 LRU、不限容量、进程重启即全部失效
type ResponseCache struct {
	mu    sync.RWMutex
	items map[string]cacheItem
}

func NewResponseCache() *ResponseCache {
	return &ResponseCache{
		items: make(map[string]cacheItem),
	}
}

// Get 获取缓存并验证是否过期（过期走懒删除）
func (c *ResponseCache) Get(key string) (*Envelope, bool) {
	c.mu.RLock()
	item, ok := c.items[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}

	if time.Now().After(item.expiry) {
		c.mu.Lock()
		delete(c.items, key)
		c.mu.Unlock()
		return nil, false
	}

	return item.env, true
}

// Set 写入缓存
// ttl <= 0 时使用默认的 5 分钟
func (c *ResponseCache) Set(key string, env *Envelope, ttl time.Duration) {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}

	c.mu.Lock()
	c.items[key] = cacheItem{
		env:    env,
		expiry: time.Now().Add(ttl),
	}
	c.mu.Unlock()
}

// Delete 删除单个键
func (c *ResponseCache) Delete(key string) {
	c.mu.Lock()
	delete(c.items, key)
	c.mu.Unlock()
}

// InvalidatePrefix 按键前缀批量失效，返回清掉的条目数
// 写操作后按资源族粗粒度清理：对 /products/123 的写入会清掉所有
// "GET:/products" 开头的键，包括不相关的列表查询。范围偏宽，属于有意的简化
func (c *ResponseCache) InvalidatePrefix(prefix string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for key := range c.items {
		if strings.HasPrefix(key, prefix) {
			delete(c.items, key)
			n++
		}
	}
	return n
}

// Sweep 清理所有已过期条目，返回清理数量（由定时任务周期调用）
func (c *ResponseCache) Sweep() int {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for key, item := range c.items {
		if now.After(item.expiry) {
			delete(c.items, key)
			n++
		}
	}
	return n
}

// Len 当前条目数（含未被懒删除的过期条目）
func (c *ResponseCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
