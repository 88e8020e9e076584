package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// ==================== 统一信封 ====================

// Metadata 列表类响应的分页元信息
type Metadata struct {
	Page  int `json:"page,omitempty"`
	Total int `json:"total,omitempty"`
	Limit int `json:"limit,omitempty"`
}

// Envelope 与后端约定的统一响应信封
// 网关的所有方法只返回信封，从不把传输错误抛给调用方
type Envelope struct {
	Data     json.RawMessage `json:"data"`
	Success  bool            `json:"success"`
	Message  string          `json:"message,omitempty"`
	Error    string          `json:"error,omitempty"`
	Metadata *Metadata       `json:"metadata,omitempty"`
}

// Decode 把信封里的 data 解析到目标结构
func (e *Envelope) Decode(v any) error {
	if len(e.Data) == 0 {
		return fmt.Errorf("envelope has no data")
	}
	return json.Unmarshal(e.Data, v)
}

// failureEnvelope 构造失败信封，data 固定为空对象
func failureEnvelope(errMsg string) *Envelope {
	return &Envelope{
		Data:    json.RawMessage("{}"),
		Success: false,
		Error:   errMsg,
	}
}

// ==================== 网关客户端 ====================

// DefaultTimeout 传输层统一超时，与前端 axios 配置一致 (5 秒)
const DefaultTimeout = 5 * time.Second

// Config 网关配置
type Config struct {
	BaseURL string
	Timeout time.Duration // 为 0 时取 DefaultTimeout
}

// Client 后端目录 API 的统一网关
// 职责：出站请求自动附加 Bearer Token、GET 结果按 TTL 缓存、
// 写操作后按资源前缀失效缓存、401 统一清除令牌并触发会话失效回调
type Client struct {
	http   *resty.Client
	cache  *ResponseCache
	tokens TokenStore

	// onSessionKilled 401 回调：令牌已被清除后调用，
	// 由会话管理方决定后续动作（相当于前端强制跳转登录页）
	onSessionKilled func()
}

// NewClient 创建网关客户端
// onSessionKilled 可为 nil
func NewClient(cfg Config, tokens TokenStore, onSessionKilled func()) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	c := &Client{
		cache:           NewResponseCache(),
		tokens:          tokens,
		onSessionKilled: onSessionKilled,
	}

	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")

	// 请求拦截：有令牌就带上
	httpClient.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		if token, ok := c.tokens.Token(); ok {
			req.SetHeader("Authorization", "Bearer "+token)
		}
		return nil
	})

	// 响应拦截：401 即会话失效
	// 这是全局副作用，不走普通的信封返回路径——无论调用方怎么处理返回值，
	// 令牌都会被清掉、回调都会被触发
	httpClient.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		if resp.StatusCode() == http.StatusUnauthorized {
			if err := c.tokens.Clear(); err != nil {
				log.Printf("[Gateway] 401 清除令牌失败: %v", err)
			}
			log.Printf("[Gateway] 收到 401，会话已失效: %s %s", resp.Request.Method, resp.Request.URL)
			if c.onSessionKilled != nil {
				c.onSessionKilled()
			}
		}
		return nil
	})

	c.http = httpClient
	return c
}

// Cache 暴露底层缓存（定时清理任务使用）
func (c *Client) Cache() *ResponseCache {
	return c.cache
}

// ==================== 请求方法 ====================

// Get 带缓存的 GET
// useCache 为 true 且存在未过期条目时直接返回缓存，不发网络请求；
// ttl <= 0 时取默认 5 分钟
func (c *Client) Get(ctx context.Context, path string, useCache bool, ttl time.Duration) *Envelope {
	key := "GET:" + path

	if useCache {
		if env, ok := c.cache.Get(key); ok {
			return env
		}
	}

	env, httpOK := c.do(ctx, http.MethodGet, path, nil)
	if useCache && httpOK && env.Success {
		c.cache.Set(key, env, ttl)
	}
	return env
}

// Post POST 请求，成功后按资源前缀失效相关 GET 缓存
func (c *Client) Post(ctx context.Context, path string, body any) *Envelope {
	env, httpOK := c.do(ctx, http.MethodPost, path, body)
	if httpOK {
		env.Success = true
		c.invalidateFor(path)
	}
	return env
}

// Put PUT 请求，缓存失效策略同 Post
func (c *Client) Put(ctx context.Context, path string, body any) *Envelope {
	env, httpOK := c.do(ctx, http.MethodPut, path, body)
	if httpOK {
		env.Success = true
		c.invalidateFor(path)
	}
	return env
}

// Delete DELETE 请求，body 可为 nil，缓存失效策略同 Post
func (c *Client) Delete(ctx context.Context, path string, body any) *Envelope {
	env, httpOK := c.do(ctx, http.MethodDelete, path, body)
	if httpOK {
		env.Success = true
		c.invalidateFor(path)
	}
	return env
}

// ==================== 内部实现 ====================

// do 执行请求并解析信封
// 第二个返回值表示 HTTP 层面是否成功 (2xx)；网络错误、非 2xx、解析失败
// 一律转为失败信封，绝不向上抛 error
func (c *Client) do(ctx context.Context, method, path string, body any) (*Envelope, bool) {
	req := c.http.R().SetContext(ctx)
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		log.Printf("[Gateway] %s %s 请求失败: %v", method, path, err)
		return failureEnvelope("Failed to fetch data"), false
	}

	var env Envelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		if resp.IsSuccess() {
			log.Printf("[Gateway] %s %s 响应解析失败: %v", method, path, err)
			return failureEnvelope("Failed to fetch data"), false
		}
		return failureEnvelope(fmt.Sprintf("%d: %s", resp.StatusCode(), http.StatusText(resp.StatusCode()))), false
	}

	if !resp.IsSuccess() {
		// 尽量保留后端给出的错误描述
		errMsg := env.Message
		if errMsg == "" {
			errMsg = env.Error
		}
		if errMsg == "" {
			errMsg = fmt.Sprintf("%d: %s", resp.StatusCode(), http.StatusText(resp.StatusCode()))
		}
		env.Success = false
		env.Error = errMsg
		if env.Data == nil {
			env.Data = json.RawMessage("{}")
		}
		return &env, false
	}

	return &env, true
}

// invalidateFor 按第一段路径粗粒度失效 GET 缓存
// 例：写 /products/123 会清掉所有 "GET:/products" 开头的键
func (c *Client) invalidateFor(path string) {
	seg := firstPathSegment(path)
	if seg == "" {
		return
	}
	if n := c.cache.InvalidatePrefix("GET:/" + seg); n > 0 {
		log.Printf("[Gateway] 已失效 %d 条 /%s 缓存", n, seg)
	}
}

func firstPathSegment(path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	path = strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(path, '/'); i >= 0 {
		path = path[:i]
	}
	return path
}
