package gateway

import (
	"testing"
	"time"
)

func envWith(msg string) *Envelope {
	return &Envelope{Success: true, Message: msg}
}

func TestResponseCache_GetSet(t *testing.T) {
	c := NewResponseCache()

	if _, ok := c.Get("GET:/products"); ok {
		t.Fatal("空缓存不应命中")
	}

	c.Set("GET:/products", envWith("v1"), 0)

	env, ok := c.Get("GET:/products")
	if !ok {
		t.Fatal("写入后应命中")
	}
	if env.Message != "v1" {
		t.Errorf("命中内容不对: %s", env.Message)
	}
}

func TestResponseCache_TTLExpiry(t *testing.T) {
	c := NewResponseCache()
	c.Set("GET:/products", envWith("v1"), 30*time.Millisecond)

	if _, ok := c.Get("GET:/products"); !ok {
		t.Fatal("TTL 内应命中")
	}

	time.Sleep(50 * time.Millisecond)

	if _, ok := c.Get("GET:/products"); ok {
		t.Fatal("TTL 过后不应命中")
	}
	// 懒删除生效
	if c.Len() != 0 {
		t.Errorf("过期条目应被懒删除, 剩余 %d", c.Len())
	}
}

func TestResponseCache_InvalidatePrefix(t *testing.T) {
	c := NewResponseCache()
	c.Set("GET:/products?page=1&limit=10", envWith("list"), 0)
	c.Set("GET:/products/42", envWith("one"), 0)
	c.Set("GET:/product-types", envWith("types"), 0)

	n := c.InvalidatePrefix("GET:/products")
	if n != 2 {
		t.Fatalf("应清掉 2 条, 实际 %d", n)
	}

	if _, ok := c.Get("GET:/products?page=1&limit=10"); ok {
		t.Error("列表查询缓存应被清掉")
	}
	if _, ok := c.Get("GET:/products/42"); ok {
		t.Error("详情缓存应被清掉")
	}
	if _, ok := c.Get("GET:/product-types"); !ok {
		t.Error("其他资源族的缓存不应被波及")
	}
}

func TestResponseCache_Sweep(t *testing.T) {
	c := NewResponseCache()
	c.Set("a", envWith("a"), 10*time.Millisecond)
	c.Set("b", envWith("b"), time.Hour)

	time.Sleep(30 * time.Millisecond)

	if n := c.Sweep(); n != 1 {
		t.Fatalf("应清理 1 条过期, 实际 %d", n)
	}
	if c.Len() != 1 {
		t.Errorf("存活条目应剩 1, 实际 %d", c.Len())
	}
}
