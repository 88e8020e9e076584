package task

import (
	"log"

	"github.com/robfig/cron/v3"

	"catalog_admin_v1/internal/service"
	"catalog_admin_v1/pkg/gateway"
)

// UpkeepTask 周期性维护任务
// 缓存的过期条目走懒删除，长时间没人读的键会一直占着内存，
// 这里定期扫一遍；闲置会话的超时登出也挂在同一个调度器上
type UpkeepTask struct {
	Cron     *cron.Cron
	cache    *gateway.ResponseCache
	sessions *service.SessionService
}

func NewUpkeepTask(cache *gateway.ResponseCache, sessions *service.SessionService) *UpkeepTask {
	return &UpkeepTask{
		Cron:     cron.New(cron.WithSeconds()), // 支持秒级控制
		cache:    cache,
		sessions: sessions,
	}
}

// Start 启动定时任务
func (t *UpkeepTask) Start() {
	// 每 5 分钟清一次过期缓存（和默认 TTL 同步）
	_, err := t.Cron.AddFunc("0 */5 * * * *", func() {
		if n := t.cache.Sweep(); n > 0 {
			log.Printf("[Upkeep] 清理过期缓存 %d 条", n)
		}
	})
	if err != nil {
		log.Fatalf("无法注册缓存清理任务: %v", err)
	}

	// 每分钟检查一次闲置会话
	_, err = t.Cron.AddFunc("0 * * * * *", func() {
		t.sessions.SweepIdle()
	})
	if err != nil {
		log.Fatalf("无法注册会话清理任务: %v", err)
	}

	t.Cron.Start()
	log.Println("维护任务已启动 (缓存每5分钟/会话每分钟)")
}

// Stop 停止调度器，等待在跑的任务收尾
func (t *UpkeepTask) Stop() {
	<-t.Cron.Stop().Done()
}
