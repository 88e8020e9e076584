package model

import "time"

// DraftSnapshot 草稿快照行
// 每行对应一个会话里的一个槽位键（等价于浏览器 sessionStorage 的一个条目）
type DraftSnapshot struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	SessionID string    `gorm:"size:64;uniqueIndex:idx_session_slot;not null" json:"sessionId"`
	SlotKey   string    `gorm:"size:64;uniqueIndex:idx_session_slot;not null" json:"slotKey"`
	Payload   string    `gorm:"type:jsonb" json:"payload"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (DraftSnapshot) TableName() string {
	return "draft_snapshots"
}
