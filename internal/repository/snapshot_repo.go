package repository

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"catalog_admin_v1/internal/draft"
	"catalog_admin_v1/internal/model"
)

// SnapshotRepository 按会话提供快照槽位
type SnapshotRepository interface {
	// Slot 返回指定会话的持久化槽位
	Slot(sessionID string) draft.SnapshotSlot

	// Drop 丢弃会话的全部快照（会话结束时调用）
	Drop(sessionID string) error
}

// 槽位键只允许安全字符，防止文件实现被路径穿越
var slotKeyPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

var errBadSlotKey = errors.New("invalid slot key")

// ==================== 文件实现 ====================

// FileSnapshotRepo 文件实现：每个会话一个目录，槽位键即文件名
// 单机/本地运行时的默认选择，不需要数据库
type FileSnapshotRepo struct {
	baseDir string
}

func NewFileSnapshotRepo(baseDir string) *FileSnapshotRepo {
	return &FileSnapshotRepo{baseDir: baseDir}
}

func (r *FileSnapshotRepo) Slot(sessionID string) draft.SnapshotSlot {
	return &fileSlot{dir: filepath.Join(r.baseDir, sessionID)}
}

func (r *FileSnapshotRepo) Drop(sessionID string) error {
	return os.RemoveAll(filepath.Join(r.baseDir, sessionID))
}

type fileSlot struct {
	dir string
}

func (s *fileSlot) Write(key string, data []byte) error {
	if !slotKeyPattern.MatchString(key) {
		return errBadSlotKey
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.dir, key+".json"), data, 0o644)
}

func (s *fileSlot) Read(key string) ([]byte, bool, error) {
	if !slotKeyPattern.MatchString(key) {
		return nil, false, errBadSlotKey
	}
	data, err := os.ReadFile(filepath.Join(s.dir, key+".json"))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// ==================== 数据库实现 ====================

// GormSnapshotRepo 数据库实现：快照按 (session_id, slot_key) 落表
// 多实例部署时使用，写入走 upsert
type GormSnapshotRepo struct {
	db *gorm.DB
}

func NewGormSnapshotRepo(db *gorm.DB) *GormSnapshotRepo {
	return &GormSnapshotRepo{db: db}
}

func (r *GormSnapshotRepo) Slot(sessionID string) draft.SnapshotSlot {
	return &gormSlot{db: r.db, sessionID: sessionID}
}

func (r *GormSnapshotRepo) Drop(sessionID string) error {
	return r.db.Where("session_id = ?", sessionID).Delete(&model.DraftSnapshot{}).Error
}

type gormSlot struct {
	db        *gorm.DB
	sessionID string
}

func (s *gormSlot) Write(key string, data []byte) error {
	row := model.DraftSnapshot{
		SessionID: s.sessionID,
		SlotKey:   key,
		Payload:   string(data),
	}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_id"}, {Name: "slot_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&row).Error
}

func (s *gormSlot) Read(key string) ([]byte, bool, error) {
	var row model.DraftSnapshot
	err := s.db.Where("session_id = ? AND slot_key = ?", s.sessionID, key).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return []byte(row.Payload), true, nil
}
