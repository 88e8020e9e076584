package draft

import (
	"encoding/json"
	"errors"
	"log"
	"sync"

	"github.com/google/uuid"
)

// SnapshotKey 快照在槽位里的固定键名，线上已有数据，不可改
const SnapshotKey = "productData"

// DefaultImageSlots 新草稿初始化的空图片槽数量
const DefaultImageSlots = 9

var (
	// ErrIndexOutOfRange 图片槽下标越界（调用方应先 AddImageSlots）
	ErrIndexOutOfRange = errors.New("image slot index out of range")

	// ErrLastProductName 拒绝删除最后一个商品名称字段
	// 这是业务告警而非系统错误，界面应以提示的形式呈现
	ErrLastProductName = errors.New("at least one product name field is required")
)

// SnapshotSlot 快照持久化槽位，等价于浏览器的 sessionStorage
// repository 包提供文件和数据库两种实现
type SnapshotSlot interface {
	// Write 按键写入
	Write(key string, data []byte) error

	// Read 按键读取，第二个返回值表示键是否存在
	Read(key string) ([]byte, bool, error)
}

// MoveDirection 字段移动方向
type MoveDirection string

const (
	MoveUp   MoveDirection = "up"
	MoveDown MoveDirection = "down"
)

// ==================== 草稿容器 ====================

// Store 单份商品草稿的可变状态容器
// 所有修改都通过这里的动作方法完成；互斥锁保证并发请求下的一致性
// （前端版本跑在单线程事件循环里，这里换成 Go 的等价物）
type Store struct {
	mu sync.Mutex

	images                []string
	fields                []InputField
	activeLanguage        Language
	selectedProductTypeID string
}

// NewStore 创建带默认内容的草稿：
// 一个名称、一个标题、一个常规信息字段，九个空图片槽
func NewStore() *Store {
	return &Store{
		images: make([]string, DefaultImageSlots),
		fields: []InputField{
			{ID: uuid.NewString(), Type: FieldTypeProductName, Label: FieldTypeProductName.Label()},
			{ID: uuid.NewString(), Type: FieldTypeProductTitle, Label: FieldTypeProductTitle.Label()},
			{ID: uuid.NewString(), Type: FieldTypeGenInfo, Label: FieldTypeGenInfo.Label()},
		},
		activeLanguage: LanguageUK,
	}
}

// ==================== 读取 ====================

// Images 图片槽的拷贝
func (s *Store) Images() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.images))
	copy(out, s.images)
	return out
}

// Fields 信息字段的深拷贝
func (s *Store) Fields() []InputField {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyFields(s.fields)
}

// ActiveLanguage 当前预览语言
func (s *Store) ActiveLanguage() Language {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeLanguage
}

// SelectedProductTypeID 已选商品类型，空串表示未选择
func (s *Store) SelectedProductTypeID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedProductTypeID
}

// ==================== 图片动作 ====================

// SetImageAt 替换指定槽位的图片
// 不负责扩容：下标超出现有槽位即为前置条件违规
func (s *Store) SetImageAt(index int, image string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.images) {
		return ErrIndexOutOfRange
	}
	s.images[index] = image
	return nil
}

// AddImageSlots 追加 count 个空槽位，只增不减
func (s *Store) AddImageSlots(count int) {
	if count <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.images = append(s.images, make([]string, count)...)
}

// ==================== 字段动作 ====================

// AddField 追加一个空的信息字段并返回
// list 种类自动带一个空列表项
func (s *Store) AddField(t FieldType) InputField {
	field := InputField{
		ID:    uuid.NewString(),
		Type:  t,
		Label: t.Label(),
	}
	if t == FieldTypeList {
		field.Items = []ListItem{{ID: uuid.NewString()}}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.fields = append(s.fields, field)
	return field
}

// RemoveField 删除字段
// 不变量：任何时刻至少保留一个商品名称字段，违反时拒绝并返回 ErrLastProductName
// 字段不存在时静默返回
func (s *Store) RemoveField(fieldID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	nameCount := 0
	for i, f := range s.fields {
		if f.Type == FieldTypeProductName {
			nameCount++
		}
		if f.ID == fieldID {
			idx = i
		}
	}
	if idx < 0 {
		return nil
	}
	if s.fields[idx].Type == FieldTypeProductName && nameCount <= 1 {
		return ErrLastProductName
	}

	s.fields = append(s.fields[:idx], s.fields[idx+1:]...)
	return nil
}

// SetFieldValue 更新字段某个语言的文本，字段不存在时为无动作
func (s *Store) SetFieldValue(fieldID string, lang Language, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.fields {
		if s.fields[i].ID == fieldID {
			s.fields[i].Value.Set(lang, text)
			return
		}
	}
	log.Printf("[Draft] SetFieldValue: 字段不存在 %s", fieldID)
}

// MoveField 把 index 处的字段与相邻字段换位，到达边界时为无动作
func (s *Store) MoveField(index int, direction MoveDirection) {
	s.mu.Lock()
	defer s.mu.Unlock()

	j := index + 1
	if direction == MoveUp {
		j = index - 1
	}
	if index < 0 || index >= len(s.fields) || j < 0 || j >= len(s.fields) {
		return
	}
	s.fields[index], s.fields[j] = s.fields[j], s.fields[index]
}

// ==================== 列表动作 ====================

// AddListItem 给 list 字段追加一个空列表项
// 字段不存在或不是 list 种类时记录日志并返回 false
func (s *Store) AddListItem(fieldID string) (ListItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.fields {
		if s.fields[i].ID == fieldID && s.fields[i].Type == FieldTypeList {
			item := ListItem{ID: uuid.NewString()}
			s.fields[i].Items = append(s.fields[i].Items, item)
			return item, true
		}
	}
	log.Printf("[Draft] AddListItem: 目标字段不存在或不是列表 %s", fieldID)
	return ListItem{}, false
}

// AddSublistItem 给指定列表项追加一个子项
// 目标不存在时记录日志并返回 false
func (s *Store) AddSublistItem(fieldID, itemID string) (ListItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.fields {
		if s.fields[i].ID != fieldID {
			continue
		}
		for j := range s.fields[i].Items {
			if s.fields[i].Items[j].ID == itemID {
				sub := ListItem{ID: uuid.NewString()}
				s.fields[i].Items[j].Sublist = append(s.fields[i].Items[j].Sublist, sub)
				return sub, true
			}
		}
	}
	log.Printf("[Draft] AddSublistItem: 目标列表项不存在 %s/%s", fieldID, itemID)
	return ListItem{}, false
}

// UpdateListItemContent 更新列表项某个语言的文本
// itemID 先在顶层项里找，找不到再找各项的子列表；两层的 ID 都是 UUID，
// 不存在歧义，也绝不按文本内容猜测结构（文本就是文本）
func (s *Store) UpdateListItemContent(fieldID, itemID string, lang Language, text string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.fields {
		if s.fields[i].ID != fieldID {
			continue
		}
		for j := range s.fields[i].Items {
			if s.fields[i].Items[j].ID == itemID {
				s.fields[i].Items[j].Content.Set(lang, text)
				return true
			}
			for k := range s.fields[i].Items[j].Sublist {
				if s.fields[i].Items[j].Sublist[k].ID == itemID {
					s.fields[i].Items[j].Sublist[k].Content.Set(lang, text)
					return true
				}
			}
		}
	}
	log.Printf("[Draft] UpdateListItemContent: 目标列表项不存在 %s/%s", fieldID, itemID)
	return false
}

// ReplaceListItemSublist 整体替换列表项的子列表
// 与 UpdateListItemContent 是两个独立操作：结构替换必须由调用方显式发起，
// 缺 ID 的新子项在这里补齐
func (s *Store) ReplaceListItemSublist(fieldID, itemID string, sublist []ListItem) bool {
	for i := range sublist {
		if sublist[i].ID == "" {
			sublist[i].ID = uuid.NewString()
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.fields {
		if s.fields[i].ID != fieldID {
			continue
		}
		for j := range s.fields[i].Items {
			if s.fields[i].Items[j].ID == itemID {
				s.fields[i].Items[j].Sublist = copyItems(sublist)
				return true
			}
		}
	}
	log.Printf("[Draft] ReplaceListItemSublist: 目标列表项不存在 %s/%s", fieldID, itemID)
	return false
}

// ==================== 选择器 ====================

// SetSelectedProductTypeID 记录所选商品类型（弱引用，只存 ID）
func (s *Store) SetSelectedProductTypeID(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedProductTypeID = id
}

// SetActiveLanguage 切换预览语言，不认识的语言忽略
func (s *Store) SetActiveLanguage(lang Language) {
	if !lang.Valid() {
		log.Printf("[Draft] SetActiveLanguage: 不支持的语言 %q", lang)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeLanguage = lang
}

// ==================== 快照 ====================

// Snapshot 当前状态的深拷贝快照
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	images := make([]string, len(s.images))
	copy(images, s.images)

	var typeID *string
	if s.selectedProductTypeID != "" {
		id := s.selectedProductTypeID
		typeID = &id
	}

	return Snapshot{
		ProductImages:         images,
		ProductInfo:           copyFields(s.fields),
		ActiveLanguage:        s.activeLanguage,
		SelectedProductTypeID: typeID,
	}
}

// Restore 用快照覆盖当前状态，缺失的部分回退到默认值
func (s *Store) Restore(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if snap.ProductImages != nil {
		s.images = snap.ProductImages
	} else {
		s.images = make([]string, DefaultImageSlots)
	}
	if snap.ProductInfo != nil {
		s.fields = snap.ProductInfo
	} else {
		s.fields = nil
	}
	if snap.ActiveLanguage.Valid() {
		s.activeLanguage = snap.ActiveLanguage
	} else {
		s.activeLanguage = LanguageUK
	}
	if snap.SelectedProductTypeID != nil {
		s.selectedProductTypeID = *snap.SelectedProductTypeID
	} else {
		s.selectedProductTypeID = ""
	}
}

// Save 序列化整个草稿并写入槽位的 productData 键
func (s *Store) Save(slot SnapshotSlot) error {
	data, err := json.Marshal(s.Snapshot())
	if err != nil {
		return err
	}
	return slot.Write(SnapshotKey, data)
}

// Load 从槽位读取快照并接管为当前状态
// 返回是否成功加载：键不存在、JSON 损坏、读取出错都只记录日志并返回 false，
// 从不向调用方抛错，当前状态保持不变
func (s *Store) Load(slot SnapshotSlot) bool {
	data, ok, err := slot.Read(SnapshotKey)
	if err != nil {
		log.Printf("[Draft] 读取快照失败: %v", err)
		return false
	}
	if !ok {
		return false
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		log.Printf("[Draft] 快照解析失败，保留当前草稿: %v", err)
		return false
	}

	s.Restore(snap)
	return true
}
