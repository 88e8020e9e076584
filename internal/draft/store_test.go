package draft

import (
	"testing"
)

// memSlot 内存槽位，测试用
type memSlot struct {
	data map[string][]byte
	err  error
}

func newMemSlot() *memSlot {
	return &memSlot{data: map[string][]byte{}}
}

func (s *memSlot) Write(key string, data []byte) error {
	if s.err != nil {
		return s.err
	}
	s.data[key] = data
	return nil
}

func (s *memSlot) Read(key string) ([]byte, bool, error) {
	if s.err != nil {
		return nil, false, s.err
	}
	data, ok := s.data[key]
	return data, ok, nil
}

func countByType(fields []InputField, t FieldType) int {
	n := 0
	for _, f := range fields {
		if f.Type == t {
			n++
		}
	}
	return n
}

// ==================== 初始状态 ====================

func TestNewStore_Defaults(t *testing.T) {
	s := NewStore()

	if got := len(s.Images()); got != DefaultImageSlots {
		t.Errorf("初始图片槽应为 %d, 实际 %d", DefaultImageSlots, got)
	}

	fields := s.Fields()
	if len(fields) != 3 {
		t.Fatalf("初始字段应为 3 个, 实际 %d", len(fields))
	}
	wantTypes := []FieldType{FieldTypeProductName, FieldTypeProductTitle, FieldTypeGenInfo}
	for i, want := range wantTypes {
		if fields[i].Type != want {
			t.Errorf("字段 %d 种类 %s, 期望 %s", i, fields[i].Type, want)
		}
		if fields[i].ID == "" {
			t.Errorf("字段 %d 缺少 ID", i)
		}
	}

	if s.ActiveLanguage() != LanguageUK {
		t.Errorf("默认语言应为 uk, 实际 %s", s.ActiveLanguage())
	}
	if s.SelectedProductTypeID() != "" {
		t.Error("初始不应有已选商品类型")
	}
}

// ==================== 图片槽 ====================

func TestStore_SetImageAt(t *testing.T) {
	s := NewStore()

	if err := s.SetImageAt(0, "http://cdn/a.jpg"); err != nil {
		t.Fatalf("合法下标不应报错: %v", err)
	}
	if got := s.Images()[0]; got != "http://cdn/a.jpg" {
		t.Errorf("槽位内容不对: %s", got)
	}

	// 越界是前置条件违规，不是自动扩容
	for _, idx := range []int{-1, DefaultImageSlots, DefaultImageSlots + 5} {
		if err := s.SetImageAt(idx, "x"); err != ErrIndexOutOfRange {
			t.Errorf("下标 %d 应返回 ErrIndexOutOfRange, 实际 %v", idx, err)
		}
	}
}

func TestStore_AddImageSlots(t *testing.T) {
	s := NewStore()

	s.AddImageSlots(3)
	if got := len(s.Images()); got != DefaultImageSlots+3 {
		t.Fatalf("扩容后应为 %d 槽, 实际 %d", DefaultImageSlots+3, got)
	}

	// 扩容后原来越界的下标变合法
	if err := s.SetImageAt(DefaultImageSlots, "http://cdn/b.jpg"); err != nil {
		t.Errorf("新槽位应可写入: %v", err)
	}

	s.AddImageSlots(0)
	s.AddImageSlots(-1)
	if got := len(s.Images()); got != DefaultImageSlots+3 {
		t.Errorf("非正数不应改变槽位数, 实际 %d", got)
	}
}

// ==================== 字段增删 ====================

func TestStore_AddField(t *testing.T) {
	s := NewStore()

	f := s.AddField(FieldTypeList)
	if f.ID == "" || f.Type != FieldTypeList || f.Label != "List" {
		t.Errorf("新字段内容不对: %+v", f)
	}
	if len(f.Items) != 1 || f.Items[0].ID == "" {
		t.Errorf("list 字段应自带一个空列表项: %+v", f.Items)
	}

	g := s.AddField(FieldTypeGenInfo)
	if g.Items != nil {
		t.Error("非 list 字段不应带列表项")
	}
	if f.ID == g.ID {
		t.Error("字段 ID 不应重复")
	}

	if got := len(s.Fields()); got != 5 {
		t.Errorf("字段总数应为 5, 实际 %d", got)
	}
}

func TestStore_RemoveField_KeepsLastProductName(t *testing.T) {
	s := NewStore()
	nameID := s.Fields()[0].ID

	// 任何增删序列之后名称字段都不能归零
	if err := s.RemoveField(nameID); err != ErrLastProductName {
		t.Fatalf("删最后一个名称字段应被拒绝, 实际 %v", err)
	}
	if countByType(s.Fields(), FieldTypeProductName) != 1 {
		t.Fatal("被拒绝的删除不应改变状态")
	}

	// 加一个名称字段之后，删其中一个是允许的
	second := s.AddField(FieldTypeProductName)
	if err := s.RemoveField(nameID); err != nil {
		t.Fatalf("还有第二个名称字段时应允许删除: %v", err)
	}
	if countByType(s.Fields(), FieldTypeProductName) != 1 {
		t.Fatal("删除后应剩一个名称字段")
	}

	// 又只剩一个了，再删同样被拒绝
	if err := s.RemoveField(second.ID); err != ErrLastProductName {
		t.Errorf("不变量应持续成立, 实际 %v", err)
	}
}

func TestStore_RemoveField_Unknown(t *testing.T) {
	s := NewStore()
	before := len(s.Fields())

	if err := s.RemoveField("no-such-id"); err != nil {
		t.Errorf("删除不存在的字段应静默返回: %v", err)
	}
	if len(s.Fields()) != before {
		t.Error("状态不应改变")
	}
}

func TestStore_SetFieldValue(t *testing.T) {
	s := NewStore()
	nameID := s.Fields()[0].ID

	s.SetFieldValue(nameID, LanguageUK, "Ваза")
	s.SetFieldValue(nameID, LanguageEN, "Vase")
	s.SetFieldValue("no-such-id", LanguageUK, "ігнорується") // 无动作

	got := s.Fields()[0].Value
	if got.UK != "Ваза" || got.EN != "Vase" {
		t.Errorf("字段值不对: %+v", got)
	}
}

func TestStore_MoveField(t *testing.T) {
	s := NewStore()
	ids := func() []string {
		fields := s.Fields()
		out := make([]string, len(fields))
		for i, f := range fields {
			out[i] = f.ID
		}
		return out
	}
	orig := ids()

	s.MoveField(0, MoveDown)
	after := ids()
	if after[0] != orig[1] || after[1] != orig[0] {
		t.Errorf("下移应与相邻字段换位: %v -> %v", orig, after)
	}

	s.MoveField(0, MoveUp)
	s.MoveField(len(orig)-1, MoveDown)
	s.MoveField(-1, MoveUp)
	s.MoveField(99, MoveDown)
	if got := ids(); got[0] != after[0] {
		t.Error("边界移动应为无动作")
	}
}

// ==================== 列表操作 ====================

func TestStore_ListItems(t *testing.T) {
	s := NewStore()
	field := s.AddField(FieldTypeList)

	item, ok := s.AddListItem(field.ID)
	if !ok || item.ID == "" {
		t.Fatalf("追加列表项失败: %+v %v", item, ok)
	}

	if _, ok := s.AddListItem(s.Fields()[0].ID); ok {
		t.Error("非 list 字段不应接受列表项")
	}
	if _, ok := s.AddListItem("no-such-id"); ok {
		t.Error("不存在的字段不应接受列表项")
	}

	if !s.UpdateListItemContent(field.ID, item.ID, LanguageEN, "Size: 10cm") {
		t.Fatal("更新存在的列表项应成功")
	}
	if s.UpdateListItemContent(field.ID, "no-such-item", LanguageEN, "x") {
		t.Error("不存在的列表项应返回 false")
	}

	sub, ok := s.AddSublistItem(field.ID, item.ID)
	if !ok || sub.ID == "" {
		t.Fatalf("追加子项失败: %+v %v", sub, ok)
	}
	// 子项内容也能按 ID 直接更新
	if !s.UpdateListItemContent(field.ID, sub.ID, LanguageUK, "підпункт") {
		t.Fatal("更新子项应成功")
	}

	var got InputField
	for _, f := range s.Fields() {
		if f.ID == field.ID {
			got = f
		}
	}
	// 初始一项 + 追加一项
	if len(got.Items) != 2 {
		t.Fatalf("列表项数量不对: %d", len(got.Items))
	}
	if got.Items[1].Content.EN != "Size: 10cm" {
		t.Errorf("列表项内容不对: %+v", got.Items[1].Content)
	}
	if len(got.Items[1].Sublist) != 1 || got.Items[1].Sublist[0].Content.UK != "підпункт" {
		t.Errorf("子列表内容不对: %+v", got.Items[1].Sublist)
	}
}

func TestStore_ReplaceListItemSublist(t *testing.T) {
	s := NewStore()
	field := s.AddField(FieldTypeList)
	itemID := field.Items[0].ID

	sublist := []ListItem{
		{ID: "keep-me", Content: LocalizedValue{UK: "один"}},
		{Content: LocalizedValue{EN: "two"}}, // 缺 ID，应补齐
	}
	if !s.ReplaceListItemSublist(field.ID, itemID, sublist) {
		t.Fatal("替换应成功")
	}

	got := s.Fields()[3].Items[0].Sublist
	if len(got) != 2 {
		t.Fatalf("子列表长度不对: %d", len(got))
	}
	if got[0].ID != "keep-me" {
		t.Errorf("已有 ID 应保留: %s", got[0].ID)
	}
	if got[1].ID == "" {
		t.Error("缺失的 ID 应被补齐")
	}

	if s.ReplaceListItemSublist(field.ID, "no-such-item", nil) {
		t.Error("不存在的列表项应返回 false")
	}
}

// ==================== 选择器 ====================

func TestStore_Selectors(t *testing.T) {
	s := NewStore()

	s.SetSelectedProductTypeID("type-1")
	if s.SelectedProductTypeID() != "type-1" {
		t.Error("商品类型未记录")
	}

	s.SetActiveLanguage(LanguageEN)
	if s.ActiveLanguage() != LanguageEN {
		t.Error("语言切换未生效")
	}

	s.SetActiveLanguage(Language("fr"))
	if s.ActiveLanguage() != LanguageEN {
		t.Error("不支持的语言应被忽略")
	}
}

// ==================== 快照与持久化 ====================

func TestStore_SnapshotShape(t *testing.T) {
	s := NewStore()
	snap := s.Snapshot()

	if snap.SelectedProductTypeID != nil {
		t.Error("未选择类型时快照里应为 null")
	}

	s.SetSelectedProductTypeID("type-9")
	snap = s.Snapshot()
	if snap.SelectedProductTypeID == nil || *snap.SelectedProductTypeID != "type-9" {
		t.Errorf("快照里的类型不对: %v", snap.SelectedProductTypeID)
	}

	// 快照是深拷贝，改快照不影响草稿
	snap.ProductInfo[0].Value.UK = "підмінено"
	if s.Fields()[0].Value.UK == "підмінено" {
		t.Error("快照应与草稿隔离")
	}
}

func TestStore_SaveLoadRoundtrip(t *testing.T) {
	slot := newMemSlot()

	// 组装一份有代表性的草稿
	s := NewStore()
	s.SetFieldValue(s.Fields()[0].ID, LanguageUK, "Ваза")
	s.SetImageAt(0, "http://cdn/main.jpg")
	s.SetSelectedProductTypeID("type-1")
	s.SetActiveLanguage(LanguageEN)
	field := s.AddField(FieldTypeList)
	item, _ := s.AddListItem(field.ID)
	s.UpdateListItemContent(field.ID, item.ID, LanguageEN, "Size: 10cm")

	if err := s.Save(slot); err != nil {
		t.Fatalf("保存失败: %v", err)
	}
	if _, ok := slot.data[SnapshotKey]; !ok {
		t.Fatalf("应写入 %s 键", SnapshotKey)
	}

	// 新容器加载后状态完全一致
	restored := NewStore()
	if !restored.Load(slot) {
		t.Fatal("加载应成功")
	}

	if restored.Images()[0] != "http://cdn/main.jpg" {
		t.Error("图片未恢复")
	}
	if restored.SelectedProductTypeID() != "type-1" {
		t.Error("商品类型未恢复")
	}
	if restored.ActiveLanguage() != LanguageEN {
		t.Error("语言未恢复")
	}

	fields := restored.Fields()
	if fields[0].Value.UK != "Ваза" {
		t.Error("字段值未恢复")
	}
	var listField InputField
	for _, f := range fields {
		if f.Type == FieldTypeList {
			listField = f
		}
	}
	// 初始项 + 追加项，追加项带英文文本
	if len(listField.Items) != 2 || listField.Items[1].Content.EN != "Size: 10cm" {
		t.Errorf("列表项未恢复: %+v", listField.Items)
	}
}

func TestStore_LoadMissingKey(t *testing.T) {
	s := NewStore()
	before := len(s.Fields())

	if s.Load(newMemSlot()) {
		t.Error("键不存在时应返回 false")
	}
	if len(s.Fields()) != before {
		t.Error("当前草稿应保持不变")
	}
}

func TestStore_LoadCorruptSnapshot(t *testing.T) {
	slot := newMemSlot()
	slot.data[SnapshotKey] = []byte(`{"productImages": not-json`)

	s := NewStore()
	s.SetFieldValue(s.Fields()[0].ID, LanguageUK, "збережено")

	if s.Load(slot) {
		t.Error("损坏的快照应返回 false")
	}
	if s.Fields()[0].Value.UK != "збережено" {
		t.Error("损坏的快照不应破坏当前草稿")
	}
}

func TestStore_LoadReadError(t *testing.T) {
	slot := newMemSlot()
	slot.err = errSlot

	if NewStore().Load(slot) {
		t.Error("读取出错时应返回 false")
	}
}

var errSlot = errNamed("slot unavailable")

type errNamed string

func (e errNamed) Error() string { return string(e) }

func TestStore_RestoreDefaults(t *testing.T) {
	s := NewStore()
	s.SetSelectedProductTypeID("type-1")
	s.SetActiveLanguage(LanguageEN)

	// 空快照回退到默认值
	s.Restore(Snapshot{})

	if len(s.Images()) != DefaultImageSlots {
		t.Error("图片槽应回退为默认数量")
	}
	if s.ActiveLanguage() != LanguageUK {
		t.Error("语言应回退为 uk")
	}
	if s.SelectedProductTypeID() != "" {
		t.Error("商品类型应被清空")
	}
}
