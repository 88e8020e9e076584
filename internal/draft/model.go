package draft

import "encoding/json"

// ==================== 基础类型 ====================

// Language 草稿支持的语言，固定两种
type Language string

const (
	LanguageUK Language = "uk"
	LanguageEN Language = "en"
)

// Valid 是否为受支持的语言
func (l Language) Valid() bool {
	return l == LanguageUK || l == LanguageEN
}

// FieldType 信息字段的种类
type FieldType string

const (
	FieldTypeGenInfo      FieldType = "geninfo"
	FieldTypeProductName  FieldType = "productName"
	FieldTypeProductTitle FieldType = "productTitle"
	FieldTypeList         FieldType = "list"
)

// fieldLabels 各种类的默认显示名
var fieldLabels = map[FieldType]string{
	FieldTypeGenInfo:      "General Information",
	FieldTypeProductName:  "Product Name",
	FieldTypeProductTitle: "Product Title",
	FieldTypeList:         "List",
}

// Valid 是否为受支持的字段种类
func (t FieldType) Valid() bool {
	_, ok := fieldLabels[t]
	return ok
}

// Label 种类的默认显示名
func (t FieldType) Label() string {
	return fieldLabels[t]
}

// ==================== 本地化值 ====================

// LocalizedValue 双语文本，两个语言键永远同时存在（允许为空串）
type LocalizedValue struct {
	UK string `json:"uk"`
	EN string `json:"en"`
}

// Get 按语言取值
func (v LocalizedValue) Get(lang Language) string {
	if lang == LanguageEN {
		return v.EN
	}
	return v.UK
}

// Set 按语言赋值
func (v *LocalizedValue) Set(lang Language, text string) {
	if lang == LanguageEN {
		v.EN = text
		return
	}
	v.UK = text
}

// UnmarshalJSON 兼容旧的单语言持久化格式：
// value 为纯字符串时升级为 {uk: <原值>, en: ""}
func (v *LocalizedValue) UnmarshalJSON(data []byte) error {
	var legacy string
	if err := json.Unmarshal(data, &legacy); err == nil {
		v.UK = legacy
		v.EN = ""
		return nil
	}

	type plain LocalizedValue
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*v = LocalizedValue(p)
	return nil
}

// ==================== 草稿结构 ====================

// ListItem 列表项，sublist 允许递归嵌套（界面上只用到一层）
type ListItem struct {
	ID      string         `json:"id"`
	Content LocalizedValue `json:"content"`
	Sublist []ListItem     `json:"sublist,omitempty"`
}

// InputField 信息字段，顺序即展示顺序
type InputField struct {
	ID    string         `json:"id"`
	Type  FieldType      `json:"type"`
	Label string         `json:"label"`
	Value LocalizedValue `json:"value"`
	Items []ListItem     `json:"items,omitempty"` // 仅 list 种类使用
}

// Snapshot 草稿的持久化快照，线上格式固定不可改
type Snapshot struct {
	ProductImages         []string     `json:"productImages"`
	ProductInfo           []InputField `json:"productInfo"`
	ActiveLanguage        Language     `json:"activeLanguage"`
	SelectedProductTypeID *string      `json:"selectedProductTypeId"`
}

// ==================== 深拷贝辅助 ====================

func copyItems(items []ListItem) []ListItem {
	if items == nil {
		return nil
	}
	out := make([]ListItem, len(items))
	for i, item := range items {
		out[i] = item
		out[i].Sublist = copyItems(item.Sublist)
	}
	return out
}

func copyFields(fields []InputField) []InputField {
	out := make([]InputField, len(fields))
	for i, f := range fields {
		out[i] = f
		out[i].Items = copyItems(f.Items)
	}
	return out
}
