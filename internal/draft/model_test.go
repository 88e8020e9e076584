package draft

import (
	"encoding/json"
	"testing"
)

func TestLocalizedValue_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  LocalizedValue
	}{
		{"双语对象", `{"uk":"Ім'я","en":"Name"}`, LocalizedValue{UK: "Ім'я", EN: "Name"}},
		{"旧版纯字符串升级", `"Старий текст"`, LocalizedValue{UK: "Старий текст", EN: ""}},
		{"旧版空字符串", `""`, LocalizedValue{UK: "", EN: ""}},
		{"只有 uk 键", `{"uk":"тільки"}`, LocalizedValue{UK: "тільки", EN: ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v LocalizedValue
			if err := json.Unmarshal([]byte(tt.input), &v); err != nil {
				t.Fatalf("解析失败: %v", err)
			}
			if v != tt.want {
				t.Errorf("解析结果 %+v, 期望 %+v", v, tt.want)
			}
		})
	}
}

func TestLocalizedValue_UnmarshalInvalid(t *testing.T) {
	var v LocalizedValue
	if err := json.Unmarshal([]byte(`42`), &v); err == nil {
		t.Error("数字不是合法的本地化值, 应报错")
	}
}

func TestLocalizedValue_MarshalKeepsBothKeys(t *testing.T) {
	data, err := json.Marshal(LocalizedValue{UK: "а"})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"uk":"а","en":""}` {
		t.Errorf("两个语言键必须同时出现: %s", data)
	}
}

func TestLocalizedValue_GetSet(t *testing.T) {
	var v LocalizedValue
	v.Set(LanguageUK, "укр")
	v.Set(LanguageEN, "eng")

	if v.Get(LanguageUK) != "укр" || v.Get(LanguageEN) != "eng" {
		t.Errorf("读写不对称: %+v", v)
	}
}

func TestLegacySnapshotUpgrade(t *testing.T) {
	// 旧版持久化里 value 是单语言字符串
	legacy := `{
		"productImages": ["", "http://cdn/x.jpg"],
		"productInfo": [
			{"id":"f1","type":"productName","label":"Product Name","value":"Стара назва"},
			{"id":"f2","type":"list","label":"List","value":"","items":[
				{"id":"i1","content":"пункт"}
			]}
		],
		"activeLanguage": "uk",
		"selectedProductTypeId": null
	}`

	var snap Snapshot
	if err := json.Unmarshal([]byte(legacy), &snap); err != nil {
		t.Fatalf("旧格式应能解析: %v", err)
	}

	if got := snap.ProductInfo[0].Value; got != (LocalizedValue{UK: "Стара назва"}) {
		t.Errorf("字段值应升级为双语结构: %+v", got)
	}
	if got := snap.ProductInfo[1].Items[0].Content; got != (LocalizedValue{UK: "пункт"}) {
		t.Errorf("列表项内容应升级为双语结构: %+v", got)
	}
}

func TestFieldType_Valid(t *testing.T) {
	for _, ft := range []FieldType{FieldTypeGenInfo, FieldTypeProductName, FieldTypeProductTitle, FieldTypeList} {
		if !ft.Valid() {
			t.Errorf("%s 应为合法种类", ft)
		}
		if ft.Label() == "" {
			t.Errorf("%s 应有显示名", ft)
		}
	}
	if FieldType("banner").Valid() {
		t.Error("未知种类不应通过校验")
	}
}
