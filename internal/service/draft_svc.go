package service

import (
	"context"
	"fmt"
	"html"
	"log"
	"strings"
	"sync"

	"catalog_admin_v1/internal/draft"
	"catalog_admin_v1/internal/repository"
	"catalog_admin_v1/pkg/catalog"
	"catalog_admin_v1/pkg/gateway"
)

// DraftService 管理各浏览器会话的草稿
// 每个会话一份 draft.Store，注册表常驻内存；显式的保存/恢复走快照仓库
type DraftService struct {
	stores    sync.Map // sessionID -> *draft.Store
	snapshots repository.SnapshotRepository
	storage   *StorageService
	products  *ProductService
}

func NewDraftService(
	snapshots repository.SnapshotRepository,
	storage *StorageService,
	products *ProductService,
) *DraftService {
	return &DraftService{
		snapshots: snapshots,
		storage:   storage,
		products:  products,
	}
}

// StoreFor 取会话对应的草稿，没有就建一份默认草稿
func (s *DraftService) StoreFor(sessionID string) *draft.Store {
	if v, ok := s.stores.Load(sessionID); ok {
		return v.(*draft.Store)
	}
	v, _ := s.stores.LoadOrStore(sessionID, draft.NewStore())
	return v.(*draft.Store)
}

// Save 把会话草稿序列化进持久化槽位
func (s *DraftService) Save(sessionID string) error {
	return s.StoreFor(sessionID).Save(s.snapshots.Slot(sessionID))
}

// Load 从持久化槽位恢复会话草稿，返回是否有数据被加载
func (s *DraftService) Load(sessionID string) bool {
	return s.StoreFor(sessionID).Load(s.snapshots.Slot(sessionID))
}

// Discard 丢弃会话草稿和它的快照
func (s *DraftService) Discard(sessionID string) {
	s.stores.Delete(sessionID)
	if err := s.snapshots.Drop(sessionID); err != nil {
		log.Printf("[Draft] 丢弃会话快照失败 %s: %v", sessionID, err)
	}
}

// ==================== 提交 ====================

// SubmitResult 提交结果：要么校验没过，要么带上后端的响应信封
type SubmitResult struct {
	Validation ValidationResult  `json:"validation"`
	Response   *gateway.Envelope `json:"response,omitempty"`
}

// Submit 最终提交：校验 → 图片换托管 URL → 组装载荷 → 一次性创建调用
// 后端没有暂存，草稿只有在这里才变成真正的商品
func (s *DraftService) Submit(ctx context.Context, sessionID string) (SubmitResult, error) {
	store := s.StoreFor(sessionID)
	fields := store.Fields()
	images := store.Images()
	typeID := store.SelectedProductTypeID()

	if v := ValidateProductData(fields, images, typeID); !v.Valid {
		return SubmitResult{Validation: v}, nil
	}

	hosted, err := s.resolveImages(ctx, images)
	if err != nil {
		return SubmitResult{}, err
	}

	htmlContent := catalog.LocalizedContent{
		UK: RenderDraftHTML(fields, draft.LanguageUK),
		EN: RenderDraftHTML(fields, draft.LanguageEN),
	}

	payload, err := BuildProductPayload(fields, typeID, hosted, htmlContent)
	if err != nil {
		return SubmitResult{}, err
	}

	env := s.products.CreateProduct(ctx, payload)
	return SubmitResult{
		Validation: ValidationResult{Valid: true, Message: "Validation successful"},
		Response:   env,
	}, nil
}

// resolveImages 把 data-URL 槽位换成托管 URL，已是远程 URL 的原样保留
func (s *DraftService) resolveImages(ctx context.Context, images []string) ([]string, error) {
	out := make([]string, len(images))
	for i, img := range images {
		switch {
		case img == "":
			// 空槽位原样保留，载荷组装时跳过
		case strings.HasPrefix(img, "data:"):
			url, err := s.storage.SaveBase64(ctx, img, "product")
			if err != nil {
				return nil, fmt.Errorf("图片 %d 上传失败: %w", i, err)
			}
			out[i] = url
		default:
			out[i] = img
		}
	}
	return out, nil
}

// ==================== HTML 渲染 ====================

// RenderDraftHTML 按字段顺序把草稿渲染成最终页的 HTML 片段
// 标题字段用 h2、名称用 h1、常规信息用 p、列表用 ul/li（含一层子列表）
func RenderDraftHTML(fields []draft.InputField, lang draft.Language) string {
	var b strings.Builder

	for _, f := range fields {
		switch f.Type {
		case draft.FieldTypeProductName:
			writeTag(&b, "h1", f.Value.Get(lang))
		case draft.FieldTypeProductTitle:
			writeTag(&b, "h2", f.Value.Get(lang))
		case draft.FieldTypeGenInfo:
			writeTag(&b, "p", f.Value.Get(lang))
		case draft.FieldTypeList:
			writeList(&b, f.Items, lang)
		}
	}

	return b.String()
}

func writeTag(b *strings.Builder, tag, text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	fmt.Fprintf(b, "<%s>%s</%s>", tag, html.EscapeString(text), tag)
}

func writeList(b *strings.Builder, items []draft.ListItem, lang draft.Language) {
	if len(items) == 0 {
		return
	}
	b.WriteString("<ul>")
	for _, item := range items {
		b.WriteString("<li>")
		b.WriteString(html.EscapeString(item.Content.Get(lang)))
		writeList(b, item.Sublist, lang)
		b.WriteString("</li>")
	}
	b.WriteString("</ul>")
}
