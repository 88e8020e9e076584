package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"catalog_admin_v1/internal/draft"
	"catalog_admin_v1/internal/middleware"
	"catalog_admin_v1/internal/service"
)

// DraftController 草稿向导入口
// 所有端点都以会话 Cookie 为粒度操作各自的草稿
type DraftController struct {
	draftService   *service.DraftService
	storageService *service.StorageService
}

func NewDraftController(draftService *service.DraftService, storageService *service.StorageService) *DraftController {
	return &DraftController{
		draftService:   draftService,
		storageService: storageService,
	}
}

func (ctrl *DraftController) store(c *gin.Context) *draft.Store {
	return ctrl.draftService.StoreFor(middleware.GetSessionID(c))
}

// draftState 草稿完整状态的应答体，形状与持久化快照一致
func draftState(store *draft.Store) draft.Snapshot {
	return store.Snapshot()
}

// ==================== 请求体 ====================

type addFieldReq struct {
	Type draft.FieldType `json:"type" binding:"required"`
}

type fieldValueReq struct {
	Language draft.Language `json:"language" binding:"required"`
	Text     string         `json:"text"`
}

type reorderReq struct {
	Index     int                 `json:"index"`
	Direction draft.MoveDirection `json:"direction" binding:"required,oneof=up down"`
}

type setImageReq struct {
	Image string `json:"image" binding:"required"`
}

type addSlotsReq struct {
	Count int `json:"count" binding:"required,min=1"`
}

type mirrorImageReq struct {
	URL string `json:"url" binding:"required,url"`
}

type sublistReplaceReq struct {
	Items []draft.ListItem `json:"items" binding:"required"`
}

type productTypeReq struct {
	ProductTypeID string `json:"productTypeId" binding:"required"`
}

type languageReq struct {
	Language draft.Language `json:"language" binding:"required,oneof=uk en"`
}

// ==================== 草稿整体 ====================

// GetDraft 当前草稿完整状态
// GET /api/draft
func (ctrl *DraftController) GetDraft(c *gin.Context) {
	okData(c, draftState(ctrl.store(c)))
}

// DiscardDraft 丢弃草稿和它的快照
// DELETE /api/draft
func (ctrl *DraftController) DiscardDraft(c *gin.Context) {
	ctrl.draftService.Discard(middleware.GetSessionID(c))
	okData(c, nil)
}

// ==================== 字段 ====================

// AddField 追加信息字段
// POST /api/draft/fields
func (ctrl *DraftController) AddField(c *gin.Context) {
	var req addFieldReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if !req.Type.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "未知的字段种类: " + string(req.Type),
		})
		return
	}
	okData(c, ctrl.store(c).AddField(req.Type))
}

// RemoveField 删除字段
// 最后一个商品名称字段不许删：返回 code=1 的业务告警，前端以 toast 呈现
// DELETE /api/draft/fields/:fieldId
func (ctrl *DraftController) RemoveField(c *gin.Context) {
	err := ctrl.store(c).RemoveField(c.Param("fieldId"))
	if errors.Is(err, draft.ErrLastProductName) {
		c.JSON(http.StatusOK, gin.H{
			"code":    1,
			"message": "At least one product name field is required",
		})
		return
	}
	okData(c, nil)
}

// UpdateFieldValue 更新字段某语言的文本
// PUT /api/draft/fields/:fieldId/value
func (ctrl *DraftController) UpdateFieldValue(c *gin.Context) {
	var req fieldValueReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	ctrl.store(c).SetFieldValue(c.Param("fieldId"), req.Language, req.Text)
	okData(c, nil)
}

// ReorderField 字段与相邻字段换位
// PUT /api/draft/fields/reorder
func (ctrl *DraftController) ReorderField(c *gin.Context) {
	var req reorderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	ctrl.store(c).MoveField(req.Index, req.Direction)
	okData(c, draftState(ctrl.store(c)).ProductInfo)
}

// ==================== 列表项 ====================

// AddListItem 给 list 字段追加列表项
// POST /api/draft/fields/:fieldId/items
func (ctrl *DraftController) AddListItem(c *gin.Context) {
	item, ok := ctrl.store(c).AddListItem(c.Param("fieldId"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"code":    404,
			"message": "字段不存在或不是列表",
		})
		return
	}
	okData(c, item)
}

// AddSublistItem 给列表项追加子项
// POST /api/draft/fields/:fieldId/items/:itemId/sublist
func (ctrl *DraftController) AddSublistItem(c *gin.Context) {
	item, ok := ctrl.store(c).AddSublistItem(c.Param("fieldId"), c.Param("itemId"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"code":    404,
			"message": "列表项不存在",
		})
		return
	}
	okData(c, item)
}

// UpdateListItem 更新列表项（顶层或子项）某语言的文本
// PUT /api/draft/fields/:fieldId/items/:itemId
func (ctrl *DraftController) UpdateListItem(c *gin.Context) {
	var req fieldValueReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if !ctrl.store(c).UpdateListItemContent(c.Param("fieldId"), c.Param("itemId"), req.Language, req.Text) {
		c.JSON(http.StatusNotFound, gin.H{
			"code":    404,
			"message": "列表项不存在",
		})
		return
	}
	okData(c, nil)
}

// ReplaceSublist 整体替换列表项的子列表
// 与文本更新是两个独立端点，结构变更必须显式走这里
// PUT /api/draft/fields/:fieldId/items/:itemId/sublist
func (ctrl *DraftController) ReplaceSublist(c *gin.Context) {
	var req sublistReplaceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if !ctrl.store(c).ReplaceListItemSublist(c.Param("fieldId"), c.Param("itemId"), req.Items) {
		c.JSON(http.StatusNotFound, gin.H{
			"code":    404,
			"message": "列表项不存在",
		})
		return
	}
	okData(c, nil)
}

// ==================== 图片 ====================

// SetImage 替换指定槽位的图片（data-URL 或远程 URL）
// PUT /api/draft/images/:index
func (ctrl *DraftController) SetImage(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		badRequest(c, err)
		return
	}

	var req setImageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if err := ctrl.store(c).SetImageAt(index, req.Image); err != nil {
		// 槽位不够属于调用方前置条件违规，先 AddImageSlots 再来
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": err.Error(),
		})
		return
	}
	okData(c, nil)
}

// AddImageSlots 追加空图片槽
// POST /api/draft/images/slots
func (ctrl *DraftController) AddImageSlots(c *gin.Context) {
	var req addSlotsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	ctrl.store(c).AddImageSlots(req.Count)
	okData(c, ctrl.store(c).Images())
}

// MirrorImage 把外部图片镜像到自己的存储并写入槽位
// POST /api/draft/images/:index/mirror
func (ctrl *DraftController) MirrorImage(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		badRequest(c, err)
		return
	}

	var req mirrorImageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	hosted, err := ctrl.storageService.MirrorURL(c.Request.Context(), req.URL, "product")
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"code":    502,
			"message": "镜像图片失败: " + err.Error(),
		})
		return
	}

	if err := ctrl.store(c).SetImageAt(index, hosted); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": err.Error(),
		})
		return
	}
	okData(c, gin.H{"imageUrl": hosted})
}

// ==================== 选择器 ====================

// SetProductType 记录所选商品类型
// PUT /api/draft/product-type
func (ctrl *DraftController) SetProductType(c *gin.Context) {
	var req productTypeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	ctrl.store(c).SetSelectedProductTypeID(req.ProductTypeID)
	okData(c, nil)
}

// SetLanguage 切换预览语言
// PUT /api/draft/language
func (ctrl *DraftController) SetLanguage(c *gin.Context) {
	var req languageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	ctrl.store(c).SetActiveLanguage(req.Language)
	okData(c, nil)
}

// ==================== 持久化与提交 ====================

// SaveDraft 把草稿写进持久化槽位（进入最终预览页前调用）
// POST /api/draft/save
func (ctrl *DraftController) SaveDraft(c *gin.Context) {
	if err := ctrl.draftService.Save(middleware.GetSessionID(c)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "保存草稿失败: " + err.Error(),
		})
		return
	}
	okData(c, nil)
}

// LoadDraft 从持久化槽位恢复草稿
// 没有数据或数据损坏都不是错误，loaded=false 即可
// POST /api/draft/load
func (ctrl *DraftController) LoadDraft(c *gin.Context) {
	loaded := ctrl.draftService.Load(middleware.GetSessionID(c))
	okData(c, gin.H{"loaded": loaded})
}

// SubmitDraft 最终提交
// 校验没过返回校验结果；过了就转发后端的创建响应
// POST /api/draft/submit
func (ctrl *DraftController) SubmitDraft(c *gin.Context) {
	result, err := ctrl.draftService.Submit(c.Request.Context(), middleware.GetSessionID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "提交失败: " + err.Error(),
		})
		return
	}

	if !result.Validation.Valid {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"code":    422,
			"message": result.Validation.Message,
			"data":    result.Validation,
		})
		return
	}

	relay(c, result.Response)
}
