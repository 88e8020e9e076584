package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"catalog_admin_v1/internal/service"
	"catalog_admin_v1/pkg/catalog"
)

// ProductController 商品与商品类型的 CRUD 透传入口
type ProductController struct {
	productService *service.ProductService
}

func NewProductController(productService *service.ProductService) *ProductController {
	return &ProductController{productService: productService}
}

// ==================== 商品 ====================

// GetProducts 分页商品列表
// GET /api/products?page=1&limit=10
func (ctrl *ProductController) GetProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	relay(c, ctrl.productService.GetAllProducts(c.Request.Context(), page, limit))
}

// GetProduct 单个商品
// GET /api/products/:id
func (ctrl *ProductController) GetProduct(c *gin.Context) {
	relay(c, ctrl.productService.GetProductByID(c.Request.Context(), c.Param("id")))
}

// CreateProduct 直接创建商品（不经草稿向导的后台表单入口）
// POST /api/products
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	var payload catalog.ProductPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		badRequest(c, err)
		return
	}
	relay(c, ctrl.productService.CreateProduct(c.Request.Context(), payload))
}

// UpdateProduct 更新商品
// PUT /api/products/:id
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	var req catalog.UpdateProductReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	relay(c, ctrl.productService.UpdateProduct(c.Request.Context(), c.Param("id"), req))
}

// DeleteProduct 删除商品
// DELETE /api/products/:id
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	relay(c, ctrl.productService.DeleteProduct(c.Request.Context(), c.Param("id")))
}

// ==================== 商品类型 ====================

// GetProductTypes 全部商品类型
// GET /api/product-types
func (ctrl *ProductController) GetProductTypes(c *gin.Context) {
	relay(c, ctrl.productService.GetAllProductTypes(c.Request.Context()))
}

// CreateProductType 创建商品类型
// POST /api/product-types
func (ctrl *ProductController) CreateProductType(c *gin.Context) {
	var req catalog.ProductTypeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	relay(c, ctrl.productService.CreateProductType(c.Request.Context(), req))
}

// UpdateProductType 更新商品类型
// PUT /api/product-types/:id
func (ctrl *ProductController) UpdateProductType(c *gin.Context) {
	var req catalog.ProductTypeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	relay(c, ctrl.productService.UpdateProductType(c.Request.Context(), c.Param("id"), req))
}

// DeleteProductType 删除商品类型
// DELETE /api/product-types/:id
func (ctrl *ProductController) DeleteProductType(c *gin.Context) {
	relay(c, ctrl.productService.DeleteProductType(c.Request.Context(), c.Param("id")))
}
