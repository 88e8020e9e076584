package service

import (
	"context"
	"fmt"
	"strings"

	"catalog_admin_v1/internal/draft"
	"catalog_admin_v1/pkg/catalog"
	"catalog_admin_v1/pkg/gateway"
)

const (
	productsEndpoint     = "/products"
	productTypesEndpoint = "/product-types"
)

// ValidationResult 提交前校验结果
// 校验失败不是错误，是带消息的普通返回值，界面负责把消息展示出来
type ValidationResult struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message"`
}

// ProductService 商品与商品类型的 CRUD 透传，外加提交前的
// 载荷组装与校验
type ProductService struct {
	gw *gateway.Client
}

func NewProductService(gw *gateway.Client) *ProductService {
	return &ProductService{gw: gw}
}

// ==================== 商品 CRUD ====================

// GetAllProducts 分页拉取商品列表
func (s *ProductService) GetAllProducts(ctx context.Context, page, limit int) *gateway.Envelope {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	return s.gw.Get(ctx, fmt.Sprintf("%s?page=%d&limit=%d", productsEndpoint, page, limit), true, 0)
}

// GetProductByID 按 ID 拉取单个商品
func (s *ProductService) GetProductByID(ctx context.Context, productID string) *gateway.Envelope {
	return s.gw.Get(ctx, productsEndpoint+"/"+productID, true, 0)
}

// CreateProduct 创建商品（草稿最终提交的一次性调用）
func (s *ProductService) CreateProduct(ctx context.Context, payload catalog.ProductPayload) *gateway.Envelope {
	return s.gw.Post(ctx, productsEndpoint, payload)
}

// UpdateProduct 更新商品
func (s *ProductService) UpdateProduct(ctx context.Context, productID string, req catalog.UpdateProductReq) *gateway.Envelope {
	return s.gw.Put(ctx, productsEndpoint+"/"+productID, req)
}

// DeleteProduct 删除商品
func (s *ProductService) DeleteProduct(ctx context.Context, productID string) *gateway.Envelope {
	return s.gw.Delete(ctx, productsEndpoint+"/"+productID, nil)
}

// ==================== 商品类型 CRUD ====================

// GetAllProductTypes 拉取全部商品类型
func (s *ProductService) GetAllProductTypes(ctx context.Context) *gateway.Envelope {
	return s.gw.Get(ctx, productTypesEndpoint, true, 0)
}

// CreateProductType 创建商品类型
func (s *ProductService) CreateProductType(ctx context.Context, req catalog.ProductTypeReq) *gateway.Envelope {
	return s.gw.Post(ctx, productTypesEndpoint, req)
}

// UpdateProductType 更新商品类型
func (s *ProductService) UpdateProductType(ctx context.Context, typeID string, req catalog.ProductTypeReq) *gateway.Envelope {
	return s.gw.Put(ctx, productTypesEndpoint+"/"+typeID, req)
}

// DeleteProductType 删除商品类型
func (s *ProductService) DeleteProductType(ctx context.Context, typeID string) *gateway.Envelope {
	return s.gw.Delete(ctx, productTypesEndpoint+"/"+typeID, nil)
}

// ==================== 提交校验与载荷组装 ====================

// ValidateProductData 提交前校验：必须有类型、至少一张图、
// 至少一个非空的商品名称（任一语言均可）
func ValidateProductData(fields []draft.InputField, images []string, productTypeID string) ValidationResult {
	if fields == nil || images == nil {
		return ValidationResult{Message: "Please add product information and images"}
	}

	if productTypeID == "" {
		return ValidationResult{Message: "Please select a product type"}
	}

	hasImage := false
	for _, img := range images {
		if img != "" {
			hasImage = true
			break
		}
	}
	if !hasImage {
		return ValidationResult{Message: "Please add at least one product image"}
	}

	hasName := false
	for _, f := range fields {
		if f.Type == draft.FieldTypeProductName &&
			(strings.TrimSpace(f.Value.UK) != "" || strings.TrimSpace(f.Value.EN) != "") {
			hasName = true
			break
		}
	}
	if !hasName {
		return ValidationResult{Message: "Please add at least one product name"}
	}

	return ValidationResult{Valid: true, Message: "Validation successful"}
}

// BuildProductPayload 把草稿内容组装成创建商品的请求体
// 名称按语言分别收集（只取修剪后非空的），第一张非空图为主图
func BuildProductPayload(
	fields []draft.InputField,
	productTypeID string,
	images []string,
	html catalog.LocalizedContent,
) (catalog.ProductPayload, error) {
	if productTypeID == "" {
		return catalog.ProductPayload{}, fmt.Errorf("please select a product type")
	}

	namesUK := make([]string, 0)
	namesEN := make([]string, 0)
	for _, f := range fields {
		if f.Type != draft.FieldTypeProductName {
			continue
		}
		if v := strings.TrimSpace(f.Value.UK); v != "" {
			namesUK = append(namesUK, v)
		}
		if v := strings.TrimSpace(f.Value.EN); v != "" {
			namesEN = append(namesEN, v)
		}
	}
	if len(namesUK) == 0 && len(namesEN) == 0 {
		return catalog.ProductPayload{}, fmt.Errorf("please add at least one product name in either Ukrainian or English")
	}

	payloadImages := make([]catalog.ProductImagePayload, 0, len(images))
	for i, url := range images {
		if url == "" {
			continue
		}
		payloadImages = append(payloadImages, catalog.ProductImagePayload{
			ImageURL: url,
			IsMain:   i == 0, // 约定：0 号槽位是主图
		})
	}

	return catalog.ProductPayload{
		ProductTypeID: productTypeID,
		ProductNames:  catalog.ProductNames{UK: namesUK, EN: namesEN},
		Images:        payloadImages,
		HTMLContent:   html,
	}, nil
}
