package catalog

// ==========================================
// DTO: 发往目录后端 API 的请求体
// ==========================================

// LocalizedContent 双语内容 (乌克兰语 / 英语)
type LocalizedContent struct {
	UK string `json:"uk"`
	EN string `json:"en"`
}

// ProductNames 各语言的商品名称列表
type ProductNames struct {
	UK []string `json:"uk"`
	EN []string `json:"en"`
}

// ProductImagePayload 创建商品时的图片项
// 第一张图 (isMain=true) 约定为主图
type ProductImagePayload struct {
	ImageURL string `json:"imageUrl"`
	IsMain   bool   `json:"isMain"`
}

// ProductPayload 创建商品请求体
// POST /products
type ProductPayload struct {
	ProductTypeID string                `json:"productTypeId"`
	ProductNames  ProductNames          `json:"productNames"`
	Images        []ProductImagePayload `json:"images"`
	HTMLContent   LocalizedContent      `json:"htmlContent"`
}

// UpdateProductReq 更新商品请求体（字段全部可选）
// PUT /products/{id}
type UpdateProductReq struct {
	ProductTypeID string           `json:"productTypeId,omitempty"`
	ProductNames  *ProductNames    `json:"productNames,omitempty"`
	Images        []string         `json:"images,omitempty"`
	HTMLContent   *LocalizedContent `json:"htmlContent,omitempty"`
}

// ProductTypeReq 创建/更新商品类型请求体
// POST /product-types, PUT /product-types/{id}
type ProductTypeReq struct {
	Name string `json:"name" binding:"required"`
}

// ==========================================
// 鉴权相关
// ==========================================

// LoginReq 登录请求体
// POST /auth/login
type LoginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterReq 注册请求体
// POST /auth/register
type RegisterReq struct {
	Email     string `json:"email" binding:"required,email"`
	Username  string `json:"username" binding:"required"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

// PasswordResetReq 找回密码请求体
// POST /auth/forgot-password
type PasswordResetReq struct {
	Email string `json:"email" binding:"required,email"`
}

// PasswordResetConfirmReq 重置密码请求体
// POST /auth/reset-password
type PasswordResetConfirmReq struct {
	Token           string `json:"token" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}

// PasswordChangeReq 修改密码请求体
// POST /auth/change-password
type PasswordChangeReq struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}
