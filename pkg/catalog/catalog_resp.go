package catalog

// ==========================================
// DTO: 接收目录后端 API 返回的 JSON 数据
// ==========================================

// ProductImageResp 已持久化的商品图片
type ProductImageResp struct {
	ID        string `json:"id"`
	ImageURL  string `json:"imageUrl"`
	IsMain    bool   `json:"isMain"`
	ProductID string `json:"productId"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// ProductTypeBrief 商品内嵌的类型摘要
type ProductTypeBrief struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ProductResp 商品 API 响应
// GET /products/{id}
type ProductResp struct {
	ID            string             `json:"id"`
	Name          string             `json:"name"`
	ProductNames  ProductNames       `json:"productNames"`
	HTMLContent   LocalizedContent   `json:"htmlContent"`
	Images        []ProductImageResp `json:"images"`
	ProductTypeID string             `json:"productTypeId"`
	ProductType   ProductTypeBrief   `json:"productType"`
	CreatedAt     string             `json:"createdAt"`
	UpdatedAt     string             `json:"updatedAt,omitempty"`
}

// ProductTypeResp 商品类型 API 响应
// GET /product-types
type ProductTypeResp struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// UserResp 用户信息
// GET /auth/profile
type UserResp struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	Role         string `json:"role"` // USER | ADMIN
	FirstName    string `json:"firstName,omitempty"`
	LastName     string `json:"lastName,omitempty"`
	CreatedAt    string `json:"createdAt"`
	UpdatedAt    string `json:"updatedAt"`
	LastLogin    string `json:"lastLogin,omitempty"`
	IsActive     bool   `json:"isActive"`
	ProfileImage string `json:"profileImage,omitempty"`
}

// AuthResp 登录/注册响应
// POST /auth/login, POST /auth/register
type AuthResp struct {
	AccessToken string   `json:"access_token"`
	User        UserResp `json:"user"`
}
