package router

import (
	"github.com/gin-gonic/gin"

	"catalog_admin_v1/internal/controller"
	"catalog_admin_v1/internal/middleware"
)

// Controllers 路由需要的控制器集合
type Controllers struct {
	Auth    *controller.AuthController
	Product *controller.ProductController
	Draft   *controller.DraftController
	Session *controller.SessionController
}

// SetupRouter 创建引擎并注册全部路由
func SetupRouter(ctrls *Controllers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLog(), middleware.EnsureSession())

	InitRoutes(r, ctrls)
	return r
}

// InitRoutes 注册所有路由
func InitRoutes(r *gin.Engine, ctrls *Controllers) {
	api := r.Group("/api")
	{
		// auth 鉴权组
		auth := api.Group("/auth")
		{
			auth.POST("/login", ctrls.Auth.Login)
			auth.POST("/register", ctrls.Auth.Register)
			auth.GET("/profile", ctrls.Auth.Profile)
			auth.POST("/logout", ctrls.Auth.Logout)
			auth.POST("/forgot-password", ctrls.Auth.ForgotPassword)
			auth.POST("/reset-password", ctrls.Auth.ResetPassword)
			auth.POST("/change-password", ctrls.Auth.ChangePassword)
		}

		// products 商品 CRUD 透传
		products := api.Group("/products")
		{
			products.GET("", ctrls.Product.GetProducts)
			products.GET("/:id", ctrls.Product.GetProduct)
			products.POST("", ctrls.Product.CreateProduct)
			products.PUT("/:id", ctrls.Product.UpdateProduct)
			products.DELETE("/:id", ctrls.Product.DeleteProduct)
		}

		// product-types 商品类型 CRUD 透传
		productTypes := api.Group("/product-types")
		{
			productTypes.GET("", ctrls.Product.GetProductTypes)
			productTypes.POST("", ctrls.Product.CreateProductType)
			productTypes.PUT("/:id", ctrls.Product.UpdateProductType)
			productTypes.DELETE("/:id", ctrls.Product.DeleteProductType)
		}

		// draft 草稿向导
		d := api.Group("/draft")
		{
			d.GET("", ctrls.Draft.GetDraft)
			d.DELETE("", ctrls.Draft.DiscardDraft)

			d.POST("/fields", ctrls.Draft.AddField)
			d.PUT("/fields/reorder", ctrls.Draft.ReorderField)
			d.DELETE("/fields/:fieldId", ctrls.Draft.RemoveField)
			d.PUT("/fields/:fieldId/value", ctrls.Draft.UpdateFieldValue)
			d.POST("/fields/:fieldId/items", ctrls.Draft.AddListItem)
			d.PUT("/fields/:fieldId/items/:itemId", ctrls.Draft.UpdateListItem)
			d.POST("/fields/:fieldId/items/:itemId/sublist", ctrls.Draft.AddSublistItem)
			d.PUT("/fields/:fieldId/items/:itemId/sublist", ctrls.Draft.ReplaceSublist)

			d.POST("/images/slots", ctrls.Draft.AddImageSlots)
			d.PUT("/images/:index", ctrls.Draft.SetImage)
			d.POST("/images/:index/mirror", ctrls.Draft.MirrorImage)

			d.PUT("/product-type", ctrls.Draft.SetProductType)
			d.PUT("/language", ctrls.Draft.SetLanguage)

			d.POST("/save", ctrls.Draft.SaveDraft)
			d.POST("/load", ctrls.Draft.LoadDraft)
			d.POST("/submit", ctrls.Draft.SubmitDraft)
		}

		// session 会话状态
		session := api.Group("/session")
		{
			session.GET("", ctrls.Session.GetSession)
			session.POST("/activity", ctrls.Session.Touch)
		}
	}
}
