package router

import (
	"github.com/gin-gonic/gin"

	"github.com/scootsupport/scootsupport/internal/handler"
	"github.com/scootsupport/scootsupport/internal/middleware"
	"github.com/scootsupport/scootsupport/internal/service"
)

// Setup 装配路由
func Setup(svc *service.Services, h *handler.Handlers) *gin.Engine {
	r := gin.New()

	r.Use(middleware.Recovery())
	r.Use(middleware.Logging())
	r.Use(middleware.CORS())

	r.GET("/health", h.Health)

	v1 := r.Group("/api/v1")

	// 认证
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/otp/request", h.Auth.RequestOTP)
		authGroup.POST("/otp/verify", h.Auth.VerifyOTP)
		authGroup.POST("/login", h.Auth.Login)
		authGroup.POST("/logout", middleware.RequireAuth(svc), h.Auth.Logout)
	}

	// 登录后接口
	authed := v1.Group("")
	authed.Use(middleware.RequireAuth(svc))
	{
		authed.POST("/chat", h.Chat.SaveChat)
		authed.GET("/conversations", h.Chat.ListConversations)
		authed.GET("/conversations/:id/messages", h.Chat.GetMessages)

		authed.POST("/escalations", h.Escalation.Submit)

		authed.GET("/faqs/:id", h.FAQ.Get)

		authed.POST("/orders", h.Order.Create)
		authed.GET("/orders", h.Order.ListMine)
	}

	// 客户端小部件直接拉启用中的FAQ，无需登录
	v1.GET("/faqs", h.FAQ.ListActive)

	// 管理端接口
	admin := v1.Group("")
	admin.Use(middleware.RequireAuth(svc), middleware.RequireAdmin(svc))
	{
		admin.GET("/escalations", h.Escalation.List)
		admin.PUT("/escalations/:id/status", h.Escalation.UpdateStatus)

		admin.GET("/faqs/all", h.FAQ.ListAll)
		admin.POST("/faqs", h.FAQ.Create)
		admin.PUT("/faqs/:id", h.FAQ.Update)
		admin.DELETE("/faqs/:id", h.FAQ.Delete)

		admin.GET("/admin/orders", h.Order.ListAll)
		admin.PUT("/admin/orders/:id/status", h.Order.UpdateStatus)
	}

	return r
}
