package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cvform/internal/api/middleware"
	"cvform/internal/config"
	"cvform/internal/scan"
	"cvform/internal/session"
)

// multipartOverhead 为表单文本字段与 multipart 边界预留的空间。
const multipartOverhead = 1 << 20

// RegisterRoutes 注册页面与 /v1 JSON 路由，全部挂在会话中间件之后。
func RegisterRoutes(
	router *gin.Engine,
	cfg *config.Config,
	manager *session.Manager,
	scanner scan.Scanner,
) {
	entryHandler := NewEntryHandler(scanner, cfg.API.MaxUploadBytes)
	formWsHandler := NewFormWsHandler()
	sessionMiddleware := middleware.SessionMiddleware(manager, middleware.SessionOptions{
		CookieName: cfg.Session.CookieName,
		Secure:     cfg.Session.SecureCookie,
	})
	limitBody := bodyLimit(cfg.API.MaxUploadBytes + multipartOverhead)

	pages := router.Group("")
	pages.Use(sessionMiddleware)
	{
		pages.GET("/", entryHandler.Page)
		pages.POST("/entries", limitBody, entryHandler.Submit)
		pages.POST("/entries/:index/show", entryHandler.Show)
		pages.POST("/entries/:index/delete", entryHandler.Delete)
		pages.GET("/entries/:index/image", entryHandler.EntryImage)
		pages.GET("/selection/image", entryHandler.SelectedImage)
		pages.GET("/selection/export", entryHandler.Export)
		pages.GET("/ws/form", formWsHandler.HandleConnection)
	}

	v1 := router.Group("/v1")
	v1.Use(sessionMiddleware)
	{
		entryGroup := v1.Group("/entries")
		{
			entryGroup.GET("", entryHandler.ListEntries)
			entryGroup.POST("", limitBody, entryHandler.CreateEntry)
			entryGroup.DELETE("/:index", entryHandler.DeleteEntry)
			entryGroup.POST("/:index/select", entryHandler.SelectEntry)
		}

		selectionGroup := v1.Group("/selection")
		{
			selectionGroup.GET("", entryHandler.GetSelection)
			selectionGroup.DELETE("", entryHandler.ClearSelection)
			selectionGroup.GET("/export", entryHandler.Export)
		}
	}
}

// bodyLimit 限制请求体大小，超出时读取会返回 *http.MaxBytesError。
func bodyLimit(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		c.Next()
	}
}
