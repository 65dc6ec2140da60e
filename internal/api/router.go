package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"cvform/internal/api/middleware"
	"cvform/internal/config"
	"cvform/internal/metrics"
	"cvform/internal/web"
)

// NewRouter 构建 Gin 路由引擎，挂载通用中间件、页面模板以及健康检查与指标端点。
func NewRouter(cfg *config.Config, logger *slog.Logger) *gin.Engine {
	router := gin.New()
	router.MaxMultipartMemory = cfg.API.MaxUploadBytes
	router.Use(
		gin.Recovery(),
		middleware.CorrelationIDMiddleware(),
		middleware.SlogLoggerMiddleware(logger),
		metrics.GinMiddleware(),
	)
	router.SetHTMLTemplate(web.Templates())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", metrics.Handler())

	return router
}
