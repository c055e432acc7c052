package router

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"qr-system/internal/api"
	"qr-system/internal/config"
	"qr-system/internal/middleware"
)

// SetupRoutes 配置所有路由
func SetupRoutes(r *gin.Engine, qrHandler *api.QRCodeHandler, authHandler *api.AuthHandler, cfg *config.Config, publicFS http.FileSystem) {
	// 健康检查接口（不需要任何中间件）
	r.GET("/api/health", api.HealthCheck)

	// 认证相关
	auth := r.Group("/api/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/register", authHandler.Register)
	}

	// 二维码接口，全部需要认证
	qr := r.Group("/api/qr")
	qr.Use(middleware.JWT(cfg.JWT))
	{
		qr.POST("/generate", qrHandler.Generate)
		qr.POST("/generate/csv", qrHandler.GenerateCSV)
		qr.GET("/history", qrHandler.History)
		qr.POST("/share", qrHandler.Share)
		qr.POST("/scan", qrHandler.Scan)
		qr.DELETE("/:id", qrHandler.Delete)
	}

	// 上传目录只读访问
	r.Static("/uploads", cfg.Upload.Dir)

	// 前端静态页面
	setupSPARoutes(r, publicFS)
}

// setupSPARoutes 设置前端页面路由
// 未命中的GET请求回退到前端入口页
func setupSPARoutes(r *gin.Engine, publicFS http.FileSystem) {
	r.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") || c.Request.Method != http.MethodGet {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "Not found",
			})
			return
		}

		path := c.Request.URL.Path
		if f, err := publicFS.Open(path); err == nil {
			f.Close()
			c.FileFromFS(path, publicFS)
			return
		}

		c.FileFromFS("/", publicFS)
	})
}
