package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthCheck 健康检查
// 用于容器健康检查和负载均衡器探活
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}
