package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"qr-system/internal/pkg/logger"
)

// Logger 请求日志中间件
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()

		c.Next()

		latency := time.Since(startTime)
		reqMethod := c.Request.Method
		reqUri := c.Request.RequestURI
		statusCode := c.Writer.Status()
		clientIP := c.ClientIP()

		if statusCode >= 500 {
			logger.Errorf("[%s] %s %s %d %v - Internal Server Error",
				clientIP, reqMethod, reqUri, statusCode, latency)
		} else if statusCode >= 400 {
			logger.Warnf("[%s] %s %s %d %v - Client Error",
				clientIP, reqMethod, reqUri, statusCode, latency)
		} else {
			logger.Infof("[%s] %s %s %d %v",
				clientIP, reqMethod, reqUri, statusCode, latency)
		}
	}
}
