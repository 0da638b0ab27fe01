package middleware

import (
	"net/http"

	"dormhub/pkg/logger"
	"dormhub/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Recovery 捕获panic并返回统一的500消息体
func Recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		logger.GetLogger().WithFields(logrus.Fields{
			"method": c.Request.Method,
			"route":  c.FullPath(),
			"panic":  recovered,
		}).Error("Panic recovered")

		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Message{Message: "Server Error"})
	})
}
