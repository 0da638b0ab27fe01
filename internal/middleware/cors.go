package middleware

import (
	"strings"
	"time"

	"dormhub/pkg/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS 跨域配置；接口使用 Bearer 认证，Authorization 头总是允许
func CORS(cfg config.CORSConfig) gin.HandlerFunc {
	c := cors.Config{
		AllowMethods:     cfg.AllowMethods,
		AllowHeaders:     withHeader(cfg.AllowHeaders, "Authorization"),
		ExposeHeaders:    cfg.ExposeHeaders,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           time.Duration(cfg.MaxAge) * time.Hour,
	}

	for _, origin := range cfg.AllowOrigins {
		if origin == "*" {
			c.AllowAllOrigins = true
			break
		}
	}
	if !c.AllowAllOrigins {
		c.AllowOrigins = cfg.AllowOrigins
	}
	// 未配置任何来源时只允许同源请求，避免 cors 校验 panic
	if !c.AllowAllOrigins && len(c.AllowOrigins) == 0 {
		c.AllowOriginFunc = func(string) bool { return false }
	}

	return cors.New(c)
}

func withHeader(headers []string, want string) []string {
	for _, h := range headers {
		if strings.EqualFold(h, want) {
			return headers
		}
	}
	return append(append([]string(nil), headers...), want)
}
