package middleware

import (
	"dormhub/internal/models"
	"dormhub/internal/services"
	"dormhub/pkg/jwt"
	"dormhub/pkg/logger"
	"dormhub/pkg/response"
	"dormhub/pkg/revocation"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	ctxUser   = "user"
	ctxUserID = "user_id"
	ctxClaims = "claims"
)

// AuthMiddleware 登录校验中间件
type AuthMiddleware struct {
	userService *services.UserService
	jwtManager  *jwt.JWTManager
	revoker     revocation.Revoker
}

func NewAuthMiddleware(userService *services.UserService, jwtManager *jwt.JWTManager, revoker revocation.Revoker) *AuthMiddleware {
	return &AuthMiddleware{
		userService: userService,
		jwtManager:  jwtManager,
		revoker:     revoker,
	}
}

// BearerToken 从Authorization头提取token
func BearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(authHeader[7:])
	return token, token != ""
}

// RequireLogin 要求携带有效且未吊销的token
func (m *AuthMiddleware) RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := BearerToken(c)
		if !ok {
			response.Unauthorized(c, "Unauthenticated.")
			c.Abort()
			return
		}

		claims, err := m.jwtManager.VerifyToken(tokenString)
		if err != nil {
			response.Unauthorized(c, "Unauthenticated.")
			c.Abort()
			return
		}

		revoked, err := m.revoker.IsRevoked(c.Request.Context(), claims.TokenID())
		if err != nil {
			logger.GetLogger().WithError(err).Error("Token revocation check failed")
			response.ServerError(c, "Server Error")
			c.Abort()
			return
		}
		if revoked {
			response.Unauthorized(c, "Unauthenticated.")
			c.Abort()
			return
		}

		user, err := m.userService.GetByID(claims.UserID)
		if err != nil {
			response.Unauthorized(c, "Unauthenticated.")
			c.Abort()
			return
		}

		c.Set(ctxUser, user)
		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxClaims, claims)

		c.Next()
	}
}

// CurrentUser 获取当前登录用户
func CurrentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(ctxUser); ok {
		if user, ok := v.(*models.User); ok {
			return user
		}
	}
	return nil
}

// CurrentClaims 获取当前token声明
func CurrentClaims(c *gin.Context) *jwt.JWTClaims {
	if v, ok := c.Get(ctxClaims); ok {
		if claims, ok := v.(*jwt.JWTClaims); ok {
			return claims
		}
	}
	return nil
}
