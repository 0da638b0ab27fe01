package handlers

import (
	"time"

	"dormhub/internal/middleware"
	"dormhub/internal/models"
	"dormhub/internal/services"
	"dormhub/pkg/jwt"
	"dormhub/pkg/logger"
	"dormhub/pkg/response"
	"dormhub/pkg/revocation"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	userService *services.UserService
	jwtManager  *jwt.JWTManager
	revoker     revocation.Revoker
}

func NewAuthHandler(userService *services.UserService, jwtManager *jwt.JWTManager, revoker revocation.Revoker) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		jwtManager:  jwtManager,
		revoker:     revoker,
	}
}

type RegisterRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	PhoneNumber string `json:"phone_number" binding:"required,max=15"`
	Email       string `json:"email" binding:"required,email,max=255"`
	Password    string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse 登录/注册返回
type AuthResponse struct {
	Message string       `json:"message"`
	User    *models.User `json:"user"`
	Token   string       `json:"token"`
}

// Register 用户注册
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if verr := bindJSON(c, &req); verr != nil {
		response.Validation(c, verr)
		return
	}

	user, err := h.userService.Register(services.RegisterInput{
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
		Password:    req.Password,
	})
	if err != nil {
		response.FromError(c, err, "User not found")
		return
	}

	token, _, err := h.jwtManager.GenerateToken(user.ID, user.Email)
	if err != nil {
		response.ServerError(c, "Failed to issue token")
		return
	}

	logger.GetLogger().WithField("user_id", user.ID).Info("User registered")
	response.Created(c, AuthResponse{
		Message: "User registered successfully!",
		User:    user,
		Token:   token,
	})
}

// Login 用户登录，每次登录签发新token，旧token不失效
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if verr := bindJSON(c, &req); verr != nil {
		response.Validation(c, verr)
		return
	}

	user, err := h.userService.Authenticate(req.Email, req.Password)
	if err != nil {
		response.Unauthorized(c, "Invalid email or password.")
		return
	}

	token, _, err := h.jwtManager.GenerateToken(user.ID, user.Email)
	if err != nil {
		response.ServerError(c, "Failed to issue token")
		return
	}

	response.Success(c, AuthResponse{
		Message: "User logged in successfully!",
		User:    user,
		Token:   token,
	})
}

// Logout 吊销当前token直到其自然过期
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.CurrentClaims(c)
	if claims == nil {
		response.Unauthorized(c, "Unauthenticated.")
		return
	}

	if err := h.revoker.Revoke(c.Request.Context(), claims.TokenID(), claims.Remaining(time.Now())); err != nil {
		logger.GetLogger().WithError(err).Error("Failed to revoke token")
		response.ServerError(c, "Failed to log out")
		return
	}

	response.SuccessWithMessage(c, "Logged out successfully!")
}

// User 获取当前登录用户
func (h *AuthHandler) User(c *gin.Context) {
	response.Success(c, gin.H{"user": middleware.CurrentUser(c)})
}
