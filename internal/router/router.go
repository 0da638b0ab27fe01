package router

import (
	"dormhub/internal/handlers"
	"dormhub/internal/middleware"
	"dormhub/internal/services"
	"dormhub/pkg/config"
	"dormhub/pkg/jwt"
	"dormhub/pkg/revocation"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

// Deps 路由依赖
type Deps struct {
	Config     *config.Config
	DB         *gorm.DB
	JWTManager *jwt.JWTManager
	Revoker    revocation.Revoker
	Redis      handlers.Pinger      // 健康检查用，可为空
	Registry   *prometheus.Registry // 为空时不暴露 /metrics
}

// SetupRouter 设置路由
func SetupRouter(deps Deps) *gin.Engine {
	router := gin.New()

	// 中间件
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS(deps.Config.CORS))
	if deps.Registry != nil {
		router.Use(middleware.NewMetrics(deps.Registry).Handler())
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{})))
	}

	handlers.RegisterValidatorTagName()

	// 上传文件静态访问
	router.Static("/storage", deps.Config.Storage.Dir)

	registerRoutes(router, deps)
	return router
}

// 注册所有路由
func registerRoutes(router *gin.Engine, deps Deps) {
	userService := services.NewUserService(deps.DB)
	roomService := services.NewRoomService(deps.DB)
	tenantService := services.NewTenantService(deps.DB)
	profileService := services.NewProfileService(userService, deps.Config.Storage)

	auth := middleware.NewAuthMiddleware(userService, deps.JWTManager, deps.Revoker)

	systemHandler := handlers.NewSystemHandler(deps.DB, deps.Redis)
	router.GET("/health", systemHandler.Health)

	api := router.Group("/api")
	{
		// 无需认证
		authHandler := handlers.NewAuthHandler(userService, deps.JWTManager, deps.Revoker)
		api.POST("/register", authHandler.Register)
		api.POST("/login", authHandler.Login)

		// 🔒 以下均需登录
		protected := api.Group("", auth.RequireLogin())
		{
			protected.POST("/logout", authHandler.Logout)
			protected.GET("/user", authHandler.User)

			roomHandler := handlers.NewRoomHandler(roomService)
			protected.GET("/rooms", roomHandler.List)
			protected.POST("/add-room", roomHandler.Create)
			protected.GET("/rooms/:id/edit", roomHandler.Edit)
			protected.PUT("/rooms/:id", roomHandler.Update)
			protected.DELETE("/rooms/:id", roomHandler.Delete)
			protected.PUT("/rooms/:id/status", roomHandler.UpdateStatus) // :id 为房间号
			protected.GET("/vacant-rooms", roomHandler.Vacant)
			protected.GET("/room-statistics", roomHandler.Statistics)

			tenantHandler := handlers.NewTenantHandler(tenantService)
			protected.GET("/tenants", tenantHandler.List)
			protected.POST("/tenants", tenantHandler.Create)

			profileHandler := handlers.NewProfileHandler(profileService)
			protected.GET("/profile", profileHandler.Show)
			protected.POST("/profile/upload", profileHandler.Upload)
		}
	}
}
