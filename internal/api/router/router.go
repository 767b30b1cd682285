package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/marwahavanshika/FYP2025/config"
	"github.com/marwahavanshika/FYP2025/internal/api/handler"
	"github.com/marwahavanshika/FYP2025/internal/api/middleware"
	"github.com/marwahavanshika/FYP2025/internal/permission"
	"github.com/marwahavanshika/FYP2025/pkg/jwt"
)

// Setup 初始化并返回 Gin 路由引擎
// limiter 为 nil 时登录接口不限流
func Setup(
	cfg *config.Config,
	h *handler.Handler,
	jwtMgr *jwt.Manager,
	resolver middleware.ActorResolver,
	limiter middleware.RateLimiter,
	logger *zap.Logger,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger, "/health"))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	if cfg.Server.BodyLimitBytes > 0 {
		r.Use(middleware.BodyLimit(cfg.Server.BodyLimitBytes))
	}

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	can := middleware.RequireCapability

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证）
		auth := v1.Group("/auth")
		{
			auth.POST("/login", middleware.RateLimit(limiter, cfg.RateLimit.LoginLimit, cfg.RateLimit.LoginWindow, logger), h.Auth.Login)
			auth.POST("/register", h.Auth.Register)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, resolver))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)

			// 用户模块
			users := authorized.Group("/users")
			{
				users.GET("/me", h.User.GetMe)
				users.PUT("/me", h.User.UpdateMe)
				users.PUT("/me/password", h.User.ChangePassword)
				users.GET("", can(permission.CapUserManage), h.User.ListUsers)
				users.POST("", can(permission.CapUserManage), h.User.CreateUser)
				users.POST("/import", can(permission.CapUserManage), h.User.ImportUsers)
				users.GET("/:id", can(permission.CapUserManage), h.User.GetUser)
				users.PUT("/:id", can(permission.CapUserManage), h.User.UpdateUser)
				users.PUT("/:id/role", can(permission.CapUserAssignRole), h.User.AssignRole)
				users.POST("/:id/reset-password", can(permission.CapUserManage), h.User.ResetPassword)
				users.DELETE("/:id", middleware.RoleAuth(permission.RoleAdmin), h.User.DeleteUser)
			}

			// 投诉模块（可见范围与字段权限由 Service 层按角色判定）
			complaints := authorized.Group("/complaints")
			{
				complaints.POST("", h.Complaint.CreateComplaint)
				complaints.POST("/voice", h.Complaint.CreateVoiceComplaint)
				complaints.GET("", h.Complaint.ListComplaints)
				complaints.GET("/export", can(permission.CapComplaintExport), h.Export.ExportComplaints)
				complaints.GET("/:id", h.Complaint.GetComplaint)
				complaints.PUT("/:id", h.Complaint.UpdateComplaint)
				complaints.DELETE("/:id", h.Complaint.DeleteComplaint)
				complaints.POST("/:id/assign", can(permission.CapComplaintAssign), h.Complaint.AssignComplaint)
				complaints.POST("/:id/upvote", h.Complaint.ToggleUpvote)
				complaints.GET("/:id/upvotes", h.Complaint.GetUpvotes)
				complaints.GET("/:id/suggestions", h.Complaint.GetSuggestions)
			}

			// 房间与床位分配模块（warden 仅限本楼，由 Service 层判定）
			rooms := authorized.Group("/rooms")
			{
				rooms.GET("", h.Room.ListRooms)
				rooms.POST("", can(permission.CapRoomManage), h.Room.CreateRoom)
				rooms.GET("/free-bed", can(permission.CapAllocationManage), h.Room.FindFreeBed)

				rooms.GET("/allocations", h.Room.ListAllocations)
				rooms.POST("/allocations", can(permission.CapAllocationManage), h.Room.CreateAllocation)
				rooms.POST("/allocations/auto", can(permission.CapAllocationManage), h.Room.AutoAllocate)
				rooms.GET("/allocations/:id", h.Room.GetAllocation)
				rooms.PUT("/allocations/:id", can(permission.CapAllocationManage), h.Room.UpdateAllocation)
				rooms.DELETE("/allocations/:id", can(permission.CapAllocationManage), h.Room.DeleteAllocation)

				rooms.GET("/:id", h.Room.GetRoom)
				rooms.PUT("/:id", can(permission.CapRoomManage), h.Room.UpdateRoom)
				rooms.DELETE("/:id", can(permission.CapRoomManage), h.Room.DeleteRoom)
				rooms.GET("/:id/available-beds", h.Room.AvailableBeds)
			}

			// 资产模块
			assets := authorized.Group("/assets")
			{
				assets.GET("", h.Asset.ListAssets)
				assets.GET("/:id", h.Asset.GetAsset)
				assets.POST("", can(permission.CapAssetManage), h.Asset.CreateAsset)
				assets.PUT("/:id", can(permission.CapAssetManage), h.Asset.UpdateAsset)
				assets.DELETE("/:id", can(permission.CapAssetManage), h.Asset.DeleteAsset)
			}

			// 社区模块（作者或版主可编辑，由 Service 层判定）
			community := authorized.Group("/community")
			{
				community.GET("/posts", h.Community.ListPosts)
				community.POST("/posts", h.Community.CreatePost)
				community.GET("/posts/:id", h.Community.GetPost)
				community.PUT("/posts/:id", h.Community.UpdatePost)
				community.DELETE("/posts/:id", h.Community.DeletePost)
				community.GET("/posts/:id/comments", h.Community.ListComments)
				community.POST("/posts/:id/comments", h.Community.CreateComment)
				community.DELETE("/comments/:id", h.Community.DeleteComment)
			}

			// 食堂模块
			mess := authorized.Group("/mess")
			{
				mess.GET("/menu", h.Mess.ListMenu)
				mess.GET("/menu/:id", h.Mess.GetMenu)
				mess.POST("/menu", can(permission.CapMessMenuManage), h.Mess.CreateMenu)
				mess.PUT("/menu/:id", can(permission.CapMessMenuManage), h.Mess.UpdateMenu)
				mess.DELETE("/menu/:id", can(permission.CapMessMenuManage), h.Mess.DeleteMenu)

				mess.POST("/feedback", h.Mess.CreateFeedback)
				mess.GET("/feedback", h.Mess.ListFeedback)
				mess.GET("/feedback/stats", can(permission.CapMessStatsView), h.Mess.FeedbackStats)
			}
		}
	}

	return r
}
