package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/tutorlink/tutorlink/internal/app/controllers"
	"github.com/tutorlink/tutorlink/internal/app/models"
	"github.com/tutorlink/tutorlink/internal/app/models/dto"
	"github.com/tutorlink/tutorlink/internal/middleware"
	"github.com/tutorlink/tutorlink/internal/pkg/websocket"
)

// Controllers bundles every controller passed to the router
type Controllers struct {
	Auth         *controllers.AuthController
	User         *controllers.UserController
	Matching     *controllers.MatchingController
	Notification *controllers.NotificationController
	Chat         *controllers.ChatController
	Schedule     *controllers.ScheduleController
	Major        *controllers.MajorController
	Blog         *controllers.BlogController
	Dashboard    *controllers.DashboardController
	Upload       *controllers.UploadController
}

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	ctrl *Controllers,
	wsHandler *websocket.Handler,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	staffRoles := []string{string(models.RoleStaff), string(models.RoleAdmin)}
	adminOnly := []string{string(models.RoleAdmin)}

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", ctrl.Auth.Register)
		auth.POST("/login", ctrl.Auth.Login)
		auth.POST("/refresh", ctrl.Auth.RefreshToken)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.POST("/auth/logout", ctrl.Auth.Logout)
		authenticated.POST("/auth/logout-all", ctrl.Auth.LogoutAll)
		authenticated.GET("/auth/me", ctrl.Auth.GetProfile)

		// User directory
		users := authenticated.Group("/users")
		{
			users.GET("/tutors", ctrl.User.ListTutors)
			users.PUT("/me", ctrl.User.UpdateProfile)
			users.GET("/:id", ctrl.User.GetUser)

			usersStaffProtected := users.Group("")
			usersStaffProtected.Use(authMiddleware.RolesRequired(staffRoles...))
			{
				usersStaffProtected.GET("", ctrl.User.ListUsers)
			}
		}

		// Privileged-role allow-list, admin only
		specialUsers := authenticated.Group("/special-users")
		specialUsers.Use(authMiddleware.RolesRequired(adminOnly...))
		{
			specialUsers.POST("", ctrl.User.CreateSpecialUser)
			specialUsers.GET("", ctrl.User.ListSpecialUsers)
			specialUsers.DELETE("/:id", ctrl.User.DeleteSpecialUser)
		}

		// Matching workflow
		matchingRequests := authenticated.Group("/matching-requests")
		{
			matchingRequests.POST("", ctrl.Matching.CreateRequest)
			matchingRequests.GET("", ctrl.Matching.ListRequests)

			matchingStaffProtected := matchingRequests.Group("")
			matchingStaffProtected.Use(authMiddleware.RolesRequired(staffRoles...))
			{
				matchingStaffProtected.POST("/:id/approve", ctrl.Matching.Approve)
				matchingStaffProtected.POST("/:id/reject", ctrl.Matching.Reject)
			}
		}
		authenticated.GET("/matchings", ctrl.Matching.ListMatchings)

		// Notifications
		notifications := authenticated.Group("/notifications")
		{
			notifications.GET("", ctrl.Notification.ListNotifications)
			notifications.GET("/unread-count", ctrl.Notification.CountUnread)
			notifications.POST("/read-all", ctrl.Notification.MarkAllRead)
			notifications.POST("/:id/read", ctrl.Notification.MarkRead)
		}

		// Chat
		rooms := authenticated.Group("/rooms")
		{
			rooms.POST("", ctrl.Chat.OpenRoom)
			rooms.GET("", ctrl.Chat.ListRooms)
			rooms.POST("/:id/messages", ctrl.Chat.SendMessage)
			rooms.GET("/:id/messages", ctrl.Chat.ListMessages)
		}
		authenticated.DELETE("/messages/:id", ctrl.Chat.DeleteMessage)

		// Schedules
		scheduleRequests := authenticated.Group("/schedule-requests")
		{
			scheduleRequests.POST("", ctrl.Schedule.CreateRequest)
			scheduleRequests.GET("", ctrl.Schedule.ListRequests)
			scheduleRequests.POST("/:id/accept", ctrl.Schedule.Accept)
			scheduleRequests.POST("/:id/decline", ctrl.Schedule.Decline)
		}
		authenticated.GET("/schedules", ctrl.Schedule.ListSchedules)

		// Slots, read for everyone, writes admin only
		slots := authenticated.Group("/slots")
		{
			slots.GET("", ctrl.Schedule.ListSlots)

			slotsAdminProtected := slots.Group("")
			slotsAdminProtected.Use(authMiddleware.RolesRequired(adminOnly...))
			{
				slotsAdminProtected.POST("", ctrl.Schedule.CreateSlot)
				slotsAdminProtected.DELETE("/:id", ctrl.Schedule.DeleteSlot)
			}
		}

		// Majors, read for everyone, writes admin only
		majors := authenticated.Group("/majors")
		{
			majors.GET("", ctrl.Major.ListMajors)
			majors.GET("/:id", ctrl.Major.GetMajor)

			majorsAdminProtected := majors.Group("")
			majorsAdminProtected.Use(authMiddleware.RolesRequired(adminOnly...))
			{
				majorsAdminProtected.POST("", ctrl.Major.CreateMajor)
				majorsAdminProtected.PUT("/:id", ctrl.Major.UpdateMajor)
				majorsAdminProtected.DELETE("/:id", ctrl.Major.DeleteMajor)
			}
		}

		// Blogs and comments
		blogs := authenticated.Group("/blogs")
		{
			blogs.POST("", ctrl.Blog.CreateBlog)
			blogs.GET("", ctrl.Blog.ListBlogs)
			blogs.GET("/:id", ctrl.Blog.GetBlog)
			blogs.PUT("/:id", ctrl.Blog.UpdateBlog)
			blogs.DELETE("/:id", ctrl.Blog.DeleteBlog)
			blogs.POST("/:id/comments", ctrl.Blog.CreateComment)
			blogs.GET("/:id/comments", ctrl.Blog.ListComments)

			blogsStaffProtected := blogs.Group("")
			blogsStaffProtected.Use(authMiddleware.RolesRequired(staffRoles...))
			{
				blogsStaffProtected.POST("/:id/moderate", ctrl.Blog.ModerateBlog)
			}
		}

		comments := authenticated.Group("/comments")
		{
			comments.DELETE("/:id", ctrl.Blog.DeleteComment)

			commentsStaffProtected := comments.Group("")
			commentsStaffProtected.Use(authMiddleware.RolesRequired(staffRoles...))
			{
				commentsStaffProtected.POST("/:id/moderate", ctrl.Blog.ModerateComment)
			}
		}

		// Dashboard, staff reporting only
		dashboard := authenticated.Group("/dashboard")
		dashboard.Use(authMiddleware.RolesRequired(staffRoles...))
		{
			dashboard.GET("", ctrl.Dashboard.GetSummary)
		}

		// File upload
		authenticated.POST("/upload", ctrl.Upload.Upload)

		// Websocket endpoint. Browsers cannot set the Authorization header
		// on websocket upgrades, so JWTAuth also accepts a token query param.
		authenticated.GET("/ws", wsHandler.HandleConnection)
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Data: gin.H{"status": "ok"},
		})
	})

	// Swagger routes are set up in bootstrap.go already
}
