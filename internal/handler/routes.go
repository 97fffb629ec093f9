package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/hostel-api/internal/access"
	"github.com/noah-isme/hostel-api/internal/middleware"
	"github.com/noah-isme/hostel-api/internal/models"
)

// Handlers groups the HTTP handlers mounted under the API prefix.
type Handlers struct {
	Auth          *AuthHandler
	Blocks        *BlockHandler
	Rooms         *RoomHandler
	Students      *StudentHandler
	Complaints    *ComplaintHandler
	Leaves        *LeaveHandler
	Announcements *AnnouncementHandler
	Attendance    *AttendanceHandler
	Payments      *PaymentHandler
	Analytics     *AnalyticsHandler
}

// RouteOptions carries the middleware shared by protected routes.
type RouteOptions struct {
	// Authenticate verifies the token and resolves the principal.
	Authenticate gin.HandlersChain
	// Denied, when set, builds a per-resource hook run around every protected route.
	Denied func(resource string) gin.HandlerFunc
}

// RegisterRoutes mounts every endpoint on api. Role gates here are coarse; services
// make the authoritative scoped decision.
func RegisterRoutes(api *gin.RouterGroup, h Handlers, opts RouteOptions) {
	staff := middleware.RequireRoles(models.RoleWarden, models.RoleAdmin)
	admin := middleware.RequireRoles(models.RoleAdmin)

	group := func(path, resource string) *gin.RouterGroup {
		g := api.Group(path)
		g.Use(opts.Authenticate...)
		if opts.Denied != nil {
			g.Use(opts.Denied(resource))
		}
		return g
	}

	auth := api.Group("/auth")
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)
	auth.POST("/refresh", h.Auth.Refresh)
	session := group("/auth", "auth")
	session.POST("/logout", h.Auth.Logout)
	session.GET("/me", h.Auth.Me)
	session.POST("/change-password", h.Auth.ChangePassword)

	blocks := group("/blocks", string(access.ResourceBlock))
	blocks.GET("", staff, h.Blocks.List)
	blocks.POST("", admin, h.Blocks.Create)

	rooms := group("/rooms", string(access.ResourceRoom))
	rooms.GET("", staff, h.Rooms.List)
	rooms.GET("/mine", h.Rooms.Mine)
	rooms.GET("/:id", h.Rooms.Get)
	rooms.POST("", staff, h.Rooms.Create)

	students := group("/students", string(access.ResourceStudent))
	students.GET("", staff, h.Students.List)
	students.GET("/me", h.Students.Me)
	students.GET("/:id", h.Students.Get)
	students.POST("", staff, h.Students.Create)
	students.PATCH("", staff, h.Students.AssignRoom)

	complaints := group("/complaints", string(access.ResourceComplaint))
	complaints.GET("", h.Complaints.List)
	complaints.GET("/:id", h.Complaints.Get)
	complaints.POST("", h.Complaints.Create)
	complaints.PATCH("", h.Complaints.UpdateStatus)

	leaves := group("/leave-requests", string(access.ResourceLeaveRequest))
	leaves.GET("", h.Leaves.List)
	leaves.GET("/:id", h.Leaves.Get)
	leaves.POST("", h.Leaves.Create)
	leaves.PATCH("", h.Leaves.UpdateStatus)

	announcements := group("/announcements", string(access.ResourceAnnouncement))
	announcements.GET("", h.Announcements.List)
	announcements.POST("", staff, h.Announcements.Create)

	attendance := group("/attendance", string(access.ResourceAttendance))
	attendance.GET("", h.Attendance.List)
	attendance.POST("", staff, h.Attendance.Mark)

	payments := group("/payments", string(access.ResourcePayment))
	payments.GET("", h.Payments.List)
	payments.GET("/export", h.Payments.Export)
	payments.POST("", h.Payments.Create)

	stats := group("/stats", string(access.ResourceStats))
	stats.GET("", staff, h.Analytics.Stats)
	analytics := group("/analytics", string(access.ResourceAnalytics))
	analytics.GET("", admin, h.Analytics.Analytics)
}
