package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/junaidaslam934/acadmic-solution-sub000/config"
	"github.com/junaidaslam934/acadmic-solution-sub000/internal/api/handler"
	"github.com/junaidaslam934/acadmic-solution-sub000/internal/api/middleware"
	"github.com/junaidaslam934/acadmic-solution-sub000/pkg/jwt"
	"github.com/junaidaslam934/acadmic-solution-sub000/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(1 << 20)) // 1MB

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	v1.Use(middleware.RateLimit(rdb, 300, time.Minute))
	{
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			// 学期模块
			semesters := authorized.Group("/semesters")
			{
				semesters.GET("", h.Semester.ListSemesters)
				semesters.GET("/:id", h.Semester.GetSemester)
				semesters.POST("", middleware.RoleAuth("admin", "chairman"), h.Semester.CreateSemester)
				semesters.PUT("/:id", middleware.RoleAuth("admin", "chairman"), h.Semester.UpdateSemester)
				semesters.PUT("/:id/advance", middleware.RoleAuth("admin", "chairman"), h.Semester.AdvanceSemester)
				semesters.DELETE("/:id", middleware.RoleAuth("admin", "chairman"), h.Semester.DeleteSemester)

				// 校历投影与学期周
				semesters.GET("/:id/calendar", h.Calendar.GenerateCalendar)
				semesters.GET("/:id/weeks", h.Calendar.ListWeeks)
				semesters.POST("/:id/weeks/rebuild", middleware.RoleAuth("admin", "chairman"), h.Calendar.RebuildWeeks)
			}

			// 课程分配模块
			assignments := authorized.Group("/course-assignments")
			{
				assignments.GET("", h.Assignment.ListAssignments)
				assignments.GET("/:id", h.Assignment.GetAssignment)
				assignments.POST("", middleware.RoleAuth("admin", "chairman", "coordinator"), h.Assignment.AssignCourse)
				assignments.PUT("/:id", middleware.RoleAuth("admin", "chairman", "coordinator"), h.Assignment.UpdateAssignment)
				assignments.DELETE("/:id", middleware.RoleAuth("admin", "chairman", "coordinator"), h.Assignment.RemoveAssignment)
			}

			// 教学大纲模块
			outlines := authorized.Group("/outlines")
			{
				outlines.GET("", h.Outline.ListOutlines)
				outlines.GET("/pending/:role", h.Outline.ListPendingOutlines)
				outlines.GET("/:id", h.Outline.GetOutline)
				outlines.POST("", h.Outline.SubmitOutline)
				outlines.POST("/:id/review", middleware.RoleAuth("admin", "advisor", "coordinator", "co_chairman", "chairman"), h.Outline.ReviewOutline)
			}

			// 课表预订模块
			bookings := authorized.Group("/bookings")
			{
				bookings.GET("", h.Booking.ListBookings)
				bookings.GET("/:id", h.Booking.GetBooking)
				bookings.POST("", h.Booking.CreateBooking)
				bookings.PUT("/:id", h.Booking.UpdateBooking)
				bookings.DELETE("/:id", h.Booking.CancelBooking)
			}

			// 旧客户端沿用 /timetable 读取课表
			authorized.GET("/timetable", h.Booking.ListBookings)

			// 节假日与补课
			holidays := authorized.Group("/holidays")
			{
				holidays.GET("", h.Calendar.ListHolidays)
				holidays.POST("", middleware.RoleAuth("admin", "chairman"), h.Calendar.AddHoliday)
				holidays.DELETE("/:id", middleware.RoleAuth("admin", "chairman"), h.Calendar.RemoveHoliday)
			}
			makeups := authorized.Group("/makeup-classes")
			{
				makeups.GET("", h.Calendar.ListMakeups)
				makeups.POST("", middleware.RoleAuth("admin", "chairman", "coordinator"), h.Calendar.AddMakeup)
				makeups.DELETE("/:id", middleware.RoleAuth("admin", "chairman", "coordinator"), h.Calendar.RemoveMakeup)
			}

			// 导出模块
			export := authorized.Group("/export")
			{
				export.GET("/timetable", h.Export.ExportTimetable)
				export.GET("/calendar", h.Export.ExportCalendar)
			}
		}
	}

	return r
}
