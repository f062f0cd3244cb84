package server

import (
	"log"
	"strings"
	"time"

	"github.com/rahulpatel51/hostel-management/internal/authz"
	"github.com/rahulpatel51/hostel-management/internal/config"
	"github.com/rahulpatel51/hostel-management/internal/entity"
	"github.com/rahulpatel51/hostel-management/internal/middleware"
	"github.com/rahulpatel51/hostel-management/pkg/storage"

	adminHttp "github.com/rahulpatel51/hostel-management/internal/modules/admin/delivery/http"
	adminService "github.com/rahulpatel51/hostel-management/internal/modules/admin/service"

	attendanceHttp "github.com/rahulpatel51/hostel-management/internal/modules/attendance/delivery/http"
	attendanceRepo "github.com/rahulpatel51/hostel-management/internal/modules/attendance/repository"
	attendanceService "github.com/rahulpatel51/hostel-management/internal/modules/attendance/service"

	complaintHttp "github.com/rahulpatel51/hostel-management/internal/modules/complaint/delivery/http"
	complaintRepo "github.com/rahulpatel51/hostel-management/internal/modules/complaint/repository"
	complaintService "github.com/rahulpatel51/hostel-management/internal/modules/complaint/service"

	disciplineHttp "github.com/rahulpatel51/hostel-management/internal/modules/discipline/delivery/http"
	disciplineRepo "github.com/rahulpatel51/hostel-management/internal/modules/discipline/repository"
	disciplineService "github.com/rahulpatel51/hostel-management/internal/modules/discipline/service"

	feeHttp "github.com/rahulpatel51/hostel-management/internal/modules/fee/delivery/http"
	feeRepo "github.com/rahulpatel51/hostel-management/internal/modules/fee/repository"
	feeService "github.com/rahulpatel51/hostel-management/internal/modules/fee/service"

	leaveHttp "github.com/rahulpatel51/hostel-management/internal/modules/leave/delivery/http"
	leaveRepo "github.com/rahulpatel51/hostel-management/internal/modules/leave/repository"
	leaveService "github.com/rahulpatel51/hostel-management/internal/modules/leave/service"

	messHttp "github.com/rahulpatel51/hostel-management/internal/modules/mess/delivery/http"
	messRepo "github.com/rahulpatel51/hostel-management/internal/modules/mess/repository"
	messService "github.com/rahulpatel51/hostel-management/internal/modules/mess/service"

	noticeHttp "github.com/rahulpatel51/hostel-management/internal/modules/notice/delivery/http"
	noticeRepo "github.com/rahulpatel51/hostel-management/internal/modules/notice/repository"
	noticeService "github.com/rahulpatel51/hostel-management/internal/modules/notice/service"

	reportHttp "github.com/rahulpatel51/hostel-management/internal/modules/report/delivery/http"
	reportRepo "github.com/rahulpatel51/hostel-management/internal/modules/report/repository"
	reportService "github.com/rahulpatel51/hostel-management/internal/modules/report/service"

	roomHttp "github.com/rahulpatel51/hostel-management/internal/modules/room/delivery/http"
	roomRepo "github.com/rahulpatel51/hostel-management/internal/modules/room/repository"
	roomService "github.com/rahulpatel51/hostel-management/internal/modules/room/service"

	statHttp "github.com/rahulpatel51/hostel-management/internal/modules/stat/delivery/http"
	statService "github.com/rahulpatel51/hostel-management/internal/modules/stat/service"

	userHttp "github.com/rahulpatel51/hostel-management/internal/modules/user/delivery/http"
	userRepo "github.com/rahulpatel51/hostel-management/internal/modules/user/repository"
	userService "github.com/rahulpatel51/hostel-management/internal/modules/user/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Server struct {
	engine      *gin.Engine
	db          *gorm.DB
	redisClient *redis.Client
}

func NewServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	users := userRepo.NewUserRepository(db)
	imageStorage, err := storage.NewCloudinaryStorage(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		log.Fatalf("failed to initialize cloudinary storage: %v", err)
	}

	authSvc := userService.NewAuthService(users, imageStorage, cfg.JWTSecret, cfg.JWTTTL)
	authHandler := userHttp.NewAuthHandler(authSvc)

	adminSvc := adminService.NewAdminService(users, imageStorage)
	adminHandler := adminHttp.NewAdminHandler(adminSvc)

	rooms := roomRepo.NewRoomRepository(db)
	roomSvc := roomService.NewRoomService(rooms, users)
	roomHandler := roomHttp.NewRoomHandler(roomSvc)

	complaints := complaintRepo.NewComplaintRepository(db)
	complaintSvc := complaintService.NewComplaintService(complaints, users, imageStorage)
	complaintHandler := complaintHttp.NewComplaintHandler(complaintSvc)

	leaves := leaveRepo.NewLeaveRepository(db)
	leaveSvc := leaveService.NewLeaveService(leaves, users, imageStorage)
	leaveHandler := leaveHttp.NewLeaveHandler(leaveSvc)

	attendances := attendanceRepo.NewAttendanceRepository(db)
	attendanceSvc := attendanceService.NewAttendanceService(attendances, users)
	attendanceHandler := attendanceHttp.NewAttendanceHandler(attendanceSvc)

	disciplines := disciplineRepo.NewDisciplineRepository(db)
	disciplineSvc := disciplineService.NewDisciplineService(disciplines, users, imageStorage)
	disciplineHandler := disciplineHttp.NewDisciplineHandler(disciplineSvc)

	notices := noticeRepo.NewNoticeRepository(db)
	noticeSvc := noticeService.NewNoticeService(notices, redisClient, imageStorage)
	noticeHandler := noticeHttp.NewNoticeHandler(noticeSvc, redisClient)

	messes := messRepo.NewMessRepository(db)
	messSvc := messService.NewMessService(messes)
	messHandler := messHttp.NewMessHandler(messSvc)

	fees := feeRepo.NewFeeRepository(db)
	feeSvc := feeService.NewFeeService(fees, users)
	feeHandler := feeHttp.NewFeeHandler(feeSvc)

	reports := reportRepo.NewReportRepository(db)
	reportSvc := reportService.NewReportService(reports)
	reportHandler := reportHttp.NewReportHandler(reportSvc)

	statSvc := statService.NewStatService(users, rooms, complaints, leaves, fees, redisClient)
	statHandler := statHttp.NewStatHandler(statSvc)

	router := gin.New()

	setupCORS(router, cfg.AllowedOrigins)

	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	authMiddleware := middleware.NewAuthMiddleware(users, cfg.JWTSecret)

	api := router.Group("/api")

	// Public routes (no auth required)
	auth := api.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/register", authHandler.Register)
		auth.POST("/logout", authHandler.Logout)
	}

	// Protected routes (apply auth middleware explicitly)
	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		protected.GET("/auth/me", authHandler.Me)
		protected.PUT("/auth/password", authHandler.ChangePassword)
		protected.PUT("/auth/avatar", authHandler.UpdateAvatar)

		// Admin routes
		adminGroup := protected.Group("/admin")
		adminGroup.Use(authMiddleware.RequireRoles(entity.RoleAdmin))
		{
			adminGroup.POST("/students", adminHandler.CreateStudent)
			adminGroup.GET("/students", adminHandler.GetAllStudents)
			adminGroup.GET("/students/:id", adminHandler.GetStudent)
			adminGroup.PUT("/students/:id", adminHandler.UpdateStudent)
			adminGroup.DELETE("/students/:id", adminHandler.DeleteStudent)

			adminGroup.POST("/wardens", adminHandler.CreateWarden)
			adminGroup.GET("/wardens", adminHandler.GetAllWardens)
			adminGroup.GET("/wardens/:id", adminHandler.GetWarden)
			adminGroup.PUT("/wardens/:id", adminHandler.UpdateWarden)
			adminGroup.DELETE("/wardens/:id", adminHandler.DeleteWarden)

			adminGroup.PUT("/users/:id/activate", adminHandler.ActivateUser)
			adminGroup.PUT("/users/:id/deactivate", adminHandler.DeactivateUser)
			adminGroup.PUT("/users/:id/password", adminHandler.ResetPassword)
		}

		// Warden roster: students housed in the caller's assigned blocks.
		protected.GET("/students",
			authMiddleware.RequireRoles(entity.RoleWarden), adminHandler.ListBlockStudents)

		// Room routes
		protected.GET("/rooms",
			authMiddleware.RequirePermission(authz.ResourceRooms, authz.ActionRead), roomHandler.GetAllRooms)
		protected.GET("/rooms/:id",
			authMiddleware.RequirePermission(authz.ResourceRooms, authz.ActionRead), roomHandler.GetRoom)
		protected.POST("/rooms",
			authMiddleware.RequirePermission(authz.ResourceRooms, authz.ActionCreate), roomHandler.CreateRoom)
		protected.PUT("/rooms/:id",
			authMiddleware.RequirePermission(authz.ResourceRooms, authz.ActionUpdate), roomHandler.UpdateRoom)
		protected.DELETE("/rooms/:id",
			authMiddleware.RequirePermission(authz.ResourceRooms, authz.ActionDelete), roomHandler.DeleteRoom)
		protected.POST("/rooms/:id/students",
			authMiddleware.RequirePermission(authz.ResourceRooms, authz.ActionManage), roomHandler.AssignStudent)
		protected.DELETE("/rooms/:id/students/:student_id",
			authMiddleware.RequirePermission(authz.ResourceRooms, authz.ActionManage), roomHandler.RemoveStudent)
		protected.PUT("/rooms/:id/capacity",
			authMiddleware.RequirePermission(authz.ResourceRooms, authz.ActionManage), roomHandler.ResizeRoom)

		// Complaint routes
		protected.POST("/complaints",
			authMiddleware.RequirePermission(authz.ResourceComplaints, authz.ActionCreate), complaintHandler.CreateComplaint)
		protected.GET("/complaints/me",
			authMiddleware.RequireRoles(entity.RoleStudent), complaintHandler.ListMyComplaints)
		protected.GET("/complaints",
			authMiddleware.RequireRoles(entity.RoleAdmin, entity.RoleWarden), complaintHandler.ListComplaints)
		protected.GET("/complaints/:id",
			authMiddleware.RequirePermission(authz.ResourceComplaints, authz.ActionRead), complaintHandler.GetComplaint)
		protected.PUT("/complaints/:id/status",
			authMiddleware.RequirePermission(authz.ResourceComplaints, authz.ActionUpdate), complaintHandler.UpdateStatus)
		protected.POST("/complaints/:id/comments",
			authMiddleware.RequirePermission(authz.ResourceComplaints, authz.ActionRead), complaintHandler.AddComment)
		protected.PUT("/complaints/:id/cancel",
			authMiddleware.RequireRoles(entity.RoleStudent), complaintHandler.CancelComplaint)

		// Leave routes
		protected.POST("/leaves",
			authMiddleware.RequirePermission(authz.ResourceLeaves, authz.ActionCreate), leaveHandler.ApplyLeave)
		protected.GET("/leaves/me",
			authMiddleware.RequireRoles(entity.RoleStudent), leaveHandler.ListMyLeaves)
		protected.GET("/leaves",
			authMiddleware.RequireRoles(entity.RoleAdmin, entity.RoleWarden), leaveHandler.ListLeaves)
		protected.GET("/leaves/:id",
			authMiddleware.RequirePermission(authz.ResourceLeaves, authz.ActionRead), leaveHandler.GetLeave)
		protected.PUT("/leaves/:id/decision",
			authMiddleware.RequirePermission(authz.ResourceLeaves, authz.ActionUpdate), leaveHandler.DecideLeave)
		protected.PUT("/leaves/:id/cancel",
			authMiddleware.RequireRoles(entity.RoleStudent), leaveHandler.CancelLeave)

		// Attendance routes
		protected.POST("/attendance",
			authMiddleware.RequirePermission(authz.ResourceAttendance, authz.ActionCreate), attendanceHandler.MarkAttendance)
		protected.GET("/attendance/me",
			authMiddleware.RequireRoles(entity.RoleStudent), attendanceHandler.ListMyAttendance)
		protected.GET("/attendance",
			authMiddleware.RequireRoles(entity.RoleAdmin, entity.RoleWarden), attendanceHandler.ListByDate)

		// Discipline routes
		protected.POST("/discipline",
			authMiddleware.RequirePermission(authz.ResourceDiscipline, authz.ActionCreate), disciplineHandler.CreateDiscipline)
		protected.GET("/discipline/me",
			authMiddleware.RequireRoles(entity.RoleStudent), disciplineHandler.ListMyDisciplines)
		protected.GET("/discipline",
			authMiddleware.RequireRoles(entity.RoleAdmin, entity.RoleWarden), disciplineHandler.ListDisciplines)
		protected.GET("/discipline/:id", disciplineHandler.GetDiscipline)
		protected.PUT("/discipline/:id/status",
			authMiddleware.RequirePermission(authz.ResourceDiscipline, authz.ActionUpdate), disciplineHandler.UpdateStatus)
		protected.POST("/discipline/:id/comments", disciplineHandler.AddComment)

		// Notice routes
		protected.GET("/notices", noticeHandler.ListNotices)
		protected.GET("/notices/ws", noticeHandler.NoticeFeed)
		protected.GET("/notices/:id", noticeHandler.GetNotice)
		protected.POST("/notices",
			authMiddleware.RequirePermission(authz.ResourceNotices, authz.ActionCreate), noticeHandler.CreateNotice)
		protected.PUT("/notices/:id",
			authMiddleware.RequirePermission(authz.ResourceNotices, authz.ActionUpdate), noticeHandler.UpdateNotice)
		protected.DELETE("/notices/:id",
			authMiddleware.RequirePermission(authz.ResourceNotices, authz.ActionDelete), noticeHandler.DeleteNotice)

		// Mess menu routes
		protected.GET("/mess", messHandler.GetMenu)
		protected.POST("/mess",
			authMiddleware.RequirePermission(authz.ResourceMess, authz.ActionUpdate), messHandler.SetMenu)
		protected.DELETE("/mess/:id",
			authMiddleware.RequirePermission(authz.ResourceMess, authz.ActionDelete), messHandler.DeleteMenu)

		// Fee routes
		protected.GET("/fees/me",
			authMiddleware.RequireRoles(entity.RoleStudent), feeHandler.ListMyFees)
		protected.GET("/fees",
			authMiddleware.RequireRoles(entity.RoleAdmin), feeHandler.ListFees)
		protected.POST("/fees",
			authMiddleware.RequirePermission(authz.ResourceFees, authz.ActionCreate), feeHandler.CreateFee)
		protected.GET("/fees/:id",
			authMiddleware.RequirePermission(authz.ResourceFees, authz.ActionRead), feeHandler.GetFee)
		protected.PUT("/fees/:id/payment",
			authMiddleware.RequirePermission(authz.ResourceFees, authz.ActionManage), feeHandler.RecordPayment)
		protected.POST("/fees/refresh-overdue",
			authMiddleware.RequirePermission(authz.ResourceFees, authz.ActionManage), feeHandler.RefreshOverdue)

		// Report routes
		reportGroup := protected.Group("/reports")
		reportGroup.Use(authMiddleware.RequireRoles(entity.RoleAdmin))
		{
			reportGroup.POST("", reportHandler.CreateReport)
			reportGroup.GET("", reportHandler.ListReports)
			reportGroup.GET("/:id", reportHandler.GetReport)
			reportGroup.PUT("/:id", reportHandler.UpdateReport)
			reportGroup.DELETE("/:id", reportHandler.DeleteReport)
		}

		// Dashboard
		protected.GET("/stats/dashboard",
			authMiddleware.RequirePermission(authz.ResourceDashboard, authz.ActionRead), statHandler.Dashboard)
	}

	return &Server{
		engine:      router,
		db:          db,
		redisClient: redisClient,
	}
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func setupCORS(router *gin.Engine, allowedOrigins string) {
	var origins []string
	if allowedOrigins != "" {
		origins = strings.Split(allowedOrigins, ",")
	} else {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
