package main

import (
	"log"

	"github.com/kimyt990501/erp-system-backend/config"
	"github.com/kimyt990501/erp-system-backend/handlers"
	"github.com/kimyt990501/erp-system-backend/jobs"
	"github.com/kimyt990501/erp-system-backend/middleware"
	"github.com/kimyt990501/erp-system-backend/models"
	"github.com/kimyt990501/erp-system-backend/services"
	"github.com/kimyt990501/erp-system-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/robfig/cron/v3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

func initServices() error {
	var err error
	DB, err = gorm.Open(sqlite.Open(config.AppConfig.DBPath), &gorm.Config{})
	if err != nil {
		return err
	}

	return DB.AutoMigrate(
		&models.User{},
		&models.LeaveBalance{},
		&models.LeaveRequest{},
		&models.Attendance{},
		&models.SalaryStatement{},
	)
}

func setupRoutes(app *fiber.App) {
	auth := app.Group("/auth")
	auth.Post("/signup", handlers.Signup)
	auth.Post("/login", handlers.Login)

	users := app.Group("/users")
	users.Get("/me", middleware.RequireAuth, handlers.GetMe)
	users.Get("/admin/all", middleware.RequireAdmin, handlers.GetAllUsers)

	attendance := app.Group("/attendance")
	attendance.Post("/check-in", middleware.RequireAuth, handlers.CheckIn)
	attendance.Patch("/check-out", middleware.RequireAuth, handlers.CheckOut)
	attendance.Get("/my-records", middleware.RequireAuth, handlers.GetMyAttendanceRecords)
	attendance.Get("/my-stats", middleware.RequireAuth, handlers.GetMyAttendanceStats)
	attendance.Get("/today", middleware.RequireAuth, handlers.GetTodayAttendance)
	attendance.Get("/admin/all-records", middleware.RequireAdmin, handlers.GetAllAttendanceRecords)
	attendance.Post("/admin/create/:user_id", middleware.RequireAdmin, handlers.CreateAttendanceRecord)
	attendance.Get("/admin/user/:user_id/stats", middleware.RequireAdmin, handlers.GetUserAttendanceStats)

	leave := app.Group("/leave")
	leave.Get("/balance", middleware.RequireAuth, handlers.GetMyLeaveBalance)
	leave.Post("/request", middleware.RequireAuth, handlers.CreateLeaveRequest)
	leave.Get("/requests", middleware.RequireAuth, handlers.GetMyLeaveRequests)
	leave.Get("/admin/all-requests", middleware.RequireAdmin, handlers.GetAllLeaveRequests)
	leave.Patch("/admin/approve/:request_id", middleware.RequireAdmin, handlers.ApproveLeaveRequest)
	leave.Patch("/admin/reject/:request_id", middleware.RequireAdmin, handlers.RejectLeaveRequest)

	salary := app.Group("/salary")
	salary.Get("", middleware.RequireAuth, handlers.GetMySalaryStatements)
	salary.Post("", middleware.RequireAuth, handlers.CreateSalaryStatement)
	salary.Post("/upload-pdf", middleware.RequireAuth, handlers.UploadPayslip)
}

func main() {
	config.LoadConfig()
	utils.InitLogger()

	if err := initServices(); err != nil {
		log.Fatal("Failed to initialize services:", err)
	}

	handlers.InitHandlers(DB)

	scheduler := cron.New()
	if err := jobs.InitCronJobs(scheduler, services.NewLeaveService(DB)); err != nil {
		log.Fatal("Failed to initialize cron jobs:", err)
	}
	defer scheduler.Stop()

	app := fiber.New()
	app.Use(cors.New())

	setupRoutes(app)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "Welcome to ERP API"})
	})

	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
