package main

import (
	"context"
	"log"

	_ "Backend-GnaasCMS/docs"
	"Backend-GnaasCMS/src/config"
	"Backend-GnaasCMS/src/controllers"
	"Backend-GnaasCMS/src/database"
	"Backend-GnaasCMS/src/jobs"
	"Backend-GnaasCMS/src/models"
	"Backend-GnaasCMS/src/routes"
	"Backend-GnaasCMS/src/services/actions"
	"Backend-GnaasCMS/src/services/admins"
	"Backend-GnaasCMS/src/services/attendance"
	"Backend-GnaasCMS/src/services/auth"
	"Backend-GnaasCMS/src/services/bulkupload"
	"Backend-GnaasCMS/src/services/email"
	"Backend-GnaasCMS/src/services/promotion"
	"Backend-GnaasCMS/src/services/reports"
	"Backend-GnaasCMS/src/services/students"
	"Backend-GnaasCMS/src/store"
	"Backend-GnaasCMS/src/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
)

// @title        GNAAS CMS API
// @version      1.0
// @description  Administrative backend for the GNAAS student fellowship.
// @BasePath     /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalln("❌ Config:", err)
	}

	db, err := database.Connect(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatalln("❌ MongoDB:", err)
	}
	if err := database.EnsureIndexes(context.Background(), db); err != nil {
		log.Fatalln("❌ Indexes:", err)
	}

	var redisClient *redis.Client
	var asynqClient *asynq.Client
	if cfg.RedisConfigured() {
		redisClient, err = database.ConnectRedis(cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			log.Println("⚠️  Redis unavailable, running without cache and email queue:", err)
		} else {
			asynqClient = database.NewAsynqClient(cfg.RedisAddr, cfg.RedisPassword)
			defer asynqClient.Close()
		}
	} else {
		log.Println("⚠️  REDIS_ADDR not set, running without cache and email queue")
	}

	st := store.NewMongo(db)
	notifier := email.NewNotifier(asynqClient)

	actionSvc := actions.NewService(st.Actions)
	authSvc := auth.NewService(st, cfg)
	studentSvc := students.NewService(st, notifier)
	attendanceSvc := attendance.NewService(st, actionSvc, notifier)
	promotionSvc := promotion.NewService(st, actionSvc)
	bulkSvc := bulkupload.NewService(st, studentSvc, actionSvc)
	adminSvc := admins.NewService(st, studentSvc, notifier)
	reportSvc := reports.NewService(st, redisClient)

	if err := authSvc.EnsureSuperAdmin(context.Background()); err != nil {
		log.Println("⚠️  Super admin seed failed:", err)
	}

	if asynqClient != nil && cfg.MailConfigured() {
		sender := email.NewGomailSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.MailFrom)
		go jobs.StartWorker(cfg, sender)
	}

	app := fiber.New(fiber.Config{
		AppName: "GNAAS CMS",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if fe, ok := err.(*fiber.Error); ok {
				return c.Status(fe.Code).JSON(models.ErrorResponse{Status: fe.Code, Message: fe.Message})
			}
			return utils.Fail(c, err)
		},
	})

	routes.InitRoutes(app, cfg.JWTSecret, routes.Controllers{
		Auth:       controllers.NewAuthController(authSvc),
		Students:   controllers.NewStudentController(studentSvc),
		Attendance: controllers.NewAttendanceController(attendanceSvc),
		Promotion:  controllers.NewPromotionController(promotionSvc),
		Admin:      controllers.NewAdminController(adminSvc, actionSvc),
		BulkUpload: controllers.NewBulkUploadController(bulkSvc),
		Reports:    controllers.NewReportsController(reportSvc),
	})

	log.Println("🚀 Server listening on port", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalln("❌ Server:", err)
	}
}
