package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"kasif-platform/handlers"
	"kasif-platform/models"
	"kasif-platform/services"
	"kasif-platform/utils"
	"kasif-platform/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024, // 10MB
	})

	// Load allowed origins from environment variable
	allowedOriginsEnv := os.Getenv("ALLOWED_ORIGINS")
	if allowedOriginsEnv == "" {
		log.Println("⚠️  ALLOWED_ORIGINS environment variable not set, using default: http://localhost:3000")
		allowedOriginsEnv = "http://localhost:3000"
	}
	allowedOriginsList := strings.Split(allowedOriginsEnv, ",")
	for i, origin := range allowedOriginsList {
		allowedOriginsList[i] = strings.TrimSpace(origin)
	}
	allowedOriginsString := strings.Join(allowedOriginsList, ",")

	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOriginsString,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With, X-Request-ID, X-User-ID, X-User-Role",
		ExposeHeaders:    "Content-Length, Content-Type, X-Request-ID",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	if err := utils.InitStorage(); err != nil {
		log.Fatal("failed to initialize storage client:", err)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.Student{},
		&models.Instructor{},
		&models.MarketItem{},
		&models.WeeklyTask{},
		&models.Badge{},
		&models.Announcement{},
		&models.AppEvent{},
		&models.WeeklyReport{},
		&models.PrayerTime{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	if err := services.SeedCatalogs(db); err != nil {
		log.Fatal("failed to seed catalogs:", err)
	}

	authService := services.NewAuthService(db)
	studentService := services.NewStudentService(db)
	prayerService := services.NewPrayerService(db)
	taskService := services.NewTaskService(db)
	marketService := services.NewMarketService(db)
	badgeService := services.NewBadgeService(db)
	communityService := services.NewCommunityService(db)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	prayerTimesClient := workers.NewPrayerTimesClient(db)
	go workers.PollPrayerTimes(ctx, prayerTimesClient, 6*time.Hour)

	communityService.StartEventCleanupScheduler()

	handlers.SetupAuthRoutes(app, authService, studentService)
	handlers.SetupStudentRoutes(app, studentService, prayerService, taskService, marketService, badgeService, communityService)
	handlers.SetupInstructorRoutes(app, authService, studentService, taskService, marketService, badgeService, communityService)
	handlers.SetupAdminRoutes(app, authService, studentService, communityService)

	port := os.Getenv("PORT")
	if port == "" {
		port = "5200"
	}

	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("✅ Server running on http://localhost:%s", port)
	log.Println("✅ Prayer-times polling running (every 6h)")
	log.Println("✅ Event cleanup scheduler running (daily)")
	log.Printf("✅ CORS configured for origins: %s", allowedOriginsString)

	<-ctx.Done()
	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}
