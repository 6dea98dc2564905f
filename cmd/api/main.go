package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/passport-go-api/internal/achievement"
	"github.com/noah-isme/passport-go-api/internal/config"
	"github.com/noah-isme/passport-go-api/internal/database"
	"github.com/noah-isme/passport-go-api/internal/handler"
	"github.com/noah-isme/passport-go-api/internal/middleware"
	"github.com/noah-isme/passport-go-api/internal/models"
	"github.com/noah-isme/passport-go-api/internal/repository"
	"github.com/noah-isme/passport-go-api/internal/router"
	"github.com/noah-isme/passport-go-api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Student{},
		&models.Teacher{},
		&models.QuizScore{},
		&models.Signature{},
		&models.Nomination{},
		&models.PlannerItem{},
		&models.ClaimedReward{},
		&models.CustomReward{},
		&models.ActivityLog{},
		&models.Notification{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	natsConn, err := database.ConnectNATS(cfg.NATSURL)
	if err != nil {
		log.Fatalf("failed to connect to nats: %v", err)
	}
	if natsConn != nil {
		defer natsConn.Close()
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	studentRepo := repository.NewStudentRepository(db)
	teacherRepo := repository.NewTeacherRepository(db)
	quizRepo := repository.NewQuizScoreRepository(db)
	signatureRepo := repository.NewSignatureRepository(db)
	nominationRepo := repository.NewNominationRepository(db)
	plannerRepo := repository.NewPlannerRepository(db)
	claimRepo := repository.NewClaimedRewardRepository(db)
	customRewardRepo := repository.NewCustomRewardRepository(db)
	activityRepo := repository.NewActivityLogRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	engine := achievement.NewEngine(nil)

	activityService := service.NewActivityService(activityRepo, logger)
	notificationService := service.NewNotificationService(notificationRepo, redisClient, cfg.NotificationChannelBase, natsConn, logger)
	passportService := service.NewPassportService(signatureRepo, claimRepo, plannerRepo, customRewardRepo, studentRepo, engine, notificationService, redisClient, cfg.PassportCacheTTL, logger)
	signatureService := service.NewSignatureService(signatureRepo, studentRepo, validate, activityService, passportService, logger)
	nominationService := service.NewNominationService(nominationRepo, signatureRepo, studentRepo, validate, activityService, passportService, notificationService, logger)
	plannerService := service.NewPlannerService(plannerRepo, validate, passportService, logger)
	rewardService := service.NewRewardService(customRewardRepo, claimRepo, studentRepo, passportService, validate, activityService, passportService, notificationService, logger)
	leaderboardService := service.NewLeaderboardService(studentRepo, signatureRepo, quizRepo, passportService, redisClient, cfg.LeaderboardCacheTTL, logger)
	rosterService := service.NewRosterService(studentRepo, teacherRepo, signatureRepo, claimRepo, quizRepo, validate, activityService, passportService, logger)

	serviceCtx, cancelServices := context.WithCancel(context.Background())
	defer cancelServices()
	notificationService.Start(serviceCtx)

	passportHandler := handler.NewPassportHandler(passportService, logger)
	signatureHandler := handler.NewSignatureHandler(signatureService, logger)
	nominationHandler := handler.NewNominationHandler(nominationService, logger)
	plannerHandler := handler.NewPlannerHandler(plannerService, logger)
	rewardHandler := handler.NewRewardHandler(rewardService, logger)
	leaderboardHandler := handler.NewLeaderboardHandler(leaderboardService, logger)
	notificationHandler := handler.NewNotificationHandler(notificationService, logger, 30*time.Second)
	adminHandler := handler.NewAdminHandler(rosterService, activityService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		PassportHandler:     passportHandler,
		SignatureHandler:    signatureHandler,
		NominationHandler:   nominationHandler,
		PlannerHandler:      plannerHandler,
		RewardHandler:       rewardHandler,
		LeaderboardHandler:  leaderboardHandler,
		NotificationHandler: notificationHandler,
		AdminHandler:        adminHandler,
		JWTMiddleware:       middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
