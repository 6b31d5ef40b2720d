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

	"github.com/noah-isme/codearena-go-api/internal/catalog"
	"github.com/noah-isme/codearena-go-api/internal/config"
	"github.com/noah-isme/codearena-go-api/internal/database"
	"github.com/noah-isme/codearena-go-api/internal/handler"
	"github.com/noah-isme/codearena-go-api/internal/middleware"
	"github.com/noah-isme/codearena-go-api/internal/models"
	"github.com/noah-isme/codearena-go-api/internal/repository"
	"github.com/noah-isme/codearena-go-api/internal/router"
	"github.com/noah-isme/codearena-go-api/internal/service"
	"github.com/noah-isme/codearena-go-api/pkg/codeforces"
	"github.com/noah-isme/codearena-go-api/pkg/leetcode"
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

	if err := db.AutoMigrate(&models.User{}, &models.Submission{}); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	// The leaderboard cache degrades to direct queries without redis, so a
	// missing redis is a warning rather than a startup failure.
	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		logger.Warn().Err(err).Msg("redis unavailable, leaderboard caching disabled")
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	leetcodeClient := leetcode.NewClient(cfg.LeetCodeBaseURL, cfg.UpstreamTimeout)
	codeforcesClient := codeforces.NewClient(cfg.CodeforcesBaseURL, cfg.UpstreamTimeout)

	problemCache := catalog.New([]catalog.Source{
		catalog.NewLeetCodeSource(leetcodeClient, catalog.LeetCodeConfig{
			PageSize:    cfg.CatalogPageSize,
			PageDelay:   cfg.CatalogPageDelay,
			MaxProblems: cfg.CatalogMaxProblems,
		}, logger),
		catalog.NewCodeforcesSource(codeforcesClient, cfg.CatalogMaxProblems, logger),
	}, logger)

	userRepo := repository.NewUserRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)

	authService := service.NewAuthService(userRepo, validate, cfg.JWTSecret, logger)
	problemService := service.NewProblemService(problemCache, leetcodeClient, logger)
	judgeService := service.NewJudgeService(submissionRepo, validate, logger)
	statsService := service.NewStatsService(submissionRepo, userRepo, redisClient, cfg.LeaderboardCacheTTL, logger)

	authHandler := handler.NewAuthHandler(authService, logger)
	problemHandler := handler.NewProblemHandler(problemService, logger)
	submissionHandler := handler.NewSubmissionHandler(judgeService, validate, logger)
	statsHandler := handler.NewStatsHandler(statsService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:       authHandler,
		ProblemHandler:    problemHandler,
		SubmissionHandler: submissionHandler,
		StatsHandler:      statsHandler,
		JWTMiddleware:     middleware.JWTProtected(cfg.JWTSecret),
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
