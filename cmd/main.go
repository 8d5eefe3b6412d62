// cmd/main.go
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/lmittmann/tint"
	"github.com/rs/cors"

	"tymelyne_backend/internal/config"
	"tymelyne_backend/internal/handlers"
	"tymelyne_backend/internal/middleware"
	"tymelyne_backend/internal/repository"
	"tymelyne_backend/internal/service"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

func main() {
	// 設定ファイル読み込み用の一時的なロガー設定
	tempLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(tempLogger)
	log.Println("Log Config Loading...")

	if err := config.LoadConfig("./configs"); err != nil {
		slog.Error("Error loading configuration", slog.Any("error", err))
		os.Exit(1)
	}

	// === 設定に基づいて slog ロガーを初期化 ===
	logLevel := new(slog.LevelVar)
	switch strings.ToLower(config.Cfg.Log.Level) {
	case "debug":
		logLevel.Set(slog.LevelDebug)
	case "info":
		logLevel.Set(slog.LevelInfo)
	case "warn", "warning":
		logLevel.Set(slog.LevelWarn)
	case "error":
		logLevel.Set(slog.LevelError)
	default:
		logLevel.Set(slog.LevelInfo)
		slog.Warn("Unknown log level specified in config, defaulting to INFO", slog.String("level", config.Cfg.Log.Level))
	}

	var handler slog.Handler
	appEnv := os.Getenv("APP_ENV")
	if strings.ToLower(appEnv) == "dev" {
		// 開発環境では色付きのテキストログ
		tintOpts := &tint.Options{
			Level:      logLevel,
			TimeFormat: time.RFC3339,
		}
		handler = tint.NewHandler(os.Stderr, tintOpts)
		tempLogger.Info("Using TINT log handler", slog.String("APP_ENV", appEnv))
	} else {
		jsonOpts := &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		}
		handler = slog.NewJSONHandler(os.Stderr, jsonOpts)
		tempLogger.Info("Using JSON log handler", slog.String("APP_ENV", appEnv))
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	slog.Info("Application starting...")

	// DB接続 (GORM)
	db, err := repository.NewDB(config.Cfg.Database.URL, logger)
	if err != nil {
		slog.Error("Error initializing database", slog.Any("error", err))
		os.Exit(1)
	}
	sqlDB, err := db.DB()
	if err != nil {
		slog.Error("Error getting underlying sql.DB from GORM", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			slog.Error("Error closing database connection", slog.Any("error", err))
		} else {
			slog.Info("Database connection closed.")
		}
	}()

	// Dependency Injection
	userRepo := repository.NewGormUserRepository()
	profileRepo := repository.NewGormProfileRepository()
	courseRepo := repository.NewGormCourseRepository()
	progressRepo := repository.NewGormProgressRepository()
	taskRepo := repository.NewGormTaskRepository()
	achievementRepo := repository.NewGormAchievementRepository()
	certRepo := repository.NewGormCertificateRepository()
	tokenRepo := repository.NewGormTokenRepository()

	mailer := service.NewMailer(&config.Cfg)

	authService := service.NewAuthService(db, userRepo, profileRepo, tokenRepo, mailer, &config.Cfg)
	profileService := service.NewProfileService(db, profileRepo, userRepo, progressRepo, achievementRepo, certRepo)
	courseService := service.NewCourseService(db, courseRepo, progressRepo, certRepo, nil)
	activityService := service.NewActivityService(db, courseRepo, progressRepo, profileRepo, userRepo, certRepo, mailer, nil)
	taskService := service.NewTaskService(db, taskRepo, progressRepo, profileRepo, &config.Cfg, nil)
	achievementService := service.NewAchievementService(db, achievementRepo, profileRepo, nil)

	authHandler := handlers.NewAuthHandler(authService, logger)
	profileHandler := handlers.NewProfileHandler(profileService, logger)
	courseHandler := handlers.NewCourseHandler(courseService, logger)
	activityHandler := handlers.NewActivityHandler(activityService, logger)
	taskHandler := handlers.NewTaskHandler(taskService, logger)
	achievementHandler := handlers.NewAchievementHandler(achievementService, logger)

	// Router
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.LoggingMiddleware(logger))

	corsOptions := cors.Options{
		AllowedOrigins:   config.Cfg.CORS.AllowedOrigins,
		AllowedMethods:   config.Cfg.CORS.AllowedMethods,
		AllowedHeaders:   config.Cfg.CORS.AllowedHeaders,
		ExposedHeaders:   config.Cfg.CORS.ExposedHeaders,
		AllowCredentials: config.Cfg.CORS.AllowCredentials,
		MaxAge:           config.Cfg.CORS.MaxAge,
		Debug:            false,
	}
	corsHandler := cors.New(corsOptions)
	r.Use(corsHandler.Handler)

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// API Routes
	r.Route("/api/v1", func(r chi.Router) {
		// --- Public routes ---
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Get("/verify", authHandler.Verify)
			r.Post("/login", authHandler.Login)
			r.Post("/forgot-password", authHandler.ForgotPassword)
			r.Post("/reset-password", authHandler.ResetPassword)
		})

		// コースカタログの参照は認証不要
		r.Get("/courses", courseHandler.ListCourses)
		r.Get("/courses/{course_id}", courseHandler.GetCourse)

		// --- Protected routes (require JWT) ---
		r.Group(func(r chi.Router) {
			r.Use(middleware.JWTAuthMiddleware(&config.Cfg))

			r.Get("/users/me", authHandler.GetMe)

			r.Route("/profile", func(r chi.Router) {
				r.Get("/", profileHandler.GetProfile)
				r.Patch("/", profileHandler.PatchProfile)
				r.Post("/experience", profileHandler.AddExperience)
			})
			r.Get("/dashboard", profileHandler.GetDashboard)

			// コース管理と受講登録
			r.Post("/courses", courseHandler.CreateCourse)
			r.Patch("/courses/{course_id}", courseHandler.PatchCourse)
			r.Delete("/courses/{course_id}", courseHandler.DeleteCourse)
			r.Post("/courses/{course_id}/enroll", courseHandler.Enroll)

			// アクティビティ
			r.Get("/activities/{activity_id}", activityHandler.GetActivity)
			r.Post("/activities/{activity_id}/complete", activityHandler.CompleteActivity)

			// 進捗・修了証
			r.Get("/progress/courses", courseHandler.ListCourseProgress)
			r.Get("/progress/activities", courseHandler.ListActivityProgress)
			r.Get("/certificates", courseHandler.ListCertificates)

			// タスク
			r.Route("/tasks", func(r chi.Router) {
				r.Get("/", taskHandler.ListTasks)
				r.Post("/generate", taskHandler.GenerateTasks)
				r.Patch("/{task_id}/status", taskHandler.UpdateTaskStatus)
			})

			// 実績
			r.Get("/achievements", achievementHandler.ListAchievements)
			r.Get("/achievements/me", achievementHandler.ListUserAchievements)
			r.Post("/achievements/{achievement_id}/grant", achievementHandler.GrantAchievement)
		})
	})

	// Health Check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sqlDB, err := db.DB()
		if err != nil {
			slog.ErrorContext(ctx, "Health check failed: could not get DB object", slog.Any("error", err))
			http.Error(w, "Health check failed", http.StatusInternalServerError)
			return
		}
		if err := sqlDB.PingContext(ctx); err != nil {
			slog.ErrorContext(ctx, "Health check failed: could not ping DB", slog.Any("error", err))
			http.Error(w, "Health check failed", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Start Server
	server := &http.Server{
		Addr:         config.Cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("Server listening", slog.String("port", config.Cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Could not listen on port", slog.String("port", config.Cfg.Server.Port), slog.Any("error", err))
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", slog.Any("error", err))
	}

	log.Println("Server exiting")
}
