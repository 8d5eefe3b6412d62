// cmd/seed/main.go
//
// 開発用のデータベース初期化コマンド。
// スキーマのマイグレーションとデモ用カタログ・実績マスタの投入を行います。
//
//	go run ./cmd/seed
package main

import (
	"log"
	"log/slog"
	"os"

	"tymelyne_backend/internal/config"
	"tymelyne_backend/internal/model"
	"tymelyne_backend/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	if err := config.LoadConfig("./configs"); err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	db, err := repository.NewDB(config.Cfg.Database.URL, logger)
	if err != nil {
		log.Fatalf("Error initializing database: %v", err)
	}

	slog.Info("Running migrations...")
	if err := db.AutoMigrate(
		&model.User{},
		&model.Profile{},
		&model.Course{},
		&model.Module{},
		&model.Lesson{},
		&model.Activity{},
		&model.UserCourseProgress{},
		&model.UserActivityProgress{},
		&model.Certificate{},
		&model.Achievement{},
		&model.UserAchievement{},
		&model.Task{},
		&model.UserVerificationToken{},
		&model.PasswordResetToken{},
	); err != nil {
		log.Fatalf("Error running migrations: %v", err)
	}

	slog.Info("Seeding demo catalog...")
	if err := seedCourses(db); err != nil {
		log.Fatalf("Error seeding courses: %v", err)
	}

	slog.Info("Seeding achievements...")
	if err := seedAchievements(db); err != nil {
		log.Fatalf("Error seeding achievements: %v", err)
	}

	slog.Info("Seed completed.")
}

func seedCourses(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.Course{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		slog.Info("Courses already exist, skipping", "count", count)
		return nil
	}

	course := &model.Course{
		CourseID:          uuid.New(),
		Title:             "Go入門",
		Description:       "Goの基礎文法から並行処理まで学ぶ入門コース",
		Category:          "programming",
		Difficulty:        model.DifficultyBeginner,
		EstimatedDuration: "4 weeks",
		Modules: []model.Module{
			{
				ModuleID:    uuid.New(),
				Title:       "基礎文法",
				Description: "変数・制御構文・関数",
				Order:       1,
				Lessons: []model.Lesson{
					{
						LessonID: uuid.New(),
						Title:    "変数と型",
						Content:  "Goの型システムと変数宣言について学びます。",
						Order:    1,
						Activities: []model.Activity{
							{
								ActivityID:   uuid.New(),
								Title:        "型システムを読む",
								ActivityType: model.ActivityTypeReading,
								Order:        1,
								XPReward:     10,
							},
							{
								ActivityID:   uuid.New(),
								Title:        "型クイズ",
								ActivityType: model.ActivityTypeQuiz,
								Order:        2,
								XPReward:     15,
							},
						},
					},
					{
						LessonID: uuid.New(),
						Title:    "制御構文",
						Content:  "if / for / switch を学びます。",
						Order:    2,
						Activities: []model.Activity{
							{
								ActivityID:   uuid.New(),
								Title:        "FizzBuzzを書く",
								ActivityType: model.ActivityTypePractice,
								Order:        1,
								XPReward:     20,
							},
						},
					},
				},
			},
			{
				ModuleID:    uuid.New(),
				Title:       "並行処理",
				Description: "goroutineとchannel",
				Order:       2,
				Lessons: []model.Lesson{
					{
						LessonID: uuid.New(),
						Title:    "goroutine入門",
						Content:  "軽量スレッドの基本を学びます。",
						Order:    1,
						Activities: []model.Activity{
							{
								ActivityID:   uuid.New(),
								Title:        "並行カウンタの実装",
								ActivityType: model.ActivityTypeChallenge,
								Order:        1,
								XPReward:     30,
							},
						},
					},
				},
			},
		},
	}

	return db.Create(course).Error
}

func seedAchievements(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.Achievement{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		slog.Info("Achievements already exist, skipping", "count", count)
		return nil
	}

	achievements := []*model.Achievement{
		{
			AchievementID: uuid.New(),
			Name:          "はじめの一歩",
			Description:   "最初のアクティビティを完了する",
			Icon:          "footsteps",
			XPReward:      25,
			Category:      model.AchievementCategoryLearning,
		},
		{
			AchievementID: uuid.New(),
			Name:          "コースマスター",
			Description:   "最初のコースを修了する",
			Icon:          "trophy",
			XPReward:      100,
			Category:      model.AchievementCategoryLearning,
		},
		{
			AchievementID: uuid.New(),
			Name:          "7日連続",
			Description:   "7日間連続で学習する",
			Icon:          "flame",
			XPReward:      50,
			Category:      model.AchievementCategoryStreak,
		},
		{
			AchievementID: uuid.New(),
			Name:          "パーフェクト",
			Description:   "クイズで満点を取る",
			Icon:          "star",
			XPReward:      30,
			Category:      model.AchievementCategoryPerformance,
		},
	}

	return db.Create(achievements).Error
}
