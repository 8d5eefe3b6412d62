//go:generate mockery --name AchievementRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"tymelyne_backend/internal/middleware"
	"tymelyne_backend/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// AchievementRepository は実績マスタとユーザー実績の永続化を担当します
type AchievementRepository interface {
	FindAll(ctx context.Context, db *gorm.DB) ([]*model.Achievement, error)
	FindByID(ctx context.Context, db *gorm.DB, achievementID uuid.UUID) (*model.Achievement, error)
	CreateMany(ctx context.Context, db *gorm.DB, achievements []*model.Achievement) error
	CreateUserAchievement(ctx context.Context, db *gorm.DB, ua *model.UserAchievement) error
	FindByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]*model.UserAchievement, error)
}

type gormAchievementRepository struct{}

func NewGormAchievementRepository() AchievementRepository {
	return &gormAchievementRepository{}
}

func (r *gormAchievementRepository) FindAll(ctx context.Context, db *gorm.DB) ([]*model.Achievement, error) {
	logger := middleware.GetLogger(ctx)
	var achievements []*model.Achievement

	result := db.WithContext(ctx).Order("category ASC, name ASC").Find(&achievements)
	if result.Error != nil {
		logger.Error("Error finding achievements in DB", "error", result.Error)
		return nil, fmt.Errorf("gormAchievementRepository.FindAll: %w", result.Error)
	}
	return achievements, nil
}

func (r *gormAchievementRepository) FindByID(ctx context.Context, db *gorm.DB, achievementID uuid.UUID) (*model.Achievement, error) {
	logger := middleware.GetLogger(ctx)
	var achievement model.Achievement

	result := db.WithContext(ctx).Where("achievement_id = ?", achievementID).First(&achievement)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error(
			"Error finding achievement by ID in DB",
			"error", result.Error,
			"achievement_id", achievementID.String(),
		)
		return nil, fmt.Errorf("gormAchievementRepository.FindByID: %w", result.Error)
	}
	return &achievement, nil
}

func (r *gormAchievementRepository) CreateMany(ctx context.Context, db *gorm.DB, achievements []*model.Achievement) error {
	logger := middleware.GetLogger(ctx)

	result := db.WithContext(ctx).Create(achievements)
	if result.Error != nil {
		logger.Error("Error creating achievements in DB", "error", result.Error)
		return fmt.Errorf("gormAchievementRepository.CreateMany: %w", result.Error)
	}
	return nil
}

// CreateUserAchievement は実績の付与レコードを作成します。
// 一意制約 (user_id, achievement_id) 違反は ErrConflict（付与済み）を返す。
func (r *gormAchievementRepository) CreateUserAchievement(ctx context.Context, db *gorm.DB, ua *model.UserAchievement) error {
	logger := middleware.GetLogger(ctx)

	result := db.WithContext(ctx).Create(ua)
	if result.Error != nil {
		var pgErr *pgconn.PgError
		if errors.As(result.Error, &pgErr) && pgErr.Code == "23505" {
			logger.Debug(
				"User achievement already exists",
				"user_id", ua.UserID.String(),
				"achievement_id", ua.AchievementID.String(),
			)
			return model.ErrConflict
		}
		logger.Error(
			"Error creating user achievement in DB",
			"error", result.Error,
			"user_id", ua.UserID.String(),
			"achievement_id", ua.AchievementID.String(),
		)
		return fmt.Errorf("gormAchievementRepository.CreateUserAchievement: %w", result.Error)
	}
	return nil
}

func (r *gormAchievementRepository) FindByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]*model.UserAchievement, error) {
	logger := middleware.GetLogger(ctx)
	var list []*model.UserAchievement

	result := db.WithContext(ctx).
		Preload("Achievement").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&list)
	if result.Error != nil {
		logger.Error(
			"Error finding user achievements in DB",
			"error", result.Error,
			"user_id", userID.String(),
		)
		return nil, fmt.Errorf("gormAchievementRepository.FindByUser: %w", result.Error)
	}
	return list, nil
}
