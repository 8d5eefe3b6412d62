//go:generate mockery --name ProfileRepository --output ./mocks --outpkg mocks --case=underscore
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

// ProfileRepository はユーザープロフィール（XP・レベル・ストリーク等）の永続化を担当します
type ProfileRepository interface {
	Create(ctx context.Context, db *gorm.DB, profile *model.Profile) error
	FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*model.Profile, error)
	Update(ctx context.Context, db *gorm.DB, profile *model.Profile) error
}

type gormProfileRepository struct{}

func NewGormProfileRepository() ProfileRepository {
	return &gormProfileRepository{}
}

func (r *gormProfileRepository) Create(ctx context.Context, db *gorm.DB, profile *model.Profile) error {
	logger := middleware.GetLogger(ctx)

	result := db.WithContext(ctx).Create(profile)
	if result.Error != nil {
		var pgErr *pgconn.PgError
		if errors.As(result.Error, &pgErr) && pgErr.Code == "23505" {
			logger.Warn(
				"Duplicate key error on create profile",
				"error", result.Error,
				"user_id", profile.UserID.String(),
			)
			return model.ErrConflict
		}

		logger.Error(
			"Error creating profile in DB",
			"error", result.Error,
			"user_id", profile.UserID.String(),
		)
		return fmt.Errorf("gormProfileRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormProfileRepository) FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*model.Profile, error) {
	logger := middleware.GetLogger(ctx)
	var profile model.Profile

	result := db.WithContext(ctx).Where("user_id = ?", userID).First(&profile)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error(
			"Error finding profile by user ID in DB",
			"error", result.Error,
			"user_id", userID.String(),
		)
		return nil, fmt.Errorf("gormProfileRepository.FindByUserID: %w", result.Error)
	}
	return &profile, nil
}

// Update はプロフィールの全フィールドを保存します。
// XP・レベルの更新はトランザクション内で呼び出すこと。
func (r *gormProfileRepository) Update(ctx context.Context, db *gorm.DB, profile *model.Profile) error {
	logger := middleware.GetLogger(ctx)

	result := db.WithContext(ctx).Save(profile)
	if result.Error != nil {
		logger.Error(
			"Error updating profile in DB",
			"error", result.Error,
			"user_id", profile.UserID.String(),
		)
		return fmt.Errorf("gormProfileRepository.Update: %w", result.Error)
	}
	return nil
}
