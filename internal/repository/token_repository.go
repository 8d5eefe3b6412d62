//go:generate mockery --name TokenRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"tymelyne_backend/internal/middleware"
	"tymelyne_backend/internal/model"

	"gorm.io/gorm"
)

// TokenRepository はアカウント有効化・パスワードリセット用トークンの永続化を担当します
type TokenRepository interface {
	CreateVerificationToken(ctx context.Context, db *gorm.DB, token *model.UserVerificationToken) error
	FindVerificationToken(ctx context.Context, db *gorm.DB, token string) (*model.UserVerificationToken, error)
	DeleteVerificationToken(ctx context.Context, db *gorm.DB, token string) error

	CreatePasswordResetToken(ctx context.Context, db *gorm.DB, token *model.PasswordResetToken) error
	FindPasswordResetToken(ctx context.Context, db *gorm.DB, token string) (*model.PasswordResetToken, error)
	DeletePasswordResetToken(ctx context.Context, db *gorm.DB, token string) error
}

type gormTokenRepository struct{}

func NewGormTokenRepository() TokenRepository {
	return &gormTokenRepository{}
}

func (r *gormTokenRepository) CreateVerificationToken(ctx context.Context, db *gorm.DB, token *model.UserVerificationToken) error {
	logger := middleware.GetLogger(ctx)

	result := db.WithContext(ctx).Create(token)
	if result.Error != nil {
		logger.Error("Error creating verification token in DB", "error", result.Error)
		return fmt.Errorf("gormTokenRepository.CreateVerificationToken: %w", result.Error)
	}
	return nil
}

func (r *gormTokenRepository) FindVerificationToken(ctx context.Context, db *gorm.DB, token string) (*model.UserVerificationToken, error) {
	logger := middleware.GetLogger(ctx)
	var vt model.UserVerificationToken

	result := db.WithContext(ctx).Where("token = ?", token).First(&vt)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding verification token in DB", "error", result.Error)
		return nil, fmt.Errorf("gormTokenRepository.FindVerificationToken: %w", result.Error)
	}
	return &vt, nil
}

func (r *gormTokenRepository) DeleteVerificationToken(ctx context.Context, db *gorm.DB, token string) error {
	logger := middleware.GetLogger(ctx)

	result := db.WithContext(ctx).Where("token = ?", token).Delete(&model.UserVerificationToken{})
	if result.Error != nil {
		logger.Error("Error deleting verification token in DB", "error", result.Error)
		return fmt.Errorf("gormTokenRepository.DeleteVerificationToken: %w", result.Error)
	}
	return nil
}

func (r *gormTokenRepository) CreatePasswordResetToken(ctx context.Context, db *gorm.DB, token *model.PasswordResetToken) error {
	logger := middleware.GetLogger(ctx)

	result := db.WithContext(ctx).Create(token)
	if result.Error != nil {
		logger.Error("Error creating password reset token in DB", "error", result.Error)
		return fmt.Errorf("gormTokenRepository.CreatePasswordResetToken: %w", result.Error)
	}
	return nil
}

func (r *gormTokenRepository) FindPasswordResetToken(ctx context.Context, db *gorm.DB, token string) (*model.PasswordResetToken, error) {
	logger := middleware.GetLogger(ctx)
	var rt model.PasswordResetToken

	result := db.WithContext(ctx).Where("token = ?", token).First(&rt)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding password reset token in DB", "error", result.Error)
		return nil, fmt.Errorf("gormTokenRepository.FindPasswordResetToken: %w", result.Error)
	}
	return &rt, nil
}

func (r *gormTokenRepository) DeletePasswordResetToken(ctx context.Context, db *gorm.DB, token string) error {
	logger := middleware.GetLogger(ctx)

	result := db.WithContext(ctx).Where("token = ?", token).Delete(&model.PasswordResetToken{})
	if result.Error != nil {
		logger.Error("Error deleting password reset token in DB", "error", result.Error)
		return fmt.Errorf("gormTokenRepository.DeletePasswordResetToken: %w", result.Error)
	}
	return nil
}
