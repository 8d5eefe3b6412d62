//go:generate mockery --name CertificateRepository --output ./mocks --outpkg mocks --case=underscore
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

// CertificateRepository は修了証の永続化を担当します
type CertificateRepository interface {
	Create(ctx context.Context, db *gorm.DB, cert *model.Certificate) error
	FindByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]*model.Certificate, error)
	FindByUserAndCourse(ctx context.Context, db *gorm.DB, userID, courseID uuid.UUID) (*model.Certificate, error)
}

type gormCertificateRepository struct{}

func NewGormCertificateRepository() CertificateRepository {
	return &gormCertificateRepository{}
}

// Create は修了証を発行します。
// 一意制約 (user_id, course_id) 違反は ErrConflict（発行済み）を返す。
func (r *gormCertificateRepository) Create(ctx context.Context, db *gorm.DB, cert *model.Certificate) error {
	logger := middleware.GetLogger(ctx)

	result := db.WithContext(ctx).Create(cert)
	if result.Error != nil {
		var pgErr *pgconn.PgError
		if errors.As(result.Error, &pgErr) && pgErr.Code == "23505" {
			logger.Debug(
				"Certificate already issued",
				"user_id", cert.UserID.String(),
				"course_id", cert.CourseID.String(),
			)
			return model.ErrConflict
		}
		logger.Error(
			"Error creating certificate in DB",
			"error", result.Error,
			"user_id", cert.UserID.String(),
			"course_id", cert.CourseID.String(),
		)
		return fmt.Errorf("gormCertificateRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormCertificateRepository) FindByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]*model.Certificate, error) {
	logger := middleware.GetLogger(ctx)
	var certs []*model.Certificate

	result := db.WithContext(ctx).
		Preload("Course").
		Where("user_id = ?", userID).
		Order("issued_at DESC").
		Find(&certs)
	if result.Error != nil {
		logger.Error(
			"Error finding certificates in DB",
			"error", result.Error,
			"user_id", userID.String(),
		)
		return nil, fmt.Errorf("gormCertificateRepository.FindByUser: %w", result.Error)
	}
	return certs, nil
}

func (r *gormCertificateRepository) FindByUserAndCourse(ctx context.Context, db *gorm.DB, userID, courseID uuid.UUID) (*model.Certificate, error) {
	logger := middleware.GetLogger(ctx)
	var cert model.Certificate

	result := db.WithContext(ctx).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&cert)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error(
			"Error finding certificate in DB",
			"error", result.Error,
			"user_id", userID.String(),
			"course_id", courseID.String(),
		)
		return nil, fmt.Errorf("gormCertificateRepository.FindByUserAndCourse: %w", result.Error)
	}
	return &cert, nil
}
