//go:generate mockery --name CourseRepository --output ./mocks --outpkg mocks --case=underscore
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

// CourseRepository はコースカタログ（コース・モジュール・レッスン・アクティビティ）の永続化を担当します
type CourseRepository interface {
	Create(ctx context.Context, db *gorm.DB, course *model.Course) error
	FindByID(ctx context.Context, db *gorm.DB, courseID uuid.UUID) (*model.Course, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]*model.Course, error)
	Update(ctx context.Context, db *gorm.DB, courseID uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, db *gorm.DB, courseID uuid.UUID) error
	FindActivityByID(ctx context.Context, db *gorm.DB, activityID uuid.UUID) (*model.Activity, error)
	FindCourseIDByActivity(ctx context.Context, db *gorm.DB, activityID uuid.UUID) (uuid.UUID, error)
	CountActivitiesByCourse(ctx context.Context, db *gorm.DB, courseID uuid.UUID) (int64, error)
}

type gormCourseRepository struct{}

func NewGormCourseRepository() CourseRepository {
	return &gormCourseRepository{}
}

func (r *gormCourseRepository) Create(ctx context.Context, db *gorm.DB, course *model.Course) error {
	logger := middleware.GetLogger(ctx)

	// FullSaveAssociations なしでも、ネストされた Modules/Lessons/Activities は
	// gorm のアソシエーション自動保存で一括INSERTされる
	result := db.WithContext(ctx).Create(course)
	if result.Error != nil {
		var pgErr *pgconn.PgError
		if errors.As(result.Error, &pgErr) && pgErr.Code == "23505" {
			logger.Warn("Duplicate key error on create course", "error", result.Error, "title", course.Title)
			return model.ErrConflict
		}
		logger.Error("Error creating course in DB", "error", result.Error, "title", course.Title)
		return fmt.Errorf("gormCourseRepository.Create: %w", result.Error)
	}
	return nil
}

// FindByID はコースをモジュール→レッスン→アクティビティまで展開して取得します。
// 各階層は sort_order 昇順で返されます。
func (r *gormCourseRepository) FindByID(ctx context.Context, db *gorm.DB, courseID uuid.UUID) (*model.Course, error) {
	logger := middleware.GetLogger(ctx)
	var course model.Course

	result := db.WithContext(ctx).
		Preload("Modules", func(db *gorm.DB) *gorm.DB {
			return db.Order("modules.sort_order ASC")
		}).
		Preload("Modules.Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Order("lessons.sort_order ASC")
		}).
		Preload("Modules.Lessons.Activities", func(db *gorm.DB) *gorm.DB {
			return db.Order("activities.sort_order ASC")
		}).
		Where("course_id = ?", courseID).
		First(&course)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error(
			"Error finding course by ID in DB",
			"error", result.Error,
			"course_id", courseID.String(),
		)
		return nil, fmt.Errorf("gormCourseRepository.FindByID: %w", result.Error)
	}
	return &course, nil
}

func (r *gormCourseRepository) FindAll(ctx context.Context, db *gorm.DB) ([]*model.Course, error) {
	logger := middleware.GetLogger(ctx)
	var courses []*model.Course

	result := db.WithContext(ctx).Order("created_at ASC").Find(&courses)
	if result.Error != nil {
		logger.Error("Error finding courses in DB", "error", result.Error)
		return nil, fmt.Errorf("gormCourseRepository.FindAll: %w", result.Error)
	}
	return courses, nil
}

func (r *gormCourseRepository) Update(ctx context.Context, db *gorm.DB, courseID uuid.UUID, updates map[string]interface{}) error {
	logger := middleware.GetLogger(ctx)

	result := db.WithContext(ctx).Model(&model.Course{}).Where("course_id = ?", courseID).Updates(updates)
	if result.Error != nil {
		logger.Error(
			"Error updating course in DB",
			"error", result.Error,
			"course_id", courseID.String(),
		)
		return fmt.Errorf("gormCourseRepository.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormCourseRepository) Delete(ctx context.Context, db *gorm.DB, courseID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)

	// 論理削除 (gorm.DeletedAt)
	result := db.WithContext(ctx).Where("course_id = ?", courseID).Delete(&model.Course{})
	if result.Error != nil {
		logger.Error(
			"Error deleting course in DB",
			"error", result.Error,
			"course_id", courseID.String(),
		)
		return fmt.Errorf("gormCourseRepository.Delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormCourseRepository) FindActivityByID(ctx context.Context, db *gorm.DB, activityID uuid.UUID) (*model.Activity, error) {
	logger := middleware.GetLogger(ctx)
	var activity model.Activity

	result := db.WithContext(ctx).Preload("Lesson").Where("activity_id = ?", activityID).First(&activity)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error(
			"Error finding activity by ID in DB",
			"error", result.Error,
			"activity_id", activityID.String(),
		)
		return nil, fmt.Errorf("gormCourseRepository.FindActivityByID: %w", result.Error)
	}
	return &activity, nil
}

// FindCourseIDByActivity はアクティビティが属するコースのIDを返します。
// uuid.UUID へ直接 Scan するとドライバによっては型変換に失敗するため、
// 文字列で受けてからパースする
func (r *gormCourseRepository) FindCourseIDByActivity(ctx context.Context, db *gorm.DB, activityID uuid.UUID) (uuid.UUID, error) {
	logger := middleware.GetLogger(ctx)
	var raw string

	result := db.WithContext(ctx).Model(&model.Activity{}).
		Select("modules.course_id").
		Joins("JOIN lessons ON lessons.lesson_id = activities.lesson_id").
		Joins("JOIN modules ON modules.module_id = lessons.module_id").
		Where("activities.activity_id = ?", activityID).
		Scan(&raw)
	if result.Error != nil {
		logger.Error(
			"Error finding course ID by activity in DB",
			"error", result.Error,
			"activity_id", activityID.String(),
		)
		return uuid.Nil, fmt.Errorf("gormCourseRepository.FindCourseIDByActivity: %w", result.Error)
	}
	if result.RowsAffected == 0 || raw == "" {
		return uuid.Nil, model.ErrNotFound
	}
	courseID, err := uuid.Parse(raw)
	if err != nil {
		logger.Error(
			"Error parsing course ID from DB",
			"error", err,
			"activity_id", activityID.String(),
			"raw", raw,
		)
		return uuid.Nil, fmt.Errorf("gormCourseRepository.FindCourseIDByActivity: %w", err)
	}
	return courseID, nil
}

// CountActivitiesByCourse はコース配下の総アクティビティ数を返します。
// 進捗率の分母となるため、レッスン→モジュール経由でコースに紐づく全件を数える。
func (r *gormCourseRepository) CountActivitiesByCourse(ctx context.Context, db *gorm.DB, courseID uuid.UUID) (int64, error) {
	logger := middleware.GetLogger(ctx)
	var count int64

	result := db.WithContext(ctx).Model(&model.Activity{}).
		Joins("JOIN lessons ON lessons.lesson_id = activities.lesson_id").
		Joins("JOIN modules ON modules.module_id = lessons.module_id").
		Where("modules.course_id = ?", courseID).
		Count(&count)
	if result.Error != nil {
		logger.Error(
			"Error counting activities by course in DB",
			"error", result.Error,
			"course_id", courseID.String(),
		)
		return 0, fmt.Errorf("gormCourseRepository.CountActivitiesByCourse: %w", result.Error)
	}
	return count, nil
}
