//go:generate mockery --name ProgressRepository --output ./mocks --outpkg mocks --case=underscore
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

// ProgressRepository はアクティビティ進捗とコース進捗の永続化を担当します
type ProgressRepository interface {
	// アクティビティ進捗
	CreateActivityProgress(ctx context.Context, db *gorm.DB, progress *model.UserActivityProgress) error
	FindActivityProgress(ctx context.Context, db *gorm.DB, userID, activityID uuid.UUID) (*model.UserActivityProgress, error)
	UpdateActivityProgress(ctx context.Context, db *gorm.DB, progress *model.UserActivityProgress) error
	FindActivityProgressByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]*model.UserActivityProgress, error)
	CountCompletedByCourse(ctx context.Context, db *gorm.DB, userID, courseID uuid.UUID) (int64, error)

	// コース進捗
	CreateCourseProgress(ctx context.Context, db *gorm.DB, progress *model.UserCourseProgress) error
	FindCourseProgress(ctx context.Context, db *gorm.DB, userID, courseID uuid.UUID) (*model.UserCourseProgress, error)
	UpdateCourseProgress(ctx context.Context, db *gorm.DB, progress *model.UserCourseProgress) error
	FindCourseProgressByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]*model.UserCourseProgress, error)
	CountEnrollments(ctx context.Context, db *gorm.DB, userID uuid.UUID) (int64, error)

	// タスク生成・ダッシュボード向けの集計
	FindLatestInProgressCourse(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*model.UserCourseProgress, error)
	FindIncompleteActivities(ctx context.Context, db *gorm.DB, userID, courseID uuid.UUID, limit int) ([]*model.Activity, error)
	SumTimeSpent(ctx context.Context, db *gorm.DB, userID uuid.UUID) (int64, error)
}

type gormProgressRepository struct{}

func NewGormProgressRepository() ProgressRepository {
	return &gormProgressRepository{}
}

// CreateActivityProgress は初回完了レコードを作成します。
// 一意制約 (user_id, activity_id) 違反は ErrConflict を返し、
// 同時リクエストの競合は呼び出し側で「完了済み」として扱う。
func (r *gormProgressRepository) CreateActivityProgress(ctx context.Context, db *gorm.DB, progress *model.UserActivityProgress) error {
	logger := middleware.GetLogger(ctx)

	result := db.WithContext(ctx).Create(progress)
	if result.Error != nil {
		var pgErr *pgconn.PgError
		if errors.As(result.Error, &pgErr) && pgErr.Code == "23505" {
			logger.Warn(
				"Duplicate key error on create activity progress",
				"error", result.Error,
				"user_id", progress.UserID.String(),
				"activity_id", progress.ActivityID.String(),
			)
			return model.ErrConflict
		}
		logger.Error(
			"Error creating activity progress in DB",
			"error", result.Error,
			"user_id", progress.UserID.String(),
			"activity_id", progress.ActivityID.String(),
		)
		return fmt.Errorf("gormProgressRepository.CreateActivityProgress: %w", result.Error)
	}
	return nil
}

func (r *gormProgressRepository) FindActivityProgress(ctx context.Context, db *gorm.DB, userID, activityID uuid.UUID) (*model.UserActivityProgress, error) {
	logger := middleware.GetLogger(ctx)
	var progress model.UserActivityProgress

	result := db.WithContext(ctx).
		Where("user_id = ? AND activity_id = ?", userID, activityID).
		First(&progress)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error(
			"Error finding activity progress in DB",
			"error", result.Error,
			"user_id", userID.String(),
			"activity_id", activityID.String(),
		)
		return nil, fmt.Errorf("gormProgressRepository.FindActivityProgress: %w", result.Error)
	}
	return &progress, nil
}

func (r *gormProgressRepository) UpdateActivityProgress(ctx context.Context, db *gorm.DB, progress *model.UserActivityProgress) error {
	logger := middleware.GetLogger(ctx)

	result := db.WithContext(ctx).Save(progress)
	if result.Error != nil {
		logger.Error(
			"Error updating activity progress in DB",
			"error", result.Error,
			"user_id", progress.UserID.String(),
			"activity_id", progress.ActivityID.String(),
		)
		return fmt.Errorf("gormProgressRepository.UpdateActivityProgress: %w", result.Error)
	}
	return nil
}

func (r *gormProgressRepository) FindActivityProgressByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]*model.UserActivityProgress, error) {
	logger := middleware.GetLogger(ctx)
	var list []*model.UserActivityProgress

	result := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&list)
	if result.Error != nil {
		logger.Error(
			"Error finding activity progress list in DB",
			"error", result.Error,
			"user_id", userID.String(),
		)
		return nil, fmt.Errorf("gormProgressRepository.FindActivityProgressByUser: %w", result.Error)
	}
	return list, nil
}

// CountCompletedByCourse はユーザーがコース内で完了済みのアクティビティ数を返します（進捗率の分子）
func (r *gormProgressRepository) CountCompletedByCourse(ctx context.Context, db *gorm.DB, userID, courseID uuid.UUID) (int64, error) {
	logger := middleware.GetLogger(ctx)
	var count int64

	result := db.WithContext(ctx).Model(&model.UserActivityProgress{}).
		Joins("JOIN activities ON activities.activity_id = user_activity_progress.activity_id").
		Joins("JOIN lessons ON lessons.lesson_id = activities.lesson_id").
		Joins("JOIN modules ON modules.module_id = lessons.module_id").
		Where("user_activity_progress.user_id = ? AND user_activity_progress.is_completed = ? AND modules.course_id = ?",
			userID, true, courseID).
		Count(&count)
	if result.Error != nil {
		logger.Error(
			"Error counting completed activities in DB",
			"error", result.Error,
			"user_id", userID.String(),
			"course_id", courseID.String(),
		)
		return 0, fmt.Errorf("gormProgressRepository.CountCompletedByCourse: %w", result.Error)
	}
	return count, nil
}

func (r *gormProgressRepository) CreateCourseProgress(ctx context.Context, db *gorm.DB, progress *model.UserCourseProgress) error {
	logger := middleware.GetLogger(ctx)

	result := db.WithContext(ctx).Create(progress)
	if result.Error != nil {
		var pgErr *pgconn.PgError
		if errors.As(result.Error, &pgErr) && pgErr.Code == "23505" {
			logger.Warn(
				"Duplicate key error on create course progress",
				"error", result.Error,
				"user_id", progress.UserID.String(),
				"course_id", progress.CourseID.String(),
			)
			return model.ErrConflict
		}
		logger.Error(
			"Error creating course progress in DB",
			"error", result.Error,
			"user_id", progress.UserID.String(),
			"course_id", progress.CourseID.String(),
		)
		return fmt.Errorf("gormProgressRepository.CreateCourseProgress: %w", result.Error)
	}
	return nil
}

func (r *gormProgressRepository) FindCourseProgress(ctx context.Context, db *gorm.DB, userID, courseID uuid.UUID) (*model.UserCourseProgress, error) {
	logger := middleware.GetLogger(ctx)
	var progress model.UserCourseProgress

	result := db.WithContext(ctx).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&progress)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error(
			"Error finding course progress in DB",
			"error", result.Error,
			"user_id", userID.String(),
			"course_id", courseID.String(),
		)
		return nil, fmt.Errorf("gormProgressRepository.FindCourseProgress: %w", result.Error)
	}
	return &progress, nil
}

func (r *gormProgressRepository) UpdateCourseProgress(ctx context.Context, db *gorm.DB, progress *model.UserCourseProgress) error {
	logger := middleware.GetLogger(ctx)

	result := db.WithContext(ctx).Save(progress)
	if result.Error != nil {
		logger.Error(
			"Error updating course progress in DB",
			"error", result.Error,
			"user_id", progress.UserID.String(),
			"course_id", progress.CourseID.String(),
		)
		return fmt.Errorf("gormProgressRepository.UpdateCourseProgress: %w", result.Error)
	}
	return nil
}

func (r *gormProgressRepository) FindCourseProgressByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]*model.UserCourseProgress, error) {
	logger := middleware.GetLogger(ctx)
	var list []*model.UserCourseProgress

	result := db.WithContext(ctx).
		Preload("Course").
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&list)
	if result.Error != nil {
		logger.Error(
			"Error finding course progress list in DB",
			"error", result.Error,
			"user_id", userID.String(),
		)
		return nil, fmt.Errorf("gormProgressRepository.FindCourseProgressByUser: %w", result.Error)
	}
	return list, nil
}

func (r *gormProgressRepository) CountEnrollments(ctx context.Context, db *gorm.DB, userID uuid.UUID) (int64, error) {
	logger := middleware.GetLogger(ctx)
	var count int64

	result := db.WithContext(ctx).Model(&model.UserCourseProgress{}).
		Where("user_id = ?", userID).
		Count(&count)
	if result.Error != nil {
		logger.Error(
			"Error counting enrollments in DB",
			"error", result.Error,
			"user_id", userID.String(),
		)
		return 0, fmt.Errorf("gormProgressRepository.CountEnrollments: %w", result.Error)
	}
	return count, nil
}

// FindLatestInProgressCourse は未完了のコース進捗のうち最後に更新されたものを返します。
// 学習タスク生成の起点となるコースの決定に使う。
func (r *gormProgressRepository) FindLatestInProgressCourse(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*model.UserCourseProgress, error) {
	logger := middleware.GetLogger(ctx)
	var progress model.UserCourseProgress

	result := db.WithContext(ctx).
		Preload("Course").
		Where("user_id = ? AND is_completed = ?", userID, false).
		Order("updated_at DESC").
		First(&progress)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error(
			"Error finding latest in-progress course in DB",
			"error", result.Error,
			"user_id", userID.String(),
		)
		return nil, fmt.Errorf("gormProgressRepository.FindLatestInProgressCourse: %w", result.Error)
	}
	return &progress, nil
}

// FindIncompleteActivities はユーザーが未完了のアクティビティをカリキュラム順
// （モジュール→レッスン→アクティビティの各 sort_order 昇順）で返します
func (r *gormProgressRepository) FindIncompleteActivities(ctx context.Context, db *gorm.DB, userID, courseID uuid.UUID, limit int) ([]*model.Activity, error) {
	logger := middleware.GetLogger(ctx)
	var activities []*model.Activity

	completedSub := db.Model(&model.UserActivityProgress{}).
		Select("activity_id").
		Where("user_id = ? AND is_completed = ?", userID, true)

	result := db.WithContext(ctx).Model(&model.Activity{}).
		Preload("Lesson").
		Joins("JOIN lessons ON lessons.lesson_id = activities.lesson_id").
		Joins("JOIN modules ON modules.module_id = lessons.module_id").
		Where("modules.course_id = ?", courseID).
		Where("activities.activity_id NOT IN (?)", completedSub).
		Order("modules.sort_order ASC, lessons.sort_order ASC, activities.sort_order ASC").
		Limit(limit).
		Find(&activities)
	if result.Error != nil {
		logger.Error(
			"Error finding incomplete activities in DB",
			"error", result.Error,
			"user_id", userID.String(),
			"course_id", courseID.String(),
		)
		return nil, fmt.Errorf("gormProgressRepository.FindIncompleteActivities: %w", result.Error)
	}
	return activities, nil
}

func (r *gormProgressRepository) SumTimeSpent(ctx context.Context, db *gorm.DB, userID uuid.UUID) (int64, error) {
	logger := middleware.GetLogger(ctx)
	var total int64

	result := db.WithContext(ctx).Model(&model.UserActivityProgress{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(time_spent), 0)").
		Scan(&total)
	if result.Error != nil {
		logger.Error(
			"Error summing time spent in DB",
			"error", result.Error,
			"user_id", userID.String(),
		)
		return 0, fmt.Errorf("gormProgressRepository.SumTimeSpent: %w", result.Error)
	}
	return total, nil
}
