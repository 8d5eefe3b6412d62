//go:generate mockery --name TaskRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"tymelyne_backend/internal/middleware"
	"tymelyne_backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TaskRepository はユーザーのデイリータスクの永続化を担当します
type TaskRepository interface {
	Create(ctx context.Context, db *gorm.DB, task *model.Task) error
	FindByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]*model.Task, error)
	FindByID(ctx context.Context, db *gorm.DB, userID, taskID uuid.UUID) (*model.Task, error)
	Update(ctx context.Context, db *gorm.DB, task *model.Task) error
	DeleteByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) error
	DeleteByUserAndTypes(ctx context.Context, db *gorm.DB, userID uuid.UUID, types []model.TaskType) error
}

type gormTaskRepository struct{}

func NewGormTaskRepository() TaskRepository {
	return &gormTaskRepository{}
}

func (r *gormTaskRepository) Create(ctx context.Context, db *gorm.DB, task *model.Task) error {
	logger := middleware.GetLogger(ctx)

	result := db.WithContext(ctx).Create(task)
	if result.Error != nil {
		logger.Error(
			"Error creating task in DB",
			"error", result.Error,
			"user_id", task.UserID.String(),
			"task_type", string(task.TaskType),
		)
		return fmt.Errorf("gormTaskRepository.Create: %w", result.Error)
	}
	return nil
}

// FindByUser は期限昇順でタスク一覧を返します
func (r *gormTaskRepository) FindByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]*model.Task, error) {
	logger := middleware.GetLogger(ctx)
	var tasks []*model.Task

	result := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("due_date ASC, created_at ASC").
		Find(&tasks)
	if result.Error != nil {
		logger.Error(
			"Error finding tasks in DB",
			"error", result.Error,
			"user_id", userID.String(),
		)
		return nil, fmt.Errorf("gormTaskRepository.FindByUser: %w", result.Error)
	}
	return tasks, nil
}

func (r *gormTaskRepository) FindByID(ctx context.Context, db *gorm.DB, userID, taskID uuid.UUID) (*model.Task, error) {
	logger := middleware.GetLogger(ctx)
	var task model.Task

	// user_id を必ず条件に含め、他ユーザーのタスクは存在しないものとして扱う
	result := db.WithContext(ctx).
		Where("task_id = ? AND user_id = ?", taskID, userID).
		First(&task)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error(
			"Error finding task by ID in DB",
			"error", result.Error,
			"task_id", taskID.String(),
			"user_id", userID.String(),
		)
		return nil, fmt.Errorf("gormTaskRepository.FindByID: %w", result.Error)
	}
	return &task, nil
}

func (r *gormTaskRepository) Update(ctx context.Context, db *gorm.DB, task *model.Task) error {
	logger := middleware.GetLogger(ctx)

	result := db.WithContext(ctx).Save(task)
	if result.Error != nil {
		logger.Error(
			"Error updating task in DB",
			"error", result.Error,
			"task_id", task.TaskID.String(),
		)
		return fmt.Errorf("gormTaskRepository.Update: %w", result.Error)
	}
	return nil
}

func (r *gormTaskRepository) DeleteByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)

	result := db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.Task{})
	if result.Error != nil {
		logger.Error(
			"Error deleting tasks in DB",
			"error", result.Error,
			"user_id", userID.String(),
		)
		return fmt.Errorf("gormTaskRepository.DeleteByUser: %w", result.Error)
	}
	return nil
}

// DeleteByUserAndTypes は指定した種別のタスクだけを削除します。
// 再生成の対象にならない種別（goal, streak 等）を残すために使う。
func (r *gormTaskRepository) DeleteByUserAndTypes(ctx context.Context, db *gorm.DB, userID uuid.UUID, types []model.TaskType) error {
	logger := middleware.GetLogger(ctx)

	result := db.WithContext(ctx).
		Where("user_id = ? AND task_type IN ?", userID, types).
		Delete(&model.Task{})
	if result.Error != nil {
		logger.Error(
			"Error deleting tasks by type in DB",
			"error", result.Error,
			"user_id", userID.String(),
		)
		return fmt.Errorf("gormTaskRepository.DeleteByUserAndTypes: %w", result.Error)
	}
	return nil
}
