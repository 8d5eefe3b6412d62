// internal/model/task.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// TaskType はタスクの種別
type TaskType string

const (
	TaskTypeCourse     TaskType = "course"
	TaskTypeLesson     TaskType = "lesson"
	TaskTypeActivity   TaskType = "activity"
	TaskTypeProfile    TaskType = "profile"
	TaskTypeStreak     TaskType = "streak"
	TaskTypeGoal       TaskType = "goal"
	TaskTypeOnboarding TaskType = "onboarding"
	TaskTypeOther      TaskType = "other"
)

// TaskPriority はタスクの優先度
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

// TaskStatus はタスクの状態
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusSkipped    TaskStatus = "skipped"
)

// Task は生成された作業リストの1エントリを表します。
// 自動生成されるため履歴は持たず、削除・再生成しても安全。
type Task struct {
	TaskID      uuid.UUID    `gorm:"type:uuid;primaryKey" json:"task_id"`
	UserID      uuid.UUID    `gorm:"type:uuid;not null;index" json:"-"`
	Title       string       `gorm:"not null" json:"title"`
	Description string       `json:"description"`
	TaskType    TaskType     `gorm:"type:varchar(20);default:'other'" json:"task_type"`
	Priority    TaskPriority `gorm:"type:varchar(10);default:'medium'" json:"priority"`
	DueDate     *time.Time   `json:"due_date,omitempty"`
	Status      TaskStatus   `gorm:"type:varchar(20);default:'pending'" json:"status"`
	XPReward    int          `gorm:"not null;default:10" json:"xp_reward"`

	// 関連エンティティへの参照 (任意)
	RelatedID   *uuid.UUID `gorm:"type:uuid" json:"related_id,omitempty"`
	RelatedType string     `gorm:"type:varchar(20)" json:"related_type,omitempty"`

	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (Task) TableName() string {
	return "tasks"
}

// GenerateTasksRequest はタスク生成APIのリクエストDTO
type GenerateTasksRequest struct {
	Count *int `json:"count,omitempty" validate:"omitempty,min=1,max=20"`
}

// UpdateTaskStatusRequest はタスク状態更新リクエストのDTO
type UpdateTaskStatusRequest struct {
	Status TaskStatus `json:"status" validate:"required,oneof=pending in_progress completed skipped"`
}
