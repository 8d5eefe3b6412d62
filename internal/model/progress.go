// internal/model/progress.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// UserCourseProgress はユーザーごとのコース進捗を表します。
// (user_id, course_id) は一意。is_completed は一度 true になったら戻らない。
type UserCourseProgress struct {
	ProgressID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"progress_id"`
	UserID             uuid.UUID `gorm:"type:uuid;not null;index:idx_user_course,unique" json:"-"`
	CourseID           uuid.UUID `gorm:"type:uuid;not null;index:idx_user_course,unique" json:"course_id"`
	ProgressPercentage int       `gorm:"not null;default:0" json:"progress_percentage"`
	IsCompleted        bool      `gorm:"not null;default:false" json:"is_completed"`
	LastAccessed       time.Time `json:"last_accessed"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`

	Course *Course `gorm:"foreignKey:CourseID;references:CourseID" json:"course,omitempty"`
}

func (UserCourseProgress) TableName() string {
	return "user_course_progress"
}

// UserActivityProgress はユーザーごとのアクティビティ進捗を表します。
// (user_id, activity_id) は一意。XPはこのレコードの作成時にのみ付与される。
type UserActivityProgress struct {
	ProgressID   uuid.UUID      `gorm:"type:uuid;primaryKey" json:"progress_id"`
	UserID       uuid.UUID      `gorm:"type:uuid;not null;index:idx_user_activity,unique" json:"-"`
	ActivityID   uuid.UUID      `gorm:"type:uuid;not null;index:idx_user_activity,unique" json:"activity_id"`
	IsCompleted  bool           `gorm:"not null;default:false" json:"is_completed"`
	UserResponse datatypes.JSON `json:"user_response,omitempty"` // クイズ等の回答内容
	Score        *float64       `json:"score,omitempty"`
	TimeSpent    int            `gorm:"not null;default:0" json:"time_spent"` // 秒単位
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`

	Activity *Activity `gorm:"foreignKey:ActivityID;references:ActivityID" json:"-"`
}

func (UserActivityProgress) TableName() string {
	return "user_activity_progress"
}

// CompleteActivityRequest はアクティビティ完了APIのリクエストDTO
type CompleteActivityRequest struct {
	TimeSpent    int            `json:"time_spent" validate:"min=0"`
	UserResponse datatypes.JSON `json:"user_response,omitempty"`
	Score        *float64       `json:"score,omitempty" validate:"omitempty,min=0,max=100"`
}

// CompleteActivityResponse はアクティビティ完了の結果。
// 初回完了時のみ XPEarned などが設定される (2回目以降は AlreadyCompleted=true のみ)。
type CompleteActivityResponse struct {
	Message          string `json:"message"`
	AlreadyCompleted bool   `json:"already_completed"`
	XPEarned         int    `json:"xp_earned,omitempty"`
	CurrentLevel     int    `json:"current_level,omitempty"`
	CurrentXP        int    `json:"current_xp,omitempty"`
	CourseProgress   int    `json:"course_progress,omitempty"`
}
