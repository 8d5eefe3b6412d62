// internal/model/profile.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// Profile は学習状況と実績を保持するユーザープロフィールを表します。
// 不変条件: 更新後は常に XP < XPForLevel(Level) が成り立つ (レベルアップは即時適用)。
type Profile struct {
	ProfileID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"profile_id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"-"`
	DisplayName string    `json:"display_name"`
	Bio         string    `json:"bio"`

	// XPとレベル
	XP             int        `gorm:"not null;default:0" json:"xp"`
	Level          int        `gorm:"not null;default:1" json:"level"`
	DaysStreak     int        `gorm:"not null;default:0" json:"days_streak"`
	LastActiveDate *time.Time `json:"last_active_date,omitempty"`

	// 表示設定
	ThemePreference string `gorm:"type:varchar(20);default:'system'" json:"theme_preference"`
	AccentColor     string `gorm:"type:varchar(20);default:'#FF9500'" json:"accent_color"`

	// 統計
	TotalCoursesCompleted int `gorm:"not null;default:0" json:"total_courses_completed"`
	TotalLessonsCompleted int `gorm:"not null;default:0" json:"total_lessons_completed"`
	TotalLearningTime     int `gorm:"not null;default:0" json:"total_learning_time"` // 分単位

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}

// XPForLevel は指定レベルから次のレベルに上がるのに必要なXPを返します
func XPForLevel(level int) int {
	return level * 100
}

// UpdateProfileRequest はプロフィール更新リクエストのDTO
type UpdateProfileRequest struct {
	DisplayName     *string `json:"display_name,omitempty" validate:"omitempty,max=50"`
	Bio             *string `json:"bio,omitempty" validate:"omitempty,max=1000"`
	ThemePreference *string `json:"theme_preference,omitempty" validate:"omitempty,oneof=light dark system"`
	AccentColor     *string `json:"accent_color,omitempty" validate:"omitempty,max=20"`
}

// AddExperienceRequest はXP付与APIのリクエストDTO
type AddExperienceRequest struct {
	Amount *int `json:"amount" validate:"required,min=0"`
}

// AddExperienceResponse はXP付与の結果
type AddExperienceResponse struct {
	Level int `json:"level"`
	XP    int `json:"xp"`
}

// DashboardResponse はダッシュボードAPIのレスポンスDTO
type DashboardResponse struct {
	Username          string `json:"username"`
	Level             int    `json:"level"`
	XP                int    `json:"xp"`
	NextLevelXP       int    `json:"next_level_xp"`
	DaysStreak        int    `json:"days_streak"`
	CoursesCompleted  int    `json:"courses_completed"`
	CoursesInProgress int    `json:"courses_in_progress"`
	LessonsCompleted  int    `json:"lessons_completed"`
	TotalLearningTime int    `json:"total_learning_time"`
	RecentActivities  int    `json:"recent_activities"`
	Achievements      int    `json:"achievements"`
	Certificates      int    `json:"certificates"`
}
