// internal/model/achievement.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// 実績のカテゴリ
const (
	AchievementCategoryLearning    = "learning"
	AchievementCategoryPerformance = "performance"
	AchievementCategoryStreak      = "streak"
	AchievementCategorySocial      = "social"
	AchievementCategorySpecial     = "special"
)

// Achievement は実績のマスタデータを表します
type Achievement struct {
	AchievementID uuid.UUID `gorm:"type:uuid;primaryKey" json:"achievement_id"`
	Name          string    `gorm:"not null" json:"name"`
	Description   string    `json:"description"`
	Icon          string    `gorm:"type:varchar(50)" json:"icon"`
	XPReward      int       `gorm:"not null;default:50" json:"xp_reward"`
	Category      string    `gorm:"type:varchar(20);default:'learning'" json:"category"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (Achievement) TableName() string {
	return "achievements"
}

// UserAchievement はユーザーが獲得した実績を表します。
// (user_id, achievement_id) は一意。EarnedAt が nil の場合は進行中扱い。
type UserAchievement struct {
	ID            uint       `gorm:"primaryKey" json:"-"`
	UserID        uuid.UUID  `gorm:"type:uuid;not null;index:idx_user_achievement,unique" json:"-"`
	AchievementID uuid.UUID  `gorm:"type:uuid;not null;index:idx_user_achievement,unique" json:"achievement_id"`
	EarnedAt      *time.Time `json:"earned_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`

	Achievement *Achievement `gorm:"foreignKey:AchievementID;references:AchievementID" json:"achievement,omitempty"`
}

func (UserAchievement) TableName() string {
	return "user_achievements"
}
