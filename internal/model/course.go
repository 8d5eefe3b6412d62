// internal/model/course.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// コースの難易度
const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
	DifficultyAllLevels    = "all_levels"
)

// ActivityType はアクティビティの種別
type ActivityType string

const (
	ActivityTypeReading      ActivityType = "reading"
	ActivityTypeQuiz         ActivityType = "quiz"
	ActivityTypePractice     ActivityType = "practice"
	ActivityTypeWriting      ActivityType = "writing"
	ActivityTypeChallenge    ActivityType = "challenge"
	ActivityTypeReflection   ActivityType = "reflection"
	ActivityTypeConceptCheck ActivityType = "concept_check"
	ActivityTypeMatching     ActivityType = "matching"
)

// Course はコース (モジュール → レッスン → アクティビティの階層の頂点) を表します
type Course struct {
	CourseID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"course_id"`
	Title             string         `gorm:"not null" json:"title"`
	Description       string         `json:"description"`
	Category          string         `json:"category"`
	Difficulty        string         `gorm:"type:varchar(20);default:'beginner'" json:"difficulty"`
	EstimatedDuration string         `json:"estimated_duration"` // 例: "4 weeks"
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`

	// 関連 (Preload用)
	Modules []Module `gorm:"foreignKey:CourseID;references:CourseID" json:"modules,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}

// Module はコース内のモジュールを表します
type Module struct {
	ModuleID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"module_id"`
	CourseID    uuid.UUID `gorm:"type:uuid;not null;index:idx_course_order,unique" json:"-"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description"`
	Order       int       `gorm:"column:sort_order;not null;index:idx_course_order,unique" json:"order"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Lessons []Lesson `gorm:"foreignKey:ModuleID;references:ModuleID" json:"lessons,omitempty"`
}

func (Module) TableName() string {
	return "modules"
}

// Lesson はモジュール内のレッスンを表します
type Lesson struct {
	LessonID  uuid.UUID `gorm:"type:uuid;primaryKey" json:"lesson_id"`
	ModuleID  uuid.UUID `gorm:"type:uuid;not null;index:idx_module_order,unique" json:"-"`
	Title     string    `gorm:"not null" json:"title"`
	Content   string    `json:"content"`
	Order     int       `gorm:"column:sort_order;not null;index:idx_module_order,unique" json:"order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Activities []Activity `gorm:"foreignKey:LessonID;references:LessonID" json:"activities,omitempty"`
}

func (Lesson) TableName() string {
	return "lessons"
}

// Activity は学習コンテンツの最小単位で、完了とXP付与の単位です
type Activity struct {
	ActivityID   uuid.UUID    `gorm:"type:uuid;primaryKey" json:"activity_id"`
	LessonID     uuid.UUID    `gorm:"type:uuid;not null;index:idx_lesson_order,unique" json:"-"`
	Title        string       `gorm:"not null" json:"title"`
	Description  string       `json:"description"`
	ActivityType ActivityType `gorm:"type:varchar(20);default:'reading'" json:"activity_type"`
	Content      string       `json:"content"`
	Order        int          `gorm:"column:sort_order;not null;index:idx_lesson_order,unique" json:"order"`
	XPReward     int          `gorm:"not null;default:10" json:"xp_reward"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`

	Lesson *Lesson `gorm:"foreignKey:LessonID;references:LessonID" json:"-"`
}

func (Activity) TableName() string {
	return "activities"
}

// コース作成リクエストDTO
type CreateCourseRequest struct {
	Title             string `json:"title" validate:"required,max=200"`
	Description       string `json:"description"`
	Category          string `json:"category" validate:"omitempty,max=100"`
	Difficulty        string `json:"difficulty" validate:"omitempty,oneof=beginner intermediate advanced all_levels"`
	EstimatedDuration string `json:"estimated_duration" validate:"omitempty,max=50"`
}

// コース更新リクエストDTO
type UpdateCourseRequest struct {
	Title             *string `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description       *string `json:"description,omitempty"`
	Category          *string `json:"category,omitempty" validate:"omitempty,max=100"`
	Difficulty        *string `json:"difficulty,omitempty" validate:"omitempty,oneof=beginner intermediate advanced all_levels"`
	EstimatedDuration *string `json:"estimated_duration,omitempty" validate:"omitempty,max=50"`
}

// EnrollResponse は受講登録APIのレスポンス
type EnrollResponse struct {
	Message         string `json:"message"`
	AlreadyEnrolled bool   `json:"already_enrolled"`
}
