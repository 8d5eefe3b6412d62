package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tymelyne_backend/internal/config"
	"tymelyne_backend/internal/middleware"
	"tymelyne_backend/internal/model"
	"tymelyne_backend/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// タスク再生成時に削除対象となる種別。goal や streak などの
// その日の状態に紐づくタスクは学習タスクと独立に再生成される
var regeneratedTaskTypes = []model.TaskType{
	model.TaskTypeCourse,
	model.TaskTypeLesson,
	model.TaskTypeActivity,
}

type TaskService interface {
	GenerateTasks(ctx context.Context, userID uuid.UUID, req *model.GenerateTasksRequest) ([]*model.Task, error)
	ListTasks(ctx context.Context, userID uuid.UUID) ([]*model.Task, error)
	UpdateTaskStatus(ctx context.Context, userID, taskID uuid.UUID, status model.TaskStatus) (*model.Task, error)
}

type taskService struct {
	db           *gorm.DB
	taskRepo     repository.TaskRepository
	progressRepo repository.ProgressRepository
	profileRepo  repository.ProfileRepository
	cfg          *config.Config
	now          func() time.Time
}

// NewTaskService は TaskService の新しいインスタンスを生成します。
// now は現在時刻の取得関数で、テストから固定時刻を注入できる
func NewTaskService(
	db *gorm.DB,
	taskRepo repository.TaskRepository,
	progressRepo repository.ProgressRepository,
	profileRepo repository.ProfileRepository,
	cfg *config.Config,
	now func() time.Time,
) TaskService {
	if now == nil {
		now = time.Now
	}
	return &taskService{
		db:           db,
		taskRepo:     taskRepo,
		progressRepo: progressRepo,
		profileRepo:  profileRepo,
		cfg:          cfg,
		now:          now,
	}
}

// GenerateTasks はユーザーの学習状況に応じたタスク一覧を再生成します。
//
// 未登録ユーザーには既存タスクを全て削除した上でオンボーディング用の
// 固定3タスクを作成する。登録済みユーザーには学習系タスク (course/lesson/activity)
// のみを削除し、直近の未完了コースに基づくタスクを上限数まで作成する。
func (s *taskService) GenerateTasks(ctx context.Context, userID uuid.UUID, req *model.GenerateTasksRequest) ([]*model.Task, error) {
	logger := middleware.GetLogger(ctx)

	limit := s.cfg.App.TaskLimit
	if limit <= 0 {
		limit = config.DefaultTaskLimit
	}
	if req != nil && req.Count != nil {
		limit = *req.Count
	}

	var generated []*model.Task

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		profile, err := s.profileRepo.FindByUserID(ctx, tx, userID)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("PROFILE_NOT_FOUND", "プロフィールが見つかりません。", "", model.ErrNotFound)
			}
			return model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部エラー", "", err)
		}

		enrollments, err := s.progressRepo.CountEnrollments(ctx, tx, userID)
		if err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部エラー", "", err)
		}

		// --- 未登録ユーザー: オンボーディングタスクのみ ---
		if enrollments == 0 {
			if err := s.taskRepo.DeleteByUser(ctx, tx, userID); err != nil {
				return model.NewAppError("INTERNAL_SERVER_ERROR", "タスクの削除に失敗しました。", "", err)
			}
			generated, err = s.createOnboardingTasks(ctx, tx, userID, limit)
			if err != nil {
				return err
			}
			return nil
		}

		// --- 登録済みユーザー: 学習系タスクだけを作り直す ---
		if err := s.taskRepo.DeleteByUserAndTypes(ctx, tx, userID, regeneratedTaskTypes); err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "タスクの削除に失敗しました。", "", err)
		}

		generated, err = s.createLearningTasks(ctx, tx, userID, profile, limit)
		if err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Tasks generated", "user_id", userID.String(), "count", len(generated))
	return generated, nil
}

func (s *taskService) createOnboardingTasks(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*model.Task, error) {
	now := s.now()

	tasks := []*model.Task{
		{
			TaskID:      uuid.New(),
			UserID:      userID,
			Title:       "Tymelyneへようこそ！",
			Description: "アプリの使い方を確認して、学習の準備を始めましょう。",
			TaskType:    model.TaskTypeOnboarding,
			Priority:    model.TaskPriorityHigh,
			DueDate:     datePtr(now.AddDate(0, 0, 1)),
			Status:      model.TaskStatusPending,
			XPReward:    20,
		},
		{
			TaskID:      uuid.New(),
			UserID:      userID,
			Title:       "最初のコースを選ぼう",
			Description: "コース一覧から興味のあるコースを選んで受講登録しましょう。",
			TaskType:    model.TaskTypeCourse,
			Priority:    model.TaskPriorityHigh,
			DueDate:     datePtr(now.AddDate(0, 0, 2)),
			Status:      model.TaskStatusPending,
			XPReward:    30,
		},
		{
			TaskID:      uuid.New(),
			UserID:      userID,
			Title:       "プロフィールを設定しよう",
			Description: "表示名と自己紹介を設定して、プロフィールを充実させましょう。",
			TaskType:    model.TaskTypeProfile,
			Priority:    model.TaskPriorityMedium,
			DueDate:     datePtr(now.AddDate(0, 0, 3)),
			Status:      model.TaskStatusPending,
			XPReward:    20,
		},
	}

	// オンボーディングでも指定件数を超えて作成しない
	if len(tasks) > limit {
		tasks = tasks[:limit]
	}
	for _, t := range tasks {
		if err := s.taskRepo.Create(ctx, tx, t); err != nil {
			return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "タスクの作成に失敗しました。", "", err)
		}
	}
	return tasks, nil
}

func (s *taskService) createLearningTasks(ctx context.Context, tx *gorm.DB, userID uuid.UUID, profile *model.Profile, limit int) ([]*model.Task, error) {
	logger := middleware.GetLogger(ctx)
	now := s.now()
	var candidates []*model.Task

	cp, err := s.progressRepo.FindLatestInProgressCourse(ctx, tx, userID)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部エラー", "", err)
	}

	if cp != nil && cp.Course != nil {
		// 次に取り組むべきアクティビティをカリキュラム順に最大3件
		activities, err := s.progressRepo.FindIncompleteActivities(ctx, tx, userID, cp.CourseID, 3)
		if err != nil {
			return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部エラー", "", err)
		}

		for i, act := range activities {
			lessonTitle := ""
			if act.Lesson != nil {
				lessonTitle = act.Lesson.Title
			}
			actID := act.ActivityID
			candidates = append(candidates, &model.Task{
				TaskID:      uuid.New(),
				UserID:      userID,
				Title:       fmt.Sprintf("「%s」を完了しよう", act.Title),
				Description: fmt.Sprintf("%s: %s - %s に取り組みましょう。", cp.Course.Title, lessonTitle, act.Title),
				TaskType:    model.TaskTypeActivity,
				Priority:    model.TaskPriorityMedium,
				DueDate:     datePtr(now.AddDate(0, 0, i+1)),
				Status:      model.TaskStatusPending,
				XPReward:    act.XPReward,
				RelatedID:   &actID,
				RelatedType: "activity",
			})
		}

		// コース継続タスク (現在の進捗率を説明に含める)
		courseID := cp.CourseID
		candidates = append(candidates, &model.Task{
			TaskID:      uuid.New(),
			UserID:      userID,
			Title:       fmt.Sprintf("「%s」を続けよう", cp.Course.Title),
			Description: fmt.Sprintf("現在の進捗は%d%%です。今日も1歩進めましょう。", cp.ProgressPercentage),
			TaskType:    model.TaskTypeCourse,
			Priority:    model.TaskPriorityHigh,
			DueDate:     datePtr(now.AddDate(0, 0, 1)),
			Status:      model.TaskStatusPending,
			XPReward:    50,
			RelatedID:   &courseID,
			RelatedType: "course",
		})

		// 新しいコースを探すタスクは進行中のコースがあるユーザーにだけ出す
		candidates = append(candidates, &model.Task{
			TaskID:      uuid.New(),
			UserID:      userID,
			Title:       "新しいコースを探そう",
			Description: "カタログを覗いて、次に学びたいコースを見つけましょう。",
			TaskType:    model.TaskTypeCourse,
			Priority:    model.TaskPriorityLow,
			DueDate:     datePtr(now.AddDate(0, 0, 7)),
			Status:      model.TaskStatusPending,
			XPReward:    30,
		})
	} else {
		logger.Debug("No in-progress course found for learning tasks", "user_id", userID.String())
	}

	// 今日の学習目標タスク
	candidates = append(candidates, &model.Task{
		TaskID:      uuid.New(),
		UserID:      userID,
		Title:       "今日の学習目標を達成しよう",
		Description: "アクティビティを1つ完了して、今日の目標をクリアしましょう。",
		TaskType:    model.TaskTypeGoal,
		Priority:    model.TaskPriorityMedium,
		DueDate:     datePtr(now.AddDate(0, 0, 1)),
		Status:      model.TaskStatusPending,
		XPReward:    20,
	})

	// ストリーク維持タスク (期限は当日の終わり、報酬はストリークに比例・上限あり)
	if profile.DaysStreak > 0 {
		streakXP := 10 * profile.DaysStreak
		if streakXP > 100 {
			streakXP = 100
		}
		endOfDay := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, now.Location())
		candidates = append(candidates, &model.Task{
			TaskID:      uuid.New(),
			UserID:      userID,
			Title:       fmt.Sprintf("%d日連続の学習を守ろう", profile.DaysStreak),
			Description: "今日も学習して、連続記録を途切れさせないようにしましょう。",
			TaskType:    model.TaskTypeStreak,
			Priority:    model.TaskPriorityHigh,
			DueDate:     &endOfDay,
			Status:      model.TaskStatusPending,
			XPReward:    streakXP,
		})
	}

	// 上限数までを作成する
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	for _, t := range candidates {
		if err := s.taskRepo.Create(ctx, tx, t); err != nil {
			return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "タスクの作成に失敗しました。", "", err)
		}
	}
	return candidates, nil
}

func (s *taskService) ListTasks(ctx context.Context, userID uuid.UUID) ([]*model.Task, error) {
	tasks, err := s.taskRepo.FindByUser(ctx, s.db, userID)
	if err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部エラー", "", err)
	}
	return tasks, nil
}

// UpdateTaskStatus はタスクの状態を更新します。
// 初めて completed になった時だけ XPReward をプロフィールに加算する。
// 一度付与したXPは状態を戻しても取り消さない (CompletedAt が付与済みの印)。
func (s *taskService) UpdateTaskStatus(ctx context.Context, userID, taskID uuid.UUID, status model.TaskStatus) (*model.Task, error) {
	logger := middleware.GetLogger(ctx)
	var updated *model.Task

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		task, err := s.taskRepo.FindByID(ctx, tx, userID, taskID)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				logger.Warn("Task not found", "task_id", taskID.String(), "user_id", userID.String())
				return model.NewAppError("TASK_NOT_FOUND", "タスクが見つかりません。", "", model.ErrNotFound)
			}
			return model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部エラー", "", err)
		}

		awardXP := status == model.TaskStatusCompleted && task.CompletedAt == nil
		if awardXP {
			now := s.now()
			task.CompletedAt = &now
		}
		task.Status = status

		if err := s.taskRepo.Update(ctx, tx, task); err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "タスクの更新に失敗しました。", "", err)
		}

		if awardXP && task.XPReward > 0 {
			profile, err := s.profileRepo.FindByUserID(ctx, tx, userID)
			if err != nil {
				return model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部エラー", "", err)
			}
			applyExperience(profile, task.XPReward)
			if err := s.profileRepo.Update(ctx, tx, profile); err != nil {
				return model.NewAppError("INTERNAL_SERVER_ERROR", "XPの更新に失敗しました。", "", err)
			}
			logger.Info("Task completed, XP awarded",
				"task_id", taskID.String(),
				"user_id", userID.String(),
				"xp", task.XPReward,
			)
		}

		updated = task
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func datePtr(t time.Time) *time.Time {
	return &t
}
