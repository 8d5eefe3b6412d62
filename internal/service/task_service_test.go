// internal/service/task_service_test.go
package service

import (
	"testing"
	"time"

	"tymelyne_backend/internal/config"
	"tymelyne_backend/internal/model"
	"tymelyne_backend/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// --- テストヘルパー関数 (インメモリDBセットアップ) ---
func setupTestDBTask() *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:task_test?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic("failed to connect database for task service testing: " + err.Error())
	}
	err = db.AutoMigrate(
		&model.User{}, &model.Profile{},
		&model.Course{}, &model.Module{}, &model.Lesson{}, &model.Activity{},
		&model.UserCourseProgress{}, &model.UserActivityProgress{},
		&model.Task{},
	)
	if err != nil {
		panic("failed to migrate database for task service testing: " + err.Error())
	}
	return db
}

func newTestTaskService(db *gorm.DB, now func() time.Time) TaskService {
	testConfig := &config.Config{
		App: config.AppConfig{TaskLimit: 5},
	}
	return NewTaskService(
		db,
		repository.NewGormTaskRepository(),
		repository.NewGormProgressRepository(),
		repository.NewGormProfileRepository(),
		testConfig,
		now,
	)
}

// --- Test GenerateTasks (オンボーディング) ---
func Test_taskService_GenerateTasks_Onboarding(t *testing.T) {
	ctx := testContext()
	db := setupTestDBTask()

	fixedNow := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	taskService := newTestTaskService(db, func() time.Time { return fixedNow })

	userID := seedUserWithProfile(t, db)

	// 再生成時に消えるべき古いタスク
	stale := model.Task{
		TaskID: uuid.New(), UserID: userID, Title: "古いタスク",
		TaskType: model.TaskTypeGoal, Priority: model.TaskPriorityLow,
		Status: model.TaskStatusPending, XPReward: 10,
	}
	require.NoError(t, db.Create(&stale).Error)

	tasks, err := taskService.GenerateTasks(ctx, userID, nil)

	require.NoError(t, err)
	require.Len(t, tasks, 3)

	// 未登録ユーザーには固定のオンボーディングタスクだけが残る
	gotTypes := make([]model.TaskType, len(tasks))
	for i, task := range tasks {
		gotTypes[i] = task.TaskType
		assert.Equal(t, model.TaskStatusPending, task.Status)
		require.NotNil(t, task.DueDate)
	}
	assert.Equal(t, []model.TaskType{model.TaskTypeOnboarding, model.TaskTypeCourse, model.TaskTypeProfile}, gotTypes)

	var count int64
	require.NoError(t, db.Model(&model.Task{}).Where("user_id = ?", userID).Count(&count).Error)
	assert.EqualValues(t, 3, count)

	// 古いタスクは種別を問わず削除されている
	var staleCount int64
	require.NoError(t, db.Model(&model.Task{}).Where("task_id = ?", stale.TaskID).Count(&staleCount).Error)
	assert.EqualValues(t, 0, staleCount)
}

// --- Test GenerateTasks (オンボーディング・件数指定) ---
func Test_taskService_GenerateTasks_OnboardingCountLimit(t *testing.T) {
	ctx := testContext()
	db := setupTestDBTask()

	fixedNow := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	taskService := newTestTaskService(db, func() time.Time { return fixedNow })

	userID := seedUserWithProfile(t, db)

	// オンボーディングの固定タスクも指定件数までしか作られない
	count := 2
	tasks, err := taskService.GenerateTasks(ctx, userID, &model.GenerateTasksRequest{Count: &count})

	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, model.TaskTypeOnboarding, tasks[0].TaskType)
	assert.Equal(t, model.TaskTypeCourse, tasks[1].TaskType)

	var stored int64
	require.NoError(t, db.Model(&model.Task{}).Where("user_id = ?", userID).Count(&stored).Error)
	assert.EqualValues(t, 2, stored)
}

// --- Test GenerateTasks (学習中ユーザー) ---
func Test_taskService_GenerateTasks_Learning(t *testing.T) {
	ctx := testContext()
	db := setupTestDBTask()

	fixedNow := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	taskService := newTestTaskService(db, func() time.Time { return fixedNow })

	userID := seedUserWithProfile(t, db)
	require.NoError(t, db.Model(&model.Profile{}).Where("user_id = ?", userID).Update("days_streak", 6).Error)

	// 2アクティビティのコースに登録し、1つ完了済みの状態を作る
	courseID, activityIDs := seedCourseWithActivities(t, db, 2, 40)
	cp := model.UserCourseProgress{
		ProgressID: uuid.New(), UserID: userID, CourseID: courseID,
		ProgressPercentage: 50, LastAccessed: fixedNow.AddDate(0, 0, -1),
	}
	require.NoError(t, db.Create(&cp).Error)
	ap := model.UserActivityProgress{ProgressID: uuid.New(), UserID: userID, ActivityID: activityIDs[0], IsCompleted: true}
	require.NoError(t, db.Create(&ap).Error)

	// 学習系の古いタスクは消え、それ以外 (完了済みのgoal等) は残る
	staleActivity := model.Task{
		TaskID: uuid.New(), UserID: userID, Title: "古い学習タスク",
		TaskType: model.TaskTypeActivity, Status: model.TaskStatusPending,
	}
	completedAt := fixedNow.AddDate(0, 0, -1)
	keptGoal := model.Task{
		TaskID: uuid.New(), UserID: userID, Title: "昨日の目標",
		TaskType: model.TaskTypeGoal, Status: model.TaskStatusCompleted, CompletedAt: &completedAt,
	}
	require.NoError(t, db.Create(&staleActivity).Error)
	require.NoError(t, db.Create(&keptGoal).Error)

	tasks, err := taskService.GenerateTasks(ctx, userID, nil)

	require.NoError(t, err)
	require.Len(t, tasks, 5)

	// 未完了アクティビティ + コース継続 + 新コース探索 + 今日の目標 + ストリーク維持
	byType := make(map[model.TaskType][]*model.Task)
	for _, task := range tasks {
		byType[task.TaskType] = append(byType[task.TaskType], task)
	}

	require.Len(t, byType[model.TaskTypeActivity], 1)
	actTask := byType[model.TaskTypeActivity][0]
	assert.Equal(t, 40, actTask.XPReward)
	require.NotNil(t, actTask.RelatedID)
	assert.Equal(t, activityIDs[1], *actTask.RelatedID)
	assert.Equal(t, "activity", actTask.RelatedType)

	require.Len(t, byType[model.TaskTypeCourse], 2) // 継続 + 探索
	require.Len(t, byType[model.TaskTypeGoal], 1)

	require.Len(t, byType[model.TaskTypeStreak], 1)
	streakTask := byType[model.TaskTypeStreak][0]
	assert.Equal(t, 60, streakTask.XPReward) // 10 × 6日
	assert.Equal(t, model.TaskPriorityHigh, streakTask.Priority)
	require.NotNil(t, streakTask.DueDate)
	assert.Equal(t, 23, streakTask.DueDate.Hour()) // 期限は当日の終わり
	assert.Equal(t, 59, streakTask.DueDate.Minute())

	// 古い学習タスクは削除、完了済みの目標タスクは保持される
	var staleCount int64
	require.NoError(t, db.Model(&model.Task{}).Where("task_id = ?", staleActivity.TaskID).Count(&staleCount).Error)
	assert.EqualValues(t, 0, staleCount)
	var keptCount int64
	require.NoError(t, db.Model(&model.Task{}).Where("task_id = ?", keptGoal.TaskID).Count(&keptCount).Error)
	assert.EqualValues(t, 1, keptCount)
}

// --- Test GenerateTasks (件数指定) ---
func Test_taskService_GenerateTasks_CountLimit(t *testing.T) {
	ctx := testContext()
	db := setupTestDBTask()

	fixedNow := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	taskService := newTestTaskService(db, func() time.Time { return fixedNow })

	userID := seedUserWithProfile(t, db)
	courseID, _ := seedCourseWithActivities(t, db, 3, 10)
	cp := model.UserCourseProgress{
		ProgressID: uuid.New(), UserID: userID, CourseID: courseID,
		LastAccessed: fixedNow,
	}
	require.NoError(t, db.Create(&cp).Error)

	count := 2
	tasks, err := taskService.GenerateTasks(ctx, userID, &model.GenerateTasksRequest{Count: &count})

	require.NoError(t, err)
	assert.Len(t, tasks, 2)

	var stored int64
	require.NoError(t, db.Model(&model.Task{}).Where("user_id = ?", userID).Count(&stored).Error)
	assert.EqualValues(t, 2, stored)
}

// --- Test UpdateTaskStatus ---
func Test_taskService_UpdateTaskStatus(t *testing.T) {
	ctx := testContext()
	db := setupTestDBTask()

	fixedNow := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	taskService := newTestTaskService(db, func() time.Time { return fixedNow })

	userID := seedUserWithProfile(t, db)
	task := model.Task{
		TaskID: uuid.New(), UserID: userID, Title: "今日の学習目標を達成しよう",
		TaskType: model.TaskTypeGoal, Status: model.TaskStatusPending, XPReward: 20,
	}
	require.NoError(t, db.Create(&task).Error)

	t.Run("正常系: 完了でXP付与", func(t *testing.T) {
		updated, err := taskService.UpdateTaskStatus(ctx, userID, task.TaskID, model.TaskStatusCompleted)

		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.Equal(t, model.TaskStatusCompleted, updated.Status)
		require.NotNil(t, updated.CompletedAt)
		assert.True(t, updated.CompletedAt.Equal(fixedNow))

		var profile model.Profile
		require.NoError(t, db.Where("user_id = ?", userID).First(&profile).Error)
		assert.Equal(t, 20, profile.XP)
	})

	t.Run("正常系: 再完了してもXPは二重に付与されない", func(t *testing.T) {
		// 一旦 pending に戻してから再度 completed にする
		_, err := taskService.UpdateTaskStatus(ctx, userID, task.TaskID, model.TaskStatusPending)
		require.NoError(t, err)

		updated, err := taskService.UpdateTaskStatus(ctx, userID, task.TaskID, model.TaskStatusCompleted)

		require.NoError(t, err)
		assert.Equal(t, model.TaskStatusCompleted, updated.Status)

		var profile model.Profile
		require.NoError(t, db.Where("user_id = ?", userID).First(&profile).Error)
		assert.Equal(t, 20, profile.XP) // 初回の20のまま
	})

	t.Run("正常系: skippedではXPを付与しない", func(t *testing.T) {
		skipTask := model.Task{
			TaskID: uuid.New(), UserID: userID, Title: "後回しのタスク",
			TaskType: model.TaskTypeOther, Status: model.TaskStatusPending, XPReward: 30,
		}
		require.NoError(t, db.Create(&skipTask).Error)

		updated, err := taskService.UpdateTaskStatus(ctx, userID, skipTask.TaskID, model.TaskStatusSkipped)

		require.NoError(t, err)
		assert.Equal(t, model.TaskStatusSkipped, updated.Status)
		assert.Nil(t, updated.CompletedAt)

		var profile model.Profile
		require.NoError(t, db.Where("user_id = ?", userID).First(&profile).Error)
		assert.Equal(t, 20, profile.XP)
	})

	t.Run("異常系: 他ユーザーのタスクや存在しないタスク", func(t *testing.T) {
		updated, err := taskService.UpdateTaskStatus(ctx, userID, uuid.New(), model.TaskStatusCompleted)

		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrNotFound)
		assert.Nil(t, updated)
	})
}
