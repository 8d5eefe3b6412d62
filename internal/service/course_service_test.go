// internal/service/course_service_test.go
package service

import (
	"testing"
	"time"

	"tymelyne_backend/internal/model"
	"tymelyne_backend/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDBCourse() *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:course_test?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic("failed to connect database for course service testing: " + err.Error())
	}
	err = db.AutoMigrate(
		&model.Course{}, &model.Module{}, &model.Lesson{}, &model.Activity{},
		&model.UserCourseProgress{}, &model.UserActivityProgress{},
		&model.Certificate{},
	)
	if err != nil {
		panic("failed to migrate database for course service testing: " + err.Error())
	}
	return db
}

func newTestCourseService(db *gorm.DB, now func() time.Time) CourseService {
	return NewCourseService(
		db,
		repository.NewGormCourseRepository(),
		repository.NewGormProgressRepository(),
		repository.NewGormCertificateRepository(),
		now,
	)
}

// --- Test Enroll ---
func Test_courseService_Enroll(t *testing.T) {
	ctx := testContext()
	db := setupTestDBCourse()

	fixedNow := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	courseService := newTestCourseService(db, func() time.Time { return fixedNow })

	userID := uuid.New()
	course := model.Course{CourseID: uuid.New(), Title: "Go入門"}
	require.NoError(t, db.Create(&course).Error)

	t.Run("正常系: 初回の受講登録", func(t *testing.T) {
		resp, err := courseService.Enroll(ctx, userID, course.CourseID)

		require.NoError(t, err)
		require.NotNil(t, resp)
		assert.False(t, resp.AlreadyEnrolled)

		var cp model.UserCourseProgress
		require.NoError(t, db.Where("user_id = ? AND course_id = ?", userID, course.CourseID).First(&cp).Error)
		assert.Equal(t, 0, cp.ProgressPercentage)
		assert.False(t, cp.IsCompleted)
	})

	t.Run("正常系: 2回目の登録は冪等", func(t *testing.T) {
		resp, err := courseService.Enroll(ctx, userID, course.CourseID)

		require.NoError(t, err)
		require.NotNil(t, resp)
		assert.True(t, resp.AlreadyEnrolled)

		// 進捗レコードは増えない
		var count int64
		require.NoError(t, db.Model(&model.UserCourseProgress{}).Where("user_id = ?", userID).Count(&count).Error)
		assert.EqualValues(t, 1, count)
	})

	t.Run("異常系: 存在しないコース", func(t *testing.T) {
		resp, err := courseService.Enroll(ctx, userID, uuid.New())

		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrNotFound)
		assert.Nil(t, resp)
	})
}

// --- Test CreateCourse / UpdateCourse ---
func Test_courseService_CreateAndUpdateCourse(t *testing.T) {
	ctx := testContext()
	db := setupTestDBCourse()
	courseService := newTestCourseService(db, nil)

	created, err := courseService.CreateCourse(ctx, &model.CreateCourseRequest{
		Title:    "Webアプリ開発",
		Category: "programming",
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, model.DifficultyBeginner, created.Difficulty) // 未指定ならbeginner

	newTitle := "Webアプリ開発 実践編"
	newDifficulty := model.DifficultyIntermediate
	updated, err := courseService.UpdateCourse(ctx, created.CourseID, &model.UpdateCourseRequest{
		Title:      &newTitle,
		Difficulty: &newDifficulty,
	})
	require.NoError(t, err)
	assert.Equal(t, newTitle, updated.Title)
	assert.Equal(t, newDifficulty, updated.Difficulty)
	assert.Equal(t, "programming", updated.Category) // nilのフィールドは変更されない

	_, err = courseService.UpdateCourse(ctx, uuid.New(), &model.UpdateCourseRequest{Title: &newTitle})
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrNotFound)
}
