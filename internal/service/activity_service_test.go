// internal/service/activity_service_test.go
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

// --- テストヘルパー関数 (インメモリDBセットアップ) ---
func setupTestDBActivity() *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:activity_test?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic("failed to connect database for activity service testing: " + err.Error())
	}
	err = db.AutoMigrate(
		&model.User{}, &model.Profile{},
		&model.Course{}, &model.Module{}, &model.Lesson{}, &model.Activity{},
		&model.UserCourseProgress{}, &model.UserActivityProgress{},
		&model.Certificate{},
	)
	if err != nil {
		panic("failed to migrate database for activity service testing: " + err.Error())
	}
	return db
}

// コース (モジュール1つ・レッスン1つ) と指定数のアクティビティを登録する
func seedCourseWithActivities(t *testing.T, db *gorm.DB, activityCount, xpEach int) (uuid.UUID, []uuid.UUID) {
	t.Helper()

	course := model.Course{CourseID: uuid.New(), Title: "Go入門", Difficulty: model.DifficultyBeginner}
	require.NoError(t, db.Create(&course).Error)

	mod := model.Module{ModuleID: uuid.New(), CourseID: course.CourseID, Title: "基礎", Order: 1}
	require.NoError(t, db.Create(&mod).Error)

	lesson := model.Lesson{LessonID: uuid.New(), ModuleID: mod.ModuleID, Title: "最初のレッスン", Order: 1}
	require.NoError(t, db.Create(&lesson).Error)

	activityIDs := make([]uuid.UUID, 0, activityCount)
	for i := 0; i < activityCount; i++ {
		act := model.Activity{
			ActivityID:   uuid.New(),
			LessonID:     lesson.LessonID,
			Title:        "アクティビティ",
			ActivityType: model.ActivityTypeReading,
			Order:        i + 1,
			XPReward:     xpEach,
		}
		require.NoError(t, db.Create(&act).Error)
		activityIDs = append(activityIDs, act.ActivityID)
	}
	return course.CourseID, activityIDs
}

func seedUserWithProfile(t *testing.T, db *gorm.DB) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	user := model.User{UserID: userID, Username: "taro-" + userID.String()[:8], Email: userID.String() + "@example.com", PasswordHash: "x", IsActive: true}
	require.NoError(t, db.Create(&user).Error)
	profile := model.Profile{ProfileID: uuid.New(), UserID: userID, DisplayName: "taro", Level: 1, XP: 0}
	require.NoError(t, db.Create(&profile).Error)
	return userID
}

func newTestActivityService(db *gorm.DB, now func() time.Time) ActivityService {
	return NewActivityService(
		db,
		repository.NewGormCourseRepository(),
		repository.NewGormProgressRepository(),
		repository.NewGormProfileRepository(),
		repository.NewGormUserRepository(),
		repository.NewGormCertificateRepository(),
		&LogMailer{},
		now,
	)
}

// --- Test CompleteActivity ---
// 4アクティビティのコースを最後まで完了するシナリオ。
// 冪等性・XP付与・進捗率・修了証の発行をまとめて検証する
func Test_activityService_CompleteActivity(t *testing.T) {
	ctx := testContext()
	db := setupTestDBActivity()

	fixedNow := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	activityService := newTestActivityService(db, func() time.Time { return fixedNow })

	userID := seedUserWithProfile(t, db)
	courseID, activityIDs := seedCourseWithActivities(t, db, 4, 25)
	req := &model.CompleteActivityRequest{TimeSpent: 120}

	t.Run("正常系: 初回完了でXP付与と進捗更新", func(t *testing.T) {
		resp, err := activityService.CompleteActivity(ctx, userID, activityIDs[0], req)

		require.NoError(t, err)
		require.NotNil(t, resp)
		assert.False(t, resp.AlreadyCompleted)
		assert.Equal(t, 25, resp.XPEarned)
		assert.Equal(t, 1, resp.CurrentLevel)
		assert.Equal(t, 25, resp.CurrentXP)
		assert.Equal(t, 25, resp.CourseProgress) // 1/4

		var profile model.Profile
		require.NoError(t, db.Where("user_id = ?", userID).First(&profile).Error)
		assert.Equal(t, 25, profile.XP)
		assert.Equal(t, 1, profile.DaysStreak)
		require.NotNil(t, profile.LastActiveDate)
	})

	t.Run("正常系: 2回目の完了は提出内容だけ上書きしXPは増えない", func(t *testing.T) {
		score := 90.0
		retryReq := &model.CompleteActivityRequest{TimeSpent: 200, Score: &score}
		resp, err := activityService.CompleteActivity(ctx, userID, activityIDs[0], retryReq)

		require.NoError(t, err)
		require.NotNil(t, resp)
		assert.True(t, resp.AlreadyCompleted)
		assert.Equal(t, 0, resp.XPEarned)

		// XPが二重に付与されていないこと
		var profile model.Profile
		require.NoError(t, db.Where("user_id = ?", userID).First(&profile).Error)
		assert.Equal(t, 25, profile.XP)

		// 提出内容は最新のリクエストで上書きされていること
		var stored model.UserActivityProgress
		require.NoError(t, db.Where("user_id = ? AND activity_id = ?", userID, activityIDs[0]).First(&stored).Error)
		assert.True(t, stored.IsCompleted)
		assert.Equal(t, 200, stored.TimeSpent)
		require.NotNil(t, stored.Score)
		assert.Equal(t, 90.0, *stored.Score)

		var count int64
		require.NoError(t, db.Model(&model.UserActivityProgress{}).Where("user_id = ?", userID).Count(&count).Error)
		assert.EqualValues(t, 1, count)
	})

	t.Run("正常系: 全アクティビティ完了でコース修了と修了証発行", func(t *testing.T) {
		for _, actID := range activityIDs[1:] {
			resp, err := activityService.CompleteActivity(ctx, userID, actID, req)
			require.NoError(t, err)
			assert.False(t, resp.AlreadyCompleted)
		}

		var cp model.UserCourseProgress
		require.NoError(t, db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&cp).Error)
		assert.Equal(t, 100, cp.ProgressPercentage)
		assert.True(t, cp.IsCompleted)

		// 修了証はちょうど1枚
		var certCount int64
		require.NoError(t, db.Model(&model.Certificate{}).Where("user_id = ? AND course_id = ?", userID, courseID).Count(&certCount).Error)
		assert.EqualValues(t, 1, certCount)

		// 25 XP × 4 = 100 でレベル2に到達し、修了コース数が加算される
		var profile model.Profile
		require.NoError(t, db.Where("user_id = ?", userID).First(&profile).Error)
		assert.Equal(t, 2, profile.Level)
		assert.Equal(t, 0, profile.XP)
		assert.Equal(t, 1, profile.TotalCoursesCompleted)
	})

	t.Run("異常系: 存在しないアクティビティ", func(t *testing.T) {
		resp, err := activityService.CompleteActivity(ctx, userID, uuid.New(), req)

		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrNotFound)
		assert.Nil(t, resp)
	})
}

// --- Test updateStreak ---
func Test_activityService_updateStreak(t *testing.T) {
	fixedNow := time.Date(2025, 6, 2, 15, 30, 0, 0, time.UTC)
	s := &activityService{now: func() time.Time { return fixedNow }}

	day := func(t time.Time) *time.Time { return &t }

	tests := []struct {
		name           string
		lastActiveDate *time.Time
		daysStreak     int
		wantStreak     int
	}{
		{
			name:           "正常系: 初めての学習でストリーク開始",
			lastActiveDate: nil,
			daysStreak:     0,
			wantStreak:     1,
		},
		{
			name:           "正常系: 同日2回目は変化なし",
			lastActiveDate: day(time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)),
			daysStreak:     3,
			wantStreak:     3,
		},
		{
			name:           "正常系: 前日から連続で+1",
			lastActiveDate: day(time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC)),
			daysStreak:     3,
			wantStreak:     4,
		},
		{
			name:           "正常系: 1日空いたら1にリセット",
			lastActiveDate: day(time.Date(2025, 5, 30, 12, 0, 0, 0, time.UTC)),
			daysStreak:     10,
			wantStreak:     1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := &model.Profile{DaysStreak: tt.daysStreak, LastActiveDate: tt.lastActiveDate}

			s.updateStreak(profile)

			assert.Equal(t, tt.wantStreak, profile.DaysStreak)
			require.NotNil(t, profile.LastActiveDate)
			assert.Equal(t, time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), startOfDay(*profile.LastActiveDate))
		})
	}

	// 日付境界は暦日で判定する。UTC基準の24時間丸めだと
	// 現地深夜0時台の学習が「同日」と誤判定されてしまう
	t.Run("正常系: 現地時間の深夜0時台でも前日からの連続と判定する", func(t *testing.T) {
		jst := time.FixedZone("JST", 9*60*60)
		s := &activityService{now: func() time.Time { return time.Date(2025, 6, 3, 0, 30, 0, 0, jst) }}
		last := time.Date(2025, 6, 2, 23, 0, 0, 0, jst)
		profile := &model.Profile{DaysStreak: 5, LastActiveDate: &last}

		s.updateStreak(profile)

		assert.Equal(t, 6, profile.DaysStreak)
		require.NotNil(t, profile.LastActiveDate)
		assert.Equal(t, time.Date(2025, 6, 3, 0, 0, 0, 0, jst).Unix(), profile.LastActiveDate.Unix())
	})
}

// --- Test recomputeCourseProgress ---
func Test_activityService_recomputeCourseProgress(t *testing.T) {
	ctx := testContext()
	db := setupTestDBActivity()

	fixedNow := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	s := &activityService{
		db:           db,
		courseRepo:   repository.NewGormCourseRepository(),
		progressRepo: repository.NewGormProgressRepository(),
		certRepo:     repository.NewGormCertificateRepository(),
		now:          func() time.Time { return fixedNow },
	}

	t.Run("正常系: アクティビティが0件のコースは対象外", func(t *testing.T) {
		userID := seedUserWithProfile(t, db)
		course := model.Course{CourseID: uuid.New(), Title: "空のコース"}
		require.NoError(t, db.Create(&course).Error)
		profile := &model.Profile{UserID: userID, Level: 1}

		pct, completedNow, err := s.recomputeCourseProgress(ctx, db, userID, course.CourseID, profile)

		require.NoError(t, err)
		assert.Equal(t, 0, pct)
		assert.False(t, completedNow)

		// 進捗レコードは作成されない
		var count int64
		require.NoError(t, db.Model(&model.UserCourseProgress{}).Where("user_id = ?", userID).Count(&count).Error)
		assert.EqualValues(t, 0, count)
	})

	t.Run("正常系: 完了操作を経由せずに進捗を再計算できる", func(t *testing.T) {
		userID := seedUserWithProfile(t, db)
		courseID, activityIDs := seedCourseWithActivities(t, db, 2, 10)
		// 完了実績だけがあり、コース進捗レコードが未作成の状態
		ap := model.UserActivityProgress{ProgressID: uuid.New(), UserID: userID, ActivityID: activityIDs[0], IsCompleted: true}
		require.NoError(t, db.Create(&ap).Error)

		svc := newTestActivityService(db, func() time.Time { return fixedNow })
		pct, err := svc.RecomputeCourseProgress(ctx, userID, courseID)

		require.NoError(t, err)
		assert.Equal(t, 50, pct) // 1/2

		var stored model.UserCourseProgress
		require.NoError(t, db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&stored).Error)
		assert.Equal(t, 50, stored.ProgressPercentage)
		assert.False(t, stored.IsCompleted)
	})

	t.Run("正常系: 完了済みコースの進捗は100%のまま変化しない", func(t *testing.T) {
		userID := seedUserWithProfile(t, db)
		courseID, activityIDs := seedCourseWithActivities(t, db, 2, 10)
		cp := model.UserCourseProgress{
			ProgressID: uuid.New(), UserID: userID, CourseID: courseID,
			ProgressPercentage: 100, IsCompleted: true, LastAccessed: fixedNow.AddDate(0, 0, -1),
		}
		require.NoError(t, db.Create(&cp).Error)
		// 片方だけ完了している状態でも進捗は巻き戻らない
		ap := model.UserActivityProgress{ProgressID: uuid.New(), UserID: userID, ActivityID: activityIDs[0], IsCompleted: true}
		require.NoError(t, db.Create(&ap).Error)
		profile := &model.Profile{UserID: userID, Level: 1, TotalCoursesCompleted: 1}

		pct, completedNow, err := s.recomputeCourseProgress(ctx, db, userID, courseID, profile)

		require.NoError(t, err)
		assert.Equal(t, 100, pct)
		assert.False(t, completedNow)
		assert.Equal(t, 1, profile.TotalCoursesCompleted) // 二重加算されない

		var stored model.UserCourseProgress
		require.NoError(t, db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&stored).Error)
		assert.Equal(t, 100, stored.ProgressPercentage)
		assert.True(t, stored.IsCompleted)
	})
}
