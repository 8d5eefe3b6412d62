// internal/service/profile_service_test.go
package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"tymelyne_backend/internal/middleware"
	"tymelyne_backend/internal/model"
	"tymelyne_backend/internal/repository/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// --- テストヘルパー関数 (インメモリDBセットアップ) ---
func setupTestDBProfile() *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:profile_test?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent), // テスト中はログを抑制
	})
	if err != nil {
		panic("failed to connect database for profile service testing: " + err.Error())
	}
	if err := db.AutoMigrate(&model.Profile{}); err != nil {
		panic("failed to migrate database for profile service testing: " + err.Error())
	}
	return db
}

func testContext() context.Context {
	return middleware.WithLogger(context.Background(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// --- Test applyExperience ---
func Test_applyExperience(t *testing.T) {
	tests := []struct {
		name      string
		level     int
		xp        int
		amount    int
		wantLevel int
		wantXP    int
	}{
		{
			name:  "正常系: 閾値未満の加算ではレベルが変わらない",
			level: 1, xp: 0, amount: 90,
			wantLevel: 1, wantXP: 90,
		},
		{
			name:  "正常系: 閾値超過分は繰り越してレベルアップ",
			level: 1, xp: 90, amount: 15,
			wantLevel: 2, wantXP: 5,
		},
		{
			name:  "正常系: ちょうど閾値に達した場合もレベルアップ",
			level: 1, xp: 0, amount: 100,
			wantLevel: 2, wantXP: 0,
		},
		{
			name:  "正常系: 1回の加算で複数レベル上がる",
			level: 1, xp: 0, amount: 350, // 100 (Lv1) + 200 (Lv2) を消費して50余る
			wantLevel: 3, wantXP: 50,
		},
		{
			name:  "正常系: 0の加算は何もしない",
			level: 2, xp: 50, amount: 0,
			wantLevel: 2, wantXP: 50,
		},
		{
			name:  "正常系: 負の値は無視される",
			level: 2, xp: 50, amount: -10,
			wantLevel: 2, wantXP: 50,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := &model.Profile{Level: tt.level, XP: tt.xp}

			applyExperience(profile, tt.amount)

			assert.Equal(t, tt.wantLevel, profile.Level)
			assert.Equal(t, tt.wantXP, profile.XP)
			// 適用後は常に XP < 次のレベルの閾値 に収まっていること
			assert.Less(t, profile.XP, model.XPForLevel(profile.Level))
		})
	}
}

// --- Test AddExperience ---
func Test_profileService_AddExperience(t *testing.T) {
	ctx := testContext()
	db := setupTestDBProfile() // トランザクションのためにDB接続を使う
	mockProfileRepo := new(mocks.ProfileRepository)
	profileService := NewProfileService(db, mockProfileRepo, nil, nil, nil, nil)

	userID := uuid.New()
	dbErr := errors.New("db error on update profile")

	tests := []struct {
		name      string
		amount    int
		setupMock func(m *mocks.ProfileRepository)
		wantErr   error
		wantLevel int
		wantXP    int
	}{
		{
			name:   "正常系: レベルアップなしでXP加算",
			amount: 40,
			setupMock: func(m *mocks.ProfileRepository) {
				profile := &model.Profile{ProfileID: uuid.New(), UserID: userID, Level: 1, XP: 0}
				m.On("FindByUserID", ctx, mock.AnythingOfType("*gorm.DB"), userID).
					Return(profile, nil).Once()
				m.On("Update", ctx, mock.AnythingOfType("*gorm.DB"), mock.MatchedBy(func(p *model.Profile) bool {
					assert.Equal(t, 1, p.Level)
					assert.Equal(t, 40, p.XP)
					return true
				})).Return(nil).Once()
			},
			wantLevel: 1,
			wantXP:    40,
		},
		{
			name:   "正常系: 繰り越し付きでレベルアップ",
			amount: 15,
			setupMock: func(m *mocks.ProfileRepository) {
				profile := &model.Profile{ProfileID: uuid.New(), UserID: userID, Level: 1, XP: 90}
				m.On("FindByUserID", ctx, mock.AnythingOfType("*gorm.DB"), userID).
					Return(profile, nil).Once()
				m.On("Update", ctx, mock.AnythingOfType("*gorm.DB"), mock.MatchedBy(func(p *model.Profile) bool {
					assert.Equal(t, 2, p.Level)
					assert.Equal(t, 5, p.XP)
					return true
				})).Return(nil).Once()
			},
			wantLevel: 2,
			wantXP:    5,
		},
		{
			name:   "異常系: プロフィールが見つからない",
			amount: 10,
			setupMock: func(m *mocks.ProfileRepository) {
				m.On("FindByUserID", ctx, mock.AnythingOfType("*gorm.DB"), userID).
					Return(nil, model.ErrNotFound).Once()
			},
			wantErr: model.ErrNotFound,
		},
		{
			name:   "異常系: UpdateでDBエラー",
			amount: 10,
			setupMock: func(m *mocks.ProfileRepository) {
				profile := &model.Profile{ProfileID: uuid.New(), UserID: userID, Level: 1, XP: 0}
				m.On("FindByUserID", ctx, mock.AnythingOfType("*gorm.DB"), userID).
					Return(profile, nil).Once()
				m.On("Update", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("*model.Profile")).
					Return(dbErr).Once()
			},
			wantErr: dbErr,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockProfileRepo.Mock = mock.Mock{} // モックをリセット
			if tt.setupMock != nil {
				tt.setupMock(mockProfileRepo)
			}

			resp, err := profileService.AddExperience(ctx, userID, tt.amount)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, resp)
			} else {
				require.NoError(t, err)
				require.NotNil(t, resp)
				assert.Equal(t, tt.wantLevel, resp.Level)
				assert.Equal(t, tt.wantXP, resp.XP)
			}
			mockProfileRepo.AssertExpectations(t)
		})
	}
}

// --- Test GetDashboard ---
func Test_profileService_GetDashboard(t *testing.T) {
	ctx := testContext()
	db := setupTestDBProfile()
	mockProfileRepo := new(mocks.ProfileRepository)
	mockUserRepo := new(mocks.UserRepository)
	mockProgressRepo := new(mocks.ProgressRepository)
	mockAchievementRepo := new(mocks.AchievementRepository)
	mockCertRepo := new(mocks.CertificateRepository)
	profileService := NewProfileService(db, mockProfileRepo, mockUserRepo, mockProgressRepo, mockAchievementRepo, mockCertRepo)

	userID := uuid.New()
	now := time.Now()
	earnedAt := now.Add(-time.Hour)

	mockUserRepo.On("FindByID", ctx, db, userID).
		Return(&model.User{UserID: userID, Username: "taro"}, nil).Once()
	mockProfileRepo.On("FindByUserID", ctx, db, userID).
		Return(&model.Profile{UserID: userID, Level: 3, XP: 120, DaysStreak: 4, TotalCoursesCompleted: 2, TotalLessonsCompleted: 9}, nil).Once()
	mockProgressRepo.On("FindCourseProgressByUser", ctx, db, userID).
		Return([]*model.UserCourseProgress{
			{CourseID: uuid.New(), ProgressPercentage: 100, IsCompleted: true},
			{CourseID: uuid.New(), ProgressPercentage: 40, IsCompleted: false},
		}, nil).Once()
	mockProgressRepo.On("FindActivityProgressByUser", ctx, db, userID).
		Return([]*model.UserActivityProgress{
			{ActivityID: uuid.New(), UpdatedAt: now.AddDate(0, 0, -1)},  // 直近7日以内
			{ActivityID: uuid.New(), UpdatedAt: now.AddDate(0, 0, -30)}, // 対象外
		}, nil).Once()
	mockAchievementRepo.On("FindByUser", ctx, db, userID).
		Return([]*model.UserAchievement{
			{AchievementID: uuid.New(), EarnedAt: &earnedAt},
			{AchievementID: uuid.New(), EarnedAt: nil}, // 進行中は数えない
		}, nil).Once()
	mockCertRepo.On("FindByUser", ctx, db, userID).
		Return([]*model.Certificate{{CertificateID: uuid.New()}}, nil).Once()
	mockProgressRepo.On("SumTimeSpent", ctx, db, userID).
		Return(int64(3600), nil).Once()

	resp, err := profileService.GetDashboard(ctx, userID)

	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, "taro", resp.Username)
	assert.Equal(t, 3, resp.Level)
	assert.Equal(t, 120, resp.XP)
	assert.Equal(t, model.XPForLevel(3), resp.NextLevelXP)
	assert.Equal(t, 4, resp.DaysStreak)
	assert.Equal(t, 2, resp.CoursesCompleted)
	assert.Equal(t, 1, resp.CoursesInProgress)
	assert.Equal(t, 1, resp.RecentActivities)
	assert.Equal(t, 1, resp.Achievements)
	assert.Equal(t, 1, resp.Certificates)
	assert.Equal(t, 3600, resp.TotalLearningTime)

	mockUserRepo.AssertExpectations(t)
	mockProfileRepo.AssertExpectations(t)
	mockProgressRepo.AssertExpectations(t)
	mockAchievementRepo.AssertExpectations(t)
	mockCertRepo.AssertExpectations(t)
}
