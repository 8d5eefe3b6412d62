// internal/service/achievement_service_test.go
package service

import (
	"testing"
	"time"

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

func setupTestDBAchievement() *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:achievement_test?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic("failed to connect database for achievement service testing: " + err.Error())
	}
	if err := db.AutoMigrate(&model.Achievement{}, &model.UserAchievement{}, &model.Profile{}); err != nil {
		panic("failed to migrate database for achievement service testing: " + err.Error())
	}
	return db
}

// --- Test Grant ---
func Test_achievementService_Grant(t *testing.T) {
	ctx := testContext()
	db := setupTestDBAchievement() // トランザクションのためにDB接続を使う
	mockAchievementRepo := new(mocks.AchievementRepository)
	mockProfileRepo := new(mocks.ProfileRepository)

	fixedNow := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	achievementService := NewAchievementService(db, mockAchievementRepo, mockProfileRepo, func() time.Time { return fixedNow })

	userID := uuid.New()
	achievementID := uuid.New()
	achievement := &model.Achievement{
		AchievementID: achievementID,
		Name:          "はじめの一歩",
		XPReward:      50,
		Category:      model.AchievementCategoryLearning,
	}

	tests := []struct {
		name      string
		setupMock func(ma *mocks.AchievementRepository, mp *mocks.ProfileRepository)
		wantErr   error
	}{
		{
			name: "正常系: 初回付与でXP報酬を加算",
			setupMock: func(ma *mocks.AchievementRepository, mp *mocks.ProfileRepository) {
				ma.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), achievementID).
					Return(achievement, nil).Once()
				ma.On("CreateUserAchievement", ctx, mock.AnythingOfType("*gorm.DB"), mock.MatchedBy(func(ua *model.UserAchievement) bool {
					assert.Equal(t, userID, ua.UserID)
					assert.Equal(t, achievementID, ua.AchievementID)
					require.NotNil(t, ua.EarnedAt)
					assert.True(t, ua.EarnedAt.Equal(fixedNow))
					return true
				})).Return(nil).Once()
				mp.On("FindByUserID", ctx, mock.AnythingOfType("*gorm.DB"), userID).
					Return(&model.Profile{UserID: userID, Level: 1, XP: 60}, nil).Once()
				mp.On("Update", ctx, mock.AnythingOfType("*gorm.DB"), mock.MatchedBy(func(p *model.Profile) bool {
					// 60 + 50 = 110 でレベル2・XP10になる
					assert.Equal(t, 2, p.Level)
					assert.Equal(t, 10, p.XP)
					return true
				})).Return(nil).Once()
			},
		},
		{
			name: "正常系: 付与済みは冪等で既存レコードを返す",
			setupMock: func(ma *mocks.AchievementRepository, mp *mocks.ProfileRepository) {
				ma.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), achievementID).
					Return(achievement, nil).Once()
				ma.On("CreateUserAchievement", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("*model.UserAchievement")).
					Return(model.ErrConflict).Once()
				earnedAt := fixedNow.AddDate(0, 0, -3)
				ma.On("FindByUser", ctx, db, userID).
					Return([]*model.UserAchievement{
						{UserID: userID, AchievementID: achievementID, EarnedAt: &earnedAt, Achievement: achievement},
					}, nil).Once()
				// XPの再付与は行われないため、プロフィールには触れない
			},
		},
		{
			name: "異常系: 実績が見つからない",
			setupMock: func(ma *mocks.AchievementRepository, mp *mocks.ProfileRepository) {
				ma.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), achievementID).
					Return(nil, model.ErrNotFound).Once()
			},
			wantErr: model.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockAchievementRepo.Mock = mock.Mock{} // モックをリセット
			mockProfileRepo.Mock = mock.Mock{}
			if tt.setupMock != nil {
				tt.setupMock(mockAchievementRepo, mockProfileRepo)
			}

			granted, err := achievementService.Grant(ctx, userID, achievementID)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, granted)
			} else {
				require.NoError(t, err)
				require.NotNil(t, granted)
				assert.Equal(t, achievementID, granted.AchievementID)
				require.NotNil(t, granted.EarnedAt)
			}
			mockAchievementRepo.AssertExpectations(t)
			mockProfileRepo.AssertExpectations(t)
		})
	}
}
