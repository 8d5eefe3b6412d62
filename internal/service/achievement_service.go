package service

import (
	"context"
	"errors"
	"time"

	"tymelyne_backend/internal/middleware"
	"tymelyne_backend/internal/model"
	"tymelyne_backend/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AchievementService interface {
	ListAchievements(ctx context.Context) ([]*model.Achievement, error)
	ListUserAchievements(ctx context.Context, userID uuid.UUID) ([]*model.UserAchievement, error)
	Grant(ctx context.Context, userID, achievementID uuid.UUID) (*model.UserAchievement, error)
}

type achievementService struct {
	db              *gorm.DB
	achievementRepo repository.AchievementRepository
	profileRepo     repository.ProfileRepository
	now             func() time.Time
}

func NewAchievementService(
	db *gorm.DB,
	achievementRepo repository.AchievementRepository,
	profileRepo repository.ProfileRepository,
	now func() time.Time,
) AchievementService {
	if now == nil {
		now = time.Now
	}
	return &achievementService{
		db:              db,
		achievementRepo: achievementRepo,
		profileRepo:     profileRepo,
		now:             now,
	}
}

func (s *achievementService) ListAchievements(ctx context.Context) ([]*model.Achievement, error) {
	achievements, err := s.achievementRepo.FindAll(ctx, s.db)
	if err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部エラー", "", err)
	}
	return achievements, nil
}

func (s *achievementService) ListUserAchievements(ctx context.Context, userID uuid.UUID) ([]*model.UserAchievement, error) {
	list, err := s.achievementRepo.FindByUser(ctx, s.db, userID)
	if err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部エラー", "", err)
	}
	return list, nil
}

// Grant は実績をユーザーに付与します。付与済みの場合は何もしない (冪等)。
// 初回付与時のみ実績のXP報酬をプロフィールに加算する。
func (s *achievementService) Grant(ctx context.Context, userID, achievementID uuid.UUID) (*model.UserAchievement, error) {
	logger := middleware.GetLogger(ctx)
	var granted *model.UserAchievement

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		achievement, err := s.achievementRepo.FindByID(ctx, tx, achievementID)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("ACHIEVEMENT_NOT_FOUND", "実績が見つかりません。", "", model.ErrNotFound)
			}
			return model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部エラー", "", err)
		}

		now := s.now()
		ua := &model.UserAchievement{
			UserID:        userID,
			AchievementID: achievementID,
			EarnedAt:      &now,
		}
		if err := s.achievementRepo.CreateUserAchievement(ctx, tx, ua); err != nil {
			// 付与済みなら何も変更しない
			if errors.Is(err, model.ErrConflict) {
				logger.Debug("Achievement already granted",
					"user_id", userID.String(),
					"achievement_id", achievementID.String(),
				)
				granted = nil
				return nil
			}
			return model.NewAppError("INTERNAL_SERVER_ERROR", "実績の付与に失敗しました。", "", err)
		}

		// 初回付与時のみXP報酬を加算
		if achievement.XPReward > 0 {
			profile, err := s.profileRepo.FindByUserID(ctx, tx, userID)
			if err != nil {
				return model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部エラー", "", err)
			}
			applyExperience(profile, achievement.XPReward)
			if err := s.profileRepo.Update(ctx, tx, profile); err != nil {
				return model.NewAppError("INTERNAL_SERVER_ERROR", "XPの更新に失敗しました。", "", err)
			}
		}

		ua.Achievement = achievement
		granted = ua

		logger.Info("Achievement granted",
			"user_id", userID.String(),
			"achievement_id", achievementID.String(),
			"name", achievement.Name,
		)
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 付与済みの場合は既存レコードを返す
	if granted == nil {
		list, err := s.achievementRepo.FindByUser(ctx, s.db, userID)
		if err != nil {
			return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部エラー", "", err)
		}
		for _, ua := range list {
			if ua.AchievementID == achievementID {
				return ua, nil
			}
		}
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部エラー", "", model.ErrInternalServer)
	}
	return granted, nil
}
