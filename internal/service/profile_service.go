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

type ProfileService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*model.Profile, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *model.UpdateProfileRequest) (*model.Profile, error)
	AddExperience(ctx context.Context, userID uuid.UUID, amount int) (*model.AddExperienceResponse, error)
	GetDashboard(ctx context.Context, userID uuid.UUID) (*model.DashboardResponse, error)
}

type profileService struct {
	db              *gorm.DB
	profileRepo     repository.ProfileRepository
	userRepo        repository.UserRepository
	progressRepo    repository.ProgressRepository
	achievementRepo repository.AchievementRepository
	certRepo        repository.CertificateRepository
}

func NewProfileService(
	db *gorm.DB,
	profileRepo repository.ProfileRepository,
	userRepo repository.UserRepository,
	progressRepo repository.ProgressRepository,
	achievementRepo repository.AchievementRepository,
	certRepo repository.CertificateRepository,
) ProfileService {
	return &profileService{
		db:              db,
		profileRepo:     profileRepo,
		userRepo:        userRepo,
		progressRepo:    progressRepo,
		achievementRepo: achievementRepo,
		certRepo:        certRepo,
	}
}

// applyExperience はプロフィールにXPを加算し、閾値を超えるたびにレベルを上げます。
// 1回の加算で複数レベル上がることもある。amount が0以下の場合は何もしない。
// 適用後は常に profile.XP < XPForLevel(profile.Level) が成り立つ。
func applyExperience(profile *model.Profile, amount int) {
	if amount <= 0 {
		return
	}
	profile.XP += amount
	for profile.XP >= model.XPForLevel(profile.Level) {
		profile.XP -= model.XPForLevel(profile.Level)
		profile.Level++
	}
}

func (s *profileService) GetProfile(ctx context.Context, userID uuid.UUID) (*model.Profile, error) {
	logger := middleware.GetLogger(ctx)

	profile, err := s.profileRepo.FindByUserID(ctx, s.db, userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Warn("Profile not found", "user_id", userID.String())
			return nil, model.NewAppError("PROFILE_NOT_FOUND", "プロフィールが見つかりません。", "", model.ErrNotFound)
		}
		logger.Error("Error finding profile", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部エラー", "", err)
	}
	return profile, nil
}

func (s *profileService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *model.UpdateProfileRequest) (*model.Profile, error) {
	logger := middleware.GetLogger(ctx)
	var updated *model.Profile

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		profile, err := s.profileRepo.FindByUserID(ctx, tx, userID)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("PROFILE_NOT_FOUND", "プロフィールが見つかりません。", "", model.ErrNotFound)
			}
			return model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部エラー", "", err)
		}

		// nil のフィールドは更新しない (部分更新)
		if req.DisplayName != nil {
			profile.DisplayName = *req.DisplayName
		}
		if req.Bio != nil {
			profile.Bio = *req.Bio
		}
		if req.ThemePreference != nil {
			profile.ThemePreference = *req.ThemePreference
		}
		if req.AccentColor != nil {
			profile.AccentColor = *req.AccentColor
		}

		if err := s.profileRepo.Update(ctx, tx, profile); err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "プロフィールの更新に失敗しました。", "", err)
		}
		updated = profile
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Profile updated", "user_id", userID.String())
	return updated, nil
}

// AddExperience はプロフィールにXPを加算し、必要に応じてレベルアップを適用します
func (s *profileService) AddExperience(ctx context.Context, userID uuid.UUID, amount int) (*model.AddExperienceResponse, error) {
	logger := middleware.GetLogger(ctx)
	var resp *model.AddExperienceResponse

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		profile, err := s.profileRepo.FindByUserID(ctx, tx, userID)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("PROFILE_NOT_FOUND", "プロフィールが見つかりません。", "", model.ErrNotFound)
			}
			return model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部エラー", "", err)
		}

		oldLevel := profile.Level
		applyExperience(profile, amount)

		if err := s.profileRepo.Update(ctx, tx, profile); err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "XPの更新に失敗しました。", "", err)
		}

		if profile.Level > oldLevel {
			logger.Info("Level up",
				"user_id", userID.String(),
				"old_level", oldLevel,
				"new_level", profile.Level,
			)
		}

		resp = &model.AddExperienceResponse{Level: profile.Level, XP: profile.XP}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// GetDashboard は学習状況のサマリーを集計して返します
func (s *profileService) GetDashboard(ctx context.Context, userID uuid.UUID) (*model.DashboardResponse, error) {
	logger := middleware.GetLogger(ctx)

	user, err := s.userRepo.FindByID(ctx, s.db, userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("USER_NOT_FOUND", "ユーザーが見つかりません。", "", model.ErrNotFound)
		}
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部エラー", "", err)
	}

	profile, err := s.profileRepo.FindByUserID(ctx, s.db, userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("PROFILE_NOT_FOUND", "プロフィールが見つかりません。", "", model.ErrNotFound)
		}
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部エラー", "", err)
	}

	courseProgress, err := s.progressRepo.FindCourseProgressByUser(ctx, s.db, userID)
	if err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部エラー", "", err)
	}
	inProgress := 0
	for _, cp := range courseProgress {
		if !cp.IsCompleted {
			inProgress++
		}
	}

	activityProgress, err := s.progressRepo.FindActivityProgressByUser(ctx, s.db, userID)
	if err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部エラー", "", err)
	}
	recentCutoff := time.Now().AddDate(0, 0, -7)
	recent := 0
	for _, ap := range activityProgress {
		if ap.UpdatedAt.After(recentCutoff) {
			recent++
		}
	}

	achievements, err := s.achievementRepo.FindByUser(ctx, s.db, userID)
	if err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部エラー", "", err)
	}
	earned := 0
	for _, ua := range achievements {
		if ua.EarnedAt != nil {
			earned++
		}
	}

	certs, err := s.certRepo.FindByUser(ctx, s.db, userID)
	if err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部エラー", "", err)
	}

	totalTime, err := s.progressRepo.SumTimeSpent(ctx, s.db, userID)
	if err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部エラー", "", err)
	}

	logger.Debug("Dashboard assembled", "user_id", userID.String())
	return &model.DashboardResponse{
		Username:          user.Username,
		Level:             profile.Level,
		XP:                profile.XP,
		NextLevelXP:       model.XPForLevel(profile.Level),
		DaysStreak:        profile.DaysStreak,
		CoursesCompleted:  profile.TotalCoursesCompleted,
		CoursesInProgress: inProgress,
		LessonsCompleted:  profile.TotalLessonsCompleted,
		TotalLearningTime: int(totalTime),
		RecentActivities:  recent,
		Achievements:      earned,
		Certificates:      len(certs),
	}, nil
}
