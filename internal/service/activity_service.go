package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tymelyne_backend/internal/middleware"
	"tymelyne_backend/internal/model"
	"tymelyne_backend/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ActivityService interface {
	CompleteActivity(ctx context.Context, userID, activityID uuid.UUID, req *model.CompleteActivityRequest) (*model.CompleteActivityResponse, error)
	GetActivity(ctx context.Context, activityID uuid.UUID) (*model.Activity, error)
	RecomputeCourseProgress(ctx context.Context, userID, courseID uuid.UUID) (int, error)
}

type activityService struct {
	db           *gorm.DB
	courseRepo   repository.CourseRepository
	progressRepo repository.ProgressRepository
	profileRepo  repository.ProfileRepository
	userRepo     repository.UserRepository
	certRepo     repository.CertificateRepository
	mailer       Mailer
	now          func() time.Time
}

func NewActivityService(
	db *gorm.DB,
	courseRepo repository.CourseRepository,
	progressRepo repository.ProgressRepository,
	profileRepo repository.ProfileRepository,
	userRepo repository.UserRepository,
	certRepo repository.CertificateRepository,
	mailer Mailer,
	now func() time.Time,
) ActivityService {
	if now == nil {
		now = time.Now
	}
	return &activityService{
		db:           db,
		courseRepo:   courseRepo,
		progressRepo: progressRepo,
		profileRepo:  profileRepo,
		userRepo:     userRepo,
		certRepo:     certRepo,
		mailer:       mailer,
		now:          now,
	}
}

func (s *activityService) GetActivity(ctx context.Context, activityID uuid.UUID) (*model.Activity, error) {
	logger := middleware.GetLogger(ctx)

	activity, err := s.courseRepo.FindActivityByID(ctx, s.db, activityID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Warn("Activity not found", "activity_id", activityID.String())
			return nil, model.NewAppError("ACTIVITY_NOT_FOUND", "アクティビティが見つかりません。", "", model.ErrNotFound)
		}
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部エラー", "", err)
	}
	return activity, nil
}

// CompleteActivity はアクティビティを完了済みにし、初回完了時のみXP付与・
// ストリーク更新・コース進捗の再計算を1つのトランザクションで行います。
// 2回目以降の完了リクエストは提出内容 (所要時間・回答・スコア) だけを
// 上書きし、XPや進捗には触れず AlreadyCompleted を返す。
func (s *activityService) CompleteActivity(ctx context.Context, userID, activityID uuid.UUID, req *model.CompleteActivityRequest) (*model.CompleteActivityResponse, error) {
	logger := middleware.GetLogger(ctx)

	var (
		resp           *model.CompleteActivityResponse
		completedEmail string // コース修了時の通知先 (空なら送信しない)
		completedTitle string
	)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		activity, err := s.courseRepo.FindActivityByID(ctx, tx, activityID)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				logger.Warn("Activity not found", "activity_id", activityID.String())
				return model.NewAppError("ACTIVITY_NOT_FOUND", "アクティビティが見つかりません。", "", model.ErrNotFound)
			}
			return model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部エラー", "", err)
		}

		// 既に完了済みなら提出内容だけを上書きする (XP・進捗は変化しない)
		existing, err := s.progressRepo.FindActivityProgress(ctx, tx, userID, activityID)
		if err == nil && existing != nil {
			logger.Debug("Activity already completed, updating submission only",
				"user_id", userID.String(),
				"activity_id", activityID.String(),
			)
			existing.IsCompleted = true
			if req.TimeSpent > 0 {
				existing.TimeSpent = req.TimeSpent
			}
			if req.UserResponse != nil {
				existing.UserResponse = req.UserResponse
			}
			if req.Score != nil {
				existing.Score = req.Score
			}
			if err := s.progressRepo.UpdateActivityProgress(ctx, tx, existing); err != nil {
				return model.NewAppError("INTERNAL_SERVER_ERROR", "進捗の保存に失敗しました。", "", err)
			}
			resp = &model.CompleteActivityResponse{
				Message:          "このアクティビティは既に完了しています。",
				AlreadyCompleted: true,
			}
			return nil
		}
		if !errors.Is(err, model.ErrNotFound) {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部エラー", "", err)
		}

		progress := &model.UserActivityProgress{
			ProgressID:   uuid.New(),
			UserID:       userID,
			ActivityID:   activityID,
			IsCompleted:  true,
			UserResponse: req.UserResponse,
			Score:        req.Score,
			TimeSpent:    req.TimeSpent,
		}
		if err := s.progressRepo.CreateActivityProgress(ctx, tx, progress); err != nil {
			// 同時リクエストと競合した場合は先勝ち。完了済みとして扱う
			if errors.Is(err, model.ErrConflict) {
				logger.Warn("Concurrent completion detected, treating as already completed",
					"user_id", userID.String(),
					"activity_id", activityID.String(),
				)
				resp = &model.CompleteActivityResponse{
					Message:          "このアクティビティは既に完了しています。",
					AlreadyCompleted: true,
				}
				return nil
			}
			return model.NewAppError("INTERNAL_SERVER_ERROR", "進捗の保存に失敗しました。", "", err)
		}

		// --- 初回完了: XP付与とストリーク更新 ---
		profile, err := s.profileRepo.FindByUserID(ctx, tx, userID)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("PROFILE_NOT_FOUND", "プロフィールが見つかりません。", "", model.ErrNotFound)
			}
			return model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部エラー", "", err)
		}

		s.updateStreak(profile)
		applyExperience(profile, activity.XPReward)

		// --- コース進捗の再計算 ---
		courseID, err := s.courseRepo.FindCourseIDByActivity(ctx, tx, activityID)
		if err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部エラー", "", err)
		}

		pct, completedNow, err := s.recomputeCourseProgress(ctx, tx, userID, courseID, profile)
		if err != nil {
			return err
		}

		if err := s.profileRepo.Update(ctx, tx, profile); err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "プロフィールの更新に失敗しました。", "", err)
		}

		if completedNow {
			// 修了メールはコミット後に送信する
			user, err := s.userRepo.FindByID(ctx, tx, userID)
			if err == nil {
				completedEmail = user.Email
			}
			course, err := s.courseRepo.FindByID(ctx, tx, courseID)
			if err == nil {
				completedTitle = course.Title
			}
		}

		resp = &model.CompleteActivityResponse{
			Message:        "アクティビティを完了しました。",
			XPEarned:       activity.XPReward,
			CurrentLevel:   profile.Level,
			CurrentXP:      profile.XP,
			CourseProgress: pct,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// コース修了の通知はベストエフォート。失敗しても完了処理は成功扱い
	if completedEmail != "" {
		subject := "【Tymelyne】コース修了おめでとうございます！"
		body := fmt.Sprintf("「%s」を修了しました。修了証が発行されています。\n\n引き続き学習を楽しんでください！", completedTitle)
		if err := s.mailer.Send(ctx, completedEmail, subject, body); err != nil {
			logger.Error("Failed to send course completion email", "error", err, "to", completedEmail)
		}
	}

	return resp, nil
}

// updateStreak は最終アクティブ日に応じて連続学習日数を更新します。
// 同日2回目は変更なし、前日から連続なら+1、それ以外は1にリセット。
// 日付の境界はサーバーのタイムゾーンの暦日で判定する
func (s *activityService) updateStreak(profile *model.Profile) {
	now := s.now()
	today := startOfDay(now)

	if profile.LastActiveDate != nil {
		last := startOfDay(profile.LastActiveDate.In(now.Location()))
		switch {
		case last.Equal(today):
			return
		case last.Equal(today.AddDate(0, 0, -1)):
			profile.DaysStreak++
		default:
			profile.DaysStreak = 1
		}
	} else {
		profile.DaysStreak = 1
	}
	profile.LastActiveDate = &today
}

// startOfDay は t と同じタイムゾーンにおけるその日の0時を返します
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// RecomputeCourseProgress はコース進捗率を完了実績から計算し直して返します。
// カタログの増減などで進捗がずれた場合に、完了操作を経由せずに整合させる。
// 100%への到達を検知した場合は CompleteActivity と同じ確定処理が走る
func (s *activityService) RecomputeCourseProgress(ctx context.Context, userID, courseID uuid.UUID) (int, error) {
	var pct int

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		profile, err := s.profileRepo.FindByUserID(ctx, tx, userID)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("PROFILE_NOT_FOUND", "プロフィールが見つかりません。", "", model.ErrNotFound)
			}
			return model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部エラー", "", err)
		}

		p, _, err := s.recomputeCourseProgress(ctx, tx, userID, courseID, profile)
		if err != nil {
			return err
		}

		if err := s.profileRepo.Update(ctx, tx, profile); err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "プロフィールの更新に失敗しました。", "", err)
		}
		pct = p
		return nil
	})
	if err != nil {
		return 0, err
	}
	return pct, nil
}

// recomputeCourseProgress は完了数/総数からコース進捗率を再計算します。
// 100%到達時はコース完了の確定・修了証の発行・修了コース数の加算を行う。
// 一度完了したコースの進捗は100%のまま変化しない。
func (s *activityService) recomputeCourseProgress(ctx context.Context, tx *gorm.DB, userID, courseID uuid.UUID, profile *model.Profile) (int, bool, error) {
	logger := middleware.GetLogger(ctx)

	total, err := s.courseRepo.CountActivitiesByCourse(ctx, tx, courseID)
	if err != nil {
		return 0, false, model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部エラー", "", err)
	}
	// アクティビティが1つもないコースは進捗の対象外
	if total == 0 {
		logger.Debug("Course has no activities, skipping progress update", "course_id", courseID.String())
		return 0, false, nil
	}

	completed, err := s.progressRepo.CountCompletedByCourse(ctx, tx, userID, courseID)
	if err != nil {
		return 0, false, model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部エラー", "", err)
	}

	// 切り捨てで計算し、100を超えないようにする
	pct := int(completed * 100 / total)
	if pct > 100 {
		pct = 100
	}

	now := s.now()
	cp, err := s.progressRepo.FindCourseProgress(ctx, tx, userID, courseID)
	if err != nil {
		if !errors.Is(err, model.ErrNotFound) {
			return 0, false, model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部エラー", "", err)
		}
		// 未登録のまま完了した場合は、ここで進捗レコードを作成する
		cp = &model.UserCourseProgress{
			ProgressID:   uuid.New(),
			UserID:       userID,
			CourseID:     courseID,
			LastAccessed: now,
		}
		if err := s.progressRepo.CreateCourseProgress(ctx, tx, cp); err != nil && !errors.Is(err, model.ErrConflict) {
			return 0, false, model.NewAppError("INTERNAL_SERVER_ERROR", "コース進捗の作成に失敗しました。", "", err)
		}
	}

	// 完了済みコースの進捗は変化させない
	if cp.IsCompleted {
		cp.LastAccessed = now
		if err := s.progressRepo.UpdateCourseProgress(ctx, tx, cp); err != nil {
			return 0, false, model.NewAppError("INTERNAL_SERVER_ERROR", "コース進捗の更新に失敗しました。", "", err)
		}
		return 100, false, nil
	}

	cp.ProgressPercentage = pct
	cp.LastAccessed = now

	completedNow := false
	if pct >= 100 {
		cp.ProgressPercentage = 100
		cp.IsCompleted = true
		completedNow = true

		profile.TotalCoursesCompleted++

		cert := &model.Certificate{
			CertificateID: uuid.New(),
			UserID:        userID,
			CourseID:      courseID,
			IssuedAt:      now,
		}
		if err := s.certRepo.Create(ctx, tx, cert); err != nil {
			// 発行済みなら何もしない (1コース1枚)
			if !errors.Is(err, model.ErrConflict) {
				return 0, false, model.NewAppError("INTERNAL_SERVER_ERROR", "修了証の発行に失敗しました。", "", err)
			}
		} else {
			logger.Info("Certificate issued",
				"user_id", userID.String(),
				"course_id", courseID.String(),
			)
		}
	}

	if err := s.progressRepo.UpdateCourseProgress(ctx, tx, cp); err != nil {
		return 0, false, model.NewAppError("INTERNAL_SERVER_ERROR", "コース進捗の更新に失敗しました。", "", err)
	}

	return cp.ProgressPercentage, completedNow, nil
}
