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

type CourseService interface {
	ListCourses(ctx context.Context) ([]*model.Course, error)
	GetCourse(ctx context.Context, courseID uuid.UUID) (*model.Course, error)
	CreateCourse(ctx context.Context, req *model.CreateCourseRequest) (*model.Course, error)
	UpdateCourse(ctx context.Context, courseID uuid.UUID, req *model.UpdateCourseRequest) (*model.Course, error)
	DeleteCourse(ctx context.Context, courseID uuid.UUID) error
	Enroll(ctx context.Context, userID, courseID uuid.UUID) (*model.EnrollResponse, error)
	ListCourseProgress(ctx context.Context, userID uuid.UUID) ([]*model.UserCourseProgress, error)
	ListActivityProgress(ctx context.Context, userID uuid.UUID) ([]*model.UserActivityProgress, error)
	ListCertificates(ctx context.Context, userID uuid.UUID) ([]*model.Certificate, error)
}

type courseService struct {
	db           *gorm.DB
	courseRepo   repository.CourseRepository
	progressRepo repository.ProgressRepository
	certRepo     repository.CertificateRepository
	now          func() time.Time
}

func NewCourseService(
	db *gorm.DB,
	courseRepo repository.CourseRepository,
	progressRepo repository.ProgressRepository,
	certRepo repository.CertificateRepository,
	now func() time.Time,
) CourseService {
	if now == nil {
		now = time.Now
	}
	return &courseService{
		db:           db,
		courseRepo:   courseRepo,
		progressRepo: progressRepo,
		certRepo:     certRepo,
		now:          now,
	}
}

func (s *courseService) ListCourses(ctx context.Context) ([]*model.Course, error) {
	courses, err := s.courseRepo.FindAll(ctx, s.db)
	if err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部エラー", "", err)
	}
	return courses, nil
}

func (s *courseService) GetCourse(ctx context.Context, courseID uuid.UUID) (*model.Course, error) {
	logger := middleware.GetLogger(ctx)

	course, err := s.courseRepo.FindByID(ctx, s.db, courseID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Warn("Course not found", "course_id", courseID.String())
			return nil, model.NewAppError("COURSE_NOT_FOUND", "コースが見つかりません。", "", model.ErrNotFound)
		}
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部エラー", "", err)
	}
	return course, nil
}

func (s *courseService) CreateCourse(ctx context.Context, req *model.CreateCourseRequest) (*model.Course, error) {
	logger := middleware.GetLogger(ctx)

	difficulty := req.Difficulty
	if difficulty == "" {
		difficulty = model.DifficultyBeginner
	}

	course := &model.Course{
		CourseID:          uuid.New(),
		Title:             req.Title,
		Description:       req.Description,
		Category:          req.Category,
		Difficulty:        difficulty,
		EstimatedDuration: req.EstimatedDuration,
	}

	if err := s.courseRepo.Create(ctx, s.db, course); err != nil {
		if errors.Is(err, model.ErrConflict) {
			return nil, model.NewAppError("DUPLICATE_COURSE", "同じコースが既に存在します。", "title", model.ErrConflict)
		}
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "コースの作成に失敗しました。", "", err)
	}

	logger.Info("Course created", "course_id", course.CourseID.String(), "title", course.Title)
	return course, nil
}

func (s *courseService) UpdateCourse(ctx context.Context, courseID uuid.UUID, req *model.UpdateCourseRequest) (*model.Course, error) {
	logger := middleware.GetLogger(ctx)

	// nil のフィールドは更新対象に含めない (部分更新)
	updates := make(map[string]interface{})
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Difficulty != nil {
		updates["difficulty"] = *req.Difficulty
	}
	if req.EstimatedDuration != nil {
		updates["estimated_duration"] = *req.EstimatedDuration
	}

	if len(updates) > 0 {
		if err := s.courseRepo.Update(ctx, s.db, courseID, updates); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return nil, model.NewAppError("COURSE_NOT_FOUND", "コースが見つかりません。", "", model.ErrNotFound)
			}
			return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "コースの更新に失敗しました。", "", err)
		}
	}

	course, err := s.courseRepo.FindByID(ctx, s.db, courseID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("COURSE_NOT_FOUND", "コースが見つかりません。", "", model.ErrNotFound)
		}
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部エラー", "", err)
	}

	logger.Info("Course updated", "course_id", courseID.String())
	return course, nil
}

func (s *courseService) DeleteCourse(ctx context.Context, courseID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)

	if err := s.courseRepo.Delete(ctx, s.db, courseID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.NewAppError("COURSE_NOT_FOUND", "コースが見つかりません。", "", model.ErrNotFound)
		}
		return model.NewAppError("INTERNAL_SERVER_ERROR", "コースの削除に失敗しました。", "", err)
	}

	logger.Info("Course deleted", "course_id", courseID.String())
	return nil
}

// Enroll はコースへの受講登録を行います。登録済みの場合は何もしない (冪等)
func (s *courseService) Enroll(ctx context.Context, userID, courseID uuid.UUID) (*model.EnrollResponse, error) {
	logger := middleware.GetLogger(ctx)
	var resp *model.EnrollResponse

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// コースの存在チェック
		if _, err := s.courseRepo.FindByID(ctx, tx, courseID); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("COURSE_NOT_FOUND", "コースが見つかりません。", "", model.ErrNotFound)
			}
			return model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部エラー", "", err)
		}

		_, err := s.progressRepo.FindCourseProgress(ctx, tx, userID, courseID)
		if err == nil {
			resp = &model.EnrollResponse{
				Message:         "このコースには既に登録されています。",
				AlreadyEnrolled: true,
			}
			return nil
		}
		if !errors.Is(err, model.ErrNotFound) {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部エラー", "", err)
		}

		progress := &model.UserCourseProgress{
			ProgressID:   uuid.New(),
			UserID:       userID,
			CourseID:     courseID,
			LastAccessed: s.now(),
		}
		if err := s.progressRepo.CreateCourseProgress(ctx, tx, progress); err != nil {
			// 同時登録との競合は登録済みとして扱う
			if errors.Is(err, model.ErrConflict) {
				resp = &model.EnrollResponse{
					Message:         "このコースには既に登録されています。",
					AlreadyEnrolled: true,
				}
				return nil
			}
			return model.NewAppError("INTERNAL_SERVER_ERROR", "受講登録に失敗しました。", "", err)
		}

		resp = &model.EnrollResponse{Message: "コースに登録しました。"}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !resp.AlreadyEnrolled {
		logger.Info("Enrolled in course", "user_id", userID.String(), "course_id", courseID.String())
	}
	return resp, nil
}

func (s *courseService) ListCourseProgress(ctx context.Context, userID uuid.UUID) ([]*model.UserCourseProgress, error) {
	list, err := s.progressRepo.FindCourseProgressByUser(ctx, s.db, userID)
	if err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部エラー", "", err)
	}
	return list, nil
}

func (s *courseService) ListActivityProgress(ctx context.Context, userID uuid.UUID) ([]*model.UserActivityProgress, error) {
	list, err := s.progressRepo.FindActivityProgressByUser(ctx, s.db, userID)
	if err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部エラー", "", err)
	}
	return list, nil
}

func (s *courseService) ListCertificates(ctx context.Context, userID uuid.UUID) ([]*model.Certificate, error) {
	list, err := s.certRepo.FindByUser(ctx, s.db, userID)
	if err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部エラー", "", err)
	}
	return list, nil
}
