// internal/handlers/course_handler.go
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"tymelyne_backend/internal/middleware"
	"tymelyne_backend/internal/model"
	"tymelyne_backend/internal/service"
	"tymelyne_backend/internal/webutil"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type CourseHandler struct {
	service service.CourseService
	logger  *slog.Logger
}

func NewCourseHandler(s service.CourseService, logger *slog.Logger) *CourseHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CourseHandler{
		service: s,
		logger:  logger,
	}
}

// ListCourses はコース一覧を返すハンドラ
func (h *CourseHandler) ListCourses(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "ListCourses"))

	courses, err := h.service.ListCourses(r.Context())
	if err != nil {
		logger.Error("Error listing courses in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	if courses == nil {
		courses = []*model.Course{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, courses, logger)
}

// GetCourse はコース詳細 (モジュール・レッスン・アクティビティ込み) を返すハンドラ
func (h *CourseHandler) GetCourse(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetCourse"))

	courseID, ok := h.parseCourseID(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("course_id", courseID.String()))

	course, err := h.service.GetCourse(r.Context(), courseID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Info("Course not found in service", slog.Any("error", err))
		} else {
			logger.Error("Error getting course from service", slog.Any("error", err))
		}
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, course, logger)
}

// CreateCourse はコース作成のハンドラ
func (h *CourseHandler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "CreateCourse"))

	var req model.CreateCourseRequest
	if err := webutil.DecodeJSONBody(w, r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	if err := webutil.Validator.Struct(req); err != nil {
		msg, field := webutil.TranslateValidationError(err)
		appErr := model.NewAppError("VALIDATION_ERROR", msg, field, model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	course, err := h.service.CreateCourse(r.Context(), &req)
	if err != nil {
		logger.Error("Error creating course in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Course created successfully", slog.String("course_id", course.CourseID.String()))
	webutil.RespondWithJSON(w, http.StatusCreated, course, logger)
}

// PatchCourse はコースの部分更新ハンドラ
func (h *CourseHandler) PatchCourse(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PatchCourse"))

	courseID, ok := h.parseCourseID(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("course_id", courseID.String()))

	var req model.UpdateCourseRequest
	if err := webutil.DecodeJSONBody(w, r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	if err := webutil.Validator.Struct(req); err != nil {
		msg, field := webutil.TranslateValidationError(err)
		appErr := model.NewAppError("VALIDATION_ERROR", msg, field, model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	course, err := h.service.UpdateCourse(r.Context(), courseID, &req)
	if err != nil {
		logger.Error("Error updating course in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Course updated successfully")
	webutil.RespondWithJSON(w, http.StatusOK, course, logger)
}

// DeleteCourse はコース削除のハンドラ
func (h *CourseHandler) DeleteCourse(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteCourse"))

	courseID, ok := h.parseCourseID(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("course_id", courseID.String()))

	if err := h.service.DeleteCourse(r.Context(), courseID); err != nil {
		logger.Error("Error deleting course in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Course deleted successfully")
	w.WriteHeader(http.StatusNoContent)
}

// Enroll はコースへの受講登録ハンドラ
func (h *CourseHandler) Enroll(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "Enroll"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	courseID, ok := h.parseCourseID(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("course_id", courseID.String()))

	resp, err := h.service.Enroll(r.Context(), userID, courseID)
	if err != nil {
		logger.Error("Error enrolling in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	status := http.StatusCreated
	if resp.AlreadyEnrolled {
		status = http.StatusOK
	}
	webutil.RespondWithJSON(w, status, resp, logger)
}

// ListCourseProgress はユーザーのコース進捗一覧を返すハンドラ
func (h *CourseHandler) ListCourseProgress(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "ListCourseProgress"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}

	list, err := h.service.ListCourseProgress(r.Context(), userID)
	if err != nil {
		logger.Error("Error listing course progress in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	if list == nil {
		list = []*model.UserCourseProgress{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, list, logger)
}

// ListActivityProgress はユーザーのアクティビティ進捗一覧を返すハンドラ
func (h *CourseHandler) ListActivityProgress(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "ListActivityProgress"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}

	list, err := h.service.ListActivityProgress(r.Context(), userID)
	if err != nil {
		logger.Error("Error listing activity progress in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	if list == nil {
		list = []*model.UserActivityProgress{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, list, logger)
}

// ListCertificates はユーザーの修了証一覧を返すハンドラ
func (h *CourseHandler) ListCertificates(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "ListCertificates"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}

	certs, err := h.service.ListCertificates(r.Context(), userID)
	if err != nil {
		logger.Error("Error listing certificates in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	if certs == nil {
		certs = []*model.Certificate{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, certs, logger)
}

func (h *CourseHandler) parseCourseID(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (uuid.UUID, bool) {
	courseIDStr := chi.URLParam(r, "course_id")
	courseID, err := uuid.Parse(courseIDStr)
	if err != nil {
		logger.Warn("Invalid course ID format in URL", slog.String("course_id_str", courseIDStr), slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_URL_PARAM", "course_idの形式が正しくありません。", "course_id", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return uuid.Nil, false
	}
	return courseID, true
}
