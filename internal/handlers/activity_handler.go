// internal/handlers/activity_handler.go
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

type ActivityHandler struct {
	service service.ActivityService
	logger  *slog.Logger
}

func NewActivityHandler(s service.ActivityService, logger *slog.Logger) *ActivityHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ActivityHandler{
		service: s,
		logger:  logger,
	}
}

// GetActivity はアクティビティ詳細を返すハンドラ
func (h *ActivityHandler) GetActivity(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetActivity"))

	activityID, ok := h.parseActivityID(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("activity_id", activityID.String()))

	activity, err := h.service.GetActivity(r.Context(), activityID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Info("Activity not found in service", slog.Any("error", err))
		} else {
			logger.Error("Error getting activity from service", slog.Any("error", err))
		}
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, activity, logger)
}

// CompleteActivity はアクティビティ完了のハンドラ。
// 初回のみXP付与・進捗再計算が走り、2回目以降は AlreadyCompleted が返る
func (h *ActivityHandler) CompleteActivity(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "CompleteActivity"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	activityID, ok := h.parseActivityID(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("activity_id", activityID.String()))

	// ボディは省略可能 (時間・スコアなしの完了)
	var req model.CompleteActivityRequest
	if r.ContentLength > 0 {
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
	}

	resp, err := h.service.CompleteActivity(r.Context(), userID, activityID, &req)
	if err != nil {
		logger.Error("Error completing activity in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Activity completion processed",
		slog.Bool("already_completed", resp.AlreadyCompleted),
		slog.Int("xp_earned", resp.XPEarned),
	)
	webutil.RespondWithJSON(w, http.StatusOK, resp, logger)
}

func (h *ActivityHandler) parseActivityID(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (uuid.UUID, bool) {
	activityIDStr := chi.URLParam(r, "activity_id")
	activityID, err := uuid.Parse(activityIDStr)
	if err != nil {
		logger.Warn("Invalid activity ID format in URL", slog.String("activity_id_str", activityIDStr), slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_URL_PARAM", "activity_idの形式が正しくありません。", "activity_id", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return uuid.Nil, false
	}
	return activityID, true
}
