// internal/handlers/profile_handler.go
package handlers

import (
	"log/slog"
	"net/http"

	"tymelyne_backend/internal/middleware"
	"tymelyne_backend/internal/model"
	"tymelyne_backend/internal/service"
	"tymelyne_backend/internal/webutil"
)

type ProfileHandler struct {
	service service.ProfileService
	logger  *slog.Logger
}

func NewProfileHandler(s service.ProfileService, logger *slog.Logger) *ProfileHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProfileHandler{
		service: s,
		logger:  logger,
	}
}

// GetProfile は認証済みユーザーのプロフィールを返すハンドラ
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetProfile"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	profile, err := h.service.GetProfile(r.Context(), userID)
	if err != nil {
		logger.Error("Error getting profile in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, profile, logger)
}

// PatchProfile はプロフィールの部分更新ハンドラ
func (h *ProfileHandler) PatchProfile(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PatchProfile"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	var req model.UpdateProfileRequest
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

	profile, err := h.service.UpdateProfile(r.Context(), userID, &req)
	if err != nil {
		logger.Error("Error updating profile in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Profile updated successfully")
	webutil.RespondWithJSON(w, http.StatusOK, profile, logger)
}

// AddExperience はXP付与のハンドラ
func (h *ProfileHandler) AddExperience(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "AddExperience"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	var req model.AddExperienceRequest
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

	resp, err := h.service.AddExperience(r.Context(), userID, *req.Amount)
	if err != nil {
		logger.Error("Error adding experience in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Experience added successfully", slog.Int("amount", *req.Amount), slog.Int("level", resp.Level))
	webutil.RespondWithJSON(w, http.StatusOK, resp, logger)
}

// GetDashboard は学習サマリーを返すハンドラ
func (h *ProfileHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetDashboard"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	dashboard, err := h.service.GetDashboard(r.Context(), userID)
	if err != nil {
		logger.Error("Error getting dashboard in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, dashboard, logger)
}
