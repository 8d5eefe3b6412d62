// internal/handlers/achievement_handler.go
package handlers

import (
	"log/slog"
	"net/http"

	"tymelyne_backend/internal/middleware"
	"tymelyne_backend/internal/model"
	"tymelyne_backend/internal/service"
	"tymelyne_backend/internal/webutil"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type AchievementHandler struct {
	service service.AchievementService
	logger  *slog.Logger
}

func NewAchievementHandler(s service.AchievementService, logger *slog.Logger) *AchievementHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AchievementHandler{
		service: s,
		logger:  logger,
	}
}

// ListAchievements は実績マスタの一覧を返すハンドラ
func (h *AchievementHandler) ListAchievements(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "ListAchievements"))

	achievements, err := h.service.ListAchievements(r.Context())
	if err != nil {
		logger.Error("Error listing achievements in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	if achievements == nil {
		achievements = []*model.Achievement{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, achievements, logger)
}

// ListUserAchievements は認証済みユーザーの実績一覧を返すハンドラ
func (h *AchievementHandler) ListUserAchievements(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "ListUserAchievements"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	list, err := h.service.ListUserAchievements(r.Context(), userID)
	if err != nil {
		logger.Error("Error listing user achievements in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	if list == nil {
		list = []*model.UserAchievement{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, list, logger)
}

// GrantAchievement は実績の付与ハンドラ (冪等)
func (h *AchievementHandler) GrantAchievement(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GrantAchievement"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	achievementIDStr := chi.URLParam(r, "achievement_id")
	achievementID, err := uuid.Parse(achievementIDStr)
	if err != nil {
		logger.Warn("Invalid achievement ID format in URL", slog.String("achievement_id_str", achievementIDStr), slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_URL_PARAM", "achievement_idの形式が正しくありません。", "achievement_id", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("achievement_id", achievementID.String()))

	ua, err := h.service.Grant(r.Context(), userID, achievementID)
	if err != nil {
		logger.Error("Error granting achievement in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Achievement grant processed")
	webutil.RespondWithJSON(w, http.StatusOK, ua, logger)
}
