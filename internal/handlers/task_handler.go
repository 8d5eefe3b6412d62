// internal/handlers/task_handler.go
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

type TaskHandler struct {
	service service.TaskService
	logger  *slog.Logger
}

func NewTaskHandler(s service.TaskService, logger *slog.Logger) *TaskHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskHandler{
		service: s,
		logger:  logger,
	}
}

// ListTasks はタスク一覧を返すハンドラ
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "ListTasks"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	tasks, err := h.service.ListTasks(r.Context(), userID)
	if err != nil {
		logger.Error("Error listing tasks in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	if tasks == nil {
		tasks = []*model.Task{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, tasks, logger)
}

// GenerateTasks は学習状況に基づくタスクの再生成ハンドラ
func (h *TaskHandler) GenerateTasks(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GenerateTasks"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	// ボディは省略可能 (省略時はデフォルトの上限数)
	var req model.GenerateTasksRequest
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

	tasks, err := h.service.GenerateTasks(r.Context(), userID, &req)
	if err != nil {
		logger.Error("Error generating tasks in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Tasks generated successfully", slog.Int("count", len(tasks)))
	webutil.RespondWithJSON(w, http.StatusCreated, tasks, logger)
}

// UpdateTaskStatus はタスク状態更新のハンドラ
func (h *TaskHandler) UpdateTaskStatus(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "UpdateTaskStatus"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	taskIDStr := chi.URLParam(r, "task_id")
	taskID, err := uuid.Parse(taskIDStr)
	if err != nil {
		logger.Warn("Invalid task ID format in URL", slog.String("task_id_str", taskIDStr), slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_URL_PARAM", "task_idの形式が正しくありません。", "task_id", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("task_id", taskID.String()))

	var req model.UpdateTaskStatusRequest
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

	task, err := h.service.UpdateTaskStatus(r.Context(), userID, taskID, req.Status)
	if err != nil {
		logger.Error("Error updating task status in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Task status updated successfully", slog.String("status", string(task.Status)))
	webutil.RespondWithJSON(w, http.StatusOK, task, logger)
}
