// internal/handlers/auth_handler.go
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"tymelyne_backend/internal/middleware"
	"tymelyne_backend/internal/model"
	"tymelyne_backend/internal/service"
	"tymelyne_backend/internal/webutil"

	"github.com/go-playground/validator/v10"
)

type AuthHandler struct {
	service service.AuthService
	logger  *slog.Logger
}

func NewAuthHandler(s service.AuthService, logger *slog.Logger) *AuthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{
		service: s,
		logger:  logger,
	}
}

// Register は新規ユーザー登録のハンドラ
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "Register"))

	var req model.RegisterRequest
	if err := webutil.DecodeJSONBody(w, r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	if err := webutil.Validator.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			logger.Warn("Validation failed", slog.String("errors", validationErrors.Error()))
			msg, field := webutil.TranslateValidationError(err)
			appErr := model.NewAppError("VALIDATION_ERROR", msg, field, model.ErrInvalidInput)
			webutil.HandleError(w, logger, appErr)
		} else {
			logger.Error("Unexpected error during validation", slog.Any("error", err))
			webutil.HandleError(w, logger, err)
		}
		return
	}

	user, err := h.service.RegisterUser(r.Context(), &req)
	if err != nil {
		logger.Error("Error registering user in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("User registered successfully", slog.String("user_id", user.UserID.String()))
	webutil.RespondWithJSON(w, http.StatusCreated, user.ToResponse(), logger)
}

// Verify はメール内リンクからのアカウント有効化ハンドラ
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "Verify"))

	token := r.URL.Query().Get("token")
	if token == "" {
		logger.Warn("Verification token is missing")
		appErr := model.NewAppError("INVALID_TOKEN", "トークンが指定されていません。", "token", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	if err := h.service.VerifyAccount(r.Context(), token); err != nil {
		logger.Warn("Account verification failed", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Account verified successfully")
	webutil.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "アカウントを有効化しました。"}, logger)
}

// Login はログインのハンドラ
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "Login"))

	var req model.LoginRequest
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

	resp, err := h.service.Login(r.Context(), &req)
	if err != nil {
		logger.Warn("Login failed", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Login successful")
	webutil.RespondWithJSON(w, http.StatusOK, resp, logger)
}

// GetMe は認証済みユーザー自身の情報を返すハンドラ
func (h *AuthHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetMe"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}

	user, err := h.service.GetUser(r.Context(), userID)
	if err != nil {
		logger.Error("Error getting user in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, user.ToResponse(), logger)
}

// ForgotPassword はパスワードリセットメールの送信リクエストを受け付けるハンドラ
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "ForgotPassword"))

	var req model.ForgotPasswordRequest
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

	if err := h.service.RequestPasswordReset(r.Context(), req.Email); err != nil {
		logger.Error("Error requesting password reset in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	// ユーザーの存在有無を悟られないよう、常に同じレスポンスを返す
	webutil.RespondWithJSON(w, http.StatusOK, map[string]string{
		"message": "入力されたメールアドレス宛に再設定用のメールを送信しました。",
	}, logger)
}

// ResetPassword はトークンによるパスワード再設定のハンドラ
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "ResetPassword"))

	var req model.ResetPasswordRequest
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

	if err := h.service.ResetPassword(r.Context(), req.Token, req.Password); err != nil {
		logger.Warn("Password reset failed", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Password reset successfully")
	webutil.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "パスワードを再設定しました。"}, logger)
}
