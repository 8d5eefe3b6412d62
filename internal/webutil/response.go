// internal/webutil/response.go
package webutil

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"tymelyne_backend/internal/model"
)

// RespondWithJSON は指定されたステータスコードとペイロードでJSONレスポンスを返します
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)

	if payload == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		// ヘッダー送信済みのため、ここではログのみ
		logger.Error("Failed to encode JSON response", "error", err)
	}
}

// RespondWithError はエラーコード・メッセージを標準のエラー形式で返します
func RespondWithError(w http.ResponseWriter, statusCode int, code, message string, logger *slog.Logger) {
	resp := model.APIErrorResponse{
		Error: model.ErrorDetail{
			Code:    code,
			Message: message,
		},
	}
	RespondWithJSON(w, statusCode, resp, logger)
}

// HandleError はサービス層から返されたエラーをHTTPレスポンスに変換します。
// AppError の場合はその詳細を、センチネルエラーの場合は対応するステータスを返す。
func HandleError(w http.ResponseWriter, logger *slog.Logger, err error) {
	statusCode := MapErrorToStatusCode(err)

	var appErr *model.AppError
	if errors.As(err, &appErr) {
		if statusCode >= http.StatusInternalServerError {
			logger.Error("Internal server error", "error", err)
		}
		resp := model.APIErrorResponse{Error: appErr.Detail}
		RespondWithJSON(w, statusCode, resp, logger)
		return
	}

	// AppError でない場合はセンチネルに応じた汎用メッセージを返す
	var code, message string
	switch {
	case errors.Is(err, model.ErrNotFound):
		code, message = "NOT_FOUND", "リソースが見つかりません"
	case errors.Is(err, model.ErrInvalidInput):
		code, message = "INVALID_INPUT", "入力内容に誤りがあります"
	case errors.Is(err, model.ErrForbidden):
		code, message = "FORBIDDEN", "この操作を行う権限がありません"
	case errors.Is(err, model.ErrConflict):
		code, message = "CONFLICT", "リソースが競合しています"
	default:
		logger.Error("Internal server error", "error", err)
		code, message = "INTERNAL_SERVER_ERROR", "サーバー内部でエラーが発生しました"
	}

	RespondWithError(w, statusCode, code, message, logger)
}

// MapErrorToStatusCode はエラーをHTTPステータスコードにマッピングします
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, model.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// NewValidationErrorResponse はバリデーションエラー用のレスポンスを生成します
func NewValidationErrorResponse(message, field string) model.APIErrorResponse {
	return model.APIErrorResponse{
		Error: model.ErrorDetail{
			Code:    "VALIDATION_ERROR",
			Message: message,
			Field:   field,
		},
	}
}
