// internal/middleware/logging.go
package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// logCtxKey はリクエストスコープのロガーをContextに格納するためのキー
type logCtxKey struct{}

// マスキング対象のヘッダー
var sensitiveHeaders = map[string]bool{
	"authorization": true,
	"cookie":        true,
	"set-cookie":    true,
}

// responseLogger はステータスコードとレスポンスサイズを記録するための http.ResponseWriter ラッパー
type responseLogger struct {
	http.ResponseWriter
	statusCode int
	size       int
}

func (rl *responseLogger) WriteHeader(code int) {
	rl.statusCode = code
	rl.ResponseWriter.WriteHeader(code)
}

func (rl *responseLogger) Write(b []byte) (int, error) {
	if rl.statusCode == 0 {
		rl.statusCode = http.StatusOK
	}
	size, err := rl.ResponseWriter.Write(b)
	rl.size += size
	return size, err
}

// LoggingMiddleware はリクエストごとに request_id 付きのロガーを生成し、
// Contextに格納した上でアクセスログを出力します
func LoggingMiddleware(baseLogger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			requestID := uuid.NewString()

			requestLogger := baseLogger.With(
				slog.String("request_id", requestID),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
			)

			ctx := context.WithValue(r.Context(), logCtxKey{}, requestLogger)

			requestLogger.Info("Request started",
				slog.String("remote_addr", r.RemoteAddr),
				slog.String("user_agent", r.UserAgent()),
				slog.Any("headers", formatHeaders(r.Header)),
			)

			rl := &responseLogger{ResponseWriter: w}
			next.ServeHTTP(rl, r.WithContext(ctx))

			requestLogger.Info("Request finished",
				slog.Int("status", rl.statusCode),
				slog.Int("size", rl.size),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

// GetLogger はContextからリクエストスコープのロガーを取得します。
// 見つからない場合（テストやバッチ処理など）はデフォルトロガーを返す。
func GetLogger(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(logCtxKey{}).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// WithLogger はロガーを格納した新しいContextを返します（バッチ・テスト用）
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, logCtxKey{}, logger)
}

func formatHeaders(headers http.Header) map[string]string {
	formatted := make(map[string]string, len(headers))
	for key, values := range headers {
		if sensitiveHeaders[strings.ToLower(key)] {
			formatted[key] = "[MASKED]"
			continue
		}
		formatted[key] = strings.Join(values, ", ")
	}
	return formatted
}
