// internal/middleware/auth.go
package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"tymelyne_backend/internal/config"
	"tymelyne_backend/internal/model"
	"tymelyne_backend/internal/webutil"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// JWTAuthMiddleware はAuthorizationヘッダーのBearerトークンを検証し、
// ユーザーIDをContextに格納するミドルウェアです
func JWTAuthMiddleware(cfg *config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := GetLogger(r.Context())

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Warn("Authorization header is missing")
				webutil.RespondWithError(w, http.StatusUnauthorized, "UNAUTHORIZED", "認証トークンが必要です", logger)
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				logger.Warn("Authorization header format is invalid")
				webutil.RespondWithError(w, http.StatusUnauthorized, "UNAUTHORIZED", "認証トークンの形式が不正です", logger)
				return
			}
			tokenString := parts[1]

			claims := &model.JWTCustomClaims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
				}
				return []byte(cfg.JWT.SecretKey), nil
			})

			if err != nil {
				if errors.Is(err, jwt.ErrTokenExpired) {
					logger.Info("Token has expired")
					webutil.RespondWithError(w, http.StatusUnauthorized, "TOKEN_EXPIRED", "トークンの有効期限が切れています", logger)
					return
				}
				logger.Warn("Failed to parse token", "error", err)
				webutil.RespondWithError(w, http.StatusUnauthorized, "UNAUTHORIZED", "認証トークンが無効です", logger)
				return
			}

			if !token.Valid {
				logger.Warn("Token is invalid")
				webutil.RespondWithError(w, http.StatusUnauthorized, "UNAUTHORIZED", "認証トークンが無効です", logger)
				return
			}

			userID, err := uuid.Parse(claims.Subject)
			if err != nil {
				logger.Error("Subject claim is not a valid UUID", "subject", claims.Subject)
				webutil.RespondWithError(w, http.StatusUnauthorized, "UNAUTHORIZED", "認証トークンが無効です", logger)
				return
			}

			ctx := context.WithValue(r.Context(), model.UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserIDFromContext はContextから認証済みユーザーのIDを取得します
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, error) {
	userID, ok := ctx.Value(model.UserIDKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, errors.New("user ID not found in context")
	}
	return userID, nil
}
