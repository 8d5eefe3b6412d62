// internal/webutil/request.go
package webutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// MalformedRequestError はリクエストボディのデコード失敗を表します
type MalformedRequestError struct {
	StatusCode int
	Message    string
}

func (e *MalformedRequestError) Error() string {
	return e.Message
}

// DecodeJSONBody はリクエストボディをJSONとしてデコードします。
// 未知のフィールドやサイズ超過は MalformedRequestError として返す。
func DecodeJSONBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	contentType := r.Header.Get("Content-Type")
	if contentType != "" && !strings.HasPrefix(contentType, "application/json") {
		return &MalformedRequestError{
			StatusCode: http.StatusUnsupportedMediaType,
			Message:    "Content-Type は application/json である必要があります",
		}
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1048576) // 1MB

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError
		var maxBytesError *http.MaxBytesError

		switch {
		case errors.As(err, &syntaxError):
			return &MalformedRequestError{
				StatusCode: http.StatusBadRequest,
				Message:    fmt.Sprintf("リクエストボディのJSONが不正です (位置 %d)", syntaxError.Offset),
			}
		case errors.Is(err, io.ErrUnexpectedEOF):
			return &MalformedRequestError{
				StatusCode: http.StatusBadRequest,
				Message:    "リクエストボディのJSONが不正です",
			}
		case errors.As(err, &unmarshalTypeError):
			return &MalformedRequestError{
				StatusCode: http.StatusBadRequest,
				Message:    fmt.Sprintf("フィールド %q の型が不正です", unmarshalTypeError.Field),
			}
		case strings.HasPrefix(err.Error(), "json: unknown field "):
			fieldName := strings.TrimPrefix(err.Error(), "json: unknown field ")
			return &MalformedRequestError{
				StatusCode: http.StatusBadRequest,
				Message:    fmt.Sprintf("未知のフィールドが含まれています: %s", fieldName),
			}
		case errors.Is(err, io.EOF):
			return &MalformedRequestError{
				StatusCode: http.StatusBadRequest,
				Message:    "リクエストボディが空です",
			}
		case errors.As(err, &maxBytesError):
			return &MalformedRequestError{
				StatusCode: http.StatusRequestEntityTooLarge,
				Message:    "リクエストボディが大きすぎます",
			}
		default:
			return err
		}
	}

	// ボディに複数のJSONオブジェクトが含まれていないか確認
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return &MalformedRequestError{
			StatusCode: http.StatusBadRequest,
			Message:    "リクエストボディには単一のJSONオブジェクトのみ指定できます",
		}
	}

	return nil
}
