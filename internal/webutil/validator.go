// internal/webutil/validator.go
package webutil

import (
	"errors"

	ja_locale "github.com/go-playground/locales/ja"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	ja_translations "github.com/go-playground/validator/v10/translations/ja"
)

var (
	// Validator はアプリケーション全体で共有するバリデータです
	Validator *validator.Validate
	trans     ut.Translator
)

// フィールド名の日本語訳。エラーメッセージの可読性のために持つ
var fieldNameTranslations = map[string]string{
	"Username":    "ユーザー名",
	"Email":       "メールアドレス",
	"Password":    "パスワード",
	"DisplayName": "表示名",
	"Title":       "タイトル",
	"Description": "説明",
	"Difficulty":  "難易度",
	"Amount":      "獲得XP",
	"Status":      "ステータス",
	"Count":       "生成数",
	"Token":       "トークン",
	"ActivityID":  "アクティビティID",
	"TimeSpent":   "学習時間",
	"Score":       "スコア",
}

func init() {
	jaLocale := ja_locale.New()
	uni := ut.New(jaLocale, jaLocale)

	var found bool
	trans, found = uni.GetTranslator("ja")
	if !found {
		panic("ja translator not found")
	}

	Validator = validator.New()
	if err := ja_translations.RegisterDefaultTranslations(Validator, trans); err != nil {
		panic(err)
	}
}

// TranslateValidationError はバリデーションエラーの先頭1件を
// 日本語メッセージと対象フィールド名に変換します
func TranslateValidationError(err error) (message string, field string) {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return "入力内容に誤りがあります", ""
	}

	fe := validationErrors[0]
	message = fe.Translate(trans)
	field = fe.Field()

	if jaName, ok := fieldNameTranslations[fe.Field()]; ok {
		// "Email" → "メールアドレス" のように訳語で置き換える
		message = jaName + "は" + trimFieldPrefix(message, fe.Field())
	}
	return message, field
}

func trimFieldPrefix(message, field string) string {
	prefix := field + "は"
	if len(message) >= len(prefix) && message[:len(prefix)] == prefix {
		return message[len(prefix):]
	}
	return message
}
