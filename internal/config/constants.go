// internal/config/constants.go
package config

import "time"

// アプリケーション情報
const (
	AppName    = "Tymelyne"
	AppVersion = "1.0.0"
)

// デフォルト設定値
const (
	DefaultServerPort     = ":8080"
	DefaultLogLevel       = "info"
	DefaultTaskLimit      = 5
	DefaultAccessTokenTTL = 24 * time.Hour
)
