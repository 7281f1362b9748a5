package identity

import "errors"

// Identity ドメインのエラー定義
var (
	ErrUnauthorized = errors.New("認証情報が無効です")
	ErrForbidden    = errors.New("この操作にはレストランオーナー権限が必要です")
	ErrUnknownRole  = errors.New("不明なロールです")
)
