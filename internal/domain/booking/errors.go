package booking

import "errors"

// 予約共通のエラー定義
// Reservation と EventRequest の両方がこの状態遷移と競合判定を共有する
var (
	ErrUnknownStatus           = errors.New("不明なステータスです")
	ErrInvalidStatusTransition = errors.New("不正なステータス遷移です")
	ErrSchedulingConflict      = errors.New("指定時間帯は既に予約されています")
	ErrWindowRequired          = errors.New("開始時刻と終了時刻は必須です")
	ErrInvalidWindow           = errors.New("終了時刻は開始時刻より後である必要があります")
)
