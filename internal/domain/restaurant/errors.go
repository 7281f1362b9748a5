package restaurant

import "errors"

// Restaurant ドメインのエラー定義
var (
	ErrRestaurantNotFound   = errors.New("レストランが見つかりません")
	ErrMeetingRoomNotFound  = errors.New("会議室が見つかりません")
	ErrNameRequired         = errors.New("レストラン名は必須です")
	ErrRoomNameRequired     = errors.New("会議室名は必須です")
	ErrDuplicateRoomName    = errors.New("同名の会議室が既に存在します")
	ErrInvalidCapacity      = errors.New("収容人数は1以上である必要があります")
	ErrInvalidOpeningHours  = errors.New("営業時間の指定が不正です")
	ErrRestaurantClosed     = errors.New("指定された曜日は定休日です")
	ErrOutsideOpeningHours  = errors.New("営業時間外です")
	ErrInsufficientCapacity = errors.New("収容人数を超えています")
	ErrRoomNotReservable    = errors.New("この会議室は予約を受け付けていません")
	ErrMeetingRoomInUse     = errors.New("予約が存在する会議室は削除できません")
	ErrInvalidPartySize     = errors.New("人数は1以上である必要があります")
)
