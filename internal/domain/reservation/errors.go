package reservation

import "errors"

// Reservation ドメインのエラー定義
var (
	ErrReservationNotFound     = errors.New("予約が見つかりません")
	ErrCustomerIDRequired      = errors.New("顧客IDは必須です")
	ErrRestaurantIDRequired    = errors.New("レストランIDは必須です")
	ErrMeetingRoomIDRequired   = errors.New("会議室予約には会議室IDが必須です")
	ErrUnexpectedMeetingRoomID = errors.New("貸切予約に会議室IDは指定できません")
	ErrInvalidType             = errors.New("不明な予約種別です")
	ErrInvalidPartySize        = errors.New("人数は1以上である必要があります")
)
