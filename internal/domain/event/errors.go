package event

import "errors"

// EventRequest ドメインのエラー定義
var (
	ErrEventRequestNotFound = errors.New("イベントリクエストが見つかりません")
	ErrCustomerIDRequired   = errors.New("顧客IDは必須です")
	ErrRestaurantIDRequired = errors.New("レストランIDは必須です")
	ErrTitleRequired        = errors.New("イベント名は必須です")
	ErrInvalidEventType     = errors.New("不明なイベント種別です")
	ErrInvalidPartySize     = errors.New("人数は1以上である必要があります")
)
