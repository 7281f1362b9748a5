package menu

import "errors"

// Menu ドメインのエラー定義
var (
	ErrDishNotFound         = errors.New("料理が見つかりません")
	ErrRestaurantIDRequired = errors.New("レストランIDは必須です")
	ErrNameRequired         = errors.New("料理名は必須です")
	ErrInvalidPrice         = errors.New("価格は0以上である必要があります")
)
