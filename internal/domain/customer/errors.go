package customer

import "errors"

// Customer ドメインのエラー定義
var (
	ErrCustomerNotFound    = errors.New("顧客が見つかりません")
	ErrDisplayNameRequired = errors.New("顧客名は必須です")
)
