package review

import "errors"

// Review ドメインのエラー定義
var (
	ErrReviewNotFound       = errors.New("レビューが見つかりません")
	ErrCustomerIDRequired   = errors.New("顧客IDは必須です")
	ErrRestaurantIDRequired = errors.New("レストランIDは必須です")
	ErrInvalidRating        = errors.New("評価は1から5の範囲で指定してください")
	ErrInvalidModeration    = errors.New("不正なモデレーション遷移です")
)
