package identity

import "context"

// Role はアクターの役割を表す
type Role string

const (
	RoleOwner    Role = "owner"
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// IsValid はロール値が定義済みかを返す
func (r Role) IsValid() bool {
	switch r {
	case RoleOwner, RoleCustomer, RoleAdmin:
		return true
	}
	return false
}

// User は認証済みのアクターを表す
type User struct {
	ID   string
	Name string
	Role Role
}

// CanManageBookings は予約の作成・状態変更・横断的な一覧取得が許可されるかを返す
// 予約管理はレストランオーナーの権限
func (u *User) CanManageBookings() bool {
	return u.Role == RoleOwner
}

// Resolver は不透明なトークンをユーザーに解決するインターフェース
// トークンの発行は外部のIDプロバイダに委譲されており、この層では検証のみを行う
type Resolver interface {
	Resolve(ctx context.Context, token string) (*User, error)
}
