package application

import (
	"context"
	"fmt"

	"github.com/ari1008/vegnbio-reservation/internal/domain/identity"
)

// requireOwner はトークンを解決し、レストランオーナー権限を要求する
// 予約の作成・状態変更・横断的な一覧取得は全てこのチェックを通る
func requireOwner(ctx context.Context, resolver identity.Resolver, token string) (*identity.User, error) {
	if token == "" {
		return nil, identity.ErrUnauthorized
	}
	user, err := resolver.Resolve(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", identity.ErrUnauthorized, err)
	}
	if !user.CanManageBookings() {
		return nil, identity.ErrForbidden
	}
	return user, nil
}
