package auth

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ari1008/vegnbio-reservation/internal/domain/identity"
)

// JWTResolver はHS256署名のJWTをユーザーに解決する
// トークンの発行は外部のIDプロバイダが行い、この層では検証のみを担う
type JWTResolver struct {
	secret []byte
}

// NewJWTResolver は新しいJWTResolverを作成する
func NewJWTResolver(secret string) *JWTResolver {
	return &JWTResolver{secret: []byte(secret)}
}

var _ identity.Resolver = (*JWTResolver)(nil)

// Resolve はトークンを検証し、クレームからユーザーを復元する
// 期待するクレーム: sub（ユーザーID）、name、role
func (r *JWTResolver) Resolve(ctx context.Context, token string) (*identity.User, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("予期しない署名方式です: %v", t.Header["alg"])
		}
		return r.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", identity.ErrUnauthorized, err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, identity.ErrUnauthorized
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, identity.ErrUnauthorized
	}
	name, _ := claims["name"].(string)
	roleClaim, _ := claims["role"].(string)

	role := identity.Role(roleClaim)
	if !role.IsValid() {
		return nil, fmt.Errorf("%w: %s", identity.ErrUnknownRole, roleClaim)
	}

	return &identity.User{ID: sub, Name: name, Role: role}, nil
}
