package handler

import (
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

// bearerToken は Authorization ヘッダーからBearerトークンを取り出す
// 認可判定はアプリケーション層が行うため、ここでは空文字をそのまま渡す
func bearerToken(c echo.Context) string {
	auth := c.Request().Header.Get(echo.HeaderAuthorization)
	const prefix = "Bearer "
	if !strings.HasPrefix(auth, prefix) {
		return ""
	}
	return strings.TrimPrefix(auth, prefix)
}

// pagination は limit / offset クエリパラメータを読み取る
func pagination(c echo.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.QueryParam("limit"))
	offset, _ = strconv.Atoi(c.QueryParam("offset"))
	return limit, offset
}
