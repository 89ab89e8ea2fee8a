package util

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// 身份认证由外部登录服务签发 Token，本服务只做校验并取出 owner 标识。

var jwtSecret []byte

// InitJWT 设置 JWT 签名密钥（进程启动时调用一次）。
func InitJWT(secret string) {
	jwtSecret = []byte(secret)
}

// Claims 业务自定义声明
type Claims struct {
	UserUUID string `json:"user_uuid"`
	jwt.RegisteredClaims
}

var (
	// ErrTokenInvalid Token 无效
	ErrTokenInvalid = errors.New("token invalid")
	// ErrTokenExpired Token 已过期
	ErrTokenExpired = errors.New("token expired")
)

// GenerateToken 签发 Token（测试和本地调试用；生产由登录服务签发）。
func GenerateToken(userUUID string, expire time.Duration) (string, error) {
	claims := Claims{
		UserUUID: userUUID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expire)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

// ParseToken 解析并校验 Token，返回自定义声明。
func ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return jwtSecret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserUUID == "" {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
