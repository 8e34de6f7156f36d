package app

import (
	"fmt"
	"time"

	"github.com/haierkeys/voice-note-service/pkg/util"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// 默认 Token 签发者
const DefaultTokenIssuer = "voice-note-service"

// DefaultTokenExpiry 默认 Token 有效期
const DefaultTokenExpiry = 60 * time.Minute

// TokenConfig 定义 Token 管理器的配置
type TokenConfig struct {
	SecretKey string        // JWT 签名密钥
	Expiry    time.Duration // Token 过期时间，默认 60 分钟
	Issuer    string        // Token 签发者
}

// TokenManager 定义 Token 管理接口
type TokenManager interface {
	Generate(uid int64, name, ip string) (string, error)
	Parse(token string) (*UserEntity, error)
	Validate(token string) error
	GetSecretKey() string
	Expiry() time.Duration
}

type tokenManager struct {
	config TokenConfig
}

// NewTokenManager 创建一个新的 TokenManager 实例
func NewTokenManager(cfg TokenConfig) TokenManager {
	if cfg.Expiry == 0 {
		cfg.Expiry = DefaultTokenExpiry
	}
	if cfg.Issuer == "" {
		cfg.Issuer = DefaultTokenIssuer
	}
	return &tokenManager{config: cfg}
}

// UserEntity JWT 中携带的用户信息
type UserEntity struct {
	UID  int64  `json:"uid"`
	Name string `json:"name"`
	IP   string `json:"ip"`
	jwt.RegisteredClaims
}

// signingKey 签名密钥按机器 ID 加盐，不同机器签发的 Token 互不通用
func signingKey(secret string) []byte {
	return []byte(secret + "_" + util.GetMachineID())
}

// Generate 生成一个新的 JWT Token
func (t *tokenManager) Generate(uid int64, name, ip string) (string, error) {
	now := time.Now()
	claims := &UserEntity{
		UID:  uid,
		Name: name,
		IP:   ip,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(t.config.Expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    t.config.Issuer,
			Subject:   "user-token",
			ID:        fmt.Sprintf("%d", uid),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(signingKey(t.config.SecretKey))
}

// Parse 解析 JWT Token 并返回用户信息
func (t *tokenManager) Parse(token string) (*UserEntity, error) {
	return ParseTokenWithKey(token, t.config.SecretKey)
}

// Validate 验证 Token 是否有效
func (t *tokenManager) Validate(token string) error {
	_, err := t.Parse(token)
	return err
}

func (t *tokenManager) GetSecretKey() string {
	return t.config.SecretKey
}

func (t *tokenManager) Expiry() time.Duration {
	return t.config.Expiry
}

// ParseTokenWithKey 使用指定密钥解析 Token
func ParseTokenWithKey(tokenString string, secretKey string) (*UserEntity, error) {
	claims := &UserEntity{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return signingKey(secretKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.UID <= 0 {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}

// GetUID 从请求上下文中取出用户 ID
func GetUID(ctx *gin.Context) (out int64) {
	if user, exist := ctx.Get("user_token"); exist {
		if userEntity, ok := user.(*UserEntity); ok {
			out = userEntity.UID
		}
	}
	return
}

// GetUserEntity 从请求上下文中取出 Token 信息
func GetUserEntity(ctx *gin.Context) *UserEntity {
	if user, exist := ctx.Get("user_token"); exist {
		if userEntity, ok := user.(*UserEntity); ok {
			return userEntity
		}
	}
	return nil
}
