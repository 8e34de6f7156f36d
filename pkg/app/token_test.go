package app

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func TestTokenManager_GenerateAndParse(t *testing.T) {
	cfg := TokenConfig{
		SecretKey: "user-secret",
		Expiry:    time.Hour,
		Issuer:    "user-issuer",
	}
	tm := NewTokenManager(cfg)

	token, err := tm.Generate(1001, "asha", "127.0.0.1")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	claims, err := tm.Parse(token)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if claims.UID != 1001 {
		t.Errorf("Expected UID 1001, got %d", claims.UID)
	}
	if claims.Name != "asha" {
		t.Errorf("Expected name asha, got %s", claims.Name)
	}
	if claims.Issuer != "user-issuer" {
		t.Errorf("Expected issuer user-issuer, got %s", claims.Issuer)
	}

	expectedExp := time.Now().Add(cfg.Expiry).Unix()
	if got := claims.ExpiresAt.Unix(); got < expectedExp-2 || got > expectedExp+2 {
		t.Errorf("Expected ExpiresAt around %d, got %d", expectedExp, got)
	}

	// 错误密钥
	other := NewTokenManager(TokenConfig{SecretKey: "wrong-secret"})
	if _, err := other.Parse(token); err == nil {
		t.Error("Expected error when parsing with wrong secret key")
	}

	// 篡改
	if err := tm.Validate(token + "tampered"); err == nil {
		t.Error("Expected error for tampered token")
	}
}

func TestTokenManager_DefaultExpiry(t *testing.T) {
	tm := NewTokenManager(TokenConfig{SecretKey: "k"})
	if tm.Expiry() != DefaultTokenExpiry {
		t.Errorf("Expected default expiry %v, got %v", DefaultTokenExpiry, tm.Expiry())
	}
}

func TestTokenManager_Expired(t *testing.T) {
	claims := &UserEntity{
		UID: 7,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(signingKey("k"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := ParseTokenWithKey(token, "k"); err == nil {
		t.Error("Expected error for expired token")
	}
}

func TestTokenManager_RejectsOtherAlgorithms(t *testing.T) {
	claims := &UserEntity{UID: 7}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := ParseTokenWithKey(token, "k"); err == nil {
		t.Error("Expected error for unsigned token")
	}

	// 同一密钥的其他 HMAC 算法也不接受
	for _, method := range []jwt.SigningMethod{jwt.SigningMethodHS384, jwt.SigningMethodHS512} {
		token, err := jwt.NewWithClaims(method, &UserEntity{UID: 7}).SignedString(signingKey("k"))
		if err != nil {
			t.Fatalf("sign %s: %v", method.Alg(), err)
		}
		if _, err := ParseTokenWithKey(token, "k"); err == nil {
			t.Errorf("Expected error for %s token", method.Alg())
		}
	}

	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, &UserEntity{UID: 7}).SignedString(signingKey("k"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := ParseTokenWithKey(token, "k"); err != nil {
		t.Errorf("Expected HS256 token to parse, got %v", err)
	}
}

func TestGetUID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	if GetUID(c) != 0 {
		t.Error("Expected 0 without token")
	}
	c.Set("user_token", &UserEntity{UID: 42})
	if GetUID(c) != 42 {
		t.Errorf("Expected 42, got %d", GetUID(c))
	}
}
