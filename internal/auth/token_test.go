package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "unit-test-secret"

func TestGenerateAndParseRoundTrip(t *testing.T) {
	token, err := GenerateToken("user-1", "user", testSecret, 24)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if token == "" {
		t.Fatal("empty token")
	}

	claims, err := ParseToken(token, testSecret)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Errorf("UserID = %q; want user-1", claims.UserID)
	}
	if claims.Role != "user" {
		t.Errorf("Role = %q; want user", claims.Role)
	}
	if claims.Subject != "user-1" {
		t.Errorf("Subject = %q; want user-1", claims.Subject)
	}
	if !claims.ExpiresAt.After(time.Now()) {
		t.Error("token already expired")
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken("user-1", "admin", testSecret, 24)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := ParseToken(token, "other-secret")
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("err = %v; want ErrInvalidToken", err)
	}
	if claims != nil {
		t.Errorf("claims = %+v; want nil", claims)
	}
}

func TestParseToken_Garbage(t *testing.T) {
	for _, tok := range []string{"", "not-a-jwt", "a.b.c"} {
		if _, err := ParseToken(tok, testSecret); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("ParseToken(%q) err = %v; want ErrInvalidToken", tok, err)
		}
	}
}

func TestParseToken_Expired(t *testing.T) {
	claims := Claims{
		UserID: "user-1",
		Role:   "user",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			NotBefore: jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := ParseToken(raw, testSecret); !errors.Is(err, ErrExpiredToken) {
		t.Errorf("err = %v; want ErrExpiredToken", err)
	}
}

func TestParseToken_RejectsNoneAlgorithm(t *testing.T) {
	claims := Claims{
		UserID: "user-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := ParseToken(raw, testSecret); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("err = %v; want ErrInvalidToken", err)
	}
}
