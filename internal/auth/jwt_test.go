package auth_test

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/volunteerhub/api/internal/auth"
)

func TestGenerateVerifyRoundTrip(t *testing.T) {
	m := auth.NewManager("test-secret", 24*time.Hour)

	token, err := m.Generate("user-123", "alice@example.com")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	claims, err := m.Verify(token)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}

	if claims.UserID != "user-123" {
		t.Fatalf("user id mismatch: got %q", claims.UserID)
	}

	if claims.Email != "alice@example.com" {
		t.Fatalf("email mismatch: got %q", claims.Email)
	}

	if claims.JTI == "" {
		t.Fatal("expected a jti claim")
	}

	wantExp := time.Now().UTC().Add(24 * time.Hour)
	gotExp := claims.ExpiresAt.Time

	if gotExp.Before(wantExp.Add(-time.Minute)) || gotExp.After(wantExp.Add(time.Minute)) {
		t.Fatalf("expiry not ~24h out: %v", gotExp)
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	m := auth.NewManager("test-secret", time.Hour)

	now := time.Now().UTC()
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, auth.Claims{
		UserID: "user-123",
		Email:  "alice@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
			Subject:   "user-123",
		},
	})

	token, err := expired.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}

	_, err = m.Verify(token)
	if !errors.Is(err, auth.ErrInvalidToken) {
		t.Fatalf("want ErrInvalidToken, got %v", err)
	}
}

func TestVerifyRejectsMissingSubject(t *testing.T) {
	m := auth.NewManager("test-secret", time.Hour)

	now := time.Now().UTC()
	anon := jwt.NewWithClaims(jwt.SigningMethodHS256, auth.Claims{
		Email: "alice@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	})

	token, err := anon.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}

	_, err = m.Verify(token)
	if !errors.Is(err, auth.ErrInvalidToken) {
		t.Fatalf("want ErrInvalidToken, got %v", err)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	issuer := auth.NewManager("secret-a", time.Hour)
	verifier := auth.NewManager("secret-b", time.Hour)

	token, err := issuer.Generate("user-123", "alice@example.com")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	_, err = verifier.Verify(token)
	if !errors.Is(err, auth.ErrInvalidToken) {
		t.Fatalf("want ErrInvalidToken, got %v", err)
	}
}

func TestVerifyRejectsEmptyToken(t *testing.T) {
	m := auth.NewManager("test-secret", time.Hour)

	_, err := m.Verify("")
	if !errors.Is(err, auth.ErrMissingToken) {
		t.Fatalf("want ErrMissingToken, got %v", err)
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	m := auth.NewManager("test-secret", time.Hour)

	_, err := m.Verify("not.a.jwt")
	if !errors.Is(err, auth.ErrInvalidToken) {
		t.Fatalf("want ErrInvalidToken, got %v", err)
	}
}
