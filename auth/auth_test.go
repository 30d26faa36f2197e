package auth

import (
	"testing"

	"github.com/shopora/shopora-api/models"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "correct horse battery staple" {
		t.Fatal("password stored in plaintext")
	}

	if err := CheckPassword(hash, "correct horse battery staple"); err != nil {
		t.Errorf("expected matching password to verify: %v", err)
	}
	if err := CheckPassword(hash, "wrong password"); err == nil {
		t.Error("expected mismatch to fail")
	}
}

func TestIssueAndParseTokenPair(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	user := &models.User{Email: "buyer@example.com", Role: models.RoleBuyer}
	user.ID = "user-1"

	pair, err := IssueTokenPair(user)
	if err != nil {
		t.Fatalf("IssueTokenPair: %v", err)
	}

	claims, err := ParseToken(pair.Access, "access")
	if err != nil {
		t.Fatalf("ParseToken(access): %v", err)
	}
	if claims.UserID != "user-1" {
		t.Errorf("expected user-1, got %s", claims.UserID)
	}
	if claims.Role != models.RoleBuyer {
		t.Errorf("expected buyer role, got %s", claims.Role)
	}

	refresh, err := ParseToken(pair.Refresh, "refresh")
	if err != nil {
		t.Fatalf("ParseToken(refresh): %v", err)
	}
	if refresh.JTI == "" {
		t.Error("expected a jti on the refresh token")
	}
}

func TestParseToken_RejectsWrongType(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	user := &models.User{Email: "buyer@example.com", Role: models.RoleBuyer}
	user.ID = "user-1"

	pair, err := IssueTokenPair(user)
	if err != nil {
		t.Fatalf("IssueTokenPair: %v", err)
	}

	if _, err := ParseToken(pair.Refresh, "access"); err == nil {
		t.Error("refresh token must not pass as an access token")
	}
	if _, err := ParseToken(pair.Access, "refresh"); err == nil {
		t.Error("access token must not pass as a refresh token")
	}
}

func TestParseToken_RejectsTampering(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	user := &models.User{Email: "buyer@example.com", Role: models.RoleBuyer}
	user.ID = "user-1"

	pair, err := IssueTokenPair(user)
	if err != nil {
		t.Fatalf("IssueTokenPair: %v", err)
	}

	t.Setenv("JWT_SECRET", "different-secret")
	if _, err := ParseToken(pair.Access, "access"); err == nil {
		t.Error("expected signature verification to fail under a different secret")
	}
}
