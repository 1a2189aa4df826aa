package auth

import (
	"strings"
	"testing"
	"time"
)

func newTestManager() *Manager {
	return &Manager{
		Secret:     []byte("test-secret"),
		AccessTTL:  5 * time.Minute,
		RefreshTTL: time.Hour,
		Issuer:     "wheelsweb",
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	m := newTestManager()
	token, err := m.NewAccessToken("42", "ramesh", "employee")
	if err != nil {
		t.Fatalf("NewAccessToken error: %v", err)
	}

	claims, err := m.Parse(token)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if claims.UserID != "42" || claims.Username != "ramesh" || claims.Role != "employee" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.Issuer != "wheelsweb" {
		t.Fatalf("unexpected issuer: %s", claims.Issuer)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	m := newTestManager()
	token, err := m.NewAccessToken("1", "admin", "admin")
	if err != nil {
		t.Fatalf("NewAccessToken error: %v", err)
	}

	other := &Manager{Secret: []byte("other-secret")}
	if _, err := other.Parse(token); err == nil {
		t.Fatal("expected parse to fail with a different secret")
	}
}

func TestParseRejectsExpired(t *testing.T) {
	m := newTestManager()
	m.AccessTTL = -time.Minute
	token, err := m.NewAccessToken("1", "admin", "admin")
	if err != nil {
		t.Fatalf("NewAccessToken error: %v", err)
	}
	if _, err := m.Parse(token); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if err := ComparePassword(hash, "s3cret"); err != nil {
		t.Fatalf("ComparePassword error: %v", err)
	}
	if err := ComparePassword(hash, "wrong"); err == nil {
		t.Fatal("expected mismatch error")
	}
	if _, err := HashPassword(""); err == nil {
		t.Fatal("expected empty password to be rejected")
	}
	if _, err := HashPassword(strings.Repeat("a", 73)); err == nil {
		t.Fatal("expected over-length password to be rejected")
	}
}
