package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/bytetechedu/bytetech/internal/api"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(exp)}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := tok.SignedString([]byte("test-key"))
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestLoginAndLogout(t *testing.T) {
	s := New(nil)
	if s.LoggedIn() {
		t.Fatal("fresh session should be logged out")
	}

	user := &api.User{ID: 1, Name: "Ada", Email: "ada@example.com"}
	if err := s.Login(user, "tok"); err != nil {
		t.Fatal(err)
	}

	if !s.LoggedIn() {
		t.Fatal("session should be logged in")
	}
	if s.Token() != "tok" {
		t.Fatalf("Token = %q", s.Token())
	}
	if s.Username() != "Ada" {
		t.Fatalf("Username = %q", s.Username())
	}
	if s.IsSensei() {
		t.Fatal("plain user should not be a sensei")
	}

	if err := s.Logout(); err != nil {
		t.Fatal(err)
	}
	if s.LoggedIn() || s.Token() != "" || s.Username() != "" {
		t.Fatal("logout should clear everything")
	}
}

func TestIsSensei(t *testing.T) {
	s := New(nil)
	_ = s.Login(&api.User{ID: 2, Name: "Bo", IsSensei: true}, "tok")
	if !s.IsSensei() {
		t.Fatal("sensei flag should carry through")
	}
}

func TestTokenExpiry(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	got := tokenExpiry(signedToken(t, exp))
	if !got.Equal(exp) {
		t.Fatalf("expiry = %v, want %v", got, exp)
	}

	if !tokenExpiry("").IsZero() {
		t.Fatal("empty token should have zero expiry")
	}
	if !tokenExpiry("not-a-jwt").IsZero() {
		t.Fatal("garbage token should have zero expiry")
	}
}

func TestNeedsRefresh(t *testing.T) {
	s := New(nil)

	// no token: nothing to refresh
	if s.NeedsRefresh(time.Hour) {
		t.Fatal("empty session never needs refresh")
	}

	// opaque token without exp claim: never refresh
	_ = s.Login(&api.User{ID: 1, Name: "Ada"}, "opaque")
	if s.NeedsRefresh(time.Hour) {
		t.Fatal("token without expiry never needs refresh")
	}

	// expiry an hour out: fine with a small margin, stale with a big one
	_ = s.Login(&api.User{ID: 1, Name: "Ada"}, signedToken(t, time.Now().Add(time.Hour)))
	if s.NeedsRefresh(time.Minute) {
		t.Fatal("token with an hour left should not need refresh yet")
	}
	if !s.NeedsRefresh(2 * time.Hour) {
		t.Fatal("token inside the margin should need refresh")
	}
}

func TestSetTokenKeepsUser(t *testing.T) {
	s := New(nil)
	_ = s.Login(&api.User{ID: 1, Name: "Ada"}, "old")

	if err := s.SetToken("new"); err != nil {
		t.Fatal(err)
	}
	if s.Token() != "new" {
		t.Fatalf("Token = %q", s.Token())
	}
	if s.Username() != "Ada" {
		t.Fatal("refresh must keep the user")
	}
}
