package app

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/form3tech-oss/jwt-go"
)

func TestSeatTokenRoundTrip(t *testing.T) {
	svc := NewSeatTokenService("test-secret", "issuer", time.Minute)
	token, err := svc.Issue("match-1", "user-1", 3)
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}

	claims, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("verify error: %v", err)
	}
	want := SeatClaims{MatchID: "match-1", UserID: "user-1", Seat: 3}
	if claims != want {
		t.Fatalf("claims = %+v, want %+v", claims, want)
	}
}

func TestSeatTokenClaims(t *testing.T) {
	svc := NewSeatTokenService("test-secret", "", 0)
	tokenString, err := svc.Issue("match-1", "user-1", 0)
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}

	token, err := jwt.Parse(tokenString, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
		t.Fatalf("alg = %s, want HS256", token.Method.Alg())
	}
	claims := token.Claims.(jwt.MapClaims)
	if got := claims["iss"]; got != DefaultSeatTokenIssuer {
		t.Fatalf("iss = %v, want %s", got, DefaultSeatTokenIssuer)
	}
	if got := claims["sub"]; got != "user-1" {
		t.Fatalf("sub = %v, want user-1", got)
	}
	if _, ok := claims["jti"].(string); !ok {
		t.Fatal("jti claim missing")
	}
	exp := int64(claims["exp"].(float64))
	if ttl := time.Until(time.Unix(exp, 0)); ttl <= 0 || ttl > DefaultSeatTokenTTL {
		t.Fatalf("exp in %v, want within %v", ttl, DefaultSeatTokenTTL)
	}
}

func TestSeatTokenRejections(t *testing.T) {
	good := NewSeatTokenService("test-secret", "issuer", time.Minute)
	token, err := good.Issue("match-1", "user-1", 2)
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}
	other, err := good.Issue("match-1", "user-1", 4)
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}
	expired, err := NewSeatTokenService("test-secret", "issuer", -time.Minute).Issue("match-1", "user-1", 2)
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}

	tests := []struct {
		name  string
		svc   *SeatTokenService
		token string
	}{
		{"wrong secret", NewSeatTokenService("other", "issuer", time.Minute), token},
		{"wrong issuer", NewSeatTokenService("test-secret", "someone-else", time.Minute), token},
		{"expired", good, expired},
		{"tampered", good, swapPayload(token, other)},
		{"garbage", good, "not-a-token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.svc.Verify(tt.token); !errors.Is(err, ErrSeatTokenInvalid) {
				t.Fatalf("verify error = %v, want %v", err, ErrSeatTokenInvalid)
			}
		})
	}
}

// swapPayload keeps the signature of signed but carries the claims of from.
func swapPayload(signed, from string) string {
	a := strings.Split(signed, ".")
	b := strings.Split(from, ".")
	return a[0] + "." + b[1] + "." + a[2]
}

func TestSeatTokenRequiresSecret(t *testing.T) {
	svc := NewSeatTokenService("", "issuer", time.Minute)
	if _, err := svc.Issue("match-1", "user-1", 0); !errors.Is(err, ErrSeatTokenConfig) {
		t.Fatalf("issue error = %v, want %v", err, ErrSeatTokenConfig)
	}
	var nilSvc *SeatTokenService
	if _, err := nilSvc.Verify("x"); !errors.Is(err, ErrSeatTokenConfig) {
		t.Fatalf("verify error = %v, want %v", err, ErrSeatTokenConfig)
	}
}
