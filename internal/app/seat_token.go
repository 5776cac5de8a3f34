package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/form3tech-oss/jwt-go"
	"github.com/google/uuid"
)

var (
	ErrSeatTokenConfig  = errors.New("seat token service is not configured")
	ErrSeatTokenInvalid = errors.New("seat token is invalid")
)

// SeatClaims binds a user to a seat of one match.
type SeatClaims struct {
	MatchID string
	UserID  string
	Seat    int
}

// SeatTokenService issues and verifies reconnection tokens.
type SeatTokenService struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

func NewSeatTokenService(secret, issuer string, ttl time.Duration) *SeatTokenService {
	if issuer == "" {
		issuer = DefaultSeatTokenIssuer
	}
	if ttl == 0 {
		ttl = DefaultSeatTokenTTL
	}
	return &SeatTokenService{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
	}
}

// Issue signs a token that lets userID take seat back in matchID.
func (s *SeatTokenService) Issue(matchID, userID string, seat int) (string, error) {
	if s == nil || len(s.secret) == 0 {
		return "", ErrSeatTokenConfig
	}
	if matchID == "" || userID == "" {
		return "", fmt.Errorf("match id and user id are required")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"iss":  s.issuer,
		"sub":  userID,
		"iat":  now.Unix(),
		"exp":  now.Add(s.ttl).Unix(),
		"jti":  uuid.NewString(),
		"mid":  matchID,
		"seat": seat,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify checks signature, expiry and issuer and returns the seat binding.
func (s *SeatTokenService) Verify(tokenString string) (SeatClaims, error) {
	if s == nil || len(s.secret) == 0 {
		return SeatClaims{}, ErrSeatTokenConfig
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return SeatClaims{}, fmt.Errorf("%w: %v", ErrSeatTokenInvalid, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return SeatClaims{}, ErrSeatTokenInvalid
	}
	if !claims.VerifyIssuer(s.issuer, true) {
		return SeatClaims{}, fmt.Errorf("%w: issuer mismatch", ErrSeatTokenInvalid)
	}

	matchID, _ := claims["mid"].(string)
	userID, _ := claims["sub"].(string)
	seat, ok := claims["seat"].(float64)
	if matchID == "" || userID == "" || !ok {
		return SeatClaims{}, fmt.Errorf("%w: missing claims", ErrSeatTokenInvalid)
	}
	return SeatClaims{MatchID: matchID, UserID: userID, Seat: int(seat)}, nil
}
