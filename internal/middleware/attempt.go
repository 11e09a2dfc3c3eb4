package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

type attemptCtxKey int

const attemptKey attemptCtxKey = 3

// AttemptClaims identify one candidate attempt. The token is not an identity
// credential; it only lets a candidate resume or submit the attempt it was
// issued for.
type AttemptClaims struct {
	CandidateID string `json:"cid"`
	JobID       string `json:"job"`
	jwt.RegisteredClaims
}

// TokenSigner signs and verifies attempt tokens with an HMAC secret.
type TokenSigner struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenSigner(secret string, ttl time.Duration) *TokenSigner {
	if secret == "" {
		secret = "hireloop-dev-secret"
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenSigner{secret: []byte(secret), ttl: ttl}
}

func (ts *TokenSigner) Sign(candidateID, jobID string) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(ts.ttl)
	claims := AttemptClaims{
		CandidateID: candidateID,
		JobID:       jobID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(ts.secret)
	return signed, exp, err
}

func (ts *TokenSigner) parse(tok string) (*AttemptClaims, error) {
	t, err := jwt.ParseWithClaims(tok, &AttemptClaims{}, func(token *jwt.Token) (interface{}, error) { return ts.secret, nil })
	if err != nil {
		return nil, err
	}
	if c, ok := t.Claims.(*AttemptClaims); ok && t.Valid {
		return c, nil
	}
	return nil, errors.New("invalid token")
}

// WithAttempt attaches attempt claims to the context when a valid bearer
// token is present. Requests without a token pass through untouched.
func (ts *TokenSigner) WithAttempt(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := r.Header.Get("Authorization")
		if strings.HasPrefix(h, "Bearer ") {
			tok := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
			if c, err := ts.parse(tok); err == nil {
				ctx := context.WithValue(r.Context(), attemptKey, c)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func AttemptFromContext(ctx context.Context) (*AttemptClaims, bool) {
	c, ok := ctx.Value(attemptKey).(*AttemptClaims)
	return c, ok
}
