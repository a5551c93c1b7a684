package httpserver

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// stateTTL bounds how long a buyer can sit on the PayPal approval page
// before the return link expires.
const stateTTL = 1 * time.Hour

// IssueState signs the checkout state token carried through the PayPal
// redirect. It binds the return URL to the purchasing user and plan so the
// success endpoint cannot be replayed for someone else.
func IssueState(secret, email, planID string) (string, error) {
	claims := jwt.MapClaims{
		"sub":  email,
		"plan": planID,
		"exp":  time.Now().Add(stateTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// ParseState verifies a state token and returns the email and plan it was
// issued for.
func ParseState(secret, tokenStr string) (email, planID string, err error) {
	t, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !t.Valid {
		return "", "", fmt.Errorf("invalid state token: %w", err)
	}
	mc, ok := t.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", fmt.Errorf("invalid state token claims")
	}
	email, _ = mc["sub"].(string)
	planID, _ = mc["plan"].(string)
	if email == "" || planID == "" {
		return "", "", fmt.Errorf("state token missing subject or plan")
	}
	return email, planID, nil
}
