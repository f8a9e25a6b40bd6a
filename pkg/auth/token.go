package auth

import (
	"fmt"
	"time"

	"github.com/quillside/graphauth/pkg/errors"
)

// TokenState describes where a token is in its lifecycle
type TokenState int

const (
	// TokenAbsent means no token has been fetched yet
	TokenAbsent TokenState = iota
	// TokenValid means the token has not reached its expiry time
	TokenValid
	// TokenExpired means the expiry time has passed
	TokenExpired
)

// String returns the state name for test output
func (s TokenState) String() string {
	switch s {
	case TokenAbsent:
		return "absent"
	case TokenValid:
		return "valid"
	case TokenExpired:
		return "expired"
	default:
		return fmt.Sprintf("TokenState(%d)", int(s))
	}
}

// Token is an access token with its expiry time.
// The zero value is the absent state.
type Token struct {
	AccessToken string
	ExpiresAt   time.Time
}

// NewToken builds a Token from a token endpoint response.
// ExpiresAt is computed as now + expiresIn seconds; a zero or negative
// expiresIn yields a token that is already expired.
func NewToken(accessToken string, expiresIn int, now time.Time) (Token, error) {
	if accessToken == "" {
		return Token{}, errors.WrapError(
			fmt.Errorf("access_token is empty"),
			errors.ErrValidation,
			"token response",
		)
	}
	return Token{
		AccessToken: accessToken,
		ExpiresAt:   now.Add(time.Duration(expiresIn) * time.Second),
	}, nil
}

// State reports the token's lifecycle state at the given instant.
// Expiry is strict: a token whose ExpiresAt equals now is already expired.
// There is no refresh margin; a token expiring mid-request is not handled.
func (t Token) State(now time.Time) TokenState {
	if t.ExpiresAt.IsZero() {
		return TokenAbsent
	}
	if !t.ExpiresAt.After(now) {
		return TokenExpired
	}
	return TokenValid
}
