package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// CookieName is the session cookie the codec reads and writes.
const CookieName = "session"

// SessionTTL bounds how long an issued session token stays valid.
const SessionTTL = 24 * time.Hour

var ErrInvalidSession = errors.New("invalid session token")

// Identity is the minimal user reference carried by a session,
// never the credential itself.
type Identity struct {
	UserID   uuid.UUID
	Username string
}

type claims struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// SessionCodec is the explicit serialize/deserialize pair for session
// identity: Issue turns an identity into a signed token payload, Decode
// turns a token payload back into an identity or fails.
type SessionCodec struct {
	secret []byte
}

func NewSessionCodec(secret string) *SessionCodec {
	return &SessionCodec{secret: []byte(secret)}
}

// Issue signs a token holding the identity, valid for SessionTTL.
// The returned expiry is what the cookie's MaxAge should be derived from.
func (c *SessionCodec) Issue(id Identity) (string, time.Time, error) {
	expiration := time.Now().Add(SessionTTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims{
		UserID:   id.UserID.String(),
		Username: id.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiration),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	})

	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiration, nil
}

// Decode parses and verifies a token payload. Any failure (bad signature,
// expired, malformed claims) comes back as ErrInvalidSession.
func (c *SessionCodec) Decode(tokenStr string) (Identity, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return c.secret, nil
	})
	if err != nil || !parsed.Valid {
		return Identity{}, ErrInvalidSession
	}

	cl, ok := parsed.Claims.(*claims)
	if !ok || cl.UserID == "" {
		return Identity{}, ErrInvalidSession
	}

	userID, err := uuid.Parse(cl.UserID)
	if err != nil {
		return Identity{}, ErrInvalidSession
	}

	return Identity{UserID: userID, Username: cl.Username}, nil
}
