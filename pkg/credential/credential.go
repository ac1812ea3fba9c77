// Package credential mints and verifies the opaque signed tokens embedded in
// issued tickets. A credential decodes to its claims, but only the issuing
// system can verify it: validity requires the server-side signing secret.
package credential

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidCredential is returned for credentials that fail signature or
// shape checks. The cause is deliberately not distinguished.
var ErrInvalidCredential = errors.New("invalid credential")

// Claims is what a ticket credential attests to.
type Claims struct {
	TicketId string `json:"tid"`
	EventId  string `json:"eid"`
	OwnerId  string `json:"oid"`
	Nonce    string `json:"nce"`
	jwt.RegisteredClaims
}

// Signer mints and verifies ticket credentials with an HMAC-SHA256 secret.
type Signer struct {
	secret []byte
}

// NewSigner creates a Signer from the shared secret.
func NewSigner(secret []byte) *Signer {
	return &Signer{secret: secret}
}

// Mint produces a signed credential for one ticket unit. The nonce makes
// every credential globally unique even across re-issues of the same ticket.
func (s *Signer) Mint(ticketID, eventID, ownerID string, issuedAt time.Time) (string, error) {
	claims := Claims{
		TicketId: ticketID,
		EventId:  eventID,
		OwnerId:  ownerID,
		Nonce:    uuid.New().String(),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign credential: %w", err)
	}
	return signed, nil
}

// Verify checks the credential's signature and returns its claims.
func (s *Signer) Verify(credential string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(credential, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidCredential
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || claims.TicketId == "" {
		return nil, ErrInvalidCredential
	}
	return claims, nil
}
