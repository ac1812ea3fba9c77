package credential

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMintAndVerify(t *testing.T) {
	signer := NewSigner([]byte("test-secret"))

	t.Run("Round Trip", func(t *testing.T) {
		cred, err := signer.Mint("ticket-1", "event-1", "buyer-1", time.Now().UTC())
		assert.NoError(t, err)

		claims, err := signer.Verify(cred)
		assert.NoError(t, err)
		assert.Equal(t, "ticket-1", claims.TicketId)
		assert.Equal(t, "event-1", claims.EventId)
		assert.Equal(t, "buyer-1", claims.OwnerId)
		assert.NotEmpty(t, claims.Nonce)
	})

	t.Run("Nonce Makes Credentials Unique", func(t *testing.T) {
		first, err := signer.Mint("ticket-1", "event-1", "buyer-1", time.Now().UTC())
		assert.NoError(t, err)
		second, err := signer.Mint("ticket-1", "event-1", "buyer-1", time.Now().UTC())
		assert.NoError(t, err)

		assert.NotEqual(t, first, second)
	})

	t.Run("Wrong Secret Rejected", func(t *testing.T) {
		cred, err := NewSigner([]byte("other-secret")).Mint("ticket-1", "event-1", "buyer-1", time.Now().UTC())
		assert.NoError(t, err)

		_, err = signer.Verify(cred)
		assert.ErrorIs(t, err, ErrInvalidCredential)
	})

	t.Run("Garbage Rejected", func(t *testing.T) {
		_, err := signer.Verify("not-a-credential")
		assert.ErrorIs(t, err, ErrInvalidCredential)
	})

	t.Run("Empty Rejected", func(t *testing.T) {
		_, err := signer.Verify("")
		assert.ErrorIs(t, err, ErrInvalidCredential)
	})
}
