package messaging

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kodirov8788/topish-digitalOcian-sub002/internal/domain/entity"
)

func TestLedgerEvent(t *testing.T) {
	at := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	from := entity.BalanceChange{UserID: uuid.New(), PreviousCoins: 50, CurrentCoins: 30}
	to := entity.BalanceChange{UserID: uuid.New(), PreviousCoins: 10, CurrentCoins: 30}
	out, in := entity.NewTransferEntries(from, to, "thanks", at)

	t.Run("should encode a transfer leg with its counterparty", func(t *testing.T) {
		// Act
		data, err := encodeEntry(in)
		require.NoError(t, err)

		var decoded map[string]any
		require.NoError(t, json.Unmarshal(data, &decoded))

		// Assert
		assert.Equal(t, "transfer_in", decoded["kind"])
		assert.Equal(t, to.UserID.String(), decoded["userId"])
		assert.Equal(t, from.UserID.String(), decoded["actorId"])
		assert.Equal(t, from.UserID.String(), decoded["counterpartyId"])
		assert.Equal(t, out.TransferID.String(), decoded["transferId"])
		assert.EqualValues(t, 20, decoded["delta"])
		assert.Equal(t, "2024-05-01T09:00:00Z", decoded["createdAt"])
	})

	t.Run("should omit transfer fields for single-user entries", func(t *testing.T) {
		entry := entity.NewLedgerEntry(entity.LedgerKindAdd, uuid.New(), uuid.New(), 0, 10, "", at)

		event := NewLedgerEvent(entry)
		data, err := json.Marshal(event)
		require.NoError(t, err)

		assert.NotContains(t, string(data), "counterpartyId")
		assert.NotContains(t, string(data), "transferId")
		assert.NotContains(t, string(data), "reason")
	})

	t.Run("should build the subject from prefix and kind", func(t *testing.T) {
		assert.Equal(t, "coins.ledger.transfer_out", Subject("coins.ledger", out))
	})
}

func TestNoopPublisher(t *testing.T) {
	publisher := NewNoopPublisher()

	assert.NoError(t, publisher.PublishLedgerEntries(context.Background(), nil))
	assert.NoError(t, publisher.Close())
}
