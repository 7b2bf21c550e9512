package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duarteurbanismo/sgci-recibos/internal/domain"
)

func novoRecibo(numero, shareID string) *domain.Recibo {
	now := time.Now().UTC()
	return &domain.Recibo{
		ReciboData: domain.ReciboData{
			Numero: numero,
			Valor:  500.00,
		},
		Hash:      "abc123",
		ShareID:   shareID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestMemoryStore_FindByNumero(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Upsert(ctx, novoRecibo("REC-0001", "share-1")))

	rec, err := store.FindByNumero(ctx, "REC-0001")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "share-1", rec.ShareID)

	rec, err = store.FindByNumero(ctx, "REC-9999")
	require.NoError(t, err)
	assert.Nil(t, rec, "missing record is (nil, nil)")
}

func TestMemoryStore_FindByShareID(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Upsert(ctx, novoRecibo("REC-0001", "share-1")))

	rec, err := store.FindByShareID(ctx, "share-1")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "REC-0001", rec.Numero)

	rec, err = store.FindByShareID(ctx, "share-2")
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestMemoryStore_UpsertPreservesIdentity(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	original := novoRecibo("REC-0001", "share-1")
	require.NoError(t, store.Upsert(ctx, original))

	update := novoRecibo("REC-0001", "share-2")
	update.Valor = 750.00
	update.Hash = "def456"
	update.UpdatedAt = original.UpdatedAt.Add(time.Hour)
	require.NoError(t, store.Upsert(ctx, update))

	rec, err := store.FindByNumero(ctx, "REC-0001")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "share-1", rec.ShareID, "first share id wins, like the SQL upsert")
	assert.Equal(t, original.CreatedAt, rec.CreatedAt)
	assert.Equal(t, 750.00, rec.Valor)
	assert.Equal(t, "def456", rec.Hash)
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Upsert(ctx, novoRecibo("REC-0001", "share-1")))

	rec, err := store.FindByNumero(ctx, "REC-0001")
	require.NoError(t, err)
	rec.Valor = 9999

	again, err := store.FindByNumero(ctx, "REC-0001")
	require.NoError(t, err)
	assert.Equal(t, 500.00, again.Valor, "callers cannot mutate stored state")
}
