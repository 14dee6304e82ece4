package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/gnum-cli/internal/core/domain"
)

func record(code, date, supplier string) domain.PurchaseRecord {
	return domain.PurchaseRecord{ProductCode: code, ProductName: "name " + code, Date: date, Supplier: supplier}
}

func TestPurchaseStore_AppendAndDedup(t *testing.T) {
	store := NewPurchaseStore()
	ctx := context.Background()

	inserted, indexed, err := store.Append(ctx, []domain.PurchaseRecord{
		record("P-1", "2024-01-01", "Alpha"),
		record("P-1", "2024-01-01", "Alpha"),
		record("P-2", "2024-01-01", "Alpha"),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, inserted)
	assert.Equal(t, 2, indexed)

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, 2, store.IndexedCount())
}

func TestPurchaseStore_FindByCode(t *testing.T) {
	store := NewPurchaseStore()
	ctx := context.Background()

	_, _, err := store.Append(ctx, []domain.PurchaseRecord{
		record("P-1", "2024-01-01", "Alpha"),
		record("P-1", "2024-01-02", "Alpha"),
		record("P-11", "2024-01-01", "Alpha"),
	})
	require.NoError(t, err)

	got, err := store.FindByCode(ctx, "P-1")
	require.NoError(t, err)
	assert.Len(t, got, 2)

	none, err := store.FindByCode(ctx, "missing")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestPurchaseStore_RebuildSearchIndex(t *testing.T) {
	store := NewPurchaseStore()
	ctx := context.Background()

	_, _, err := store.Append(ctx, []domain.PurchaseRecord{
		record("P-1", "2024-01-01", "Alpha"),
		record("P-2", "2024-01-01", "Alpha"),
	})
	require.NoError(t, err)

	n, err := store.RebuildSearchIndex(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, store.IndexedCount())
}
