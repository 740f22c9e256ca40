package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/address-resolver/internal/adapter/sqlite"
	"github.com/couchcryptid/address-resolver/internal/domain"
)

func setupTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func testRecord(key string) domain.CachedAddress {
	return domain.CachedAddress{
		Key:         key,
		FullAddress: "Свердловская область, Екатеринбург, 1 Родонитовая улица, 620089",
		Lat:         56.7928003,
		Lon:         60.6165292,
	}
}

func TestStore_InsertAndLookup(t *testing.T) {
	fixedTime := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)
	domain.SetClock(clockwork.NewFakeClockAt(fixedTime))
	defer domain.SetClock(nil)

	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, testRecord("Екатеринбург Родонитовая 1")))

	rec, err := store.Lookup(ctx, "Екатеринбург Родонитовая 1")
	require.NoError(t, err)
	require.NotNil(t, rec)

	assert.Equal(t, "Екатеринбург Родонитовая 1", rec.Key)
	assert.Equal(t, "Свердловская область, Екатеринбург, 1 Родонитовая улица, 620089", rec.FullAddress)
	assert.Equal(t, 56.7928003, rec.Lat)
	assert.Equal(t, 60.6165292, rec.Lon)
	assert.Equal(t, fixedTime, rec.CachedAt)
}

func TestStore_LookupMissing(t *testing.T) {
	store := setupTestStore(t)

	rec, err := store.Lookup(context.Background(), "нет такого ключа")
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestStore_DuplicateInsertKeepsFirstRecord(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	first := testRecord("ключ")
	require.NoError(t, store.Insert(ctx, first))

	second := testRecord("ключ")
	second.FullAddress = "другой адрес"
	second.Lat = 0
	second.Lon = 0
	require.NoError(t, store.Insert(ctx, second))

	rec, err := store.Lookup(ctx, "ключ")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, first.FullAddress, rec.FullAddress)
	assert.Equal(t, first.Lat, rec.Lat)
}

func TestStore_KeysAreExact(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, testRecord("Екатеринбург Родонитовая 1")))

	// A different phrasing of the same place is a different key by design.
	rec, err := store.Lookup(ctx, "Родонитовая 1 Екатеринбург")
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestStore_ExplicitTimestampPreserved(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	stamped := testRecord("с меткой")
	stamped.CachedAt = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, store.Insert(ctx, stamped))

	rec, err := store.Lookup(ctx, "с меткой")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, stamped.CachedAt, rec.CachedAt)
}

func TestNoopStore(t *testing.T) {
	var store domain.NoopStore
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, testRecord("ключ")))

	rec, err := store.Lookup(ctx, "ключ")
	require.NoError(t, err)
	assert.Nil(t, rec)
}
