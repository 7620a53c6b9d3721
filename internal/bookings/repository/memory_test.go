package repository

import (
	"context"
	"testing"

	bookingserrors "hallbooking/internal/bookings/errors"
	"hallbooking/pkg/config"
	"hallbooking/pkg/filter"
	"hallbooking/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryBookingRepository_NoIndexesAllowsDuplicates(t *testing.T) {
	repo := NewMemoryBookingRepository()
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := repo.Create(ctx, model.Document{"room_id": int32(5), "date": int32(1)})
		require.NoError(t, err)
	}

	docs, err := repo.Find(ctx, filter.Filter{"room_id": int64(5)})
	require.NoError(t, err)
	assert.Len(t, docs, 2)
}

func TestMemoryBookingRepository_IndependentIndexes(t *testing.T) {
	repo := NewMemoryBookingRepository()
	ctx := context.Background()
	require.NoError(t, repo.EnsureUniqueIndexes(ctx, config.ConflictIndependent))

	_, err := repo.Create(ctx, model.Document{"room_id": int32(5), "date": int32(1)})
	require.NoError(t, err)

	_, err = repo.Create(ctx, model.Document{"room_id": int32(6), "date": int64(1)})
	assert.ErrorIs(t, err, bookingserrors.ErrDuplicateDate)

	_, err = repo.Create(ctx, model.Document{"room_id": int64(5), "date": int32(2)})
	assert.ErrorIs(t, err, bookingserrors.ErrDuplicateRoomID)

	// partial indexes ignore documents without the key
	_, err = repo.Create(ctx, model.Document{"note": "a"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, model.Document{"note": "b"})
	require.NoError(t, err)

	docs, err := repo.Find(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, docs, 3)
}

func TestMemoryBookingRepository_CompoundIndex(t *testing.T) {
	repo := NewMemoryBookingRepository()
	ctx := context.Background()
	require.NoError(t, repo.EnsureUniqueIndexes(ctx, config.ConflictCompound))

	_, err := repo.Create(ctx, model.Document{"room_id": int32(5), "date": int32(1)})
	require.NoError(t, err)
	_, err = repo.Create(ctx, model.Document{"room_id": int32(6), "date": int32(1)})
	require.NoError(t, err)

	_, err = repo.Create(ctx, model.Document{"room_id": int32(5), "date": int32(1)})
	assert.ErrorIs(t, err, bookingserrors.ErrDuplicateRoomAndDate)
}

func TestMemoryBookingRepository_ExistsAndDelete(t *testing.T) {
	repo := NewMemoryBookingRepository()
	ctx := context.Background()

	_, err := repo.Create(ctx, model.Document{"room_id": int32(5), "date": int32(1)})
	require.NoError(t, err)

	exists, err := repo.Exists(ctx, filter.Filter{"date": int64(1)})
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.Exists(ctx, filter.Filter{"date": int64(2)})
	require.NoError(t, err)
	assert.False(t, exists)

	res, err := repo.DeleteByRoomID(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.DeletedCount)

	res, err = repo.DeleteByRoomID(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.DeletedCount)
}

func TestUniqueIndexes(t *testing.T) {
	independent := UniqueIndexes(config.ConflictIndependent)
	require.Len(t, independent, 2)
	assert.Equal(t, IndexUniqueDate, *independent[0].Options.Name)
	assert.True(t, *independent[0].Options.Unique)
	assert.NotNil(t, independent[0].Options.PartialFilterExpression)
	assert.Equal(t, IndexUniqueRoomID, *independent[1].Options.Name)

	compound := UniqueIndexes(config.ConflictCompound)
	require.Len(t, compound, 1)
	assert.Equal(t, IndexUniqueRoomIDDate, *compound[0].Options.Name)
	assert.Nil(t, compound[0].Options.PartialFilterExpression)
}

func TestDuplicateError(t *testing.T) {
	assert.ErrorIs(t, duplicateError(IndexUniqueDate), bookingserrors.ErrDuplicateDate)
	assert.ErrorIs(t, duplicateError(IndexUniqueRoomID), bookingserrors.ErrDuplicateRoomID)
	assert.ErrorIs(t, duplicateError(IndexUniqueRoomIDDate), bookingserrors.ErrDuplicateRoomAndDate)
	assert.ErrorIs(t, duplicateError("_id_"), bookingserrors.ErrDuplicate)
}
