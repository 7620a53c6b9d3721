package repository

import (
	"context"
	"os"
	"testing"
	"time"

	bookingserrors "hallbooking/internal/bookings/errors"
	"hallbooking/pkg/client"
	"hallbooking/pkg/config"
	"hallbooking/pkg/filter"
	"hallbooking/pkg/logger"
	"hallbooking/pkg/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newMongoRepository connects to TEST_MONGO_URI and uses a throwaway database.
func newMongoRepository(t *testing.T) BookingRepository {
	t.Helper()

	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		t.Skip("TEST_MONGO_URI not set")
	}

	cfg := &config.Config{
		MongoDatabaseName: "hallbooking_test_" + uuid.NewString()[:8],
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      5 * time.Second,
		Log:               logger.Nop(),
		Client:            client.NewClient(),
	}
	cfg.Client.SetMongo(cfg.Log, uri, 10*time.Second)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = cfg.Client.Mongo.Database(cfg.MongoDatabaseName).Drop(ctx)
		_ = cfg.Client.Mongo.Disconnect(ctx)
	})

	return NewMongoBookingRepository(cfg)
}

func TestMongoBookingRepository_Lifecycle(t *testing.T) {
	repo := newMongoRepository(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, model.Document{"room_id": int32(5), "date": int32(1), "guest": "ann"})
	require.NoError(t, err)

	exists, err := repo.Exists(ctx, filter.Filter{"date": int64(1)})
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.Exists(ctx, filter.Filter{"room_id": int64(6)})
	require.NoError(t, err)
	assert.False(t, exists)

	docs, err := repo.Find(ctx, filter.Filter{"room_id": int64(5)})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "ann", docs[0]["guest"])

	res, err := repo.DeleteByRoomID(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.DeletedCount)
}

func TestMongoBookingRepository_UniqueIndexes(t *testing.T) {
	repo := newMongoRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.EnsureUniqueIndexes(ctx, config.ConflictIndependent))
	// a second call with the same definitions is a no-op
	require.NoError(t, repo.EnsureUniqueIndexes(ctx, config.ConflictIndependent))

	_, err := repo.Create(ctx, model.Document{"room_id": int32(5), "date": int32(1)})
	require.NoError(t, err)

	_, err = repo.Create(ctx, model.Document{"room_id": int32(6), "date": int32(1)})
	assert.ErrorIs(t, err, bookingserrors.ErrDuplicateDate)

	_, err = repo.Create(ctx, model.Document{"room_id": int32(5), "date": int32(2)})
	assert.ErrorIs(t, err, bookingserrors.ErrDuplicateRoomID)
}
