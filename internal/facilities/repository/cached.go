package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"sync"
	"time"

	"hallbooking/pkg/cache"
	"hallbooking/pkg/filter"
	"hallbooking/pkg/logger"
	"hallbooking/pkg/metrics"
	"hallbooking/pkg/model"
	"hallbooking/pkg/sanitizer"
)

// cachedFacilityRepository serves FindByRoomID from a cache. Misses are not
// cached, and any write touching a room_id drops its entry.
//
// Each room_id carries a write generation. A lookup only fills the cache if
// no write on that room_id started or finished while it read from next, so a
// slow read cannot put back an entry a concurrent write just dropped. The
// generations are per process; other replicas are bounded by the TTL.
type cachedFacilityRepository struct {
	next  FacilityRepository
	cache cache.Cache
	ttl   time.Duration
	log   *logger.Logger

	mu          sync.Mutex
	generations map[int64]uint64
}

func NewCachedFacilityRepository(next FacilityRepository, c cache.Cache, ttl time.Duration, log *logger.Logger) FacilityRepository {
	return &cachedFacilityRepository{
		next:        next,
		cache:       c,
		ttl:         ttl,
		log:         log,
		generations: make(map[int64]uint64),
	}
}

func cacheKey(roomID int64) string {
	return "facility:" + strconv.FormatInt(roomID, 10)
}

func (r *cachedFacilityRepository) Find(ctx context.Context, f filter.Filter) ([]model.Document, error) {
	return r.next.Find(ctx, f)
}

func (r *cachedFacilityRepository) FindByRoomID(ctx context.Context, roomID int64) (model.Document, error) {
	key := cacheKey(roomID)

	data, err := r.cache.Get(ctx, key)
	switch {
	case err == nil:
		doc, decodeErr := sanitizer.DecodeDocument(bytes.NewReader(data))
		if decodeErr == nil {
			metrics.IncCacheLookup(metrics.CacheHit)
			return doc, nil
		}
		r.log.Warn("Discarding unreadable cache entry", "key", key, "error", decodeErr)
		metrics.IncCacheLookup(metrics.CacheError)
	case errors.Is(err, cache.ErrMiss):
		metrics.IncCacheLookup(metrics.CacheMiss)
	default:
		r.log.Warn("Facility cache lookup failed", "key", key, "error", err)
		metrics.IncCacheLookup(metrics.CacheError)
	}

	gen := r.generation(roomID)
	doc, err := r.next.FindByRoomID(ctx, roomID)
	if err != nil {
		return nil, err
	}

	if encoded, err := json.Marshal(doc); err == nil {
		r.fill(ctx, roomID, gen, key, encoded)
	}
	return doc, nil
}

func (r *cachedFacilityRepository) generation(roomID int64) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.generations[roomID]
}

// fill holds mu across the Set so invalidate cannot interleave between the
// generation check and the write.
func (r *cachedFacilityRepository) fill(ctx context.Context, roomID int64, gen uint64, key string, encoded []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.generations[roomID] != gen {
		r.log.Debug("Skipping facility cache fill after concurrent write", "key", key)
		return
	}
	if err := r.cache.Set(ctx, key, encoded, r.ttl); err != nil {
		r.log.Warn("Failed to cache facility", "key", key, "error", err)
	}
}

func (r *cachedFacilityRepository) Create(ctx context.Context, doc model.Document) (*model.InsertResult, error) {
	roomID, err := doc.Int(model.FieldRoomID)
	if err != nil || roomID == nil {
		return r.next.Create(ctx, doc)
	}

	r.invalidate(ctx, *roomID)
	defer r.invalidate(ctx, *roomID)
	return r.next.Create(ctx, doc)
}

func (r *cachedFacilityRepository) DeleteByRoomID(ctx context.Context, roomID int64) (*model.DeleteResult, error) {
	r.invalidate(ctx, roomID)
	defer r.invalidate(ctx, roomID)
	return r.next.DeleteByRoomID(ctx, roomID)
}

// invalidate runs before and after every write: the first bump fences off
// lookups already reading, the second drops anything filled in between.
func (r *cachedFacilityRepository) invalidate(ctx context.Context, roomID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.generations[roomID]++
	if err := r.cache.Delete(ctx, cacheKey(roomID)); err != nil {
		r.log.Warn("Failed to invalidate facility cache", "room_id", roomID, "error", err)
	}
}
