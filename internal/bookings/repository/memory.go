package repository

import (
	"context"
	"sync"

	bookingserrors "hallbooking/internal/bookings/errors"
	"hallbooking/pkg/config"
	"hallbooking/pkg/filter"
	"hallbooking/pkg/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryBookingRepository is an in-process BookingRepository. Once
// EnsureUniqueIndexes has been called, Create enforces the same uniqueness
// the MongoDB indexes would.
type MemoryBookingRepository struct {
	mu     sync.RWMutex
	docs   []model.Document
	unique []uniqueKey
}

type uniqueKey struct {
	fields []string
	err    error
}

func NewMemoryBookingRepository() *MemoryBookingRepository {
	return &MemoryBookingRepository{}
}

func (r *MemoryBookingRepository) Find(_ context.Context, f filter.Filter) ([]model.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Document, 0)
	for _, d := range r.docs {
		if d.Matches(f) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *MemoryBookingRepository) Exists(_ context.Context, f filter.Filter) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, d := range r.docs {
		if d.Matches(f) {
			return true, nil
		}
	}
	return false, nil
}

func (r *MemoryBookingRepository) Create(_ context.Context, doc model.Document) (*model.InsertResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkUnique(doc); err != nil {
		return nil, err
	}

	stored := make(model.Document, len(doc)+1)
	for k, v := range doc {
		stored[k] = v
	}
	id, ok := stored[model.FieldID]
	if !ok {
		id = primitive.NewObjectID()
		stored[model.FieldID] = id
	}

	r.docs = append(r.docs, stored)
	return &model.InsertResult{Acknowledged: true, InsertedID: id}, nil
}

func (r *MemoryBookingRepository) DeleteByRoomID(_ context.Context, roomID int64) (*model.DeleteResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, d := range r.docs {
		if d.Matches(map[string]any{model.FieldRoomID: roomID}) {
			r.docs = append(r.docs[:i], r.docs[i+1:]...)
			return &model.DeleteResult{Acknowledged: true, DeletedCount: 1}, nil
		}
	}
	return &model.DeleteResult{Acknowledged: true, DeletedCount: 0}, nil
}

func (r *MemoryBookingRepository) EnsureUniqueIndexes(_ context.Context, policy config.ConflictPolicy) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if policy == config.ConflictCompound {
		r.unique = []uniqueKey{
			{fields: []string{model.FieldRoomID, model.FieldDate}, err: bookingserrors.ErrDuplicateRoomAndDate},
		}
		return nil
	}
	r.unique = []uniqueKey{
		{fields: []string{model.FieldDate}, err: bookingserrors.ErrDuplicateDate},
		{fields: []string{model.FieldRoomID}, err: bookingserrors.ErrDuplicateRoomID},
	}
	return nil
}

// checkUnique must be called with the write lock held.
func (r *MemoryBookingRepository) checkUnique(doc model.Document) error {
	for _, key := range r.unique {
		probe := make(map[string]any, len(key.fields))
		for _, field := range key.fields {
			v, ok := doc[field]
			if !ok {
				probe = nil
				break
			}
			probe[field] = v
		}
		if probe == nil {
			continue
		}
		for _, d := range r.docs {
			if d.Matches(probe) {
				return key.err
			}
		}
	}
	return nil
}
