package repository

import (
	"context"
	"sync"

	facilitieserrors "hallbooking/internal/facilities/errors"
	"hallbooking/pkg/filter"
	"hallbooking/pkg/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryFacilityRepository keeps facilities in insertion order, mirroring
// the natural order MongoDB returns for an unindexed collection.
type MemoryFacilityRepository struct {
	mu   sync.RWMutex
	docs []model.Document
}

func NewMemoryFacilityRepository() *MemoryFacilityRepository {
	return &MemoryFacilityRepository{}
}

func (r *MemoryFacilityRepository) Find(_ context.Context, f filter.Filter) ([]model.Document, error) {
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

func (r *MemoryFacilityRepository) FindByRoomID(_ context.Context, roomID int64) (model.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, d := range r.docs {
		if d.Matches(map[string]any{model.FieldRoomID: roomID}) {
			return d, nil
		}
	}
	return nil, facilitieserrors.ErrNotFound
}

func (r *MemoryFacilityRepository) Create(_ context.Context, doc model.Document) (*model.InsertResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

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

func (r *MemoryFacilityRepository) DeleteByRoomID(_ context.Context, roomID int64) (*model.DeleteResult, error) {
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
