package service

import (
	"context"
	"errors"

	facilitieserrors "hallbooking/internal/facilities/errors"
	"hallbooking/internal/facilities/repository"
	"hallbooking/pkg/config"
	apperrors "hallbooking/pkg/errors"
	"hallbooking/pkg/events"
	"hallbooking/pkg/filter"
	"hallbooking/pkg/model"
)

type FacilityService interface {
	List(ctx context.Context, f filter.Filter) ([]model.Document, error)
	GetByRoomID(ctx context.Context, roomID string) (model.Document, error)
	Create(ctx context.Context, doc model.Document) (*model.InsertResult, error)
	DeleteByRoomID(ctx context.Context, roomID string) (*model.DeleteResult, error)
}

type facilityService struct {
	repo   repository.FacilityRepository
	events events.Publisher
	cfg    *config.Config
}

func NewFacilityService(repo repository.FacilityRepository, publisher events.Publisher, cfg *config.Config) FacilityService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &facilityService{
		repo:   repo,
		events: publisher,
		cfg:    cfg,
	}
}

func (s *facilityService) List(ctx context.Context, f filter.Filter) ([]model.Document, error) {
	docs, err := s.repo.Find(ctx, f)
	if err != nil {
		s.cfg.Log.Error("Failed to list facilities", "filter", f, "error", err)
		return nil, storeError("Failed to retrieve facilities", err)
	}
	return docs, nil
}

// GetByRoomID returns a NOT_FOUND AppError when no facility has the id. A
// non-numeric id can never match and is reported the same way.
func (s *facilityService) GetByRoomID(ctx context.Context, roomID string) (model.Document, error) {
	id, ok := filter.RoomID(roomID)
	if !ok {
		return nil, apperrors.NotFoundWithID("Facility", roomID)
	}

	doc, err := s.repo.FindByRoomID(ctx, id)
	if err != nil {
		if errors.Is(err, facilitieserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Facility", roomID)
		}
		s.cfg.Log.Error("Failed to get facility", "room_id", roomID, "error", err)
		return nil, storeError("Failed to retrieve facility", err)
	}
	return doc, nil
}

func (s *facilityService) Create(ctx context.Context, doc model.Document) (*model.InsertResult, error) {
	result, err := s.repo.Create(ctx, doc)
	if err != nil {
		s.cfg.Log.Error("Failed to create facility", "error", err)
		return nil, storeError("Failed to create facility", err)
	}

	s.cfg.Log.Info("Facility created successfully",
		"id", result.InsertedID,
		"room_id", doc[model.FieldRoomID],
	)
	s.events.Publish(ctx, events.Event{
		Type:    events.FacilityCreated,
		RoomID:  doc[model.FieldRoomID],
		Payload: withID(doc, result.InsertedID),
	})
	return result, nil
}

func (s *facilityService) DeleteByRoomID(ctx context.Context, roomID string) (*model.DeleteResult, error) {
	id, ok := filter.RoomID(roomID)
	if !ok {
		return &model.DeleteResult{Acknowledged: true, DeletedCount: 0}, nil
	}

	result, err := s.repo.DeleteByRoomID(ctx, id)
	if err != nil {
		s.cfg.Log.Error("Failed to delete facility", "room_id", id, "error", err)
		return nil, storeError("Failed to delete facility", err)
	}

	if result.DeletedCount > 0 {
		s.cfg.Log.Info("Facility deleted successfully", "room_id", id)
		s.events.Publish(ctx, events.Event{
			Type:    events.FacilityDeleted,
			RoomID:  id,
			Payload: map[string]any{model.FieldRoomID: id},
		})
	}
	return result, nil
}

func storeError(message string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.Timeout(message)
	}
	return apperrors.Internal(message, err)
}

func withID(doc model.Document, id any) map[string]any {
	payload := make(map[string]any, len(doc)+1)
	for k, v := range doc {
		payload[k] = v
	}
	payload[model.FieldID] = id
	return payload
}
