package service

import (
	"context"
	"errors"

	bookingserrors "hallbooking/internal/bookings/errors"
	"hallbooking/internal/bookings/repository"
	"hallbooking/internal/bookings/validator"
	"hallbooking/pkg/config"
	apperrors "hallbooking/pkg/errors"
	"hallbooking/pkg/events"
	"hallbooking/pkg/filter"
	"hallbooking/pkg/metrics"
	"hallbooking/pkg/model"
)

// Admission reasons recorded with the admission metric.
const (
	reasonDate       = "date"
	reasonRoomID     = "room_id"
	reasonRoomIDDate = "room_id_date"
	reasonDuplicate  = "duplicate"
	reasonNone       = "none"
)

type BookingService interface {
	List(ctx context.Context, f filter.Filter) ([]model.Document, error)
	Create(ctx context.Context, doc model.Document) (*model.InsertResult, error)
	DeleteByRoomID(ctx context.Context, roomID string) (*model.DeleteResult, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	validator *validator.BookingValidator
	events    events.Publisher
	cfg       *config.Config
}

func NewBookingService(repo repository.BookingRepository, v *validator.BookingValidator, publisher events.Publisher, cfg *config.Config) BookingService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &bookingService{
		repo:      repo,
		validator: v,
		events:    publisher,
		cfg:       cfg,
	}
}

func (s *bookingService) List(ctx context.Context, f filter.Filter) ([]model.Document, error) {
	docs, err := s.repo.Find(ctx, f)
	if err != nil {
		s.cfg.Log.Error("Failed to list bookings", "filter", f, "error", err)
		return nil, storeError("Failed to retrieve bookings", err)
	}
	return docs, nil
}

// Create runs the admission check and inserts doc verbatim when no existing
// booking holds its key. Without unique indexes the check and the insert are
// not atomic.
func (s *bookingService) Create(ctx context.Context, doc model.Document) (*model.InsertResult, error) {
	key, err := s.validator.AdmissionKey(doc)
	if err != nil {
		s.cfg.Log.Warn("Booking rejected by validation", "error", err)
		metrics.IncAdmission(metrics.AdmissionInvalid, reasonNone)
		return nil, apperrors.InvalidInput(err.Error())
	}

	if err := s.checkConflicts(ctx, key); err != nil {
		return nil, err
	}

	result, err := s.repo.Create(ctx, doc)
	if err != nil {
		if conflict, reason, ok := duplicateConflict(err); ok {
			s.cfg.Log.Warn("Booking rejected by unique index",
				"room_id", *key.RoomID,
				"date", *key.Date,
				"reason", reason,
			)
			metrics.IncAdmission(metrics.AdmissionConflict, reason)
			return nil, conflict
		}
		s.cfg.Log.Error("Failed to create booking", "room_id", *key.RoomID, "date", *key.Date, "error", err)
		metrics.IncAdmission(metrics.AdmissionError, reasonNone)
		return nil, storeError("Failed to create booking", err)
	}

	s.cfg.Log.Info("Booking created successfully",
		"id", result.InsertedID,
		"room_id", *key.RoomID,
		"date", *key.Date,
	)
	metrics.IncAdmission(metrics.AdmissionAdmitted, reasonNone)
	s.events.Publish(ctx, events.Event{
		Type:    events.BookingCreated,
		RoomID:  *key.RoomID,
		Payload: withID(doc, result.InsertedID),
	})
	return result, nil
}

type conflictCheck struct {
	filter  filter.Filter
	message string
	reason  string
}

func (s *bookingService) conflictChecks(key *model.AdmissionKey) []conflictCheck {
	if s.cfg.BookingConflictPolicy == config.ConflictCompound {
		return []conflictCheck{
			{
				filter:  filter.Filter{model.FieldRoomID: *key.RoomID, model.FieldDate: *key.Date},
				message: bookingserrors.MsgDuplicateRoomAndDate,
				reason:  reasonRoomIDDate,
			},
		}
	}
	return []conflictCheck{
		{filter: filter.Filter{model.FieldDate: *key.Date}, message: bookingserrors.MsgDuplicateDate, reason: reasonDate},
		{filter: filter.Filter{model.FieldRoomID: *key.RoomID}, message: bookingserrors.MsgDuplicateRoomID, reason: reasonRoomID},
	}
}

func (s *bookingService) checkConflicts(ctx context.Context, key *model.AdmissionKey) error {
	for _, check := range s.conflictChecks(key) {
		exists, err := s.repo.Exists(ctx, check.filter)
		if err != nil {
			s.cfg.Log.Error("Failed to check booking conflict", "filter", check.filter, "error", err)
			metrics.IncAdmission(metrics.AdmissionError, reasonNone)
			return storeError("Failed to check booking conflict", err)
		}
		if exists {
			s.cfg.Log.Warn("Booking rejected by admission check",
				"room_id", *key.RoomID,
				"date", *key.Date,
				"reason", check.reason,
			)
			metrics.IncAdmission(metrics.AdmissionConflict, check.reason)
			return apperrors.Conflict(check.message)
		}
	}
	return nil
}

func (s *bookingService) DeleteByRoomID(ctx context.Context, roomID string) (*model.DeleteResult, error) {
	id, ok := filter.RoomID(roomID)
	if !ok {
		return &model.DeleteResult{Acknowledged: true, DeletedCount: 0}, nil
	}

	result, err := s.repo.DeleteByRoomID(ctx, id)
	if err != nil {
		s.cfg.Log.Error("Failed to delete booking", "room_id", id, "error", err)
		return nil, storeError("Failed to delete booking", err)
	}

	if result.DeletedCount > 0 {
		s.cfg.Log.Info("Booking deleted successfully", "room_id", id)
		s.events.Publish(ctx, events.Event{
			Type:    events.BookingDeleted,
			RoomID:  id,
			Payload: map[string]any{model.FieldRoomID: id},
		})
	}
	return result, nil
}

func duplicateConflict(err error) (*apperrors.AppError, string, bool) {
	switch {
	case errors.Is(err, bookingserrors.ErrDuplicateDate):
		return apperrors.Conflict(bookingserrors.MsgDuplicateDate), reasonDate, true
	case errors.Is(err, bookingserrors.ErrDuplicateRoomID):
		return apperrors.Conflict(bookingserrors.MsgDuplicateRoomID), reasonRoomID, true
	case errors.Is(err, bookingserrors.ErrDuplicateRoomAndDate):
		return apperrors.Conflict(bookingserrors.MsgDuplicateRoomAndDate), reasonRoomIDDate, true
	case errors.Is(err, bookingserrors.ErrDuplicate):
		return apperrors.Conflict(bookingserrors.MsgDuplicate), reasonDuplicate, true
	default:
		return nil, "", false
	}
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
