package repository

import (
	"context"
	"errors"
	"fmt"

	bookingserrors "hallbooking/internal/bookings/errors"
	"hallbooking/pkg/config"
	mongodb "hallbooking/pkg/db/mongo"
	"hallbooking/pkg/filter"
	"hallbooking/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "bookingroom"
)

// Unique index names created for atomic admission.
const (
	IndexUniqueDate       = "uniq_date"
	IndexUniqueRoomID     = "uniq_room_id"
	IndexUniqueRoomIDDate = "uniq_room_id_date"
)

type BookingRepository interface {
	Find(ctx context.Context, f filter.Filter) ([]model.Document, error)
	Exists(ctx context.Context, f filter.Filter) (bool, error)
	Create(ctx context.Context, doc model.Document) (*model.InsertResult, error)
	DeleteByRoomID(ctx context.Context, roomID int64) (*model.DeleteResult, error)
	EnsureUniqueIndexes(ctx context.Context, policy config.ConflictPolicy) error
}

type mongoBookingRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoBookingRepository(cfg *config.Config) BookingRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoBookingRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoBookingRepository) Find(ctx context.Context, f filter.Filter) ([]model.Document, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, mongodb.Equality(f))
	if err != nil {
		return nil, fmt.Errorf("failed to find bookings: %w", err)
	}
	defer cursor.Close(ctx)

	docs := make([]model.Document, 0)
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return docs, nil
}

func (r *mongoBookingRepository) Exists(ctx context.Context, f filter.Filter) (bool, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.FindOne().SetProjection(bson.M{model.FieldID: 1})
	err := r.collection.FindOne(ctx, mongodb.Equality(f), opts).Err()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, fmt.Errorf("failed to look up booking: %w", err)
	}
	return true, nil
}

func (r *mongoBookingRepository) Create(ctx context.Context, doc model.Document) (*model.InsertResult, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.InsertOne(ctx, bson.M(doc))
	if err != nil {
		if index, dup := mongodb.DuplicateKeyIndex(err); dup {
			return nil, fmt.Errorf("failed to create booking: %w", duplicateError(index))
		}
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}
	return &model.InsertResult{Acknowledged: true, InsertedID: result.InsertedID}, nil
}

func (r *mongoBookingRepository) DeleteByRoomID(ctx context.Context, roomID int64) (*model.DeleteResult, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{model.FieldRoomID: roomID})
	if err != nil {
		return nil, fmt.Errorf("failed to delete booking: %w", err)
	}
	return &model.DeleteResult{Acknowledged: true, DeletedCount: result.DeletedCount}, nil
}

func (r *mongoBookingRepository) EnsureUniqueIndexes(ctx context.Context, policy config.ConflictPolicy) error {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	return mongodb.EnsureIndexes(ctx, r.collection, UniqueIndexes(policy))
}

// UniqueIndexes returns the index models that make the admission check
// atomic under policy. Independent keys are partial on field existence so
// bookings without the key are not all treated as duplicates of each other.
func UniqueIndexes(policy config.ConflictPolicy) []mongo.IndexModel {
	if policy == config.ConflictCompound {
		return []mongo.IndexModel{
			{
				Keys:    bson.D{{Key: model.FieldRoomID, Value: 1}, {Key: model.FieldDate, Value: 1}},
				Options: options.Index().SetName(IndexUniqueRoomIDDate).SetUnique(true),
			},
		}
	}

	return []mongo.IndexModel{
		{
			Keys: bson.D{{Key: model.FieldDate, Value: 1}},
			Options: options.Index().
				SetName(IndexUniqueDate).
				SetUnique(true).
				SetPartialFilterExpression(bson.M{model.FieldDate: bson.M{"$exists": true}}),
		},
		{
			Keys: bson.D{{Key: model.FieldRoomID, Value: 1}},
			Options: options.Index().
				SetName(IndexUniqueRoomID).
				SetUnique(true).
				SetPartialFilterExpression(bson.M{model.FieldRoomID: bson.M{"$exists": true}}),
		},
	}
}

func duplicateError(index string) error {
	switch index {
	case IndexUniqueDate:
		return bookingserrors.ErrDuplicateDate
	case IndexUniqueRoomID:
		return bookingserrors.ErrDuplicateRoomID
	case IndexUniqueRoomIDDate:
		return bookingserrors.ErrDuplicateRoomAndDate
	default:
		return bookingserrors.ErrDuplicate
	}
}
