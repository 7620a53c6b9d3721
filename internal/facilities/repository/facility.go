package repository

import (
	"context"
	"errors"
	"fmt"

	facilitieserrors "hallbooking/internal/facilities/errors"
	"hallbooking/pkg/config"
	mongodb "hallbooking/pkg/db/mongo"
	"hallbooking/pkg/filter"
	"hallbooking/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	CollectionName = "facility"
)

type FacilityRepository interface {
	Find(ctx context.Context, f filter.Filter) ([]model.Document, error)
	FindByRoomID(ctx context.Context, roomID int64) (model.Document, error)
	Create(ctx context.Context, doc model.Document) (*model.InsertResult, error)
	DeleteByRoomID(ctx context.Context, roomID int64) (*model.DeleteResult, error)
}

type mongoFacilityRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoFacilityRepository(cfg *config.Config) FacilityRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoFacilityRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoFacilityRepository) Find(ctx context.Context, f filter.Filter) ([]model.Document, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, mongodb.Equality(f))
	if err != nil {
		return nil, fmt.Errorf("failed to find facilities: %w", err)
	}
	defer cursor.Close(ctx)

	docs := make([]model.Document, 0)
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode facilities: %w", err)
	}
	return docs, nil
}

func (r *mongoFacilityRepository) FindByRoomID(ctx context.Context, roomID int64) (model.Document, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var doc model.Document
	err := r.collection.FindOne(ctx, bson.M{model.FieldRoomID: roomID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, facilitieserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find facility: %w", err)
	}
	return doc, nil
}

func (r *mongoFacilityRepository) Create(ctx context.Context, doc model.Document) (*model.InsertResult, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.InsertOne(ctx, bson.M(doc))
	if err != nil {
		return nil, fmt.Errorf("failed to create facility: %w", err)
	}
	return &model.InsertResult{Acknowledged: true, InsertedID: result.InsertedID}, nil
}

func (r *mongoFacilityRepository) DeleteByRoomID(ctx context.Context, roomID int64) (*model.DeleteResult, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{model.FieldRoomID: roomID})
	if err != nil {
		return nil, fmt.Errorf("failed to delete facility: %w", err)
	}
	return &model.DeleteResult{Acknowledged: true, DeletedCount: result.DeletedCount}, nil
}
