package mongo

import (
	"context"
	"fmt"

	bookingrepository "hallbooking/internal/bookings/repository"
	facilityrepository "hallbooking/internal/facilities/repository"
	"hallbooking/pkg/config"
	mongodb "hallbooking/pkg/db/mongo"
	"hallbooking/pkg/logger"
	"hallbooking/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	FacilityIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: model.FieldRoomID, Value: 1}}, Options: options.Index().SetName("room_id_1")},
	}

	dateLookup   = mongo.IndexModel{Keys: bson.D{{Key: model.FieldDate, Value: 1}}, Options: options.Index().SetName("date_1")}
	roomIDLookup = mongo.IndexModel{Keys: bson.D{{Key: model.FieldRoomID, Value: 1}}, Options: options.Index().SetName("room_id_1")}
)

// BookingIndexes returns the indexes of the booking collection. With atomic
// admission the unique indexes replace the plain lookups on the same keys.
func BookingIndexes(policy config.ConflictPolicy, atomic bool) []mongo.IndexModel {
	if !atomic {
		return []mongo.IndexModel{dateLookup, roomIDLookup}
	}

	indexes := bookingrepository.UniqueIndexes(policy)
	if policy == config.ConflictCompound {
		// the compound index serves room_id lookups but not date ones
		indexes = append(indexes, dateLookup)
	}
	return indexes
}

// RunMigration creates the service collections if missing and ensures their
// indexes. It is safe to run repeatedly.
func RunMigration(ctx context.Context, db *mongo.Database, cfg *config.Config, log *logger.Logger) error {
	log.Info("Running Mongo migrations", "database", db.Name())

	collections := []struct {
		name    string
		indexes []mongo.IndexModel
	}{
		{name: facilityrepository.CollectionName, indexes: FacilityIndexes},
		{name: bookingrepository.CollectionName, indexes: BookingIndexes(cfg.BookingConflictPolicy, cfg.BookingAtomicInsert)},
	}

	for _, def := range collections {
		if err := ensureCollection(ctx, db, def.name, log); err != nil {
			return fmt.Errorf("failed to ensure collection %s: %w", def.name, err)
		}
		if err := mongodb.EnsureIndexes(ctx, db.Collection(def.name), def.indexes); err != nil {
			return err
		}
		log.Info("Ensured indexes", "collection", def.name, "count", len(def.indexes))
	}

	log.Info("All migrations applied successfully")
	return nil
}

func ensureCollection(ctx context.Context, db *mongo.Database, name string, log *logger.Logger) error {
	existing, err := db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: name}})
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	log.Info("Creating collection", "collection", name)
	if err := db.CreateCollection(ctx, name); err != nil {
		return fmt.Errorf("failed creating %s: %w", name, err)
	}
	return nil
}
