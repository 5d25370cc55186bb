package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"huddle/internal/migrations/mongo/validators"
	"huddle/pkg/model"
)

var (
	BookingsIndexes = []mongo.IndexModel{
		{Keys: bson.D{
			{Key: "room_id", Value: 1},
			{Key: "status", Value: 1},
			{Key: "start_hour", Value: 1},
		}},
		{Keys: bson.D{
			{Key: "booked_by", Value: 1},
			{Key: "status", Value: 1},
		}},
	}

	RoomsIndexes = []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	// SeedRooms is the fixed catalog. The service never creates rooms at
	// runtime, so the migration is the single writer to this collection.
	SeedRooms = []model.Room{
		{ID: "room-a", Name: "Room A"},
		{ID: "room-b", Name: "Room B"},
		{ID: "room-c", Name: "Room C"},
		{ID: "room-d", Name: "Room D"},
		{ID: "room-e", Name: "Room E"},
		{ID: "room-f", Name: "Room F"},
	}
)

func RunMigration(ctx context.Context, client *mongo.Client, dbName string) error {
	db := client.Database(dbName)
	fmt.Printf("Running migrations on database: %s\n", dbName)

	collections := map[string]struct {
		Indexes   []mongo.IndexModel
		Validator bson.M
	}{
		"Rooms": {
			Indexes:   RoomsIndexes,
			Validator: validators.RoomValidator,
		},
		"Bookings": {
			Indexes:   BookingsIndexes,
			Validator: validators.BookingValidator,
		},
	}

	for name, def := range collections {
		if err := ensureCollection(ctx, db, name, def.Validator); err != nil {
			return fmt.Errorf("failed to ensure collection %s: %w", name, err)
		}
		if err := ensureIndexes(ctx, db, name, def.Indexes); err != nil {
			return fmt.Errorf("failed to ensure indexes for %s: %w", name, err)
		}
	}

	if err := seedRooms(ctx, db); err != nil {
		return fmt.Errorf("failed to seed rooms: %w", err)
	}

	fmt.Println("All migrations applied successfully.")
	return nil
}

func ensureCollection(ctx context.Context, db *mongo.Database, name string, validator bson.M) error {
	existing, err := db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: name}})
	if err != nil {
		return err
	}

	if len(existing) == 0 {
		fmt.Printf("Creating collection: %s\n", name)
		opts := options.CreateCollection().SetValidator(validator)
		if err := db.CreateCollection(ctx, name, opts); err != nil {
			return fmt.Errorf("failed creating %s: %w", name, err)
		}
	} else {
		fmt.Printf("Collection %s already exists, updating validator\n", name)
		command := bson.D{
			{Key: "collMod", Value: name},
			{Key: "validator", Value: validator},
		}
		if err := db.RunCommand(ctx, command).Err(); err != nil {
			fmt.Printf("Warning: failed updating validator for %s: %v\n", name, err)
		}
	}

	return nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database, name string, models []mongo.IndexModel) error {
	coll := db.Collection(name)
	_, err := coll.Indexes().CreateMany(ctx, models)
	if err != nil {
		return err
	}
	fmt.Printf("Ensured indexes for %s\n", name)
	return nil
}

// seedRooms upserts the catalog so re-running the migration is safe.
func seedRooms(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection("Rooms")
	for _, room := range SeedRooms {
		filter := bson.M{"_id": room.ID}
		update := bson.M{"$set": bson.M{"name": room.Name}}
		opts := options.Update().SetUpsert(true)
		if _, err := coll.UpdateOne(ctx, filter, update, opts); err != nil {
			return fmt.Errorf("failed upserting room %s: %w", room.ID, err)
		}
	}
	fmt.Printf("Seeded %d rooms\n", len(SeedRooms))
	return nil
}
