package room

import (
	"context"
	"errors"

	"SmartCampus/internal/config"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Repository interface {
	Create(ctx context.Context, room *Room) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*Room, error)
	Find(ctx context.Context, f Filter) ([]*Room, error)
	Update(ctx context.Context, room *Room) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// MongoRepository stores rooms in the rooms collection.
type MongoRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{collection: db.Collection("rooms")}
}

func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	return config.EnsureIndexes(ctx, r.collection, mongo.IndexModel{
		Keys:    bson.D{{Key: "number", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
}

func (r *MongoRepository) Create(ctx context.Context, room *Room) error {
	room.ID = primitive.NewObjectID()
	if _, err := r.collection.InsertOne(ctx, room); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *MongoRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*Room, error) {
	var room Room
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&room); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &room, nil
}

func (r *MongoRepository) Find(ctx context.Context, f Filter) ([]*Room, error) {
	filter := bson.M{}
	if f.Location != "" {
		filter["location"] = f.Location
	}
	if f.Department != "" {
		filter["department"] = f.Department
	}
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "number", Value: 1}}))
	if err != nil {
		return nil, err
	}
	rooms := []*Room{}
	if err := cursor.All(ctx, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

// updateFor builds the update document for room. An empty department is
// removed from the document rather than stored as "".
func updateFor(room *Room) bson.M {
	set := bson.M{
		"number":    room.Number,
		"type":      room.Type,
		"capacity":  room.Capacity,
		"location":  room.Location,
		"updatedAt": room.UpdatedAt,
	}
	update := bson.M{"$set": set}
	if room.Department == "" {
		update["$unset"] = bson.M{"department": ""}
	} else {
		set["department"] = room.Department
	}
	return update
}

func (r *MongoRepository) Update(ctx context.Context, room *Room) error {
	res, err := r.collection.UpdateByID(ctx, room.ID, updateFor(room))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
