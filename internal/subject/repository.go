package subject

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
	Create(ctx context.Context, s *Subject) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*Subject, error)
	Find(ctx context.Context, f Filter) ([]*Subject, error)
	Update(ctx context.Context, s *Subject) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type MongoRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{collection: db.Collection("subjects")}
}

// EnsureIndexes creates a lookup index; code is deliberately not unique.
func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	return config.EnsureIndexes(ctx, r.collection, mongo.IndexModel{
		Keys: bson.D{{Key: "department", Value: 1}, {Key: "semester", Value: 1}, {Key: "code", Value: 1}},
	})
}

func (r *MongoRepository) Create(ctx context.Context, s *Subject) error {
	s.ID = primitive.NewObjectID()
	_, err := r.collection.InsertOne(ctx, s)
	return err
}

func (r *MongoRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*Subject, error) {
	var s Subject
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&s); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *MongoRepository) Find(ctx context.Context, f Filter) ([]*Subject, error) {
	filter := bson.M{}
	if f.Department != "" {
		filter["department"] = f.Department
	}
	if f.Semester > 0 {
		filter["semester"] = f.Semester
	}
	opts := options.Find().SetSort(bson.D{{Key: "semester", Value: 1}, {Key: "code", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	subjects := []*Subject{}
	if err := cursor.All(ctx, &subjects); err != nil {
		return nil, err
	}
	return subjects, nil
}

func (r *MongoRepository) Update(ctx context.Context, s *Subject) error {
	update := bson.M{"$set": bson.M{
		"name":       s.Name,
		"code":       s.Code,
		"department": s.Department,
		"semester":   s.Semester,
		"updatedAt":  s.UpdatedAt,
	}}
	res, err := r.collection.UpdateByID(ctx, s.ID, update)
	if err != nil {
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
