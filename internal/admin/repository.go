package admin

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
	Create(ctx context.Context, a *Admin) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*Admin, error)
	FindByEmail(ctx context.Context, email string) (*Admin, error)
	FindByRole(ctx context.Context, role Role) (*Admin, error)
	List(ctx context.Context) ([]*Admin, error)
}

type MongoRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{collection: db.Collection("admins")}
}

// EnsureIndexes enforces unique emails and unique firebase uids where set.
// There is no index limiting super admins; Service.Provision checks that.
func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	return config.EnsureIndexes(ctx, r.collection,
		mongo.IndexModel{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		mongo.IndexModel{
			Keys:    bson.D{{Key: "firebaseUid", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
	)
}

func (r *MongoRepository) Create(ctx context.Context, a *Admin) error {
	a.ID = primitive.NewObjectID()
	if _, err := r.collection.InsertOne(ctx, a); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *MongoRepository) findOne(ctx context.Context, filter bson.M) (*Admin, error) {
	var a Admin
	if err := r.collection.FindOne(ctx, filter).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *MongoRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*Admin, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *MongoRepository) FindByEmail(ctx context.Context, email string) (*Admin, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoRepository) FindByRole(ctx context.Context, role Role) (*Admin, error) {
	return r.findOne(ctx, bson.M{"role": role})
}

func (r *MongoRepository) List(ctx context.Context) ([]*Admin, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, err
	}
	admins := []*Admin{}
	if err := cursor.All(ctx, &admins); err != nil {
		return nil, err
	}
	return admins, nil
}
