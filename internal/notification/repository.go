package notification

import (
	"context"
	"errors"
	"time"

	"SmartCampus/internal/config"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Repository persists notifications.
type Repository interface {
	Create(ctx context.Context, n *Notification) error
	FindVisible(ctx context.Context, v Visibility, limit int64) ([]*Notification, error)
	CountVisible(ctx context.Context, v Visibility) (int64, error)
	// MarkRead flips isRead on one notification and returns it, or ErrNotFound.
	MarkRead(ctx context.Context, id primitive.ObjectID) (*Notification, error)
	MarkAllRead(ctx context.Context, v Visibility) (int64, error)
}

// MongoRepository is the Repository backed by the notifications collection.
type MongoRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{collection: db.Collection("notifications")}
}

// EnsureIndexes creates the indexes the feed queries rely on.
func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	return config.EnsureIndexes(ctx, r.collection,
		mongo.IndexModel{Keys: bson.D{{Key: "recipientType", Value: 1}, {Key: "createdAt", Value: -1}}},
		mongo.IndexModel{Keys: bson.D{{Key: "recipientId", Value: 1}, {Key: "isRead", Value: 1}}},
	)
}

func (r *MongoRepository) Create(ctx context.Context, n *Notification) error {
	res, err := r.collection.InsertOne(ctx, n)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		n.ID = id
	}
	return nil
}

func (r *MongoRepository) FindVisible(ctx context.Context, v Visibility, limit int64) ([]*Notification, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)
	cursor, err := r.collection.Find(ctx, v.Filter(), opts)
	if err != nil {
		return nil, err
	}
	notifications := []*Notification{}
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *MongoRepository) CountVisible(ctx context.Context, v Visibility) (int64, error) {
	return r.collection.CountDocuments(ctx, v.Filter())
}

func (r *MongoRepository) MarkRead(ctx context.Context, id primitive.ObjectID) (*Notification, error) {
	update := bson.M{"$set": bson.M{"isRead": true, "updatedAt": time.Now().UTC()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var n Notification
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&n)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &n, nil
}

func (r *MongoRepository) MarkAllRead(ctx context.Context, v Visibility) (int64, error) {
	update := bson.M{"$set": bson.M{"isRead": true, "updatedAt": time.Now().UTC()}}
	res, err := r.collection.UpdateMany(ctx, v.Unread().Filter(), update)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}
