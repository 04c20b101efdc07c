package notificationrepo

import (
	"context"
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/notification"
	"fooddelivery/internal/pkg/errs"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CollectionName is the collection holding every user's notifications.
const CollectionName = "notifications"

// Store implements ports.NotificationStore on a MongoDB collection.
type Store struct {
	collection *mongo.Collection
}

func NewStore(db *mongo.Database) *Store {
	return &Store{collection: db.Collection(CollectionName)}
}

// EnsureIndexes creates the indexes backing the inbox queries. Safe to call on every start.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "read", Value: 1}}},
		{Keys: bson.D{{Key: "orderId", Value: 1}}},
	})
	return err
}

// Append inserts n and returns it carrying the generated ObjectID in hex form.
func (s *Store) Append(ctx context.Context, n notification.Notification) (notification.Notification, error) {
	doc := fromDomain(n)
	doc.ID = primitive.NewObjectID()

	if _, err := s.collection.InsertOne(ctx, doc); err != nil {
		return notification.Notification{}, err
	}
	return n.WithID(doc.ID.Hex()), nil
}

// ListByUser returns the newest notifications first. limit is clamped to the inbox bounds.
func (s *Store) ListByUser(ctx context.Context, userID kernel.UUID, limit int) ([]notification.Notification, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(int64(notification.ClampLimit(limit)))

	cursor, err := s.collection.Find(ctx, bson.M{"userId": userID.String()}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []Document
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	result := make([]notification.Notification, 0, len(docs))
	for _, doc := range docs {
		n, convErr := toDomain(doc)
		if convErr != nil {
			return nil, convErr
		}
		result = append(result, n)
	}
	return result, nil
}

// MarkRead is scoped by owner, so another user's notification looks absent.
func (s *Store) MarkRead(ctx context.Context, id string, userID kernel.UUID) (notification.Notification, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return notification.Notification{}, errs.NewObjectNotFoundError("notification", id)
	}

	var doc Document
	err = s.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": objectID, "userId": userID.String()},
		bson.M{"$set": bson.M{"read": true}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return notification.Notification{}, errs.NewObjectNotFoundError("notification", id)
		}
		return notification.Notification{}, err
	}
	return toDomain(doc)
}

// MarkAllRead returns the number of notifications that were unread.
func (s *Store) MarkAllRead(ctx context.Context, userID kernel.UUID) (int64, error) {
	result, err := s.collection.UpdateMany(ctx,
		bson.M{"userId": userID.String(), "read": false},
		bson.M{"$set": bson.M{"read": true}},
	)
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}
