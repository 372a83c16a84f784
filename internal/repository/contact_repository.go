package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/SanjayChandraSamudrala/forum-board/internal/models"
	"github.com/SanjayChandraSamudrala/forum-board/internal/ranking"
)

type ContactRepository interface {
	Create(ctx context.Context, m *models.ContactMessage) error
	List(ctx context.Context, f models.ContactFilter, p ranking.Page) ([]models.ContactMessage, int64, error)
	// Mark sets one boolean flag ("is_read" or "replied") and returns the
	// updated message.
	Mark(ctx context.Context, id bson.ObjectID, field string) (*models.ContactMessage, error)
	Delete(ctx context.Context, id bson.ObjectID) (*models.ContactMessage, error)
}

const (
	ContactFieldRead    = "is_read"
	ContactFieldReplied = "replied"
)

type mongoContactRepo struct {
	col *mongo.Collection
}

func NewMongoContactRepository(db *mongo.Database) ContactRepository {
	return &mongoContactRepo{col: db.Collection(ContactCollection)}
}

func (r *mongoContactRepo) Create(ctx context.Context, m *models.ContactMessage) error {
	if m.ID.IsZero() {
		m.ID = bson.NewObjectID()
	}
	_, err := r.col.InsertOne(ctx, m)
	return translate(err)
}

func (r *mongoContactRepo) List(ctx context.Context, f models.ContactFilter, p ranking.Page) ([]models.ContactMessage, int64, error) {
	filter := contactFilter(f)
	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(int64(p.Offset())).
		SetLimit(int64(p.Size))
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	out := []models.ContactMessage{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *mongoContactRepo) Mark(ctx context.Context, id bson.ObjectID, field string) (*models.ContactMessage, error) {
	var m models.ContactMessage
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{field: true}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&m)
	if err != nil {
		return nil, translate(err)
	}
	return &m, nil
}

func (r *mongoContactRepo) Delete(ctx context.Context, id bson.ObjectID) (*models.ContactMessage, error) {
	var m models.ContactMessage
	if err := r.col.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&m); err != nil {
		return nil, translate(err)
	}
	return &m, nil
}

func contactFilter(f models.ContactFilter) bson.M {
	filter := bson.M{}
	if f.IsRead != nil {
		filter["is_read"] = *f.IsRead
	}
	if f.Replied != nil {
		filter["replied"] = *f.Replied
	}
	return filter
}
