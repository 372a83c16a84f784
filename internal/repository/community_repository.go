package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/SanjayChandraSamudrala/forum-board/internal/models"
)

type CommunityRepository interface {
	Create(ctx context.Context, c *models.Community) error
	FindByID(ctx context.Context, id bson.ObjectID) (*models.Community, error)
	ListPublic(ctx context.Context) ([]models.Community, error)
	AddMember(ctx context.Context, id, userID bson.ObjectID) error
	RemoveMember(ctx context.Context, id, userID bson.ObjectID) error
	Search(ctx context.Context, q string, limit int) ([]models.Community, error)
}

type mongoCommunityRepo struct {
	col *mongo.Collection
}

func NewMongoCommunityRepository(db *mongo.Database) CommunityRepository {
	return &mongoCommunityRepo{col: db.Collection(CommunitiesCollection)}
}

func (r *mongoCommunityRepo) Create(ctx context.Context, c *models.Community) error {
	if c.ID.IsZero() {
		c.ID = bson.NewObjectID()
	}
	_, err := r.col.InsertOne(ctx, c)
	return translate(err)
}

func (r *mongoCommunityRepo) FindByID(ctx context.Context, id bson.ObjectID) (*models.Community, error) {
	var c models.Community
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *mongoCommunityRepo) ListPublic(ctx context.Context) ([]models.Community, error) {
	return r.find(ctx, bson.M{"is_private": false},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
}

func (r *mongoCommunityRepo) AddMember(ctx context.Context, id, userID bson.ObjectID) error {
	return r.update(ctx, id, bson.M{"$addToSet": bson.M{"members": userID}})
}

func (r *mongoCommunityRepo) RemoveMember(ctx context.Context, id, userID bson.ObjectID) error {
	return r.update(ctx, id, bson.M{"$pull": bson.M{"members": userID}})
}

func (r *mongoCommunityRepo) Search(ctx context.Context, q string, limit int) ([]models.Community, error) {
	re := containsFold(q)
	filter := bson.M{"$or": bson.A{bson.M{"name": re}, bson.M{"description": re}}}
	return r.find(ctx, filter, options.Find().SetLimit(int64(limit)))
}

func (r *mongoCommunityRepo) update(ctx context.Context, id bson.ObjectID, update bson.M) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoCommunityRepo) find(ctx context.Context, filter bson.M, opts *options.FindOptionsBuilder) ([]models.Community, error) {
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Community{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
