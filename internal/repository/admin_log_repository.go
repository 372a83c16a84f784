package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/SanjayChandraSamudrala/forum-board/internal/models"
	"github.com/SanjayChandraSamudrala/forum-board/internal/ranking"
)

type AdminLogRepository interface {
	Insert(ctx context.Context, l *models.AdminLog) error
	// List returns logs newest first. Empty action means every action.
	List(ctx context.Context, action models.AdminAction, p ranking.Page) ([]models.AdminLog, int64, error)
}

type mongoAdminLogRepo struct {
	col *mongo.Collection
}

func NewMongoAdminLogRepository(db *mongo.Database) AdminLogRepository {
	return &mongoAdminLogRepo{col: db.Collection(AdminLogsCollection)}
}

func (r *mongoAdminLogRepo) Insert(ctx context.Context, l *models.AdminLog) error {
	if l.ID.IsZero() {
		l.ID = bson.NewObjectID()
	}
	_, err := r.col.InsertOne(ctx, l)
	return err
}

func (r *mongoAdminLogRepo) List(ctx context.Context, action models.AdminAction, p ranking.Page) ([]models.AdminLog, int64, error) {
	filter := bson.M{}
	if action != "" {
		filter["action"] = action
	}
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

	out := []models.AdminLog{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
