package bootstrap

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.uber.org/zap"

	"github.com/SanjayChandraSamudrala/forum-board/internal/repository"
	"github.com/SanjayChandraSamudrala/forum-board/pkg/logger"
)

// Indexes lists every index the repositories rely on, per collection.
// Unique indexes back the duplicate checks for user emails and community
// names.
func Indexes() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		repository.UsersCollection: {
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("uniq_email"),
			},
			{Keys: bson.D{{Key: "role", Value: 1}}},
		},
		repository.PostsCollection: {
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}}},
			{Keys: bson.D{{Key: "category", Value: 1}}},
			{Keys: bson.D{{Key: "author_id", Value: 1}}},
			{Keys: bson.D{{Key: "replies.author_id", Value: 1}}},
			{Keys: bson.D{{Key: "replies.created_at", Value: -1}}},
		},
		repository.TrendingCollection: {
			{Keys: bson.D{
				{Key: "status", Value: 1},
				{Key: "trending_score", Value: -1},
				{Key: "created_at", Value: -1},
			}},
			{Keys: bson.D{{Key: "topic", Value: 1}}},
		},
		repository.CommunitiesCollection: {
			{
				Keys:    bson.D{{Key: "name", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("uniq_name"),
			},
		},
		repository.AdminLogsCollection: {
			{Keys: bson.D{{Key: "action", Value: 1}, {Key: "created_at", Value: -1}}},
			{Keys: bson.D{{Key: "created_at", Value: -1}}},
		},
		repository.ContactCollection: {
			{Keys: bson.D{{Key: "created_at", Value: -1}}},
		},
	}
}

// EnsureIndexes creates missing indexes. Existing indexes with the same
// keys are left alone by the server.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	for coll, models := range Indexes() {
		names, err := db.Collection(coll).Indexes().CreateMany(ctx, models)
		if err != nil {
			return err
		}
		logger.L().Debug("indexes ensured", zap.String("collection", coll), zap.Strings("indexes", names))
	}
	return nil
}
