package repository

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/SanjayChandraSamudrala/forum-board/internal/models"
	"github.com/SanjayChandraSamudrala/forum-board/internal/ranking"
)

// TopicQuery filters a trending listing. Empty Statuses means the default
// rising and trending set.
type TopicQuery struct {
	Statuses []models.TopicStatus
	Topic    string
	Since    time.Time
	Page     ranking.Page
}

// TopicPatch carries the author-editable fields of a topic. Nil fields are
// left as stored.
type TopicPatch struct {
	Title     *string
	Content   *string
	Topic     *string
	Status    *models.TopicStatus
	UpdatedAt time.Time
}

func (p TopicPatch) set() bson.M {
	set := bson.M{"updated_at": p.UpdatedAt}
	if p.Title != nil {
		set["title"] = *p.Title
	}
	if p.Content != nil {
		set["content"] = *p.Content
	}
	if p.Topic != nil {
		set["topic"] = *p.Topic
	}
	if p.Status != nil {
		set["status"] = *p.Status
	}
	return set
}

// TrendingRepository mutations are single atomic updates returning the
// stored document as it is after the write.
type TrendingRepository interface {
	Create(ctx context.Context, t *models.TrendingTopic) error
	FindByID(ctx context.Context, id bson.ObjectID) (*models.TrendingTopic, error)
	FindByIDs(ctx context.Context, ids []bson.ObjectID) ([]models.TrendingTopic, error)
	IncrementViews(ctx context.Context, id bson.ObjectID) (*models.TrendingTopic, error)
	Patch(ctx context.Context, id bson.ObjectID, patch TopicPatch) (*models.TrendingTopic, error)
	PushReply(ctx context.Context, id bson.ObjectID, reply models.Reply) (*models.TrendingTopic, error)
	React(ctx context.Context, id, userID bson.ObjectID, kind models.Reaction) (*models.TrendingTopic, error)
	// ReactReply returns ErrNotFound when either the topic or the reply is missing.
	ReactReply(ctx context.Context, id, replyID, userID bson.ObjectID, kind models.Reaction) (*models.TrendingTopic, error)
	// SetScore writes trending_score alone.
	SetScore(ctx context.Context, id bson.ObjectID, score float64) error
	Delete(ctx context.Context, id bson.ObjectID) error
	List(ctx context.Context, q TopicQuery) ([]models.TrendingTopic, int64, error)
	// SaveRanking persists trending_score and trending_rank for every topic
	// in one bulk write.
	SaveRanking(ctx context.Context, topics []models.TrendingTopic) error
	Count(ctx context.Context) (int64, error)
}

type mongoTrendingRepo struct {
	col *mongo.Collection
}

func NewMongoTrendingRepository(db *mongo.Database) TrendingRepository {
	return &mongoTrendingRepo{col: db.Collection(TrendingCollection)}
}

func (r *mongoTrendingRepo) Create(ctx context.Context, t *models.TrendingTopic) error {
	if t.ID.IsZero() {
		t.ID = bson.NewObjectID()
	}
	_, err := r.col.InsertOne(ctx, t)
	return translate(err)
}

func (r *mongoTrendingRepo) FindByID(ctx context.Context, id bson.ObjectID) (*models.TrendingTopic, error) {
	var t models.TrendingTopic
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&t); err != nil {
		return nil, translate(err)
	}
	return &t, nil
}

func (r *mongoTrendingRepo) FindByIDs(ctx context.Context, ids []bson.ObjectID) ([]models.TrendingTopic, error) {
	out := []models.TrendingTopic{}
	if len(ids) == 0 {
		return out, nil
	}
	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *mongoTrendingRepo) IncrementViews(ctx context.Context, id bson.ObjectID) (*models.TrendingTopic, error) {
	return r.update(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"views": 1}})
}

func (r *mongoTrendingRepo) Patch(ctx context.Context, id bson.ObjectID, patch TopicPatch) (*models.TrendingTopic, error) {
	return r.update(ctx, bson.M{"_id": id}, bson.M{"$set": patch.set()})
}

func (r *mongoTrendingRepo) PushReply(ctx context.Context, id bson.ObjectID, reply models.Reply) (*models.TrendingTopic, error) {
	return r.update(ctx, bson.M{"_id": id}, pushReplyUpdate(reply))
}

func (r *mongoTrendingRepo) React(ctx context.Context, id, userID bson.ObjectID, kind models.Reaction) (*models.TrendingTopic, error) {
	return r.update(ctx, bson.M{"_id": id}, reactPipeline(userID, kind))
}

func (r *mongoTrendingRepo) ReactReply(ctx context.Context, id, replyID, userID bson.ObjectID, kind models.Reaction) (*models.TrendingTopic, error) {
	return r.update(ctx, replyFilter(id, replyID), reactReplyPipeline(replyID, userID, kind))
}

func (r *mongoTrendingRepo) SetScore(ctx context.Context, id bson.ObjectID, score float64) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"trending_score": score}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoTrendingRepo) update(ctx context.Context, filter, update any) (*models.TrendingTopic, error) {
	var t models.TrendingTopic
	err := r.col.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&t)
	if err != nil {
		return nil, translate(err)
	}
	return &t, nil
}

func (r *mongoTrendingRepo) Delete(ctx context.Context, id bson.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoTrendingRepo) List(ctx context.Context, q TopicQuery) ([]models.TrendingTopic, int64, error) {
	filter := topicListFilter(q)
	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(sortStage(ranking.SortTrending)).
		SetSkip(int64(q.Page.Offset())).
		SetLimit(int64(q.Page.Size))
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	out := []models.TrendingTopic{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *mongoTrendingRepo) SaveRanking(ctx context.Context, topics []models.TrendingTopic) error {
	if len(topics) == 0 {
		return nil
	}
	writes := make([]mongo.WriteModel, 0, len(topics))
	for _, t := range topics {
		writes = append(writes, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"_id": t.ID}).
			SetUpdate(bson.M{"$set": bson.M{
				"trending_score": t.TrendingScore,
				"trending_rank":  t.TrendingRank,
			}}))
	}
	_, err := r.col.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false))
	return err
}

func (r *mongoTrendingRepo) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}

func topicListFilter(q TopicQuery) bson.M {
	statuses := q.Statuses
	if len(statuses) == 0 {
		statuses = models.DefaultTopicStatuses
	}
	filter := bson.M{"status": bson.M{"$in": statuses}}
	if topic := strings.TrimSpace(q.Topic); topic != "" {
		filter["topic"] = topic
	}
	if !q.Since.IsZero() {
		filter["created_at"] = bson.M{"$gte": q.Since}
	}
	return filter
}
