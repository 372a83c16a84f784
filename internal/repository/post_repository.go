package repository

import (
	"context"
	"slices"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/SanjayChandraSamudrala/forum-board/internal/models"
	"github.com/SanjayChandraSamudrala/forum-board/internal/ranking"
)

// PostQuery filters a post listing. Zero Since means no time window.
type PostQuery struct {
	Status   models.PostStatus
	Category string
	Since    time.Time
	Sort     ranking.SortKey
	Page     ranking.Page
}

// PostPatch carries the author-editable fields of a post. Nil fields are
// left as stored.
type PostPatch struct {
	Title     *string
	Content   *string
	Category  *string
	Status    *models.PostStatus
	UpdatedAt time.Time
}

func (p PostPatch) set() bson.M {
	set := bson.M{"updated_at": p.UpdatedAt}
	if p.Title != nil {
		set["title"] = *p.Title
	}
	if p.Content != nil {
		set["content"] = *p.Content
	}
	if p.Category != nil {
		set["category"] = *p.Category
	}
	if p.Status != nil {
		set["status"] = *p.Status
	}
	return set
}

// PostRepository mutations are single atomic updates returning the stored
// document as it is after the write.
type PostRepository interface {
	Create(ctx context.Context, p *models.Post) error
	FindByID(ctx context.Context, id bson.ObjectID) (*models.Post, error)
	FindByIDs(ctx context.Context, ids []bson.ObjectID) ([]models.Post, error)
	IncrementViews(ctx context.Context, id bson.ObjectID) (*models.Post, error)
	Patch(ctx context.Context, id bson.ObjectID, patch PostPatch) (*models.Post, error)
	PushReply(ctx context.Context, id bson.ObjectID, reply models.Reply) (*models.Post, error)
	React(ctx context.Context, id, userID bson.ObjectID, kind models.Reaction) (*models.Post, error)
	// ReactReply returns ErrNotFound when either the post or the reply is missing.
	ReactReply(ctx context.Context, id, replyID, userID bson.ObjectID, kind models.Reaction) (*models.Post, error)
	Delete(ctx context.Context, id bson.ObjectID) error
	DeleteByAuthor(ctx context.Context, authorID bson.ObjectID) (int64, error)
	List(ctx context.Context, q PostQuery) ([]models.Post, int64, error)
	ListAll(ctx context.Context, p ranking.Page) ([]models.Post, int64, error)
	ListByAuthor(ctx context.Context, authorID bson.ObjectID) ([]models.Post, error)
	ListRepliedBy(ctx context.Context, userID bson.ObjectID) ([]models.Post, error)
	ListLikedBy(ctx context.Context, userID bson.ObjectID) ([]models.Post, error)
	DistinctCategories(ctx context.Context) ([]string, error)
	CategoryActivity(ctx context.Context, since time.Time) ([]ranking.CategoryActivity, error)
	Search(ctx context.Context, q string, limit int) ([]models.Post, error)
	Count(ctx context.Context) (int64, error)
}

type mongoPostRepo struct {
	col *mongo.Collection
}

func NewMongoPostRepository(db *mongo.Database) PostRepository {
	return &mongoPostRepo{col: db.Collection(PostsCollection)}
}

func (r *mongoPostRepo) Create(ctx context.Context, p *models.Post) error {
	if p.ID.IsZero() {
		p.ID = bson.NewObjectID()
	}
	_, err := r.col.InsertOne(ctx, p)
	return translate(err)
}

func (r *mongoPostRepo) FindByID(ctx context.Context, id bson.ObjectID) (*models.Post, error) {
	var p models.Post
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *mongoPostRepo) FindByIDs(ctx context.Context, ids []bson.ObjectID) ([]models.Post, error) {
	if len(ids) == 0 {
		return []models.Post{}, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": ids}}, options.Find())
}

func (r *mongoPostRepo) IncrementViews(ctx context.Context, id bson.ObjectID) (*models.Post, error) {
	return r.update(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"views": 1}})
}

func (r *mongoPostRepo) Patch(ctx context.Context, id bson.ObjectID, patch PostPatch) (*models.Post, error) {
	return r.update(ctx, bson.M{"_id": id}, bson.M{"$set": patch.set()})
}

func (r *mongoPostRepo) PushReply(ctx context.Context, id bson.ObjectID, reply models.Reply) (*models.Post, error) {
	return r.update(ctx, bson.M{"_id": id}, pushReplyUpdate(reply))
}

func (r *mongoPostRepo) React(ctx context.Context, id, userID bson.ObjectID, kind models.Reaction) (*models.Post, error) {
	return r.update(ctx, bson.M{"_id": id}, reactPipeline(userID, kind))
}

func (r *mongoPostRepo) ReactReply(ctx context.Context, id, replyID, userID bson.ObjectID, kind models.Reaction) (*models.Post, error) {
	return r.update(ctx, replyFilter(id, replyID), reactReplyPipeline(replyID, userID, kind))
}

func (r *mongoPostRepo) update(ctx context.Context, filter, update any) (*models.Post, error) {
	var p models.Post
	err := r.col.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&p)
	if err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *mongoPostRepo) Delete(ctx context.Context, id bson.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoPostRepo) DeleteByAuthor(ctx context.Context, authorID bson.ObjectID) (int64, error) {
	res, err := r.col.DeleteMany(ctx, bson.M{"author_id": authorID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *mongoPostRepo) List(ctx context.Context, q PostQuery) ([]models.Post, int64, error) {
	match := postListMatch(q)
	total, err := r.col.CountDocuments(ctx, match)
	if err != nil {
		return nil, 0, err
	}

	cur, err := r.col.Aggregate(ctx, postListPipeline(match, q.Sort, q.Page))
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var out []models.Post
	if err := cur.All(ctx, &out); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *mongoPostRepo) ListAll(ctx context.Context, p ranking.Page) ([]models.Post, int64, error) {
	total, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(int64(p.Offset())).
		SetLimit(int64(p.Size))
	out, err := r.find(ctx, bson.M{}, opts)
	return out, total, err
}

func (r *mongoPostRepo) ListByAuthor(ctx context.Context, authorID bson.ObjectID) ([]models.Post, error) {
	return r.find(ctx, bson.M{"author_id": authorID}, newestFirst())
}

func (r *mongoPostRepo) ListRepliedBy(ctx context.Context, userID bson.ObjectID) ([]models.Post, error) {
	return r.find(ctx, bson.M{"replies.author_id": userID}, newestFirst())
}

func (r *mongoPostRepo) ListLikedBy(ctx context.Context, userID bson.ObjectID) ([]models.Post, error) {
	filter := bson.M{"$or": bson.A{
		reactedBy("likes", userID),
		reactedBy("replies.likes", userID),
	}}
	return r.find(ctx, filter, newestFirst())
}

func (r *mongoPostRepo) DistinctCategories(ctx context.Context) ([]string, error) {
	var raw []string
	if err := r.col.Distinct(ctx, "category", bson.M{}).Decode(&raw); err != nil {
		return nil, err
	}
	return normalizeCategories(raw), nil
}

func (r *mongoPostRepo) CategoryActivity(ctx context.Context, since time.Time) ([]ranking.CategoryActivity, error) {
	cur, err := r.col.Aggregate(ctx, categoryActivityPipeline(since))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []ranking.CategoryActivity
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *mongoPostRepo) Search(ctx context.Context, q string, limit int) ([]models.Post, error) {
	re := containsFold(q)
	filter := bson.M{"$or": bson.A{
		bson.M{"title": re},
		bson.M{"content": re},
	}}
	return r.find(ctx, filter, newestFirst().SetLimit(int64(limit)))
}

func (r *mongoPostRepo) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}

func (r *mongoPostRepo) find(ctx context.Context, filter any, opts *options.FindOptionsBuilder) ([]models.Post, error) {
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Post{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func newestFirst() *options.FindOptionsBuilder {
	return options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
}

func postListMatch(q PostQuery) bson.M {
	status := q.Status
	if status == "" {
		status = models.PostActive
	}
	match := bson.M{"status": status}
	if c := strings.ToLower(strings.TrimSpace(q.Category)); c != "" {
		match["category"] = c
	}
	if !q.Since.IsZero() {
		match["$or"] = activeSince(q.Since)["$or"]
	}
	return match
}

func postListPipeline(match bson.M, key ranking.SortKey, p ranking.Page) mongo.Pipeline {
	pipe := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$addFields", Value: bson.M{
			"like_count":  sizeOf(reactorIDs("likes")),
			"reply_count": sizeOf(arrayOrEmpty("replies")),
		}}},
		{{Key: "$sort", Value: sortStage(key)}},
	}
	pipe = append(pipe, pageStages(p)...)
	return append(pipe, bson.D{{Key: "$unset", Value: bson.A{"like_count", "reply_count"}}})
}

// categoryActivityPipeline emits one row per active post in the window with
// its reply count and the time of its latest post or reply.
func categoryActivityPipeline(since time.Time) mongo.Pipeline {
	match := activeSince(since)
	match["status"] = models.PostActive
	return mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$project", Value: bson.M{
			"_id":      0,
			"category": bson.M{"$toLower": "$category"},
			"replies":  sizeOf(arrayOrEmpty("replies")),
			"last_activity": bson.M{"$max": bson.A{
				"$created_at",
				bson.M{"$max": "$replies.created_at"},
			}},
		}}},
	}
}

func normalizeCategories(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, c := range raw {
		c = strings.ToLower(strings.TrimSpace(c))
		if c != "" {
			out = append(out, c)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}
