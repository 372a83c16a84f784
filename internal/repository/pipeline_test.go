package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/SanjayChandraSamudrala/forum-board/internal/models"
	"github.com/SanjayChandraSamudrala/forum-board/internal/ranking"
)

func TestPostListMatchDefaults(t *testing.T) {
	m := postListMatch(PostQuery{Category: " Golang "})
	assert.Equal(t, models.PostActive, m["status"])
	assert.Equal(t, "golang", m["category"])
	assert.NotContains(t, m, "$or")
}

func TestPostListMatchWindow(t *testing.T) {
	since := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m := postListMatch(PostQuery{Status: models.PostClosed, Since: since})
	assert.Equal(t, models.PostClosed, m["status"])

	or, ok := m["$or"].(bson.A)
	require.True(t, ok)
	assert.Len(t, or, 2)
	assert.Equal(t, bson.M{"replies.created_at": bson.M{"$gte": since}}, or[1])
}

func TestPostListPipelineShape(t *testing.T) {
	pipe := postListPipeline(bson.M{"status": "active"}, ranking.SortMostLiked, ranking.NewPage(2, 5))
	require.Len(t, pipe, 6)
	assert.Equal(t, "$match", pipe[0][0].Key)
	assert.Equal(t, "$addFields", pipe[1][0].Key)
	assert.Equal(t, "$sort", pipe[2][0].Key)
	assert.Equal(t, bson.D{
		{Key: "like_count", Value: -1},
		{Key: "created_at", Value: -1},
		{Key: "_id", Value: -1},
	}, pipe[2][0].Value)
	assert.Equal(t, bson.D{{Key: "$skip", Value: int64(5)}}, pipe[3])
	assert.Equal(t, bson.D{{Key: "$limit", Value: int64(5)}}, pipe[4])
	assert.Equal(t, "$unset", pipe[5][0].Key)
}

func TestSortStage(t *testing.T) {
	assert.Equal(t, bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}, sortStage(ranking.SortLatest))
	assert.Equal(t, bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: -1}}, sortStage(ranking.SortOldest))
	assert.Equal(t, "trending_score", sortStage(ranking.SortTrending)[0].Key)
	assert.Equal(t, "views", sortStage(ranking.SortPopular)[0].Key)
}

func TestTopicListFilter(t *testing.T) {
	since := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	f := topicListFilter(TopicQuery{Topic: "ai", Since: since})
	assert.Equal(t, bson.M{"$in": models.DefaultTopicStatuses}, f["status"])
	assert.Equal(t, "ai", f["topic"])
	assert.Equal(t, bson.M{"$gte": since}, f["created_at"])

	f = topicListFilter(TopicQuery{Statuses: []models.TopicStatus{models.TopicArchived}})
	assert.Equal(t, bson.M{"$in": []models.TopicStatus{models.TopicArchived}}, f["status"])
	assert.NotContains(t, f, "created_at")
}

func TestCategoryActivityPipelineMatchesActiveWindow(t *testing.T) {
	since := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	pipe := categoryActivityPipeline(since)
	require.Len(t, pipe, 2)
	match := pipe[0][0].Value.(bson.M)
	assert.Equal(t, models.PostActive, match["status"])
	assert.Contains(t, match, "$or")
}

func TestContactFilter(t *testing.T) {
	assert.Empty(t, contactFilter(models.ContactFilter{}))
	read := false
	assert.Equal(t, bson.M{"is_read": false}, contactFilter(models.ContactFilter{IsRead: &read}))
}

func TestNormalizeCategories(t *testing.T) {
	got := normalizeCategories([]string{"Go", "go ", "", "Rust", "ai"})
	assert.Equal(t, []string{"ai", "go", "rust"}, got)
}

func TestContainsFoldEscapes(t *testing.T) {
	re := containsFold("a.b+")
	assert.Equal(t, `a\.b\+`, re.Pattern)
	assert.Equal(t, "i", re.Options)
}

func TestTranslate(t *testing.T) {
	assert.NoError(t, translate(nil))
	assert.ErrorIs(t, translate(mongo.ErrNoDocuments), ErrNotFound)

	dup := mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}
	assert.ErrorIs(t, translate(dup), ErrDuplicate)

	other := errors.New("boom")
	assert.Equal(t, other, translate(other))
}

func TestToggleFieldsDislike(t *testing.T) {
	uid := bson.NewObjectID()
	set := toggleFields("$", uid, models.ReactionDislike)
	require.Len(t, set, 2)

	// dislikes is the toggled set: removed when held, appended otherwise.
	dis := set["dislikes"].(bson.M)["$cond"].(bson.A)
	assert.Equal(t, bson.M{"$in": bson.A{uid, reactorIDs("dislikes")}}, dis[0])
	assert.Equal(t, bson.M{"$concatArrays": bson.A{reactorIDs("dislikes"), bson.A{uid}}}, dis[2])

	// likes loses uid only when the dislike is being added.
	likes := set["likes"].(bson.M)["$cond"].(bson.A)
	assert.Equal(t, reactorIDs("likes"), likes[1])
	assert.Equal(t, without(reactorIDs("likes"), uid), likes[2])
}

func TestReactReplyPipelineTouchesOneReply(t *testing.T) {
	replyID, uid := bson.NewObjectID(), bson.NewObjectID()
	pipe := reactReplyPipeline(replyID, uid, models.ReactionLike)
	require.Len(t, pipe, 1)
	assert.Equal(t, "$set", pipe[0][0].Key)

	m := pipe[0][0].Value.(bson.M)["replies"].(bson.M)["$map"].(bson.M)
	assert.Equal(t, "r", m["as"])
	cond := m["in"].(bson.M)["$cond"].(bson.A)
	assert.Equal(t, bson.M{"$eq": bson.A{"$$r._id", replyID}}, cond[0])
	assert.Equal(t, "$$r", cond[2])

	merged := cond[1].(bson.M)["$mergeObjects"].(bson.A)
	assert.Equal(t, toggleFields("$$r.", uid, models.ReactionLike), merged[1])
	assert.Equal(t, bson.M{"_id": bson.NilObjectID, "replies._id": replyID}, replyFilter(bson.NilObjectID, replyID))
}

func TestPatchSetsOnlyGivenFields(t *testing.T) {
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	title := "new"
	assert.Equal(t, bson.M{"title": "new", "updated_at": at}, PostPatch{Title: &title, UpdatedAt: at}.set())

	st := models.TopicArchived
	assert.Equal(t, bson.M{"status": st, "updated_at": at}, TopicPatch{Status: &st, UpdatedAt: at}.set())

	reply := models.NewReply(bson.NewObjectID(), "hi", at)
	u := pushReplyUpdate(reply)
	assert.Equal(t, bson.M{"replies": reply}, u["$push"])
	assert.Equal(t, bson.M{"updated_at": at}, u["$set"])
}
