package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/SanjayChandraSamudrala/forum-board/dto"
	"github.com/SanjayChandraSamudrala/forum-board/internal/models"
	"github.com/SanjayChandraSamudrala/forum-board/internal/ranking"
	"github.com/SanjayChandraSamudrala/forum-board/internal/repository"
)

func TestTrendingCreateFreshScoreIsZero(t *testing.T) {
	f := newFixture(t)
	author := f.user(t, "author", models.RoleUser)

	got, err := f.trendingService().Create(context.Background(), author, dto.CreateTopicReq{
		Title: "t", Content: "c", Topic: "ai",
	})
	require.NoError(t, err)
	assert.Equal(t, 0.0, got.TrendingScore)
	assert.Equal(t, "rising", got.Status)

	_, err = f.trendingService().Create(context.Background(), author, dto.CreateTopicReq{Title: "t", Content: "c", Topic: "  "})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestTrendingListAssignsGlobalRanks(t *testing.T) {
	f := newFixture(t)
	svc := f.trendingService()
	ctx := context.Background()
	author := f.user(t, "author", models.RoleUser)

	// more views means a higher score at equal age
	var ids []bson.ObjectID
	for i := range 5 {
		tp := f.topic(t, author, t0.Add(-time.Hour), int64(100-i*10))
		ids = append(ids, tp.ID)
	}
	// seed stored scores so the repository order matches engagement
	first, err := svc.List(ctx, repository.TopicQuery{Page: ranking.NewPage(1, 5)}, bson.NilObjectID)
	require.NoError(t, err)
	require.Len(t, first.Items, 5)

	page, err := svc.List(ctx, repository.TopicQuery{Page: ranking.NewPage(2, 2)}, bson.NilObjectID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), page.TotalCount)
	assert.Equal(t, 3, page.TotalPages)
	require.Len(t, page.Items, 2)
	assert.Equal(t, ids[2], page.Items[0].ID)
	assert.Equal(t, 3, page.Items[0].TrendingRank)
	assert.Equal(t, 4, page.Items[1].TrendingRank)

	stored, err := f.topics.FindByID(ctx, ids[2])
	require.NoError(t, err)
	assert.Equal(t, 3, stored.TrendingRank)
	want := ranking.TrendingScore(ranking.Engagement{Views: 80, CreatedAt: t0.Add(-time.Hour)}, t0)
	assert.InDelta(t, want, stored.TrendingScore, 1e-9)
	assert.Equal(t, 2, f.topics.RankingWrites)
}

func TestTrendingListResortsPage(t *testing.T) {
	f := newFixture(t)
	svc := f.trendingService()
	ctx := context.Background()
	author := f.user(t, "author", models.RoleUser)

	stale := f.topic(t, author, t0.Add(-time.Hour), 0)
	hot := f.topic(t, author, t0.Add(-time.Hour), 500)
	// stored scores are out of date: stale looks better than hot
	stale.TrendingScore, hot.TrendingScore = 10, -10
	require.NoError(t, f.topics.SaveRanking(ctx, []models.TrendingTopic{stale, hot}))

	page, err := svc.List(ctx, repository.TopicQuery{Page: ranking.NewPage(1, 10)}, bson.NilObjectID)
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, hot.ID, page.Items[0].ID)
	assert.Equal(t, 1, page.Items[0].TrendingRank)
	assert.Greater(t, page.Items[0].TrendingScore, page.Items[1].TrendingScore)
}

func TestTrendingListFilters(t *testing.T) {
	f := newFixture(t)
	svc := f.trendingService()
	ctx := context.Background()
	author := f.user(t, "author", models.RoleUser)

	f.topic(t, author, t0.Add(-2*time.Hour), 0)
	f.topic(t, author, t0.Add(-48*time.Hour), 0)
	archived := f.topic(t, author, t0.Add(-time.Hour), 0)
	st := models.TopicArchived
	_, err := f.topics.Patch(ctx, archived.ID, repository.TopicPatch{Status: &st, UpdatedAt: t0})
	require.NoError(t, err)

	since, _ := ranking.Range24h.Since(t0)
	page, err := svc.List(ctx, repository.TopicQuery{Since: since, Page: ranking.NewPage(1, 10)}, bson.NilObjectID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.TotalCount)

	page, err = svc.List(ctx, repository.TopicQuery{
		Statuses: []models.TopicStatus{models.TopicArchived},
		Page:     ranking.NewPage(1, 10),
	}, bson.NilObjectID)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, archived.ID, page.Items[0].ID)
}

func TestTrendingGetCountsViewAndScores(t *testing.T) {
	f := newFixture(t)
	svc := f.trendingService()
	author := f.user(t, "author", models.RoleUser)
	tp := f.topic(t, author, t0, 9)

	got, err := svc.Get(context.Background(), tp.ID, bson.NilObjectID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), got.Views)
	// raw = 1 + 0.1*10 = 2
	assert.InDelta(t, 0.30103, got.TrendingScore, 1e-5)

	_, err = svc.Get(context.Background(), bson.NewObjectID(), bson.NilObjectID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTrendingReactRefreshesScore(t *testing.T) {
	f := newFixture(t)
	svc := f.trendingService()
	ctx := context.Background()
	author := f.user(t, "author", models.RoleUser)
	u := f.user(t, "u", models.RoleUser)
	tp := f.topic(t, author, t0, 0)

	v, err := svc.React(ctx, tp.ID, u.ID, models.ReactionLike)
	require.NoError(t, err)
	assert.Equal(t, models.ReactionView{Likes: 1, UserLiked: true}, v)

	stored, err := f.topics.FindByID(ctx, tp.ID)
	require.NoError(t, err)
	assert.InDelta(t, 0.30103, stored.TrendingScore, 1e-5)

	v, err = svc.React(ctx, tp.ID, u.ID, models.ReactionDislike)
	require.NoError(t, err)
	assert.Equal(t, models.ReactionView{Dislikes: 1, UserDisliked: true}, v)

	stored, err = f.topics.FindByID(ctx, tp.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, stored.TrendingScore)
}

func TestTrendingReplyAndReplyReaction(t *testing.T) {
	f := newFixture(t)
	svc := f.trendingService()
	ctx := context.Background()
	author := f.user(t, "author", models.RoleUser)
	u := f.user(t, "u", models.RoleUser)
	tp := f.topic(t, author, t0, 0)

	reply, err := svc.AddReply(ctx, tp.ID, u, "nice")
	require.NoError(t, err)

	stored, err := f.topics.FindByID(ctx, tp.ID)
	require.NoError(t, err)
	// raw = 1 + 2*1 = 3
	assert.InDelta(t, 0.47712, stored.TrendingScore, 1e-5)

	v, err := svc.ReactReply(ctx, tp.ID, reply.ID, author.ID, models.ReactionLike)
	require.NoError(t, err)
	assert.Equal(t, 1, v.Likes)
}

func TestTrendingDeletePermissions(t *testing.T) {
	f := newFixture(t)
	svc := f.trendingService()
	ctx := context.Background()
	author := f.user(t, "author", models.RoleUser)
	other := f.user(t, "other", models.RoleUser)
	admin := f.user(t, "admin", models.RoleAdmin)
	tp := f.topic(t, author, t0, 0)

	assert.ErrorIs(t, svc.Delete(ctx, tp.ID, other), ErrForbidden)
	require.NoError(t, svc.Delete(ctx, tp.ID, admin))
	assert.ErrorIs(t, svc.Delete(ctx, tp.ID, admin), ErrNotFound)
	assert.Len(t, f.logs.Logs, 1)
}
