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

func TestPostReactScenario(t *testing.T) {
	f := newFixture(t)
	svc := f.postService()
	ctx := context.Background()
	author := f.user(t, "author", models.RoleUser)
	u := f.user(t, "u", models.RoleUser)
	p := f.post(t, author, "go", t0)

	v, err := svc.React(ctx, p.ID, u.ID, models.ReactionLike)
	require.NoError(t, err)
	assert.Equal(t, models.ReactionView{Likes: 1, UserLiked: true}, v)

	v, err = svc.React(ctx, p.ID, u.ID, models.ReactionLike)
	require.NoError(t, err)
	assert.Equal(t, models.ReactionView{}, v)

	_, err = svc.React(ctx, p.ID, u.ID, models.ReactionLike)
	require.NoError(t, err)
	v, err = svc.React(ctx, p.ID, u.ID, models.ReactionDislike)
	require.NoError(t, err)
	assert.Equal(t, models.ReactionView{Dislikes: 1, UserDisliked: true}, v)

	stored, err := f.posts.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Likes)
	assert.Equal(t, models.ReactorSet{u.ID}, stored.Dislikes)
}

func TestPostReactNotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.postService().React(context.Background(), bson.NewObjectID(), bson.NewObjectID(), models.ReactionLike)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostReplyReactions(t *testing.T) {
	f := newFixture(t)
	svc := f.postService()
	ctx := context.Background()
	author := f.user(t, "author", models.RoleUser)
	u := f.user(t, "u", models.RoleUser)
	p := f.post(t, author, "go", t0)

	reply, err := svc.AddReply(ctx, p.ID, author, "  first!  ")
	require.NoError(t, err)
	assert.Equal(t, "first!", reply.Content)
	assert.Equal(t, "author", reply.Author.Name)
	assert.Equal(t, p.ID, reply.ParentID)

	v, err := svc.ReactReply(ctx, p.ID, reply.ID, u.ID, models.ReactionDislike)
	require.NoError(t, err)
	assert.Equal(t, models.ReactionView{Dislikes: 1, UserDisliked: true}, v)

	_, err = svc.ReactReply(ctx, p.ID, bson.NewObjectID(), u.ID, models.ReactionLike)
	assert.ErrorIs(t, err, ErrNotFound)

	// post-level reactions are untouched by reply reactions
	got, err := svc.Get(ctx, p.ID, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Dislikes)
	require.Len(t, got.Replies, 1)
	assert.True(t, got.Replies[0].UserDisliked)
}

func TestPostGetCountsViews(t *testing.T) {
	f := newFixture(t)
	svc := f.postService()
	author := f.user(t, "author", models.RoleUser)
	p := f.post(t, author, "go", t0)

	_, err := svc.Get(context.Background(), p.ID, bson.NilObjectID)
	require.NoError(t, err)
	got, err := svc.Get(context.Background(), p.ID, bson.NilObjectID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.Views)
	assert.False(t, got.UserLiked)
}

func TestPostCreateNormalizes(t *testing.T) {
	f := newFixture(t)
	author := f.user(t, "author", models.RoleUser)

	got, err := f.postService().Create(context.Background(), author, dto.CreatePostReq{
		Title:    "What the shit",
		Content:  "body",
		Category: " GoLang ",
	})
	require.NoError(t, err)
	assert.Equal(t, "What the ****", got.Title)
	assert.Equal(t, "golang", got.Category)
	assert.Equal(t, "active", got.Status)
	assert.Equal(t, t0, got.CreatedAt)
}

func TestPostUpdateAuthorOnly(t *testing.T) {
	f := newFixture(t)
	svc := f.postService()
	author := f.user(t, "author", models.RoleUser)
	admin := f.user(t, "admin", models.RoleAdmin)
	p := f.post(t, author, "go", t0)

	title := "new"
	_, err := svc.Update(context.Background(), p.ID, admin, dto.UpdatePostReq{Title: &title})
	assert.ErrorIs(t, err, ErrForbidden)

	status := "closed"
	got, err := svc.Update(context.Background(), p.ID, author, dto.UpdatePostReq{Title: &title, Status: &status})
	require.NoError(t, err)
	assert.Equal(t, "new", got.Title)
	assert.Equal(t, "closed", got.Status)
}

func TestPostDeletePermissions(t *testing.T) {
	f := newFixture(t)
	svc := f.postService()
	ctx := context.Background()
	author := f.user(t, "author", models.RoleUser)
	other := f.user(t, "other", models.RoleUser)
	mod := f.user(t, "mod", models.RoleModerator)

	p := f.post(t, author, "go", t0)
	assert.ErrorIs(t, svc.Delete(ctx, p.ID, other), ErrForbidden)
	require.NoError(t, svc.Delete(ctx, p.ID, mod))
	_, err := f.posts.FindByID(ctx, p.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	require.Len(t, f.logs.Logs, 1)
	assert.Equal(t, models.ActionContentModeration, f.logs.Logs[0].Action)
	assert.Equal(t, mod.ID, f.logs.Logs[0].AdminID)

	own := f.post(t, author, "go", t0)
	require.NoError(t, svc.Delete(ctx, own.ID, author))
	assert.Len(t, f.logs.Logs, 1)
}

func TestPostListPagination(t *testing.T) {
	f := newFixture(t)
	svc := f.postService()
	author := f.user(t, "author", models.RoleUser)
	for i := range 23 {
		f.post(t, author, "go", t0.Add(-time.Duration(i)*time.Minute))
	}

	seen := map[bson.ObjectID]bool{}
	for n := 1; n <= 3; n++ {
		page, err := svc.List(context.Background(), repository.PostQuery{
			Sort: ranking.SortLatest,
			Page: ranking.NewPage(n, 10),
		}, bson.NilObjectID)
		require.NoError(t, err)
		assert.Equal(t, int64(23), page.TotalCount)
		assert.Equal(t, 3, page.TotalPages)
		assert.Equal(t, n, page.CurrentPage)
		for _, p := range page.Items {
			assert.False(t, seen[p.ID])
			seen[p.ID] = true
		}
	}
	assert.Len(t, seen, 23)
}

func TestPostListEmptyPage(t *testing.T) {
	f := newFixture(t)
	page, err := f.postService().List(context.Background(), repository.PostQuery{Page: ranking.NewPage(1, 10)}, bson.NilObjectID)
	require.NoError(t, err)
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
	assert.Equal(t, 0, page.TotalPages)
}

func TestTrendingCategories(t *testing.T) {
	f := newFixture(t)
	svc := f.postService()
	ctx := context.Background()
	author := f.user(t, "author", models.RoleUser)

	old := f.post(t, author, "rust", t0.Add(-72*time.Hour))
	f.post(t, author, "go", t0.Add(-time.Hour))
	f.post(t, author, "ancient", t0.Add(-72*time.Hour))

	// a fresh reply pulls an old post into the window
	_, err := svc.AddReply(ctx, old.ID, author, "bump")
	require.NoError(t, err)
	_, err = svc.AddReply(ctx, old.ID, author, "bump again")
	require.NoError(t, err)

	cats, err := svc.TrendingCategories(ctx, ranking.Range24h)
	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.Equal(t, "rust", cats[0].Name)
	assert.Equal(t, 2, cats[0].TotalComments)
	assert.Equal(t, "go", cats[1].Name)
}
