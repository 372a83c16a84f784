package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/SanjayChandraSamudrala/forum-board/dto"
	"github.com/SanjayChandraSamudrala/forum-board/internal/models"
	"github.com/SanjayChandraSamudrala/forum-board/internal/ranking"
	"github.com/SanjayChandraSamudrala/forum-board/internal/repository"
	"github.com/SanjayChandraSamudrala/forum-board/internal/repository/repotest"
)

// racingPosts runs other before the first write of an operation, and after
// any read it makes, so that writes from other requests land mid-operation.
type racingPosts struct {
	*repotest.Posts
	other func()
}

func (r *racingPosts) interleave() {
	if fn := r.other; fn != nil {
		r.other = nil
		fn()
	}
}

func (r *racingPosts) FindByID(ctx context.Context, id bson.ObjectID) (*models.Post, error) {
	p, err := r.Posts.FindByID(ctx, id)
	r.interleave()
	return p, err
}

func (r *racingPosts) Patch(ctx context.Context, id bson.ObjectID, patch repository.PostPatch) (*models.Post, error) {
	r.interleave()
	return r.Posts.Patch(ctx, id, patch)
}

func (r *racingPosts) PushReply(ctx context.Context, id bson.ObjectID, reply models.Reply) (*models.Post, error) {
	r.interleave()
	return r.Posts.PushReply(ctx, id, reply)
}

func (r *racingPosts) React(ctx context.Context, id, userID bson.ObjectID, kind models.Reaction) (*models.Post, error) {
	r.interleave()
	return r.Posts.React(ctx, id, userID, kind)
}

func (r *racingPosts) ReactReply(ctx context.Context, id, replyID, userID bson.ObjectID, kind models.Reaction) (*models.Post, error) {
	r.interleave()
	return r.Posts.ReactReply(ctx, id, replyID, userID, kind)
}

type racingTopics struct {
	*repotest.Trending
	other func()
}

func (r *racingTopics) interleave() {
	if fn := r.other; fn != nil {
		r.other = nil
		fn()
	}
}

func (r *racingTopics) PushReply(ctx context.Context, id bson.ObjectID, reply models.Reply) (*models.TrendingTopic, error) {
	r.interleave()
	return r.Trending.PushReply(ctx, id, reply)
}

func (r *racingTopics) React(ctx context.Context, id, userID bson.ObjectID, kind models.Reaction) (*models.TrendingTopic, error) {
	r.interleave()
	return r.Trending.React(ctx, id, userID, kind)
}

func racingPostService(f *fixture) (*PostService, *racingPosts) {
	repo := &racingPosts{Posts: f.posts}
	svc := NewPostService(repo, f.users, f.admin)
	svc.Now = f.clock.Now
	return svc, repo
}

// otherUserActivity likes the post as bob, adds bob's reply and counts a view.
func otherUserActivity(t *testing.T, f *fixture, postID, bob bson.ObjectID) func() {
	return func() {
		ctx := context.Background()
		_, err := f.posts.React(ctx, postID, bob, models.ReactionLike)
		require.NoError(t, err)
		_, err = f.posts.PushReply(ctx, postID, models.NewReply(bob, "me too", t0))
		require.NoError(t, err)
		_, err = f.posts.IncrementViews(ctx, postID)
		require.NoError(t, err)
	}
}

func TestPostReactKeepsOtherUsersWrites(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice", models.RoleUser)
	bob := f.user(t, "bob", models.RoleUser)
	p := f.post(t, alice, "go", t0)

	svc, repo := racingPostService(f)
	repo.other = otherUserActivity(t, f, p.ID, bob.ID)

	v, err := svc.React(ctx, p.ID, alice.ID, models.ReactionLike)
	require.NoError(t, err)
	assert.Equal(t, models.ReactionView{Likes: 2, UserLiked: true}, v)

	stored, err := f.posts.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, stored.Likes.Has(alice.ID))
	assert.True(t, stored.Likes.Has(bob.ID))
	assert.Len(t, stored.Replies, 1)
	assert.Equal(t, int64(1), stored.Views)
}

func TestPostReplyAndReplyReactionKeepOtherUsersWrites(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice", models.RoleUser)
	bob := f.user(t, "bob", models.RoleUser)
	p := f.post(t, alice, "go", t0)
	first := models.NewReply(alice.ID, "first", t0)
	_, err := f.posts.PushReply(ctx, p.ID, first)
	require.NoError(t, err)

	svc, repo := racingPostService(f)
	repo.other = otherUserActivity(t, f, p.ID, bob.ID)
	_, err = svc.AddReply(ctx, p.ID, alice, "second")
	require.NoError(t, err)

	repo.other = func() {
		_, err := f.posts.ReactReply(ctx, p.ID, first.ID, bob.ID, models.ReactionLike)
		require.NoError(t, err)
	}
	v, err := svc.ReactReply(ctx, p.ID, first.ID, alice.ID, models.ReactionLike)
	require.NoError(t, err)
	assert.Equal(t, 2, v.Likes)

	stored, err := f.posts.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Replies, 3)
	assert.True(t, stored.Likes.Has(bob.ID))
	assert.Equal(t, int64(1), stored.Views)
	assert.Equal(t, 2, stored.FindReply(first.ID).Likes.Len())
}

func TestPostUpdateKeepsConcurrentReactions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice", models.RoleUser)
	bob := f.user(t, "bob", models.RoleUser)
	p := f.post(t, alice, "go", t0)

	svc, repo := racingPostService(f)
	repo.other = otherUserActivity(t, f, p.ID, bob.ID)

	title := "edited"
	got, err := svc.Update(ctx, p.ID, alice, dto.UpdatePostReq{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "edited", got.Title)

	stored, err := f.posts.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "edited", stored.Title)
	assert.True(t, stored.Likes.Has(bob.ID))
	assert.Len(t, stored.Replies, 1)
	assert.Equal(t, int64(1), stored.Views)
}

func TestPostReactParallelUsers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	author := f.user(t, "author", models.RoleUser)
	p := f.post(t, author, "go", t0)
	svc := f.postService()

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		uid := bson.NewObjectID()
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.React(ctx, p.ID, uid, models.ReactionLike)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	stored, err := f.posts.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, n, stored.Likes.Len())
}

func TestTrendingWritesKeepOtherUsersWrites(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice", models.RoleUser)
	bob := f.user(t, "bob", models.RoleUser)
	tp := f.topic(t, alice, t0, 0)

	repo := &racingTopics{Trending: f.topics}
	svc := NewTrendingService(repo, f.users, f.admin)
	svc.Now = f.clock.Now

	repo.other = func() {
		_, err := f.topics.React(ctx, tp.ID, bob.ID, models.ReactionLike)
		require.NoError(t, err)
		_, err = f.topics.IncrementViews(ctx, tp.ID)
		require.NoError(t, err)
	}
	_, err := svc.AddReply(ctx, tp.ID, alice, "hello")
	require.NoError(t, err)

	repo.other = func() {
		_, err := f.topics.PushReply(ctx, tp.ID, models.NewReply(bob.ID, "hi", t0))
		require.NoError(t, err)
	}
	v, err := svc.React(ctx, tp.ID, alice.ID, models.ReactionDislike)
	require.NoError(t, err)
	assert.Equal(t, models.ReactionView{Likes: 1, Dislikes: 1, UserDisliked: true}, v)

	stored, err := f.topics.FindByID(ctx, tp.ID)
	require.NoError(t, err)
	assert.True(t, stored.Likes.Has(bob.ID))
	assert.True(t, stored.Dislikes.Has(alice.ID))
	assert.Len(t, stored.Replies, 2)
	assert.Equal(t, int64(1), stored.Views)
	assert.InDelta(t, ranking.TrendingScore(stored.Engagement(), t0), stored.TrendingScore, 1e-9)
}
