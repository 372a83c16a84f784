package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/SanjayChandraSamudrala/forum-board/internal/models"
)

func TestBookmarksRoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewBookmarkService(f.users, f.posts, f.topics)
	svc.Now = f.clock.Now
	author := f.user(t, "author", models.RoleUser)
	u := f.user(t, "u", models.RoleUser)

	p := f.post(t, author, "go", t0)
	tp := f.topic(t, author, t0, 0)
	reply, err := f.postService().AddReply(ctx, p.ID, author, "answer")
	require.NoError(t, err)

	postT := BookmarkTarget{Kind: models.BookmarkPost, Item: p.ID}
	replyT := BookmarkTarget{Kind: models.BookmarkReply, Parent: p.ID, Item: reply.ID}
	topicT := BookmarkTarget{Kind: models.BookmarkTopic, Item: tp.ID}

	require.NoError(t, svc.Save(ctx, u.ID, postT))
	require.NoError(t, svc.Save(ctx, u.ID, postT))
	require.NoError(t, svc.Save(ctx, u.ID, replyT))
	require.NoError(t, svc.Save(ctx, u.ID, topicT))

	saved, err := svc.IsSaved(ctx, u.ID, postT)
	require.NoError(t, err)
	assert.True(t, saved)

	items, err := svc.List(ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, items.Posts, 1)
	require.Len(t, items.Replies, 1)
	assert.Equal(t, p.ID, items.Replies[0].ParentID)
	assert.Len(t, items.TrendingTopics, 1)
	assert.Empty(t, items.TrendingReplies)

	require.NoError(t, svc.Unsave(ctx, u.ID, postT))
	saved, err = svc.IsSaved(ctx, u.ID, postT)
	require.NoError(t, err)
	assert.False(t, saved)
}

func TestBookmarksSkipDeletedTargets(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewBookmarkService(f.users, f.posts, f.topics)
	author := f.user(t, "author", models.RoleUser)

	p := f.post(t, author, "go", t0)
	require.NoError(t, svc.Save(ctx, author.ID, BookmarkTarget{Kind: models.BookmarkPost, Item: p.ID}))
	require.NoError(t, f.posts.Delete(ctx, p.ID))

	items, err := svc.List(ctx, author.ID)
	require.NoError(t, err)
	assert.Empty(t, items.Posts)
}

func TestBookmarkMissingTarget(t *testing.T) {
	f := newFixture(t)
	svc := NewBookmarkService(f.users, f.posts, f.topics)
	u := f.user(t, "u", models.RoleUser)

	err := svc.Save(context.Background(), u.ID, BookmarkTarget{Kind: models.BookmarkTopic, Item: bson.NewObjectID()})
	assert.ErrorIs(t, err, ErrNotFound)

	p := f.post(t, u, "go", t0)
	err = svc.Save(context.Background(), u.ID, BookmarkTarget{Kind: models.BookmarkReply, Parent: p.ID, Item: bson.NewObjectID()})
	assert.ErrorIs(t, err, ErrNotFound)
}
