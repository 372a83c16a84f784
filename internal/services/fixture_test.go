package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/SanjayChandraSamudrala/forum-board/internal/models"
	"github.com/SanjayChandraSamudrala/forum-board/internal/repository/repotest"
)

var t0 = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

type clock struct{ t time.Time }

func (c *clock) Now() time.Time          { return c.t }
func (c *clock) Advance(d time.Duration) { c.t = c.t.Add(d) }

type fixture struct {
	clock       *clock
	users       *repotest.Users
	posts       *repotest.Posts
	topics      *repotest.Trending
	sessions    *repotest.Sessions
	communities *repotest.Communities
	contacts    *repotest.Contacts
	logs        *repotest.AdminLogs

	admin *AdminService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		clock:       &clock{t: t0},
		users:       repotest.NewUsers(),
		posts:       repotest.NewPosts(),
		topics:      repotest.NewTrending(),
		sessions:    repotest.NewSessions(),
		communities: repotest.NewCommunities(),
		contacts:    repotest.NewContacts(),
		logs:        repotest.NewAdminLogs(),
	}
	f.sessions.Now = f.clock.Now
	f.admin = NewAdminService(f.logs, f.users)
	f.admin.Now = f.clock.Now
	return f
}

func (f *fixture) user(t *testing.T, name string, role models.Role) Actor {
	t.Helper()
	u := &models.User{
		Name:      name,
		Email:     name + "@example.com",
		Role:      role,
		CreatedAt: f.clock.Now(),
	}
	require.NoError(t, f.users.Create(context.Background(), u))
	return Actor{ID: u.ID, Role: role}
}

func (f *fixture) postService() *PostService {
	s := NewPostService(f.posts, f.users, f.admin)
	s.Now = f.clock.Now
	return s
}

func (f *fixture) trendingService() *TrendingService {
	s := NewTrendingService(f.topics, f.users, f.admin)
	s.Now = f.clock.Now
	return s
}

func (f *fixture) post(t *testing.T, author Actor, category string, created time.Time) models.Post {
	t.Helper()
	p := models.Post{
		ID:        bson.NewObjectID(),
		Title:     "title",
		Content:   "content",
		Category:  category,
		AuthorID:  author.ID,
		Status:    models.PostActive,
		CreatedAt: created,
		UpdatedAt: created,
	}
	require.NoError(t, f.posts.Create(context.Background(), &p))
	return p
}

func (f *fixture) topic(t *testing.T, author Actor, created time.Time, views int64) models.TrendingTopic {
	t.Helper()
	tp := models.TrendingTopic{
		ID:        bson.NewObjectID(),
		Title:     "topic",
		Content:   "content",
		Topic:     "tech",
		AuthorID:  author.ID,
		Views:     views,
		Status:    models.TopicRising,
		CreatedAt: created,
		UpdatedAt: created,
	}
	require.NoError(t, f.topics.Create(context.Background(), &tp))
	return tp
}
