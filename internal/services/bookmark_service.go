package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/SanjayChandraSamudrala/forum-board/dto"
	"github.com/SanjayChandraSamudrala/forum-board/internal/models"
	"github.com/SanjayChandraSamudrala/forum-board/internal/repository"
)

// BookmarkTarget names a saved item. Parent is the post or topic holding a
// reply and is zero for top-level items.
type BookmarkTarget struct {
	Kind   models.BookmarkKind
	Parent bson.ObjectID
	Item   bson.ObjectID
}

type BookmarkService struct {
	Users  repository.UserRepository
	Posts  repository.PostRepository
	Topics repository.TrendingRepository
	Now    func() time.Time

	present presenter
}

func NewBookmarkService(users repository.UserRepository, posts repository.PostRepository, topics repository.TrendingRepository) *BookmarkService {
	return &BookmarkService{Users: users, Posts: posts, Topics: topics, Now: time.Now, present: presenter{users: users}}
}

// Save is idempotent. The target must exist.
func (s *BookmarkService) Save(ctx context.Context, userID bson.ObjectID, t BookmarkTarget) error {
	if err := s.checkTarget(ctx, t); err != nil {
		return err
	}
	b := models.Bookmark{Kind: t.Kind, ParentID: t.Parent, ItemID: t.Item, SavedAt: s.Now().UTC()}
	return fromRepo(s.Users.AddBookmark(ctx, userID, b), "user")
}

func (s *BookmarkService) Unsave(ctx context.Context, userID bson.ObjectID, t BookmarkTarget) error {
	return fromRepo(s.Users.RemoveBookmark(ctx, userID, t.Kind, t.Item), "user")
}

func (s *BookmarkService) IsSaved(ctx context.Context, userID bson.ObjectID, t BookmarkTarget) (bool, error) {
	u, err := s.Users.FindByID(ctx, userID)
	if err != nil {
		return false, fromRepo(err, "user")
	}
	return u.HasBookmark(t.Kind, t.Item), nil
}

// List resolves every bookmark to its current document. Bookmarks whose
// target was deleted are skipped.
func (s *BookmarkService) List(ctx context.Context, userID bson.ObjectID) (dto.SavedItemsResp, error) {
	out := dto.SavedItemsResp{
		Posts:           []dto.PostResp{},
		Replies:         []dto.ReplyResp{},
		TrendingTopics:  []dto.TopicResp{},
		TrendingReplies: []dto.ReplyResp{},
	}
	u, err := s.Users.FindByID(ctx, userID)
	if err != nil {
		return out, fromRepo(err, "user")
	}

	var postIDs, topicIDs []bson.ObjectID
	for _, b := range u.Bookmarks {
		switch b.Kind {
		case models.BookmarkPost:
			postIDs = append(postIDs, b.ItemID)
		case models.BookmarkReply:
			postIDs = append(postIDs, b.ParentID)
		case models.BookmarkTopic:
			topicIDs = append(topicIDs, b.ItemID)
		case models.BookmarkTopicReply:
			topicIDs = append(topicIDs, b.ParentID)
		}
	}

	posts, err := s.Posts.FindByIDs(ctx, postIDs)
	if err != nil {
		return out, err
	}
	topics, err := s.Topics.FindByIDs(ctx, topicIDs)
	if err != nil {
		return out, err
	}
	postByID := make(map[bson.ObjectID]*models.Post, len(posts))
	for i := range posts {
		postByID[posts[i].ID] = &posts[i]
	}
	topicByID := make(map[bson.ObjectID]*models.TrendingTopic, len(topics))
	for i := range topics {
		topicByID[topics[i].ID] = &topics[i]
	}

	ids := append(postAuthorIDs(posts, true), topicAuthorIDs(topics, true)...)
	authors, err := s.present.authors(ctx, ids)
	if err != nil {
		return out, err
	}

	for _, b := range u.Bookmarks {
		switch b.Kind {
		case models.BookmarkPost:
			if p, ok := postByID[b.ItemID]; ok {
				out.Posts = append(out.Posts, presentPost(p, authors, userID, false))
			}
		case models.BookmarkReply:
			if p, ok := postByID[b.ParentID]; ok {
				if r := p.FindReply(b.ItemID); r != nil {
					out.Replies = append(out.Replies, presentReply(r, p.ID, authors, userID))
				}
			}
		case models.BookmarkTopic:
			if t, ok := topicByID[b.ItemID]; ok {
				out.TrendingTopics = append(out.TrendingTopics, presentTopic(t, authors, userID, false))
			}
		case models.BookmarkTopicReply:
			if t, ok := topicByID[b.ParentID]; ok {
				if r := t.FindReply(b.ItemID); r != nil {
					out.TrendingReplies = append(out.TrendingReplies, presentReply(r, t.ID, authors, userID))
				}
			}
		}
	}
	return out, nil
}

func (s *BookmarkService) checkTarget(ctx context.Context, t BookmarkTarget) error {
	switch t.Kind {
	case models.BookmarkPost:
		_, err := s.Posts.FindByID(ctx, t.Item)
		return fromRepo(err, "post")
	case models.BookmarkReply:
		p, err := s.Posts.FindByID(ctx, t.Parent)
		if err != nil {
			return fromRepo(err, "post")
		}
		if p.FindReply(t.Item) == nil {
			return fail(ErrNotFound, "reply not found")
		}
	case models.BookmarkTopic:
		_, err := s.Topics.FindByID(ctx, t.Item)
		return fromRepo(err, "trending topic")
	case models.BookmarkTopicReply:
		tp, err := s.Topics.FindByID(ctx, t.Parent)
		if err != nil {
			return fromRepo(err, "trending topic")
		}
		if tp.FindReply(t.Item) == nil {
			return fail(ErrNotFound, "reply not found")
		}
	default:
		return fail(ErrInvalidInput, "unknown bookmark kind %q", t.Kind)
	}
	return nil
}
