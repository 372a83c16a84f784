package services

import (
	"bytes"
	"context"
	"slices"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/SanjayChandraSamudrala/forum-board/dto"
	"github.com/SanjayChandraSamudrala/forum-board/internal/models"
	"github.com/SanjayChandraSamudrala/forum-board/internal/repository"
)

const deletedAuthor = "[deleted]"

type authorMap map[bson.ObjectID]dto.AuthorSummary

func (m authorMap) get(id bson.ObjectID) dto.AuthorSummary {
	if a, ok := m[id]; ok {
		return a
	}
	return dto.AuthorSummary{ID: id, Name: deletedAuthor}
}

// presenter resolves author summaries in one query per response.
type presenter struct {
	users repository.UserRepository
}

func (p presenter) authors(ctx context.Context, ids []bson.ObjectID) (authorMap, error) {
	slices.SortFunc(ids, func(a, b bson.ObjectID) int { return bytes.Compare(a[:], b[:]) })
	ids = slices.Compact(ids)

	users, err := p.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make(authorMap, len(users))
	for _, u := range users {
		out[u.ID] = dto.AuthorSummary{ID: u.ID, Name: u.Name, Image: u.Image, Role: string(u.Role)}
	}
	return out, nil
}

func postAuthorIDs(posts []models.Post, withReplies bool) []bson.ObjectID {
	var ids []bson.ObjectID
	for _, p := range posts {
		ids = append(ids, p.AuthorID)
		if withReplies {
			ids = appendReplyAuthors(ids, p.Replies)
		}
	}
	return ids
}

func topicAuthorIDs(topics []models.TrendingTopic, withReplies bool) []bson.ObjectID {
	var ids []bson.ObjectID
	for _, t := range topics {
		ids = append(ids, t.AuthorID)
		if withReplies {
			ids = appendReplyAuthors(ids, t.Replies)
		}
	}
	return ids
}

func appendReplyAuthors(ids []bson.ObjectID, replies []models.Reply) []bson.ObjectID {
	for _, r := range replies {
		ids = append(ids, r.AuthorID)
	}
	return ids
}

func presentReply(r *models.Reply, parent bson.ObjectID, authors authorMap, viewer bson.ObjectID) dto.ReplyResp {
	v := r.View(viewer)
	return dto.ReplyResp{
		ID:           r.ID,
		ParentID:     parent,
		Content:      r.Content,
		Author:       authors.get(r.AuthorID),
		Likes:        v.Likes,
		Dislikes:     v.Dislikes,
		UserLiked:    v.UserLiked,
		UserDisliked: v.UserDisliked,
		CreatedAt:    r.CreatedAt,
	}
}

func presentReplies(replies []models.Reply, parent bson.ObjectID, authors authorMap, viewer bson.ObjectID) []dto.ReplyResp {
	out := make([]dto.ReplyResp, 0, len(replies))
	for i := range replies {
		out = append(out, presentReply(&replies[i], parent, authors, viewer))
	}
	return out
}

func presentPost(p *models.Post, authors authorMap, viewer bson.ObjectID, withReplies bool) dto.PostResp {
	v := p.View(viewer)
	out := dto.PostResp{
		ID:           p.ID,
		Title:        p.Title,
		Content:      p.Content,
		Category:     p.Category,
		Author:       authors.get(p.AuthorID),
		Views:        p.Views,
		Status:       string(p.Status),
		Likes:        v.Likes,
		Dislikes:     v.Dislikes,
		UserLiked:    v.UserLiked,
		UserDisliked: v.UserDisliked,
		ReplyCount:   len(p.Replies),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
	if withReplies {
		out.Replies = presentReplies(p.Replies, p.ID, authors, viewer)
	}
	return out
}

func presentTopic(t *models.TrendingTopic, authors authorMap, viewer bson.ObjectID, withReplies bool) dto.TopicResp {
	v := t.View(viewer)
	out := dto.TopicResp{
		ID:            t.ID,
		Title:         t.Title,
		Content:       t.Content,
		Topic:         t.Topic,
		Author:        authors.get(t.AuthorID),
		Views:         t.Views,
		Status:        string(t.Status),
		TrendingScore: t.TrendingScore,
		TrendingRank:  t.TrendingRank,
		Likes:         v.Likes,
		Dislikes:      v.Dislikes,
		UserLiked:     v.UserLiked,
		UserDisliked:  v.UserDisliked,
		ReplyCount:    len(t.Replies),
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
	if withReplies {
		out.Replies = presentReplies(t.Replies, t.ID, authors, viewer)
	}
	return out
}

func (p presenter) posts(ctx context.Context, posts []models.Post, viewer bson.ObjectID, withReplies bool) ([]dto.PostResp, error) {
	authors, err := p.authors(ctx, postAuthorIDs(posts, withReplies))
	if err != nil {
		return nil, err
	}
	out := make([]dto.PostResp, 0, len(posts))
	for i := range posts {
		out = append(out, presentPost(&posts[i], authors, viewer, withReplies))
	}
	return out, nil
}

func (p presenter) topics(ctx context.Context, topics []models.TrendingTopic, viewer bson.ObjectID, withReplies bool) ([]dto.TopicResp, error) {
	authors, err := p.authors(ctx, topicAuthorIDs(topics, withReplies))
	if err != nil {
		return nil, err
	}
	out := make([]dto.TopicResp, 0, len(topics))
	for i := range topics {
		out = append(out, presentTopic(&topics[i], authors, viewer, withReplies))
	}
	return out, nil
}
