package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/SanjayChandraSamudrala/forum-board/dto"
	"github.com/SanjayChandraSamudrala/forum-board/internal/models"
	"github.com/SanjayChandraSamudrala/forum-board/internal/ranking"
	"github.com/SanjayChandraSamudrala/forum-board/internal/repository"
	"github.com/SanjayChandraSamudrala/forum-board/internal/utils"
)

type TrendingService struct {
	Topics repository.TrendingRepository
	Audit  Auditor
	Now    func() time.Time

	present presenter
}

func NewTrendingService(topics repository.TrendingRepository, users repository.UserRepository, audit Auditor) *TrendingService {
	return &TrendingService{Topics: topics, Audit: audit, Now: time.Now, present: presenter{users: users}}
}

// List runs one listing pass: the page is fetched by stored score, every
// score on it is recomputed, the page is re-sorted, each topic gets its
// global rank, and scores and ranks are persisted together.
func (s *TrendingService) List(ctx context.Context, q repository.TopicQuery, viewer bson.ObjectID) (dto.PageResp[dto.TopicResp], error) {
	items, total, err := s.Topics.List(ctx, q)
	if err != nil {
		return dto.PageResp[dto.TopicResp]{}, err
	}

	now := s.Now()
	for i := range items {
		items[i].RefreshScore(now)
	}
	ranking.Sort(items, ranking.SortTrending)
	ranking.AssignRanks(items, q.Page, func(t *models.TrendingTopic, rank int) {
		t.TrendingRank = rank
	})
	if err := s.Topics.SaveRanking(ctx, items); err != nil {
		return dto.PageResp[dto.TopicResp]{}, err
	}

	out, err := s.present.topics(ctx, items, viewer, false)
	if err != nil {
		return dto.PageResp[dto.TopicResp]{}, err
	}
	return newPage(out, q.Page, total), nil
}

// Get counts the view and refreshes the topic's score.
func (s *TrendingService) Get(ctx context.Context, id, viewer bson.ObjectID) (dto.TopicResp, error) {
	t, err := s.Topics.IncrementViews(ctx, id)
	if err != nil {
		return dto.TopicResp{}, fromRepo(err, "trending topic")
	}
	if err := s.refreshScore(ctx, t); err != nil {
		return dto.TopicResp{}, err
	}
	return s.one(ctx, t, viewer)
}

func (s *TrendingService) Create(ctx context.Context, author Actor, req dto.CreateTopicReq) (dto.TopicResp, error) {
	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		return dto.TopicResp{}, fail(ErrInvalidInput, "topic is required")
	}
	now := s.Now().UTC()
	t := &models.TrendingTopic{
		Title:     utils.MaskProfanity(strings.TrimSpace(req.Title)),
		Content:   utils.MaskProfanity(strings.TrimSpace(req.Content)),
		Topic:     topic,
		AuthorID:  author.ID,
		Status:    models.TopicRising,
		Reactions: models.Reactions{Likes: models.ReactorSet{}, Dislikes: models.ReactorSet{}},
		Replies:   []models.Reply{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	t.RefreshScore(now)
	if err := s.Topics.Create(ctx, t); err != nil {
		return dto.TopicResp{}, fromRepo(err, "trending topic")
	}
	return s.one(ctx, t, author.ID)
}

func (s *TrendingService) Update(ctx context.Context, id bson.ObjectID, actor Actor, req dto.UpdateTopicReq) (dto.TopicResp, error) {
	t, err := s.Topics.FindByID(ctx, id)
	if err != nil {
		return dto.TopicResp{}, fromRepo(err, "trending topic")
	}
	if t.AuthorID != actor.ID {
		return dto.TopicResp{}, fail(ErrForbidden, "only the author can edit this topic")
	}

	patch := repository.TopicPatch{
		Title:     maskedPtr(req.Title),
		Content:   maskedPtr(req.Content),
		UpdatedAt: s.Now().UTC(),
	}
	if req.Topic != nil {
		topic := strings.TrimSpace(*req.Topic)
		patch.Topic = &topic
	}
	if req.Status != nil {
		st, err := models.ParseTopicStatus(*req.Status)
		if err != nil {
			return dto.TopicResp{}, fail(ErrInvalidInput, "%s", err.Error())
		}
		patch.Status = &st
	}

	t, err = s.Topics.Patch(ctx, id, patch)
	if err != nil {
		return dto.TopicResp{}, fromRepo(err, "trending topic")
	}
	return s.one(ctx, t, actor.ID)
}

func (s *TrendingService) Delete(ctx context.Context, id bson.ObjectID, actor Actor) error {
	t, err := s.Topics.FindByID(ctx, id)
	if err != nil {
		return fromRepo(err, "trending topic")
	}
	if !actor.canRemove(t.AuthorID) {
		return fail(ErrForbidden, "not allowed to delete this topic")
	}
	if err := s.Topics.Delete(ctx, id); err != nil {
		return fromRepo(err, "trending topic")
	}
	if t.AuthorID != actor.ID {
		s.Audit.Record(ctx, actor.ID, models.ActionContentModeration,
			"Deleted trending topic "+t.Title,
			map[string]any{"topicId": t.ID.Hex(), "authorId": t.AuthorID.Hex()})
	}
	return nil
}

func (s *TrendingService) AddReply(ctx context.Context, id bson.ObjectID, author Actor, content string) (dto.ReplyResp, error) {
	content = utils.MaskProfanity(strings.TrimSpace(content))
	if content == "" {
		return dto.ReplyResp{}, fail(ErrInvalidInput, "content is required")
	}

	reply := models.NewReply(author.ID, content, s.Now().UTC())
	t, err := s.Topics.PushReply(ctx, id, reply)
	if err != nil {
		return dto.ReplyResp{}, fromRepo(err, "trending topic")
	}
	if err := s.refreshScore(ctx, t); err != nil {
		return dto.ReplyResp{}, err
	}

	authors, err := s.present.authors(ctx, []bson.ObjectID{author.ID})
	if err != nil {
		return dto.ReplyResp{}, err
	}
	return presentReply(&reply, id, authors, author.ID), nil
}

func (s *TrendingService) React(ctx context.Context, id, userID bson.ObjectID, kind models.Reaction) (models.ReactionView, error) {
	t, err := s.Topics.React(ctx, id, userID, kind)
	if err != nil {
		return models.ReactionView{}, fromRepo(err, "trending topic")
	}
	if err := s.refreshScore(ctx, t); err != nil {
		return models.ReactionView{}, err
	}
	return t.View(userID), nil
}

func (s *TrendingService) ReactReply(ctx context.Context, topicID, replyID, userID bson.ObjectID, kind models.Reaction) (models.ReactionView, error) {
	t, err := s.Topics.ReactReply(ctx, topicID, replyID, userID, kind)
	if errors.Is(err, repository.ErrNotFound) {
		if _, ferr := s.Topics.FindByID(ctx, topicID); ferr == nil {
			return models.ReactionView{}, fail(ErrNotFound, "reply not found")
		}
	}
	if err != nil {
		return models.ReactionView{}, fromRepo(err, "trending topic")
	}
	if err := s.refreshScore(ctx, t); err != nil {
		return models.ReactionView{}, err
	}
	return t.FindReply(replyID).View(userID), nil
}

// refreshScore recomputes t's score from the document as written and stores
// the score field alone.
func (s *TrendingService) refreshScore(ctx context.Context, t *models.TrendingTopic) error {
	score := t.RefreshScore(s.Now())
	return fromRepo(s.Topics.SetScore(ctx, t.ID, score), "trending topic")
}

func (s *TrendingService) one(ctx context.Context, t *models.TrendingTopic, viewer bson.ObjectID) (dto.TopicResp, error) {
	out, err := s.present.topics(ctx, []models.TrendingTopic{*t}, viewer, true)
	if err != nil {
		return dto.TopicResp{}, err
	}
	return out[0], nil
}
