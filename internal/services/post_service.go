package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/SanjayChandraSamudrala/forum-board/config"
	"github.com/SanjayChandraSamudrala/forum-board/dto"
	"github.com/SanjayChandraSamudrala/forum-board/internal/models"
	"github.com/SanjayChandraSamudrala/forum-board/internal/ranking"
	"github.com/SanjayChandraSamudrala/forum-board/internal/repository"
	"github.com/SanjayChandraSamudrala/forum-board/internal/utils"
)

type PostService struct {
	Posts repository.PostRepository
	Audit Auditor
	Now   func() time.Time

	present presenter
}

func NewPostService(posts repository.PostRepository, users repository.UserRepository, audit Auditor) *PostService {
	return &PostService{Posts: posts, Audit: audit, Now: time.Now, present: presenter{users: users}}
}

func (s *PostService) List(ctx context.Context, q repository.PostQuery, viewer bson.ObjectID) (dto.PageResp[dto.PostResp], error) {
	items, total, err := s.Posts.List(ctx, q)
	if err != nil {
		return dto.PageResp[dto.PostResp]{}, err
	}
	out, err := s.present.posts(ctx, items, viewer, false)
	if err != nil {
		return dto.PageResp[dto.PostResp]{}, err
	}
	return newPage(out, q.Page, total), nil
}

// ListAll ignores status and category.
func (s *PostService) ListAll(ctx context.Context, p ranking.Page, viewer bson.ObjectID) (dto.PageResp[dto.PostResp], error) {
	items, total, err := s.Posts.ListAll(ctx, p)
	if err != nil {
		return dto.PageResp[dto.PostResp]{}, err
	}
	out, err := s.present.posts(ctx, items, viewer, false)
	if err != nil {
		return dto.PageResp[dto.PostResp]{}, err
	}
	return newPage(out, p, total), nil
}

func (s *PostService) Categories(ctx context.Context) ([]string, error) {
	return s.Posts.DistinctCategories(ctx)
}

// TrendingCategories ranks categories of active posts that were created or
// replied to inside the window.
func (s *PostService) TrendingCategories(ctx context.Context, tr ranking.TimeRange) ([]ranking.CategoryStat, error) {
	since, ok := tr.Since(s.Now())
	if !ok {
		since = time.Time{}
	}
	rows, err := s.Posts.CategoryActivity(ctx, since)
	if err != nil {
		return nil, err
	}
	return ranking.TopCategories(rows, config.TrendingCategoryLimit), nil
}

// Get returns a post with replies and counts the view.
func (s *PostService) Get(ctx context.Context, id, viewer bson.ObjectID) (dto.PostResp, error) {
	p, err := s.Posts.IncrementViews(ctx, id)
	if err != nil {
		return dto.PostResp{}, fromRepo(err, "post")
	}
	out, err := s.present.posts(ctx, []models.Post{*p}, viewer, true)
	if err != nil {
		return dto.PostResp{}, err
	}
	return out[0], nil
}

func (s *PostService) Create(ctx context.Context, author Actor, req dto.CreatePostReq) (dto.PostResp, error) {
	now := s.Now().UTC()
	p := &models.Post{
		Title:     utils.MaskProfanity(strings.TrimSpace(req.Title)),
		Content:   utils.MaskProfanity(strings.TrimSpace(req.Content)),
		Category:  strings.ToLower(strings.TrimSpace(req.Category)),
		AuthorID:  author.ID,
		Status:    models.PostActive,
		Reactions: models.Reactions{Likes: models.ReactorSet{}, Dislikes: models.ReactorSet{}},
		Replies:   []models.Reply{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if p.Title == "" || p.Content == "" || p.Category == "" {
		return dto.PostResp{}, fail(ErrInvalidInput, "title, content and category are required")
	}
	if err := s.Posts.Create(ctx, p); err != nil {
		return dto.PostResp{}, fromRepo(err, "post")
	}
	return s.one(ctx, p, author.ID)
}

func (s *PostService) Update(ctx context.Context, id bson.ObjectID, actor Actor, req dto.UpdatePostReq) (dto.PostResp, error) {
	p, err := s.Posts.FindByID(ctx, id)
	if err != nil {
		return dto.PostResp{}, fromRepo(err, "post")
	}
	if p.AuthorID != actor.ID {
		return dto.PostResp{}, fail(ErrForbidden, "only the author can edit this post")
	}

	patch := repository.PostPatch{
		Title:     maskedPtr(req.Title),
		Content:   maskedPtr(req.Content),
		UpdatedAt: s.Now().UTC(),
	}
	if req.Category != nil {
		c := strings.ToLower(strings.TrimSpace(*req.Category))
		patch.Category = &c
	}
	if req.Status != nil {
		st, err := models.ParsePostStatus(*req.Status)
		if err != nil {
			return dto.PostResp{}, fail(ErrInvalidInput, "%s", err.Error())
		}
		patch.Status = &st
	}

	p, err = s.Posts.Patch(ctx, id, patch)
	if err != nil {
		return dto.PostResp{}, fromRepo(err, "post")
	}
	return s.one(ctx, p, actor.ID)
}

func (s *PostService) Delete(ctx context.Context, id bson.ObjectID, actor Actor) error {
	p, err := s.Posts.FindByID(ctx, id)
	if err != nil {
		return fromRepo(err, "post")
	}
	if !actor.canRemove(p.AuthorID) {
		return fail(ErrForbidden, "not allowed to delete this post")
	}
	if err := s.Posts.Delete(ctx, id); err != nil {
		return fromRepo(err, "post")
	}
	if p.AuthorID != actor.ID {
		s.Audit.Record(ctx, actor.ID, models.ActionContentModeration,
			"Deleted post "+p.Title,
			map[string]any{"postId": p.ID.Hex(), "authorId": p.AuthorID.Hex()})
	}
	return nil
}

func (s *PostService) AddReply(ctx context.Context, id bson.ObjectID, author Actor, content string) (dto.ReplyResp, error) {
	content = utils.MaskProfanity(strings.TrimSpace(content))
	if content == "" {
		return dto.ReplyResp{}, fail(ErrInvalidInput, "content is required")
	}

	reply := models.NewReply(author.ID, content, s.Now().UTC())
	if _, err := s.Posts.PushReply(ctx, id, reply); err != nil {
		return dto.ReplyResp{}, fromRepo(err, "post")
	}

	authors, err := s.present.authors(ctx, []bson.ObjectID{author.ID})
	if err != nil {
		return dto.ReplyResp{}, err
	}
	return presentReply(&reply, id, authors, author.ID), nil
}

// React toggles the caller's like or dislike on a post.
func (s *PostService) React(ctx context.Context, id, userID bson.ObjectID, kind models.Reaction) (models.ReactionView, error) {
	p, err := s.Posts.React(ctx, id, userID, kind)
	if err != nil {
		return models.ReactionView{}, fromRepo(err, "post")
	}
	return p.View(userID), nil
}

// ReactReply toggles the caller's like or dislike on one reply of a post.
func (s *PostService) ReactReply(ctx context.Context, postID, replyID, userID bson.ObjectID, kind models.Reaction) (models.ReactionView, error) {
	p, err := s.Posts.ReactReply(ctx, postID, replyID, userID, kind)
	if errors.Is(err, repository.ErrNotFound) {
		if _, ferr := s.Posts.FindByID(ctx, postID); ferr == nil {
			return models.ReactionView{}, fail(ErrNotFound, "reply not found")
		}
	}
	if err != nil {
		return models.ReactionView{}, fromRepo(err, "post")
	}
	return p.FindReply(replyID).View(userID), nil
}

func (s *PostService) one(ctx context.Context, p *models.Post, viewer bson.ObjectID) (dto.PostResp, error) {
	out, err := s.present.posts(ctx, []models.Post{*p}, viewer, true)
	if err != nil {
		return dto.PostResp{}, err
	}
	return out[0], nil
}

// maskedPtr trims and masks an optional text field.
func maskedPtr(v *string) *string {
	if v == nil {
		return nil
	}
	out := utils.MaskProfanity(strings.TrimSpace(*v))
	return &out
}
