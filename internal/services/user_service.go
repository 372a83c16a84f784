package services

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/SanjayChandraSamudrala/forum-board/dto"
	"github.com/SanjayChandraSamudrala/forum-board/internal/models"
	"github.com/SanjayChandraSamudrala/forum-board/internal/repository"
)

type UserService struct {
	Users    repository.UserRepository
	Posts    repository.PostRepository
	Sessions repository.SessionRepository
	Audit    Auditor

	present presenter
}

func NewUserService(users repository.UserRepository, posts repository.PostRepository, sessions repository.SessionRepository, audit Auditor) *UserService {
	return &UserService{Users: users, Posts: posts, Sessions: sessions, Audit: audit, present: presenter{users: users}}
}

func (s *UserService) List(ctx context.Context) ([]dto.UserResp, error) {
	users, err := s.Users.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResp, 0, len(users))
	for i := range users {
		out = append(out, dto.NewUserResp(&users[i]))
	}
	return out, nil
}

// Delete removes a user with their posts and revokes their sessions.
func (s *UserService) Delete(ctx context.Context, admin Actor, id bson.ObjectID) error {
	u, err := s.Users.FindByID(ctx, id)
	if err != nil {
		return fromRepo(err, "user")
	}
	removed, err := s.Posts.DeleteByAuthor(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Users.Delete(ctx, id); err != nil {
		return fromRepo(err, "user")
	}
	if err := s.Sessions.DeleteByUser(ctx, id.Hex()); err != nil {
		return err
	}
	s.Audit.Record(ctx, admin.ID, models.ActionUserManagement,
		fmt.Sprintf("Deleted user %s", u.Email),
		map[string]any{"targetUserId": id.Hex(), "postsRemoved": removed})
	return nil
}

// ChangeRole sets a new role and revokes the user's sessions so the new role
// applies from their next login.
func (s *UserService) ChangeRole(ctx context.Context, admin Actor, id bson.ObjectID, role models.Role) (dto.UserResp, error) {
	u, err := s.Users.FindByID(ctx, id)
	if err != nil {
		return dto.UserResp{}, fromRepo(err, "user")
	}
	old := u.Role
	if err := s.Users.SetRole(ctx, id, role); err != nil {
		return dto.UserResp{}, fromRepo(err, "user")
	}
	if old != role {
		if err := s.Sessions.DeleteByUser(ctx, id.Hex()); err != nil {
			return dto.UserResp{}, err
		}
	}
	u.Role = role
	s.Audit.Record(ctx, admin.ID, models.ActionUserManagement,
		fmt.Sprintf("Updated user %s role from %s to %s", u.Email, old, role),
		map[string]any{"targetUserId": id.Hex(), "oldRole": string(old), "newRole": string(role)})
	return dto.NewUserResp(u), nil
}

// Content returns the threads a user started and the threads they replied to.
func (s *UserService) Content(ctx context.Context, userID, viewer bson.ObjectID) (dto.UserContentResp, error) {
	if _, err := s.Users.FindByID(ctx, userID); err != nil {
		return dto.UserContentResp{}, fromRepo(err, "user")
	}
	threads, err := s.Posts.ListByAuthor(ctx, userID)
	if err != nil {
		return dto.UserContentResp{}, err
	}
	responses, err := s.Posts.ListRepliedBy(ctx, userID)
	if err != nil {
		return dto.UserContentResp{}, err
	}

	var out dto.UserContentResp
	if out.Threads, err = s.present.posts(ctx, threads, viewer, false); err != nil {
		return dto.UserContentResp{}, err
	}
	if out.Responses, err = s.present.posts(ctx, responses, viewer, false); err != nil {
		return dto.UserContentResp{}, err
	}
	return out, nil
}

// LikedContent returns posts and replies the user currently likes.
func (s *UserService) LikedContent(ctx context.Context, userID, viewer bson.ObjectID) (dto.LikedContentResp, error) {
	if _, err := s.Users.FindByID(ctx, userID); err != nil {
		return dto.LikedContentResp{}, fromRepo(err, "user")
	}
	posts, err := s.Posts.ListLikedBy(ctx, userID)
	if err != nil {
		return dto.LikedContentResp{}, err
	}
	authors, err := s.present.authors(ctx, postAuthorIDs(posts, true))
	if err != nil {
		return dto.LikedContentResp{}, err
	}

	out := dto.LikedContentResp{Posts: []dto.PostResp{}, Replies: []dto.ReplyResp{}}
	for i := range posts {
		p := &posts[i]
		if p.Likes.Has(userID) {
			out.Posts = append(out.Posts, presentPost(p, authors, viewer, false))
		}
		for j := range p.Replies {
			if p.Replies[j].Likes.Has(userID) {
				out.Replies = append(out.Replies, presentReply(&p.Replies[j], p.ID, authors, viewer))
			}
		}
	}
	return out, nil
}
