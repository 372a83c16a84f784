package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/SanjayChandraSamudrala/forum-board/dto"
	"github.com/SanjayChandraSamudrala/forum-board/internal/models"
	"github.com/SanjayChandraSamudrala/forum-board/internal/repository"
)

type CommunityService struct {
	Communities repository.CommunityRepository
	Users       repository.UserRepository
	Audit       Auditor
	Now         func() time.Time
}

func NewCommunityService(communities repository.CommunityRepository, users repository.UserRepository, audit Auditor) *CommunityService {
	return &CommunityService{Communities: communities, Users: users, Audit: audit, Now: time.Now}
}

func (s *CommunityService) Create(ctx context.Context, creator Actor, req dto.CreateCommunityReq) (*models.Community, error) {
	name := strings.TrimSpace(req.Name)
	if n := len([]rune(name)); n < 3 || n > 50 {
		return nil, fail(ErrInvalidInput, "community name must be between 3 and 50 characters")
	}
	c := &models.Community{
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		CreatorID:   creator.ID,
		Members:     []bson.ObjectID{creator.ID},
		IsPrivate:   req.IsPrivate,
		CreatedAt:   s.Now().UTC(),
	}
	if err := s.Communities.Create(ctx, c); err != nil {
		return nil, fromRepo(err, "community name")
	}
	return c, nil
}

func (s *CommunityService) ListPublic(ctx context.Context) ([]models.Community, error) {
	return s.Communities.ListPublic(ctx)
}

// Get hides private communities from non-members.
func (s *CommunityService) Get(ctx context.Context, viewer Actor, id bson.ObjectID) (*models.Community, error) {
	c, err := s.Communities.FindByID(ctx, id)
	if err != nil {
		return nil, fromRepo(err, "community")
	}
	if c.IsPrivate && !c.IsMember(viewer.ID) {
		return nil, fail(ErrForbidden, "access denied: private community")
	}
	return c, nil
}

func (s *CommunityService) AddMember(ctx context.Context, actor Actor, id, userID bson.ObjectID) (*models.Community, error) {
	c, u, err := s.load(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if c.IsPrivate && c.CreatorID != actor.ID && !actor.IsAdmin() {
		return nil, fail(ErrForbidden, "only the creator or an admin can add members to a private community")
	}
	if c.IsMember(userID) {
		return nil, fail(ErrInvalidInput, "user is already a member")
	}
	if err := s.Communities.AddMember(ctx, id, userID); err != nil {
		return nil, fromRepo(err, "community")
	}
	c.Members = append(c.Members, userID)

	s.Audit.Record(ctx, actor.ID, models.ActionCommunityManagement,
		fmt.Sprintf("Added user %s to community %s", u.Email, c.Name),
		map[string]any{"communityId": c.ID.Hex(), "userId": userID.Hex()})
	return c, nil
}

func (s *CommunityService) RemoveMember(ctx context.Context, actor Actor, id, userID bson.ObjectID) (*models.Community, error) {
	c, u, err := s.load(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if c.CreatorID != actor.ID && !actor.IsAdmin() {
		return nil, fail(ErrForbidden, "only the creator or an admin can remove members")
	}
	if !c.IsMember(userID) {
		return nil, fail(ErrInvalidInput, "user is not a member of this community")
	}
	if userID == c.CreatorID && actor.ID != userID {
		return nil, fail(ErrForbidden, "only the creator can remove themselves from the community")
	}
	if err := s.Communities.RemoveMember(ctx, id, userID); err != nil {
		return nil, fromRepo(err, "community")
	}
	members := c.Members[:0]
	for _, m := range c.Members {
		if m != userID {
			members = append(members, m)
		}
	}
	c.Members = members

	s.Audit.Record(ctx, actor.ID, models.ActionCommunityManagement,
		fmt.Sprintf("Removed user %s from community %s", u.Email, c.Name),
		map[string]any{"communityId": c.ID.Hex(), "userId": userID.Hex()})
	return c, nil
}

func (s *CommunityService) load(ctx context.Context, id, userID bson.ObjectID) (*models.Community, *models.User, error) {
	c, err := s.Communities.FindByID(ctx, id)
	if err != nil {
		return nil, nil, fromRepo(err, "community")
	}
	u, err := s.Users.FindByID(ctx, userID)
	if err != nil {
		return nil, nil, fromRepo(err, "user")
	}
	return c, u, nil
}
