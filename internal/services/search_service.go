package services

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/SanjayChandraSamudrala/forum-board/config"
	"github.com/SanjayChandraSamudrala/forum-board/dto"
	"github.com/SanjayChandraSamudrala/forum-board/internal/repository"
)

type SearchService struct {
	Posts       repository.PostRepository
	Users       repository.UserRepository
	Communities repository.CommunityRepository

	present presenter
}

func NewSearchService(posts repository.PostRepository, users repository.UserRepository, communities repository.CommunityRepository) *SearchService {
	return &SearchService{Posts: posts, Users: users, Communities: communities, present: presenter{users: users}}
}

// Search matches q literally and case-insensitively.
func (s *SearchService) Search(ctx context.Context, q string, viewer bson.ObjectID) (dto.SearchResp, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return dto.SearchResp{}, fail(ErrInvalidInput, "search query is required")
	}

	posts, err := s.Posts.Search(ctx, q, config.SearchLimit)
	if err != nil {
		return dto.SearchResp{}, err
	}
	users, err := s.Users.Search(ctx, q, config.SearchLimit)
	if err != nil {
		return dto.SearchResp{}, err
	}
	communities, err := s.Communities.Search(ctx, q, config.SearchLimit)
	if err != nil {
		return dto.SearchResp{}, err
	}

	out := dto.SearchResp{Users: make([]dto.UserResp, 0, len(users)), Communities: communities}
	if out.Posts, err = s.present.posts(ctx, posts, viewer, false); err != nil {
		return dto.SearchResp{}, err
	}
	for i := range users {
		out.Users = append(out.Users, dto.NewUserResp(&users[i]))
	}
	return out, nil
}
