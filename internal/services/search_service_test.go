package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SanjayChandraSamudrala/forum-board/dto"
	"github.com/SanjayChandraSamudrala/forum-board/internal/models"
)

func TestSearch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewSearchService(f.posts, f.users, f.communities)
	communities := NewCommunityService(f.communities, f.users, f.admin)
	gopher := f.user(t, "gopher", models.RoleUser)
	f.user(t, "rustacean", models.RoleUser)

	_, err := f.postService().Create(ctx, gopher, dto.CreatePostReq{Title: "Why GO (1.22)?", Content: "generics", Category: "lang"})
	require.NoError(t, err)
	_, err = communities.Create(ctx, gopher, dto.CreateCommunityReq{Name: "Go (golang) fans"})
	require.NoError(t, err)

	res, err := svc.Search(ctx, "go (", gopher.ID)
	require.NoError(t, err)
	assert.Len(t, res.Posts, 1)
	assert.Len(t, res.Communities, 1)
	assert.Empty(t, res.Users)

	res, err = svc.Search(ctx, "GOPHER", gopher.ID)
	require.NoError(t, err)
	require.Len(t, res.Users, 1)
	assert.Equal(t, "gopher", res.Users[0].Name)

	_, err = svc.Search(ctx, "   ", gopher.ID)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
