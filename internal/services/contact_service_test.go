package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/SanjayChandraSamudrala/forum-board/dto"
	"github.com/SanjayChandraSamudrala/forum-board/internal/models"
	"github.com/SanjayChandraSamudrala/forum-board/internal/ranking"
)

func TestContactLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewContactService(f.contacts, f.admin)
	svc.Now = f.clock.Now
	admin := f.user(t, "root", models.RoleAdmin)

	first, err := svc.Submit(ctx, dto.ContactReq{Name: "Ann", Email: "ANN@example.com", Subject: "hi", Message: "hello"})
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", first.Email)
	f.clock.Advance(time.Minute)
	second, err := svc.Submit(ctx, dto.ContactReq{Name: "Bob", Email: "bob@example.com", Message: "help"})
	require.NoError(t, err)

	_, err = svc.Submit(ctx, dto.ContactReq{Name: "Bob", Email: "bob@example.com", Message: "  "})
	assert.ErrorIs(t, err, ErrInvalidInput)

	m, err := svc.MarkRead(ctx, admin, first.ID)
	require.NoError(t, err)
	assert.True(t, m.IsRead)
	_, err = svc.MarkReplied(ctx, admin, second.ID)
	require.NoError(t, err)

	unread := false
	page, err := svc.List(ctx, models.ContactFilter{IsRead: &unread}, ranking.NewPage(1, 10))
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, second.ID, page.Items[0].ID)

	all, err := svc.List(ctx, models.ContactFilter{}, ranking.NewPage(1, 10))
	require.NoError(t, err)
	assert.EqualValues(t, 2, all.TotalCount)
	assert.Equal(t, second.ID, all.Items[0].ID)

	require.NoError(t, svc.Delete(ctx, admin, first.ID))
	assert.ErrorIs(t, svc.Delete(ctx, admin, first.ID), ErrNotFound)
	_, err = svc.MarkRead(ctx, admin, bson.NewObjectID())
	assert.ErrorIs(t, err, ErrNotFound)

	require.Len(t, f.logs.Logs, 3)
	for _, l := range f.logs.Logs {
		assert.Equal(t, models.ActionContentModeration, l.Action)
	}
}
