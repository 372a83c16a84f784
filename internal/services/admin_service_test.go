package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SanjayChandraSamudrala/forum-board/internal/models"
	"github.com/SanjayChandraSamudrala/forum-board/internal/ranking"
)

func TestDashboard(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := f.user(t, "root", models.RoleAdmin)
	f.user(t, "mod", models.RoleModerator)
	f.user(t, "ann", models.RoleUser)
	f.user(t, "bob", models.RoleUser)

	f.admin.Record(ctx, admin.ID, models.ActionOther, "earlier", nil)
	f.clock.Advance(time.Minute)

	d, err := f.admin.Dashboard(ctx, admin)
	require.NoError(t, err)
	assert.EqualValues(t, 4, d.TotalUsers)
	assert.EqualValues(t, 1, d.TotalAdmins)
	assert.EqualValues(t, 1, d.TotalModerators)
	require.Len(t, d.RecentLogs, 1)

	require.Len(t, f.logs.Logs, 2)
	assert.Equal(t, models.ActionSystemSettings, f.logs.Logs[1].Action)

	page, err := f.admin.ListLogs(ctx, models.ActionSystemSettings, ranking.NewPage(1, 20))
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.TotalCount)
	assert.Equal(t, 1, page.TotalPages)

	page, err = f.admin.ListLogs(ctx, "", ranking.NewPage(1, 20))
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, models.ActionSystemSettings, page.Items[0].Action)
}

func TestAuditFailureIsNotSurfaced(t *testing.T) {
	f := newFixture(t)
	f.logs.Err = errors.New("disk full")
	author := f.user(t, "ann", models.RoleUser)
	mod := f.user(t, "mod", models.RoleModerator)
	p := f.post(t, author, "go", t0)

	require.NoError(t, f.postService().Delete(context.Background(), p.ID, mod))
	assert.Empty(t, f.logs.Logs)
}
