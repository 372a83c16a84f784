package ranking

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopCategoriesGroupsAndOrders(t *testing.T) {
	rows := []CategoryActivity{
		{Category: "Go", Replies: 3, LastActivity: now.Add(-5 * time.Hour)},
		{Category: "go", Replies: 2, LastActivity: now.Add(-1 * time.Hour)},
		{Category: "rust", Replies: 5, LastActivity: now.Add(-2 * time.Hour)},
		{Category: "zig", Replies: 5, LastActivity: now.Add(-30 * time.Minute)},
		{Category: "", Replies: 99},
	}

	got := TopCategories(rows, 10)
	require.Len(t, got, 3)
	assert.Equal(t, "go", got[0].Name)
	assert.Equal(t, 5, got[0].TotalComments)
	assert.Equal(t, 2, got[0].PostCount)
	assert.Equal(t, now.Add(-time.Hour), got[0].LatestActivity)
	// equal replies fall back to most recent activity
	assert.Equal(t, "zig", got[1].Name)
	assert.Equal(t, "rust", got[2].Name)
}

func TestTopCategoriesTruncates(t *testing.T) {
	var rows []CategoryActivity
	for i := range 15 {
		rows = append(rows, CategoryActivity{Category: fmt.Sprintf("c%d", i), Replies: i, LastActivity: now})
	}
	got := TopCategories(rows, 10)
	assert.Len(t, got, 10)
	assert.Equal(t, "c14", got[0].Name)
}
