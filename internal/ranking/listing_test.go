package ranking

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	id      string
	created time.Time
	views   int64
	likes   int
	replies int
	score   float64
}

func (i item) Created() time.Time { return i.created }
func (i item) ViewCount() int64   { return i.views }
func (i item) LikeCount() int     { return i.likes }
func (i item) ReplyCount() int    { return i.replies }
func (i item) Score() float64     { return i.score }
func (i item) TieKey() string     { return i.id }

func ids(items []item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.id
	}
	return out
}

func fixture() []item {
	return []item{
		{id: "a", created: now.Add(-3 * time.Hour), views: 5, likes: 1, replies: 4, score: 0.2},
		{id: "b", created: now.Add(-1 * time.Hour), views: 5, likes: 3, replies: 0, score: 0.9},
		{id: "c", created: now.Add(-2 * time.Hour), views: 9, likes: 3, replies: 1, score: 0.5},
	}
}

func TestSortKeys(t *testing.T) {
	cases := []struct {
		key  SortKey
		want []string
	}{
		{SortLatest, []string{"b", "c", "a"}},
		{SortOldest, []string{"a", "c", "b"}},
		{SortPopular, []string{"c", "b", "a"}},
		{SortMostLiked, []string{"b", "c", "a"}},
		{SortMostReplies, []string{"a", "c", "b"}},
		{SortTrending, []string{"b", "c", "a"}},
	}
	for _, tc := range cases {
		t.Run(string(tc.key), func(t *testing.T) {
			items := fixture()
			Sort(items, tc.key)
			assert.Equal(t, tc.want, ids(items))
		})
	}
}

func TestSortTieBreaksByRecencyThenID(t *testing.T) {
	items := []item{
		{id: "x", created: now},
		{id: "z", created: now},
		{id: "y", created: now.Add(time.Minute)},
	}
	Sort(items, SortPopular)
	assert.Equal(t, []string{"y", "z", "x"}, ids(items))
}

func TestParseSortKey(t *testing.T) {
	k, err := ParseSortKey("")
	require.NoError(t, err)
	assert.Equal(t, SortLatest, k)

	_, err = ParseSortKey("random")
	assert.Error(t, err)
}

func TestParseTimeRange(t *testing.T) {
	r, err := ParseTimeRange("", Range24h)
	require.NoError(t, err)
	assert.Equal(t, Range24h, r)

	r, err = ParseTimeRange("7D", Range24h)
	require.NoError(t, err)
	assert.Equal(t, Range7d, r)

	_, err = ParseTimeRange("1y", Range24h)
	assert.Error(t, err)
}

func TestTimeRangeSince(t *testing.T) {
	since, ok := Range24h.Since(now)
	assert.True(t, ok)
	assert.Equal(t, now.Add(-24*time.Hour), since)

	since, ok = Range30d.Since(now)
	assert.True(t, ok)
	assert.Equal(t, now.AddDate(0, 0, -30), since)

	_, ok = RangeAll.Since(now)
	assert.False(t, ok)
}

func TestPageClamps(t *testing.T) {
	assert.Equal(t, Page{Number: 1, Size: 10}, NewPage(0, 0))
	assert.Equal(t, Page{Number: 3, Size: 100}, NewPage(3, 500))
	assert.Equal(t, 20, NewPage(3, 10).Offset())

	huge := NewPage(math.MaxInt/5, 10)
	assert.Equal(t, math.MaxInt/10, huge.Number)
	assert.Positive(t, huge.Offset())
	assert.Empty(t, Window([]int{1, 2, 3}, huge))

	last := NewPage(math.MaxInt, 100)
	assert.Positive(t, last.Offset())
	assert.GreaterOrEqual(t, math.MaxInt-last.Offset(), last.Size)
}

func TestPageTotalPages(t *testing.T) {
	p := NewPage(1, 10)
	assert.Equal(t, 0, p.TotalPages(0))
	assert.Equal(t, 1, p.TotalPages(10))
	assert.Equal(t, 2, p.TotalPages(11))
}

func TestWindowAndRanks(t *testing.T) {
	var all []int
	for i := range 25 {
		all = append(all, i)
	}
	p := NewPage(3, 10)
	page := Window(all, p)
	assert.Equal(t, []int{20, 21, 22, 23, 24}, page)
	assert.Empty(t, Window(all, NewPage(4, 10)))

	ranks := map[int]int{}
	AssignRanks(page, p, func(v *int, r int) { ranks[*v] = r })
	assert.Equal(t, 21, ranks[20])
	assert.Equal(t, 25, ranks[24])
}

func TestPagesAreDisjoint(t *testing.T) {
	var items []item
	for i := range 23 {
		items = append(items, item{id: fmt.Sprintf("%02d", i), created: now.Add(-time.Duration(i) * time.Minute)})
	}
	Sort(items, SortLatest)

	seen := map[string]bool{}
	for n := 1; n <= NewPage(1, 10).TotalPages(int64(len(items))); n++ {
		for _, it := range Window(items, NewPage(n, 10)) {
			assert.False(t, seen[it.id], it.id)
			seen[it.id] = true
		}
	}
	assert.Len(t, seen, 23)
}
