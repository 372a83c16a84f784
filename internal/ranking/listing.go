package ranking

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/SanjayChandraSamudrala/forum-board/config"
)

type SortKey string

const (
	SortLatest      SortKey = "latest"
	SortOldest      SortKey = "oldest"
	SortPopular     SortKey = "popular"
	SortMostLiked   SortKey = "mostLiked"
	SortMostReplies SortKey = "mostReplies"
	SortTrending    SortKey = "trending"
)

// ParseSortKey maps a query value to a SortKey. Empty means latest.
func ParseSortKey(s string) (SortKey, error) {
	switch SortKey(s) {
	case "":
		return SortLatest, nil
	case SortLatest, SortOldest, SortPopular, SortMostLiked, SortMostReplies, SortTrending:
		return SortKey(s), nil
	}
	return "", fmt.Errorf("unknown sort %q", s)
}

type TimeRange string

const (
	Range24h TimeRange = "24h"
	Range7d  TimeRange = "7d"
	Range30d TimeRange = "30d"
	RangeAll TimeRange = "all"
)

// ParseTimeRange maps a query value to a TimeRange, falling back to def
// when s is empty.
func ParseTimeRange(s string, def TimeRange) (TimeRange, error) {
	switch TimeRange(strings.ToLower(s)) {
	case "":
		return def, nil
	case Range24h:
		return Range24h, nil
	case Range7d:
		return Range7d, nil
	case Range30d:
		return Range30d, nil
	case RangeAll:
		return RangeAll, nil
	}
	return "", fmt.Errorf("unknown time range %q", s)
}

// Since returns the start of the window ending at now. ok is false for
// RangeAll, which has no lower bound.
func (r TimeRange) Since(now time.Time) (since time.Time, ok bool) {
	switch r {
	case Range24h:
		return now.Add(-24 * time.Hour), true
	case Range7d:
		return now.AddDate(0, 0, -7), true
	case Range30d:
		return now.AddDate(0, 0, -30), true
	}
	return time.Time{}, false
}

// Page is a 1-based page request.
type Page struct {
	Number int
	Size   int
}

// NewPage clamps raw query values into a usable page. Number is capped so
// that Offset and Offset+Size never overflow.
func NewPage(number, size int) Page {
	if size < 1 {
		size = config.DefaultPageSize
	}
	if size > config.MaxPageSize {
		size = config.MaxPageSize
	}
	if number < 1 {
		number = 1
	}
	if last := math.MaxInt / size; number > last {
		number = last
	}
	return Page{Number: number, Size: size}
}

func (p Page) Offset() int { return (p.Number - 1) * p.Size }

func (p Page) TotalPages(total int64) int {
	if total <= 0 {
		return 0
	}
	return int((total + int64(p.Size) - 1) / int64(p.Size))
}

// Window slices items to the page. Out-of-range pages are empty.
func Window[T any](items []T, p Page) []T {
	start := p.Offset()
	if start >= len(items) {
		return []T{}
	}
	end := min(start+p.Size, len(items))
	return items[start:end]
}

// Rankable is anything the listing sorts understand.
type Rankable interface {
	Created() time.Time
	ViewCount() int64
	LikeCount() int
	ReplyCount() int
	Score() float64
	TieKey() string
}

// Sort orders items by key in place. Ties fall back to newest first and
// then to TieKey descending so the order is total.
func Sort[T Rankable](items []T, key SortKey) {
	slices.SortStableFunc(items, func(a, b T) int {
		if c := primary(a, b, key); c != 0 {
			return c
		}
		if c := b.Created().Compare(a.Created()); c != 0 {
			return c
		}
		return strings.Compare(b.TieKey(), a.TieKey())
	})
}

func primary[T Rankable](a, b T, key SortKey) int {
	switch key {
	case SortOldest:
		return a.Created().Compare(b.Created())
	case SortPopular:
		return cmpDesc(a.ViewCount(), b.ViewCount())
	case SortMostLiked:
		return cmpDesc(a.LikeCount(), b.LikeCount())
	case SortMostReplies:
		return cmpDesc(a.ReplyCount(), b.ReplyCount())
	case SortTrending:
		return cmpDesc(a.Score(), b.Score())
	}
	return 0
}

func cmpDesc[N int | int64 | float64](a, b N) int {
	switch {
	case a > b:
		return -1
	case a < b:
		return 1
	}
	return 0
}

// AssignRanks calls set with the 1-based global rank of each item on the
// page, which is its position plus the page offset.
func AssignRanks[T any](items []T, p Page, set func(item *T, rank int)) {
	for i := range items {
		set(&items[i], p.Offset()+i+1)
	}
}
