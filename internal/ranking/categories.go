package ranking

import (
	"cmp"
	"slices"
	"strings"
	"time"
)

// CategoryActivity is one post's contribution to its category inside the
// aggregation window.
type CategoryActivity struct {
	Category     string    `bson:"category"`
	Replies      int       `bson:"replies"`
	LastActivity time.Time `bson:"last_activity"`
}

type CategoryStat struct {
	Name           string    `json:"name"`
	TotalComments  int       `json:"totalComments"`
	PostCount      int       `json:"postCount"`
	LatestActivity time.Time `json:"latestActivity"`
}

// TopCategories groups rows by lowercased category and returns at most
// limit stats, most replies first, then most recently active.
func TopCategories(rows []CategoryActivity, limit int) []CategoryStat {
	byName := map[string]*CategoryStat{}
	for _, r := range rows {
		name := strings.ToLower(strings.TrimSpace(r.Category))
		if name == "" {
			continue
		}
		st, ok := byName[name]
		if !ok {
			st = &CategoryStat{Name: name}
			byName[name] = st
		}
		st.TotalComments += r.Replies
		st.PostCount++
		if r.LastActivity.After(st.LatestActivity) {
			st.LatestActivity = r.LastActivity
		}
	}

	out := make([]CategoryStat, 0, len(byName))
	for _, st := range byName {
		out = append(out, *st)
	}
	slices.SortFunc(out, func(a, b CategoryStat) int {
		if c := cmp.Compare(b.TotalComments, a.TotalComments); c != 0 {
			return c
		}
		if c := b.LatestActivity.Compare(a.LatestActivity); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
