// Package repotest holds in-memory repository implementations for tests.
package repotest

import (
	"slices"
	"strings"

	"github.com/SanjayChandraSamudrala/forum-board/internal/models"
)

func cloneReactions(r models.Reactions) models.Reactions {
	return models.Reactions{
		Likes:    slices.Clone(r.Likes),
		Dislikes: slices.Clone(r.Dislikes),
	}
}

func cloneReplies(in []models.Reply) []models.Reply {
	if in == nil {
		return nil
	}
	out := make([]models.Reply, len(in))
	for i, r := range in {
		r.Reactions = cloneReactions(r.Reactions)
		out[i] = r
	}
	return out
}

func clonePost(p models.Post) models.Post {
	p.Reactions = cloneReactions(p.Reactions)
	p.Replies = cloneReplies(p.Replies)
	return p
}

func cloneTopic(t models.TrendingTopic) models.TrendingTopic {
	t.Reactions = cloneReactions(t.Reactions)
	t.Replies = cloneReplies(t.Replies)
	return t
}

func cloneUser(u models.User) models.User {
	u.Bookmarks = slices.Clone(u.Bookmarks)
	return u
}

func cloneCommunity(c models.Community) models.Community {
	c.Members = slices.Clone(c.Members)
	return c
}

func containsFold(s, q string) bool {
	return q != "" && strings.Contains(strings.ToLower(s), strings.ToLower(q))
}
