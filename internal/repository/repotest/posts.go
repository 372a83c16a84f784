package repotest

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/SanjayChandraSamudrala/forum-board/internal/models"
	"github.com/SanjayChandraSamudrala/forum-board/internal/ranking"
	"github.com/SanjayChandraSamudrala/forum-board/internal/repository"
)

type Posts struct {
	mu   sync.Mutex
	docs map[bson.ObjectID]models.Post
}

var _ repository.PostRepository = (*Posts)(nil)

func NewPosts(seed ...models.Post) *Posts {
	r := &Posts{docs: map[bson.ObjectID]models.Post{}}
	for _, p := range seed {
		r.docs[p.ID] = clonePost(p)
	}
	return r
}

func (r *Posts) Create(_ context.Context, p *models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID.IsZero() {
		p.ID = bson.NewObjectID()
	}
	if _, ok := r.docs[p.ID]; ok {
		return repository.ErrDuplicate
	}
	r.docs[p.ID] = clonePost(*p)
	return nil
}

func (r *Posts) FindByID(_ context.Context, id bson.ObjectID) (*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.docs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	p = clonePost(p)
	return &p, nil
}

func (r *Posts) FindByIDs(_ context.Context, ids []bson.ObjectID) ([]models.Post, error) {
	return r.filter(func(p models.Post) bool { return slices.Contains(ids, p.ID) }), nil
}

func (r *Posts) IncrementViews(_ context.Context, id bson.ObjectID) (*models.Post, error) {
	return r.mutate(id, func(p *models.Post) bool {
		p.Views++
		return true
	})
}

func (r *Posts) Patch(_ context.Context, id bson.ObjectID, patch repository.PostPatch) (*models.Post, error) {
	return r.mutate(id, func(p *models.Post) bool {
		if patch.Title != nil {
			p.Title = *patch.Title
		}
		if patch.Content != nil {
			p.Content = *patch.Content
		}
		if patch.Category != nil {
			p.Category = *patch.Category
		}
		if patch.Status != nil {
			p.Status = *patch.Status
		}
		p.UpdatedAt = patch.UpdatedAt
		return true
	})
}

func (r *Posts) PushReply(_ context.Context, id bson.ObjectID, reply models.Reply) (*models.Post, error) {
	return r.mutate(id, func(p *models.Post) bool {
		p.Replies = append(p.Replies, reply)
		p.UpdatedAt = reply.CreatedAt
		return true
	})
}

func (r *Posts) React(_ context.Context, id, userID bson.ObjectID, kind models.Reaction) (*models.Post, error) {
	return r.mutate(id, func(p *models.Post) bool {
		p.Apply(userID, kind)
		return true
	})
}

func (r *Posts) ReactReply(_ context.Context, id, replyID, userID bson.ObjectID, kind models.Reaction) (*models.Post, error) {
	return r.mutate(id, func(p *models.Post) bool {
		reply := p.FindReply(replyID)
		if reply == nil {
			return false
		}
		reply.Apply(userID, kind)
		return true
	})
}

// mutate applies fn to the stored post under the lock. fn returning false
// reports a missing sub-document and leaves the post unchanged.
func (r *Posts) mutate(id bson.ObjectID, fn func(*models.Post) bool) (*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.docs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	p := clonePost(cur)
	if !fn(&p) {
		return nil, repository.ErrNotFound
	}
	r.docs[id] = p
	out := clonePost(p)
	return &out, nil
}

func (r *Posts) Delete(_ context.Context, id bson.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.docs, id)
	return nil
}

func (r *Posts) DeleteByAuthor(_ context.Context, authorID bson.ObjectID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, p := range r.docs {
		if p.AuthorID == authorID {
			delete(r.docs, id)
			n++
		}
	}
	return n, nil
}

func (r *Posts) List(_ context.Context, q repository.PostQuery) ([]models.Post, int64, error) {
	status := q.Status
	if status == "" {
		status = models.PostActive
	}
	category := strings.ToLower(strings.TrimSpace(q.Category))
	items := r.filter(func(p models.Post) bool {
		if p.Status != status {
			return false
		}
		if category != "" && p.Category != category {
			return false
		}
		return q.Since.IsZero() || !p.LastActivity().Before(q.Since)
	})
	ranking.Sort(items, q.Sort)
	return ranking.Window(items, q.Page), int64(len(items)), nil
}

func (r *Posts) ListAll(_ context.Context, p ranking.Page) ([]models.Post, int64, error) {
	items := r.filter(func(models.Post) bool { return true })
	ranking.Sort(items, ranking.SortLatest)
	return ranking.Window(items, p), int64(len(items)), nil
}

func (r *Posts) ListByAuthor(_ context.Context, authorID bson.ObjectID) ([]models.Post, error) {
	return r.sorted(func(p models.Post) bool { return p.AuthorID == authorID }), nil
}

func (r *Posts) ListRepliedBy(_ context.Context, userID bson.ObjectID) ([]models.Post, error) {
	return r.sorted(func(p models.Post) bool {
		return slices.ContainsFunc(p.Replies, func(rp models.Reply) bool { return rp.AuthorID == userID })
	}), nil
}

func (r *Posts) ListLikedBy(_ context.Context, userID bson.ObjectID) ([]models.Post, error) {
	return r.sorted(func(p models.Post) bool {
		if p.Likes.Has(userID) {
			return true
		}
		return slices.ContainsFunc(p.Replies, func(rp models.Reply) bool { return rp.Likes.Has(userID) })
	}), nil
}

func (r *Posts) DistinctCategories(context.Context) ([]string, error) {
	var out []string
	for _, p := range r.filter(func(models.Post) bool { return true }) {
		if c := strings.ToLower(strings.TrimSpace(p.Category)); c != "" {
			out = append(out, c)
		}
	}
	slices.Sort(out)
	return slices.Compact(out), nil
}

func (r *Posts) CategoryActivity(_ context.Context, since time.Time) ([]ranking.CategoryActivity, error) {
	var out []ranking.CategoryActivity
	for _, p := range r.filter(func(p models.Post) bool {
		return p.Status == models.PostActive && !p.LastActivity().Before(since)
	}) {
		out = append(out, ranking.CategoryActivity{
			Category:     p.Category,
			Replies:      len(p.Replies),
			LastActivity: p.LastActivity(),
		})
	}
	return out, nil
}

func (r *Posts) Search(_ context.Context, q string, limit int) ([]models.Post, error) {
	out := r.sorted(func(p models.Post) bool {
		return containsFold(p.Title, q) || containsFold(p.Content, q)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *Posts) Count(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.docs)), nil
}

func (r *Posts) filter(keep func(models.Post) bool) []models.Post {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Post{}
	for _, p := range r.docs {
		if keep(p) {
			out = append(out, clonePost(p))
		}
	}
	return out
}

func (r *Posts) sorted(keep func(models.Post) bool) []models.Post {
	out := r.filter(keep)
	ranking.Sort(out, ranking.SortLatest)
	return out
}
