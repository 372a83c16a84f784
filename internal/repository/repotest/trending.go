package repotest

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/SanjayChandraSamudrala/forum-board/internal/models"
	"github.com/SanjayChandraSamudrala/forum-board/internal/ranking"
	"github.com/SanjayChandraSamudrala/forum-board/internal/repository"
)

type Trending struct {
	mu   sync.Mutex
	docs map[bson.ObjectID]models.TrendingTopic

	// RankingWrites counts SaveRanking calls.
	RankingWrites int
}

var _ repository.TrendingRepository = (*Trending)(nil)

func NewTrending(seed ...models.TrendingTopic) *Trending {
	r := &Trending{docs: map[bson.ObjectID]models.TrendingTopic{}}
	for _, t := range seed {
		r.docs[t.ID] = cloneTopic(t)
	}
	return r
}

func (r *Trending) Create(_ context.Context, t *models.TrendingTopic) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t.ID.IsZero() {
		t.ID = bson.NewObjectID()
	}
	if _, ok := r.docs[t.ID]; ok {
		return repository.ErrDuplicate
	}
	r.docs[t.ID] = cloneTopic(*t)
	return nil
}

func (r *Trending) FindByID(_ context.Context, id bson.ObjectID) (*models.TrendingTopic, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.docs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	t = cloneTopic(t)
	return &t, nil
}

func (r *Trending) FindByIDs(_ context.Context, ids []bson.ObjectID) ([]models.TrendingTopic, error) {
	return r.filter(func(t models.TrendingTopic) bool { return slices.Contains(ids, t.ID) }), nil
}

func (r *Trending) IncrementViews(_ context.Context, id bson.ObjectID) (*models.TrendingTopic, error) {
	return r.mutate(id, func(t *models.TrendingTopic) bool {
		t.Views++
		return true
	})
}

func (r *Trending) Patch(_ context.Context, id bson.ObjectID, patch repository.TopicPatch) (*models.TrendingTopic, error) {
	return r.mutate(id, func(t *models.TrendingTopic) bool {
		if patch.Title != nil {
			t.Title = *patch.Title
		}
		if patch.Content != nil {
			t.Content = *patch.Content
		}
		if patch.Topic != nil {
			t.Topic = *patch.Topic
		}
		if patch.Status != nil {
			t.Status = *patch.Status
		}
		t.UpdatedAt = patch.UpdatedAt
		return true
	})
}

func (r *Trending) PushReply(_ context.Context, id bson.ObjectID, reply models.Reply) (*models.TrendingTopic, error) {
	return r.mutate(id, func(t *models.TrendingTopic) bool {
		t.Replies = append(t.Replies, reply)
		t.UpdatedAt = reply.CreatedAt
		return true
	})
}

func (r *Trending) React(_ context.Context, id, userID bson.ObjectID, kind models.Reaction) (*models.TrendingTopic, error) {
	return r.mutate(id, func(t *models.TrendingTopic) bool {
		t.Apply(userID, kind)
		return true
	})
}

func (r *Trending) ReactReply(_ context.Context, id, replyID, userID bson.ObjectID, kind models.Reaction) (*models.TrendingTopic, error) {
	return r.mutate(id, func(t *models.TrendingTopic) bool {
		reply := t.FindReply(replyID)
		if reply == nil {
			return false
		}
		reply.Apply(userID, kind)
		return true
	})
}

func (r *Trending) SetScore(_ context.Context, id bson.ObjectID, score float64) error {
	_, err := r.mutate(id, func(t *models.TrendingTopic) bool {
		t.TrendingScore = score
		return true
	})
	return err
}

// mutate applies fn to the stored topic under the lock. fn returning false
// reports a missing sub-document and leaves the topic unchanged.
func (r *Trending) mutate(id bson.ObjectID, fn func(*models.TrendingTopic) bool) (*models.TrendingTopic, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.docs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	t := cloneTopic(cur)
	if !fn(&t) {
		return nil, repository.ErrNotFound
	}
	r.docs[id] = t
	out := cloneTopic(t)
	return &out, nil
}

func (r *Trending) Delete(_ context.Context, id bson.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.docs, id)
	return nil
}

// List orders by stored score then recency, like the Mongo implementation.
func (r *Trending) List(_ context.Context, q repository.TopicQuery) ([]models.TrendingTopic, int64, error) {
	statuses := q.Statuses
	if len(statuses) == 0 {
		statuses = models.DefaultTopicStatuses
	}
	topic := strings.TrimSpace(q.Topic)
	items := r.filter(func(t models.TrendingTopic) bool {
		if !slices.Contains(statuses, t.Status) {
			return false
		}
		if topic != "" && t.Topic != topic {
			return false
		}
		return q.Since.IsZero() || !t.CreatedAt.Before(q.Since)
	})
	slices.SortStableFunc(items, func(a, b models.TrendingTopic) int {
		if c := cmp.Compare(b.TrendingScore, a.TrendingScore); c != 0 {
			return c
		}
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(b.ID.Hex(), a.ID.Hex())
	})
	return ranking.Window(items, q.Page), int64(len(items)), nil
}

func (r *Trending) SaveRanking(_ context.Context, topics []models.TrendingTopic) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.RankingWrites++
	for _, t := range topics {
		cur, ok := r.docs[t.ID]
		if !ok {
			continue
		}
		cur.TrendingScore = t.TrendingScore
		cur.TrendingRank = t.TrendingRank
		r.docs[t.ID] = cur
	}
	return nil
}

func (r *Trending) Count(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.docs)), nil
}

func (r *Trending) filter(keep func(models.TrendingTopic) bool) []models.TrendingTopic {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.TrendingTopic{}
	for _, t := range r.docs {
		if keep(t) {
			out = append(out, cloneTopic(t))
		}
	}
	return out
}
