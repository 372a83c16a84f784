package repotest

import (
	"context"
	"slices"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/SanjayChandraSamudrala/forum-board/internal/models"
	"github.com/SanjayChandraSamudrala/forum-board/internal/ranking"
	"github.com/SanjayChandraSamudrala/forum-board/internal/repository"
)

type Communities struct {
	mu   sync.Mutex
	docs map[bson.ObjectID]models.Community
}

var _ repository.CommunityRepository = (*Communities)(nil)

func NewCommunities(seed ...models.Community) *Communities {
	r := &Communities{docs: map[bson.ObjectID]models.Community{}}
	for _, c := range seed {
		r.docs[c.ID] = cloneCommunity(c)
	}
	return r
}

func (r *Communities) Create(_ context.Context, c *models.Community) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.ID.IsZero() {
		c.ID = bson.NewObjectID()
	}
	for _, existing := range r.docs {
		if existing.Name == c.Name {
			return repository.ErrDuplicate
		}
	}
	r.docs[c.ID] = cloneCommunity(*c)
	return nil
}

func (r *Communities) FindByID(_ context.Context, id bson.ObjectID) (*models.Community, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.docs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c = cloneCommunity(c)
	return &c, nil
}

func (r *Communities) ListPublic(context.Context) ([]models.Community, error) {
	return r.filter(func(c models.Community) bool { return !c.IsPrivate }), nil
}

func (r *Communities) AddMember(_ context.Context, id, userID bson.ObjectID) error {
	return r.mutate(id, func(c *models.Community) {
		if !c.IsMember(userID) {
			c.Members = append(c.Members, userID)
		}
	})
}

func (r *Communities) RemoveMember(_ context.Context, id, userID bson.ObjectID) error {
	return r.mutate(id, func(c *models.Community) {
		c.Members = slices.DeleteFunc(c.Members, func(m bson.ObjectID) bool { return m == userID })
	})
}

func (r *Communities) Search(_ context.Context, q string, limit int) ([]models.Community, error) {
	out := r.filter(func(c models.Community) bool {
		return containsFold(c.Name, q) || containsFold(c.Description, q)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *Communities) mutate(id bson.ObjectID, fn func(*models.Community)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.docs[id]
	if !ok {
		return repository.ErrNotFound
	}
	fn(&c)
	r.docs[id] = c
	return nil
}

func (r *Communities) filter(keep func(models.Community) bool) []models.Community {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Community{}
	for _, c := range r.docs {
		if keep(c) {
			out = append(out, cloneCommunity(c))
		}
	}
	slices.SortFunc(out, func(a, b models.Community) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return out
}

type Contacts struct {
	mu   sync.Mutex
	docs []models.ContactMessage
}

var _ repository.ContactRepository = (*Contacts)(nil)

func NewContacts(seed ...models.ContactMessage) *Contacts {
	return &Contacts{docs: slices.Clone(seed)}
}

func (r *Contacts) Create(_ context.Context, m *models.ContactMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m.ID.IsZero() {
		m.ID = bson.NewObjectID()
	}
	r.docs = append(r.docs, *m)
	return nil
}

func (r *Contacts) List(_ context.Context, f models.ContactFilter, p ranking.Page) ([]models.ContactMessage, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.ContactMessage{}
	for _, m := range r.docs {
		if f.IsRead != nil && m.IsRead != *f.IsRead {
			continue
		}
		if f.Replied != nil && m.Replied != *f.Replied {
			continue
		}
		out = append(out, m)
	}
	slices.SortStableFunc(out, func(a, b models.ContactMessage) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return ranking.Window(out, p), int64(len(out)), nil
}

func (r *Contacts) Mark(_ context.Context, id bson.ObjectID, field string) (*models.ContactMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.docs {
		if r.docs[i].ID != id {
			continue
		}
		switch field {
		case repository.ContactFieldRead:
			r.docs[i].IsRead = true
		case repository.ContactFieldReplied:
			r.docs[i].Replied = true
		}
		m := r.docs[i]
		return &m, nil
	}
	return nil, repository.ErrNotFound
}

func (r *Contacts) Delete(_ context.Context, id bson.ObjectID) (*models.ContactMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, m := range r.docs {
		if m.ID == id {
			r.docs = slices.Delete(r.docs, i, i+1)
			return &m, nil
		}
	}
	return nil, repository.ErrNotFound
}

type AdminLogs struct {
	mu   sync.Mutex
	Logs []models.AdminLog
	// Err, when set, is returned from Insert.
	Err error
}

var _ repository.AdminLogRepository = (*AdminLogs)(nil)

func NewAdminLogs() *AdminLogs { return &AdminLogs{} }

func (r *AdminLogs) Insert(_ context.Context, l *models.AdminLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if l.ID.IsZero() {
		l.ID = bson.NewObjectID()
	}
	r.Logs = append(r.Logs, *l)
	return nil
}

func (r *AdminLogs) List(_ context.Context, action models.AdminAction, p ranking.Page) ([]models.AdminLog, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.AdminLog{}
	for _, l := range r.Logs {
		if action == "" || l.Action == action {
			out = append(out, l)
		}
	}
	slices.SortStableFunc(out, func(a, b models.AdminLog) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return ranking.Window(out, p), int64(len(out)), nil
}

// Sessions is an in-memory session store honouring ExpiresAt against Now.
type Sessions struct {
	mu   sync.Mutex
	docs map[string]models.Session
	Now  func() time.Time
}

var _ repository.SessionRepository = (*Sessions)(nil)

func NewSessions() *Sessions {
	return &Sessions{docs: map[string]models.Session{}, Now: time.Now}
}

func (r *Sessions) Create(_ context.Context, s *models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs[s.ID] = *s
	return nil
}

func (r *Sessions) Get(_ context.Context, id string) (*models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.docs[id]
	if !ok || s.Expired(r.Now()) {
		return nil, repository.ErrNotFound
	}
	return &s, nil
}

func (r *Sessions) Touch(_ context.Context, s *models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs[s.ID] = *s
	return nil
}

func (r *Sessions) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.docs, id)
	return nil
}

func (r *Sessions) DeleteByUser(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, s := range r.docs {
		if s.UserID == userID {
			delete(r.docs, id)
		}
	}
	return nil
}
