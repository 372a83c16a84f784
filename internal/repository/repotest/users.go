package repotest

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/SanjayChandraSamudrala/forum-board/internal/models"
	"github.com/SanjayChandraSamudrala/forum-board/internal/repository"
)

type Users struct {
	mu   sync.Mutex
	docs map[bson.ObjectID]models.User
}

var _ repository.UserRepository = (*Users)(nil)

func NewUsers(seed ...models.User) *Users {
	r := &Users{docs: map[bson.ObjectID]models.User{}}
	for _, u := range seed {
		r.docs[u.ID] = cloneUser(u)
	}
	return r
}

func (r *Users) Create(_ context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u.ID.IsZero() {
		u.ID = bson.NewObjectID()
	}
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	for _, existing := range r.docs {
		if existing.Email == u.Email {
			return repository.ErrDuplicate
		}
	}
	r.docs[u.ID] = cloneUser(*u)
	return nil
}

func (r *Users) FindByID(_ context.Context, id bson.ObjectID) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.docs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u = cloneUser(u)
	return &u, nil
}

func (r *Users) FindByIDs(_ context.Context, ids []bson.ObjectID) ([]models.User, error) {
	return r.filter(func(u models.User) bool { return slices.Contains(ids, u.ID) }), nil
}

func (r *Users) FindByEmail(_ context.Context, email string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	found := r.filter(func(u models.User) bool { return u.Email == email })
	if len(found) == 0 {
		return nil, repository.ErrNotFound
	}
	return &found[0], nil
}

func (r *Users) List(context.Context) ([]models.User, error) {
	out := r.filter(func(models.User) bool { return true })
	slices.SortFunc(out, func(a, b models.User) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return out, nil
}

func (r *Users) UpdateProfile(_ context.Context, id bson.ObjectID, set bson.M) (*models.User, error) {
	var out *models.User
	err := r.mutate(id, func(u *models.User) {
		if v, ok := set["name"].(string); ok {
			u.Name = v
		}
		if v, ok := set["bio"].(string); ok {
			u.Bio = v
		}
		if v, ok := set["image"].(string); ok {
			u.Image = v
		}
		u.UpdatedAt = time.Now().UTC()
		c := cloneUser(*u)
		out = &c
	})
	return out, err
}

func (r *Users) SetPassword(_ context.Context, id bson.ObjectID, hash string) error {
	return r.mutate(id, func(u *models.User) { u.PasswordHash = hash })
}

func (r *Users) SetRole(_ context.Context, id bson.ObjectID, role models.Role) error {
	return r.mutate(id, func(u *models.User) { u.Role = role })
}

func (r *Users) TouchLastActive(_ context.Context, id bson.ObjectID, at time.Time) error {
	return r.mutate(id, func(u *models.User) { u.LastActiveAt = at })
}

func (r *Users) Delete(_ context.Context, id bson.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.docs, id)
	return nil
}

func (r *Users) AddBookmark(_ context.Context, id bson.ObjectID, b models.Bookmark) error {
	return r.mutate(id, func(u *models.User) {
		if !u.HasBookmark(b.Kind, b.ItemID) {
			u.Bookmarks = append(u.Bookmarks, b)
		}
	})
}

func (r *Users) RemoveBookmark(_ context.Context, id bson.ObjectID, kind models.BookmarkKind, itemID bson.ObjectID) error {
	return r.mutate(id, func(u *models.User) {
		u.Bookmarks = slices.DeleteFunc(u.Bookmarks, func(b models.Bookmark) bool {
			return b.Kind == kind && b.ItemID == itemID
		})
	})
}

func (r *Users) CountByRole(_ context.Context, role models.Role) (int64, error) {
	return int64(len(r.filter(func(u models.User) bool { return u.Role == role }))), nil
}

func (r *Users) Count(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.docs)), nil
}

func (r *Users) Search(_ context.Context, q string, limit int) ([]models.User, error) {
	out := r.filter(func(u models.User) bool { return containsFold(u.Name, q) || containsFold(u.Email, q) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *Users) mutate(id bson.ObjectID, fn func(*models.User)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.docs[id]
	if !ok {
		return repository.ErrNotFound
	}
	fn(&u)
	r.docs[id] = u
	return nil
}

func (r *Users) filter(keep func(models.User) bool) []models.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.User{}
	for _, u := range r.docs {
		if keep(u) {
			out = append(out, cloneUser(u))
		}
	}
	return out
}
