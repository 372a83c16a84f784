package repository

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/SanjayChandraSamudrala/forum-board/internal/models"
)

type UserRepository interface {
	Create(ctx context.Context, u *models.User) error
	FindByID(ctx context.Context, id bson.ObjectID) (*models.User, error)
	FindByIDs(ctx context.Context, ids []bson.ObjectID) ([]models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	UpdateProfile(ctx context.Context, id bson.ObjectID, set bson.M) (*models.User, error)
	SetPassword(ctx context.Context, id bson.ObjectID, hash string) error
	SetRole(ctx context.Context, id bson.ObjectID, role models.Role) error
	TouchLastActive(ctx context.Context, id bson.ObjectID, at time.Time) error
	Delete(ctx context.Context, id bson.ObjectID) error
	// AddBookmark is idempotent: saving the same item twice keeps one entry.
	AddBookmark(ctx context.Context, id bson.ObjectID, b models.Bookmark) error
	RemoveBookmark(ctx context.Context, id bson.ObjectID, kind models.BookmarkKind, itemID bson.ObjectID) error
	CountByRole(ctx context.Context, role models.Role) (int64, error)
	Count(ctx context.Context) (int64, error)
	Search(ctx context.Context, q string, limit int) ([]models.User, error)
}

type mongoUserRepo struct {
	col *mongo.Collection
}

func NewMongoUserRepository(db *mongo.Database) UserRepository {
	return &mongoUserRepo{col: db.Collection(UsersCollection)}
}

func (r *mongoUserRepo) Create(ctx context.Context, u *models.User) error {
	if u.ID.IsZero() {
		u.ID = bson.NewObjectID()
	}
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	if u.Bookmarks == nil {
		u.Bookmarks = []models.Bookmark{}
	}
	_, err := r.col.InsertOne(ctx, u)
	return translate(err)
}

func (r *mongoUserRepo) FindByID(ctx context.Context, id bson.ObjectID) (*models.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *mongoUserRepo) FindByIDs(ctx context.Context, ids []bson.ObjectID) ([]models.User, error) {
	if len(ids) == 0 {
		return []models.User{}, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": ids}}, options.Find())
}

func (r *mongoUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": strings.ToLower(strings.TrimSpace(email))})
}

func (r *mongoUserRepo) List(ctx context.Context) ([]models.User, error) {
	return r.find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
}

func (r *mongoUserRepo) UpdateProfile(ctx context.Context, id bson.ObjectID, set bson.M) (*models.User, error) {
	set["updated_at"] = time.Now().UTC()
	var u models.User
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&u)
	if err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (r *mongoUserRepo) SetPassword(ctx context.Context, id bson.ObjectID, hash string) error {
	return r.updateOne(ctx, id, bson.M{"$set": bson.M{"password_hash": hash, "updated_at": time.Now().UTC()}})
}

func (r *mongoUserRepo) SetRole(ctx context.Context, id bson.ObjectID, role models.Role) error {
	return r.updateOne(ctx, id, bson.M{"$set": bson.M{"role": role, "updated_at": time.Now().UTC()}})
}

func (r *mongoUserRepo) TouchLastActive(ctx context.Context, id bson.ObjectID, at time.Time) error {
	return r.updateOne(ctx, id, bson.M{"$set": bson.M{"last_active_at": at}})
}

func (r *mongoUserRepo) Delete(ctx context.Context, id bson.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoUserRepo) AddBookmark(ctx context.Context, id bson.ObjectID, b models.Bookmark) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{
			"_id":       id,
			"bookmarks": bson.M{"$not": bson.M{"$elemMatch": bson.M{"kind": b.Kind, "item_id": b.ItemID}}},
		},
		bson.M{"$push": bson.M{"bookmarks": b}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		// either already saved or no such user
		n, err := r.col.CountDocuments(ctx, bson.M{"_id": id})
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrNotFound
		}
	}
	return nil
}

func (r *mongoUserRepo) RemoveBookmark(ctx context.Context, id bson.ObjectID, kind models.BookmarkKind, itemID bson.ObjectID) error {
	return r.updateOne(ctx, id, bson.M{"$pull": bson.M{"bookmarks": bson.M{"kind": kind, "item_id": itemID}}})
}

func (r *mongoUserRepo) CountByRole(ctx context.Context, role models.Role) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{"role": role})
}

func (r *mongoUserRepo) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}

func (r *mongoUserRepo) Search(ctx context.Context, q string, limit int) ([]models.User, error) {
	re := containsFold(q)
	filter := bson.M{"$or": bson.A{bson.M{"name": re}, bson.M{"email": re}}}
	return r.find(ctx, filter, options.Find().SetLimit(int64(limit)))
}

func (r *mongoUserRepo) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var u models.User
	if err := r.col.FindOne(ctx, filter).Decode(&u); err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (r *mongoUserRepo) find(ctx context.Context, filter bson.M, opts *options.FindOptionsBuilder) ([]models.User, error) {
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.User{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *mongoUserRepo) updateOne(ctx context.Context, id bson.ObjectID, update bson.M) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
