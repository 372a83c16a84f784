package repository

import (
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/SanjayChandraSamudrala/forum-board/internal/ranking"
)

// reactorIDs resolves a reaction field to its id array, reading the legacy
// {count, users} shape when the field is not an array yet.
func reactorIDs(field string) bson.M {
	return reactorIDsAt("$" + field)
}

// reactorIDsAt is reactorIDs for a full path expression such as "$$r.likes".
func reactorIDsAt(path string) bson.M {
	return bson.M{
		"$cond": bson.A{
			bson.M{"$isArray": path},
			path,
			bson.M{"$cond": bson.A{
				bson.M{"$isArray": path + ".users"},
				path + ".users",
				bson.A{},
			}},
		},
	}
}

func sizeOf(expr any) bson.M {
	return bson.M{"$size": expr}
}

func arrayOrEmpty(field string) bson.M {
	return bson.M{"$cond": bson.A{bson.M{"$isArray": "$" + field}, "$" + field, bson.A{}}}
}

// reactedBy matches documents where uid appears in a reaction field in
// either storage shape.
func reactedBy(field string, uid bson.ObjectID) bson.M {
	return bson.M{"$or": bson.A{
		bson.M{field: uid},
		bson.M{field + ".users": uid},
	}}
}

// activeSince matches posts created, or replied to, at or after since.
func activeSince(since time.Time) bson.M {
	return bson.M{"$or": bson.A{
		bson.M{"created_at": bson.M{"$gte": since}},
		bson.M{"replies.created_at": bson.M{"$gte": since}},
	}}
}

// containsFold builds a case-insensitive literal substring match.
func containsFold(q string) bson.Regex {
	return bson.Regex{Pattern: regexp.QuoteMeta(q), Options: "i"}
}

func sortStage(key ranking.SortKey) bson.D {
	recent := bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}
	var lead bson.D
	switch key {
	case ranking.SortOldest:
		return bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: -1}}
	case ranking.SortPopular:
		lead = bson.D{{Key: "views", Value: -1}}
	case ranking.SortMostLiked:
		lead = bson.D{{Key: "like_count", Value: -1}}
	case ranking.SortMostReplies:
		lead = bson.D{{Key: "reply_count", Value: -1}}
	case ranking.SortTrending:
		lead = bson.D{{Key: "trending_score", Value: -1}}
	}
	return append(lead, recent...)
}

func pageStages(p ranking.Page) []bson.D {
	return []bson.D{
		bson.D{{Key: "$skip", Value: int64(p.Offset())}},
		bson.D{{Key: "$limit", Value: int64(p.Size)}},
	}
}
